package entity

// Poli represents a clinic department/specialty unit.
//
// DokterAktif is the cached display flag. When DokterOverride is set the
// displayed status follows DokterAktifManual and the schedule is ignored.
type Poli struct {
	ID                uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Nama              string `gorm:"type:varchar(100);not null" json:"nama"`
	Deskripsi         string `gorm:"type:varchar(255)" json:"deskripsi"`
	DokterAktif       bool   `gorm:"not null;default:true" json:"dokter_aktif"`
	DokterOverride    bool   `gorm:"not null;default:false" json:"dokter_override"`
	DokterAktifManual bool   `gorm:"not null;default:true" json:"dokter_aktif_manual"`

	// Relationships
	Jadwal []JadwalDokter `gorm:"foreignKey:PoliID" json:"jadwal,omitempty"`
}

func (Poli) TableName() string {
	return "poli"
}
