package entity

import "strings"

// JadwalDokter is a doctor's schedule row for a poli: day-of-week label plus
// a start/end window stored as "HH:MM" strings.
type JadwalDokter struct {
	ID         uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	PoliID     uint   `gorm:"not null;index" json:"poli_id"`
	Dokter     string `gorm:"type:varchar(100);not null" json:"dokter"`
	Hari       string `gorm:"type:varchar(20);not null" json:"hari"`
	JamMulai   string `gorm:"type:varchar(10);not null" json:"jam_mulai"`
	JamSelesai string `gorm:"type:varchar(10);not null" json:"jam_selesai"`

	// Relationships
	Poli Poli `gorm:"foreignKey:PoliID" json:"poli,omitempty"`
}

func (JadwalDokter) TableName() string {
	return "jadwal_dokter"
}

// MatchesDay reports whether the row's day label matches the given weekday
// name, case-insensitively.
func (j *JadwalDokter) MatchesDay(weekday string) bool {
	return strings.EqualFold(j.Hari, weekday)
}
