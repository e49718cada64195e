package entity

import "time"

// AntreanStatus represents the status of a queue entry.
type AntreanStatus string

const (
	AntreanStatusMenunggu AntreanStatus = "menunggu"
	AntreanStatusSelesai  AntreanStatus = "selesai"
)

// Antrean represents a patient's place in a poli's waiting line.
// NomorAntrean is unique and strictly increasing per poli across all-time
// entries; numbers are never reused, even after completion.
type Antrean struct {
	ID           uint          `gorm:"primaryKey;autoIncrement" json:"id"`
	PoliID       uint          `gorm:"not null;index;uniqueIndex:idx_antrean_poli_nomor" json:"poli_id"`
	PasienID     uint          `gorm:"not null;index" json:"pasien_id"`
	WaktuDaftar  time.Time     `gorm:"autoCreateTime" json:"waktu_daftar"`
	Status       AntreanStatus `gorm:"type:varchar(20);not null;default:'menunggu';index" json:"status"`
	NomorAntrean int           `gorm:"not null;uniqueIndex:idx_antrean_poli_nomor" json:"nomor_antrean"`

	// Relationships
	Poli   Poli `gorm:"foreignKey:PoliID" json:"poli,omitempty"`
	Pasien User `gorm:"foreignKey:PasienID" json:"pasien,omitempty"`
}

func (Antrean) TableName() string {
	return "antrean"
}

// IsMenunggu checks if the entry is still waiting.
func (a *Antrean) IsMenunggu() bool {
	return a.Status == AntreanStatusMenunggu
}

// Selesaikan transitions the entry to done.
func (a *Antrean) Selesaikan() {
	a.Status = AntreanStatusSelesai
}
