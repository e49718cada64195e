package repository

import (
	"puskesmas-frontdesk/internal/domain/entity"

	"gorm.io/gorm"
)

// AntreanWithPasien pairs a queue entry with its patient's username for the
// admin queue listing.
type AntreanWithPasien struct {
	entity.Antrean
	Username string `json:"username"`
}

type AntreanRepository interface {
	Create(db *gorm.DB, antrean *entity.Antrean) error
	FindByID(db *gorm.DB, id uint) (*entity.Antrean, error)
	// FindWaiting returns the patient's waiting entry for a poli, or nil.
	FindWaiting(db *gorm.DB, poliID, pasienID uint) (*entity.Antrean, error)
	// MaxNomor returns the highest number ever issued for a poli, across
	// all statuses. Zero when no entry exists.
	MaxNomor(db *gorm.DB, poliID uint) (int, error)
	CountWaiting(db *gorm.DB, poliID uint) (int64, error)
	// ListByPoli returns all entries for a poli ordered by queue number,
	// joined with the patient's username.
	ListByPoli(db *gorm.DB, poliID uint) ([]AntreanWithPasien, error)
	// MarkSelesai transitions an entry to done. Returns affected rows:
	// 0 means the entry does not exist.
	MarkSelesai(db *gorm.DB, id uint) (int64, error)
}
