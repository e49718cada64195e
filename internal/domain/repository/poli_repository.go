package repository

import (
	"puskesmas-frontdesk/internal/domain/entity"

	"gorm.io/gorm"
)

type PoliRepository interface {
	FindAll(db *gorm.DB) ([]entity.Poli, error)
	FindByID(db *gorm.DB, id uint) (*entity.Poli, error)
	// SetOverride forces the displayed doctor status; aktif becomes the
	// manual value shown while the override holds.
	SetOverride(db *gorm.DB, id uint, aktif bool) (int64, error)
	// ClearOverride returns the poli to schedule-derived status.
	ClearOverride(db *gorm.DB, id uint) (int64, error)
}
