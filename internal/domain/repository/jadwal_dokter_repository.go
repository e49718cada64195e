package repository

import (
	"puskesmas-frontdesk/internal/domain/entity"

	"gorm.io/gorm"
)

type JadwalDokterRepository interface {
	FindByPoliID(db *gorm.DB, poliID uint) ([]entity.JadwalDokter, error)
}
