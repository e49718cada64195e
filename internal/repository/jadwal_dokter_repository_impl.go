package repository

import (
	"puskesmas-frontdesk/internal/domain/entity"
	domainRepo "puskesmas-frontdesk/internal/domain/repository"

	"gorm.io/gorm"
)

type jadwalDokterRepository struct{}

func NewJadwalDokterRepository() domainRepo.JadwalDokterRepository {
	return &jadwalDokterRepository{}
}

func (r *jadwalDokterRepository) FindByPoliID(db *gorm.DB, poliID uint) ([]entity.JadwalDokter, error) {
	var jadwal []entity.JadwalDokter
	err := db.Where("poli_id = ?", poliID).Order("id").Find(&jadwal).Error
	if err != nil {
		return nil, err
	}
	return jadwal, nil
}
