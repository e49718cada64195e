package repository

import (
	"errors"

	"puskesmas-frontdesk/internal/domain/entity"
	domainRepo "puskesmas-frontdesk/internal/domain/repository"

	"gorm.io/gorm"
)

type poliRepository struct{}

func NewPoliRepository() domainRepo.PoliRepository {
	return &poliRepository{}
}

func (r *poliRepository) FindAll(db *gorm.DB) ([]entity.Poli, error) {
	var polis []entity.Poli
	err := db.Order("id").Find(&polis).Error
	if err != nil {
		return nil, err
	}
	return polis, nil
}

func (r *poliRepository) FindByID(db *gorm.DB, id uint) (*entity.Poli, error) {
	var poli entity.Poli
	err := db.Where("id = ?", id).First(&poli).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &poli, nil
}

func (r *poliRepository) SetOverride(db *gorm.DB, id uint, aktif bool) (int64, error) {
	result := db.Model(&entity.Poli{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"dokter_override":     true,
			"dokter_aktif_manual": aktif,
		})
	return result.RowsAffected, result.Error
}

func (r *poliRepository) ClearOverride(db *gorm.DB, id uint) (int64, error) {
	result := db.Model(&entity.Poli{}).
		Where("id = ?", id).
		Update("dokter_override", false)
	return result.RowsAffected, result.Error
}
