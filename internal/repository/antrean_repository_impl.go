package repository

import (
	"errors"

	"puskesmas-frontdesk/internal/domain/entity"
	domainRepo "puskesmas-frontdesk/internal/domain/repository"

	"gorm.io/gorm"
)

type antreanRepository struct{}

func NewAntreanRepository() domainRepo.AntreanRepository {
	return &antreanRepository{}
}

func (r *antreanRepository) Create(db *gorm.DB, antrean *entity.Antrean) error {
	return db.Create(antrean).Error
}

func (r *antreanRepository) FindByID(db *gorm.DB, id uint) (*entity.Antrean, error) {
	var antrean entity.Antrean
	err := db.Where("id = ?", id).First(&antrean).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &antrean, nil
}

func (r *antreanRepository) FindWaiting(db *gorm.DB, poliID, pasienID uint) (*entity.Antrean, error) {
	var antrean entity.Antrean
	err := db.Where("poli_id = ? AND pasien_id = ? AND status = ?",
		poliID, pasienID, entity.AntreanStatusMenunggu).
		First(&antrean).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &antrean, nil
}

func (r *antreanRepository) MaxNomor(db *gorm.DB, poliID uint) (int, error) {
	var max int
	err := db.Model(&entity.Antrean{}).
		Select("COALESCE(MAX(nomor_antrean), 0)").
		Where("poli_id = ?", poliID).
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	return max, nil
}

func (r *antreanRepository) CountWaiting(db *gorm.DB, poliID uint) (int64, error) {
	var count int64
	err := db.Model(&entity.Antrean{}).
		Where("poli_id = ? AND status = ?", poliID, entity.AntreanStatusMenunggu).
		Count(&count).Error
	return count, err
}

func (r *antreanRepository) ListByPoli(db *gorm.DB, poliID uint) ([]domainRepo.AntreanWithPasien, error) {
	var entries []domainRepo.AntreanWithPasien
	err := db.Model(&entity.Antrean{}).
		Select("antrean.*, users.username").
		Joins("JOIN users ON users.id = antrean.pasien_id").
		Where("antrean.poli_id = ?", poliID).
		Order("antrean.nomor_antrean").
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}
	return entries, nil
}

// MarkSelesai transitions menunggu/selesai unconditionally as long as the
// row exists; completing an already-done entry is a no-op update.
func (r *antreanRepository) MarkSelesai(db *gorm.DB, id uint) (int64, error) {
	result := db.Model(&entity.Antrean{}).
		Where("id = ?", id).
		Update("status", entity.AntreanStatusSelesai)
	return result.RowsAffected, result.Error
}
