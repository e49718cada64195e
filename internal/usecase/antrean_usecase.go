package usecase

import (
	"context"
	"errors"
	"fmt"

	"puskesmas-frontdesk/internal/delivery/dto"
	"puskesmas-frontdesk/internal/domain/entity"
	"puskesmas-frontdesk/internal/domain/repository"
	"puskesmas-frontdesk/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrAntreanNotFound = errors.New("antrean not found")

type AntreanUsecase interface {
	// Daftar joins the patient to a poli's queue. Re-joining while an
	// entry is still waiting is idempotent: the same number is returned
	// and no second row is created.
	Daftar(ctx context.Context, pasienID uint, poliID uint) (*dto.DaftarAntreanResponse, error)
	// Selesai transitions a queue entry to done.
	Selesai(ctx context.Context, adminID uint, antreanID uint) error
}

type antreanUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	poliRepo     repository.PoliRepository
	antreanRepo  repository.AntreanRepository
	queueCounter *service.QueueCounterService
	audit        service.AuditService
}

func NewAntreanUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	poliRepo repository.PoliRepository,
	antreanRepo repository.AntreanRepository,
	queueCounter *service.QueueCounterService,
	audit service.AuditService,
) AntreanUsecase {
	return &antreanUsecase{
		db:           db,
		log:          log,
		poliRepo:     poliRepo,
		antreanRepo:  antreanRepo,
		queueCounter: queueCounter,
		audit:        audit,
	}
}

// Daftar flow:
// 1. Validate the poli exists
// 2. Idempotent re-join: an existing waiting entry returns its own number
// 3. Allocate the next number from the Redis counter (atomic per poli)
// 4. Insert the entry; a duplicate-waiting conflict from a concurrent join
//    resolves to the winning row's number
func (u *antreanUsecase) Daftar(ctx context.Context, pasienID uint, poliID uint) (*dto.DaftarAntreanResponse, error) {
	db := u.db.WithContext(ctx)

	poli, err := u.poliRepo.FindByID(db, poliID)
	if err != nil {
		u.log.Warnf("Failed to find poli %d: %+v", poliID, err)
		return nil, err
	}
	if poli == nil {
		return nil, ErrPoliNotFound
	}

	existing, err := u.antreanRepo.FindWaiting(db, poliID, pasienID)
	if err != nil {
		u.log.Warnf("Failed to check existing antrean: %+v", err)
		return nil, err
	}
	if existing != nil {
		return &dto.DaftarAntreanResponse{
			Message:      "Anda sudah terdaftar",
			NomorAntrean: existing.NomorAntrean,
		}, nil
	}

	nomor, err := u.queueCounter.NextNomor(ctx, poliID)
	if err != nil {
		u.log.Errorf("Failed to allocate nomor antrean for poli %d: %+v", poliID, err)
		return nil, err
	}

	antrean := &entity.Antrean{
		PoliID:       poliID,
		PasienID:     pasienID,
		Status:       entity.AntreanStatusMenunggu,
		NomorAntrean: nomor,
	}

	if err := u.antreanRepo.Create(db, antrean); err != nil {
		// A concurrent join by the same patient hit the partial unique
		// index first; their row wins and its number is returned. The
		// allocated number stays burned: numbers are never reused.
		if isDuplicateKeyError(err, "waiting_once") {
			winner, findErr := u.antreanRepo.FindWaiting(db, poliID, pasienID)
			if findErr == nil && winner != nil {
				return &dto.DaftarAntreanResponse{
					Message:      "Anda sudah terdaftar",
					NomorAntrean: winner.NomorAntrean,
				}, nil
			}
		}
		u.log.Warnf("Failed to insert antrean for poli %d: %+v", poliID, err)
		return nil, err
	}

	if err := u.audit.Record(ctx, db, &pasienID, entity.AuditActionAntreanJoin, entity.JSON{
		"poli_id":       poliID,
		"nomor_antrean": nomor,
	}); err != nil {
		u.log.Warnf("Failed to audit antrean join: %+v", err)
	}

	u.log.Infof("Antrean created: poli=%d, pasien=%d, nomor=%d", poliID, pasienID, nomor)
	return &dto.DaftarAntreanResponse{
		Message:      "Berhasil daftar antrean",
		NomorAntrean: antrean.NomorAntrean,
	}, nil
}

func (u *antreanUsecase) Selesai(ctx context.Context, adminID uint, antreanID uint) error {
	db := u.db.WithContext(ctx)

	affected, err := u.antreanRepo.MarkSelesai(db, antreanID)
	if err != nil {
		u.log.Warnf("Failed to mark antrean %d selesai: %+v", antreanID, err)
		return err
	}
	if affected == 0 {
		return ErrAntreanNotFound
	}

	if err := u.audit.RecordChange(ctx, db, &adminID, entity.AuditActionAntreanSelesai,
		"antrean", fmt.Sprint(antreanID),
		string(entity.AntreanStatusMenunggu), string(entity.AntreanStatusSelesai)); err != nil {
		u.log.Warnf("Failed to audit antrean selesai: %+v", err)
	}

	u.log.Infof("Antrean %d selesai", antreanID)
	return nil
}
