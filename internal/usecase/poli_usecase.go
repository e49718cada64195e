package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"puskesmas-frontdesk/internal/converter"
	"puskesmas-frontdesk/internal/delivery/dto"
	"puskesmas-frontdesk/internal/domain/entity"
	"puskesmas-frontdesk/internal/domain/repository"
	"puskesmas-frontdesk/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPoliNotFound = errors.New("poli not found")

type PoliUsecase interface {
	ListPoli(ctx context.Context) (*dto.PoliListResponse, error)
	// GetPoliDetail resolves a poli's full detail page payload. The viewer
	// decides which queue information is included: a patient sees their own
	// waiting entry, an admin sees the full ordered queue.
	GetPoliDetail(ctx context.Context, poliID uint, viewer *entity.User) (*dto.PoliDetailResponse, error)
	// OverrideDokter forces the displayed doctor status, bypassing the
	// schedule until cleared.
	OverrideDokter(ctx context.Context, adminID uint, poliID uint, aktif bool) error
	// AutoDokter clears the override so status follows operating hours.
	AutoDokter(ctx context.Context, adminID uint, poliID uint) error
}

type poliUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	poliRepo    repository.PoliRepository
	jadwalRepo  repository.JadwalDokterRepository
	antreanRepo repository.AntreanRepository
	audit       service.AuditService
}

func NewPoliUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	poliRepo repository.PoliRepository,
	jadwalRepo repository.JadwalDokterRepository,
	antreanRepo repository.AntreanRepository,
	audit service.AuditService,
) PoliUsecase {
	return &poliUsecase{
		db:          db,
		log:         log,
		poliRepo:    poliRepo,
		jadwalRepo:  jadwalRepo,
		antreanRepo: antreanRepo,
		audit:       audit,
	}
}

func (u *poliUsecase) ListPoli(ctx context.Context) (*dto.PoliListResponse, error) {
	db := u.db.WithContext(ctx)

	polis, err := u.poliRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to list poli: %+v", err)
		return nil, err
	}

	now := time.Now()
	responses := make([]dto.PoliResponse, 0, len(polis))
	for i := range polis {
		jadwal, err := u.jadwalRepo.FindByPoliID(db, polis[i].ID)
		if err != nil {
			u.log.Warnf("Failed to load jadwal for poli %d: %+v", polis[i].ID, err)
			return nil, err
		}

		today := service.ScheduleForToday(jadwal, now)
		availability := service.ResolveAvailability(&polis[i], today, now)
		responses = append(responses, converter.PoliToResponse(&polis[i], availability))
	}

	return &dto.PoliListResponse{
		Poli:  responses,
		Total: len(responses),
	}, nil
}

func (u *poliUsecase) GetPoliDetail(ctx context.Context, poliID uint, viewer *entity.User) (*dto.PoliDetailResponse, error) {
	db := u.db.WithContext(ctx)

	poli, err := u.poliRepo.FindByID(db, poliID)
	if err != nil {
		u.log.Warnf("Failed to find poli %d: %+v", poliID, err)
		return nil, err
	}
	if poli == nil {
		return nil, ErrPoliNotFound
	}

	jadwal, err := u.jadwalRepo.FindByPoliID(db, poliID)
	if err != nil {
		u.log.Warnf("Failed to load jadwal for poli %d: %+v", poliID, err)
		return nil, err
	}

	now := time.Now()
	today := service.ScheduleForToday(jadwal, now)
	availability := service.ResolveAvailability(poli, today, now)

	detail := &dto.PoliDetailResponse{
		Poli:         converter.PoliToResponse(poli, availability),
		Jadwal:       converter.JadwalsToResponses(jadwal),
		SumberStatus: string(availability.Source),
	}

	if viewer != nil && viewer.Role == entity.RoleUser {
		waiting, err := u.antreanRepo.FindWaiting(db, poliID, viewer.ID)
		if err != nil {
			u.log.Warnf("Failed to find waiting antrean: %+v", err)
			return nil, err
		}
		detail.AntreanUser = converter.AntreanToResponse(waiting)
	}

	if viewer != nil && viewer.IsAdmin() {
		queue, err := u.antreanRepo.ListByPoli(db, poliID)
		if err != nil {
			u.log.Warnf("Failed to list antrean for poli %d: %+v", poliID, err)
			return nil, err
		}
		detail.AntreanList = converter.QueueToResponses(queue)
	}

	return detail, nil
}

func (u *poliUsecase) OverrideDokter(ctx context.Context, adminID uint, poliID uint, aktif bool) error {
	db := u.db.WithContext(ctx)

	affected, err := u.poliRepo.SetOverride(db, poliID, aktif)
	if err != nil {
		u.log.Warnf("Failed to override dokter for poli %d: %+v", poliID, err)
		return err
	}
	if affected == 0 {
		return ErrPoliNotFound
	}

	if err := u.audit.RecordChange(ctx, db, &adminID, entity.AuditActionPoliOverride,
		"poli", fmt.Sprint(poliID), nil, map[string]interface{}{"dokter_aktif_manual": aktif}); err != nil {
		u.log.Warnf("Failed to audit override: %+v", err)
	}

	u.log.Infof("Dokter status forced for poli %d: aktif=%v", poliID, aktif)
	return nil
}

func (u *poliUsecase) AutoDokter(ctx context.Context, adminID uint, poliID uint) error {
	db := u.db.WithContext(ctx)

	affected, err := u.poliRepo.ClearOverride(db, poliID)
	if err != nil {
		u.log.Warnf("Failed to clear override for poli %d: %+v", poliID, err)
		return err
	}
	if affected == 0 {
		return ErrPoliNotFound
	}

	if err := u.audit.RecordChange(ctx, db, &adminID, entity.AuditActionPoliAuto,
		"poli", fmt.Sprint(poliID), nil, map[string]interface{}{"dokter_override": false}); err != nil {
		u.log.Warnf("Failed to audit auto-dokter: %+v", err)
	}

	u.log.Infof("Dokter status for poli %d follows operating hours again", poliID)
	return nil
}
