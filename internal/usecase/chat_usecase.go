package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"puskesmas-frontdesk/internal/delivery/dto"
	"puskesmas-frontdesk/internal/domain/entity"
	"puskesmas-frontdesk/internal/domain/repository"
	"puskesmas-frontdesk/internal/service"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var ErrPertanyaanKosong = errors.New("pertanyaan tidak boleh kosong")

// systemInstruction is the fixed persona handed to the LLM.
const systemInstruction = "Kamu adalah asisten Puskesmas yang ramah dan informatif."

// AssistantGateway forwards a system instruction and a user prompt to the
// hosted LLM and returns its free-text answer.
type AssistantGateway interface {
	Ask(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

type ChatUsecase interface {
	// Tanya answers a question from live clinic state. viewer is nil for
	// guests.
	Tanya(ctx context.Context, viewer *entity.User, pertanyaan string) (*dto.ChatResponse, error)
}

type chatUsecase struct {
	db          *gorm.DB
	log         *logrus.Logger
	poliRepo    repository.PoliRepository
	jadwalRepo  repository.JadwalDokterRepository
	antreanRepo repository.AntreanRepository
	gateway     AssistantGateway
}

func NewChatUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	poliRepo repository.PoliRepository,
	jadwalRepo repository.JadwalDokterRepository,
	antreanRepo repository.AntreanRepository,
	gateway AssistantGateway,
) ChatUsecase {
	return &chatUsecase{
		db:          db,
		log:         log,
		poliRepo:    poliRepo,
		jadwalRepo:  jadwalRepo,
		antreanRepo: antreanRepo,
		gateway:     gateway,
	}
}

func (u *chatUsecase) Tanya(ctx context.Context, viewer *entity.User, pertanyaan string) (*dto.ChatResponse, error) {
	pertanyaan = strings.TrimSpace(pertanyaan)
	if pertanyaan == "" {
		return nil, ErrPertanyaanKosong
	}

	digest, err := u.buildDigest(ctx, viewer, time.Now())
	if err != nil {
		return nil, err
	}

	jawaban, err := u.gateway.Ask(ctx, systemInstruction, buildPrompt(digest, pertanyaan))
	if err != nil {
		u.log.Warnf("Assistant gateway failed: %+v", err)
		return nil, err
	}

	return &dto.ChatResponse{Jawaban: jawaban}, nil
}

// buildDigest iterates every poli, resolves today's availability and the
// waiting count, and serializes the status block for the assistant.
func (u *chatUsecase) buildDigest(ctx context.Context, viewer *entity.User, now time.Time) (string, error) {
	db := u.db.WithContext(ctx)

	polis, err := u.poliRepo.FindAll(db)
	if err != nil {
		u.log.Warnf("Failed to list poli for digest: %+v", err)
		return "", err
	}

	rows := make([]service.PoliStatus, 0, len(polis))
	for i := range polis {
		jadwal, err := u.jadwalRepo.FindByPoliID(db, polis[i].ID)
		if err != nil {
			u.log.Warnf("Failed to load jadwal for poli %d: %+v", polis[i].ID, err)
			return "", err
		}

		menunggu, err := u.antreanRepo.CountWaiting(db, polis[i].ID)
		if err != nil {
			u.log.Warnf("Failed to count antrean for poli %d: %+v", polis[i].ID, err)
			return "", err
		}

		rows = append(rows, service.NewPoliStatus(&polis[i], jadwal, menunggu, now))
	}

	viewerRole := ""
	if viewer != nil {
		viewerRole = viewer.Role
	}

	return service.BuildDigest(now, viewerRole, rows), nil
}

// buildPrompt wraps the clinic digest and the question into the instruction
// template the assistant answers from.
func buildPrompt(digest, pertanyaan string) string {
	return fmt.Sprintf(`Kamu adalah asisten AI resmi Puskesmas.

ATURAN PENTING:
- Gunakan HANYA data yang ada di bawah ini
- Jangan mengarang jam, status, atau antrean
- Jika data tidak tersedia, katakan dengan jujur
- Boleh memberi saran dan keputusan berbasis kondisi

DATA RESMI:
%s

PERTANYAAN:
%s

Jawablah secara jelas, sopan, dan membantu.`, digest, pertanyaan)
}
