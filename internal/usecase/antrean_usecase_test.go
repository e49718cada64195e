package usecase

import (
	"context"
	"testing"

	"puskesmas-frontdesk/internal/domain/entity"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/utils/tests"
)

type MockAuditService struct {
	mock.Mock
}

func (m *MockAuditService) Record(ctx context.Context, tx *gorm.DB, userID *uint, action string, metadata entity.JSON) error {
	args := m.Called(ctx, tx, userID, action, metadata)
	return args.Error(0)
}

func (m *MockAuditService) RecordChange(ctx context.Context, tx *gorm.DB, userID *uint, action string, entityName string, entityID string, oldValue, newValue interface{}) error {
	args := m.Called(ctx, tx, userID, action, entityName, entityID, oldValue, newValue)
	return args.Error(0)
}

func newAntreanTestFixture(t *testing.T) (AntreanUsecase, *MockPoliRepository, *MockAntreanRepository, *MockAuditService) {
	t.Helper()
	db, err := gorm.Open(tests.DummyDialector{}, &gorm.Config{})
	require.NoError(t, err)

	poliRepo := new(MockPoliRepository)
	antreanRepo := new(MockAntreanRepository)
	audit := new(MockAuditService)

	// The counter service is only reached on the fresh-join path, which
	// the DB-backed integration tests cover.
	uc := NewAntreanUsecase(db, logrus.New(), poliRepo, antreanRepo, nil, audit)
	return uc, poliRepo, antreanRepo, audit
}

func TestDaftar_PoliNotFound(t *testing.T) {
	uc, poliRepo, _, _ := newAntreanTestFixture(t)

	poliRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, nil)

	_, err := uc.Daftar(context.Background(), 1, 99)

	assert.ErrorIs(t, err, ErrPoliNotFound)
}

func TestDaftar_IdempotentRejoin(t *testing.T) {
	uc, poliRepo, antreanRepo, _ := newAntreanTestFixture(t)

	poli := &entity.Poli{ID: 2, Nama: "Umum"}
	existing := &entity.Antrean{ID: 10, PoliID: 2, PasienID: 5, NomorAntrean: 4, Status: entity.AntreanStatusMenunggu}

	poliRepo.On("FindByID", mock.Anything, uint(2)).Return(poli, nil)
	antreanRepo.On("FindWaiting", mock.Anything, uint(2), uint(5)).Return(existing, nil)

	resp, err := uc.Daftar(context.Background(), 5, 2)

	require.NoError(t, err)
	assert.Equal(t, "Anda sudah terdaftar", resp.Message)
	assert.Equal(t, 4, resp.NomorAntrean)

	// No new row, no counter allocation, no audit entry.
	antreanRepo.AssertNotCalled(t, "Create")
}

func TestSelesai_MarksEntryDone(t *testing.T) {
	uc, _, antreanRepo, audit := newAntreanTestFixture(t)

	antreanRepo.On("MarkSelesai", mock.Anything, uint(7)).Return(int64(1), nil)
	audit.On("RecordChange", mock.Anything, mock.Anything, mock.Anything, entity.AuditActionAntreanSelesai,
		"antrean", "7", "menunggu", "selesai").Return(nil)

	err := uc.Selesai(context.Background(), 1, 7)

	require.NoError(t, err)
	audit.AssertExpectations(t)
}

func TestSelesai_NotFound(t *testing.T) {
	uc, _, antreanRepo, audit := newAntreanTestFixture(t)

	antreanRepo.On("MarkSelesai", mock.Anything, uint(7)).Return(int64(0), nil)

	err := uc.Selesai(context.Background(), 1, 7)

	assert.ErrorIs(t, err, ErrAntreanNotFound)
	audit.AssertNotCalled(t, "RecordChange")
}
