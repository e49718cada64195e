//go:build integration
// +build integration

package usecase

import (
	"context"
	"fmt"
	"os"
	"testing"
	"time"

	"puskesmas-frontdesk/internal/delivery/dto"
	"puskesmas-frontdesk/internal/domain/entity"
	"puskesmas-frontdesk/internal/repository"
	"puskesmas-frontdesk/internal/service"
	"puskesmas-frontdesk/pkg/session"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func flowTestEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func flowTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf(
		"host=%s user=%s password=%s dbname=%s port=%s sslmode=disable TimeZone=Asia/Jakarta",
		flowTestEnv("TEST_DB_HOST", "localhost"),
		flowTestEnv("TEST_DB_USER", "postgres"),
		flowTestEnv("TEST_DB_PASSWORD", "postgres"),
		flowTestEnv("TEST_DB_NAME", "puskesmas_test"),
		flowTestEnv("TEST_DB_PORT", "5432"),
	)

	db, err := gorm.Open(gormPostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Skipf("Skipping integration test: cannot connect to database: %v", err)
		return nil
	}

	if err := db.AutoMigrate(&entity.User{}, &entity.Poli{}, &entity.JadwalDokter{}, &entity.Antrean{}, &entity.AuditLog{}); err != nil {
		t.Fatalf("migrate test schema: %v", err)
	}

	return db
}

func flowTestRedis(t *testing.T) *redis.Client {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: fmt.Sprintf("%s:%s", flowTestEnv("TEST_REDIS_HOST", "localhost"), flowTestEnv("TEST_REDIS_PORT", "6379")),
		DB:   1,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		t.Skipf("Skipping integration test: cannot ping redis: %v", err)
		return nil
	}

	return client
}

// Full front-desk path against real storage: register, login, join a queue,
// have an admin complete the entry, then join again. The second entry must
// get the next number, never a reused one.
func TestFrontdeskFlow_RegisterLoginJoinCompleteRejoin(t *testing.T) {
	db := flowTestDB(t)
	redisClient := flowTestRedis(t)
	log := logrus.New()
	ctx := context.Background()

	userRepo := repository.NewUserRepository()
	poliRepo := repository.NewPoliRepository()
	antreanRepo := repository.NewAntreanRepository()
	auditRepo := repository.NewAuditLogRepository()

	sessions := session.NewStore()
	audit := service.NewAuditService(db, log, auditRepo)
	counter := service.NewQueueCounterService(db, redisClient, log, antreanRepo)

	authUC := NewAuthUsecase(db, log, userRepo, sessions, audit)
	antreanUC := NewAntreanUsecase(db, log, poliRepo, antreanRepo, counter, audit)

	stamp := time.Now().UnixNano()
	poli := entity.Poli{Nama: fmt.Sprintf("Poli Flow %d", stamp)}
	require.NoError(t, db.Create(&poli).Error)

	admin := entity.User{Username: fmt.Sprintf("admin-%d", stamp), Password: "x", Role: entity.RoleAdmin}
	require.NoError(t, db.Create(&admin).Error)

	var pasienID uint
	t.Cleanup(func() {
		counter.Stop()
		sessions.Close()
		db.Where("poli_id = ?", poli.ID).Delete(&entity.Antrean{})
		db.Where("user_id IN ?", []uint{pasienID, admin.ID}).Delete(&entity.AuditLog{})
		db.Where("id IN ?", []uint{pasienID, admin.ID}).Delete(&entity.User{})
		db.Delete(&poli)
		redisClient.Del(context.Background(), service.RedisCounterKeyPrefix+fmt.Sprint(poli.ID))
		redisClient.Close()
	})

	require.NoError(t, counter.ResetForPoli(ctx, poli.ID))

	// Register opens a session for the new patient.
	username := fmt.Sprintf("pasien-%d", stamp)
	registered, regToken, err := authUC.Register(ctx, &dto.RegisterRequest{Username: username, Password: "rahasia"})
	require.NoError(t, err)
	require.NotEmpty(t, regToken)
	pasienID = registered.ID

	// Login opens a second, independent session.
	_, loginToken, err := authUC.Login(ctx, &dto.LoginRequest{Username: username, Password: "rahasia"})
	require.NoError(t, err)
	require.NotEqual(t, regToken, loginToken)

	sessionUserID, ok := sessions.Lookup(loginToken)
	require.True(t, ok)
	assert.Equal(t, registered.ID, sessionUserID)

	// First join gets number 1 on a fresh poli.
	first, err := antreanUC.Daftar(ctx, sessionUserID, poli.ID)
	require.NoError(t, err)
	assert.Equal(t, "Berhasil daftar antrean", first.Message)
	assert.Equal(t, 1, first.NomorAntrean)

	// Joining again while still waiting returns the same number.
	again, err := antreanUC.Daftar(ctx, sessionUserID, poli.ID)
	require.NoError(t, err)
	assert.Equal(t, "Anda sudah terdaftar", again.Message)
	assert.Equal(t, 1, again.NomorAntrean)

	waiting, err := antreanRepo.FindWaiting(db, poli.ID, sessionUserID)
	require.NoError(t, err)
	require.NotNil(t, waiting)

	require.NoError(t, antreanUC.Selesai(ctx, admin.ID, waiting.ID))

	done, err := antreanRepo.FindByID(db, waiting.ID)
	require.NoError(t, err)
	require.NotNil(t, done)
	assert.Equal(t, entity.AntreanStatusSelesai, done.Status)

	// Rejoining after completion issues the next number, not a reused one.
	second, err := antreanUC.Daftar(ctx, sessionUserID, poli.ID)
	require.NoError(t, err)
	assert.Equal(t, "Berhasil daftar antrean", second.Message)
	assert.Equal(t, 2, second.NomorAntrean)
}
