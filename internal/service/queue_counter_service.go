package service

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"puskesmas-frontdesk/internal/domain/entity"
	"puskesmas-frontdesk/internal/domain/repository"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// seedAndIncrScript allocates the next queue number. SETNX seeds the counter
// with the database maximum when the key is missing (Redis flushed or the
// poli was never seen), then INCR hands out the next number. Both steps run
// atomically inside Redis, so concurrent joins for the same poli never
// receive the same number.
var seedAndIncrScript = redis.NewScript(`
	redis.call('SETNX', KEYS[1], ARGV[1])
	return redis.call('INCR', KEYS[1])
`)

const (
	// Redis key prefix for per-poli queue counters
	RedisCounterKeyPrefix = "antrean:counter:"

	// Batch size for startup sync
	syncBatchSize = 500

	// Interval for cleaning up stale mutexes
	mutexCleanupInterval = 10 * time.Minute

	// How long a mutex must be unused before cleanup
	mutexStaleThreshold = 10 * time.Minute
)

// QueueCounterService owns the per-poli queue-number counters in Redis.
//
// Counters are monotonically increasing and never reused: completion only
// changes an entry's status, it never decrements the counter. The counter is
// the single serialization point for number allocation, replacing the racy
// read-max-then-insert pattern.
type QueueCounterService struct {
	db          *gorm.DB
	redisClient *redis.Client
	log         *logrus.Logger
	antreanRepo repository.AntreanRepository

	// Per-poli mutex guarding counter seeding
	poliMu sync.Map // map[uint]*mutexWithTimestamp

	// Graceful shutdown
	stopChan chan struct{}
	wg       sync.WaitGroup
	stopped  atomic.Bool
}

// mutexWithTimestamp tracks mutex usage for cleanup
type mutexWithTimestamp struct {
	mu       sync.Mutex
	lastUsed atomic.Int64 // Unix timestamp
}

// counterRow holds one poli's counter seed from the database
type counterRow struct {
	PoliID   uint
	MaxNomor int
}

// NewQueueCounterService creates the service and starts the background mutex
// cleanup goroutine. Call Stop() during graceful shutdown.
func NewQueueCounterService(db *gorm.DB, redisClient *redis.Client, log *logrus.Logger, antreanRepo repository.AntreanRepository) *QueueCounterService {
	svc := &QueueCounterService{
		db:          db,
		redisClient: redisClient,
		log:         log,
		antreanRepo: antreanRepo,
		stopChan:    make(chan struct{}),
	}

	svc.wg.Add(1)
	go svc.cleanupMutexMapLoop()

	return svc
}

// Stop gracefully shuts down the service. Safe to call multiple times.
func (s *QueueCounterService) Stop() {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopChan)
		s.wg.Wait()
		s.log.Info("QueueCounterService stopped")
	}
}

// SyncOnStartup seeds every poli's counter from MAX(nomor_antrean) across
// all-time entries. Processed in batches with a fresh pipeline per batch.
// Should be called before accepting traffic.
func (s *QueueCounterService) SyncOnStartup(ctx context.Context) error {
	s.log.Info("Seeding queue counters from database...")
	startTime := time.Now()

	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	offset := 0
	totalSynced := 0

	for {
		var rows []counterRow

		err := s.db.WithContext(ctx).Model(&entity.Poli{}).
			Select("poli.id as poli_id, COALESCE(MAX(antrean.nomor_antrean), 0) as max_nomor").
			Joins("LEFT JOIN antrean ON antrean.poli_id = poli.id").
			Group("poli.id").
			Order("poli.id").
			Limit(syncBatchSize).
			Offset(offset).
			Scan(&rows).Error
		if err != nil {
			return fmt.Errorf("query counters at offset %d: %w", offset, err)
		}

		if len(rows) == 0 {
			if offset == 0 {
				s.log.Info("No poli found for counter sync")
			}
			break
		}

		pipe := s.redisClient.TxPipeline()
		for _, row := range rows {
			pipe.Set(ctx, counterKey(row.PoliID), row.MaxNomor, 0)
		}
		if _, err := pipe.Exec(ctx); err != nil {
			return fmt.Errorf("pipeline exec at offset %d: %w", offset, err)
		}

		totalSynced += len(rows)

		if len(rows) < syncBatchSize {
			break
		}
		offset += syncBatchSize

		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
	}

	s.log.Infof("Queue counter sync completed: %d poli in %v", totalSynced, time.Since(startTime))
	return nil
}

// NextNomor atomically allocates the next queue number for a poli. The Lua
// script seeds a missing counter from the database maximum before
// incrementing, so numbers stay strictly increasing even after a Redis
// flush.
func (s *QueueCounterService) NextNomor(ctx context.Context, poliID uint) (int, error) {
	key := counterKey(poliID)

	seed, err := s.counterSeed(ctx, poliID)
	if err != nil {
		return 0, err
	}

	nomor, err := seedAndIncrScript.Run(ctx, s.redisClient, []string{key}, seed).Int()
	if err != nil {
		s.log.Warnf("Failed Lua seed-and-incr for poli %d: %+v", poliID, err)
		return 0, fmt.Errorf("allocate nomor for poli %d: %w", poliID, err)
	}

	return nomor, nil
}

// ResetForPoli removes a poli's counter so the next allocation reseeds from
// the database. Used by maintenance paths and tests.
func (s *QueueCounterService) ResetForPoli(ctx context.Context, poliID uint) error {
	mt := s.getPoliMutex(poliID)
	mt.mu.Lock()
	defer func() {
		mt.mu.Unlock()
		s.poliMu.Delete(poliID)
	}()

	if err := s.redisClient.Del(ctx, counterKey(poliID)).Err(); err != nil {
		return fmt.Errorf("delete counter for poli %d: %w", poliID, err)
	}
	return nil
}

// counterSeed returns MAX(nomor_antrean) for the poli, 0 when no entry
// exists. Guarded by the per-poli mutex so concurrent first joins do not
// stampede the database; the SETNX in the Lua script keeps correctness even
// if two instances race.
func (s *QueueCounterService) counterSeed(ctx context.Context, poliID uint) (int, error) {
	mt := s.getPoliMutex(poliID)
	mt.mu.Lock()
	defer mt.mu.Unlock()

	max, err := s.antreanRepo.MaxNomor(s.db.WithContext(ctx), poliID)
	if err != nil {
		return 0, fmt.Errorf("query max nomor for poli %d: %w", poliID, err)
	}
	return max, nil
}

// getPoliMutex returns the mutex for a specific poli
func (s *QueueCounterService) getPoliMutex(poliID uint) *mutexWithTimestamp {
	mt, _ := s.poliMu.LoadOrStore(poliID, &mutexWithTimestamp{})
	result := mt.(*mutexWithTimestamp)
	result.lastUsed.Store(time.Now().Unix())
	return result
}

// cleanupMutexMapLoop runs in background to clean stale mutexes
func (s *QueueCounterService) cleanupMutexMapLoop() {
	defer s.wg.Done()

	ticker := time.NewTicker(mutexCleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopChan:
			return
		case <-ticker.C:
			s.cleanupStaleMutexes()
		}
	}
}

// cleanupStaleMutexes removes unused mutexes using TryLock for safety.
// The lastUsed check happens inside the lock so a concurrent user cannot
// be removed.
func (s *QueueCounterService) cleanupStaleMutexes() {
	cutoffTime := time.Now().Add(-mutexStaleThreshold).Unix()
	var cleaned int

	s.poliMu.Range(func(key, value any) bool {
		poliID, ok := key.(uint)
		if !ok {
			return true
		}

		mt, ok := value.(*mutexWithTimestamp)
		if !ok {
			return true
		}

		if mt.mu.TryLock() {
			if mt.lastUsed.Load() < cutoffTime {
				s.poliMu.Delete(poliID)
				cleaned++
			}
			mt.mu.Unlock()
		}
		return true
	})

	if cleaned > 0 {
		s.log.Debugf("Cleaned up %d stale mutexes", cleaned)
	}
}

func counterKey(poliID uint) string {
	return fmt.Sprintf("%s%d", RedisCounterKeyPrefix, poliID)
}
