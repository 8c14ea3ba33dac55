// Package reportstore keeps the denormalized bootcamp report documents in
// redis, one JSON value per bootcamp id. Everything here is best-effort side
// data; callers log failures and move on.
package reportstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Paolahz1/bootcamp-capability/internal/domain"
	"github.com/Paolahz1/bootcamp-capability/internal/platform/logger"
)

const keyPrefix = "bootcamp_report:"

type Store interface {
	Save(ctx context.Context, report *domain.BootcampReport) error
	// GetByBootcampID returns (nil, nil) when no report exists.
	GetByBootcampID(ctx context.Context, bootcampID int64) (*domain.BootcampReport, error)
	DeleteByBootcampID(ctx context.Context, bootcampID int64) error
}

type store struct {
	rdb *redis.Client
	log *logger.Logger
}

// NewFromEnv connects using REDIS_ADDR / REDIS_PASSWORD / REDIS_DB and pings
// before returning.
func NewFromEnv(baseLog *logger.Logger) (Store, error) {
	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}

	rdb := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return New(rdb, baseLog), nil
}

func New(rdb *redis.Client, baseLog *logger.Logger) Store {
	return &store{rdb: rdb, log: baseLog.With("service", "ReportStore")}
}

func key(bootcampID int64) string {
	return fmt.Sprintf("%s%d", keyPrefix, bootcampID)
}

func (s *store) Save(ctx context.Context, report *domain.BootcampReport) error {
	raw, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	if err := s.rdb.Set(ctx, key(report.BootcampID), raw, 0).Err(); err != nil {
		return fmt.Errorf("save report: %w", err)
	}
	return nil
}

func (s *store) GetByBootcampID(ctx context.Context, bootcampID int64) (*domain.BootcampReport, error) {
	raw, err := s.rdb.Get(ctx, key(bootcampID)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load report: %w", err)
	}
	var report domain.BootcampReport
	if err := json.Unmarshal(raw, &report); err != nil {
		return nil, fmt.Errorf("decode report: %w", err)
	}
	return &report, nil
}

func (s *store) DeleteByBootcampID(ctx context.Context, bootcampID int64) error {
	if err := s.rdb.Del(ctx, key(bootcampID)).Err(); err != nil {
		return fmt.Errorf("delete report: %w", err)
	}
	return nil
}
