package status

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no stage has been recorded for an export id
// (or the entry has expired).
var ErrNotFound = errors.New("no status recorded for export")

// Store keeps the latest progress stage per export id in Redis, with a TTL so
// entries are ephemeral. This is visibility only, not a durable job record:
// nothing is replayed from it and losing it is harmless.
//
// A nil *Store is valid and records nothing, so callers don't have to branch
// on whether Redis is configured.
type Store struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewStore(addr, password string, db int, ttl time.Duration) *Store {
	if addr == "" {
		return nil
	}

	return &Store{
		rdb: redis.NewClient(&redis.Options{
			Addr:     addr,
			Password: password,
			DB:       db,
		}),
		ttl: ttl,
	}
}

// Set records the current stage for an export. Failures are logged and
// swallowed; progress reporting never affects the export itself.
func (s *Store) Set(ctx context.Context, exportID, stage string) {
	if s == nil {
		return
	}
	if err := s.rdb.Set(ctx, key(exportID), stage, s.ttl).Err(); err != nil {
		log.Printf("Failed to record status for export %s: %v", exportID, err)
	}
}

// Get returns the last recorded stage for an export.
func (s *Store) Get(ctx context.Context, exportID string) (string, error) {
	if s == nil {
		return "", ErrNotFound
	}
	stage, err := s.rdb.Get(ctx, key(exportID)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return stage, nil
}

// Close releases the Redis connection.
func (s *Store) Close() error {
	if s == nil {
		return nil
	}
	return s.rdb.Close()
}

func key(exportID string) string {
	return "viralshorts:export:" + exportID
}
