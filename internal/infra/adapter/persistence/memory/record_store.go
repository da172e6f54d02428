// Package memory provides in-memory implementations of repository interfaces.
// The record corpus lives entirely in process memory and is discarded on shutdown.
package memory

import (
	"context"
	"fmt"
	"math/rand/v2"
	"sync"
	"time"

	"scrollfeed/internal/domain/entity"
	"scrollfeed/internal/repository"
)

// maxBackdate bounds how far in the past seeded records are stamped.
const maxBackdate = 10_000_000 * time.Second

// Generator builds the record stored under id.
// fresh is true for records inserted at the head after seeding.
type Generator func(id int64, fresh bool, now time.Time) entity.Record

// DefaultGenerator produces "Item <id>" records with a sample description.
// Seeded records get a random creation time within the last ~115 days, fresh ones are stamped now.
func DefaultGenerator(id int64, fresh bool, now time.Time) entity.Record {
	createdAt := now
	if !fresh {
		createdAt = now.Add(-time.Duration(rand.Int64N(int64(maxBackdate))))
	}
	return entity.Record{
		ID:          id,
		Title:       fmt.Sprintf("Item %d", id),
		Description: fmt.Sprintf("This is a description for item %d. It contains some sample text to demonstrate the infinite scroll functionality.", id),
		CreatedAt:   createdAt.UTC(),
	}
}

// RecordStore implements repository.RecordStore on a guarded slice.
type RecordStore struct {
	mu      sync.RWMutex
	records []entity.Record
	maxID   int64
	gen     Generator
	now     func() time.Time
}

var _ repository.RecordStore = (*RecordStore)(nil)

// Option configures a RecordStore.
type Option func(*RecordStore)

// WithGenerator replaces DefaultGenerator.
func WithGenerator(g Generator) Option {
	return func(s *RecordStore) { s.gen = g }
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *RecordStore) { s.now = now }
}

// NewRecordStore creates an empty store. Call Seed to fill it.
func NewRecordStore(opts ...Option) *RecordStore {
	s := &RecordStore{gen: DefaultGenerator, now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Seed replaces the corpus with n records whose ids run 1..n in corpus order.
func (s *RecordStore) Seed(n int) {
	now := s.now()
	records := make([]entity.Record, 0, max(n, 0))
	for i := 1; i <= n; i++ {
		records = append(records, s.gen(int64(i), false, now))
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.records = records
	s.maxID = int64(max(n, 0))
}

// Slice returns a copy of the records in [offset, offset+limit) and the corpus size.
func (s *RecordStore) Slice(ctx context.Context, offset, limit int) ([]entity.Record, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}
	if offset < 0 || limit < 0 {
		return nil, 0, fmt.Errorf("Slice: offset %d limit %d: %w", offset, limit, entity.ErrInvalidInput)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	total := len(s.records)
	if offset >= total {
		return []entity.Record{}, total, nil
	}
	end := min(offset+limit, total)
	out := make([]entity.Record, end-offset)
	copy(out, s.records[offset:end])
	return out, total, nil
}

// Count returns the corpus size.
func (s *RecordStore) Count(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records), nil
}

// InsertHead prepends n freshly generated records, newest (highest id) first.
func (s *RecordStore) InsertHead(ctx context.Context, n int) ([]entity.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, fmt.Errorf("InsertHead: n=%d: %w", n, entity.ErrInvalidInput)
	}
	if n == 0 {
		return []entity.Record{}, nil
	}

	now := s.now()

	s.mu.Lock()
	defer s.mu.Unlock()

	fresh := make([]entity.Record, n)
	for i := 0; i < n; i++ {
		fresh[i] = s.gen(s.maxID+int64(n-i), true, now)
	}
	s.maxID += int64(n)

	merged := make([]entity.Record, 0, len(fresh)+len(s.records))
	merged = append(merged, fresh...)
	s.records = append(merged, s.records...)

	out := make([]entity.Record, n)
	copy(out, fresh)
	return out, nil
}
