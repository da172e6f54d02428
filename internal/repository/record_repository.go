package repository

import (
	"context"

	"scrollfeed/internal/domain/entity"
)

// RecordStore is the backing corpus a page provider slices pages from.
// The corpus is ordered newest-first; inserting at the head shifts every page boundary.
type RecordStore interface {
	// Slice returns a copy of the records in [offset, offset+limit) together with the
	// corpus size observed at the same instant. Offsets past the end yield an empty slice.
	Slice(ctx context.Context, offset, limit int) ([]entity.Record, int, error)
	// Count returns the current corpus size.
	Count(ctx context.Context) (int, error)
	// InsertHead generates n new records and prepends them to the corpus.
	// The returned records are in corpus order (newest first).
	InsertHead(ctx context.Context, n int) ([]entity.Record, error)
}
