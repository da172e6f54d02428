package scroll

import (
	"context"
	"errors"
	"fmt"

	"scrollfeed/internal/domain/entity"
)

var (
	// ErrProviderUnavailable marks a fetch that failed for reasons other than a bad request.
	// The feed keeps its records and cursor so the same page is retried on the next trigger.
	ErrProviderUnavailable = errors.New("page provider unavailable")

	// ErrClosed is returned by fetch operations on a closed feed.
	ErrClosed = errors.New("feed closed")
)

// classify wraps provider errors so callers can tell bad requests from outages.
func classify(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, entity.ErrInvalidPage), errors.Is(err, ErrProviderUnavailable):
		return err
	default:
		return fmt.Errorf("%w: %w", ErrProviderUnavailable, err)
	}
}

// cancelled reports whether err only says that the caller gave up.
func cancelled(ctx context.Context, err error) bool {
	return ctx.Err() != nil && errors.Is(err, context.Canceled)
}
