// Package record implements the page provider over the in-memory corpus.
package record

import (
	"context"
	"fmt"
	"time"

	"scrollfeed/internal/common/pagination"
	"scrollfeed/internal/domain/entity"
	"scrollfeed/internal/observability/tracing"
	"scrollfeed/internal/repository"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

const (
	// DefaultLatency is the simulated provider round trip.
	DefaultLatency = 500 * time.Millisecond

	// DefaultRefreshInsertCount is how many records a refresh of page 1 materializes.
	DefaultRefreshInsertCount = 20
)

// Service serves pages of the corpus.
// Latency is applied to every successful page request and is interrupted by ctx.
type Service struct {
	Repo               repository.RecordStore
	Latency            time.Duration
	RefreshInsertCount int
}

// FetchPage returns the records of req.Page.
// Invalid requests fail with entity.ErrInvalidPage before the corpus is touched.
// A refresh of page 1 inserts RefreshInsertCount new records at the head first.
func (s *Service) FetchPage(ctx context.Context, req entity.PageRequest) (entity.FetchResult, error) {
	if err := entity.ValidatePage(req.Page, req.Limit); err != nil {
		return entity.FetchResult{}, err
	}

	ctx, span := tracing.GetTracer().Start(ctx, "record.FetchPage")
	defer span.End()
	span.SetAttributes(
		attribute.Int("page", req.Page),
		attribute.Int("limit", req.Limit),
		attribute.Bool("refresh", req.Refresh),
	)

	if req.Refresh && req.Page == 1 && s.RefreshInsertCount > 0 {
		if _, err := s.Repo.InsertHead(ctx, s.RefreshInsertCount); err != nil {
			span.SetStatus(codes.Error, err.Error())
			return entity.FetchResult{}, fmt.Errorf("insert on refresh: %w", err)
		}
	}

	if err := s.wait(ctx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return entity.FetchResult{}, err
	}

	offset := pagination.CalculateOffset(req.Page, req.Limit)
	records, total, err := s.Repo.Slice(ctx, offset, req.Limit)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return entity.FetchResult{}, fmt.Errorf("slice page %d: %w", req.Page, err)
	}

	span.SetAttributes(attribute.Int("records", len(records)), attribute.Int("total_count", total))
	return entity.FetchResult{
		Records:    records,
		HasMore:    pagination.HasMore(req.Page, req.Limit, total),
		TotalCount: total,
	}, nil
}

// InsertNewRecords prepends count new records to the corpus.
func (s *Service) InsertNewRecords(ctx context.Context, count int) ([]entity.Record, error) {
	if count < 0 {
		return nil, fmt.Errorf("count %d: %w", count, ErrInvalidCount)
	}
	records, err := s.Repo.InsertHead(ctx, count)
	if err != nil {
		return nil, fmt.Errorf("insert records: %w", err)
	}
	return records, nil
}

// Count returns the corpus size.
func (s *Service) Count(ctx context.Context) (int, error) {
	n, err := s.Repo.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("count records: %w", err)
	}
	return n, nil
}

func (s *Service) wait(ctx context.Context) error {
	if s.Latency <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(s.Latency)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
