// Package scroll implements the client side of an infinite-scroll list: a pagination
// state machine that merges provider pages into one deduplicated record sequence.
//
// A Feed starts from an initial page and grows through three fetch operations:
// LoadMore appends the next page, Refresh prepends records that appeared at the head
// of the corpus, and HardReload replaces everything with page 1. At most one fetch is
// outstanding at a time; triggers that arrive while a fetch runs are dropped.
package scroll

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"scrollfeed/internal/autorefresh"
	"scrollfeed/internal/domain/entity"
	"scrollfeed/internal/observability/metrics"
	"scrollfeed/internal/observability/tracing"

	"github.com/samber/lo"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// PageProvider serves pages of the corpus.
type PageProvider interface {
	FetchPage(ctx context.Context, req entity.PageRequest) (entity.FetchResult, error)
}

const (
	opLoadMore   = "load_more"
	opRefresh    = "refresh"
	opHardReload = "hard_reload"
)

// Feed is the pagination state machine. It is safe for concurrent use.
type Feed struct {
	provider      PageProvider
	limit         int
	refreshSignal bool
	minSpinner    time.Duration
	interval      time.Duration
	schedOpts     []autorefresh.Option
	logger        *slog.Logger
	scheduler     *autorefresh.Scheduler

	// lifecycle is cancelled by Close and bounds every fetch.
	lifecycle context.Context
	cancel    context.CancelFunc

	mu         sync.Mutex
	initial    State
	state      State
	generation uint64
	version    uint64
	inflight   context.CancelFunc
	closed     bool
	subs       map[uint64]func(State)
	nextSub    uint64

	pubMu     sync.Mutex
	published uint64
}

// NewFeed creates an idle feed seeded with initial, the result of the initial page.
func NewFeed(provider PageProvider, initial entity.FetchResult, opts ...Option) *Feed {
	f := &Feed{
		provider: provider,
		limit:    DefaultLimit,
		interval: autorefresh.DefaultInterval,
		logger:   slog.Default(),
		subs:     make(map[uint64]func(State)),
		initial:  State{Cursor: 1},
	}
	for _, opt := range opts {
		opt(f)
	}

	f.initial.Records = Merge(nil, initial.Records, Append)
	f.initial.HasMore = initial.HasMore
	f.initial.TotalCount = initial.TotalCount
	f.state = f.initial.clone()

	f.lifecycle, f.cancel = context.WithCancel(context.Background())
	f.scheduler = autorefresh.New(f.interval, f.autoRefreshTick,
		append([]autorefresh.Option{autorefresh.WithLogger(f.logger)}, f.schedOpts...)...)

	metrics.UpdateRecordsLoaded(len(f.state.Records))
	return f
}

// Load fetches the initial page from provider and returns a feed seeded with it.
func Load(ctx context.Context, provider PageProvider, opts ...Option) (*Feed, error) {
	settings := &Feed{limit: DefaultLimit, initial: State{Cursor: 1}}
	for _, opt := range opts {
		opt(settings)
	}
	res, err := provider.FetchPage(ctx, entity.PageRequest{Page: settings.initial.Cursor, Limit: settings.limit})
	if err != nil {
		return nil, classify(err)
	}
	return NewFeed(provider, res, opts...), nil
}

// State returns a snapshot of the feed.
func (f *Feed) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state.clone()
}

// Limit returns the page size the feed requests.
func (f *Feed) Limit() int {
	return f.limit
}

// Subscribe registers fn to receive every state change. Snapshots are delivered in
// order, though a subscriber may miss intermediate ones under contention. fn runs
// synchronously on the goroutine that changed the state: it must not block, must not
// call back into the feed, and must treat the snapshot as read-only.
func (f *Feed) Subscribe(fn func(State)) (cancel func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.closed {
		return func() {}
	}
	id := f.nextSub
	f.nextSub++
	f.subs[id] = fn
	return func() {
		f.mu.Lock()
		delete(f.subs, id)
		f.mu.Unlock()
	}
}

// LoadMore fetches the page after the cursor and appends its new records.
// It does nothing unless the feed is idle and HasMore is true.
func (f *Feed) LoadMore(ctx context.Context) error {
	return f.run(ctx, fetchOp{
		name:     opLoadMore,
		status:   StatusLoadingMore,
		needMore: true,
		request: func(s State) entity.PageRequest {
			return entity.PageRequest{Page: s.Cursor + 1, Limit: f.limit}
		},
		apply: func(s *State, req entity.PageRequest, res entity.FetchResult) int {
			before := len(s.Records)
			s.Records = Merge(s.Records, res.Records, Append)
			s.Cursor = req.Page
			s.HasMore = res.HasMore
			s.TotalCount = res.TotalCount
			return len(s.Records) - before
		},
	})
}

// Refresh refetches page 1 and prepends records the feed does not hold yet.
// Cursor and HasMore are kept. It does nothing unless the feed is idle.
func (f *Feed) Refresh(ctx context.Context) error {
	return f.run(ctx, fetchOp{
		name:   opRefresh,
		status: StatusRefreshing,
		request: func(State) entity.PageRequest {
			return entity.PageRequest{Page: 1, Limit: f.limit, Refresh: f.refreshSignal}
		},
		apply: func(s *State, _ entity.PageRequest, res entity.FetchResult) int {
			before := len(s.Records)
			s.Records = Merge(s.Records, res.Records, Prepend)
			s.TotalCount = res.TotalCount
			return len(s.Records) - before
		},
	})
}

// HardReload refetches page 1 and replaces all records with it.
// It does nothing unless the feed is idle.
func (f *Feed) HardReload(ctx context.Context) error {
	return f.run(ctx, fetchOp{
		name:   opHardReload,
		status: StatusRefreshing,
		request: func(State) entity.PageRequest {
			return entity.PageRequest{Page: 1, Limit: f.limit, Refresh: f.refreshSignal}
		},
		apply: func(s *State, _ entity.PageRequest, res entity.FetchResult) int {
			s.Records = Merge(nil, res.Records, Append)
			s.Cursor = 1
			s.HasMore = res.HasMore
			s.TotalCount = res.TotalCount
			return len(s.Records)
		},
	})
}

// Reset restores the initial records, cursor, HasMore and TotalCount, clears the error
// and turns auto-refresh off. A fetch in flight is cancelled and its result discarded.
// Reset never contacts the provider.
func (f *Feed) Reset() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.generation++
	if f.inflight != nil {
		f.inflight()
		f.inflight = nil
	}
	f.scheduler.StopAsync()
	f.state = f.initial.clone()
	snap, v := f.snapshotLocked()
	f.mu.Unlock()

	f.logger.Debug("feed reset", slog.Int("records", len(snap.Records)))
	metrics.UpdateRecordsLoaded(len(snap.Records))
	f.publish(snap, v)
}

// ToggleAutoRefresh flips auto-refresh and returns the new setting.
// Enabling it starts the periodic Refresh; no fetch happens immediately.
func (f *Feed) ToggleAutoRefresh() bool {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return false
	}
	on := !f.state.AutoRefresh
	f.state.AutoRefresh = on
	if on {
		f.scheduler.Start()
	} else {
		f.scheduler.StopAsync()
	}
	snap, v := f.snapshotLocked()
	f.mu.Unlock()

	f.logger.Info("auto-refresh toggled", slog.Bool("enabled", on))
	f.publish(snap, v)
	return on
}

// AutoRefreshRunning reports whether the auto-refresh timer is ticking.
func (f *Feed) AutoRefreshRunning() bool {
	return f.scheduler.Running()
}

// Close stops auto-refresh, cancels any fetch in flight and drops all subscribers.
// Results that arrive afterwards are discarded. Close waits for a running
// auto-refresh tick to return. Later calls on the feed do nothing.
func (f *Feed) Close() {
	f.mu.Lock()
	if f.closed {
		f.mu.Unlock()
		return
	}
	f.closed = true
	f.generation++
	f.state.AutoRefresh = false
	f.subs = make(map[uint64]func(State))
	done := f.scheduler.StopAsync()
	f.mu.Unlock()

	f.cancel()
	<-done.Done()
	f.logger.Debug("feed closed")
}

func (f *Feed) autoRefreshTick() {
	metrics.RecordAutoRefreshTick()
	err := f.Refresh(f.lifecycle)
	if err != nil && !errors.Is(err, ErrClosed) {
		f.logger.Warn("auto-refresh failed", slog.Any("error", err))
	}
}

// fetchOp describes one fetch operation.
type fetchOp struct {
	name     string
	status   Status
	needMore bool
	request  func(State) entity.PageRequest
	// apply merges res into s and returns the number of records added.
	apply func(s *State, req entity.PageRequest, res entity.FetchResult) int
}

func (f *Feed) run(ctx context.Context, op fetchOp) error {
	f.mu.Lock()
	switch {
	case f.closed:
		f.mu.Unlock()
		metrics.RecordTriggerDropped(op.name, "closed")
		return ErrClosed
	case !f.state.Idle():
		f.mu.Unlock()
		metrics.RecordTriggerDropped(op.name, "busy")
		return nil
	case op.needMore && !f.state.HasMore:
		f.mu.Unlock()
		metrics.RecordTriggerDropped(op.name, "exhausted")
		return nil
	}

	req := op.request(f.state)
	gen := f.generation
	fetchCtx, cancelFetch := context.WithCancel(ctx)
	defer cancelFetch()
	f.inflight = cancelFetch
	f.state.Status = op.status
	snap, v := f.snapshotLocked()
	f.mu.Unlock()
	f.publish(snap, v)

	res, err := f.fetch(fetchCtx, op.name, req)

	f.mu.Lock()
	if f.closed || gen != f.generation {
		f.mu.Unlock()
		metrics.RecordStaleResult()
		metrics.RecordFeedFetch(op.name, "stale")
		f.logger.Debug("discarding stale page", slog.String("op", op.name), slog.Int("page", req.Page))
		return nil
	}
	f.inflight = nil
	f.state.Status = StatusIdle

	if err != nil {
		if cancelled(ctx, err) {
			snap, v := f.snapshotLocked()
			f.mu.Unlock()
			f.publish(snap, v)
			return err
		}
		failure := classify(err)
		f.state.Err = failure
		snap, v := f.snapshotLocked()
		f.mu.Unlock()

		metrics.RecordFeedFetch(op.name, "failure")
		f.logger.Warn("page fetch failed",
			slog.String("op", op.name),
			slog.Int("page", req.Page),
			slog.Any("error", failure))
		f.publish(snap, v)
		return failure
	}

	added := op.apply(&f.state, req, res)
	f.state.Err = nil
	snap, v = f.snapshotLocked()
	f.mu.Unlock()

	metrics.RecordFeedFetch(op.name, "success")
	metrics.RecordMerge(placementOf(op.name), added, max(len(res.Records)-added, 0))
	metrics.UpdateRecordsLoaded(len(snap.Records))
	f.logger.Debug("page merged",
		slog.String("op", op.name),
		slog.Int("page", req.Page),
		slog.Int("added", added),
		slog.Int("records", len(snap.Records)),
		slog.Int("cursor", snap.Cursor),
		slog.Bool("has_more", snap.HasMore))
	f.publish(snap, v)
	return nil
}

func (f *Feed) fetch(ctx context.Context, op string, req entity.PageRequest) (entity.FetchResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	stopLifecycle := context.AfterFunc(f.lifecycle, cancel)
	defer stopLifecycle()

	ctx, span := tracing.GetTracer().Start(ctx, "scroll."+op, trace.WithAttributes(
		attribute.Int("page", req.Page),
		attribute.Int("limit", req.Limit),
		attribute.Bool("refresh", req.Refresh),
	))
	defer span.End()

	start := time.Now()
	res, err := f.provider.FetchPage(ctx, req)
	metrics.RecordFeedFetchDuration(op, time.Since(start))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
	} else {
		span.SetAttributes(attribute.Int("records", len(res.Records)), attribute.Bool("has_more", res.HasMore))
	}

	if wait := f.minSpinner - time.Since(start); wait > 0 {
		t := time.NewTimer(wait)
		select {
		case <-t.C:
		case <-ctx.Done():
			t.Stop()
		}
	}
	return res, err
}

func (f *Feed) snapshotLocked() (State, uint64) {
	f.version++
	return f.state.clone(), f.version
}

// publish delivers snap to the subscribers unless a newer snapshot was already delivered.
func (f *Feed) publish(snap State, version uint64) {
	f.pubMu.Lock()
	defer f.pubMu.Unlock()
	if version <= f.published {
		return
	}
	f.published = version

	f.mu.Lock()
	subs := lo.Values(f.subs)
	f.mu.Unlock()

	for _, fn := range subs {
		fn(snap)
	}
}

func placementOf(op string) string {
	if op == opRefresh {
		return Prepend.String()
	}
	return Append.String()
}
