package viewport

import (
	"context"
	"errors"
	"log/slog"
	"sync/atomic"

	"scrollfeed/internal/scroll"
)

// Pager is the part of scroll.Feed the trigger drives.
type Pager interface {
	State() scroll.State
	LoadMore(ctx context.Context) error
	Subscribe(fn func(scroll.State)) (cancel func())
}

// Trigger calls LoadMore whenever the sentinel is visible and the pager can load more.
// It is level-triggered: each completed page re-evaluates the condition, so a viewport
// taller than the loaded content keeps paging until it is filled or the corpus ends.
// After a failed fetch it stops re-evaluating. The sentinel scrolling back into view
// retries once, and so does a manual LoadMore.
type Trigger struct {
	pager    Pager
	source   VisibilitySource
	sentinel string
	logger   *slog.Logger

	visible atomic.Bool
	// entered is set when the sentinel goes from hidden to visible.
	entered atomic.Bool
	wake    chan struct{}
}

// TriggerOption configures a Trigger.
type TriggerOption func(*Trigger)

// WithSentinel sets the sentinel ID registered with the source.
func WithSentinel(id string) TriggerOption {
	return func(t *Trigger) { t.sentinel = id }
}

// WithTriggerLogger sets the logger.
func WithTriggerLogger(l *slog.Logger) TriggerOption {
	return func(t *Trigger) { t.logger = l }
}

// NewTrigger binds pager to source.
func NewTrigger(pager Pager, source VisibilitySource, opts ...TriggerOption) *Trigger {
	t := &Trigger{
		pager:    pager,
		source:   source,
		sentinel: DefaultSentinel,
		logger:   slog.Default(),
		wake:     make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Visible reports the last visibility signal received.
func (t *Trigger) Visible() bool {
	return t.visible.Load()
}

// Run evaluates the trigger condition on every visibility or pager change until ctx ends.
func (t *Trigger) Run(ctx context.Context) error {
	stopVisibility := t.source.OnVisibilityChange(t.sentinel, func(v bool) {
		if was := t.visible.Swap(v); v && !was {
			t.entered.Store(true)
		}
		t.poke()
	})
	defer stopVisibility()

	unsubscribe := t.pager.Subscribe(func(scroll.State) { t.poke() })
	defer unsubscribe()

	t.poke()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-t.wake:
		}

		if !t.visible.Load() {
			continue
		}
		st := t.pager.State()
		if !st.CanLoadMore() {
			continue
		}
		if st.Err != nil && !t.entered.Load() {
			continue
		}
		t.entered.Store(false)
		err := t.pager.LoadMore(ctx)
		switch {
		case err == nil, errors.Is(err, context.Canceled):
		case errors.Is(err, scroll.ErrClosed):
			return nil
		default:
			t.logger.Warn("viewport load failed", slog.Any("error", err))
		}
	}
}

func (t *Trigger) poke() {
	select {
	case t.wake <- struct{}{}:
	default:
	}
}
