package scroll

import (
	"log/slog"
	"time"

	"scrollfeed/internal/autorefresh"
)

// DefaultLimit is the page size requested when none is configured.
const DefaultLimit = 20

// Option configures a Feed.
type Option func(*Feed)

// WithLimit sets the page size requested from the provider.
func WithLimit(n int) Option {
	return func(f *Feed) {
		if n > 0 {
			f.limit = n
		}
	}
}

// WithInitialPage sets the page number the initial result came from.
func WithInitialPage(page int) Option {
	return func(f *Feed) {
		if page > 0 {
			f.initial.Cursor = page
		}
	}
}

// WithRefreshSignal makes Refresh and HardReload ask the provider to materialize new
// records before slicing page 1.
func WithRefreshSignal(on bool) Option {
	return func(f *Feed) { f.refreshSignal = on }
}

// WithMinSpinner keeps the feed in its loading state for at least d per fetch.
func WithMinSpinner(d time.Duration) Option {
	return func(f *Feed) { f.minSpinner = max(d, 0) }
}

// WithLogger sets the feed logger.
func WithLogger(l *slog.Logger) Option {
	return func(f *Feed) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithAutoRefreshInterval sets the auto-refresh period.
func WithAutoRefreshInterval(d time.Duration) Option {
	return func(f *Feed) { f.interval = d }
}

// WithSchedulerOptions passes options to the auto-refresh scheduler.
func WithSchedulerOptions(opts ...autorefresh.Option) Option {
	return func(f *Feed) { f.schedOpts = append(f.schedOpts, opts...) }
}
