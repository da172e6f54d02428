// Package cli builds the scroll client command.
package cli

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"scrollfeed/internal/autorefresh"
	"scrollfeed/internal/infra/adapter/persistence/memory"
	"scrollfeed/internal/infra/pageclient"
	"scrollfeed/internal/observability/logging"
	"scrollfeed/internal/observability/tracing"
	"scrollfeed/internal/scroll"
	"scrollfeed/internal/tui"
	"scrollfeed/internal/usecase/record"
	"scrollfeed/internal/viewport"
)

// Options holds the parsed flags.
type Options struct {
	APIURL      string
	Local       bool
	Corpus      int
	Latency     time.Duration
	Limit       int
	Interval    time.Duration
	Margin      int
	MinSpinner  time.Duration
	AutoRefresh bool
	LogFile     string
	Debug       bool
}

// Validate checks flag values that cobra cannot.
func (o Options) Validate() error {
	var errs []error
	if o.Limit <= 0 {
		errs = append(errs, fmt.Errorf("--limit must be positive, got %d", o.Limit))
	}
	if o.Interval < time.Second {
		errs = append(errs, fmt.Errorf("--interval must be at least 1s, got %v", o.Interval))
	}
	if o.Margin < 0 {
		errs = append(errs, fmt.Errorf("--margin must be non-negative, got %d", o.Margin))
	}
	if o.MinSpinner < 0 {
		errs = append(errs, fmt.Errorf("--min-spinner must be non-negative, got %v", o.MinSpinner))
	}
	if o.Local {
		if o.Corpus < 0 {
			errs = append(errs, fmt.Errorf("--corpus must be non-negative, got %d", o.Corpus))
		}
		if o.Latency < 0 {
			errs = append(errs, fmt.Errorf("--latency must be non-negative, got %v", o.Latency))
		}
	} else if u, err := url.Parse(o.APIURL); err != nil || u.Host == "" {
		errs = append(errs, fmt.Errorf("--api-url %q is not an absolute URL", o.APIURL))
	}
	return errors.Join(errs...)
}

// NewRootCmd creates the scroll command.
func NewRootCmd(version string) *cobra.Command {
	opts := Options{}

	cmd := &cobra.Command{
		Use:           "scroll",
		Short:         "Infinite-scroll terminal client for the records API",
		Version:       version,
		Example:       rootCmdExample,
		SilenceUsage:  true,
		SilenceErrors: true,
		PreRunE: func(_ *cobra.Command, _ []string) error {
			return opts.Validate()
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.APIURL, "api-url", "http://localhost:8080", "records API base URL")
	f.BoolVar(&opts.Local, "local", false, "serve records from an embedded in-memory corpus instead of the API")
	f.IntVar(&opts.Corpus, "corpus", 200, "corpus size with --local")
	f.DurationVar(&opts.Latency, "latency", 500*time.Millisecond, "simulated provider latency with --local")
	f.IntVar(&opts.Limit, "limit", scroll.DefaultLimit, "records per page")
	f.DurationVar(&opts.Interval, "interval", autorefresh.DefaultInterval, "auto-refresh interval")
	f.IntVar(&opts.Margin, "margin", viewport.DefaultMargin, "rows before the end of the list that trigger the next page")
	f.DurationVar(&opts.MinSpinner, "min-spinner", 0, "minimum time a loading indicator stays visible")
	f.BoolVar(&opts.AutoRefresh, "auto-refresh", false, "start with auto-refresh enabled")
	f.StringVar(&opts.LogFile, "log-file", "", "write JSON logs to this file (default: discard)")
	f.BoolVar(&opts.Debug, "debug", false, "enable debug logging")

	return cmd
}

const rootCmdExample = `  # Scroll the records API on localhost
  scroll --api-url http://localhost:8080

  # No server needed: embedded corpus of 500 records, fast provider
  scroll --local --corpus 500 --latency 50ms

  # Refresh every 10 seconds and keep logs
  scroll --auto-refresh --interval 10s --log-file scroll.log`

func run(cmd *cobra.Command, opts Options) error {
	logger, closeLog, err := openLogger(opts)
	if err != nil {
		return err
	}
	defer closeLog()

	shutdownTracing := tracing.Setup("scrollfeed-scroll", 1.0)
	defer func() { _ = shutdownTracing(context.Background()) }()

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	src, inserter, err := newProvider(opts, logger)
	if err != nil {
		return err
	}

	feed, err := scroll.Load(ctx, src,
		scroll.WithLimit(opts.Limit),
		scroll.WithRefreshSignal(true),
		scroll.WithAutoRefreshInterval(opts.Interval),
		scroll.WithMinSpinner(opts.MinSpinner),
		scroll.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("load first page: %w", err)
	}
	defer feed.Close()

	if opts.AutoRefresh {
		feed.ToggleAutoRefresh()
	}

	observer := viewport.NewObserver(opts.Margin)
	model := tui.New(ctx, feed, observer, tui.WithInserter(inserter), tui.WithTitle(title(opts)))
	defer model.Close()
	trigger := viewport.NewTrigger(feed, observer, viewport.WithTriggerLogger(logger))

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return trigger.Run(gctx)
	})
	g.Go(func() error {
		p := tea.NewProgram(model,
			tea.WithAltScreen(),
			tea.WithContext(gctx),
			tea.WithInput(cmd.InOrStdin()),
			tea.WithOutput(cmd.OutOrStdout()))
		if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
			return err
		}
		// quitting the program ends the trigger loop too
		return errQuit
	})

	if err := g.Wait(); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	logger.Info("scroll client exited", slog.Int("records", len(feed.State().Records)))
	return nil
}

var errQuit = errors.New("quit")

func newProvider(opts Options, logger *slog.Logger) (scroll.PageProvider, tui.Inserter, error) {
	if opts.Local {
		store := memory.NewRecordStore()
		store.Seed(opts.Corpus)
		svc := &record.Service{
			Repo:               store,
			Latency:            opts.Latency,
			RefreshInsertCount: record.DefaultRefreshInsertCount,
		}
		insert := func(ctx context.Context, n int) error {
			_, err := svc.InsertNewRecords(ctx, n)
			return err
		}
		return svc, insert, nil
	}

	client, err := pageclient.New(pageclient.DefaultConfig(opts.APIURL), pageclient.WithLogger(logger))
	if err != nil {
		return nil, nil, err
	}
	insert := func(ctx context.Context, n int) error {
		_, err := client.InsertNewRecords(ctx, n)
		return err
	}
	return client, insert, nil
}

func openLogger(opts Options) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if opts.Debug {
		level = slog.LevelDebug
	}
	if opts.LogFile == "" {
		return logging.Discard(), func() {}, nil
	}
	// #nosec G304 -- path comes from the user's own command line
	f, err := os.OpenFile(opts.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600)
	if err != nil {
		return nil, nil, fmt.Errorf("open log file: %w", err)
	}
	return logging.NewJSONLogger(f, level), func() { _ = f.Close() }, nil
}

func title(opts Options) string {
	if opts.Local {
		return "scrollfeed (local)"
	}
	return "scrollfeed " + opts.APIURL
}
