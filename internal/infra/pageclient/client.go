// Package pageclient implements scroll.PageProvider over the records API.
package pageclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"scrollfeed/internal/domain/entity"
	"scrollfeed/internal/handler/http/respond"
	"scrollfeed/internal/observability/tracing"
	"scrollfeed/internal/resilience/circuitbreaker"
	"scrollfeed/internal/resilience/retry"
	"scrollfeed/internal/scroll"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"golang.org/x/time/rate"
)

// maxBodyBytes bounds how much of a response is read.
const maxBodyBytes = 4 << 20

// Config holds the client settings.
type Config struct {
	// BaseURL is the records API root, e.g. http://localhost:8080
	BaseURL string

	// Timeout bounds a single HTTP attempt
	Timeout time.Duration

	// RequestsPerSecond and Burst configure the token bucket in front of every attempt
	RequestsPerSecond float64
	Burst             int

	Retry   retry.Config
	Breaker circuitbreaker.Config
}

// DefaultConfig returns a configuration for baseURL.
func DefaultConfig(baseURL string) Config {
	return Config{
		BaseURL:           baseURL,
		Timeout:           5 * time.Second,
		RequestsPerSecond: 10,
		Burst:             5,
		Retry:             retry.PageClientConfig(),
		Breaker:           circuitbreaker.PageClientConfig(),
	}
}

// Client fetches pages from the records API.
// Failures that are not the caller's fault surface as scroll.ErrProviderUnavailable.
type Client struct {
	base    *url.URL
	http    *http.Client
	limiter *rate.Limiter
	breaker *circuitbreaker.CircuitBreaker
	retry   retry.Config
	logger  *slog.Logger
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the default http.Client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.http = hc }
}

// WithLogger sets the client logger. A nil logger is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// New creates a Client. BaseURL must be an absolute http(s) URL.
func New(cfg Config, opts ...Option) (*Client, error) {
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil {
		return nil, fmt.Errorf("parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" {
		return nil, fmt.Errorf("base url %q: scheme must be http or https", cfg.BaseURL)
	}
	if base.Host == "" {
		return nil, fmt.Errorf("base url %q: missing host", cfg.BaseURL)
	}

	c := &Client{
		base:    base,
		http:    &http.Client{Timeout: cfg.Timeout},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		retry:   cfg.Retry,
		logger:  slog.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.retry.Logger == nil {
		c.retry.Logger = c.logger
	}
	c.breaker = circuitbreaker.New(cfg.Breaker,
		circuitbreaker.WithLogger(c.logger),
		circuitbreaker.WithFailurePredicate(countsAsFailure))
	return c, nil
}

// FetchPage implements scroll.PageProvider.
func (c *Client) FetchPage(ctx context.Context, req entity.PageRequest) (entity.FetchResult, error) {
	if err := entity.ValidatePage(req.Page, req.Limit); err != nil {
		return entity.FetchResult{}, err
	}

	ctx, span := tracing.GetTracer().Start(ctx, "pageclient.FetchPage")
	defer span.End()
	span.SetAttributes(
		attribute.Int("page", req.Page),
		attribute.Int("limit", req.Limit),
		attribute.Bool("refresh", req.Refresh),
	)

	res, err := circuitbreaker.Do(c.breaker, func() (entity.FetchResult, error) {
		var out entity.FetchResult
		err := retry.WithBackoff(ctx, c.retry, func() error {
			var err error
			out, err = c.getPage(ctx, req)
			return err
		})
		return out, err
	})
	if err != nil {
		err = c.mapError(ctx, req, err)
		span.SetStatus(codes.Error, err.Error())
		return entity.FetchResult{}, err
	}
	return res, nil
}

// InsertNewRecords asks the API to prepend count new records and returns the corpus size.
func (c *Client) InsertNewRecords(ctx context.Context, count int) (int, error) {
	if count < 0 {
		return 0, fmt.Errorf("count %d: %w", count, entity.ErrInvalidInput)
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return 0, err
	}

	u := c.endpoint("/records/insert", url.Values{"count": {strconv.Itoa(count)}})
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return 0, fmt.Errorf("build insert request: %w", err)
	}
	tracing.InjectHeaders(ctx, httpReq.Header)

	var body insertResponse
	if err := c.do(httpReq, &body); err != nil {
		return 0, fmt.Errorf("insert records: %w", err)
	}
	return body.TotalCount, nil
}

func (c *Client) getPage(ctx context.Context, req entity.PageRequest) (entity.FetchResult, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return entity.FetchResult{}, err
	}

	q := url.Values{
		"page":  {strconv.Itoa(req.Page)},
		"limit": {strconv.Itoa(req.Limit)},
	}
	if req.Refresh {
		q.Set("refresh", "true")
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/records", q), nil)
	if err != nil {
		return entity.FetchResult{}, fmt.Errorf("build page request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	tracing.InjectHeaders(ctx, httpReq.Header)

	var body pageResponse
	if err := c.do(httpReq, &body); err != nil {
		return entity.FetchResult{}, err
	}
	return body.result(), nil
}

// do sends req and decodes a 200 response into out.
func (c *Client) do(req *http.Request, out any) error {
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body := io.LimitReader(resp.Body, maxBodyBytes)
	switch {
	case resp.StatusCode == http.StatusOK:
		if err := json.NewDecoder(body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
		return nil
	case resp.StatusCode == http.StatusBadRequest:
		return fmt.Errorf("%w: %s", entity.ErrInvalidPage, errorMessage(body))
	default:
		return &retry.HTTPError{StatusCode: resp.StatusCode, Message: errorMessage(body)}
	}
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := *c.base
	u.Path = c.base.Path + path
	u.RawQuery = q.Encode()
	return u.String()
}

func (c *Client) mapError(ctx context.Context, req entity.PageRequest, err error) error {
	switch {
	case errors.Is(err, entity.ErrInvalidPage):
		return err
	case ctx.Err() != nil:
		return ctx.Err()
	case circuitbreaker.Rejected(err):
		c.logger.Debug("page request rejected by open circuit", slog.Int("page", req.Page))
		return fmt.Errorf("%w: circuit %s open", scroll.ErrProviderUnavailable, c.breaker.Name())
	default:
		c.logger.Warn("page request failed",
			slog.Int("page", req.Page),
			slog.String("error", respond.SanitizeError(err)))
		return fmt.Errorf("%w: page %d: %w", scroll.ErrProviderUnavailable, req.Page, err)
	}
}

// countsAsFailure reports whether err says something about the API's health.
func countsAsFailure(err error) bool {
	return !errors.Is(err, entity.ErrInvalidPage) &&
		!errors.Is(err, context.Canceled) &&
		!errors.Is(err, context.DeadlineExceeded)
}

func errorMessage(r io.Reader) string {
	var e respond.ErrorBody
	if err := json.NewDecoder(r).Decode(&e); err != nil || e.Error == "" {
		return "no error detail"
	}
	return e.Error
}
