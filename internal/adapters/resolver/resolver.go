// Package resolver follows redirects to find where an observed URL really lands
package resolver

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"chatter/internal/core/version"
	"chatter/internal/platform/config"
	perr "chatter/internal/platform/errors"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/metrics"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const (
	defaultTimeout      = 4 * time.Second
	defaultMaxBody      = 2 << 20
	defaultMaxRedirects = 10
)

var defaultUA = version.UserAgent("chatter-urlmaint")

var errTooManyRedirects = errors.New("stopped after too many redirects")

// Options configures the Client
type Options struct {
	Timeout      time.Duration
	MaxBody      int64
	MaxRedirects int
	UserAgent    string
}

// FromConfig reads CORE_RESOLVER_TIMEOUT, CORE_RESOLVER_MAX_BODY and CORE_RESOLVER_USER_AGENT
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_RESOLVER_")
	return Options{
		Timeout:      c.MayDuration("TIMEOUT", defaultTimeout),
		MaxBody:      int64(c.MayInt("MAX_BODY", defaultMaxBody)),
		MaxRedirects: defaultMaxRedirects,
		UserAgent:    c.MayString("USER_AGENT", defaultUA),
	}
}

// Result is the final hop of a resolution
type Result struct {
	URL         string
	Status      int
	ContentType string
	Body        []byte
}

// NotFound reports a dead target (404 or 410)
func (r Result) NotFound() bool {
	return r.Status == http.StatusNotFound || r.Status == http.StatusGone
}

// Client resolves URLs with a GET, following redirects
type Client struct {
	http *http.Client
	opts Options
	log  logger.Logger
	now  func() time.Time
}

// New creates a Client with defaults filled in
func New(o Options) *Client {
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.MaxBody <= 0 {
		o.MaxBody = defaultMaxBody
	}
	if o.MaxRedirects <= 0 {
		o.MaxRedirects = defaultMaxRedirects
	}
	if o.UserAgent == "" {
		o.UserAgent = defaultUA
	}
	limit := o.MaxRedirects
	return &Client{
		http: &http.Client{
			Timeout:   o.Timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
			CheckRedirect: func(_ *http.Request, via []*http.Request) error {
				if len(via) >= limit {
					return errTooManyRedirects
				}
				return nil
			},
		},
		opts: o,
		log:  *logger.Named("resolver"),
		now:  time.Now,
	}
}

// Resolve fetches rawURL. Any HTTP response is a Result, whatever its status;
// transport failures, timeouts and redirect loops are ErrorCodeUnavailable
func (c *Client) Resolve(ctx context.Context, rawURL string) (Result, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Result{}, perr.Wrapf(err, perr.ErrorCodeInvalidArgument, "resolve %q", rawURL)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.5")

	start := c.now()
	resp, err := c.http.Do(req)
	metrics.ResolverSeconds.Observe(c.now().Sub(start).Seconds())
	if err != nil {
		return Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "resolve %q", rawURL)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.opts.MaxBody))
	if err != nil {
		return Result{}, perr.Wrapf(err, perr.ErrorCodeUnavailable, "read body of %q", rawURL)
	}

	final := resp.Request.URL.String()
	c.log.Debug().
		Str("url", rawURL).
		Str("final", final).
		Int("status", resp.StatusCode).
		Int("bytes", len(body)).
		Msg("resolved")

	return Result{
		URL:         final,
		Status:      resp.StatusCode,
		ContentType: resp.Header.Get("Content-Type"),
		Body:        body,
	}, nil
}
