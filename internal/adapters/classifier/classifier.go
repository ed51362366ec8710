// Package classifier talks to a Calais-compatible topic tagging service
package classifier

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strings"
	"time"

	"chatter/internal/platform/config"
	perr "chatter/internal/platform/errors"
	"chatter/internal/platform/logger"
	"chatter/internal/platform/metrics"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/time/rate"
)

const (
	defaultURL      = "https://api.thomsonreuters.com/permid/calais"
	defaultLanguage = "English"
	defaultTimeout  = 5 * time.Second
	defaultAttempts = 3

	minTitle   = 5
	minContent = 10
)

var (
	// ErrSkipped means there was too little text to send
	ErrSkipped = perr.New(perr.ErrorCodeInvalidArgument, "not enough text to classify")
	// ErrDisabled means no token is configured
	ErrDisabled = perr.New(perr.ErrorCodeUnavailable, "classifier disabled")
)

// Topic is one category the service assigned
type Topic struct {
	Label string
	Score float64
}

// Options configures the Client
type Options struct {
	URL      string
	Token    string
	Language string
	Timeout  time.Duration
	Attempts int
	RPS      float64
	Burst    int
	Enabled  bool
}

// FromConfig reads CORE_CLASSIFIER_* settings; ENABLED defaults to whether a TOKEN is set
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("CORE_CLASSIFIER_")
	token := c.MayString("TOKEN", "")
	return Options{
		URL:      c.MayString("URL", defaultURL),
		Token:    token,
		Language: c.MayString("LANGUAGE", defaultLanguage),
		Timeout:  c.MayDuration("TIMEOUT", defaultTimeout),
		Attempts: c.MayInt("ATTEMPTS", defaultAttempts),
		RPS:      c.MayFloat64("RPS", 2),
		Burst:    c.MayInt("BURST", 1),
		Enabled:  c.MayBool("ENABLED", token != ""),
	}
}

// Client posts raw text and reads back category entries
type Client struct {
	http    *http.Client
	opts    Options
	limiter *rate.Limiter
	log     logger.Logger
}

// New creates a Client with defaults filled in
func New(o Options) *Client {
	if o.URL == "" {
		o.URL = defaultURL
	}
	if o.Language == "" {
		o.Language = defaultLanguage
	}
	if o.Timeout <= 0 {
		o.Timeout = defaultTimeout
	}
	if o.Attempts <= 0 {
		o.Attempts = defaultAttempts
	}
	lim := rate.NewLimiter(rate.Inf, 1)
	if o.RPS > 0 {
		burst := o.Burst
		if burst <= 0 {
			burst = 1
		}
		lim = rate.NewLimiter(rate.Limit(o.RPS), burst)
	}
	return &Client{
		http:    &http.Client{Timeout: o.Timeout, Transport: otelhttp.NewTransport(http.DefaultTransport)},
		opts:    o,
		limiter: lim,
		log:     *logger.Named("classifier"),
	}
}

// Enabled reports whether calls will be attempted
func (c *Client) Enabled() bool { return c.opts.Enabled }

// Classify returns the categories for a document.
//
// A title under 5 and content under 10 characters is ErrSkipped. A title
// longer than 5 characters goes in x-calais-DocumentTitle, and stands in for
// content shorter than 5 characters. Transport failures are retried up to
// Attempts times; any HTTP response ends the loop, and a non-2xx response
// yields no topics. Running out of attempts is ErrorCodeUnavailable.
func (c *Client) Classify(ctx context.Context, title, content string) ([]Topic, error) {
	if !c.opts.Enabled {
		return nil, ErrDisabled
	}
	if len(title) < minTitle && len(content) < minContent {
		metrics.ClassifierRequests.WithLabelValues("skipped").Inc()
		return nil, ErrSkipped
	}

	header := http.Header{}
	header.Set("Content-Type", "text/raw")
	header.Set("x-ag-access-token", c.opts.Token)
	header.Set("outputFormat", "application/json")
	header.Set("omitOutputtingOriginalText", "true")
	header.Set("x-calais-language", c.opts.Language)
	if len(title) > minTitle {
		title = strings.NewReplacer("\r", " ", "\n", " ").Replace(strings.TrimSpace(title))
		header.Set("x-calais-DocumentTitle", title)
		if len(content) < minTitle {
			content = title
		}
	}

	var lastErr error
	for attempt := 1; attempt <= c.opts.Attempts; attempt++ {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, perr.Wrap(err, perr.ErrorCodeUnavailable, "classifier rate wait")
		}
		resp, err := c.post(ctx, header, content)
		if err != nil {
			lastErr = err
			c.log.Warn().Err(err).Int("attempt", attempt).Msg("classifier transport error")
			continue
		}
		return c.read(resp)
	}
	metrics.ClassifierRequests.WithLabelValues("exhausted").Inc()
	return nil, perr.Wrapf(lastErr, perr.ErrorCodeUnavailable, "classifier failed after %d attempts", c.opts.Attempts)
}

func (c *Client) post(ctx context.Context, header http.Header, content string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.opts.URL, bytes.NewReader([]byte(content)))
	if err != nil {
		return nil, err
	}
	req.Header = header.Clone()
	return c.http.Do(req)
}

func (c *Client) read(resp *http.Response) ([]Topic, error) {
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		c.log.Error().Int("status", resp.StatusCode).Str("body", string(msg)).Msg("classifier rejected request")
		metrics.ClassifierRequests.WithLabelValues("rejected").Inc()
		return []Topic{}, nil
	}

	var doc map[string]json.RawMessage
	if err := json.NewDecoder(resp.Body).Decode(&doc); err != nil {
		c.log.Error().Err(err).Msg("classifier response is not a json object")
		metrics.ClassifierRequests.WithLabelValues("rejected").Inc()
		return []Topic{}, nil
	}

	topics := make([]Topic, 0, 4)
	for key, raw := range doc {
		if !strings.Contains(key, "/cat/") {
			continue
		}
		var cat struct {
			Name  string  `json:"name"`
			Score float64 `json:"score"`
		}
		if err := json.Unmarshal(raw, &cat); err != nil || cat.Name == "" {
			continue
		}
		topics = append(topics, Topic{Label: cat.Name, Score: cat.Score})
	}
	sort.Slice(topics, func(i, j int) bool {
		if topics[i].Score != topics[j].Score {
			return topics[i].Score > topics[j].Score
		}
		return topics[i].Label < topics[j].Label
	})

	result := "ok"
	if len(topics) == 0 {
		result = "empty"
	}
	metrics.ClassifierRequests.WithLabelValues(result).Inc()
	return topics, nil
}
