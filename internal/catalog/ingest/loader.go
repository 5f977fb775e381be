package ingest

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/time/rate"

	"github.com/erikgalindohub/structurecareapp/internal/catalog/domain"
	"github.com/erikgalindohub/structurecareapp/internal/logging"
	"github.com/erikgalindohub/structurecareapp/internal/metrics"
)

const maxCatalogBytes = 16 << 20

// Loader fetches and parses the plant catalog.
type Loader struct {
	url             string
	placeholderBase string
	client          *http.Client
	policy          Policy
	limiter         *rate.Limiter
}

type Option func(*Loader)

func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) { l.client = c }
}

func WithPolicy(p Policy) Option {
	return func(l *Loader) { l.policy = p }
}

// WithRateLimit paces outbound attempts. A non-positive rps disables pacing.
func WithRateLimit(rps float64) Option {
	return func(l *Loader) {
		if rps <= 0 {
			l.limiter = nil
			return
		}
		l.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

func WithPlaceholderBase(base string) Option {
	return func(l *Loader) { l.placeholderBase = base }
}

func NewLoader(url string, opts ...Option) *Loader {
	l := &Loader{
		url:    url,
		client: &http.Client{Timeout: 15 * time.Second},
		policy: DefaultPolicy(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load returns the current catalog. Failures after the retry policy gives up are reported as
// *domain.IngestionError; a done ctx returns ctx.Err() instead.
func (l *Loader) Load(ctx context.Context) ([]domain.Plant, error) {
	logger := logging.New(ctx)
	start := time.Now()
	defer func() { metrics.CatalogLoadDuration.Observe(time.Since(start).Seconds()) }()

	var body []byte
	attempts, status, err := l.policy.Run(ctx, func(ctx context.Context) (int, error) {
		if l.limiter != nil {
			if err := l.limiter.Wait(ctx); err != nil {
				return 0, err
			}
		}
		metrics.CatalogFetchAttempts.Inc()
		b, code, err := l.fetch(ctx)
		if err != nil {
			if ctx.Err() == nil {
				logger.LogWarnf("load_catalog", "attempt failed status=%d error=%v", code, err)
			}
			return code, err
		}
		body = b
		return code, nil
	})
	if err != nil {
		if ctx.Err() != nil {
			metrics.CatalogLoads.WithLabelValues("canceled").Inc()
			return nil, ctx.Err()
		}
		metrics.CatalogLoads.WithLabelValues("error").Inc()
		ingestErr := &domain.IngestionError{Attempts: attempts, StatusCode: status, Err: err}
		logger.LogError("load_catalog", ingestErr)
		return nil, ingestErr
	}

	plants := Parse(body, l.placeholderBase)
	metrics.CatalogLoads.WithLabelValues("ok").Inc()
	logger.LogInfof("load_catalog", "plants=%d attempts=%d duration=%s", len(plants), attempts, time.Since(start))
	return plants, nil
}

func (l *Loader) fetch(ctx context.Context) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "text/tab-separated-values, text/plain")
	req.Header.Set("User-Agent", "structurecare-catalog/1.0")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, 4096))
		return nil, resp.StatusCode, &StatusError{Code: resp.StatusCode}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxCatalogBytes))
	if err != nil {
		// A broken body is a transport failure, so report no status and let the policy retry.
		return nil, 0, fmt.Errorf("read body: %w", err)
	}
	return body, resp.StatusCode, nil
}
