// Package fetcher reads the pothole collection and normalizes it into
// records for the API. Store and coercion errors never escape Fetch: they
// are logged, counted, and served as an empty result.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/pothole-data-api/internal/domain"
	"github.com/couchcryptid/pothole-data-api/internal/observability"
	"github.com/jonboulle/clockwork"
)

// Fetcher streams the collection through domain.NormalizePothole.
type Fetcher struct {
	source  domain.DocumentSource
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	timeout time.Duration
}

// Option customizes a Fetcher.
type Option func(*Fetcher)

// WithClock swaps the time source used to measure fetch duration.
func WithClock(c clockwork.Clock) Option {
	return func(f *Fetcher) { f.clock = c }
}

// WithTimeout bounds each fetch. Zero means no deadline beyond the caller's.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.timeout = d }
}

// New creates a Fetcher over the given source.
func New(source domain.DocumentSource, logger *slog.Logger, metrics *observability.Metrics, opts ...Option) *Fetcher {
	f := &Fetcher{
		source:  source,
		logger:  logger,
		metrics: metrics,
		clock:   clockwork.NewRealClock(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch reads every document and returns the normalized records in store
// order. On any store or coercion error the whole read is abandoned and the
// result carries no records; the error text is kept in Failure.
func (f *Fetcher) Fetch(ctx context.Context) domain.FetchResult {
	start := f.clock.Now()

	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	res, err := f.collect(ctx)
	res.Elapsed = f.clock.Since(start)

	f.metrics.FetchDuration.Observe(res.Elapsed.Seconds())
	f.metrics.RecordsDropped.Add(float64(res.Dropped))

	if err != nil {
		f.logger.ErrorContext(ctx, "pothole fetch failed, serving empty result",
			"error", err,
			"scanned", res.Scanned,
			"elapsed", res.Elapsed,
		)
		f.metrics.FetchFailures.Inc()
		res.Records = []domain.PotholeRecord{}
		res.Failure = err.Error()
		return res
	}

	f.metrics.RecordsReturned.Observe(float64(len(res.Records)))
	f.logger.DebugContext(ctx, "pothole fetch complete",
		"records", len(res.Records),
		"dropped", res.Dropped,
		"elapsed", res.Elapsed,
	)
	return res
}

// CheckReadiness returns nil when the document store answers a one-document read.
func (f *Fetcher) CheckReadiness(ctx context.Context) error {
	if err := f.source.Ping(ctx); err != nil {
		return fmt.Errorf("document store unreachable: %w", err)
	}
	return nil
}

func (f *Fetcher) collect(ctx context.Context) (domain.FetchResult, error) {
	res := domain.FetchResult{Records: []domain.PotholeRecord{}}

	stream := f.source.Stream(ctx)
	defer stream.Stop()

	for {
		doc, err := stream.Next()
		if errors.Is(err, domain.ErrDone) {
			return res, nil
		}
		if err != nil {
			return res, fmt.Errorf("stream documents: %w", err)
		}
		res.Scanned++

		rec, err := domain.NormalizePothole(doc)
		if errors.Is(err, domain.ErrIncomplete) {
			res.Dropped++
			f.logger.DebugContext(ctx, "skipping incomplete pothole document", "id", doc.ID, "reason", err)
			continue
		}
		if err != nil {
			return res, fmt.Errorf("normalize document %s: %w", doc.ID, err)
		}
		res.Records = append(res.Records, rec)
	}
}
