package upstream

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/cenkalti/backoff/v4"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
	"github.com/marketbriefs/marketbriefs/internal/logger"
)

// ErrUnavailable reports that the provider could not produce a usable
// series within the attempt budget. Callers are expected to fall back
// to synthetic data; this error never reaches API responses.
var ErrUnavailable = errors.New("upstream unavailable")

// minUsableBars is the smallest series a successful attempt may
// return. A single bar cannot yield even one daily return.
const minUsableBars = 2

const (
	defaultMaxAttempts = 2

	// Waits between attempts are drawn uniformly from this window.
	retryWaitMin = 2 * time.Second
	retryWaitMax = 5 * time.Second
)

// HistoryClient is the transport the fetcher drives. *Client
// satisfies it.
type HistoryClient interface {
	History(ctx context.Context, symbol, period string) ([]models.PriceBar, error)
}

// Fetcher retries the whole history call a bounded number of times.
//
// Transport errors, provider errors and too-short series all count as
// a failed attempt and are treated alike: logged, waited out and
// retried until the budget is spent. The wait between attempts blocks
// only the calling goroutine and aborts as soon as ctx is canceled.
type Fetcher struct {
	client      HistoryClient
	maxAttempts int
	waitMin     time.Duration
	waitMax     time.Duration
}

// NewFetcher builds a fetcher around client. Non-positive maxAttempts
// falls back to the default budget of two.
func NewFetcher(client HistoryClient, maxAttempts int) *Fetcher {
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}
	return &Fetcher{
		client:      client,
		maxAttempts: maxAttempts,
		waitMin:     retryWaitMin,
		waitMax:     retryWaitMax,
	}
}

// Fetch retrieves the daily series for symbol over period.
//
// Returns:
//   - A Series tagged SourceUpstream when any attempt yields at least
//     minUsableBars bars.
//   - ctx's error when the context is canceled mid-flight.
//   - An error wrapping ErrUnavailable once the attempt budget is
//     exhausted, carrying the last failure as detail.
func (f *Fetcher) Fetch(ctx context.Context, symbol, period string) (models.Series, error) {
	log := logger.With("upstream")

	var bars []models.PriceBar
	attempt := 0
	op := func() error {
		attempt++
		got, err := f.client.History(ctx, symbol, period)
		if err == nil && len(got) < minUsableBars {
			err = fmt.Errorf("series too short: %d bars, need %d", len(got), minUsableBars)
		}
		if err != nil {
			log.Warn().
				Err(err).
				Str("symbol", symbol).
				Str("period", period).
				Int("attempt", attempt).
				Msg("upstream attempt failed")
			return err
		}
		bars = got
		return nil
	}

	if err := backoff.Retry(op, backoff.WithContext(f.newBackOff(), ctx)); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return models.Series{}, ctxErr
		}
		return models.Series{}, fmt.Errorf("%w after %d attempts: %v", ErrUnavailable, attempt, err)
	}

	return models.Series{Symbol: symbol, Bars: bars, Source: models.SourceUpstream}, nil
}

// newBackOff shapes the exponential policy into a flat, uniformly
// jittered wait over [waitMin, waitMax] capped at maxAttempts tries.
func (f *Fetcher) newBackOff() backoff.BackOff {
	mid := (f.waitMin + f.waitMax) / 2

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = mid
	bo.Multiplier = 1
	bo.MaxElapsedTime = 0
	if mid > 0 {
		bo.RandomizationFactor = float64(f.waitMax-mid) / float64(mid)
	}
	bo.Reset()

	return backoff.WithMaxRetries(bo, uint64(f.maxAttempts-1))
}
