package refresher

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"golang.org/x/sync/errgroup"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
	"github.com/marketbriefs/marketbriefs/internal/logger"
	"github.com/marketbriefs/marketbriefs/internal/service"
)

// maxParallel caps how many symbols refresh concurrently.
const maxParallel = 4

// Refresher keeps the price store warm for a fixed watchlist, either
// on demand or on a cron schedule. Each refresh walks the watchlist
// through the regular acquisition pipeline, so freshness checks,
// caching and the synthetic fallback all apply.
type Refresher struct {
	prices  service.PriceService
	symbols []string
	spec    string
}

// New constructs a Refresher for the given watchlist and cron spec.
// The spec uses six fields with seconds (e.g., "0 0 22 * * 1-5").
func New(prices service.PriceService, symbols []string, spec string) *Refresher {
	return &Refresher{prices: prices, symbols: symbols, spec: spec}
}

// RunOnce refreshes every watchlist symbol over the widest range and
// returns the first error encountered. Symbols refresh concurrently,
// a failing symbol cancels the remaining ones.
func (r *Refresher) RunOnce(ctx context.Context) error {
	log := logger.With("refresher")

	if len(r.symbols) == 0 {
		log.Warn().Msg("refresh requested with empty watchlist")
		return nil
	}

	log.Info().Int("symbols", len(r.symbols)).Msg("refresh start")

	g, gctx := errgroup.WithContext(ctx)
	sem := make(chan struct{}, maxParallel)

	for i, symbol := range r.symbols {
		idx := i
		sym := symbol
		sem <- struct{}{}

		g.Go(func() error {
			defer func() { <-sem }()
			start := time.Now()

			report, err := r.prices.GetPrices(gctx, sym, models.Range1Y)
			if err != nil {
				log.Error().Str("symbol", sym).Err(err).Msg("symbol refresh failed")
				return fmt.Errorf("refresh %s: %w", sym, err)
			}

			log.Info().
				Int("idx", idx+1).
				Int("total", len(r.symbols)).
				Str("symbol", sym).
				Int("bars", len(report.Bars)).
				Dur("elapsed", time.Since(start)).
				Msg("symbol refreshed")
			return nil
		})
	}

	return g.Wait()
}

// Run schedules RunOnce on the cron spec and blocks until ctx is
// canceled. Running jobs finish before Run returns.
func (r *Refresher) Run(ctx context.Context) error {
	log := logger.With("refresher")

	c := cron.New(cron.WithSeconds())
	_, err := c.AddFunc(r.spec, func() {
		if err := r.RunOnce(ctx); err != nil {
			log.Error().Err(err).Msg("scheduled refresh failed")
		}
	})
	if err != nil {
		return fmt.Errorf("invalid refresh schedule %q: %w", r.spec, err)
	}

	c.Start()
	log.Info().
		Str("schedule", r.spec).
		Strs("symbols", r.symbols).
		Msg("refresh daemon started")

	<-ctx.Done()

	stopCtx := c.Stop()
	<-stopCtx.Done()
	log.Info().Msg("refresh daemon stopped")
	return nil
}
