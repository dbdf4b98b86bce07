package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/marketbriefs/marketbriefs/internal/cache"
	"github.com/marketbriefs/marketbriefs/internal/domain/models"
	"github.com/marketbriefs/marketbriefs/internal/logger"
	"github.com/marketbriefs/marketbriefs/internal/metrics"
	"github.com/marketbriefs/marketbriefs/internal/storage"
	"github.com/marketbriefs/marketbriefs/internal/upstream"
)

// SeriesFetcher pulls daily history from the provider.
// *upstream.Fetcher satisfies it.
type SeriesFetcher interface {
	Fetch(ctx context.Context, symbol, period string) (models.Series, error)
}

// SeriesGenerator produces synthetic fallback history.
// *upstream.Generator satisfies it.
type SeriesGenerator interface {
	Generate(symbol string, days int) models.Series
}

// PriceService defines the acquisition pipeline: freshness check,
// cached fetch with synthetic fallback, transactional replace, then a
// windowed read with metrics.
type PriceService interface {
	GetPrices(ctx context.Context, symbol string, rng models.TimeRange) (*models.PriceReport, error)
}

type priceService struct {
	repo      storage.PricesRepository
	cache     *cache.SeriesCache
	fetcher   SeriesFetcher
	generator SeriesGenerator
	now       func() time.Time
}

func NewPriceService(repo storage.PricesRepository, seriesCache *cache.SeriesCache, fetcher SeriesFetcher, generator SeriesGenerator) PriceService {
	return &priceService{
		repo:      repo,
		cache:     seriesCache,
		fetcher:   fetcher,
		generator: generator,
		now:       time.Now,
	}
}

// GetPrices returns the windowed history and metrics for symbol.
//
// Behavior:
//   - When the store holds no bar within the last calendar day, the
//     series is re-acquired through the TTL cache (a single in-flight
//     fetch per symbol and period) and atomically replaces the stored
//     history.
//   - Provider unavailability is absorbed here: a synthetic series
//     stands in, the response shape is identical and no upstream
//     error ever escapes.
//   - Storage failures are returned to the caller. An empty window is
//     reported as ErrNoData.
func (s *priceService) GetPrices(ctx context.Context, symbol string, rng models.TimeRange) (*models.PriceReport, error) {
	symbol = NormalizeSymbol(symbol)

	fresh, err := s.repo.IsFresh(ctx, symbol)
	if err != nil {
		return nil, fmt.Errorf("freshness check for %s: %w", symbol, err)
	}

	if !fresh {
		key := cache.Key{Symbol: symbol, Period: rng.FetchPeriod()}
		series, err := s.cache.GetOrCompute(key, func() (models.Series, error) {
			return s.acquire(ctx, symbol, rng)
		})
		if err != nil {
			return nil, err
		}

		if err := s.repo.ReplaceSeries(ctx, symbol, series.Bars); err != nil {
			return nil, fmt.Errorf("replace series for %s: %w", symbol, err)
		}
		logger.L().Info().
			Str("symbol", symbol).
			Str("range", string(rng)).
			Int("bars", len(series.Bars)).
			Bool("synthetic", series.Source == models.SourceSynthetic).
			Msg("price history refreshed")
	}

	bars, err := s.repo.Windowed(ctx, symbol, rng.WindowStart(s.now()))
	if err != nil {
		return nil, fmt.Errorf("window query for %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return nil, fmt.Errorf("%w for %s", ErrNoData, symbol)
	}

	return &models.PriceReport{
		Symbol:  symbol,
		Range:   rng,
		Bars:    bars,
		Metrics: metrics.Compute(bars),
	}, nil
}

// acquire runs one real fetch, substituting a generated series when
// the provider is unavailable. Context errors pass through untouched.
func (s *priceService) acquire(ctx context.Context, symbol string, rng models.TimeRange) (models.Series, error) {
	series, err := s.fetcher.Fetch(ctx, symbol, rng.FetchPeriod())
	if err == nil {
		return series, nil
	}
	if !errors.Is(err, upstream.ErrUnavailable) {
		return models.Series{}, err
	}

	logger.L().Warn().
		Err(err).
		Str("symbol", symbol).
		Int("days", rng.FallbackDays()).
		Msg("provider unavailable, generating synthetic series")
	return s.generator.Generate(symbol, rng.FallbackDays()), nil
}

// NormalizeSymbol trims and uppercases a raw ticker.
func NormalizeSymbol(symbol string) string {
	return strings.ToUpper(strings.TrimSpace(symbol))
}
