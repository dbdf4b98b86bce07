package service

import (
	"context"
	"fmt"
	"time"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
	"github.com/marketbriefs/marketbriefs/internal/logger"
	"github.com/marketbriefs/marketbriefs/internal/storage"
)

// SummaryService composes narrative briefs, reusing one already stored
// for the same symbol, day and horizon.
type SummaryService interface {
	Summarize(ctx context.Context, symbol string, rng models.TimeRange) (*models.SummaryResult, error)
}

type summaryService struct {
	repo   storage.PricesRepository
	prices PriceService
	now    func() time.Time
}

func NewSummaryService(repo storage.PricesRepository, prices PriceService) SummaryService {
	return &summaryService{
		repo:   repo,
		prices: prices,
		now:    time.Now,
	}
}

// Summarize returns the brief for symbol over rng. A brief stored
// earlier today for the same horizon is reused verbatim; otherwise the
// price pipeline runs, the brief is composed from its metrics and
// stored for later calls.
func (s *summaryService) Summarize(ctx context.Context, symbol string, rng models.TimeRange) (*models.SummaryResult, error) {
	symbol = NormalizeSymbol(symbol)
	asOf := s.now().UTC().Truncate(24 * time.Hour)

	text, ok, err := s.repo.GetSummary(ctx, symbol, asOf, rng)
	if err != nil {
		return nil, fmt.Errorf("summary lookup for %s: %w", symbol, err)
	}
	if ok {
		return &models.SummaryResult{Symbol: symbol, Text: text, Cached: true}, nil
	}

	report, err := s.prices.GetPrices(ctx, symbol, rng)
	if err != nil {
		return nil, err
	}

	text = ComposeBrief(symbol, report.Metrics, rng)
	if err := s.repo.UpsertSummary(ctx, symbol, asOf, rng, text); err != nil {
		return nil, fmt.Errorf("summary store for %s: %w", symbol, err)
	}
	logger.L().Debug().
		Str("symbol", symbol).
		Str("range", string(rng)).
		Msg("summary composed and stored")

	return &models.SummaryResult{Symbol: symbol, Text: text, Cached: false}, nil
}
