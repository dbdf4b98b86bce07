package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/marketbriefs/marketbriefs/internal/cache"
	"github.com/marketbriefs/marketbriefs/internal/domain/models"
	"github.com/marketbriefs/marketbriefs/internal/upstream"
)

var errStub = errors.New("stub failure")

// stubRepo fakes the prices repository. Windowed echoes whatever the
// last ReplaceSeries stored unless windowFn overrides it.
type stubRepo struct {
	freshFn         func(symbol string) (bool, error)
	replaceFn       func(symbol string, bars []models.PriceBar) error
	windowFn        func(symbol string, since time.Time) ([]models.PriceBar, error)
	getSummaryFn    func(symbol string, asOf time.Time, horizon models.TimeRange) (string, bool, error)
	upsertSummaryFn func(symbol string, asOf time.Time, horizon models.TimeRange, text string) error

	freshSymbol  string
	replaceCalls int
	replaced     []models.PriceBar
	upserted     string
}

func (s *stubRepo) IsFresh(_ context.Context, symbol string) (bool, error) {
	s.freshSymbol = symbol
	if s.freshFn != nil {
		return s.freshFn(symbol)
	}
	return false, nil
}

func (s *stubRepo) ReplaceSeries(_ context.Context, symbol string, bars []models.PriceBar) error {
	s.replaceCalls++
	s.replaced = bars
	if s.replaceFn != nil {
		return s.replaceFn(symbol, bars)
	}
	return nil
}

func (s *stubRepo) Windowed(_ context.Context, symbol string, since time.Time) ([]models.PriceBar, error) {
	if s.windowFn != nil {
		return s.windowFn(symbol, since)
	}
	return s.replaced, nil
}

func (s *stubRepo) GetSummary(_ context.Context, symbol string, asOf time.Time, horizon models.TimeRange) (string, bool, error) {
	if s.getSummaryFn != nil {
		return s.getSummaryFn(symbol, asOf, horizon)
	}
	return "", false, nil
}

func (s *stubRepo) UpsertSummary(_ context.Context, symbol string, asOf time.Time, horizon models.TimeRange, text string) error {
	s.upserted = text
	if s.upsertSummaryFn != nil {
		return s.upsertSummaryFn(symbol, asOf, horizon, text)
	}
	return nil
}

type stubFetcher struct {
	calls  int
	period string
	fn     func(symbol, period string) (models.Series, error)
}

func (s *stubFetcher) Fetch(_ context.Context, symbol, period string) (models.Series, error) {
	s.calls++
	s.period = period
	return s.fn(symbol, period)
}

type stubGenerator struct {
	calls  int
	symbol string
	days   int
	series models.Series
}

func (s *stubGenerator) Generate(symbol string, days int) models.Series {
	s.calls++
	s.symbol = symbol
	s.days = days
	return s.series
}

func barsFor(symbol string, closes ...float64) []models.PriceBar {
	start := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	bars := make([]models.PriceBar, 0, len(closes))
	for i, c := range closes {
		bars = append(bars, models.PriceBar{
			Symbol: symbol,
			Date:   start.AddDate(0, 0, i),
			Open:   c - 1,
			High:   c + 1,
			Low:    c - 2,
			Close:  c,
			Volume: 1_000_000,
		})
	}
	return bars
}

func newTestService(repo *stubRepo, fetcher *stubFetcher, generator SeriesGenerator) PriceService {
	return NewPriceService(repo, cache.NewSeriesCache(time.Minute), fetcher, generator)
}

func TestGetPricesFreshSkipsFetch(t *testing.T) {
	repo := &stubRepo{
		freshFn: func(string) (bool, error) { return true, nil },
		windowFn: func(string, time.Time) ([]models.PriceBar, error) {
			return barsFor("AAPL", 100, 110), nil
		},
	}
	fetcher := &stubFetcher{fn: func(string, string) (models.Series, error) {
		return models.Series{}, errStub
	}}

	svc := newTestService(repo, fetcher, &stubGenerator{})
	report, err := svc.GetPrices(context.Background(), "AAPL", models.Range1M)
	if err != nil {
		t.Fatalf("GetPrices returned error: %v", err)
	}

	if fetcher.calls != 0 {
		t.Fatalf("expected no fetch for fresh data, got %d calls", fetcher.calls)
	}
	if repo.replaceCalls != 0 {
		t.Fatalf("expected no replace for fresh data, got %d calls", repo.replaceCalls)
	}
	if report.Symbol != "AAPL" || report.Range != models.Range1M {
		t.Fatalf("unexpected report envelope: %+v", report)
	}
	if len(report.Bars) != 2 {
		t.Fatalf("expected 2 bars, got %d", len(report.Bars))
	}
	if report.Metrics.CurrentPrice != 110 {
		t.Fatalf("expected current price 110, got %v", report.Metrics.CurrentPrice)
	}
}

func TestGetPricesStaleFetchesAndReplaces(t *testing.T) {
	fetched := barsFor("MSFT", 300, 310, 320)
	var gotSince time.Time

	repo := &stubRepo{
		windowFn: func(_ string, since time.Time) ([]models.PriceBar, error) {
			gotSince = since
			return fetched, nil
		},
	}
	fetcher := &stubFetcher{fn: func(string, string) (models.Series, error) {
		return models.Series{Symbol: "MSFT", Bars: fetched, Source: models.SourceUpstream}, nil
	}}

	fixed := time.Date(2025, 3, 10, 15, 30, 0, 0, time.UTC)
	svc := &priceService{
		repo:      repo,
		cache:     cache.NewSeriesCache(time.Minute),
		fetcher:   fetcher,
		generator: &stubGenerator{},
		now:       func() time.Time { return fixed },
	}

	report, err := svc.GetPrices(context.Background(), "MSFT", models.Range6M)
	if err != nil {
		t.Fatalf("GetPrices returned error: %v", err)
	}

	if fetcher.calls != 1 {
		t.Fatalf("expected 1 fetch, got %d", fetcher.calls)
	}
	if fetcher.period != "6mo" {
		t.Fatalf("expected fetch period 6mo, got %q", fetcher.period)
	}
	if repo.replaceCalls != 1 {
		t.Fatalf("expected 1 replace, got %d", repo.replaceCalls)
	}
	if len(repo.replaced) != 3 {
		t.Fatalf("expected 3 bars replaced, got %d", len(repo.replaced))
	}
	if want := models.Range6M.WindowStart(fixed); !gotSince.Equal(want) {
		t.Fatalf("expected window start %v, got %v", want, gotSince)
	}
	if report.Metrics.CurrentPrice != 320 {
		t.Fatalf("expected current price 320, got %v", report.Metrics.CurrentPrice)
	}
}

// A provider outage must be invisible to the caller: the response
// carries a full generated month of history with metrics.
func TestGetPricesSyntheticFallback(t *testing.T) {
	repo := &stubRepo{}
	fetcher := &stubFetcher{fn: func(string, string) (models.Series, error) {
		return models.Series{}, fmt.Errorf("%w after 2 attempts: connection refused", upstream.ErrUnavailable)
	}}

	svc := newTestService(repo, fetcher, upstream.NewGenerator())
	report, err := svc.GetPrices(context.Background(), "spy", models.Range1M)
	if err != nil {
		t.Fatalf("GetPrices returned error: %v", err)
	}

	if fetcher.calls != 1 {
		t.Fatalf("expected 1 fetch attempt, got %d", fetcher.calls)
	}
	if report.Symbol != "SPY" {
		t.Fatalf("expected normalized symbol SPY, got %q", report.Symbol)
	}
	if len(report.Bars) != 30 {
		t.Fatalf("expected 30 synthetic bars, got %d", len(report.Bars))
	}
	last := report.Bars[len(report.Bars)-1]
	if report.Metrics.CurrentPrice != last.Close {
		t.Fatalf("expected current price %v, got %v", last.Close, report.Metrics.CurrentPrice)
	}
	if report.Metrics.Volatility <= 0 {
		t.Fatalf("expected positive volatility over synthetic series, got %v", report.Metrics.Volatility)
	}
}

func TestGetPricesFallbackDaysPerRange(t *testing.T) {
	tests := []struct {
		rng  models.TimeRange
		days int
	}{
		{models.Range7D, 30},
		{models.Range1M, 30},
		{models.Range6M, 180},
		{models.Range1Y, 365},
	}

	for _, tt := range tests {
		t.Run(string(tt.rng), func(t *testing.T) {
			fetcher := &stubFetcher{fn: func(string, string) (models.Series, error) {
				return models.Series{}, upstream.ErrUnavailable
			}}
			gen := &stubGenerator{series: models.Series{
				Symbol: "TSLA",
				Bars:   barsFor("TSLA", 200, 210),
				Source: models.SourceSynthetic,
			}}

			svc := newTestService(&stubRepo{}, fetcher, gen)
			if _, err := svc.GetPrices(context.Background(), "TSLA", tt.rng); err != nil {
				t.Fatalf("GetPrices returned error: %v", err)
			}
			if gen.calls != 1 {
				t.Fatalf("expected 1 generate call, got %d", gen.calls)
			}
			if gen.days != tt.days {
				t.Fatalf("expected %d fallback days, got %d", tt.days, gen.days)
			}
			if gen.symbol != "TSLA" {
				t.Fatalf("expected generate for TSLA, got %q", gen.symbol)
			}
		})
	}
}

func TestGetPricesNoData(t *testing.T) {
	repo := &stubRepo{
		freshFn:  func(string) (bool, error) { return true, nil },
		windowFn: func(string, time.Time) ([]models.PriceBar, error) { return nil, nil },
	}

	svc := newTestService(repo, &stubFetcher{}, &stubGenerator{})
	_, err := svc.GetPrices(context.Background(), "GOOGL", models.Range1Y)
	if !errors.Is(err, ErrNoData) {
		t.Fatalf("expected ErrNoData, got %v", err)
	}
}

func TestGetPricesStorageErrors(t *testing.T) {
	tests := []struct {
		name string
		repo *stubRepo
	}{
		{
			name: "freshness check fails",
			repo: &stubRepo{freshFn: func(string) (bool, error) { return false, errStub }},
		},
		{
			name: "replace fails",
			repo: &stubRepo{replaceFn: func(string, []models.PriceBar) error { return errStub }},
		},
		{
			name: "window query fails",
			repo: &stubRepo{
				freshFn:  func(string) (bool, error) { return true, nil },
				windowFn: func(string, time.Time) ([]models.PriceBar, error) { return nil, errStub },
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fetcher := &stubFetcher{fn: func(string, string) (models.Series, error) {
				return models.Series{Symbol: "SPY", Bars: barsFor("SPY", 100, 101)}, nil
			}}

			svc := newTestService(tt.repo, fetcher, &stubGenerator{})
			_, err := svc.GetPrices(context.Background(), "SPY", models.Range1M)
			if !errors.Is(err, errStub) {
				t.Fatalf("expected wrapped stub failure, got %v", err)
			}
		})
	}
}

func TestGetPricesFetchErrorPropagates(t *testing.T) {
	fetcher := &stubFetcher{fn: func(string, string) (models.Series, error) {
		return models.Series{}, errStub
	}}
	gen := &stubGenerator{}

	svc := newTestService(&stubRepo{}, fetcher, gen)
	_, err := svc.GetPrices(context.Background(), "SPY", models.Range1M)
	if !errors.Is(err, errStub) {
		t.Fatalf("expected stub failure, got %v", err)
	}
	if gen.calls != 0 {
		t.Fatalf("synthetic fallback must not run for non-availability errors, got %d calls", gen.calls)
	}
}

func TestGetPricesNormalizesSymbol(t *testing.T) {
	repo := &stubRepo{
		freshFn: func(string) (bool, error) { return true, nil },
		windowFn: func(symbol string, _ time.Time) ([]models.PriceBar, error) {
			return barsFor(symbol, 100, 101), nil
		},
	}

	svc := newTestService(repo, &stubFetcher{}, &stubGenerator{})
	report, err := svc.GetPrices(context.Background(), "  spy ", models.Range7D)
	if err != nil {
		t.Fatalf("GetPrices returned error: %v", err)
	}
	if repo.freshSymbol != "SPY" {
		t.Fatalf("expected repository queried with SPY, got %q", repo.freshSymbol)
	}
	if report.Symbol != "SPY" {
		t.Fatalf("expected report symbol SPY, got %q", report.Symbol)
	}
}

func TestGetPricesCacheSharesFetchAcrossCalls(t *testing.T) {
	repo := &stubRepo{}
	fetcher := &stubFetcher{fn: func(string, string) (models.Series, error) {
		return models.Series{Symbol: "QQQ", Bars: barsFor("QQQ", 380, 385), Source: models.SourceUpstream}, nil
	}}

	svc := newTestService(repo, fetcher, &stubGenerator{})
	for i := 0; i < 3; i++ {
		if _, err := svc.GetPrices(context.Background(), "QQQ", models.Range1M); err != nil {
			t.Fatalf("call %d returned error: %v", i, err)
		}
	}

	if fetcher.calls != 1 {
		t.Fatalf("expected a single upstream fetch across calls, got %d", fetcher.calls)
	}
	if repo.replaceCalls != 3 {
		t.Fatalf("expected replace on every stale read, got %d", repo.replaceCalls)
	}
}

// End to end through the real pipeline pieces: a dead provider behind
// the real retrier, the real TTL cache and the real generator. The
// caller sees a full synthetic month with metrics, never an error, and
// the second call never reaches the provider at all.
func TestGetPricesDeadProviderEndToEnd(t *testing.T) {
	var hits int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&hits, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	repo := &stubRepo{}
	fetcher := upstream.NewFetcher(upstream.NewClient(srv.URL, time.Second), 1)
	svc := NewPriceService(repo, cache.NewSeriesCache(time.Minute), fetcher, upstream.NewGenerator())

	report, err := svc.GetPrices(context.Background(), "AAPL", models.Range1M)
	if err != nil {
		t.Fatalf("GetPrices returned error: %v", err)
	}

	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("expected 1 provider hit, got %d", n)
	}
	if len(report.Bars) != 30 {
		t.Fatalf("expected 30 synthetic bars, got %d", len(report.Bars))
	}
	if report.Symbol != "AAPL" || report.Range != models.Range1M {
		t.Fatalf("unexpected report envelope: %+v", report)
	}
	last := report.Bars[len(report.Bars)-1]
	if report.Metrics.CurrentPrice != last.Close {
		t.Fatalf("expected current price %v, got %v", last.Close, report.Metrics.CurrentPrice)
	}

	if _, err := svc.GetPrices(context.Background(), "AAPL", models.Range1M); err != nil {
		t.Fatalf("second call returned error: %v", err)
	}
	if n := atomic.LoadInt32(&hits); n != 1 {
		t.Fatalf("cache miss reached the provider again: %d hits", n)
	}
	if repo.replaceCalls != 2 {
		t.Fatalf("expected a replace per stale read, got %d", repo.replaceCalls)
	}
}

func TestNormalizeSymbol(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"spy", "SPY"},
		{" Brk-b ", "BRK-B"},
		{"AAPL", "AAPL"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := NormalizeSymbol(tt.in); got != tt.want {
			t.Fatalf("NormalizeSymbol(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
