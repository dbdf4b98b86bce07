package api

import (
	"bytes"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
	"github.com/marketbriefs/marketbriefs/internal/service"
)

func TestWriteCSV_GoldenOutput(t *testing.T) {
	report := &models.PriceReport{
		Symbol: "SPY",
		Range:  models.Range1M,
		Bars: []models.PriceBar{
			{Date: time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), Open: 449.2, High: 452.75, Low: 448.1, Close: 451.56, Volume: 51230000},
		},
		Metrics: models.Metrics{
			Returns:        0.0421,
			Volatility:     0.1735,
			MaxDrawdown:    -0.0648,
			CurrentPrice:   451.56,
			PriceChange:    1.23,
			PriceChangePct: 0.0027,
		},
	}
	exportedAt := time.Date(2025, 3, 5, 10, 30, 0, 0, time.UTC)

	var buf bytes.Buffer
	if err := writeCSV(&buf, report, exportedAt); err != nil {
		t.Fatalf("writeCSV: %v", err)
	}

	want := strings.Join([]string{
		"Symbol,SPY",
		"Range,1mo",
		"Export Date,2025-03-05 10:30:00",
		"",
		"Metrics",
		"Current Price,$451.56",
		"Price Change,$1.23 (0.27%)",
		"Total Return,4.21%",
		"Volatility,17.35%",
		"Max Drawdown,-6.48%",
		"",
		"Date,Open,High,Low,Close,Volume",
		"2025-03-03,449.2,452.75,448.1,451.56,51230000",
	}, "\n") + "\n"

	if got := buf.String(); got != want {
		t.Fatalf("unexpected csv output:\n got: %q\nwant: %q", got, want)
	}
}

func TestExport_TableDriven(t *testing.T) {
	cases := []struct {
		name   string
		svc    *mockPriceService
		path   string
		status int
		assert func(t *testing.T, w *httptest.ResponseRecorder)
	}{
		{
			name:   "invalid range",
			svc:    &mockPriceService{},
			path:   "/api/v1/export/SPY?range=2w",
			status: http.StatusBadRequest,
		},
		{
			name:   "no data in window",
			svc:    &mockPriceService{err: fmt.Errorf("windowed series for SPY: %w", service.ErrNoData)},
			path:   "/api/v1/export/SPY",
			status: http.StatusNotFound,
		},
		{
			name:   "success",
			svc:    &mockPriceService{report: sampleReport("SPY", models.Range1M)},
			path:   "/api/v1/export/spy?range=1mo",
			status: http.StatusOK,
			assert: func(t *testing.T, w *httptest.ResponseRecorder) {
				if ct := w.Header().Get("Content-Type"); ct != "text/csv" {
					t.Fatalf("expected text/csv, got %q", ct)
				}
				cd := w.Header().Get("Content-Disposition")
				if cd != "attachment; filename=SPY_1mo_data.csv" {
					t.Fatalf("unexpected disposition: %q", cd)
				}
				body := w.Body.String()
				if !strings.Contains(body, "Symbol,SPY") || !strings.Contains(body, "2025-03-03,") {
					t.Fatalf("csv body missing expected rows: %s", body)
				}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := setupRouterWithMocks(tc.svc, &mockSummaryService{})
			req := httptest.NewRequest(http.MethodGet, tc.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			if w.Code != tc.status {
				t.Fatalf("expected %d, got %d (body=%s)", tc.status, w.Code, w.Body.String())
			}
			if tc.assert != nil {
				tc.assert(t, w)
			}
		})
	}
}
