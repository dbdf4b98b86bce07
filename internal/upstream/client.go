package upstream

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
)

// chartResponse mirrors the provider's v8 chart payload. Null entries
// in the quote arrays decode to zero values and are dropped during
// normalization.
type chartResponse struct {
	Chart struct {
		Result []chartResult `json:"result"`
		Error  *chartError   `json:"error"`
	} `json:"chart"`
}

type chartResult struct {
	Timestamp  []int64 `json:"timestamp"`
	Indicators struct {
		Quote []chartQuote `json:"quote"`
	} `json:"indicators"`
}

type chartQuote struct {
	Open   []float64 `json:"open"`
	High   []float64 `json:"high"`
	Low    []float64 `json:"low"`
	Close  []float64 `json:"close"`
	Volume []int64   `json:"volume"`
}

type chartError struct {
	Code        string `json:"code"`
	Description string `json:"description"`
}

// Client talks to the provider's chart endpoint over HTTP.
//
// The transport retries rate limiting (429), server errors (5xx) and
// network failures with a short backoff; other client errors are not
// retried. Each call is bounded by the configured timeout.
type Client struct {
	http *resty.Client
}

// NewClient builds a chart API client for the given base URL. The
// timeout applies per HTTP call, not to the whole retry sequence.
func NewClient(baseURL string, timeout time.Duration) *Client {
	rc := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(timeout).
		SetHeader("User-Agent", "Mozilla/5.0").
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond).
		SetRetryMaxWaitTime(3 * time.Second).
		AddRetryCondition(retryableStatus)

	return &Client{http: rc}
}

// retryableStatus keeps transport-level retries to transient failures:
// network errors, rate limiting and server errors.
func retryableStatus(r *resty.Response, err error) bool {
	if err != nil {
		return true
	}
	code := r.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

// History returns the daily bars for symbol over period, a provider
// range string such as "1mo". Bars are normalized: all-null rows are
// skipped, dates are truncated to UTC days and the result is sorted
// ascending by date.
func (c *Client) History(ctx context.Context, symbol, period string) ([]models.PriceBar, error) {
	var chart chartResponse

	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("symbol", symbol).
		SetQueryParams(map[string]string{
			"interval": "1d",
			"range":    period,
		}).
		SetResult(&chart).
		Get("/v8/finance/chart/{symbol}")
	if err != nil {
		return nil, fmt.Errorf("chart request: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("chart request: status %d", resp.StatusCode())
	}
	if e := chart.Chart.Error; e != nil {
		return nil, fmt.Errorf("chart api: %s (%s)", e.Description, e.Code)
	}
	if len(chart.Chart.Result) == 0 || len(chart.Chart.Result[0].Indicators.Quote) == 0 {
		return nil, errors.New("chart api: empty result")
	}

	res := chart.Chart.Result[0]
	quote := res.Indicators.Quote[0]

	bars := make([]models.PriceBar, 0, len(res.Timestamp))
	for i, ts := range res.Timestamp {
		o := at(quote.Open, i)
		h := at(quote.High, i)
		l := at(quote.Low, i)
		cl := at(quote.Close, i)
		if o == 0 && h == 0 && l == 0 && cl == 0 {
			continue // null bar (holiday, halted session)
		}

		var vol int64
		if i < len(quote.Volume) {
			vol = quote.Volume[i]
		}

		bars = append(bars, models.PriceBar{
			Symbol: symbol,
			Date:   time.Unix(ts, 0).UTC().Truncate(24 * time.Hour),
			Open:   o,
			High:   h,
			Low:    l,
			Close:  cl,
			Volume: vol,
		})
	}

	sort.Slice(bars, func(i, j int) bool { return bars[i].Date.Before(bars[j].Date) })
	return bars, nil
}

func at(xs []float64, i int) float64 {
	if i < len(xs) {
		return xs[i]
	}
	return 0
}
