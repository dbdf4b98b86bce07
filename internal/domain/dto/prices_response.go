package dto

import (
	"github.com/shopspring/decimal"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
)

// PriceBarResponse is one OHLCV row in API responses. Dates are plain
// calendar days.
type PriceBarResponse struct {
	Date   string  `json:"date" example:"2025-09-12"`
	Open   float64 `json:"open" example:"449.20"`
	High   float64 `json:"high" example:"452.75"`
	Low    float64 `json:"low" example:"448.10"`
	Close  float64 `json:"close" example:"451.56"`
	Volume int64   `json:"volume" example:"51230000"`
}

// MetricsResponse carries the display form of the computed metrics:
// ratio fields are scaled to percentages and everything is rounded to
// two decimals.
//
// Fields match the API contract and may differ from internal domain
// models. This keeps the engine's unscaled fractions out of the wire
// format.
type MetricsResponse struct {
	Returns        float64 `json:"returns" example:"4.21"`
	Volatility     float64 `json:"volatility" example:"17.35"`
	MaxDrawdown    float64 `json:"max_drawdown" example:"-6.48"`
	CurrentPrice   float64 `json:"current_price" example:"451.56"`
	PriceChange    float64 `json:"price_change" example:"1.23"`
	PriceChangePct float64 `json:"price_change_pct" example:"0.27"`
}

// PricesResponse represents the JSON structure returned by the
// GET /api/v1/prices endpoint.
type PricesResponse struct {
	Symbol  string             `json:"symbol" example:"SPY"`
	Range   string             `json:"range" example:"1mo"`
	Data    []PriceBarResponse `json:"data"`
	Metrics MetricsResponse    `json:"metrics"`
}

// NewPricesResponse maps a computed report onto the wire shape.
func NewPricesResponse(report *models.PriceReport) PricesResponse {
	data := make([]PriceBarResponse, 0, len(report.Bars))
	for _, b := range report.Bars {
		data = append(data, PriceBarResponse{
			Date:   b.Date.Format("2006-01-02"),
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}
	return PricesResponse{
		Symbol:  report.Symbol,
		Range:   string(report.Range),
		Data:    data,
		Metrics: NewMetricsResponse(report.Metrics),
	}
}

// NewMetricsResponse scales fraction-valued metrics to percentages and
// rounds for display. This is the only place rounding happens.
func NewMetricsResponse(m models.Metrics) MetricsResponse {
	return MetricsResponse{
		Returns:        Percent(m.Returns),
		Volatility:     Percent(m.Volatility),
		MaxDrawdown:    Percent(m.MaxDrawdown),
		CurrentPrice:   Round2(m.CurrentPrice),
		PriceChange:    Round2(m.PriceChange),
		PriceChangePct: Percent(m.PriceChangePct),
	}
}

// Percent converts a fraction to a percentage rounded to two decimals.
func Percent(v float64) float64 {
	return Round2(v * 100)
}

// Round2 rounds half away from zero to two decimal places.
func Round2(v float64) float64 {
	f, _ := decimal.NewFromFloat(v).Round(2).Float64()
	return f
}
