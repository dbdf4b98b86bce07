package models

import "time"

// PriceBar is a single daily OHLCV observation for a ticker.
// Date is normalized to midnight UTC; (Symbol, Date) is the natural key
// in the prices table.
type PriceBar struct {
	Symbol string
	Date   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume int64
}

// Source identifies where a series came from.
type Source string

const (
	// SourceUpstream marks bars returned by the market data provider.
	SourceUpstream Source = "upstream"

	// SourceSynthetic marks bars produced by the local generator after
	// the provider could not be reached.
	SourceSynthetic Source = "synthetic"
)

// Series is an ordered run of daily bars for one symbol, oldest first,
// tagged with its origin. The origin is logged during refreshes but is
// never persisted or serialized into responses.
type Series struct {
	Symbol string
	Bars   []PriceBar
	Source Source
}
