package models

// Metrics summarizes risk and return over a price window.
//
// All ratio fields are unscaled fractions (0.10 means 10%); scaling to
// display percentages happens at the response boundary, never here.
//
// Fields:
//   - Returns: Total simple return between the first and last close.
//   - Volatility: Population standard deviation of daily simple
//     returns, annualized with the square root of 252 trading days.
//   - MaxDrawdown: Largest peak-to-trough decline of the cumulative
//     return path. Zero or negative.
//   - CurrentPrice: Last close in the window.
//   - PriceChange: Absolute change between the last two closes.
//   - PriceChangePct: PriceChange relative to the prior close.
type Metrics struct {
	Returns        float64
	Volatility     float64
	MaxDrawdown    float64
	CurrentPrice   float64
	PriceChange    float64
	PriceChangePct float64
}

// PriceReport bundles the windowed bars for a symbol with the metrics
// computed over exactly that window.
type PriceReport struct {
	Symbol  string
	Range   TimeRange
	Bars    []PriceBar
	Metrics Metrics
}
