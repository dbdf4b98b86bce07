package dto

// SummaryResponse represents the JSON structure returned by the
// POST /api/v1/summarize endpoint. Cached is true when the brief was
// served from the summaries table instead of being composed anew.
type SummaryResponse struct {
	Symbol  string `json:"symbol" example:"SPY"`
	Summary string `json:"summary"`
	Cached  bool   `json:"cached" example:"false"`
}

// SymbolMatch is one hit returned by symbol search.
type SymbolMatch struct {
	Symbol string `json:"symbol" example:"SPY"`
	Name   string `json:"name" example:"SPDR S&P 500 ETF"`
}

// SearchResponse represents the JSON structure returned by the
// GET /api/v1/search/:query endpoint.
type SearchResponse struct {
	Results []SymbolMatch `json:"results"`
}
