package dto

// SummarizeRequest is the JSON body accepted by POST /api/v1/summarize.
// Range is optional and defaults to one month.
type SummarizeRequest struct {
	Symbol string `json:"symbol" binding:"required" example:"SPY"`
	Range  string `json:"range" example:"1mo"`
}
