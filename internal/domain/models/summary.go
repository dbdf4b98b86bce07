package models

// SummaryResult is a narrative brief for a symbol together with
// whether it was served from the summaries table or freshly composed.
type SummaryResult struct {
	Symbol string
	Text   string
	Cached bool
}
