package models

// SymbolInfo pairs a ticker with its listing name for search results.
type SymbolInfo struct {
	Symbol string
	Name   string
}
