package service

import (
	"strings"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
)

// maxSearchResults caps how many matches a single query returns.
const maxSearchResults = 10

// commonSymbols is the static ticker catalog searched by SearchSymbols,
// ordered roughly by how often users look them up.
var commonSymbols = []models.SymbolInfo{
	{Symbol: "SPY", Name: "SPDR S&P 500 ETF Trust"},
	{Symbol: "QQQ", Name: "Invesco QQQ Trust"},
	{Symbol: "VTI", Name: "Vanguard Total Stock Market ETF"},
	{Symbol: "AAPL", Name: "Apple Inc."},
	{Symbol: "MSFT", Name: "Microsoft Corporation"},
	{Symbol: "GOOGL", Name: "Alphabet Inc. Class A"},
	{Symbol: "AMZN", Name: "Amazon.com Inc."},
	{Symbol: "TSLA", Name: "Tesla Inc."},
	{Symbol: "NVDA", Name: "NVIDIA Corporation"},
	{Symbol: "META", Name: "Meta Platforms Inc."},
	{Symbol: "BRK-B", Name: "Berkshire Hathaway Inc. Class B"},
	{Symbol: "JNJ", Name: "Johnson & Johnson"},
	{Symbol: "V", Name: "Visa Inc."},
	{Symbol: "WMT", Name: "Walmart Inc."},
	{Symbol: "JPM", Name: "JPMorgan Chase & Co."},
}

// SearchSymbols matches query against the catalog, case-insensitively,
// on symbol or name substring. Catalog order is preserved and at most
// maxSearchResults entries come back.
func SearchSymbols(query string) []models.SymbolInfo {
	q := strings.ToUpper(strings.TrimSpace(query))
	if q == "" {
		return nil
	}

	var matches []models.SymbolInfo
	for _, info := range commonSymbols {
		if strings.Contains(info.Symbol, q) ||
			strings.Contains(strings.ToUpper(info.Name), q) {
			matches = append(matches, info)
			if len(matches) == maxSearchResults {
				break
			}
		}
	}
	return matches
}
