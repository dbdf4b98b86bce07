package service

import (
	"fmt"
	"math"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
)

// ComposeBrief renders the templated narrative for a symbol from its
// window metrics. Thresholds and interpolated values operate on the
// percentage scale shown to users, not on raw fractions.
func ComposeBrief(symbol string, m models.Metrics, rng models.TimeRange) string {
	returns := m.Returns * 100
	volatility := m.Volatility * 100
	drawdown := m.MaxDrawdown * 100
	changePct := m.PriceChangePct * 100

	var trend string
	switch {
	case returns > 5:
		trend = "strong upward"
	case returns > 0:
		trend = "modest upward"
	case returns > -5:
		trend = "sideways to slightly negative"
	default:
		trend = "significant downward"
	}

	var riskLevel string
	switch {
	case volatility > 30:
		riskLevel = "high"
	case volatility > 20:
		riskLevel = "moderate to high"
	case volatility > 15:
		riskLevel = "moderate"
	default:
		riskLevel = "relatively low"
	}

	var dailyNote string
	switch {
	case math.Abs(changePct) > 3:
		dailyNote = "with notable volatility in today's session"
	case changePct > 1:
		dailyNote = "showing strength in today's trading"
	case changePct < -1:
		dailyNote = "under pressure in today's session"
	default:
		dailyNote = "trading relatively flat today"
	}

	investorNote := "continued interest from institutional and retail investors"
	if returns < 0 {
		investorNote = "some profit-taking or risk-off sentiment among market participants"
	}

	var b strings.Builder
	fmt.Fprintf(&b,
		"%s has shown a %s trend over the past %s, with a total return of %s%% and currently trading at $%s. The stock is %s, with a daily change of %s%%.\n\n",
		symbol, trend, rng, display(returns), display(m.CurrentPrice), dailyNote, display(changePct))
	fmt.Fprintf(&b,
		"From a risk perspective, %s exhibits %s volatility at %s%% annualized, with a maximum drawdown of %s%% during this period. This suggests investors should be prepared for potential price swings of this magnitude.\n\n",
		symbol, riskLevel, display(volatility), display(drawdown))
	fmt.Fprintf(&b,
		"The recent price action reflects broader market dynamics and sector-specific factors that typically influence securities in this category. Current trading volumes and price levels suggest %s.",
		investorNote)

	return b.String()
}

// display renders a value rounded to two decimals without trailing
// zeros.
func display(v float64) string {
	return decimal.NewFromFloat(v).Round(2).String()
}
