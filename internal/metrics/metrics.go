// Package metrics derives risk and return figures from daily price
// windows. Everything here is pure: no I/O, no clock, no logging.
package metrics

import (
	"math"
	"sort"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
)

// tradingDaysPerYear is the annualization factor for daily volatility.
const tradingDaysPerYear = 252

// Compute calculates the metric set for a window of daily bars.
//
// Behavior:
//   - Bars are sorted by date before computing, so callers may pass
//     windows in any order.
//   - Fewer than two bars yields the zero Metrics value.
//   - Returns is the total simple return between the first and last
//     close; Volatility is the population standard deviation of daily
//     simple returns annualized with sqrt(252); MaxDrawdown is the
//     worst decline of the cumulative return path from its running peak.
//   - Every division guards its denominator and contributes zero when
//     the prior close is zero.
func Compute(bars []models.PriceBar) models.Metrics {
	if len(bars) < 2 {
		return models.Metrics{}
	}

	ordered := make([]models.PriceBar, len(bars))
	copy(ordered, bars)
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Date.Before(ordered[j].Date)
	})

	closes := make([]float64, len(ordered))
	for i, b := range ordered {
		closes[i] = b.Close
	}

	var m models.Metrics

	first, last := closes[0], closes[len(closes)-1]
	if first != 0 {
		m.Returns = last/first - 1
	}

	daily := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		if prev := closes[i-1]; prev != 0 {
			daily = append(daily, closes[i]/prev-1)
		} else {
			daily = append(daily, 0)
		}
	}

	m.Volatility = populationStddev(daily) * math.Sqrt(tradingDaysPerYear)
	m.MaxDrawdown = maxDrawdown(daily)

	m.CurrentPrice = last
	prev := closes[len(closes)-2]
	m.PriceChange = last - prev
	if prev != 0 {
		m.PriceChangePct = m.PriceChange / prev
	}

	return m
}

func populationStddev(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	var sum float64
	for _, x := range xs {
		sum += x
	}
	mean := sum / float64(len(xs))

	var ss float64
	for _, x := range xs {
		d := x - mean
		ss += d * d
	}
	return math.Sqrt(ss / float64(len(xs)))
}

// maxDrawdown walks the cumulative return path and tracks the worst
// drop from the running peak. Monotonic paths return 0.
func maxDrawdown(daily []float64) float64 {
	nav, peak := 1.0, 1.0
	var worst float64
	for _, r := range daily {
		nav *= 1 + r
		if nav > peak {
			peak = nav
		}
		if dd := nav/peak - 1; dd < worst {
			worst = dd
		}
	}
	return worst
}
