package upstream

import (
	"math"
	"math/rand"
	"time"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
)

// basePrices seeds plausible synthetic levels per symbol. Unknown
// symbols start from defaultBasePrice.
var basePrices = map[string]float64{
	"AAPL":  180,
	"MSFT":  350,
	"GOOGL": 140,
	"SPY":   450,
	"QQQ":   380,
	"TSLA":  200,
}

const defaultBasePrice = 100

// Generator produces placeholder daily series for when the provider is
// unreachable. The output is shaped like real history (random daily
// moves, intraday spread, volume) but carries no market information.
type Generator struct {
	now func() time.Time
}

// NewGenerator returns a generator using the wall clock.
func NewGenerator() *Generator {
	return &Generator{now: time.Now}
}

// Generate builds days consecutive daily bars for symbol, ending
// today.
//
// Behavior:
//   - Closes follow a random walk with daily moves in [-3%, +3.5%],
//     floored at 70% of the symbol's base price.
//   - High is close scaled by up to +3%, low by up to -3%, open is
//     uniform between low and high, volume uniform in [1e7, 1e8).
//   - Prices are rounded to cents; dates are midnight UTC.
//
// Generation never fails.
func (g *Generator) Generate(symbol string, days int) models.Series {
	base := basePrices[symbol]
	if base == 0 {
		base = defaultBasePrice
	}

	today := g.now().UTC().Truncate(24 * time.Hour)
	price := base
	bars := make([]models.PriceBar, 0, days)

	for i := 0; i < days; i++ {
		move := -0.03 + rand.Float64()*0.065
		price *= 1 + move
		if floor := base * 0.7; price < floor {
			price = floor
		}

		high := price * (1 + rand.Float64()*0.03)
		low := price * (1 - rand.Float64()*0.03)
		open := low + rand.Float64()*(high-low)

		bars = append(bars, models.PriceBar{
			Symbol: symbol,
			Date:   today.AddDate(0, 0, i-days+1),
			Open:   roundCents(open),
			High:   roundCents(high),
			Low:    roundCents(low),
			Close:  roundCents(price),
			Volume: 10_000_000 + rand.Int63n(90_000_000),
		})
	}

	return models.Series{Symbol: symbol, Bars: bars, Source: models.SourceSynthetic}
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}
