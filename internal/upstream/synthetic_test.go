package upstream

import (
	"math"
	"testing"
	"time"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
)

func TestGenerateShape(t *testing.T) {
	fixed := time.Date(2025, 6, 10, 14, 30, 0, 0, time.UTC)
	g := &Generator{now: func() time.Time { return fixed }}

	series := g.Generate("AAPL", 30)

	if series.Source != models.SourceSynthetic {
		t.Errorf("Source = %q, want %q", series.Source, models.SourceSynthetic)
	}
	if series.Symbol != "AAPL" {
		t.Errorf("Symbol = %q, want AAPL", series.Symbol)
	}
	if len(series.Bars) != 30 {
		t.Fatalf("got %d bars, want 30", len(series.Bars))
	}

	today := time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)
	floor := 180 * 0.7

	for i, b := range series.Bars {
		if want := today.AddDate(0, 0, i-29); !b.Date.Equal(want) {
			t.Fatalf("bar %d date = %s, want %s", i, b.Date, want)
		}
		if b.Low > b.Open || b.Open > b.High {
			t.Errorf("bar %d open %v outside [%v, %v]", i, b.Open, b.Low, b.High)
		}
		if b.Low > b.Close || b.Close > b.High {
			t.Errorf("bar %d close %v outside [%v, %v]", i, b.Close, b.Low, b.High)
		}
		if b.Close < floor-0.01 {
			t.Errorf("bar %d close %v below floor %v", i, b.Close, floor)
		}
		if b.Volume < 10_000_000 || b.Volume >= 100_000_000 {
			t.Errorf("bar %d volume %d outside [1e7, 1e8)", i, b.Volume)
		}
		if b.Symbol != "AAPL" {
			t.Errorf("bar %d symbol = %q", i, b.Symbol)
		}
	}
}

func TestGenerateUnknownSymbolUsesDefaultBase(t *testing.T) {
	g := NewGenerator()
	series := g.Generate("ZZZT", 5)

	if len(series.Bars) != 5 {
		t.Fatalf("got %d bars, want 5", len(series.Bars))
	}

	ceiling := 100 * math.Pow(1.035, 5)
	for i, b := range series.Bars {
		if b.Close < 70-0.01 {
			t.Errorf("bar %d close %v below default floor 70", i, b.Close)
		}
		if b.Close > ceiling+0.01 {
			t.Errorf("bar %d close %v above max possible %v", i, b.Close, ceiling)
		}
	}
}

func TestGenerateZeroDays(t *testing.T) {
	if got := NewGenerator().Generate("SPY", 0); len(got.Bars) != 0 {
		t.Errorf("got %d bars, want 0", len(got.Bars))
	}
}
