package service

import (
	"strings"
	"testing"

	"github.com/marketbriefs/marketbriefs/internal/domain/models"
)

func TestComposeBriefFullText(t *testing.T) {
	m := models.Metrics{
		Returns:        0.0742,
		Volatility:     0.1853,
		MaxDrawdown:    -0.0512,
		CurrentPrice:   187.325,
		PriceChange:    1.25,
		PriceChangePct: 0.0067,
	}

	got := ComposeBrief("AAPL", m, models.Range1M)
	want := "AAPL has shown a strong upward trend over the past 1mo, with a total return of 7.42% and currently trading at $187.33. " +
		"The stock is trading relatively flat today, with a daily change of 0.67%.\n\n" +
		"From a risk perspective, AAPL exhibits moderate volatility at 18.53% annualized, with a maximum drawdown of -5.12% during this period. " +
		"This suggests investors should be prepared for potential price swings of this magnitude.\n\n" +
		"The recent price action reflects broader market dynamics and sector-specific factors that typically influence securities in this category. " +
		"Current trading volumes and price levels suggest continued interest from institutional and retail investors."

	if got != want {
		t.Fatalf("brief mismatch:\ngot:  %q\nwant: %q", got, want)
	}
}

func TestComposeBriefTrendPhrases(t *testing.T) {
	tests := []struct {
		returns float64
		phrase  string
	}{
		{0.10, "strong upward"},
		{0.03, "modest upward"},
		{-0.02, "sideways to slightly negative"},
		{-0.10, "significant downward"},
	}

	for _, tt := range tests {
		got := ComposeBrief("SPY", models.Metrics{Returns: tt.returns}, models.Range1Y)
		if !strings.Contains(got, "a "+tt.phrase+" trend") {
			t.Fatalf("returns %v: expected trend %q in %q", tt.returns, tt.phrase, got)
		}
	}
}

func TestComposeBriefRiskPhrases(t *testing.T) {
	tests := []struct {
		volatility float64
		phrase     string
	}{
		{0.35, "high volatility"},
		{0.25, "moderate to high volatility"},
		{0.17, "moderate volatility"},
		{0.10, "relatively low volatility"},
	}

	for _, tt := range tests {
		got := ComposeBrief("SPY", models.Metrics{Volatility: tt.volatility}, models.Range1Y)
		if !strings.Contains(got, "exhibits "+tt.phrase) {
			t.Fatalf("volatility %v: expected %q in %q", tt.volatility, tt.phrase, got)
		}
	}
}

func TestComposeBriefDailyNotes(t *testing.T) {
	tests := []struct {
		changePct float64
		phrase    string
	}{
		{0.04, "notable volatility in today's session"},
		{-0.04, "notable volatility in today's session"},
		{0.02, "showing strength in today's trading"},
		{-0.02, "under pressure in today's session"},
		{0.005, "trading relatively flat today"},
		{0, "trading relatively flat today"},
	}

	for _, tt := range tests {
		got := ComposeBrief("SPY", models.Metrics{PriceChangePct: tt.changePct}, models.Range7D)
		if !strings.Contains(got, tt.phrase) {
			t.Fatalf("change %v: expected %q in %q", tt.changePct, tt.phrase, got)
		}
	}
}

func TestComposeBriefInvestorNote(t *testing.T) {
	up := ComposeBrief("SPY", models.Metrics{Returns: 0.01}, models.Range1M)
	if !strings.Contains(up, "continued interest from institutional and retail investors") {
		t.Fatalf("positive returns: unexpected closing note in %q", up)
	}

	down := ComposeBrief("SPY", models.Metrics{Returns: -0.01}, models.Range1M)
	if !strings.Contains(down, "some profit-taking or risk-off sentiment among market participants") {
		t.Fatalf("negative returns: unexpected closing note in %q", down)
	}
}

func TestDisplay(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{10, "10"},
		{17.345, "17.35"},
		{-6.4844, "-6.48"},
		{451.555, "451.56"},
		{0, "0"},
		{0.5, "0.5"},
	}

	for _, tt := range tests {
		if got := display(tt.in); got != tt.want {
			t.Fatalf("display(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
