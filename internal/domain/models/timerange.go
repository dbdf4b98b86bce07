package models

import (
	"fmt"
	"time"
)

// TimeRange is one of the supported history horizons.
type TimeRange string

const (
	Range7D TimeRange = "7d"
	Range1M TimeRange = "1mo"
	Range6M TimeRange = "6mo"
	Range1Y TimeRange = "1y"
)

// ParseTimeRange validates a raw query value. An empty value defaults
// to one month, matching the API's documented default.
func ParseTimeRange(raw string) (TimeRange, error) {
	if raw == "" {
		return Range1M, nil
	}
	switch r := TimeRange(raw); r {
	case Range7D, Range1M, Range6M, Range1Y:
		return r, nil
	}
	return "", fmt.Errorf("invalid range %q (want 7d, 1mo, 6mo or 1y)", raw)
}

// FetchPeriod is the provider-side period string for this range. It is
// currently the range value itself, but the fetch period and the read
// window are allowed to drift apart independently.
func (r TimeRange) FetchPeriod() string { return string(r) }

// WindowDays is the number of calendar days the read window spans.
func (r TimeRange) WindowDays() int {
	switch r {
	case Range7D:
		return 7
	case Range6M:
		return 180
	case Range1Y:
		return 365
	default:
		return 30
	}
}

// FallbackDays is the synthetic series length generated when the
// provider is unavailable for this range.
func (r TimeRange) FallbackDays() int {
	switch r {
	case Range6M:
		return 180
	case Range1Y:
		return 365
	default:
		return 30
	}
}

// WindowStart returns the inclusive lower bound of the read window,
// truncated to midnight UTC.
func (r TimeRange) WindowStart(now time.Time) time.Time {
	day := now.UTC().Truncate(24 * time.Hour)
	return day.AddDate(0, 0, -r.WindowDays())
}
