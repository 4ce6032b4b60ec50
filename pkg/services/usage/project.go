package usage

import (
	"math"
	"time"

	"github.com/costguard/costguard/pkg/models/domain"
)

// Guard constants for the volume projection. The multipliers came out of
// production observation, not a billing rule; tune with care.
const (
	unreliableDailyFactor = 10
	implausibleFactor     = 5
	maxTrendDecay         = -0.5
	maxTrendGrowth        = 1.0
)

// trendWindow is the number of trailing daily points consulted for
// short-term growth.
const trendWindow = 7

// DaysElapsed is the number of days of the month covered so far,
// including today.
func DaysElapsed(today time.Time) int {
	return today.Day()
}

// DaysRemaining is the number of full days left after today; zero on the
// last day of the month.
func DaysRemaining(today time.Time) int {
	return LastDayOfMonth(today) - today.Day()
}

// LastDayOfMonth returns 28..31 for today's month.
func LastDayOfMonth(today time.Time) int {
	first := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}

// Project estimates the metric's total for the full calendar month from
// partial-month data. Capacity metrics (MAX) project from the observed
// peak and never land below it; volume metrics (SUM) extrapolate the
// average daily rate with a clamped trend adjustment and never land below
// what is already consumed.
func Project(daily []domain.DailyValue, currentTotal float64, mode domain.AggregationType, today time.Time) float64 {
	if mode == domain.AggregationMax {
		return projectPeak(daily, currentTotal, today)
	}
	return projectVolume(daily, currentTotal, today)
}

func projectPeak(daily []domain.DailyValue, currentTotal float64, today time.Time) float64 {
	if len(daily) == 0 {
		return currentTotal
	}

	var peak float64
	for _, d := range daily {
		if d.Value > peak {
			peak = d.Value
		}
	}
	if peak == 0 {
		return currentTotal
	}
	if len(daily) < 2 {
		return peak
	}

	window := daily
	if len(window) > trendWindow {
		window = window[len(window)-trendWindow:]
	}
	oldest := window[0].Value
	newest := window[len(window)-1].Value
	if oldest == 0 {
		return peak
	}

	growthRate := (newest - oldest) / oldest
	factor := float64(DaysRemaining(today)) / float64(DaysElapsed(today))
	candidate := peak * (1 + growthRate*factor)
	return math.Max(peak, candidate)
}

func projectVolume(daily []domain.DailyValue, currentTotal float64, today time.Time) float64 {
	remaining := DaysRemaining(today)
	if remaining <= 0 {
		return currentTotal
	}
	if len(daily) == 0 {
		return currentTotal
	}

	var total float64
	for _, d := range daily {
		total += d.Value
	}
	avgDaily := total / float64(len(daily))
	runRate := currentTotal / float64(DaysElapsed(today))
	linear := currentTotal + runRate*float64(remaining)

	// A daily series wildly out of line with the reported running total
	// points at a unit mismatch or a data anomaly; trust the plain run
	// rate instead.
	if avgDaily > runRate*unreliableDailyFactor {
		return math.Max(currentTotal, math.Round(linear))
	}

	projected := currentTotal + avgDaily*float64(remaining)*(1+volumeTrendAdjustment(daily))
	if projected > currentTotal*implausibleFactor {
		projected = linear
	}
	return math.Max(currentTotal, math.Round(projected))
}

// volumeTrendAdjustment compares the last week of daily values against
// the week before it, clamped so a single hot day cannot blow up the
// projection.
func volumeTrendAdjustment(daily []domain.DailyValue) float64 {
	if len(daily) < 2 {
		return 0
	}

	recent := daily
	if len(recent) > trendWindow {
		recent = recent[len(recent)-trendWindow:]
	}
	older := daily[:len(daily)-len(recent)]
	if len(older) > trendWindow {
		older = older[len(older)-trendWindow:]
	}
	if len(older) == 0 {
		return 0
	}

	olderAvg := mean(older)
	if olderAvg == 0 {
		return 0
	}
	adj := (mean(recent) - olderAvg) / olderAvg
	return math.Min(maxTrendGrowth, math.Max(maxTrendDecay, adj))
}

func mean(values []domain.DailyValue) float64 {
	if len(values) == 0 {
		return 0
	}
	var total float64
	for _, v := range values {
		total += v.Value
	}
	return total / float64(len(values))
}
