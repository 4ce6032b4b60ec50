package report

import (
	"time"

	"github.com/costguard/costguard/pkg/models/domain"
	"github.com/costguard/costguard/pkg/services/usage"
)

// trendDays is the charting window for the normalized trend line.
const trendDays = 30

// BuildDimensionUsage runs the full normalization pipeline for one
// dimension: extract, aggregate, project, expand to a month calendar and
// classify against the commitment. Pure over its inputs; today must come
// from the caller.
func BuildDimensionUsage(
	raw any,
	m domain.DimensionMapping,
	c domain.Commitment,
	today time.Time,
) domain.DimensionUsage {
	samples := usage.Extract(raw, m.Match, m.Aggregation)
	daily := usage.AggregateByDay(samples, m.Aggregation)
	total := currentTotal(daily, m.Aggregation)
	projected := usage.Project(daily, total, m.Aggregation, today)
	trend := usage.Trend(raw, trendDays, m.Match)
	monthly := usage.BuildMonthlyDays(daily, total, projected, m.Aggregation, today)
	classification := usage.Classify(total, c.Committed, c.Threshold)

	return domain.DimensionUsage{
		Dimension:     m.Key,
		ProductFamily: m.ProductFamily,
		Unit:          m.Unit,
		Category:      m.Category,
		Aggregation:   m.Aggregation,
		Usage:         total,
		Committed:     c.Committed,
		Threshold:     c.Threshold,
		Projected:     projected,
		Trend:         trend,
		DailyValues:   daily,
		MonthlyDays:   monthly,
		DaysElapsed:   usage.DaysElapsed(today),
		DaysRemaining: usage.DaysRemaining(today),
		Status:        classification.Status,
		Utilization:   classification.Utilization,
	}
}

// currentTotal is the metric's month-to-date figure: accumulated volume
// for SUM metrics, observed peak for MAX metrics.
func currentTotal(daily []domain.DailyValue, mode domain.AggregationType) float64 {
	var total float64
	for _, d := range daily {
		if mode == domain.AggregationMax {
			if d.Value > total {
				total = d.Value
			}
			continue
		}
		total += d.Value
	}
	return total
}
