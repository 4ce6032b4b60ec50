package usage

import (
	"sort"

	"github.com/costguard/costguard/pkg/models/domain"
)

// AggregateByDay buckets samples by the date portion of their timestamp
// and combines each bucket per mode. Samples are sorted lexically first;
// for ISO-8601 strings that matches chronological order without parsing
// timezones. Zero-valued samples are dropped before bucketing so that
// "no data reported" and "reported zero" do not pollute the trend and
// projection downstream.
func AggregateByDay(samples []domain.UsageSample, mode domain.AggregationType) []domain.DailyValue {
	sorted := make([]domain.UsageSample, len(samples))
	copy(sorted, samples)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Timestamp < sorted[j].Timestamp })

	totals := make(map[string]float64)
	var order []string
	for _, s := range sorted {
		if len(s.Timestamp) < 10 || s.Value == 0 {
			continue
		}
		day := s.Timestamp[:10]
		current, seen := totals[day]
		switch {
		case !seen:
			order = append(order, day)
			totals[day] = s.Value
		case mode == domain.AggregationMax:
			if s.Value > current {
				totals[day] = s.Value
			}
		default:
			totals[day] = current + s.Value
		}
	}

	out := make([]domain.DailyValue, 0, len(order))
	for _, day := range order {
		out = append(out, domain.DailyValue{Date: day, Value: totals[day]})
	}
	return out
}
