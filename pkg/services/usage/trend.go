package usage

import (
	"math"
	"sort"

	"github.com/costguard/costguard/pkg/models/domain"
)

// Trend produces a normalized 0-100 series of daily volume for charting.
// The window keeps the last days*24 samples before bucketing; the vendor
// reports hourly, so the sample count stands in for a true day count.
// Trend is always volume-oriented, so buckets sum regardless of how the
// metric itself aggregates.
func Trend(raw any, days int, filter domain.MatchPredicate) []int {
	samples := Extract(raw, filter, domain.AggregationSum)
	sort.Slice(samples, func(i, j int) bool { return samples[i].Timestamp < samples[j].Timestamp })

	if tail := days * 24; tail > 0 && len(samples) > tail {
		samples = samples[len(samples)-tail:]
	}

	daily := AggregateByDay(samples, domain.AggregationSum)

	var peak float64
	for _, d := range daily {
		if d.Value > peak {
			peak = d.Value
		}
	}

	out := make([]int, len(daily))
	if peak == 0 {
		return out
	}
	for i, d := range daily {
		out[i] = int(math.Round(d.Value / peak * 100))
	}
	return out
}
