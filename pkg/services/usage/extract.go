package usage

import (
	"encoding/json"

	"github.com/costguard/costguard/pkg/models/domain"
)

// shapeMatcher pulls samples out of one known vendor response layout.
// Matchers never fail; an unrecognized layout contributes nothing.
type shapeMatcher func(raw any, filter domain.MatchPredicate, mode domain.AggregationType) []domain.UsageSample

// The vendor has shipped several response layouts over the years and a
// single response can satisfy more than one of them. Every matcher runs
// and every match contributes samples; first-match-wins would silently
// drop data when the vendor mixes layouts.
var shapeMatchers = []shapeMatcher{
	matchSeriesV2,
	matchLegacyUsage,
	matchBareSeries,
	matchParallelArrays,
}

// Extract normalizes a decoded vendor usage response into a flat sample
// list. The filter restricts which measurement type labels count; layouts
// without labels ignore it. Within one timestamp the surviving
// measurements are combined per mode. Output order is unspecified; the
// aggregator sorts.
func Extract(raw any, filter domain.MatchPredicate, mode domain.AggregationType) []domain.UsageSample {
	var samples []domain.UsageSample
	for _, match := range shapeMatchers {
		samples = append(samples, match(raw, filter, mode)...)
	}
	return samples
}

// matchSeriesV2 handles the dimension-based v2 layout:
// {data:[{attributes:{timestamp, measurements:[{usage_type, value}]}}]}
func matchSeriesV2(raw any, filter domain.MatchPredicate, mode domain.AggregationType) []domain.UsageSample {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	data, ok := obj["data"].([]any)
	if !ok {
		return nil
	}

	var out []domain.UsageSample
	for _, entry := range data {
		e, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		attrs, ok := e["attributes"].(map[string]any)
		if !ok {
			continue
		}
		ts, ok := attrs["timestamp"].(string)
		if !ok {
			continue
		}
		measurements, ok := attrs["measurements"].([]any)
		if !ok {
			continue
		}

		var combined float64
		seen := false
		for _, m := range measurements {
			mm, ok := m.(map[string]any)
			if !ok {
				continue
			}
			label, _ := mm["usage_type"].(string)
			if filter != nil && !filter(label) {
				continue
			}
			v, ok := toFloat(mm["value"])
			if !ok {
				continue
			}
			switch {
			case !seen:
				combined = v
				seen = true
			case mode == domain.AggregationMax:
				if v > combined {
					combined = v
				}
			default:
				combined += v
			}
		}
		if seen {
			out = append(out, domain.UsageSample{Timestamp: ts, Value: combined})
		}
	}
	return out
}

// matchLegacyUsage handles the product-family v1 layout:
// {usage:[{timeseries:[{<ts>:value}]}]}
func matchLegacyUsage(raw any, _ domain.MatchPredicate, _ domain.AggregationType) []domain.UsageSample {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	entries, ok := obj["usage"].([]any)
	if !ok {
		return nil
	}

	var out []domain.UsageSample
	for _, entry := range entries {
		e, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		series, ok := e["timeseries"].([]any)
		if !ok {
			continue
		}
		out = append(out, timestampedPoints(series)...)
	}
	return out
}

// matchBareSeries handles a bare array of {<ts>:value} points.
func matchBareSeries(raw any, _ domain.MatchPredicate, _ domain.AggregationType) []domain.UsageSample {
	points, ok := raw.([]any)
	if !ok {
		return nil
	}
	return timestampedPoints(points)
}

// matchParallelArrays handles {timestamps:[...], values:[...]}. The two
// arrays are zipped; trailing entries without a counterpart are dropped.
func matchParallelArrays(raw any, _ domain.MatchPredicate, _ domain.AggregationType) []domain.UsageSample {
	obj, ok := raw.(map[string]any)
	if !ok {
		return nil
	}
	timestamps, ok := obj["timestamps"].([]any)
	if !ok {
		return nil
	}
	values, ok := obj["values"].([]any)
	if !ok {
		return nil
	}

	n := len(timestamps)
	if len(values) < n {
		n = len(values)
	}
	var out []domain.UsageSample
	for i := 0; i < n; i++ {
		ts, ok := timestamps[i].(string)
		if !ok {
			continue
		}
		v, ok := toFloat(values[i])
		if !ok {
			continue
		}
		out = append(out, domain.UsageSample{Timestamp: ts, Value: v})
	}
	return out
}

func timestampedPoints(points []any) []domain.UsageSample {
	var out []domain.UsageSample
	for _, p := range points {
		point, ok := p.(map[string]any)
		if !ok {
			continue
		}
		for ts, raw := range point {
			v, ok := toFloat(raw)
			if !ok {
				continue
			}
			out = append(out, domain.UsageSample{Timestamp: ts, Value: v})
		}
	}
	return out
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case json.Number:
		f, err := n.Float64()
		if err != nil {
			return 0, false
		}
		return f, true
	}
	return 0, false
}
