package usage

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// hourlyResponse builds a parallel-array response with one sample per
// hour starting at startDay (UTC midnight).
func hourlyResponse(startDay string, values []float64) any {
	timestamps := make([]any, len(values))
	vals := make([]any, len(values))
	for i, v := range values {
		day := i / 24
		hour := i % 24
		timestamps[i] = fmt.Sprintf("%sT%02d:00:00Z", addDays(startDay, day), hour)
		vals[i] = v
	}
	return map[string]any{"timestamps": timestamps, "values": vals}
}

func addDays(date string, n int) string {
	// Test fixture dates stay within one month.
	var y, m, d int
	fmt.Sscanf(date, "%d-%d-%d", &y, &m, &d)
	return fmt.Sprintf("%04d-%02d-%02d", y, m, d+n)
}

func TestTrend_NormalizedTo100(t *testing.T) {
	values := make([]float64, 48)
	for i := range values {
		if i < 24 {
			values[i] = 1 // day one: 24 total
		} else {
			values[i] = 2 // day two: 48 total
		}
	}

	trend := Trend(hourlyResponse("2024-03-01", values), 30, nil)

	assert.Equal(t, []int{50, 100}, trend)
}

func TestTrend_BoundsHold(t *testing.T) {
	values := []float64{3, 17, 0.5, 42, 8, 1}
	trend := Trend(hourlyResponse("2024-03-01", values), 30, nil)

	for _, v := range trend {
		assert.GreaterOrEqual(t, v, 0)
		assert.LessOrEqual(t, v, 100)
	}
}

func TestTrend_AllZero(t *testing.T) {
	trend := Trend(hourlyResponse("2024-03-01", []float64{0, 0, 0}), 30, nil)

	assert.Empty(t, trend)
}

func TestTrend_TailSlicing(t *testing.T) {
	// Three days of hourly data but a one-day window: only the last 24
	// samples survive, so only the last day appears.
	values := make([]float64, 72)
	for i := range values {
		values[i] = float64(i/24 + 1)
	}

	trend := Trend(hourlyResponse("2024-03-01", values), 1, nil)

	require.Len(t, trend, 1)
	assert.Equal(t, 100, trend[0])
}

func TestTrend_FilterApplied(t *testing.T) {
	raw := map[string]any{
		"data": []any{
			map[string]any{"attributes": map[string]any{
				"timestamp": "2024-03-01T00:00:00Z",
				"measurements": []any{
					map[string]any{"usage_type": "a", "value": 10.0},
					map[string]any{"usage_type": "b", "value": 90.0},
				},
			}},
		},
	}

	trend := Trend(raw, 30, func(usageType string) bool { return usageType == "a" })

	assert.Equal(t, []int{100}, trend)
}
