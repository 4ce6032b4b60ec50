package usage

import (
	"testing"

	"github.com/costguard/costguard/pkg/models/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildMonthlyDays_Completeness(t *testing.T) {
	for _, date := range []string{"2024-03-10", "2024-02-01", "2023-02-28", "2024-04-30"} {
		t.Run(date, func(t *testing.T) {
			today := day(t, date)
			days := BuildMonthlyDays(nil, 0, 0, domain.AggregationSum, today)
			assert.Len(t, days, LastDayOfMonth(today))
		})
	}
}

func TestBuildMonthlyDays_ForecastFlags(t *testing.T) {
	today := day(t, "2024-03-10")
	days := BuildMonthlyDays(dailySeries(5, 5), 10, 100, domain.AggregationSum, today)

	for i, d := range days {
		if i < 10 {
			assert.False(t, d.IsForecast, "day %d", i+1)
		} else {
			assert.True(t, d.IsForecast, "day %d", i+1)
		}
	}
}

func TestBuildMonthlyDays_Sum_CumulativeWithGaps(t *testing.T) {
	daily := []domain.DailyValue{
		{Date: "2024-03-01", Value: 10},
		{Date: "2024-03-03", Value: 20},
	}
	today := day(t, "2024-03-04")

	days := BuildMonthlyDays(daily, 30, 300, domain.AggregationSum, today)

	assert.Equal(t, 10.0, days[0].Value)
	assert.Equal(t, 10.0, days[1].Value) // gap carries the running total
	assert.Equal(t, 30.0, days[2].Value)
	assert.Equal(t, 30.0, days[3].Value)
}

func TestBuildMonthlyDays_Sum_ActualMonotonic(t *testing.T) {
	daily := dailySeries(3, 7, 2, 9, 1)
	today := day(t, "2024-03-05")

	days := BuildMonthlyDays(daily, 22, 100, domain.AggregationSum, today)

	for i := 1; i < len(days); i++ {
		if days[i].IsForecast {
			break
		}
		assert.GreaterOrEqual(t, days[i].Value, days[i-1].Value)
	}
}

func TestBuildMonthlyDays_Sum_LastDayExactlyProjected(t *testing.T) {
	daily := dailySeries(10, 20, 30)
	today := day(t, "2024-03-03")
	projected := 777.77

	days := BuildMonthlyDays(daily, 60, projected, domain.AggregationSum, today)

	require.Len(t, days, 31)
	assert.Equal(t, projected, days[30].Value)
	assert.True(t, days[30].IsForecast)
}

func TestBuildMonthlyDays_Sum_ForecastInterpolatesLinearly(t *testing.T) {
	daily := dailySeries(10)
	today := day(t, "2024-03-29")

	days := BuildMonthlyDays(daily, 10, 40, domain.AggregationSum, today)

	// Two forecast days stepping from 10 to 40.
	assert.InDelta(t, 25.0, days[29].Value, 1e-9)
	assert.Equal(t, 40.0, days[30].Value)
}

func TestBuildMonthlyDays_Sum_LastDayOfMonthNoForecast(t *testing.T) {
	daily := dailySeries(10)
	today := day(t, "2024-03-31")

	days := BuildMonthlyDays(daily, 10, 99, domain.AggregationSum, today)

	require.Len(t, days, 31)
	for _, d := range days {
		assert.False(t, d.IsForecast)
	}
}

func TestBuildMonthlyDays_Max_ActualGapAndForecast(t *testing.T) {
	daily := []domain.DailyValue{
		{Date: "2024-03-01", Value: 40},
		{Date: "2024-03-03", Value: 45},
	}
	today := day(t, "2024-03-03")

	days := BuildMonthlyDays(daily, 45, 50, domain.AggregationMax, today)

	assert.Equal(t, 40.0, days[0].Value)
	assert.Equal(t, 0.0, days[1].Value) // capacity gap shows as zero
	assert.Equal(t, 45.0, days[2].Value)
	for _, d := range days[3:] {
		assert.Equal(t, 50.0, d.Value)
		assert.True(t, d.IsForecast)
	}
}
