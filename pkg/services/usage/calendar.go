package usage

import (
	"fmt"
	"time"

	"github.com/costguard/costguard/pkg/models/domain"
)

// BuildMonthlyDays expands a daily series plus its projection into one
// entry per calendar day of today's month. Days up to and including today
// are actuals; later days are forecast. Capacity metrics (MAX) show the
// raw daily value (0 for gaps) and repeat the projected peak across the
// forecast days. Volume metrics (SUM) show the cumulative month-to-date
// total and walk linearly from the last actual total to projectedTotal,
// with the final day forced to projectedTotal exactly: the last entry is
// the authoritative number for the month.
func BuildMonthlyDays(
	daily []domain.DailyValue,
	currentTotal, projectedTotal float64,
	mode domain.AggregationType,
	today time.Time,
) []domain.MonthlyDay {
	last := LastDayOfMonth(today)
	byDate := make(map[string]float64, len(daily))
	for _, d := range daily {
		byDate[d.Date] = d.Value
	}

	out := make([]domain.MonthlyDay, 0, last)

	if mode == domain.AggregationMax {
		for day := 1; day <= last; day++ {
			date := monthDate(today, day)
			if day <= today.Day() {
				out = append(out, domain.MonthlyDay{Date: date, Value: byDate[date]})
				continue
			}
			out = append(out, domain.MonthlyDay{Date: date, Value: projectedTotal, IsForecast: true})
		}
		return out
	}

	var cumulative float64
	for day := 1; day <= today.Day() && day <= last; day++ {
		date := monthDate(today, day)
		cumulative += byDate[date]
		out = append(out, domain.MonthlyDay{Date: date, Value: cumulative})
	}

	futureDays := last - today.Day()
	if futureDays <= 0 {
		return out
	}

	step := (projectedTotal - cumulative) / float64(futureDays)
	value := cumulative
	for day := today.Day() + 1; day <= last; day++ {
		value += step
		if day == last {
			value = projectedTotal
		}
		out = append(out, domain.MonthlyDay{Date: monthDate(today, day), Value: value, IsForecast: true})
	}
	return out
}

func monthDate(today time.Time, day int) string {
	return fmt.Sprintf("%04d-%02d-%02d", today.Year(), int(today.Month()), day)
}
