package domain

// AggregationType selects how samples for a metric combine within a bucket.
// Volume metrics (logs, spans, requests) sum; capacity metrics (hosts,
// containers, seats) take the peak.
type AggregationType string

const (
	AggregationSum AggregationType = "sum"
	AggregationMax AggregationType = "max"
)

// UsageSample is a single metered observation as reported by the vendor.
// The timestamp is kept as the raw ISO-8601 string; ordering and day
// bucketing operate on the string form.
type UsageSample struct {
	Timestamp string
	Value     float64
}

// DailyValue is one aggregated value for a calendar day (YYYY-MM-DD, UTC).
type DailyValue struct {
	Date  string
	Value float64
}

// MonthlyDay is one calendar-day entry of the month view. Days after
// "today" carry forecast values.
type MonthlyDay struct {
	Date       string
	Value      float64
	IsForecast bool
}

type Status string

const (
	StatusOK       Status = "ok"
	StatusWatch    Status = "watch"
	StatusCritical Status = "critical"
)

// Classification pairs a status with a utilization percentage.
type Classification struct {
	Status      Status
	Utilization int
}
