package domain

// DimensionUsage is the display-ready record for one billing dimension.
// It is constructed once per request and never mutated afterwards. A
// failed upstream fetch produces the error variant instead (Failed set,
// numeric fields zeroed); the two shapes are mutually exclusive.
type DimensionUsage struct {
	Dimension     string
	ProductFamily string
	Unit          string
	Category      string
	Aggregation   AggregationType

	Usage     float64
	Committed float64
	Threshold *float64
	Projected float64

	Trend       []int
	DailyValues []DailyValue
	MonthlyDays []MonthlyDay

	DaysElapsed   int
	DaysRemaining int

	Status      Status
	Utilization int

	Failed  bool
	Message string
}

// ServiceUsage bundles the dimension records of one vendor service.
type ServiceUsage struct {
	Service    string
	Name       string
	Dimensions []DimensionUsage
}

// NewDimensionUsageError builds the error variant for a dimension whose
// upstream fetch failed. Numeric fields stay zeroed so the caller cannot
// confuse it with a genuine zero-usage record without checking Failed.
func NewDimensionUsageError(m DimensionMapping, msg string) DimensionUsage {
	return DimensionUsage{
		Dimension:     m.Key,
		ProductFamily: m.ProductFamily,
		Unit:          m.Unit,
		Category:      m.Category,
		Aggregation:   m.Aggregation,
		Status:        StatusOK,
		Failed:        true,
		Message:       msg,
	}
}
