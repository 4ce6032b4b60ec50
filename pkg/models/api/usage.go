package api

type Service struct {
	Key        string   `json:"key"`
	Name       string   `json:"name"`
	Dimensions []string `json:"dimensions"`
}

type DailyValue struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

type MonthlyDay struct {
	Date       string  `json:"date"`
	Value      float64 `json:"value"`
	IsForecast bool    `json:"is_forecast"`
}

type DimensionUsage struct {
	Dimension     string       `json:"dimension"`
	ProductFamily string       `json:"product_family"`
	Unit          string       `json:"unit"`
	Category      string       `json:"category"`
	Aggregation   string       `json:"aggregation"`
	Usage         float64      `json:"usage"`
	Committed     float64      `json:"committed"`
	Threshold     *float64     `json:"threshold,omitempty"`
	Projected     float64      `json:"projected"`
	Trend         []int        `json:"trend"`
	DailyValues   []DailyValue `json:"daily_values"`
	MonthlyDays   []MonthlyDay `json:"monthly_days"`
	DaysElapsed   int          `json:"days_elapsed"`
	DaysRemaining int          `json:"days_remaining"`
	Status        string       `json:"status"`
	Utilization   int          `json:"utilization"`
	Failed        bool         `json:"failed"`
	Message       string       `json:"message,omitempty"`
}

type ServiceUsage struct {
	Service    string           `json:"service"`
	Name       string           `json:"name"`
	Dimensions []DimensionUsage `json:"dimensions"`
}

type Commitment struct {
	Service   string   `json:"service"`
	Dimension string   `json:"dimension"`
	Committed float64  `json:"committed"`
	Threshold *float64 `json:"threshold,omitempty"`
}

type Error struct {
	Error string `json:"error"`
}
