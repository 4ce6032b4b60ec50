package domain

// Commitment is the contracted quantity for one billing dimension.
// Threshold is an optional absolute alert level; nil means no threshold
// was configured.
type Commitment struct {
	Service   string
	Dimension string
	Committed float64
	Threshold *float64
}
