package domain

// MatchPredicate decides whether a measurement type label belongs to a
// billing dimension. A nil predicate accepts everything.
type MatchPredicate func(usageType string) bool

// DimensionMapping binds a billing dimension key to its extraction
// behavior. Mappings are defined once at process start and never mutated.
type DimensionMapping struct {
	Key           string
	ProductFamily string
	Aggregation   AggregationType
	Unit          string
	Category      string
	Match         MatchPredicate
}

// ServiceMapping groups the dimensions billed under one vendor service.
type ServiceMapping struct {
	Key        string
	Name       string
	Dimensions []string
}
