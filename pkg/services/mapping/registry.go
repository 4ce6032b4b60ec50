// Package mapping holds the static dispatch table binding billing
// dimension keys to their extraction behavior. The table is built once at
// process start and never mutated; per-metric behavior is a lookup, not
// string sniffing at call sites.
package mapping

import (
	"fmt"
	"sort"

	"github.com/costguard/costguard/pkg/models/domain"
)

type Registry interface {
	// Dimension resolves a billing dimension key.
	Dimension(key string) (domain.DimensionMapping, error)
	// Service resolves a service key.
	Service(key string) (domain.ServiceMapping, error)
	// ListServices returns all services, sorted by key.
	ListServices() []domain.ServiceMapping
	// ListDimensions returns all dimension keys, sorted.
	ListDimensions() []string
}

type registry struct {
	dimensions map[string]domain.DimensionMapping
	services   map[string]domain.ServiceMapping
}

// matchTypes accepts exactly the given measurement type labels.
func matchTypes(types ...string) domain.MatchPredicate {
	set := make(map[string]struct{}, len(types))
	for _, t := range types {
		set[t] = struct{}{}
	}
	return func(usageType string) bool {
		_, ok := set[usageType]
		return ok
	}
}

// NewRegistry builds the default dispatch table for the vendor's billing
// dimensions. Capacity dimensions (hosts, containers) take the daily
// peak; volume dimensions (logs, spans, sessions) sum.
func NewRegistry() Registry {
	dimensions := []domain.DimensionMapping{
		{
			Key:           "infra_hosts",
			ProductFamily: "infra_hosts",
			Aggregation:   domain.AggregationMax,
			Unit:          "hosts",
			Category:      "infrastructure",
			Match:         matchTypes("host_count", "agent_host_count", "aws_host_count", "azure_host_count", "gcp_host_count"),
		},
		{
			Key:           "containers",
			ProductFamily: "infra_hosts",
			Aggregation:   domain.AggregationMax,
			Unit:          "containers",
			Category:      "infrastructure",
			Match:         matchTypes("container_count", "container_count_excl_agent"),
		},
		{
			Key:           "custom_metrics",
			ProductFamily: "timeseries",
			Aggregation:   domain.AggregationMax,
			Unit:          "metrics",
			Category:      "infrastructure",
			Match:         matchTypes("num_custom_timeseries"),
		},
		{
			Key:           "apm_hosts",
			ProductFamily: "apm_hosts",
			Aggregation:   domain.AggregationMax,
			Unit:          "hosts",
			Category:      "apm",
			Match:         matchTypes("apm_host_count", "apm_azure_app_service_host_count"),
		},
		{
			Key:           "indexed_spans",
			ProductFamily: "indexed_spans",
			Aggregation:   domain.AggregationSum,
			Unit:          "spans",
			Category:      "apm",
			Match:         matchTypes("indexed_events_count"),
		},
		{
			Key:           "indexed_logs",
			ProductFamily: "indexed_logs",
			Aggregation:   domain.AggregationSum,
			Unit:          "events",
			Category:      "logs",
			Match:         matchTypes("logs_indexed_events_3_day_count", "logs_indexed_events_15_day_count", "logs_indexed_events_30_day_count"),
		},
		{
			Key:           "ingested_logs",
			ProductFamily: "ingested_logs",
			Aggregation:   domain.AggregationSum,
			Unit:          "GB",
			Category:      "logs",
			Match:         matchTypes("ingested_events_bytes", "logs_ingested_events_bytes"),
		},
		{
			Key:           "rum_sessions",
			ProductFamily: "rum",
			Aggregation:   domain.AggregationSum,
			Unit:          "sessions",
			Category:      "rum",
			Match:         matchTypes("rum_browser_sessions_count", "rum_mobile_sessions_count"),
		},
		{
			Key:           "synthetics_api_tests",
			ProductFamily: "synthetics_api",
			Aggregation:   domain.AggregationSum,
			Unit:          "runs",
			Category:      "synthetics",
			Match:         matchTypes("check_calls_count"),
		},
	}

	services := []domain.ServiceMapping{
		{Key: "infrastructure", Name: "Infrastructure", Dimensions: []string{"infra_hosts", "containers", "custom_metrics"}},
		{Key: "apm", Name: "APM", Dimensions: []string{"apm_hosts", "indexed_spans"}},
		{Key: "logs", Name: "Log Management", Dimensions: []string{"indexed_logs", "ingested_logs"}},
		{Key: "rum", Name: "Real User Monitoring", Dimensions: []string{"rum_sessions"}},
		{Key: "synthetics", Name: "Synthetic Monitoring", Dimensions: []string{"synthetics_api_tests"}},
	}

	r := &registry{
		dimensions: make(map[string]domain.DimensionMapping, len(dimensions)),
		services:   make(map[string]domain.ServiceMapping, len(services)),
	}
	for _, d := range dimensions {
		r.dimensions[d.Key] = d
	}
	for _, s := range services {
		r.services[s.Key] = s
	}
	return r
}

func (r *registry) Dimension(key string) (domain.DimensionMapping, error) {
	d, ok := r.dimensions[key]
	if !ok {
		return domain.DimensionMapping{}, fmt.Errorf("unknown billing dimension %q", key)
	}
	return d, nil
}

func (r *registry) Service(key string) (domain.ServiceMapping, error) {
	s, ok := r.services[key]
	if !ok {
		return domain.ServiceMapping{}, fmt.Errorf("unknown service %q", key)
	}
	return s, nil
}

func (r *registry) ListServices() []domain.ServiceMapping {
	out := make([]domain.ServiceMapping, 0, len(r.services))
	for _, s := range r.services {
		out = append(out, s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

func (r *registry) ListDimensions() []string {
	out := make([]string, 0, len(r.dimensions))
	for k := range r.dimensions {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
