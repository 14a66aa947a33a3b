package appinsights

import (
	"math"

	"github.com/microsoft/appinsights-go/appinsights/contracts"
)

// MetricTelemetry represents a single numeric measurement.
type MetricTelemetry struct {
	item
	Name  string
	Value float64
}

// NewMetricTelemetry constructs a MetricTelemetry with the current time.
func NewMetricTelemetry(name string, value float64) *MetricTelemetry {
	return &MetricTelemetry{item: newItem(), Name: name, Value: value}
}

func (m *MetricTelemetry) envelope(ctx *TelemetryContext) *contracts.Envelope {
	data := contracts.NewMetricData(contracts.DataPoint{
		Name:  m.Name,
		Kind:  contracts.Measurement,
		Value: m.Value,
		Count: 1,
	})
	data.Properties = combine(ctx.Properties(), m.properties)
	return buildEnvelope(ctx, m.timestamp, "MetricData", data, m.tags)
}

// Stats accumulates running count/min/max/mean/stdDev over a stream of
// samples using Welford's algorithm, matching the original crate's
// Stats::add_data so incremental aggregation never needs to retain the raw
// sample history.
type Stats struct {
	Value  float64
	Min    float64
	Max    float64
	Count  int
	StdDev float64
}

// AddData folds values into the running aggregate.
func (s *Stats) AddData(values []float64) {
	if len(values) == 0 {
		return
	}
	varianceSum := 0.0
	if s.StdDev != 0 {
		varianceSum = s.StdDev * s.StdDev * float64(s.Count)
	}

	mean := 0.0
	if s.Count == 0 {
		s.Min = values[0]
		s.Max = values[0]
	} else {
		mean = s.Value / float64(s.Count)
	}
	for _, v := range values {
		if v < s.Min {
			s.Min = v
		}
		if v > s.Max {
			s.Max = v
		}
	}

	value := s.Value
	count := s.Count
	for _, x := range values {
		count++
		value += x
		newMean := value / float64(count)
		varianceSum += (x - mean) * (x - newMean)
		mean = newMean
	}
	s.Count = count
	s.Value = value

	if s.Count > 0 {
		s.StdDev = math.Sqrt(varianceSum / float64(s.Count))
	}
}

// AggregateMetricTelemetry reports a pre-aggregated window of metric
// samples (count/sum/min/max/stdDev) rather than one value at a time.
type AggregateMetricTelemetry struct {
	item
	Name  string
	Stats Stats
}

// NewAggregateMetricTelemetry constructs an AggregateMetricTelemetry with
// the current time and zeroed stats.
func NewAggregateMetricTelemetry(name string) *AggregateMetricTelemetry {
	return &AggregateMetricTelemetry{item: newItem(), Name: name}
}

func (a *AggregateMetricTelemetry) envelope(ctx *TelemetryContext) *contracts.Envelope {
	data := contracts.NewMetricData(contracts.DataPoint{
		Name:   a.Name,
		Kind:   contracts.Aggregation,
		Value:  a.Stats.Value,
		Count:  a.Stats.Count,
		Min:    a.Stats.Min,
		Max:    a.Stats.Max,
		StdDev: a.Stats.StdDev,
	})
	data.Properties = combine(ctx.Properties(), a.properties)
	return buildEnvelope(ctx, a.timestamp, "MetricData", data, a.tags)
}
