// Package engine implements the turn-driven political simulation core:
// trigger evaluation, effect application, flags and chains, decree
// lifecycles, and missions. The engine owns no clock and performs no I/O —
// the host feeds it logical ticks and player decisions and receives updated
// state snapshots plus an effect log.
// See design doc Section 3.
package engine

import "golang.org/x/exp/constraints"

// MetricID identifies one national indicator. The set is closed.
type MetricID uint8

const (
	MetricPopularity MetricID = iota
	MetricEconomy
	MetricSecurity
	MetricInternational
	MetricCorruption
	MetricMediaControl
	MetricHealth
	MetricTechnology

	metricCount
)

// String returns the metric's stable name, used in logs and persistence.
func (id MetricID) String() string {
	switch id {
	case MetricPopularity:
		return "popularity"
	case MetricEconomy:
		return "economy"
	case MetricSecurity:
		return "security"
	case MetricInternational:
		return "international"
	case MetricCorruption:
		return "corruption"
	case MetricMediaControl:
		return "media_control"
	case MetricHealth:
		return "health"
	case MetricTechnology:
		return "technology"
	}
	return "unknown"
}

// ParseMetric maps a stable name back to its MetricID.
func ParseMetric(name string) (MetricID, bool) {
	for id := MetricID(0); id < metricCount; id++ {
		if id.String() == name {
			return id, true
		}
	}
	return 0, false
}

// AllMetrics lists every metric in stable order.
func AllMetrics() []MetricID {
	ids := make([]MetricID, 0, metricCount)
	for id := MetricID(0); id < metricCount; id++ {
		ids = append(ids, id)
	}
	return ids
}

// Metrics holds the eight national indicators, each bounded to [0, 100].
type Metrics struct {
	Popularity    float64 `json:"popularity"`
	Economy       float64 `json:"economy"`
	Security      float64 `json:"security"`
	International float64 `json:"international"`
	Corruption    float64 `json:"corruption"`
	MediaControl  float64 `json:"media_control"`
	Health        float64 `json:"health"`
	Technology    float64 `json:"technology"`
}

// DefaultMetrics returns the standard starting indicators.
func DefaultMetrics() Metrics {
	return Metrics{
		Popularity:    55,
		Economy:       50,
		Security:      60,
		International: 50,
		Corruption:    40,
		MediaControl:  45,
		Health:        55,
		Technology:    40,
	}
}

// field returns a pointer to the metric's backing field. The switch is
// exhaustive over the closed MetricID set.
func (m *Metrics) field(id MetricID) *float64 {
	switch id {
	case MetricPopularity:
		return &m.Popularity
	case MetricEconomy:
		return &m.Economy
	case MetricSecurity:
		return &m.Security
	case MetricInternational:
		return &m.International
	case MetricCorruption:
		return &m.Corruption
	case MetricMediaControl:
		return &m.MediaControl
	case MetricHealth:
		return &m.Health
	case MetricTechnology:
		return &m.Technology
	}
	return nil
}

// Value returns the current value of a metric.
func (m *Metrics) Value(id MetricID) float64 {
	if p := m.field(id); p != nil {
		return *p
	}
	return 0
}

// Set writes a metric value, clamped to [0, 100].
func (m *Metrics) Set(id MetricID, v float64) {
	if p := m.field(id); p != nil {
		*p = clamp(v, 0, 100)
	}
}

// Apply adds delta to a metric, clamping the result to [0, 100]. It returns
// the value before, the value after, and the delta actually applied — which
// differs from the requested delta when the write hits a bound.
func (m *Metrics) Apply(id MetricID, delta float64) (before, after, applied float64) {
	p := m.field(id)
	if p == nil {
		return 0, 0, 0
	}
	before = *p
	after = clamp(before+delta, 0, 100)
	*p = after
	return before, after, after - before
}

// InRange reports whether a metric lies inside [min, max], inclusive.
func (m *Metrics) InRange(id MetricID, min, max float64) bool {
	v := m.Value(id)
	return v >= min && v <= max
}

// clamp bounds v to [lo, hi].
func clamp[T constraints.Ordered](v, lo, hi T) T {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
