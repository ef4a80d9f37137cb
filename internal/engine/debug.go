// Introspection — the debug snapshot and consistency report exposed to the
// host for debugging and analytics surfaces.
package engine

import (
	"fmt"

	"github.com/lvillegas/mandato/internal/polity"
)

// ConsistencyReport summarizes invariant health: values outside their
// domain, deep cascades, and bursts of effects inside a single tick.
type ConsistencyReport struct {
	OutOfRange     []string `json:"out_of_range,omitempty"`
	CascadeWarnings int      `json:"cascade_warnings"`
	MaxCascadeLevel int      `json:"max_cascade_level"`
	// BurstTicks lists ticks that produced an unusually high effect count.
	BurstTicks []uint64 `json:"burst_ticks,omitempty"`
	Healthy    bool     `json:"healthy"`
}

// SystemDebugInfo is the introspection object: current state, recent
// effects, and a consistency report.
type SystemDebugInfo struct {
	Tick          uint64            `json:"tick"`
	CrisisLevel   int               `json:"crisis_level"`
	Metrics       Metrics           `json:"metrics"`
	PendingEvents []PendingEvent    `json:"pending_events,omitempty"`
	ActiveDecrees int               `json:"active_decrees"`
	RecentEffects []EffectLog       `json:"recent_effects"`
	Consistency   ConsistencyReport `json:"consistency"`
}

// burstThreshold is the per-tick effect count that flags a burst.
const burstThreshold = 50

// DebugInfo builds the introspection snapshot for the given state.
func (e *Engine) DebugInfo(st *State) SystemDebugInfo {
	report := ConsistencyReport{Healthy: true}

	for _, id := range AllMetrics() {
		v := st.Metrics.Value(id)
		if v < 0 || v > 100 {
			report.OutOfRange = append(report.OutOfRange, fmt.Sprintf("metric %s = %.2f", id, v))
		}
	}
	for _, fid := range polity.AllFactions() {
		f, ok := st.Factions[fid]
		if !ok {
			continue
		}
		if f.Support < -100 || f.Support > 100 {
			report.OutOfRange = append(report.OutOfRange, fmt.Sprintf("faction %s support = %.2f", fid, f.Support))
		}
		if f.Power < 0 || f.Power > 100 {
			report.OutOfRange = append(report.OutOfRange, fmt.Sprintf("faction %s power = %.2f", fid, f.Power))
		}
	}
	for _, pid := range polity.AllProvinces() {
		p, ok := st.Provinces[pid]
		if !ok {
			continue
		}
		for field, v := range map[string]float64{
			"discontent": p.Discontent, "loyalty": p.Loyalty, "economic_level": p.EconomicLevel,
		} {
			if v < 0 || v > 100 {
				report.OutOfRange = append(report.OutOfRange, fmt.Sprintf("province %s %s = %.2f", pid, field, v))
			}
		}
	}

	perTick := make(map[uint64]int)
	for _, entry := range st.Effects {
		perTick[entry.Tick]++
		if entry.Warning {
			report.CascadeWarnings++
		}
		if entry.CascadeLevel > report.MaxCascadeLevel {
			report.MaxCascadeLevel = entry.CascadeLevel
		}
	}
	for tick, n := range perTick {
		if n >= burstThreshold {
			report.BurstTicks = append(report.BurstTicks, tick)
		}
	}

	if len(report.OutOfRange) > 0 || report.CascadeWarnings > 0 || len(report.BurstTicks) > 0 {
		report.Healthy = false
	}

	return SystemDebugInfo{
		Tick:          st.Tick,
		CrisisLevel:   st.CrisisLevel,
		Metrics:       st.Metrics,
		PendingEvents: append([]PendingEvent(nil), st.PendingEvents...),
		ActiveDecrees: activeDecreeCount(st),
		RecentEffects: st.RecentEffects(25),
		Consistency:   report,
	}
}
