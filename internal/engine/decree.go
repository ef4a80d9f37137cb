// Decrees of necessity and urgency (DNUs) — time-boxed policy objects.
// Lifecycle: active → {suspended | revoked | expired}, all terminal. While a
// decree is active its national metric contribution is recomputed every tick
// from the definition; suspension or expiry stops the contribution on the
// next tick. Revocation effects apply only on explicit revocation, never on
// natural expiry.
// See design doc Section 3.6.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"
)

// DecreeStatus is the lifecycle state of an emitted decree.
type DecreeStatus uint8

const (
	DecreeActive DecreeStatus = iota
	DecreeSuspended
	DecreeRevoked
	DecreeExpired
)

// String returns the status's stable name.
func (s DecreeStatus) String() string {
	switch s {
	case DecreeActive:
		return "active"
	case DecreeSuspended:
		return "suspended"
	case DecreeRevoked:
		return "revoked"
	case DecreeExpired:
		return "expired"
	}
	return "unknown"
}

// DecreeCategory classifies the policy area of a decree.
type DecreeCategory uint8

const (
	DecreeEconomic DecreeCategory = iota
	DecreeSecurity
	DecreeSocial
	DecreeInstitutional
)

// DecreeUrgency ranks how pressing the decree is.
type DecreeUrgency uint8

const (
	UrgencyLow DecreeUrgency = iota
	UrgencyMedium
	UrgencyHigh
)

// DecreeRequirements gates emission. Failure is a rejection, not an error.
type DecreeRequirements struct {
	MetricRanges   []MetricRange `json:"metric_ranges,omitempty"`
	MinCrisisLevel int           `json:"min_crisis_level,omitempty"`
	// MaxActive caps how many decrees may be active at once when this one
	// is emitted. Zero means the engine default applies.
	MaxActive int `json:"max_active,omitempty"`
}

// DecreeResponse is one fixed post-emission response option: an effect
// bundle a faction or institution can apply once against the decree.
type DecreeResponse struct {
	ID      string   `json:"id"`
	Label   string   `json:"label"`
	Effects []Effect `json:"-"`
}

// Decree is an immutable decree definition.
type Decree struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Category DecreeCategory `json:"category"`
	Urgency  DecreeUrgency  `json:"urgency"`

	// NationalMetrics is the ongoing per-tick contribution while active.
	NationalMetrics []MetricEffect `json:"-"`
	// FactionEffects and ProvinceEffects apply once at emission.
	FactionEffects  []FactionEffect  `json:"-"`
	ProvinceEffects []ProvinceEffect `json:"-"`

	// Cost model, applied at emission.
	PoliticalCost float64 `json:"political_cost"`
	EconomicCost  float64 `json:"economic_cost"`
	// LegalRisk is the probability the courts strike back at emission.
	LegalRisk float64 `json:"legal_risk"`

	// Duration in ticks; expiresAt = emission tick + duration.
	Duration uint64 `json:"duration"`

	Requirements DecreeRequirements `json:"requirements"`

	// RevocationEffects apply only on explicit revocation.
	RevocationEffects []Effect `json:"-"`

	ResponseOptions []DecreeResponse `json:"response_options,omitempty"`
}

// DecreeInstance is the runtime record of an emitted decree.
type DecreeInstance struct {
	DecreeID   string       `json:"decree_id"`
	InstanceID string       `json:"instance_id"`
	Status     DecreeStatus `json:"status"`
	EmittedAt  uint64       `json:"emitted_at"`
	ExpiresAt  uint64       `json:"expires_at"`

	// RespondedWith records the response option already consumed, if any.
	RespondedWith string `json:"responded_with,omitempty"`
}

// DecreeResult reports the outcome of an emission request.
type DecreeResult struct {
	Emitted        bool            `json:"emitted"`
	Reason         string          `json:"reason,omitempty"`
	Instance       *DecreeInstance `json:"instance,omitempty"`
	LegalChallenge bool            `json:"legal_challenge,omitempty"`
	Effects        []EffectLog     `json:"effects,omitempty"`
}

// activeDecreeCount counts currently active decrees.
func activeDecreeCount(st *State) int {
	n := 0
	for _, inst := range st.Decrees {
		if inst.Status == DecreeActive {
			n++
		}
	}
	return n
}

// checkDecreeRequirements returns "" when emission is allowed, otherwise the
// rejection reason.
func (e *Engine) checkDecreeRequirements(st *State, d *Decree) string {
	for _, r := range d.Requirements.MetricRanges {
		if !st.Metrics.InRange(r.Metric, r.Min, r.Max) {
			return fmt.Sprintf("metric %s outside [%.0f, %.0f]", r.Metric, r.Min, r.Max)
		}
	}
	if st.CrisisLevel < d.Requirements.MinCrisisLevel {
		return fmt.Sprintf("crisis level %d below required %d", st.CrisisLevel, d.Requirements.MinCrisisLevel)
	}
	cap := d.Requirements.MaxActive
	if cap == 0 {
		cap = e.MaxActiveDecrees
	}
	if activeDecreeCount(st) >= cap {
		return fmt.Sprintf("active decree cap reached (%d)", cap)
	}
	if inst, ok := st.Decrees[d.ID]; ok && inst.Status == DecreeActive {
		return "decree already active"
	}
	return ""
}

// EmitDecree evaluates emission requirements and, on success, instantiates
// the decree, applies its one-shot faction/province effects and costs, and
// rolls legal risk. A failed requirement returns a rejected result on the
// unchanged state — not an error.
func (e *Engine) EmitDecree(st *State, decreeID string) (*State, *DecreeResult, error) {
	d, ok := e.Catalog.Decrees[decreeID]
	if !ok {
		slog.Warn("decree not found", "decree", decreeID)
		return st, nil, fmt.Errorf("decree %q: %w", decreeID, ErrNotFound)
	}

	if reason := e.checkDecreeRequirements(st, d); reason != "" {
		slog.Info("decree emission rejected", "decree", decreeID, "reason", reason)
		return st, &DecreeResult{Emitted: false, Reason: reason}, nil
	}

	next := st.Clone()
	var logs []EffectLog

	inst := &DecreeInstance{
		DecreeID:   d.ID,
		InstanceID: uuid.NewString(),
		Status:     DecreeActive,
		EmittedAt:  next.Tick,
		ExpiresAt:  next.Tick + d.Duration,
	}
	next.Decrees[d.ID] = inst

	// Emission costs.
	if d.PoliticalCost != 0 {
		e.applyMetric(next, d.ID, EffectDecision, MetricPopularity, -d.PoliticalCost, 0, &logs)
	}
	if d.EconomicCost != 0 {
		e.applyMetric(next, d.ID, EffectDecision, MetricEconomy, -d.EconomicCost, 0, &logs)
	}

	// One-shot faction and province effects.
	for _, fe := range d.FactionEffects {
		e.applyFaction(next, d.ID, fe, 0, &logs)
	}
	for _, pe := range d.ProvinceEffects {
		e.applyProvince(next, d.ID, pe, 0, &logs)
	}

	// Legal risk: on a failed roll the courts push back immediately.
	result := &DecreeResult{Emitted: true, Instance: inst}
	if d.LegalRisk > 0 && e.RNG.Float() < d.LegalRisk {
		result.LegalChallenge = true
		e.applyMetric(next, d.ID, EffectEvent, MetricPopularity, -5, 0, &logs)
		e.applyMetric(next, d.ID, EffectEvent, MetricInternational, -3, 0, &logs)
		e.applyFaction(next, d.ID, FactionEffect{Faction: "judiciary", Support: -10}, 0, &logs)
		slog.Warn("decree faces legal challenge", "decree", d.ID)
	}

	next.Effects = append(next.Effects, logs...)
	result.Effects = logs
	slog.Info("decree emitted", "decree", d.ID, "expires_at", inst.ExpiresAt, "active", activeDecreeCount(next))
	return next, result, nil
}

// RespondToDecree applies one of the decree's fixed response options. Each
// instance accepts at most one response.
func (e *Engine) RespondToDecree(st *State, decreeID, optionID string) (*State, []EffectLog, error) {
	d, ok := e.Catalog.Decrees[decreeID]
	if !ok {
		return st, nil, fmt.Errorf("decree %q: %w", decreeID, ErrNotFound)
	}
	inst, ok := st.Decrees[decreeID]
	if !ok || inst.Status != DecreeActive {
		return st, nil, fmt.Errorf("decree %q not active: %w", decreeID, ErrRequirementNotMet)
	}
	if inst.RespondedWith != "" {
		slog.Info("decree already responded", "decree", decreeID, "with", inst.RespondedWith)
		return st, nil, nil
	}

	var opt *DecreeResponse
	for i := range d.ResponseOptions {
		if d.ResponseOptions[i].ID == optionID {
			opt = &d.ResponseOptions[i]
			break
		}
	}
	if opt == nil {
		return st, nil, fmt.Errorf("response %q: %w", optionID, ErrNotFound)
	}

	next := st.Clone()
	next.Decrees[decreeID].RespondedWith = optionID
	var logs []EffectLog
	var triggered []string
	e.applyEffects(next, d.ID, opt.Effects, 0, &logs, &triggered)
	next.Effects = append(next.Effects, logs...)
	return next, logs, nil
}

// RevokeDecree transitions an active decree to revoked and applies its
// revocation effects. A no-op when the decree is absent or not active.
func (e *Engine) RevokeDecree(st *State, decreeID string) (*State, []EffectLog) {
	inst, ok := st.Decrees[decreeID]
	if !ok || inst.Status != DecreeActive {
		return st, nil
	}
	d := e.Catalog.Decrees[decreeID]

	next := st.Clone()
	next.Decrees[decreeID].Status = DecreeRevoked

	var logs []EffectLog
	var triggered []string
	if d != nil {
		e.applyEffects(next, decreeID, d.RevocationEffects, 0, &logs, &triggered)
	}
	next.Effects = append(next.Effects, logs...)
	slog.Info("decree revoked", "decree", decreeID, "tick", next.Tick)
	return next, logs
}

// SuspendDecree transitions an active decree to suspended: its contribution
// stops but no revocation effects apply. A no-op when absent or not active.
func (e *Engine) SuspendDecree(st *State, decreeID string) *State {
	inst, ok := st.Decrees[decreeID]
	if !ok || inst.Status != DecreeActive {
		return st
	}
	next := st.Clone()
	next.Decrees[decreeID].Status = DecreeSuspended
	slog.Info("decree suspended", "decree", decreeID, "tick", next.Tick)
	return next
}

// sweepDecrees expires active decrees whose expiresAt has passed. Natural
// expiry does not apply revocation effects.
func (e *Engine) sweepDecrees(st *State) {
	for id, inst := range st.Decrees {
		if inst.Status == DecreeActive && inst.ExpiresAt <= st.Tick {
			inst.Status = DecreeExpired
			slog.Info("decree expired", "decree", id, "tick", st.Tick)
		}
	}
}

// applyDecreeAggregate recomputes the sum of all active decrees' national
// metric deltas and applies it for this tick. Recomputing from definitions
// (rather than accumulating once) means suspension and expiry stop a
// decree's contribution the very next tick.
func (e *Engine) applyDecreeAggregate(st *State, logs *[]EffectLog) {
	totals := make(map[MetricID]float64)
	for id, inst := range st.Decrees {
		if inst.Status != DecreeActive {
			continue
		}
		d, ok := e.Catalog.Decrees[id]
		if !ok {
			continue
		}
		for _, me := range d.NationalMetrics {
			totals[me.Metric] += me.Delta
		}
	}
	for id := MetricID(0); id < metricCount; id++ {
		if delta, ok := totals[id]; ok && delta != 0 {
			e.applyMetric(st, "decrees", EffectEvent, id, delta, 0, logs)
		}
	}
}
