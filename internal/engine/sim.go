// Engine façade — the external operations the host calls: advance a tick,
// apply a decision, and query eligibility. Every mutating operation is
// synchronous and single-writer: callers serialize commands.
// See design doc Section 3.8.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lvillegas/mandato/internal/entropy"
)

// Defaults for the engine's tunable caps.
const (
	DefaultMaxCascadeDepth  = 5
	DefaultMaxActiveDecrees = 3
	DefaultSpilloverRatio   = 0.30
)

// Engine evaluates triggers and applies effects against explicit state
// snapshots. It holds only immutable content and configuration; all mutable
// simulation state lives in the State passed to each call.
type Engine struct {
	Catalog *Catalog
	RNG     entropy.Source

	MaxCascadeDepth  int
	MaxActiveDecrees int
	SpilloverRatio   float64
}

// New creates an engine over the given catalog and random source.
func New(catalog *Catalog, rng entropy.Source) *Engine {
	return &Engine{
		Catalog:          catalog,
		RNG:              rng,
		MaxCascadeDepth:  DefaultMaxCascadeDepth,
		MaxActiveDecrees: DefaultMaxActiveDecrees,
		SpilloverRatio:   DefaultSpilloverRatio,
	}
}

// Advance moves the simulation to the given tick: decree sweeps and
// aggregates, flag evaluation and active modifiers, chain activation, and
// the mission availability scan. Returns the new snapshot and the effects
// applied during the tick. The input snapshot is not mutated.
func (e *Engine) Advance(st *State, tick uint64) (*State, []EffectLog) {
	next := st.Clone()
	next.Tick = tick

	var logs []EffectLog

	// Expired decrees leave the active set before the aggregate is
	// recomputed, so their contribution stops this very tick.
	e.sweepDecrees(next)
	e.applyDecreeAggregate(next, &logs)

	e.evaluateFlags(next, &logs)
	e.applyActiveFlagModifiers(next, &logs)

	e.evaluateChains(next)
	e.scanMissions(next)

	next.Effects = append(next.Effects, logs...)
	return next, logs
}

// ApplyDecision commits a player choice for an event. Structural trigger
// conditions are re-validated first: a pending event invalidated since
// issuance (a blocking event completed in between) is rejected without any
// state change. On success the choice's cost and effects apply, cascades
// run, the event completes, and one DecisionResult joins the history.
func (e *Engine) ApplyDecision(st *State, eventID, choiceID string) (*State, *DecisionResult, error) {
	ev, ok := e.Catalog.Events[eventID]
	if !ok {
		slog.Warn("decision for unknown event", "event", eventID)
		return st, nil, fmt.Errorf("event %q: %w", eventID, ErrNotFound)
	}
	choice := ev.FindChoice(choiceID)
	if choice == nil {
		slog.Warn("decision for unknown choice", "event", eventID, "choice", choiceID)
		return st, nil, fmt.Errorf("choice %q: %w", choiceID, ErrNotFound)
	}

	// Re-validate immediately before applying: no probability roll, pure
	// structural checks against the current snapshot.
	if _, done := st.CompletedEvents[eventID]; done {
		return st, nil, fmt.Errorf("event %q already completed: %w", eventID, ErrRequirementNotMet)
	}
	if reason := e.checkStructural(st, &ev.Trigger); reason != "" {
		slog.Info("decision rejected", "event", eventID, "reason", reason)
		return st, nil, fmt.Errorf("event %q: %s: %w", eventID, reason, ErrRequirementNotMet)
	}
	if choice.Requires != nil {
		if reason := e.checkStructural(st, choice.Requires); reason != "" {
			slog.Info("choice rejected", "event", eventID, "choice", choiceID, "reason", reason)
			return st, nil, fmt.Errorf("choice %q: %s: %w", choiceID, reason, ErrRequirementNotMet)
		}
	}

	next := st.Clone()

	// A pending cascaded event resumes at its recorded depth.
	level := 0
	for _, pe := range next.PendingEvents {
		if pe.EventID == eventID {
			level = pe.CascadeLevel
			break
		}
	}

	var logs []EffectLog
	var triggered []string

	if choice.Cost.Political != 0 {
		e.applyMetric(next, eventID, EffectDecision, MetricPopularity, -choice.Cost.Political, level, &logs)
	}
	if choice.Cost.Economic != 0 {
		e.applyMetric(next, eventID, EffectDecision, MetricEconomy, -choice.Cost.Economic, level, &logs)
	}

	e.applyEffects(next, eventID, choice.Effects, level, &logs, &triggered)
	e.markEventCompleted(next, ev)

	result := DecisionResult{
		ID:        uuid.NewString(),
		Tick:      next.Tick,
		EventID:   eventID,
		ChoiceID:  choiceID,
		Effects:   logs,
		Triggered: triggered,
		Summary:   fmt.Sprintf("%s: %s (%d effects, %d triggered)", ev.Title, choice.Label, len(logs), len(triggered)),
	}
	next.Decisions = append(next.Decisions, result)
	next.Effects = append(next.Effects, logs...)

	slog.Info("decision applied",
		"event", eventID, "choice", choiceID,
		"effects", len(logs), "triggered", len(triggered), "tick", next.Tick,
	)
	return next, &result, nil
}

// DeactivateFlag is the corrective path out of an active flag. Normal
// operation never deactivates flags.
func (e *Engine) DeactivateFlag(st *State, flagID string) *State {
	fs, ok := st.Flags[flagID]
	if !ok || !fs.Active {
		return st
	}
	next := st.Clone()
	next.Flags[flagID].Active = false
	slog.Info("flag deactivated", "flag", flagID, "tick", next.Tick)
	return next
}

// ActiveDecrees lists decree instances currently in the active set.
func (e *Engine) ActiveDecrees(st *State) []*DecreeInstance {
	var out []*DecreeInstance
	for _, id := range e.Catalog.DecreeIDs() {
		if inst, ok := st.Decrees[id]; ok && inst.Status == DecreeActive {
			out = append(out, inst)
		}
	}
	return out
}
