// Trigger evaluation — decides which events, decrees, and missions are
// eligible given current state. Evaluation is pure with respect to state;
// the only randomness is the probability roll, drawn from the injected
// source and always last, after every structural check has passed.
// See design doc Section 3.3.
package engine

import "fmt"

// checkStructural runs a trigger's structural checks in their fixed order
// and returns "" when all hold, otherwise the first failure reason. The
// probability roll is not part of structural checking.
func (e *Engine) checkStructural(st *State, trig *Trigger) string {
	// 1. Required identity.
	if trig.RequiredPresident != "" && trig.RequiredPresident != st.President {
		return fmt.Sprintf("requires president %q", trig.RequiredPresident)
	}

	// 2. Metric ranges, inclusive.
	for _, r := range trig.MetricRanges {
		if !st.Metrics.InRange(r.Metric, r.Min, r.Max) {
			return fmt.Sprintf("metric %s outside [%.0f, %.0f]", r.Metric, r.Min, r.Max)
		}
	}

	// 3. Completed events present, blocking events absent.
	for _, id := range trig.CompletedEvents {
		if _, done := st.CompletedEvents[id]; !done {
			return fmt.Sprintf("requires completed event %q", id)
		}
	}
	for _, id := range trig.BlockingEvents {
		if _, done := st.CompletedEvents[id]; done {
			return fmt.Sprintf("blocked by event %q", id)
		}
	}

	// 4. Required prior choices.
	for _, ref := range trig.RequiredChoices {
		if !st.DecidedChoice(ref.EventID, ref.ChoiceID) {
			return fmt.Sprintf("requires choice %s/%s", ref.EventID, ref.ChoiceID)
		}
	}

	return ""
}

// checkCooldown enforces the minimum spacing between events of the same
// category.
func checkCooldown(st *State, category EventCategory, cooldown uint64) bool {
	if cooldown == 0 {
		return true
	}
	last, ok := st.LastByCategory[category]
	if !ok {
		return true
	}
	return st.Tick-last >= cooldown
}

// eventEligible runs the full eligibility pipeline for one event. When roll
// is false the probability check is skipped (used for re-validation of a
// pending decision, which must not consume randomness).
func (e *Engine) eventEligible(st *State, ev *Event, roll bool) bool {
	if ev.Locked && !st.UnlockedEvents[ev.ID] {
		return false
	}
	if _, done := st.CompletedEvents[ev.ID]; done {
		return false
	}
	if e.checkStructural(st, &ev.Trigger) != "" {
		return false
	}
	if !checkCooldown(st, ev.Category, ev.Trigger.Cooldown) {
		return false
	}
	if roll {
		p := ev.Trigger.Probability
		if factor, ok := st.ProbabilityMods[ev.ID]; ok {
			p = clamp(p*factor, 0, 1)
		}
		if p > 0 && e.RNG.Float() >= p {
			return false
		}
	}
	return true
}

// EligibleEvents returns the events whose triggers hold right now. Eligible
// but unselected candidates produce no side effects; only the probability
// draws consume the random source.
func (e *Engine) EligibleEvents(st *State) []*Event {
	var out []*Event
	for _, id := range e.Catalog.EventIDs() {
		ev := e.Catalog.Events[id]
		if e.eventEligible(st, ev, true) {
			out = append(out, ev)
		}
	}
	return out
}

// EligibleDecrees returns the decrees whose emission requirements hold.
// Decrees carry no probability; the check is fully deterministic.
func (e *Engine) EligibleDecrees(st *State) []*Decree {
	var out []*Decree
	for _, id := range e.Catalog.DecreeIDs() {
		d := e.Catalog.Decrees[id]
		if e.checkDecreeRequirements(st, d) == "" {
			out = append(out, d)
		}
	}
	return out
}
