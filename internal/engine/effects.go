// Effect application — the only place state values change. Every write is
// clamped to its domain, logged with the requested and the actually applied
// delta, and cascades recurse synchronously up to the depth cap.
// See design doc Section 3.4.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/lvillegas/mandato/internal/polity"
)

// applyMetric shifts one national metric and logs the mutation. Clamped
// writes record the actual delta applied, not the requested one.
func (e *Engine) applyMetric(st *State, source string, kind EffectKind, id MetricID, delta float64, level int, logs *[]EffectLog) {
	before, after, applied := st.Metrics.Apply(id, delta)
	entry := EffectLog{
		ID:           uuid.NewString(),
		Tick:         st.Tick,
		Kind:         kind,
		Source:       source,
		Target:       id.String(),
		Before:       before,
		After:        after,
		Requested:    delta,
		Applied:      applied,
		CascadeLevel: level,
	}
	if applied != delta {
		entry.Note = fmt.Sprintf("clamped: requested %+.1f, applied %+.1f", delta, applied)
	}
	*logs = append(*logs, entry)
}

// applyFaction shifts a faction's support/power/resources/relations and logs
// each touched field. Unknown faction ids are logged and ignored.
func (e *Engine) applyFaction(st *State, source string, fe FactionEffect, level int, logs *[]EffectLog) {
	f, ok := st.Factions[fe.Faction]
	if !ok {
		slog.Warn("faction effect on unknown faction", "faction", fe.Faction, "source", source)
		return
	}

	record := func(field string, before, after, requested float64) {
		entry := EffectLog{
			ID:           uuid.NewString(),
			Tick:         st.Tick,
			Kind:         EffectFaction,
			Source:       source,
			Target:       string(fe.Faction) + "." + field,
			Before:       before,
			After:        after,
			Requested:    requested,
			Applied:      after - before,
			CascadeLevel: level,
		}
		if after-before != requested {
			entry.Note = fmt.Sprintf("clamped: requested %+.1f, applied %+.1f", requested, after-before)
		}
		*logs = append(*logs, entry)
	}

	if fe.Support != 0 {
		before := f.Support
		f.Support = clamp(before+fe.Support, -100, 100)
		record("support", before, f.Support, fe.Support)
	}
	if fe.Power != 0 {
		before := f.Power
		f.Power = clamp(before+fe.Power, 0, 100)
		record("power", before, f.Power, fe.Power)
	}
	if fe.Resources != 0 {
		before := f.Resources
		f.Resources = before + fe.Resources // unbounded
		record("resources", before, f.Resources, fe.Resources)
	}
	if fe.RelationWith != "" && fe.RelationDelta != 0 {
		before := f.Relations[fe.RelationWith]
		after := clamp(before+fe.RelationDelta, -100, 100)
		f.Relations[fe.RelationWith] = after
		// Relations are symmetric.
		if other, ok := st.Factions[fe.RelationWith]; ok {
			other.Relations[fe.Faction] = after
		}
		record("relations."+string(fe.RelationWith), before, after, fe.RelationDelta)
	}
}

// applyProvince shifts a province's bounded fields and per-faction influence.
func (e *Engine) applyProvince(st *State, source string, pe ProvinceEffect, level int, logs *[]EffectLog) {
	p, ok := st.Provinces[pe.Province]
	if !ok {
		slog.Warn("province effect on unknown province", "province", pe.Province, "source", source)
		return
	}

	record := func(field string, before, after, requested float64) {
		entry := EffectLog{
			ID:           uuid.NewString(),
			Tick:         st.Tick,
			Kind:         EffectProvince,
			Source:       source,
			Target:       string(pe.Province) + "." + field,
			Before:       before,
			After:        after,
			Requested:    requested,
			Applied:      after - before,
			CascadeLevel: level,
		}
		if after-before != requested {
			entry.Note = fmt.Sprintf("clamped: requested %+.1f, applied %+.1f", requested, after-before)
		}
		*logs = append(*logs, entry)
	}

	if pe.Discontent != 0 {
		before := p.Discontent
		p.Discontent = clamp(before+pe.Discontent, 0, 100)
		record("discontent", before, p.Discontent, pe.Discontent)
	}
	if pe.Loyalty != 0 {
		before := p.Loyalty
		p.Loyalty = clamp(before+pe.Loyalty, 0, 100)
		record("loyalty", before, p.Loyalty, pe.Loyalty)
	}
	if pe.Economic != 0 {
		before := p.EconomicLevel
		p.EconomicLevel = clamp(before+pe.Economic, 0, 100)
		record("economic_level", before, p.EconomicLevel, pe.Economic)
	}
	if pe.Tag != "" {
		regionalEffectTag(p, pe.Tag)
	}
	if pe.InfluenceFaction != "" && pe.InfluenceDelta != 0 {
		before := p.Influence[pe.InfluenceFaction]
		after := clamp(before+pe.InfluenceDelta, 0, 100)
		p.Influence[pe.InfluenceFaction] = after
		record("influence."+string(pe.InfluenceFaction), before, after, pe.InfluenceDelta)
	}
}

// applyEffects applies an effect bundle at the given cascade level,
// recursing into triggered events. Triggered events either auto-resolve
// through their default choice one level deeper or queue for the player.
// Exceeding the depth cap halts propagation with a warning entry; the
// enclosing decision still commits.
func (e *Engine) applyEffects(st *State, source string, effects []Effect, level int, logs *[]EffectLog, triggered *[]string) {
	metricKind := EffectDecision
	if level > 0 {
		metricKind = EffectCascade
	}

	for _, eff := range effects {
		switch v := eff.(type) {
		case MetricEffect:
			e.applyMetric(st, source, metricKind, v.Metric, v.Delta, level, logs)
		case FactionEffect:
			e.applyFaction(st, source, v, level, logs)
		case ProvinceEffect:
			e.applyProvince(st, source, v, level, logs)
		case TriggerEffect:
			e.cascade(st, source, v.EventID, level+1, logs, triggered)
		}
	}
}

// cascade handles one triggered event at the given depth.
func (e *Engine) cascade(st *State, source, eventID string, level int, logs *[]EffectLog, triggered *[]string) {
	if level > e.MaxCascadeDepth {
		slog.Warn("cascade depth cap exceeded", "source", source, "event", eventID, "level", level)
		*logs = append(*logs, EffectLog{
			ID:           uuid.NewString(),
			Tick:         st.Tick,
			Kind:         EffectCascade,
			Source:       source,
			Target:       eventID,
			Note:         fmt.Sprintf("cascade halted at depth %d (cap %d)", level, e.MaxCascadeDepth),
			CascadeLevel: level,
			Warning:      true,
		})
		return
	}

	ev, ok := e.Catalog.Events[eventID]
	if !ok {
		slog.Warn("cascade to unknown event", "event", eventID, "source", source)
		return
	}

	*triggered = append(*triggered, eventID)

	if !ev.AutoResolve {
		// Queue for the player; depth is preserved so a later decision
		// continues the cascade from here.
		st.PendingEvents = append(st.PendingEvents, PendingEvent{
			EventID:      eventID,
			CascadeLevel: level,
			IssuedAt:     st.Tick,
		})
		return
	}

	choice := ev.Default()
	if choice == nil {
		return
	}
	e.applyEffects(st, eventID, choice.Effects, level, logs, triggered)
	e.markEventCompleted(st, ev)
}

// markEventCompleted records completion history and advances any chain
// waiting on this event.
func (e *Engine) markEventCompleted(st *State, ev *Event) {
	st.CompletedEvents[ev.ID] = st.Tick
	st.LastByCategory[ev.Category] = st.Tick
	e.advanceChains(st, ev.ID)

	// Drop any pending entry for the event; it can no longer be chosen.
	n := 0
	for _, pe := range st.PendingEvents {
		if pe.EventID != ev.ID {
			st.PendingEvents[n] = pe
			n++
		}
	}
	st.PendingEvents = st.PendingEvents[:n]
}

// regionalEffectTag marks a province as carrying an active regional effect.
func regionalEffectTag(p *polity.Province, tag string) {
	for _, t := range p.RegionalEffects {
		if t == tag {
			return
		}
	}
	p.RegionalEffects = append(p.RegionalEffects, tag)
}
