// Flags — persistent condition→effect rules evaluated every tick.
// A flag activates once (inactive → active, one-way); while active, its
// metric modifiers are recomputed and re-applied each tick rather than
// accumulated at activation.
// See design doc Section 3.5.
package engine

import (
	"log/slog"

	"github.com/lvillegas/mandato/internal/polity"
)

// Condition is one requirement a flag checks against current state. The set
// of implementations is closed.
type Condition interface {
	condition()
}

// MetricCondition holds when the metric lies in [Min, Max], inclusive.
type MetricCondition struct {
	Metric MetricID `json:"metric"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
}

// ElapsedCondition holds once at least Ticks have passed since sim start.
type ElapsedCondition struct {
	Ticks uint64 `json:"ticks"`
}

// EventDoneCondition holds once the event appears in completed history.
type EventDoneCondition struct {
	EventID string `json:"event_id"`
}

// DecisionCondition holds once the (event, choice) pair was decided.
type DecisionCondition struct {
	EventID  string `json:"event_id"`
	ChoiceID string `json:"choice_id"`
}

// RelationCondition holds when faction A's relation toward B is at least Min.
type RelationCondition struct {
	A   polity.FactionID `json:"a"`
	B   polity.FactionID `json:"b"`
	Min float64          `json:"min"`
}

// ProvinceField selects which bounded province value a condition inspects.
type ProvinceField uint8

const (
	ProvinceDiscontent ProvinceField = iota
	ProvinceLoyalty
	ProvinceEconomic
)

// ProvinceCondition holds when the selected province field lies in [Min, Max].
type ProvinceCondition struct {
	Province polity.ProvinceID `json:"province"`
	Field    ProvinceField     `json:"field"`
	Min      float64           `json:"min"`
	Max      float64           `json:"max"`
}

func (MetricCondition) condition()    {}
func (ElapsedCondition) condition()   {}
func (EventDoneCondition) condition() {}
func (DecisionCondition) condition()  {}
func (RelationCondition) condition()  {}
func (ProvinceCondition) condition()  {}

// FlagEffect is what an activated flag does. Closed set: per-tick metric
// modifiers, event unlocks, probability changes, crisis escalation, and
// achievement unlocks.
type FlagEffect interface {
	flagEffect()
}

// ModifyMetric applies Delta to a metric every tick while the flag is active.
type ModifyMetric struct {
	Metric MetricID `json:"metric"`
	Delta  float64  `json:"delta"`
}

// UnlockEvent makes a locked event eligible for trigger evaluation.
type UnlockEvent struct {
	EventID string `json:"event_id"`
}

// ChangeProbability scales an event's trigger probability.
type ChangeProbability struct {
	EventID string  `json:"event_id"`
	Factor  float64 `json:"factor"`
}

// TriggerCrisis raises the crisis level by Levels at activation.
type TriggerCrisis struct {
	Levels int `json:"levels"`
}

// UnlockAchievement records an achievement id at activation.
type UnlockAchievement struct {
	ID string `json:"id"`
}

func (ModifyMetric) flagEffect()      {}
func (UnlockEvent) flagEffect()       {}
func (ChangeProbability) flagEffect() {}
func (TriggerCrisis) flagEffect()     {}
func (UnlockAchievement) flagEffect() {}

// Flag is a persistent condition→effect rule definition.
type Flag struct {
	ID         string       `json:"id"`
	Type       string       `json:"type"` // "crisis", "bonus", "story", ...
	Conditions []Condition  `json:"-"`
	Effects    []FlagEffect `json:"-"`
}

// FlagState is the per-playthrough runtime state of a flag.
type FlagState struct {
	Active      bool   `json:"active"`
	ActivatedAt uint64 `json:"activated_at,omitempty"`
}

// conditionHolds evaluates one condition against the state.
func conditionHolds(st *State, c Condition) bool {
	switch cond := c.(type) {
	case MetricCondition:
		return st.Metrics.InRange(cond.Metric, cond.Min, cond.Max)
	case ElapsedCondition:
		return st.Tick >= cond.Ticks
	case EventDoneCondition:
		_, done := st.CompletedEvents[cond.EventID]
		return done
	case DecisionCondition:
		for _, d := range st.Decisions {
			if d.EventID == cond.EventID && d.ChoiceID == cond.ChoiceID {
				return true
			}
		}
		return false
	case RelationCondition:
		f, ok := st.Factions[cond.A]
		if !ok {
			return false
		}
		return f.Relations[cond.B] >= cond.Min
	case ProvinceCondition:
		p, ok := st.Provinces[cond.Province]
		if !ok {
			return false
		}
		var v float64
		switch cond.Field {
		case ProvinceDiscontent:
			v = p.Discontent
		case ProvinceLoyalty:
			v = p.Loyalty
		case ProvinceEconomic:
			v = p.EconomicLevel
		}
		return v >= cond.Min && v <= cond.Max
	}
	return false
}

// evaluateFlags checks every inactive flag's conditions against the current
// state and activates flags whose conditions all hold. One-shot effects
// (crisis, unlocks, probability changes) apply at activation; ModifyMetric
// effects are applied per tick by applyActiveFlagModifiers.
func (e *Engine) evaluateFlags(st *State, logs *[]EffectLog) {
	for _, flag := range e.Catalog.Flags {
		fs := st.Flags[flag.ID]
		if fs == nil {
			fs = &FlagState{}
			st.Flags[flag.ID] = fs
		}
		if fs.Active {
			continue
		}

		holds := true
		for _, c := range flag.Conditions {
			if !conditionHolds(st, c) {
				holds = false
				break
			}
		}
		if !holds {
			continue
		}

		fs.Active = true
		fs.ActivatedAt = st.Tick
		slog.Info("flag activated", "flag", flag.ID, "type", flag.Type, "tick", st.Tick)

		for _, eff := range flag.Effects {
			switch fe := eff.(type) {
			case UnlockEvent:
				st.UnlockedEvents[fe.EventID] = true
			case ChangeProbability:
				st.ProbabilityMods[fe.EventID] = fe.Factor
			case TriggerCrisis:
				st.CrisisLevel += fe.Levels
			case UnlockAchievement:
				st.Achievements = append(st.Achievements, fe.ID)
			case ModifyMetric:
				// Applied per tick while active; nothing to do at activation.
			}
		}
	}
}

// applyActiveFlagModifiers applies every active flag's per-tick metric
// modifiers. The contribution is recomputed each tick from the definitions,
// never carried over, so deactivation stops it immediately.
func (e *Engine) applyActiveFlagModifiers(st *State, logs *[]EffectLog) {
	for _, flag := range e.Catalog.Flags {
		fs := st.Flags[flag.ID]
		if fs == nil || !fs.Active {
			continue
		}
		for _, eff := range flag.Effects {
			if mm, ok := eff.(ModifyMetric); ok {
				e.applyMetric(st, flag.ID, EffectEvent, mm.Metric, mm.Delta, 0, logs)
			}
		}
	}
}
