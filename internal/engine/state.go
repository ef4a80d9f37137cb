// State — the explicit simulation snapshot threaded through every engine
// call. Mutating operations clone first and return the updated copy; the
// caller's prior snapshot is never touched.
// See design doc Section 3.8.
package engine

import (
	"github.com/lvillegas/mandato/internal/polity"
)

// State is one full snapshot of the simulation. There are no hidden
// singletons: everything an engine call reads or writes lives here.
type State struct {
	Tick        uint64 `json:"tick"`
	President   string `json:"president"`
	CrisisLevel int    `json:"crisis_level"`

	Metrics   Metrics                              `json:"metrics"`
	Factions  map[polity.FactionID]*polity.Faction `json:"factions"`
	Provinces map[polity.ProvinceID]*polity.Province `json:"provinces"`

	// CompletedEvents maps event id → tick of completion.
	CompletedEvents map[string]uint64 `json:"completed_events"`
	// LastByCategory maps event category → tick of last occurrence, for
	// cooldown checks against "similar" events.
	LastByCategory map[EventCategory]uint64 `json:"last_by_category"`

	// Decisions is the append-only decision history.
	Decisions []DecisionResult `json:"decisions"`
	// Effects is the audit trail of every atomic mutation.
	Effects []EffectLog `json:"effects"`

	// PendingEvents are cascaded events awaiting a player choice.
	PendingEvents []PendingEvent `json:"pending_events,omitempty"`

	Flags   map[string]*FlagState     `json:"flags"`
	Chains  map[string]*ChainState    `json:"chains"`
	Decrees map[string]*DecreeInstance `json:"decrees"`

	Missions         map[string]*MissionState `json:"missions"`
	UnlockedEvents   map[string]bool          `json:"unlocked_events,omitempty"`
	UnlockedMissions map[string]bool          `json:"unlocked_missions,omitempty"`
	// ProbabilityMods scales trigger probabilities per event id.
	ProbabilityMods map[string]float64 `json:"probability_mods,omitempty"`

	Achievements []string `json:"achievements,omitempty"`
	Progress     Progress `json:"progress"`
}

// NewState builds the starting snapshot from the seed registries.
func NewState(president string) *State {
	st := &State{
		President:       president,
		Metrics:         DefaultMetrics(),
		Factions:        make(map[polity.FactionID]*polity.Faction),
		Provinces:       make(map[polity.ProvinceID]*polity.Province),
		CompletedEvents: make(map[string]uint64),
		LastByCategory:  make(map[EventCategory]uint64),
		Flags:           make(map[string]*FlagState),
		Chains:          make(map[string]*ChainState),
		Decrees:         make(map[string]*DecreeInstance),
		Missions:        make(map[string]*MissionState),
		UnlockedEvents:  make(map[string]bool),
		UnlockedMissions: make(map[string]bool),
		ProbabilityMods: make(map[string]float64),
		Progress:        NewProgress(),
	}
	for _, f := range polity.SeedFactions() {
		st.Factions[f.ID] = f
	}
	for _, p := range polity.SeedProvinces() {
		st.Provinces[p.ID] = p
	}
	return st
}

// Clone returns a deep copy. Shared immutable content (catalog definitions)
// is referenced by id only, so only runtime containers need copying.
func (s *State) Clone() *State {
	cp := *s

	cp.Factions = make(map[polity.FactionID]*polity.Faction, len(s.Factions))
	for id, f := range s.Factions {
		cp.Factions[id] = f.Clone()
	}
	cp.Provinces = make(map[polity.ProvinceID]*polity.Province, len(s.Provinces))
	for id, p := range s.Provinces {
		cp.Provinces[id] = p.Clone()
	}

	cp.CompletedEvents = cloneMap(s.CompletedEvents)
	cp.LastByCategory = cloneMap(s.LastByCategory)
	cp.UnlockedEvents = cloneMap(s.UnlockedEvents)
	cp.UnlockedMissions = cloneMap(s.UnlockedMissions)
	cp.ProbabilityMods = cloneMap(s.ProbabilityMods)

	cp.Decisions = append([]DecisionResult(nil), s.Decisions...)
	cp.Effects = append([]EffectLog(nil), s.Effects...)
	cp.PendingEvents = append([]PendingEvent(nil), s.PendingEvents...)
	cp.Achievements = append([]string(nil), s.Achievements...)

	cp.Flags = make(map[string]*FlagState, len(s.Flags))
	for id, fs := range s.Flags {
		c := *fs
		cp.Flags[id] = &c
	}
	cp.Chains = make(map[string]*ChainState, len(s.Chains))
	for id, cs := range s.Chains {
		c := *cs
		cp.Chains[id] = &c
	}
	cp.Decrees = make(map[string]*DecreeInstance, len(s.Decrees))
	for id, di := range s.Decrees {
		c := *di
		cp.Decrees[id] = &c
	}
	cp.Missions = make(map[string]*MissionState, len(s.Missions))
	for id, ms := range s.Missions {
		c := *ms
		if ms.Context != nil {
			ctx := *ms.Context
			ctx.Objectives = append([]string(nil), ms.Context.Objectives...)
			c.Context = &ctx
		}
		cp.Missions[id] = &c
	}

	return &cp
}

func cloneMap[K comparable, V any](m map[K]V) map[K]V {
	out := make(map[K]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

// RecentEffects returns the last n effect log entries, newest last.
func (s *State) RecentEffects(n int) []EffectLog {
	if n <= 0 || n >= len(s.Effects) {
		return append([]EffectLog(nil), s.Effects...)
	}
	return append([]EffectLog(nil), s.Effects[len(s.Effects)-n:]...)
}

// DecidedChoice reports whether the (event, choice) pair is in history.
func (s *State) DecidedChoice(eventID, choiceID string) bool {
	for _, d := range s.Decisions {
		if d.EventID == eventID && d.ChoiceID == choiceID {
			return true
		}
	}
	return false
}
