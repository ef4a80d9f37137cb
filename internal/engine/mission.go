// Missions — faction/province-scoped objectives with choice-driven rewards.
// Lifecycle: locked/hidden → available (trigger + roll) → active (accepted)
// → completed (choice resolved, idempotent).
// See design doc Section 3.7.
package engine

import (
	"fmt"
	"log/slog"

	"github.com/lvillegas/mandato/internal/polity"
)

// MissionType selects the mission's mechanics and context seeding.
type MissionType uint8

const (
	MissionCombat MissionType = iota
	MissionNegotiation
	MissionDiplomatic
	MissionEspionage
)

// String returns the type's stable name.
func (t MissionType) String() string {
	switch t {
	case MissionCombat:
		return "combat"
	case MissionNegotiation:
		return "negotiation"
	case MissionDiplomatic:
		return "diplomatic"
	case MissionEspionage:
		return "espionage"
	}
	return "unknown"
}

// MissionStatus is the lifecycle state of a mission for this playthrough.
type MissionStatus uint8

const (
	MissionHidden MissionStatus = iota
	MissionAvailable
	MissionActive
	MissionCompleted
)

// String returns the status's stable name.
func (s MissionStatus) String() string {
	switch s {
	case MissionHidden:
		return "hidden"
	case MissionAvailable:
		return "available"
	case MissionActive:
		return "active"
	case MissionCompleted:
		return "completed"
	}
	return "unknown"
}

// MissionTrigger gates availability. Reuses the evaluator's ordering: the
// structural floors run before the probability roll.
type MissionTrigger struct {
	MinTick uint64 `json:"min_tick,omitempty"`

	// MinFactionSupport is a floor on the assigning faction's support.
	MinFactionSupport float64 `json:"min_faction_support,omitempty"`

	// Province-state thresholds on the target province.
	MinProvinceDiscontent float64 `json:"min_province_discontent,omitempty"`
	MaxProvinceLoyalty    float64 `json:"max_province_loyalty"`

	MetricRanges   []MetricRange `json:"metric_ranges,omitempty"`
	RequiredEvents []string      `json:"required_events,omitempty"`

	Probability float64 `json:"probability,omitempty"`
}

/// MissionChoice resolves a mission: faction and province impact plus metric
// outcome effects and an XP bonus.
type MissionChoice struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	FactionSupport     float64 `json:"faction_support,omitempty"`
	ProvinceDiscontent float64 `json:"province_discontent,omitempty"`
	ProvinceLoyalty    float64 `json:"province_loyalty,omitempty"`

	Outcomes []Effect `json:"-"`
	XPBonus  int      `json:"xp_bonus,omitempty"`
}

// MissionRewards is the base reward bundle.
type MissionRewards struct {
	XP                  int     `json:"xp"`
	FactionSupportBonus float64 `json:"faction_support_bonus,omitempty"`
}

// Mission is an immutable mission definition.
type Mission struct {
	ID    string      `json:"id"`
	Title string      `json:"title"`
	Type  MissionType `json:"type"`

	Faction  polity.FactionID  `json:"faction"`
	Province polity.ProvinceID `json:"province"`

	Trigger    MissionTrigger  `json:"trigger"`
	Objectives []string        `json:"objectives"`
	Choices    []MissionChoice `json:"choices"`
	Rewards    MissionRewards  `json:"rewards"`

	// NextMissions unlock once this mission completes.
	NextMissions []string `json:"next_missions,omitempty"`

	// Locked missions only become scannable after an unlock.
	Locked bool `json:"locked,omitempty"`
}

// FindChoice returns the named mission choice, or nil.
func (m *Mission) FindChoice(id string) *MissionChoice {
	for i := range m.Choices {
		if m.Choices[i].ID == id {
			return &m.Choices[i]
		}
	}
	return nil
}

// MissionContext is type-specific context seeded at acceptance.
type MissionContext struct {
	// Difficulty multiplier; for combat, derived from target-province discontent.
	Difficulty float64  `json:"difficulty"`
	Objectives []string `json:"objectives,omitempty"`
}

// MissionState is the per-playthrough runtime record of a mission.
type MissionState struct {
	Status      MissionStatus   `json:"status"`
	AvailableAt uint64          `json:"available_at,omitempty"`
	AcceptedAt  uint64          `json:"accepted_at,omitempty"`
	CompletedAt uint64          `json:"completed_at,omitempty"`
	ChoiceID    string          `json:"choice_id,omitempty"`
	Context     *MissionContext `json:"context,omitempty"`
}

// MissionResult reports a resolved mission.
type MissionResult struct {
	MissionID  string      `json:"mission_id"`
	ChoiceID   string      `json:"choice_id"`
	XPAwarded  int         `json:"xp_awarded"`
	LevelsUp   int         `json:"levels_up"`
	Effects    []EffectLog `json:"effects"`
	NewMission []string    `json:"unlocked,omitempty"`
}

// Progress is the operative's XP/level track.
type Progress struct {
	XP          int `json:"xp"`
	Level       int `json:"level"`
	SkillPoints int `json:"skill_points"`
	XPToNext    int `json:"xp_to_next"`
}

// NewProgress returns the level-1 starting track.
func NewProgress() Progress {
	return Progress{Level: 1, XPToNext: 100}
}

// award adds XP and resolves level-ups: while xp covers the threshold, level
// rises, xp keeps the remainder, the threshold grows exponentially, and two
// skill points are granted per level.
func (p *Progress) award(xp int) (levels int) {
	p.XP += xp
	for p.XP >= p.XPToNext {
		p.XP -= p.XPToNext
		p.Level++
		p.SkillPoints += 2
		p.XPToNext = int(float64(p.XPToNext) * 1.5)
		levels++
	}
	return levels
}

// missionEligible checks a mission's trigger against current state. The
// probability roll runs only when roll is true and after every structural
// check passes.
func (e *Engine) missionEligible(st *State, m *Mission, roll bool) bool {
	if m.Locked && !st.UnlockedMissions[m.ID] {
		return false
	}
	if st.Tick < m.Trigger.MinTick {
		return false
	}
	if f, ok := st.Factions[m.Faction]; !ok || f.Support < m.Trigger.MinFactionSupport {
		return false
	}
	if p, ok := st.Provinces[m.Province]; ok {
		if p.Discontent < m.Trigger.MinProvinceDiscontent {
			return false
		}
		if m.Trigger.MaxProvinceLoyalty > 0 && p.Loyalty > m.Trigger.MaxProvinceLoyalty {
			return false
		}
	}
	for _, r := range m.Trigger.MetricRanges {
		if !st.Metrics.InRange(r.Metric, r.Min, r.Max) {
			return false
		}
	}
	for _, ev := range m.Trigger.RequiredEvents {
		if _, done := st.CompletedEvents[ev]; !done {
			return false
		}
	}
	if roll && m.Trigger.Probability > 0 {
		return e.RNG.Float() < m.Trigger.Probability
	}
	return true
}

// scanMissions marks newly-available missions. Completed and active missions
// are skipped; availability is sticky once granted.
func (e *Engine) scanMissions(st *State) {
	for _, id := range e.Catalog.MissionIDs() {
		m := e.Catalog.Missions[id]
		ms := st.Missions[id]
		if ms == nil {
			ms = &MissionState{}
			st.Missions[id] = ms
		}
		if ms.Status != MissionHidden {
			continue
		}
		if e.missionEligible(st, m, true) {
			ms.Status = MissionAvailable
			ms.AvailableAt = st.Tick
			slog.Info("mission available", "mission", id, "type", m.Type, "tick", st.Tick)
		}
	}
}

// AcceptMission moves an available mission to active and seeds its
// type-specific context.
func (e *Engine) AcceptMission(st *State, missionID string) (*State, error) {
	m, ok := e.Catalog.Missions[missionID]
	if !ok {
		return st, fmt.Errorf("mission %q: %w", missionID, ErrNotFound)
	}
	ms := st.Missions[missionID]
	if ms == nil || ms.Status != MissionAvailable {
		return st, fmt.Errorf("mission %q not available: %w", missionID, ErrRequirementNotMet)
	}

	next := st.Clone()
	nms := next.Missions[missionID]
	nms.Status = MissionActive
	nms.AcceptedAt = next.Tick
	nms.Context = e.seedMissionContext(next, m)
	slog.Info("mission accepted", "mission", missionID, "difficulty", nms.Context.Difficulty)
	return next, nil
}

// seedMissionContext builds the type-specific context at acceptance.
func (e *Engine) seedMissionContext(st *State, m *Mission) *MissionContext {
	ctx := &MissionContext{Difficulty: 1.0, Objectives: append([]string(nil), m.Objectives...)}
	p := st.Provinces[m.Province]

	switch m.Type {
	case MissionCombat:
		// Harder where the province is angrier.
		if p != nil {
			ctx.Difficulty = 1.0 + p.Discontent/100.0
		}
	case MissionNegotiation:
		ctx.Objectives = append(ctx.Objectives, "secure_concessions")
	case MissionDiplomatic:
		ctx.Objectives = append(ctx.Objectives, "joint_declaration")
	case MissionEspionage:
		ctx.Objectives = append(ctx.Objectives, "exfiltrate_undetected")
		ctx.Difficulty = 1.2
	}
	return ctx
}

// ResolveMission applies a mission choice: faction impact, province impact,
// metric outcomes, XP with level-ups, attenuated discontent spillover to
// other provinces, completion (idempotent), and next-mission unlocks.
func (e *Engine) ResolveMission(st *State, missionID, choiceID string) (*State, *MissionResult, error) {
	m, ok := e.Catalog.Missions[missionID]
	if !ok {
		return st, nil, fmt.Errorf("mission %q: %w", missionID, ErrNotFound)
	}
	ms := st.Missions[missionID]
	if ms != nil && ms.Status == MissionCompleted {
		// Duplicate completion is an idempotent no-op.
		slog.Info("mission already completed", "mission", missionID)
		return st, nil, nil
	}
	if ms == nil || ms.Status != MissionActive {
		return st, nil, fmt.Errorf("mission %q not active: %w", missionID, ErrRequirementNotMet)
	}
	choice := m.FindChoice(choiceID)
	if choice == nil {
		return st, nil, fmt.Errorf("mission choice %q: %w", choiceID, ErrNotFound)
	}

	next := st.Clone()
	var logs []EffectLog
	var triggered []string

	// Faction impact.
	if choice.FactionSupport != 0 || m.Rewards.FactionSupportBonus != 0 {
		e.applyFaction(next, missionID, FactionEffect{
			Faction: m.Faction,
			Support: choice.FactionSupport + m.Rewards.FactionSupportBonus,
		}, 0, &logs)
	}

	// Province impact.
	if choice.ProvinceDiscontent != 0 || choice.ProvinceLoyalty != 0 {
		e.applyProvince(next, missionID, ProvinceEffect{
			Province:   m.Province,
			Discontent: choice.ProvinceDiscontent,
			Loyalty:    choice.ProvinceLoyalty,
		}, 0, &logs)
	}

	// Metric outcomes through the shared applicator (cascades included).
	e.applyEffects(next, missionID, choice.Outcomes, 0, &logs, &triggered)

	// Spillover: a fraction of the province impact reaches the rest of the
	// country as an attenuated discontent shift.
	if choice.ProvinceDiscontent != 0 {
		spill := choice.ProvinceDiscontent * e.SpilloverRatio
		for _, pid := range polity.AllProvinces() {
			if pid == m.Province {
				continue
			}
			e.applyProvince(next, missionID, ProvinceEffect{Province: pid, Discontent: spill}, 0, &logs)
		}
	}

	// XP and level-ups.
	xp := m.Rewards.XP + choice.XPBonus
	levels := next.Progress.award(xp)

	nms := next.Missions[missionID]
	nms.Status = MissionCompleted
	nms.CompletedAt = next.Tick
	nms.ChoiceID = choiceID

	for _, nextID := range m.NextMissions {
		next.UnlockedMissions[nextID] = true
	}

	next.Effects = append(next.Effects, logs...)
	slog.Info("mission resolved",
		"mission", missionID, "choice", choiceID,
		"xp", xp, "level", next.Progress.Level, "unlocked", len(m.NextMissions),
	)

	return next, &MissionResult{
		MissionID:  missionID,
		ChoiceID:   choiceID,
		XPAwarded:  xp,
		LevelsUp:   levels,
		Effects:    logs,
		NewMission: m.NextMissions,
	}, nil
}

// AvailableMissions lists missions currently offered but not yet accepted.
func (e *Engine) AvailableMissions(st *State) []*Mission {
	var out []*Mission
	for _, id := range e.Catalog.MissionIDs() {
		if ms := st.Missions[id]; ms != nil && ms.Status == MissionAvailable {
			out = append(out, e.Catalog.Missions[id])
		}
	}
	return out
}
