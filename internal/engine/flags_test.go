package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillegas/mandato/internal/polity"
)

func TestFlagActivatesOnceWithOneShotEffects(t *testing.T) {
	e := testEngine(fixedSource{v: 0.99})
	st := NewState("test")
	st.Metrics.Set(MetricEconomy, 10)

	st, _ = e.Advance(st, 1)

	fs := st.Flags["economy_tailspin"]
	require.NotNil(t, fs)
	assert.True(t, fs.Active)
	assert.Equal(t, uint64(1), fs.ActivatedAt)

	// One-shot effects at activation.
	assert.Equal(t, 2, st.CrisisLevel)
	assert.True(t, st.UnlockedEvents["vault_event"])
	assert.Equal(t, 2.0, st.ProbabilityMods["bank_run"])
	assert.Equal(t, []string{"rock_bottom"}, st.Achievements)

	// Second tick: one-shots do not repeat.
	st, _ = e.Advance(st, 2)
	assert.Equal(t, 2, st.CrisisLevel)
	assert.Len(t, st.Achievements, 1)
}

func TestFlagModifiersRecomputedPerTick(t *testing.T) {
	e := testEngine(fixedSource{v: 0.99})
	st := NewState("test")
	st.Metrics.Set(MetricEconomy, 10)
	pop := st.Metrics.Popularity

	st, _ = e.Advance(st, 1)
	assert.Equal(t, pop-1, st.Metrics.Popularity)

	st, _ = e.Advance(st, 2)
	assert.Equal(t, pop-2, st.Metrics.Popularity, "-1 per tick while active, not accumulated")
}

func TestFlagStaysActiveWhenConditionFades(t *testing.T) {
	e := testEngine(fixedSource{v: 0.99})
	st := NewState("test")
	st.Metrics.Set(MetricEconomy, 10)

	st, _ = e.Advance(st, 1)
	require.True(t, st.Flags["economy_tailspin"].Active)

	// Recovery does not deactivate the flag; activation is one-way.
	st.Metrics.Set(MetricEconomy, 80)
	st, _ = e.Advance(st, 2)
	assert.True(t, st.Flags["economy_tailspin"].Active)
}

func TestDeactivatedFlagStopsModifiers(t *testing.T) {
	e := testEngine(fixedSource{v: 0.99})
	st := NewState("test")
	st.Metrics.Set(MetricEconomy, 10)

	st, _ = e.Advance(st, 1)
	st = e.DeactivateFlag(st, "economy_tailspin")

	// Keep the condition false so it does not immediately re-activate.
	st.Metrics.Set(MetricEconomy, 80)
	pop := st.Metrics.Popularity
	st, _ = e.Advance(st, 2)
	assert.Equal(t, pop, st.Metrics.Popularity)
}

func TestConditionHolds(t *testing.T) {
	st := NewState("test")
	st.Tick = 12
	st.CompletedEvents["seen"] = 3
	st.Decisions = append(st.Decisions, DecisionResult{EventID: "seen", ChoiceID: "ack"})
	st.Factions[polity.FactionUnions].Relations[polity.FactionBusiness] = 40
	st.Provinces[polity.ProvinceNorte].Discontent = 80

	cases := []struct {
		name string
		cond Condition
		want bool
	}{
		{"metric in range", MetricCondition{Metric: MetricPopularity, Min: 50, Max: 60}, true},
		{"metric out of range", MetricCondition{Metric: MetricPopularity, Min: 0, Max: 10}, false},
		{"elapsed reached", ElapsedCondition{Ticks: 12}, true},
		{"elapsed not reached", ElapsedCondition{Ticks: 13}, false},
		{"event done", EventDoneCondition{EventID: "seen"}, true},
		{"event not done", EventDoneCondition{EventID: "unseen"}, false},
		{"decision made", DecisionCondition{EventID: "seen", ChoiceID: "ack"}, true},
		{"decision other choice", DecisionCondition{EventID: "seen", ChoiceID: "nak"}, false},
		{"relation at least", RelationCondition{A: polity.FactionUnions, B: polity.FactionBusiness, Min: 40}, true},
		{"relation below", RelationCondition{A: polity.FactionUnions, B: polity.FactionBusiness, Min: 41}, false},
		{"province field", ProvinceCondition{Province: polity.ProvinceNorte, Field: ProvinceDiscontent, Min: 75, Max: 100}, true},
		{"province field out", ProvinceCondition{Province: polity.ProvinceNorte, Field: ProvinceLoyalty, Min: 90, Max: 100}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, conditionHolds(st, tc.cond))
		})
	}
}
