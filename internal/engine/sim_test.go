package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillegas/mandato/internal/entropy"
)

func TestAdvanceDoesNotMutateInput(t *testing.T) {
	e := testEngine(fixedSource{v: 0.99})
	st := NewState("test")
	st.Metrics.Set(MetricEconomy, 30)
	econBefore := st.Metrics.Economy

	next, _ := e.Advance(st, 1)

	assert.Equal(t, uint64(0), st.Tick, "input snapshot keeps its tick")
	assert.Equal(t, econBefore, st.Metrics.Economy)
	assert.Equal(t, uint64(1), next.Tick)
	assert.NotSame(t, st, next)
}

func TestAdvanceDeterministicWithSeededEntropy(t *testing.T) {
	run := func() *State {
		e := New(testCatalog(), entropy.NewSeeded(7))
		st := NewState("test")
		st.Metrics.Set(MetricEconomy, 15)
		for tick := uint64(1); tick <= 20; tick++ {
			st, _ = e.Advance(st, tick)
		}
		return st
	}

	a, b := run(), run()
	assert.Equal(t, a.Metrics, b.Metrics)
	assert.Equal(t, a.CrisisLevel, b.CrisisLevel)
	assert.Equal(t, len(a.Effects), len(b.Effects))
}

func TestApplyDecisionUnknownEvent(t *testing.T) {
	e := testEngine(fixedSource{})
	st := NewState("test")

	same, res, err := e.ApplyDecision(st, "no_such_event", "x")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, res)
	assert.Same(t, st, same, "rejection returns the caller's snapshot untouched")
}

func TestApplyDecisionUnknownChoice(t *testing.T) {
	e := testEngine(fixedSource{})
	st := NewState("test")
	st.Metrics.Set(MetricEconomy, 30)

	_, _, err := e.ApplyDecision(st, "bank_run", "no_such_choice")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestApplyDecisionCostAndEffects(t *testing.T) {
	e := testEngine(fixedSource{})
	st := NewState("test")
	st.Metrics.Set(MetricEconomy, 30)
	popBefore := st.Metrics.Popularity
	econBefore := st.Metrics.Economy

	next, res, err := e.ApplyDecision(st, "bank_run", "guarantee_deposits")
	require.NoError(t, err)
	require.NotNil(t, res)

	// Cost 3 political and 2 economic, then +6 popularity from the effect.
	assert.Equal(t, popBefore-3+6, next.Metrics.Popularity)
	assert.Equal(t, econBefore-2, next.Metrics.Economy)
	assert.Equal(t, st.Factions["business"].Support+5, next.Factions["business"].Support)

	assert.Equal(t, "bank_run", res.EventID)
	assert.NotEmpty(t, res.ID)
	assert.Contains(t, next.CompletedEvents, "bank_run")
	require.Len(t, next.Decisions, 1)

	// Input snapshot untouched.
	assert.Equal(t, popBefore, st.Metrics.Popularity)
	assert.Empty(t, st.CompletedEvents)
}

func TestApplyDecisionRejectsCompletedEvent(t *testing.T) {
	e := testEngine(fixedSource{})
	st := NewState("test")
	st.Metrics.Set(MetricEconomy, 30)

	next, _, err := e.ApplyDecision(st, "bank_run", "guarantee_deposits")
	require.NoError(t, err)

	_, _, err = e.ApplyDecision(next, "bank_run", "guarantee_deposits")
	require.ErrorIs(t, err, ErrRequirementNotMet)
}

func TestApplyDecisionRevalidatesTrigger(t *testing.T) {
	e := testEngine(fixedSource{})
	st := NewState("test")
	// bank_run requires economy <= 40; the default is 50.
	_, _, err := e.ApplyDecision(st, "bank_run", "guarantee_deposits")
	require.ErrorIs(t, err, ErrRequirementNotMet)
}

func TestDecisionHistoryAccumulates(t *testing.T) {
	e := testEngine(fixedSource{})
	st := NewState("test")
	st.Metrics.Set(MetricEconomy, 30)

	st, _, err := e.ApplyDecision(st, "bank_run", "let_it_fail")
	require.NoError(t, err)
	// let_it_fail cascades into street_panic, which queues as pending.
	require.Len(t, st.PendingEvents, 1)
	assert.Equal(t, "street_panic", st.PendingEvents[0].EventID)
	assert.Equal(t, 1, st.PendingEvents[0].CascadeLevel)

	st, _, err = e.ApplyDecision(st, "street_panic", "calm_address")
	require.NoError(t, err)
	assert.Len(t, st.Decisions, 2)
	assert.Empty(t, st.PendingEvents, "deciding a pending event consumes it")
}

func TestCloneIsDeep(t *testing.T) {
	st := NewState("test")
	st.CompletedEvents["x"] = 3
	st.Decrees["d"] = &DecreeInstance{DecreeID: "d", Status: DecreeActive}

	cp := st.Clone()
	cp.Metrics.Set(MetricEconomy, 1)
	cp.Factions["unions"].Support = -99
	cp.Provinces["norte"].Discontent = 99
	cp.CompletedEvents["y"] = 4
	cp.Decrees["d"].Status = DecreeRevoked

	assert.NotEqual(t, 1.0, st.Metrics.Economy)
	assert.NotEqual(t, -99.0, st.Factions["unions"].Support)
	assert.NotEqual(t, 99.0, st.Provinces["norte"].Discontent)
	assert.NotContains(t, st.CompletedEvents, "y")
	assert.Equal(t, DecreeActive, st.Decrees["d"].Status)
}

func TestDeactivateFlag(t *testing.T) {
	e := testEngine(fixedSource{v: 0.99})
	st := NewState("test")
	st.Metrics.Set(MetricEconomy, 10)

	st, _ = e.Advance(st, 1)
	require.True(t, st.Flags["economy_tailspin"].Active)

	st = e.DeactivateFlag(st, "economy_tailspin")
	assert.False(t, st.Flags["economy_tailspin"].Active)

	// Deactivating an inactive flag is a no-op returning the same snapshot.
	same := e.DeactivateFlag(st, "economy_tailspin")
	assert.Same(t, st, same)
}
