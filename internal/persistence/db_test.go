package persistence

import (
	"fmt"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillegas/mandato/internal/engine"
	"github.com/lvillegas/mandato/internal/polity"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db
}

func sampleState() *engine.State {
	st := engine.NewState("test")
	st.Tick = 17
	st.CrisisLevel = 2
	st.Metrics.Set(engine.MetricEconomy, 31)
	st.Factions[polity.FactionUnions].Support = -22
	st.Factions[polity.FactionUnions].Demands = []string{"wage_adjustment"}
	st.Provinces[polity.ProvinceNorte].Discontent = 64
	st.CompletedEvents["bank_run"] = 9
	st.UnlockedEvents["vault_event"] = true
	st.ProbabilityMods["bank_run"] = 2.0
	st.Achievements = []string{"rock_bottom"}
	st.Progress = engine.Progress{Level: 2, XP: 50, XPToNext: 150, SkillPoints: 2}
	st.Decrees["austerity_order"] = &engine.DecreeInstance{
		DecreeID: "austerity_order", InstanceID: uuid.NewString(),
		Status: engine.DecreeActive, EmittedAt: 12, ExpiresAt: 22,
	}
	st.Flags["economy_tailspin"] = &engine.FlagState{Active: true, ActivatedAt: 10}
	st.Chains["panic_arc"] = &engine.ChainState{Active: true, Step: 1}
	st.Missions["border_patrol"] = &engine.MissionState{Status: engine.MissionCompleted}
	st.Decisions = append(st.Decisions, engine.DecisionResult{
		ID: uuid.NewString(), Tick: 9, EventID: "bank_run", ChoiceID: "guarantee_deposits",
		Summary: "deposits guaranteed",
	})
	st.Effects = append(st.Effects, engine.EffectLog{
		ID: uuid.NewString(), Tick: 9, Kind: engine.EffectDecision,
		Source: "bank_run", Target: "popularity",
		Before: 55, After: 61, Requested: 6, Applied: 6,
	})
	return st
}

func TestHasStateFalseOnFreshDB(t *testing.T) {
	db := testDB(t)
	assert.False(t, db.HasState())
}

func TestSaveLoadRoundTrip(t *testing.T) {
	db := testDB(t)
	st := sampleState()

	require.NoError(t, db.SaveState(st))
	require.True(t, db.HasState())

	got, err := db.LoadState()
	require.NoError(t, err)

	assert.Equal(t, st.Tick, got.Tick)
	assert.Equal(t, st.President, got.President)
	assert.Equal(t, st.CrisisLevel, got.CrisisLevel)
	assert.Equal(t, st.Metrics, got.Metrics)

	assert.Equal(t, -22.0, got.Factions[polity.FactionUnions].Support)
	assert.Equal(t, []string{"wage_adjustment"}, got.Factions[polity.FactionUnions].Demands)
	assert.Equal(t, 64.0, got.Provinces[polity.ProvinceNorte].Discontent)
	assert.Equal(t,
		st.Provinces[polity.ProvinceNorte].Influence,
		got.Provinces[polity.ProvinceNorte].Influence,
	)

	assert.Equal(t, st.CompletedEvents, got.CompletedEvents)
	assert.Equal(t, st.UnlockedEvents, got.UnlockedEvents)
	assert.Equal(t, st.ProbabilityMods, got.ProbabilityMods)
	assert.Equal(t, st.Achievements, got.Achievements)
	assert.Equal(t, st.Progress, got.Progress)

	require.Contains(t, got.Decrees, "austerity_order")
	assert.Equal(t, *st.Decrees["austerity_order"], *got.Decrees["austerity_order"])
	assert.Equal(t, *st.Flags["economy_tailspin"], *got.Flags["economy_tailspin"])
	assert.Equal(t, *st.Chains["panic_arc"], *got.Chains["panic_arc"])
	assert.Equal(t, engine.MissionCompleted, got.Missions["border_patrol"].Status)

	require.Len(t, got.Decisions, 1)
	assert.Equal(t, st.Decisions[0].ID, got.Decisions[0].ID)
	assert.Equal(t, "guarantee_deposits", got.Decisions[0].ChoiceID)

	require.Len(t, got.Effects, 1)
	assert.Equal(t, st.Effects[0].ID, got.Effects[0].ID)
	assert.Equal(t, 61.0, got.Effects[0].After)
}

func TestSaveIsIdempotentForHistory(t *testing.T) {
	db := testDB(t)
	st := sampleState()

	require.NoError(t, db.SaveState(st))
	require.NoError(t, db.SaveState(st))

	got, err := db.LoadState()
	require.NoError(t, err)
	assert.Len(t, got.Decisions, 1, "uuid keys keep history append-only")
	assert.Len(t, got.Effects, 1)
}

func TestRecentEffectsLimitAndOrder(t *testing.T) {
	db := testDB(t)
	st := engine.NewState("test")
	for i := 0; i < 10; i++ {
		st.Effects = append(st.Effects, engine.EffectLog{
			ID: uuid.NewString(), Tick: uint64(i), Kind: engine.EffectEvent,
			Source: "austerity_order", Target: "economy",
			Note: fmt.Sprintf("step %d", i),
		})
	}
	require.NoError(t, db.SaveState(st))

	got, err := db.RecentEffects(3)
	require.NoError(t, err)
	require.Len(t, got, 3)

	// Newest three, returned oldest first.
	assert.Equal(t, uint64(7), got[0].Tick)
	assert.Equal(t, uint64(9), got[2].Tick)
}

func TestMetaRoundTrip(t *testing.T) {
	db := testDB(t)

	_, err := db.GetMeta("missing")
	require.Error(t, err)

	require.NoError(t, db.SaveMeta("schema_note", "v1"))
	v, err := db.GetMeta("schema_note")
	require.NoError(t, err)
	assert.Equal(t, "v1", v)

	require.NoError(t, db.SaveMeta("schema_note", "v2"))
	v, err = db.GetMeta("schema_note")
	require.NoError(t, err)
	assert.Equal(t, "v2", v)
}
