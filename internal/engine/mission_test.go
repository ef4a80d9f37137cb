package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillegas/mandato/internal/polity"
)

// missionReady advances a fresh state into a position where border_patrol is
// available and accepted.
func missionReady(t *testing.T, e *Engine) *State {
	t.Helper()
	st := NewState("test")
	st.Provinces[polity.ProvinceNorte].Discontent = 60
	st.Factions[polity.FactionMilitary].Support = 20

	st, _ = e.Advance(st, 1)
	require.Equal(t, MissionAvailable, st.Missions["border_patrol"].Status)

	st, err := e.AcceptMission(st, "border_patrol")
	require.NoError(t, err)
	return st
}

func TestScanMissionsGatesOnTrigger(t *testing.T) {
	e := testEngine(fixedSource{v: 0.1}) // passes the 0.5 probability
	st := NewState("test")
	st.Provinces[polity.ProvinceNorte].Discontent = 10 // below the 30 floor

	st, _ = e.Advance(st, 1)
	assert.Equal(t, MissionHidden, st.Missions["border_patrol"].Status)

	st.Provinces[polity.ProvinceNorte].Discontent = 60
	st, _ = e.Advance(st, 2)
	assert.Equal(t, MissionAvailable, st.Missions["border_patrol"].Status)
	assert.Equal(t, uint64(2), st.Missions["border_patrol"].AvailableAt)
}

func TestScanMissionsRespectsSupportFloor(t *testing.T) {
	e := testEngine(fixedSource{v: 0.1})
	st := NewState("test")
	st.Provinces[polity.ProvinceNorte].Discontent = 60
	st.Factions[polity.FactionMilitary].Support = -5 // below the 0 floor

	st, _ = e.Advance(st, 1)
	assert.Equal(t, MissionHidden, st.Missions["border_patrol"].Status)
}

func TestLockedMissionNeedsUnlock(t *testing.T) {
	e := testEngine(fixedSource{v: 0.1})
	st := NewState("test")

	st, _ = e.Advance(st, 1)
	assert.Equal(t, MissionHidden, st.Missions["deep_recon"].Status)

	st.UnlockedMissions["deep_recon"] = true
	st, _ = e.Advance(st, 2)
	assert.Equal(t, MissionAvailable, st.Missions["deep_recon"].Status)
}

func TestAcceptMissionSeedsContext(t *testing.T) {
	e := testEngine(fixedSource{v: 0.1})
	st := missionReady(t, e)

	ms := st.Missions["border_patrol"]
	require.Equal(t, MissionActive, ms.Status)
	require.NotNil(t, ms.Context)
	// Combat difficulty scales with the target province's discontent.
	assert.InDelta(t, 1.0+st.Provinces[polity.ProvinceNorte].Discontent/100.0, ms.Context.Difficulty, 1e-9)
	assert.Contains(t, ms.Context.Objectives, "hold_checkpoints")
}

func TestAcceptMissionRequiresAvailability(t *testing.T) {
	e := testEngine(fixedSource{v: 0.1})
	st := NewState("test")

	_, err := e.AcceptMission(st, "border_patrol")
	require.ErrorIs(t, err, ErrRequirementNotMet)

	_, err = e.AcceptMission(st, "no_such_mission")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestResolveMissionAppliesImpactAndSpillover(t *testing.T) {
	e := testEngine(fixedSource{v: 0.1})
	st := missionReady(t, e)

	norteBefore := st.Provinces[polity.ProvinceNorte].Discontent
	pampaBefore := st.Provinces[polity.ProvincePampa].Discontent
	supportBefore := st.Factions[polity.FactionMilitary].Support

	next, res, err := e.ResolveMission(st, "border_patrol", "sweep")
	require.NoError(t, err)
	require.NotNil(t, res)

	// Choice -20 discontent in the target, 30% of that to everyone else.
	assert.Equal(t, norteBefore-20, next.Provinces[polity.ProvinceNorte].Discontent)
	assert.InDelta(t, pampaBefore-6, next.Provinces[polity.ProvincePampa].Discontent, 1e-9)

	// Choice support +5 plus the +2 reward bonus.
	assert.Equal(t, supportBefore+7, next.Factions[polity.FactionMilitary].Support)

	assert.Equal(t, MissionCompleted, next.Missions["border_patrol"].Status)
	assert.True(t, next.UnlockedMissions["deep_recon"])
	assert.Equal(t, []string{"deep_recon"}, res.NewMission)
}

func TestResolveMissionXPAndLevelUp(t *testing.T) {
	e := testEngine(fixedSource{v: 0.1})
	st := missionReady(t, e)
	require.Equal(t, 1, st.Progress.Level)

	next, res, err := e.ResolveMission(st, "border_patrol", "sweep")
	require.NoError(t, err)

	// 120 reward + 30 bonus = 150 XP: level 2 at 100, leaving 50 toward the
	// raised 150 threshold.
	assert.Equal(t, 150, res.XPAwarded)
	assert.Equal(t, 1, res.LevelsUp)
	assert.Equal(t, 2, next.Progress.Level)
	assert.Equal(t, 50, next.Progress.XP)
	assert.Equal(t, 150, next.Progress.XPToNext)
	assert.Equal(t, 2, next.Progress.SkillPoints)
}

func TestResolveMissionIdempotent(t *testing.T) {
	e := testEngine(fixedSource{v: 0.1})
	st := missionReady(t, e)

	st, _, err := e.ResolveMission(st, "border_patrol", "sweep")
	require.NoError(t, err)

	same, res, err := e.ResolveMission(st, "border_patrol", "sweep")
	require.NoError(t, err)
	assert.Nil(t, res)
	assert.Same(t, st, same)
}

func TestResolveMissionUnknownChoice(t *testing.T) {
	e := testEngine(fixedSource{v: 0.1})
	st := missionReady(t, e)

	_, _, err := e.ResolveMission(st, "border_patrol", "retreat")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestAvailableMissionsListing(t *testing.T) {
	e := testEngine(fixedSource{v: 0.1})
	st := NewState("test")
	st.Provinces[polity.ProvinceNorte].Discontent = 60
	st.Factions[polity.FactionMilitary].Support = 20

	assert.Empty(t, e.AvailableMissions(st))
	st, _ = e.Advance(st, 1)

	missions := e.AvailableMissions(st)
	require.Len(t, missions, 1)
	assert.Equal(t, "border_patrol", missions[0].ID)
}
