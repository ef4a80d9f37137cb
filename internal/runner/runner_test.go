package runner

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillegas/mandato/internal/content"
	"github.com/lvillegas/mandato/internal/engine"
	"github.com/lvillegas/mandato/internal/entropy"
)

func testRunner(t *testing.T) *Runner {
	t.Helper()
	eng := engine.New(content.Default(), entropy.NewSeeded(42))
	return New(eng, engine.NewState("test"))
}

func TestTermTime(t *testing.T) {
	cases := []struct {
		tick uint64
		want string
	}{
		{0, "Year 1, Month 1, Week 1"},
		{3, "Year 1, Month 1, Week 4"},
		{4, "Year 1, Month 2, Week 1"},
		{47, "Year 1, Month 12, Week 4"},
		{48, "Year 2, Month 1, Week 1"},
		{49, "Year 2, Month 1, Week 2"},
		{TermTicks - 1, "Year 4, Month 12, Week 4"},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, TermTime(tc.tick), "tick %d", tc.tick)
	}
}

func TestDoReplacesSnapshotOnSuccess(t *testing.T) {
	r := testRunner(t)
	before := r.State()

	err := r.Do(func(st *engine.State) (*engine.State, error) {
		next := st.Clone()
		next.CrisisLevel = 3
		return next, nil
	})
	require.NoError(t, err)

	assert.NotSame(t, before, r.State())
	assert.Equal(t, 3, r.State().CrisisLevel)
	assert.Equal(t, 0, before.CrisisLevel, "old snapshot untouched")
}

func TestDoLeavesSnapshotOnError(t *testing.T) {
	r := testRunner(t)
	before := r.State()

	boom := errors.New("boom")
	err := r.Do(func(st *engine.State) (*engine.State, error) {
		return nil, boom
	})
	require.ErrorIs(t, err, boom)
	assert.Same(t, before, r.State())
}

func TestDoNilNextKeepsCurrent(t *testing.T) {
	r := testRunner(t)
	before := r.State()

	err := r.Do(func(st *engine.State) (*engine.State, error) {
		return nil, nil
	})
	require.NoError(t, err)
	assert.Same(t, before, r.State())
}

func TestSpeedControls(t *testing.T) {
	r := testRunner(t)
	assert.Equal(t, 1.0, r.Speed())

	r.SetSpeed(4)
	assert.Equal(t, 4.0, r.Speed())

	r.SetSpeed(0)
	assert.Equal(t, 0.0, r.Speed())
}

func TestAutoPickResolvesPending(t *testing.T) {
	r := testRunner(t)
	r.Interval = time.Millisecond
	r.AutoPick = true

	require.NoError(t, r.Do(func(st *engine.State) (*engine.State, error) {
		next := st.Clone()
		next.CompletedEvents["general_strike"] = 1
		next.PendingEvents = append(next.PendingEvents, engine.PendingEvent{
			EventID: "roadblock_protests", CascadeLevel: 1, IssuedAt: 1,
		})
		return next, nil
	}))

	done := make(chan struct{})
	go func() {
		r.Run()
		close(done)
	}()
	defer func() { r.Stop(); <-done }()

	require.Eventually(t, func() bool {
		for _, d := range r.State().Decisions {
			if d.EventID == "roadblock_protests" {
				return true
			}
		}
		return false
	}, 2*time.Second, time.Millisecond)
	assert.Empty(t, r.State().PendingEvents)
}

func TestRunAdvancesAndStops(t *testing.T) {
	r := testRunner(t)
	r.Interval = time.Millisecond

	saves := 0
	r.AutoSaveEvery = 1
	r.AutoSave = func(*engine.State) { saves++ }

	done := make(chan struct{})
	go func() {
		r.Run()
		close(done)
	}()

	require.Eventually(t, func() bool {
		return r.State().Tick >= 3
	}, 2*time.Second, time.Millisecond)
	assert.True(t, r.Running())

	r.Stop()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("loop did not stop")
	}
	assert.False(t, r.Running())
	assert.Positive(t, saves, "final save on stop")
}
