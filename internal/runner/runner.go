// Package runner drives the turn loop. The engine itself is passive; the
// runner owns the current snapshot, advances it on a timer, and serializes
// player commands against it (single-writer).
package runner

import (
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/lvillegas/mandato/internal/engine"
)

// Calendar constants. One tick is one week of the term.
const (
	TicksPerMonth = 4
	TicksPerYear  = 48
	TermTicks     = 4 * TicksPerYear // single four-year term
)

// Runner advances the simulation on a timer and serializes all mutation.
type Runner struct {
	Eng      *engine.Engine
	Interval time.Duration // base tick interval

	// AutoSave, when set, is called with the fresh snapshot every
	// AutoSaveEvery ticks and once on Stop.
	AutoSave      func(*engine.State)
	AutoSaveEvery uint64

	// AutoPick resolves pending cascaded events with their default choice
	// instead of waiting for a player decision.
	AutoPick bool

	mu      sync.Mutex
	st      *engine.State
	speed   float64
	running bool
	stop    chan struct{}
}

// New creates a runner over an initial snapshot, paused at speed 1.0.
func New(eng *engine.Engine, st *engine.State) *Runner {
	return &Runner{
		Eng:           eng,
		Interval:      time.Second,
		AutoSaveEvery: 10,
		st:            st,
		speed:         1.0,
		stop:          make(chan struct{}),
	}
}

// State returns the current snapshot. Snapshots are never mutated in place,
// so readers may hold the pointer without locking.
func (r *Runner) State() *engine.State {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.st
}

// Speed returns the current speed multiplier (0 = paused).
func (r *Runner) Speed() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.speed
}

// SetSpeed changes the tick rate. 0 pauses the loop.
func (r *Runner) SetSpeed(v float64) {
	r.mu.Lock()
	r.speed = v
	r.mu.Unlock()
	slog.Info("speed changed", "speed", v)
}

// Running reports whether the loop is live.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// Do executes a command against the current snapshot under the writer lock.
// The command receives the live snapshot and returns its replacement; on
// error the snapshot is left untouched.
func (r *Runner) Do(fn func(st *engine.State) (*engine.State, error)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, err := fn(r.st)
	if err != nil {
		return err
	}
	if next != nil {
		r.st = next
	}
	return nil
}

// Run starts the turn loop. Blocks until Stop is called.
func (r *Runner) Run() {
	r.mu.Lock()
	r.running = true
	tick := r.st.Tick
	r.mu.Unlock()

	slog.Info("turn loop started", "tick", tick, "interval", r.Interval)

	for {
		select {
		case <-r.stop:
			r.mu.Lock()
			r.running = false
			st := r.st
			r.mu.Unlock()
			if r.AutoSave != nil {
				r.AutoSave(st)
			}
			slog.Info("turn loop stopped", "tick", st.Tick)
			return
		default:
		}

		speed := r.Speed()
		if speed <= 0 {
			time.Sleep(100 * time.Millisecond)
			continue
		}

		start := time.Now()
		st := r.step()

		if r.AutoSave != nil && r.AutoSaveEvery > 0 && st.Tick%r.AutoSaveEvery == 0 {
			r.AutoSave(st)
		}

		elapsed := time.Since(start)
		target := time.Duration(float64(r.Interval) / speed)
		if elapsed < target {
			time.Sleep(target - elapsed)
		}
	}
}

// Stop halts the turn loop and triggers a final save.
func (r *Runner) Stop() {
	close(r.stop)
}

// step advances the snapshot by one tick under the writer lock.
func (r *Runner) step() *engine.State {
	r.mu.Lock()
	defer r.mu.Unlock()

	next, logs := r.Eng.Advance(r.st, r.st.Tick+1)
	r.st = next

	if len(logs) > 0 {
		slog.Debug("tick advanced", "tick", next.Tick, "effects", len(logs))
	}

	if r.AutoPick {
		r.resolvePending()
	}
	return r.st
}

// resolvePending applies the default choice to each currently pending event.
// One wave per tick: events cascaded by these resolutions wait for the next.
// A pending event that fails re-validation stays queued.
func (r *Runner) resolvePending() {
	pending := append([]engine.PendingEvent(nil), r.st.PendingEvents...)
	for _, pe := range pending {
		ev, ok := r.Eng.Catalog.Events[pe.EventID]
		if !ok || ev.Default() == nil {
			continue
		}
		next, res, err := r.Eng.ApplyDecision(r.st, pe.EventID, ev.Default().ID)
		if err != nil {
			slog.Debug("auto-pick deferred", "event", pe.EventID, "error", err)
			continue
		}
		r.st = next
		slog.Info("auto-pick resolved", "event", pe.EventID, "choice", res.ChoiceID)
	}
}

// TermTime renders a tick as a point in the presidential term.
func TermTime(tick uint64) string {
	year := tick/TicksPerYear + 1
	month := (tick%TicksPerYear)/TicksPerMonth + 1
	week := tick%TicksPerMonth + 1
	return fmt.Sprintf("Year %d, Month %d, Week %d", year, month, week)
}
