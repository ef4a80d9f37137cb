// Event chains — ordered sequences of linked events with a single cursor.
// inactive → active → (step++ per completed link) → completed. A chain can
// never regress.
// See design doc Section 3.5.
package engine

import "log/slog"

// Chain is an ordered sequence of event ids layered on top of individual
// events. Start gates use the same trigger vocabulary as events.
type Chain struct {
	ID     string   `json:"id"`
	Title  string   `json:"title"`
	Events []string `json:"events"`

	// Start gates activation; only structural checks apply (no probability).
	Start Trigger `json:"start"`
}

// ChainState is the per-playthrough cursor for a chain.
type ChainState struct {
	Active    bool `json:"active"`
	Step      int  `json:"step"`
	Completed bool `json:"completed"`
}

// evaluateChains activates chains whose start gate holds. Completed chains
// stay completed; active chains advance only through event completion.
func (e *Engine) evaluateChains(st *State) {
	for _, chain := range e.Catalog.Chains {
		cs := st.Chains[chain.ID]
		if cs == nil {
			cs = &ChainState{}
			st.Chains[chain.ID] = cs
		}
		if cs.Active || cs.Completed {
			continue
		}
		if reason := e.checkStructural(st, &chain.Start); reason != "" {
			continue
		}
		cs.Active = true
		slog.Info("chain activated", "chain", chain.ID, "tick", st.Tick)
	}
}

// advanceChains moves every active chain whose current link just completed.
// Advancing past the last link completes and deactivates the chain.
func (e *Engine) advanceChains(st *State, completedEventID string) {
	for _, chain := range e.Catalog.Chains {
		cs := st.Chains[chain.ID]
		if cs == nil || !cs.Active || cs.Completed {
			continue
		}
		if cs.Step >= len(chain.Events) || chain.Events[cs.Step] != completedEventID {
			continue
		}
		cs.Step++
		if cs.Step >= len(chain.Events) {
			cs.Completed = true
			cs.Active = false
			slog.Info("chain completed", "chain", chain.ID, "tick", st.Tick)
		} else {
			slog.Info("chain advanced", "chain", chain.ID, "step", cs.Step, "tick", st.Tick)
		}
	}
}

// chainNextEvent returns the event id an active chain is waiting on, or "".
func chainNextEvent(chain *Chain, cs *ChainState) string {
	if cs == nil || !cs.Active || cs.Completed || cs.Step >= len(chain.Events) {
		return ""
	}
	return chain.Events[cs.Step]
}
