package content

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lvillegas/mandato/internal/engine"
)

func TestDefaultCatalogValidates(t *testing.T) {
	var c *engine.Catalog
	require.NotPanics(t, func() { c = Default() })

	assert.NotEmpty(t, c.Events)
	assert.NotEmpty(t, c.Decrees)
	assert.NotEmpty(t, c.Missions)
	assert.NotEmpty(t, c.Flags)
	assert.NotEmpty(t, c.Chains)
	require.NoError(t, c.Validate())
}

func TestEveryEventHasResolvableDefault(t *testing.T) {
	c := Default()
	for id, ev := range c.Events {
		require.NotNil(t, ev.Default(), "event %s needs a default choice", id)
		if ev.DefaultChoice != "" {
			assert.NotNil(t, ev.FindChoice(ev.DefaultChoice), "event %s default must exist", id)
		}
	}
}

func TestLockedContentHasAnUnlockPath(t *testing.T) {
	c := Default()

	// Every locked event must be reachable through some flag's UnlockEvent.
	unlockable := make(map[string]bool)
	for _, f := range c.Flags {
		for _, eff := range f.Effects {
			if ue, ok := eff.(engine.UnlockEvent); ok {
				unlockable[ue.EventID] = true
			}
		}
	}
	for id, ev := range c.Events {
		if ev.Locked {
			assert.True(t, unlockable[id], "locked event %s has no unlock path", id)
		}
	}

	// Every locked mission must be some mission's NextMissions entry.
	nextable := make(map[string]bool)
	for _, m := range c.Missions {
		for _, next := range m.NextMissions {
			nextable[next] = true
		}
	}
	for id, m := range c.Missions {
		if m.Locked {
			assert.True(t, nextable[id], "locked mission %s has no unlock path", id)
		}
	}
}

func TestFlagAndChainReferencesResolve(t *testing.T) {
	c := Default()
	for _, f := range c.Flags {
		for _, eff := range f.Effects {
			switch v := eff.(type) {
			case engine.UnlockEvent:
				assert.Contains(t, c.Events, v.EventID, "flag %s unlocks unknown event", f.ID)
			case engine.ChangeProbability:
				assert.Contains(t, c.Events, v.EventID, "flag %s modifies unknown event", f.ID)
			}
		}
	}
	for _, ch := range c.Chains {
		for _, ev := range ch.Events {
			assert.Contains(t, c.Events, ev, "chain %s links unknown event", ch.ID)
		}
	}
}

func TestDecreeRisksAndDurationsSane(t *testing.T) {
	c := Default()
	for id, d := range c.Decrees {
		assert.GreaterOrEqual(t, d.LegalRisk, 0.0, "decree %s", id)
		assert.LessOrEqual(t, d.LegalRisk, 1.0, "decree %s", id)
		assert.Positive(t, d.Duration, "decree %s must be time-boxed", id)
		assert.NotEmpty(t, d.NationalMetrics, "decree %s has no ongoing contribution", id)
	}
}

func TestCascadeTargetsAutoResolveOrHaveChoices(t *testing.T) {
	c := Default()
	for id, ev := range c.Events {
		for _, ch := range ev.Choices {
			for _, eff := range ch.Effects {
				if te, ok := eff.(engine.TriggerEffect); ok {
					target := c.Events[te.EventID]
					require.NotNil(t, target, "event %s cascades to unknown %s", id, te.EventID)
					assert.NotEmpty(t, target.Choices)
				}
			}
		}
	}
}
