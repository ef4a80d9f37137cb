package engine

import (
	"fmt"
	"sort"
)

// Catalog bundles all immutable content definitions: events, decrees,
// missions, flags, and chains. Built once at init and shared read-only.
type Catalog struct {
	Events   map[string]*Event
	Decrees  map[string]*Decree
	Missions map[string]*Mission
	Flags    []*Flag
	Chains   []*Chain
}

// EventIDs returns all event ids in stable order.
func (c *Catalog) EventIDs() []string {
	ids := make([]string, 0, len(c.Events))
	for id := range c.Events {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// DecreeIDs returns all decree ids in stable order.
func (c *Catalog) DecreeIDs() []string {
	ids := make([]string, 0, len(c.Decrees))
	for id := range c.Decrees {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// MissionIDs returns all mission ids in stable order.
func (c *Catalog) MissionIDs() []string {
	ids := make([]string, 0, len(c.Missions))
	for id := range c.Missions {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Validate checks referential integrity: every id referenced by a trigger,
// cascade, chain link, or mission unlock must resolve within the catalog.
func (c *Catalog) Validate() error {
	for id, ev := range c.Events {
		if len(ev.Choices) == 0 {
			return fmt.Errorf("event %q has no choices", id)
		}
		for _, ref := range append(append([]string(nil), ev.Trigger.CompletedEvents...), ev.Trigger.BlockingEvents...) {
			if _, ok := c.Events[ref]; !ok {
				return fmt.Errorf("event %q references unknown event %q", id, ref)
			}
		}
		for _, ch := range ev.Choices {
			for _, eff := range ch.Effects {
				if t, ok := eff.(TriggerEffect); ok {
					if _, ok := c.Events[t.EventID]; !ok {
						return fmt.Errorf("event %q choice %q cascades to unknown event %q", id, ch.ID, t.EventID)
					}
				}
			}
		}
	}

	for _, chain := range c.Chains {
		if len(chain.Events) == 0 {
			return fmt.Errorf("chain %q has no events", chain.ID)
		}
		for _, ref := range chain.Events {
			if _, ok := c.Events[ref]; !ok {
				return fmt.Errorf("chain %q links unknown event %q", chain.ID, ref)
			}
		}
	}

	for id, m := range c.Missions {
		if len(m.Choices) == 0 {
			return fmt.Errorf("mission %q has no choices", id)
		}
		for _, next := range m.NextMissions {
			if _, ok := c.Missions[next]; !ok {
				return fmt.Errorf("mission %q unlocks unknown mission %q", id, next)
			}
		}
	}

	return nil
}
