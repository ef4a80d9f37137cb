package content

import (
	"fmt"

	"github.com/lvillegas/mandato/internal/engine"
)

// Default builds the full authored catalog and validates its referential
// integrity. Panics on an authoring error: a broken catalog is a build
// defect, not a runtime condition.
func Default() *engine.Catalog {
	c := &engine.Catalog{
		Events:   make(map[string]*engine.Event),
		Decrees:  make(map[string]*engine.Decree),
		Missions: make(map[string]*engine.Mission),
		Flags:    seedFlags(),
		Chains:   seedChains(),
	}
	for _, ev := range seedEvents() {
		c.Events[ev.ID] = ev
	}
	for _, d := range seedDecrees() {
		c.Decrees[d.ID] = d
	}
	for _, m := range seedMissions() {
		c.Missions[m.ID] = m
	}
	if err := c.Validate(); err != nil {
		panic(fmt.Sprintf("content catalog invalid: %v", err))
	}
	return c
}
