// Event and choice definitions. Definitions are immutable content: the state
// references them by id only, never by per-playthrough copies.
// See design doc Section 3.3.
package engine

// EventCategory groups events for cooldown and presentation purposes.
// Cooldowns apply per category: an event cannot fire while a recent event of
// the same category is still cooling down.
type EventCategory uint8

const (
	CategoryPolitical EventCategory = iota
	CategoryEconomic
	CategorySocial
	CategorySecurity
	CategoryInternational
	CategoryCrisis
)

// String returns the category's stable name.
func (c EventCategory) String() string {
	switch c {
	case CategoryPolitical:
		return "political"
	case CategoryEconomic:
		return "economic"
	case CategorySocial:
		return "social"
	case CategorySecurity:
		return "security"
	case CategoryInternational:
		return "international"
	case CategoryCrisis:
		return "crisis"
	}
	return "unknown"
}

// MetricRange is an inclusive [Min, Max] requirement on one metric.
type MetricRange struct {
	Metric MetricID `json:"metric"`
	Min    float64  `json:"min"`
	Max    float64  `json:"max"`
}

// ChoiceRef identifies one prior decision: an (event, choice) pair.
type ChoiceRef struct {
	EventID  string `json:"event_id"`
	ChoiceID string `json:"choice_id"`
}

// Trigger gates when an event becomes eligible. Checks run in a fixed order
// and short-circuit on the first failure; the probability roll comes last so
// structural rejection never consumes randomness.
type Trigger struct {
	// Probability of firing once structural checks pass, in [0, 1].
	// Zero means always eligible.
	Probability float64 `json:"probability,omitempty"`

	// RequiredPresident scopes the event to a specific president identity.
	RequiredPresident string `json:"required_president,omitempty"`

	// MetricRanges must all hold (inclusive).
	MetricRanges []MetricRange `json:"metric_ranges,omitempty"`

	// CompletedEvents must all be in history; BlockingEvents must all be absent.
	CompletedEvents []string `json:"completed_events,omitempty"`
	BlockingEvents  []string `json:"blocking_events,omitempty"`

	// RequiredChoices must all appear in the decision history.
	RequiredChoices []ChoiceRef `json:"required_choices,omitempty"`

	// Cooldown is the minimum ticks since the last event of the same category.
	Cooldown uint64 `json:"cooldown,omitempty"`
}

// ChoiceCost is the price of selecting a choice, applied before its effects.
type ChoiceCost struct {
	Political float64 `json:"political,omitempty"` // popularity
	Economic  float64 `json:"economic,omitempty"`  // economy
}

// Choice is one selectable outcome of an event. Selecting a choice is the
// only way player intent enters the engine.
type Choice struct {
	ID    string `json:"id"`
	Label string `json:"label"`

	Effects []Effect `json:"-"`

	// Requires optionally gates the choice beyond the event's own trigger.
	Requires *Trigger   `json:"requires,omitempty"`
	Cost     ChoiceCost `json:"cost,omitempty"`
}

// Event is an immutable situation definition.
type Event struct {
	ID          string        `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	Category    EventCategory `json:"category"`

	Trigger Trigger  `json:"trigger"`
	Choices []Choice `json:"choices"`

	// Locked events never become eligible until a flag unlocks them.
	Locked bool `json:"locked,omitempty"`

	// AutoResolve events apply their default choice when reached through a
	// cascade instead of queueing for the player.
	AutoResolve bool `json:"auto_resolve,omitempty"`

	// DefaultChoice is used by cascades and the auto-pick policy.
	// Empty means the first choice.
	DefaultChoice string `json:"default_choice,omitempty"`
}

// Default returns the event's default choice.
func (e *Event) Default() *Choice {
	if len(e.Choices) == 0 {
		return nil
	}
	if e.DefaultChoice != "" {
		for i := range e.Choices {
			if e.Choices[i].ID == e.DefaultChoice {
				return &e.Choices[i]
			}
		}
	}
	return &e.Choices[0]
}

// FindChoice returns the named choice, or nil.
func (e *Event) FindChoice(id string) *Choice {
	for i := range e.Choices {
		if e.Choices[i].ID == id {
			return &e.Choices[i]
		}
	}
	return nil
}

// DecisionResult is the append-only record of one committed decision. Never
// mutated after creation.
type DecisionResult struct {
	ID       string `json:"id"`
	Tick     uint64 `json:"tick"`
	EventID  string `json:"event_id"`
	ChoiceID string `json:"choice_id"`

	Effects   []EffectLog `json:"effects"`
	Triggered []string    `json:"triggered,omitempty"`
	Summary   string      `json:"summary"`
}

// PendingEvent is a cascaded event awaiting a player choice. It must be
// re-validated against current trigger conditions before resolution.
type PendingEvent struct {
	EventID      string `json:"event_id"`
	CascadeLevel int    `json:"cascade_level"`
	IssuedAt     uint64 `json:"issued_at"`
}
