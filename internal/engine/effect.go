// Effect vocabulary — the closed set of state mutations a choice, decree,
// mission outcome, or flag can carry. Each kind is a tagged variant; the
// applicator switches over them exhaustively.
// See design doc Section 3.4.
package engine

import (
	"github.com/lvillegas/mandato/internal/polity"
)

// Effect is one atomic state mutation request. The set of implementations is
// closed: MetricEffect, FactionEffect, ProvinceEffect, TriggerEffect.
type Effect interface {
	effect()
}

// MetricEffect shifts one national metric by Delta (clamped to [0, 100]).
type MetricEffect struct {
	Metric MetricID `json:"metric"`
	Delta  float64  `json:"delta"`
}

// FactionEffect shifts a faction's support, power, resources, or its
// relation toward another faction. Zero-valued fields are no-ops.
type FactionEffect struct {
	Faction   polity.FactionID `json:"faction"`
	Support   float64          `json:"support,omitempty"`
	Power     float64          `json:"power,omitempty"`
	Resources float64          `json:"resources,omitempty"`

	// Optional relation shift toward RelationWith.
	RelationWith  polity.FactionID `json:"relation_with,omitempty"`
	RelationDelta float64          `json:"relation_delta,omitempty"`
}

// ProvinceEffect shifts a province's bounded state fields.
type ProvinceEffect struct {
	Province   polity.ProvinceID `json:"province"`
	Discontent float64           `json:"discontent,omitempty"`
	Loyalty    float64           `json:"loyalty,omitempty"`
	Economic   float64           `json:"economic,omitempty"`

	// Optional influence shift for one faction within the province.
	InfluenceFaction polity.FactionID `json:"influence_faction,omitempty"`
	InfluenceDelta   float64          `json:"influence_delta,omitempty"`

	// Tag optionally marks the province with an active regional effect.
	Tag string `json:"tag,omitempty"`
}

// TriggerEffect cascades into another event. The triggered event either
// auto-resolves through its default choice or is queued for the player,
// one cascade level deeper than its source.
type TriggerEffect struct {
	EventID string `json:"event_id"`
}

func (MetricEffect) effect()   {}
func (FactionEffect) effect()  {}
func (ProvinceEffect) effect() {}
func (TriggerEffect) effect()  {}

// EffectKind classifies an effect log entry by its source.
type EffectKind uint8

const (
	EffectDecision EffectKind = iota
	EffectEvent
	EffectCascade
	EffectFaction
	EffectProvince
)

// String returns the kind's stable name.
func (k EffectKind) String() string {
	switch k {
	case EffectDecision:
		return "decision"
	case EffectEvent:
		return "event"
	case EffectCascade:
		return "cascade"
	case EffectFaction:
		return "faction"
	case EffectProvince:
		return "province"
	}
	return "unknown"
}

// EffectLog records one atomic state mutation: the primary observability
// artifact of the engine. Requested and Applied differ when a write was
// absorbed at a bound.
type EffectLog struct {
	ID     string     `json:"id"`
	Tick   uint64     `json:"tick"`
	Kind   EffectKind `json:"kind"`
	Source string     `json:"source"` // event/decree/mission/flag id
	Target string     `json:"target"` // metric/faction/province id

	Before    float64 `json:"before"`
	After     float64 `json:"after"`
	Requested float64 `json:"requested"`
	Applied   float64 `json:"applied"`

	Note         string `json:"note,omitempty"`
	CascadeLevel int    `json:"cascade_level,omitempty"`
	Warning      bool   `json:"warning,omitempty"`
}
