// Factions — the political actors the administration negotiates with.
// See design doc Section 3.2.
package polity

// FactionID is a unique identifier for a faction. Factions are a closed
// enumerated set: created at simulation init, never destroyed.
type FactionID string

const (
	FactionMilitary   FactionID = "military"
	FactionBusiness   FactionID = "business"
	FactionUnions     FactionID = "unions"
	FactionMedia      FactionID = "media"
	FactionOpposition FactionID = "opposition"
	FactionJudiciary  FactionID = "judiciary"
)

// Faction represents a political actor with support, power, and relations.
// Only the effect applicator mutates a faction after init.
type Faction struct {
	ID   FactionID `json:"id"`
	Name string    `json:"name"`

	// Support for the administration (-100 to +100).
	Support float64 `json:"support"`
	// Power is institutional weight (0–100).
	Power float64 `json:"power"`
	// Resources is an unbounded counter (money, seats, airtime...).
	Resources float64 `json:"resources"`

	// Relations with other factions (faction ID → -100 to +100).
	Relations map[FactionID]float64 `json:"relations"`

	// Demands are active demand tags ("wage_hike", "tax_cut", ...).
	Demands []string `json:"demands,omitempty"`

	// UniqueEvents is the pool of event ids only this faction can surface.
	UniqueEvents []string `json:"unique_events,omitempty"`
}

// Clone returns a deep copy of the faction.
func (f *Faction) Clone() *Faction {
	cp := *f
	cp.Relations = make(map[FactionID]float64, len(f.Relations))
	for k, v := range f.Relations {
		cp.Relations[k] = v
	}
	cp.Demands = append([]string(nil), f.Demands...)
	cp.UniqueEvents = append([]string(nil), f.UniqueEvents...)
	return &cp
}

// AllFactions lists the closed faction set in stable order.
func AllFactions() []FactionID {
	return []FactionID{
		FactionMilitary, FactionBusiness, FactionUnions,
		FactionMedia, FactionOpposition, FactionJudiciary,
	}
}

// SeedFactions creates the six initial factions.
func SeedFactions() []*Faction {
	factions := []*Faction{
		{
			ID:      FactionMilitary,
			Name:    "Armed Forces",
			Support: 10, Power: 60, Resources: 200,
			Demands: []string{"budget_increase"},
		},
		{
			ID:      FactionBusiness,
			Name:    "Industrial Chamber",
			Support: 20, Power: 70, Resources: 900,
			Demands:      []string{"tax_cut", "deregulation"},
			UniqueEvents: []string{"investment_summit"},
		},
		{
			ID:      FactionUnions,
			Name:    "General Workers Union",
			Support: -10, Power: 65, Resources: 300,
			Demands:      []string{"wage_hike"},
			UniqueEvents: []string{"general_strike"},
		},
		{
			ID:      FactionMedia,
			Name:    "Media Conglomerates",
			Support: 0, Power: 55, Resources: 500,
		},
		{
			ID:      FactionOpposition,
			Name:    "Opposition Bloc",
			Support: -40, Power: 50, Resources: 250,
			UniqueEvents: []string{"censure_motion"},
		},
		{
			ID:      FactionJudiciary,
			Name:    "Federal Courts",
			Support: 5, Power: 45, Resources: 100,
		},
	}

	for _, f := range factions {
		f.Relations = make(map[FactionID]float64)
	}

	// Initial inter-faction relations, symmetric.
	// Business vs unions: structural conflict. Media amplifies opposition.
	setRelation(factions, FactionBusiness, FactionUnions, -50)
	setRelation(factions, FactionBusiness, FactionMilitary, 20)
	setRelation(factions, FactionBusiness, FactionMedia, 30)
	setRelation(factions, FactionUnions, FactionOpposition, 40)
	setRelation(factions, FactionMedia, FactionOpposition, 25)
	setRelation(factions, FactionMilitary, FactionOpposition, -30)
	setRelation(factions, FactionJudiciary, FactionMilitary, -10)
	setRelation(factions, FactionJudiciary, FactionMedia, 10)

	return factions
}

// setRelation sets a symmetric relation between two factions.
func setRelation(factions []*Faction, a, b FactionID, value float64) {
	for _, f := range factions {
		if f.ID == a {
			f.Relations[b] = value
		}
		if f.ID == b {
			f.Relations[a] = value
		}
	}
}
