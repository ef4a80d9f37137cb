// Provinces — geographic entities with discontent, loyalty, and economy.
// See design doc Section 3.2.
package polity

// ProvinceID is a unique identifier for a province. Provinces are a closed
// enumerated set with the same lifecycle rules as factions.
type ProvinceID string

const (
	ProvinceCapital   ProvinceID = "capital"
	ProvinceLitoral   ProvinceID = "litoral"
	ProvinceCuyo      ProvinceID = "cuyo"
	ProvinceNorte     ProvinceID = "norte"
	ProvincePatagonia ProvinceID = "patagonia"
	ProvincePampa     ProvinceID = "pampa"
)

// Ideology is the dominant political leaning of a province.
type Ideology uint8

const (
	IdeologyConservative Ideology = iota
	IdeologyLiberal
	IdeologyProgressive
	IdeologyPopulist
)

// IdeologyName returns a human-readable name for an ideology.
func IdeologyName(i Ideology) string {
	switch i {
	case IdeologyConservative:
		return "conservative"
	case IdeologyLiberal:
		return "liberal"
	case IdeologyProgressive:
		return "progressive"
	case IdeologyPopulist:
		return "populist"
	}
	return "unknown"
}

// Province is a geographic entity. Discontent, loyalty, and economic level
// are all bounded to [0, 100]; only the effect applicator mutates them.
type Province struct {
	ID   ProvinceID `json:"id"`
	Name string     `json:"name"`

	Discontent    float64 `json:"discontent"`
	Loyalty       float64 `json:"loyalty"`
	EconomicLevel float64 `json:"economic_level"`

	Population uint64   `json:"population"`
	Ideology   Ideology `json:"ideology"`

	// Influence per faction (faction ID → 0–100).
	Influence map[FactionID]float64 `json:"influence"`

	// ActiveEvents are event ids currently unfolding in this province.
	ActiveEvents []string `json:"active_events,omitempty"`
	// RegionalEffects are active regional effect tags.
	RegionalEffects []string `json:"regional_effects,omitempty"`
}

// Clone returns a deep copy of the province.
func (p *Province) Clone() *Province {
	cp := *p
	cp.Influence = make(map[FactionID]float64, len(p.Influence))
	for k, v := range p.Influence {
		cp.Influence[k] = v
	}
	cp.ActiveEvents = append([]string(nil), p.ActiveEvents...)
	cp.RegionalEffects = append([]string(nil), p.RegionalEffects...)
	return &cp
}

// AllProvinces lists the closed province set in stable order.
func AllProvinces() []ProvinceID {
	return []ProvinceID{
		ProvinceCapital, ProvinceLitoral, ProvinceCuyo,
		ProvinceNorte, ProvincePatagonia, ProvincePampa,
	}
}

// SeedProvinces creates the six initial provinces.
func SeedProvinces() []*Province {
	provinces := []*Province{
		{
			ID: ProvinceCapital, Name: "Capital District",
			Discontent: 35, Loyalty: 45, EconomicLevel: 75,
			Population: 3_100_000, Ideology: IdeologyLiberal,
		},
		{
			ID: ProvinceLitoral, Name: "Litoral",
			Discontent: 40, Loyalty: 50, EconomicLevel: 55,
			Population: 4_200_000, Ideology: IdeologyPopulist,
		},
		{
			ID: ProvinceCuyo, Name: "Cuyo",
			Discontent: 30, Loyalty: 55, EconomicLevel: 50,
			Population: 2_000_000, Ideology: IdeologyConservative,
		},
		{
			ID: ProvinceNorte, Name: "Norte Grande",
			Discontent: 55, Loyalty: 60, EconomicLevel: 30,
			Population: 3_500_000, Ideology: IdeologyPopulist,
		},
		{
			ID: ProvincePatagonia, Name: "Patagonia",
			Discontent: 25, Loyalty: 40, EconomicLevel: 60,
			Population: 900_000, Ideology: IdeologyProgressive,
		},
		{
			ID: ProvincePampa, Name: "Pampa Húmeda",
			Discontent: 30, Loyalty: 50, EconomicLevel: 70,
			Population: 5_600_000, Ideology: IdeologyConservative,
		},
	}

	// Initial faction influence: unions strong where discontent is high,
	// business where the economy is strong.
	for _, p := range provinces {
		p.Influence = map[FactionID]float64{
			FactionUnions:     p.Discontent * 0.8,
			FactionBusiness:   p.EconomicLevel * 0.6,
			FactionOpposition: 20,
			FactionMedia:      15,
		}
	}

	return provinces
}
