package content

import (
	"github.com/lvillegas/mandato/internal/engine"
	"github.com/lvillegas/mandato/internal/polity"
)

// seedDecrees authors the decree (DNU) catalog.
func seedDecrees() []*engine.Decree {
	return []*engine.Decree{
		{
			ID:       "price_freeze",
			Title:    "Emergency Price Freeze",
			Category: engine.DecreeEconomic,
			Urgency:  engine.UrgencyHigh,
			NationalMetrics: []engine.MetricEffect{
				{Metric: engine.MetricPopularity, Delta: 0.5},
				{Metric: engine.MetricEconomy, Delta: -0.3},
			},
			FactionEffects: []engine.FactionEffect{
				{Faction: polity.FactionBusiness, Support: -15},
				{Faction: polity.FactionUnions, Support: 10},
			},
			PoliticalCost: 3,
			EconomicCost:  2,
			LegalRisk:     0.25,
			Duration:      60,
			Requirements: engine.DecreeRequirements{
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricEconomy, Min: 0, Max: 45}},
			},
			RevocationEffects: []engine.Effect{
				engine.MetricEffect{Metric: engine.MetricPopularity, Delta: -5},
				engine.FactionEffect{Faction: polity.FactionBusiness, Support: 8},
			},
			ResponseOptions: []engine.DecreeResponse{
				{
					ID: "business_lawsuit", Label: "The chamber files suit",
					Effects: []engine.Effect{
						engine.FactionEffect{Faction: polity.FactionJudiciary, Support: -5},
						engine.MetricEffect{Metric: engine.MetricMediaControl, Delta: -3},
					},
				},
				{
					ID: "union_rally", Label: "Unions rally in support",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 4},
						engine.FactionEffect{Faction: polity.FactionUnions, Support: 5},
					},
				},
			},
		},
		{
			ID:       "security_emergency",
			Title:    "Internal Security Emergency",
			Category: engine.DecreeSecurity,
			Urgency:  engine.UrgencyHigh,
			NationalMetrics: []engine.MetricEffect{
				{Metric: engine.MetricSecurity, Delta: 0.8},
				{Metric: engine.MetricPopularity, Delta: -0.2},
			},
			ProvinceEffects: []engine.ProvinceEffect{
				{Province: polity.ProvinceNorte, Discontent: 5, Tag: "security_emergency"},
				{Province: polity.ProvinceCapital, Discontent: 3},
			},
			PoliticalCost: 5,
			LegalRisk:     0.35,
			Duration:      45,
			Requirements: engine.DecreeRequirements{
				MinCrisisLevel: 1,
			},
			RevocationEffects: []engine.Effect{
				engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 3},
				engine.MetricEffect{Metric: engine.MetricSecurity, Delta: -4},
			},
			ResponseOptions: []engine.DecreeResponse{
				{
					ID: "court_injunction", Label: "Courts issue an injunction",
					Effects: []engine.Effect{
						engine.FactionEffect{Faction: polity.FactionJudiciary, Power: 5},
						engine.MetricEffect{Metric: engine.MetricSecurity, Delta: -3},
					},
				},
			},
		},
		{
			ID:       "export_windfall_tax",
			Title:    "Export Windfall Tax",
			Category: engine.DecreeEconomic,
			Urgency:  engine.UrgencyMedium,
			NationalMetrics: []engine.MetricEffect{
				{Metric: engine.MetricEconomy, Delta: 0.4},
			},
			FactionEffects: []engine.FactionEffect{
				{Faction: polity.FactionBusiness, Support: -10, RelationWith: polity.FactionUnions, RelationDelta: -5},
			},
			ProvinceEffects: []engine.ProvinceEffect{
				{Province: polity.ProvincePampa, Discontent: 8},
			},
			PoliticalCost: 2,
			LegalRisk:     0.15,
			Duration:      90,
			Requirements: engine.DecreeRequirements{
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricInternational, Min: 30, Max: 100}},
				MaxActive:    2,
			},
			RevocationEffects: []engine.Effect{
				engine.ProvinceEffect{Province: polity.ProvincePampa, Discontent: -5},
				engine.FactionEffect{Faction: polity.FactionBusiness, Support: 5},
			},
		},
		{
			ID:       "media_licensing",
			Title:    "Broadcast Licensing Overhaul",
			Category: engine.DecreeInstitutional,
			Urgency:  engine.UrgencyLow,
			NationalMetrics: []engine.MetricEffect{
				{Metric: engine.MetricMediaControl, Delta: 0.6},
			},
			FactionEffects: []engine.FactionEffect{
				{Faction: polity.FactionMedia, Support: -20, Power: -5},
			},
			PoliticalCost: 4,
			LegalRisk:     0.40,
			Duration:      120,
			Requirements: engine.DecreeRequirements{
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricPopularity, Min: 45, Max: 100}},
			},
			RevocationEffects: []engine.Effect{
				engine.FactionEffect{Faction: polity.FactionMedia, Support: 10},
				engine.MetricEffect{Metric: engine.MetricMediaControl, Delta: -6},
			},
			ResponseOptions: []engine.DecreeResponse{
				{
					ID: "blackout_campaign", Label: "Broadcasters run a blackout campaign",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: -6},
						engine.MetricEffect{Metric: engine.MetricMediaControl, Delta: -4},
					},
				},
			},
		},
	}
}
