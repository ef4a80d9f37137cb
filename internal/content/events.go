// Package content holds the immutable content catalogs: events, decrees,
// missions, flags, and chains. Definitions are authored here once and
// referenced by id everywhere else.
package content

import (
	"github.com/lvillegas/mandato/internal/engine"
	"github.com/lvillegas/mandato/internal/polity"
)

// seedEvents authors the event catalog.
func seedEvents() []*engine.Event {
	return []*engine.Event{
		{
			ID:          "currency_run",
			Title:       "Run on the Currency",
			Description: "Savers queue outside exchange houses as the peso slides.",
			Category:    engine.CategoryEconomic,
			Trigger: engine.Trigger{
				Probability:  0.4,
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricEconomy, Min: 0, Max: 35}},
				Cooldown:     30,
			},
			Choices: []engine.Choice{
				{
					ID: "capital_controls", Label: "Impose capital controls",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: 5},
						engine.MetricEffect{Metric: engine.MetricInternational, Delta: -10},
						engine.FactionEffect{Faction: polity.FactionBusiness, Support: -15},
						engine.TriggerEffect{EventID: "black_market_boom"},
					},
				},
				{
					ID: "burn_reserves", Label: "Defend the peso with reserves",
					Cost: engine.ChoiceCost{Economic: 8},
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 5},
						engine.FactionEffect{Faction: polity.FactionBusiness, Support: 5},
					},
				},
			},
		},
		{
			ID:          "black_market_boom",
			Title:       "Black Market Boom",
			Description: "A parallel exchange rate takes over street corners.",
			Category:    engine.CategoryEconomic,
			AutoResolve: true,
			Choices: []engine.Choice{
				{
					ID: "tolerate", Label: "Look the other way",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricCorruption, Delta: 8},
						engine.MetricEffect{Metric: engine.MetricSecurity, Delta: -4},
					},
				},
			},
		},
		{
			ID:          "general_strike",
			Title:       "General Strike",
			Description: "The union federation calls a nationwide stoppage.",
			Category:    engine.CategorySocial,
			Trigger: engine.Trigger{
				Probability:  0.5,
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricPopularity, Min: 0, Max: 45}},
				Cooldown:     40,
			},
			Choices: []engine.Choice{
				{
					ID: "negotiate", Label: "Negotiate with union leadership",
					Cost: engine.ChoiceCost{Economic: 5},
					Effects: []engine.Effect{
						engine.FactionEffect{Faction: polity.FactionUnions, Support: 15},
						engine.FactionEffect{Faction: polity.FactionBusiness, Support: -10},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 5},
					},
				},
				{
					ID: "hold_firm", Label: "Refuse to negotiate",
					Effects: []engine.Effect{
						engine.FactionEffect{Faction: polity.FactionUnions, Support: -20},
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: -8},
						engine.ProvinceEffect{Province: polity.ProvinceLitoral, Discontent: 12},
						engine.ProvinceEffect{Province: polity.ProvinceNorte, Discontent: 10},
						engine.TriggerEffect{EventID: "roadblock_protests"},
					},
				},
			},
		},
		{
			ID:          "roadblock_protests",
			Title:       "Roadblock Protests",
			Description: "Picketers cut the main grain export corridors.",
			Category:    engine.CategorySocial,
			Trigger: engine.Trigger{
				CompletedEvents: []string{"general_strike"},
			},
			Choices: []engine.Choice{
				{
					ID: "clear_roads", Label: "Send in the gendarmerie",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricSecurity, Delta: 6},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: -8},
						engine.ProvinceEffect{Province: polity.ProvincePampa, Discontent: 15, Tag: "crackdown"},
					},
				},
				{
					ID: "wait_out", Label: "Wait for the protests to tire",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: -5},
					},
				},
			},
		},
		{
			ID:          "media_scandal",
			Title:       "Front-Page Scandal",
			Description: "A leaked recording implicates a cabinet minister.",
			Category:    engine.CategoryPolitical,
			Trigger: engine.Trigger{
				Probability:  0.3,
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricCorruption, Min: 45, Max: 100}},
				Cooldown:     25,
			},
			Choices: []engine.Choice{
				{
					ID: "fire_minister", Label: "Dismiss the minister",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 6},
						engine.MetricEffect{Metric: engine.MetricCorruption, Delta: -5},
						engine.FactionEffect{Faction: polity.FactionMedia, Support: 10},
					},
				},
				{
					ID: "deny_everything", Label: "Dismiss the recording as fake",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricMediaControl, Delta: -8},
						engine.FactionEffect{Faction: polity.FactionMedia, Support: -15},
						engine.FactionEffect{Faction: polity.FactionJudiciary, Support: -8},
					},
				},
			},
		},
		{
			ID:          "censure_motion",
			Title:       "Censure Motion",
			Description: "The opposition bloc moves to censure the chief of staff.",
			Category:    engine.CategoryPolitical,
			Trigger: engine.Trigger{
				Probability:     0.35,
				MetricRanges:    []engine.MetricRange{{Metric: engine.MetricPopularity, Min: 0, Max: 40}},
				BlockingEvents:  []string{"coalition_pact"},
				Cooldown:        35,
			},
			Choices: []engine.Choice{
				{
					ID: "whip_votes", Label: "Whip the votes to defeat it",
					Effects: []engine.Effect{
						engine.FactionEffect{Faction: polity.FactionOpposition, Support: -10},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 3},
					},
				},
				{
					ID: "concede_reshuffle", Label: "Concede a cabinet reshuffle",
					Effects: []engine.Effect{
						engine.FactionEffect{Faction: polity.FactionOpposition, Support: 10},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: -4},
					},
				},
			},
		},
		{
			ID:          "coalition_pact",
			Title:       "Coalition Pact",
			Description: "Moderate opposition governors offer a governability pact.",
			Category:    engine.CategoryPolitical,
			Trigger: engine.Trigger{
				Probability:  0.25,
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricPopularity, Min: 40, Max: 100}},
				Cooldown:     50,
			},
			Choices: []engine.Choice{
				{
					ID: "sign_pact", Label: "Sign the pact",
					Effects: []engine.Effect{
						engine.FactionEffect{Faction: polity.FactionOpposition, Support: 20},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 4},
						engine.ProvinceEffect{Province: polity.ProvinceCuyo, Loyalty: 10},
					},
				},
				{
					ID: "reject_pact", Label: "Govern alone",
					Effects: []engine.Effect{
						engine.FactionEffect{Faction: polity.FactionOpposition, Support: -10},
					},
				},
			},
		},
		{
			ID:          "imf_mission",
			Title:       "IMF Review Mission",
			Description: "Fund staff arrive to review program targets.",
			Category:    engine.CategoryInternational,
			Trigger: engine.Trigger{
				Probability: 0.3,
				Cooldown:    45,
			},
			Choices: []engine.Choice{
				{
					ID: "accept_targets", Label: "Accept tighter fiscal targets",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricInternational, Delta: 10},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: -6},
						engine.FactionEffect{Faction: polity.FactionUnions, Support: -8},
					},
				},
				{
					ID: "defy_fund", Label: "Publicly defy the Fund",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 8},
						engine.MetricEffect{Metric: engine.MetricInternational, Delta: -12},
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: -5},
					},
				},
			},
		},
		{
			ID:          "investment_summit",
			Title:       "Investment Summit",
			Description: "The industrial chamber hosts foreign investors in the capital.",
			Category:    engine.CategoryEconomic,
			Trigger: engine.Trigger{
				Probability:     0.3,
				MetricRanges:    []engine.MetricRange{{Metric: engine.MetricInternational, Min: 50, Max: 100}},
				RequiredChoices: []engine.ChoiceRef{{EventID: "imf_mission", ChoiceID: "accept_targets"}},
				Cooldown:        40,
			},
			Choices: []engine.Choice{
				{
					ID: "open_doors", Label: "Headline the summit personally",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: 8},
						engine.MetricEffect{Metric: engine.MetricTechnology, Delta: 5},
						engine.FactionEffect{Faction: polity.FactionBusiness, Support: 12},
						engine.ProvinceEffect{Province: polity.ProvinceCapital, Economic: 6},
					},
				},
				{
					ID: "send_minister", Label: "Send the economy minister",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: 3},
						engine.FactionEffect{Faction: polity.FactionBusiness, Support: 4},
					},
				},
			},
		},
		{
			ID:          "norte_uprising",
			Title:       "Unrest in the Norte",
			Description: "Crowds occupy the provincial capital's main square.",
			Category:    engine.CategoryCrisis,
			Trigger: engine.Trigger{
				Probability: 0.45,
				Cooldown:    30,
			},
			Choices: []engine.Choice{
				{
					ID: "federal_aid", Label: "Announce an emergency aid package",
					Cost: engine.ChoiceCost{Economic: 6},
					Effects: []engine.Effect{
						engine.ProvinceEffect{Province: polity.ProvinceNorte, Discontent: -15, Loyalty: 10},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 4},
					},
				},
				{
					ID: "intervene_province", Label: "Federally intervene the province",
					Effects: []engine.Effect{
						engine.ProvinceEffect{Province: polity.ProvinceNorte, Discontent: 10, Loyalty: -15, Tag: "federal_intervention"},
						engine.MetricEffect{Metric: engine.MetricSecurity, Delta: 5},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: -7},
						engine.TriggerEffect{EventID: "governors_revolt"},
					},
				},
			},
		},
		{
			ID:          "governors_revolt",
			Title:       "Governors Close Ranks",
			Description: "Provincial governors denounce federal overreach.",
			Category:    engine.CategoryPolitical,
			AutoResolve: true,
			Choices: []engine.Choice{
				{
					ID: "fallout", Label: "Weather the fallout",
					Effects: []engine.Effect{
						engine.ProvinceEffect{Province: polity.ProvinceLitoral, Loyalty: -8},
						engine.ProvinceEffect{Province: polity.ProvincePampa, Loyalty: -8},
						engine.FactionEffect{Faction: polity.FactionOpposition, Support: -5, Power: 5},
					},
				},
			},
		},
		{
			ID:          "health_emergency",
			Title:       "Dengue Outbreak",
			Description: "Hospitals in the north report a surge of cases.",
			Category:    engine.CategoryCrisis,
			Trigger: engine.Trigger{
				Probability:  0.25,
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricHealth, Min: 0, Max: 50}},
				Cooldown:     60,
			},
			Choices: []engine.Choice{
				{
					ID: "mass_campaign", Label: "Launch a fumigation and vaccine campaign",
					Cost: engine.ChoiceCost{Economic: 4},
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricHealth, Delta: 10},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 5},
						engine.ProvinceEffect{Province: polity.ProvinceNorte, Discontent: -5},
					},
				},
				{
					ID: "minimize", Label: "Downplay the outbreak",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricHealth, Delta: -8},
						engine.MetricEffect{Metric: engine.MetricMediaControl, Delta: -5},
					},
				},
			},
		},
		{
			ID:          "tech_hub_bid",
			Title:       "Patagonia Tech Hub",
			Description: "A satellite-launch consortium shortlists Patagonia for its base.",
			Category:    engine.CategoryEconomic,
			Locked:      true,
			Trigger: engine.Trigger{
				Probability:  0.5,
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricTechnology, Min: 50, Max: 100}},
			},
			Choices: []engine.Choice{
				{
					ID: "tax_breaks", Label: "Offer a special tax regime",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricTechnology, Delta: 10},
						engine.ProvinceEffect{Province: polity.ProvincePatagonia, Economic: 12, Loyalty: 8},
						engine.FactionEffect{Faction: polity.FactionBusiness, Support: 8},
					},
				},
				{
					ID: "pass", Label: "Let the bid lapse",
					Effects: []engine.Effect{
						engine.ProvinceEffect{Province: polity.ProvincePatagonia, Discontent: 6},
					},
				},
			},
		},
		{
			ID:          "austerity_announcement",
			Title:       "Austerity Package",
			Description: "The treasury drafts a sweeping spending cut.",
			Category:    engine.CategoryEconomic,
			Trigger: engine.Trigger{
				Probability:  0.3,
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricEconomy, Min: 0, Max: 40}},
				Cooldown:     50,
			},
			Choices: []engine.Choice{
				{
					ID: "full_package", Label: "Announce the full package",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: 6},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: -10},
						engine.FactionEffect{Faction: polity.FactionUnions, Support: -12},
						engine.FactionEffect{Faction: polity.FactionBusiness, Support: 10},
					},
				},
				{
					ID: "water_down", Label: "Water it down",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: 2},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: -3},
					},
				},
			},
		},
		{
			ID:          "austerity_backlash",
			Title:       "Austerity Backlash",
			Description: "Cacerolazos ring out across the capital at nightfall.",
			Category:    engine.CategorySocial,
			Trigger: engine.Trigger{
				CompletedEvents: []string{"austerity_announcement"},
				Cooldown:        20,
			},
			Choices: []engine.Choice{
				{
					ID: "address_nation", Label: "Address the nation",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 3},
						engine.MetricEffect{Metric: engine.MetricMediaControl, Delta: 4},
					},
				},
				{
					ID: "ignore", Label: "Stay the course in silence",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: -5},
						engine.ProvinceEffect{Province: polity.ProvinceCapital, Discontent: 8},
					},
				},
			},
		},
		{
			ID:          "austerity_verdict",
			Title:       "The Markets Deliver a Verdict",
			Description: "Country risk reacts to a quarter of fiscal discipline.",
			Category:    engine.CategoryEconomic,
			Trigger: engine.Trigger{
				CompletedEvents: []string{"austerity_backlash"},
			},
			Choices: []engine.Choice{
				{
					ID: "victory_lap", Label: "Take the victory lap",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: 8},
						engine.MetricEffect{Metric: engine.MetricInternational, Delta: 6},
					},
				},
				{
					ID: "stay_humble", Label: "Bank the gains quietly",
					Effects: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: 5},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 2},
					},
				},
			},
		},
	}
}
