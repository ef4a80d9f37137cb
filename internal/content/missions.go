package content

import (
	"github.com/lvillegas/mandato/internal/engine"
	"github.com/lvillegas/mandato/internal/polity"
)

// seedMissions authors the mission catalog.
func seedMissions() []*engine.Mission {
	return []*engine.Mission{
		{
			ID:       "union_accord",
			Title:    "Broker a Wage Accord",
			Type:     engine.MissionNegotiation,
			Faction:  polity.FactionUnions,
			Province: polity.ProvinceLitoral,
			Trigger: engine.MissionTrigger{
				MinTick:           20,
				MinFactionSupport: -30,
				Probability:       0.6,
			},
			Objectives: []string{"meet_federation", "draft_accord"},
			Choices: []engine.MissionChoice{
				{
					ID: "generous_terms", Label: "Grant most wage demands",
					FactionSupport:     20,
					ProvinceDiscontent: -10,
					Outcomes: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: -4},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 5},
					},
					XPBonus: 20,
				},
				{
					ID: "hard_bargain", Label: "Hold the fiscal line",
					FactionSupport:     -5,
					ProvinceDiscontent: 5,
					Outcomes: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: 3},
					},
					XPBonus: 35,
				},
			},
			Rewards:      engine.MissionRewards{XP: 50, FactionSupportBonus: 2},
			NextMissions: []string{"labor_reform_push"},
		},
		{
			ID:       "labor_reform_push",
			Title:    "Push the Labor Reform",
			Type:     engine.MissionNegotiation,
			Faction:  polity.FactionBusiness,
			Province: polity.ProvinceCapital,
			Locked:   true,
			Trigger: engine.MissionTrigger{
				MinFactionSupport: 0,
				Probability:       0.7,
			},
			Objectives: []string{"secure_committee_votes"},
			Choices: []engine.MissionChoice{
				{
					ID: "full_reform", Label: "Push the full text",
					FactionSupport: 15,
					Outcomes: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: 6},
						engine.FactionEffect{Faction: polity.FactionUnions, Support: -12},
					},
					XPBonus: 40,
				},
				{
					ID: "gradualist", Label: "Split it into stages",
					FactionSupport: 5,
					Outcomes: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: 3},
					},
					XPBonus: 15,
				},
			},
			Rewards: engine.MissionRewards{XP: 80},
		},
		{
			ID:       "quell_norte",
			Title:    "Restore Order in the Norte",
			Type:     engine.MissionCombat,
			Faction:  polity.FactionMilitary,
			Province: polity.ProvinceNorte,
			Trigger: engine.MissionTrigger{
				MinFactionSupport:     0,
				MinProvinceDiscontent: 60,
				Probability:           0.5,
			},
			Objectives: []string{"secure_square", "protect_infrastructure"},
			Choices: []engine.MissionChoice{
				{
					ID: "show_of_force", Label: "Saturation deployment",
					FactionSupport:     10,
					ProvinceDiscontent: -20,
					ProvinceLoyalty:    -10,
					Outcomes: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricSecurity, Delta: 8},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: -6},
					},
					XPBonus: 30,
				},
				{
					ID: "targeted_patrols", Label: "Targeted patrols only",
					FactionSupport:     3,
					ProvinceDiscontent: -8,
					Outcomes: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricSecurity, Delta: 4},
					},
					XPBonus: 15,
				},
			},
			Rewards: engine.MissionRewards{XP: 60, FactionSupportBonus: 3},
		},
		{
			ID:       "brasilia_summit",
			Title:    "Summit in Brasília",
			Type:     engine.MissionDiplomatic,
			Faction:  polity.FactionBusiness,
			Province: polity.ProvinceCapital,
			Trigger: engine.MissionTrigger{
				MinTick:      40,
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricInternational, Min: 40, Max: 100}},
				Probability:  0.5,
			},
			Objectives: []string{"trade_protocol", "energy_memorandum"},
			Choices: []engine.MissionChoice{
				{
					ID: "sign_protocol", Label: "Sign the trade protocol",
					FactionSupport: 8,
					Outcomes: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricInternational, Delta: 8},
						engine.MetricEffect{Metric: engine.MetricEconomy, Delta: 4},
					},
					XPBonus: 25,
				},
				{
					ID: "walk_away", Label: "Walk away over tariffs",
					FactionSupport: -5,
					Outcomes: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricInternational, Delta: -5},
						engine.MetricEffect{Metric: engine.MetricPopularity, Delta: 3},
					},
					XPBonus: 10,
				},
			},
			Rewards: engine.MissionRewards{XP: 55},
		},
		{
			ID:       "opposition_files",
			Title:    "The Opposition Files",
			Type:     engine.MissionEspionage,
			Faction:  polity.FactionMilitary,
			Province: polity.ProvinceCapital,
			Trigger: engine.MissionTrigger{
				MinTick:           60,
				MinFactionSupport: 20,
				MetricRanges:      []engine.MetricRange{{Metric: engine.MetricMediaControl, Min: 50, Max: 100}},
				Probability:       0.3,
			},
			Objectives: []string{"obtain_ledgers"},
			Choices: []engine.MissionChoice{
				{
					ID: "leak_files", Label: "Leak the ledgers to the press",
					FactionSupport: 5,
					Outcomes: []engine.Effect{
						engine.FactionEffect{Faction: polity.FactionOpposition, Support: -15, Power: -8},
						engine.MetricEffect{Metric: engine.MetricCorruption, Delta: 6},
					},
					XPBonus: 50,
				},
				{
					ID: "bury_files", Label: "Keep them as leverage",
					Outcomes: []engine.Effect{
						engine.MetricEffect{Metric: engine.MetricCorruption, Delta: 3},
					},
					XPBonus: 20,
				},
			},
			Rewards: engine.MissionRewards{XP: 70},
		},
	}
}
