package engine

import (
	"github.com/lvillegas/mandato/internal/polity"
)

// fixedSource returns the same value on every draw; tests use it to force a
// probability roll to pass or fail deterministically.
type fixedSource struct {
	v float64
}

func (f fixedSource) Float() float64 { return f.v }

// testCatalog builds a small synthetic catalog exercising the trigger and
// cascade machinery without depending on authored content.
func testCatalog() *Catalog {
	c := &Catalog{
		Events:   make(map[string]*Event),
		Decrees:  make(map[string]*Decree),
		Missions: make(map[string]*Mission),
	}

	add := func(ev *Event) { c.Events[ev.ID] = ev }

	add(&Event{
		ID: "bank_run", Title: "Bank Run", Category: CategoryEconomic,
		Trigger: Trigger{
			MetricRanges: []MetricRange{{Metric: MetricEconomy, Min: 0, Max: 40}},
		},
		Choices: []Choice{
			{
				ID: "guarantee_deposits", Label: "Guarantee all deposits",
				Cost: ChoiceCost{Political: 3, Economic: 2},
				Effects: []Effect{
					MetricEffect{Metric: MetricPopularity, Delta: 6},
					FactionEffect{Faction: polity.FactionBusiness, Support: 5},
				},
			},
			{
				ID: "let_it_fail", Label: "Let the bank fail",
				Effects: []Effect{
					MetricEffect{Metric: MetricPopularity, Delta: -10},
					TriggerEffect{EventID: "street_panic"},
				},
			},
		},
	})

	add(&Event{
		ID: "street_panic", Title: "Street Panic", Category: CategorySocial,
		Choices: []Choice{
			{
				ID: "calm_address", Label: "Address the nation",
				Effects: []Effect{
					MetricEffect{Metric: MetricSecurity, Delta: -3},
				},
			},
		},
	})

	// Self-sustaining auto-resolve loop to exercise the depth cap.
	add(&Event{
		ID: "feedback_loop", Title: "Feedback Loop", Category: CategoryCrisis,
		AutoResolve: true,
		Choices: []Choice{
			{
				ID: "spin", Label: "Spin",
				Effects: []Effect{
					MetricEffect{Metric: MetricCorruption, Delta: 1},
					TriggerEffect{EventID: "echo"},
				},
			},
		},
	})
	add(&Event{
		ID: "echo", Title: "Echo", Category: CategoryCrisis,
		AutoResolve: true,
		Choices: []Choice{
			{
				ID: "spin", Label: "Spin",
				Effects: []Effect{
					MetricEffect{Metric: MetricCorruption, Delta: 1},
					TriggerEffect{EventID: "feedback_loop"},
				},
			},
		},
	})

	add(&Event{
		ID: "vault_event", Title: "Vault", Category: CategoryPolitical,
		Locked: true,
		Choices: []Choice{
			{ID: "open", Label: "Open", Effects: []Effect{
				MetricEffect{Metric: MetricTechnology, Delta: 2},
			}},
		},
	})

	c.Decrees["austerity_order"] = &Decree{
		ID: "austerity_order", Title: "Austerity Order",
		Category: DecreeEconomic, Urgency: UrgencyHigh,
		NationalMetrics: []MetricEffect{
			{Metric: MetricEconomy, Delta: 0.5},
			{Metric: MetricPopularity, Delta: -0.5},
		},
		FactionEffects: []FactionEffect{
			{Faction: polity.FactionUnions, Support: -8},
		},
		PoliticalCost: 2,
		Duration:      10,
		RevocationEffects: []Effect{
			MetricEffect{Metric: MetricPopularity, Delta: 4},
		},
		ResponseOptions: []DecreeResponse{
			{ID: "strike_threat", Label: "Unions threaten a strike", Effects: []Effect{
				MetricEffect{Metric: MetricSecurity, Delta: -2},
			}},
		},
	}
	c.Decrees["curfew"] = &Decree{
		ID: "curfew", Title: "Night Curfew",
		Category: DecreeSecurity, Urgency: UrgencyHigh,
		NationalMetrics: []MetricEffect{
			{Metric: MetricSecurity, Delta: 1},
		},
		Duration: 5,
		Requirements: DecreeRequirements{
			MinCrisisLevel: 2,
		},
	}

	c.Missions["border_patrol"] = &Mission{
		ID: "border_patrol", Title: "Border Patrol",
		Type: MissionCombat, Faction: polity.FactionMilitary, Province: polity.ProvinceNorte,
		Trigger: MissionTrigger{
			MinFactionSupport:     0,
			MinProvinceDiscontent: 30,
			Probability:           0.5,
		},
		Objectives: []string{"hold_checkpoints"},
		Choices: []MissionChoice{
			{
				ID: "sweep", Label: "Full sweep",
				FactionSupport:     5,
				ProvinceDiscontent: -20,
				Outcomes: []Effect{
					MetricEffect{Metric: MetricSecurity, Delta: 4},
				},
				XPBonus: 30,
			},
		},
		Rewards:      MissionRewards{XP: 120, FactionSupportBonus: 2},
		NextMissions: []string{"deep_recon"},
	}
	c.Missions["deep_recon"] = &Mission{
		ID: "deep_recon", Title: "Deep Recon",
		Type: MissionEspionage, Faction: polity.FactionMilitary, Province: polity.ProvinceNorte,
		Locked: true,
		Choices: []MissionChoice{
			{ID: "infiltrate", Label: "Infiltrate", XPBonus: 10},
		},
		Rewards: MissionRewards{XP: 40},
	}

	c.Flags = []*Flag{
		{
			ID: "economy_tailspin", Type: "crisis",
			Conditions: []Condition{
				MetricCondition{Metric: MetricEconomy, Min: 0, Max: 20},
			},
			Effects: []FlagEffect{
				ModifyMetric{Metric: MetricPopularity, Delta: -1},
				TriggerCrisis{Levels: 2},
				UnlockEvent{EventID: "vault_event"},
				ChangeProbability{EventID: "bank_run", Factor: 2},
				UnlockAchievement{ID: "rock_bottom"},
			},
		},
	}

	c.Chains = []*Chain{
		{
			ID: "panic_arc", Title: "Panic Arc",
			Events: []string{"bank_run", "street_panic"},
			Start: Trigger{
				MetricRanges: []MetricRange{{Metric: MetricEconomy, Min: 0, Max: 40}},
			},
		},
	}

	return c
}

func testEngine(rng fixedSource) *Engine {
	return New(testCatalog(), rng)
}
