package content

import (
	"github.com/lvillegas/mandato/internal/engine"
	"github.com/lvillegas/mandato/internal/polity"
)

// seedFlags authors the persistent condition→effect rules.
func seedFlags() []*engine.Flag {
	return []*engine.Flag{
		{
			ID:   "hyperinflation_spiral",
			Type: "crisis",
			Conditions: []engine.Condition{
				engine.MetricCondition{Metric: engine.MetricEconomy, Min: 0, Max: 15},
				engine.ElapsedCondition{Ticks: 10},
			},
			Effects: []engine.FlagEffect{
				engine.ModifyMetric{Metric: engine.MetricPopularity, Delta: -1},
				engine.TriggerCrisis{Levels: 2},
				engine.ChangeProbability{EventID: "currency_run", Factor: 2.0},
			},
		},
		{
			ID:   "media_darling",
			Type: "bonus",
			Conditions: []engine.Condition{
				engine.MetricCondition{Metric: engine.MetricMediaControl, Min: 70, Max: 100},
				engine.RelationCondition{A: polity.FactionMedia, B: polity.FactionOpposition, Min: -100},
			},
			Effects: []engine.FlagEffect{
				engine.ModifyMetric{Metric: engine.MetricPopularity, Delta: 0.5},
				engine.UnlockAchievement{ID: "front_page_president"},
			},
		},
		{
			ID:   "tech_momentum",
			Type: "story",
			Conditions: []engine.Condition{
				engine.MetricCondition{Metric: engine.MetricTechnology, Min: 50, Max: 100},
				engine.EventDoneCondition{EventID: "investment_summit"},
			},
			Effects: []engine.FlagEffect{
				engine.UnlockEvent{EventID: "tech_hub_bid"},
				engine.ModifyMetric{Metric: engine.MetricTechnology, Delta: 0.2},
			},
		},
		{
			ID:   "union_truce",
			Type: "bonus",
			Conditions: []engine.Condition{
				engine.DecisionCondition{EventID: "general_strike", ChoiceID: "negotiate"},
			},
			Effects: []engine.FlagEffect{
				engine.ChangeProbability{EventID: "general_strike", Factor: 0.3},
				engine.UnlockAchievement{ID: "peacemaker"},
			},
		},
		{
			ID:   "norte_powder_keg",
			Type: "crisis",
			Conditions: []engine.Condition{
				engine.ProvinceCondition{Province: polity.ProvinceNorte, Field: engine.ProvinceDiscontent, Min: 75, Max: 100},
			},
			Effects: []engine.FlagEffect{
				engine.TriggerCrisis{Levels: 1},
				engine.ChangeProbability{EventID: "norte_uprising", Factor: 1.8},
			},
		},
	}
}

// seedChains authors the linear event chains.
func seedChains() []*engine.Chain {
	return []*engine.Chain{
		{
			ID:     "austerity_arc",
			Title:  "The Austerity Arc",
			Events: []string{"austerity_announcement", "austerity_backlash", "austerity_verdict"},
			Start: engine.Trigger{
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricEconomy, Min: 0, Max: 45}},
			},
		},
		{
			ID:     "opening_to_markets",
			Title:  "Opening to the Markets",
			Events: []string{"imf_mission", "investment_summit"},
			Start: engine.Trigger{
				MetricRanges: []engine.MetricRange{{Metric: engine.MetricInternational, Min: 35, Max: 100}},
			},
		},
	}
}
