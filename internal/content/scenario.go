// Scenario generation — seeds a varied but coherent starting position.
// Uses smooth noise so neighboring provinces get correlated conditions
// rather than independent jitter.
package content

import (
	"log/slog"

	opensimplex "github.com/ojrac/opensimplex-go"

	"github.com/lvillegas/mandato/internal/engine"
	"github.com/lvillegas/mandato/internal/polity"
)

// RandomizedScenario builds a fresh starting state whose province economics
// and discontent vary smoothly with the seed. The closed faction/province
// sets and all catalog content stay fixed; only starting values move.
func RandomizedScenario(president string, seed int64) *engine.State {
	st := engine.NewState(president)

	econNoise := opensimplex.NewNormalized(seed)
	moodNoise := opensimplex.NewNormalized(seed + 1)

	// Provinces sit on a 1-D axis; nearby indices read nearby noise, so a
	// depressed region drags its neighbors with it.
	for i, pid := range polity.AllProvinces() {
		p := st.Provinces[pid]
		x := float64(i) * 0.7

		econShift := (econNoise.Eval2(x, 0) - 0.5) * 30
		moodShift := (moodNoise.Eval2(x, 0) - 0.5) * 24

		p.EconomicLevel = clampUnit(p.EconomicLevel + econShift)
		p.Discontent = clampUnit(p.Discontent + moodShift)
		p.Loyalty = clampUnit(p.Loyalty - moodShift*0.5)
	}

	// National economy tracks the province average loosely.
	total := 0.0
	for _, pid := range polity.AllProvinces() {
		total += st.Provinces[pid].EconomicLevel
	}
	avg := total / float64(len(polity.AllProvinces()))
	st.Metrics.Set(engine.MetricEconomy, (st.Metrics.Economy+avg)/2)

	slog.Info("scenario generated", "seed", seed, "economy", st.Metrics.Economy)
	return st
}

func clampUnit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 100 {
		return 100
	}
	return v
}
