package polity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedFactionsCoverRegistry(t *testing.T) {
	factions := SeedFactions()
	require.Len(t, factions, len(AllFactions()))

	byID := make(map[FactionID]*Faction)
	for _, f := range factions {
		byID[f.ID] = f
	}
	for _, id := range AllFactions() {
		f, ok := byID[id]
		require.True(t, ok, "faction %s missing from seeds", id)
		assert.NotEmpty(t, f.Name)
		assert.GreaterOrEqual(t, f.Support, -100.0)
		assert.LessOrEqual(t, f.Support, 100.0)
		assert.GreaterOrEqual(t, f.Power, 0.0)
		assert.LessOrEqual(t, f.Power, 100.0)
	}
}

func TestSeedRelationsSymmetric(t *testing.T) {
	factions := SeedFactions()
	byID := make(map[FactionID]*Faction)
	for _, f := range factions {
		byID[f.ID] = f
	}

	for _, f := range factions {
		for other, rel := range f.Relations {
			back, ok := byID[other].Relations[f.ID]
			require.True(t, ok, "%s → %s relation has no mirror", f.ID, other)
			assert.Equal(t, rel, back, "%s ↔ %s asymmetric", f.ID, other)
		}
	}
}

func TestFactionCloneIsDeep(t *testing.T) {
	f := SeedFactions()[0]
	cp := f.Clone()

	cp.Support = -77
	cp.Relations[FactionMedia] = 99
	cp.Demands = append(cp.Demands, "extra")

	assert.NotEqual(t, -77.0, f.Support)
	assert.NotEqual(t, 99.0, f.Relations[FactionMedia])
	assert.NotContains(t, f.Demands, "extra")
}

func TestSeedProvincesCoverRegistry(t *testing.T) {
	provinces := SeedProvinces()
	require.Len(t, provinces, len(AllProvinces()))

	for _, p := range provinces {
		assert.NotEmpty(t, p.Name)
		assert.Positive(t, p.Population)
		for _, v := range []float64{p.Discontent, p.Loyalty, p.EconomicLevel} {
			assert.GreaterOrEqual(t, v, 0.0)
			assert.LessOrEqual(t, v, 100.0)
		}
		assert.NotEmpty(t, p.Influence)
	}
}

func TestProvinceCloneIsDeep(t *testing.T) {
	p := SeedProvinces()[0]
	cp := p.Clone()

	cp.Discontent = 99
	cp.Influence[FactionUnions] = 99
	cp.RegionalEffects = append(cp.RegionalEffects, "tag")

	assert.NotEqual(t, 99.0, p.Discontent)
	assert.NotEqual(t, 99.0, p.Influence[FactionUnions])
	assert.NotContains(t, p.RegionalEffects, "tag")
}

func TestIdeologyNames(t *testing.T) {
	seen := make(map[string]bool)
	for _, p := range SeedProvinces() {
		name := IdeologyName(p.Ideology)
		assert.NotEqual(t, "unknown", name)
		seen[name] = true
	}
	assert.GreaterOrEqual(t, len(seen), 3, "seeds should span several ideologies")
}
