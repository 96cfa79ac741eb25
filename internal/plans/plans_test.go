package plans

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/concierge-cli/internal/model"
)

func TestSelectTier(t *testing.T) {
	th := DefaultThresholds()
	tests := []struct {
		score int
		want  model.Tier
	}{
		{0, model.TierBasic},
		{3, model.TierBasic},
		{4, model.TierPremium},
		{6, model.TierPremium},
		{7, model.TierElite},
		{13, model.TierElite},
		{-1, model.TierBasic},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SelectTier(tt.score, th), "score=%d", tt.score)
	}
}

func TestSelectTier_Monotonic(t *testing.T) {
	th := DefaultThresholds()
	prev := SelectTier(0, th)
	for score := 1; score <= 20; score++ {
		got := SelectTier(score, th)
		assert.GreaterOrEqual(t, got.Rank(), prev.Rank(), "score=%d", score)
		prev = got
	}
}

func TestThresholdsValidate(t *testing.T) {
	require.NoError(t, DefaultThresholds().Validate())
	assert.Error(t, Thresholds{PremiumMin: 0, EliteMin: 7}.Validate())
	assert.Error(t, Thresholds{PremiumMin: 7, EliteMin: 7}.Validate())
	assert.Error(t, Thresholds{PremiumMin: 8, EliteMin: 7}.Validate())
}

func TestDefaultCatalog(t *testing.T) {
	c := DefaultCatalog()

	plans := c.Plans()
	require.Len(t, plans, 3)
	assert.Equal(t, model.TierBasic, plans[0].Tier)
	assert.Equal(t, model.TierPremium, plans[1].Tier)
	assert.Equal(t, model.TierElite, plans[2].Tier)

	for _, p := range plans {
		assert.NotEmpty(t, p.Name)
		assert.NotEmpty(t, p.Features, p.Tier)
	}

	assert.Contains(t, c.Features(model.TierElite), "Dedicated personal concierge")
	assert.Contains(t, c.Features(model.TierBasic), "Up to 3 services")
	assert.Nil(t, c.Features(model.Tier("gold")))
}

func TestCatalogFeatures_ReturnsCopy(t *testing.T) {
	c := DefaultCatalog()
	f := c.Features(model.TierBasic)
	f[0] = "changed"
	assert.NotEqual(t, "changed", c.Features(model.TierBasic)[0])
}

func TestParseCatalog_Errors(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		wantMsg string
	}{
		{"bad yaml", "plans: [", "parse catalog"},
		{"unknown tier", "plans:\n  - tier: gold\n", "unknown tier"},
		{"duplicate", "plans:\n  - tier: basic\n  - tier: basic\n", "listed twice"},
		{"missing tier", "plans:\n  - tier: basic\n  - tier: premium\n", "missing tier"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.doc))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	c, err := LoadCatalog("")
	require.NoError(t, err)
	assert.Len(t, c.Plans(), 3)

	path := filepath.Join(t.TempDir(), "plans.yaml")
	doc := `
plans:
  - tier: basic
    features: [Email support]
  - tier: premium
    name: Plus
    features: [Phone support]
  - tier: elite
    features: [Concierge]
`
	require.NoError(t, os.WriteFile(path, []byte(doc), 0o644))

	c, err = LoadCatalog(path)
	require.NoError(t, err)
	p, ok := c.Plan(model.TierPremium)
	require.True(t, ok)
	assert.Equal(t, "Plus", p.Name)
	b, _ := c.Plan(model.TierBasic)
	assert.Equal(t, "Basic", b.Name)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}

func TestCatalogYAMLRoundTrip(t *testing.T) {
	c := DefaultCatalog()
	data, err := yaml.Marshal(c)
	require.NoError(t, err)

	again, err := ParseCatalog(data)
	require.NoError(t, err)
	assert.Equal(t, c.Plans(), again.Plans())
}
