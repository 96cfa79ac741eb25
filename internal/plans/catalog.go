package plans

import (
	_ "embed"
	"os"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/concierge-cli/internal/model"
)

//go:embed catalog.yaml
var defaultCatalog []byte

// Plan describes a tier as presented to a prospective client.
type Plan struct {
	Tier     model.Tier `yaml:"tier" json:"tier"`
	Name     string     `yaml:"name" json:"name"`
	Features []string   `yaml:"features" json:"features"`
	Excluded []string   `yaml:"excluded,omitempty" json:"excluded,omitempty"`
}

// Catalog holds one Plan per tier.
type Catalog struct {
	plans map[model.Tier]Plan
}

// DefaultCatalog returns the built-in plan catalog.
func DefaultCatalog() *Catalog {
	c, err := ParseCatalog(defaultCatalog)
	if err != nil {
		panic(err) // embedded file is covered by tests
	}
	return c
}

// LoadCatalog reads a plan catalog from a YAML file. An empty path returns
// the built-in catalog.
func LoadCatalog(path string) (*Catalog, error) {
	if path == "" {
		return DefaultCatalog(), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrapf(err, "plans: read catalog %s", path)
	}
	return ParseCatalog(data)
}

// ParseCatalog parses a YAML plan catalog. Every tier must appear exactly once.
func ParseCatalog(data []byte) (*Catalog, error) {
	var doc struct {
		Plans []Plan `yaml:"plans"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "plans: parse catalog")
	}

	c := &Catalog{plans: make(map[model.Tier]Plan, len(doc.Plans))}
	for _, p := range doc.Plans {
		if !p.Tier.Valid() {
			return nil, eris.Errorf("plans: unknown tier %q in catalog", p.Tier)
		}
		if _, dup := c.plans[p.Tier]; dup {
			return nil, eris.Errorf("plans: tier %q listed twice", p.Tier)
		}
		if p.Name == "" {
			p.Name = p.Tier.Title()
		}
		c.plans[p.Tier] = p
	}
	for _, t := range model.Tiers() {
		if _, ok := c.plans[t]; !ok {
			return nil, eris.Errorf("plans: catalog missing tier %q", t)
		}
	}
	return c, nil
}

// Plan returns the plan for a tier.
func (c *Catalog) Plan(t model.Tier) (Plan, bool) {
	p, ok := c.plans[t]
	return p, ok
}

// Features returns the features included in a tier, or nil for an unknown tier.
func (c *Catalog) Features(t model.Tier) []string {
	p, ok := c.plans[t]
	if !ok {
		return nil
	}
	out := make([]string, len(p.Features))
	copy(out, p.Features)
	return out
}

// Plans returns all plans ordered from Basic to Elite.
func (c *Catalog) Plans() []Plan {
	out := make([]Plan, 0, len(c.plans))
	for _, t := range model.Tiers() {
		out = append(out, c.plans[t])
	}
	return out
}

// MarshalYAML renders the catalog in the same shape ParseCatalog reads.
func (c *Catalog) MarshalYAML() (any, error) {
	return struct {
		Plans []Plan `yaml:"plans"`
	}{Plans: c.Plans()}, nil
}
