package scorer

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/sells-group/concierge-cli/internal/model"
)

// Breakdown holds the individual contributions that make up a complexity score.
type Breakdown struct {
	NetWorth        int      `json:"net_worth"`
	Goals           int      `json:"goals"`
	ServiceCount    int      `json:"service_count"`
	PremiumServices int      `json:"premium_services"`
	MatchedKeywords []string `json:"matched_keywords,omitempty"`
}

// Total returns the complexity score. It is not clamped: the 0-10 range seen
// in the UI is a display convention only.
func (b Breakdown) Total() int {
	return b.NetWorth + b.Goals + b.ServiceCount + b.PremiumServices
}

// ComplexityScorer scores an intake profile. It holds no mutable state and is
// safe for concurrent use.
type ComplexityScorer struct {
	cfg     Config
	premium map[string]bool
}

// NewComplexityScorer creates a ComplexityScorer with the given rules.
func NewComplexityScorer(cfg Config) *ComplexityScorer {
	premium := make(map[string]bool, len(cfg.PremiumServices))
	for _, s := range cfg.PremiumServices {
		premium[s] = true
	}
	return &ComplexityScorer{cfg: cfg, premium: premium}
}

// Score returns the complexity score for the given profile inputs.
func (s *ComplexityScorer) Score(netWorth float64, goals, services []string) int {
	return s.Breakdown(netWorth, goals, services).Total()
}

// Breakdown returns each contribution to the complexity score.
// Duplicate service names count once.
func (s *ComplexityScorer) Breakdown(netWorth float64, goals, services []string) Breakdown {
	services = model.UniqueServices(services)
	matched := matchKeywords(s.cfg.Keywords, goals)

	return Breakdown{
		NetWorth:        s.netWorthPoints(netWorth),
		Goals:           len(matched),
		ServiceCount:    s.serviceCountPoints(len(services)),
		PremiumServices: s.premiumPoints(services),
		MatchedKeywords: matched,
	}
}

func (s *ComplexityScorer) netWorthPoints(netWorth float64) int {
	for _, b := range s.cfg.NetWorthBrackets {
		if netWorth > b.Above {
			return b.Points
		}
	}
	return 0
}

func (s *ComplexityScorer) serviceCountPoints(n int) int {
	for _, b := range s.cfg.ServiceCountBrackets {
		if n >= b.AtLeast {
			return b.Points
		}
	}
	return 0
}

func (s *ComplexityScorer) premiumPoints(services []string) int {
	var n int
	for _, svc := range services {
		if s.premium[svc] {
			n++
		}
	}
	if n >= s.cfg.PremiumMinCount {
		return s.cfg.PremiumPoints
	}
	return 0
}

// matchKeywords returns each keyword found in the case-folded, space-joined goals.
// A keyword counts once no matter how many goals contain it.
func matchKeywords(keywords, goals []string) []string {
	if len(goals) == 0 {
		return nil
	}
	fold := cases.Fold()
	text := fold.String(strings.Join(goals, " "))

	var matched []string
	for _, kw := range keywords {
		if strings.Contains(text, fold.String(kw)) {
			matched = append(matched, kw)
		}
	}
	return matched
}
