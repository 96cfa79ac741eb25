// Package scorer computes the intake complexity score used to recommend a service tier.
package scorer

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/concierge-cli/internal/model"
)

// NetWorthBracket awards Points when net worth is strictly greater than Above.
type NetWorthBracket struct {
	Above  float64 `yaml:"above" mapstructure:"above"`
	Points int     `yaml:"points" mapstructure:"points"`
}

// CountBracket awards Points when the number of selected services is at least AtLeast.
type CountBracket struct {
	AtLeast int `yaml:"at_least" mapstructure:"at_least"`
	Points  int `yaml:"points" mapstructure:"points"`
}

// Config holds the scoring rules. Brackets are evaluated in order and the
// first match wins, so they must be listed from the highest threshold down.
type Config struct {
	NetWorthBrackets     []NetWorthBracket `yaml:"net_worth_brackets" mapstructure:"net_worth_brackets"`
	Keywords             []string          `yaml:"keywords" mapstructure:"keywords"`
	ServiceCountBrackets []CountBracket    `yaml:"service_count_brackets" mapstructure:"service_count_brackets"`
	PremiumServices      []string          `yaml:"premium_services" mapstructure:"premium_services"`
	PremiumMinCount      int               `yaml:"premium_min_count" mapstructure:"premium_min_count"`
	PremiumPoints        int               `yaml:"premium_points" mapstructure:"premium_points"`
}

// DefaultConfig returns the standard intake scoring rules.
func DefaultConfig() Config {
	return Config{
		NetWorthBrackets: []NetWorthBracket{
			{Above: 2_000_000, Points: 3},
			{Above: 500_000, Points: 2},
			{Above: 100_000, Points: 1},
		},
		Keywords: []string{
			"wealth management", "tax optimization", "legal planning", "investment", "business",
		},
		ServiceCountBrackets: []CountBracket{
			{AtLeast: 6, Points: 3},
			{AtLeast: 4, Points: 2},
			{AtLeast: 2, Points: 1},
		},
		PremiumServices: []string{
			model.ServiceLegalServices, model.ServiceTaxManagement, model.ServiceInvestmentManagement,
		},
		PremiumMinCount: 2,
		PremiumPoints:   2,
	}
}

// ValidateConfig checks that a Config is internally consistent.
func ValidateConfig(c Config) error {
	var errs []string

	for i, b := range c.NetWorthBrackets {
		if b.Points < 0 {
			errs = append(errs, fmt.Sprintf("net_worth_brackets[%d].points must be >= 0", i))
		}
		if i > 0 {
			prev := c.NetWorthBrackets[i-1]
			if b.Above >= prev.Above {
				errs = append(errs, "net_worth_brackets must be ordered by descending threshold")
			}
			// Higher net worth must never score lower.
			if b.Points > prev.Points {
				errs = append(errs, "net_worth_brackets points must not increase as thresholds decrease")
			}
		}
	}

	for i, b := range c.ServiceCountBrackets {
		if b.Points < 0 {
			errs = append(errs, fmt.Sprintf("service_count_brackets[%d].points must be >= 0", i))
		}
		if i > 0 && b.AtLeast >= c.ServiceCountBrackets[i-1].AtLeast {
			errs = append(errs, "service_count_brackets must be ordered by descending count")
		}
	}

	for i, kw := range c.Keywords {
		if strings.TrimSpace(kw) == "" {
			errs = append(errs, fmt.Sprintf("keywords[%d] must not be empty", i))
		}
	}

	if c.PremiumMinCount < 1 {
		errs = append(errs, "premium_min_count must be >= 1")
	}
	if c.PremiumPoints < 0 {
		errs = append(errs, "premium_points must be >= 0")
	}

	if len(errs) > 0 {
		return eris.Errorf("scorer: config validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}
