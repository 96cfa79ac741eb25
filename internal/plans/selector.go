// Package plans maps complexity scores to service tiers and describes what each tier includes.
package plans

import (
	"github.com/rotisserie/eris"

	"github.com/sells-group/concierge-cli/internal/model"
)

// Thresholds holds the minimum score for each tier above Basic.
type Thresholds struct {
	PremiumMin int `yaml:"premium_min" mapstructure:"premium_min"`
	EliteMin   int `yaml:"elite_min" mapstructure:"elite_min"`
}

// DefaultThresholds returns the standard tier thresholds.
func DefaultThresholds() Thresholds {
	return Thresholds{PremiumMin: 4, EliteMin: 7}
}

// Validate checks that the thresholds describe three non-empty, ordered tiers.
func (t Thresholds) Validate() error {
	if t.PremiumMin < 1 {
		return eris.Errorf("plans: premium_min must be >= 1 (got %d)", t.PremiumMin)
	}
	if t.EliteMin <= t.PremiumMin {
		return eris.Errorf("plans: elite_min (%d) must be greater than premium_min (%d)", t.EliteMin, t.PremiumMin)
	}
	return nil
}

// SelectTier maps a complexity score to a tier.
func SelectTier(score int, t Thresholds) model.Tier {
	switch {
	case score >= t.EliteMin:
		return model.TierElite
	case score >= t.PremiumMin:
		return model.TierPremium
	default:
		return model.TierBasic
	}
}
