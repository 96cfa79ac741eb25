package model

import (
	"strings"

	"github.com/rotisserie/eris"
)

// Tier is a subscription level. Tiers are ordered Basic < Premium < Elite.
type Tier string

const (
	TierBasic   Tier = "basic"
	TierPremium Tier = "premium"
	TierElite   Tier = "elite"
)

// Tiers returns all tiers in ascending order.
func Tiers() []Tier {
	return []Tier{TierBasic, TierPremium, TierElite}
}

// Rank returns the position of t in the tier ordering, or -1 for an unknown tier.
func (t Tier) Rank() int {
	switch t {
	case TierBasic:
		return 0
	case TierPremium:
		return 1
	case TierElite:
		return 2
	}
	return -1
}

// Valid reports whether t is one of the known tiers.
func (t Tier) Valid() bool { return t.Rank() >= 0 }

// Title returns the display name of the tier ("Basic", "Premium", "Elite").
func (t Tier) Title() string {
	if !t.Valid() {
		return string(t)
	}
	s := string(t)
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseTier converts a case-insensitive tier name into a Tier.
func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if !t.Valid() {
		return "", eris.Errorf("model: unknown tier %q", s)
	}
	return t, nil
}
