// Package cost computes subscription price quotes for a recommended tier.
package cost

import (
	"fmt"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/concierge-cli/internal/model"
)

// MultiplierBracket applies Multiplier when net worth is strictly greater than Above.
type MultiplierBracket struct {
	Above      float64 `yaml:"above" mapstructure:"above"`
	Multiplier float64 `yaml:"multiplier" mapstructure:"multiplier"`
}

// Rates holds the pricing tables.
type Rates struct {
	BasePrices          map[model.Tier]float64 `yaml:"base_prices" mapstructure:"base_prices"`
	NetWorthMultipliers []MultiplierBracket    `yaml:"net_worth_multipliers" mapstructure:"net_worth_multipliers"`
	Services            map[string]float64     `yaml:"services" mapstructure:"services"`
	AnnualDiscount      float64                `yaml:"annual_discount" mapstructure:"annual_discount"`
}

// Calculator computes quotes from a fixed set of rates.
type Calculator struct {
	rates Rates
}

// NewCalculator creates a Calculator with the given rates.
func NewCalculator(rates Rates) *Calculator {
	return &Calculator{rates: rates}
}

// Rates returns the rates the calculator was built with.
func (c *Calculator) Rates() Rates {
	return c.rates
}

// BasePrice returns the monthly base price of a tier. Unknown tiers are
// priced as Premium.
func (c *Calculator) BasePrice(tier model.Tier) float64 {
	if p, ok := c.rates.BasePrices[tier]; ok {
		return p
	}
	return c.rates.BasePrices[model.TierPremium]
}

// Multiplier returns the net-worth multiplier. It is computed for every tier
// but only applied to tiers above Basic.
func (c *Calculator) Multiplier(netWorth float64) float64 {
	for _, b := range c.rates.NetWorthMultipliers {
		if netWorth > b.Above {
			return b.Multiplier
		}
	}
	return 1.0
}

// ServiceCost returns the sum of add-on prices for the selected services.
// Duplicates count once and services missing from the price table cost 0.
func (c *Calculator) ServiceCost(services []string) float64 {
	return c.serviceCost(services).InexactFloat64()
}

func (c *Calculator) serviceCost(services []string) decimal.Decimal {
	total := decimal.Zero
	for _, s := range model.UniqueServices(services) {
		total = total.Add(decimal.NewFromFloat(c.rates.Services[s]))
	}
	return total
}

// Quote prices a tier for the given net worth and services. Intermediate values
// are exact; monetary outputs are rounded to two decimals.
func (c *Calculator) Quote(netWorth float64, services []string, tier model.Tier) model.Quote {
	base := decimal.NewFromFloat(c.BasePrice(tier))
	mult := c.Multiplier(netWorth)
	svc := c.serviceCost(services)

	monthly := base.Add(svc)
	if tier != model.TierBasic {
		monthly = base.Mul(decimal.NewFromFloat(mult)).Add(svc)
	}

	discount := decimal.NewFromFloat(c.rates.AnnualDiscount)
	yearly := monthly.Mul(decimal.NewFromInt(12))

	return model.Quote{
		BasePrice:          base.InexactFloat64(),
		NetWorthMultiplier: mult,
		ServiceCost:        svc.Round(2).InexactFloat64(),
		MonthlyPrice:       monthly.Round(2).InexactFloat64(),
		AnnualPrice:        yearly.Mul(decimal.NewFromInt(1).Sub(discount)).Round(2).InexactFloat64(),
		AnnualSavings:      yearly.Mul(discount).Round(2).InexactFloat64(),
	}
}

// ValidateRates checks that rates cover every tier and keep prices monotonic in net worth.
func ValidateRates(r Rates) error {
	var errs []string

	for _, t := range model.Tiers() {
		p, ok := r.BasePrices[t]
		if !ok {
			errs = append(errs, fmt.Sprintf("base price for %s is missing", t))
			continue
		}
		if p < 0 {
			errs = append(errs, fmt.Sprintf("base price for %s must be >= 0", t))
		}
	}

	for i, b := range r.NetWorthMultipliers {
		if b.Multiplier < 1 {
			errs = append(errs, fmt.Sprintf("net_worth_multipliers[%d].multiplier must be >= 1", i))
		}
		if i > 0 {
			prev := r.NetWorthMultipliers[i-1]
			if b.Above >= prev.Above {
				errs = append(errs, "net_worth_multipliers must be ordered by descending threshold")
			}
			if b.Multiplier > prev.Multiplier {
				errs = append(errs, "net_worth_multipliers must not increase as thresholds decrease")
			}
		}
	}

	for name, p := range r.Services {
		if p < 0 {
			errs = append(errs, fmt.Sprintf("service price for %q must be >= 0", name))
		}
	}

	if r.AnnualDiscount < 0 || r.AnnualDiscount >= 1 {
		errs = append(errs, "annual_discount must be in [0, 1)")
	}

	if len(errs) > 0 {
		return eris.Errorf("cost: rates validation failed: %s", strings.Join(errs, "; "))
	}
	return nil
}

// DefaultRates returns the standard pricing tables.
func DefaultRates() Rates {
	return Rates{
		BasePrices: map[model.Tier]float64{
			model.TierBasic:   29,
			model.TierPremium: 99,
			model.TierElite:   299,
		},
		NetWorthMultipliers: []MultiplierBracket{
			{Above: 10_000_000, Multiplier: 2.5},
			{Above: 5_000_000, Multiplier: 2.0},
			{Above: 2_000_000, Multiplier: 1.7},
			{Above: 1_000_000, Multiplier: 1.4},
			{Above: 500_000, Multiplier: 1.2},
		},
		Services: map[string]float64{
			model.ServiceHealthManagement:     20,
			model.ServiceInvestmentManagement: 50,
			model.ServiceExpenseTracking:      15,
			model.ServiceInsuranceManagement:  25,
			model.ServiceLegalServices:        75,
			model.ServiceTaxManagement:        40,
			model.ServiceTravelPlanning:       30,
			model.ServicePersonalAssistant:    100,
		},
		AnnualDiscount: 0.15,
	}
}
