// Package intake runs the client intake flow: score the profile, pick a tier,
// price it, and persist the submission.
package intake

import (
	"context"
	"math"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/concierge-cli/internal/cost"
	"github.com/sells-group/concierge-cli/internal/model"
	"github.com/sells-group/concierge-cli/internal/plans"
	"github.com/sells-group/concierge-cli/internal/scorer"
	"github.com/sells-group/concierge-cli/internal/store"
)

// Service orchestrates scoring, tier selection, pricing and persistence.
type Service struct {
	store      store.Store
	scorer     *scorer.ComplexityScorer
	thresholds plans.Thresholds
	calc       *cost.Calculator
	catalog    *plans.Catalog
}

// Option customizes a Service.
type Option func(*Service)

// WithScorer replaces the default complexity scorer.
func WithScorer(s *scorer.ComplexityScorer) Option {
	return func(svc *Service) { svc.scorer = s }
}

// WithThresholds replaces the default tier thresholds.
func WithThresholds(t plans.Thresholds) Option {
	return func(svc *Service) { svc.thresholds = t }
}

// WithCalculator replaces the default pricing calculator.
func WithCalculator(c *cost.Calculator) Option {
	return func(svc *Service) { svc.calc = c }
}

// WithCatalog replaces the built-in plan catalog.
func WithCatalog(c *plans.Catalog) Option {
	return func(svc *Service) { svc.catalog = c }
}

// NewService creates a Service backed by st, using default rules unless overridden.
func NewService(st store.Store, opts ...Option) *Service {
	svc := &Service{
		store:      st,
		scorer:     scorer.NewComplexityScorer(scorer.DefaultConfig()),
		thresholds: plans.DefaultThresholds(),
		calc:       cost.NewCalculator(cost.DefaultRates()),
		catalog:    plans.DefaultCatalog(),
	}
	for _, o := range opts {
		o(svc)
	}
	return svc
}

// Catalog returns the plan catalog used for recommendations.
func (s *Service) Catalog() *plans.Catalog {
	return s.catalog
}

// Calculator returns the pricing calculator.
func (s *Service) Calculator() *cost.Calculator {
	return s.calc
}

// Validate checks the only constraint the engine enforces: a finite, non-negative net worth.
func Validate(p model.Profile) error {
	if math.IsNaN(p.NetWorth) || math.IsInf(p.NetWorth, 0) {
		return &ValidationError{Field: "net_worth", Reason: "must be a finite number"}
	}
	if p.NetWorth < 0 {
		return &ValidationError{Field: "net_worth", Reason: "must be >= 0"}
	}
	return nil
}

// normalize collapses duplicate services. Unknown service names are kept.
func normalize(p model.Profile) model.Profile {
	p.SelectedServices = model.UniqueServices(p.SelectedServices)
	return p
}

// Recommend scores, selects a tier for, and prices a profile without persisting it.
func (s *Service) Recommend(p model.Profile) (*model.Recommendation, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	rec := s.recommend(normalize(p))
	return &rec, nil
}

func (s *Service) recommend(p model.Profile) model.Recommendation {
	score := s.scorer.Score(p.NetWorth, p.Goals, p.SelectedServices)
	tier := plans.SelectTier(score, s.thresholds)
	quote := s.calc.Quote(p.NetWorth, p.SelectedServices, tier)

	return model.Recommendation{
		Tier:     tier,
		Score:    score,
		Quote:    quote,
		Features: s.catalog.Features(tier),
	}
}

// Submit validates and prices a profile, then persists it. The record is only
// returned once the store has acknowledged the write.
func (s *Service) Submit(ctx context.Context, p model.Profile) (*model.Result, error) {
	if err := Validate(p); err != nil {
		return nil, err
	}
	p = normalize(p)
	rec := s.recommend(p)

	stored, err := s.store.Add(ctx, p)
	if err != nil {
		return nil, eris.Wrap(err, "intake: persist submission")
	}

	zap.L().Info("intake: submission stored",
		zap.String("id", stored.ID),
		zap.String("tier", string(rec.Tier)),
		zap.Int("score", rec.Score),
		zap.Float64("monthly_price", rec.Quote.MonthlyPrice),
	)

	return &model.Result{Record: *stored, Recommendation: rec}, nil
}

// List returns every stored intake record in insertion order.
func (s *Service) List(ctx context.Context) ([]model.ClientIntake, error) {
	out, err := s.store.List(ctx)
	if err != nil {
		return nil, eris.Wrap(err, "intake: list")
	}
	return out, nil
}
