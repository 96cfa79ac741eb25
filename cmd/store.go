package main

import (
	"context"

	"github.com/rotisserie/eris"

	"github.com/sells-group/concierge-cli/internal/cost"
	"github.com/sells-group/concierge-cli/internal/intake"
	"github.com/sells-group/concierge-cli/internal/plans"
	"github.com/sells-group/concierge-cli/internal/scorer"
	"github.com/sells-group/concierge-cli/internal/store"
)

func initStore(ctx context.Context) (store.Store, error) {
	switch cfg.Store.Driver {
	case "file":
		return store.NewFileStore(ctx, cfg.Store.Path), nil
	case "sqlite":
		return store.NewSQLite(cfg.Store.DatabaseURL)
	case "postgres":
		return store.NewPostgres(ctx, cfg.Store.DatabaseURL, &store.PoolConfig{MaxConns: cfg.Store.MaxConns})
	default:
		return nil, eris.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}

// openStore opens the configured store and applies its schema.
func openStore(ctx context.Context) (store.Store, error) {
	st, err := initStore(ctx)
	if err != nil {
		return nil, err
	}
	if err := st.Migrate(ctx); err != nil {
		_ = st.Close()
		return nil, err
	}
	return st, nil
}

// newService wires the configured scoring rules, thresholds, rates and catalog.
func newService(st store.Store) (*intake.Service, error) {
	catalog, err := plans.LoadCatalog(cfg.Plans.CatalogPath)
	if err != nil {
		return nil, err
	}
	return intake.NewService(st,
		intake.WithScorer(scorer.NewComplexityScorer(cfg.ScorerConfig())),
		intake.WithThresholds(cfg.Thresholds()),
		intake.WithCalculator(cost.NewCalculator(cfg.Rates())),
		intake.WithCatalog(catalog),
	), nil
}
