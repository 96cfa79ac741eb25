package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/concierge-cli/internal/model"
)

// Pool is the subset of pgxpool.Pool used by PostgresStore.
type Pool interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Close()
}

// PostgresStore implements Store using pgxpool. Like SQLiteStore it appends
// one row per Add.
type PostgresStore struct {
	pool Pool
}

// PoolConfig holds optional connection pool tuning parameters.
type PoolConfig struct {
	MaxConns int32 `yaml:"max_conns" mapstructure:"max_conns"`
	MinConns int32 `yaml:"min_conns" mapstructure:"min_conns"`
}

// NewPostgres creates a PostgresStore with a connection pool.
func NewPostgres(ctx context.Context, connString string, poolCfg *PoolConfig) (*PostgresStore, error) {
	pgxCfg, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: parse config")
	}

	maxConns := int32(4)
	minConns := int32(1)
	if poolCfg != nil {
		if poolCfg.MaxConns > 0 {
			maxConns = poolCfg.MaxConns
		}
		if poolCfg.MinConns > 0 {
			minConns = poolCfg.MinConns
		}
	}
	pgxCfg.MaxConns = maxConns
	pgxCfg.MinConns = minConns
	pgxCfg.MaxConnLifetime = 30 * time.Minute
	pgxCfg.MaxConnIdleTime = 5 * time.Minute

	pool, err := pgxpool.NewWithConfig(ctx, pgxCfg)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: create pool")
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, eris.Wrap(err, "postgres: ping")
	}
	return &PostgresStore{pool: pool}, nil
}

const postgresMigration = `
CREATE TABLE IF NOT EXISTS client_intakes (
	seq        BIGSERIAL PRIMARY KEY,
	id         TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL,
	profile    JSONB NOT NULL
);
`

func (s *PostgresStore) Migrate(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, postgresMigration)
	return eris.Wrap(err, "postgres: migrate")
}

func (s *PostgresStore) Close() error {
	s.pool.Close()
	return nil
}

func (s *PostgresStore) Add(ctx context.Context, p model.Profile) (*model.ClientIntake, error) {
	rec := newRecord(p)

	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: marshal profile")
	}

	_, err = s.pool.Exec(ctx,
		`INSERT INTO client_intakes (id, created_at, profile) VALUES ($1, $2, $3)`,
		rec.ID, rec.CreatedAt.Format(time.RFC3339Nano), string(profileJSON),
	)
	if err != nil {
		return nil, &WriteError{Backend: "postgres", Err: err}
	}
	return &rec, nil
}

func (s *PostgresStore) List(ctx context.Context) ([]model.ClientIntake, error) {
	rows, err := s.pool.Query(ctx,
		`SELECT id, created_at, profile::text FROM client_intakes ORDER BY seq`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "postgres: list intakes")
	}
	defer rows.Close()

	out := []model.ClientIntake{}
	for rows.Next() {
		rec, err := scanIntake(rows)
		if err != nil {
			return nil, eris.Wrap(err, "postgres")
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "postgres: list intakes iterate")
}

func (s *PostgresStore) Load(ctx context.Context) []model.ClientIntake {
	out, err := s.List(ctx)
	if err != nil {
		zap.L().Warn("postgres: load failed, starting empty", zap.Error(err))
		return []model.ClientIntake{}
	}
	return out
}
