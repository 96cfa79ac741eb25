package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	_ "modernc.org/sqlite"

	"github.com/sells-group/concierge-cli/internal/model"
)

// SQLiteStore implements Store using modernc.org/sqlite. Each Add is a single
// INSERT, so records are appended durably instead of rewriting the collection.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLite opens a SQLite database at the given path and configures WAL mode.
func NewSQLite(dsn string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: open")
	}
	if isMemoryDSN(dsn) {
		// every connection to :memory: opens its own empty database
		db.SetMaxOpenConns(1)
	}
	for _, pragma := range []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA synchronous=FULL",
	} {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, eris.Wrapf(err, "sqlite: exec %s", pragma)
		}
	}
	return &SQLiteStore{db: db}, nil
}

func isMemoryDSN(dsn string) bool {
	return strings.Contains(dsn, ":memory:") || strings.Contains(dsn, "mode=memory")
}

const sqliteMigration = `
CREATE TABLE IF NOT EXISTS client_intakes (
	seq        INTEGER PRIMARY KEY AUTOINCREMENT,
	id         TEXT NOT NULL UNIQUE,
	created_at TEXT NOT NULL,
	profile    TEXT NOT NULL
);
`

func (s *SQLiteStore) Migrate(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, sqliteMigration)
	return eris.Wrap(err, "sqlite: migrate")
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) Add(ctx context.Context, p model.Profile) (*model.ClientIntake, error) {
	rec := newRecord(p)

	profileJSON, err := json.Marshal(rec.Profile)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: marshal profile")
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO client_intakes (id, created_at, profile) VALUES (?, ?, ?)`,
		rec.ID, rec.CreatedAt.Format(time.RFC3339Nano), string(profileJSON),
	)
	if err != nil {
		return nil, &WriteError{Backend: "sqlite", Err: err}
	}
	return &rec, nil
}

func (s *SQLiteStore) List(ctx context.Context) ([]model.ClientIntake, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, created_at, profile FROM client_intakes ORDER BY seq`,
	)
	if err != nil {
		return nil, eris.Wrap(err, "sqlite: list intakes")
	}
	defer rows.Close()

	out := []model.ClientIntake{}
	for rows.Next() {
		rec, err := scanIntake(rows)
		if err != nil {
			return nil, eris.Wrap(err, "sqlite")
		}
		out = append(out, *rec)
	}
	return out, eris.Wrap(rows.Err(), "sqlite: list intakes iterate")
}

func (s *SQLiteStore) Load(ctx context.Context) []model.ClientIntake {
	out, err := s.List(ctx)
	if err != nil {
		zap.L().Warn("sqlite: load failed, starting empty", zap.Error(err))
		return []model.ClientIntake{}
	}
	return out
}
