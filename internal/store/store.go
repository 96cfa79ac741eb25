// Package store persists client intake records.
package store

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"

	"github.com/sells-group/concierge-cli/internal/model"
)

// Store is the durable collection of client intake records. Records are
// append-only: there is no update or delete.
type Store interface {
	// Load re-reads the backing store. A missing or unreadable store yields an
	// empty collection; the failure is logged, never returned.
	Load(ctx context.Context) []model.ClientIntake
	// Add assigns an id and creation time to the profile and persists it.
	// A failed write is returned as a *WriteError.
	Add(ctx context.Context, profile model.Profile) (*model.ClientIntake, error)
	// List returns all records in insertion order.
	List(ctx context.Context) ([]model.ClientIntake, error)

	Migrate(ctx context.Context) error
	Close() error
}

// WriteError reports that a record could not be made durable.
type WriteError struct {
	Backend string
	Err     error
}

func (e *WriteError) Error() string {
	return e.Backend + ": write intake: " + e.Err.Error()
}

func (e *WriteError) Unwrap() error {
	return e.Err
}

// newRecord enriches a profile with a fresh id and creation timestamp.
// Timestamps are truncated to microseconds so every backend round-trips them exactly.
func newRecord(p model.Profile) model.ClientIntake {
	return model.ClientIntake{
		ID:        uuid.New().String(),
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
		Profile:   p,
	}
}

type scannable interface {
	Scan(dest ...any) error
}

// scanIntake reads an (id, created_at, profile) row.
func scanIntake(row scannable) (*model.ClientIntake, error) {
	var rec model.ClientIntake
	var createdAt string
	var profileJSON string

	if err := row.Scan(&rec.ID, &createdAt, &profileJSON); err != nil {
		return nil, eris.Wrap(err, "scan intake")
	}

	ts, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return nil, eris.Wrapf(err, "parse created_at for %s", rec.ID)
	}
	rec.CreatedAt = ts.UTC()

	if err := json.Unmarshal([]byte(profileJSON), &rec.Profile); err != nil {
		return nil, eris.Wrapf(err, "unmarshal profile for %s", rec.ID)
	}
	return &rec, nil
}
