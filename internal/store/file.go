package store

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/concierge-cli/internal/model"
)

// fileDocument is the on-disk layout of a FileStore.
type fileDocument struct {
	Clients []model.ClientIntake `json:"clients"`
}

// FileStore keeps every record in memory and rewrites the whole JSON document
// on each Add. The rewrite goes to a temp file that is synced and renamed over
// the existing file, so a crash never leaves a partial document behind.
//
// The mutex is the single serialization point for writers within a process.
// Separate processes sharing one file are not coordinated.
type FileStore struct {
	path string

	mu      sync.Mutex
	clients []model.ClientIntake
}

// NewFileStore opens the store at path and loads any existing records.
func NewFileStore(ctx context.Context, path string) *FileStore {
	s := &FileStore{path: path}
	s.Load(ctx)
	return s
}

// Path returns the backing file path.
func (s *FileStore) Path() string {
	return s.path
}

// Load replaces the in-memory collection with the file contents.
func (s *FileStore) Load(_ context.Context) []model.ClientIntake {
	clients, err := s.read()
	if err != nil {
		zap.L().Warn("file store: load failed, starting empty",
			zap.String("path", s.path),
			zap.Error(err),
		)
		clients = nil
	}

	s.mu.Lock()
	s.clients = clients
	s.mu.Unlock()

	return cloneIntakes(clients)
}

func (s *FileStore) read() ([]model.ClientIntake, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		zap.L().Debug("file store: no existing file", zap.String("path", s.path))
		return nil, nil
	}
	if err != nil {
		return nil, eris.Wrap(err, "file store: read")
	}

	var doc fileDocument
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, eris.Wrap(err, "file store: decode")
	}
	return doc.Clients, nil
}

// Add appends a record and rewrites the file. If the rewrite fails the record
// is dropped from memory as well, so List never shows an unsaved record.
func (s *FileStore) Add(_ context.Context, p model.Profile) (*model.ClientIntake, error) {
	rec := newRecord(p)

	s.mu.Lock()
	defer s.mu.Unlock()

	next := make([]model.ClientIntake, len(s.clients), len(s.clients)+1)
	copy(next, s.clients)
	next = append(next, rec)

	if err := s.write(next); err != nil {
		return nil, &WriteError{Backend: "file store", Err: err}
	}
	s.clients = next

	return &rec, nil
}

func (s *FileStore) write(clients []model.ClientIntake) error {
	if clients == nil {
		clients = []model.ClientIntake{}
	}
	data, err := json.MarshalIndent(fileDocument{Clients: clients}, "", "  ")
	if err != nil {
		return eris.Wrap(err, "encode")
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return eris.Wrap(err, "create temp file")
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrap(err, "write temp file")
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck
		return eris.Wrap(err, "sync temp file")
	}
	if err := tmp.Close(); err != nil {
		return eris.Wrap(err, "close temp file")
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return eris.Wrap(err, "rename temp file")
	}
	committed = true
	return nil
}

// List returns a copy of the in-memory collection.
func (s *FileStore) List(_ context.Context) ([]model.ClientIntake, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return cloneIntakes(s.clients), nil
}

// Migrate is a no-op for the file store.
func (s *FileStore) Migrate(_ context.Context) error { return nil }

// Close is a no-op for the file store.
func (s *FileStore) Close() error { return nil }

func cloneIntakes(in []model.ClientIntake) []model.ClientIntake {
	out := make([]model.ClientIntake, len(in))
	copy(out, in)
	return out
}
