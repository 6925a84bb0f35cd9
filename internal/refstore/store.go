// Package refstore persists the per-user mapping from small local indices to
// remote identifier triples, so commands can say "task #4" instead of
// carrying three large service-assigned ids around.
package refstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/dwaring87/rtm-api/internal/domain"
	"github.com/dwaring87/rtm-api/internal/ports"
)

// Store is the process-wide index table. Mutations are in-memory only until
// Save is called; a crash in between loses freshly minted indices, which are
// simply re-minted on the next fetch (possibly under different numbers).
//
// The backing file is not safe against concurrent writer processes. Within a
// process all access goes through the mutex.
type Store struct {
	mu    sync.RWMutex
	path  string
	users map[int64]map[int]domain.Ref
}

var _ ports.ReferenceStore = (*Store)(nil)

// fileFormat is the on-disk shape:
// {"USERS": {"<userId>": {"<index>": {"list_id": ..., ...}}}}.
type fileFormat struct {
	Users map[int64]map[int]domain.Ref `json:"USERS"`
}

// New creates a store backed by the file at path. Call Load before use.
func New(path string) *Store {
	return &Store{
		path:  path,
		users: make(map[int64]map[int]domain.Ref),
	}
}

// Load reads the backing file into memory. A missing file is an empty store,
// not an error.
func (s *Store) Load() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read index file: %w", err)
	}

	var f fileFormat
	if err := json.Unmarshal(data, &f); err != nil {
		return fmt.Errorf("decode index file: %w", err)
	}

	if f.Users != nil {
		s.users = f.Users
	}
	return nil
}

// Resolve returns the index already assigned to ref for this user, or mints
// the smallest positive integer not currently in use. Repeated observations
// of the same remote item always resolve to the same number; equality is over
// all three identifier fields, so a stale or malformed entry that matches on
// task id alone still gets a fresh index rather than being silently merged.
func (s *Store) Resolve(userID int64, ref domain.Ref) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	table, ok := s.users[userID]
	if !ok {
		table = make(map[int]domain.Ref)
		s.users[userID] = table
	}

	for idx, existing := range table {
		if existing == ref {
			return idx
		}
	}

	idx := 1
	for {
		if _, used := table[idx]; !used {
			break
		}
		idx++
	}
	table[idx] = ref
	return idx
}

// Lookup returns the ref stored under index for this user, or
// ports.ErrRefNotFound if the user has no table or the index is absent.
func (s *Store) Lookup(userID int64, index int) (domain.Ref, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table, ok := s.users[userID]
	if !ok {
		return domain.Ref{}, ports.ErrRefNotFound
	}
	ref, ok := table[index]
	if !ok {
		return domain.Ref{}, ports.ErrRefNotFound
	}
	return ref, nil
}

// Refs returns a copy of the user's index table.
func (s *Store) Refs(userID int64) map[int]domain.Ref {
	s.mu.RLock()
	defer s.mu.RUnlock()

	table := s.users[userID]
	out := make(map[int]domain.Ref, len(table))
	for idx, ref := range table {
		out[idx] = ref
	}
	return out
}

// Save writes the whole table to the backing file, overwriting it. A failed
// write does not roll back the in-memory table; memory stays authoritative
// for the life of the process.
func (s *Store) Save() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.save()
}

func (s *Store) save() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create index dir: %w", err)
	}

	data, err := json.Marshal(fileFormat{Users: s.users})
	if err != nil {
		return fmt.Errorf("encode index: %w", err)
	}

	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write index file: %w", err)
	}
	return nil
}

// Clear drops the user's entire table and persists immediately, forcing
// fresh numbering on the next fetch. Other users' tables are untouched.
// The in-memory drop holds even if the write fails.
func (s *Store) Clear(userID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.users, userID)
	return s.save()
}
