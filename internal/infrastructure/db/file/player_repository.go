package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
)

// PlayerRepository serves the catalog from a flat JSON snapshot. The file is
// read once into memory; updates rewrite the whole snapshot atomically via a
// temp file and rename. Semantics match the Mongo backend exactly.
type PlayerRepository struct {
	path string

	mu      sync.RWMutex
	players []domain.Player
	loaded  bool
	loadErr error
}

func NewPlayerRepository(path string) *PlayerRepository {
	return &PlayerRepository{path: path}
}

// LoadAll returns every player in snapshot order. A missing or unreadable
// snapshot yields ErrDataUnavailable; callers degrade to an empty listing.
func (r *PlayerRepository) LoadAll(ctx context.Context) ([]domain.Player, error) {
	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]domain.Player, len(r.players))
	copy(out, r.players)
	return out, nil
}

// FindByID scans for the first record with the given id. Duplicate ids are a
// data error; first match wins deterministically.
func (r *PlayerRepository) FindByID(ctx context.Context, id string) (*domain.Player, error) {
	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	for i := range r.players {
		if r.players[i].ID == id {
			p := r.players[i]
			return &p, nil
		}
	}
	return nil, domain.ErrPlayerNotFound
}

// Update merges the patch into the record and persists the snapshot
// immediately. The write lock makes the record replace atomic; concurrent
// updates to the same id apply in arrival order, last write wins. A failed
// snapshot write restores the previous record so memory never diverges from
// disk.
func (r *PlayerRepository) Update(ctx context.Context, id string, patch ports.PlayerPatch) (*domain.Player, error) {
	if err := r.ensureLoaded(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.players {
		if r.players[i].ID != id {
			continue
		}

		prev := r.players[i]
		patch.Apply(&r.players[i])
		if err := r.persistLocked(); err != nil {
			r.players[i] = prev
			return nil, err
		}
		p := r.players[i]
		return &p, nil
	}
	return nil, domain.ErrPlayerNotFound
}

// SeedIfEmpty writes the initial snapshot only when the store holds zero
// records. Seeding a missing file creates it.
func (r *PlayerRepository) SeedIfEmpty(ctx context.Context, players []domain.Player) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		r.loadLocked()
	}
	if r.loadErr == nil && len(r.players) > 0 {
		return 0, nil
	}
	if len(players) == 0 {
		return 0, nil
	}

	r.players = make([]domain.Player, len(players))
	copy(r.players, players)
	r.loaded = true
	r.loadErr = nil

	if err := r.persistLocked(); err != nil {
		return 0, err
	}
	return len(players), nil
}

func (r *PlayerRepository) ensureLoaded() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !r.loaded {
		r.loadLocked()
	}
	return r.loadErr
}

func (r *PlayerRepository) loadLocked() {
	r.loaded = true

	data, err := os.ReadFile(r.path)
	if err != nil {
		r.loadErr = fmt.Errorf("%w: read %s: %v", domain.ErrDataUnavailable, r.path, err)
		return
	}

	var players []domain.Player
	if err := json.Unmarshal(data, &players); err != nil {
		r.loadErr = fmt.Errorf("%w: parse %s: %v", domain.ErrDataUnavailable, r.path, err)
		return
	}

	r.players = players
	r.loadErr = nil
}

// persistLocked rewrites the snapshot under the write lock: temp file in the
// same directory, then rename over the original.
func (r *PlayerRepository) persistLocked() error {
	data, err := json.MarshalIndent(r.players, "", "  ")
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}

	dir := filepath.Dir(r.path)
	tmp, err := os.CreateTemp(dir, "players-*.json")
	if err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("write snapshot: %w", err)
	}

	if err := os.Rename(tmp.Name(), r.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("replace snapshot: %w", err)
	}
	return nil
}
