package file

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
)

const snapshot = `[
  {"id":"1","name":"Alice","age":30,"overallRating":80,"isActive":true,"club":{"name":"B FC","league":"First"}},
  {"id":"2","name":"Bob","age":25,"overallRating":90,"isActive":true,"club":{"name":"A FC","league":"Second"}}
]`

func writeSnapshot(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "players.json")
	if err := os.WriteFile(path, []byte(snapshot), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func TestPlayerRepository_LoadAll(t *testing.T) {
	repo := NewPlayerRepository(writeSnapshot(t))

	players, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if len(players) != 2 {
		t.Fatalf("expected 2 players, got %d", len(players))
	}
	if players[0].ID != "1" || players[1].ID != "2" {
		t.Fatalf("snapshot order not preserved: %v", players)
	}
}

func TestPlayerRepository_LoadAll_MissingFile(t *testing.T) {
	repo := NewPlayerRepository(filepath.Join(t.TempDir(), "absent.json"))

	if _, err := repo.LoadAll(context.Background()); !errors.Is(err, domain.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
}

func TestPlayerRepository_FindByID(t *testing.T) {
	repo := NewPlayerRepository(writeSnapshot(t))

	p, err := repo.FindByID(context.Background(), "2")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if p.Name != "Bob" {
		t.Fatalf("unexpected player: %+v", p)
	}

	if _, err := repo.FindByID(context.Background(), "missing"); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestPlayerRepository_UpdatePersists(t *testing.T) {
	path := writeSnapshot(t)
	repo := NewPlayerRepository(path)

	name := "Alicia"
	rating := 85
	updated, err := repo.Update(context.Background(), "1", ports.PlayerPatch{Name: &name, OverallRating: &rating})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Name != "Alicia" || updated.OverallRating != 85 {
		t.Fatalf("patch not applied: %+v", updated)
	}
	if updated.Age != 30 || updated.Club.Name != "B FC" {
		t.Fatalf("unset fields changed: %+v", updated)
	}

	// a fresh repository reading the same file must see the write
	reloaded := NewPlayerRepository(path)
	p, err := reloaded.FindByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("reload FindByID: %v", err)
	}
	if p.Name != "Alicia" {
		t.Fatalf("update not persisted: %+v", p)
	}
}

func TestPlayerRepository_Update_FailedWriteLeavesRecordUnchanged(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "players.json")
	if err := os.WriteFile(path, []byte(snapshot), 0o644); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	repo := NewPlayerRepository(path)

	// warm the in-memory snapshot, then make the directory unwritable so
	// the next persist fails
	if _, err := repo.LoadAll(context.Background()); err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove dir: %v", err)
	}

	name := "Alicia"
	if _, err := repo.Update(context.Background(), "1", ports.PlayerPatch{Name: &name}); err == nil {
		t.Fatalf("expected Update to fail when the snapshot cannot be written")
	}

	p, err := repo.FindByID(context.Background(), "1")
	if err != nil {
		t.Fatalf("FindByID returned error: %v", err)
	}
	if p.Name != "Alice" {
		t.Fatalf("failed write must not change the in-memory record: %+v", p)
	}
}

func TestPlayerRepository_Update_NotFound(t *testing.T) {
	repo := NewPlayerRepository(writeSnapshot(t))

	name := "x"
	if _, err := repo.Update(context.Background(), "missing", ports.PlayerPatch{Name: &name}); !errors.Is(err, domain.ErrPlayerNotFound) {
		t.Fatalf("expected ErrPlayerNotFound, got %v", err)
	}
}

func TestPlayerRepository_SeedIfEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "players.json")
	repo := NewPlayerRepository(path)

	seed := []domain.Player{{ID: "1", Name: "Alice"}, {ID: "2", Name: "Bob"}}
	inserted, err := repo.SeedIfEmpty(context.Background(), seed)
	if err != nil {
		t.Fatalf("SeedIfEmpty returned error: %v", err)
	}
	if inserted != 2 {
		t.Fatalf("expected 2 inserted, got %d", inserted)
	}

	// second seed is a no-op, even with different records
	inserted, err = repo.SeedIfEmpty(context.Background(), []domain.Player{{ID: "9"}})
	if err != nil {
		t.Fatalf("second SeedIfEmpty returned error: %v", err)
	}
	if inserted != 0 {
		t.Fatalf("seed fired on non-empty store: %d", inserted)
	}

	players, err := repo.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("LoadAll returned error: %v", err)
	}
	if len(players) != 2 || players[0].ID != "1" {
		t.Fatalf("unexpected catalog after reseed: %v", players)
	}
}
