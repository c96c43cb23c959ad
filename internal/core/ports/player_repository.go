package ports

import (
	"context"

	"github.com/squadbase/player-catalog/internal/core/domain"
)

// PlayerPatch carries a partial update. Nil fields are left untouched by
// Update; set fields replace the stored value.
type PlayerPatch struct {
	Name          *string
	Age           *int
	Position      *string
	Nationality   *string
	OverallRating *int
	IsActive      *bool
	BirthDate     *string
	ClubName      *string
	ClubLeague    *string
	ImageURL      *string
}

// IsEmpty reports whether the patch sets no fields at all.
func (p PlayerPatch) IsEmpty() bool {
	return p.Name == nil && p.Age == nil && p.Position == nil &&
		p.Nationality == nil && p.OverallRating == nil && p.IsActive == nil &&
		p.BirthDate == nil && p.ClubName == nil && p.ClubLeague == nil &&
		p.ImageURL == nil
}

// Apply merges the set fields into player.
func (p PlayerPatch) Apply(player *domain.Player) {
	if p.Name != nil {
		player.Name = *p.Name
	}
	if p.Age != nil {
		player.Age = *p.Age
	}
	if p.Position != nil {
		player.Position = *p.Position
	}
	if p.Nationality != nil {
		player.Nationality = *p.Nationality
	}
	if p.OverallRating != nil {
		player.OverallRating = *p.OverallRating
	}
	if p.IsActive != nil {
		player.IsActive = *p.IsActive
	}
	if p.BirthDate != nil {
		player.BirthDate = *p.BirthDate
	}
	if p.ClubName != nil {
		player.Club.Name = *p.ClubName
	}
	if p.ClubLeague != nil {
		player.Club.League = *p.ClubLeague
	}
	if p.ImageURL != nil {
		player.ImageURL = *p.ImageURL
	}
}

// PlayerRepository defines persistence operations for the player catalog.
// Both backends (flat snapshot file, Mongo collection) present identical
// semantics; callers never know which one is active.
type PlayerRepository interface {
	// LoadAll returns every player in store-native (insertion) order.
	// Returns domain.ErrDataUnavailable when the backing source cannot be
	// read; callers degrade to an empty listing rather than failing.
	LoadAll(ctx context.Context) ([]domain.Player, error)

	// FindByID retrieves a single player, or domain.ErrPlayerNotFound.
	FindByID(ctx context.Context, id string) (*domain.Player, error)

	// Update merges the set patch fields into the stored record and persists
	// immediately as a single-record replace (last write wins).
	Update(ctx context.Context, id string, patch PlayerPatch) (*domain.Player, error)

	// SeedIfEmpty inserts the initial records only when the store holds zero
	// players; otherwise it is a no-op. Returns the number inserted.
	SeedIfEmpty(ctx context.Context, players []domain.Player) (int, error)
}
