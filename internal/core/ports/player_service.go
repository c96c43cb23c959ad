package ports

import (
	"context"

	"github.com/squadbase/player-catalog/internal/core/domain"
)

// Caller identifies the principal behind a service call, as resolved by the
// auth middleware. A zero Caller is anonymous.
type Caller struct {
	Username string
	Role     string
}

// IsAuthenticated reports whether the caller has logged in.
func (c Caller) IsAuthenticated() bool {
	return c.Username != ""
}

// IsAdmin reports whether the caller holds the administrator role.
func (c Caller) IsAdmin() bool {
	return c.IsAuthenticated() && c.Role == domain.RoleAdmin
}

// PlayerDetail is a single player together with the id of the next record in
// catalog order, wrapping from the last player back to the first.
type PlayerDetail struct {
	Player       domain.Player
	NextPlayerID string
}

// PlayerQueryService answers read-only catalog queries.
type PlayerQueryService interface {
	// ListAll returns all players in store order.
	ListAll(ctx context.Context) ([]domain.Player, error)

	// ListSorted returns a sorted copy of the catalog; store order is never
	// mutated.
	ListSorted(ctx context.Context, key domain.SortKey, dir domain.SortDirection) ([]domain.Player, error)

	// GetByID returns a single player with its circular next-navigation id.
	GetByID(ctx context.Context, id string) (*PlayerDetail, error)

	// NextID returns the id following currentID in ListAll order, wrapping to
	// the first record after the last.
	NextID(ctx context.Context, currentID string) (string, error)
}

// PlayerMutationService applies role-gated updates to the catalog.
type PlayerMutationService interface {
	// UpdatePlayer merges the patch into the identified record. Returns
	// domain.ErrForbidden for non-admin callers, domain.ErrPlayerNotFound for
	// unknown ids.
	UpdatePlayer(ctx context.Context, caller Caller, id string, patch PlayerPatch) (*domain.Player, error)
}
