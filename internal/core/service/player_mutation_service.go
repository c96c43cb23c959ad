package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
)

// PlayerMutationService applies role-gated updates to the catalog. The admin
// check runs before the repository is touched, so a forbidden call leaves the
// store unchanged.
type PlayerMutationService struct {
	repo   ports.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerMutationService(repo ports.PlayerRepository, logger zerolog.Logger) *PlayerMutationService {
	return &PlayerMutationService{repo: repo, logger: logger}
}

// UpdatePlayer merges the patch into the identified record. Only the set
// patch fields change; everything else is preserved. Concurrent updates to
// the same id apply in arrival order, last write wins.
func (s *PlayerMutationService) UpdatePlayer(ctx context.Context, caller ports.Caller, id string, patch ports.PlayerPatch) (*domain.Player, error) {
	if !caller.IsAdmin() {
		s.logger.Warn().
			Str("username", caller.Username).
			Str("role", caller.Role).
			Str("player_id", id).
			Msg("update rejected: admin role required")
		return nil, domain.ErrForbidden
	}

	updated, err := s.repo.Update(ctx, id, patch)
	if err != nil {
		return nil, fmt.Errorf("update player %q: %w", id, err)
	}

	s.logger.Info().
		Str("username", caller.Username).
		Str("player_id", id).
		Msg("player updated")

	return updated, nil
}
