package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/squadbase/player-catalog/internal/core/domain"
	"github.com/squadbase/player-catalog/internal/core/ports"
)

// PlayerQueryService composes the player repository and the comparator to
// answer catalog read queries.
type PlayerQueryService struct {
	repo   ports.PlayerRepository
	logger zerolog.Logger
}

func NewPlayerQueryService(repo ports.PlayerRepository, logger zerolog.Logger) *PlayerQueryService {
	return &PlayerQueryService{repo: repo, logger: logger}
}

// ListAll returns every player in store order. A store outage degrades to an
// empty listing rather than an error, preserving the landing page.
func (s *PlayerQueryService) ListAll(ctx context.Context) ([]domain.Player, error) {
	players, err := s.repo.LoadAll(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrDataUnavailable) {
			s.logger.Warn().Err(err).Msg("player store unavailable, serving empty listing")
			return []domain.Player{}, nil
		}
		return nil, fmt.Errorf("list players: %w", err)
	}
	return players, nil
}

// ListSorted returns a stably sorted copy of the catalog. Store order is
// never mutated.
func (s *PlayerQueryService) ListSorted(ctx context.Context, key domain.SortKey, dir domain.SortDirection) ([]domain.Player, error) {
	players, err := s.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	sorted := make([]domain.Player, len(players))
	copy(sorted, players)
	domain.SortPlayers(sorted, key, dir)
	return sorted, nil
}

// GetByID returns a single player together with the circular next id.
func (s *PlayerQueryService) GetByID(ctx context.Context, id string) (*ports.PlayerDetail, error) {
	player, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get player %q: %w", id, err)
	}

	nextID, err := s.NextID(ctx, id)
	if err != nil {
		// The record exists but the listing failed; detail still renders,
		// next-navigation just points back to itself.
		s.logger.Warn().Err(err).Str("player_id", id).Msg("next id lookup failed")
		nextID = id
	}

	return &ports.PlayerDetail{Player: *player, NextPlayerID: nextID}, nil
}

// NextID returns the id following currentID in ListAll order, wrapping from
// the last record back to the first.
func (s *PlayerQueryService) NextID(ctx context.Context, currentID string) (string, error) {
	players, err := s.repo.LoadAll(ctx)
	if err != nil {
		return "", fmt.Errorf("next id: %w", err)
	}

	for i, p := range players {
		if p.ID == currentID {
			return players[(i+1)%len(players)].ID, nil
		}
	}
	return "", domain.ErrPlayerNotFound
}
