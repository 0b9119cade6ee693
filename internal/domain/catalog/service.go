package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// Service serves the catalog, read-through the cache
type Service struct {
	repo  Repository
	cache *Cache
}

func NewService(repo Repository, cache *Cache) *Service {
	return &Service{repo: repo, cache: cache}
}

// ListGames returns active games ordered by display name
func (s *Service) ListGames(ctx context.Context) ([]Game, error) {
	if games, ok := s.cache.Games(ctx); ok {
		return games, nil
	}

	games, err := s.repo.ListActiveGames(ctx)
	if err != nil {
		return nil, err
	}
	s.cache.SetGames(ctx, games)
	return games, nil
}

// ListPackages returns a game's active packages ordered by price
func (s *Service) ListPackages(ctx context.Context, gameID uuid.UUID) ([]Package, error) {
	if packages, ok := s.cache.Packages(ctx, gameID); ok {
		return packages, nil
	}

	game, err := s.repo.GetGame(ctx, gameID)
	if err != nil {
		return nil, err
	}
	if !game.IsActive {
		return nil, ErrGameNotFound
	}

	packages, err := s.repo.ListActivePackages(ctx, gameID)
	if err != nil {
		return nil, err
	}
	s.cache.SetPackages(ctx, gameID, packages)
	return packages, nil
}

// SeedDefaults inserts the starter catalog when no game exists yet
func (s *Service) SeedDefaults(ctx context.Context) (bool, error) {
	n, err := s.repo.CountGames(ctx)
	if err != nil {
		return false, err
	}
	if n > 0 {
		return false, nil
	}

	if err := s.repo.InsertGames(ctx, DefaultGames); err != nil {
		return false, err
	}
	s.cache.Invalidate(ctx)

	log.Info().Int("games", len(DefaultGames)).Msg("default catalog seeded")
	return true, nil
}
