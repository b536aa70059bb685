package catalog

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"league-watcher/internal/constants"
	"league-watcher/internal/datadragon"
)

type Service struct {
	ddragon *datadragon.Client
	repo    *Repository
	logger  zerolog.Logger
}

func NewService(ddragon *datadragon.Client, repo *Repository, logger zerolog.Logger) *Service {
	return &Service{ddragon: ddragon, repo: repo, logger: logger}
}

// Load returns the catalog for the latest patch, refreshing the sqlite cache
// when the CDN reports a newer version. When the CDN is unreachable a cached
// catalog is served instead; only a cold cache makes this fatal.
func (s *Service) Load(ctx context.Context) (*Catalog, error) {
	cached, err := s.repo.Version(ctx)
	if err != nil {
		return nil, err
	}

	fetchCtx, cancel := context.WithTimeout(ctx, constants.CatalogFetchTimeout)
	defer cancel()

	latest, err := s.ddragon.LatestVersion(fetchCtx)
	if err != nil {
		if cached == "" {
			return nil, fmt.Errorf("no cached catalog and version check failed: %w", err)
		}
		s.logger.Warn().Err(err).Str("cached_version", cached).Msg("version check failed, serving cached catalog")
		return s.fromCache(ctx, cached)
	}

	if latest == cached {
		s.logger.Debug().Str("version", cached).Msg("catalog cache is current")
		return s.fromCache(ctx, cached)
	}

	s.logger.Info().Str("cached_version", cached).Str("latest_version", latest).Msg("refreshing catalog")

	champions, err := s.ddragon.Champions(fetchCtx, latest)
	if err != nil {
		if cached != "" {
			s.logger.Warn().Err(err).Msg("champion fetch failed, serving cached catalog")
			return s.fromCache(ctx, cached)
		}
		return nil, fmt.Errorf("failed to fetch champions: %w", err)
	}

	spells, err := s.ddragon.SummonerSpells(fetchCtx, latest)
	if err != nil {
		if cached != "" {
			s.logger.Warn().Err(err).Msg("spell fetch failed, serving cached catalog")
			return s.fromCache(ctx, cached)
		}
		return nil, fmt.Errorf("failed to fetch summoner spells: %w", err)
	}

	if err := s.repo.Replace(ctx, latest, champions, spells); err != nil {
		s.logger.Warn().Err(err).Msg("failed to persist catalog, continuing with fetched data")
	}

	return New(latest, champions, spells), nil
}

func (s *Service) fromCache(ctx context.Context, version string) (*Catalog, error) {
	champions, err := s.repo.Champions(ctx)
	if err != nil {
		return nil, err
	}
	spells, err := s.repo.SummonerSpells(ctx)
	if err != nil {
		return nil, err
	}
	return New(version, champions, spells), nil
}
