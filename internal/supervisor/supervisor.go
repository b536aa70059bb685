package supervisor

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"league-watcher/internal/config"
	"league-watcher/internal/lockfile"
	"league-watcher/internal/state"
	"league-watcher/internal/updater"
)

const notFoundStatus = "LeagueClient not found, may be closed."

// Supervisor is the unbounded discovery loop: every iteration it invokes the
// lockfile locator and publishes the result. Failures only show up as status
// text, never escalate. The self-update flow is interleaved with each
// iteration; its calls carry deadlines so discovery is never blocked
// indefinitely.
type Supervisor struct {
	locator  *lockfile.Locator
	updates  *updater.Updater
	shared   *state.SharedState
	interval time.Duration
	logger   zerolog.Logger
}

func New(locator *lockfile.Locator, updates *updater.Updater, shared *state.SharedState, cfg *config.Config, logger zerolog.Logger) *Supervisor {
	return &Supervisor{
		locator:  locator,
		updates:  updates,
		shared:   shared,
		interval: cfg.DiscoveryInterval,
		logger:   logger,
	}
}

func (s *Supervisor) Run(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("connection supervisor started")

	// One version check at startup; the result stays visible until an
	// update is requested.
	if status, err := s.updates.Check(ctx); err != nil {
		s.logger.Warn().Err(err).Msg("update check failed")
	} else {
		s.shared.SetUpdateStatus(status)
	}

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		if s.shared.TakeUpdateRequest() {
			status, err := s.updates.Download(ctx)
			if err != nil {
				s.logger.Warn().Err(err).Msg("update download failed")
				s.shared.SetUpdateStatus("Update download failed.")
			} else {
				s.shared.SetUpdateStatus(status)
			}
		}

		s.discover()

		select {
		case <-ctx.Done():
			s.logger.Info().Msg("connection supervisor stopped")
			return nil
		case <-ticker.C:
		}
	}
}

func (s *Supervisor) discover() {
	info, err := s.locator.Locate()
	if err != nil {
		s.shared.ClearConnection(notFoundStatus)
		return
	}

	status := fmt.Sprintf("Connected to LeagueClient on %s", info.BaseURL())
	if current, ok := s.shared.Connection(); !ok || current != info {
		s.logger.Info().Int("port", info.Port).Msg("client discovered")
	}
	s.shared.SetConnection(info, status)
}
