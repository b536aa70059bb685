package engine

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"league-watcher/internal/config"
	"league-watcher/internal/domain"
	"league-watcher/internal/lcu"
	"league-watcher/internal/state"
)

// ClientFactory builds a loopback client for freshly discovered connection
// info. The default wraps lcu.NewClient; tests inject fakes.
type ClientFactory func(info domain.ConnectionInfo) (Client, error)

// Engine is the single automation loop. Each cycle classifies the gameflow
// phase, publishes status text, and dispatches the phase's side effects. A
// failed call aborts only the current cycle, never the loop.
type Engine struct {
	shared  *state.SharedState
	coord   *Coordinator
	factory ClientFactory
	tick    time.Duration
	logger  zerolog.Logger

	client   Client
	endpoint domain.ConnectionInfo

	// accepted guards the one-shot ready-check POST; reset when the phase
	// leaves ReadyCheck.
	accepted bool
}

func New(shared *state.SharedState, coord *Coordinator, cfg *config.Config, logger zerolog.Logger) *Engine {
	return &Engine{
		shared: shared,
		coord:  coord,
		factory: func(info domain.ConnectionInfo) (Client, error) {
			return lcu.NewClient(info, logger)
		},
		tick:   cfg.EngineTick,
		logger: logger,
	}
}

func (e *Engine) Run(ctx context.Context) error {
	e.logger.Info().Dur("tick", e.tick).Msg("automation engine started")
	for {
		wait := e.runCycle(ctx)
		if wait < e.tick {
			wait = e.tick
		}

		timer := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			timer.Stop()
			e.logger.Info().Msg("automation engine stopped")
			return nil
		case <-timer.C:
		}
	}
}

// runCycle performs one pass and returns the phase-specific wait before the
// next one.
func (e *Engine) runCycle(ctx context.Context) time.Duration {
	info, ok := e.shared.Connection()
	if !ok {
		// Not connected; drop the client so a stale endpoint is never used.
		e.client = nil
		return 0
	}

	if e.client == nil || info != e.endpoint {
		client, err := e.factory(info)
		if err != nil {
			e.logger.Error().Err(err).Int("port", info.Port).Msg("failed to build client")
			return 0
		}
		e.client = client
		e.endpoint = info
		e.coord.Reset()
		e.accepted = false
		e.logger.Info().Str("endpoint", info.BaseURL()).Msg("client rebuilt for new endpoint")
	}

	raw, err := e.client.GameflowPhase(ctx)
	if err != nil {
		e.logger.Warn().Err(err).Msg("gameflow fetch failed, cycle skipped")
		return 0
	}
	phase := Phase(raw)

	if phase != PhaseChampSelect {
		e.coord.Reset()
	}
	if phase != PhaseReadyCheck {
		e.accepted = false
	}

	switch phase {
	case PhaseReadyCheck:
		return e.handleReadyCheck(ctx)
	case PhaseChampSelect:
		if err := e.coord.RunCycle(ctx, e.client); err != nil {
			e.logger.Warn().Err(err).Msg("champ select cycle failed, retrying next cycle")
		}
		return 0
	default:
		policy := PolicyFor(phase)
		e.shared.SetStatus(policy.Status)
		if policy.ClearRole {
			e.shared.ClearRole()
		}
		return policy.Wait
	}
}

func (e *Engine) handleReadyCheck(ctx context.Context) time.Duration {
	if e.shared.AutoAccept() && !e.accepted {
		e.shared.SetStatus("Accepting match")
		if err := e.client.AcceptReadyCheck(ctx); err != nil {
			e.logger.Warn().Err(err).Msg("ready check accept failed, retrying next cycle")
			return 0
		}
		e.accepted = true
	}
	e.shared.SetStatus(PolicyFor(PhaseReadyCheck).Status)
	return 0
}
