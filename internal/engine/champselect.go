package engine

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"league-watcher/internal/constants"
	"league-watcher/internal/domain"
	"league-watcher/internal/lcu"
	"league-watcher/internal/state"
)

// Client is the subset of the loopback API the automation engine drives.
// *lcu.Client satisfies it; tests substitute a scripted fake.
type Client interface {
	GameflowPhase(ctx context.Context) (string, error)
	AcceptReadyCheck(ctx context.Context) error
	ChampSelectSession(ctx context.Context) (*lcu.ChampSelectSession, error)
	GridChampion(ctx context.Context, championID int) (*lcu.GridChampion, error)
	CompleteAction(ctx context.Context, actionID int, body lcu.ActionRequest) error
	SetSpells(ctx context.Context, selection lcu.SpellSelection) error
}

// Coordinator runs the ChampSelect decision cycle: publish role, submit the
// loadout, and commit at most one ban and one pick per session.
type Coordinator struct {
	shared  *state.SharedState
	spells  *SpellSelector
	tracker *commitTracker
	logger  zerolog.Logger

	// settle pauses after a commit PATCH; injectable so tests don't sleep.
	settle func(ctx context.Context, d time.Duration)
}

func NewCoordinator(shared *state.SharedState, spells *SpellSelector, logger zerolog.Logger) *Coordinator {
	return &Coordinator{
		shared:  shared,
		spells:  spells,
		tracker: &commitTracker{},
		logger:  logger,
		settle:  sleepCtx,
	}
}

func sleepCtx(ctx context.Context, d time.Duration) {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
	case <-timer.C:
	}
}

// RunCycle executes one champ-select pass. Network failures abort the rest
// of the cycle and surface to the caller; nothing is retried within a cycle.
func (c *Coordinator) RunCycle(ctx context.Context, client Client) error {
	session, err := client.ChampSelectSession(ctx)
	if err != nil {
		return err
	}
	c.tracker.observe(session.GameID)

	role := ""
	if member, ok := session.LocalMember(); ok {
		role = member.AssignedPosition
		c.shared.SetRole(role)
		c.shared.SetCurrentLoadout(domain.Loadout{Spell1ID: member.Spell1ID, Spell2ID: member.Spell2ID})
	}

	if c.shared.AutoSpells() {
		if err := c.submitSpells(ctx, client, role); err != nil {
			return err
		}
	}

	if !c.shared.AutoPickBan() {
		c.shared.SetStatus("Champion Selection")
		return nil
	}
	c.shared.SetStatus("Champion Selection with Auto-pick/ban ON")

	picks := c.shared.Picks()
	ban, hasBan := c.shared.Ban()
	if len(picks) == 0 && !hasBan {
		return nil
	}

	// Action ids are only valid for this session; re-fetch them every cycle
	// rather than holding any from a previous pass.
	session, err = client.ChampSelectSession(ctx)
	if err != nil {
		return err
	}
	c.tracker.observe(session.GameID)

	actions := session.ActionsFor(session.LocalPlayerCellID)
	banAction, pickAction := splitActions(actions)

	if hasBan && !ban.IsSkip() {
		if err := c.commitBan(ctx, client, session, banAction, ban); err != nil {
			return err
		}
	}

	if len(picks) > 0 {
		if err := c.commitPick(ctx, client, session, banAction, pickAction, picks); err != nil {
			return err
		}
	}

	// Every queued pick and the ban are explicit empty skips: the operator
	// opted out for this game, stop tracking.
	if allSkips(picks, ban, hasBan) {
		c.shared.ClearSelections()
		c.shared.SetAutoPickBan(false)
		c.logger.Info().Msg("all selections are explicit skips, auto pick/ban disabled")
	}

	return nil
}

// Reset clears the per-session commit progress, called whenever the phase is
// not ChampSelect.
func (c *Coordinator) Reset() {
	c.tracker.reset()
}

// splitActions takes the first two actions owned by the local seat; draft
// order puts the ban first, the pick second. Missing entries stay as the
// zero-value sentinel (id 0, not in progress, not completed).
func splitActions(actions []lcu.Action) (ban lcu.Action, pick lcu.Action) {
	if len(actions) > 0 {
		ban = actions[0]
	}
	if len(actions) > 1 {
		pick = actions[1]
	}
	return ban, pick
}

func (c *Coordinator) commitBan(ctx context.Context, client Client, session *lcu.ChampSelectSession, banAction lcu.Action, ban domain.BanEntry) error {
	if c.tracker.banCommitted() {
		return nil
	}
	if !banAction.IsInProgress || banAction.Completed {
		return nil
	}
	if session.Timer.Phase == lcu.TimerPhasePlanning {
		return nil
	}

	grid, err := client.GridChampion(ctx, ban.ChampionID)
	if err != nil {
		return err
	}
	if grid.SelectionStatus.PickedByOtherOrBanned {
		c.logger.Debug().Str("champion", ban.Name).Msg("ban target already picked or banned, skipping")
		return nil
	}

	body := lcu.ActionRequest{
		ActorCellID:  session.LocalPlayerCellID,
		ChampionID:   ban.ChampionID,
		Completed:    true,
		ID:           banAction.ID,
		IsAllyAction: true,
		Type:         "ban",
	}
	if err := client.CompleteAction(ctx, banAction.ID, body); err != nil {
		return err
	}
	c.tracker.markBanCommitted()
	c.logger.Info().Str("champion", ban.Name).Int("action_id", banAction.ID).Msg("ban committed")

	c.settle(ctx, constants.BanCommitSettle)
	return nil
}

// commitPick walks the queue in order: explicit skips are passed over, an
// unavailable champion ends pick processing for this cycle with no
// substitution, and a commit is one-shot for the session.
func (c *Coordinator) commitPick(ctx context.Context, client Client, session *lcu.ChampSelectSession, banAction, pickAction lcu.Action, picks []domain.PickEntry) error {
	if c.tracker.pickCommitted() {
		return nil
	}

	for _, candidate := range picks {
		if candidate.IsSkip() {
			continue
		}

		grid, err := client.GridChampion(ctx, candidate.ChampionID)
		if err != nil {
			return err
		}
		if grid.SelectionStatus.PickedByOtherOrBanned {
			c.logger.Debug().Str("champion", candidate.Name).Msg("pick target already picked or banned, skipping")
			return nil
		}

		// The pick may not be locked before the remote reports the ban
		// resolved, regardless of request latency.
		if !pickAction.IsInProgress || pickAction.Completed {
			return nil
		}
		if banAction.IsInProgress || !banAction.Completed {
			return nil
		}

		body := lcu.ActionRequest{
			ActorCellID:  session.LocalPlayerCellID,
			ChampionID:   candidate.ChampionID,
			Completed:    true,
			ID:           pickAction.ID,
			IsAllyAction: true,
			Type:         "pick",
		}
		if err := client.CompleteAction(ctx, pickAction.ID, body); err != nil {
			return err
		}
		c.tracker.markPickCommitted()
		c.logger.Info().Str("champion", candidate.Name).Int("action_id", pickAction.ID).Msg("pick committed")

		c.settle(ctx, constants.PickCommitSettle)
		return nil
	}

	return nil
}

func (c *Coordinator) submitSpells(ctx context.Context, client Client, role string) error {
	pair := c.shared.Spells()
	selection, adjusted, err := c.spells.Resolve(pair, role)
	if errors.Is(err, ErrIncompleteLoadout) {
		c.shared.SetSpellWarning(true)
		return nil
	}
	if err != nil {
		c.logger.Warn().Err(err).Msg("spell resolution failed")
		return nil
	}
	c.shared.SetSpellWarning(false)

	// The override mutates the preference itself so the operator (and every
	// later cycle) sees the adjusted pair.
	if !adjusted.Equal(pair) {
		c.shared.SetSpells(adjusted)
		c.logger.Info().
			Str("slot1", adjusted.Slot1).
			Str("slot2", adjusted.Slot2).
			Str("role", role).
			Msg("jungle override applied to spell preference")
	}

	return client.SetSpells(ctx, selection)
}

func allSkips(picks []domain.PickEntry, ban domain.BanEntry, hasBan bool) bool {
	if len(picks) != constants.MaxQueuedPicks || !hasBan || !ban.IsSkip() {
		return false
	}
	for _, p := range picks {
		if !p.IsSkip() {
			return false
		}
	}
	return true
}
