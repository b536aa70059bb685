package engine

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-watcher/internal/domain"
	"league-watcher/internal/lcu"
	"league-watcher/internal/state"
)

// fakeClient scripts the loopback API for engine tests and records every
// mutating call.
type fakeClient struct {
	phase      string
	phaseErr   error
	session    *lcu.ChampSelectSession
	sessionErr error

	// champion id → pickedByOtherOrBanned
	unavailable map[int]bool
	gridErr     error

	acceptErr error
	accepts   int
	actions   []lcu.ActionRequest
	spells    []lcu.SpellSelection
}

func (f *fakeClient) GameflowPhase(context.Context) (string, error) {
	return f.phase, f.phaseErr
}

func (f *fakeClient) AcceptReadyCheck(context.Context) error {
	if f.acceptErr != nil {
		return f.acceptErr
	}
	f.accepts++
	return nil
}

func (f *fakeClient) ChampSelectSession(context.Context) (*lcu.ChampSelectSession, error) {
	if f.sessionErr != nil {
		return nil, f.sessionErr
	}
	cp := *f.session
	return &cp, nil
}

func (f *fakeClient) GridChampion(_ context.Context, championID int) (*lcu.GridChampion, error) {
	if f.gridErr != nil {
		return nil, f.gridErr
	}
	grid := &lcu.GridChampion{}
	grid.SelectionStatus.PickedByOtherOrBanned = f.unavailable[championID]
	return grid, nil
}

func (f *fakeClient) CompleteAction(_ context.Context, _ int, body lcu.ActionRequest) error {
	f.actions = append(f.actions, body)
	return nil
}

func (f *fakeClient) SetSpells(_ context.Context, selection lcu.SpellSelection) error {
	f.spells = append(f.spells, selection)
	return nil
}

func (f *fakeClient) actionsOfType(actionType string) []lcu.ActionRequest {
	var out []lcu.ActionRequest
	for _, a := range f.actions {
		if a.Type == actionType {
			out = append(out, a)
		}
	}
	return out
}

// draftSession builds a session where the local seat (cell 2) owns action 10
// (ban) and action 20 (pick), plus one enemy action the engine must ignore.
func draftSession(gameID int64, ban, pick lcu.Action) *lcu.ChampSelectSession {
	ban.ID = 10
	ban.ActorCellID = 2
	ban.Type = "ban"
	pick.ID = 20
	pick.ActorCellID = 2
	pick.Type = "pick"
	return &lcu.ChampSelectSession{
		GameID:            gameID,
		LocalPlayerCellID: 2,
		MyTeam: []lcu.TeamMember{
			{CellID: 1, AssignedPosition: "top", Spell1ID: 6, Spell2ID: 7},
			{CellID: 2, AssignedPosition: "middle", Spell1ID: 4, Spell2ID: 14},
		},
		Actions: [][]lcu.Action{
			{ban},
			{pick, {ID: 30, ActorCellID: 7, Type: "pick", IsInProgress: true}},
		},
		Timer: lcu.Timer{Phase: "BAN_PICK"},
	}
}

func newTestCoordinator(shared *state.SharedState) *Coordinator {
	coord := NewCoordinator(shared, NewSpellSelector(testCatalog()), zerolog.Nop())
	coord.settle = func(context.Context, time.Duration) {}
	return coord
}

func TestRunCycleStatusWithoutAutomation(t *testing.T) {
	shared := state.New()
	coord := newTestCoordinator(shared)
	fake := &fakeClient{session: draftSession(100, lcu.Action{IsInProgress: true}, lcu.Action{})}

	require.NoError(t, coord.RunCycle(context.Background(), fake))
	assert.Equal(t, "Champion Selection", shared.Status())
	assert.Equal(t, "middle", shared.Role())
	assert.Empty(t, fake.actions)

	// the seat's currently equipped spells are published for display
	loadout, ok := shared.CurrentLoadout()
	require.True(t, ok)
	assert.Equal(t, domain.Loadout{Spell1ID: 4, Spell2ID: 14}, loadout)
}

func TestRunCycleCommitsBanOncePerSession(t *testing.T) {
	shared := state.New()
	shared.SetAutoPickBan(true)
	require.NoError(t, shared.SetBan(domain.BanEntry{ChampionID: 238, Name: "Zed"}))
	coord := newTestCoordinator(shared)
	fake := &fakeClient{session: draftSession(100, lcu.Action{IsInProgress: true}, lcu.Action{})}

	for i := 0; i < 3; i++ {
		require.NoError(t, coord.RunCycle(context.Background(), fake))
	}

	bans := fake.actionsOfType("ban")
	require.Len(t, bans, 1)
	assert.Equal(t, 238, bans[0].ChampionID)
	assert.Equal(t, 10, bans[0].ID)
	assert.Equal(t, 2, bans[0].ActorCellID)
	assert.True(t, bans[0].Completed)
	assert.True(t, bans[0].IsAllyAction)
	assert.Equal(t, "Champion Selection with Auto-pick/ban ON", shared.Status())
}

func TestRunCycleBanWaitsForPlanningToEnd(t *testing.T) {
	shared := state.New()
	shared.SetAutoPickBan(true)
	require.NoError(t, shared.SetBan(domain.BanEntry{ChampionID: 238, Name: "Zed"}))
	coord := newTestCoordinator(shared)
	fake := &fakeClient{session: draftSession(100, lcu.Action{IsInProgress: true}, lcu.Action{})}
	fake.session.Timer.Phase = lcu.TimerPhasePlanning

	require.NoError(t, coord.RunCycle(context.Background(), fake))
	assert.Empty(t, fake.actions)

	fake.session.Timer.Phase = "BAN_PICK"
	require.NoError(t, coord.RunCycle(context.Background(), fake))
	assert.Len(t, fake.actionsOfType("ban"), 1)
}

func TestRunCycleBanSurvivesEarlyPickEvaluation(t *testing.T) {
	shared := state.New()
	shared.SetAutoPickBan(true)
	require.NoError(t, shared.SetBan(domain.BanEntry{ChampionID: 238, Name: "Zed"}))
	require.NoError(t, shared.QueuePick(domain.PickEntry{ChampionID: 103, Name: "Ahri"}))
	coord := newTestCoordinator(shared)

	// planning cycle: the ban is gated out while the queued pick is already
	// being evaluated; that evaluation must not consume the session's ban
	fake := &fakeClient{session: draftSession(100, lcu.Action{IsInProgress: true}, lcu.Action{})}
	fake.session.Timer.Phase = lcu.TimerPhasePlanning
	require.NoError(t, coord.RunCycle(context.Background(), fake))
	assert.Empty(t, fake.actions)

	fake.session.Timer.Phase = "BAN_PICK"
	require.NoError(t, coord.RunCycle(context.Background(), fake))
	bans := fake.actionsOfType("ban")
	require.Len(t, bans, 1)
	assert.Equal(t, 238, bans[0].ChampionID)

	// ban resolved, pick turn active: the pick still commits afterwards
	fake.session = draftSession(100, lcu.Action{Completed: true}, lcu.Action{IsInProgress: true})
	require.NoError(t, coord.RunCycle(context.Background(), fake))
	picks := fake.actionsOfType("pick")
	require.Len(t, picks, 1)
	assert.Equal(t, 103, picks[0].ChampionID)
}

func TestRunCycleBanSkipsUnavailableTarget(t *testing.T) {
	shared := state.New()
	shared.SetAutoPickBan(true)
	require.NoError(t, shared.SetBan(domain.BanEntry{ChampionID: 238, Name: "Zed"}))
	coord := newTestCoordinator(shared)
	fake := &fakeClient{
		session:     draftSession(100, lcu.Action{IsInProgress: true}, lcu.Action{}),
		unavailable: map[int]bool{238: true},
	}

	require.NoError(t, coord.RunCycle(context.Background(), fake))
	assert.Empty(t, fake.actions)
}

func TestRunCyclePickWaitsForBanResolution(t *testing.T) {
	shared := state.New()
	shared.SetAutoPickBan(true)
	require.NoError(t, shared.QueuePick(domain.PickEntry{ChampionID: 103, Name: "Ahri"}))
	coord := newTestCoordinator(shared)

	// ban phase still running for the local seat: the pick must not be locked
	// even though its action already reports in progress
	fake := &fakeClient{session: draftSession(100, lcu.Action{IsInProgress: true}, lcu.Action{IsInProgress: true})}
	require.NoError(t, coord.RunCycle(context.Background(), fake))
	assert.Empty(t, fake.actionsOfType("pick"))

	// ban resolved remotely, pick turn active
	fake.session = draftSession(100, lcu.Action{Completed: true}, lcu.Action{IsInProgress: true})
	require.NoError(t, coord.RunCycle(context.Background(), fake))
	require.NoError(t, coord.RunCycle(context.Background(), fake))

	picks := fake.actionsOfType("pick")
	require.Len(t, picks, 1)
	assert.Equal(t, 103, picks[0].ChampionID)
	assert.Equal(t, 20, picks[0].ID)
}

func TestRunCyclePickPassesOverExplicitSkips(t *testing.T) {
	shared := state.New()
	shared.SetAutoPickBan(true)
	require.NoError(t, shared.QueuePick(domain.PickEntry{}))
	require.NoError(t, shared.QueuePick(domain.PickEntry{ChampionID: 103, Name: "Ahri"}))
	coord := newTestCoordinator(shared)
	fake := &fakeClient{session: draftSession(100, lcu.Action{Completed: true}, lcu.Action{IsInProgress: true})}

	require.NoError(t, coord.RunCycle(context.Background(), fake))

	picks := fake.actionsOfType("pick")
	require.Len(t, picks, 1)
	assert.Equal(t, 103, picks[0].ChampionID)
}

func TestRunCycleUnavailablePickHasNoFallback(t *testing.T) {
	shared := state.New()
	shared.SetAutoPickBan(true)
	require.NoError(t, shared.QueuePick(domain.PickEntry{ChampionID: 238, Name: "Zed"}))
	require.NoError(t, shared.QueuePick(domain.PickEntry{ChampionID: 103, Name: "Ahri"}))
	coord := newTestCoordinator(shared)
	fake := &fakeClient{
		session:     draftSession(100, lcu.Action{Completed: true}, lcu.Action{IsInProgress: true}),
		unavailable: map[int]bool{238: true},
	}

	// the head of the queue is taken: the cycle ends without substituting the
	// second candidate
	require.NoError(t, coord.RunCycle(context.Background(), fake))
	assert.Empty(t, fake.actionsOfType("pick"))

	// once the head frees up it commits normally
	fake.unavailable = nil
	require.NoError(t, coord.RunCycle(context.Background(), fake))
	picks := fake.actionsOfType("pick")
	require.Len(t, picks, 1)
	assert.Equal(t, 238, picks[0].ChampionID)
}

func TestRunCycleNewSessionAllowsNewCommits(t *testing.T) {
	shared := state.New()
	shared.SetAutoPickBan(true)
	require.NoError(t, shared.SetBan(domain.BanEntry{ChampionID: 238, Name: "Zed"}))
	coord := newTestCoordinator(shared)
	fake := &fakeClient{session: draftSession(100, lcu.Action{IsInProgress: true}, lcu.Action{})}

	require.NoError(t, coord.RunCycle(context.Background(), fake))
	require.Len(t, fake.actionsOfType("ban"), 1)

	// a dodge produced a new session with fresh action ids
	fake.session = draftSession(200, lcu.Action{IsInProgress: true}, lcu.Action{})
	require.NoError(t, coord.RunCycle(context.Background(), fake))
	assert.Len(t, fake.actionsOfType("ban"), 2)
}

func TestRunCycleAllSkipsDisablesAutomation(t *testing.T) {
	shared := state.New()
	shared.SetAutoPickBan(true)
	require.NoError(t, shared.QueuePick(domain.PickEntry{}))
	require.NoError(t, shared.QueuePick(domain.PickEntry{}))
	require.NoError(t, shared.SetBan(domain.BanEntry{}))
	coord := newTestCoordinator(shared)
	fake := &fakeClient{session: draftSession(100, lcu.Action{IsInProgress: true}, lcu.Action{})}

	require.NoError(t, coord.RunCycle(context.Background(), fake))

	assert.Empty(t, fake.actions)
	assert.False(t, shared.AutoPickBan())
	assert.Empty(t, shared.Picks())
	_, hasBan := shared.Ban()
	assert.False(t, hasBan)
}

func TestRunCycleSubmitsSpells(t *testing.T) {
	shared := state.New()
	shared.SetAutoSpells(true)
	shared.SetSpells(domain.SpellPair{Slot1: "Flash", Slot2: "Ignite"})
	coord := newTestCoordinator(shared)
	fake := &fakeClient{session: draftSession(100, lcu.Action{}, lcu.Action{})}

	require.NoError(t, coord.RunCycle(context.Background(), fake))

	require.Len(t, fake.spells, 1)
	assert.Equal(t, lcu.SpellSelection{Spell1ID: 4, Spell2ID: 14}, fake.spells[0])
	assert.False(t, shared.SpellWarning())
}

func TestRunCycleJungleOverrideUpdatesPreference(t *testing.T) {
	shared := state.New()
	shared.SetAutoSpells(true)
	shared.SetSpells(domain.SpellPair{Slot1: "Flash", Slot2: "Heal"})
	coord := newTestCoordinator(shared)
	fake := &fakeClient{session: draftSession(100, lcu.Action{}, lcu.Action{})}
	fake.session.MyTeam[1].AssignedPosition = "jungle"

	require.NoError(t, coord.RunCycle(context.Background(), fake))

	require.Len(t, fake.spells, 1)
	assert.Equal(t, lcu.SpellSelection{Spell1ID: 4, Spell2ID: 11}, fake.spells[0])
	assert.Equal(t, domain.SpellPair{Slot1: "Flash", Slot2: "Smite"}, shared.Spells())
}

func TestRunCycleIncompleteLoadoutWarnsWithoutSubmitting(t *testing.T) {
	shared := state.New()
	shared.SetAutoSpells(true)
	shared.SetSpells(domain.SpellPair{Slot1: "Flash"})
	coord := newTestCoordinator(shared)
	fake := &fakeClient{session: draftSession(100, lcu.Action{}, lcu.Action{})}

	require.NoError(t, coord.RunCycle(context.Background(), fake))

	assert.Empty(t, fake.spells)
	assert.True(t, shared.SpellWarning())
}
