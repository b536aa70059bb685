package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"league-watcher/internal/domain"
)

func TestQueuePick(t *testing.T) {
	s := New()

	require.NoError(t, s.QueuePick(domain.PickEntry{ChampionID: 103, Name: "Ahri"}))

	err := s.QueuePick(domain.PickEntry{ChampionID: 103, Name: "Ahri"})
	assert.ErrorIs(t, err, ErrDuplicateSelection)

	require.NoError(t, s.QueuePick(domain.PickEntry{})) // explicit skip

	err = s.QueuePick(domain.PickEntry{ChampionID: 1, Name: "Annie"})
	assert.ErrorIs(t, err, ErrQueueFull)

	assert.Len(t, s.Picks(), 2)
}

func TestQueuePickAllowsRepeatedSkips(t *testing.T) {
	s := New()
	require.NoError(t, s.QueuePick(domain.PickEntry{}))
	require.NoError(t, s.QueuePick(domain.PickEntry{}))
	assert.Len(t, s.Picks(), 2)
}

func TestSetBanRejectsQueuedChampion(t *testing.T) {
	s := New()
	require.NoError(t, s.QueuePick(domain.PickEntry{ChampionID: 103, Name: "Ahri"}))

	err := s.SetBan(domain.BanEntry{ChampionID: 103, Name: "Ahri"})
	assert.ErrorIs(t, err, ErrDuplicateSelection)

	require.NoError(t, s.SetBan(domain.BanEntry{ChampionID: 1, Name: "Annie"}))
	ban, ok := s.Ban()
	require.True(t, ok)
	assert.Equal(t, 1, ban.ChampionID)
}

func TestClearSelections(t *testing.T) {
	s := New()
	require.NoError(t, s.QueuePick(domain.PickEntry{ChampionID: 103, Name: "Ahri"}))
	require.NoError(t, s.SetBan(domain.BanEntry{ChampionID: 1, Name: "Annie"}))

	s.ClearSelections()

	assert.Empty(t, s.Picks())
	_, ok := s.Ban()
	assert.False(t, ok)
}

func TestPicksReturnsCopy(t *testing.T) {
	s := New()
	require.NoError(t, s.QueuePick(domain.PickEntry{ChampionID: 103, Name: "Ahri"}))

	picks := s.Picks()
	picks[0].Name = "mutated"

	assert.Equal(t, "Ahri", s.Picks()[0].Name)
}

func TestSetSpellSlotSwapsOnConflict(t *testing.T) {
	s := New()
	s.SetSpells(domain.SpellPair{Slot1: "Flash", Slot2: "Ignite"})

	// choosing the other slot's spell swaps rather than duplicating
	s.SetSpellSlot(1, "Ignite")
	assert.True(t, s.Spells().Equal(domain.SpellPair{Slot1: "Ignite", Slot2: "Flash"}))

	s.SetSpellSlot(2, "Ignite")
	assert.True(t, s.Spells().Equal(domain.SpellPair{Slot1: "Flash", Slot2: "Ignite"}))

	s.SetSpellSlot(1, "Ghost")
	assert.True(t, s.Spells().Equal(domain.SpellPair{Slot1: "Ghost", Slot2: "Ignite"}))
}

func TestConnectionReplacedWholesale(t *testing.T) {
	s := New()
	s.SetConnection(domain.ConnectionInfo{Port: 1, Credential: "a"}, "connected 1")
	s.SetConnection(domain.ConnectionInfo{Port: 2, Credential: "b"}, "connected 2")

	info, ok := s.Connection()
	require.True(t, ok)
	assert.Equal(t, 2, info.Port)
	assert.Equal(t, "b", info.Credential)

	s.ClearConnection("not found")
	_, ok = s.Connection()
	assert.False(t, ok)
	assert.Equal(t, "not found", s.ConnectionStatus())
}

func TestClearRoleDropsSeatInfo(t *testing.T) {
	s := New()
	s.SetRole("jungle")
	s.SetCurrentLoadout(domain.Loadout{Spell1ID: 4, Spell2ID: 11})

	loadout, ok := s.CurrentLoadout()
	require.True(t, ok)
	assert.Equal(t, domain.Loadout{Spell1ID: 4, Spell2ID: 11}, loadout)

	s.ClearRole()
	assert.Empty(t, s.Role())
	_, ok = s.CurrentLoadout()
	assert.False(t, ok)
}

func TestSnapshotCarriesCurrentLoadout(t *testing.T) {
	s := New()
	assert.Nil(t, s.Snapshot().CurrentLoadout)

	s.SetCurrentLoadout(domain.Loadout{Spell1ID: 4, Spell2ID: 14})
	snap := s.Snapshot()
	require.NotNil(t, snap.CurrentLoadout)
	assert.Equal(t, 4, snap.CurrentLoadout.Spell1ID)
	assert.Equal(t, 14, snap.CurrentLoadout.Spell2ID)
}

func TestTakeUpdateRequest(t *testing.T) {
	s := New()
	assert.False(t, s.TakeUpdateRequest())

	s.RequestUpdate()
	assert.True(t, s.TakeUpdateRequest())
	assert.False(t, s.TakeUpdateRequest())
}
