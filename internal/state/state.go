package state

import (
	"errors"
	"sync"
	"sync/atomic"

	"league-watcher/internal/constants"
	"league-watcher/internal/domain"
)

var (
	ErrQueueFull          = errors.New("pick queue is full")
	ErrDuplicateSelection = errors.New("champion has already been selected")
)

// SharedState is the synchronized storage shared between the automation
// engine, the connection supervisor and the presentation boundary. Every
// field is guarded independently; no caller needs an atomic multi-field
// snapshot, readers accept a staleness window of one engine cycle.
type SharedState struct {
	autoAccept  atomic.Bool
	autoPickBan atomic.Bool
	autoSpells  atomic.Bool

	pickMu sync.Mutex
	picks  []domain.PickEntry

	banMu sync.Mutex
	ban   *domain.BanEntry

	spellMu sync.Mutex
	spells  domain.SpellPair

	statusMu sync.Mutex
	status   string

	roleMu sync.Mutex
	role   string

	loadoutMu sync.Mutex
	loadout   *domain.Loadout

	connMu     sync.Mutex
	conn       *domain.ConnectionInfo
	connStatus string

	updateMu        sync.Mutex
	updateStatus    string
	updateRequested atomic.Bool

	spellWarning atomic.Bool
}

func New() *SharedState {
	return &SharedState{}
}

func (s *SharedState) AutoAccept() bool       { return s.autoAccept.Load() }
func (s *SharedState) SetAutoAccept(on bool)  { s.autoAccept.Store(on) }
func (s *SharedState) AutoPickBan() bool      { return s.autoPickBan.Load() }
func (s *SharedState) SetAutoPickBan(on bool) { s.autoPickBan.Store(on) }
func (s *SharedState) AutoSpells() bool       { return s.autoSpells.Load() }
func (s *SharedState) SetAutoSpells(on bool)  { s.autoSpells.Store(on) }

func (s *SharedState) Toggles() domain.Toggles {
	return domain.Toggles{
		AutoAccept:  s.autoAccept.Load(),
		AutoPickBan: s.autoPickBan.Load(),
		AutoSpells:  s.autoSpells.Load(),
	}
}

// QueuePick appends a pick preference. Skip placeholders (empty name) may
// repeat; real champions are rejected when already queued.
func (s *SharedState) QueuePick(entry domain.PickEntry) error {
	s.pickMu.Lock()
	defer s.pickMu.Unlock()

	if len(s.picks) >= constants.MaxQueuedPicks {
		return ErrQueueFull
	}
	if !entry.IsSkip() {
		for _, queued := range s.picks {
			if queued.ChampionID == entry.ChampionID {
				return ErrDuplicateSelection
			}
		}
	}
	s.picks = append(s.picks, entry)
	return nil
}

// Picks returns a point-in-time copy of the pick queue.
func (s *SharedState) Picks() []domain.PickEntry {
	s.pickMu.Lock()
	defer s.pickMu.Unlock()
	out := make([]domain.PickEntry, len(s.picks))
	copy(out, s.picks)
	return out
}

// SetBan records the single outstanding ban preference. A champion already
// queued for picking is rejected.
func (s *SharedState) SetBan(entry domain.BanEntry) error {
	if !entry.IsSkip() {
		s.pickMu.Lock()
		for _, queued := range s.picks {
			if queued.ChampionID == entry.ChampionID {
				s.pickMu.Unlock()
				return ErrDuplicateSelection
			}
		}
		s.pickMu.Unlock()
	}

	s.banMu.Lock()
	defer s.banMu.Unlock()
	s.ban = &entry
	return nil
}

func (s *SharedState) Ban() (domain.BanEntry, bool) {
	s.banMu.Lock()
	defer s.banMu.Unlock()
	if s.ban == nil {
		return domain.BanEntry{}, false
	}
	return *s.ban, true
}

// ClearSelections empties the pick queue and removes the ban preference in
// one call, so no partially cleared state is ever observable.
func (s *SharedState) ClearSelections() {
	s.pickMu.Lock()
	s.picks = nil
	s.pickMu.Unlock()

	s.banMu.Lock()
	s.ban = nil
	s.banMu.Unlock()
}

func (s *SharedState) Spells() domain.SpellPair {
	s.spellMu.Lock()
	defer s.spellMu.Unlock()
	return s.spells
}

func (s *SharedState) SetSpells(pair domain.SpellPair) {
	s.spellMu.Lock()
	defer s.spellMu.Unlock()
	s.spells = pair
}

// SetSpellSlot assigns one slot by index (1 or 2). Choosing the name already
// held by the other slot swaps the pair instead of duplicating it.
func (s *SharedState) SetSpellSlot(slot int, name string) {
	s.spellMu.Lock()
	defer s.spellMu.Unlock()

	switch slot {
	case 1:
		if name != "" && name == s.spells.Slot2 {
			s.spells = s.spells.Swap()
			return
		}
		s.spells.Slot1 = name
	case 2:
		if name != "" && name == s.spells.Slot1 {
			s.spells = s.spells.Swap()
			return
		}
		s.spells.Slot2 = name
	}
}

func (s *SharedState) SetStatus(status string) {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	s.status = status
}

func (s *SharedState) Status() string {
	s.statusMu.Lock()
	defer s.statusMu.Unlock()
	return s.status
}

func (s *SharedState) SetRole(role string) {
	s.roleMu.Lock()
	defer s.roleMu.Unlock()
	s.role = role
}

// ClearRole drops the seat info (assigned role and current loadout) once the
// session it came from is gone.
func (s *SharedState) ClearRole() {
	s.roleMu.Lock()
	s.role = ""
	s.roleMu.Unlock()

	s.loadoutMu.Lock()
	s.loadout = nil
	s.loadoutMu.Unlock()
}

func (s *SharedState) Role() string {
	s.roleMu.Lock()
	defer s.roleMu.Unlock()
	return s.role
}

// SetCurrentLoadout publishes the spell ids currently equipped on the seat,
// for display alongside the assigned role.
func (s *SharedState) SetCurrentLoadout(loadout domain.Loadout) {
	s.loadoutMu.Lock()
	defer s.loadoutMu.Unlock()
	s.loadout = &loadout
}

func (s *SharedState) CurrentLoadout() (domain.Loadout, bool) {
	s.loadoutMu.Lock()
	defer s.loadoutMu.Unlock()
	if s.loadout == nil {
		return domain.Loadout{}, false
	}
	return *s.loadout, true
}

// SetConnection publishes freshly discovered connection info, replacing any
// previous value wholesale.
func (s *SharedState) SetConnection(info domain.ConnectionInfo, status string) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	s.conn = &info
	s.connStatus = status
}

func (s *SharedState) ClearConnection(status string) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	s.conn = nil
	s.connStatus = status
}

func (s *SharedState) Connection() (domain.ConnectionInfo, bool) {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.conn == nil {
		return domain.ConnectionInfo{}, false
	}
	return *s.conn, true
}

func (s *SharedState) ConnectionStatus() string {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	return s.connStatus
}

func (s *SharedState) SetUpdateStatus(status string) {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()
	s.updateStatus = status
}

func (s *SharedState) UpdateStatus() string {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()
	return s.updateStatus
}

func (s *SharedState) RequestUpdate() { s.updateRequested.Store(true) }

// TakeUpdateRequest consumes a pending update request, returning whether one
// was pending.
func (s *SharedState) TakeUpdateRequest() bool { return s.updateRequested.Swap(false) }

func (s *SharedState) SetSpellWarning(on bool) { s.spellWarning.Store(on) }
func (s *SharedState) SpellWarning() bool      { return s.spellWarning.Load() }
