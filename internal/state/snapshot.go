package state

// Snapshot is the read model the presentation boundary consumes, rebuilt on
// every request or stream tick. It is a point-in-time copy; the engine never
// reads it back.
type Snapshot struct {
	ConnectionStatus string           `json:"connectionStatus"`
	Status           string           `json:"status"`
	Role             string           `json:"role,omitempty"`
	UpdateStatus     string           `json:"updateStatus,omitempty"`
	SpellWarning     bool             `json:"spellWarning"`
	Toggles          ToggleSnapshot   `json:"toggles"`
	Picks            []PickSnapshot   `json:"picks"`
	Ban              *PickSnapshot    `json:"ban,omitempty"`
	Spells           SpellSnapshot    `json:"spells"`
	CurrentLoadout   *LoadoutSnapshot `json:"currentLoadout,omitempty"`
}

type ToggleSnapshot struct {
	AutoAccept  bool `json:"autoAccept"`
	AutoPickBan bool `json:"autoPickBan"`
	AutoSpells  bool `json:"autoSpells"`
}

type PickSnapshot struct {
	ChampionID int    `json:"championId"`
	Name       string `json:"name"`
}

type SpellSnapshot struct {
	Slot1 string `json:"slot1"`
	Slot2 string `json:"slot2"`
}

// LoadoutSnapshot mirrors the spell ids equipped on the seat right now, as
// opposed to the operator's chosen pair in SpellSnapshot.
type LoadoutSnapshot struct {
	Spell1ID int `json:"spell1Id"`
	Spell2ID int `json:"spell2Id"`
}

func (s *SharedState) Snapshot() Snapshot {
	toggles := s.Toggles()
	spells := s.Spells()

	snap := Snapshot{
		ConnectionStatus: s.ConnectionStatus(),
		Status:           s.Status(),
		Role:             s.Role(),
		UpdateStatus:     s.UpdateStatus(),
		SpellWarning:     s.SpellWarning(),
		Toggles: ToggleSnapshot{
			AutoAccept:  toggles.AutoAccept,
			AutoPickBan: toggles.AutoPickBan,
			AutoSpells:  toggles.AutoSpells,
		},
		Spells: SpellSnapshot{Slot1: spells.Slot1, Slot2: spells.Slot2},
	}

	for _, pick := range s.Picks() {
		snap.Picks = append(snap.Picks, PickSnapshot{ChampionID: pick.ChampionID, Name: pick.Name})
	}
	if ban, ok := s.Ban(); ok {
		snap.Ban = &PickSnapshot{ChampionID: ban.ChampionID, Name: ban.Name}
	}
	if loadout, ok := s.CurrentLoadout(); ok {
		snap.CurrentLoadout = &LoadoutSnapshot{Spell1ID: loadout.Spell1ID, Spell2ID: loadout.Spell2ID}
	}

	return snap
}
