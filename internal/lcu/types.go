package lcu

// Wire types for the client's loopback REST resources. Field names follow
// the remote's JSON exactly.

type GameflowSession struct {
	Phase string `json:"phase"`
}

type ChampSelectSession struct {
	GameID            int64        `json:"gameId"`
	LocalPlayerCellID int          `json:"localPlayerCellId"`
	MyTeam            []TeamMember `json:"myTeam"`
	Actions           [][]Action   `json:"actions"`
	Timer             Timer        `json:"timer"`
}

type TeamMember struct {
	CellID           int    `json:"cellId"`
	AssignedPosition string `json:"assignedPosition"`
	Spell1ID         int    `json:"spell1Id"`
	Spell2ID         int    `json:"spell2Id"`
}

// Action identifiers are scoped to a single champ-select session and must
// never be cached across sessions.
type Action struct {
	ID           int    `json:"id"`
	ActorCellID  int    `json:"actorCellId"`
	Type         string `json:"type"` // "pick" or "ban"
	IsInProgress bool   `json:"isInProgress"`
	Completed    bool   `json:"completed"`
}

type Timer struct {
	Phase string `json:"phase"`
}

const TimerPhasePlanning = "PLANNING"

type GridChampion struct {
	SelectionStatus SelectionStatus `json:"selectionStatus"`
}

type SelectionStatus struct {
	PickedByOtherOrBanned bool `json:"pickedByOtherOrBanned"`
}

type ActionRequest struct {
	ActorCellID  int    `json:"actorCellId"`
	ChampionID   int    `json:"championId"`
	Completed    bool   `json:"completed"`
	ID           int    `json:"id"`
	IsAllyAction bool   `json:"isAllyAction"`
	Type         string `json:"type"`
}

type SpellSelection struct {
	Spell1ID int `json:"spell1Id"`
	Spell2ID int `json:"spell2Id"`
}

// LocalMember returns the roster entry for the local player's seat.
func (s *ChampSelectSession) LocalMember() (TeamMember, bool) {
	for _, m := range s.MyTeam {
		if m.CellID == s.LocalPlayerCellID {
			return m, true
		}
	}
	return TeamMember{}, false
}

// ActionsFor flattens the action queues in order and returns the actions
// owned by the given seat.
func (s *ChampSelectSession) ActionsFor(cellID int) []Action {
	var out []Action
	for _, group := range s.Actions {
		for _, a := range group {
			if a.ActorCellID == cellID {
				out = append(out, a)
			}
		}
	}
	return out
}
