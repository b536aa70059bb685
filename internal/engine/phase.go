package engine

import (
	"fmt"
	"time"

	"league-watcher/internal/constants"
)

// Phase is the top-level gameflow state reported by the client. Values not
// in the known set are carried through verbatim and handled as unimplemented.
type Phase string

const (
	PhaseNone            Phase = ""
	PhaseMatchmaking     Phase = "Matchmaking"
	PhaseLobby           Phase = "Lobby"
	PhaseReadyCheck      Phase = "ReadyCheck"
	PhaseChampSelect     Phase = "ChampSelect"
	PhaseInProgress      Phase = "InProgress"
	PhaseWaitingForStats Phase = "WaitingForStats"
	PhasePreEndOfGame    Phase = "PreEndOfGame"
	PhaseEndOfGame       Phase = "EndOfGame"
)

// PhasePolicy is the cadence and housekeeping for one phase: the status text
// to publish, how long to wait before the next cycle, and whether the
// assigned role is stale. ReadyCheck and ChampSelect carry side effects and
// are handled by the loop itself; their entries here cover text and cadence
// only.
type PhasePolicy struct {
	Status    string
	Wait      time.Duration
	ClearRole bool
}

var phasePolicies = map[Phase]PhasePolicy{
	PhaseNone:            {Status: "Idling..."},
	PhaseMatchmaking:     {Status: "Looking for a match", ClearRole: true},
	PhaseLobby:           {Status: "In Lobby", ClearRole: true},
	PhaseReadyCheck:      {Status: "Match Found"},
	PhaseChampSelect:     {Status: "Champion Selection"},
	PhaseInProgress:      {Status: "Game in progress...", Wait: constants.InProgressWait},
	PhaseWaitingForStats: {Status: "Waiting for Stats", Wait: constants.WaitingForStatsWait},
	PhasePreEndOfGame:    {Status: "Game in progress...", Wait: constants.PreEndOfGameWait},
	PhaseEndOfGame:       {Status: "Game Ending...", Wait: constants.EndOfGameWait, ClearRole: true},
}

// PolicyFor returns the policy for a phase. Unknown phases get a visible
// fallback so forward-incompatible client updates degrade gracefully.
func PolicyFor(p Phase) PhasePolicy {
	if policy, ok := phasePolicies[p]; ok {
		return policy
	}
	return PhasePolicy{
		Status:    fmt.Sprintf("Unimplemented Phase: %s", p),
		Wait:      constants.UnimplementedWait,
		ClearRole: true,
	}
}
