package engine

// commitTracker enforces at most one ban commit and one pick commit per
// champ-select session, no matter how many cycles observe eligible
// conditions. Sessions are identified by the game ID, which has the same
// lifetime as the session's action identifiers.
//
// The two commits are tracked independently: pick eligibility is evaluated
// on every cycle, including cycles where the ban is still gated out by the
// planning timer or its action not yet being in progress, and doing so must
// never consume the session's ban.
type commitTracker struct {
	active   bool
	gameID   int64
	banDone  bool
	pickDone bool
}

// observe registers the session seen this cycle. A new game ID starts a
// fresh session with no commits.
func (t *commitTracker) observe(gameID int64) {
	if t.active && gameID == t.gameID {
		return
	}
	*t = commitTracker{active: true, gameID: gameID}
}

// reset forgets the session entirely, called whenever the phase is not
// ChampSelect.
func (t *commitTracker) reset() {
	*t = commitTracker{}
}

func (t *commitTracker) banCommitted() bool  { return t.banDone }
func (t *commitTracker) pickCommitted() bool { return t.pickDone }

func (t *commitTracker) markBanCommitted()  { t.banDone = true }
func (t *commitTracker) markPickCommitted() { t.pickDone = true }
