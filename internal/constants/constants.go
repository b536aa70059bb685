package constants

import "time"

const (
	// Waits applied after the engine handles the named gameflow phase.
	InProgressWait      = 20 * time.Second
	WaitingForStatsWait = 2 * time.Second
	PreEndOfGameWait    = 10 * time.Second
	EndOfGameWait       = 5 * time.Second
	UnimplementedWait   = 10 * time.Second
)

const (
	// Settle delays after a commit PATCH so the remote's own state
	// transition is not raced on the next cycle.
	BanCommitSettle  = 10 * time.Second
	PickCommitSettle = 1 * time.Second
)

const (
	DiscoveryInterval = 4 * time.Second
	EngineTick        = 500 * time.Millisecond
	StatusStreamTick  = 500 * time.Millisecond
)

const (
	CatalogFetchTimeout = 10 * time.Second
	UpdateCheckTimeout  = 10 * time.Second
	UpdateFetchTimeout  = 2 * time.Minute
	DatabaseTimeout     = 5 * time.Second
)

const (
	DBMaxOpenConns    = 10
	DBMaxIdleConns    = 2
	DBConnMaxLifetime = 1 * time.Hour
	DBMaxIdleTime     = 10 * time.Minute
)

const (
	ShutdownTimeout = 5 * time.Second
)

const (
	MaxQueuedPicks = 2
)
