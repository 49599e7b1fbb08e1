package domain

import (
	"time"
)

// WinRateOptions control which games count towards a win rate computation.
type WinRateOptions struct {
	// Civilization and Map filter on the subject's civilization and the
	// game's map. Empty string means no filter.
	Civilization string
	Map          string

	// IdleGap is the maximum pause between two games for them to count as
	// the same play session.
	IdleGap time.Duration

	// Timespan, when set, replaces session detection with an absolute
	// window measured back from now.
	Timespan time.Duration

	IncludeTeamGames bool
}

const DefaultIdleGap = 4 * time.Hour

// WinRateStats is the result of one win rate aggregation.
type WinRateStats struct {
	ProfileIDs []ProfileID
	OpponentID *ProfileID

	GamesCount  int
	WinsCount   int
	LossesCount int
	Duration    time.Duration

	// FirstGameAt is the start of the oldest counted game, LastGameAt the
	// end of the newest counted game.
	FirstGameAt *time.Time
	LastGameAt  *time.Time

	// WinRate is a percentage with one decimal place. With no losses it is
	// 100, including when no games were counted at all.
	WinRate float64

	PendingGames         int
	PendingGameStartedAt *time.Time
}
