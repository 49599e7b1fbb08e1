package domain

// LadderEntry is one row of the upstream leaderboard.
type LadderEntry struct {
	ProfileID     ProfileID
	Name          string
	Clan          string
	Rank          int
	Rating        int
	HighestRating int
	Streak        int
	Wins          int
	Losses        int
}
