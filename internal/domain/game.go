package domain

import (
	"time"
)

// ProfileID identifies a player account on the upstream ladder system.
type ProfileID int64

func (id ProfileID) Valid() bool {
	return id > 0
}

type GameResult int

const (
	ResultUndetermined GameResult = iota
	ResultWin
	ResultLoss
)

type Participant struct {
	ProfileID    ProfileID
	Civilization string
	Result       GameResult
}

type Team []Participant

// GameRecord is one completed or in-progress match.
// A zero Duration means the match has not finished yet.
type GameRecord struct {
	StartedAt time.Time
	Duration  time.Duration
	Map       string
	Teams     []Team
}

func (g *GameRecord) Finished() bool {
	return g.Duration > 0
}

func (g *GameRecord) PlayerCount() int {
	count := 0
	for _, team := range g.Teams {
		count += len(team)
	}
	return count
}

// TeamOf returns the first team containing any of the given profile ids,
// along with the matching participant.
func (g *GameRecord) TeamOf(profileIDs []ProfileID) (int, *Participant) {
	for teamIndex, team := range g.Teams {
		for i := range team {
			for _, id := range profileIDs {
				if team[i].ProfileID == id {
					return teamIndex, &team[i]
				}
			}
		}
	}
	return -1, nil
}

// GamesPage is one page of a profile's match history as reported by the
// upstream API. Games are ordered newest first. Offset is the number of
// games on strictly earlier pages.
type GamesPage struct {
	Games      []GameRecord
	Offset     int
	TotalCount int
}
