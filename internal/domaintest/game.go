package domaintest

import (
	"time"

	"github.com/grindheim/ladderlight/internal/domain"
)

type gameBuilder struct {
	game *domain.GameRecord
}

func (gb *gameBuilder) WithDuration(duration time.Duration) *gameBuilder {
	gb.game.Duration = duration
	return gb
}

// Ongoing clears the duration, marking the game as still in progress.
func (gb *gameBuilder) Ongoing() *gameBuilder {
	gb.game.Duration = 0
	return gb
}

func (gb *gameBuilder) OnMap(name string) *gameBuilder {
	gb.game.Map = name
	return gb
}

func (gb *gameBuilder) WithTeams(teams ...domain.Team) *gameBuilder {
	gb.game.Teams = teams
	return gb
}

// WonBy sets up a finished 1v1 between winner and loser.
func (gb *gameBuilder) WonBy(winner, loser domain.ProfileID) *gameBuilder {
	gb.game.Teams = []domain.Team{
		{Participant(winner, domain.ResultWin)},
		{Participant(loser, domain.ResultLoss)},
	}
	return gb
}

func (gb *gameBuilder) Build() domain.GameRecord {
	return *gb.game
}

func NewGameBuilder(startedAt time.Time) *gameBuilder {
	game := &domain.GameRecord{
		StartedAt: startedAt,
		Duration:  25 * time.Minute,
		Map:       "Arabia",
		Teams: []domain.Team{
			{Participant(1, domain.ResultWin)},
			{Participant(2, domain.ResultLoss)},
		},
	}
	return &gameBuilder{
		game: game,
	}
}

func Participant(profileID domain.ProfileID, result domain.GameResult) domain.Participant {
	return domain.Participant{
		ProfileID:    profileID,
		Civilization: "Franks",
		Result:       result,
	}
}

func CivParticipant(profileID domain.ProfileID, civilization string, result domain.GameResult) domain.Participant {
	return domain.Participant{
		ProfileID:    profileID,
		Civilization: civilization,
		Result:       result,
	}
}
