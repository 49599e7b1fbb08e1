package ports_test

import (
	"testing"
	"time"

	"github.com/grindheim/ladderlight/internal/domain"
	"github.com/grindheim/ladderlight/internal/domaintest"
	"github.com/grindheim/ladderlight/internal/ports"
	"github.com/stretchr/testify/require"
)

func TestFormatRankChat(t *testing.T) {
	t.Parallel()

	entry := &domain.LadderEntry{
		ProfileID:     123,
		Name:          "GrindViking",
		Clan:          "GRND",
		Rank:          17,
		Rating:        2311,
		HighestRating: 2405,
		Wins:          410,
		Losses:        350,
	}

	require.Equal(t,
		"[GRND] GrindViking is rank #17 with 2311 rating (peak 2405), 410W/350L",
		ports.FormatRankChat(entry),
	)

	entry.Clan = ""
	require.Equal(t,
		"GrindViking is rank #17 with 2311 rating (peak 2405), 410W/350L",
		ports.FormatRankChat(entry),
	)
}

func TestFormatWinRateChat(t *testing.T) {
	t.Parallel()

	t.Run("full stats", func(t *testing.T) {
		t.Parallel()

		stats := domain.WinRateStats{
			GamesCount:   10,
			WinsCount:    7,
			LossesCount:  3,
			WinRate:      70.0,
			Duration:     5*time.Hour + 12*time.Minute,
			PendingGames: 1,
		}

		require.Equal(t, "10 games: 7W/3L (70.0%), 5h12m played, 1 in progress", ports.FormatWinRateChat(stats))
	})

	t.Run("no games", func(t *testing.T) {
		t.Parallel()

		require.Equal(t, "No games found", ports.FormatWinRateChat(domain.WinRateStats{WinRate: 100}))
	})
}

func TestFormatLastMatchChat(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 11, 3, 18, 0, 0, 0, time.UTC)

	t.Run("finished game", func(t *testing.T) {
		t.Parallel()

		game := domaintest.NewGameBuilder(now.Add(-2 * time.Hour)).
			OnMap("Arabia").
			WithDuration(30 * time.Minute).
			WithTeams(
				domain.Team{domaintest.CivParticipant(123, "Franks", domain.ResultWin)},
				domain.Team{domaintest.CivParticipant(456, "Britons", domain.ResultLoss)},
			).
			Build()

		require.Equal(t,
			"Last match on Arabia, started 2h00m ago, lasted 30m, won as Franks",
			ports.FormatLastMatchChat(&game, []domain.ProfileID{123}, now),
		)
	})

	t.Run("ongoing game", func(t *testing.T) {
		t.Parallel()

		game := domaintest.NewGameBuilder(now.Add(-20 * time.Minute)).
			OnMap("Arena").
			Ongoing().
			WonBy(123, 456).
			Build()

		require.Equal(t,
			"Last match on Arena, started 20m ago, still in progress",
			ports.FormatLastMatchChat(&game, []domain.ProfileID{123}, now),
		)
	})
}
