package matchprovider

import (
	"context"
	"testing"
	"time"

	"github.com/grindheim/ladderlight/internal/domain"
	"github.com/stretchr/testify/require"
)

func TestMatchesResponseToGamesPage(t *testing.T) {
	t.Parallel()

	t.Run("parses a finished 1v1 match", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{
			"matches": [
				{
					"started": 1700000000,
					"finished": 1700001800,
					"map_type": 9,
					"players": [
						{"profile_id": 123, "civ": 10, "team": 1, "won": true},
						{"profile_id": 456, "civ": 2, "team": 2, "won": false}
					]
				}
			],
			"offset": 0,
			"total_count": 1
		}`)

		page, err := MatchesResponseToGamesPage(context.Background(), data, 200)
		require.NoError(t, err)
		require.Len(t, page.Games, 1)

		game := page.Games[0]
		require.Equal(t, time.Unix(1700000000, 0).UTC(), game.StartedAt)
		require.Equal(t, 30*time.Minute, game.Duration)
		require.Equal(t, "Arabia", game.Map)
		require.True(t, game.Finished())
		require.Equal(t, 2, game.PlayerCount())

		require.Len(t, game.Teams, 2)
		require.Equal(t, domain.Participant{
			ProfileID:    123,
			Civilization: "Franks",
			Result:       domain.ResultWin,
		}, game.Teams[0][0])
		require.Equal(t, domain.Participant{
			ProfileID:    456,
			Civilization: "Britons",
			Result:       domain.ResultLoss,
		}, game.Teams[1][0])
	})

	t.Run("treats missing finished time as ongoing", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{
			"matches": [
				{
					"started": 1700000000,
					"map_type": 29,
					"players": [
						{"profile_id": 123, "civ": 0, "team": 1},
						{"profile_id": 456, "civ": 34, "team": 2}
					]
				}
			]
		}`)

		page, err := MatchesResponseToGamesPage(context.Background(), data, 200)
		require.NoError(t, err)
		require.Len(t, page.Games, 1)

		game := page.Games[0]
		require.False(t, game.Finished())
		require.Equal(t, time.Duration(0), game.Duration)
		require.Equal(t, domain.ResultUndetermined, game.Teams[0][0].Result)
	})

	t.Run("groups team games by team number", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{
			"matches": [
				{
					"started": 1700000000,
					"finished": 1700002000,
					"map_type": 12,
					"players": [
						{"profile_id": 1, "civ": 12, "team": 2, "won": false},
						{"profile_id": 2, "civ": 11, "team": 1, "won": true},
						{"profile_id": 3, "civ": 24, "team": 2, "won": false},
						{"profile_id": 4, "civ": 31, "team": 1, "won": true}
					]
				}
			]
		}`)

		page, err := MatchesResponseToGamesPage(context.Background(), data, 200)
		require.NoError(t, err)
		require.Len(t, page.Games, 1)

		game := page.Games[0]
		require.Equal(t, "Black Forest", game.Map)
		require.Equal(t, 4, game.PlayerCount())
		require.Len(t, game.Teams, 2)
		require.ElementsMatch(t,
			[]domain.ProfileID{2, 4},
			[]domain.ProfileID{game.Teams[0][0].ProfileID, game.Teams[0][1].ProfileID},
		)
		require.ElementsMatch(t,
			[]domain.ProfileID{1, 3},
			[]domain.ProfileID{game.Teams[1][0].ProfileID, game.Teams[1][1].ProfileID},
		)
	})

	t.Run("falls back to numeric names for unknown ids", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{
			"matches": [
				{
					"started": 1700000000,
					"finished": 1700000600,
					"map_type": 9999,
					"players": [
						{"profile_id": 123, "civ": 9999, "team": 1, "won": true},
						{"profile_id": 456, "civ": 5, "team": 2, "won": false}
					]
				}
			]
		}`)

		page, err := MatchesResponseToGamesPage(context.Background(), data, 200)
		require.NoError(t, err)
		require.Len(t, page.Games, 1)

		game := page.Games[0]
		require.Equal(t, "Map #9999", game.Map)
		require.Equal(t, "Civ #9999", game.Teams[0][0].Civilization)
	})

	t.Run("drops matches without a start time", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{
			"matches": [
				{"map_type": 9, "players": [{"profile_id": 123, "team": 1}]},
				{
					"started": 1700000000,
					"finished": 1700000600,
					"map_type": 9,
					"players": [{"profile_id": 123, "team": 1, "won": true}]
				}
			],
			"total_count": 2
		}`)

		page, err := MatchesResponseToGamesPage(context.Background(), data, 200)
		require.NoError(t, err)
		require.Len(t, page.Games, 1)
		require.Equal(t, 2, page.TotalCount)
	})

	t.Run("defaults total count to parsed games", func(t *testing.T) {
		t.Parallel()

		data := []byte(`{
			"matches": [
				{
					"started": 1700000000,
					"finished": 1700000600,
					"map_type": 9,
					"players": [{"profile_id": 123, "team": 1, "won": true}]
				}
			]
		}`)

		page, err := MatchesResponseToGamesPage(context.Background(), data, 200)
		require.NoError(t, err)
		require.Equal(t, 0, page.Offset)
		require.Equal(t, 1, page.TotalCount)
	})

	t.Run("rejects non-200 status codes", func(t *testing.T) {
		t.Parallel()

		_, err := MatchesResponseToGamesPage(context.Background(), []byte(`{}`), 429)
		require.Error(t, err)
	})

	t.Run("rejects malformed JSON", func(t *testing.T) {
		t.Parallel()

		_, err := MatchesResponseToGamesPage(context.Background(), []byte(`{"matches": [`), 200)
		require.Error(t, err)
	})
}
