package app

import (
	"testing"
	"time"

	"github.com/grindheim/ladderlight/internal/domain"
	"github.com/grindheim/ladderlight/internal/domaintest"
	"github.com/stretchr/testify/require"
)

func TestGetLastMatch(t *testing.T) {
	t.Parallel()

	t.Run("returns the newest game across profiles", func(t *testing.T) {
		t.Parallel()

		api := newFakeLadderAPI()
		api.pages[1] = [][]domain.GameRecord{{
			domaintest.NewGameBuilder(now.Add(-2 * time.Hour)).OnMap("older").Build(),
		}}
		api.pages[2] = [][]domain.GameRecord{{
			domaintest.NewGameBuilder(now.Add(-1 * time.Hour)).OnMap("newest").Build(),
		}}

		getLastMatch := BuildGetLastMatch(BuildEnumerateGames(api))

		game, err := getLastMatch(t.Context(), []domain.ProfileID{1, 2})
		require.NoError(t, err)
		require.Equal(t, "newest", game.Map)
	})

	t.Run("only the first pages are fetched", func(t *testing.T) {
		t.Parallel()

		api := newFakeLadderAPI()
		api.pages[1] = [][]domain.GameRecord{
			{domaintest.NewGameBuilder(now).Build()},
			{domaintest.NewGameBuilder(now.Add(-1 * time.Hour)).Build()},
		}

		getLastMatch := BuildGetLastMatch(BuildEnumerateGames(api))

		_, err := getLastMatch(t.Context(), []domain.ProfileID{1})
		require.NoError(t, err)

		calls := api.callsFor(1)
		require.Len(t, calls, 1)
		require.Equal(t, 1, calls[0].page)
	})

	t.Run("no games is ErrNoGames", func(t *testing.T) {
		t.Parallel()

		api := newFakeLadderAPI()
		getLastMatch := BuildGetLastMatch(BuildEnumerateGames(api))

		_, err := getLastMatch(t.Context(), []domain.ProfileID{1})
		require.ErrorIs(t, err, domain.ErrNoGames)
	})

	t.Run("rejects invalid profile ids", func(t *testing.T) {
		t.Parallel()

		api := newFakeLadderAPI()
		getLastMatch := BuildGetLastMatch(BuildEnumerateGames(api))

		_, err := getLastMatch(t.Context(), []domain.ProfileID{0})
		require.ErrorIs(t, err, domain.ErrInvalidProfileID)
	})
}
