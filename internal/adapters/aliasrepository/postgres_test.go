package aliasrepository

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"

	"github.com/grindheim/ladderlight/internal/adapters/database"
	"github.com/grindheim/ladderlight/internal/domain"
)

func newPostgres(t *testing.T, db *sqlx.DB, schemaSuffix string, nowFunc func() time.Time) (*Postgres, string) {
	require.NotEmpty(t, schemaSuffix, "schemaSuffix must not be empty")
	schema := fmt.Sprintf("alias_repo_test_%s", schemaSuffix)

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db.MustExec(fmt.Sprintf("DROP SCHEMA IF EXISTS %s CASCADE", pq.QuoteIdentifier(schema)))

	migrator := database.NewDatabaseMigrator(db, logger)

	err := migrator.Migrate(t.Context(), schema)
	require.NoError(t, err)

	return NewPostgres(db, schema, nowFunc), schema
}

func TestPostgresStoreAlias(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping db tests in short mode.")
	}
	t.Parallel()

	t.Run("stores and returns a new alias", func(t *testing.T) {
		t.Parallel()
		ctx := t.Context()

		db, err := database.NewPostgresDatabase(database.LOCAL_CONNECTION_STRING)
		require.NoError(t, err)
		defer db.Close()

		now := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
		repo, _ := newPostgres(t, db, "store_new", func() time.Time { return now })

		alias, err := repo.StoreAlias(ctx, "discord:grind#0001", []domain.ProfileID{123, 456})
		require.NoError(t, err)

		require.NotEmpty(t, alias.ID)
		require.Equal(t, "discord:grind#0001", alias.ChatUser)
		require.Equal(t, []domain.ProfileID{123, 456}, alias.ProfileIDs)
		require.WithinDuration(t, now, alias.CreatedAt, time.Millisecond)
		require.WithinDuration(t, now, alias.UpdatedAt, time.Millisecond)
	})

	t.Run("re-registering replaces the profile ids", func(t *testing.T) {
		t.Parallel()
		ctx := t.Context()

		db, err := database.NewPostgresDatabase(database.LOCAL_CONNECTION_STRING)
		require.NoError(t, err)
		defer db.Close()

		createdAt := time.Date(2025, 11, 3, 12, 0, 0, 0, time.UTC)
		now := createdAt
		repo, _ := newPostgres(t, db, "store_replace", func() time.Time { return now })

		first, err := repo.StoreAlias(ctx, "discord:grind#0001", []domain.ProfileID{123})
		require.NoError(t, err)

		now = createdAt.Add(1 * time.Hour)
		second, err := repo.StoreAlias(ctx, "discord:grind#0001", []domain.ProfileID{456, 789})
		require.NoError(t, err)

		require.Equal(t, first.ID, second.ID)
		require.Equal(t, []domain.ProfileID{456, 789}, second.ProfileIDs)
		require.WithinDuration(t, createdAt, second.CreatedAt, time.Millisecond)
		require.WithinDuration(t, now, second.UpdatedAt, time.Millisecond)
	})

	t.Run("rejects empty chat user", func(t *testing.T) {
		t.Parallel()
		ctx := t.Context()

		db, err := database.NewPostgresDatabase(database.LOCAL_CONNECTION_STRING)
		require.NoError(t, err)
		defer db.Close()

		repo, _ := newPostgres(t, db, "store_empty_user", time.Now)

		_, err = repo.StoreAlias(ctx, "", []domain.ProfileID{123})
		require.Error(t, err)
	})

	t.Run("rejects invalid profile ids", func(t *testing.T) {
		t.Parallel()
		ctx := t.Context()

		db, err := database.NewPostgresDatabase(database.LOCAL_CONNECTION_STRING)
		require.NoError(t, err)
		defer db.Close()

		repo, _ := newPostgres(t, db, "store_invalid_ids", time.Now)

		_, err = repo.StoreAlias(ctx, "discord:grind#0001", nil)
		require.ErrorIs(t, err, domain.ErrInvalidProfileID)

		_, err = repo.StoreAlias(ctx, "discord:grind#0001", []domain.ProfileID{-1})
		require.ErrorIs(t, err, domain.ErrInvalidProfileID)
	})
}

func TestPostgresGetAlias(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping db tests in short mode.")
	}
	t.Parallel()

	t.Run("returns a stored alias", func(t *testing.T) {
		t.Parallel()
		ctx := t.Context()

		db, err := database.NewPostgresDatabase(database.LOCAL_CONNECTION_STRING)
		require.NoError(t, err)
		defer db.Close()

		repo, _ := newPostgres(t, db, "get_stored", time.Now)

		stored, err := repo.StoreAlias(ctx, "irc:grind", []domain.ProfileID{123})
		require.NoError(t, err)

		found, err := repo.GetAlias(ctx, "irc:grind")
		require.NoError(t, err)
		require.Equal(t, stored.ID, found.ID)
		require.Equal(t, stored.ProfileIDs, found.ProfileIDs)
	})

	t.Run("returns ErrAliasNotFound for unknown users", func(t *testing.T) {
		t.Parallel()
		ctx := t.Context()

		db, err := database.NewPostgresDatabase(database.LOCAL_CONNECTION_STRING)
		require.NoError(t, err)
		defer db.Close()

		repo, _ := newPostgres(t, db, "get_missing", time.Now)

		_, err = repo.GetAlias(ctx, "irc:unknown")
		require.ErrorIs(t, err, domain.ErrAliasNotFound)
	})
}
