package aliasrepository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/grindheim/ladderlight/internal/domain"
	e "github.com/grindheim/ladderlight/internal/errors"
	"github.com/grindheim/ladderlight/internal/reporting"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type Postgres struct {
	db      *sqlx.DB
	schema  string
	tracer  trace.Tracer
	nowFunc func() time.Time
}

func NewPostgres(db *sqlx.DB, schema string, nowFunc func() time.Time) *Postgres {
	tracer := otel.Tracer("ladderlight/aliasrepository/postgres")
	return &Postgres{
		db:      db,
		schema:  schema,
		tracer:  tracer,
		nowFunc: nowFunc,
	}
}

type dbAlias struct {
	ID         string        `db:"id"`
	ChatUser   string        `db:"chat_user"`
	ProfileIDs pq.Int64Array `db:"profile_ids"`
	CreatedAt  time.Time     `db:"created_at"`
	UpdatedAt  time.Time     `db:"updated_at"`
}

func (a dbAlias) toDomain() domain.Alias {
	profileIDs := make([]domain.ProfileID, 0, len(a.ProfileIDs))
	for _, id := range a.ProfileIDs {
		profileIDs = append(profileIDs, domain.ProfileID(id))
	}

	return domain.Alias{
		ID:         a.ID,
		ChatUser:   a.ChatUser,
		ProfileIDs: profileIDs,
		CreatedAt:  a.CreatedAt,
		UpdatedAt:  a.UpdatedAt,
	}
}

func (p *Postgres) StoreAlias(ctx context.Context, chatUser string, profileIDs []domain.ProfileID) (domain.Alias, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.StoreAlias")
	defer span.End()

	if chatUser == "" {
		err := fmt.Errorf("%w: chatUser is empty", e.APIClientError)
		reporting.Report(ctx, err)
		return domain.Alias{}, err
	}
	if len(profileIDs) == 0 {
		err := fmt.Errorf("%w: no profile ids to register", domain.ErrInvalidProfileID)
		return domain.Alias{}, err
	}
	for _, profileID := range profileIDs {
		if !profileID.Valid() {
			return domain.Alias{}, fmt.Errorf("%w: %d", domain.ErrInvalidProfileID, profileID)
		}
	}

	now := p.nowFunc()

	rawIDs := make(pq.Int64Array, 0, len(profileIDs))
	for _, id := range profileIDs {
		rawIDs = append(rawIDs, int64(id))
	}

	var alias dbAlias
	err := p.db.QueryRowxContext(
		ctx,
		fmt.Sprintf(`INSERT INTO %s.aliases
		(id, chat_user, profile_ids, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $4)
		ON CONFLICT (chat_user)
		DO UPDATE SET
			profile_ids = EXCLUDED.profile_ids,
			updated_at = EXCLUDED.updated_at
		RETURNING id, chat_user, profile_ids, created_at, updated_at`,
			pq.QuoteIdentifier(p.schema)),
		uuid.New().String(),
		chatUser,
		rawIDs,
		now,
	).StructScan(&alias)
	if err != nil {
		err := fmt.Errorf("failed to insert or update alias: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"chatUser": chatUser,
		})
		return domain.Alias{}, err
	}

	return alias.toDomain(), nil
}

func (p *Postgres) GetAlias(ctx context.Context, chatUser string) (domain.Alias, error) {
	ctx, span := p.tracer.Start(ctx, "Postgres.GetAlias")
	defer span.End()

	var alias dbAlias
	err := p.db.QueryRowxContext(
		ctx,
		fmt.Sprintf(`SELECT id, chat_user, profile_ids, created_at, updated_at
		FROM %s.aliases
		WHERE chat_user = $1`,
			pq.QuoteIdentifier(p.schema)),
		chatUser,
	).StructScan(&alias)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Alias{}, domain.ErrAliasNotFound
	}
	if err != nil {
		err := fmt.Errorf("failed to get alias: %w", err)
		reporting.Report(ctx, err, map[string]string{
			"chatUser": chatUser,
		})
		return domain.Alias{}, err
	}

	return alias.toDomain(), nil
}
