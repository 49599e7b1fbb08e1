package app

import (
	"context"
	"fmt"

	"github.com/grindheim/ladderlight/internal/adapters/leaderboardprovider"
	"github.com/grindheim/ladderlight/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// RankQuery identifies a single ladder entry by exactly one of profile id,
// name or rank.
type RankQuery struct {
	LeaderboardID int

	ProfileID *domain.ProfileID
	Name      string
	Rank      int
}

func (q RankQuery) validate() error {
	selectors := 0
	if q.ProfileID != nil {
		if !q.ProfileID.Valid() {
			return fmt.Errorf("%w: %d", domain.ErrInvalidProfileID, *q.ProfileID)
		}
		selectors++
	}
	if q.Name != "" {
		selectors++
	}
	if q.Rank > 0 {
		selectors++
	}
	if selectors != 1 {
		return fmt.Errorf("%w: exactly one of profile id, name or rank must be given", domain.ErrInvalidProfileID)
	}
	return nil
}

type GetRank func(ctx context.Context, query RankQuery) (*domain.LadderEntry, error)

func BuildGetRank(leaderboard leaderboardprovider.Leaderboard) GetRank {
	tracer := otel.Tracer("ladderlight/app/rank")

	return func(ctx context.Context, query RankQuery) (*domain.LadderEntry, error) {
		ctx, span := tracer.Start(ctx, "GetRank", trace.WithSpanKind(trace.SpanKindInternal))
		defer span.End()

		if err := query.validate(); err != nil {
			return nil, err
		}

		switch {
		case query.ProfileID != nil:
			return leaderboard.GetEntryByProfileID(ctx, query.LeaderboardID, *query.ProfileID)
		case query.Name != "":
			return leaderboard.GetEntryByName(ctx, query.LeaderboardID, query.Name)
		default:
			return leaderboard.GetEntryByRank(ctx, query.LeaderboardID, query.Rank)
		}
	}
}
