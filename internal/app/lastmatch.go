package app

import (
	"context"

	"github.com/grindheim/ladderlight/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type GetLastMatch func(ctx context.Context, profileIDs []domain.ProfileID) (*domain.GameRecord, error)

// BuildGetLastMatch returns the newest game across the given profiles.
// Only the first element of the merged history is consumed, so at most one
// page per profile is fetched.
func BuildGetLastMatch(enumerateGames EnumerateGames) GetLastMatch {
	tracer := otel.Tracer("ladderlight/app/lastmatch")

	return func(ctx context.Context, profileIDs []domain.ProfileID) (*domain.GameRecord, error) {
		ctx, span := tracer.Start(ctx, "GetLastMatch", trace.WithSpanKind(trace.SpanKindInternal))
		defer span.End()

		seq, err := enumerateGames(ctx, profileIDs, nil, nil)
		if err != nil {
			return nil, err
		}

		for game := range seq {
			return &game, nil
		}

		return nil, domain.ErrNoGames
	}
}
