package app

import (
	"context"

	"github.com/grindheim/ladderlight/internal/adapters/aliasrepository"
	"github.com/grindheim/ladderlight/internal/domain"
	"github.com/grindheim/ladderlight/internal/logging"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

type RegisterAlias func(ctx context.Context, chatUser string, profileIDs []domain.ProfileID) (domain.Alias, error)

type ResolveAlias func(ctx context.Context, chatUser string) (domain.Alias, error)

func BuildRegisterAlias(repo aliasrepository.AliasRepository) RegisterAlias {
	tracer := otel.Tracer("ladderlight/app/alias")

	return func(ctx context.Context, chatUser string, profileIDs []domain.ProfileID) (domain.Alias, error) {
		ctx, span := tracer.Start(ctx, "RegisterAlias", trace.WithSpanKind(trace.SpanKindInternal))
		defer span.End()

		logger := logging.FromContext(ctx)

		alias, err := repo.StoreAlias(ctx, chatUser, profileIDs)
		if err != nil {
			return domain.Alias{}, err
		}

		logger.InfoContext(ctx, "Registered alias", "chatUser", chatUser, "profiles", len(profileIDs))

		return alias, nil
	}
}

func BuildResolveAlias(repo aliasrepository.AliasRepository) ResolveAlias {
	tracer := otel.Tracer("ladderlight/app/alias")

	return func(ctx context.Context, chatUser string) (domain.Alias, error) {
		ctx, span := tracer.Start(ctx, "ResolveAlias", trace.WithSpanKind(trace.SpanKindInternal))
		defer span.End()

		return repo.GetAlias(ctx, chatUser)
	}
}
