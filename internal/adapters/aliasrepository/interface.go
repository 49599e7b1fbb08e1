package aliasrepository

import (
	"context"

	"github.com/grindheim/ladderlight/internal/domain"
)

type AliasRepository interface {
	StoreAlias(ctx context.Context, chatUser string, profileIDs []domain.ProfileID) (domain.Alias, error)
	GetAlias(ctx context.Context, chatUser string) (domain.Alias, error)
}
