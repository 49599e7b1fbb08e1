package ports

import (
	"context"
	"fmt"

	"github.com/grindheim/ladderlight/internal/app"
	"github.com/grindheim/ladderlight/internal/domain"
)

// subjectProfileIDs resolves who a query is about: explicit profile_ids
// when given, otherwise the caller's registered alias.
func subjectProfileIDs(ctx context.Context, rawProfileIDs, userID string, resolveAlias app.ResolveAlias) ([]domain.ProfileID, error) {
	if rawProfileIDs != "" {
		return parseProfileIDs(rawProfileIDs)
	}

	if userID == "" {
		return nil, fmt.Errorf("%w: no profile ids given and no user id to resolve", domain.ErrInvalidProfileID)
	}

	alias, err := resolveAlias(ctx, userID)
	if err != nil {
		return nil, err
	}
	return alias.ProfileIDs, nil
}
