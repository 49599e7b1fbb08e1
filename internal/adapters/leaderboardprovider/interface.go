package leaderboardprovider

import (
	"context"
	"net/http"

	"github.com/grindheim/ladderlight/internal/domain"
)

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Leaderboard looks up ranked ladder entries from the upstream service.
type Leaderboard interface {
	GetEntryByProfileID(ctx context.Context, leaderboardID int, profileID domain.ProfileID) (*domain.LadderEntry, error)
	GetEntryByName(ctx context.Context, leaderboardID int, name string) (*domain.LadderEntry, error)
	GetEntryByRank(ctx context.Context, leaderboardID int, rank int) (*domain.LadderEntry, error)
}
