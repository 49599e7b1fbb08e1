package leaderboardprovider

import (
	"context"
	"fmt"

	"github.com/grindheim/ladderlight/internal/adapters/cache"
	"github.com/grindheim/ladderlight/internal/domain"
)

type cachedLeaderboard struct {
	leaderboard Leaderboard
	entryCache  cache.Cache[*domain.LadderEntry]
}

// NewCachedLeaderboard wraps a Leaderboard so that concurrent and repeated
// lookups of the same entry only hit the upstream service once per TTL.
func NewCachedLeaderboard(leaderboard Leaderboard, entryCache cache.Cache[*domain.LadderEntry]) Leaderboard {
	return &cachedLeaderboard{
		leaderboard: leaderboard,
		entryCache:  entryCache,
	}
}

func (lb *cachedLeaderboard) GetEntryByProfileID(ctx context.Context, leaderboardID int, profileID domain.ProfileID) (*domain.LadderEntry, error) {
	key := fmt.Sprintf("profile:%d:%d", leaderboardID, profileID)
	return cache.GetOrCreate(ctx, lb.entryCache, key, func() (*domain.LadderEntry, error) {
		return lb.leaderboard.GetEntryByProfileID(ctx, leaderboardID, profileID)
	})
}

func (lb *cachedLeaderboard) GetEntryByName(ctx context.Context, leaderboardID int, name string) (*domain.LadderEntry, error) {
	key := fmt.Sprintf("name:%d:%s", leaderboardID, name)
	return cache.GetOrCreate(ctx, lb.entryCache, key, func() (*domain.LadderEntry, error) {
		return lb.leaderboard.GetEntryByName(ctx, leaderboardID, name)
	})
}

func (lb *cachedLeaderboard) GetEntryByRank(ctx context.Context, leaderboardID int, rank int) (*domain.LadderEntry, error) {
	key := fmt.Sprintf("rank:%d:%d", leaderboardID, rank)
	return cache.GetOrCreate(ctx, lb.entryCache, key, func() (*domain.LadderEntry, error) {
		return lb.leaderboard.GetEntryByRank(ctx, leaderboardID, rank)
	})
}
