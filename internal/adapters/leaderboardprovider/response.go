package leaderboardprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/grindheim/ladderlight/internal/domain"
	e "github.com/grindheim/ladderlight/internal/errors"
	"github.com/grindheim/ladderlight/internal/reporting"
)

type leaderboardResponse struct {
	Leaderboard []apiLadderEntry `json:"leaderboard"`
}

type apiLadderEntry struct {
	ProfileID     *int64  `json:"profile_id"`
	Name          *string `json:"name"`
	Clan          *string `json:"clan"`
	Rank          *int    `json:"rank"`
	Rating        *int    `json:"rating"`
	HighestRating *int    `json:"highest_rating"`
	Streak        *int    `json:"streak"`
	Wins          *int    `json:"wins"`
	Losses        *int    `json:"losses"`
}

// LeaderboardResponseToEntry converts the upstream JSON payload into the
// first matching ladder entry. An empty result maps to ErrPlayerNotFound.
func LeaderboardResponseToEntry(ctx context.Context, data []byte, statusCode int) (*domain.LadderEntry, error) {
	if statusCode == http.StatusNotFound {
		return nil, domain.ErrPlayerNotFound
	}
	if statusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: leaderboard API ratelimit exceeded", e.RatelimitExceededError)
	}
	if statusCode != http.StatusOK {
		err := fmt.Errorf("%w: leaderboard API returned status %d", e.APIServerError, statusCode)
		reporting.Report(ctx, err, map[string]string{
			"statusCode": fmt.Sprint(statusCode),
			"data":       string(data),
		})
		return nil, err
	}

	var response leaderboardResponse
	if err := json.Unmarshal(data, &response); err != nil {
		err := fmt.Errorf("%w: failed to unmarshal leaderboard response: %w", e.APIServerError, err)
		reporting.Report(ctx, err, map[string]string{
			"data": string(data),
		})
		return nil, err
	}

	if len(response.Leaderboard) == 0 {
		return nil, domain.ErrPlayerNotFound
	}

	raw := response.Leaderboard[0]
	if raw.ProfileID == nil {
		err := fmt.Errorf("leaderboard entry is missing profile_id")
		reporting.Report(ctx, err, map[string]string{
			"data": string(data),
		})
		return nil, err
	}

	entry := &domain.LadderEntry{
		ProfileID: domain.ProfileID(*raw.ProfileID),
	}
	if raw.Name != nil {
		entry.Name = *raw.Name
	}
	if raw.Clan != nil {
		entry.Clan = *raw.Clan
	}
	if raw.Rank != nil {
		entry.Rank = *raw.Rank
	}
	if raw.Rating != nil {
		entry.Rating = *raw.Rating
	}
	if raw.HighestRating != nil {
		entry.HighestRating = *raw.HighestRating
	}
	if raw.Streak != nil {
		entry.Streak = *raw.Streak
	}
	if raw.Wins != nil {
		entry.Wins = *raw.Wins
	}
	if raw.Losses != nil {
		entry.Losses = *raw.Losses
	}

	return entry, nil
}
