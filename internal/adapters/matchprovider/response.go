package matchprovider

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"
	"time"

	"github.com/grindheim/ladderlight/internal/domain"
	e "github.com/grindheim/ladderlight/internal/errors"
	"github.com/grindheim/ladderlight/internal/metadata"
	"github.com/grindheim/ladderlight/internal/reporting"
)

type matchesResponse struct {
	Matches    []apiMatch `json:"matches"`
	Offset     *int       `json:"offset"`
	TotalCount *int       `json:"total_count"`
}

type apiMatch struct {
	Started  *int64      `json:"started"`
	Finished *int64      `json:"finished"`
	MapType  *int        `json:"map_type"`
	Players  []apiPlayer `json:"players"`
}

type apiPlayer struct {
	ProfileID *int64 `json:"profile_id"`
	Civ       *int   `json:"civ"`
	Team      *int   `json:"team"`
	Won       *bool  `json:"won"`
}

// MatchesResponseToGamesPage converts the upstream JSON payload into a
// domain GamesPage. Matches without a start time are dropped.
func MatchesResponseToGamesPage(ctx context.Context, data []byte, statusCode int) (*domain.GamesPage, error) {
	if statusCode == http.StatusTooManyRequests {
		return nil, fmt.Errorf("%w: ladder API ratelimit exceeded", e.RatelimitExceededError)
	}
	if statusCode != http.StatusOK {
		err := fmt.Errorf("%w: ladder API returned status %d", e.APIServerError, statusCode)
		reporting.Report(ctx, err, map[string]string{
			"statusCode": fmt.Sprint(statusCode),
			"data":       string(data),
		})
		return nil, err
	}

	var response matchesResponse
	if err := json.Unmarshal(data, &response); err != nil {
		err := fmt.Errorf("%w: failed to unmarshal ladder API response: %w", e.APIServerError, err)
		reporting.Report(ctx, err, map[string]string{
			"data": string(data),
		})
		return nil, err
	}

	games := make([]domain.GameRecord, 0, len(response.Matches))
	for _, match := range response.Matches {
		if match.Started == nil {
			continue
		}
		games = append(games, apiMatchToGameRecord(match))
	}

	offset := 0
	if response.Offset != nil {
		offset = *response.Offset
	}
	totalCount := len(games)
	if response.TotalCount != nil {
		totalCount = *response.TotalCount
	}

	return &domain.GamesPage{
		Games:      games,
		Offset:     offset,
		TotalCount: totalCount,
	}, nil
}

func apiMatchToGameRecord(match apiMatch) domain.GameRecord {
	startedAt := time.Unix(*match.Started, 0).UTC()

	var duration time.Duration
	if match.Finished != nil && *match.Finished > *match.Started {
		duration = time.Duration(*match.Finished-*match.Started) * time.Second
	}

	mapName := "Unknown"
	if match.MapType != nil {
		if name, ok := metadata.MapName(*match.MapType); ok {
			mapName = name
		} else {
			mapName = fmt.Sprintf("Map #%d", *match.MapType)
		}
	}

	// Group participants into teams, ordered by upstream team number.
	// Players without a team number play alone.
	teamNumbers := make([]int, 0, 2)
	participantsByTeam := make(map[int][]domain.Participant)
	soloTeam := -1
	for _, player := range match.Players {
		if player.ProfileID == nil {
			continue
		}

		teamNumber := soloTeam
		if player.Team != nil {
			teamNumber = *player.Team
		} else {
			soloTeam--
		}

		if _, seen := participantsByTeam[teamNumber]; !seen {
			teamNumbers = append(teamNumbers, teamNumber)
		}
		participantsByTeam[teamNumber] = append(participantsByTeam[teamNumber], apiPlayerToParticipant(player))
	}
	sort.Ints(teamNumbers)

	teams := make([]domain.Team, 0, len(teamNumbers))
	for _, teamNumber := range teamNumbers {
		teams = append(teams, participantsByTeam[teamNumber])
	}

	return domain.GameRecord{
		StartedAt: startedAt,
		Duration:  duration,
		Map:       mapName,
		Teams:     teams,
	}
}

func apiPlayerToParticipant(player apiPlayer) domain.Participant {
	civilization := "Unknown"
	if player.Civ != nil {
		if name, ok := metadata.CivilizationName(*player.Civ); ok {
			civilization = name
		} else {
			civilization = fmt.Sprintf("Civ #%d", *player.Civ)
		}
	}

	result := domain.ResultUndetermined
	if player.Won != nil {
		if *player.Won {
			result = domain.ResultWin
		} else {
			result = domain.ResultLoss
		}
	}

	return domain.Participant{
		ProfileID:    domain.ProfileID(*player.ProfileID),
		Civilization: civilization,
		Result:       result,
	}
}
