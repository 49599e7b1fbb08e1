package ports

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/grindheim/ladderlight/internal/app"
	"github.com/grindheim/ladderlight/internal/logging"
	"github.com/grindheim/ladderlight/internal/metadata"
	"github.com/grindheim/ladderlight/internal/reporting"
)

type rankResponse struct {
	Success       bool   `json:"success"`
	ProfileID     int64  `json:"profileId"`
	Name          string `json:"name"`
	Clan          string `json:"clan,omitempty"`
	Rank          int    `json:"rank"`
	Rating        int    `json:"rating"`
	HighestRating int    `json:"highestRating"`
	Streak        int    `json:"streak"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
}

func MakeGetRankHandler(
	getRank app.GetRank,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStandardMiddleware("rank", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := r.URL.Query()
		userID := r.Header.Get("X-User-Id")
		ctx = reporting.SetUserIDInContext(ctx, userID)
		ctx = logging.AddMetaToContext(ctx,
			slog.String("name", query.Get("name")),
			slog.String("profileId", query.Get("profile_id")),
			slog.String("rank", query.Get("rank")),
		)

		leaderboardID := metadata.LeaderboardRandomMap1v1
		if raw := query.Get("leaderboard_id"); raw != "" {
			id, err := strconv.Atoi(raw)
			if err != nil {
				writeBadRequest(w, "Invalid leaderboard_id")
				return
			}
			leaderboardID = id
		}

		rankQuery := app.RankQuery{
			LeaderboardID: leaderboardID,
			Name:          query.Get("name"),
		}

		profileID, err := parseProfileID(query.Get("profile_id"))
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}
		rankQuery.ProfileID = profileID

		if raw := query.Get("rank"); raw != "" {
			rank, err := strconv.Atoi(raw)
			if err != nil || rank <= 0 {
				writeBadRequest(w, "Invalid rank")
				return
			}
			rankQuery.Rank = rank
		}

		entry, err := getRank(ctx, rankQuery)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		if query.Get("format") == "chat" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, FormatRankChat(entry))
			return
		}

		response := rankResponse{
			Success:       true,
			ProfileID:     int64(entry.ProfileID),
			Name:          entry.Name,
			Clan:          entry.Clan,
			Rank:          entry.Rank,
			Rating:        entry.Rating,
			HighestRating: entry.HighestRating,
			Streak:        entry.Streak,
			Wins:          entry.Wins,
			Losses:        entry.Losses,
		}

		marshalled, err := json.Marshal(response)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to marshal rank response: %w", err))
			writeErrorResponse(ctx, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(marshalled)
	}

	return middleware(handler)
}
