package ports

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/grindheim/ladderlight/internal/app"
	"github.com/grindheim/ladderlight/internal/domain"
	"github.com/grindheim/ladderlight/internal/logging"
	"github.com/grindheim/ladderlight/internal/reporting"
)

type lastMatchParticipant struct {
	ProfileID    int64  `json:"profileId"`
	Civilization string `json:"civilization"`
	Result       string `json:"result"`
}

type lastMatchResponse struct {
	Success         bool                     `json:"success"`
	StartedAt       time.Time                `json:"startedAt"`
	DurationSeconds int                      `json:"durationSeconds"`
	Finished        bool                     `json:"finished"`
	Map             string                   `json:"map"`
	Teams           [][]lastMatchParticipant `json:"teams"`
}

func resultString(result domain.GameResult) string {
	switch result {
	case domain.ResultWin:
		return "win"
	case domain.ResultLoss:
		return "loss"
	default:
		return "undetermined"
	}
}

func MakeGetLastMatchHandler(
	getLastMatch app.GetLastMatch,
	resolveAlias app.ResolveAlias,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStandardMiddleware("lastmatch", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := r.URL.Query()
		userID := r.Header.Get("X-User-Id")
		ctx = reporting.SetUserIDInContext(ctx, userID)
		ctx = logging.AddMetaToContext(ctx,
			slog.String("profileIds", query.Get("profile_ids")),
		)

		profileIDs, err := subjectProfileIDs(ctx, query.Get("profile_ids"), userID, resolveAlias)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		game, err := getLastMatch(ctx, profileIDs)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		if query.Get("format") == "chat" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, FormatLastMatchChat(game, profileIDs, time.Now()))
			return
		}

		teams := make([][]lastMatchParticipant, 0, len(game.Teams))
		for _, team := range game.Teams {
			participants := make([]lastMatchParticipant, 0, len(team))
			for _, participant := range team {
				participants = append(participants, lastMatchParticipant{
					ProfileID:    int64(participant.ProfileID),
					Civilization: participant.Civilization,
					Result:       resultString(participant.Result),
				})
			}
			teams = append(teams, participants)
		}

		response := lastMatchResponse{
			Success:         true,
			StartedAt:       game.StartedAt,
			DurationSeconds: int(game.Duration.Seconds()),
			Finished:        game.Finished(),
			Map:             game.Map,
			Teams:           teams,
		}

		marshalled, err := json.Marshal(response)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to marshal last match response: %w", err))
			writeErrorResponse(ctx, w, err)
			return
		}

		logging.FromContext(ctx).InfoContext(ctx, "Returning last match", "map", game.Map)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(marshalled)
	}

	return middleware(handler)
}
