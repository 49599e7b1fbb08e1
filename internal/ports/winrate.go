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
	"github.com/grindheim/ladderlight/internal/metadata"
	"github.com/grindheim/ladderlight/internal/reporting"
)

type winRateResponse struct {
	Success              bool       `json:"success"`
	GamesCount           int        `json:"gamesCount"`
	WinsCount            int        `json:"winsCount"`
	LossesCount          int        `json:"lossesCount"`
	WinRate              float64    `json:"winRate"`
	DurationSeconds      int        `json:"durationSeconds"`
	FirstGameAt          *time.Time `json:"firstGameAt,omitempty"`
	LastGameAt           *time.Time `json:"lastGameAt,omitempty"`
	PendingGames         int        `json:"pendingGames"`
	PendingGameStartedAt *time.Time `json:"pendingGameStartedAt,omitempty"`
}

func MakeGetWinRateHandler(
	computeWinRate app.ComputeWinRate,
	resolveAlias app.ResolveAlias,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStandardMiddleware("winrate", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		query := r.URL.Query()
		userID := r.Header.Get("X-User-Id")
		ctx = reporting.SetUserIDInContext(ctx, userID)
		ctx = logging.AddMetaToContext(ctx,
			slog.String("profileIds", query.Get("profile_ids")),
			slog.String("opponentId", query.Get("opponent_id")),
		)
		ctx = reporting.AddExtrasToContext(ctx, map[string]string{
			"rawQuery": r.URL.RawQuery,
		})

		subjectIDs, err := subjectProfileIDs(ctx, query.Get("profile_ids"), userID, resolveAlias)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		opponentID, err := parseProfileID(query.Get("opponent_id"))
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		options := domain.WinRateOptions{}

		if raw := query.Get("civilization"); raw != "" {
			civ, ok := metadata.NormalizeCivilization(raw)
			if !ok {
				writeBadRequest(w, fmt.Sprintf("Unknown civilization %q", raw))
				return
			}
			options.Civilization = civ
		}
		if raw := query.Get("map"); raw != "" {
			mapName, ok := metadata.NormalizeMap(raw)
			if !ok {
				writeBadRequest(w, fmt.Sprintf("Unknown map %q", raw))
				return
			}
			options.Map = mapName
		}

		options.IdleGap, err = parseSeconds(query.Get("idle_gap"))
		if err != nil {
			writeBadRequest(w, "Invalid idle_gap")
			return
		}
		options.Timespan, err = parseSeconds(query.Get("timespan"))
		if err != nil {
			writeBadRequest(w, "Invalid timespan")
			return
		}
		options.IncludeTeamGames, err = parseBool(query.Get("include_team_games"))
		if err != nil {
			writeBadRequest(w, "Invalid include_team_games")
			return
		}

		stats, err := computeWinRate(ctx, subjectIDs, opponentID, options)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		if query.Get("format") == "chat" {
			w.Header().Set("Content-Type", "text/plain; charset=utf-8")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintln(w, FormatWinRateChat(stats))
			return
		}

		response := winRateResponse{
			Success:              true,
			GamesCount:           stats.GamesCount,
			WinsCount:            stats.WinsCount,
			LossesCount:          stats.LossesCount,
			WinRate:              stats.WinRate,
			DurationSeconds:      int(stats.Duration.Seconds()),
			FirstGameAt:          stats.FirstGameAt,
			LastGameAt:           stats.LastGameAt,
			PendingGames:         stats.PendingGames,
			PendingGameStartedAt: stats.PendingGameStartedAt,
		}

		marshalled, err := json.Marshal(response)
		if err != nil {
			reporting.Report(ctx, fmt.Errorf("failed to marshal win rate response: %w", err))
			writeErrorResponse(ctx, w, err)
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write(marshalled)
	}

	return middleware(handler)
}
