package ports

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/grindheim/ladderlight/internal/app"
	"github.com/grindheim/ladderlight/internal/domain"
	"github.com/grindheim/ladderlight/internal/logging"
	"github.com/grindheim/ladderlight/internal/reporting"
)

type registerAliasRequest struct {
	ProfileIDs []int64 `json:"profileIds"`
}

type aliasResponse struct {
	Success    bool    `json:"success"`
	ChatUser   string  `json:"chatUser"`
	ProfileIDs []int64 `json:"profileIds"`
}

func MakeRegisterAliasHandler(
	registerAlias app.RegisterAlias,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStandardMiddleware("aliases", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := r.Header.Get("X-User-Id")
		ctx = reporting.SetUserIDInContext(ctx, userID)
		ctx = logging.AddMetaToContext(ctx, slog.String("userId", userID))

		if userID == "" {
			writeBadRequest(w, "Missing X-User-Id header")
			return
		}

		var request registerAliasRequest
		if err := json.NewDecoder(r.Body).Decode(&request); err != nil {
			writeBadRequest(w, "Invalid request body")
			return
		}

		profileIDs := make([]domain.ProfileID, 0, len(request.ProfileIDs))
		for _, id := range request.ProfileIDs {
			profileIDs = append(profileIDs, domain.ProfileID(id))
		}

		alias, err := registerAlias(ctx, userID, profileIDs)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		writeAliasResponse(ctx, w, alias)
	}

	return middleware(handler)
}

func MakeGetAliasHandler(
	resolveAlias app.ResolveAlias,
	allowedOrigins *DomainSuffixes,
	rootLogger *slog.Logger,
	sentryMiddleware func(http.HandlerFunc) http.HandlerFunc,
) http.HandlerFunc {
	middleware := buildStandardMiddleware("aliases", allowedOrigins, rootLogger, sentryMiddleware)

	handler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		userID := r.Header.Get("X-User-Id")
		ctx = reporting.SetUserIDInContext(ctx, userID)
		ctx = logging.AddMetaToContext(ctx, slog.String("userId", userID))

		if userID == "" {
			writeBadRequest(w, "Missing X-User-Id header")
			return
		}

		alias, err := resolveAlias(ctx, userID)
		if err != nil {
			writeErrorResponse(ctx, w, err)
			return
		}

		writeAliasResponse(ctx, w, alias)
	}

	return middleware(handler)
}

func writeAliasResponse(ctx context.Context, w http.ResponseWriter, alias domain.Alias) {
	profileIDs := make([]int64, 0, len(alias.ProfileIDs))
	for _, id := range alias.ProfileIDs {
		profileIDs = append(profileIDs, int64(id))
	}

	marshalled, err := json.Marshal(aliasResponse{
		Success:    true,
		ChatUser:   alias.ChatUser,
		ProfileIDs: profileIDs,
	})
	if err != nil {
		reporting.Report(ctx, fmt.Errorf("failed to marshal alias response: %w", err))
		writeErrorResponse(ctx, w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(marshalled)
}
