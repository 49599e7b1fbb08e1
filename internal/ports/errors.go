package ports

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/grindheim/ladderlight/internal/domain"
	e "github.com/grindheim/ladderlight/internal/errors"
	"github.com/grindheim/ladderlight/internal/logging"
)

func writeErrorResponse(ctx context.Context, w http.ResponseWriter, err error) {
	statusCode := http.StatusInternalServerError
	cause := "Internal server error"

	switch {
	case errors.Is(err, domain.ErrInvalidProfileID):
		statusCode = http.StatusBadRequest
		cause = "Invalid profile id"
	case errors.Is(err, domain.ErrPlayerNotFound):
		statusCode = http.StatusNotFound
		cause = "Player not found"
	case errors.Is(err, domain.ErrAliasNotFound):
		statusCode = http.StatusNotFound
		cause = "No profiles registered for this user"
	case errors.Is(err, domain.ErrNoGames):
		statusCode = http.StatusNotFound
		cause = "No games found"
	case errors.Is(err, domain.ErrTemporarilyUnavailable):
		statusCode = http.StatusServiceUnavailable
		cause = "Temporarily unavailable"
	case errors.Is(err, e.RatelimitExceededError):
		statusCode = http.StatusTooManyRequests
		cause = "Ratelimit exceeded"
	case errors.Is(err, e.APIClientError):
		statusCode = http.StatusBadRequest
		cause = "Bad request"
	}

	logging.FromContext(ctx).InfoContext(ctx, "Writing error response", "statusCode", statusCode, "error", err.Error())

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	fmt.Fprintf(w, `{"success":false,"cause":%q}`, cause)
}

func writeBadRequest(w http.ResponseWriter, cause string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadRequest)
	fmt.Fprintf(w, `{"success":false,"cause":%q}`, cause)
}
