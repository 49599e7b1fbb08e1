package matchprovider

import (
	"context"
	"net/http"
	"time"

	"github.com/grindheim/ladderlight/internal/domain"
)

type HttpClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// LadderAPI fetches one page of a profile's match history from the upstream
// ladder service. Pages are 1-based and ordered newest first.
type LadderAPI interface {
	FetchGamesPage(ctx context.Context, profileID domain.ProfileID, opponentID *domain.ProfileID, since *time.Time, page int) (*domain.GamesPage, error)
}
