package app

import (
	"context"
	"fmt"
	"iter"
	"time"

	"github.com/grindheim/ladderlight/internal/adapters/matchprovider"
	"github.com/grindheim/ladderlight/internal/domain"
	"github.com/grindheim/ladderlight/internal/logging"
	"golang.org/x/sync/errgroup"
)

// EnumerateGames merges the match histories of the given profiles into one
// lazy sequence ordered newest first. Pages are fetched from the upstream
// API only when the consumer runs past the games already loaded, so
// abandoning the sequence early leaves later pages unfetched.
type EnumerateGames func(ctx context.Context, profileIDs []domain.ProfileID, opponentID *domain.ProfileID, since *time.Time) (iter.Seq[domain.GameRecord], error)

// fetchState is the pagination cursor for a single profile's history.
// offset counts the games on strictly earlier pages, index points at the
// next unconsumed game of the current page.
type fetchState struct {
	profileID  domain.ProfileID
	page       int
	offset     int
	totalCount int
	games      []domain.GameRecord
	index      int
	exhausted  bool
}

func (s *fetchState) hasCurrent() bool {
	return !s.exhausted && s.index < len(s.games)
}

func (s *fetchState) current() domain.GameRecord {
	return s.games[s.index]
}

func BuildEnumerateGames(ladderAPI matchprovider.LadderAPI) EnumerateGames {
	return func(ctx context.Context, profileIDs []domain.ProfileID, opponentID *domain.ProfileID, since *time.Time) (iter.Seq[domain.GameRecord], error) {
		logger := logging.FromContext(ctx)

		if len(profileIDs) == 0 {
			return nil, fmt.Errorf("%w: no profile ids given", domain.ErrInvalidProfileID)
		}
		for _, profileID := range profileIDs {
			if !profileID.Valid() {
				return nil, fmt.Errorf("%w: %d", domain.ErrInvalidProfileID, profileID)
			}
		}
		if opponentID != nil && !opponentID.Valid() {
			return nil, fmt.Errorf("%w: opponent %d", domain.ErrInvalidProfileID, *opponentID)
		}

		states := make([]*fetchState, 0, len(profileIDs))
		for _, profileID := range profileIDs {
			states = append(states, &fetchState{profileID: profileID, page: 1})
		}

		// The first pages are independent, so fetch them all at once. A
		// failed fetch drops that profile from the merge rather than
		// failing the whole enumeration.
		var group errgroup.Group
		for _, state := range states {
			group.Go(func() error {
				page, err := ladderAPI.FetchGamesPage(ctx, state.profileID, opponentID, since, state.page)
				if err != nil {
					logger.WarnContext(ctx, "Dropping profile from merge after failed fetch",
						"profileId", int64(state.profileID), "page", state.page, "error", err.Error())
					state.exhausted = true
					return nil
				}
				state.games = page.Games
				state.totalCount = page.TotalCount
				return nil
			})
		}
		_ = group.Wait()

		seq := func(yield func(domain.GameRecord) bool) {
			for {
				// Refill every cursor that ran off its page but still has
				// games left upstream. Doing them in one fan-out avoids
				// serial round-trips when several profiles run out at the
				// same time.
				var refill []*fetchState
				for _, state := range states {
					if state.exhausted || state.index < len(state.games) {
						continue
					}
					if state.offset+state.index >= state.totalCount {
						state.exhausted = true
						continue
					}
					refill = append(refill, state)
				}

				if len(refill) > 0 {
					var group errgroup.Group
					for _, state := range refill {
						group.Go(func() error {
							page, err := ladderAPI.FetchGamesPage(ctx, state.profileID, opponentID, since, state.page+1)
							if err != nil {
								logger.WarnContext(ctx, "Dropping profile from merge after failed fetch",
									"profileId", int64(state.profileID), "page", state.page+1, "error", err.Error())
								state.exhausted = true
								return nil
							}
							if len(page.Games) == 0 {
								state.exhausted = true
								return nil
							}
							state.offset += len(state.games)
							state.games = page.Games
							state.page++
							state.index = 0
							return nil
						})
					}
					_ = group.Wait()
				}

				// Yield the newest game across all cursors. Strictly-after
				// comparison makes ties resolve to the earliest profile in
				// the input order.
				var best *fetchState
				for _, state := range states {
					if !state.hasCurrent() {
						continue
					}
					if best == nil || state.current().StartedAt.After(best.current().StartedAt) {
						best = state
					}
				}
				if best == nil {
					return
				}

				game := best.current()
				best.index++
				if !yield(game) {
					return
				}
			}
		}

		return seq, nil
	}
}
