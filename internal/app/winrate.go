package app

import (
	"context"
	"math"
	"time"

	"github.com/grindheim/ladderlight/internal/domain"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

// pendingGameCutoff is how far back a game without a recorded duration is
// still believed to be in progress rather than abandoned by the upstream.
const pendingGameCutoff = 3 * time.Hour

// ComputeWinRate walks the merged match history of the subject profiles
// newest first and accumulates win rate statistics for either the current
// play session or an explicit time window.
type ComputeWinRate func(ctx context.Context, subjectIDs []domain.ProfileID, opponentID *domain.ProfileID, options domain.WinRateOptions) (domain.WinRateStats, error)

func BuildComputeWinRate(enumerateGames EnumerateGames, nowFunc func() time.Time) ComputeWinRate {
	tracer := otel.Tracer("ladderlight/app/winrate")

	return func(ctx context.Context, subjectIDs []domain.ProfileID, opponentID *domain.ProfileID, options domain.WinRateOptions) (domain.WinRateStats, error) {
		ctx, span := tracer.Start(ctx, "ComputeWinRate", trace.WithSpanKind(trace.SpanKindInternal))
		defer span.End()

		now := nowFunc()

		idleGap := options.IdleGap
		if idleGap <= 0 {
			idleGap = domain.DefaultIdleGap
		}

		// With an explicit window the opponent filter can be pushed to the
		// upstream. Session detection needs the unfiltered stream, since
		// games against other opponents still keep the session alive.
		var enumOpponentID *domain.ProfileID
		if options.Timespan > 0 {
			enumOpponentID = opponentID
		}

		seq, err := enumerateGames(ctx, subjectIDs, enumOpponentID, nil)
		if err != nil {
			return domain.WinRateStats{}, err
		}

		stats := domain.WinRateStats{
			ProfileIDs: subjectIDs,
			OpponentID: opponentID,
		}

		var lastGame time.Time
		for game := range seq {
			if options.Timespan > 0 {
				if now.Sub(game.StartedAt) > options.Timespan {
					break
				}
			} else if !lastGame.IsZero() && lastGame.Sub(game.StartedAt) > idleGap {
				// The pause before this game ended the session.
				break
			}

			// Session bookkeeping happens before any filtering: a skipped
			// team game still counts towards "am I still in a session".
			lastGame = game.StartedAt

			if game.PlayerCount() > 2 && !options.IncludeTeamGames {
				continue
			}

			subjectTeam, subject := game.TeamOf(subjectIDs)
			if subject == nil {
				continue
			}
			if opponentID != nil {
				opponentTeam, _ := game.TeamOf([]domain.ProfileID{*opponentID})
				if opponentTeam == -1 || opponentTeam == subjectTeam {
					continue
				}
			}

			if !game.Finished() {
				if now.Sub(game.StartedAt) <= pendingGameCutoff {
					stats.PendingGames++
					if stats.PendingGameStartedAt == nil {
						startedAt := game.StartedAt
						stats.PendingGameStartedAt = &startedAt
					}
				}
				continue
			}

			if options.Civilization != "" && subject.Civilization != options.Civilization {
				continue
			}
			if options.Map != "" && game.Map != options.Map {
				continue
			}

			stats.GamesCount++
			stats.Duration += game.Duration

			// Iteration is newest first, so the last written value is the
			// oldest counted game.
			startedAt := game.StartedAt
			stats.FirstGameAt = &startedAt
			if stats.LastGameAt == nil {
				endedAt := game.StartedAt.Add(game.Duration)
				stats.LastGameAt = &endedAt
			}

			switch subject.Result {
			case domain.ResultWin:
				stats.WinsCount++
			case domain.ResultLoss:
				stats.LossesCount++
			}
		}

		if stats.LossesCount > 0 {
			stats.WinRate = math.Round(1000*float64(stats.WinsCount)/float64(stats.WinsCount+stats.LossesCount)) / 10
		} else {
			// No losses reads as undefeated, also when no games counted.
			stats.WinRate = 100
		}

		return stats, nil
	}
}
