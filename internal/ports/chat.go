package ports

import (
	"fmt"
	"strings"
	"time"

	"github.com/grindheim/ladderlight/internal/domain"
)

// Chat output is a single line of plain text, meant to be relayed verbatim
// by a chat bot.

func formatChatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	if hours > 0 {
		return fmt.Sprintf("%dh%02dm", hours, minutes)
	}
	return fmt.Sprintf("%dm", minutes)
}

func FormatRankChat(entry *domain.LadderEntry) string {
	name := entry.Name
	if entry.Clan != "" {
		name = fmt.Sprintf("[%s] %s", entry.Clan, name)
	}
	return fmt.Sprintf("%s is rank #%d with %d rating (peak %d), %dW/%dL",
		name, entry.Rank, entry.Rating, entry.HighestRating, entry.Wins, entry.Losses)
}

func FormatWinRateChat(stats domain.WinRateStats) string {
	if stats.GamesCount == 0 && stats.PendingGames == 0 {
		return "No games found"
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "%d games: %dW/%dL (%.1f%%)",
		stats.GamesCount, stats.WinsCount, stats.LossesCount, stats.WinRate)
	if stats.Duration > 0 {
		fmt.Fprintf(&sb, ", %s played", formatChatDuration(stats.Duration))
	}
	if stats.PendingGames > 0 {
		fmt.Fprintf(&sb, ", %d in progress", stats.PendingGames)
	}
	return sb.String()
}

func FormatLastMatchChat(game *domain.GameRecord, subjectIDs []domain.ProfileID, now time.Time) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Last match on %s, started %s ago", game.Map, formatChatDuration(now.Sub(game.StartedAt)))

	if !game.Finished() {
		sb.WriteString(", still in progress")
		return sb.String()
	}

	fmt.Fprintf(&sb, ", lasted %s", formatChatDuration(game.Duration))

	if _, subject := game.TeamOf(subjectIDs); subject != nil {
		switch subject.Result {
		case domain.ResultWin:
			fmt.Fprintf(&sb, ", won as %s", subject.Civilization)
		case domain.ResultLoss:
			fmt.Fprintf(&sb, ", lost as %s", subject.Civilization)
		}
	}
	return sb.String()
}
