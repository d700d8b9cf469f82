package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

var rankMedals = []string{"🥇", "🥈", "🥉"}

// HandleScore handles /score, /scores and /show. Anyone may ask for the
// scoreboard; non-admins asking inside a shared chat get it delivered
// privately so the group is not spammed.
func (h *BotHandler) HandleScore(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.clearPrompt(update)

	msg := update.Message
	chatID := msg.Chat.ID

	role, ref := h.resolveRole(ctx, msg.From.ID)

	// A bound admin always sees their own leaderboard; everyone else the
	// one bound to the current chat
	target := chatID
	if role == domain.RoleLeaderboardAdmin {
		target = ref.ID
	}

	board, err := h.service.GetLeaderboard(ctx, target)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.BoardNotFound))
			return
		}
		h.logger.Error("failed to load leaderboard", "leaderboard_id", target, "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}

	text := h.renderScoreboard(board)

	replyChat := chatID
	if role == domain.RoleNone && !isPrivate(msg) {
		replyChat = msg.From.ID
	}
	h.sendText(ctx, replyChat, text)
}

// renderScoreboard renders the standings: top three medal-marked, the rest
// with their ordinal, tied scores in insertion order
func (h *BotHandler) renderScoreboard(board *domain.Leaderboard) string {
	standings := domain.Standings(board)
	if len(standings) == 0 {
		return h.localizer.MustLocalize(locale.ScoreEmpty)
	}

	var sb strings.Builder
	sb.WriteString(h.localizer.MustLocalizeWithTemplate(locale.ScoreTitle, board.Name) + "\n\n")
	for i, group := range standings {
		marker := fmt.Sprintf("%d.", i+1)
		if i < len(rankMedals) {
			marker = rankMedals[i]
		}
		sb.WriteString(fmt.Sprintf("%s %s: %d\n", marker, group.Name, group.Score))
	}
	return sb.String()
}
