package bot

import (
	"context"
	"errors"
	"strings"

	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// commandArgs returns the free text following the command word
func commandArgs(text string) string {
	parts := strings.SplitN(text, " ", 2)
	if len(parts) < 2 {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// HandleAdmin handles /admin <secret>. A valid secret binds the sender to
// the credential's role; a later /admin with a different valid secret
// overwrites the binding (last write wins).
func (h *BotHandler) HandleAdmin(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.clearPrompt(update)

	msg := update.Message
	chatID := msg.Chat.ID

	secret := commandArgs(msg.Text)
	if secret == "" {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.AdminUsage))
		return
	}

	if msg.From.IsBot {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.AdminBotsRejected))
		return
	}

	binding, err := h.registry.Bind(ctx, msg.From.ID, displayName(msg.From), secret)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrAuthenticationFailed):
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.AdminIncorrectPassword))
		case errors.Is(err, domain.ErrInvalidArgument):
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.AdminUsage))
		default:
			h.logger.Error("failed to bind credential", "user_id", msg.From.ID, "error", err)
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		}
		return
	}

	if binding.Role == domain.RoleMaster {
		h.sendText(ctx, chatID, h.localizer.MustLocalizeWithTemplate(locale.AdminNowMaster, binding.Name))
	} else {
		h.sendText(ctx, chatID, h.localizer.MustLocalizeWithTemplate(
			locale.AdminNowLeaderboardAdmin, binding.Name, binding.Leaderboard.Name))
	}

	h.displayHelp(ctx, update)
}
