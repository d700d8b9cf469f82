package bot

import (
	"context"
	"encoding/json"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleDebug dumps the persisted collections to the configured debug
// user. Disabled unless DEBUG_USER_ID is set, and silently ignored for
// anyone else.
func (h *BotHandler) HandleDebug(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	if h.config.DebugUserID == 0 || update.Message.From.ID != h.config.DebugUserID {
		h.logger.Debug("ignoring debug request", "user_id", update.Message.From.ID)
		return
	}
	h.clearPrompt(update)
	chatID := update.Message.Chat.ID

	admins, err := h.store.LoadAdmins(ctx)
	if err != nil {
		h.logger.Error("failed to load admins for debug dump", "error", err)
		return
	}
	credentials, err := h.store.LoadCredentials(ctx)
	if err != nil {
		h.logger.Error("failed to load credentials for debug dump", "error", err)
		return
	}
	leaderboards, err := h.store.LoadLeaderboards(ctx)
	if err != nil {
		h.logger.Error("failed to load leaderboards for debug dump", "error", err)
		return
	}

	for name, doc := range map[string]interface{}{
		"admins":       admins,
		"credentials":  credentials,
		"leaderboards": leaderboards,
	} {
		body, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			h.logger.Error("failed to marshal debug dump", "collection", name, "error", err)
			continue
		}
		h.sendText(ctx, chatID, name+":\n"+string(body))
	}
}
