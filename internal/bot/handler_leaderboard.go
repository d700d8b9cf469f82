package bot

import (
	"context"
	"errors"

	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleNewLeaderboard handles /newleaderboard. Must be issued inside the
// group or channel the leaderboard belongs to; the generated admin password
// is delivered only in the requester's private chat, never echoed into the
// group.
func (h *BotHandler) HandleNewLeaderboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.clearPrompt(update)

	msg := update.Message
	chatID := msg.Chat.ID

	if isPrivate(msg) {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.NewBoardWrongContext))
		return
	}

	raw, board, err := h.service.CreateLeaderboard(ctx, chatID, msg.Chat.Title, msg.From.ID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUnauthorized):
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorMasterRequired))
		case errors.Is(err, domain.ErrAlreadyExists):
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.NewBoardAlreadyExists))
		default:
			h.logger.Error("failed to create leaderboard", "chat_id", chatID, "error", err)
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		}
		return
	}

	// Private delivery: the explanation plus a ready-to-forward /admin line
	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: msg.From.ID,
		Text:   h.localizer.MustLocalizeWithTemplate(locale.NewBoardSecretMessage, board.Name, raw),
	})
	if err != nil {
		h.logger.Error("failed to deliver secret privately", "user_id", msg.From.ID, "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.NewBoardSecretDeliverFailed))
		return
	}
	h.sendText(ctx, msg.From.ID, "/admin "+raw)

	h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.NewBoardCreated))
}

// HandleDeleteLeaderboard handles /deleteleaderboard. Deletion is never a
// single click: the handler only posts a confirm/cancel keyboard, the
// destructive step happens in the confirm callback after re-authorization.
func (h *BotHandler) HandleDeleteLeaderboard(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.clearPrompt(update)

	msg := update.Message
	chatID := msg.Chat.ID

	if isPrivate(msg) {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorWrongContext))
		return
	}

	role, _ := h.resolveRole(ctx, msg.From.ID)
	if role != domain.RoleMaster {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorMasterRequired))
		return
	}

	board, err := h.service.GetLeaderboard(ctx, chatID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.BoardNotFound))
			return
		}
		h.logger.Error("failed to load leaderboard", "chat_id", chatID, "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}

	kb := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: h.localizer.MustLocalize(locale.DeleteBoardConfirmButton), CallbackData: confirmDeleteToken(chatID)},
				{Text: h.localizer.MustLocalize(locale.DeleteBoardCancelButton), CallbackData: cancelToken()},
			},
		},
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.localizer.MustLocalizeWithTemplate(locale.DeleteBoardConfirmPrompt, board.Name),
		ReplyMarkup: kb,
	})
	if err != nil {
		h.logger.Error("failed to send delete confirmation", "chat_id", chatID, "error", err)
	}
}
