package bot

import (
	"context"
	"errors"
	"strconv"

	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleCallback dispatches inline keyboard presses. Every branch answers
// the callback query so the client spinner stops, and every privileged
// branch re-authorizes against the current admin directory rather than
// trusting the button: keyboards outlive bindings.
func (h *BotHandler) HandleCallback(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil || callback.Message.Message == nil {
		return
	}
	chatID := callback.Message.Message.Chat.ID
	messageID := callback.Message.Message.ID

	token, err := parseCallbackToken(callback.Data)
	if err != nil {
		h.logger.Warn("rejected malformed callback payload", "user_id", callback.From.ID, "data", callback.Data)
		h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}

	if token.Verb == verbCancel {
		h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.CallbackCancelled))
		h.deleteMessage(ctx, b, chatID, messageID)
		h.prompts.Clear(callback.From.ID, chatID)
		return
	}

	role, ref := h.resolveRole(ctx, callback.From.ID)
	if !authorizedForBoard(role, ref, token.LeaderboardID) {
		h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.CallbackUnauthorized))
		return
	}

	switch token.Verb {
	case verbName:
		h.handleGroupPicked(ctx, b, callback, token, chatID, messageID)
	case verbAddScore:
		h.handleDeltaPicked(ctx, b, callback, token, chatID, messageID)
	case verbConfirm:
		h.handleDeleteConfirmed(ctx, b, callback, token, role, chatID, messageID)
	}
}

// authorizedForBoard reports whether the role may act on the leaderboard a
// button refers to. Masters act everywhere, a bound admin only on their
// own leaderboard.
func authorizedForBoard(role domain.Role, ref domain.LeaderboardRef, leaderboardID int64) bool {
	switch role {
	case domain.RoleMaster:
		return true
	case domain.RoleLeaderboardAdmin:
		return ref.ID == leaderboardID
	default:
		return false
	}
}

// handleGroupPicked replaces the group picker with the delta picker for
// the chosen group
func (h *BotHandler) handleGroupPicked(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, token callbackToken, chatID int64, messageID int) {
	board, err := h.service.GetLeaderboard(ctx, token.LeaderboardID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.CallbackStale))
			h.deleteMessage(ctx, b, chatID, messageID)
			return
		}
		h.logger.Error("failed to load leaderboard", "leaderboard_id", token.LeaderboardID, "error", err)
		h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}

	group, ok := board.Groups[token.GroupKey]
	if !ok {
		h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.CallbackStale))
		h.deleteMessage(ctx, b, chatID, messageID)
		return
	}

	h.answerCallback(ctx, b, callback.ID, "")
	h.deleteMessage(ctx, b, chatID, messageID)

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text: h.localizer.MustLocalizeWithTemplate(
			locale.UpdatePickDelta, group.Name, strconv.FormatInt(group.Score, 10)),
		ReplyMarkup: h.deltaKeyboard(board.ID, group.Key),
	})
	if err != nil {
		h.logger.Error("failed to send delta picker", "chat_id", chatID, "error", err)
	}
}

// handleDeltaPicked applies the chosen signed change and reports the new
// total
func (h *BotHandler) handleDeltaPicked(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, token callbackToken, chatID int64, messageID int) {
	group, err := h.service.AdjustScore(ctx, token.LeaderboardID, token.GroupKey, token.Delta)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.CallbackStale))
			h.deleteMessage(ctx, b, chatID, messageID)
			return
		}
		h.logger.Error("failed to adjust score",
			"leaderboard_id", token.LeaderboardID, "group_key", token.GroupKey, "error", err)
		h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}

	h.answerCallback(ctx, b, callback.ID, "")
	h.deleteMessage(ctx, b, chatID, messageID)

	h.logger.Info("score updated",
		"leaderboard_id", token.LeaderboardID, "group", group.Name, "delta", token.Delta, "score", group.Score)
	h.sendText(ctx, chatID, h.localizer.MustLocalizeWithTemplate(
		locale.UpdateScoreApplied, group.Name, strconv.FormatInt(group.Score, 10)))
}

// handleDeleteConfirmed performs the confirmed leaderboard deletion.
// Confirmation stays master-only even when a bound admin could press the
// button.
func (h *BotHandler) handleDeleteConfirmed(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, token callbackToken, role domain.Role, chatID int64, messageID int) {
	if role != domain.RoleMaster {
		h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.CallbackUnauthorized))
		return
	}

	board, err := h.service.GetLeaderboard(ctx, token.LeaderboardID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.CallbackStale))
			h.deleteMessage(ctx, b, chatID, messageID)
			return
		}
		h.logger.Error("failed to load leaderboard", "leaderboard_id", token.LeaderboardID, "error", err)
		h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}

	if err := h.service.DeleteLeaderboard(ctx, token.LeaderboardID, callback.From.ID); err != nil {
		h.logger.Error("failed to delete leaderboard", "leaderboard_id", token.LeaderboardID, "error", err)
		h.answerCallback(ctx, b, callback.ID, h.localizer.MustLocalize(locale.ErrorGeneric))
		return
	}

	h.answerCallback(ctx, b, callback.ID, "")
	h.deleteMessage(ctx, b, chatID, messageID)

	h.logger.Info("leaderboard deleted", "leaderboard_id", token.LeaderboardID, "name", board.Name)
	h.sendText(ctx, chatID, h.localizer.MustLocalizeWithTemplate(locale.DeleteBoardDeleted, board.Name))
}

// answerCallback acknowledges a callback query, optionally with a toast
func (h *BotHandler) answerCallback(ctx context.Context, b *bot.Bot, callbackID, text string) {
	_, _ = b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
	})
}

func (h *BotHandler) deleteMessage(ctx context.Context, b *bot.Bot, chatID int64, messageID int) {
	_, err := b.DeleteMessage(ctx, &bot.DeleteMessageParams{
		ChatID:    chatID,
		MessageID: messageID,
	})
	if err != nil {
		h.logger.Warn("failed to delete message", "chat_id", chatID, "message_id", messageID, "error", err)
	}
}
