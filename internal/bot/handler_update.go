package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// scoreDeltas is the fixed set of signed changes offered in the delta-pick
// phase
var scoreDeltas = []int64{-10, -5, -1, +1, +5, +10}

// HandleUpdate handles /update, the entry into the button-driven
// group/delta selection protocol: pick a group, pick a delta, apply.
func (h *BotHandler) HandleUpdate(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.clearPrompt(update)

	msg := update.Message
	chatID := msg.Chat.ID

	role, ref := h.resolveRole(ctx, msg.From.ID)
	target, err := domain.ResolveTarget(role, ref, chatID, isPrivate(msg))
	if err != nil {
		h.replyTargetError(ctx, chatID, err)
		return
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

	standings := domain.Standings(board)
	if len(standings) == 0 {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.UpdateNoGroups))
		return
	}

	rows := make([][]models.InlineKeyboardButton, 0, len(standings)+1)
	for _, group := range standings {
		rows = append(rows, []models.InlineKeyboardButton{
			{
				Text:         fmt.Sprintf("%s (%d)", group.Name, group.Score),
				CallbackData: nameToken(board.ID, group.Key),
			},
		})
	}
	rows = append(rows, []models.InlineKeyboardButton{
		{Text: h.localizer.MustLocalize(locale.DeleteBoardCancelButton), CallbackData: cancelToken()},
	})

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        h.localizer.MustLocalize(locale.UpdatePickGroup),
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	if err != nil {
		h.logger.Error("failed to send group picker", "chat_id", chatID, "error", err)
	}
}

// deltaKeyboard builds the delta-pick keyboard for a group
func (h *BotHandler) deltaKeyboard(leaderboardID int64, groupKey string) *models.InlineKeyboardMarkup {
	negatives := make([]models.InlineKeyboardButton, 0, len(scoreDeltas))
	positives := make([]models.InlineKeyboardButton, 0, len(scoreDeltas))
	for _, delta := range scoreDeltas {
		button := models.InlineKeyboardButton{
			Text:         fmt.Sprintf("%+d", delta),
			CallbackData: addScoreToken(leaderboardID, groupKey, delta),
		}
		if delta < 0 {
			negatives = append(negatives, button)
		} else {
			positives = append(positives, button)
		}
	}

	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			negatives,
			positives,
			{{Text: h.localizer.MustLocalize(locale.DeleteBoardCancelButton), CallbackData: cancelToken()}},
		},
	}
}
