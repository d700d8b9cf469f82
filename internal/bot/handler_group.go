package bot

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleNewGroup handles /newgroup [name]. With the name omitted the
// handler arms a pending prompt instead of failing; the next free-text
// message from the same conversation supplies the name.
func (h *BotHandler) HandleNewGroup(ctx context.Context, b *bot.Bot, update *models.Update) {
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

	name := commandArgs(msg.Text)
	if name == "" {
		h.prompts.Arm(msg.From.ID, chatID, PromptGroupName)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.GroupAskName))
		return
	}

	h.createGroup(ctx, chatID, target, name)
}

// HandleMessage handles free-text messages, consuming a pending prompt if
// one is armed for the sender's conversation. Commands never reach here as
// prompt input; anything else without a pending prompt is ignored.
func (h *BotHandler) HandleMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}
	msg := update.Message
	if strings.HasPrefix(msg.Text, "/") {
		return
	}

	kind, ok := h.prompts.Consume(msg.From.ID, msg.Chat.ID)
	if !ok {
		return
	}

	switch kind {
	case PromptGroupName:
		role, ref := h.resolveRole(ctx, msg.From.ID)
		target, err := domain.ResolveTarget(role, ref, msg.Chat.ID, isPrivate(msg))
		if err != nil {
			h.replyTargetError(ctx, msg.Chat.ID, err)
			return
		}
		h.createGroup(ctx, msg.Chat.ID, target, strings.TrimSpace(msg.Text))
	default:
		h.logger.Warn("unknown pending prompt kind", "kind", string(kind))
	}
}

// createGroup runs group creation against the target leaderboard and
// replies in replyChat
func (h *BotHandler) createGroup(ctx context.Context, replyChat, target int64, name string) {
	group, board, err := h.service.CreateGroup(ctx, target, name)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrDuplicateGroup):
			h.sendText(ctx, replyChat, h.localizer.MustLocalize(locale.GroupDuplicate))
		case errors.Is(err, domain.ErrNotFound):
			h.sendText(ctx, replyChat, h.localizer.MustLocalize(locale.BoardNotFound))
		case errors.Is(err, domain.ErrInvalidArgument):
			h.sendText(ctx, replyChat, h.localizer.MustLocalize(locale.GroupAskName))
		default:
			h.logger.Error("failed to create group", "leaderboard_id", target, "error", err)
			h.sendText(ctx, replyChat, h.localizer.MustLocalize(locale.ErrorGeneric))
		}
		return
	}

	h.sendText(ctx, replyChat, h.localizer.MustLocalizeWithTemplate(locale.GroupCreated, group.Name, board.Name))
}

// replyTargetError maps ResolveTarget failures to user-facing replies
func (h *BotHandler) replyTargetError(ctx context.Context, chatID int64, err error) {
	switch {
	case errors.Is(err, domain.ErrUnauthorized):
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.GroupUnauthorized))
	case errors.Is(err, domain.ErrWrongContext):
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorWrongContext))
	default:
		h.logger.Error("failed to resolve target leaderboard", "error", err)
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
	}
}

// HandleSetScore handles /setscore <name> <value>, the master-only
// absolute override
func (h *BotHandler) HandleSetScore(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.clearPrompt(update)

	msg := update.Message
	chatID := msg.Chat.ID

	role, _ := h.resolveRole(ctx, msg.From.ID)
	if role != domain.RoleMaster {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorMasterRequired))
		return
	}
	if isPrivate(msg) {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorWrongContext))
		return
	}

	// Last field is the value, everything before it the group name
	fields := strings.Fields(commandArgs(msg.Text))
	if len(fields) < 2 {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.SetScoreUsage))
		return
	}
	value, err := strconv.ParseInt(fields[len(fields)-1], 10, 64)
	if err != nil {
		h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.SetScoreUsage))
		return
	}
	name := strings.Join(fields[:len(fields)-1], " ")

	group, err := h.service.SetScore(ctx, chatID, domain.Digest(name), value)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.GroupNotFound))
		default:
			h.logger.Error("failed to set score", "chat_id", chatID, "group", name, "error", err)
			h.sendText(ctx, chatID, h.localizer.MustLocalize(locale.ErrorGeneric))
		}
		return
	}

	h.sendText(ctx, chatID, h.localizer.MustLocalizeWithTemplate(
		locale.SetScoreApplied, group.Name, strconv.FormatInt(group.Score, 10)))
}
