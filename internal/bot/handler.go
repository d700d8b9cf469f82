package bot

import (
	"context"
	"strings"

	"github.com/brmcgames/leaderboard-bot/internal/config"
	"github.com/brmcgames/leaderboard-bot/internal/domain"
	"github.com/brmcgames/leaderboard-bot/internal/locale"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// BotHandler handles all Telegram bot interactions
type BotHandler struct {
	bot       *bot.Bot
	service   *domain.Service
	registry  *domain.Registry
	store     domain.Store
	config    *config.Config
	logger    domain.Logger
	localizer locale.Localizer
	prompts   *PromptTracker
}

// NewBotHandler creates a new BotHandler with all dependencies
func NewBotHandler(
	b *bot.Bot,
	service *domain.Service,
	registry *domain.Registry,
	store domain.Store,
	cfg *config.Config,
	logger domain.Logger,
	localizer locale.Localizer,
	prompts *PromptTracker,
) *BotHandler {
	return &BotHandler{
		bot:       b,
		service:   service,
		registry:  registry,
		store:     store,
		config:    cfg,
		logger:    logger,
		localizer: localizer,
		prompts:   prompts,
	}
}

// displayName resolves a user's display name the way the admin directory
// records it: first+last name, then single name, then username, then ID
func displayName(user *models.User) string {
	switch {
	case user.FirstName != "" && user.LastName != "":
		return user.FirstName + " " + user.LastName
	case user.FirstName != "":
		return user.FirstName
	case user.LastName != "":
		return user.LastName
	case user.Username != "":
		return user.Username
	default:
		return "user"
	}
}

func isPrivate(msg *models.Message) bool {
	return msg.Chat.Type == models.ChatTypePrivate
}

// sendText sends a plain text message, logging delivery failures
func (h *BotHandler) sendText(ctx context.Context, chatID int64, text string) {
	_, err := h.bot.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("failed to send message", "chat_id", chatID, "error", err)
	}
}

// clearPrompt drops any pending free-text prompt for the sender's
// conversation. Every command handler calls this first, so issuing any
// command implicitly cancels a pending prompt.
func (h *BotHandler) clearPrompt(update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.prompts.Clear(update.Message.From.ID, update.Message.Chat.ID)
}

// resolveRole resolves the sender's role, mapping store failures to a
// logged RoleNone so a broken store cannot grant privileges
func (h *BotHandler) resolveRole(ctx context.Context, userID int64) (domain.Role, domain.LeaderboardRef) {
	role, ref, err := h.registry.Resolve(ctx, userID)
	if err != nil {
		h.logger.Error("failed to resolve role", "user_id", userID, "error", err)
		return domain.RoleNone, domain.LeaderboardRef{}
	}
	return role, ref
}

// HandleStart handles the /start command
func (h *BotHandler) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.clearPrompt(update)
	h.displayHelp(ctx, update)
}

// HandleHelp handles the /help command
func (h *BotHandler) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}
	h.clearPrompt(update)
	h.displayHelp(ctx, update)
}

// displayHelp shows the help message with role-appropriate command
// visibility and the caller's current admin status
func (h *BotHandler) displayHelp(ctx context.Context, update *models.Update) {
	role, ref := h.resolveRole(ctx, update.Message.From.ID)

	var sb strings.Builder
	sb.WriteString(h.localizer.MustLocalize(locale.HelpTitle) + "\n\n")
	sb.WriteString(h.localizer.MustLocalize(locale.HelpIntro) + "\n\n")

	sb.WriteString(h.localizer.MustLocalize(locale.HelpUserCommands) + "\n")
	sb.WriteString(h.localizer.MustLocalize(locale.HelpCommandHelp) + "\n")
	sb.WriteString(h.localizer.MustLocalize(locale.HelpCommandAdmin) + "\n")
	sb.WriteString(h.localizer.MustLocalize(locale.HelpCommandShow) + "\n\n")

	if role == domain.RoleMaster || role == domain.RoleLeaderboardAdmin {
		sb.WriteString(h.localizer.MustLocalize(locale.HelpAdminCommands) + "\n")
		sb.WriteString(h.localizer.MustLocalize(locale.HelpCommandUpdate) + "\n")
		sb.WriteString(h.localizer.MustLocalize(locale.HelpCommandNewGroup) + "\n\n")
	}

	if role == domain.RoleMaster {
		sb.WriteString(h.localizer.MustLocalize(locale.HelpMasterCommands) + "\n")
		sb.WriteString(h.localizer.MustLocalize(locale.HelpCommandNewLeaderboard) + "\n")
		sb.WriteString(h.localizer.MustLocalize(locale.HelpCommandDeleteLeaderboard) + "\n")
		sb.WriteString(h.localizer.MustLocalize(locale.HelpCommandSetScore) + "\n\n")
	}

	switch role {
	case domain.RoleMaster:
		sb.WriteString(h.localizer.MustLocalize(locale.HelpStatusMaster))
	case domain.RoleLeaderboardAdmin:
		sb.WriteString(h.localizer.MustLocalizeWithTemplate(locale.HelpStatusAdmin, ref.Name))
	default:
		sb.WriteString(h.localizer.MustLocalize(locale.HelpStatusNone))
	}

	h.sendText(ctx, update.Message.Chat.ID, sb.String())
}
