package telegram

import (
	"context"
	stdErrors "errors"
	"fmt"
	"html"
	"log/slog"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	groupDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/domain"
	groupService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/service"
	keywordDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/domain"
	monitorDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/monitor/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/config"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
)

// GroupRegistry manages monitored groups
type GroupRegistry interface {
	Register(ctx context.Context, channelID int64, link, title string) (groupDomain.RegistrationResult, error)
	Deactivate(ctx context.Context, channelID int64) error
	List(ctx context.Context) ([]*groupDomain.Group, error)
	Sync(ctx context.Context) (groupService.SyncReport, error)
}

// KeywordManager manages keywords and minus words
type KeywordManager interface {
	Add(ctx context.Context, text string, polarity keywordDomain.Polarity) (*keywordDomain.Keyword, error)
	Remove(ctx context.Context, id int64) error
	List(ctx context.Context, polarity keywordDomain.Polarity) ([]*keywordDomain.Keyword, error)
}

// Resolver finds the id and title of a group from a link
type Resolver interface {
	Resolve(ctx context.Context, link string) (groupDomain.ChannelInfo, error)
}

// StatsSource reports monitor counters
type StatsSource interface {
	Collect(ctx context.Context) (monitorDomain.Stats, error)
}

// Handler handles admin commands sent to the bot
type Handler struct {
	cfg      *config.Config
	groups   GroupRegistry
	keywords KeywordManager
	resolver Resolver
	stats    StatsSource
	logger   *slog.Logger
}

// New creates a new Telegram handler
func New(cfg *config.Config, groups GroupRegistry, keywords KeywordManager, resolver Resolver, stats StatsSource) *Handler {
	return &Handler{
		cfg:      cfg,
		groups:   groups,
		keywords: keywords,
		resolver: resolver,
		stats:    stats,
		logger:   slog.Default().With("component", "telegram-handler"),
	}
}

// SetLogger sets the logger
func (h *Handler) SetLogger(logger *slog.Logger) {
	h.logger = logger.With("component", "telegram-handler")
}

// RegisterCommands registers bot commands
func (h *Handler) RegisterCommands(b *bot.Bot) {
	adminOnly := h.adminOnly

	b.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, h.handleStart, adminOnly)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, h.handleStart, adminOnly)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/addgroup", bot.MatchTypePrefix, h.handleAddGroup, adminOnly)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/removegroup", bot.MatchTypePrefix, h.handleRemoveGroup, adminOnly)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/groups", bot.MatchTypeExact, h.handleListGroups, adminOnly)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/addword", bot.MatchTypePrefix, h.handleAddKeyword(keywordDomain.PolaritySearch), adminOnly)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/addminus", bot.MatchTypePrefix, h.handleAddKeyword(keywordDomain.PolarityMinus), adminOnly)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/removeword", bot.MatchTypePrefix, h.handleRemoveKeyword, adminOnly)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/words", bot.MatchTypeExact, h.handleListKeywords(keywordDomain.PolaritySearch), adminOnly)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/minuswords", bot.MatchTypeExact, h.handleListKeywords(keywordDomain.PolarityMinus), adminOnly)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/sync", bot.MatchTypeExact, h.handleSync, adminOnly)
	b.RegisterHandler(bot.HandlerTypeMessageText, "/status", bot.MatchTypeExact, h.handleStatus, adminOnly)
}

func (h *Handler) adminOnly(next bot.HandlerFunc) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		if update.Message == nil || update.Message.From == nil {
			return
		}
		if !h.cfg.IsAdmin(update.Message.From.ID) {
			h.logger.WarnContext(ctx, "Unauthorized access attempt", "user_id", update.Message.From.ID, "error", errors.ErrUnauthorized)
			h.reply(ctx, b, update, "❌ You are not authorized to use this bot.")
			return
		}
		next(ctx, b, update)
	}
}

func (h *Handler) reply(ctx context.Context, b *bot.Bot, update *models.Update, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:             update.Message.Chat.ID,
		Text:               text,
		ParseMode:          models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
	})
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to send reply", "chat_id", update.Message.Chat.ID, "error", err)
	}
}

const helpText = `👋 Telegram keyword monitor

I watch your groups and forward messages that contain your keywords.

Groups:
/addgroup &lt;link&gt; - Monitor a group (@name, t.me/name or invite link)
/removegroup &lt;channel_id&gt; - Stop monitoring a group
/groups - List groups
/sync - Join every monitored group the account is missing

Keywords:
/addword &lt;word&gt; - Add a keyword
/addminus &lt;word&gt; - Add a minus word that suppresses matches
/removeword &lt;id&gt; - Remove a keyword or minus word
/words - List keywords
/minuswords - List minus words

/status - Show monitor status`

func (h *Handler) handleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	h.reply(ctx, b, update, helpText)
}

func (h *Handler) handleAddGroup(ctx context.Context, b *bot.Bot, update *models.Update) {
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.reply(ctx, b, update, "Usage: /addgroup &lt;link&gt;\nExample: /addgroup @golang_jobs")
		return
	}
	link := args[0]

	info, err := h.resolver.Resolve(ctx, link)
	if err != nil {
		h.logger.WarnContext(ctx, "Failed to resolve group", "link", link, "error", err)
		h.reply(ctx, b, update, "❌ This group does not exist or cannot be reached.")
		return
	}

	result, err := h.groups.Register(ctx, info.ChannelID, link, info.Title)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to register group", "channel_id", info.ChannelID, "error", err)
		h.reply(ctx, b, update, "❌ Failed to add group.")
		return
	}

	h.reply(ctx, b, update, registrationReply(result, info))
}

func (h *Handler) handleRemoveGroup(ctx context.Context, b *bot.Bot, update *models.Update) {
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.reply(ctx, b, update, "Usage: /removegroup &lt;channel_id&gt;")
		return
	}
	channelID, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.reply(ctx, b, update, "❌ Invalid channel id")
		return
	}

	if err := h.groups.Deactivate(ctx, channelID); err != nil {
		if stdErrors.Is(err, errors.ErrGroupNotFound) {
			h.reply(ctx, b, update, fmt.Sprintf("❌ Group %d not found", channelID))
			return
		}
		h.logger.ErrorContext(ctx, "Failed to deactivate group", "channel_id", channelID, "error", err)
		h.reply(ctx, b, update, "❌ Failed to remove group.")
		return
	}

	h.reply(ctx, b, update, fmt.Sprintf("✅ Group %d is no longer monitored", channelID))
}

func (h *Handler) handleListGroups(ctx context.Context, b *bot.Bot, update *models.Update) {
	groups, err := h.groups.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to list groups", "error", err)
		h.reply(ctx, b, update, "❌ Failed to list groups.")
		return
	}
	h.reply(ctx, b, update, formatGroups(groups))
}

func (h *Handler) handleAddKeyword(polarity keywordDomain.Polarity) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		args := commandArgs(update.Message.Text)
		keyword, err := h.keywords.Add(ctx, strings.Join(args, " "), polarity)
		switch {
		case stdErrors.Is(err, errors.ErrEmptyKeyword):
			h.reply(ctx, b, update, "Usage: /addword &lt;word&gt; or /addminus &lt;word&gt;")
		case stdErrors.Is(err, errors.ErrMultiWordKeyword):
			h.reply(ctx, b, update, "❌ Only a single word is allowed.")
		case stdErrors.Is(err, errors.ErrDuplicateKeyword):
			h.reply(ctx, b, update, "ℹ️ This word is already in the list.")
		case err != nil:
			h.logger.ErrorContext(ctx, "Failed to add keyword", "polarity", polarity, "error", err)
			h.reply(ctx, b, update, "❌ Failed to add word.")
		default:
			h.reply(ctx, b, update, fmt.Sprintf("✅ Added %s <b>%s</b> (id %d)", polarityLabel(keyword.Polarity()), html.EscapeString(keyword.Text), keyword.ID))
		}
	}
}

func (h *Handler) handleRemoveKeyword(ctx context.Context, b *bot.Bot, update *models.Update) {
	args := commandArgs(update.Message.Text)
	if len(args) != 1 {
		h.reply(ctx, b, update, "Usage: /removeword &lt;id&gt;")
		return
	}
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil {
		h.reply(ctx, b, update, "❌ Invalid id")
		return
	}

	if err := h.keywords.Remove(ctx, id); err != nil {
		if stdErrors.Is(err, errors.ErrKeywordNotFound) {
			h.reply(ctx, b, update, fmt.Sprintf("❌ Word %d not found", id))
			return
		}
		h.logger.ErrorContext(ctx, "Failed to remove keyword", "id", id, "error", err)
		h.reply(ctx, b, update, "❌ Failed to remove word.")
		return
	}

	h.reply(ctx, b, update, fmt.Sprintf("✅ Word %d removed", id))
}

func (h *Handler) handleListKeywords(polarity keywordDomain.Polarity) bot.HandlerFunc {
	return func(ctx context.Context, b *bot.Bot, update *models.Update) {
		keywords, err := h.keywords.List(ctx, polarity)
		if err != nil {
			h.logger.ErrorContext(ctx, "Failed to list keywords", "polarity", polarity, "error", err)
			h.reply(ctx, b, update, "❌ Failed to list words.")
			return
		}
		h.reply(ctx, b, update, formatKeywords(keywords, polarity))
	}
}

func (h *Handler) handleSync(ctx context.Context, b *bot.Bot, update *models.Update) {
	report, err := h.groups.Sync(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Manual sync failed", "error", err)
		h.reply(ctx, b, update, "❌ Sync failed, the user session may not be running.")
		return
	}

	h.reply(ctx, b, update, fmt.Sprintf("🔄 Sync finished\n\nMonitored: %d\nMemberships: %d\nJoined: %d\nFailed: %d",
		report.Desired, report.Live, len(report.Joined), len(report.Failed)))
}

func (h *Handler) handleStatus(ctx context.Context, b *bot.Bot, update *models.Update) {
	stats, err := h.stats.Collect(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "Failed to collect status", "error", err)
		h.reply(ctx, b, update, "❌ Failed to get status.")
		return
	}

	h.reply(ctx, b, update, fmt.Sprintf(`📊 Monitor status:

Active groups: %d
Keywords: %d
Minus words: %d
Hits in the last 24h: %d
HTTP port: %s`,
		stats.ActiveGroups, stats.Keywords, stats.MinusWords, stats.HitsLastDay, h.cfg.HTTPPort))
}

func commandArgs(text string) []string {
	fields := strings.Fields(text)
	if len(fields) == 0 {
		return nil
	}
	return fields[1:]
}

func registrationReply(result groupDomain.RegistrationResult, info groupDomain.ChannelInfo) string {
	title := html.EscapeString(info.Title)
	switch result {
	case groupDomain.RegistrationResultCreated:
		return fmt.Sprintf("✅ Group <b>%s</b> added\nChannel ID: <code>%d</code>", title, info.ChannelID)
	case groupDomain.RegistrationResultReactivated:
		return fmt.Sprintf("♻️ Group <b>%s</b> is monitored again\nChannel ID: <code>%d</code>", title, info.ChannelID)
	default:
		return fmt.Sprintf("ℹ️ Group <b>%s</b> is already monitored", title)
	}
}

func formatGroups(groups []*groupDomain.Group) string {
	if len(groups) == 0 {
		return "🌐 No groups yet.\nUse /addgroup to add one."
	}

	var text strings.Builder
	text.WriteString("📮 Groups:\n\n")
	for i, g := range groups {
		status := "✅"
		if !g.IsActive {
			status = "⏸️"
		}
		fmt.Fprintf(&text, "%s %d. <b>%s</b>\n   %s\n   ID: <code>%d</code>\n\n",
			status, i+1, html.EscapeString(g.Title), html.EscapeString(g.Link), g.ChannelID)
	}
	return text.String()
}

func formatKeywords(keywords []*keywordDomain.Keyword, polarity keywordDomain.Polarity) string {
	if len(keywords) == 0 {
		return fmt.Sprintf("🔎 No %ss yet.", polarityLabel(polarity))
	}

	var text strings.Builder
	if polarity == keywordDomain.PolarityMinus {
		text.WriteString("📝 Minus words:\n\n")
	} else {
		text.WriteString("📝 Keywords:\n\n")
	}
	for _, k := range keywords {
		fmt.Fprintf(&text, "<code>%d</code> · <b>%s</b>\n", k.ID, html.EscapeString(k.Text))
	}
	return text.String()
}

func polarityLabel(polarity keywordDomain.Polarity) string {
	if polarity == keywordDomain.PolarityMinus {
		return "minus word"
	}
	return "keyword"
}
