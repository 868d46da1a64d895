package telegram

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/samber/oops"
)

// Notifier sends HTML messages through the bot
type Notifier struct {
	b       *bot.Bot
	adminID int64
}

// NewNotifier creates a notifier; adminID receives service notices
func NewNotifier(b *bot.Bot, adminID int64) *Notifier {
	return &Notifier{b: b, adminID: adminID}
}

// Send delivers text to chatID with link previews disabled
func (n *Notifier) Send(ctx context.Context, chatID int64, text string) error {
	_, err := n.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:             chatID,
		Text:               text,
		ParseMode:          models.ParseModeHTML,
		LinkPreviewOptions: &models.LinkPreviewOptions{IsDisabled: bot.True()},
	})
	if err != nil {
		return oops.With("chat_id", chatID, "context", "failed to send message").Wrap(err)
	}
	return nil
}

// NotifyAdmin sends a silent service notice to the administrator
func (n *Notifier) NotifyAdmin(ctx context.Context, text string) error {
	_, err := n.b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:              n.adminID,
		Text:                text,
		DisableNotification: true,
	})
	if err != nil {
		return oops.With("admin_id", n.adminID, "context", "failed to notify admin").Wrap(err)
	}
	return nil
}
