package mtproto

import (
	"context"
	"strings"
	"time"

	"github.com/gotd/td/tg"
	groupDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/domain"
	monitorDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/monitor/domain"
)

func (c *Client) onNewChannelMessage(ctx context.Context, e tg.Entities, update *tg.UpdateNewChannelMessage) error {
	c.dispatch(ctx, e, update.Message)
	return nil
}

func (c *Client) onNewMessage(ctx context.Context, e tg.Entities, update *tg.UpdateNewMessage) error {
	c.dispatch(ctx, e, update.Message)
	return nil
}

func (c *Client) dispatch(ctx context.Context, e tg.Entities, message tg.MessageClass) {
	msg, ok := message.(*tg.Message)
	if !ok || msg.Out {
		return
	}

	ev, ok := eventFromMessage(e, msg)
	if !ok {
		return
	}

	if err := c.handler.HandleMessage(ctx, ev); err != nil {
		c.logger.ErrorContext(ctx, "Failed to handle message", "chat_id", ev.ChatID, "message_id", ev.MessageID, "error", err)
	}
}

// eventFromMessage converts a group message. Private chats are skipped.
func eventFromMessage(e tg.Entities, msg *tg.Message) (monitorDomain.Event, bool) {
	var chatID int64
	switch p := msg.PeerID.(type) {
	case *tg.PeerChannel:
		chatID = groupDomain.ChannelIDFromMTProto(p.ChannelID)
	case *tg.PeerChat:
		chatID = groupDomain.ChatIDFromMTProto(p.ChatID)
	default:
		return monitorDomain.Event{}, false
	}

	ev := monitorDomain.Event{
		ChatID:    chatID,
		MessageID: msg.ID,
		Text:      msg.Message,
		Date:      time.Unix(int64(msg.Date), 0).UTC(),
	}

	from, ok := msg.GetFromID()
	if !ok {
		return ev, true
	}
	switch p := from.(type) {
	case *tg.PeerUser:
		if user, ok := e.Users[p.UserID]; ok {
			ev.SenderName = strings.TrimSpace(user.FirstName + " " + user.LastName)
			ev.SenderUsername = user.Username
		}
	case *tg.PeerChannel:
		if channel, ok := e.Channels[p.ChannelID]; ok {
			ev.SenderName = channel.Title
			ev.SenderUsername = channel.Username
		}
	}

	return ev, true
}
