package domain

import (
	"fmt"
	"strings"
	"time"
)

// Group is a monitored Telegram group or channel. ChannelID uses the Bot API
// form (-100… for channels and supergroups) and is unique in the registry.
type Group struct {
	ID        int64     `db:"id"`
	ChannelID int64     `db:"channel_id"`
	Link      string    `db:"link"`
	Title     string    `db:"title"`
	IsActive  bool      `db:"is_active"`
	CreatedAt time.Time `db:"created_at"`
}

// JoinAction asks the membership provider to join one group missing from the live list.
type JoinAction struct {
	ChannelID int64
	Link      string
	Title     string
}

// ChannelInfo is what a resolver learns about a link before registration.
type ChannelInfo struct {
	ChannelID int64
	Title     string
}

const channelIDOffset = 1_000_000_000_000

// ChannelIDFromMTProto converts a raw MTProto channel id into the Bot API form.
func ChannelIDFromMTProto(channelID int64) int64 {
	return -(channelIDOffset + channelID)
}

// ChatIDFromMTProto converts a raw MTProto basic group id into the Bot API form.
func ChatIDFromMTProto(chatID int64) int64 {
	return -chatID
}

// MTProtoChannelID reverses ChannelIDFromMTProto. ok is false for ids that are not channels.
func MTProtoChannelID(channelID int64) (int64, bool) {
	if channelID > -channelIDOffset {
		return 0, false
	}
	return -channelID - channelIDOffset, true
}

func trimLinkPrefix(link string) string {
	name := strings.TrimSpace(link)
	for _, prefix := range []string{"https://", "http://"} {
		name = strings.TrimPrefix(name, prefix)
	}
	for _, prefix := range []string{"t.me/", "telegram.me/"} {
		name = strings.TrimPrefix(name, prefix)
	}
	return strings.TrimSuffix(name, "/")
}

// InviteHash extracts the hash of a private invite link ("t.me/+hash" or "t.me/joinchat/hash").
func InviteHash(link string) (string, bool) {
	name := trimLinkPrefix(link)
	for _, prefix := range []string{"+", "joinchat/"} {
		if hash, ok := strings.CutPrefix(name, prefix); ok && hash != "" && !strings.ContainsAny(hash, "/?") {
			return hash, true
		}
	}
	return "", false
}

// Username extracts the public username from a link such as "@name",
// "t.me/name" or "https://t.me/name". ok is false for invite links.
func Username(link string) (string, bool) {
	name := strings.TrimPrefix(trimLinkPrefix(link), "@")
	if name == "" || strings.ContainsAny(name, "/+?") || strings.HasPrefix(name, "joinchat") {
		return "", false
	}
	return name, true
}

// Permalink returns a t.me link to messageID inside the group.
func (g *Group) Permalink(messageID int) string {
	if name, ok := Username(g.Link); ok {
		return fmt.Sprintf("https://t.me/%s/%d", name, messageID)
	}
	if id, ok := MTProtoChannelID(g.ChannelID); ok {
		return fmt.Sprintf("https://t.me/c/%d/%d", id, messageID)
	}
	return ""
}
