package mtproto

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/gotd/td/tg"
)

func TestEventFromMessage(t *testing.T) {
	t.Parallel()

	entities := tg.Entities{
		Users: map[int64]*tg.User{
			7: {ID: 7, FirstName: "Ann", LastName: "Lee", Username: "ann"},
		},
		Channels: map[int64]*tg.Channel{
			9: {ID: 9, Title: "Announcements"},
		},
	}

	tests := []struct {
		name         string
		msg          *tg.Message
		wantOK       bool
		wantChatID   int64
		wantSender   string
		wantUsername string
	}{
		{
			name:         "channel message from user",
			msg:          &tg.Message{ID: 5, PeerID: &tg.PeerChannel{ChannelID: 123}, FromID: &tg.PeerUser{UserID: 7}, Message: "hi", Date: 1700000000},
			wantOK:       true,
			wantChatID:   -1000000000123,
			wantSender:   "Ann Lee",
			wantUsername: "ann",
		},
		{
			name:       "basic group message from unknown user",
			msg:        &tg.Message{ID: 6, PeerID: &tg.PeerChat{ChatID: 55}, FromID: &tg.PeerUser{UserID: 8}, Message: "hi"},
			wantOK:     true,
			wantChatID: -55,
		},
		{
			name:       "posted on behalf of a channel",
			msg:        &tg.Message{ID: 7, PeerID: &tg.PeerChannel{ChannelID: 1}, FromID: &tg.PeerChannel{ChannelID: 9}, Message: "hi"},
			wantOK:     true,
			wantChatID: -1000000000001,
			wantSender: "Announcements",
		},
		{
			name:   "private chat",
			msg:    &tg.Message{ID: 8, PeerID: &tg.PeerUser{UserID: 7}, Message: "hi"},
			wantOK: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.msg.SetFlags()

			ev, ok := eventFromMessage(entities, tt.msg)
			if ok != tt.wantOK {
				t.Fatalf("eventFromMessage() ok = %v, want %v", ok, tt.wantOK)
			}
			if !ok {
				return
			}
			if ev.ChatID != tt.wantChatID {
				t.Errorf("ChatID = %d, want %d", ev.ChatID, tt.wantChatID)
			}
			if ev.MessageID != tt.msg.ID || ev.Text != "hi" {
				t.Errorf("event = %+v", ev)
			}
			if ev.SenderName != tt.wantSender || ev.SenderUsername != tt.wantUsername {
				t.Errorf("sender = (%q, %q), want (%q, %q)", ev.SenderName, ev.SenderUsername, tt.wantSender, tt.wantUsername)
			}
		})
	}
}

func TestEventFromMessageDate(t *testing.T) {
	t.Parallel()

	msg := &tg.Message{ID: 1, PeerID: &tg.PeerChannel{ChannelID: 1}, Date: 1700000000}
	ev, ok := eventFromMessage(tg.Entities{}, msg)
	if !ok {
		t.Fatal("eventFromMessage() ok = false")
	}
	if want := time.Unix(1700000000, 0).UTC(); !ev.Date.Equal(want) {
		t.Fatalf("Date = %v, want %v", ev.Date, want)
	}
}

func TestChatInfo(t *testing.T) {
	t.Parallel()

	info, err := chatInfo(&tg.Channel{ID: 42, Title: "Jobs"})
	if err != nil || info.ChannelID != -1000000000042 || info.Title != "Jobs" {
		t.Fatalf("chatInfo(channel) = (%+v, %v)", info, err)
	}

	info, err = chatInfo(&tg.Chat{ID: 42, Title: "Friends"})
	if err != nil || info.ChannelID != -42 {
		t.Fatalf("chatInfo(chat) = (%+v, %v)", info, err)
	}

	if _, err := chatInfo(&tg.ChatEmpty{ID: 1}); err == nil {
		t.Fatal("chatInfo(empty) error = nil, want error")
	}
}

func TestInputPeerChatID(t *testing.T) {
	t.Parallel()

	if id, ok := inputPeerChatID(&tg.InputPeerChannel{ChannelID: 5}); !ok || id != -1000000000005 {
		t.Errorf("inputPeerChatID(channel) = (%d, %v)", id, ok)
	}
	if id, ok := inputPeerChatID(&tg.InputPeerChat{ChatID: 5}); !ok || id != -5 {
		t.Errorf("inputPeerChatID(chat) = (%d, %v)", id, ok)
	}
	if _, ok := inputPeerChatID(&tg.InputPeerUser{UserID: 5}); ok {
		t.Error("inputPeerChatID(user) ok = true, want false")
	}
}

func TestTerminalCode(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	code, err := terminalCode(strings.NewReader(" 12345 \n"), &out)(context.Background(), nil)
	if err != nil {
		t.Fatalf("terminalCode() error = %v", err)
	}
	if code != "12345" {
		t.Fatalf("terminalCode() = %q, want 12345", code)
	}
	if !strings.Contains(out.String(), "login code") {
		t.Fatalf("prompt = %q", out.String())
	}

	if _, err := terminalCode(strings.NewReader("\n"), &out)(context.Background(), nil); err == nil {
		t.Fatal("terminalCode(empty) error = nil, want error")
	}
}
