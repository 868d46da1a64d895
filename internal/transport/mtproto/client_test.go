package mtproto

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gotd/td/telegram/updates"
	"github.com/gotd/td/tg"
	monitorDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/monitor/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/config"
)

type recordingHandler struct {
	events chan monitorDomain.Event
}

func (h *recordingHandler) HandleMessage(_ context.Context, ev monitorDomain.Event) error {
	h.events <- ev
	return nil
}

// fakeUpdatesAPI reports an empty difference on startup and serves the
// missed messages on the first refetch after that.
type fakeUpdatesAPI struct {
	mu     sync.Mutex
	calls  int
	missed []tg.MessageClass
}

func (f *fakeUpdatesAPI) UpdatesGetState(_ context.Context) (*tg.UpdatesState, error) {
	return &tg.UpdatesState{Pts: 10, Date: 1, Seq: 0}, nil
}

func (f *fakeUpdatesAPI) UpdatesGetDifference(_ context.Context, req *tg.UpdatesGetDifferenceRequest) (tg.UpdatesDifferenceClass, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++

	if f.calls == 1 || len(f.missed) == 0 {
		return &tg.UpdatesDifferenceEmpty{Date: 1}, nil
	}

	missed := f.missed
	f.missed = nil
	return &tg.UpdatesDifference{
		NewMessages: missed,
		State:       tg.UpdatesState{Pts: req.Pts + 1, Date: 2},
	}, nil
}

func (f *fakeUpdatesAPI) UpdatesGetChannelDifference(_ context.Context, _ *tg.UpdatesGetChannelDifferenceRequest) (tg.UpdatesChannelDifferenceClass, error) {
	return &tg.UpdatesChannelDifferenceEmpty{Final: true, Pts: 1}, nil
}

func startUpdates(t *testing.T, api updates.API) (*Client, *recordingHandler) {
	t.Helper()

	handler := &recordingHandler{events: make(chan monitorDomain.Event, 4)}
	c := New(&config.Config{
		TelegramAPIID:   1,
		TelegramAPIHash: "hash",
		SessionPath:     filepath.Join(t.TempDir(), "session.json"),
	}, handler)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	started := make(chan struct{})
	go func() {
		_ = c.gaps.Run(ctx, api, 1, updates.AuthOptions{
			OnStart: func(context.Context) { close(started) },
		})
	}()

	select {
	case <-started:
	case <-time.After(5 * time.Second):
		t.Fatal("update manager did not start")
	}
	return c, handler
}

func waitEvent(t *testing.T, h *recordingHandler) monitorDomain.Event {
	t.Helper()
	select {
	case ev := <-h.events:
		return ev
	case <-time.After(5 * time.Second):
		t.Fatal("no message delivered")
		return monitorDomain.Event{}
	}
}

func TestClient_ShortChatMessageReachesHandler(t *testing.T) {
	t.Parallel()

	c, handler := startUpdates(t, &fakeUpdatesAPI{})

	err := c.gaps.Handle(context.Background(), &tg.UpdateShortChatMessage{
		ID:       7,
		FromID:   42,
		ChatID:   55,
		Message:  "golang job",
		Pts:      11,
		PtsCount: 1,
		Date:     1700000000,
	})
	if err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	ev := waitEvent(t, handler)
	if ev.ChatID != -55 || ev.MessageID != 7 || ev.Text != "golang job" {
		t.Errorf("event = %+v", ev)
	}
}

func TestClient_TooLongRefetchesMissedMessages(t *testing.T) {
	t.Parallel()

	api := &fakeUpdatesAPI{missed: []tg.MessageClass{
		&tg.Message{ID: 9, PeerID: &tg.PeerChannel{ChannelID: 123}, Message: "missed golang job", Date: 1700000000},
	}}
	c, handler := startUpdates(t, api)

	if err := c.gaps.Handle(context.Background(), &tg.UpdatesTooLong{}); err != nil {
		t.Fatalf("Handle() error = %v", err)
	}

	ev := waitEvent(t, handler)
	if ev.ChatID != -1000000000123 || ev.MessageID != 9 || ev.Text != "missed golang job" {
		t.Errorf("event = %+v", ev)
	}
}
