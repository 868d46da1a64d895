package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
	feedService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/feed/service"
	groupDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/domain"
	hitDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/hit/domain"
	keywordDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/domain"
	monitorDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/monitor/domain"
	monitorService "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/monitor/service"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/config"
	httpServer "github.com/reshetovitsme/tg-keyword-monitor/internal/transport/http"
)

type stubStore struct{}

func (stubStore) Recent(_ context.Context, _ int) ([]*hitDomain.Hit, error) {
	return []*hitDomain.Hit{{
		ChannelID: -1001, MessageID: 5, Keyword: "golang", Text: "golang job",
		Link: "https://t.me/jobs/5", Date: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}, nil
}

func (stubStore) CountLastDay(_ context.Context) (int, error) { return 1, nil }

func (stubStore) ListActive(_ context.Context) (map[int64]*groupDomain.Group, error) {
	return map[int64]*groupDomain.Group{-1001: {ChannelID: -1001}}, nil
}

func (stubStore) Texts(_ context.Context, polarity keywordDomain.Polarity) ([]string, error) {
	if polarity == keywordDomain.PolarityMinus {
		return []string{}, nil
	}
	return []string{"golang", "rust"}, nil
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	store := stubStore{}
	server := httpServer.New(
		&config.Config{HTTPPort: "0"},
		feedService.New(store),
		monitorService.NewStatsCollector(store, store, store),
	)
	ts := httptest.NewServer(server.Handler())
	t.Cleanup(ts.Close)
	return ts
}

func TestServer_Health(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/health")
	if err != nil {
		t.Fatalf("GET /health error = %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET /health status = %d, want 200", resp.StatusCode)
	}
	var body map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("decode body error = %v", err)
	}
	if body["status"] != "ok" {
		t.Fatalf("GET /health body = %v", body)
	}
}

func TestServer_Status(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/status")
	if err != nil {
		t.Fatalf("GET /status error = %v", err)
	}
	defer resp.Body.Close()

	var stats monitorDomain.Stats
	if err := json.NewDecoder(resp.Body).Decode(&stats); err != nil {
		t.Fatalf("decode body error = %v", err)
	}
	want := monitorDomain.Stats{ActiveGroups: 1, Keywords: 2, MinusWords: 0, HitsLastDay: 1}
	if stats != want {
		t.Fatalf("GET /status = %+v, want %+v", stats, want)
	}
}

func TestServer_RSSHits(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	feed, err := gofeed.NewParser().ParseURL(ts.URL + "/rss/hits")
	if err != nil {
		t.Fatalf("ParseURL() error = %v", err)
	}
	if len(feed.Items) != 1 {
		t.Fatalf("feed has %d items, want 1", len(feed.Items))
	}
	if feed.Items[0].Link != "https://t.me/jobs/5" {
		t.Fatalf("item link = %q", feed.Items[0].Link)
	}
}

func TestServer_UnknownPath(t *testing.T) {
	t.Parallel()
	ts := newTestServer(t)

	resp, err := http.Get(ts.URL + "/rss/123")
	if err != nil {
		t.Fatalf("GET error = %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusNotFound {
		t.Fatalf("GET /rss/123 status = %d, want 404", resp.StatusCode)
	}
}

func TestServer_ShutdownBeforeStart(t *testing.T) {
	t.Parallel()
	store := stubStore{}
	server := httpServer.New(
		&config.Config{HTTPPort: "0"},
		feedService.New(store),
		monitorService.NewStatsCollector(store, store, store),
	)

	if err := server.Shutdown(context.Background()); err != nil {
		t.Fatalf("Shutdown() error = %v", err)
	}
	if err := server.Start(); err != nil {
		t.Errorf("Start() after Shutdown error = %v, want nil", err)
	}
}
