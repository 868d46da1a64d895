package service

import (
	"context"
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/gorilla/feeds"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/hit/domain"
	"github.com/samber/oops"
)

const (
	feedSize       = 50
	titleMaxLength = 100
)

// HitSource provides the newest delivered hits
type HitSource interface {
	Recent(ctx context.Context, limit int) ([]*domain.Hit, error)
}

// Service handles RSS feed generation
type Service struct {
	hits HitSource
}

// New creates a new feed service
func New(hits HitSource) *Service {
	return &Service{
		hits: hits,
	}
}

// GenerateFeed generates an RSS feed of the most recent keyword hits
func (s *Service) GenerateFeed(ctx context.Context, baseURL string) (*feeds.Feed, error) {
	hits, err := s.hits.Recent(ctx, feedSize)
	if err != nil {
		return nil, oops.With("context", "failed to get hits").Wrap(err)
	}

	feed := &feeds.Feed{
		Title:       "Keyword monitor hits",
		Link:        &feeds.Link{Href: fmt.Sprintf("%s/rss/hits", strings.TrimRight(baseURL, "/"))},
		Description: "Messages from monitored Telegram groups that matched a keyword",
		Created:     time.Now().UTC(),
	}
	if len(hits) > 0 {
		feed.Updated = hits[0].Date
	}

	feed.Items = make([]*feeds.Item, 0, len(hits))
	for _, hit := range hits {
		feed.Items = append(feed.Items, hitToFeedItem(hit))
	}

	return feed, nil
}

func hitToFeedItem(hit *domain.Hit) *feeds.Item {
	description := hit.Text
	if description == "" {
		description = "No text content"
	}

	content := fmt.Sprintf("<p><strong>%s</strong> in %s</p><p>%s</p>",
		html.EscapeString(hit.Keyword), html.EscapeString(hit.GroupTitle), html.EscapeString(description))

	item := &feeds.Item{
		Title:       fmt.Sprintf("[%s] %s", hit.Keyword, truncate(hit.Text, titleMaxLength)),
		Link:        &feeds.Link{Href: hit.Link},
		Description: description,
		Content:     content,
		Author:      &feeds.Author{Name: hit.Sender},
		Created:     hit.Date,
		Id:          fmt.Sprintf("%d-%d", hit.ChannelID, hit.MessageID),
	}
	return item
}

func truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
