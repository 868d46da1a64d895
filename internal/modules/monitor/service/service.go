package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strings"

	classifierDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/classifier/domain"
	groupDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/domain"
	hitDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/hit/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/monitor/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
	"github.com/samber/oops"
)

// Classifier decides whether a message text should be forwarded
type Classifier interface {
	Classify(ctx context.Context, text string) (classifierDomain.Outcome, error)
}

// GroupSource lists the groups currently monitored
type GroupSource interface {
	ListActive(ctx context.Context) (map[int64]*groupDomain.Group, error)
}

// HitRecorder stores delivered hits
type HitRecorder interface {
	Record(ctx context.Context, hit *hitDomain.Hit) error
}

// Notifier delivers a formatted HTML message to a chat
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}

// Service runs every inbound message through the classifier and notifies
// the operator about matches
type Service struct {
	classifier   Classifier
	groups       GroupSource
	hits         HitRecorder
	notifier     Notifier
	notifyChatID int64
	logger       *slog.Logger
}

// New creates a new monitor service
func New(classifier Classifier, groups GroupSource, hits HitRecorder, notifier Notifier, notifyChatID int64) *Service {
	return &Service{
		classifier:   classifier,
		groups:       groups,
		hits:         hits,
		notifier:     notifier,
		notifyChatID: notifyChatID,
		logger:       slog.Default().With("component", "monitor"),
	}
}

// SetLogger sets the logger
func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger.With("component", "monitor")
}

// HandleMessage processes one inbound message. Messages from chats that are
// not active groups and messages without text are dropped silently.
// The group registry and keyword sets are re-read for every message.
func (s *Service) HandleMessage(ctx context.Context, ev domain.Event) error {
	if strings.TrimSpace(ev.Text) == "" {
		return nil
	}

	groups, err := s.groups.ListActive(ctx)
	if err != nil {
		return oops.With("chat_id", ev.ChatID, "context", "failed to load active groups").Wrap(err)
	}
	group, ok := groups[ev.ChatID]
	if !ok {
		return nil
	}

	outcome, err := s.classifier.Classify(ctx, ev.Text)
	if err != nil {
		return oops.With("chat_id", ev.ChatID, "message_id", ev.MessageID, "context", "failed to classify message").Wrap(err)
	}

	keyword, matched := outcome.Keyword()
	if !matched {
		s.logger.DebugContext(ctx, "Message ignored", "chat_id", ev.ChatID, "message_id", ev.MessageID, "outcome", outcome.String())
		return nil
	}

	permalink := group.Permalink(ev.MessageID)
	text := FormatNotification(group, keyword, ev, permalink)
	if err := s.notifier.Send(ctx, s.notifyChatID, text); err != nil {
		return oops.With("chat_id", ev.ChatID, "message_id", ev.MessageID, "keyword", keyword).
			Wrap(stdErrors.Join(errors.ErrCollaboratorFailure, err))
	}
	s.logger.InfoContext(ctx, "Keyword hit delivered", "chat_id", ev.ChatID, "message_id", ev.MessageID, "keyword", keyword)

	hit := &hitDomain.Hit{
		ChannelID:  ev.ChatID,
		GroupTitle: group.Title,
		MessageID:  ev.MessageID,
		Keyword:    keyword,
		Sender:     ev.Sender(),
		Text:       ev.Text,
		Link:       permalink,
		Date:       ev.Date,
	}
	if err := s.hits.Record(ctx, hit); err != nil {
		s.logger.ErrorContext(ctx, "Failed to record hit", "chat_id", ev.ChatID, "message_id", ev.MessageID, "error", err)
	}

	return nil
}
