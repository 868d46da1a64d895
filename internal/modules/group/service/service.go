package service

import (
	"context"
	stdErrors "errors"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/repository"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
	"github.com/samber/oops"
)

// MembershipProvider is the account whose memberships the registry mirrors.
type MembershipProvider interface {
	// LiveChannelIDs returns the ids of every group the account has joined.
	LiveChannelIDs(ctx context.Context) (map[int64]struct{}, error)
	// Join joins one group. Failures are reported, never retried here.
	Join(ctx context.Context, action domain.JoinAction) error
}

// SyncReport summarizes one reconciliation pass.
type SyncReport struct {
	Desired int
	Live    int
	Joined  []int64
	Failed  []int64
}

// Service manages the group registry and keeps it in step with live memberships
type Service struct {
	repo     repository.Repository
	provider MembershipProvider
	logger   *slog.Logger
	syncMu   sync.Mutex
}

// New creates a new group service
func New(repo repository.Repository) *Service {
	return &Service{
		repo:   repo,
		logger: slog.Default().With("component", "group-service"),
	}
}

// SetProvider sets the membership provider used by Sync
func (s *Service) SetProvider(p MembershipProvider) {
	s.provider = p
}

// SetLogger sets the logger
func (s *Service) SetLogger(logger *slog.Logger) {
	s.logger = logger.With("component", "group-service")
}

// Get returns a registered group by channel id
func (s *Service) Get(ctx context.Context, channelID int64) (*domain.Group, error) {
	return s.repo.Get(ctx, channelID)
}

// List returns every registered group
func (s *Service) List(ctx context.Context) ([]*domain.Group, error) {
	return s.repo.List(ctx)
}

// ListActive returns active groups keyed by channel id
func (s *Service) ListActive(ctx context.Context) (map[int64]*domain.Group, error) {
	return s.repo.ListActive(ctx)
}

// Register adds a group to the registry. A channel id that is already
// registered is not an error: an inactive row is switched back on
// (Reactivated), an active one is left alone (AlreadyActive).
// New and reactivated groups trigger a reconciliation pass.
func (s *Service) Register(ctx context.Context, channelID int64, link, title string) (domain.RegistrationResult, error) {
	if channelID == 0 {
		return "", oops.With("link", link).Wrapf(errors.ErrInvalidInput, "channel id is zero")
	}
	if strings.TrimSpace(title) == "" {
		title = link
	}

	group := &domain.Group{
		ChannelID: channelID,
		Link:      link,
		Title:     title,
		IsActive:  true,
		CreatedAt: time.Now().UTC(),
	}

	result, err := s.insertOrReactivate(ctx, group)
	if err != nil {
		return "", err
	}
	s.logger.InfoContext(ctx, "Group registered", "channel_id", channelID, "link", link, "result", result)

	if result != domain.RegistrationResultAlreadyActive && s.provider != nil {
		if _, err := s.Sync(ctx); err != nil {
			s.logger.ErrorContext(ctx, "Reconciliation after registration failed", "channel_id", channelID, "error", err)
		}
	}

	return result, nil
}

func (s *Service) insertOrReactivate(ctx context.Context, group *domain.Group) (domain.RegistrationResult, error) {
	err := s.repo.Create(ctx, group)
	if err == nil {
		return domain.RegistrationResultCreated, nil
	}
	if !stdErrors.Is(err, errors.ErrRegistryConflict) {
		return "", err
	}

	changed, err := s.repo.SetActive(ctx, group.ChannelID, true)
	if err != nil {
		return "", oops.With("channel_id", group.ChannelID, "context", "failed to reactivate group").Wrap(err)
	}
	if changed {
		return domain.RegistrationResultReactivated, nil
	}
	return domain.RegistrationResultAlreadyActive, nil
}

// Deactivate stops monitoring a group. The row is kept so a later
// registration of the same channel reactivates it.
func (s *Service) Deactivate(ctx context.Context, channelID int64) error {
	changed, err := s.repo.SetActive(ctx, channelID, false)
	if err != nil {
		return err
	}
	s.logger.InfoContext(ctx, "Group deactivated", "channel_id", channelID, "changed", changed)
	return nil
}

// Sync joins every active group missing from the provider's live list.
// A failed join is logged and counted; it does not stop the pass.
func (s *Service) Sync(ctx context.Context) (SyncReport, error) {
	if s.provider == nil {
		return SyncReport{}, errors.ErrClientNotReady
	}

	s.syncMu.Lock()
	defer s.syncMu.Unlock()

	desired, err := s.repo.ListActive(ctx)
	if err != nil {
		return SyncReport{}, err
	}

	live, err := s.provider.LiveChannelIDs(ctx)
	if err != nil {
		return SyncReport{}, oops.With("context", "failed to list live memberships").Wrap(stdErrors.Join(errors.ErrCollaboratorFailure, err))
	}

	report := SyncReport{Desired: len(desired), Live: len(live)}
	for _, action := range Reconcile(desired, live) {
		if err := s.provider.Join(ctx, action); err != nil {
			s.logger.WarnContext(ctx, "Failed to join group", "channel_id", action.ChannelID, "link", action.Link, "error", err)
			report.Failed = append(report.Failed, action.ChannelID)
			continue
		}
		s.logger.InfoContext(ctx, "Joined group", "channel_id", action.ChannelID, "link", action.Link)
		report.Joined = append(report.Joined, action.ChannelID)
	}

	s.logger.InfoContext(ctx, "Reconciliation finished",
		"desired", report.Desired, "live", report.Live, "joined", len(report.Joined), "failed", len(report.Failed))
	return report, nil
}
