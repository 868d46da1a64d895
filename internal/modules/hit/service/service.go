package service

import (
	"context"
	"time"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/hit/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/hit/repository"
)

// DefaultLimit is how many hits Recent returns for a non-positive limit
const DefaultLimit = 50

// Service handles hit log business logic
type Service struct {
	repo repository.Repository
}

// New creates a new hit service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Record saves a delivered hit
func (s *Service) Record(ctx context.Context, hit *domain.Hit) error {
	return s.repo.Save(ctx, hit)
}

// Recent retrieves the newest hits
func (s *Service) Recent(ctx context.Context, limit int) ([]*domain.Hit, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return s.repo.Recent(ctx, limit)
}

// CountLastDay counts hits recorded in the last 24 hours
func (s *Service) CountLastDay(ctx context.Context) (int, error) {
	return s.repo.CountSince(ctx, time.Now().Add(-24*time.Hour))
}
