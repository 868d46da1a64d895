package repository

import (
	"context"
	"time"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/hit/domain"
)

// Repository defines the interface for hit persistence
type Repository interface {
	Save(ctx context.Context, hit *domain.Hit) error
	// Recent returns at most limit hits, newest first.
	Recent(ctx context.Context, limit int) ([]*domain.Hit, error)
	CountSince(ctx context.Context, since time.Time) (int, error)
}
