package repository

import (
	"context"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/domain"
)

// Repository defines the interface for the group registry.
// Channel id uniqueness is enforced here, not in memory.
type Repository interface {
	// Get returns the group with channelID or ErrGroupNotFound.
	Get(ctx context.Context, channelID int64) (*domain.Group, error)
	// List returns every group, active or not, in registration order.
	List(ctx context.Context) ([]*domain.Group, error)
	// ListActive returns active groups keyed by channel id.
	ListActive(ctx context.Context) (map[int64]*domain.Group, error)
	// Create inserts group. Returns ErrRegistryConflict if the channel id is taken.
	Create(ctx context.Context, group *domain.Group) error
	// SetActive sets the active flag and reports whether the row changed.
	// Returns ErrGroupNotFound if no row has channelID.
	SetActive(ctx context.Context, channelID int64, active bool) (bool, error)
}
