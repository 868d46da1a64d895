package repository

import (
	"context"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/domain"
)

// Repository defines the interface for keyword persistence.
// Keyword text is unique across both polarities.
type Repository interface {
	// List returns keywords of one polarity in insertion order.
	List(ctx context.Context, polarity domain.Polarity) ([]*domain.Keyword, error)
	// Create inserts keyword and fills its ID. Returns ErrDuplicateKeyword if the text exists.
	Create(ctx context.Context, keyword *domain.Keyword) error
	// Delete removes a keyword by ID. Returns ErrKeywordNotFound if absent.
	Delete(ctx context.Context, id int64) error
}
