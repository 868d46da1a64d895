package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/hit/domain"
	"github.com/samber/oops"
)

// SQLiteStorage implements Repository on the hits table
type SQLiteStorage struct {
	db *sqlx.DB
}

// NewSQLiteStorage creates a new SQLite-backed hit repository
func NewSQLiteStorage(db *sqlx.DB) Repository {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) Save(ctx context.Context, hit *domain.Hit) error {
	if hit.CreatedAt.IsZero() {
		hit.CreatedAt = time.Now().UTC()
	}
	if hit.Date.IsZero() {
		hit.Date = hit.CreatedAt
	}
	hit.Date = hit.Date.UTC()

	query := `INSERT INTO hits (channel_id, group_title, message_id, keyword, sender, text, link, date, created_at)
	          VALUES (:channel_id, :group_title, :message_id, :keyword, :sender, :text, :link, :date, :created_at)`
	result, err := s.db.NamedExecContext(ctx, query, hit)
	if err != nil {
		return oops.With("channel_id", hit.ChannelID, "message_id", hit.MessageID, "context", "failed to save hit").Wrap(err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return oops.With("channel_id", hit.ChannelID, "message_id", hit.MessageID).Wrap(err)
	}
	hit.ID = id
	return nil
}

func (s *SQLiteStorage) Recent(ctx context.Context, limit int) ([]*domain.Hit, error) {
	hits := []*domain.Hit{}
	query := `SELECT id, channel_id, group_title, message_id, keyword, sender, text, link, date, created_at
	          FROM hits ORDER BY date DESC, id DESC LIMIT ?`
	if err := s.db.SelectContext(ctx, &hits, query, limit); err != nil {
		return nil, oops.With("limit", limit, "context", "failed to list hits").Wrap(err)
	}
	return hits, nil
}

func (s *SQLiteStorage) CountSince(ctx context.Context, since time.Time) (int, error) {
	var count int
	if err := s.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM hits WHERE date >= ?`, since.UTC()); err != nil {
		return 0, oops.With("since", since, "context", "failed to count hits").Wrap(err)
	}
	return count, nil
}
