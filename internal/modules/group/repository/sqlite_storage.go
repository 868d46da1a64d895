package repository

import (
	"context"
	"database/sql"
	stdErrors "errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

const groupColumns = `id, channel_id, link, title, is_active, created_at`

// SQLiteStorage implements Repository on the groups table
type SQLiteStorage struct {
	db *sqlx.DB
}

// NewSQLiteStorage creates a new SQLite-backed group repository
func NewSQLiteStorage(db *sqlx.DB) Repository {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) Get(ctx context.Context, channelID int64) (*domain.Group, error) {
	var group domain.Group
	err := s.db.GetContext(ctx, &group, `SELECT `+groupColumns+` FROM groups WHERE channel_id = ?`, channelID)
	if stdErrors.Is(err, sql.ErrNoRows) {
		return nil, oops.With("channel_id", channelID).Wrap(errors.ErrGroupNotFound)
	}
	if err != nil {
		return nil, oops.With("channel_id", channelID, "context", "failed to get group").Wrap(err)
	}
	return &group, nil
}

func (s *SQLiteStorage) List(ctx context.Context) ([]*domain.Group, error) {
	groups := []*domain.Group{}
	if err := s.db.SelectContext(ctx, &groups, `SELECT `+groupColumns+` FROM groups ORDER BY id`); err != nil {
		return nil, oops.With("context", "failed to list groups").Wrap(err)
	}
	return groups, nil
}

func (s *SQLiteStorage) ListActive(ctx context.Context) (map[int64]*domain.Group, error) {
	var groups []*domain.Group
	if err := s.db.SelectContext(ctx, &groups, `SELECT `+groupColumns+` FROM groups WHERE is_active = 1 ORDER BY id`); err != nil {
		return nil, oops.With("context", "failed to list active groups").Wrap(err)
	}
	return lo.KeyBy(groups, func(g *domain.Group) int64 {
		return g.ChannelID
	}), nil
}

func (s *SQLiteStorage) Create(ctx context.Context, group *domain.Group) error {
	if group.CreatedAt.IsZero() {
		group.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO groups (channel_id, link, title, is_active, created_at)
	          VALUES (:channel_id, :link, :title, :is_active, :created_at)
	          ON CONFLICT (channel_id) DO NOTHING`
	result, err := s.db.NamedExecContext(ctx, query, group)
	if err != nil {
		return oops.With("channel_id", group.ChannelID, "context", "failed to insert group").Wrap(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return oops.With("channel_id", group.ChannelID).Wrap(err)
	}
	if affected == 0 {
		return oops.With("channel_id", group.ChannelID).Wrap(errors.ErrRegistryConflict)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return oops.With("channel_id", group.ChannelID).Wrap(err)
	}
	group.ID = id
	return nil
}

func (s *SQLiteStorage) SetActive(ctx context.Context, channelID int64, active bool) (bool, error) {
	// The is_active guard makes the flip atomic: of two concurrent callers only one sees a change.
	result, err := s.db.ExecContext(ctx,
		`UPDATE groups SET is_active = ? WHERE channel_id = ? AND is_active <> ?`, active, channelID, active)
	if err != nil {
		return false, oops.With("channel_id", channelID, "active", active, "context", "failed to update group").Wrap(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return false, oops.With("channel_id", channelID).Wrap(err)
	}
	if affected > 0 {
		return true, nil
	}

	var exists bool
	err = s.db.GetContext(ctx, &exists, `SELECT EXISTS (SELECT 1 FROM groups WHERE channel_id = ?)`, channelID)
	if err != nil {
		return false, oops.With("channel_id", channelID, "context", "failed to check group").Wrap(err)
	}
	if !exists {
		return false, oops.With("channel_id", channelID).Wrap(errors.ErrGroupNotFound)
	}
	return false, nil
}
