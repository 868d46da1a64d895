package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
	"github.com/samber/oops"
)

// SQLiteStorage implements Repository on the keywords table
type SQLiteStorage struct {
	db *sqlx.DB
}

// NewSQLiteStorage creates a new SQLite-backed keyword repository
func NewSQLiteStorage(db *sqlx.DB) Repository {
	return &SQLiteStorage{db: db}
}

func (s *SQLiteStorage) List(ctx context.Context, polarity domain.Polarity) ([]*domain.Keyword, error) {
	keywords := []*domain.Keyword{}
	query := `SELECT id, keyword, minus_word, created_at FROM keywords WHERE minus_word = ? ORDER BY id`
	if err := s.db.SelectContext(ctx, &keywords, query, polarity == domain.PolarityMinus); err != nil {
		return nil, oops.With("polarity", polarity, "context", "failed to list keywords").Wrap(err)
	}
	return keywords, nil
}

func (s *SQLiteStorage) Create(ctx context.Context, keyword *domain.Keyword) error {
	if keyword.CreatedAt.IsZero() {
		keyword.CreatedAt = time.Now().UTC()
	}

	query := `INSERT INTO keywords (keyword, minus_word, created_at)
	          VALUES (:keyword, :minus_word, :created_at)
	          ON CONFLICT (keyword) DO NOTHING`
	result, err := s.db.NamedExecContext(ctx, query, keyword)
	if err != nil {
		return oops.With("keyword", keyword.Text, "context", "failed to insert keyword").Wrap(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return oops.With("keyword", keyword.Text).Wrap(err)
	}
	if affected == 0 {
		return oops.With("keyword", keyword.Text).Wrap(errors.ErrDuplicateKeyword)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return oops.With("keyword", keyword.Text).Wrap(err)
	}
	keyword.ID = id
	return nil
}

func (s *SQLiteStorage) Delete(ctx context.Context, id int64) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM keywords WHERE id = ?`, id)
	if err != nil {
		return oops.With("keyword_id", id, "context", "failed to delete keyword").Wrap(err)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return oops.With("keyword_id", id).Wrap(err)
	}
	if affected == 0 {
		return oops.With("keyword_id", id).Wrap(errors.ErrKeywordNotFound)
	}
	return nil
}
