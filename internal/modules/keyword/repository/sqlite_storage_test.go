package repository_test

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/repository"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/database"
	sharedErrors "github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
)

func newRepo(t *testing.T) repository.Repository {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "keywords.db"))
	if err != nil {
		t.Fatalf("database.Open() error = %v", err)
	}
	t.Cleanup(func() { database.Close(db) })
	return repository.NewSQLiteStorage(db)
}

func TestSQLiteStorage_ListKeepsInsertionOrderPerPolarity(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	for _, kw := range []*domain.Keyword{
		{Text: "zeta"},
		{Text: "caba", Minus: true},
		{Text: "Alpha"},
	} {
		if err := repo.Create(ctx, kw); err != nil {
			t.Fatalf("Create(%q) error = %v", kw.Text, err)
		}
		if kw.ID == 0 {
			t.Fatalf("Create(%q) did not assign an ID", kw.Text)
		}
	}

	search, err := repo.List(ctx, domain.PolaritySearch)
	if err != nil {
		t.Fatalf("List(search) error = %v", err)
	}
	if len(search) != 2 || search[0].Text != "zeta" || search[1].Text != "Alpha" {
		t.Fatalf("List(search) = %+v, want [zeta Alpha]", search)
	}

	minus, err := repo.List(ctx, domain.PolarityMinus)
	if err != nil {
		t.Fatalf("List(minus) error = %v", err)
	}
	if len(minus) != 1 || minus[0].Text != "caba" || !minus[0].Minus {
		t.Fatalf("List(minus) = %+v, want [caba]", minus)
	}
	if minus[0].CreatedAt.IsZero() {
		t.Error("CreatedAt was not stored")
	}
}

func TestSQLiteStorage_TextIsUniqueAcrossPolarities(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	if err := repo.Create(ctx, &domain.Keyword{Text: "spam"}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	err := repo.Create(ctx, &domain.Keyword{Text: "spam", Minus: true})
	if !errors.Is(err, sharedErrors.ErrDuplicateKeyword) {
		t.Fatalf("duplicate Create() error = %v, want ErrDuplicateKeyword", err)
	}

	// Uniqueness is on the raw string
	if err := repo.Create(ctx, &domain.Keyword{Text: "Spam", Minus: true}); err != nil {
		t.Fatalf("Create(Spam) error = %v", err)
	}
}

func TestSQLiteStorage_Delete(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	repo := newRepo(t)

	kw := &domain.Keyword{Text: "gone"}
	if err := repo.Create(ctx, kw); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	if err := repo.Delete(ctx, kw.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if err := repo.Delete(ctx, kw.ID); !errors.Is(err, sharedErrors.ErrKeywordNotFound) {
		t.Fatalf("second Delete() error = %v, want ErrKeywordNotFound", err)
	}

	left, err := repo.List(ctx, domain.PolaritySearch)
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(left) != 0 {
		t.Fatalf("List() = %+v, want empty", left)
	}
}
