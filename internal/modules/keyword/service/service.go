package service

import (
	"context"
	"strings"
	"time"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/repository"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
	"github.com/samber/lo"
	"github.com/samber/oops"
)

// Service handles keyword business logic
type Service struct {
	repo repository.Repository
}

// New creates a new keyword service
func New(repo repository.Repository) *Service {
	return &Service{
		repo: repo,
	}
}

// Add stores a new keyword. Only single words are accepted, since the
// matcher treats every entry as one substring.
func (s *Service) Add(ctx context.Context, text string, polarity domain.Polarity) (*domain.Keyword, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.ErrEmptyKeyword
	}
	if len(strings.Fields(text)) > 1 {
		return nil, oops.With("keyword", text).Wrap(errors.ErrMultiWordKeyword)
	}

	keyword := &domain.Keyword{
		Text:      text,
		Minus:     polarity == domain.PolarityMinus,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.repo.Create(ctx, keyword); err != nil {
		return nil, err
	}
	return keyword, nil
}

// Remove deletes a keyword by ID
func (s *Service) Remove(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// List returns keywords of one polarity in insertion order
func (s *Service) List(ctx context.Context, polarity domain.Polarity) ([]*domain.Keyword, error) {
	return s.repo.List(ctx, polarity)
}

// Texts returns the keyword strings of one polarity in insertion order
func (s *Service) Texts(ctx context.Context, polarity domain.Polarity) ([]string, error) {
	keywords, err := s.repo.List(ctx, polarity)
	if err != nil {
		return nil, err
	}
	return lo.Map(keywords, func(k *domain.Keyword, _ int) string {
		return k.Text
	}), nil
}
