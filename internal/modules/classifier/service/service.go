package service

import (
	"context"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/classifier/domain"
	keywordDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/domain"
	"github.com/samber/oops"
)

// Classify decides whether text should be forwarded. Each step short-circuits:
// no keyword hit, then mixed-script evasion, then minus-word veto.
// Evasion is only checked once a keyword matched, as a trust check on the hit.
func Classify(text string, keywords, minusKeywords []string) domain.Outcome {
	keyword, ok := FindMatch(text, keywords)
	if !ok {
		return domain.Ignored(domain.IgnoreReasonNoMatch)
	}

	if DetectEvasion(text) {
		return domain.Ignored(domain.IgnoreReasonSuspectedEvasion)
	}

	if _, suppressed := FindMatch(text, minusKeywords); suppressed {
		return domain.Ignored(domain.IgnoreReasonSuppressedByMinusWord)
	}

	return domain.Matched(keyword)
}

// KeywordSource provides keyword texts in registry order.
type KeywordSource interface {
	Texts(ctx context.Context, polarity keywordDomain.Polarity) ([]string, error)
}

// Service classifies messages against the keyword sets currently stored.
type Service struct {
	keywords KeywordSource
}

// New creates a new classifier service
func New(keywords KeywordSource) *Service {
	return &Service{keywords: keywords}
}

// Classify loads both keyword sets and runs the pipeline. The sets are read
// on every call because administrators edit them while the monitor runs.
func (s *Service) Classify(ctx context.Context, text string) (domain.Outcome, error) {
	keywords, err := s.keywords.Texts(ctx, keywordDomain.PolaritySearch)
	if err != nil {
		return domain.Outcome{}, oops.With("context", "failed to load keywords").Wrap(err)
	}

	// Skip the second query when nothing can match
	if _, ok := FindMatch(text, keywords); !ok {
		return domain.Ignored(domain.IgnoreReasonNoMatch), nil
	}

	minusKeywords, err := s.keywords.Texts(ctx, keywordDomain.PolarityMinus)
	if err != nil {
		return domain.Outcome{}, oops.With("context", "failed to load minus keywords").Wrap(err)
	}

	return Classify(text, keywords, minusKeywords), nil
}
