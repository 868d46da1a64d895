package service

import (
	"context"

	keywordDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/keyword/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/monitor/domain"
	"github.com/samber/oops"
)

type KeywordSource interface {
	Texts(ctx context.Context, polarity keywordDomain.Polarity) ([]string, error)
}

type HitCounter interface {
	CountLastDay(ctx context.Context) (int, error)
}

// StatsCollector gathers Stats for the status endpoints
type StatsCollector struct {
	groups   GroupSource
	keywords KeywordSource
	hits     HitCounter
}

func NewStatsCollector(groups GroupSource, keywords KeywordSource, hits HitCounter) *StatsCollector {
	return &StatsCollector{groups: groups, keywords: keywords, hits: hits}
}

func (c *StatsCollector) Collect(ctx context.Context) (domain.Stats, error) {
	groups, err := c.groups.ListActive(ctx)
	if err != nil {
		return domain.Stats{}, oops.With("context", "failed to count groups").Wrap(err)
	}
	keywords, err := c.keywords.Texts(ctx, keywordDomain.PolaritySearch)
	if err != nil {
		return domain.Stats{}, oops.With("context", "failed to count keywords").Wrap(err)
	}
	minus, err := c.keywords.Texts(ctx, keywordDomain.PolarityMinus)
	if err != nil {
		return domain.Stats{}, oops.With("context", "failed to count minus words").Wrap(err)
	}
	hits, err := c.hits.CountLastDay(ctx)
	if err != nil {
		return domain.Stats{}, oops.With("context", "failed to count hits").Wrap(err)
	}

	return domain.Stats{
		ActiveGroups: len(groups),
		Keywords:     len(keywords),
		MinusWords:   len(minus),
		HitsLastDay:  hits,
	}, nil
}
