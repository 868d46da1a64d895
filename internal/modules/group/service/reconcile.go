package service

import (
	"slices"

	"github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/domain"
	"github.com/samber/lo"
)

// Reconcile returns one join action for every desired group that is not in
// the live membership set, ordered by channel id.
func Reconcile(desired map[int64]*domain.Group, live map[int64]struct{}) []domain.JoinAction {
	missing := lo.Filter(lo.Keys(desired), func(channelID int64, _ int) bool {
		_, joined := live[channelID]
		return !joined
	})
	slices.Sort(missing)

	return lo.Map(missing, func(channelID int64, _ int) domain.JoinAction {
		g := desired[channelID]
		return domain.JoinAction{ChannelID: channelID, Link: g.Link, Title: g.Title}
	})
}
