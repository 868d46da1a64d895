package mtproto

import (
	"context"
	stdErrors "errors"

	"github.com/gotd/td/telegram/message/peer"
	"github.com/gotd/td/telegram/query"
	"github.com/gotd/td/telegram/query/dialogs"
	"github.com/gotd/td/tg"
	"github.com/gotd/td/tgerr"
	groupDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/group/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
	"github.com/samber/oops"
)

const dialogBatchSize = 100

// LiveChannelIDs lists every group and channel the account is a member of,
// in Bot API id form.
func (c *Client) LiveChannelIDs(ctx context.Context) (map[int64]struct{}, error) {
	api, err := c.rawAPI()
	if err != nil {
		return nil, err
	}

	ids := make(map[int64]struct{})
	err = query.GetDialogs(api).BatchSize(dialogBatchSize).ForEach(ctx, func(ctx context.Context, elem dialogs.Elem) error {
		if id, ok := inputPeerChatID(elem.Peer); ok {
			ids[id] = struct{}{}
		}
		return nil
	})
	if err != nil {
		return nil, oops.With("context", "failed to iterate dialogs").Wrap(err)
	}
	return ids, nil
}

// Join joins the group behind action.Link. Being a member already is not an error.
func (c *Client) Join(ctx context.Context, action groupDomain.JoinAction) error {
	api, err := c.rawAPI()
	if err != nil {
		return err
	}

	if hash, ok := groupDomain.InviteHash(action.Link); ok {
		_, err := api.MessagesImportChatInvite(ctx, hash)
		if err != nil && !tgerr.Is(err, "USER_ALREADY_PARTICIPANT") {
			return oops.With("channel_id", action.ChannelID, "link", action.Link).Wrap(stdErrors.Join(errors.ErrCollaboratorFailure, err))
		}
		return nil
	}

	channel, err := c.resolveChannel(ctx, api, action.Link)
	if err != nil {
		return oops.With("channel_id", action.ChannelID).Wrap(err)
	}
	if _, err := api.ChannelsJoinChannel(ctx, channel); err != nil {
		return oops.With("channel_id", action.ChannelID, "link", action.Link).Wrap(stdErrors.Join(errors.ErrCollaboratorFailure, err))
	}
	return nil
}

// Resolve looks up the id and title of the group behind link. Resolving an
// invite link the account has not used yet joins it, since that is the only
// way to learn the group id.
func (c *Client) Resolve(ctx context.Context, link string) (groupDomain.ChannelInfo, error) {
	api, err := c.rawAPI()
	if err != nil {
		return groupDomain.ChannelInfo{}, err
	}

	if hash, ok := groupDomain.InviteHash(link); ok {
		return c.resolveInvite(ctx, api, hash)
	}

	channel, err := c.resolveChannel(ctx, api, link)
	if err != nil {
		return groupDomain.ChannelInfo{}, err
	}

	result, err := api.ChannelsGetChannels(ctx, []tg.InputChannelClass{channel})
	if err != nil {
		return groupDomain.ChannelInfo{}, oops.With("link", link).Wrap(stdErrors.Join(errors.ErrCollaboratorFailure, err))
	}

	var chats []tg.ChatClass
	switch r := result.(type) {
	case *tg.MessagesChats:
		chats = r.Chats
	case *tg.MessagesChatsSlice:
		chats = r.Chats
	}
	return firstChatInfo(chats, link)
}

func (c *Client) resolveChannel(ctx context.Context, api *tg.Client, link string) (*tg.InputChannel, error) {
	name, ok := groupDomain.Username(link)
	if !ok {
		return nil, oops.With("link", link).Wrapf(errors.ErrInvalidInput, "not a public group link")
	}

	inputPeer, err := peer.DefaultResolver(api).ResolveDomain(ctx, name)
	if err != nil {
		return nil, oops.With("link", link).Wrap(stdErrors.Join(errors.ErrCollaboratorFailure, err))
	}

	channel, ok := inputPeer.(*tg.InputPeerChannel)
	if !ok {
		return nil, oops.With("link", link).Wrapf(errors.ErrInvalidInput, "link does not point to a group")
	}
	return &tg.InputChannel{ChannelID: channel.ChannelID, AccessHash: channel.AccessHash}, nil
}

func (c *Client) resolveInvite(ctx context.Context, api *tg.Client, hash string) (groupDomain.ChannelInfo, error) {
	invite, err := api.MessagesCheckChatInvite(ctx, hash)
	if err != nil {
		return groupDomain.ChannelInfo{}, oops.With("invite_hash", hash).Wrap(stdErrors.Join(errors.ErrCollaboratorFailure, err))
	}

	switch inv := invite.(type) {
	case *tg.ChatInviteAlready:
		return chatInfo(inv.Chat)
	case *tg.ChatInvitePeek:
		return chatInfo(inv.Chat)
	}

	updates, err := api.MessagesImportChatInvite(ctx, hash)
	if err != nil {
		return groupDomain.ChannelInfo{}, oops.With("invite_hash", hash).Wrap(stdErrors.Join(errors.ErrCollaboratorFailure, err))
	}
	u, ok := updates.(*tg.Updates)
	if !ok {
		return groupDomain.ChannelInfo{}, oops.With("invite_hash", hash).Errorf("unexpected join response %T", updates)
	}
	return firstChatInfo(u.Chats, hash)
}

func firstChatInfo(chats []tg.ChatClass, link string) (groupDomain.ChannelInfo, error) {
	for _, chat := range chats {
		if info, err := chatInfo(chat); err == nil {
			return info, nil
		}
	}
	return groupDomain.ChannelInfo{}, oops.With("link", link).Wrapf(errors.ErrInvalidInput, "no group found")
}

func chatInfo(chat tg.ChatClass) (groupDomain.ChannelInfo, error) {
	switch ch := chat.(type) {
	case *tg.Channel:
		return groupDomain.ChannelInfo{ChannelID: groupDomain.ChannelIDFromMTProto(ch.ID), Title: ch.Title}, nil
	case *tg.Chat:
		return groupDomain.ChannelInfo{ChannelID: groupDomain.ChatIDFromMTProto(ch.ID), Title: ch.Title}, nil
	default:
		return groupDomain.ChannelInfo{}, oops.Wrapf(errors.ErrInvalidInput, "unsupported chat type %T", chat)
	}
}

func inputPeerChatID(p tg.InputPeerClass) (int64, bool) {
	switch p := p.(type) {
	case *tg.InputPeerChannel:
		return groupDomain.ChannelIDFromMTProto(p.ChannelID), true
	case *tg.InputPeerChat:
		return groupDomain.ChatIDFromMTProto(p.ChatID), true
	default:
		return 0, false
	}
}
