// Package mtproto runs the user-account session that receives group messages
// and owns the account's group memberships.
package mtproto

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"github.com/gotd/td/session"
	"github.com/gotd/td/telegram"
	"github.com/gotd/td/telegram/auth"
	"github.com/gotd/td/telegram/updates"
	updhook "github.com/gotd/td/telegram/updates/hook"
	"github.com/gotd/td/tg"
	monitorDomain "github.com/reshetovitsme/tg-keyword-monitor/internal/modules/monitor/domain"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/config"
	"github.com/reshetovitsme/tg-keyword-monitor/internal/shared/errors"
	"github.com/samber/oops"
)

// MessageHandler receives every inbound group message
type MessageHandler interface {
	HandleMessage(ctx context.Context, ev monitorDomain.Event) error
}

// Client wraps a gotd user session
type Client struct {
	cfg     *config.Config
	client  *telegram.Client
	gaps    *updates.Manager
	handler MessageHandler
	logger  *slog.Logger

	codeIn  io.Reader
	codeOut io.Writer

	mu  sync.RWMutex
	api *tg.Client
}

// New creates a client; nothing connects until Run
func New(cfg *config.Config, handler MessageHandler) *Client {
	c := &Client{
		cfg:     cfg,
		handler: handler,
		logger:  slog.Default().With("component", "mtproto"),
		codeIn:  os.Stdin,
		codeOut: os.Stderr,
	}

	c.gaps = c.newUpdateManager()
	c.client = telegram.NewClient(cfg.TelegramAPIID, cfg.TelegramAPIHash, telegram.Options{
		SessionStorage: &session.FileStorage{Path: cfg.SessionPath},
		UpdateHandler:  c.gaps,
		Middlewares:    []telegram.Middleware{updhook.UpdateHook(c.gaps.Handle)},
	})
	return c
}

// newUpdateManager expands short updates into full messages and refetches
// missed updates after gaps and reconnects.
func (c *Client) newUpdateManager() *updates.Manager {
	dispatcher := tg.NewUpdateDispatcher()
	dispatcher.OnNewChannelMessage(c.onNewChannelMessage)
	dispatcher.OnNewMessage(c.onNewMessage)
	return updates.New(updates.Config{Handler: dispatcher})
}

// SetLogger sets the logger
func (c *Client) SetLogger(logger *slog.Logger) {
	c.logger = logger.With("component", "mtproto")
}

// Run connects, logs in if the session is new and blocks until ctx is done.
// onReady runs in its own goroutine once the account is authorized and
// update handling has started.
func (c *Client) Run(ctx context.Context, onReady func(ctx context.Context)) error {
	if err := os.MkdirAll(filepath.Dir(c.cfg.SessionPath), 0o755); err != nil {
		return oops.With("session_path", c.cfg.SessionPath, "context", "failed to create session directory").Wrap(err)
	}

	return c.client.Run(ctx, func(ctx context.Context) error {
		flow := auth.NewFlow(
			auth.Constant(c.cfg.TelegramPhone, c.cfg.TelegramPassword, terminalCode(c.codeIn, c.codeOut)),
			auth.SendCodeOptions{},
		)
		if err := c.client.Auth().IfNecessary(ctx, flow); err != nil {
			return oops.With("phone", c.cfg.TelegramPhone, "context", "failed to authorize user session").Wrap(err)
		}

		self, err := c.client.Self(ctx)
		if err != nil {
			return oops.With("context", "failed to get current user").Wrap(err)
		}
		c.logger.InfoContext(ctx, "User session authorized", "user_id", self.ID, "username", self.Username)

		c.mu.Lock()
		c.api = c.client.API()
		c.mu.Unlock()
		defer func() {
			c.mu.Lock()
			c.api = nil
			c.mu.Unlock()
		}()

		return c.gaps.Run(ctx, c.client.API(), self.ID, updates.AuthOptions{
			OnStart: func(ctx context.Context) {
				c.logger.InfoContext(ctx, "Update recovery started")
				if onReady != nil {
					go onReady(ctx)
				}
			},
		})
	})
}

func (c *Client) rawAPI() (*tg.Client, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.api == nil {
		return nil, errors.ErrClientNotReady
	}
	return c.api, nil
}
