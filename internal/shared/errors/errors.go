package errors

import "errors"

var (
	ErrMissingBotToken = errors.New("TELEGRAM_BOT_TOKEN environment variable is required")
	ErrUnauthorized    = errors.New("unauthorized user")

	// ErrInvalidInput marks precondition violations such as classifying a non-letter rune.
	ErrInvalidInput = errors.New("invalid input")
	// ErrRegistryConflict is returned by the group store when a channel id is already registered.
	ErrRegistryConflict = errors.New("channel already registered")
	// ErrCollaboratorFailure wraps failures of external systems (join, send, resolve).
	ErrCollaboratorFailure = errors.New("collaborator failure")

	ErrGroupNotFound    = errors.New("group not found")
	ErrKeywordNotFound  = errors.New("keyword not found")
	ErrDuplicateKeyword = errors.New("keyword already exists")
	ErrMultiWordKeyword = errors.New("keyword must be a single word")
	ErrEmptyKeyword     = errors.New("keyword is empty")
	ErrClientNotReady   = errors.New("telegram client is not running")
)
