package domain

import "errors"

var (
	ErrInvalidProfileID       = errors.New("invalid profile id")
	ErrPlayerNotFound         = errors.New("player not found")
	ErrAliasNotFound          = errors.New("alias not found")
	ErrTemporarilyUnavailable = errors.New("temporarily unavailable")
	ErrNoGames                = errors.New("no games found")
)
