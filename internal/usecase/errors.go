package usecase

import "errors"

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrLockedWeek            = errors.New("week is locked")
	ErrUnknownGame           = errors.New("game is not on the pick slate")
	ErrInsufficientGames     = errors.New("not enough games to build the pick slate")
	ErrNotAStarter           = errors.New("player is not a starter")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
)
