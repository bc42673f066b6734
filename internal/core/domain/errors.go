package domain

import "errors"

var (
	ErrUnauthenticated = errors.New("authentication required")
	ErrUnauthorized    = errors.New("not the owner of this poll")
	ErrPollNotFound    = errors.New("poll not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrDuplicateVote   = errors.New("user has already voted on this poll")
	ErrUserNotFound    = errors.New("user not found")
	ErrEmailTaken      = errors.New("email already registered")
	ErrBadCredentials  = errors.New("invalid email or password")
)
