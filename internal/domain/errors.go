package domain

import "errors"

var (
	// ErrQuizNotFound indicates the quiz does not exist in the catalog.
	ErrQuizNotFound = errors.New("quiz not found")
	// ErrPlayerNotFound indicates the player record could not be loaded.
	ErrPlayerNotFound = errors.New("player not found")
	// ErrQuizNotVerified is returned when a player tries to start an unverified quiz.
	ErrQuizNotVerified = errors.New("quiz is not verified")
	// ErrAttemptInProgress is returned when a player starts a quiz they already started.
	ErrAttemptInProgress = errors.New("attempt already in progress")
	// ErrNoActiveAttempt is returned at finish when the session entry is gone.
	// The store cannot tell an expired entry from one that never existed.
	ErrNoActiveAttempt = errors.New("attempt timed out or was never started")
)
