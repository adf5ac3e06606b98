package util

import "errors"

var (
	ErrUserNotFound       = errors.New("user not found")
	ErrEmailRegistered    = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrAccountDisabled    = errors.New("account disabled")
	ErrPermissionDenied   = errors.New("permission denied")

	ErrModuleNotFound = errors.New("module not found")
	ErrModuleLocked   = errors.New("module locked")

	// ErrSessionActive is the InvalidState failure: a study session is
	// already open for the user.
	ErrSessionActive = errors.New("a study session is already active")

	// ErrAlreadyCompleted rejects a repeated completeModule call. It is
	// an idempotent guard, not a hard failure: callers treat it as a
	// success no-op and never re-award points.
	ErrAlreadyCompleted = errors.New("module already completed")

	ErrInvalidScore = errors.New("score must be between 0 and the number of questions")

	ErrAchievementNotFound = errors.New("achievement not found")
)
