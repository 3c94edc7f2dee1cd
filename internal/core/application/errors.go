package application

import "errors"

var (
	// ErrEmptyForkSegment is thrown when a fork switch is requested with no
	// replacement blocks
	ErrEmptyForkSegment = errors.New("fork segment must contain at least one block")
	// ErrRestorationAlreadyRunning is thrown when starting a restoration for
	// a root that already has one in progress
	ErrRestorationAlreadyRunning = errors.New("restoration already in progress for wallet root")
)
