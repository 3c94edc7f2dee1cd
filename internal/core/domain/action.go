package domain

import (
	"github.com/google/uuid"
)

// WalletActionType is the tag of a WalletAction.
type WalletActionType int

const (
	// ApplyBlocks applies an ordered segment of blunds, oldest first.
	ApplyBlocks WalletActionType = iota
	// RollbackBlocks undoes the newest applied blocks.
	RollbackBlocks
)

// WalletAction is a mutating request submitted to the action worker. Actions
// are never persisted: if the process crashes mid-queue only committed state
// survives and in-flight actions must be re-derived by the node-sync layer.
type WalletAction struct {
	// ID correlates the action across log lines.
	ID   uuid.UUID
	Type WalletActionType
	// Blunds is the segment to apply, oldest first. Only set for ApplyBlocks.
	Blunds []Blund
	// Count is the number of blocks to undo. Only set for RollbackBlocks.
	Count int
	// Done, when not nil, receives the outcome of the action once it has
	// been processed. Submission itself stays fire-and-forget.
	Done chan error
}

// NewApplyBlocksAction returns an ApplyBlocks action for the given segment.
func NewApplyBlocksAction(blunds []Blund) WalletAction {
	return WalletAction{
		ID:     uuid.New(),
		Type:   ApplyBlocks,
		Blunds: blunds,
	}
}

// NewRollbackBlocksAction returns a RollbackBlocks action for the given count.
func NewRollbackBlocksAction(count int) WalletAction {
	return WalletAction{
		ID:    uuid.New(),
		Type:  RollbackBlocks,
		Count: count,
	}
}
