package domain

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// ChainRepository is the persistence boundary for the wallet's applied chain:
// the ordered sequence of blunds the worker has committed. Keeping the blunds
// around is what makes rollback possible without asking the node for undo
// data.
type ChainRepository interface {
	// GetTip returns the checkpoint of the newest applied block, nil if no
	// block has been applied yet.
	GetTip(ctx context.Context) (*Checkpoint, error)
	// GetBlockCount returns the number of applied blocks.
	GetBlockCount(ctx context.Context) (int, error)
	// PushBlund appends an applied block and moves the tip forward.
	PushBlund(ctx context.Context, blund Blund) error
	// PopBlund removes the newest applied block and returns it so that its
	// effects can be undone. It fails with ErrEmptyChain if nothing has
	// been applied.
	PopBlund(ctx context.Context) (*Blund, error)
	// HasBlock returns whether a block with the given hash has been applied.
	HasBlock(ctx context.Context, hash chainhash.Hash) (bool, error)
}
