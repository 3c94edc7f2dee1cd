package ports

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
)

// NodeService is the boundary toward the external blockchain node. The engine
// only ever consumes canonical-chain data through it, it never pushes state
// to the node.
type NodeService interface {
	// CurrentTip returns the checkpoint of the node's best block.
	CurrentTip(ctx context.Context) (domain.Checkpoint, error)
	// MostRecentMainBlock resolves a block reference to the most recent
	// block of the node's canonical chain at or before it. It returns nil
	// when the reference has no canonical ancestor above genesis.
	MostRecentMainBlock(
		ctx context.Context,
		genesis, from chainhash.Hash,
	) (*domain.Checkpoint, error)
	// BlockPredecessor returns the hash of the block preceding the given
	// one, nil for genesis.
	BlockPredecessor(
		ctx context.Context, hash chainhash.Hash,
	) (*chainhash.Hash, error)
	// BlocksBetween returns up to limit blunds following from (exclusive,
	// genesis when nil) toward to, oldest first.
	BlocksBetween(
		ctx context.Context,
		from *domain.Checkpoint,
		to domain.Checkpoint,
		limit int,
	) ([]domain.Blund, error)
	// WithNodeLock runs fn while holding exclusive access to the node's
	// internal state. Restoration continuation and fork resolution both
	// query that state and would race each other without it. The lock is
	// held only for the duration of the query, never across a
	// block-application step.
	WithNodeLock(ctx context.Context, fn func(ctx context.Context) error) error
}
