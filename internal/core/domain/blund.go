package domain

import (
	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Blund is a block paired with the data needed to undo it: the reference to
// its predecessor, the outputs it created and the outputs it consumed.
// Blunds are transient, they are produced by the node-sync layer and consumed
// by apply/rollback.
type Blund struct {
	Hash     chainhash.Hash
	PrevHash chainhash.Hash
	Height   uint64
	// Created lists the outputs the block added to the UTXO set.
	Created []UtxoEntry
	// Spent lists the outputs the block consumed. They are kept so that a
	// rollback can put them back.
	Spent []UtxoEntry
}

// Checkpoint returns the position of the block in the ledger history.
func (b Blund) Checkpoint() Checkpoint {
	return Checkpoint{
		Hash:   b.Hash,
		Height: b.Height,
	}
}
