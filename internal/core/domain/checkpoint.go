package domain

import (
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
)

// Checkpoint is an immutable reference to a position in the ledger history.
// Checkpoints are totally ordered along a single chain; comparing checkpoints
// that belong to different chains is meaningful only through the fork
// resolver.
type Checkpoint struct {
	Hash   chainhash.Hash
	Height uint64
}

func (c Checkpoint) Equal(other Checkpoint) bool {
	return c.Hash == other.Hash && c.Height == other.Height
}

func (c Checkpoint) String() string {
	return fmt.Sprintf("%s@%d", c.Hash.String(), c.Height)
}
