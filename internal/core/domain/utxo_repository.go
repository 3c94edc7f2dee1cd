package domain

import (
	"context"
)

// UtxoRepository is the persistence boundary for the wallet UTXO set. It is
// exclusively mutated by the action worker; every other component reads
// published snapshots instead.
type UtxoRepository interface {
	AddUtxos(ctx context.Context, utxos []UtxoEntry) error
	DeleteUtxos(ctx context.Context, keys []OutpointKey) error
	GetAllUtxos(ctx context.Context) ([]UtxoEntry, error)
	GetUtxoForKey(ctx context.Context, key OutpointKey) (*UtxoEntry, error)
}
