package domain

// Snapshot is an immutable, versioned view of all wallet roots and the UTXO
// set at a specific ledger position. A new Snapshot is published each time
// the action worker commits an action; readers hold a reference to one
// Snapshot for the duration of their query and are never affected by later
// publications.
type Snapshot struct {
	Version uint64
	// Tip is the checkpoint of the newest applied block, nil before any
	// block has been applied.
	Tip   *Checkpoint
	Roots []WalletRoot
	Utxos map[OutpointKey]UtxoEntry
}

// EnumerateUtxos returns the entries of the UTXO set that satisfy the given
// predicate, applied while iterating.
func (s *Snapshot) EnumerateUtxos(predicate func(UtxoEntry) bool) []UtxoEntry {
	entries := make([]UtxoEntry, 0, len(s.Utxos))
	for _, u := range s.Utxos {
		if predicate(u) {
			entries = append(entries, u)
		}
	}
	return entries
}
