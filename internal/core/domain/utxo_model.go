package domain

// OutpointKey represents the ID of a UtxoEntry, composed by its txid and vout.
type OutpointKey struct {
	TxID string
	VOut uint32
}

// UtxoEntry is the data structure representing a spendable output tracked for
// a wallet: the outpoint it can be redeemed by, the payment address it was
// sent to and its coin value.
type UtxoEntry struct {
	TxID    string
	VOut    uint32
	Address string
	Value   Coin
}

// Key returns the OutpointKey of the entry.
func (u UtxoEntry) Key() OutpointKey {
	return OutpointKey{
		TxID: u.TxID,
		VOut: u.VOut,
	}
}

// IsKeyEqual returns whether the entry is identified by the given key.
func (u UtxoEntry) IsKeyEqual(key OutpointKey) bool {
	return u.TxID == key.TxID && u.VOut == key.VOut
}
