package domain

import (
	"encoding/hex"

	"github.com/btcsuite/btcd/btcutil"

	"github.com/TerrikNET/cardano-sl/pkg/hdcrypto"
)

// DecryptionCredentials is the precomputed key material needed to test
// whether an address belongs to a wallet. Deriving it from the root public
// key is expensive, testing a single address with it is cheap, so callers
// should derive once and reuse it across an entire balance query.
type DecryptionCredentials struct {
	RootID       string
	HdPassphrase []byte
}

// WalletRoot identifies one wallet. The ID is derived deterministically from
// the wallet's root public key, so importing the same key material always
// yields the same root.
type WalletRoot struct {
	ID           string
	HdPassphrase []byte
	Restoration  RestorationState
}

// NewWalletRoot derives a WalletRoot from the given root public key. A
// brand-new, empty wallet starts Synced; a wallet imported from an existing
// key with unknown history must be put in restoration by the caller via
// StartRestoration.
func NewWalletRoot(rootPubKey []byte) (*WalletRoot, error) {
	if len(rootPubKey) <= 0 {
		return nil, ErrNullRootPublicKey
	}

	passphrase, err := hdcrypto.DeriveHdPassphrase(rootPubKey)
	if err != nil {
		return nil, err
	}

	return &WalletRoot{
		ID:           hex.EncodeToString(btcutil.Hash160(rootPubKey)),
		HdPassphrase: passphrase,
		Restoration:  NewSyncedState(),
	}, nil
}

// StartRestoration puts the root in restoration toward the given target.
func (w *WalletRoot) StartRestoration(source *Checkpoint, target Checkpoint) {
	w.Restoration = NewRestoringState(source, target)
}

// Credentials returns the precomputed decryption credentials of the root.
func (w *WalletRoot) Credentials() DecryptionCredentials {
	return DecryptionCredentials{
		RootID:       w.ID,
		HdPassphrase: w.HdPassphrase,
	}
}
