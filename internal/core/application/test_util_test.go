package application_test

import (
	"context"
	"testing"
	"time"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/TerrikNET/cardano-sl/internal/core/application"
	"github.com/TerrikNET/cardano-sl/internal/core/domain"
	"github.com/TerrikNET/cardano-sl/internal/core/ports"
	"github.com/TerrikNET/cardano-sl/internal/infrastructure/storage/db/inmemory"
	"github.com/TerrikNET/cardano-sl/internal/infrastructure/storage/snapshot"
)

var ctx = context.Background()

func hashOf(b byte) chainhash.Hash {
	var hash chainhash.Hash
	hash[0] = b
	return hash
}

var genesisHash = hashOf(0xee)

// newBlund builds a blund extending prev, with a deterministic hash derived
// from height and tag.
func newBlund(
	prev chainhash.Hash, height uint64, tag byte,
	created, spent []domain.UtxoEntry,
) domain.Blund {
	var hash chainhash.Hash
	hash[0] = byte(height)
	hash[1] = tag
	return domain.Blund{
		Hash:     hash,
		PrevHash: prev,
		Height:   height,
		Created:  created,
		Spent:    spent,
	}
}

// newChain builds a segment of length blocks on top of genesis, each block
// creating a single output of 1 coin paid to the given address.
func newChain(length int, address string) []domain.Blund {
	blunds := make([]domain.Blund, 0, length)
	prev := genesisHash
	for i := 1; i <= length; i++ {
		utxo := domain.UtxoEntry{
			TxID:    chainhash.HashH([]byte{byte(i)}).String(),
			VOut:    0,
			Address: address,
			Value:   1,
		}
		blund := newBlund(prev, uint64(i), 0, []domain.UtxoEntry{utxo}, nil)
		blunds = append(blunds, blund)
		prev = blund.Hash
	}
	return blunds
}

func newTestWorker(
	t *testing.T,
) (application.ActionWorker, ports.RepoManager, ports.SnapshotStore) {
	repoManager := inmemory.NewRepoManager()
	snapshotStore := snapshot.NewStore()
	worker := application.NewActionWorker(repoManager, snapshotStore, 16)
	worker.Start()
	t.Cleanup(worker.Stop)
	return worker, repoManager, snapshotStore
}

// submitAndWait submits the action and blocks until the worker has processed
// it, returning its outcome.
func submitAndWait(
	t *testing.T, worker application.ActionWorker, action domain.WalletAction,
) error {
	action.Done = make(chan error, 1)
	worker.Submit(action)
	select {
	case err := <-action.Done:
		return err
	case <-time.After(5 * time.Second):
		t.Fatal("action not processed in time")
		return nil
	}
}

// waitForSyncedRoot polls the wallet repository until the root leaves the
// restoring state.
func waitForSyncedRoot(
	t *testing.T, repoManager ports.RepoManager, rootID string,
) domain.WalletRoot {
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		root, err := repoManager.WalletRepository().GetWalletRoot(ctx, rootID)
		require.NoError(t, err)
		require.NotNil(t, root)
		if !root.Restoration.IsRestoring() {
			return *root
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatal("wallet root still restoring after timeout")
	return domain.WalletRoot{}
}
