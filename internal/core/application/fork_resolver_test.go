package application_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TerrikNET/cardano-sl/internal/core/application"
	"github.com/TerrikNET/cardano-sl/internal/core/domain"
	nodeinmemory "github.com/TerrikNET/cardano-sl/internal/infrastructure/node/inmemory"
)

// newForkedChains returns the segment [A B C] applied by the wallet and the
// replacement segment [B' C' D'] branching off A.
func newForkedChains() (applied, replacement []domain.Blund) {
	utxoA := domain.UtxoEntry{TxID: "a0", VOut: 0, Address: "addr", Value: 1}
	utxoB := domain.UtxoEntry{TxID: "b0", VOut: 0, Address: "addr", Value: 2}
	utxoC := domain.UtxoEntry{TxID: "c0", VOut: 0, Address: "addr", Value: 3}

	blockA := newBlund(genesisHash, 1, 0, []domain.UtxoEntry{utxoA}, nil)
	blockB := newBlund(blockA.Hash, 2, 0, []domain.UtxoEntry{utxoB}, nil)
	blockC := newBlund(blockB.Hash, 3, 0, []domain.UtxoEntry{utxoC}, nil)

	utxoB2 := domain.UtxoEntry{TxID: "b1", VOut: 0, Address: "addr", Value: 20}
	utxoC2 := domain.UtxoEntry{TxID: "c1", VOut: 0, Address: "addr", Value: 30}
	utxoD2 := domain.UtxoEntry{TxID: "d1", VOut: 0, Address: "addr", Value: 40}

	blockB2 := newBlund(blockA.Hash, 2, 1, []domain.UtxoEntry{utxoB2}, nil)
	blockC2 := newBlund(blockB2.Hash, 3, 1, []domain.UtxoEntry{utxoC2}, nil)
	blockD2 := newBlund(blockC2.Hash, 4, 1, []domain.UtxoEntry{utxoD2}, nil)

	applied = []domain.Blund{blockA, blockB, blockC}
	replacement = []domain.Blund{blockB2, blockC2, blockD2}
	return
}

func TestFindCommonAncestor(t *testing.T) {
	worker, repoManager, _ := newTestWorker(t)
	applied, replacement := newForkedChains()

	nodeSvc := nodeinmemory.NewService(genesisHash)
	nodeSvc.SetChain(applied)

	require.NoError(
		t, submitAndWait(t, worker, domain.NewApplyBlocksAction(applied)),
	)

	// The node abandons B and C in favor of the longer branch.
	canonical := append([]domain.Blund{applied[0]}, replacement...)
	nodeSvc.SetChain(canonical)

	resolver := application.NewForkResolver(
		repoManager, nodeSvc, worker, genesisHash, 0,
	)

	ancestor, err := resolver.FindCommonAncestor(ctx, replacement)
	require.NoError(t, err)
	require.NotNil(t, ancestor)
	require.True(t, ancestor.Equal(applied[0].Checkpoint()))
}

func TestSwitchToFork(t *testing.T) {
	worker, repoManager, snapshotStore := newTestWorker(t)
	applied, replacement := newForkedChains()

	nodeSvc := nodeinmemory.NewService(genesisHash)
	nodeSvc.SetChain(applied)

	require.NoError(
		t, submitAndWait(t, worker, domain.NewApplyBlocksAction(applied)),
	)

	canonical := append([]domain.Blund{applied[0]}, replacement...)
	nodeSvc.SetChain(canonical)

	resolver := application.NewForkResolver(
		repoManager, nodeSvc, worker, genesisHash, 0,
	)

	err := resolver.SwitchToFork(ctx, replacement)
	require.NoError(t, err)

	tip, err := repoManager.ChainRepository().GetTip(ctx)
	require.NoError(t, err)
	require.True(t, tip.Equal(replacement[2].Checkpoint()))

	// Outputs of the abandoned branch are gone, outputs of the new branch
	// and of the shared prefix are there.
	current := snapshotStore.Current()
	require.Len(t, current.Utxos, 4)
	_, ok := current.Utxos[domain.OutpointKey{TxID: "a0", VOut: 0}]
	require.True(t, ok)
	_, ok = current.Utxos[domain.OutpointKey{TxID: "b0", VOut: 0}]
	require.False(t, ok)
	_, ok = current.Utxos[domain.OutpointKey{TxID: "d1", VOut: 0}]
	require.True(t, ok)
}

func TestFailingFindCommonAncestor(t *testing.T) {
	worker, repoManager, _ := newTestWorker(t)
	applied, replacement := newForkedChains()

	nodeSvc := nodeinmemory.NewService(genesisHash)
	nodeSvc.SetChain(applied)

	resolver := application.NewForkResolver(
		repoManager, nodeSvc, worker, genesisHash, 0,
	)

	t.Run("empty_segment", func(t *testing.T) {
		_, err := resolver.FindCommonAncestor(ctx, nil)
		require.EqualError(t, err, application.ErrEmptyForkSegment.Error())
	})

	t.Run("unknown_predecessor", func(t *testing.T) {
		orphan := newBlund(hashOf(0xcc), 9, 2, nil, nil)
		_, err := resolver.FindCommonAncestor(ctx, []domain.Blund{orphan})
		require.EqualError(t, err, domain.ErrForkAncestorNotFound.Error())
	})

	t.Run("nothing_applied", func(t *testing.T) {
		// The wallet applied no block yet, so even a segment branching
		// off the node's chain has no resolvable ancestor.
		_, err := resolver.FindCommonAncestor(ctx, replacement)
		require.EqualError(t, err, domain.ErrForkAncestorNotFound.Error())
	})
}
