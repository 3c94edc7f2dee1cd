package inmemory

import (
	"testing"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/stretchr/testify/require"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
)

func newBlund(height uint64) domain.Blund {
	var hash, prev chainhash.Hash
	hash[0] = byte(height)
	prev[0] = byte(height - 1)
	return domain.Blund{Hash: hash, PrevHash: prev, Height: height}
}

func TestChainRepository(t *testing.T) {
	repo := NewChainRepositoryImpl()

	tip, err := repo.GetTip(ctx)
	require.NoError(t, err)
	require.Nil(t, tip)

	first := newBlund(1)
	second := newBlund(2)
	require.NoError(t, repo.PushBlund(ctx, first))
	require.NoError(t, repo.PushBlund(ctx, second))

	tip, err = repo.GetTip(ctx)
	require.NoError(t, err)
	require.True(t, tip.Equal(second.Checkpoint()))

	count, err := repo.GetBlockCount(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, count)

	has, err := repo.HasBlock(ctx, first.Hash)
	require.NoError(t, err)
	require.True(t, has)

	popped, err := repo.PopBlund(ctx)
	require.NoError(t, err)
	require.Equal(t, second.Hash, popped.Hash)

	has, err = repo.HasBlock(ctx, second.Hash)
	require.NoError(t, err)
	require.False(t, has)

	_, err = repo.PopBlund(ctx)
	require.NoError(t, err)
	_, err = repo.PopBlund(ctx)
	require.EqualError(t, err, domain.ErrEmptyChain.Error())
}
