package dbbadger

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
)

func TestAddAndDeleteUtxos(t *testing.T) {
	repo := newTestDb(t).UtxoRepository()

	utxos := []domain.UtxoEntry{
		{TxID: "aa", VOut: 0, Address: "addr1", Value: 10},
		{TxID: "aa", VOut: 1, Address: "addr2", Value: 5},
		{TxID: "bb", VOut: 0, Address: "addr1", Value: 7},
	}
	require.NoError(t, repo.AddUtxos(ctx, utxos))

	allUtxos, err := repo.GetAllUtxos(ctx)
	require.NoError(t, err)
	require.Len(t, allUtxos, 3)

	utxo, err := repo.GetUtxoForKey(ctx, domain.OutpointKey{TxID: "bb", VOut: 0})
	require.NoError(t, err)
	require.NotNil(t, utxo)
	require.Equal(t, domain.Coin(7), utxo.Value)

	// Deleting a key that is not there is not an error, rollback relies
	// on that.
	err = repo.DeleteUtxos(ctx, []domain.OutpointKey{
		{TxID: "aa", VOut: 0},
		{TxID: "zz", VOut: 0},
	})
	require.NoError(t, err)

	allUtxos, err = repo.GetAllUtxos(ctx)
	require.NoError(t, err)
	require.Len(t, allUtxos, 2)

	missing, err := repo.GetUtxoForKey(ctx, domain.OutpointKey{TxID: "aa", VOut: 0})
	require.NoError(t, err)
	require.Nil(t, missing)
}
