package dbbadger

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/TerrikNET/cardano-sl/internal/core/ports"
)

var ctx = context.Background()

func newTestDb(t *testing.T) ports.RepoManager {
	repoManager, err := NewRepoManager(t.TempDir(), nil)
	require.NoError(t, err)
	t.Cleanup(repoManager.Close)
	return repoManager
}

func TestRunTransaction(t *testing.T) {
	repoManager := newTestDb(t)
	blund := newBlund(1)

	// Writes made by a failing handler are discarded as a whole.
	_, err := repoManager.RunTransaction(
		ctx,
		false,
		func(ctx context.Context) (interface{}, error) {
			if err := repoManager.ChainRepository().PushBlund(ctx, blund); err != nil {
				return nil, err
			}
			if err := repoManager.UtxoRepository().AddUtxos(
				ctx, blund.Created,
			); err != nil {
				return nil, err
			}
			return nil, errors.New("something went wrong")
		},
	)
	require.EqualError(t, err, "something went wrong")

	tip, err := repoManager.ChainRepository().GetTip(ctx)
	require.NoError(t, err)
	require.Nil(t, tip)
	utxos, err := repoManager.UtxoRepository().GetAllUtxos(ctx)
	require.NoError(t, err)
	require.Empty(t, utxos)

	// A successful handler commits them in one step, visible to reads both
	// inside and outside the transaction.
	_, err = repoManager.RunTransaction(
		ctx,
		false,
		func(ctx context.Context) (interface{}, error) {
			if err := repoManager.ChainRepository().PushBlund(ctx, blund); err != nil {
				return nil, err
			}
			if err := repoManager.UtxoRepository().AddUtxos(
				ctx, blund.Created,
			); err != nil {
				return nil, err
			}
			tip, err := repoManager.ChainRepository().GetTip(ctx)
			if err != nil {
				return nil, err
			}
			require.NotNil(t, tip)
			require.True(t, tip.Equal(blund.Checkpoint()))
			return nil, nil
		},
	)
	require.NoError(t, err)

	tip, err = repoManager.ChainRepository().GetTip(ctx)
	require.NoError(t, err)
	require.NotNil(t, tip)
	require.True(t, tip.Equal(blund.Checkpoint()))
	utxos, err = repoManager.UtxoRepository().GetAllUtxos(ctx)
	require.NoError(t, err)
	require.Len(t, utxos, 1)
}
