package inmemory

import (
	"context"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
	"github.com/TerrikNET/cardano-sl/internal/core/ports"
)

// RepoManager holds all the in-memory repositories in a single data
// structure. It backs unit tests and ephemeral runs.
type RepoManager struct {
	walletRepository domain.WalletRepository
	utxoRepository   domain.UtxoRepository
	chainRepository  domain.ChainRepository
}

// NewRepoManager returns a RepoManager with empty repositories.
func NewRepoManager() ports.RepoManager {
	return &RepoManager{
		walletRepository: NewWalletRepositoryImpl(),
		utxoRepository:   NewUtxoRepositoryImpl(),
		chainRepository:  NewChainRepositoryImpl(),
	}
}

func (d *RepoManager) WalletRepository() domain.WalletRepository {
	return d.walletRepository
}

func (d *RepoManager) UtxoRepository() domain.UtxoRepository {
	return d.utxoRepository
}

func (d *RepoManager) ChainRepository() domain.ChainRepository {
	return d.chainRepository
}

// RunTransaction runs the handler directly. The in-memory repositories hold
// process-local state with nothing durable to half-apply, so there is no
// transaction to carry.
func (d *RepoManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	return handler(ctx)
}

func (d *RepoManager) Close() {}
