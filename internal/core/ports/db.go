package ports

import (
	"context"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
)

// RepoManager gives access to all the repositories of the persistent wallet
// state from a single place.
type RepoManager interface {
	WalletRepository() domain.WalletRepository
	UtxoRepository() domain.UtxoRepository
	ChainRepository() domain.ChainRepository

	// RunTransaction runs the handler within a single storage transaction
	// carried through the context: every repository write performed inside
	// commits in one atomic step, or not at all if the handler fails. The
	// action worker wraps each action in it, which is what keeps a
	// half-applied batch from ever reaching disk.
	RunTransaction(
		ctx context.Context,
		readOnly bool,
		handler func(ctx context.Context) (interface{}, error),
	) (interface{}, error)

	Close()
}
