package domain

import (
	"context"
)

// WalletRepository is the persistence boundary for wallet roots and their
// restoration state.
type WalletRepository interface {
	CreateWalletRoot(ctx context.Context, root WalletRoot) error
	GetWalletRoot(ctx context.Context, id string) (*WalletRoot, error)
	GetAllWalletRoots(ctx context.Context) ([]WalletRoot, error)
	// GetRestoringWalletRoots returns the roots whose persisted state is
	// Restoring, so that restoration can be resumed at startup.
	GetRestoringWalletRoots(ctx context.Context) ([]WalletRoot, error)
	UpdateWalletRoot(
		ctx context.Context,
		id string,
		updateFn func(root *WalletRoot) (*WalletRoot, error),
	) error
	DeleteWalletRoot(ctx context.Context, id string) error
}
