package inmemory

import (
	"context"
	"sync"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
)

// WalletRepositoryImpl represents an in memory storage for wallet roots.
type WalletRepositoryImpl struct {
	roots map[string]domain.WalletRoot
	lock  *sync.RWMutex
}

// NewWalletRepositoryImpl returns a new empty WalletRepositoryImpl.
func NewWalletRepositoryImpl() *WalletRepositoryImpl {
	return &WalletRepositoryImpl{
		roots: map[string]domain.WalletRoot{},
		lock:  &sync.RWMutex{},
	}
}

func (r *WalletRepositoryImpl) CreateWalletRoot(
	ctx context.Context, root domain.WalletRoot,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.roots[root.ID]; ok {
		return domain.ErrWalletRootAlreadyExists
	}
	r.roots[root.ID] = root
	return nil
}

func (r *WalletRepositoryImpl) GetWalletRoot(
	ctx context.Context, id string,
) (*domain.WalletRoot, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	root, ok := r.roots[id]
	if !ok {
		return nil, nil
	}
	return &root, nil
}

func (r *WalletRepositoryImpl) GetAllWalletRoots(
	ctx context.Context,
) ([]domain.WalletRoot, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	roots := make([]domain.WalletRoot, 0, len(r.roots))
	for _, root := range r.roots {
		roots = append(roots, root)
	}
	return roots, nil
}

func (r *WalletRepositoryImpl) GetRestoringWalletRoots(
	ctx context.Context,
) ([]domain.WalletRoot, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	roots := make([]domain.WalletRoot, 0)
	for _, root := range r.roots {
		if root.Restoration.IsRestoring() {
			roots = append(roots, root)
		}
	}
	return roots, nil
}

func (r *WalletRepositoryImpl) UpdateWalletRoot(
	ctx context.Context,
	id string,
	updateFn func(root *domain.WalletRoot) (*domain.WalletRoot, error),
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	root, ok := r.roots[id]
	if !ok {
		return domain.ErrWalletRootNotFound
	}

	updatedRoot, err := updateFn(&root)
	if err != nil {
		return err
	}

	r.roots[id] = *updatedRoot
	return nil
}

func (r *WalletRepositoryImpl) DeleteWalletRoot(
	ctx context.Context, id string,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	if _, ok := r.roots[id]; !ok {
		return domain.ErrWalletRootNotFound
	}
	delete(r.roots, id)
	return nil
}
