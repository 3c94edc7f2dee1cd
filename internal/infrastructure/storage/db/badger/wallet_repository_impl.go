package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
)

type walletRepositoryImpl struct {
	db *DbManager
}

// NewWalletRepositoryImpl initialize a badger implementation of the
// domain.WalletRepository
func NewWalletRepositoryImpl(db *DbManager) domain.WalletRepository {
	return walletRepositoryImpl{
		db: db,
	}
}

func (w walletRepositoryImpl) CreateWalletRoot(
	ctx context.Context, root domain.WalletRoot,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = w.db.Store.TxInsert(tx, root.ID, &root)
	} else {
		err = w.db.Store.Insert(root.ID, &root)
	}
	if err != nil {
		if err == badgerhold.ErrKeyExists {
			return domain.ErrWalletRootAlreadyExists
		}
		return err
	}
	return nil
}

func (w walletRepositoryImpl) GetWalletRoot(
	ctx context.Context, id string,
) (*domain.WalletRoot, error) {
	var root domain.WalletRoot
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = w.db.Store.TxGet(tx, id, &root)
	} else {
		err = w.db.Store.Get(id, &root)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &root, nil
}

func (w walletRepositoryImpl) GetAllWalletRoots(
	ctx context.Context,
) ([]domain.WalletRoot, error) {
	roots := make([]domain.WalletRoot, 0)
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = w.db.Store.TxFind(tx, &roots, nil)
	} else {
		err = w.db.Store.Find(&roots, nil)
	}
	if err != nil {
		return nil, err
	}
	return roots, nil
}

func (w walletRepositoryImpl) GetRestoringWalletRoots(
	ctx context.Context,
) ([]domain.WalletRoot, error) {
	allRoots, err := w.GetAllWalletRoots(ctx)
	if err != nil {
		return nil, err
	}

	roots := make([]domain.WalletRoot, 0, len(allRoots))
	for _, root := range allRoots {
		if root.Restoration.IsRestoring() {
			roots = append(roots, root)
		}
	}
	return roots, nil
}

func (w walletRepositoryImpl) UpdateWalletRoot(
	ctx context.Context,
	id string,
	updateFn func(root *domain.WalletRoot) (*domain.WalletRoot, error),
) error {
	currentRoot, err := w.GetWalletRoot(ctx, id)
	if err != nil {
		return err
	}
	if currentRoot == nil {
		return domain.ErrWalletRootNotFound
	}

	updatedRoot, err := updateFn(currentRoot)
	if err != nil {
		return err
	}

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return w.db.Store.TxUpdate(tx, id, updatedRoot)
	}
	return w.db.Store.Update(id, updatedRoot)
}

func (w walletRepositoryImpl) DeleteWalletRoot(
	ctx context.Context, id string,
) error {
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = w.db.Store.TxDelete(tx, id, &domain.WalletRoot{})
	} else {
		err = w.db.Store.Delete(id, &domain.WalletRoot{})
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return domain.ErrWalletRootNotFound
		}
		return err
	}
	return nil
}
