package dbbadger

import (
	"context"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
)

type utxoRepositoryImpl struct {
	db *DbManager
}

// NewUtxoRepositoryImpl initialize a badger implementation of the
// domain.UtxoRepository
func NewUtxoRepositoryImpl(db *DbManager) domain.UtxoRepository {
	return utxoRepositoryImpl{
		db: db,
	}
}

func (u utxoRepositoryImpl) AddUtxos(
	ctx context.Context, utxos []domain.UtxoEntry,
) error {
	for _, utxo := range utxos {
		var err error
		if ctx.Value("tx") != nil {
			tx := ctx.Value("tx").(*badger.Txn)
			err = u.db.Store.TxUpsert(tx, utxo.Key(), &utxo)
		} else {
			err = u.db.Store.Upsert(utxo.Key(), &utxo)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (u utxoRepositoryImpl) DeleteUtxos(
	ctx context.Context, keys []domain.OutpointKey,
) error {
	for _, key := range keys {
		var err error
		if ctx.Value("tx") != nil {
			tx := ctx.Value("tx").(*badger.Txn)
			err = u.db.Store.TxDelete(tx, key, &domain.UtxoEntry{})
		} else {
			err = u.db.Store.Delete(key, &domain.UtxoEntry{})
		}
		if err != nil {
			if err == badgerhold.ErrNotFound {
				continue
			}
			return err
		}
	}
	return nil
}

func (u utxoRepositoryImpl) GetAllUtxos(
	ctx context.Context,
) ([]domain.UtxoEntry, error) {
	utxos := make([]domain.UtxoEntry, 0)
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = u.db.Store.TxFind(tx, &utxos, nil)
	} else {
		err = u.db.Store.Find(&utxos, nil)
	}
	if err != nil {
		return nil, err
	}
	return utxos, nil
}

func (u utxoRepositoryImpl) GetUtxoForKey(
	ctx context.Context, key domain.OutpointKey,
) (*domain.UtxoEntry, error) {
	var utxo domain.UtxoEntry
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = u.db.Store.TxGet(tx, key, &utxo)
	} else {
		err = u.db.Store.Get(key, &utxo)
	}
	if err != nil {
		if err == badgerhold.ErrNotFound {
			return nil, nil
		}
		return nil, err
	}
	return &utxo, nil
}
