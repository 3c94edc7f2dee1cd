package dbbadger

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
)

// appliedBlund is the stored form of an applied block, keyed by height so
// that the tip is always the record with the greatest key.
type appliedBlund struct {
	Height uint64
	Hash   chainhash.Hash
	Blund  domain.Blund
}

type chainRepositoryImpl struct {
	db *DbManager
}

// NewChainRepositoryImpl initialize a badger implementation of the
// domain.ChainRepository
func NewChainRepositoryImpl(db *DbManager) domain.ChainRepository {
	return chainRepositoryImpl{
		db: db,
	}
}

func (c chainRepositoryImpl) GetTip(
	ctx context.Context,
) (*domain.Checkpoint, error) {
	record, err := c.getTipRecord(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, nil
	}

	return &domain.Checkpoint{
		Hash:   record.Hash,
		Height: record.Height,
	}, nil
}

func (c chainRepositoryImpl) GetBlockCount(ctx context.Context) (int, error) {
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		count, err := c.db.Store.TxCount(tx, &appliedBlund{}, nil)
		if err != nil {
			return 0, err
		}
		return int(count), nil
	}
	count, err := c.db.Store.Count(&appliedBlund{}, nil)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

func (c chainRepositoryImpl) PushBlund(
	ctx context.Context, blund domain.Blund,
) error {
	record := appliedBlund{
		Height: blund.Height,
		Hash:   blund.Hash,
		Blund:  blund,
	}
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		return c.db.Store.TxUpsert(tx, record.Height, &record)
	}
	return c.db.Store.Upsert(record.Height, &record)
}

func (c chainRepositoryImpl) PopBlund(
	ctx context.Context,
) (*domain.Blund, error) {
	record, err := c.getTipRecord(ctx)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, domain.ErrEmptyChain
	}

	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = c.db.Store.TxDelete(tx, record.Height, &appliedBlund{})
	} else {
		err = c.db.Store.Delete(record.Height, &appliedBlund{})
	}
	if err != nil {
		return nil, err
	}
	return &record.Blund, nil
}

func (c chainRepositoryImpl) HasBlock(
	ctx context.Context, hash chainhash.Hash,
) (bool, error) {
	records := make([]appliedBlund, 0, 1)
	query := badgerhold.Where("Hash").Eq(hash).Limit(1)
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = c.db.Store.TxFind(tx, &records, query)
	} else {
		err = c.db.Store.Find(&records, query)
	}
	if err != nil {
		return false, err
	}
	return len(records) > 0, nil
}

func (c chainRepositoryImpl) getTipRecord(
	ctx context.Context,
) (*appliedBlund, error) {
	records := make([]appliedBlund, 0, 1)
	query := badgerhold.Where("Height").
		Ge(uint64(0)).
		SortBy("Height").
		Reverse().
		Limit(1)
	var err error
	if ctx.Value("tx") != nil {
		tx := ctx.Value("tx").(*badger.Txn)
		err = c.db.Store.TxFind(tx, &records, query)
	} else {
		err = c.db.Store.Find(&records, query)
	}
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	return &records[0], nil
}
