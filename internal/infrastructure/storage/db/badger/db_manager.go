package dbbadger

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"

	"github.com/dgraph-io/badger/v3"
	"github.com/timshannon/badgerhold/v4"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
	"github.com/TerrikNET/cardano-sl/internal/core/ports"
)

// DbManager holds the badgerhold store backing every repository. Wallet
// roots, the UTXO set and the applied chain live in the same store so that a
// single badger transaction can span all the writes of one action.
type DbManager struct {
	Store *badgerhold.Store

	walletRepository domain.WalletRepository
	utxoRepository   domain.UtxoRepository
	chainRepository  domain.ChainRepository
}

// NewRepoManager opens (or creates if not exists) the badger store on disk.
// It expects a base data dir and an optional logger.
func NewRepoManager(baseDbDir string, logger badger.Logger) (ports.RepoManager, error) {
	store, err := createDb(baseDbDir, logger)
	if err != nil {
		return nil, fmt.Errorf("opening db: %w", err)
	}

	db := &DbManager{
		Store: store,
	}
	db.walletRepository = NewWalletRepositoryImpl(db)
	db.utxoRepository = NewUtxoRepositoryImpl(db)
	db.chainRepository = NewChainRepositoryImpl(db)
	return db, nil
}

func (d *DbManager) WalletRepository() domain.WalletRepository {
	return d.walletRepository
}

func (d *DbManager) UtxoRepository() domain.UtxoRepository {
	return d.utxoRepository
}

func (d *DbManager) ChainRepository() domain.ChainRepository {
	return d.chainRepository
}

// RunTransaction runs the handler against a badger transaction carried in the
// context under the "tx" key. Repositories detect it and route their reads
// and writes through it, committed in one step on success.
func (d *DbManager) RunTransaction(
	ctx context.Context,
	readOnly bool,
	handler func(ctx context.Context) (interface{}, error),
) (interface{}, error) {
	tx := d.Store.Badger().NewTransaction(!readOnly)
	defer tx.Discard()

	res, err := handler(context.WithValue(ctx, "tx", tx))
	if err != nil {
		return nil, err
	}

	if !readOnly {
		if err := tx.Commit(); err != nil {
			return nil, err
		}
	}
	return res, nil
}

func (d *DbManager) Close() {
	d.Store.Close()
}

// JSONEncode is a custom JSON based encoder for badger
func JSONEncode(value interface{}) ([]byte, error) {
	var buff bytes.Buffer

	en := json.NewEncoder(&buff)

	err := en.Encode(value)
	if err != nil {
		return nil, err
	}

	return buff.Bytes(), nil
}

// JSONDecode is a custom JSON based decoder for badger
func JSONDecode(data []byte, value interface{}) error {
	var buff bytes.Buffer
	de := json.NewDecoder(&buff)

	_, err := buff.Write(data)
	if err != nil {
		return err
	}

	return de.Decode(value)
}

func createDb(dbDir string, logger badger.Logger) (db *badgerhold.Store, err error) {
	opts := badger.DefaultOptions(dbDir)
	opts.Logger = logger

	db, err = badgerhold.Open(badgerhold.Options{
		Encoder:          JSONEncode,
		Decoder:          JSONDecode,
		SequenceBandwith: 100,
		Options:          opts,
	})

	return
}
