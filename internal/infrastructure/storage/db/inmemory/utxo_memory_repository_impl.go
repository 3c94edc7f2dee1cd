package inmemory

import (
	"context"
	"sync"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
)

// UtxoRepositoryImpl represents an in memory storage for the UTXO set.
type UtxoRepositoryImpl struct {
	utxos map[domain.OutpointKey]domain.UtxoEntry
	lock  *sync.RWMutex
}

// NewUtxoRepositoryImpl returns a new empty UtxoRepositoryImpl.
func NewUtxoRepositoryImpl() *UtxoRepositoryImpl {
	return &UtxoRepositoryImpl{
		utxos: map[domain.OutpointKey]domain.UtxoEntry{},
		lock:  &sync.RWMutex{},
	}
}

func (r *UtxoRepositoryImpl) AddUtxos(
	ctx context.Context, utxos []domain.UtxoEntry,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, u := range utxos {
		r.utxos[u.Key()] = u
	}
	return nil
}

func (r *UtxoRepositoryImpl) DeleteUtxos(
	ctx context.Context, keys []domain.OutpointKey,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	for _, key := range keys {
		delete(r.utxos, key)
	}
	return nil
}

func (r *UtxoRepositoryImpl) GetAllUtxos(
	ctx context.Context,
) ([]domain.UtxoEntry, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	utxos := make([]domain.UtxoEntry, 0, len(r.utxos))
	for _, u := range r.utxos {
		utxos = append(utxos, u)
	}
	return utxos, nil
}

func (r *UtxoRepositoryImpl) GetUtxoForKey(
	ctx context.Context, key domain.OutpointKey,
) (*domain.UtxoEntry, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	u, ok := r.utxos[key]
	if !ok {
		return nil, nil
	}
	return &u, nil
}
