package inmemory

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
)

// ChainRepositoryImpl represents an in memory storage for the wallet's
// applied chain.
type ChainRepositoryImpl struct {
	blunds []domain.Blund
	byHash map[chainhash.Hash]struct{}
	lock   *sync.RWMutex
}

// NewChainRepositoryImpl returns a new empty ChainRepositoryImpl.
func NewChainRepositoryImpl() *ChainRepositoryImpl {
	return &ChainRepositoryImpl{
		blunds: make([]domain.Blund, 0),
		byHash: map[chainhash.Hash]struct{}{},
		lock:   &sync.RWMutex{},
	}
}

func (r *ChainRepositoryImpl) GetTip(
	ctx context.Context,
) (*domain.Checkpoint, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	if len(r.blunds) == 0 {
		return nil, nil
	}
	tip := r.blunds[len(r.blunds)-1].Checkpoint()
	return &tip, nil
}

func (r *ChainRepositoryImpl) GetBlockCount(ctx context.Context) (int, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	return len(r.blunds), nil
}

func (r *ChainRepositoryImpl) PushBlund(
	ctx context.Context, blund domain.Blund,
) error {
	r.lock.Lock()
	defer r.lock.Unlock()

	r.blunds = append(r.blunds, blund)
	r.byHash[blund.Hash] = struct{}{}
	return nil
}

func (r *ChainRepositoryImpl) PopBlund(
	ctx context.Context,
) (*domain.Blund, error) {
	r.lock.Lock()
	defer r.lock.Unlock()

	if len(r.blunds) == 0 {
		return nil, domain.ErrEmptyChain
	}

	blund := r.blunds[len(r.blunds)-1]
	r.blunds = r.blunds[:len(r.blunds)-1]
	delete(r.byHash, blund.Hash)
	return &blund, nil
}

func (r *ChainRepositoryImpl) HasBlock(
	ctx context.Context, hash chainhash.Hash,
) (bool, error) {
	r.lock.RLock()
	defer r.lock.RUnlock()

	_, ok := r.byHash[hash]
	return ok, nil
}
