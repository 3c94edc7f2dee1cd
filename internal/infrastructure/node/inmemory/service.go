// Package inmemory provides an in-process NodeService backed by a simulated
// canonical chain. It drives unit tests and ephemeral runs of the daemon; a
// real deployment replaces it with an adaptor to the node's API.
package inmemory

import (
	"context"
	"sync"

	"github.com/btcsuite/btcd/chaincfg/chainhash"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
	"github.com/TerrikNET/cardano-sl/internal/core/ports"
)

// Service simulates a blockchain node holding one canonical chain plus any
// side blocks it has seen. The embedded mutex doubles as the node lock.
type Service struct {
	genesis chainhash.Hash

	// lockGuard is the node lock handed out by WithNodeLock; mutex only
	// protects the chain structures below.
	lockGuard sync.Mutex
	mutex     sync.Mutex
	chain     []domain.Blund
	index     map[chainhash.Hash]int
	orphan    map[chainhash.Hash]domain.Blund
}

// NewService returns a simulated node whose canonical chain starts right
// after the given genesis hash.
func NewService(genesis chainhash.Hash) *Service {
	return &Service{
		genesis: genesis,
		chain:   make([]domain.Blund, 0),
		index:   map[chainhash.Hash]int{},
		orphan:  map[chainhash.Hash]domain.Blund{},
	}
}

// SetChain replaces the canonical chain, keeping the blocks it no longer
// contains around as side blocks so that predecessor walks across the old
// chain keep working.
func (s *Service) SetChain(blunds []domain.Blund) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, b := range s.chain {
		s.orphan[b.Hash] = b
	}

	s.chain = append([]domain.Blund{}, blunds...)
	s.index = make(map[chainhash.Hash]int, len(blunds))
	for i, b := range blunds {
		s.index[b.Hash] = i
		delete(s.orphan, b.Hash)
	}
}

// ExtendChain appends blocks to the canonical chain.
func (s *Service) ExtendChain(blunds []domain.Blund) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	for _, b := range blunds {
		s.index[b.Hash] = len(s.chain)
		s.chain = append(s.chain, b)
	}
}

// AddSideBlock registers a block outside the canonical chain.
func (s *Service) AddSideBlock(blund domain.Blund) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.orphan[blund.Hash] = blund
}

func (s *Service) CurrentTip(ctx context.Context) (domain.Checkpoint, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if len(s.chain) == 0 {
		return domain.Checkpoint{Hash: s.genesis, Height: 0}, nil
	}
	return s.chain[len(s.chain)-1].Checkpoint(), nil
}

func (s *Service) MostRecentMainBlock(
	ctx context.Context, genesis, from chainhash.Hash,
) (*domain.Checkpoint, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	cursor := from
	for {
		if cursor == genesis {
			return &domain.Checkpoint{Hash: genesis, Height: 0}, nil
		}
		if i, ok := s.index[cursor]; ok {
			cp := s.chain[i].Checkpoint()
			return &cp, nil
		}
		side, ok := s.orphan[cursor]
		if !ok {
			return nil, nil
		}
		cursor = side.PrevHash
	}
}

func (s *Service) BlockPredecessor(
	ctx context.Context, hash chainhash.Hash,
) (*chainhash.Hash, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if hash == s.genesis {
		return nil, nil
	}
	if i, ok := s.index[hash]; ok {
		prev := s.chain[i].PrevHash
		return &prev, nil
	}
	if side, ok := s.orphan[hash]; ok {
		prev := side.PrevHash
		return &prev, nil
	}
	return nil, nil
}

func (s *Service) BlocksBetween(
	ctx context.Context,
	from *domain.Checkpoint,
	to domain.Checkpoint,
	limit int,
) ([]domain.Blund, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	start := 0
	if from != nil && from.Hash != s.genesis {
		i, ok := s.index[from.Hash]
		if !ok {
			return nil, nil
		}
		start = i + 1
	}

	end := len(s.chain)
	if i, ok := s.index[to.Hash]; ok {
		end = i + 1
	}

	if start >= end {
		return nil, nil
	}
	if limit > 0 && end-start > limit {
		end = start + limit
	}

	return append([]domain.Blund{}, s.chain[start:end]...), nil
}

// WithNodeLock runs fn under the node's internal lock. The lock is released
// on every exit path, including cancellation inside fn.
func (s *Service) WithNodeLock(
	ctx context.Context, fn func(ctx context.Context) error,
) error {
	// The lock must not be held by the querying methods themselves while
	// fn runs, so a dedicated guard serializes lock holders instead.
	s.lockGuard.Lock()
	defer s.lockGuard.Unlock()
	return fn(ctx)
}

var _ ports.NodeService = (*Service)(nil)
