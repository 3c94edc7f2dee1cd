// Package node provides decorators for NodeService implementations.
package node

import (
	"context"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	"github.com/sony/gobreaker"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
	"github.com/TerrikNET/cardano-sl/internal/core/ports"
	"github.com/TerrikNET/cardano-sl/pkg/circuitbreaker"
)

type breakerService struct {
	inner ports.NodeService
	cb    *gobreaker.CircuitBreaker
}

// NewBreakerService wraps a NodeService so that a misbehaving node trips a
// circuit breaker instead of stalling restoration and fork resolution behind
// repeated failing queries.
func NewBreakerService(inner ports.NodeService) ports.NodeService {
	return &breakerService{
		inner: inner,
		cb:    circuitbreaker.NewCircuitBreaker(),
	}
}

func (s *breakerService) CurrentTip(
	ctx context.Context,
) (domain.Checkpoint, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.inner.CurrentTip(ctx)
	})
	if err != nil {
		return domain.Checkpoint{}, err
	}
	return res.(domain.Checkpoint), nil
}

func (s *breakerService) MostRecentMainBlock(
	ctx context.Context, genesis, from chainhash.Hash,
) (*domain.Checkpoint, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.inner.MostRecentMainBlock(ctx, genesis, from)
	})
	if err != nil {
		return nil, err
	}
	return res.(*domain.Checkpoint), nil
}

func (s *breakerService) BlockPredecessor(
	ctx context.Context, hash chainhash.Hash,
) (*chainhash.Hash, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.inner.BlockPredecessor(ctx, hash)
	})
	if err != nil {
		return nil, err
	}
	return res.(*chainhash.Hash), nil
}

func (s *breakerService) BlocksBetween(
	ctx context.Context,
	from *domain.Checkpoint,
	to domain.Checkpoint,
	limit int,
) ([]domain.Blund, error) {
	res, err := s.cb.Execute(func() (interface{}, error) {
		return s.inner.BlocksBetween(ctx, from, to, limit)
	})
	if err != nil {
		return nil, err
	}
	return res.([]domain.Blund), nil
}

// WithNodeLock is passed through untouched: fn calls back into this service
// and each query is already guarded individually.
func (s *breakerService) WithNodeLock(
	ctx context.Context, fn func(ctx context.Context) error,
) error {
	return s.inner.WithNodeLock(ctx, fn)
}
