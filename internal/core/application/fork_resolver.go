package application

import (
	"context"
	"fmt"

	"github.com/btcsuite/btcd/chaincfg/chainhash"
	log "github.com/sirupsen/logrus"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
	"github.com/TerrikNET/cardano-sl/internal/core/ports"
)

// ForkResolver locates the most recent common ancestor between the wallet's
// applied chain and a replacement segment presented by the node, and drives
// the rollback-then-apply pairing that makes a fork switch safe: the UTXO set
// is first restored to the ancestor's state, then advanced along the new
// segment, so no output is double-counted or missed.
type ForkResolver interface {
	FindCommonAncestor(
		ctx context.Context, segment []domain.Blund,
	) (*domain.Checkpoint, error)
	SwitchToFork(ctx context.Context, segment []domain.Blund) error
}

type forkResolver struct {
	repoManager ports.RepoManager
	nodeSvc     ports.NodeService
	worker      ActionWorker
	genesisHash chainhash.Hash
	// retryAttempts is the number of extra resolution attempts before an
	// ErrForkAncestorNotFound is considered permanent for the switch.
	retryAttempts int
}

// NewForkResolver returns a ForkResolver enqueueing its corrective actions on
// the given worker.
func NewForkResolver(
	repoManager ports.RepoManager,
	nodeSvc ports.NodeService,
	worker ActionWorker,
	genesisHash chainhash.Hash,
	retryAttempts int,
) ForkResolver {
	return &forkResolver{
		repoManager:   repoManager,
		nodeSvc:       nodeSvc,
		worker:        worker,
		genesisHash:   genesisHash,
		retryAttempts: retryAttempts,
	}
}

// FindCommonAncestor walks the new segment's earliest predecessor backward
// through the node's canonical chain until a block the wallet has already
// applied is found. The node lock is held for the whole walk so that a
// concurrent restoration cannot observe the node's state mid-query.
func (r *forkResolver) FindCommonAncestor(
	ctx context.Context, segment []domain.Blund,
) (*domain.Checkpoint, error) {
	if len(segment) == 0 {
		return nil, ErrEmptyForkSegment
	}

	chainRepo := r.repoManager.ChainRepository()

	var ancestor *domain.Checkpoint
	if err := r.nodeSvc.WithNodeLock(
		ctx,
		func(ctx context.Context) error {
			cursor := segment[0].PrevHash
			for {
				cp, err := r.nodeSvc.MostRecentMainBlock(ctx, r.genesisHash, cursor)
				if err != nil {
					return err
				}
				if cp == nil {
					return domain.ErrForkAncestorNotFound
				}

				applied, err := chainRepo.HasBlock(ctx, cp.Hash)
				if err != nil {
					return err
				}
				if applied {
					ancestor = cp
					return nil
				}

				prev, err := r.nodeSvc.BlockPredecessor(ctx, cp.Hash)
				if err != nil {
					return err
				}
				if prev == nil {
					return domain.ErrForkAncestorNotFound
				}
				cursor = *prev
			}
		},
	); err != nil {
		return nil, err
	}

	return ancestor, nil
}

// SwitchToFork resolves the common ancestor, rolls the wallet back to it and
// replays the replacement segment on top. Resolution failures are retried up
// to the configured number of attempts; a switch that still cannot resolve is
// surfaced to the caller, which is expected to halt advancing this wallet
// until the desynchronization is handled externally.
func (r *forkResolver) SwitchToFork(
	ctx context.Context, segment []domain.Blund,
) error {
	ancestor, err := r.findCommonAncestorWithRetry(ctx, segment)
	if err != nil {
		return err
	}

	tip, err := r.repoManager.ChainRepository().GetTip(ctx)
	if err != nil {
		return err
	}

	rollbackCount := 0
	if tip != nil && tip.Height > ancestor.Height {
		rollbackCount = int(tip.Height - ancestor.Height)
	}

	log.Infof(
		"switching to fork: rolling back %d block(s) to %s, applying %d block(s)",
		rollbackCount, ancestor, len(segment),
	)

	rollback := domain.NewRollbackBlocksAction(rollbackCount)
	rollback.Done = make(chan error, 1)
	r.worker.Submit(rollback)
	if err := <-rollback.Done; err != nil {
		return fmt.Errorf("rolling back to common ancestor: %w", err)
	}

	apply := domain.NewApplyBlocksAction(segment)
	apply.Done = make(chan error, 1)
	r.worker.Submit(apply)
	if err := <-apply.Done; err != nil {
		return fmt.Errorf("applying fork segment: %w", err)
	}
	return nil
}

func (r *forkResolver) findCommonAncestorWithRetry(
	ctx context.Context, segment []domain.Blund,
) (*domain.Checkpoint, error) {
	var ancestor *domain.Checkpoint
	var err error
	for attempt := 0; attempt <= r.retryAttempts; attempt++ {
		ancestor, err = r.FindCommonAncestor(ctx, segment)
		if err == nil {
			return ancestor, nil
		}
		if err != domain.ErrForkAncestorNotFound {
			return nil, err
		}
		if attempt < r.retryAttempts {
			log.Warnf(
				"common ancestor not found, retrying (%d/%d)",
				attempt+1, r.retryAttempts,
			)
		}
	}
	return nil, err
}
