package application

import (
	"context"

	log "github.com/sirupsen/logrus"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
	"github.com/TerrikNET/cardano-sl/internal/core/ports"
	"github.com/TerrikNET/cardano-sl/pkg/stats"
)

// ActionWorker serializes every mutating operation on the wallet state.
// Submission is concurrent, application is not: a single consumer goroutine
// owns the persistent state and applies actions strictly in submission order,
// publishing one snapshot per committed action.
type ActionWorker interface {
	Start()
	Stop()
	// Submit enqueues an action. It may block on the bounded capacity of
	// the queue, never on the application of the action itself. Callers
	// that need the outcome must set the action's Done channel.
	Submit(action domain.WalletAction)
}

type actionWorker struct {
	repoManager   ports.RepoManager
	snapshotStore ports.SnapshotStore

	actionChan chan domain.WalletAction
	doneChan   chan struct{}
	version    uint64
}

// NewActionWorker returns an ActionWorker with a bounded action queue. Use
// Start and Stop to manage it.
func NewActionWorker(
	repoManager ports.RepoManager,
	snapshotStore ports.SnapshotStore,
	queueSize int,
) ActionWorker {
	return &actionWorker{
		repoManager:   repoManager,
		snapshotStore: snapshotStore,
		actionChan:    make(chan domain.WalletAction, queueSize),
		doneChan:      make(chan struct{}),
	}
}

// Start publishes an initial snapshot of the persisted state and launches
// the consumer loop.
func (w *actionWorker) Start() {
	if err := w.publishSnapshot(context.Background()); err != nil {
		log.WithError(err).Warn("publishing startup snapshot")
	}
	go w.processActions()
}

// Stop closes the queue and waits for the consumer to drain it. Submit must
// not be called after Stop.
func (w *actionWorker) Stop() {
	close(w.actionChan)
	<-w.doneChan
}

func (w *actionWorker) Submit(action domain.WalletAction) {
	w.actionChan <- action
}

func (w *actionWorker) processActions() {
	for action := range w.actionChan {
		err := w.processAction(context.Background(), action)
		if err != nil {
			// A failing action never corrupts the store nor blocks the
			// queue. The wallet's view stays stale until the node-sync
			// layer resubmits a consistent segment.
			log.WithError(err).Warnf("action %s dropped", action.ID)
			stats.IncActionDropped()
		}
		if action.Done != nil {
			action.Done <- err
		}
	}
	close(w.doneChan)
}

// processAction runs all the writes of one action within a single storage
// transaction. They commit in one atomic step, so a crash mid-action cannot
// leave a half-applied batch on disk.
func (w *actionWorker) processAction(
	ctx context.Context, action domain.WalletAction,
) error {
	if _, err := w.repoManager.RunTransaction(
		ctx,
		false,
		func(ctx context.Context) (interface{}, error) {
			switch action.Type {
			case domain.ApplyBlocks:
				return nil, w.applyBlocks(ctx, action.Blunds)
			case domain.RollbackBlocks:
				return nil, w.rollbackBlocks(ctx, action.Count)
			}
			return nil, nil
		},
	); err != nil {
		return err
	}

	switch action.Type {
	case domain.ApplyBlocks:
		stats.IncActionApplied("apply")
	case domain.RollbackBlocks:
		stats.IncActionApplied("rollback")
	}

	return w.publishSnapshot(ctx)
}

// applyBlocks validates the whole segment against the current tip before
// touching the store, so a rejected segment leaves no partial state behind.
func (w *actionWorker) applyBlocks(
	ctx context.Context, blunds []domain.Blund,
) error {
	if len(blunds) == 0 {
		// No-op commit marker: nothing to validate or mutate, the caller
		// still gets a fresh snapshot.
		return nil
	}

	chainRepo := w.repoManager.ChainRepository()
	utxoRepo := w.repoManager.UtxoRepository()

	tip, err := chainRepo.GetTip(ctx)
	if err != nil {
		return err
	}

	prev := tip
	for _, blund := range blunds {
		if prev != nil {
			if blund.PrevHash != prev.Hash || blund.Height != prev.Height+1 {
				return domain.ErrChainInconsistency
			}
		}
		cp := blund.Checkpoint()
		prev = &cp
	}

	for _, blund := range blunds {
		spentKeys := make([]domain.OutpointKey, 0, len(blund.Spent))
		for _, u := range blund.Spent {
			spentKeys = append(spentKeys, u.Key())
		}
		if err := utxoRepo.DeleteUtxos(ctx, spentKeys); err != nil {
			return err
		}
		if err := utxoRepo.AddUtxos(ctx, blund.Created); err != nil {
			return err
		}
		if err := chainRepo.PushBlund(ctx, blund); err != nil {
			return err
		}
	}

	return w.advanceRestorations(ctx, blunds[len(blunds)-1].Checkpoint())
}

func (w *actionWorker) rollbackBlocks(ctx context.Context, count int) error {
	if count == 0 {
		return nil
	}

	chainRepo := w.repoManager.ChainRepository()
	utxoRepo := w.repoManager.UtxoRepository()

	length, err := chainRepo.GetBlockCount(ctx)
	if err != nil {
		return err
	}
	if count > length {
		return domain.ErrEmptyChain
	}

	for i := 0; i < count; i++ {
		blund, err := chainRepo.PopBlund(ctx)
		if err != nil {
			return err
		}

		createdKeys := make([]domain.OutpointKey, 0, len(blund.Created))
		for _, u := range blund.Created {
			createdKeys = append(createdKeys, u.Key())
		}
		if err := utxoRepo.DeleteUtxos(ctx, createdKeys); err != nil {
			return err
		}
		if err := utxoRepo.AddUtxos(ctx, blund.Spent); err != nil {
			return err
		}
	}
	return nil
}

// advanceRestorations moves the restoration cursor of every restoring root
// forward to the last applied checkpoint, in the same commit as the block
// application so that no restoration step is ever left half-done.
func (w *actionWorker) advanceRestorations(
	ctx context.Context, applied domain.Checkpoint,
) error {
	walletRepo := w.repoManager.WalletRepository()

	roots, err := walletRepo.GetRestoringWalletRoots(ctx)
	if err != nil {
		return err
	}

	for _, root := range roots {
		if err := walletRepo.UpdateWalletRoot(
			ctx,
			root.ID,
			func(r *domain.WalletRoot) (*domain.WalletRoot, error) {
				done, err := r.Restoration.Advance(applied)
				if err != nil {
					return nil, err
				}
				if done {
					log.Infof("wallet %s fully restored", r.ID)
				}
				return r, nil
			},
		); err != nil {
			return err
		}
	}
	return nil
}

func (w *actionWorker) publishSnapshot(ctx context.Context) error {
	roots, err := w.repoManager.WalletRepository().GetAllWalletRoots(ctx)
	if err != nil {
		return err
	}
	utxos, err := w.repoManager.UtxoRepository().GetAllUtxos(ctx)
	if err != nil {
		return err
	}
	tip, err := w.repoManager.ChainRepository().GetTip(ctx)
	if err != nil {
		return err
	}

	utxosByKey := make(map[domain.OutpointKey]domain.UtxoEntry, len(utxos))
	for _, u := range utxos {
		utxosByKey[u.Key()] = u
	}

	w.version++
	w.snapshotStore.Publish(&domain.Snapshot{
		Version: w.version,
		Tip:     tip,
		Roots:   roots,
		Utxos:   utxosByKey,
	})
	stats.SetSnapshotVersion(w.version)
	return nil
}
