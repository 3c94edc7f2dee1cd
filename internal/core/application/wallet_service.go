package application

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
	"github.com/TerrikNET/cardano-sl/internal/core/ports"
	"github.com/TerrikNET/cardano-sl/pkg/hdcrypto"
)

// WalletService is the externally visible read/write contract of the
// synchronization engine. Write operations enqueue actions on the worker and
// return immediately; read operations run against a fresh snapshot and never
// block on writers.
type WalletService interface {
	// ApplyBlocks enqueues the application of an ordered block segment,
	// oldest first. Fire-and-forget: the published snapshot is the
	// observable effect.
	ApplyBlocks(blunds []domain.Blund)
	// RollbackBlocks enqueues the undoing of the newest count blocks.
	RollbackBlocks(count int)
	// SwitchToFork resolves the common ancestor with the given replacement
	// segment and replays the wallet's view on top of it.
	SwitchToFork(ctx context.Context, segment []domain.Blund) error

	CreateWalletRoot(
		ctx context.Context, rootPubKey []byte, restore bool,
	) (*domain.WalletRoot, error)
	DeleteWalletRoot(ctx context.Context, rootID string) error
	ContinueRestoration(
		ctx context.Context,
		rootID string,
		source *domain.Checkpoint,
		target domain.Checkpoint,
	) error
	// ResumeRestorations restarts every restoration left pending by a
	// previous process run.
	ResumeRestorations(ctx context.Context) error

	QueryBalance(
		creds domain.DecryptionCredentials,
	) (string, domain.Coin, error)
	ListWalletRoots(ctx context.Context) ([]domain.WalletRoot, error)
	ListUtxos(creds domain.DecryptionCredentials) ([]domain.UtxoEntry, error)
}

type walletService struct {
	repoManager    ports.RepoManager
	snapshotStore  ports.SnapshotStore
	nodeSvc        ports.NodeService
	worker         ActionWorker
	forkResolver   ForkResolver
	restorationSvc RestorationService
}

// NewWalletService composes the action worker, fork resolver and restoration
// service into the wallet layer facade.
func NewWalletService(
	repoManager ports.RepoManager,
	snapshotStore ports.SnapshotStore,
	nodeSvc ports.NodeService,
	worker ActionWorker,
	forkResolver ForkResolver,
	restorationSvc RestorationService,
) WalletService {
	return &walletService{
		repoManager:    repoManager,
		snapshotStore:  snapshotStore,
		nodeSvc:        nodeSvc,
		worker:         worker,
		forkResolver:   forkResolver,
		restorationSvc: restorationSvc,
	}
}

func (s *walletService) ApplyBlocks(blunds []domain.Blund) {
	s.worker.Submit(domain.NewApplyBlocksAction(blunds))
}

func (s *walletService) RollbackBlocks(count int) {
	s.worker.Submit(domain.NewRollbackBlocksAction(count))
}

func (s *walletService) SwitchToFork(
	ctx context.Context, segment []domain.Blund,
) error {
	return s.forkResolver.SwitchToFork(ctx, segment)
}

func (s *walletService) CreateWalletRoot(
	ctx context.Context, rootPubKey []byte, restore bool,
) (*domain.WalletRoot, error) {
	root, err := domain.NewWalletRoot(rootPubKey)
	if err != nil {
		return nil, err
	}

	// A key with unknown history must replay everything up to the node's
	// current tip. The tip is fetched before persisting anything so that
	// an unreachable node cannot leave a root behind with no restoration
	// driving it.
	var tip domain.Checkpoint
	if restore {
		tip, err = s.nodeSvc.CurrentTip(ctx)
		if err != nil {
			return nil, fmt.Errorf("fetching node tip: %w", err)
		}
	}

	if err := s.repoManager.WalletRepository().CreateWalletRoot(
		ctx, *root,
	); err != nil {
		return nil, err
	}

	if restore {
		if err := s.restorationSvc.Continue(ctx, root.ID, nil, tip); err != nil {
			if delErr := s.repoManager.WalletRepository().DeleteWalletRoot(
				ctx, root.ID,
			); delErr != nil {
				log.WithError(delErr).Warnf(
					"error while undoing creation of wallet root %s", root.ID,
				)
			}
			return nil, err
		}
		root.StartRestoration(nil, tip)
	}

	log.Infof("created wallet root %s", root.ID)
	return root, nil
}

// DeleteWalletRoot signals the root's in-progress restoration to stop and
// waits for it before removing persisted state.
func (s *walletService) DeleteWalletRoot(
	ctx context.Context, rootID string,
) error {
	s.restorationSvc.Cancel(rootID)
	return s.repoManager.WalletRepository().DeleteWalletRoot(ctx, rootID)
}

func (s *walletService) ContinueRestoration(
	ctx context.Context,
	rootID string,
	source *domain.Checkpoint,
	target domain.Checkpoint,
) error {
	return s.restorationSvc.Continue(ctx, rootID, source, target)
}

func (s *walletService) ResumeRestorations(ctx context.Context) error {
	return s.restorationSvc.ResumeAll(ctx)
}

// QueryBalance sums the value of every UTXO entry of the current snapshot
// owned by the wallet. It reads exactly one immutable snapshot: the result is
// read-committed, it reflects whichever snapshot was current when the query
// started and may be superseded immediately after return.
func (s *walletService) QueryBalance(
	creds domain.DecryptionCredentials,
) (string, domain.Coin, error) {
	snapshot := s.snapshotStore.Current()
	if snapshot == nil {
		return creds.RootID, 0, nil
	}

	var balance domain.Coin
	for _, u := range snapshot.EnumerateUtxos(func(u domain.UtxoEntry) bool {
		return hdcrypto.IsOwned(creds.HdPassphrase, u.Address)
	}) {
		sum, err := balance.Add(u.Value)
		if err != nil {
			return "", 0, err
		}
		balance = sum
	}

	return creds.RootID, balance, nil
}

func (s *walletService) ListWalletRoots(
	ctx context.Context,
) ([]domain.WalletRoot, error) {
	snapshot := s.snapshotStore.Current()
	if snapshot == nil {
		return nil, nil
	}
	return snapshot.Roots, nil
}

func (s *walletService) ListUtxos(
	creds domain.DecryptionCredentials,
) ([]domain.UtxoEntry, error) {
	snapshot := s.snapshotStore.Current()
	if snapshot == nil {
		return nil, nil
	}
	return snapshot.EnumerateUtxos(func(u domain.UtxoEntry) bool {
		return hdcrypto.IsOwned(creds.HdPassphrase, u.Address)
	}), nil
}
