package application

import (
	"context"
	"fmt"
	"sync"

	log "github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
	"github.com/TerrikNET/cardano-sl/internal/core/ports"
)

// RestorationService drives the historical resync of wallet roots. Progress
// is durable: the source/target pair lives in the wallet repository and is
// advanced atomically with each applied batch, so a crash mid-restoration
// resumes from the last committed batch instead of starting over.
type RestorationService interface {
	// ResumeAll restarts restoration for every root whose persisted state
	// is Restoring. It blocks until all of them finish or are cancelled.
	ResumeAll(ctx context.Context) error
	// Continue starts (or resumes with an explicit source/target pair) the
	// restoration of a single root in the background.
	Continue(
		ctx context.Context,
		rootID string,
		source *domain.Checkpoint,
		target domain.Checkpoint,
	) error
	// Cancel cooperatively stops the in-progress restoration of a root,
	// if any, and waits for it to exit. Persisted progress is kept.
	Cancel(rootID string)
	// Stop cancels every in-progress restoration and waits for all loops
	// to exit.
	Stop()
}

type restorationService struct {
	repoManager ports.RepoManager
	nodeSvc     ports.NodeService
	worker      ActionWorker
	batchSize   int
	limiter     *rate.Limiter

	mutex sync.Mutex
	runs  map[string]*restorationRun
	wg    sync.WaitGroup
}

type restorationRun struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// RestorationServiceOpts defines the parameters needed for creating a
// restoration service with NewRestorationService.
type RestorationServiceOpts struct {
	RepoManager ports.RepoManager
	NodeService ports.NodeService
	Worker      ActionWorker
	// BatchSize is the number of blocks fetched from the node per applied
	// batch.
	BatchSize int
	// NodeQueriesPerSecond rate-limits the canonical-chain queries issued
	// while restoring, so a deep restoration does not starve the node.
	NodeQueriesPerSecond float64
	NodeQueryBurst       int
}

// NewRestorationService returns a RestorationService ready to resume or start
// wallet restorations.
func NewRestorationService(opts RestorationServiceOpts) RestorationService {
	return &restorationService{
		repoManager: opts.RepoManager,
		nodeSvc:     opts.NodeService,
		worker:      opts.Worker,
		batchSize:   opts.BatchSize,
		limiter: rate.NewLimiter(
			rate.Limit(opts.NodeQueriesPerSecond), opts.NodeQueryBurst,
		),
		runs: map[string]*restorationRun{},
	}
}

func (s *restorationService) ResumeAll(ctx context.Context) error {
	roots, err := s.repoManager.WalletRepository().GetRestoringWalletRoots(ctx)
	if err != nil {
		return err
	}
	if len(roots) == 0 {
		return nil
	}

	log.Infof("resuming restoration of %d wallet(s)", len(roots))

	g := &errgroup.Group{}
	for _, root := range roots {
		rootID := root.ID
		run, runCtx, err := s.startRun(ctx, rootID)
		if err != nil {
			// Already driven by a concurrent Continue call.
			continue
		}
		g.Go(func() error {
			defer s.finishRun(rootID, run)
			if err := s.runRestoration(runCtx, rootID); err != nil &&
				err != domain.ErrRestorationInterrupted {
				return err
			}
			return nil
		})
	}
	return g.Wait()
}

func (s *restorationService) Continue(
	ctx context.Context,
	rootID string,
	source *domain.Checkpoint,
	target domain.Checkpoint,
) error {
	run, runCtx, err := s.startRun(context.Background(), rootID)
	if err != nil {
		return err
	}

	if err := s.repoManager.WalletRepository().UpdateWalletRoot(
		ctx,
		rootID,
		func(r *domain.WalletRoot) (*domain.WalletRoot, error) {
			r.StartRestoration(source, target)
			return r, nil
		},
	); err != nil {
		s.finishRun(rootID, run)
		return err
	}

	go func() {
		defer s.finishRun(rootID, run)
		if err := s.runRestoration(runCtx, rootID); err != nil &&
			err != domain.ErrRestorationInterrupted {
			log.WithError(err).Warnf("restoration of wallet %s halted", rootID)
		}
	}()
	return nil
}

func (s *restorationService) Cancel(rootID string) {
	s.mutex.Lock()
	run, ok := s.runs[rootID]
	s.mutex.Unlock()
	if ok {
		run.cancel()
		<-run.done
	}
}

func (s *restorationService) Stop() {
	s.mutex.Lock()
	for _, run := range s.runs {
		run.cancel()
	}
	s.mutex.Unlock()
	s.wg.Wait()
}

// runRestoration is the restoration loop of one root. It deliberately
// re-reads the persisted restoration state every iteration instead of keeping
// a cursor in memory: the worker owns the cursor and the loop merely follows
// it, which is what makes the whole process crash-resumable.
func (s *restorationService) runRestoration(
	ctx context.Context, rootID string,
) error {
	walletRepo := s.repoManager.WalletRepository()
	chainRepo := s.repoManager.ChainRepository()

	for {
		select {
		case <-ctx.Done():
			log.Infof("restoration of wallet %s interrupted", rootID)
			return domain.ErrRestorationInterrupted
		default:
		}

		root, err := walletRepo.GetWalletRoot(ctx, rootID)
		if err != nil {
			return err
		}
		if root == nil || !root.Restoration.IsRestoring() {
			return nil
		}

		source := root.Restoration.Source
		target := *root.Restoration.Target

		// Blocks the wallet database already contains need no replay, only
		// the cursor catches up to them.
		tip, err := chainRepo.GetTip(ctx)
		if err != nil {
			return err
		}
		if tip != nil && (source == nil || source.Height < tip.Height) {
			if err := s.advanceTo(ctx, rootID, minCheckpoint(*tip, target)); err != nil {
				return err
			}
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return domain.ErrRestorationInterrupted
		}

		var blunds []domain.Blund
		if err := s.nodeSvc.WithNodeLock(
			ctx,
			func(ctx context.Context) error {
				var err error
				blunds, err = s.nodeSvc.BlocksBetween(
					ctx, source, target, s.batchSize,
				)
				return err
			},
		); err != nil {
			return fmt.Errorf("fetching blocks to restore: %w", err)
		}

		if len(blunds) == 0 {
			// Nothing left between source and target: the root is caught
			// up even though no batch moved the cursor onto the target.
			return s.advanceTo(ctx, rootID, target)
		}

		action := domain.NewApplyBlocksAction(blunds)
		action.Done = make(chan error, 1)
		s.worker.Submit(action)

		select {
		case err := <-action.Done:
			if err != nil {
				return fmt.Errorf("applying restored batch: %w", err)
			}
		case <-ctx.Done():
			// The in-flight batch either commits atomically or not at
			// all, so interrupting here cannot leave half-applied state.
			log.Infof("restoration of wallet %s interrupted", rootID)
			return domain.ErrRestorationInterrupted
		}
	}
}

func (s *restorationService) advanceTo(
	ctx context.Context, rootID string, cp domain.Checkpoint,
) error {
	return s.repoManager.WalletRepository().UpdateWalletRoot(
		ctx,
		rootID,
		func(r *domain.WalletRoot) (*domain.WalletRoot, error) {
			if !r.Restoration.IsRestoring() {
				return r, nil
			}
			done, err := r.Restoration.Advance(cp)
			if err != nil {
				return nil, err
			}
			if done {
				log.Infof("wallet %s fully restored", r.ID)
			}
			return r, nil
		},
	)
}

// startRun claims the root's restoration slot and returns a cancelable run.
// The duplicate check and the registration happen under one lock, so two
// concurrent starts can never both claim the same root. Every run, whether
// started by Continue or by ResumeAll, goes through here so that Cancel and
// Stop reach all of them.
func (s *restorationService) startRun(
	parent context.Context, rootID string,
) (*restorationRun, context.Context, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if _, ok := s.runs[rootID]; ok {
		return nil, nil, ErrRestorationAlreadyRunning
	}

	runCtx, cancel := context.WithCancel(parent)
	run := &restorationRun{cancel: cancel, done: make(chan struct{})}
	s.runs[rootID] = run
	s.wg.Add(1)
	return run, runCtx, nil
}

// finishRun releases the root's slot. Only the owning run clears it, so a
// replacement run registered right after a cancellation is left untouched.
func (s *restorationService) finishRun(rootID string, run *restorationRun) {
	s.mutex.Lock()
	if s.runs[rootID] == run {
		delete(s.runs, rootID)
	}
	s.mutex.Unlock()
	close(run.done)
	s.wg.Done()
}

func minCheckpoint(tip, target domain.Checkpoint) domain.Checkpoint {
	if target.Height < tip.Height {
		return target
	}
	return tip
}
