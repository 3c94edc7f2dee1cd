package main

import (
	"context"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/TerrikNET/cardano-sl/config"
	"github.com/TerrikNET/cardano-sl/internal/core/application"
	"github.com/TerrikNET/cardano-sl/internal/core/ports"
	nodeinfra "github.com/TerrikNET/cardano-sl/internal/infrastructure/node"
	nodeinmemory "github.com/TerrikNET/cardano-sl/internal/infrastructure/node/inmemory"
	dbbadger "github.com/TerrikNET/cardano-sl/internal/infrastructure/storage/db/badger"
	"github.com/TerrikNET/cardano-sl/internal/infrastructure/storage/db/inmemory"
	"github.com/TerrikNET/cardano-sl/internal/infrastructure/storage/snapshot"
	"github.com/TerrikNET/cardano-sl/pkg/stats"
)

func main() {
	log.SetLevel(log.Level(config.GetInt(config.LogLevelKey)))

	repoManager, err := newRepoManager()
	if err != nil {
		log.WithError(err).Panic("error while opening storage")
	}
	defer repoManager.Close()

	snapshotStore := snapshot.NewStore()

	// The simulated node stands in for the adaptor to a real node's API;
	// either way every query goes through the circuit breaker.
	nodeSvc := nodeinfra.NewBreakerService(
		nodeinmemory.NewService(config.GetGenesisHash()),
	)

	worker := application.NewActionWorker(
		repoManager,
		snapshotStore,
		config.GetInt(config.ActionQueueSizeKey),
	)

	forkResolver := application.NewForkResolver(
		repoManager,
		nodeSvc,
		worker,
		config.GetGenesisHash(),
		config.GetInt(config.ForkRetryAttemptsKey),
	)

	restorationSvc := application.NewRestorationService(
		application.RestorationServiceOpts{
			RepoManager:          repoManager,
			NodeService:          nodeSvc,
			Worker:               worker,
			BatchSize:            config.GetInt(config.RestorationBatchSizeKey),
			NodeQueriesPerSecond: config.GetFloat(config.NodeQueryLimitKey),
			NodeQueryBurst:       config.GetInt(config.NodeQueryBurstKey),
		},
	)

	walletSvc := application.NewWalletService(
		repoManager,
		snapshotStore,
		nodeSvc,
		worker,
		forkResolver,
		restorationSvc,
	)

	statsCtx, stopStats := context.WithCancel(context.Background())
	defer stopStats()
	if config.GetBool(config.EnableProfilerKey) {
		interval := time.Duration(config.GetInt(config.StatsIntervalKey)) * time.Second
		stats.EnableMemoryStatistics(statsCtx, interval)
	}

	log.Debug("starting daemon")
	worker.Start()

	go func() {
		if err := walletSvc.ResumeRestorations(context.Background()); err != nil {
			log.WithError(err).Warn("error while resuming restorations")
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGTERM, syscall.SIGINT)
	<-sigChan

	log.Debug("shutting down")
	restorationSvc.Stop()
	worker.Stop()
	log.Debug("exiting")
}

func newRepoManager() (ports.RepoManager, error) {
	if config.GetString(config.DbTypeKey) == "inmemory" {
		return inmemory.NewRepoManager(), nil
	}

	dbDir := filepath.Join(config.GetDatadir(), config.DbLocation)
	return dbbadger.NewRepoManager(dbDir, nil)
}
