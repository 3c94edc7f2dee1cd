package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg/chainhash"
	log "github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

const (
	// DatadirKey is the local data directory to store the internal state of the engine
	DatadirKey = "DATA_DIR_PATH"
	// LogLevelKey are the different logging levels. For reference on the values https://godoc.org/github.com/sirupsen/logrus#Level
	LogLevelKey = "LOG_LEVEL"
	// DbTypeKey selects the storage backend. Either "badger" or "inmemory"
	DbTypeKey = "DB_TYPE"
	// GenesisHashKey is the hash of the genesis block of the chain the engine syncs against
	GenesisHashKey = "GENESIS_HASH"
	// ActionQueueSizeKey is the capacity of the action worker's queue. Submitters block once it is full
	ActionQueueSizeKey = "ACTION_QUEUE_SIZE"
	// RestorationBatchSizeKey is the number of blocks fetched from the node per restored batch
	RestorationBatchSizeKey = "RESTORATION_BATCH_SIZE"
	// NodeQueryLimitKey represents number of requests per second that the restoration makes to the node
	NodeQueryLimitKey = "NODE_QUERY_LIMIT"
	// NodeQueryBurstKey represents number of burst tokens permitted from restoration to the node
	NodeQueryBurstKey = "NODE_QUERY_BURST"
	// ForkRetryAttemptsKey is the number of extra common-ancestor resolution attempts before a fork switch is halted
	ForkRetryAttemptsKey = "FORK_RETRY_ATTEMPTS"
	// EnableProfilerKey enables profiler that can be used to investigate performance issues
	EnableProfilerKey = "ENABLE_PROFILER"
	// StatsIntervalKey defines interval for printing basic engine statistics
	StatsIntervalKey = "STATS_INTERVAL"

	DbLocation       = "db"
	ProfilerLocation = "stats"
)

var vip *viper.Viper
var defaultDatadir = btcutil.AppDataDir("cardano-sl-wallet", false)

func init() {
	vip = viper.New()
	vip.SetEnvPrefix("CSL")
	vip.AutomaticEnv()

	vip.SetDefault(DatadirKey, defaultDatadir)
	vip.SetDefault(LogLevelKey, 4)
	vip.SetDefault(DbTypeKey, "badger")
	vip.SetDefault(GenesisHashKey, chainhash.Hash{}.String())
	vip.SetDefault(ActionQueueSizeKey, 100)
	vip.SetDefault(RestorationBatchSizeKey, 100)
	vip.SetDefault(NodeQueryLimitKey, 10)
	vip.SetDefault(NodeQueryBurstKey, 1)
	vip.SetDefault(ForkRetryAttemptsKey, 0)
	vip.SetDefault(EnableProfilerKey, false)
	vip.SetDefault(StatsIntervalKey, 600)

	if err := validate(); err != nil {
		log.WithError(err).Panic("error while validating config")
	}

	if err := initDatadir(); err != nil {
		log.WithError(err).Panic("error while creating datadir")
	}
}

//GetString ...
func GetString(key string) string {
	return vip.GetString(key)
}

//GetInt ...
func GetInt(key string) int {
	return vip.GetInt(key)
}

//GetFloat ...
func GetFloat(key string) float64 {
	return vip.GetFloat64(key)
}

//GetDuration ...
func GetDuration(key string) time.Duration {
	return vip.GetDuration(key)
}

//GetBool ...
func GetBool(key string) bool {
	return vip.GetBool(key)
}

//GetDatadir ...
func GetDatadir() string {
	return GetString(DatadirKey)
}

// GetGenesisHash returns the configured genesis block hash.
func GetGenesisHash() chainhash.Hash {
	hash, err := chainhash.NewHashFromStr(GetString(GenesisHashKey))
	if err != nil {
		log.WithError(err).Panic("error while parsing genesis hash")
	}
	return *hash
}

// Set a value for the given key
func Set(key string, value interface{}) {
	vip.Set(key, value)
}

// IsSet returns whether the give key is set
func IsSet(key string) bool {
	return vip.IsSet(key)
}

// Validate makes the validation of the config panic-free for callers that
// want to handle the error themselves.
func Validate() error {
	return validate()
}

func validate() error {
	datadir := GetString(DatadirKey)
	if len(datadir) <= 0 {
		return fmt.Errorf("datadir must not be null")
	}

	if _, err := chainhash.NewHashFromStr(GetString(GenesisHashKey)); err != nil {
		return fmt.Errorf("genesis hash is not valid: %w", err)
	}

	if dbType := GetString(DbTypeKey); dbType != "badger" && dbType != "inmemory" {
		return fmt.Errorf("db type must be either 'badger' or 'inmemory'")
	}

	if GetInt(ActionQueueSizeKey) <= 0 {
		return fmt.Errorf("action queue size must be positive")
	}
	if GetInt(RestorationBatchSizeKey) <= 0 {
		return fmt.Errorf("restoration batch size must be positive")
	}
	if GetInt(NodeQueryLimitKey) <= 0 || GetInt(NodeQueryBurstKey) <= 0 {
		return fmt.Errorf("node query limit and burst must be positive")
	}
	if GetInt(ForkRetryAttemptsKey) < 0 {
		return fmt.Errorf("fork retry attempts must not be negative")
	}

	return nil
}

func initDatadir() error {
	datadir := GetDatadir()
	if err := makeDirectoryIfNotExists(filepath.Join(datadir, DbLocation)); err != nil {
		return err
	}
	if GetBool(EnableProfilerKey) {
		return makeDirectoryIfNotExists(filepath.Join(datadir, ProfilerLocation))
	}
	return nil
}

func makeDirectoryIfNotExists(path string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return os.MkdirAll(path, os.ModeDir|0755)
	}
	return nil
}
