package domain

import "errors"

var (
	// ErrChainInconsistency is thrown when an action references a predecessor
	// that is not the wallet's current tip. The action is discarded, the
	// worker keeps processing.
	ErrChainInconsistency = errors.New("block does not extend the wallet's current chain")
	// ErrForkAncestorNotFound is thrown when the wallet's chain and the
	// node's chain share no history
	ErrForkAncestorNotFound = errors.New("no common ancestor between wallet and node chains")
	// ErrRestorationInterrupted signals the cooperative cancellation of a
	// long-running restoration. It is a normal termination path, persisted
	// progress is kept for later resumption.
	ErrRestorationInterrupted = errors.New("restoration interrupted")
	// ErrCoinOverflow is thrown when summing coin values exceeds the maximum
	// representable amount
	ErrCoinOverflow = errors.New("coin amount exceeds maximum")
	// ErrWalletRootNotFound ...
	ErrWalletRootNotFound = errors.New("wallet root not found")
	// ErrWalletRootAlreadyExists ...
	ErrWalletRootAlreadyExists = errors.New("wallet root already exists")
	// ErrNullRootPublicKey ...
	ErrNullRootPublicKey = errors.New("root public key must not be null")
	// ErrNotRestoring is thrown when advancing the restoration state of a
	// wallet root that is already fully synced
	ErrNotRestoring = errors.New("wallet root is not being restored")
	// ErrEmptyChain is thrown when rolling back more blocks than the wallet
	// has applied
	ErrEmptyChain = errors.New("not enough applied blocks to roll back")
)
