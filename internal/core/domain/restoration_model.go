package domain

// RestorationStatus enumerates the two states a wallet root can be in with
// respect to chain synchronization.
type RestorationStatus int

const (
	// StatusSynced means the wallet's view is up to date with its chain.
	StatusSynced RestorationStatus = iota
	// StatusRestoring means the wallet is replaying historical blocks
	// between a source and a target checkpoint.
	StatusRestoring
)

// RestorationState tracks the progress of a historical resync for one wallet
// root. It is durable state: a process restart resumes from the persisted
// Source/Target pair instead of starting over.
//
// A root is in exactly one of {Synced, Restoring(source, target)} at any
// time. A nil Source while restoring means "from genesis".
type RestorationState struct {
	Status RestorationStatus
	Source *Checkpoint
	Target *Checkpoint
}

// NewSyncedState returns the state of a brand-new, empty wallet.
func NewSyncedState() RestorationState {
	return RestorationState{Status: StatusSynced}
}

// NewRestoringState returns the state of a wallet created from an existing
// secret key whose history must be replayed up to target.
func NewRestoringState(source *Checkpoint, target Checkpoint) RestorationState {
	return RestorationState{
		Status: StatusRestoring,
		Source: source,
		Target: &target,
	}
}

// IsRestoring returns whether the root is mid-restoration.
func (s RestorationState) IsRestoring() bool {
	return s.Status == StatusRestoring
}

// Advance moves Source forward to the checkpoint of the last applied block.
// When Source catches up with Target the state transitions to Synced and the
// restoration fields are cleared. It returns whether the terminal state has
// been reached.
func (s *RestorationState) Advance(applied Checkpoint) (bool, error) {
	if !s.IsRestoring() {
		return false, ErrNotRestoring
	}

	if s.Target != nil && (applied.Equal(*s.Target) || applied.Height >= s.Target.Height) {
		*s = NewSyncedState()
		return true, nil
	}

	cp := applied
	s.Source = &cp
	return false, nil
}
