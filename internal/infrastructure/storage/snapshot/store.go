// Package snapshot provides the in-process snapshot store: an atomically
// swapped pointer to the latest immutable view of the wallet state.
package snapshot

import (
	"sync/atomic"

	"github.com/TerrikNET/cardano-sl/internal/core/domain"
	"github.com/TerrikNET/cardano-sl/internal/core/ports"
)

type storeImpl struct {
	current atomic.Pointer[domain.Snapshot]
}

// NewStore returns an empty SnapshotStore. Nothing is visible to readers
// until the first Publish.
func NewStore() ports.SnapshotStore {
	return &storeImpl{}
}

func (s *storeImpl) Current() *domain.Snapshot {
	return s.current.Load()
}

func (s *storeImpl) Publish(snapshot *domain.Snapshot) {
	s.current.Store(snapshot)
}
