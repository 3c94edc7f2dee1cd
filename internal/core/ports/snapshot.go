package ports

import (
	"github.com/TerrikNET/cardano-sl/internal/core/domain"
)

// SnapshotStore publishes and serves immutable point-in-time views of the
// wallet state. Writers publish new snapshots atomically, readers obtain a
// fresh snapshot per query and never block on writers.
type SnapshotStore interface {
	// Current returns the latest published snapshot, nil if none has been
	// published yet.
	Current() *domain.Snapshot
	// Publish atomically replaces the current snapshot for all future
	// readers. Readers holding an older snapshot are unaffected.
	Publish(snapshot *domain.Snapshot)
}
