package inventory

import (
	"context"
	"sync"
	"time"

	"inventory-manager/feature/inventory/merge"
	"inventory-manager/feature/inventory/models"

	"golang.org/x/sync/singleflight"
)

// Snapshot is one complete build of the inventory.
type Snapshot struct {
	// Store is frozen and safe for concurrent reads.
	Store *models.Store
	// Stats counts merged and dropped rows.
	Stats merge.Stats
	// Built is when the build finished.
	Built time.Time
	// Source names the table source the snapshot was read from.
	Source string
}

// Summary is the JSON view of a snapshot.
type Summary struct {
	Records int         `json:"records"`
	Stats   merge.Stats `json:"stats"`
	Built   time.Time   `json:"built"`
	Source  string      `json:"source"`
}

// Summary describes the snapshot without its records.
func (s *Snapshot) Summary() Summary {
	return Summary{Records: s.Store.Len(), Stats: s.Stats, Built: s.Built, Source: s.Source}
}

// snapshotHolder publishes the current snapshot. Builds run through
// singleflight so concurrent reloads share one result.
type snapshotHolder struct {
	mu      sync.RWMutex
	current *Snapshot
	sf      singleflight.Group
}

func (h *snapshotHolder) get() *Snapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.current
}

func (h *snapshotHolder) set(s *Snapshot) {
	h.mu.Lock()
	h.current = s
	h.mu.Unlock()
}

// reload runs build once for all concurrent callers and installs the result.
// A failed build leaves the previous snapshot in place.
func (h *snapshotHolder) reload(ctx context.Context, build func(context.Context) (*Snapshot, error)) (*Snapshot, bool, error) {
	result, err, shared := h.sf.Do("snapshot", func() (interface{}, error) {
		snap, err := build(ctx)
		if err != nil {
			return nil, err
		}
		h.set(snap)
		return snap, nil
	})
	if err != nil {
		return nil, shared, err
	}
	return result.(*Snapshot), shared, nil
}

// getOrLoad returns the current snapshot, building one if none exists yet.
func (h *snapshotHolder) getOrLoad(ctx context.Context, build func(context.Context) (*Snapshot, error)) (*Snapshot, error) {
	if snap := h.get(); snap != nil {
		return snap, nil
	}
	snap, _, err := h.reload(ctx, func(ctx context.Context) (*Snapshot, error) {
		// Double-check inside the flight.
		if snap := h.get(); snap != nil {
			return snap, nil
		}
		return build(ctx)
	})
	return snap, err
}
