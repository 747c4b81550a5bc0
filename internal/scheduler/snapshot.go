package scheduler

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/MrSnakeDoc/stash/internal/blob"
	"github.com/MrSnakeDoc/stash/internal/logger"
	"github.com/MrSnakeDoc/stash/internal/store"
)

// Snapshotter periodically writes a dated export of the collection to a
// directory, as an extra safety net beside the primary blob.
type Snapshotter struct {
	store         *store.Store
	dir           string
	logger        logger.Logger
	interval      time.Duration
	now           func() time.Time
	stopCh        chan struct{}
	manualTrigger chan struct{}
}

// NewSnapshotter creates a snapshotter writing into dir.
func NewSnapshotter(
	st *store.Store,
	dir string,
	log logger.Logger,
	interval time.Duration,
	manualTrigger chan struct{},
) *Snapshotter {
	return &Snapshotter{
		store:         st,
		dir:           dir,
		logger:        log,
		interval:      interval,
		now:           time.Now,
		stopCh:        make(chan struct{}),
		manualTrigger: manualTrigger,
	}
}

// Start writes one snapshot immediately, then keeps snapshotting on the
// configured interval until Stop or context cancellation.
func (sn *Snapshotter) Start(ctx context.Context) error {
	if err := sn.Snapshot(); err != nil {
		return fmt.Errorf("initial snapshot failed: %w", err)
	}

	ticker := time.NewTicker(sn.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := sn.Snapshot(); err != nil {
					sn.logger.Error("failed to write snapshot", logger.Error(err))
				}
			case <-sn.manualTrigger:
				sn.logger.Info("manual snapshot triggered")
				if err := sn.Snapshot(); err != nil {
					sn.logger.Error("failed to write snapshot", logger.Error(err))
				}
			case <-sn.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the snapshotter.
func (sn *Snapshotter) Stop() {
	close(sn.stopCh)
}

// Snapshot exports the collection to a dated file in the snapshot
// directory. Snapshots taken on the same day overwrite each other.
func (sn *Snapshotter) Snapshot() error {
	data, err := sn.store.Export()
	if err != nil {
		return fmt.Errorf("failed to export bookmarks: %w", err)
	}

	if err := os.MkdirAll(sn.dir, 0o755); err != nil {
		return fmt.Errorf("failed to create snapshot directory: %w", err)
	}

	path := filepath.Join(sn.dir, store.ExportFilename(sn.now()))
	if err := blob.WriteFileAtomic(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write snapshot: %w", err)
	}

	sn.logger.Info("snapshot written",
		logger.String("path", path),
		logger.Int("bookmarks", sn.store.Count()))
	return nil
}
