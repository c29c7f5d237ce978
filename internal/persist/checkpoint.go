package persist

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/karthika2z/karthika2z-ztmm-scoring-tool/internal/assessment"
)

// SnapshotKey is the well-known key the current session's document is
// checkpointed under.
const SnapshotKey = "ztmm-assessment"

// Checkpointer persists the current document across two tiers: the
// SQLite snapshot store (primary) and a plain JSON backup file
// (secondary, best effort). Primary failures are surfaced; backup
// failures are logged and otherwise ignored.
//
// Checkpointing is invoked by the outer layer after each command batch,
// never from inside the state store's transitions.
type Checkpointer struct {
	store      *Store
	backupPath string
	log        *slog.Logger
	now        func() time.Time
}

// NewCheckpointer wires a checkpointer over an open snapshot store.
// backupPath may be "" to disable the secondary tier; log may be nil.
func NewCheckpointer(store *Store, backupPath string, log *slog.Logger) *Checkpointer {
	if log == nil {
		log = slog.Default()
	}
	return &Checkpointer{store: store, backupPath: backupPath, log: log, now: time.Now}
}

// Save serializes the document and writes both tiers. The returned
// error, if any, is the primary tier's; on a primary failure the backup
// is not attempted.
func (c *Checkpointer) Save(ctx context.Context, doc *assessment.Assessment) error {
	data, err := ExportForSave(doc)
	if err != nil {
		return err
	}

	savedAt := c.now().UTC().Format(assessment.TimestampLayout)
	if err := c.store.Put(ctx, SnapshotKey, data, savedAt); err != nil {
		return err
	}

	if c.backupPath != "" {
		if err := os.WriteFile(c.backupPath, data, 0o644); err != nil {
			c.log.Warn("snapshot backup write failed", "path", c.backupPath, "error", err)
		}
	}
	return nil
}

// Load restores the most recent checkpoint: the primary tier first,
// then the backup file. Returns (nil, nil) when no checkpoint exists.
// The restored bytes go through the full import validation, so a
// corrupted checkpoint is rejected rather than loaded.
func (c *Checkpointer) Load(ctx context.Context) (*assessment.Assessment, error) {
	data, _, ok, err := c.store.Get(ctx, SnapshotKey)
	if err != nil {
		return nil, err
	}
	if !ok && c.backupPath != "" {
		backup, readErr := os.ReadFile(c.backupPath)
		if readErr == nil {
			c.log.Info("recovered snapshot from backup file", "path", c.backupPath)
			data, ok = backup, true
		} else if !os.IsNotExist(readErr) {
			c.log.Warn("snapshot backup read failed", "path", c.backupPath, "error", readErr)
		}
	}
	if !ok {
		return nil, nil
	}
	return ImportForLoad(data)
}

// Clear removes the checkpoint from both tiers.
func (c *Checkpointer) Clear(ctx context.Context) error {
	if err := c.store.Remove(ctx, SnapshotKey); err != nil {
		return err
	}
	if c.backupPath != "" {
		if err := os.Remove(c.backupPath); err != nil && !os.IsNotExist(err) {
			c.log.Warn("snapshot backup remove failed", "path", c.backupPath, "error", err)
		}
	}
	return nil
}
