// Package worker runs the spreadsheet backup pipeline: it listens for
// entity sync messages and periodically mirrors the full dataset.
package worker

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"financas/internal/amqp"
	"financas/internal/log"
	"financas/internal/sheets"
	"financas/internal/store"
)

// Consumer delivers entity sync messages until the context is cancelled.
type Consumer interface {
	ConsumeEntitySync(ctx context.Context, handler func(*amqp.EntitySyncMessage) error) error
}

type BackupWorker struct {
	snapshots store.SnapshotReader
	mirror    sheets.Mirror
	consumer  Consumer
	interval  time.Duration
	debounce  time.Duration

	// kick carries at most one pending "something changed" signal;
	// coalescing bursts into a single mirror pass.
	kick chan struct{}
}

func NewBackupWorker(snapshots store.SnapshotReader, mirror sheets.Mirror, consumer Consumer, interval time.Duration) *BackupWorker {
	return &BackupWorker{
		snapshots: snapshots,
		mirror:    mirror,
		consumer:  consumer,
		interval:  interval,
		debounce:  5 * time.Second,
		kick:      make(chan struct{}, 1),
	}
}

// HandleSyncMessage records that an entity changed. The message body only
// identifies the entity; the mirror pass always reads a fresh snapshot,
// so duplicates and out-of-order deliveries are harmless.
func (w *BackupWorker) HandleSyncMessage(ctx context.Context, msg *amqp.EntitySyncMessage) error {
	slog.InfoContext(ctx, "Entity change received",
		log.FieldComponent, log.ComponentWorker,
		log.FieldEntity, msg.Entity,
		"id", msg.ID,
		"action", msg.Action)

	select {
	case w.kick <- struct{}{}:
	default:
	}
	return nil
}

// Run starts the consume and mirror loops and blocks until the context is
// cancelled or one of the loops fails.
func (w *BackupWorker) Run(ctx context.Context) error {
	// Mirror once on startup to recover from downtime.
	if err := w.MirrorOnce(ctx); err != nil {
		slog.ErrorContext(ctx, "Startup mirror failed", log.FieldError, err)
	}

	g, ctx := errgroup.WithContext(ctx)

	if w.consumer != nil {
		g.Go(func() error {
			err := w.consumer.ConsumeEntitySync(ctx, func(msg *amqp.EntitySyncMessage) error {
				return w.HandleSyncMessage(ctx, msg)
			})
			if err != nil && ctx.Err() == nil {
				return fmt.Errorf("consume entity sync: %w", err)
			}
			return nil
		})
	}

	g.Go(func() error {
		return w.mirrorLoop(ctx)
	})

	return g.Wait()
}

func (w *BackupWorker) mirrorLoop(ctx context.Context) error {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if err := w.MirrorOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Periodic mirror failed", log.FieldError, err)
			}
		case <-w.kick:
			// Let a burst of changes settle before reading the snapshot.
			select {
			case <-ctx.Done():
				return nil
			case <-time.After(w.debounce):
			}
			if err := w.MirrorOnce(ctx); err != nil {
				slog.ErrorContext(ctx, "Change-triggered mirror failed", log.FieldError, err)
			}
		}
	}
}

// MirrorOnce reads a fresh snapshot and rewrites the backup destination.
func (w *BackupWorker) MirrorOnce(ctx context.Context) error {
	snap, err := w.snapshots.Snapshot(ctx)
	if err != nil {
		return fmt.Errorf("read snapshot: %w", err)
	}

	stats, err := w.mirror.MirrorSnapshot(ctx, snap)
	if err != nil {
		return fmt.Errorf("mirror snapshot: %w", err)
	}

	slog.InfoContext(ctx, "Backup pass completed",
		log.FieldComponent, log.ComponentWorker,
		log.FieldOperation, log.OpBackup,
		"expense_rows", stats.ExpenseRows,
		"income_rows", stats.IncomeRows)
	return nil
}
