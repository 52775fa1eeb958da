package store

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/time/rate"

	"github.com/spellitplease/spellit/internal/domain"
	"github.com/spellitplease/spellit/internal/logger"
)

// OverrideSaver persists a complete override set.
// *Store implements it.
type OverrideSaver interface {
	SaveOverrides(ctx context.Context, overrides domain.Overrides) error
	DeleteOverrides(ctx context.Context) error
}

// finalWriteTimeout bounds the last write when Shutdown's own context has expired.
const finalWriteTimeout = time.Second

// WriterOption configures a Writer.
type WriterOption func(*Writer)

// WithMinInterval paces background writes to at most one per interval.
// Snapshots arriving in between are coalesced; only the newest is written.
// Zero or negative disables pacing.
func WithMinInterval(d time.Duration) WriterOption {
	return func(w *Writer) {
		if d <= 0 {
			w.limiter = rate.NewLimiter(rate.Inf, 1)
			return
		}
		w.limiter = rate.NewLimiter(rate.Every(d), 1)
	}
}

// WriterStats counts background write outcomes.
type WriterStats struct {
	Writes   int64
	Failures int64
	Skipped  int64
}

// Writer saves override snapshots in the background.
//
// Save never blocks the caller. Only the newest pending snapshot is kept, so
// a burst of edits (one per keystroke) produces a single write of the final
// state. Failed writes are logged and not retried by the loop; the snapshot
// stays pending for the final write in Shutdown unless a newer one replaces it.
type Writer struct {
	saver   OverrideSaver
	logger  *slog.Logger
	limiter *rate.Limiter

	mu         sync.Mutex
	pending    domain.Overrides
	pendingSeq uint64
	nextSeq    uint64

	// writeMu serializes writes so an older snapshot never lands after a newer one.
	writeMu    sync.Mutex
	writtenSeq uint64

	notify   chan struct{}
	stop     chan struct{}
	exited   chan struct{}
	started  atomic.Bool
	stopOnce sync.Once

	writes   atomic.Int64
	failures atomic.Int64
	skipped  atomic.Int64
}

// NewWriter creates a background writer in front of saver.
// Call Start to begin writing; snapshots saved before Start are kept until then.
func NewWriter(saver OverrideSaver, log *slog.Logger, opts ...WriterOption) *Writer {
	log = logger.OrDiscard(log)

	w := &Writer{
		saver:   saver,
		logger:  log,
		limiter: rate.NewLimiter(rate.Inf, 1),
		notify:  make(chan struct{}, 1),
		stop:    make(chan struct{}),
		exited:  make(chan struct{}),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Start runs the write loop until ctx is canceled or Shutdown is called.
// This should be called once, in its own goroutine.
func (w *Writer) Start(ctx context.Context) {
	if !w.started.CompareAndSwap(false, true) {
		return
	}
	defer close(w.exited)

	w.logger.Debug("override writer starting")

	// Pacing waits end as soon as Shutdown is called; Shutdown writes what is left.
	waitCtx, cancel := context.WithCancel(ctx)
	defer cancel()
	go func() {
		select {
		case <-w.stop:
			cancel()
		case <-waitCtx.Done():
		}
	}()

	for {
		select {
		case <-w.notify:
			if err := w.limiter.Wait(waitCtx); err != nil {
				w.logger.Debug("override writer wait aborted", "error", err)
				return
			}
			w.flush(ctx)
		case <-w.stop:
			w.logger.Debug("override writer stopping")
			return
		case <-ctx.Done():
			w.logger.Debug("override writer context done")
			return
		}
	}
}

// Save queues snapshot for writing and returns immediately.
// The caller must not mutate snapshot afterwards.
func (w *Writer) Save(snapshot domain.Overrides) {
	select {
	case <-w.stop:
		w.logger.Warn("override writer stopped, dropping snapshot", "count", len(snapshot))
		return
	default:
	}

	w.mu.Lock()
	w.nextSeq++
	w.pending = snapshot
	w.pendingSeq = w.nextSeq
	w.mu.Unlock()

	select {
	case w.notify <- struct{}{}:
	default:
		// A wake-up is already queued; it will pick up the newest snapshot.
	}
}

// Shutdown stops the loop and writes any pending snapshot.
// The final write is best-effort and bounded by ctx; when ctx is already done
// it still gets finalWriteTimeout of its own.
func (w *Writer) Shutdown(ctx context.Context) error {
	w.stopOnce.Do(func() { close(w.stop) })

	if w.started.Load() {
		select {
		case <-w.exited:
		case <-ctx.Done():
			w.logger.Warn("override writer did not stop in time")
		}
	}

	flushCtx := ctx
	if ctx.Err() != nil {
		var cancel context.CancelFunc
		flushCtx, cancel = context.WithTimeout(context.WithoutCancel(ctx), finalWriteTimeout)
		defer cancel()
	}
	w.flush(flushCtx)

	stats := w.Stats()
	w.logger.Debug("override writer shut down",
		"writes", stats.Writes,
		"failures", stats.Failures,
		"skipped", stats.Skipped,
	)
	return ctx.Err()
}

// Stats returns write counters.
func (w *Writer) Stats() WriterStats {
	return WriterStats{
		Writes:   w.writes.Load(),
		Failures: w.failures.Load(),
		Skipped:  w.skipped.Load(),
	}
}

// flush writes the pending snapshot, if any. The snapshot stays pending until
// it is written or replaced, so a write that fails here is still seen by the
// final flush in Shutdown.
func (w *Writer) flush(ctx context.Context) {
	w.mu.Lock()
	snapshot, seq := w.pending, w.pendingSeq
	w.mu.Unlock()

	if seq == 0 {
		return
	}

	w.writeMu.Lock()
	defer w.writeMu.Unlock()

	if seq <= w.writtenSeq {
		w.skipped.Add(1)
		return
	}

	if err := w.write(ctx, snapshot); err != nil {
		w.failures.Add(1)
		w.logger.Warn("failed to persist overrides", "count", len(snapshot), "error", err)
		return
	}

	w.writtenSeq = seq
	w.writes.Add(1)

	w.mu.Lock()
	if w.pendingSeq == seq {
		w.pending, w.pendingSeq = nil, 0
	}
	w.mu.Unlock()
}

// write stores snapshot. An empty set removes the stored key instead of
// writing an empty object.
func (w *Writer) write(ctx context.Context, snapshot domain.Overrides) error {
	if len(snapshot) == 0 {
		return w.saver.DeleteOverrides(ctx)
	}
	return w.saver.SaveOverrides(ctx, snapshot)
}
