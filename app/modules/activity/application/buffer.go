package activityservice

import (
	"context"
	"log/slog"
	"sync"
	"time"

	activitydb "github.com/forgehall/forge-bot/app/modules/activity/infrastructure/repositories"
	"github.com/google/uuid"
)

const (
	// DefaultMaxQueue triggers an immediate flush when reached.
	DefaultMaxQueue = 400
	// DefaultFlushInterval is the periodic flush cadence.
	DefaultFlushInterval = 60 * time.Second
)

// Buffer is the write-behind queue for action rows. It is the sole writer of
// the actions table: request completions enqueue here and the buffer persists
// batches on a size threshold, on a timer, and on Close.
//
// Failed batches are logged and dropped, not requeued; an operator watching
// the log and the flush-failure metric is expected to react to persistent
// storage failures.
type Buffer struct {
	repo     activitydb.Repository
	logger   *slog.Logger
	metrics  Metrics
	maxQueue int

	mu    sync.Mutex
	queue []*activitydb.Action

	done     chan struct{}
	wg       sync.WaitGroup
	stopOnce sync.Once
}

// NewBuffer creates the buffer and starts its periodic flush timer. The timer
// goroutine is advisory: it stops when Close is called and never keeps the
// process alive on its own.
func NewBuffer(repo activitydb.Repository, logger *slog.Logger, metrics Metrics, maxQueue int, interval time.Duration) *Buffer {
	if logger == nil {
		logger = slog.Default()
	}
	if metrics == nil {
		metrics = NewNoopMetrics()
	}
	if maxQueue <= 0 {
		maxQueue = DefaultMaxQueue
	}
	if interval <= 0 {
		interval = DefaultFlushInterval
	}

	b := &Buffer{
		repo:     repo,
		logger:   logger,
		metrics:  metrics,
		maxQueue: maxQueue,
		done:     make(chan struct{}),
	}

	b.wg.Add(1)
	go b.run(interval)

	return b
}

// Enqueue appends an action to the queue, flushing immediately once the
// size threshold is reached.
func (b *Buffer) Enqueue(action *activitydb.Action) {
	b.mu.Lock()
	b.queue = append(b.queue, action)
	depth := len(b.queue)
	b.mu.Unlock()

	b.metrics.QueueDepth(depth)

	if depth >= b.maxQueue {
		// Flush errors are logged inside Flush; the enqueue path stays cheap.
		_, _ = b.Flush(context.Background())
	}
}

// Flush drains everything queued at flush start and persists it as a single
// all-or-nothing batch. Items enqueued while the batch is being written are
// left for the next flush. Returns the number of rows flushed; an empty
// queue is a no-op returning 0.
func (b *Buffer) Flush(ctx context.Context) (int, error) {
	b.mu.Lock()
	batch := b.queue
	b.queue = nil
	b.mu.Unlock()

	if len(batch) == 0 {
		return 0, nil
	}

	if err := b.repo.InsertBatch(ctx, nil, batch); err != nil {
		b.metrics.FlushFailed(len(batch))
		b.logger.ErrorContext(ctx, "action buffer flush failed, dropping batch",
			"batch_id", uuid.NewString(),
			"batch_size", len(batch),
			"error", err,
		)
		return 0, err
	}

	b.metrics.FlushSucceeded(len(batch))
	b.metrics.QueueDepth(b.depth())
	return len(batch), nil
}

// Close stops the flush timer and performs the mandatory final flush.
// It must be called before the store handle closes.
func (b *Buffer) Close(ctx context.Context) error {
	b.stopOnce.Do(func() {
		close(b.done)
	})
	b.wg.Wait()

	_, err := b.Flush(ctx)
	return err
}

func (b *Buffer) run(interval time.Duration) {
	defer b.wg.Done()

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			_, _ = b.Flush(context.Background())
		case <-b.done:
			return
		}
	}
}

func (b *Buffer) depth() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.queue)
}
