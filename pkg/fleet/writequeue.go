package fleet

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"liyu1981.xyz/trailer-fleet-service/pkg/common"
)

type WriteJob struct {
	Name string
	Run  func(ctx context.Context) error
}

// WriteQueue runs persistence jobs on a single worker so that callers never
// wait on the store. A full queue drops the job and counts it.
type WriteQueue struct {
	jobs       chan WriteJob
	jobTimeout time.Duration

	mu      sync.Mutex
	closed  bool
	started atomic.Bool
	done    chan struct{}

	processed atomic.Int64
	failed    atomic.Int64
	dropped   atomic.Int64
}

func NewWriteQueue(size int, jobTimeout time.Duration) *WriteQueue {
	if size <= 0 {
		size = 256
	}
	if jobTimeout <= 0 {
		jobTimeout = 5 * time.Second
	}
	return &WriteQueue{
		jobs:       make(chan WriteJob, size),
		jobTimeout: jobTimeout,
		done:       make(chan struct{}),
	}
}

// Enqueue never blocks. It reports whether the job was accepted.
func (q *WriteQueue) Enqueue(name string, run func(ctx context.Context) error) bool {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		q.dropped.Add(1)
		return false
	}

	select {
	case q.jobs <- WriteJob{Name: name, Run: run}:
		return true
	default:
		dropped := q.dropped.Add(1)
		common.GetCategoryLogger(common.LoggerNameStore, common.LoggerCategoryPersist).
			Warn("Write queue full, dropping job", zap.String("job", name), zap.Int64("dropped", dropped))
		return false
	}
}

// Start runs the worker in its own goroutine.
func (q *WriteQueue) Start(ctx context.Context) {
	if !q.started.CompareAndSwap(false, true) {
		return
	}
	go q.loop(ctx)
}

// Run drains the queue until Close is called or ctx is done. Jobs still
// buffered when ctx ends are executed before returning.
func (q *WriteQueue) Run(ctx context.Context) {
	if !q.started.CompareAndSwap(false, true) {
		return
	}
	q.loop(ctx)
}

func (q *WriteQueue) loop(ctx context.Context) {
	defer close(q.done)

	for {
		select {
		case job, ok := <-q.jobs:
			if !ok {
				return
			}
			q.execute(ctx, job)
		case <-ctx.Done():
			q.drain(ctx)
			return
		}
	}
}

func (q *WriteQueue) drain(ctx context.Context) {
	for {
		select {
		case job, ok := <-q.jobs:
			if !ok {
				return
			}
			q.execute(ctx, job)
		default:
			return
		}
	}
}

func (q *WriteQueue) execute(ctx context.Context, job WriteJob) {
	// jobs outlive the caller's cancellation, only the per job timeout applies
	jobCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), q.jobTimeout)
	defer cancel()

	if err := job.Run(jobCtx); err != nil {
		q.failed.Add(1)
		common.GetCategoryLogger(common.LoggerNameStore, common.LoggerCategoryPersist).
			Error("Write job failed", zap.String("job", job.Name), zap.Error(err))
		return
	}
	q.processed.Add(1)
}

// Close stops accepting jobs and waits for the worker to finish the backlog.
func (q *WriteQueue) Close() {
	q.mu.Lock()
	if q.closed {
		q.mu.Unlock()
		return
	}
	q.closed = true
	close(q.jobs)
	q.mu.Unlock()

	if q.started.Load() {
		<-q.done
	}
}

type WriteQueueStats struct {
	Pending   int   `json:"pending"`
	Processed int64 `json:"processed"`
	Failed    int64 `json:"failed"`
	Dropped   int64 `json:"dropped"`
}

func (q *WriteQueue) Stats() WriteQueueStats {
	return WriteQueueStats{
		Pending:   len(q.jobs),
		Processed: q.processed.Load(),
		Failed:    q.failed.Load(),
		Dropped:   q.dropped.Load(),
	}
}
