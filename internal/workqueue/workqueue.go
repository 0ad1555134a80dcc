// Package workqueue implements a fixed-size worker pool draining a shared
// FIFO task queue, with a Finish barrier that waits for the queue to drain
// AND every currently running task (including tasks it enqueues) to
// complete, and a graceful, idempotent Shutdown.
package workqueue

import (
	"log/slog"
	"sync"

	"github.com/riverrun/contextual-search/pkg/metrics"
)

// Task is a unit of work submitted to the queue. A Task that returns an
// error is logged and does not stop the pool.
type Task func() error

// Queue is a fixed-size worker pool over a FIFO task queue.
type Queue struct {
	mu       sync.Mutex
	notEmpty *sync.Cond
	drained  *sync.Cond
	tasks    []Task
	pending  int
	closed   bool
	log      *slog.Logger
	metrics  *metrics.Metrics
}

// New starts n worker goroutines draining a new, empty queue. n must be at
// least 1. m is optional; a nil m disables depth reporting.
func New(n int, m *metrics.Metrics, log *slog.Logger) *Queue {
	if log == nil {
		log = slog.Default()
	}
	q := &Queue{log: log.With("component", "workqueue"), metrics: m}
	q.notEmpty = sync.NewCond(&q.mu)
	q.drained = sync.NewCond(&q.mu)
	for i := 0; i < n; i++ {
		go q.worker()
	}
	return q
}

// Execute appends task to the queue and wakes one worker. Execute never
// blocks beyond brief contention on the queue's internal mutex. After
// Shutdown, Execute discards task without running it.
func (q *Queue) Execute(task Task) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.pending++
	q.tasks = append(q.tasks, task)
	q.metrics.SetQueueDepth(q.pending)
	q.notEmpty.Signal()
}

// Finish blocks the calling goroutine until the queue is empty and every
// currently running task — including tasks those tasks themselves submit —
// has completed.
func (q *Queue) Finish() {
	q.mu.Lock()
	defer q.mu.Unlock()
	for q.pending != 0 {
		q.drained.Wait()
	}
}

// Shutdown marks the queue closed; workers exit once the queue has drained.
// Shutdown is idempotent.
func (q *Queue) Shutdown() {
	q.mu.Lock()
	defer q.mu.Unlock()
	if q.closed {
		return
	}
	q.closed = true
	q.notEmpty.Broadcast()
}

func (q *Queue) worker() {
	for {
		q.mu.Lock()
		for len(q.tasks) == 0 && !q.closed {
			q.notEmpty.Wait()
		}
		if len(q.tasks) == 0 && q.closed {
			q.mu.Unlock()
			return
		}
		task := q.tasks[0]
		q.tasks = q.tasks[1:]
		q.mu.Unlock()

		if err := task(); err != nil {
			q.log.Warn("task failed", "error", err)
		}

		q.mu.Lock()
		q.pending--
		q.metrics.SetQueueDepth(q.pending)
		if q.pending == 0 {
			q.drained.Broadcast()
		}
		q.mu.Unlock()
	}
}
