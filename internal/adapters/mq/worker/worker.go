// Package worker delivers delayed assistant replies.
//
// A worker takes a reply job off the queue, waits until the reply delay has
// elapsed since the job was enqueued, picks a reply for the job's score and
// hands it to the session store.
package worker

import (
	"context"
	"fmt"
	"runtime"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/okian/mindease/internal/adapters/mq/queue"
	"github.com/okian/mindease/internal/domain/model"
	"github.com/okian/mindease/internal/domain/session"
	"github.com/okian/mindease/internal/domain/stress"
	"github.com/okian/mindease/pkg/logger"
	"github.com/okian/mindease/pkg/metrics"
)

// Default worker configuration constants.
const (
	DefaultDelay        = 2 * time.Second
	drainIdle           = 50 * time.Millisecond
	poolShutdownTimeout = 30 * time.Second
)

// Responder picks a reply for a message and its score.
type Responder interface {
	Reply(text string, score int) string
}

// Dispatcher applies an action to a stored session.
type Dispatcher interface {
	Dispatch(ctx context.Context, sessionID string, a session.Action) (session.State, error)
}

// Queue defines how workers receive jobs.
type Queue interface {
	Dequeue(ctx context.Context) <-chan queue.Job
}

// Worker processes reply jobs.
type Worker interface {
	// Run starts the worker loop until ctx is canceled or the queue closes.
	Run(ctx context.Context)

	// Shutdown stops the worker. Jobs already queued are answered without
	// waiting for their delay.
	Shutdown(ctx context.Context) error
}

// InMemoryWorker implements Worker.
type InMemoryWorker struct {
	queue      Queue
	responder  Responder
	dispatcher Dispatcher
	name       string
	delay      time.Duration
	newID      func() string

	shutdown chan struct{}
	done     chan struct{}

	logger logger.Logger
}

// NewInMemoryWorker creates a new worker with configuration options.
func NewInMemoryWorker(q Queue, r Responder, d Dispatcher, opts ...Option) *InMemoryWorker {
	w := &InMemoryWorker{
		queue:      q,
		responder:  r,
		dispatcher: d,
		name:       "worker",
		delay:      DefaultDelay,
		newID:      uuid.NewString,
		shutdown:   make(chan struct{}),
		done:       make(chan struct{}),
		logger:     logger.Get().Named("worker"),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.name != "worker" {
		w.logger = w.logger.Named(w.name)
	}
	return w
}

// Run starts the worker loop.
func (w *InMemoryWorker) Run(ctx context.Context) {
	defer close(w.done)

	jobs := w.queue.Dequeue(ctx)
	for {
		select {
		case <-ctx.Done():
			return
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.handle(ctx, j)
		case <-w.shutdown:
			w.drain(ctx, jobs)
			return
		}
	}
}

// drain answers whatever is still arriving until the channel closes or goes
// idle.
func (w *InMemoryWorker) drain(ctx context.Context, jobs <-chan queue.Job) {
	for {
		select {
		case j, ok := <-jobs:
			if !ok {
				return
			}
			w.handle(ctx, j)
		case <-time.After(drainIdle):
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *InMemoryWorker) handle(ctx context.Context, j queue.Job) {
	if err := w.processJob(ctx, j); err != nil {
		w.logger.Error(ctx, "error processing reply job",
			logger.String("session_id", j.SessionID),
			logger.String("message_id", j.MessageID),
			logger.Error(err),
		)
	}
}

// Shutdown signals the worker to stop and waits for it.
func (w *InMemoryWorker) Shutdown(ctx context.Context) error {
	select {
	case <-w.shutdown:
	default:
		close(w.shutdown)
	}

	select {
	case <-w.done:
		return nil
	case <-ctx.Done():
		w.logger.Warn(ctx, "shutdown timed out")
		return fmt.Errorf("shutdown timed out: %w", ctx.Err())
	}
}

// wait blocks until the job's delay has elapsed. Shutdown cuts the wait
// short so pending replies are still delivered.
func (w *InMemoryWorker) wait(ctx context.Context, j queue.Job) error {
	remaining := w.delay - time.Since(j.EnqueuedAt)
	if remaining <= 0 {
		return nil
	}
	timer := time.NewTimer(remaining)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-w.shutdown:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// processJob answers a single user message.
func (w *InMemoryWorker) processJob(ctx context.Context, j queue.Job) error { //nolint:gocritic // hugeParam: Job is passed by value through the channel
	defer metrics.DecPendingReplies()

	if err := w.wait(ctx, j); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "cancelled")
		return fmt.Errorf("reply to %s abandoned: %w", j.MessageID, err)
	}

	start := time.Now()
	defer func() {
		metrics.RecordWorkerProcessingLatency(float64(time.Since(start).Milliseconds()))
	}()

	reply := model.ChatMessage{
		ID:          w.newID(),
		Text:        w.responder.Reply(j.Text, j.StressLevel),
		IsUser:      false,
		Timestamp:   time.Now().UTC(),
		StressLevel: model.IntPtr(j.StressLevel),
	}
	if _, err := w.dispatcher.Dispatch(ctx, j.SessionID, session.ReceiveReply{Message: reply}); err != nil {
		metrics.RecordWorkerError()
		metrics.RecordErrorByComponent("worker", "dispatch_error")
		return fmt.Errorf("deliver reply to %s: %w", j.MessageID, err)
	}

	band := stress.BandFor(j.StressLevel)
	metrics.RecordReplySent(string(band), float64(time.Since(j.EnqueuedAt).Milliseconds()))
	w.logger.Debug(ctx, "reply delivered",
		logger.String("session_id", j.SessionID),
		logger.String("message_id", j.MessageID),
		logger.String("band", string(band)),
	)
	return nil
}

// Pool manages multiple workers.
type Pool struct {
	workers []*InMemoryWorker
	queue   Queue
	logger  logger.Logger
}

// NewPool creates a worker pool. A workerCount below one defaults to the
// number of CPUs. opts apply to every worker.
func NewPool(workerCount int, q Queue, r Responder, d Dispatcher, opts ...Option) *Pool {
	if workerCount < 1 {
		workerCount = runtime.NumCPU()
	}

	pool := &Pool{
		workers: make([]*InMemoryWorker, workerCount),
		queue:   q,
		logger:  logger.Get().Named("worker-pool"),
	}
	for i := 0; i < workerCount; i++ {
		workerOpts := append([]Option{WithName("worker-" + strconv.Itoa(i))}, opts...)
		pool.workers[i] = NewInMemoryWorker(q, r, d, workerOpts...)
	}

	metrics.UpdateWorkerCount(workerCount)
	return pool
}

// Size returns the number of workers.
func (p *Pool) Size() int { return len(p.workers) }

// Start starts all workers in the pool.
func (p *Pool) Start(ctx context.Context) {
	for _, w := range p.workers {
		go w.Run(ctx)
	}
}

// Shutdown closes the queue, then stops every worker.
func (p *Pool) Shutdown(ctx context.Context) error {
	if closer, ok := p.queue.(interface{ Close() error }); ok {
		if err := closer.Close(); err != nil {
			p.logger.Error(ctx, "error closing queue", logger.Error(err))
		}
	}

	shutdownCtx, cancel := context.WithTimeout(ctx, poolShutdownTimeout)
	defer cancel()

	var firstErr error
	for i, w := range p.workers {
		if err := w.Shutdown(shutdownCtx); err != nil {
			p.logger.Warn(ctx, "worker shutdown timed out", logger.Int("worker_id", i))
			if firstErr == nil {
				firstErr = err
			}
		}
	}
	metrics.UpdateWorkerCount(0)
	return firstErr
}
