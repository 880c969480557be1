// Package service wires the domain packages into the operations the HTTP
// API and the CLI need.
package service

import (
	"context"
	"fmt"
	"runtime"
	"sync"
	"time"

	replyqueue "github.com/okian/mindease/internal/adapters/mq/queue"
	workerpool "github.com/okian/mindease/internal/adapters/mq/worker"
	"github.com/okian/mindease/internal/adapters/repository"
	"github.com/okian/mindease/internal/domain/dedupe"
	"github.com/okian/mindease/internal/domain/model"
	"github.com/okian/mindease/internal/domain/profile"
	"github.com/okian/mindease/internal/domain/response"
	"github.com/okian/mindease/internal/domain/stress"
	"github.com/okian/mindease/pkg/logger"
	"github.com/okian/mindease/pkg/metrics"
)

// Defaults for the service configuration.
const (
	DefaultQueueSize        = 1024
	DefaultDedupeSize       = 50_000
	DefaultMaxSessions      = 10_000
	DefaultSessionTTL       = 30 * time.Minute
	DefaultMaxMessageLength = 2000
	DefaultReplyDelay       = workerpool.DefaultDelay
	stopTimeout             = 10 * time.Second
)

// Service implements the API dependencies for the chat companion.
type Service struct {
	mu sync.RWMutex

	// Core components
	scorer   *stress.Scorer
	selector *response.Selector
	sessions *repository.MemoryStore
	deduper  dedupe.Deduper
	queue    replyqueue.Queue
	workers  *workerpool.Pool

	// Profile state; one profile per process.
	profileMu sync.RWMutex
	profile   model.UserProfile

	// Configuration
	workerCount      int
	queueSize        int
	dedupeSize       int
	maxSessions      int
	sessionTTL       time.Duration
	maxMessageLength int
	replyDelay       time.Duration
	pools            response.Pools
	lexicon          *stress.Lexicon
	rand             response.RandSource
	now              func() time.Time

	// State
	started   bool
	startedAt time.Time

	logger logger.Logger
}

// New constructs a Service with default configuration. Nothing runs until
// Start.
func New(opts ...Option) *Service {
	s := &Service{
		workerCount:      runtime.NumCPU(),
		queueSize:        DefaultQueueSize,
		dedupeSize:       DefaultDedupeSize,
		maxSessions:      DefaultMaxSessions,
		sessionTTL:       DefaultSessionTTL,
		maxMessageLength: DefaultMaxMessageLength,
		replyDelay:       DefaultReplyDelay,
		profile:          profile.Default(),
		now:              time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Start builds the scorer and selector, failing fast on a bad lexicon or an
// empty reply pool, then starts the session store and reply workers.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("service")
	}
	s.logger.Info(ctx, "starting mindease service...")

	var scorerOpts []stress.Option
	if s.lexicon != nil {
		scorerOpts = append(scorerOpts, stress.WithLexicon(*s.lexicon))
	}
	scorer, err := stress.NewScorer(scorerOpts...)
	if err != nil {
		return fmt.Errorf("build scorer: %w", err)
	}

	selectorOpts := []response.Option{response.WithPools(s.pools)}
	if s.rand != nil {
		selectorOpts = append(selectorOpts, response.WithRandSource(s.rand))
	}
	selector, err := response.New(selectorOpts...)
	if err != nil {
		return fmt.Errorf("build response selector: %w", err)
	}

	s.scorer = scorer
	s.selector = selector
	s.sessions = repository.NewMemoryStore(ctx,
		repository.WithMaxSessions(s.maxSessions),
		repository.WithIdleTTL(s.sessionTTL),
		repository.WithClock(s.now),
	)
	s.deduper = dedupe.NewInMemoryDeduper(dedupe.WithMaxSize(s.dedupeSize))
	s.queue = replyqueue.NewInMemoryQueue(replyqueue.WithCapacity(s.queueSize))
	s.workers = workerpool.NewPool(s.workerCount, s.queue, s.selector, s.sessions,
		workerpool.WithDelay(s.replyDelay),
		workerpool.WithLogger(s.logger.Named("worker")),
	)
	s.workers.Start(ctx)

	s.started = true
	s.startedAt = s.now()
	s.logger.Info(ctx, "mindease service started",
		logger.Int("workers", s.workers.Size()),
		logger.Int("queueSize", s.queueSize),
		logger.Int("dedupeSize", s.dedupeSize),
		logger.Int("maxSessions", s.maxSessions),
		logger.String("sessionTTL", s.sessionTTL.String()),
		logger.String("replyDelay", s.replyDelay.String()),
	)
	return nil
}

// Stop shuts the workers down, delivering replies still pending, then
// closes the session store.
func (s *Service) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.started {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	s.logger.Info(ctx, "stopping mindease service...")

	if err := s.workers.Shutdown(ctx); err != nil {
		s.logger.Warn(ctx, "worker pool shutdown incomplete", logger.Error(err))
	}
	if err := s.sessions.Close(); err != nil {
		s.logger.Warn(ctx, "session store close failed", logger.Error(err))
	}

	s.started = false
	s.logger.Info(ctx, "mindease service stopped")
}

// running returns the components a request needs, or ErrNotStarted.
func (s *Service) running() error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.started {
		return ErrNotStarted
	}
	return nil
}

// Stats is the /stats payload.
type Stats struct {
	Started          bool   `json:"started"`
	Uptime           string `json:"uptime,omitempty"`
	WorkerCount      int    `json:"workerCount"`
	QueueSize        int    `json:"queueSize"`
	QueueLength      int    `json:"queueLength"`
	DedupeSize       int    `json:"dedupeSize"`
	DedupeEntries    int64  `json:"dedupeEntries"`
	MaxSessions      int    `json:"maxSessions"`
	SessionTTLMs     int64  `json:"sessionTtlMs"`
	ActiveSessions   int    `json:"activeSessions"`
	MaxMessageLength int    `json:"maxMessageLength"`
	ReplyDelayMs     int64  `json:"replyDelayMs"`
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats(ctx context.Context) Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stats := Stats{
		Started:          s.started,
		WorkerCount:      s.workerCount,
		QueueSize:        s.queueSize,
		DedupeSize:       s.dedupeSize,
		MaxSessions:      s.maxSessions,
		SessionTTLMs:     s.sessionTTL.Milliseconds(),
		MaxMessageLength: s.maxMessageLength,
		ReplyDelayMs:     s.replyDelay.Milliseconds(),
	}
	if s.started {
		stats.Uptime = s.now().Sub(s.startedAt).Round(time.Second).String()
		stats.WorkerCount = s.workers.Size()
		stats.QueueLength = s.queue.Len()
		stats.DedupeEntries = s.deduper.Size()
		stats.ActiveSessions = s.sessions.Count(ctx)

		metrics.UpdateQueueSize(stats.QueueLength)
		metrics.UpdateActiveSessions(stats.ActiveSessions)
	}
	return stats
}
