package service

import (
	"time"

	"github.com/okian/mindease/internal/domain/response"
	"github.com/okian/mindease/internal/domain/stress"
	"github.com/okian/mindease/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithWorkerCount sets the number of reply workers.
func WithWorkerCount(count int) Option {
	return func(s *Service) {
		if count > 0 {
			s.workerCount = count
		}
	}
}

// WithQueueSize sets the maximum number of replies waiting for a worker.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithDedupeSize sets the size of the message id cache.
func WithDedupeSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.dedupeSize = size
		}
	}
}

// WithMaxSessions caps live sessions. Zero means no cap.
func WithMaxSessions(n int) Option {
	return func(s *Service) {
		if n >= 0 {
			s.maxSessions = n
		}
	}
}

// WithSessionTTL sets how long an idle session is kept. Zero keeps sessions
// until the process exits.
func WithSessionTTL(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.sessionTTL = d
		}
	}
}

// WithMaxMessageLength caps a chat message, counted in runes.
func WithMaxMessageLength(n int) Option {
	return func(s *Service) {
		if n > 0 {
			s.maxMessageLength = n
		}
	}
}

// WithReplyDelay sets how long the assistant "types" before replying.
func WithReplyDelay(d time.Duration) Option {
	return func(s *Service) {
		if d >= 0 {
			s.replyDelay = d
		}
	}
}

// WithResponsePools overrides reply pools per band.
func WithResponsePools(p response.Pools) Option {
	return func(s *Service) {
		s.pools = p
	}
}

// WithLexicon replaces the scoring keywords.
func WithLexicon(lx stress.Lexicon) Option {
	return func(s *Service) {
		s.lexicon = &lx
	}
}

// WithRandSource injects the reply randomness.
func WithRandSource(r response.RandSource) Option {
	return func(s *Service) {
		s.rand = r
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now, for tests.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
