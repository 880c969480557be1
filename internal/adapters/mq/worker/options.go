package worker

import (
	"time"

	"github.com/okian/mindease/pkg/logger"
)

// Option applies a configuration option to the InMemoryWorker.
type Option func(*InMemoryWorker)

// WithName sets the worker name for identification and logging.
func WithName(name string) Option {
	return func(w *InMemoryWorker) {
		if name != "" {
			w.name = name
		}
	}
}

// WithLogger sets a custom logger for the worker.
func WithLogger(l logger.Logger) Option {
	return func(w *InMemoryWorker) {
		if l != nil {
			w.logger = l
		}
	}
}

// WithDelay sets how long after enqueue a reply is delivered. Zero delivers
// as soon as a worker picks the job up.
func WithDelay(d time.Duration) Option {
	return func(w *InMemoryWorker) {
		if d >= 0 {
			w.delay = d
		}
	}
}

// WithIDGenerator sets the function that names reply messages.
func WithIDGenerator(gen func() string) Option {
	return func(w *InMemoryWorker) {
		if gen != nil {
			w.newID = gen
		}
	}
}
