// Package config defines service configuration structures and loading hooks.
//
// Conventions:
//   - New returns a Config filled with defaults.
//   - Load layers a YAML file and environment variables on top.
//   - Errors wrap ErrInvalidConfig or ErrLoadConfig.
package config

import (
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/okian/mindease/internal/domain/response"
	"github.com/okian/mindease/internal/domain/stress"
)

var (
	// ErrInvalidConfig marks a configuration that loaded but cannot run.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig marks a file or environment that could not be read.
	ErrLoadConfig = errors.New("load config failed")
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log encoding: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":8080".
	Addr string `koanf:"addr"`

	// QueueSize bounds the reply queue.
	QueueSize int `koanf:"queue_size"`

	// WorkerCount sets the number of reply workers.
	WorkerCount int `koanf:"worker_count"`

	// DedupeSize sets the size of the message id cache.
	DedupeSize int `koanf:"dedupe_size"`

	// MaxSessions caps live sessions; 0 disables the cap.
	MaxSessions int `koanf:"max_sessions"`

	// SessionTTLMS evicts sessions idle this long with no pending reply;
	// 0 disables eviction.
	SessionTTLMS int `koanf:"session_ttl_ms"`

	// MaxMessageLength caps a chat message in runes.
	MaxMessageLength int `koanf:"max_message_length"`

	// ReplyDelayMS is the simulated typing delay before a reply.
	ReplyDelayMS int `koanf:"reply_delay_ms"`

	// Responses overrides reply pools per band (low, medium, high).
	Responses map[string][]string `koanf:"responses"`

	// Lexicon overrides keyword tiers (low, medium, high).
	Lexicon map[string][]string `koanf:"lexicon"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		QueueSize:        1024,
		WorkerCount:      runtime.NumCPU(),
		DedupeSize:       50_000,
		MaxSessions:      10_000,
		SessionTTLMS:     30 * 60 * 1000,
		MaxMessageLength: 2000,
		ReplyDelayMS:     2000,
	}
}

// SessionTTL returns SessionTTLMS as a duration.
func (c *Config) SessionTTL() time.Duration {
	return time.Duration(c.SessionTTLMS) * time.Millisecond
}

// ReplyDelay returns ReplyDelayMS as a duration.
func (c *Config) ReplyDelay() time.Duration {
	return time.Duration(c.ReplyDelayMS) * time.Millisecond
}

// ResponsePools returns the configured overrides keyed by band. Bands not
// configured keep their built-in replies.
func (c *Config) ResponsePools() (response.Pools, error) {
	out := response.Pools{}
	for name, replies := range c.Responses {
		band, err := stress.ParseBand(name)
		if err != nil {
			return nil, fmt.Errorf("%w: responses: %w", ErrInvalidConfig, err)
		}
		out[band] = append([]string(nil), replies...)
	}
	return out, nil
}

// LexiconOverride merges configured tiers into the built-in lexicon. ok is
// false when nothing is configured.
func (c *Config) LexiconOverride() (lx stress.Lexicon, ok bool, err error) {
	if len(c.Lexicon) == 0 {
		return stress.Lexicon{}, false, nil
	}
	lx = stress.DefaultLexicon()
	for name, words := range c.Lexicon {
		band, err := stress.ParseBand(name)
		if err != nil {
			return stress.Lexicon{}, false, fmt.Errorf("%w: lexicon: %w", ErrInvalidConfig, err)
		}
		words = append([]string(nil), words...)
		switch band {
		case stress.BandHigh:
			lx.High = words
		case stress.BandMedium:
			lx.Medium = words
		case stress.BandLow:
			lx.Low = words
		}
	}
	return lx, true, nil
}

// Validate checks ranges and that the reply pools and lexicon can be built.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q (want text or json)", ErrInvalidConfig, c.LogFormat)
	}
	if c.QueueSize <= 0 {
		return fmt.Errorf("%w: queue_size must be positive", ErrInvalidConfig)
	}
	if c.WorkerCount < 0 {
		return fmt.Errorf("%w: worker_count must not be negative", ErrInvalidConfig)
	}
	if c.MaxSessions < 0 {
		return fmt.Errorf("%w: max_sessions must not be negative", ErrInvalidConfig)
	}
	if c.SessionTTLMS < 0 {
		return fmt.Errorf("%w: session_ttl_ms must not be negative", ErrInvalidConfig)
	}
	if c.MaxMessageLength <= 0 {
		return fmt.Errorf("%w: max_message_length must be positive", ErrInvalidConfig)
	}
	if c.ReplyDelayMS < 0 {
		return fmt.Errorf("%w: reply_delay_ms must not be negative", ErrInvalidConfig)
	}

	pools, err := c.ResponsePools()
	if err != nil {
		return err
	}
	if _, err := response.New(response.WithPools(pools)); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}

	lx, ok, err := c.LexiconOverride()
	if err != nil {
		return err
	}
	if ok {
		if _, err := stress.NewScorer(stress.WithLexicon(lx)); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
	}
	return nil
}
