// Package response picks a canned reply for a stress score.
//
// Replies are generic: the message text never influences the choice, only
// the severity band of its score does.
package response

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/okian/mindease/internal/domain/stress"
)

// Sentinel errors for this package.
var (
	ErrEmptyPool = errors.New("empty response pool")
)

// Pools maps each severity band to its candidate replies.
type Pools map[stress.Band][]string

// RandSource yields uniform ints in [0, n).
type RandSource interface {
	Intn(n int) int
}

// lockedRand makes a *rand.Rand safe for concurrent workers.
type lockedRand struct {
	mu  sync.Mutex
	rng *rand.Rand
}

func (l *lockedRand) Intn(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rng.Intn(n)
}

// NewSeededSource returns a concurrency-safe source with a fixed seed.
func NewSeededSource(seed int64) RandSource {
	return &lockedRand{rng: rand.New(rand.NewSource(seed))} //nolint:gosec // reply choice is not security sensitive
}

// Selector chooses replies. It is safe for concurrent use when its
// RandSource is.
type Selector struct {
	pools Pools
	rand  RandSource
}

// Option configures a Selector.
type Option func(*Selector)

// WithPools replaces the default pools. Bands missing from p keep their
// default replies.
func WithPools(p Pools) Option {
	return func(s *Selector) {
		for band, replies := range p {
			s.pools[band] = append([]string(nil), replies...)
		}
	}
}

// WithRandSource injects the random source, mostly for deterministic tests.
func WithRandSource(r RandSource) Option {
	return func(s *Selector) {
		if r != nil {
			s.rand = r
		}
	}
}

// New builds a Selector and validates that every band has at least one
// non-blank reply.
func New(opts ...Option) (*Selector, error) {
	s := &Selector{
		pools: DefaultPools(),
		rand:  NewSeededSource(time.Now().UnixNano()),
	}
	for _, opt := range opts {
		opt(s)
	}
	if err := Validate(s.pools); err != nil {
		return nil, err
	}
	return s, nil
}

// Validate checks that all three bands have non-blank candidates and that no
// unknown band is configured.
func Validate(p Pools) error {
	for band := range p {
		if !band.Valid() {
			return fmt.Errorf("%w: %q", stress.ErrUnknownBand, band)
		}
	}
	for _, band := range stress.Bands {
		replies := p[band]
		if len(replies) == 0 {
			return fmt.Errorf("%w: band %s has no replies", ErrEmptyPool, band)
		}
		for i, r := range replies {
			if strings.TrimSpace(r) == "" {
				return fmt.Errorf("%w: band %s reply %d is blank", ErrEmptyPool, band, i)
			}
		}
	}
	return nil
}

// Select returns a reply drawn uniformly from the pool of score's band.
func (s *Selector) Select(score int) string {
	pool := s.pools[stress.BandFor(score)]
	return pool[s.rand.Intn(len(pool))]
}

// Reply mirrors the chat call shape (text, score). The text is accepted but
// not consulted.
func (s *Selector) Reply(_ string, score int) string {
	return s.Select(score)
}

// Echo returns text unchanged, for logging alongside a reply.
func (s *Selector) Echo(text string) string {
	return text
}

// Pool returns a copy of the replies for band.
func (s *Selector) Pool(band stress.Band) []string {
	return append([]string(nil), s.pools[band]...)
}

// Contains reports whether reply belongs to band's pool.
func (s *Selector) Contains(band stress.Band, reply string) bool {
	for _, r := range s.pools[band] {
		if r == reply {
			return true
		}
	}
	return false
}
