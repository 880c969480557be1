// Package stress turns free text into a 1..10 stress score by keyword
// matching against a weighted lexicon.
//
// Matching is plain substring containment on the lower-cased text, not word
// boundaries: "good" also matches inside "goodbye". Keep it that way unless
// product asks for whole-word matching.
package stress

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for this package.
var (
	ErrInvalidLexicon = errors.New("invalid lexicon")
	ErrUnknownBand    = errors.New("unknown severity band")
)

// Keyword weights per lexicon tier.
const (
	HighWeight   = 2
	MediumWeight = 1
	LowWeight    = -1
)

// Lexicon holds the three keyword tiers.
type Lexicon struct {
	High   []string `json:"high" yaml:"high"`
	Medium []string `json:"medium" yaml:"medium"`
	Low    []string `json:"low" yaml:"low"`
}

// DefaultLexicon returns a fresh copy of the built-in keyword lists.
func DefaultLexicon() Lexicon {
	return Lexicon{
		High: []string{
			"anxious", "overwhelmed", "panic", "stressed",
			"worried", "depressed", "exhausted", "hopeless",
		},
		Medium: []string{"tired", "frustrated", "confused", "uncertain", "bothered", "annoyed"},
		Low:    []string{"calm", "relaxed", "happy", "peaceful", "content", "good", "better"},
	}
}

// Match records one keyword hit and what it contributed.
type Match struct {
	Keyword string `json:"keyword"`
	Weight  int    `json:"weight"`
}

// Analysis is the full result of scoring a text.
type Analysis struct {
	Score   int     `json:"score"`
	Band    Band    `json:"band"`
	Color   string  `json:"color"`
	Label   string  `json:"label"`
	Matches []Match `json:"matches"`
}

type term struct {
	keyword string
	weight  int
}

// Scorer scores text against a fixed lexicon. It is immutable after
// construction and safe for concurrent use.
type Scorer struct {
	terms []term
}

// Option configures a Scorer.
type Option func(*Lexicon)

// WithLexicon replaces the default lexicon. Tiers left empty stay empty.
func WithLexicon(lx Lexicon) Option {
	return func(dst *Lexicon) {
		*dst = lx
	}
}

// NewScorer builds a Scorer. Keywords are lower-cased; a blank keyword is
// rejected since it would match every input.
func NewScorer(opts ...Option) (*Scorer, error) {
	lx := DefaultLexicon()
	for _, opt := range opts {
		opt(&lx)
	}

	s := &Scorer{}
	tiers := []struct {
		name   string
		words  []string
		weight int
	}{
		{"high", lx.High, HighWeight},
		{"medium", lx.Medium, MediumWeight},
		{"low", lx.Low, LowWeight},
	}
	for _, tier := range tiers {
		for i, w := range tier.words {
			kw := strings.ToLower(strings.TrimSpace(w))
			if kw == "" {
				return nil, fmt.Errorf("%w: blank keyword at %s[%d]", ErrInvalidLexicon, tier.name, i)
			}
			s.terms = append(s.terms, term{keyword: kw, weight: tier.weight})
		}
	}
	return s, nil
}

// Score maps text to a stress score in [1, 10]. It never fails.
func (s *Scorer) Score(text string) int {
	return s.Analyze(text).Score
}

// Analyze scores text and reports which keywords contributed.
func (s *Scorer) Analyze(text string) Analysis {
	lower := strings.ToLower(text)
	score := BaselineScore
	matches := []Match{}
	for _, t := range s.terms {
		if strings.Contains(lower, t.keyword) {
			score += t.weight
			matches = append(matches, Match{Keyword: t.keyword, Weight: t.weight})
		}
	}
	score = Clamp(score)
	band := BandFor(score)
	return Analysis{
		Score:   score,
		Band:    band,
		Color:   band.Color(),
		Label:   band.Label(),
		Matches: matches,
	}
}

var defaultScorer = func() *Scorer {
	s, err := NewScorer()
	if err != nil {
		panic(err)
	}
	return s
}()

// Score scores text with the default lexicon.
func Score(text string) int {
	return defaultScorer.Score(text)
}
