package stress

import "fmt"

// Score bounds and band thresholds. Every band, color and label lookup goes
// through BandFor so the boundaries cannot drift apart.
const (
	MinScore      = 1
	MaxScore      = 10
	BaselineScore = 5

	HighThreshold   = 7
	MediumThreshold = 4
)

// Band is the categorical severity derived from a score.
type Band string

const (
	BandLow    Band = "low"
	BandMedium Band = "medium"
	BandHigh   Band = "high"
)

// Bands lists every band from least to most severe.
var Bands = []Band{BandLow, BandMedium, BandHigh}

// BandFor maps a score to its band: >=7 high, >=4 medium, else low.
func BandFor(score int) Band {
	switch {
	case score >= HighThreshold:
		return BandHigh
	case score >= MediumThreshold:
		return BandMedium
	default:
		return BandLow
	}
}

// ParseBand accepts "low", "medium" or "high".
func ParseBand(s string) (Band, error) {
	b := Band(s)
	if !b.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownBand, s)
	}
	return b, nil
}

// Valid reports whether b is one of the three bands.
func (b Band) Valid() bool {
	switch b {
	case BandLow, BandMedium, BandHigh:
		return true
	}
	return false
}

// Color returns the display color token for the band.
func (b Band) Color() string {
	switch b {
	case BandHigh:
		return "text-red-400"
	case BandMedium:
		return "text-amber-400"
	default:
		return "text-emerald-400"
	}
}

// Label returns the human readable band label.
func (b Band) Label() string {
	switch b {
	case BandHigh:
		return "High Stress"
	case BandMedium:
		return "Moderate Stress"
	default:
		return "Low Stress"
	}
}

// Color returns the display color token for a score.
func Color(score int) string { return BandFor(score).Color() }

// Label returns the display label for a score.
func Label(score int) string { return BandFor(score).Label() }

// Clamp bounds v to [MinScore, MaxScore].
func Clamp(v int) int {
	return min(max(v, MinScore), MaxScore)
}
