package stress_test

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/okian/mindease/internal/domain/stress"
	. "github.com/smartystreets/goconvey/convey"
)

func TestScore(t *testing.T) {
	Convey("Given the default scorer", t, func() {
		Convey("When the text is empty or whitespace", func() {
			Convey("Then it should return the baseline", func() {
				So(stress.Score(""), ShouldEqual, 5)
				So(stress.Score("   \n\t"), ShouldEqual, 5)
			})
		})

		Convey("When the text has two high keywords", func() {
			a := mustScorer().Analyze("I feel anxious and overwhelmed")

			Convey("Then each adds two points", func() {
				So(a.Score, ShouldEqual, 9)
				So(a.Band, ShouldEqual, stress.BandHigh)
				So(a.Label, ShouldEqual, "High Stress")
				So(a.Color, ShouldEqual, "text-red-400")
				So(a.Matches, ShouldResemble, []stress.Match{
					{Keyword: "anxious", Weight: 2},
					{Keyword: "overwhelmed", Weight: 2},
				})
			})
		})

		Convey("When the text has two low keywords", func() {
			a := mustScorer().Analyze("I am calm and relaxed today")

			Convey("Then each removes one point", func() {
				So(a.Score, ShouldEqual, 3)
				So(a.Band, ShouldEqual, stress.BandLow)
				So(a.Color, ShouldEqual, "text-emerald-400")
			})
		})

		Convey("When the text has a medium keyword", func() {
			Convey("Then it adds one point", func() {
				So(stress.Score("a bit tired"), ShouldEqual, 6)
				So(stress.Score("tired and frustrated"), ShouldEqual, 7)
			})
		})

		Convey("When the text mixes cases", func() {
			Convey("Then matching is case-insensitive", func() {
				So(stress.Score("PANIC"), ShouldEqual, 7)
				So(stress.Score("Feeling Happy"), ShouldEqual, 4)
			})
		})

		Convey("When a keyword appears inside a longer word", func() {
			Convey("Then it still matches as a substring", func() {
				So(stress.Score("goodbye"), ShouldEqual, 4)
				So(stress.Score("contentment"), ShouldEqual, 4)
			})
		})

		Convey("When a keyword repeats", func() {
			Convey("Then it counts once", func() {
				So(stress.Score("panic panic panic"), ShouldEqual, 7)
			})
		})

		Convey("When the text would exceed the maximum", func() {
			Convey("Then it is clamped to 10", func() {
				So(stress.Score("anxious overwhelmed panic stressed worried"), ShouldEqual, 10)
			})
		})

		Convey("When the text would drop below the minimum", func() {
			Convey("Then it is clamped to 1", func() {
				So(stress.Score("calm relaxed happy peaceful content good better"), ShouldEqual, 1)
			})
		})
	})
}

func TestScoreProperties(t *testing.T) {
	Convey("Given random inputs built from the lexicon", t, func() {
		lx := stress.DefaultLexicon()
		vocab := append(append(append([]string{"the", "day", "was", "  ", "ok"}, lx.High...), lx.Medium...), lx.Low...)
		rng := rand.New(rand.NewSource(7))

		Convey("Then every score stays within [1, 10]", func() {
			for i := 0; i < 500; i++ {
				n := rng.Intn(12)
				words := make([]string, n)
				for j := range words {
					words[j] = vocab[rng.Intn(len(vocab))]
				}
				s := stress.Score(strings.Join(words, " "))
				So(s, ShouldBeBetweenOrEqual, stress.MinScore, stress.MaxScore)
			}
		})

		Convey("Then adding high or medium keywords never lowers the score", func() {
			text := "today"
			prev := stress.Score(text)
			for _, kw := range append(lx.Medium, lx.High...) {
				text += " " + kw
				cur := stress.Score(text)
				So(cur, ShouldBeGreaterThanOrEqualTo, prev)
				prev = cur
			}
		})

		Convey("Then adding low keywords never raises the score", func() {
			text := "today"
			prev := stress.Score(text)
			for _, kw := range lx.Low {
				text += " " + kw
				cur := stress.Score(text)
				So(cur, ShouldBeLessThanOrEqualTo, prev)
				prev = cur
			}
		})
	})
}

func TestBands(t *testing.T) {
	Convey("Given the band thresholds", t, func() {
		Convey("Then the boundaries are exact", func() {
			So(stress.BandFor(3), ShouldEqual, stress.BandLow)
			So(stress.BandFor(4), ShouldEqual, stress.BandMedium)
			So(stress.BandFor(6), ShouldEqual, stress.BandMedium)
			So(stress.BandFor(7), ShouldEqual, stress.BandHigh)
			So(stress.BandFor(10), ShouldEqual, stress.BandHigh)
			So(stress.BandFor(1), ShouldEqual, stress.BandLow)
		})

		Convey("Then color and label agree with the band", func() {
			for score := stress.MinScore; score <= stress.MaxScore; score++ {
				b := stress.BandFor(score)
				So(stress.Color(score), ShouldEqual, b.Color())
				So(stress.Label(score), ShouldEqual, b.Label())
			}
			So(stress.Label(5), ShouldEqual, "Moderate Stress")
			So(stress.Color(5), ShouldEqual, "text-amber-400")
		})

		Convey("Then bands parse from their names", func() {
			b, err := stress.ParseBand("medium")
			So(err, ShouldBeNil)
			So(b, ShouldEqual, stress.BandMedium)

			_, err = stress.ParseBand("extreme")
			So(errors.Is(err, stress.ErrUnknownBand), ShouldBeTrue)
		})

		Convey("Then Clamp bounds values", func() {
			So(stress.Clamp(-3), ShouldEqual, 1)
			So(stress.Clamp(5), ShouldEqual, 5)
			So(stress.Clamp(42), ShouldEqual, 10)
		})
	})
}

func TestNewScorer(t *testing.T) {
	Convey("Given a custom lexicon", t, func() {
		Convey("When keywords have mixed case and padding", func() {
			s, err := stress.NewScorer(stress.WithLexicon(stress.Lexicon{
				High: []string{" Deadline "},
				Low:  []string{"Weekend"},
			}))
			So(err, ShouldBeNil)

			Convey("Then they are normalized before matching", func() {
				So(s.Score("the DEADLINE is close"), ShouldEqual, 7)
				So(s.Score("finally the weekend"), ShouldEqual, 4)
				So(s.Score("anxious"), ShouldEqual, 5)
			})
		})

		Convey("When the same keyword is in two tiers", func() {
			s, err := stress.NewScorer(stress.WithLexicon(stress.Lexicon{
				High: []string{"work"},
				Low:  []string{"work"},
			}))
			So(err, ShouldBeNil)

			Convey("Then both contributions apply", func() {
				So(s.Score("work"), ShouldEqual, 6)
			})
		})

		Convey("When a keyword is blank", func() {
			_, err := stress.NewScorer(stress.WithLexicon(stress.Lexicon{Medium: []string{"ok", "  "}}))

			Convey("Then construction fails", func() {
				So(errors.Is(err, stress.ErrInvalidLexicon), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "medium[1]")
			})
		})
	})
}

func mustScorer() *stress.Scorer {
	s, err := stress.NewScorer()
	if err != nil {
		panic(err)
	}
	return s
}
