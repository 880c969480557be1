package response_test

import (
	"errors"
	"testing"

	"github.com/okian/mindease/internal/domain/response"
	"github.com/okian/mindease/internal/domain/stress"
	. "github.com/smartystreets/goconvey/convey"
)

// fixedSource always returns the same index, clamped to the pool size.
type fixedSource struct{ idx int }

func (f fixedSource) Intn(n int) int { return min(f.idx, n-1) }

// recordingSource remembers the bounds it was asked for.
type recordingSource struct{ asked []int }

func (r *recordingSource) Intn(n int) int {
	r.asked = append(r.asked, n)
	return n - 1
}

func TestSelector(t *testing.T) {
	Convey("Given a selector with the default pools", t, func() {
		sel, err := response.New(response.WithRandSource(response.NewSeededSource(1)))
		So(err, ShouldBeNil)

		Convey("Then every score yields a reply from its band", func() {
			for score := stress.MinScore; score <= stress.MaxScore; score++ {
				band := stress.BandFor(score)
				for i := 0; i < 20; i++ {
					reply := sel.Select(score)
					So(reply, ShouldNotBeEmpty)
					So(sel.Contains(band, reply), ShouldBeTrue)
				}
			}
		})

		Convey("Then band boundaries pick the right pool", func() {
			So(sel.Contains(stress.BandLow, sel.Select(3)), ShouldBeTrue)
			So(sel.Contains(stress.BandMedium, sel.Select(4)), ShouldBeTrue)
			So(sel.Contains(stress.BandMedium, sel.Select(6)), ShouldBeTrue)
			So(sel.Contains(stress.BandHigh, sel.Select(7)), ShouldBeTrue)
		})

		Convey("Then each default pool has three replies", func() {
			for _, b := range stress.Bands {
				So(sel.Pool(b), ShouldHaveLength, 3)
			}
		})

		Convey("Then Echo returns the text unchanged", func() {
			So(sel.Echo("I feel fine"), ShouldEqual, "I feel fine")
		})
	})

	Convey("Given an injected random source", t, func() {
		Convey("When it always picks index 1", func() {
			sel, err := response.New(response.WithRandSource(fixedSource{idx: 1}))
			So(err, ShouldBeNil)

			Convey("Then the selection is deterministic", func() {
				So(sel.Select(9), ShouldEqual, response.DefaultPools()[stress.BandHigh][1])
				So(sel.Select(2), ShouldEqual, response.DefaultPools()[stress.BandLow][1])
			})

			Convey("Then Reply ignores the message text", func() {
				So(sel.Reply("I feel anxious", 2), ShouldEqual, sel.Reply("totally different words", 2))
			})
		})

		Convey("When the source records its bounds", func() {
			src := &recordingSource{}
			sel, err := response.New(
				response.WithRandSource(src),
				response.WithPools(response.Pools{stress.BandMedium: {"a", "b", "c", "d", "e"}}),
			)
			So(err, ShouldBeNil)
			reply := sel.Select(5)

			Convey("Then it is asked for the pool length", func() {
				So(src.asked, ShouldResemble, []int{5})
				So(reply, ShouldEqual, "e")
			})
		})
	})

	Convey("Given the end-to-end scenarios", t, func() {
		sel, err := response.New(response.WithRandSource(fixedSource{idx: 0}))
		So(err, ShouldBeNil)

		Convey("When the text is anxious and overwhelmed", func() {
			score := stress.Score("I feel anxious and overwhelmed")

			Convey("Then the reply comes from the high pool", func() {
				So(score, ShouldEqual, 9)
				So(sel.Contains(stress.BandHigh, sel.Reply("I feel anxious and overwhelmed", score)), ShouldBeTrue)
			})
		})

		Convey("When the text is calm and relaxed", func() {
			score := stress.Score("I am calm and relaxed today")

			Convey("Then the reply comes from the low pool", func() {
				So(score, ShouldEqual, 3)
				So(sel.Contains(stress.BandLow, sel.Reply("I am calm and relaxed today", score)), ShouldBeTrue)
			})
		})
	})
}

func TestValidate(t *testing.T) {
	Convey("Given configured pools", t, func() {
		Convey("When a band is emptied", func() {
			_, err := response.New(response.WithPools(response.Pools{stress.BandLow: {}}))

			Convey("Then construction fails fast", func() {
				So(errors.Is(err, response.ErrEmptyPool), ShouldBeTrue)
				So(err.Error(), ShouldContainSubstring, "low")
			})
		})

		Convey("When a reply is blank", func() {
			_, err := response.New(response.WithPools(response.Pools{stress.BandHigh: {"ok", " "}}))

			Convey("Then construction fails", func() {
				So(errors.Is(err, response.ErrEmptyPool), ShouldBeTrue)
			})
		})

		Convey("When an unknown band is configured", func() {
			err := response.Validate(response.Pools{
				stress.BandLow:    {"a"},
				stress.BandMedium: {"b"},
				stress.BandHigh:   {"c"},
				"severe":          {"d"},
			})

			Convey("Then validation fails", func() {
				So(errors.Is(err, stress.ErrUnknownBand), ShouldBeTrue)
			})
		})

		Convey("When the caller mutates its pools after construction", func() {
			custom := response.Pools{stress.BandLow: {"stay calm"}}
			sel, err := response.New(response.WithPools(custom))
			So(err, ShouldBeNil)
			custom[stress.BandLow][0] = "changed"

			Convey("Then the selector keeps its own copy", func() {
				So(sel.Select(1), ShouldEqual, "stay calm")
			})
		})
	})
}
