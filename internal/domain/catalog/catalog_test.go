package catalog_test

import (
	"testing"

	"github.com/okian/mindease/internal/domain/catalog"
	"github.com/okian/mindease/internal/domain/model"
	. "github.com/smartystreets/goconvey/convey"
)

func TestCatalog(t *testing.T) {
	Convey("Given the static catalog", t, func() {
		Convey("Then it lists six videos and six games", func() {
			So(catalog.Videos(), ShouldHaveLength, 6)
			So(catalog.Games(), ShouldHaveLength, 6)
			So(catalog.Videos()[0].Title, ShouldEqual, "Guided Meditation")
			So(catalog.Games()[5].Name, ShouldEqual, "Memory Palace")
		})

		Convey("When a caller mutates the returned slice", func() {
			v := catalog.Videos()
			v[0].Title = "changed"

			Convey("Then the catalog is unchanged", func() {
				So(catalog.Videos()[0].Title, ShouldEqual, "Guided Meditation")
			})
		})

		Convey("When filtering videos by category", func() {
			Convey("Then matching ignores case", func() {
				got := catalog.VideosByCategory("sleep aid")
				So(got, ShouldHaveLength, 1)
				So(got[0].Title, ShouldEqual, "Calming Visualizations")
			})

			Convey("Then an unknown category yields nothing", func() {
				So(catalog.VideosByCategory("Cardio"), ShouldBeEmpty)
			})

			Convey("Then an empty category yields everything", func() {
				So(catalog.VideosByCategory(" "), ShouldHaveLength, 6)
			})
		})

		Convey("When filtering games by difficulty", func() {
			Convey("Then counts follow the catalog", func() {
				So(catalog.GamesByDifficulty("easy"), ShouldHaveLength, 4)
				So(catalog.GamesByDifficulty("Medium"), ShouldHaveLength, 1)
				hard := catalog.GamesByDifficulty("HARD")
				So(hard, ShouldHaveLength, 1)
				So(hard[0].Difficulty, ShouldEqual, model.DifficultyHard)
			})
		})
	})
}
