package applicants

import (
	"math"
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPaginate(t *testing.T) {
	Convey("Given page metadata for every small combination", t, func() {
		for total := 0; total <= 25; total++ {
			for limit := 1; limit <= 7; limit++ {
				for page := 1; page <= 6; page++ {
					p := Paginate(total, page, limit)
					So(p.HasNext, ShouldEqual, page*limit < total)
					So(p.HasPrev, ShouldEqual, page > 1)
					So(p.TotalPages, ShouldEqual, (total+limit-1)/limit)
					So(p.Total, ShouldEqual, total)
				}
			}
		}
	})

	Convey("Given concrete pages", t, func() {
		Convey("the first of three pages", func() {
			So(Paginate(45, 1, 20), ShouldResemble, Pagination{
				Page: 1, Limit: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: false,
			})
		})

		Convey("an empty result has no pages", func() {
			p := Paginate(0, 1, 20)
			So(p.TotalPages, ShouldEqual, 0)
			So(p.HasNext, ShouldBeFalse)
		})

		Convey("offset skips the earlier pages", func() {
			So(Offset(1, 20), ShouldEqual, 0)
			So(Offset(3, 20), ShouldEqual, 40)
		})

		Convey("offset saturates instead of overflowing", func() {
			So(Offset(math.MaxInt, 2), ShouldEqual, math.MaxInt)
			So(Offset(500_000_000_000_000_000, 100), ShouldEqual, math.MaxInt)
		})
	})
}

func TestPage(t *testing.T) {
	Convey("Given a filtered set of five items", t, func() {
		items := []int{1, 2, 3, 4, 5}

		Convey("the second page of two holds the middle items", func() {
			got, p := Page(items, 2, 2)
			So(got, ShouldResemble, []int{3, 4})
			So(p.HasNext, ShouldBeTrue)
			So(p.HasPrev, ShouldBeTrue)
		})

		Convey("the last page is short", func() {
			got, p := Page(items, 3, 2)
			So(got, ShouldResemble, []int{5})
			So(p.HasNext, ShouldBeFalse)
		})

		Convey("a page past the end is empty", func() {
			got, p := Page(items, 9, 2)
			So(got, ShouldBeEmpty)
			So(p.TotalPages, ShouldEqual, 3)
		})

		Convey("a page whose offset overflows is empty instead of panicking", func() {
			So(func() { Page(items, math.MaxInt, 2) }, ShouldNotPanic)
			got, p := Page(items, math.MaxInt, 2)
			So(got, ShouldBeEmpty)
			So(p.HasNext, ShouldBeFalse)
		})
	})
}
