package redis

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestKeys(t *testing.T) {
	Convey("Given cache keys for a company", t, func() {
		Convey("list keys embed the version so a bump orphans old pages", func() {
			v1 := ListKey("acme", 1, "abc")
			v2 := ListKey("acme", 2, "abc")
			So(v1, ShouldEqual, "applicants:company:acme:v1:abc")
			So(v1, ShouldNotEqual, v2)
		})

		Convey("companies never share keys", func() {
			So(ListKey("acme", 0, "abc"), ShouldNotEqual, ListKey("globex", 0, "abc"))
			So(ListVersionKey("acme"), ShouldEqual, "applicants:company:acme:version")
		})

		Convey("rate limits are per actor", func() {
			So(RateLimitKey("admin-1"), ShouldEqual, "ratelimit:actor:admin-1")
		})
	})
}
