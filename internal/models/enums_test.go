package models

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestApplicationStatus(t *testing.T) {
	Convey("Given application statuses", t, func() {
		Convey("every listed status is valid", func() {
			for _, s := range ApplicationStatuses() {
				So(s.IsValid(), ShouldBeTrue)
			}
			So(ApplicationStatus("ARCHIVED").IsValid(), ShouldBeFalse)
			So(ApplicationStatus("pending").IsValid(), ShouldBeFalse)
		})

		Convey("human form lower-cases and replaces every underscore", func() {
			So(StatusInterviewScheduled.Human(), ShouldEqual, "interview scheduled")
			So(StatusPending.Human(), ShouldEqual, "pending")
		})

		Convey("accepted, rejected and withdrawn are terminal", func() {
			So(StatusAccepted.IsTerminal(), ShouldBeTrue)
			So(StatusRejected.IsTerminal(), ShouldBeTrue)
			So(StatusWithdrawn.IsTerminal(), ShouldBeTrue)
			So(StatusInterviewCompleted.IsTerminal(), ShouldBeFalse)
		})

		Convey("display names fall back to the raw value", func() {
			So(GetStatusDisplayName(StatusReviewed), ShouldEqual, "Reviewed")
			So(GetEducationDisplayName(Education("PHD")), ShouldEqual, "PHD")
		})
	})
}
