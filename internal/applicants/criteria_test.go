package applicants

import (
	"errors"
	"net/url"
	"testing"

	"jobboard/internal/apperr"
	"jobboard/internal/models"

	. "github.com/smartystreets/goconvey/convey"
)

func TestParseCriteria(t *testing.T) {
	Convey("Given query parameters for an applicant listing", t, func() {
		Convey("an empty query yields the defaults", func() {
			c, err := ParseCriteria(url.Values{}, DefaultLimits())
			So(err, ShouldBeNil)
			So(c.Page, ShouldEqual, 1)
			So(c.Limit, ShouldEqual, 20)
			So(c.SortBy, ShouldEqual, SortByCreatedAt)
			So(c.SortOrder, ShouldEqual, Asc)
			So(c.AgeMin, ShouldBeNil)
			So(c.SalaryMax, ShouldBeNil)
		})

		Convey("blank values are treated as absent", func() {
			c, err := ParseCriteria(url.Values{"ageMin": {""}, "status": {"  "}}, DefaultLimits())
			So(err, ShouldBeNil)
			So(c.AgeMin, ShouldBeNil)
			So(c.Status, ShouldEqual, models.ApplicationStatus(""))
		})

		Convey("every supported field is parsed", func() {
			q := url.Values{
				"name":           {" ana "},
				"ageMin":         {"20"},
				"ageMax":         {"30"},
				"salaryMin":      {"1000000"},
				"salaryMax":      {"20000000"},
				"education":      {"bachelor"},
				"status":         {"interview_scheduled"},
				"location":       {"Jakarta"},
				"hasCv":          {"true"},
				"hasCoverLetter": {"false"},
				"testScoreMin":   {"50"},
				"testScoreMax":   {"90.5"},
				"dateFrom":       {"2025-01-01"},
				"dateTo":         {"2025-01-31"},
				"jobPostingId":   {"job-9"},
				"sortBy":         {"expectedSalary"},
				"sortOrder":      {"DESC"},
				"page":           {"3"},
				"limit":          {"50"},
			}

			c, err := ParseCriteria(q, DefaultLimits())
			So(err, ShouldBeNil)
			So(c.Name, ShouldEqual, "ana")
			So(*c.AgeMin, ShouldEqual, 20)
			So(*c.AgeMax, ShouldEqual, 30)
			So(*c.SalaryMin, ShouldEqual, 1000000)
			So(*c.SalaryMax, ShouldEqual, 20000000)
			So(c.Education, ShouldEqual, models.EducationBachelor)
			So(c.Status, ShouldEqual, models.StatusInterviewScheduled)
			So(c.Location, ShouldEqual, "Jakarta")
			So(*c.HasCV, ShouldBeTrue)
			So(*c.HasCoverLetter, ShouldBeFalse)
			So(*c.TestScoreMax, ShouldEqual, 90.5)
			So(c.DateFrom.Equal(date(2025, 1, 1)), ShouldBeTrue)
			So(c.DateTo.Equal(date(2025, 1, 31)), ShouldBeTrue)
			So(c.JobPostingID, ShouldEqual, "job-9")
			So(c.SortBy, ShouldEqual, SortBySalary)
			So(c.SortOrder, ShouldEqual, Desc)
			So(c.Page, ShouldEqual, 3)
			So(c.Limit, ShouldEqual, 50)
		})

		Convey("every invalid field is reported together", func() {
			q := url.Values{
				"ageMin":    {"twenty"},
				"salaryMax": {"lots"},
				"status":    {"ARCHIVED"},
				"education": {"PHD"},
				"sortBy":    {"salary"},
				"sortOrder": {"up"},
				"page":      {"0"},
				"hasCv":     {"yes"},
				"dateFrom":  {"01/02/2025"},
			}

			_, err := ParseCriteria(q, DefaultLimits())
			So(errors.Is(err, apperr.ErrValidation), ShouldBeTrue)

			var e *apperr.Error
			So(errors.As(err, &e), ShouldBeTrue)

			fields := apperr.FieldErrors(e.Fields)
			for _, name := range []string{"ageMin", "salaryMax", "status", "education", "sortBy", "sortOrder", "page", "hasCv", "dateFrom"} {
				So(fields.Has(name), ShouldBeTrue)
			}
			So(e.Fields, ShouldHaveLength, 9)
		})

		Convey("inverted ranges are rejected on the upper bound", func() {
			q := url.Values{
				"ageMin": {"40"}, "ageMax": {"30"},
				"salaryMin": {"10"}, "salaryMax": {"5"},
				"testScoreMin": {"90"}, "testScoreMax": {"10"},
				"dateFrom": {"2025-02-01"}, "dateTo": {"2025-01-01"},
			}

			_, err := ParseCriteria(q, DefaultLimits())
			var e *apperr.Error
			So(errors.As(err, &e), ShouldBeTrue)
			fields := apperr.FieldErrors(e.Fields)
			So(fields.Has("ageMax"), ShouldBeTrue)
			So(fields.Has("salaryMax"), ShouldBeTrue)
			So(fields.Has("testScoreMax"), ShouldBeTrue)
			So(fields.Has("dateTo"), ShouldBeTrue)
		})

		Convey("negative bounds are rejected", func() {
			_, err := ParseCriteria(url.Values{"ageMin": {"-1"}, "salaryMin": {"-5"}}, DefaultLimits())
			So(errors.Is(err, apperr.ErrValidation), ShouldBeTrue)
		})

		Convey("limits above the configured maximum are rejected", func() {
			_, err := ParseCriteria(url.Values{"limit": {"500"}}, Limits{Default: 20, Max: 100})
			var e *apperr.Error
			So(errors.As(err, &e), ShouldBeTrue)
			So(e.Fields[0].Field, ShouldEqual, "limit")
		})

		Convey("a page whose offset would overflow is rejected", func() {
			for _, q := range []url.Values{
				{"page": {"9223372036854775807"}, "limit": {"2"}},
				{"page": {"500000000000000000"}, "limit": {"100"}},
			} {
				_, err := ParseCriteria(q, DefaultLimits())
				var e *apperr.Error
				So(errors.As(err, &e), ShouldBeTrue)
				So(e.Fields, ShouldHaveLength, 1)
				So(e.Fields[0].Field, ShouldEqual, "page")
			}
		})

		Convey("a large page that still fits is accepted", func() {
			c, err := ParseCriteria(url.Values{"page": {"1000000"}, "limit": {"100"}}, DefaultLimits())
			So(err, ShouldBeNil)
			So(c.Page, ShouldEqual, 1000000)
		})

		Convey("the configured default limit applies", func() {
			c, err := ParseCriteria(url.Values{}, Limits{Default: 10, Max: 50})
			So(err, ShouldBeNil)
			So(c.Limit, ShouldEqual, 10)
		})
	})
}

func TestCriteriaEncoding(t *testing.T) {
	Convey("Given parsed criteria", t, func() {
		q := url.Values{"status": {"PENDING"}, "ageMin": {"20"}, "hasCv": {"true"}, "page": {"2"}}
		c, err := ParseCriteria(q, DefaultLimits())
		So(err, ShouldBeNil)

		Convey("applied filters echo only what was set plus paging and sort", func() {
			applied := c.Applied()
			So(applied["status"], ShouldEqual, "PENDING")
			So(applied["ageMin"], ShouldEqual, 20)
			So(applied["hasCv"], ShouldEqual, true)
			So(applied["page"], ShouldEqual, 2)
			So(applied["limit"], ShouldEqual, 20)
			So(applied, ShouldNotContainKey, "salaryMin")
		})

		Convey("encoding is stable and round-trips", func() {
			So(c.Encode(), ShouldEqual, c.Encode())

			values, err := url.ParseQuery(c.Encode())
			So(err, ShouldBeNil)
			again, err := ParseCriteria(values, DefaultLimits())
			So(err, ShouldBeNil)
			So(again.Encode(), ShouldEqual, c.Encode())
		})
	})
}
