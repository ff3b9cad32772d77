package applicants

import (
	"testing"
	"time"

	"jobboard/internal/models"

	. "github.com/smartystreets/goconvey/convey"
)

func TestBuildQuery(t *testing.T) {
	Convey("Given criteria and a scope", t, func() {
		scope := Scope{CompanyID: "company-1", JobPostingID: "job-1"}

		Convey("empty criteria add no constraint and sort by creation time ascending", func() {
			q := BuildQuery(DefaultCriteria(), scope, testNow)
			So(q.Filter, ShouldResemble, Filter{CompanyID: "company-1", JobPostingID: "job-1"})
			So(q.Sort, ShouldResemble, Sort{Key: SortByCreatedAt, Order: Asc})
			So(q.Page, ShouldEqual, 1)
			So(q.Limit, ShouldEqual, 20)
			So(q.Offset(), ShouldEqual, 0)
		})

		Convey("age bounds become birth-date bounds", func() {
			c := DefaultCriteria()
			c.AgeMin = ptr(20)
			c.AgeMax = ptr(30)

			q := BuildQuery(c, scope, testNow)
			So(q.Filter.BornBefore.Equal(date(2005, 6, 16)), ShouldBeTrue)
			So(q.Filter.BornOnOrAfter.Equal(date(1994, 6, 16)), ShouldBeTrue)
		})

		Convey("the date range covers the whole last day", func() {
			c := DefaultCriteria()
			c.DateFrom = ptr(date(2025, 1, 1))
			c.DateTo = ptr(date(2025, 1, 31))

			q := BuildQuery(c, scope, testNow)
			So(q.Filter.CreatedFrom.Equal(date(2025, 1, 1)), ShouldBeTrue)
			So(q.Filter.CreatedBefore.Equal(date(2025, 2, 1)), ShouldBeTrue)
		})

		Convey("a posting id from criteria narrows a company-wide scope", func() {
			c := DefaultCriteria()
			c.JobPostingID = "job-7"
			q := BuildQuery(c, Scope{CompanyID: "company-1"}, testNow)
			So(q.Filter.JobPostingID, ShouldEqual, "job-7")
		})

		Convey("text searches are lower-cased", func() {
			c := DefaultCriteria()
			c.Name = "  ANA "
			c.Location = "Jakarta"
			q := BuildQuery(c, scope, testNow)
			So(q.Filter.NameOrEmail, ShouldEqual, "ana")
			So(q.Filter.Location, ShouldEqual, "jakarta")
		})
	})
}

func TestFilterMatches(t *testing.T) {
	Convey("Given applications A (age 24, 12M) and B (no birth date, 15M)", t, func() {
		a := newRecord("a", testNow.Add(-2*time.Hour), withDOB(date(2001, 1, 10)), withSalary(12_000_000))
		b := newRecord("b", testNow.Add(-time.Hour), withSalary(15_000_000))
		all := []models.ApplicationRecord{a, b}

		So(Age(*a.Applicant.DateOfBirth, testNow), ShouldEqual, 24)

		Convey("an age range keeps only A", func() {
			c := DefaultCriteria()
			c.AgeMin = ptr(20)
			c.AgeMax = ptr(30)
			q := BuildQuery(c, Scope{CompanyID: "company-1"}, testNow)
			So(ids(filterAll(q.Filter, all)), ShouldResemble, []string{"a"})
		})

		Convey("a lone minimum age still excludes the unknown birth date", func() {
			c := DefaultCriteria()
			c.AgeMin = ptr(0)
			q := BuildQuery(c, Scope{}, testNow)
			So(ids(filterAll(q.Filter, all)), ShouldResemble, []string{"a"})
		})

		Convey("sorting by salary ascending orders A before B", func() {
			c := DefaultCriteria()
			c.SortBy = SortBySalary
			q := BuildQuery(c, Scope{}, testNow)
			So(ids(ApplySort(filterAll(q.Filter, all), q.Sort)), ShouldResemble, []string{"a", "b"})
		})

		Convey("no criteria keeps everything", func() {
			q := BuildQuery(DefaultCriteria(), Scope{}, testNow)
			So(ids(filterAll(q.Filter, all)), ShouldResemble, []string{"a", "b"})
		})
	})

	Convey("Given applicants on either side of an age boundary", t, func() {
		turnsTwentyToday := newRecord("today", testNow, withDOB(date(2005, 6, 15)))
		turnsTwentyTomorrow := newRecord("tomorrow", testNow, withDOB(date(2005, 6, 16)))
		thirty := newRecord("thirty", testNow, withDOB(date(1994, 6, 16)))
		thirtyOne := newRecord("thirty-one", testNow, withDOB(date(1994, 6, 15)))
		all := []models.ApplicationRecord{turnsTwentyToday, turnsTwentyTomorrow, thirty, thirtyOne}

		Convey("bounds are inclusive and follow birthdays", func() {
			c := DefaultCriteria()
			c.AgeMin = ptr(20)
			c.AgeMax = ptr(30)
			q := BuildQuery(c, Scope{}, testNow)
			So(ids(filterAll(q.Filter, all)), ShouldResemble, []string{"today", "thirty"})

			for _, r := range filterAll(q.Filter, all) {
				age := Age(*r.Applicant.DateOfBirth, testNow)
				So(age, ShouldBeBetweenOrEqual, 20, 30)
			}
		})

		Convey("a leap-day birthday counts on Feb 28 of a common year", func() {
			leap := newRecord("leap", testNow, withDOB(date(2000, 2, 29)))
			now := time.Date(2021, 2, 28, 9, 0, 0, 0, time.UTC)

			c := DefaultCriteria()
			c.AgeMin = ptr(21)
			q := BuildQuery(c, Scope{}, now)
			So(Age(date(2000, 2, 29), now), ShouldEqual, 20)
			So(q.Filter.Matches(leap), ShouldBeFalse)

			now = now.AddDate(0, 0, 1)
			q = BuildQuery(c, Scope{}, now)
			So(Age(date(2000, 2, 29), now), ShouldEqual, 21)
			So(q.Filter.Matches(leap), ShouldBeTrue)
		})
	})

	Convey("Given applications with varied attributes", t, func() {
		ana := newRecord("ana", testNow, withName("Ana", "Lima"), withSalary(5_000_000), withScore(80))
		ana.Applicant.CityName = ptr("Bandung")
		ana.Applicant.ProvinceName = ptr("West Java")
		ana.Applicant.Education = ptr(models.EducationBachelor)
		ana.CVURL = ptr("https://cdn.example.com/ana.pdf")

		budi := newRecord("budi", testNow.Add(-48*time.Hour), withName("Budi", "Santoso"))
		budi.Applicant.Email = "b.santoso@mail.id"
		budi.Applicant.CurrentAddress = ptr("Jl. Sudirman, Jakarta")
		budi.Status = models.StatusRejected
		budi.CoverLetter = ptr("Dear team")
		budi.CVURL = ptr("   ")

		all := []models.ApplicationRecord{ana, budi}

		match := func(f Filter) []string { return ids(filterAll(f, all)) }

		Convey("name search matches the full name or email as a substring", func() {
			So(match(Filter{NameOrEmail: "a lim"}), ShouldResemble, []string{"ana"})
			So(match(Filter{NameOrEmail: "santoso@"}), ShouldResemble, []string{"budi"})
		})

		Convey("location matches the composed location or the address", func() {
			So(match(Filter{Location: "west java"}), ShouldResemble, []string{"ana"})
			So(match(Filter{Location: "jakarta"}), ShouldResemble, []string{"budi"})
			So(match(Filter{Location: "not available"}), ShouldBeEmpty)
		})

		Convey("education and status are exact", func() {
			So(match(Filter{Education: models.EducationBachelor}), ShouldResemble, []string{"ana"})
			So(match(Filter{Education: models.EducationMaster}), ShouldBeEmpty)
			So(match(Filter{Status: models.StatusRejected}), ShouldResemble, []string{"budi"})
		})

		Convey("a blank CV does not count as present", func() {
			So(match(Filter{HasCV: ptr(true)}), ShouldResemble, []string{"ana"})
			So(match(Filter{HasCV: ptr(false)}), ShouldResemble, []string{"budi"})
			So(match(Filter{HasCoverLetter: ptr(true)}), ShouldResemble, []string{"budi"})
		})

		Convey("salary and test score bounds exclude missing values", func() {
			So(match(Filter{SalaryMax: ptr(10_000_000.0)}), ShouldResemble, []string{"ana"})
			So(match(Filter{TestScoreMin: ptr(0.0)}), ShouldResemble, []string{"ana"})
			So(match(Filter{SalaryMin: ptr(6_000_000.0)}), ShouldBeEmpty)
		})

		Convey("creation bounds are start-inclusive and end-exclusive", func() {
			from := startOfDay(testNow)
			So(match(Filter{CreatedFrom: &from}), ShouldResemble, []string{"ana"})
			So(match(Filter{CreatedBefore: &from}), ShouldResemble, []string{"budi"})
		})

		Convey("posting scope is exact", func() {
			So(match(Filter{JobPostingID: "job-2"}), ShouldBeEmpty)
			So(match(Filter{JobPostingID: "job-1"}), ShouldHaveLength, 2)
		})
	})
}
