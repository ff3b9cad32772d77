package applicants

import (
	"strings"
	"time"

	"jobboard/internal/models"
)

// Scope restricts a listing to one company, optionally one of its postings.
type Scope struct {
	CompanyID    string
	JobPostingID string
}

// Filter is the store-facing form of Criteria: age bounds are already
// resolved to birth-date bounds and text searches are lower-cased.
type Filter struct {
	CompanyID    string
	JobPostingID string

	NameOrEmail string
	Location    string

	// BornBefore excludes anyone born on or after it; BornOnOrAfter excludes
	// anyone born before it. Both exclude unknown birth dates.
	BornBefore    *time.Time
	BornOnOrAfter *time.Time

	SalaryMin    *float64
	SalaryMax    *float64
	TestScoreMin *float64
	TestScoreMax *float64

	Education models.Education
	Status    models.ApplicationStatus

	HasCV          *bool
	HasCoverLetter *bool

	CreatedFrom   *time.Time
	CreatedBefore *time.Time
}

type Sort struct {
	Key   SortKey
	Order SortOrder
}

func (s Sort) Desc() bool { return s.Order == Desc }

type Query struct {
	Filter Filter
	Sort   Sort
	Page   int
	Limit  int
}

func (q Query) Offset() int {
	return Offset(q.Page, q.Limit)
}

// BuildQuery turns criteria into a filter and sort for the store. It never
// fails: absent criteria add no constraint.
func BuildQuery(c Criteria, scope Scope, now time.Time) Query {
	f := Filter{
		CompanyID:      scope.CompanyID,
		JobPostingID:   scope.JobPostingID,
		NameOrEmail:    strings.ToLower(strings.TrimSpace(c.Name)),
		Location:       strings.ToLower(strings.TrimSpace(c.Location)),
		SalaryMin:      c.SalaryMin,
		SalaryMax:      c.SalaryMax,
		TestScoreMin:   c.TestScoreMin,
		TestScoreMax:   c.TestScoreMax,
		Education:      c.Education,
		Status:         c.Status,
		HasCV:          c.HasCV,
		HasCoverLetter: c.HasCoverLetter,
	}

	if f.JobPostingID == "" {
		f.JobPostingID = c.JobPostingID
	}

	today := startOfDay(now)
	if c.AgeMin != nil {
		t := yearsBefore(today, *c.AgeMin).AddDate(0, 0, 1)
		f.BornBefore = &t
	}
	if c.AgeMax != nil {
		t := yearsBefore(today, *c.AgeMax+1).AddDate(0, 0, 1)
		f.BornOnOrAfter = &t
	}

	if c.DateFrom != nil {
		t := startOfDay(*c.DateFrom)
		f.CreatedFrom = &t
	}
	if c.DateTo != nil {
		t := startOfDay(*c.DateTo).AddDate(0, 0, 1)
		f.CreatedBefore = &t
	}

	sort := Sort{Key: c.SortBy, Order: c.SortOrder}
	if !sort.Key.IsValid() {
		sort.Key = SortByCreatedAt
	}
	if sort.Order != Desc {
		sort.Order = Asc
	}

	page, limit := c.Page, c.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit < 1 {
		limit = DefaultLimit
	}

	return Query{Filter: f, Sort: sort, Page: page, Limit: limit}
}

// Matches evaluates the filter against one record in memory. Company scope
// is left to the store, which knows posting ownership.
func (f Filter) Matches(r models.ApplicationRecord) bool {
	if f.JobPostingID != "" && r.JobPostingID != f.JobPostingID {
		return false
	}

	if f.NameOrEmail != "" {
		name := strings.ToLower(FullName(r.Applicant.FirstName, r.Applicant.LastName))
		email := strings.ToLower(r.Applicant.Email)
		if !strings.Contains(name, f.NameOrEmail) && !strings.Contains(email, f.NameOrEmail) {
			return false
		}
	}

	if f.Location != "" {
		loc := strings.ToLower(joinLocation(r.Applicant.CityName, r.Applicant.ProvinceName))
		addr := ""
		if r.Applicant.CurrentAddress != nil {
			addr = strings.ToLower(*r.Applicant.CurrentAddress)
		}
		if !strings.Contains(loc, f.Location) && !strings.Contains(addr, f.Location) {
			return false
		}
	}

	if f.BornBefore != nil || f.BornOnOrAfter != nil {
		dob := r.Applicant.DateOfBirth
		if dob == nil {
			return false
		}
		if f.BornBefore != nil && !dob.Before(*f.BornBefore) {
			return false
		}
		if f.BornOnOrAfter != nil && dob.Before(*f.BornOnOrAfter) {
			return false
		}
	}

	if !inRange(r.ExpectedSalary, f.SalaryMin, f.SalaryMax) {
		return false
	}
	if !inRange(r.TestScore, f.TestScoreMin, f.TestScoreMax) {
		return false
	}

	if f.Education != "" && (r.Applicant.Education == nil || *r.Applicant.Education != f.Education) {
		return false
	}
	if f.Status != "" && r.Status != f.Status {
		return false
	}

	if f.HasCV != nil && present(r.CVURL) != *f.HasCV {
		return false
	}
	if f.HasCoverLetter != nil && present(r.CoverLetter) != *f.HasCoverLetter {
		return false
	}

	if f.CreatedFrom != nil && r.CreatedAt.Before(*f.CreatedFrom) {
		return false
	}
	if f.CreatedBefore != nil && !r.CreatedAt.Before(*f.CreatedBefore) {
		return false
	}

	return true
}

// inRange excludes missing values whenever a bound is set.
func inRange(v, lo, hi *float64) bool {
	if lo == nil && hi == nil {
		return true
	}
	if v == nil {
		return false
	}
	if lo != nil && *v < *lo {
		return false
	}
	if hi != nil && *v > *hi {
		return false
	}
	return true
}

// yearsBefore is the same calendar day n years earlier, clamped to the end
// of the month so Feb 29 maps to Feb 28 in common years.
func yearsBefore(day time.Time, n int) time.Time {
	y, m, d := day.Year()-n, day.Month(), day.Day()
	if last := time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC).Day(); d > last {
		d = last
	}
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
