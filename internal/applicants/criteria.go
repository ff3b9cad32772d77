package applicants

import (
	"math"
	"net/url"
	"strconv"
	"strings"
	"time"

	"jobboard/internal/apperr"
	"jobboard/internal/models"
)

const (
	DefaultPage  = 1
	DefaultLimit = 20
	MaxLimit     = 100

	dateLayout = "2006-01-02"
)

type SortKey string

const (
	SortByName      SortKey = "name"
	SortBySalary    SortKey = "expectedSalary"
	SortByTestScore SortKey = "testScore"
	SortByAge       SortKey = "age"
	SortByCreatedAt SortKey = "createdAt"
)

func (k SortKey) IsValid() bool {
	switch k {
	case SortByName, SortBySalary, SortByTestScore, SortByAge, SortByCreatedAt:
		return true
	}
	return false
}

type SortOrder string

const (
	Asc  SortOrder = "asc"
	Desc SortOrder = "desc"
)

// Criteria is the flat set of search, sort and paging parameters a company
// admin sends when listing applicants. Nil bounds are unbounded.
type Criteria struct {
	Name           string
	AgeMin         *int
	AgeMax         *int
	SalaryMin      *float64
	SalaryMax      *float64
	Education      models.Education
	Status         models.ApplicationStatus
	Location       string
	HasCV          *bool
	HasCoverLetter *bool
	TestScoreMin   *float64
	TestScoreMax   *float64
	DateFrom       *time.Time
	DateTo         *time.Time
	JobPostingID   string
	SortBy         SortKey
	SortOrder      SortOrder
	Page           int
	Limit          int
}

// Limits bounds the page size a caller may ask for.
type Limits struct {
	Default int
	Max     int
}

func DefaultLimits() Limits {
	return Limits{Default: DefaultLimit, Max: MaxLimit}
}

// DefaultCriteria is what an empty query string parses to.
func DefaultCriteria() Criteria {
	return Criteria{
		SortBy:    SortByCreatedAt,
		SortOrder: Asc,
		Page:      DefaultPage,
		Limit:     DefaultLimit,
	}
}

// ParseCriteria reads criteria from query parameters. Blank parameters are
// absent. Every invalid field is reported in one validation error and no
// criteria are returned in that case.
func ParseCriteria(q url.Values, limits Limits) (Criteria, error) {
	const op = "applicants.ParseCriteria"

	if limits.Default <= 0 {
		limits.Default = DefaultLimit
	}
	if limits.Max < limits.Default {
		limits.Max = limits.Default
	}

	c := DefaultCriteria()
	c.Limit = limits.Default

	p := parser{q: q}

	c.Name = p.text("name")
	c.Location = p.text("location")
	c.JobPostingID = p.text("jobPostingId")

	c.AgeMin = p.nonNegativeInt("ageMin")
	c.AgeMax = p.nonNegativeInt("ageMax")
	c.SalaryMin = p.nonNegativeFloat("salaryMin")
	c.SalaryMax = p.nonNegativeFloat("salaryMax")
	c.TestScoreMin = p.nonNegativeFloat("testScoreMin")
	c.TestScoreMax = p.nonNegativeFloat("testScoreMax")
	c.HasCV = p.boolean("hasCv")
	c.HasCoverLetter = p.boolean("hasCoverLetter")
	c.DateFrom = p.date("dateFrom")
	c.DateTo = p.date("dateTo")

	if v := p.text("education"); v != "" {
		if e := models.Education(strings.ToUpper(v)); e.IsValid() {
			c.Education = e
		} else {
			p.errs.Add("education", "unknown education level")
		}
	}

	if v := p.text("status"); v != "" {
		if s := models.ApplicationStatus(strings.ToUpper(v)); s.IsValid() {
			c.Status = s
		} else {
			p.errs.Add("status", "unknown application status")
		}
	}

	if v := p.text("sortBy"); v != "" {
		if k := SortKey(v); k.IsValid() {
			c.SortBy = k
		} else {
			p.errs.Add("sortBy", "must be one of name, expectedSalary, testScore, age, createdAt")
		}
	}

	if v := p.text("sortOrder"); v != "" {
		switch o := SortOrder(strings.ToLower(v)); o {
		case Asc, Desc:
			c.SortOrder = o
		default:
			p.errs.Add("sortOrder", "must be asc or desc")
		}
	}

	if v := p.positiveInt("page"); v != nil {
		c.Page = *v
	}
	if v := p.positiveInt("limit"); v != nil {
		if *v > limits.Max {
			p.errs.Add("limit", "must not exceed "+strconv.Itoa(limits.Max))
		} else {
			c.Limit = *v
		}
	}

	if c.Page > 1 && c.Limit > 0 && c.Page-1 > math.MaxInt/c.Limit {
		p.errs.Add("page", "is too large for the requested limit")
	}

	checkIntRange(&p.errs, "ageMax", c.AgeMin, c.AgeMax)
	checkFloatRange(&p.errs, "salaryMax", c.SalaryMin, c.SalaryMax)
	checkFloatRange(&p.errs, "testScoreMax", c.TestScoreMin, c.TestScoreMax)
	if c.DateFrom != nil && c.DateTo != nil && c.DateTo.Before(*c.DateFrom) {
		p.errs.Add("dateTo", "must not be before dateFrom")
	}

	if err := p.errs.Err(op); err != nil {
		return Criteria{}, err
	}

	return c, nil
}

// Encode renders criteria back to query parameters in a stable order.
func (c Criteria) Encode() string {
	return c.values().Encode()
}

// Applied echoes the effective criteria for the response.
func (c Criteria) Applied() map[string]any {
	out := map[string]any{
		"sortBy":    c.SortBy,
		"sortOrder": c.SortOrder,
		"page":      c.Page,
		"limit":     c.Limit,
	}

	setString := func(key, v string) {
		if v != "" {
			out[key] = v
		}
	}
	setString("name", c.Name)
	setString("location", c.Location)
	setString("jobPostingId", c.JobPostingID)
	setString("education", string(c.Education))
	setString("status", string(c.Status))

	if c.AgeMin != nil {
		out["ageMin"] = *c.AgeMin
	}
	if c.AgeMax != nil {
		out["ageMax"] = *c.AgeMax
	}
	if c.SalaryMin != nil {
		out["salaryMin"] = *c.SalaryMin
	}
	if c.SalaryMax != nil {
		out["salaryMax"] = *c.SalaryMax
	}
	if c.TestScoreMin != nil {
		out["testScoreMin"] = *c.TestScoreMin
	}
	if c.TestScoreMax != nil {
		out["testScoreMax"] = *c.TestScoreMax
	}
	if c.HasCV != nil {
		out["hasCv"] = *c.HasCV
	}
	if c.HasCoverLetter != nil {
		out["hasCoverLetter"] = *c.HasCoverLetter
	}
	if c.DateFrom != nil {
		out["dateFrom"] = c.DateFrom.Format(dateLayout)
	}
	if c.DateTo != nil {
		out["dateTo"] = c.DateTo.Format(dateLayout)
	}

	return out
}

func (c Criteria) values() url.Values {
	v := url.Values{}
	for key, val := range c.Applied() {
		switch x := val.(type) {
		case string:
			v.Set(key, x)
		case SortKey:
			v.Set(key, string(x))
		case SortOrder:
			v.Set(key, string(x))
		case int:
			v.Set(key, strconv.Itoa(x))
		case float64:
			v.Set(key, strconv.FormatFloat(x, 'f', -1, 64))
		case bool:
			v.Set(key, strconv.FormatBool(x))
		}
	}
	return v
}

type parser struct {
	q    url.Values
	errs apperr.FieldErrors
}

func (p *parser) text(key string) string {
	return strings.TrimSpace(p.q.Get(key))
}

func (p *parser) nonNegativeInt(key string) *int {
	v := p.text(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.errs.Add(key, "must be a whole number")
		return nil
	}
	if n < 0 {
		p.errs.Add(key, "must not be negative")
		return nil
	}
	return &n
}

func (p *parser) positiveInt(key string) *int {
	v := p.text(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		p.errs.Add(key, "must be a positive integer")
		return nil
	}
	return &n
}

func (p *parser) nonNegativeFloat(key string) *float64 {
	v := p.text(key)
	if v == "" {
		return nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		p.errs.Add(key, "must be a number")
		return nil
	}
	if f < 0 {
		p.errs.Add(key, "must not be negative")
		return nil
	}
	return &f
}

func (p *parser) boolean(key string) *bool {
	v := strings.ToLower(p.text(key))
	switch v {
	case "":
		return nil
	case "true":
		b := true
		return &b
	case "false":
		b := false
		return &b
	}
	p.errs.Add(key, "must be true or false")
	return nil
}

func (p *parser) date(key string) *time.Time {
	v := p.text(key)
	if v == "" {
		return nil
	}
	t, err := time.ParseInLocation(dateLayout, v, time.UTC)
	if err != nil {
		p.errs.Add(key, "must be a date in YYYY-MM-DD format")
		return nil
	}
	return &t
}

func checkIntRange(errs *apperr.FieldErrors, field string, lo, hi *int) {
	if lo != nil && hi != nil && *lo > *hi {
		errs.Add(field, "must not be less than the minimum")
	}
}

func checkFloatRange(errs *apperr.FieldErrors, field string, lo, hi *float64) {
	if lo != nil && hi != nil && *lo > *hi {
		errs.Add(field, "must not be less than the minimum")
	}
}
