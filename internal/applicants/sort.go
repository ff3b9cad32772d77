package applicants

import (
	"math"
	"sort"
	"strings"

	"jobboard/internal/models"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Collation is the locale used for name ordering.
var Collation = language.English

// ApplySort orders records in place and returns them.
//
// Missing values: salary and age sort last in both directions; a missing
// test score counts as the highest score, so it sorts last ascending and
// first descending. Ties fall back to creation time, then id.
func ApplySort(records []models.ApplicationRecord, s Sort) []models.ApplicationRecord {
	desc := s.Desc()

	var less func(a, b *models.ApplicationRecord) (lt, eq bool)

	switch s.Key {
	case SortByName:
		col := collate.New(Collation)
		names := make(map[string]string, len(records))
		for i := range records {
			names[records[i].ID] = SortName(records[i].Applicant)
		}
		less = func(a, b *models.ApplicationRecord) (bool, bool) {
			c := col.CompareString(names[a.ID], names[b.ID])
			if desc {
				c = -c
			}
			return c < 0, c == 0
		}
	case SortBySalary:
		less = byNumber(desc, func(r *models.ApplicationRecord) float64 {
			return missingLast(r.ExpectedSalary, desc)
		})
	case SortByTestScore:
		less = byNumber(desc, func(r *models.ApplicationRecord) float64 {
			if r.TestScore == nil {
				return math.Inf(1)
			}
			return *r.TestScore
		})
	case SortByAge:
		less = byNumber(desc, func(r *models.ApplicationRecord) float64 {
			// older means an earlier birth date
			if r.Applicant.DateOfBirth == nil {
				return missingLast(nil, desc)
			}
			v := -float64(r.Applicant.DateOfBirth.Unix())
			return missingLast(&v, desc)
		})
	default:
		less = func(a, b *models.ApplicationRecord) (bool, bool) {
			if a.CreatedAt.Equal(b.CreatedAt) {
				return false, true
			}
			if desc {
				return a.CreatedAt.After(b.CreatedAt), false
			}
			return a.CreatedAt.Before(b.CreatedAt), false
		}
	}

	sort.SliceStable(records, func(i, j int) bool {
		a, b := &records[i], &records[j]
		if lt, eq := less(a, b); !eq {
			return lt
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return a.ID < b.ID
	})

	return records
}

// SortName is the trimmed, lower-cased composed name used for ordering.
func SortName(a models.Applicant) string {
	return strings.ToLower(FullName(a.FirstName, a.LastName))
}

func byNumber(desc bool, key func(*models.ApplicationRecord) float64) func(a, b *models.ApplicationRecord) (bool, bool) {
	return func(a, b *models.ApplicationRecord) (bool, bool) {
		x, y := key(a), key(b)
		if x == y {
			return false, true
		}
		if desc {
			return x > y, false
		}
		return x < y, false
	}
}

// missingLast maps a nil value to the end of the requested direction.
func missingLast(v *float64, desc bool) float64 {
	if v != nil {
		return *v
	}
	if desc {
		return math.Inf(-1)
	}
	return math.Inf(1)
}
