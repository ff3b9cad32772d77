package applicants

import (
	"time"

	"jobboard/internal/models"
)

var testNow = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

type recordOpt func(*models.ApplicationRecord)

func newRecord(id string, created time.Time, opts ...recordOpt) models.ApplicationRecord {
	r := models.ApplicationRecord{
		Application: models.Application{
			ID:           id,
			JobPostingID: "job-1",
			CandidateID:  "user-" + id,
			Status:       models.StatusPending,
			CreatedAt:    created,
			UpdatedAt:    created,
		},
		Applicant: models.Applicant{
			ID:    "user-" + id,
			Email: id + "@example.com",
		},
		JobPosting: models.JobPostingSummary{ID: "job-1", Title: "Backend Engineer"},
	}
	for _, opt := range opts {
		opt(&r)
	}
	return r
}

func withName(first, last string) recordOpt {
	return func(r *models.ApplicationRecord) {
		r.Applicant.FirstName = ptr(first)
		r.Applicant.LastName = ptr(last)
	}
}

func withDOB(t time.Time) recordOpt {
	return func(r *models.ApplicationRecord) { r.Applicant.DateOfBirth = &t }
}

func withSalary(v float64) recordOpt {
	return func(r *models.ApplicationRecord) { r.ExpectedSalary = &v }
}

func withScore(v float64) recordOpt {
	return func(r *models.ApplicationRecord) { r.TestScore = &v }
}

func ids(records []models.ApplicationRecord) []string {
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func filterAll(f Filter, records []models.ApplicationRecord) []models.ApplicationRecord {
	var out []models.ApplicationRecord
	for _, r := range records {
		if f.Matches(r) {
			out = append(out, r)
		}
	}
	return out
}
