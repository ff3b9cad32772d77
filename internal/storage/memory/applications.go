package memory

import (
	"context"

	"jobboard/internal/applicants"
	"jobboard/internal/models"
)

func (s *Store) ListApplications(ctx context.Context, q applicants.Query) ([]models.ApplicationRecord, int, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var matched []models.ApplicationRecord
	for _, id := range s.sortedApplicationIDs() {
		app := s.applications[id]
		posting := s.postings[app.JobPostingID]
		if q.Filter.CompanyID != "" && posting.CompanyID != q.Filter.CompanyID {
			continue
		}

		r := models.ApplicationRecord{
			Application:     app,
			Applicant:       s.applicants[app.CandidateID],
			JobPosting:      posting.Summary(),
			LatestInterview: s.latestInterview(app.ID),
		}
		if q.Filter.Matches(r) {
			matched = append(matched, r)
		}
	}

	applicants.ApplySort(matched, q.Sort)
	page, p := applicants.Page(matched, q.Page, q.Limit)

	return page, p.Total, nil
}
