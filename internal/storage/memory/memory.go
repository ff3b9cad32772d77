// Package memory keeps companies, postings, applicants and applications in
// process memory. It serves local development and tests with the same
// semantics as the postgres store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"jobboard/internal/apperr"
	"jobboard/internal/models"

	"go.uber.org/zap"
)

type Store struct {
	mu sync.RWMutex

	companies     map[string]models.Company
	postings      map[string]models.JobPosting
	applicants    map[string]models.Applicant
	applications  map[string]models.Application
	interviews    []models.InterviewSchedule
	notifications []models.Notification

	logger *zap.Logger
}

func New(logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Store{
		companies:    make(map[string]models.Company),
		postings:     make(map[string]models.JobPosting),
		applicants:   make(map[string]models.Applicant),
		applications: make(map[string]models.Application),
		logger:       logger,
	}
}

func (s *Store) Ping(context.Context) error { return nil }

func (s *Store) Close() error { return nil }

func (s *Store) PutCompany(c models.Company) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.companies[c.ID] = c
}

func (s *Store) PutJobPosting(j models.JobPosting) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.companies[j.CompanyID]; !ok {
		return fmt.Errorf("put job posting %s: unknown company %s", j.ID, j.CompanyID)
	}
	s.postings[j.ID] = j
	return nil
}

func (s *Store) PutApplicant(a models.Applicant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.applicants[a.ID] = a
}

// PutApplication stores a submitted application; its posting and candidate
// must already exist.
func (s *Store) PutApplication(a models.Application) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.postings[a.JobPostingID]; !ok {
		return fmt.Errorf("put application %s: unknown job posting %s", a.ID, a.JobPostingID)
	}
	if _, ok := s.applicants[a.CandidateID]; !ok {
		return fmt.Errorf("put application %s: unknown candidate %s", a.ID, a.CandidateID)
	}
	if !a.Status.IsValid() {
		return fmt.Errorf("put application %s: invalid status %q", a.ID, a.Status)
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = a.CreatedAt
	}
	s.applications[a.ID] = a
	return nil
}

// PutInterview records an interview outside of a transition, e.g. when seeding.
func (s *Store) PutInterview(iv models.InterviewSchedule) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.interviews = append(s.interviews, iv)
}

func (s *Store) Application(id string) (models.Application, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	a, ok := s.applications[id]
	return a, ok
}

func (s *Store) Interviews(applicationID string) []models.InterviewSchedule {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.InterviewSchedule
	for _, iv := range s.interviews {
		if iv.JobApplicationID == applicationID {
			out = append(out, iv)
		}
	}
	return out
}

func (s *Store) Notifications(userID string) []models.Notification {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Notification
	for _, n := range s.notifications {
		if n.UserID == userID {
			out = append(out, n)
		}
	}
	return out
}

func (s *Store) CompanyAdminID(_ context.Context, companyID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.companies[companyID]
	if !ok {
		return "", apperr.NotFound("memory.CompanyAdminID", "company not found")
	}
	return c.AdminID, nil
}

func (s *Store) JobPostingCompanyID(_ context.Context, jobPostingID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.postings[jobPostingID]
	if !ok {
		return "", apperr.NotFound("memory.JobPostingCompanyID", "job posting not found")
	}
	return j.CompanyID, nil
}

func (s *Store) ApplicationCompanyID(_ context.Context, applicationID string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.applications[applicationID]
	if !ok {
		return "", apperr.NotFound("memory.ApplicationCompanyID", "application not found")
	}
	return s.postings[a.JobPostingID].CompanyID, nil
}

// latestInterview must be called with mu held.
func (s *Store) latestInterview(applicationID string) *models.InterviewSchedule {
	var latest *models.InterviewSchedule
	for i := range s.interviews {
		iv := s.interviews[i]
		if iv.JobApplicationID != applicationID {
			continue
		}
		if latest == nil || iv.ScheduledAt.After(latest.ScheduledAt) {
			latest = &iv
		}
	}
	return latest
}

// sortedApplicationIDs gives listings a stable base order before sorting.
func (s *Store) sortedApplicationIDs() []string {
	ids := make([]string, 0, len(s.applications))
	for id := range s.applications {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
