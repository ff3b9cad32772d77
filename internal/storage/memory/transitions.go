package memory

import (
	"context"

	"jobboard/internal/apperr"
	"jobboard/internal/models"
	"jobboard/internal/pipeline"

	"go.uber.org/zap"
)

// RunInTx serialises transitions behind the store lock and restores the
// previous state when fn fails.
func (s *Store) RunInTx(ctx context.Context, fn func(context.Context, pipeline.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	saved := make(map[string]models.Application, len(s.applications))
	for k, v := range s.applications {
		saved[k] = v
	}
	interviews, notifications := len(s.interviews), len(s.notifications)

	if err := fn(ctx, &tx{s: s}); err != nil {
		s.applications = saved
		s.interviews = s.interviews[:interviews]
		s.notifications = s.notifications[:notifications]
		s.logger.Debug("transaction rolled back", zap.Error(err))
		return err
	}
	return nil
}

// tx writes straight to the store; RunInTx holds the lock.
type tx struct {
	s *Store
}

func (t *tx) LockApplication(_ context.Context, applicationID string) (*models.ApplicationSubject, error) {
	app, ok := t.s.applications[applicationID]
	if !ok {
		return nil, apperr.NotFound("memory.LockApplication", "application not found")
	}
	posting := t.s.postings[app.JobPostingID]
	return &models.ApplicationSubject{
		ID:           app.ID,
		Status:       app.Status,
		JobPostingID: app.JobPostingID,
		CandidateID:  app.CandidateID,
		JobTitle:     posting.Title,
		CompanyID:    posting.CompanyID,
	}, nil
}

func (t *tx) UpdateStatus(_ context.Context, u pipeline.StatusUpdate) (*models.Application, error) {
	app, ok := t.s.applications[u.ApplicationID]
	if !ok {
		return nil, apperr.NotFound("memory.UpdateStatus", "application not found")
	}

	app.Status = u.Status
	app.RejectionReason = u.RejectionReason
	if u.AdminNotes != nil {
		app.AdminNotes = u.AdminNotes
	}
	reviewedBy, reviewedAt := u.ReviewedBy, u.ReviewedAt
	app.ReviewedBy = &reviewedBy
	app.ReviewedAt = &reviewedAt
	app.UpdatedAt = u.ReviewedAt

	t.s.applications[app.ID] = app
	return &app, nil
}

func (t *tx) CreateInterview(_ context.Context, iv *models.InterviewSchedule) error {
	t.s.interviews = append(t.s.interviews, *iv)
	return nil
}

func (t *tx) CreateNotification(_ context.Context, n *models.Notification) error {
	t.s.notifications = append(t.s.notifications, *n)
	return nil
}
