package postgres

import (
	"context"
	"errors"
	"fmt"

	"jobboard/internal/apperr"
	"jobboard/internal/models"
	"jobboard/internal/pipeline"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

// RunInTx runs fn in one read-committed transaction and commits only when
// fn succeeds.
func (s *Store) RunInTx(ctx context.Context, fn func(context.Context, pipeline.Tx) error) error {
	tx, err := s.BeginTx(ctx)
	if err != nil {
		s.logger.Error("failed to begin transaction", zap.Error(err))
		return fmt.Errorf("begin tx: %w", err)
	}
	defer tx.RollbackUnlessCommitted()

	if err := fn(ctx, &txStore{tx: tx, logger: s.logger}); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("failed to commit transaction", zap.Error(err))
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}

type txStore struct {
	tx     *dbr.Tx
	logger *zap.Logger
}

func (t *txStore) LockApplication(ctx context.Context, applicationID string) (*models.ApplicationSubject, error) {
	query := `
		SELECT a.id, a.status, a.job_posting_id, a.candidate_id,
		       jp.title AS job_title, jp.company_id
		FROM job_applications a
		JOIN job_postings jp ON jp.id = a.job_posting_id
		WHERE a.id = ?
		FOR UPDATE OF a
	`

	var subject models.ApplicationSubject
	err := t.tx.SelectBySql(query, applicationID).LoadOneContext(ctx, &subject)
	if errors.Is(err, dbr.ErrNotFound) {
		return nil, apperr.NotFound("postgres.LockApplication", "application not found")
	}
	if err != nil {
		t.logger.Error("failed to lock application",
			zap.String("application_id", applicationID),
			zap.Error(err),
		)
		return nil, classify("lock application", err)
	}

	return &subject, nil
}

func (t *txStore) UpdateStatus(ctx context.Context, u pipeline.StatusUpdate) (*models.Application, error) {
	stmt := t.tx.
		Update("job_applications").
		Set("status", string(u.Status)).
		Set("rejection_reason", u.RejectionReason).
		Set("reviewed_by", u.ReviewedBy).
		Set("reviewed_at", u.ReviewedAt).
		Set("updated_at", u.ReviewedAt)
	if u.AdminNotes != nil {
		stmt = stmt.Set("admin_notes", *u.AdminNotes)
	}

	if _, err := stmt.Where("id = ?", u.ApplicationID).ExecContext(ctx); err != nil {
		t.logger.Error("failed to update application status",
			zap.String("application_id", u.ApplicationID),
			zap.String("status", string(u.Status)),
			zap.Error(err),
		)
		return nil, classify("update application status", err)
	}

	var app models.Application
	err := t.tx.
		Select("*").
		From("job_applications").
		Where("id = ?", u.ApplicationID).
		LoadOneContext(ctx, &app)
	if err != nil {
		t.logger.Error("failed to reload application",
			zap.String("application_id", u.ApplicationID),
			zap.Error(err),
		)
		return nil, classify("reload application", err)
	}

	return &app, nil
}

func (t *txStore) CreateInterview(ctx context.Context, iv *models.InterviewSchedule) error {
	_, err := t.tx.
		InsertInto("interview_schedules").
		Columns(
			"id", "job_application_id", "job_posting_id", "candidate_id",
			"scheduled_at", "duration", "interview_type", "location",
			"notes", "status", "created_at",
		).
		Record(iv).
		ExecContext(ctx)
	if err != nil {
		t.logger.Error("failed to create interview",
			zap.String("application_id", iv.JobApplicationID),
			zap.Time("scheduled_at", iv.ScheduledAt),
			zap.Error(err),
		)
		return classify("create interview", err)
	}

	return nil
}

func (t *txStore) CreateNotification(ctx context.Context, n *models.Notification) error {
	_, err := t.tx.
		InsertInto("notifications").
		Columns("id", "user_id", "type", "message", "link", "is_read", "created_at").
		Record(n).
		ExecContext(ctx)
	if err != nil {
		t.logger.Error("failed to create notification",
			zap.String("user_id", n.UserID),
			zap.Error(err),
		)
		return classify("create notification", err)
	}

	return nil
}
