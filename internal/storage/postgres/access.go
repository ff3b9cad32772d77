package postgres

import (
	"context"
	"errors"

	"jobboard/internal/apperr"

	"github.com/gocraft/dbr/v2"
	"go.uber.org/zap"
)

func (s *Store) CompanyAdminID(ctx context.Context, companyID string) (string, error) {
	var adminID string

	err := s.sess.
		Select("admin_id").
		From("companies").
		Where("id = ?", companyID).
		LoadOneContext(ctx, &adminID)

	return adminID, s.lookupErr("company admin", "company not found", err, zap.String("company_id", companyID))
}

func (s *Store) JobPostingCompanyID(ctx context.Context, jobPostingID string) (string, error) {
	var companyID string

	err := s.sess.
		Select("company_id").
		From("job_postings").
		Where("id = ?", jobPostingID).
		LoadOneContext(ctx, &companyID)

	return companyID, s.lookupErr("job posting company", "job posting not found", err, zap.String("job_posting_id", jobPostingID))
}

func (s *Store) ApplicationCompanyID(ctx context.Context, applicationID string) (string, error) {
	var companyID string

	err := s.sess.
		Select("jp.company_id").
		From(dbr.I("job_applications").As("a")).
		Join(dbr.I("job_postings").As("jp"), "jp.id = a.job_posting_id").
		Where("a.id = ?", applicationID).
		LoadOneContext(ctx, &companyID)

	return companyID, s.lookupErr("application company", "application not found", err, zap.String("application_id", applicationID))
}

func (s *Store) lookupErr(op, notFound string, err error, id zap.Field) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, dbr.ErrNotFound) {
		return apperr.NotFound(op, notFound)
	}

	classified := classify(op, err)
	if apperr.KindOf(classified) == apperr.KindNotFound {
		return apperr.NotFound(op, notFound)
	}

	s.logger.Error("failed to look up "+op, id, zap.Error(err))
	return classified
}
