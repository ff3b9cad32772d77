// Package access answers whether an actor may act on a company's postings
// and applications. Every mismatch is reported as not found so callers
// cannot probe for ids belonging to other companies.
package access

import (
	"context"
	"errors"

	"jobboard/internal/apperr"

	"go.uber.org/zap"
)

// Store resolves ownership. Each lookup returns a not_found apperr when the
// id is unknown.
type Store interface {
	CompanyAdminID(ctx context.Context, companyID string) (string, error)
	JobPostingCompanyID(ctx context.Context, jobPostingID string) (string, error)
	ApplicationCompanyID(ctx context.Context, applicationID string) (string, error)
}

type Checker struct {
	store  Store
	logger *zap.Logger
}

func NewChecker(store Store, logger *zap.Logger) *Checker {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Checker{store: store, logger: logger}
}

// Company succeeds when actorID administers companyID.
func (c *Checker) Company(ctx context.Context, companyID, actorID string) error {
	const op = "access.Company"

	adminID, err := c.store.CompanyAdminID(ctx, companyID)
	if err != nil {
		return c.translate(op, err, "company not found or unauthorized",
			zap.String("company_id", companyID))
	}
	if adminID != actorID {
		c.logger.Warn("company access denied",
			zap.String("company_id", companyID),
			zap.String("actor_id", actorID),
		)
		return apperr.NotFound(op, "company not found or unauthorized")
	}
	return nil
}

// JobPosting succeeds when the posting belongs to companyID.
func (c *Checker) JobPosting(ctx context.Context, companyID, jobPostingID string) error {
	const op = "access.JobPosting"

	owner, err := c.store.JobPostingCompanyID(ctx, jobPostingID)
	if err != nil {
		return c.translate(op, err, "job posting not found",
			zap.String("job_posting_id", jobPostingID))
	}
	if owner != companyID {
		return apperr.NotFound(op, "job posting not found")
	}
	return nil
}

// Application succeeds when the application was made to one of companyID's postings.
func (c *Checker) Application(ctx context.Context, companyID, applicationID string) error {
	const op = "access.Application"

	owner, err := c.store.ApplicationCompanyID(ctx, applicationID)
	if err != nil {
		return c.translate(op, err, "application not found",
			zap.String("application_id", applicationID))
	}
	if owner != companyID {
		return apperr.NotFound(op, "application not found")
	}
	return nil
}

func (c *Checker) translate(op string, err error, notFound string, id zap.Field) error {
	if errors.Is(err, apperr.ErrNotFound) {
		return apperr.NotFound(op, notFound)
	}
	c.logger.Error("ownership lookup failed", id, zap.Error(err))
	return apperr.Internal(op, err)
}
