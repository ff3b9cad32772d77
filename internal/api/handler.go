// Package api exposes the applicant listing and status pipeline over HTTP.
package api

import (
	"context"

	"jobboard/internal/applicants"
	"jobboard/internal/pipeline"

	"go.uber.org/zap"
)

// Lister lists a company's applications.
type Lister interface {
	List(ctx context.Context, scope applicants.Scope, c applicants.Criteria) (*applicants.ListResult, error)
}

// Transitioner moves an application to a new status.
type Transitioner interface {
	Transition(ctx context.Context, req pipeline.Request) (*pipeline.Result, error)
}

// Authorizer checks that the actor administers the company and that the
// referenced posting or application belongs to it.
type Authorizer interface {
	Company(ctx context.Context, companyID, actorID string) error
	JobPosting(ctx context.Context, companyID, jobPostingID string) error
	Application(ctx context.Context, companyID, applicationID string) error
}

// Pinger is a dependency reported by the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Handler struct {
	lister       Lister
	transitioner Transitioner
	authz        Authorizer
	limits       applicants.Limits
	checks       map[string]Pinger
	logger       *zap.Logger
}

func NewHandler(lister Lister, transitioner Transitioner, authz Authorizer, limits applicants.Limits, checks map[string]Pinger, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		lister:       lister,
		transitioner: transitioner,
		authz:        authz,
		limits:       limits,
		checks:       checks,
		logger:       logger,
	}
}
