package pipeline

import (
	"context"
	"strings"
	"time"

	"jobboard/internal/apperr"
	"jobboard/internal/models"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	DefaultInterviewDuration = 60
	MaxInterviewDuration     = 480
	DefaultInterviewType     = models.InterviewOnline
)

// StatusUpdate is the write applied to the application row.
type StatusUpdate struct {
	ApplicationID   string
	Status          models.ApplicationStatus
	RejectionReason *string
	AdminNotes      *string
	ReviewedBy      string
	ReviewedAt      time.Time
}

// Tx is the set of writes one transition performs inside a transaction.
type Tx interface {
	// LockApplication loads the application and blocks concurrent
	// transitions on it until the transaction ends.
	LockApplication(ctx context.Context, applicationID string) (*models.ApplicationSubject, error)
	UpdateStatus(ctx context.Context, u StatusUpdate) (*models.Application, error)
	CreateInterview(ctx context.Context, iv *models.InterviewSchedule) error
	CreateNotification(ctx context.Context, n *models.Notification) error
}

// Store commits fn's writes together, or none of them when fn fails.
type Store interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
}

// Invalidator drops cached listings of a company after a committed change.
type Invalidator interface {
	Invalidate(ctx context.Context, companyID string) error
}

// Recorder counts committed transitions.
type Recorder interface {
	ObserveTransition(from, to models.ApplicationStatus)
}

type Request struct {
	ApplicationID   string
	Status          string
	RejectionReason *string
	AdminNotes      *string
	ActorID         string
	Interview       *InterviewRequest
}

type InterviewRequest struct {
	ScheduledAt   string
	Duration      *int
	InterviewType string
	Location      *string
	Notes         *string
}

type Result struct {
	Application  models.Application
	Previous     models.ApplicationStatus
	Interview    *models.InterviewSchedule
	Notification models.Notification
}

type Engine struct {
	store       Store
	policy      Policy
	invalidator Invalidator
	recorder    Recorder
	now         func() time.Time
	newID       func() string
	logger      *zap.Logger
}

type Option func(*Engine)

// WithPolicy replaces the default unrestricted policy.
func WithPolicy(p Policy) Option {
	return func(e *Engine) { e.policy = p }
}

// WithEnforcedOrder switches to ForwardOnly when enforce is set.
func WithEnforcedOrder(enforce bool) Option {
	return func(e *Engine) {
		if enforce {
			e.policy = ForwardOnly{}
		}
	}
}

func WithInvalidator(i Invalidator) Option {
	return func(e *Engine) { e.invalidator = i }
}

func WithRecorder(r Recorder) Option {
	return func(e *Engine) { e.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithIDGenerator(newID func() string) Option {
	return func(e *Engine) { e.newID = newID }
}

func WithLogger(l *zap.Logger) Option {
	return func(e *Engine) { e.logger = l }
}

func NewEngine(store Store, opts ...Option) *Engine {
	e := &Engine{
		store:  store,
		policy: Unrestricted{},
		now:    time.Now,
		newID:  uuid.NewString,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Transition sets an application's status, schedules an interview when
// asked to, and notifies the applicant. The three writes commit together.
// The caller has already verified the actor administers the owning company.
func (e *Engine) Transition(ctx context.Context, req Request) (*Result, error) {
	const op = "pipeline.Transition"

	target, draft, err := e.validate(req)
	if err != nil {
		return nil, err
	}

	now := e.now().UTC()
	var (
		result    Result
		companyID string
	)

	err = e.store.RunInTx(ctx, func(ctx context.Context, tx Tx) error {
		subject, err := tx.LockApplication(ctx, req.ApplicationID)
		if err != nil {
			return err
		}
		companyID = subject.CompanyID
		result.Previous = subject.Status

		if !e.policy.Allow(subject.Status, target) {
			return apperr.New(apperr.KindConflict, op,
				"cannot move application from "+string(subject.Status)+" to "+string(target))
		}

		var reason *string
		if target == models.StatusRejected {
			reason = nonBlank(req.RejectionReason)
		}

		app, err := tx.UpdateStatus(ctx, StatusUpdate{
			ApplicationID:   subject.ID,
			Status:          target,
			RejectionReason: reason,
			AdminNotes:      nonBlank(req.AdminNotes),
			ReviewedBy:      req.ActorID,
			ReviewedAt:      now,
		})
		if err != nil {
			return err
		}
		result.Application = *app

		if draft != nil {
			iv := *draft
			iv.ID = e.newID()
			iv.JobApplicationID = subject.ID
			iv.JobPostingID = subject.JobPostingID
			iv.CandidateID = subject.CandidateID
			iv.CreatedAt = now
			if err := tx.CreateInterview(ctx, &iv); err != nil {
				return err
			}
			result.Interview = &iv
		}

		n := models.Notification{
			ID:        e.newID(),
			UserID:    subject.CandidateID,
			Type:      models.NotificationApplicationStatusUpdate,
			Message:   NotificationMessage(subject.JobTitle, target),
			Link:      "/applications/" + subject.ID,
			CreatedAt: now,
		}
		if err := tx.CreateNotification(ctx, &n); err != nil {
			return err
		}
		result.Notification = n

		return nil
	})
	if err != nil {
		if kind := apperr.KindOf(err); kind != apperr.KindInternal {
			return nil, err
		}
		e.logger.Error("failed to apply status transition",
			zap.String("application_id", req.ApplicationID),
			zap.String("status", string(target)),
			zap.Error(err),
		)
		return nil, apperr.Internal(op, err)
	}

	if e.invalidator != nil {
		if err := e.invalidator.Invalidate(ctx, companyID); err != nil {
			e.logger.Warn("failed to invalidate applicant listings",
				zap.String("company_id", companyID),
				zap.Error(err),
			)
		}
	}
	if e.recorder != nil {
		e.recorder.ObserveTransition(result.Previous, target)
	}

	e.logger.Info("application status updated",
		zap.String("application_id", req.ApplicationID),
		zap.String("from", string(result.Previous)),
		zap.String("to", string(target)),
		zap.String("actor_id", req.ActorID),
		zap.Bool("interview_scheduled", result.Interview != nil),
	)

	return &result, nil
}

// validate checks the request before anything is written and returns the
// target status and, when one is to be created, the interview draft.
func (e *Engine) validate(req Request) (models.ApplicationStatus, *models.InterviewSchedule, error) {
	const op = "pipeline.Transition"

	var errs apperr.FieldErrors

	if strings.TrimSpace(req.ApplicationID) == "" {
		errs.Add("applicationId", "is required")
	}

	target := models.ApplicationStatus(strings.TrimSpace(req.Status))
	switch {
	case target == "":
		errs.Add("status", "is required")
	case !target.IsValid():
		errs.Add("status", "unknown application status")
	}

	var draft *models.InterviewSchedule
	if target == models.StatusInterviewScheduled && req.Interview != nil {
		draft = interviewDraft(req.Interview, &errs)
	}

	if err := errs.Err(op); err != nil {
		return "", nil, err
	}
	return target, draft, nil
}

func interviewDraft(in *InterviewRequest, errs *apperr.FieldErrors) *models.InterviewSchedule {
	const prefix = "scheduleInterview."

	iv := &models.InterviewSchedule{
		Duration:      DefaultInterviewDuration,
		InterviewType: DefaultInterviewType,
		Location:      nonBlank(in.Location),
		Notes:         nonBlank(in.Notes),
		Status:        models.InterviewScheduled,
	}

	if s := strings.TrimSpace(in.ScheduledAt); s == "" {
		errs.Add(prefix+"scheduledAt", "is required")
	} else if t, err := time.Parse(time.RFC3339, s); err != nil {
		errs.Add(prefix+"scheduledAt", "must be an RFC 3339 timestamp")
	} else {
		iv.ScheduledAt = t.UTC()
	}

	if in.Duration != nil {
		if *in.Duration < 1 || *in.Duration > MaxInterviewDuration {
			errs.Add(prefix+"duration", "must be between 1 and 480 minutes")
		} else {
			iv.Duration = *in.Duration
		}
	}

	if t := strings.TrimSpace(in.InterviewType); t != "" {
		if it := models.InterviewType(strings.ToUpper(t)); it.IsValid() {
			iv.InterviewType = it
		} else {
			errs.Add(prefix+"interviewType", "must be one of ONLINE, PHONE, IN_PERSON")
		}
	}

	return iv
}

// NotificationMessage is the text sent to the applicant on a status change.
func NotificationMessage(jobTitle string, status models.ApplicationStatus) string {
	return `Your application for "` + jobTitle + `" has been ` + status.Human() + "."
}

func nonBlank(s *string) *string {
	if s == nil || strings.TrimSpace(*s) == "" {
		return nil
	}
	return s
}
