package applicants

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"jobboard/internal/apperr"
	"jobboard/internal/models"

	"go.uber.org/zap"
)

// Store runs a built query and returns one page plus the total match count.
type Store interface {
	ListApplications(ctx context.Context, q Query) ([]models.ApplicationRecord, int, error)
}

// Cache keeps shaped list results per company. LoadList reports the
// company's cache version it read; StoreList writes under that version so a
// result computed before an invalidation is never served after it.
type Cache interface {
	LoadList(ctx context.Context, companyID, fingerprint string, dest any) (version int64, hit bool, err error)
	StoreList(ctx context.Context, companyID string, version int64, fingerprint string, value any) error
}

// Recorder observes list latency.
type Recorder interface {
	ObserveList(d time.Duration, cached bool)
}

type Service struct {
	store    Store
	cache    Cache
	recorder Recorder
	now      func() time.Time
	logger   *zap.Logger
}

type Option func(*Service)

func WithCache(c Cache) Option {
	return func(s *Service) { s.cache = c }
}

func WithRecorder(r Recorder) Option {
	return func(s *Service) { s.recorder = r }
}

func WithClock(now func() time.Time) Option {
	return func(s *Service) { s.now = now }
}

func WithLogger(l *zap.Logger) Option {
	return func(s *Service) { s.logger = l }
}

func NewService(store Store, opts ...Option) *Service {
	s := &Service{
		store:  store,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the page of applications matching criteria within scope.
// The caller has already verified the actor administers scope.CompanyID.
func (s *Service) List(ctx context.Context, scope Scope, c Criteria) (*ListResult, error) {
	const op = "applicants.List"

	start := time.Now()
	fingerprint := listFingerprint(scope, c)

	var (
		version   int64
		cacheable bool
	)
	if s.cache != nil {
		var cached ListResult
		v, hit, err := s.cache.LoadList(ctx, scope.CompanyID, fingerprint, &cached)
		if err != nil {
			s.logger.Warn("failed to read list cache",
				zap.String("company_id", scope.CompanyID),
				zap.Error(err),
			)
		} else {
			version, cacheable = v, true
		}
		if hit && err == nil {
			s.observe(start, true)
			return &cached, nil
		}
	}

	now := s.now()
	q := BuildQuery(c, scope, now)

	records, total, err := s.store.ListApplications(ctx, q)
	if err != nil {
		s.logger.Error("failed to list applications",
			zap.String("company_id", scope.CompanyID),
			zap.String("job_posting_id", q.Filter.JobPostingID),
			zap.Error(err),
		)
		return nil, apperr.Internal(op, err)
	}

	result := &ListResult{
		Applications:   make([]ApplicationView, 0, len(records)),
		Pagination:     Paginate(total, q.Page, q.Limit),
		AppliedFilters: c.Applied(),
	}
	for _, r := range records {
		result.Applications = append(result.Applications, NewApplicationView(r, now))
	}

	if cacheable {
		if err := s.cache.StoreList(ctx, scope.CompanyID, version, fingerprint, result); err != nil {
			s.logger.Warn("failed to write list cache",
				zap.String("company_id", scope.CompanyID),
				zap.Error(err),
			)
		}
	}

	s.observe(start, false)
	return result, nil
}

func (s *Service) observe(start time.Time, cached bool) {
	if s.recorder != nil {
		s.recorder.ObserveList(time.Since(start), cached)
	}
}

func listFingerprint(scope Scope, c Criteria) string {
	sum := sha256.Sum256([]byte(scope.JobPostingID + "|" + c.Encode()))
	return hex.EncodeToString(sum[:12])
}
