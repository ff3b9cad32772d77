package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/applicants"
	"jobboard/internal/models"

	"github.com/gocraft/dbr/v2"
	"github.com/lib/pq"
	"go.uber.org/zap"
)

const (
	nameExpr     = "LOWER(TRIM(CONCAT_WS(' ', u.first_name, u.last_name)))"
	locationExpr = "LOWER(CONCAT_WS(', ', c.name, p.name))"
)

var listColumns = []string{
	"a.id", "a.job_posting_id", "a.candidate_id", "a.status", "a.expected_salary",
	"a.cover_letter", "a.cv_url", "a.test_score", "a.test_completed_at",
	"a.rejection_reason", "a.admin_notes", "a.reviewed_by", "a.reviewed_at",
	"a.created_at", "a.updated_at",
	"u.first_name AS applicant_first_name",
	"u.last_name AS applicant_last_name",
	"u.email AS applicant_email",
	"u.profile_image AS applicant_profile_image",
	"u.date_of_birth AS applicant_date_of_birth",
	"u.education AS applicant_education",
	"u.phone_number AS applicant_phone_number",
	"u.current_address AS applicant_current_address",
	"c.name AS city_name",
	"p.name AS province_name",
	"jp.title AS job_title",
	"jp.salary_min AS job_salary_min",
	"jp.salary_max AS job_salary_max",
}

// applicationRow is one row of the joined listing query.
type applicationRow struct {
	models.Application

	ApplicantFirstName      *string           `db:"applicant_first_name"`
	ApplicantLastName       *string           `db:"applicant_last_name"`
	ApplicantEmail          string            `db:"applicant_email"`
	ApplicantProfileImage   *string           `db:"applicant_profile_image"`
	ApplicantDateOfBirth    *time.Time        `db:"applicant_date_of_birth"`
	ApplicantEducation      *models.Education `db:"applicant_education"`
	ApplicantPhoneNumber    *string           `db:"applicant_phone_number"`
	ApplicantCurrentAddress *string           `db:"applicant_current_address"`
	CityName                *string           `db:"city_name"`
	ProvinceName            *string           `db:"province_name"`
	JobTitle                string            `db:"job_title"`
	JobSalaryMin            *float64          `db:"job_salary_min"`
	JobSalaryMax            *float64          `db:"job_salary_max"`
}

func (r applicationRow) record() models.ApplicationRecord {
	return models.ApplicationRecord{
		Application: r.Application,
		Applicant: models.Applicant{
			ID:             r.CandidateID,
			FirstName:      r.ApplicantFirstName,
			LastName:       r.ApplicantLastName,
			Email:          r.ApplicantEmail,
			ProfileImage:   r.ApplicantProfileImage,
			DateOfBirth:    r.ApplicantDateOfBirth,
			Education:      r.ApplicantEducation,
			PhoneNumber:    r.ApplicantPhoneNumber,
			CurrentAddress: r.ApplicantCurrentAddress,
			CityName:       r.CityName,
			ProvinceName:   r.ProvinceName,
		},
		JobPosting: models.JobPostingSummary{
			ID:        r.JobPostingID,
			Title:     r.JobTitle,
			SalaryMin: r.JobSalaryMin,
			SalaryMax: r.JobSalaryMax,
		},
	}
}

func (s *Store) ListApplications(ctx context.Context, q applicants.Query) ([]models.ApplicationRecord, int, error) {
	cond := filterCondition(q.Filter)

	var total int
	countStmt := withJoins(s.sess.Select("COUNT(*)"))
	if cond != nil {
		countStmt = countStmt.Where(cond)
	}
	if err := countStmt.LoadOneContext(ctx, &total); err != nil {
		s.logger.Error("failed to count applications",
			zap.String("company_id", q.Filter.CompanyID),
			zap.String("job_posting_id", q.Filter.JobPostingID),
			zap.Error(err),
		)
		return nil, 0, fmt.Errorf("count applications: %w", err)
	}

	if total == 0 || q.Offset() >= total {
		return []models.ApplicationRecord{}, total, nil
	}

	stmt := withJoins(s.sess.Select(listColumns...))
	if cond != nil {
		stmt = stmt.Where(cond)
	}
	for _, clause := range orderClauses(q.Sort) {
		stmt = stmt.OrderBy(clause)
	}
	stmt = stmt.Limit(uint64(q.Limit)).Offset(uint64(q.Offset()))

	var rows []applicationRow
	if _, err := stmt.LoadContext(ctx, &rows); err != nil {
		s.logger.Error("failed to list applications",
			zap.String("company_id", q.Filter.CompanyID),
			zap.String("job_posting_id", q.Filter.JobPostingID),
			zap.Error(err),
		)
		return nil, 0, fmt.Errorf("list applications: %w", err)
	}

	records := make([]models.ApplicationRecord, 0, len(rows))
	ids := make([]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, r.record())
		ids = append(ids, r.ID)
	}

	latest, err := s.latestInterviews(ctx, ids)
	if err != nil {
		return nil, 0, err
	}
	for i := range records {
		if iv, ok := latest[records[i].ID]; ok {
			records[i].LatestInterview = &iv
		}
	}

	return records, total, nil
}

// latestInterviews returns the most recently scheduled interview per application.
func (s *Store) latestInterviews(ctx context.Context, applicationIDs []string) (map[string]models.InterviewSchedule, error) {
	out := make(map[string]models.InterviewSchedule, len(applicationIDs))
	if len(applicationIDs) == 0 {
		return out, nil
	}

	query := `
		SELECT DISTINCT ON (job_application_id) *
		FROM interview_schedules
		WHERE job_application_id = ANY(?)
		ORDER BY job_application_id, scheduled_at DESC
	`

	var interviews []models.InterviewSchedule
	_, err := s.sess.
		SelectBySql(query, pq.Array(applicationIDs)).
		LoadContext(ctx, &interviews)
	if err != nil {
		s.logger.Error("failed to load latest interviews",
			zap.Int("applications", len(applicationIDs)),
			zap.Error(err),
		)
		return nil, fmt.Errorf("latest interviews: %w", err)
	}

	for _, iv := range interviews {
		out[iv.JobApplicationID] = iv
	}
	return out, nil
}

func withJoins(stmt *dbr.SelectStmt) *dbr.SelectStmt {
	return stmt.
		From(dbr.I("job_applications").As("a")).
		Join(dbr.I("job_postings").As("jp"), "jp.id = a.job_posting_id").
		Join(dbr.I("users").As("u"), "u.id = a.candidate_id").
		LeftJoin(dbr.I("cities").As("c"), "c.id = u.city_id").
		LeftJoin(dbr.I("provinces").As("p"), "p.id = u.province_id")
}

// filterCondition renders the filter as one condition, nil when it has none.
func filterCondition(f applicants.Filter) dbr.Builder {
	var conds []dbr.Builder

	if f.CompanyID != "" {
		conds = append(conds, dbr.Eq("jp.company_id", f.CompanyID))
	}
	if f.JobPostingID != "" {
		conds = append(conds, dbr.Eq("a.job_posting_id", f.JobPostingID))
	}

	if f.NameOrEmail != "" {
		pattern := likePattern(f.NameOrEmail)
		conds = append(conds, dbr.Or(
			dbr.Expr(nameExpr+" LIKE ?", pattern),
			dbr.Expr("LOWER(u.email) LIKE ?", pattern),
		))
	}
	if f.Location != "" {
		pattern := likePattern(f.Location)
		conds = append(conds, dbr.Or(
			dbr.Expr(locationExpr+" LIKE ?", pattern),
			dbr.Expr("LOWER(COALESCE(u.current_address, '')) LIKE ?", pattern),
		))
	}

	// comparisons against NULL are never true, so unknown birth dates,
	// salaries and scores drop out whenever a bound is set
	if f.BornBefore != nil {
		conds = append(conds, dbr.Lt("u.date_of_birth", *f.BornBefore))
	}
	if f.BornOnOrAfter != nil {
		conds = append(conds, dbr.Gte("u.date_of_birth", *f.BornOnOrAfter))
	}
	if f.SalaryMin != nil {
		conds = append(conds, dbr.Gte("a.expected_salary", *f.SalaryMin))
	}
	if f.SalaryMax != nil {
		conds = append(conds, dbr.Lte("a.expected_salary", *f.SalaryMax))
	}
	if f.TestScoreMin != nil {
		conds = append(conds, dbr.Gte("a.test_score", *f.TestScoreMin))
	}
	if f.TestScoreMax != nil {
		conds = append(conds, dbr.Lte("a.test_score", *f.TestScoreMax))
	}

	if f.Education != "" {
		conds = append(conds, dbr.Eq("u.education", string(f.Education)))
	}
	if f.Status != "" {
		conds = append(conds, dbr.Eq("a.status", string(f.Status)))
	}

	if f.HasCV != nil {
		conds = append(conds, presence("a.cv_url", *f.HasCV))
	}
	if f.HasCoverLetter != nil {
		conds = append(conds, presence("a.cover_letter", *f.HasCoverLetter))
	}

	if f.CreatedFrom != nil {
		conds = append(conds, dbr.Gte("a.created_at", *f.CreatedFrom))
	}
	if f.CreatedBefore != nil {
		conds = append(conds, dbr.Lt("a.created_at", *f.CreatedBefore))
	}

	if len(conds) == 0 {
		return nil
	}
	return dbr.And(conds...)
}

func presence(column string, want bool) dbr.Builder {
	if want {
		return dbr.Expr("(" + column + " IS NOT NULL AND BTRIM(" + column + ") <> '')")
	}
	return dbr.Expr("(" + column + " IS NULL OR BTRIM(" + column + ") = '')")
}

// orderClauses mirrors applicants.ApplySort: salary and age NULLs last in
// both directions, test score NULLs treated as highest.
func orderClauses(s applicants.Sort) []string {
	dir := "ASC"
	if s.Desc() {
		dir = "DESC"
	}

	var primary string
	switch s.Key {
	case applicants.SortByName:
		primary = nameExpr + " " + dir
	case applicants.SortBySalary:
		primary = "a.expected_salary " + dir + " NULLS LAST"
	case applicants.SortByTestScore:
		if s.Desc() {
			primary = "a.test_score DESC NULLS FIRST"
		} else {
			primary = "a.test_score ASC NULLS LAST"
		}
	case applicants.SortByAge:
		// a later birth date is a younger applicant
		if s.Desc() {
			primary = "u.date_of_birth ASC NULLS LAST"
		} else {
			primary = "u.date_of_birth DESC NULLS LAST"
		}
	default:
		return []string{"a.created_at " + dir, "a.id ASC"}
	}

	return []string{primary, "a.created_at ASC", "a.id ASC"}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func likePattern(s string) string {
	return "%" + likeEscaper.Replace(s) + "%"
}
