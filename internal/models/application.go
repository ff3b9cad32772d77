package models

import "time"

type Application struct {
	ID              string            `db:"id"`
	JobPostingID    string            `db:"job_posting_id"`
	CandidateID     string            `db:"candidate_id"`
	Status          ApplicationStatus `db:"status"`
	ExpectedSalary  *float64          `db:"expected_salary"`
	CoverLetter     *string           `db:"cover_letter"`
	CVURL           *string           `db:"cv_url"`
	TestScore       *float64          `db:"test_score"`
	TestCompletedAt *time.Time        `db:"test_completed_at"`
	RejectionReason *string           `db:"rejection_reason"`
	AdminNotes      *string           `db:"admin_notes"`
	ReviewedBy      *string           `db:"reviewed_by"`
	ReviewedAt      *time.Time        `db:"reviewed_at"`
	CreatedAt       time.Time         `db:"created_at"`
	UpdatedAt       time.Time         `db:"updated_at"`
}

// Applicant is the read view over a candidate user consumed by filtering.
type Applicant struct {
	ID             string     `db:"id"`
	FirstName      *string    `db:"first_name"`
	LastName       *string    `db:"last_name"`
	Email          string     `db:"email"`
	ProfileImage   *string    `db:"profile_image"`
	DateOfBirth    *time.Time `db:"date_of_birth"`
	Education      *Education `db:"education"`
	PhoneNumber    *string    `db:"phone_number"`
	CurrentAddress *string    `db:"current_address"`
	CityName       *string    `db:"city_name"`
	ProvinceName   *string    `db:"province_name"`
}

// ApplicationRecord is one listed application with everything the
// response needs joined in.
type ApplicationRecord struct {
	Application
	Applicant       Applicant
	JobPosting      JobPostingSummary
	LatestInterview *InterviewSchedule
}

// ApplicationSubject is the slice of an application a status transition
// reads before writing.
type ApplicationSubject struct {
	ID           string            `db:"id"`
	Status       ApplicationStatus `db:"status"`
	JobPostingID string            `db:"job_posting_id"`
	CandidateID  string            `db:"candidate_id"`
	JobTitle     string            `db:"job_title"`
	CompanyID    string            `db:"company_id"`
}
