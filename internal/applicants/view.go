package applicants

import (
	"time"

	"jobboard/internal/models"
)

type ApplicationView struct {
	ID              string                   `json:"id"`
	Status          models.ApplicationStatus `json:"status"`
	ExpectedSalary  *float64                 `json:"expectedSalary"`
	CoverLetter     *string                  `json:"coverLetter"`
	CVURL           *string                  `json:"cvUrl"`
	TestScore       *float64                 `json:"testScore"`
	TestCompletedAt *time.Time               `json:"testCompletedAt"`
	RejectionReason *string                  `json:"rejectionReason"`
	AdminNotes      *string                  `json:"adminNotes"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
	ReviewedAt      *time.Time               `json:"reviewedAt"`
	JobPosting      JobPostingView           `json:"jobPosting"`
	LatestInterview *InterviewView           `json:"latestInterview"`
	Applicant       ApplicantView            `json:"applicant"`
}

type JobPostingView struct {
	ID        string   `json:"id"`
	Title     string   `json:"title"`
	SalaryMin *float64 `json:"salaryMin"`
	SalaryMax *float64 `json:"salaryMax"`
}

type InterviewView struct {
	ID            string                 `json:"id"`
	ScheduledAt   time.Time              `json:"scheduledAt"`
	Status        models.InterviewStatus `json:"status"`
	InterviewType models.InterviewType   `json:"interviewType"`
}

type ApplicantView struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	FirstName      *string           `json:"firstName"`
	LastName       *string           `json:"lastName"`
	Email          string            `json:"email"`
	ProfileImage   *string           `json:"profileImage"`
	Age            *int              `json:"age"`
	Education      *models.Education `json:"education"`
	EducationLabel string            `json:"educationLabel,omitempty"`
	PhoneNumber    *string           `json:"phoneNumber"`
	Location       string            `json:"location"`
	CurrentAddress *string           `json:"currentAddress"`
	HasCV          bool              `json:"hasCv"`
}

type ListResult struct {
	Applications   []ApplicationView `json:"applications"`
	Pagination     Pagination        `json:"pagination"`
	AppliedFilters map[string]any    `json:"appliedFilters"`
}

// NewApplicationView shapes a record for the response, deriving age and
// location as of now.
func NewApplicationView(r models.ApplicationRecord, now time.Time) ApplicationView {
	v := ApplicationView{
		ID:              r.ID,
		Status:          r.Status,
		ExpectedSalary:  r.ExpectedSalary,
		CoverLetter:     r.CoverLetter,
		CVURL:           r.CVURL,
		TestScore:       r.TestScore,
		TestCompletedAt: r.TestCompletedAt,
		RejectionReason: r.RejectionReason,
		AdminNotes:      r.AdminNotes,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
		ReviewedAt:      r.ReviewedAt,
		JobPosting: JobPostingView{
			ID:        r.JobPosting.ID,
			Title:     r.JobPosting.Title,
			SalaryMin: r.JobPosting.SalaryMin,
			SalaryMax: r.JobPosting.SalaryMax,
		},
		Applicant: ApplicantView{
			ID:             r.Applicant.ID,
			Name:           FullName(r.Applicant.FirstName, r.Applicant.LastName),
			FirstName:      r.Applicant.FirstName,
			LastName:       r.Applicant.LastName,
			Email:          r.Applicant.Email,
			ProfileImage:   r.Applicant.ProfileImage,
			Education:      r.Applicant.Education,
			PhoneNumber:    r.Applicant.PhoneNumber,
			Location:       ComposeLocation(r.Applicant.CityName, r.Applicant.ProvinceName),
			CurrentAddress: r.Applicant.CurrentAddress,
			HasCV:          present(r.CVURL),
		},
	}

	if r.Applicant.DateOfBirth != nil {
		age := Age(*r.Applicant.DateOfBirth, now)
		v.Applicant.Age = &age
	}
	if r.Applicant.Education != nil {
		v.Applicant.EducationLabel = models.GetEducationDisplayName(*r.Applicant.Education)
	}
	if iv := r.LatestInterview; iv != nil {
		v.LatestInterview = &InterviewView{
			ID:            iv.ID,
			ScheduledAt:   iv.ScheduledAt,
			Status:        iv.Status,
			InterviewType: iv.InterviewType,
		}
	}

	return v
}
