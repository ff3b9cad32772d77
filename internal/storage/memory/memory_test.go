package memory_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"jobboard/internal/access"
	"jobboard/internal/applicants"
	"jobboard/internal/apperr"
	"jobboard/internal/models"
	"jobboard/internal/pipeline"
	"jobboard/internal/storage/memory"

	. "github.com/smartystreets/goconvey/convey"
)

var now = time.Date(2025, 1, 5, 8, 0, 0, 0, time.UTC)

func ptr[T any](v T) *T { return &v }

func seed() *memory.Store {
	s := memory.New(nil)

	s.PutCompany(models.Company{ID: "acme", Name: "Acme", AdminID: "admin-1"})
	s.PutCompany(models.Company{ID: "globex", Name: "Globex", AdminID: "admin-2"})
	So(s.PutJobPosting(models.JobPosting{ID: "job-1", CompanyID: "acme", Title: "Backend Engineer"}), ShouldBeNil)
	So(s.PutJobPosting(models.JobPosting{ID: "job-2", CompanyID: "acme", Title: "Data Analyst"}), ShouldBeNil)
	So(s.PutJobPosting(models.JobPosting{ID: "job-9", CompanyID: "globex", Title: "Designer"}), ShouldBeNil)

	s.PutApplicant(models.Applicant{
		ID: "user-a", FirstName: ptr("Ana"), LastName: ptr("Lima"), Email: "ana@example.com",
		DateOfBirth: ptr(time.Date(2000, 3, 1, 0, 0, 0, 0, time.UTC)),
		CityName:    ptr("Bandung"), ProvinceName: ptr("West Java"),
	})
	s.PutApplicant(models.Applicant{ID: "user-b", FirstName: ptr("Budi"), Email: "budi@example.com"})
	s.PutApplicant(models.Applicant{ID: "user-c", FirstName: ptr("Citra"), Email: "citra@example.com"})

	So(s.PutApplication(models.Application{
		ID: "app-a", JobPostingID: "job-1", CandidateID: "user-a", Status: models.StatusPending,
		ExpectedSalary: ptr(12_000_000.0), CreatedAt: now.Add(-3 * time.Hour),
	}), ShouldBeNil)
	So(s.PutApplication(models.Application{
		ID: "app-b", JobPostingID: "job-1", CandidateID: "user-b", Status: models.StatusPending,
		ExpectedSalary: ptr(15_000_000.0), CreatedAt: now.Add(-2 * time.Hour),
	}), ShouldBeNil)
	So(s.PutApplication(models.Application{
		ID: "app-c", JobPostingID: "job-2", CandidateID: "user-c", Status: models.StatusReviewed,
		CreatedAt: now.Add(-1 * time.Hour),
	}), ShouldBeNil)
	So(s.PutApplication(models.Application{
		ID: "app-x", JobPostingID: "job-9", CandidateID: "user-c", Status: models.StatusPending,
		CreatedAt: now.Add(-4 * time.Hour),
	}), ShouldBeNil)

	return s
}

func listIDs(s *memory.Store, scope applicants.Scope, c applicants.Criteria) []string {
	records, _, err := s.ListApplications(context.Background(), applicants.BuildQuery(c, scope, now))
	So(err, ShouldBeNil)
	out := make([]string, 0, len(records))
	for _, r := range records {
		out = append(out, r.ID)
	}
	return out
}

func TestListApplications(t *testing.T) {
	Convey("Given a seeded store", t, func() {
		s := seed()

		Convey("company scope covers every posting of that company only", func() {
			So(listIDs(s, applicants.Scope{CompanyID: "acme"}, applicants.DefaultCriteria()),
				ShouldResemble, []string{"app-a", "app-b", "app-c"})
		})

		Convey("posting scope narrows to one posting", func() {
			So(listIDs(s, applicants.Scope{CompanyID: "acme", JobPostingID: "job-1"}, applicants.DefaultCriteria()),
				ShouldResemble, []string{"app-a", "app-b"})
		})

		Convey("an age range excludes the applicant without a birth date", func() {
			c := applicants.DefaultCriteria()
			c.AgeMin, c.AgeMax = ptr(20), ptr(30)
			So(listIDs(s, applicants.Scope{CompanyID: "acme", JobPostingID: "job-1"}, c),
				ShouldResemble, []string{"app-a"})
		})

		Convey("salary descending keeps the missing salary last", func() {
			c := applicants.DefaultCriteria()
			c.SortBy, c.SortOrder = applicants.SortBySalary, applicants.Desc
			So(listIDs(s, applicants.Scope{CompanyID: "acme"}, c),
				ShouldResemble, []string{"app-b", "app-a", "app-c"})
		})

		Convey("pages report the full total", func() {
			c := applicants.DefaultCriteria()
			c.Limit = 2
			records, total, err := s.ListApplications(context.Background(),
				applicants.BuildQuery(c, applicants.Scope{CompanyID: "acme"}, now))
			So(err, ShouldBeNil)
			So(records, ShouldHaveLength, 2)
			So(total, ShouldEqual, 3)
		})

		Convey("the latest interview is the one scheduled last", func() {
			s.PutInterview(models.InterviewSchedule{ID: "iv-old", JobApplicationID: "app-a", ScheduledAt: now.Add(24 * time.Hour)})
			s.PutInterview(models.InterviewSchedule{ID: "iv-new", JobApplicationID: "app-a", ScheduledAt: now.Add(72 * time.Hour)})
			s.PutInterview(models.InterviewSchedule{ID: "iv-mid", JobApplicationID: "app-a", ScheduledAt: now.Add(48 * time.Hour)})

			records, _, err := s.ListApplications(context.Background(),
				applicants.BuildQuery(applicants.DefaultCriteria(), applicants.Scope{JobPostingID: "job-1"}, now))
			So(err, ShouldBeNil)
			So(records[0].LatestInterview.ID, ShouldEqual, "iv-new")
			So(records[1].LatestInterview, ShouldBeNil)
		})
	})

	Convey("Given references to unknown rows", t, func() {
		s := memory.New(nil)
		So(s.PutJobPosting(models.JobPosting{ID: "job-1", CompanyID: "nobody"}), ShouldNotBeNil)
		So(s.PutApplication(models.Application{ID: "app-1", JobPostingID: "job-1"}), ShouldNotBeNil)
	})
}

func TestOwnership(t *testing.T) {
	Convey("Given an access checker over the store", t, func() {
		s := seed()
		checker := access.NewChecker(s, nil)
		ctx := context.Background()

		So(checker.Company(ctx, "acme", "admin-1"), ShouldBeNil)
		So(errors.Is(checker.Company(ctx, "acme", "admin-2"), apperr.ErrNotFound), ShouldBeTrue)
		So(errors.Is(checker.Company(ctx, "initech", "admin-1"), apperr.ErrNotFound), ShouldBeTrue)

		So(checker.JobPosting(ctx, "acme", "job-2"), ShouldBeNil)
		So(errors.Is(checker.JobPosting(ctx, "acme", "job-9"), apperr.ErrNotFound), ShouldBeTrue)

		So(checker.Application(ctx, "acme", "app-c"), ShouldBeNil)
		So(errors.Is(checker.Application(ctx, "acme", "app-x"), apperr.ErrNotFound), ShouldBeTrue)
		So(errors.Is(checker.Application(ctx, "acme", "missing"), apperr.ErrNotFound), ShouldBeTrue)
	})
}

func TestRunInTx(t *testing.T) {
	Convey("Given a transition engine over the store", t, func() {
		s := seed()
		engine := pipeline.NewEngine(s, pipeline.WithClock(func() time.Time { return now }))
		ctx := context.Background()

		Convey("scheduling an interview writes all three records", func() {
			res, err := engine.Transition(ctx, pipeline.Request{
				ApplicationID: "app-a",
				Status:        string(models.StatusInterviewScheduled),
				ActorID:       "admin-1",
				Interview:     &pipeline.InterviewRequest{ScheduledAt: "2025-01-10T09:00:00Z"},
			})
			So(err, ShouldBeNil)
			So(res.Application.UpdatedAt.Equal(now), ShouldBeTrue)

			app, _ := s.Application("app-a")
			So(app.Status, ShouldEqual, models.StatusInterviewScheduled)

			ivs := s.Interviews("app-a")
			So(ivs, ShouldHaveLength, 1)
			So(ivs[0].Duration, ShouldEqual, 60)
			So(ivs[0].InterviewType, ShouldEqual, models.InterviewOnline)

			ns := s.Notifications("user-a")
			So(ns, ShouldHaveLength, 1)
			So(ns[0].Message, ShouldContainSubstring, `"Backend Engineer"`)
		})

		Convey("a failing step restores the previous state", func() {
			boom := errors.New("boom")
			err := s.RunInTx(ctx, func(ctx context.Context, tx pipeline.Tx) error {
				if _, err := tx.UpdateStatus(ctx, pipeline.StatusUpdate{
					ApplicationID: "app-b", Status: models.StatusRejected, ReviewedAt: now,
				}); err != nil {
					return err
				}
				if err := tx.CreateNotification(ctx, &models.Notification{ID: "n-1", UserID: "user-b"}); err != nil {
					return err
				}
				return boom
			})
			So(err, ShouldEqual, boom)

			app, _ := s.Application("app-b")
			So(app.Status, ShouldEqual, models.StatusPending)
			So(s.Notifications("user-b"), ShouldBeEmpty)
		})
	})
}
