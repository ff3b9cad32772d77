package models

import "time"

type InterviewSchedule struct {
	ID               string          `db:"id"`
	JobApplicationID string          `db:"job_application_id"`
	JobPostingID     string          `db:"job_posting_id"`
	CandidateID      string          `db:"candidate_id"`
	ScheduledAt      time.Time       `db:"scheduled_at"`
	Duration         int             `db:"duration"` // in minutes
	InterviewType    InterviewType   `db:"interview_type"`
	Location         *string         `db:"location"`
	Notes            *string         `db:"notes"`
	Status           InterviewStatus `db:"status"`
	CreatedAt        time.Time       `db:"created_at"`
}

type Notification struct {
	ID        string           `db:"id"`
	UserID    string           `db:"user_id"`
	Type      NotificationType `db:"type"`
	Message   string           `db:"message"`
	Link      string           `db:"link"`
	IsRead    bool             `db:"is_read"`
	CreatedAt time.Time        `db:"created_at"`
}
