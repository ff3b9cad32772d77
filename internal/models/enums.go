package models

import "strings"

type ApplicationStatus string

const (
	StatusPending            ApplicationStatus = "PENDING"
	StatusReviewed           ApplicationStatus = "REVIEWED"
	StatusInterviewScheduled ApplicationStatus = "INTERVIEW_SCHEDULED"
	StatusInterviewCompleted ApplicationStatus = "INTERVIEW_COMPLETED"
	StatusAccepted           ApplicationStatus = "ACCEPTED"
	StatusRejected           ApplicationStatus = "REJECTED"
	StatusWithdrawn          ApplicationStatus = "WITHDRAWN"
)

type Education string

const (
	EducationHighSchool Education = "HIGH_SCHOOL"
	EducationDiploma    Education = "DIPLOMA"
	EducationBachelor   Education = "BACHELOR"
	EducationMaster     Education = "MASTER"
	EducationDoctorate  Education = "DOCTORATE"
	EducationVocational Education = "VOCATIONAL"
	EducationOther      Education = "OTHER"
)

type InterviewType string

const (
	InterviewOnline   InterviewType = "ONLINE"
	InterviewPhone    InterviewType = "PHONE"
	InterviewInPerson InterviewType = "IN_PERSON"
)

type InterviewStatus string

const (
	InterviewScheduled   InterviewStatus = "SCHEDULED"
	InterviewCompleted   InterviewStatus = "COMPLETED"
	InterviewCancelled   InterviewStatus = "CANCELLED"
	InterviewRescheduled InterviewStatus = "RESCHEDULED"
)

type UserRole string

const (
	RoleUser         UserRole = "USER"
	RoleCompanyAdmin UserRole = "COMPANY_ADMIN"
	RoleAdmin        UserRole = "ADMIN"
	RoleDeveloper    UserRole = "DEVELOPER"
)

type NotificationType string

const (
	NotificationApplicationStatusUpdate NotificationType = "APPLICATION_STATUS_UPDATE"
)

var StatusDisplayNames = map[ApplicationStatus]string{
	StatusPending:            "Pending",
	StatusReviewed:           "Reviewed",
	StatusInterviewScheduled: "Interview scheduled",
	StatusInterviewCompleted: "Interview completed",
	StatusAccepted:           "Accepted",
	StatusRejected:           "Rejected",
	StatusWithdrawn:          "Withdrawn",
}

var EducationDisplayNames = map[Education]string{
	EducationHighSchool: "High school",
	EducationDiploma:    "Diploma",
	EducationBachelor:   "Bachelor's degree",
	EducationMaster:     "Master's degree",
	EducationDoctorate:  "Doctorate",
	EducationVocational: "Vocational",
	EducationOther:      "Other",
}

var InterviewTypeDisplayNames = map[InterviewType]string{
	InterviewOnline:   "Online",
	InterviewPhone:    "Phone",
	InterviewInPerson: "In person",
}

// ApplicationStatuses lists statuses in pipeline order.
func ApplicationStatuses() []ApplicationStatus {
	return []ApplicationStatus{
		StatusPending,
		StatusReviewed,
		StatusInterviewScheduled,
		StatusInterviewCompleted,
		StatusAccepted,
		StatusRejected,
		StatusWithdrawn,
	}
}

func (s ApplicationStatus) IsValid() bool {
	_, ok := StatusDisplayNames[s]
	return ok
}

func (s ApplicationStatus) IsTerminal() bool {
	return s == StatusAccepted || s == StatusRejected || s == StatusWithdrawn
}

// Human renders the status the way notification text uses it: "interview scheduled".
func (s ApplicationStatus) Human() string {
	return strings.ReplaceAll(strings.ToLower(string(s)), "_", " ")
}

func (e Education) IsValid() bool {
	_, ok := EducationDisplayNames[e]
	return ok
}

func (t InterviewType) IsValid() bool {
	_, ok := InterviewTypeDisplayNames[t]
	return ok
}

func (r UserRole) IsValid() bool {
	switch r {
	case RoleUser, RoleCompanyAdmin, RoleAdmin, RoleDeveloper:
		return true
	}
	return false
}

func GetStatusDisplayName(s ApplicationStatus) string {
	if name, ok := StatusDisplayNames[s]; ok {
		return name
	}
	return string(s)
}

func GetEducationDisplayName(e Education) string {
	if name, ok := EducationDisplayNames[e]; ok {
		return name
	}
	return string(e)
}
