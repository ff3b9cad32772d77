package api

import (
	"net/http"
	"strings"
	"time"

	"jobboard/internal/api/middleware"
	"jobboard/internal/api/response"
	"jobboard/internal/apperr"
	"jobboard/internal/models"
	"jobboard/internal/pipeline"

	"github.com/gin-gonic/gin"
)

type statusRequest struct {
	ApplicationID     string            `json:"applicationId"`
	Status            string            `json:"status" binding:"required"`
	RejectionReason   *string           `json:"rejectionReason" binding:"omitempty,max=2000"`
	AdminNotes        *string           `json:"adminNotes" binding:"omitempty,max=5000"`
	ScheduleInterview *interviewRequest `json:"scheduleInterview"`
}

type interviewRequest struct {
	ScheduledAt   string  `json:"scheduledAt"`
	Duration      *int    `json:"duration"`
	InterviewType string  `json:"interviewType"`
	Location      *string `json:"location" binding:"omitempty,max=500"`
	Notes         *string `json:"notes" binding:"omitempty,max=2000"`
}

type applicationView struct {
	ID              string                   `json:"id"`
	JobPostingID    string                   `json:"jobPostingId"`
	CandidateID     string                   `json:"candidateId"`
	Status          models.ApplicationStatus `json:"status"`
	RejectionReason *string                  `json:"rejectionReason"`
	AdminNotes      *string                  `json:"adminNotes"`
	ReviewedBy      *string                  `json:"reviewedBy"`
	ReviewedAt      *time.Time               `json:"reviewedAt"`
	CreatedAt       time.Time                `json:"createdAt"`
	UpdatedAt       time.Time                `json:"updatedAt"`
}

type interviewView struct {
	ID            string                 `json:"id"`
	ScheduledAt   time.Time              `json:"scheduledAt"`
	Duration      int                    `json:"duration"`
	InterviewType models.InterviewType   `json:"interviewType"`
	Location      *string                `json:"location"`
	Notes         *string                `json:"notes"`
	Status        models.InterviewStatus `json:"status"`
}

type notificationView struct {
	ID        string                  `json:"id"`
	Type      models.NotificationType `json:"type"`
	Message   string                  `json:"message"`
	Link      string                  `json:"link"`
	CreatedAt time.Time               `json:"createdAt"`
}

type statusResponse struct {
	Message        string                   `json:"message"`
	PreviousStatus models.ApplicationStatus `json:"previousStatus"`
	Application    applicationView          `json:"application"`
	Interview      *interviewView           `json:"interview,omitempty"`
	Notification   notificationView         `json:"notification"`
}

// PUT /api/v1/companies/:companyId/applicants
func (h *Handler) updateApplicationStatus(c *gin.Context) {
	var req statusRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	if strings.TrimSpace(req.ApplicationID) == "" {
		var errs apperr.FieldErrors
		errs.Add("applicationId", "is required")
		response.Error(c, errs.Err("api.updateApplicationStatus"))
		return
	}

	h.transition(c, req.ApplicationID, req)
}

// PATCH /api/v1/companies/:companyId/applications/:applicationId/status
func (h *Handler) patchApplicationStatus(c *gin.Context) {
	var req statusRequest
	if err := bindJSON(c, &req); err != nil {
		response.Error(c, err)
		return
	}

	h.transition(c, c.Param("applicationId"), req)
}

func (h *Handler) transition(c *gin.Context, applicationID string, req statusRequest) {
	ctx := c.Request.Context()

	if err := h.authz.Application(ctx, c.Param("companyId"), applicationID); err != nil {
		response.Error(c, err)
		return
	}

	in := pipeline.Request{
		ApplicationID:   applicationID,
		Status:          strings.ToUpper(req.Status),
		RejectionReason: req.RejectionReason,
		AdminNotes:      req.AdminNotes,
		ActorID:         middleware.ActorID(c),
	}
	if iv := req.ScheduleInterview; iv != nil {
		in.Interview = &pipeline.InterviewRequest{
			ScheduledAt:   iv.ScheduledAt,
			Duration:      iv.Duration,
			InterviewType: iv.InterviewType,
			Location:      iv.Location,
			Notes:         iv.Notes,
		}
	}

	result, err := h.transitioner.Transition(ctx, in)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, newStatusResponse(result))
}

func newStatusResponse(r *pipeline.Result) statusResponse {
	app := r.Application
	resp := statusResponse{
		Message:        "Application status updated successfully",
		PreviousStatus: r.Previous,
		Application: applicationView{
			ID:              app.ID,
			JobPostingID:    app.JobPostingID,
			CandidateID:     app.CandidateID,
			Status:          app.Status,
			RejectionReason: app.RejectionReason,
			AdminNotes:      app.AdminNotes,
			ReviewedBy:      app.ReviewedBy,
			ReviewedAt:      app.ReviewedAt,
			CreatedAt:       app.CreatedAt,
			UpdatedAt:       app.UpdatedAt,
		},
		Notification: notificationView{
			ID:        r.Notification.ID,
			Type:      r.Notification.Type,
			Message:   r.Notification.Message,
			Link:      r.Notification.Link,
			CreatedAt: r.Notification.CreatedAt,
		},
	}
	if iv := r.Interview; iv != nil {
		resp.Interview = &interviewView{
			ID:            iv.ID,
			ScheduledAt:   iv.ScheduledAt,
			Duration:      iv.Duration,
			InterviewType: iv.InterviewType,
			Location:      iv.Location,
			Notes:         iv.Notes,
			Status:        iv.Status,
		}
	}
	return resp
}
