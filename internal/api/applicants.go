package api

import (
	"net/http"

	"jobboard/internal/api/middleware"
	"jobboard/internal/api/response"
	"jobboard/internal/applicants"

	"github.com/gin-gonic/gin"
)

// requireCompany stops the chain unless the actor administers :companyId.
func (h *Handler) requireCompany(c *gin.Context) {
	if err := h.authz.Company(c.Request.Context(), c.Param("companyId"), middleware.ActorID(c)); err != nil {
		response.Error(c, err)
		return
	}
	c.Next()
}

// GET /api/v1/companies/:companyId/applicants
func (h *Handler) listCompanyApplicants(c *gin.Context) {
	h.list(c, applicants.Scope{CompanyID: c.Param("companyId")})
}

// GET /api/v1/companies/:companyId/jobs/:jobId/applicants
func (h *Handler) listJobApplicants(c *gin.Context) {
	companyID := c.Param("companyId")
	jobID := c.Param("jobId")

	if err := h.authz.JobPosting(c.Request.Context(), companyID, jobID); err != nil {
		response.Error(c, err)
		return
	}

	h.list(c, applicants.Scope{CompanyID: companyID, JobPostingID: jobID})
}

func (h *Handler) list(c *gin.Context, scope applicants.Scope) {
	criteria, err := applicants.ParseCriteria(c.Request.URL.Query(), h.limits)
	if err != nil {
		response.Error(c, err)
		return
	}

	result, err := h.lister.List(c.Request.Context(), scope, criteria)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
