package handlers

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/nexskill/internal/auth"
	"github.com/justsurfingit/nexskill/internal/dtos"
	"github.com/justsurfingit/nexskill/internal/services"
)

// formOverhead is the room left for text fields next to the resume.
const formOverhead = 1 << 20

type ApplicationHandler struct {
	Applications *services.ApplicationService
	Callers      Callers
}

func NewApplicationHandler(applications *services.ApplicationService, callers Callers) *ApplicationHandler {
	return &ApplicationHandler{Applications: applications, Callers: callers}
}

// Apply is POST /api/apply. It takes multipart form data with an optional
// "resume" file, or plain JSON without one.
func (h *ApplicationHandler) Apply(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Applications.Resumes.MaxBytes()+formOverhead)

	var req dtos.ApplyRequest
	if err := c.ShouldBind(&req); err != nil {
		respondError(c, bindError(err))
		return
	}

	var resume *multipart.FileHeader
	if strings.HasPrefix(c.ContentType(), "multipart/") {
		fh, err := c.FormFile("resume")
		switch {
		case err == nil:
			resume = fh
		case !errors.Is(err, http.ErrMissingFile):
			respondError(c, bindError(err))
			return
		}
	}

	email, err := h.Callers.Resolve(c, auth.KindJobSeeker, req.SeekerEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	req.SeekerEmail = email

	app, err := h.Applications.Apply(c.Request.Context(), &req, resume)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{
		"message":       "Applied to job successfully, recruiter notified.",
		"applicationId": app.ID,
	})
}

// ListApplications is GET /api/applications
func (h *ApplicationHandler) ListApplications(c *gin.Context) {
	var filter dtos.ApplicationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, bindError(err))
		return
	}
	apps, err := h.Applications.ListApplications(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ListRecruiterApplications is GET /api/recruiter/:id/applications, where
// the segment is the recruiter's email, and its alias
// /api/recruiter/email/:email/applications.
func (h *ApplicationHandler) ListRecruiterApplications(c *gin.Context) {
	claimed := c.Param("email")
	if claimed == "" {
		claimed = c.Param("id")
	}
	var filter dtos.ApplicationFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, bindError(err))
		return
	}
	owner, err := h.Callers.Resolve(c, auth.KindRecruiter, claimed)
	if err != nil {
		respondError(c, err)
		return
	}
	filter.RecruiterEmail = owner
	filter.SeekerEmail = ""

	apps, err := h.Applications.ListApplications(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// ListJobApplications is GET /api/jobs/:jobId/applications
func (h *ApplicationHandler) ListJobApplications(c *gin.Context) {
	owner, err := h.Callers.Resolve(c, auth.KindRecruiter, c.Query("recruiterEmail"))
	if err != nil {
		respondError(c, err)
		return
	}
	apps, err := h.Applications.ListApplicationsForJob(c.Request.Context(), c.Param("jobId"), owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, apps)
}

// CheckApplication is GET /api/check-application/:jobId/:seekerEmail
func (h *ApplicationHandler) CheckApplication(c *gin.Context) {
	app, err := h.Applications.CheckApplied(c.Request.Context(), c.Param("jobId"), c.Param("seekerEmail"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, dtos.CheckApplicationResponse{HasApplied: app != nil, Application: app})
}

// UpdateApplicationStatus is PATCH /api/applications/:applicationId/status
func (h *ApplicationHandler) UpdateApplicationStatus(c *gin.Context) {
	var req dtos.ApplicationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	owner, err := h.Callers.Resolve(c, auth.KindRecruiter, req.RecruiterEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	app, err := h.Applications.UpdateApplicationStatus(c.Request.Context(), c.Param("applicationId"), req.Status, owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Application status updated successfully", "application": app})
}
