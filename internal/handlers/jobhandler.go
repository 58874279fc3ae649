package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/justsurfingit/nexskill/internal/auth"
	"github.com/justsurfingit/nexskill/internal/dtos"
	"github.com/justsurfingit/nexskill/internal/services"
)

type JobHandler struct {
	Jobs *services.JobService
	// Extraction is nil when no LLM key is configured.
	Extraction *services.ExtractionService
	Callers    Callers
}

func NewJobHandler(jobs *services.JobService, extraction *services.ExtractionService, callers Callers) *JobHandler {
	return &JobHandler{
		Jobs:       jobs,
		Extraction: extraction,
		Callers:    callers,
	}
}

// CreateJob is POST /api/jobs
func (h *JobHandler) CreateJob(c *gin.Context) {
	var req dtos.JobCreationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	email, err := h.Callers.Resolve(c, auth.KindRecruiter, req.RecruiterEmail)
	if err != nil {
		respondError(c, err)
		return
	}
	req.RecruiterEmail = email

	job, err := h.Jobs.CreateJob(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dtos.JobCreationResponse{
		Message: "Job posted successfully",
		JobID:   job.ID.String(),
		Job:     job,
	})
}

// ListJobs is GET /api/jobs
func (h *JobHandler) ListJobs(c *gin.Context) {
	var filter dtos.JobFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		respondError(c, bindError(err))
		return
	}
	jobs, err := h.Jobs.ListJobs(c.Request.Context(), filter)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

// ListRecruiterJobs is GET /api/recruiter/:id/jobs
func (h *JobHandler) ListRecruiterJobs(c *gin.Context) {
	jobs, err := h.Jobs.ListJobsByRecruiter(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, jobs)
}

func (h *JobHandler) GetJob(c *gin.Context) {
	job, err := h.Jobs.GetJob(c.Request.Context(), c.Param("jobId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, job)
}

// UpdateJob is PATCH /api/jobs/:jobId
func (h *JobHandler) UpdateJob(c *gin.Context) {
	var req dtos.JobUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	owner, err := h.Callers.Resolve(c, auth.KindRecruiter, req.RecruiterEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	job, err := h.Jobs.UpdateJob(c.Request.Context(), c.Param("jobId"), &req, owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job updated", "job": job})
}

// SetJobStatus is PATCH /api/jobs/:jobId/status
func (h *JobHandler) SetJobStatus(c *gin.Context) {
	var req dtos.JobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	owner, err := h.Callers.Resolve(c, auth.KindRecruiter, req.RecruiterEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	job, err := h.Jobs.SetJobStatus(c.Request.Context(), c.Param("jobId"), req.Status, owner)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job status updated successfully", "job": job})
}

// DeleteJob is DELETE /api/jobs/:jobId. The owner may come in the JSON
// body or the query string.
func (h *JobHandler) DeleteJob(c *gin.Context) {
	var req dtos.OwnerRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	// Chunked bodies have no length, so check for the body itself.
	if c.Request.Body != nil && c.Request.Body != http.NoBody {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			respondError(c, bindError(err))
			return
		}
	}
	owner, err := h.Callers.Resolve(c, auth.KindRecruiter, req.RecruiterEmail)
	if err != nil {
		respondError(c, err)
		return
	}

	if err := h.Jobs.DeleteJob(c.Request.Context(), c.Param("jobId"), owner); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Job deleted successfully"})
}

// ExtractJob is POST /api/jobs/extract
func (h *JobHandler) ExtractJob(c *gin.Context) {
	if h.Extraction == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Job extraction is not configured"})
		return
	}
	var req dtos.JobExtractionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, apperr.Validation("Missing required fields: rawHtml"))
		return
	}

	draft, err := h.Extraction.ExtractJob(c.Request.Context(), req.RawHTML, req.URL)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": draft})
}
