package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/justsurfingit/nexskill/internal/services"
)

type AnalysisHandler struct {
	Analysis *services.ResumeAnalysisService
}

func NewAnalysisHandler(analysis *services.ResumeAnalysisService) *AnalysisHandler {
	return &AnalysisHandler{Analysis: analysis}
}

// AnalyzeResume is POST /api/analyze-resume with the document in the
// multipart field "file".
func (h *AnalysisHandler) AnalyzeResume(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.Analysis.Resumes.MaxBytes()+formOverhead)

	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
		respondError(c, apperr.Validation("Resume file is required"))
		return
	}
	if err != nil {
		respondError(c, bindError(err))
		return
	}

	analysis, err := h.Analysis.Analyze(c.Request.Context(), fh)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, analysis)
}
