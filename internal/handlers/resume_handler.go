package handlers

import (
	"mime"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/justsurfingit/nexskill/internal/storage"
	"github.com/rs/zerolog/log"
)

type ResumeHandler struct {
	Resumes *storage.ResumeStore
}

func NewResumeHandler(resumes *storage.ResumeStore) *ResumeHandler {
	return &ResumeHandler{Resumes: resumes}
}

// Download is GET /api/resume/*filename. The route is a catch-all so that
// names with encoded separators reach the traversal check instead of 404ing.
func (h *ResumeHandler) Download(c *gin.Context) {
	requested := strings.TrimPrefix(c.Param("filename"), "/")

	f, name, err := h.Resumes.Open(requested)
	if err != nil {
		if apperr.Is(err, apperr.KindValidation) {
			log.Warn().Str("requested", requested).Str("ip", c.ClientIP()).Msg("resume request rejected")
		}
		respondError(c, err)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		respondError(c, apperr.Internal("Failed to download resume", err))
		return
	}

	c.DataFromReader(http.StatusOK, info.Size(), "application/octet-stream", f, map[string]string{
		"Content-Disposition": mime.FormatMediaType("attachment", map[string]string{"filename": string(name)}),
	})
}
