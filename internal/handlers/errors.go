package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/rs/zerolog/log"
)

// respondError writes err as {"error": msg} plus any extra fields.
// Internal causes are logged, never sent.
func respondError(c *gin.Context, err error) {
	e := apperr.As(err)
	if e.Kind == apperr.KindInternal {
		log.Error().Err(e.Err).Str("path", c.FullPath()).Msg(e.Message)
		_ = c.Error(err)
	}

	body := gin.H{"error": e.Message}
	for k, v := range e.Fields {
		body[k] = v
	}
	c.AbortWithStatusJSON(apperr.Status(e.Kind), body)
}

// bindError classifies a request decoding failure.
func bindError(err error) error {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		return apperr.Validation("Request too large")
	}
	return apperr.Validation("Invalid request body: " + err.Error())
}
