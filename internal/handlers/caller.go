package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/justsurfingit/nexskill/internal/auth"
)

// Callers decides whose email an ownership check runs against.
type Callers struct {
	// RequireToken rejects anonymous callers on guarded routes.
	RequireToken bool
}

// Resolve returns the email a request acts as. A session token wins: a
// claimed email that differs from it is Forbidden. Without a token the
// claimed email (possibly empty) is used as is, unless tokens are required.
func (g Callers) Resolve(c *gin.Context, kind auth.Kind, claimed string) (string, error) {
	p, ok := auth.PrincipalFrom(c)
	if !ok {
		if g.RequireToken {
			return "", apperr.Unauthorized("Authentication required")
		}
		return claimed, nil
	}
	if p.Kind != kind {
		return "", apperr.Forbidden("Session is not valid for this action")
	}
	if claimed != "" && !strings.EqualFold(claimed, p.Email) {
		return "", apperr.Forbidden("Email does not match the signed-in account")
	}
	return p.Email, nil
}

// matchSession applies the token rule only; anonymous callers always pass.
func matchSession(c *gin.Context, kind auth.Kind, claimed string) (string, error) {
	return Callers{}.Resolve(c, kind, claimed)
}
