package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/justsurfingit/nexskill/internal/auth"
	"github.com/justsurfingit/nexskill/internal/dtos"
	"github.com/justsurfingit/nexskill/internal/services"
)

type AccountHandler struct {
	Accounts *services.AccountService
}

func NewAccountHandler(accounts *services.AccountService) *AccountHandler {
	return &AccountHandler{Accounts: accounts}
}

// RegisterJobSeeker is POST /api/register-jobseeker
func (h *AccountHandler) RegisterJobSeeker(c *gin.Context) {
	var req dtos.RegisterJobSeekerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	if err := h.Accounts.RegisterJobSeeker(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Job seeker registered successfully"})
}

// LoginJobSeeker is POST /api/login-jobseeker
func (h *AccountHandler) LoginJobSeeker(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	user, token, err := h.Accounts.LoginJobSeeker(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "user": user, "token": token})
}

// UpsertJobSeekerProfile is PUT /api/jobseeker/profile
func (h *AccountHandler) UpsertJobSeekerProfile(c *gin.Context) {
	var req dtos.JobSeekerProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	email, err := matchSession(c, auth.KindJobSeeker, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	req.Email = email

	user, err := h.Accounts.UpsertJobSeekerProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile saved", "user": user})
}

// RegisterRecruiter is POST /api/register-recruiter
func (h *AccountHandler) RegisterRecruiter(c *gin.Context) {
	var req dtos.RegisterRecruiterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	if err := h.Accounts.RegisterRecruiter(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Recruiter registered successfully"})
}

// LoginRecruiter is POST /api/login-recruiter
func (h *AccountHandler) LoginRecruiter(c *gin.Context) {
	var req dtos.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	recruiter, token, err := h.Accounts.LoginRecruiter(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Login successful", "recruiter": recruiter, "token": token})
}

// UpdateRecruiterProfile is PUT /api/recruiter/profile
func (h *AccountHandler) UpdateRecruiterProfile(c *gin.Context) {
	var req dtos.RecruiterProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, bindError(err))
		return
	}
	email, err := matchSession(c, auth.KindRecruiter, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}
	req.Email = email

	recruiter, err := h.Accounts.UpdateRecruiterProfile(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile saved", "recruiter": recruiter})
}

func (h *AccountHandler) GetRecruiter(c *gin.Context) {
	recruiter, err := h.Accounts.GetRecruiter(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recruiter)
}

func (h *AccountHandler) GetRecruiterByEmail(c *gin.Context) {
	recruiter, err := h.Accounts.GetRecruiterByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, recruiter)
}

func (h *AccountHandler) GetJobSeeker(c *gin.Context) {
	user, err := h.Accounts.GetJobSeeker(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *AccountHandler) GetJobSeekerByEmail(c *gin.Context) {
	user, err := h.Accounts.GetJobSeekerByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, user)
}
