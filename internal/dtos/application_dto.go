package dtos

import (
	"github.com/justsurfingit/nexskill/internal/models"
)

// ApplyRequest arrives as multipart form data (with an optional resume
// file) or as plain JSON.
type ApplyRequest struct {
	JobID          string `json:"jobId" form:"jobId"`
	SeekerEmail    string `json:"seekerEmail" form:"seekerEmail"`
	RecruiterEmail string `json:"recruiterEmail" form:"recruiterEmail"`
	WhyHire        string `json:"whyHire" form:"whyHire"`
	CareerImpact   string `json:"careerImpact" form:"careerImpact"`
	KeySkills      string `json:"keySkills" form:"keySkills"`
	ProudProject   string `json:"proudProject" form:"proudProject"`
}

type ApplicationFilter struct {
	SeekerEmail    string `form:"seekerEmail"`
	RecruiterEmail string `form:"recruiterEmail"`
	JobID          string `form:"jobId"`
	Status         string `form:"status"`
}

type ApplicationStatusRequest struct {
	Status         models.ApplicationStatus `json:"status"`
	RecruiterEmail string                   `json:"recruiterEmail"`
}

type CheckApplicationResponse struct {
	HasApplied  bool                `json:"hasApplied"`
	Application *models.Application `json:"application"`
}
