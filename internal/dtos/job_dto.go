package dtos

import (
	"strings"
	"time"

	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/justsurfingit/nexskill/internal/models"
)

type JobCreationRequest struct {
	Title          string `json:"title" validate:"required"`
	EmploymentType string `json:"employmentType" validate:"required"`
	Location       string `json:"location" validate:"required"`
	Company        string `json:"company" validate:"required"`
	Description    string `json:"description" validate:"required"`
	RecruiterEmail string `json:"recruiterEmail" validate:"required"`

	// Optional Fields
	ExperienceRequired    string    `json:"experienceRequired"`
	ApplicationDeadline   string    `json:"applicationDeadline"`
	RequiredSkills        SkillList `json:"requiredSkills"`
	RequiredQualification string    `json:"requiredQualification"`
	ContactInformation    string    `json:"contactInformation"`
}

// JobUpdateRequest patches a job. Ownership fields are not patchable.
type JobUpdateRequest struct {
	RecruiterEmail string `json:"recruiterEmail"`

	Title                 Optional[string]           `json:"title"`
	EmploymentType        Optional[string]           `json:"employmentType"`
	Location              Optional[string]           `json:"location"`
	ExperienceRequired    Optional[string]           `json:"experienceRequired"`
	Company               Optional[string]           `json:"company"`
	ApplicationDeadline   Optional[string]           `json:"applicationDeadline"`
	Description           Optional[string]           `json:"description"`
	RequiredSkills        Optional[SkillList]        `json:"requiredSkills"`
	RequiredQualification Optional[string]           `json:"requiredQualification"`
	ContactInformation    Optional[string]           `json:"contactInformation"`
	Status                Optional[models.JobStatus] `json:"status"`
}

// ApplyTo writes the supplied fields into job. Required columns may not be
// cleared and deadlines must parse.
func (r *JobUpdateRequest) ApplyTo(job *models.Job) error {
	for _, f := range []struct {
		name string
		opt  Optional[string]
	}{
		{"title", r.Title}, {"employmentType", r.EmploymentType}, {"location", r.Location},
		{"company", r.Company}, {"description", r.Description},
	} {
		if f.opt.Set && (f.opt.Null || strings.TrimSpace(f.opt.Value) == "") {
			return apperr.Validation(f.name + " cannot be empty")
		}
	}
	if r.Status.Set && !r.Status.Value.Valid() {
		return apperr.Validation("Invalid job status")
	}

	if r.ApplicationDeadline.Set {
		deadline, err := ParseDeadline(r.ApplicationDeadline.Value)
		if err != nil {
			return err
		}
		job.ApplicationDeadline = deadline
	}

	r.Title.ApplyTo(&job.Title)
	r.EmploymentType.ApplyTo(&job.EmploymentType)
	r.Location.ApplyTo(&job.Location)
	r.ExperienceRequired.ApplyTo(&job.ExperienceRequired)
	r.Company.ApplyTo(&job.Company)
	r.Description.ApplyTo(&job.Description)
	r.RequiredQualification.ApplyTo(&job.RequiredQualification)
	r.ContactInformation.ApplyTo(&job.ContactInformation)
	r.Status.ApplyTo(&job.Status)
	if r.RequiredSkills.Set {
		job.RequiredSkills = r.RequiredSkills.Value.Strings()
	}
	return nil
}

type JobStatusRequest struct {
	Status         models.JobStatus `json:"status"`
	RecruiterEmail string           `json:"recruiterEmail"`
}

// OwnerRequest carries the claimed owner for delete requests.
type OwnerRequest struct {
	RecruiterEmail string `json:"recruiterEmail" form:"recruiterEmail"`
}

type JobFilter struct {
	Status         string `form:"status"`
	Location       string `form:"location"`
	EmploymentType string `form:"employmentType"`
	Company        string `form:"company"`
	Experience     string `form:"experience"`
}

type JobCreationResponse struct {
	Message string      `json:"message"`
	JobID   string      `json:"jobId"`
	Job     *models.Job `json:"job"`
}

type JobExtractionRequest struct {
	RawHTML string `json:"rawHtml" binding:"required"`
	URL     string `json:"url"`
}

// JobDraft is an unsaved job suggested by the extractor, shaped like
// JobCreationRequest so a client can post it back after review.
type JobDraft struct {
	Title                 string   `json:"title"`
	EmploymentType        string   `json:"employmentType"`
	Location              string   `json:"location"`
	ExperienceRequired    string   `json:"experienceRequired"`
	Company               string   `json:"company"`
	Description           string   `json:"description"`
	RequiredSkills        []string `json:"requiredSkills"`
	RequiredQualification string   `json:"requiredQualification"`
	ContactInformation    string   `json:"contactInformation"`
}

var deadlineLayouts = []string{time.RFC3339Nano, "2006-01-02T15:04", "2006-01-02"}

// ParseDeadline parses an application deadline. Empty input means none.
func ParseDeadline(s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range deadlineLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperr.Validation("Invalid application deadline format")
}
