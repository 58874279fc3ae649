package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/nexskill/internal/storage"
	"gorm.io/datatypes"
)

type JobStatus string

const (
	JobActive JobStatus = "active"
	JobClosed JobStatus = "closed"
	JobDraft  JobStatus = "draft"
)

func (s JobStatus) Valid() bool {
	switch s {
	case JobActive, JobClosed, JobDraft:
		return true
	}
	return false
}

type ApplicationStatus string

const (
	ApplicationPending     ApplicationStatus = "pending"
	ApplicationReviewed    ApplicationStatus = "reviewed"
	ApplicationShortlisted ApplicationStatus = "shortlisted"
	ApplicationRejected    ApplicationStatus = "rejected"
	ApplicationHired       ApplicationStatus = "hired"
)

// ApplicationStatuses lists the valid values in display order.
var ApplicationStatuses = []ApplicationStatus{
	ApplicationPending, ApplicationReviewed, ApplicationShortlisted, ApplicationRejected, ApplicationHired,
}

func (s ApplicationStatus) Valid() bool {
	for _, v := range ApplicationStatuses {
		if s == v {
			return true
		}
	}
	return false
}

// AnonymousSeekerID is stored on every application; seekerEmail is the
// real correlating key.
const AnonymousSeekerID = "anonymous"

type JobSeeker struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Name     string `json:"name"`
	Email    string `gorm:"index" json:"email"`
	WorkExp  string `json:"workExp"`
	Password string `json:"-"`

	Phone     string                      `json:"phone"`
	Location  string                      `json:"location"`
	Education string                      `json:"education"`
	Institute string                      `json:"institute"`
	GradYear  string                      `json:"gradYear"`
	Skills    datatypes.JSONSlice[string] `json:"skills"`
	Portfolio string                      `json:"portfolio"`
	Summary   string                      `json:"summary"`
	AvatarURL string                      `json:"avatarUrl"`
}

type Recruiter struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`

	Name     string `json:"name"`
	Email    string `gorm:"index" json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"-"`
	Company  string `json:"company"`
	Website  string `json:"website"`
	Industry string `json:"industry"`
	Size     string `json:"size"`
}

// RecruiterProfile is the part of a recruiter joined onto job listings.
// Listings load only name and company; the detail view adds the rest.
type RecruiterProfile struct {
	ID       uuid.UUID `json:"id"`
	Name     string    `json:"name"`
	Company  string    `json:"company"`
	Website  string    `json:"website,omitempty"`
	Industry string    `json:"industry,omitempty"`
	Size     string    `json:"size,omitempty"`
}

func (RecruiterProfile) TableName() string { return "recruiters" }

type Job struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	CreatedAt time.Time `gorm:"index" json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Title                 string                      `gorm:"not null" json:"title"`
	EmploymentType        string                      `gorm:"not null" json:"employmentType"`
	Location              string                      `gorm:"not null" json:"location"`
	ExperienceRequired    string                      `json:"experienceRequired"`
	Company               string                      `gorm:"not null" json:"company"`
	ApplicationDeadline   *time.Time                  `json:"applicationDeadline"`
	Description           string                      `gorm:"type:text;not null" json:"description"`
	RequiredSkills        datatypes.JSONSlice[string] `json:"requiredSkills"`
	RequiredQualification string                      `json:"requiredQualification"`
	ContactInformation    string                      `json:"contactInformation"`
	Status                JobStatus                   `gorm:"index;default:'active'" json:"status"`

	// Foreign Key
	PostedBy       uuid.UUID `gorm:"type:uuid;index;not null" json:"postedBy"`
	RecruiterEmail string    `gorm:"index;not null" json:"recruiterEmail"`
	// Filled only by Preload
	Recruiter *RecruiterProfile `gorm:"foreignKey:PostedBy" json:"recruiter,omitempty"`
}

// JobSummary is the part of a job joined onto application listings.
type JobSummary struct {
	ID                 uuid.UUID `json:"id"`
	Title              string    `json:"title"`
	Company            string    `json:"company"`
	Location           string    `json:"location"`
	EmploymentType     string    `json:"employmentType"`
	ExperienceRequired string    `json:"experienceRequired"`
}

func (JobSummary) TableName() string { return "jobs" }

type Application struct {
	ID uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`

	// One application per (job, seeker email).
	JobID       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_applications_job_seeker" json:"jobId"`
	SeekerEmail string    `gorm:"not null;uniqueIndex:idx_applications_job_seeker" json:"seekerEmail"`

	SeekerID       string            `gorm:"default:'anonymous'" json:"seekerId"`
	RecruiterEmail string            `gorm:"index;not null" json:"recruiterEmail"`
	Status         ApplicationStatus `gorm:"index;default:'pending'" json:"status"`

	WhyHire      string `gorm:"type:text" json:"whyHire"`
	CareerImpact string `gorm:"type:text" json:"careerImpact"`
	KeySkills    string `gorm:"type:text" json:"keySkills"`
	ProudProject string `gorm:"type:text" json:"proudProject"`

	ResumeFileName string           `json:"resumeFileName,omitempty"`
	ResumePath     storage.Filename `json:"resumePath,omitempty"`

	AppliedAt time.Time `gorm:"index" json:"appliedAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Job *JobSummary `gorm:"foreignKey:JobID" json:"job,omitempty"`
}

// All lists the models to migrate.
func All() []any {
	return []any{&JobSeeker{}, &Recruiter{}, &Job{}, &Application{}}
}
