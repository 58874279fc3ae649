package dtos

import (
	"github.com/google/uuid"
	"github.com/justsurfingit/nexskill/internal/models"
)

type RegisterJobSeekerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	WorkExp  string `json:"workExp"`
	Password string `json:"password" validate:"required"`
}

type RegisterRecruiterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone"`
	Password string `json:"password" validate:"required"`
	Company  string `json:"company"`
	Website  string `json:"website"`
	Industry string `json:"industry"`
	Size     string `json:"size"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// JobSeekerSession is what a successful job seeker login returns.
type JobSeekerSession struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	WorkExp string    `json:"workExp"`
}

type RecruiterSession struct {
	ID      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Company string    `json:"company"`
}

// JobSeekerProfileRequest is a partial update keyed by Email.
type JobSeekerProfileRequest struct {
	Email string `json:"email"`

	Name      Optional[string]    `json:"name"`
	Phone     Optional[string]    `json:"phone"`
	Location  Optional[string]    `json:"location"`
	WorkExp   Optional[string]    `json:"workExp"`
	Education Optional[string]    `json:"education"`
	Institute Optional[string]    `json:"institute"`
	GradYear  Optional[string]    `json:"gradYear"`
	Skills    Optional[SkillList] `json:"skills"`
	Portfolio Optional[string]    `json:"portfolio"`
	Summary   Optional[string]    `json:"summary"`
	AvatarURL Optional[string]    `json:"avatarUrl"`
}

func (r *JobSeekerProfileRequest) ApplyTo(s *models.JobSeeker) {
	r.Name.ApplyTo(&s.Name)
	r.Phone.ApplyTo(&s.Phone)
	r.Location.ApplyTo(&s.Location)
	r.WorkExp.ApplyTo(&s.WorkExp)
	r.Education.ApplyTo(&s.Education)
	r.Institute.ApplyTo(&s.Institute)
	r.GradYear.ApplyTo(&s.GradYear)
	r.Portfolio.ApplyTo(&s.Portfolio)
	r.Summary.ApplyTo(&s.Summary)
	r.AvatarURL.ApplyTo(&s.AvatarURL)
	if r.Skills.Set {
		s.Skills = r.Skills.Value.Strings()
	}
}

// RecruiterProfileRequest is a partial update keyed by Email.
type RecruiterProfileRequest struct {
	Email string `json:"email"`

	Name     Optional[string] `json:"name"`
	Phone    Optional[string] `json:"phone"`
	Company  Optional[string] `json:"company"`
	Website  Optional[string] `json:"website"`
	Industry Optional[string] `json:"industry"`
	Size     Optional[string] `json:"size"`
}

func (r *RecruiterProfileRequest) ApplyTo(rec *models.Recruiter) {
	r.Name.ApplyTo(&rec.Name)
	r.Phone.ApplyTo(&rec.Phone)
	r.Company.ApplyTo(&rec.Company)
	r.Website.ApplyTo(&rec.Website)
	r.Industry.ApplyTo(&rec.Industry)
	r.Size.ApplyTo(&rec.Size)
}
