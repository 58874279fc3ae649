package services

import (
	"context"
	"errors"
	"mime/multipart"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/justsurfingit/nexskill/internal/dtos"
	"github.com/justsurfingit/nexskill/internal/models"
	"github.com/justsurfingit/nexskill/internal/storage"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

const alreadyAppliedMessage = "You have already applied for this job."

type ApplicationService struct {
	DB      *gorm.DB
	Resumes *storage.ResumeStore
	now     func() time.Time
}

func NewApplicationService(db *gorm.DB, resumes *storage.ResumeStore) *ApplicationService {
	return &ApplicationService{DB: db, Resumes: resumes, now: time.Now}
}

// Apply records an application and stores the optional resume. A second
// application for the same (job, seeker email) is a Conflict carrying the
// existing application's id.
func (s *ApplicationService) Apply(ctx context.Context, req *dtos.ApplyRequest, resume *multipart.FileHeader) (*models.Application, error) {
	switch {
	case strings.TrimSpace(req.JobID) == "":
		return nil, apperr.Validation("Job ID is required")
	case strings.TrimSpace(req.SeekerEmail) == "":
		return nil, apperr.Validation("Seeker email is required")
	case strings.TrimSpace(req.RecruiterEmail) == "":
		return nil, apperr.Validation("Recruiter email is required")
	}
	jobID, err := uuid.Parse(req.JobID)
	if err != nil {
		return nil, apperr.Validation("Invalid Job ID format")
	}
	db := s.DB.WithContext(ctx)

	// Friendly early answer; the unique index is what actually enforces it.
	existing, err := s.findApplication(db, jobID, req.SeekerEmail)
	if err != nil {
		return nil, apperr.Internal("Application failed", err)
	}
	if existing != nil {
		return nil, alreadyApplied(existing)
	}

	app := &models.Application{
		ID:             uuid.New(),
		JobID:          jobID,
		SeekerID:       models.AnonymousSeekerID,
		SeekerEmail:    req.SeekerEmail,
		RecruiterEmail: req.RecruiterEmail,
		Status:         models.ApplicationPending,
		WhyHire:        req.WhyHire,
		CareerImpact:   req.CareerImpact,
		KeySkills:      req.KeySkills,
		ProudProject:   req.ProudProject,
		AppliedAt:      s.now(),
	}
	app.UpdatedAt = app.AppliedAt

	if resume != nil {
		stored, err := s.Resumes.Save(resume)
		if err != nil {
			return nil, err
		}
		app.ResumeFileName = resume.Filename
		app.ResumePath = stored
	}

	if err := db.Create(app).Error; err != nil {
		s.discardResume(app.ResumePath)
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			if winner, ferr := s.findApplication(db, jobID, req.SeekerEmail); ferr == nil && winner != nil {
				return nil, alreadyApplied(winner)
			}
			return nil, apperr.Conflict(alreadyAppliedMessage, map[string]any{"alreadyApplied": true})
		}
		return nil, apperr.Internal("Application failed", err)
	}

	log.Info().
		Str("application", app.ID.String()).
		Str("job", jobID.String()).
		Str("seeker", req.SeekerEmail).
		Bool("resume", app.ResumePath != "").
		Msg("application submitted")
	return app, nil
}

// ListApplications filters by any combination of seeker, recruiter, job and
// status, newest first, with job details attached.
func (s *ApplicationService) ListApplications(ctx context.Context, f dtos.ApplicationFilter) ([]models.Application, error) {
	q := s.DB.WithContext(ctx).Preload("Job")
	if f.SeekerEmail != "" {
		q = q.Where("seeker_email = ?", f.SeekerEmail)
	}
	if f.RecruiterEmail != "" {
		q = q.Where("recruiter_email = ?", f.RecruiterEmail)
	}
	if f.JobID != "" {
		id, err := uuid.Parse(f.JobID)
		if err != nil {
			return nil, apperr.Validation("Invalid Job ID format")
		}
		q = q.Where("job_id = ?", id)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}

	apps := []models.Application{}
	if err := q.Order("applied_at DESC").Find(&apps).Error; err != nil {
		return nil, apperr.Internal("Failed to fetch applications", err)
	}
	return apps, nil
}

// ListApplicationsForJob returns a job's applicants. When ownerEmail is
// non-empty the job must belong to that recruiter.
func (s *ApplicationService) ListApplicationsForJob(ctx context.Context, jobID, ownerEmail string) ([]models.Application, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, apperr.Validation("Invalid Job ID format")
	}
	db := s.DB.WithContext(ctx)

	if ownerEmail != "" {
		var job models.Job
		err := db.Select("id", "recruiter_email").First(&job, "id = ?", id).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal("Failed to fetch applications", err)
		}
		if err == nil && job.RecruiterEmail != ownerEmail {
			return nil, apperr.Forbidden("Not authorized to view applications for this job")
		}
	}

	apps := []models.Application{}
	if err := db.Where("job_id = ?", id).Order("applied_at DESC").Find(&apps).Error; err != nil {
		return nil, apperr.Internal("Failed to fetch applications", err)
	}
	return apps, nil
}

// CheckApplied reports whether seekerEmail has applied to the job.
func (s *ApplicationService) CheckApplied(ctx context.Context, jobID, seekerEmail string) (*models.Application, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, apperr.Validation("Invalid Job ID format")
	}
	app, err := s.findApplication(s.DB.WithContext(ctx), id, seekerEmail)
	if err != nil {
		return nil, apperr.Internal("Failed to check application status", err)
	}
	return app, nil
}

// UpdateApplicationStatus changes an application's status. The ownership
// check only runs when ownerEmail is supplied.
func (s *ApplicationService) UpdateApplicationStatus(ctx context.Context, applicationID string, status models.ApplicationStatus, ownerEmail string) (*models.Application, error) {
	if status == "" {
		return nil, apperr.Validation("Status is required")
	}
	if !status.Valid() {
		names := make([]string, len(models.ApplicationStatuses))
		for i, v := range models.ApplicationStatuses {
			names[i] = string(v)
		}
		return nil, apperr.Validation("Invalid status. Must be one of: " + strings.Join(names, ", "))
	}

	id, err := uuid.Parse(applicationID)
	if err != nil {
		return nil, apperr.NotFound("Application not found")
	}
	db := s.DB.WithContext(ctx)

	var app models.Application
	err = db.First(&app, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Application not found")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to update application status", err)
	}

	if ownerEmail != "" {
		var job models.Job
		err := db.Select("id", "recruiter_email").First(&job, "id = ?", app.JobID).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Internal("Failed to update application status", err)
		}
		// A deleted job no longer has an owner to check against.
		if err == nil && job.RecruiterEmail != ownerEmail {
			return nil, apperr.Forbidden("Not authorized to update this application")
		}
	}

	app.Status = status
	app.UpdatedAt = s.now()
	if err := db.Model(&app).Select("status", "updated_at").Updates(&app).Error; err != nil {
		return nil, apperr.Internal("Failed to update application status", err)
	}
	log.Info().Str("application", app.ID.String()).Str("status", string(status)).Msg("application status changed")
	return &app, nil
}

func (s *ApplicationService) findApplication(db *gorm.DB, jobID uuid.UUID, seekerEmail string) (*models.Application, error) {
	var app models.Application
	err := db.Where("job_id = ? AND seeker_email = ?", jobID, seekerEmail).First(&app).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

func (s *ApplicationService) discardResume(name storage.Filename) {
	if name == "" {
		return
	}
	if err := s.Resumes.Remove(name); err != nil {
		log.Warn().Err(err).Str("file", string(name)).Msg("failed to remove orphaned resume")
	}
}

func alreadyApplied(existing *models.Application) *apperr.Error {
	return apperr.Conflict(alreadyAppliedMessage, map[string]any{
		"alreadyApplied": true,
		"applicationId":  existing.ID,
	})
}
