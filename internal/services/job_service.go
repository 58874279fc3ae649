package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/justsurfingit/nexskill/internal/dtos"
	"github.com/justsurfingit/nexskill/internal/experience"
	"github.com/justsurfingit/nexskill/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type JobService struct {
	DB  *gorm.DB
	now func() time.Time
}

func NewJobService(db *gorm.DB) *JobService {
	return &JobService{
		DB:  db,
		now: time.Now,
	}
}

func (s *JobService) CreateJob(ctx context.Context, req *dtos.JobCreationRequest) (*models.Job, error) {
	if err := dtos.Validate(req); err != nil {
		return nil, err
	}
	db := s.DB.WithContext(ctx)

	// The posting recruiter must exist
	var recruiter models.Recruiter
	err := db.Where("email = ?", req.RecruiterEmail).First(&recruiter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Recruiter not found")
	}
	if err != nil {
		return nil, apperr.Internal("Job post failed", err)
	}

	deadline, err := dtos.ParseDeadline(req.ApplicationDeadline)
	if err != nil {
		return nil, err
	}

	now := s.now()
	job := &models.Job{
		ID:                    uuid.New(),
		CreatedAt:             now,
		UpdatedAt:             now,
		Title:                 req.Title,
		EmploymentType:        req.EmploymentType,
		Location:              req.Location,
		ExperienceRequired:    req.ExperienceRequired,
		Company:               req.Company,
		ApplicationDeadline:   deadline,
		Description:           req.Description,
		RequiredSkills:        req.RequiredSkills.Strings(),
		RequiredQualification: req.RequiredQualification,
		ContactInformation:    req.ContactInformation,
		Status:                models.JobActive,
		PostedBy:              recruiter.ID,
		RecruiterEmail:        req.RecruiterEmail,
	}
	if err := db.Create(job).Error; err != nil {
		return nil, apperr.Internal("Job post failed", err)
	}
	log.Info().Str("job", job.ID.String()).Str("recruiter", req.RecruiterEmail).Msg("job posted")
	return job, nil
}

// ListJobs returns jobs in one status (active by default), newest first,
// with the poster's name and company attached.
func (s *JobService) ListJobs(ctx context.Context, f dtos.JobFilter) ([]models.Job, error) {
	status := models.JobActive
	if f.Status != "" {
		status = models.JobStatus(f.Status)
		if !status.Valid() {
			return nil, apperr.Validation("Invalid job status")
		}
	}
	if f.Experience != "" && !experience.ValidBucket(f.Experience) {
		return nil, apperr.Validation("Invalid experience filter. Must be one of: " + strings.Join(experience.Buckets, ", "))
	}

	q := s.DB.WithContext(ctx).
		Preload("Recruiter", func(db *gorm.DB) *gorm.DB { return db.Select("id", "name", "company") }).
		Where("status = ?", status)
	if f.Location != "" {
		q = q.Where("LOWER(location) LIKE ? ESCAPE '\\'", containsPattern(f.Location))
	}
	if f.EmploymentType != "" {
		q = q.Where("employment_type = ?", f.EmploymentType)
	}
	if f.Company != "" {
		q = q.Where("LOWER(company) LIKE ? ESCAPE '\\'", containsPattern(f.Company))
	}

	jobs := []models.Job{}
	if err := q.Order("created_at DESC").Find(&jobs).Error; err != nil {
		return nil, apperr.Internal("Failed to fetch jobs", err)
	}
	if f.Experience != "" {
		jobs = filterByExperience(jobs, f.Experience)
	}
	return jobs, nil
}

// ListJobsByRecruiter returns every job the recruiter posted, any status.
func (s *JobService) ListJobsByRecruiter(ctx context.Context, recruiterID string) ([]models.Job, error) {
	id, err := uuid.Parse(recruiterID)
	if err != nil {
		return nil, apperr.Validation("Invalid Recruiter ID format")
	}
	jobs := []models.Job{}
	err = s.DB.WithContext(ctx).Where("posted_by = ?", id).Order("created_at DESC").Find(&jobs).Error
	if err != nil {
		return nil, apperr.Internal("Failed to fetch recruiter jobs", err)
	}
	return jobs, nil
}

// GetJob returns one job with the poster's public profile attached.
func (s *JobService) GetJob(ctx context.Context, jobID string) (*models.Job, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, apperr.NotFound("Job not found")
	}
	var job models.Job
	err = s.DB.WithContext(ctx).
		Preload("Recruiter", func(db *gorm.DB) *gorm.DB {
			return db.Select("id", "name", "company", "website", "industry", "size")
		}).
		First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch job", err)
	}
	return &job, nil
}

// UpdateJob patches a job. When ownerEmail is non-empty it must match the
// job's recruiter.
func (s *JobService) UpdateJob(ctx context.Context, jobID string, req *dtos.JobUpdateRequest, ownerEmail string) (*models.Job, error) {
	id, err := uuid.Parse(jobID)
	if err != nil {
		return nil, apperr.NotFound("Job not found")
	}
	db := s.DB.WithContext(ctx)

	var job models.Job
	err = db.First(&job, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Job not found")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to update job", err)
	}
	if ownerEmail != "" && job.RecruiterEmail != ownerEmail {
		return nil, apperr.Forbidden("Not authorized to modify this job")
	}

	if err := req.ApplyTo(&job); err != nil {
		return nil, err
	}
	job.UpdatedAt = s.now()
	if err := db.Save(&job).Error; err != nil {
		return nil, apperr.Internal("Failed to update job", err)
	}
	return &job, nil
}

func (s *JobService) SetJobStatus(ctx context.Context, jobID string, status models.JobStatus, ownerEmail string) (*models.Job, error) {
	if !status.Valid() {
		return nil, apperr.Validation("Invalid job status. Must be one of: active, closed, draft")
	}
	db := s.DB.WithContext(ctx)

	job, err := s.ownedJob(db, jobID, ownerEmail, "Not authorized to modify this job")
	if err != nil {
		return nil, err
	}

	job.Status = status
	job.UpdatedAt = s.now()
	if err := db.Model(job).Select("status", "updated_at").Updates(job).Error; err != nil {
		return nil, apperr.Internal("Failed to update job status", err)
	}
	log.Info().Str("job", job.ID.String()).Str("status", string(status)).Msg("job status changed")
	return job, nil
}

// DeleteJob hard-deletes a job. Its applications are left in place.
func (s *JobService) DeleteJob(ctx context.Context, jobID, ownerEmail string) error {
	db := s.DB.WithContext(ctx)

	job, err := s.ownedJob(db, jobID, ownerEmail, "Not authorized to delete this job")
	if err != nil {
		return err
	}
	if err := db.Delete(&models.Job{}, "id = ?", job.ID).Error; err != nil {
		return apperr.Internal("Failed to delete job", err)
	}
	log.Info().Str("job", job.ID.String()).Msg("job deleted")
	return nil
}

// ownedJob loads the job only if ownerEmail owns it. Every failure,
// including a missing job, is Forbidden.
func (s *JobService) ownedJob(db *gorm.DB, jobID, ownerEmail, denied string) (*models.Job, error) {
	id, err := uuid.Parse(jobID)
	if err != nil || ownerEmail == "" {
		return nil, apperr.Forbidden(denied)
	}
	var job models.Job
	err = db.Where("id = ? AND recruiter_email = ?", id, ownerEmail).First(&job).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Forbidden(denied)
	}
	if err != nil {
		return nil, apperr.Internal("Failed to load job", err)
	}
	return &job, nil
}
