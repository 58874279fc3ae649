package services

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/justsurfingit/nexskill/internal/auth"
	"github.com/justsurfingit/nexskill/internal/dtos"
	"github.com/justsurfingit/nexskill/internal/models"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

// One message for unknown account and wrong password alike.
const loginFailedMessage = "Password or username is incorrect"

type AccountService struct {
	DB     *gorm.DB
	Tokens *auth.TokenIssuer
}

func NewAccountService(db *gorm.DB, tokens *auth.TokenIssuer) *AccountService {
	return &AccountService{DB: db, Tokens: tokens}
}

func (s *AccountService) RegisterJobSeeker(ctx context.Context, req *dtos.RegisterJobSeekerRequest) error {
	if err := dtos.Validate(req); err != nil {
		return err
	}
	db := s.DB.WithContext(ctx)

	exists, err := existsByEmail(db, &models.JobSeeker{}, req.Email)
	if err != nil {
		return apperr.Internal("Registration failed", err)
	}
	if exists {
		return apperr.Conflict("User with this email already exists", nil)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperr.Internal("Registration failed", err)
	}
	seeker := models.JobSeeker{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		WorkExp:  req.WorkExp,
		Password: hash,
		Skills:   []string{},
	}
	if err := db.Create(&seeker).Error; err != nil {
		return apperr.Internal("Registration failed", err)
	}
	log.Info().Str("email", req.Email).Msg("job seeker registered")
	return nil
}

func (s *AccountService) RegisterRecruiter(ctx context.Context, req *dtos.RegisterRecruiterRequest) error {
	if err := dtos.Validate(req); err != nil {
		return err
	}
	db := s.DB.WithContext(ctx)

	exists, err := existsByEmail(db, &models.Recruiter{}, req.Email)
	if err != nil {
		return apperr.Internal("Recruiter registration failed", err)
	}
	if exists {
		return apperr.Conflict("Recruiter with this email already exists", nil)
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return apperr.Internal("Recruiter registration failed", err)
	}
	recruiter := models.Recruiter{
		ID:       uuid.New(),
		Name:     req.Name,
		Email:    req.Email,
		Phone:    req.Phone,
		Password: hash,
		Company:  req.Company,
		Website:  req.Website,
		Industry: req.Industry,
		Size:     req.Size,
	}
	if err := db.Create(&recruiter).Error; err != nil {
		return apperr.Internal("Recruiter registration failed", err)
	}
	log.Info().Str("email", req.Email).Msg("recruiter registered")
	return nil
}

// LoginJobSeeker returns the public session view and a signed token.
func (s *AccountService) LoginJobSeeker(ctx context.Context, req *dtos.LoginRequest) (*dtos.JobSeekerSession, string, error) {
	var seeker models.JobSeeker
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&seeker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperr.Unauthorized(loginFailedMessage)
	}
	if err != nil {
		return nil, "", apperr.Internal("Login failed", err)
	}
	if !auth.CheckPassword(seeker.Password, req.Password) {
		return nil, "", apperr.Unauthorized(loginFailedMessage)
	}

	token, err := s.Tokens.Issue(auth.Principal{Kind: auth.KindJobSeeker, ID: seeker.ID, Email: seeker.Email})
	if err != nil {
		return nil, "", apperr.Internal("Login failed", err)
	}
	return &dtos.JobSeekerSession{ID: seeker.ID, Name: seeker.Name, Email: seeker.Email, WorkExp: seeker.WorkExp}, token, nil
}

func (s *AccountService) LoginRecruiter(ctx context.Context, req *dtos.LoginRequest) (*dtos.RecruiterSession, string, error) {
	var recruiter models.Recruiter
	err := s.DB.WithContext(ctx).Where("email = ?", req.Email).First(&recruiter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, "", apperr.Unauthorized(loginFailedMessage)
	}
	if err != nil {
		return nil, "", apperr.Internal("Recruiter login failed", err)
	}
	if !auth.CheckPassword(recruiter.Password, req.Password) {
		return nil, "", apperr.Unauthorized(loginFailedMessage)
	}

	token, err := s.Tokens.Issue(auth.Principal{Kind: auth.KindRecruiter, ID: recruiter.ID, Email: recruiter.Email})
	if err != nil {
		return nil, "", apperr.Internal("Recruiter login failed", err)
	}
	return &dtos.RecruiterSession{ID: recruiter.ID, Name: recruiter.Name, Email: recruiter.Email, Company: recruiter.Company}, token, nil
}

// UpsertJobSeekerProfile creates or patches the job seeker with req.Email.
func (s *AccountService) UpsertJobSeekerProfile(ctx context.Context, req *dtos.JobSeekerProfileRequest) (*models.JobSeeker, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, apperr.Validation("Email is required")
	}
	db := s.DB.WithContext(ctx)

	var seeker models.JobSeeker
	err := db.Where("email = ?", req.Email).First(&seeker).Error
	create := errors.Is(err, gorm.ErrRecordNotFound)
	if err != nil && !create {
		return nil, apperr.Internal("Failed to update profile", err)
	}
	if create {
		seeker = models.JobSeeker{ID: uuid.New(), Email: req.Email, Skills: []string{}}
	}

	req.ApplyTo(&seeker)

	if create {
		err = db.Create(&seeker).Error
	} else {
		err = db.Save(&seeker).Error
	}
	if err != nil {
		return nil, apperr.Internal("Failed to update profile", err)
	}
	return &seeker, nil
}

// UpdateRecruiterProfile patches an existing recruiter; it never creates one.
func (s *AccountService) UpdateRecruiterProfile(ctx context.Context, req *dtos.RecruiterProfileRequest) (*models.Recruiter, error) {
	if strings.TrimSpace(req.Email) == "" {
		return nil, apperr.Validation("Email is required")
	}
	db := s.DB.WithContext(ctx)

	var recruiter models.Recruiter
	err := db.Where("email = ?", req.Email).First(&recruiter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Recruiter not found")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to update profile", err)
	}

	req.ApplyTo(&recruiter)
	if err := db.Save(&recruiter).Error; err != nil {
		return nil, apperr.Internal("Failed to update profile", err)
	}
	return &recruiter, nil
}

func (s *AccountService) GetJobSeeker(ctx context.Context, id string) (*models.JobSeeker, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("User not found")
	}
	return s.findJobSeeker(ctx, "id = ?", uid)
}

func (s *AccountService) GetJobSeekerByEmail(ctx context.Context, email string) (*models.JobSeeker, error) {
	return s.findJobSeeker(ctx, "email = ?", email)
}

func (s *AccountService) GetRecruiter(ctx context.Context, id string) (*models.Recruiter, error) {
	uid, err := uuid.Parse(id)
	if err != nil {
		return nil, apperr.NotFound("Recruiter not found")
	}
	return s.findRecruiter(ctx, "id = ?", uid)
}

func (s *AccountService) GetRecruiterByEmail(ctx context.Context, email string) (*models.Recruiter, error) {
	return s.findRecruiter(ctx, "email = ?", email)
}

func (s *AccountService) findJobSeeker(ctx context.Context, query string, arg any) (*models.JobSeeker, error) {
	var seeker models.JobSeeker
	err := s.DB.WithContext(ctx).Where(query, arg).First(&seeker).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("User not found")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch user profile", err)
	}
	return &seeker, nil
}

func (s *AccountService) findRecruiter(ctx context.Context, query string, arg any) (*models.Recruiter, error) {
	var recruiter models.Recruiter
	err := s.DB.WithContext(ctx).Where(query, arg).First(&recruiter).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("Recruiter not found")
	}
	if err != nil {
		return nil, apperr.Internal("Failed to fetch recruiter profile", err)
	}
	return &recruiter, nil
}

func existsByEmail(db *gorm.DB, model any, email string) (bool, error) {
	var count int64
	err := db.Model(model).Where("email = ?", email).Count(&count).Error
	return count > 0, err
}
