package services

import (
	"context"
	"errors"
	"mime/multipart"

	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/justsurfingit/nexskill/internal/resume"
	"github.com/justsurfingit/nexskill/internal/storage"
	"github.com/rs/zerolog/log"
)

// ResumeAnalysisService scores an uploaded resume without keeping it.
type ResumeAnalysisService struct {
	Resumes *storage.ResumeStore
}

func NewResumeAnalysisService(resumes *storage.ResumeStore) *ResumeAnalysisService {
	return &ResumeAnalysisService{Resumes: resumes}
}

func (s *ResumeAnalysisService) Analyze(ctx context.Context, fh *multipart.FileHeader) (*resume.Analysis, error) {
	data, err := s.Resumes.Read(fh)
	if err != nil {
		return nil, err
	}

	text, err := resume.ExtractText(ctx, data)
	switch {
	case errors.Is(err, resume.ErrUnsupported):
		return nil, apperr.Validation("Resume analysis supports PDF and DOCX files only")
	case errors.Is(err, resume.ErrNoText):
		return nil, apperr.Validation("Resume analysis failed: no text could be extracted from the file")
	case err != nil:
		log.Warn().Err(err).Str("file", fh.Filename).Msg("resume text extraction failed")
		return nil, apperr.Validation("Resume analysis failed: the file could not be read")
	}

	analysis := resume.Analyze(text)
	log.Info().
		Str("file", fh.Filename).
		Int("score", analysis.Score).
		Int("issues", len(analysis.Issues)).
		Msg("resume analyzed")
	return analysis, nil
}
