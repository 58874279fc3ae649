package services

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"
	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/justsurfingit/nexskill/internal/dtos"
	"github.com/rs/zerolog/log"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// maxPromptContent caps the posting text sent to the model.
const maxPromptContent = 20000

const jobExtractionPrompt = `
You are a job posting extraction agent. Analyze the job posting below and extract a draft job listing.

### INSTRUCTIONS:
1. Ignore navigation menus, footers, "similar jobs" lists and advertisements.
2. Output valid JSON only. Do not wrap the output in markdown code blocks.
3. If a field is missing, use an empty string (or an empty array for requiredSkills). Do not guess.

### OUTPUT SCHEMA:
{
    "title": "Job title, e.g. Senior Backend Engineer",
    "employmentType": "Full-time, Part-time, Contract or Internship",
    "location": "Job location or 'Remote'",
    "experienceRequired": "Experience as written, e.g. '2-4 years'",
    "company": "Company name",
    "description": "Clean summary of responsibilities and requirements",
    "requiredSkills": ["Go", "PostgreSQL"],
    "requiredQualification": "Degree or certification if stated",
    "contactInformation": "Contact email or application link if stated"
}

### SOURCE URL:
%s

### CONTENT:
%s
`

// ExtractionService turns a raw job posting page into a JobDraft.
type ExtractionService struct {
	Client llms.Model
}

// NewExtractionService builds the Gemini-backed extractor. It returns nil
// when no API key is configured, which disables the endpoint.
func NewExtractionService(ctx context.Context, apiKey, model string) (*ExtractionService, error) {
	if apiKey == "" {
		log.Warn().Msg("GEMINI_API_KEY not set, job extraction disabled")
		return nil, nil
	}
	llm, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("create gemini client: %w", err)
	}
	return &ExtractionService{Client: llm}, nil
}

func (s *ExtractionService) ExtractJob(ctx context.Context, rawHTML, sourceURL string) (*dtos.JobDraft, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, apperr.Validation("Missing required fields: rawHtml")
	}

	content, err := htmltomarkdown.ConvertString(rawHTML)
	if err != nil {
		// Fall back to the raw text; the model copes with markup.
		log.Debug().Err(err).Msg("html to markdown failed, sending raw content")
		content = rawHTML
	}
	if len(content) > maxPromptContent {
		content = content[:maxPromptContent]
	}

	prompt := fmt.Sprintf(jobExtractionPrompt, sourceURL, content)
	resp, err := llms.GenerateFromSinglePrompt(ctx, s.Client, prompt)
	if err != nil {
		return nil, apperr.Internal("Job extraction failed", err)
	}

	var draft dtos.JobDraft
	if err := json.Unmarshal([]byte(stripCodeFence(resp)), &draft); err != nil {
		return nil, apperr.Internal("Job extraction failed", fmt.Errorf("decode model output: %w", err))
	}
	if draft.RequiredSkills == nil {
		draft.RequiredSkills = []string{}
	}
	log.Info().Str("url", sourceURL).Str("title", draft.Title).Msg("job draft extracted")
	return &draft, nil
}

// stripCodeFence removes a ```json ... ``` wrapper the model sometimes adds
// despite being told not to.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[i+1:]
	}
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
