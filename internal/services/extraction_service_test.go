package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
)

type fakeModel struct {
	reply  string
	err    error
	prompt string
}

func (m *fakeModel) GenerateContent(_ context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	for _, msg := range messages {
		for _, part := range msg.Parts {
			if text, ok := part.(llms.TextContent); ok {
				m.prompt += text.Text
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: m.reply}}}, nil
}

func (m *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, m, prompt, options...)
}

func TestExtractJob(t *testing.T) {
	model := &fakeModel{reply: "```json\n{\"title\":\"Go Developer\",\"company\":\"Acme\",\"requiredSkills\":[\"Go\"]}\n```"}
	svc := &ExtractionService{Client: model}

	draft, err := svc.ExtractJob(context.Background(), "<h1>Go Developer</h1><p>Join <b>Acme</b></p>", "https://jobs.example/1")
	require.NoError(t, err)
	assert.Equal(t, "Go Developer", draft.Title)
	assert.Equal(t, "Acme", draft.Company)
	assert.Equal(t, []string{"Go"}, draft.RequiredSkills)

	assert.Contains(t, model.prompt, "# Go Developer")
	assert.Contains(t, model.prompt, "**Acme**")
	assert.Contains(t, model.prompt, "https://jobs.example/1")
	assert.NotContains(t, model.prompt, "<h1>")
}

func TestExtractJob_TruncatesContent(t *testing.T) {
	model := &fakeModel{reply: `{"title":"x"}`}
	svc := &ExtractionService{Client: model}

	_, err := svc.ExtractJob(context.Background(), strings.Repeat("a", maxPromptContent+500), "")
	require.NoError(t, err)
	assert.NotContains(t, model.prompt, strings.Repeat("a", maxPromptContent+1))
}

func TestExtractJob_Failures(t *testing.T) {
	ctx := context.Background()

	_, err := (&ExtractionService{Client: &fakeModel{}}).ExtractJob(ctx, "  ", "")
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	_, err = (&ExtractionService{Client: &fakeModel{err: errors.New("quota")}}).ExtractJob(ctx, "<p>job</p>", "")
	assert.True(t, apperr.Is(err, apperr.KindInternal))

	_, err = (&ExtractionService{Client: &fakeModel{reply: "Sorry, I can't help"}}).ExtractJob(ctx, "<p>job</p>", "")
	require.Error(t, err)
	assert.Equal(t, "Job extraction failed", apperr.As(err).Message)
}

func TestNewExtractionService_NoKey(t *testing.T) {
	svc, err := NewExtractionService(context.Background(), "", "gemini-2.5-flash")
	require.NoError(t, err)
	assert.Nil(t, svc)
}

func TestStripCodeFence(t *testing.T) {
	assert.Equal(t, `{"a":1}`, stripCodeFence("```json\n{\"a\":1}\n```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence("```\n{\"a\":1}```"))
	assert.Equal(t, `{"a":1}`, stripCodeFence(` {"a":1} `))
}
