package services

import (
	"archive/zip"
	"bytes"
	"context"
	"os"
	"strings"
	"testing"

	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const docxType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// wordDocument zips a minimal DOCX with one paragraph per line.
func wordDocument(t *testing.T, lines ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, l := range lines {
		body.WriteString("<w:p><w:r><w:t>" + l + "</w:t></w:r></w:p>")
	}
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, f := range []struct{ name, content string }{
		{"[Content_Types].xml", `<?xml version="1.0"?><Types/>`},
		{"word/document.xml", `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` + body.String() + `</w:body></w:document>`},
	} {
		w, err := zw.Create(f.name)
		require.NoError(t, err)
		_, err = w.Write([]byte(f.content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

func TestAnalyze_ScoresDocument(t *testing.T) {
	f := newFixture(t)
	svc := NewResumeAnalysisService(f.resumes)

	doc := wordDocument(t,
		"Sam Seeker",
		"sam@example.com | 555-123-4567 | linkedin.com/in/samseeker",
		"Skills",
		"Go, SQL, Docker, Kubernetes, AWS",
	)
	analysis, err := svc.Analyze(context.Background(), resumeHeader(t, "cv.docx", docxType, doc))
	require.NoError(t, err)

	assert.Equal(t, 10, analysis.Breakdown.Contact)
	assert.Len(t, analysis.Sections.Skills, 5)
	assert.NotContains(t, analysis.Issues, "Add a professional email address.")
	assert.Contains(t, analysis.Issues, "Add a professional summary or objective statement.")
	assert.Greater(t, analysis.Score, 0)

	entries, err := os.ReadDir(f.resumes.Root())
	require.NoError(t, err)
	assert.Empty(t, entries, "analysis must not store the upload")
}

func TestAnalyze_Rejections(t *testing.T) {
	f := newFixture(t)
	svc := NewResumeAnalysisService(f.resumes)

	tests := []struct {
		name    string
		ctype   string
		body    []byte
		message string
	}{
		{"declared text", "text/plain", []byte("hello"), "Invalid file type. Only PDF and Word documents are allowed."},
		{"unreadable pdf", "application/pdf", samplePDF, "Resume analysis failed: the file could not be read"},
		{"empty document", docxType, wordDocument(t, " "), "Resume analysis failed: no text could be extracted from the file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Analyze(context.Background(), resumeHeader(t, "cv", tt.ctype, tt.body))
			require.Error(t, err)
			e := apperr.As(err)
			assert.Equal(t, apperr.KindValidation, e.Kind)
			assert.Equal(t, tt.message, e.Message)
		})
	}
}
