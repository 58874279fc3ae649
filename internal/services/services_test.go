package services

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"
	"time"

	"github.com/justsurfingit/nexskill/internal/auth"
	"github.com/justsurfingit/nexskill/internal/database"
	"github.com/justsurfingit/nexskill/internal/dtos"
	"github.com/justsurfingit/nexskill/internal/models"
	"github.com/justsurfingit/nexskill/internal/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

type fixture struct {
	db           *gorm.DB
	accounts     *AccountService
	jobs         *JobService
	applications *ApplicationService
	resumes      *storage.ResumeStore
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	db := database.OpenTest(t)
	tokens, err := auth.NewTokenIssuer("0123456789abcdef0123456789abcdef", time.Hour)
	require.NoError(t, err)
	resumes, err := storage.NewResumeStore(t.TempDir(), 0)
	require.NoError(t, err)

	return &fixture{
		db:           db,
		accounts:     NewAccountService(db, tokens),
		jobs:         NewJobService(db),
		applications: NewApplicationService(db, resumes),
		resumes:      resumes,
	}
}

func (f *fixture) recruiter(t *testing.T, email string) {
	t.Helper()
	err := f.accounts.RegisterRecruiter(context.Background(), &dtos.RegisterRecruiterRequest{
		Name: "Rita", Email: email, Password: "secret", Company: "Acme",
	})
	require.NoError(t, err)
}

func (f *fixture) job(t *testing.T, recruiterEmail string, mutate ...func(*dtos.JobCreationRequest)) *models.Job {
	t.Helper()
	req := &dtos.JobCreationRequest{
		Title:          "Backend Engineer",
		EmploymentType: "Full-time",
		Location:       "Berlin",
		Company:        "Acme",
		Description:    "Build APIs",
		RecruiterEmail: recruiterEmail,
	}
	for _, m := range mutate {
		m(req)
	}
	job, err := f.jobs.CreateJob(context.Background(), req)
	require.NoError(t, err)
	return job
}

// resumeHeader builds a real multipart.FileHeader by round-tripping a form.
func resumeHeader(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="resume"; filename="`+filename+`"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(body)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(32<<20))
	return req.MultipartForm.File["resume"][0]
}
