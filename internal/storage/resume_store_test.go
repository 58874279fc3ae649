package storage

import (
	"bytes"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var samplePDF = []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")

// fileHeader builds a real multipart.FileHeader by round-tripping a form.
func fileHeader(t *testing.T, filename, contentType string, body []byte) *multipart.FileHeader {
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

func newStore(t *testing.T, maxBytes int64) *ResumeStore {
	t.Helper()
	s, err := NewResumeStore(t.TempDir(), maxBytes)
	require.NoError(t, err)
	s.now = func() time.Time { return time.UnixMilli(1700000000000) }
	return s
}

func TestSave_StoresTimestampedName(t *testing.T) {
	s := newStore(t, 0)

	name, err := s.Save(fileHeader(t, "My CV (final).pdf", "application/pdf", samplePDF))
	require.NoError(t, err)
	assert.Equal(t, Filename("1700000000000-My CV (final).pdf"), name)

	data, err := os.ReadFile(filepath.Join(s.root, string(name)))
	require.NoError(t, err)
	assert.Equal(t, samplePDF, data)
}

func TestSave_RejectsWrongDeclaredType(t *testing.T) {
	s := newStore(t, 0)

	_, err := s.Save(fileHeader(t, "notes.txt", "text/plain", []byte("hello")))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	entries, _ := os.ReadDir(s.root)
	assert.Empty(t, entries)
}

func TestSave_RejectsMismatchedContent(t *testing.T) {
	s := newStore(t, 0)

	_, err := s.Save(fileHeader(t, "fake.pdf", "application/pdf", []byte("<html><body>nope</body></html>")))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))
}

func TestSave_RejectsOversized(t *testing.T) {
	s := newStore(t, 64)

	body := append(append([]byte{}, samplePDF...), bytes.Repeat([]byte("x"), 128)...)
	_, err := s.Save(fileHeader(t, "big.pdf", "application/pdf", body))
	require.Error(t, err)
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	entries, _ := os.ReadDir(s.root)
	assert.Empty(t, entries)
}

func TestRead_ValidatesWithoutStoring(t *testing.T) {
	s := newStore(t, 64)

	data, err := s.Read(fileHeader(t, "cv.pdf", "application/pdf", samplePDF))
	require.NoError(t, err)
	assert.Equal(t, samplePDF, data)

	_, err = s.Read(fileHeader(t, "notes.txt", "text/plain", []byte("hello")))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	body := append(append([]byte{}, samplePDF...), bytes.Repeat([]byte("x"), 128)...)
	_, err = s.Read(fileHeader(t, "big.pdf", "application/pdf", body))
	assert.True(t, apperr.Is(err, apperr.KindValidation))

	entries, _ := os.ReadDir(s.root)
	assert.Empty(t, entries)
}

func TestOpen(t *testing.T) {
	s := newStore(t, 0)
	name, err := s.Save(fileHeader(t, "cv.pdf", "application/pdf", samplePDF))
	require.NoError(t, err)

	tests := []struct {
		name      string
		requested string
		kind      apperr.Kind
		ok        bool
	}{
		{name: "bare name", requested: string(name), ok: true},
		{name: "percent encoded", requested: "1700000000000-cv%2Epdf", ok: true},
		{name: "legacy uploads prefix", requested: `uploads\` + string(name), ok: true},
		{name: "legacy uploads slash", requested: "uploads/" + string(name), ok: true},
		{name: "raw traversal", requested: "../../etc/passwd", kind: apperr.KindValidation},
		{name: "encoded traversal", requested: "..%2F..%2Fetc%2Fpasswd", kind: apperr.KindValidation},
		{name: "backslash", requested: `..\secret`, kind: apperr.KindValidation},
		{name: "empty", requested: "", kind: apperr.KindValidation},
		{name: "missing", requested: "123-missing.pdf", kind: apperr.KindNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, got, err := s.Open(tt.requested)
			if !tt.ok {
				require.Error(t, err)
				assert.True(t, apperr.Is(err, tt.kind), "got %v", err)
				return
			}
			require.NoError(t, err)
			defer f.Close()
			assert.Equal(t, name, got)
			data, err := io.ReadAll(f)
			require.NoError(t, err)
			assert.Equal(t, samplePDF, data)
		})
	}
}

func TestOpen_NameWithPercentSign(t *testing.T) {
	s := newStore(t, 0)
	name, err := s.Save(fileHeader(t, "CV 100%.pdf", "application/pdf", samplePDF))
	require.NoError(t, err)
	assert.Equal(t, Filename("1700000000000-CV 100%.pdf"), name)

	for _, requested := range []string{string(name), "1700000000000-CV%20100%25.pdf"} {
		f, got, err := s.Open(requested)
		require.NoError(t, err, requested)
		assert.Equal(t, name, got)
		f.Close()
	}
}

func TestParseFilename(t *testing.T) {
	for _, bad := range []string{"", "..", "a/b", `a\b`, "x..y"} {
		_, err := ParseFilename(bad)
		assert.Error(t, err, bad)
	}
	f, err := ParseFilename("1700-resume.docx")
	require.NoError(t, err)
	assert.Equal(t, "1700-resume.docx", f.String())
}

func TestRemove_IgnoresMissing(t *testing.T) {
	s := newStore(t, 0)
	assert.NoError(t, s.Remove("1-gone.pdf"))
	assert.Error(t, s.Remove("../x"))
}
