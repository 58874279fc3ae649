// Package storage keeps uploaded resumes on the local filesystem.
package storage

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gabriel-vasile/mimetype"
	"github.com/justsurfingit/nexskill/internal/apperr"
	"github.com/rs/zerolog/log"
)

const DefaultMaxBytes = 10 << 20

// AllowedTypes are the MIME types a resume upload may declare.
var AllowedTypes = map[string]bool{
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
}

// Word documents sniff as their container formats when the detector
// can't see far enough into the file.
var wordContainers = []string{"application/zip", "application/x-ole-storage"}

var errInvalidType = apperr.Validation("Invalid file type. Only PDF and Word documents are allowed.")

// Filename is a bare stored filename: never empty, no separators, no "..".
type Filename string

// ParseFilename validates s as a bare filename.
func ParseFilename(s string) (Filename, error) {
	if s == "" {
		return "", apperr.Validation("Filename parameter is required")
	}
	if strings.Contains(s, "..") || strings.ContainsAny(s, `/\`) {
		return "", apperr.Validation("Invalid filename - path traversal detected")
	}
	return Filename(s), nil
}

func (f Filename) String() string { return string(f) }

type ResumeStore struct {
	root     string
	maxBytes int64
	now      func() time.Time
}

// NewResumeStore creates root if needed.
func NewResumeStore(root string, maxBytes int64) (*ResumeStore, error) {
	if maxBytes <= 0 {
		maxBytes = DefaultMaxBytes
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("create upload dir: %w", err)
	}
	return &ResumeStore{root: root, maxBytes: maxBytes, now: time.Now}, nil
}

func (s *ResumeStore) MaxBytes() int64 { return s.maxBytes }

func (s *ResumeStore) Root() string { return s.root }

// Save validates the upload and writes it as "<unix-millis>-<original name>".
func (s *ResumeStore) Save(fh *multipart.FileHeader) (Filename, error) {
	src, err := s.openChecked(fh)
	if err != nil {
		return "", err
	}
	defer src.Close()

	name, err := ParseFilename(strconv.FormatInt(s.now().UnixMilli(), 10) + "-" + baseName(fh.Filename))
	if err != nil {
		return "", err
	}

	dst, err := os.OpenFile(filepath.Join(s.root, string(name)), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644)
	if err != nil {
		return "", apperr.Internal("Failed to store resume", err)
	}
	// Read one byte past the limit so a lying Size header is still caught.
	n, err := io.Copy(dst, io.LimitReader(src, s.maxBytes+1))
	if cerr := dst.Close(); err == nil {
		err = cerr
	}
	if err == nil && n > s.maxBytes {
		err = s.tooLarge()
	}
	if err != nil {
		_ = s.Remove(name)
		if apperr.Is(err, apperr.KindValidation) {
			return "", err
		}
		return "", apperr.Internal("Failed to store resume", err)
	}

	log.Info().Str("stored", string(name)).Int64("bytes", n).Msg("resume stored")
	return name, nil
}

// Read applies the same checks as Save but returns the content instead of
// keeping it.
func (s *ResumeStore) Read(fh *multipart.FileHeader) ([]byte, error) {
	src, err := s.openChecked(fh)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, s.maxBytes+1))
	if err != nil {
		return nil, apperr.Internal("Failed to read upload", err)
	}
	if int64(len(data)) > s.maxBytes {
		return nil, s.tooLarge()
	}
	return data, nil
}

// openChecked checks the declared size and type, sniffs the content and
// returns the upload rewound to its start.
func (s *ResumeStore) openChecked(fh *multipart.FileHeader) (multipart.File, error) {
	if fh.Size > s.maxBytes {
		return nil, s.tooLarge()
	}
	if !AllowedTypes[mediaType(fh.Header.Get("Content-Type"))] {
		log.Warn().Str("file", fh.Filename).Str("type", fh.Header.Get("Content-Type")).Msg("resume type rejected")
		return nil, errInvalidType
	}

	src, err := fh.Open()
	if err != nil {
		return nil, apperr.Internal("Failed to read upload", err)
	}
	detected, err := mimetype.DetectReader(src)
	if err != nil {
		src.Close()
		return nil, apperr.Internal("Failed to read upload", err)
	}
	if !looksLikeDocument(detected) {
		src.Close()
		log.Warn().Str("file", fh.Filename).Str("detected", detected.String()).Msg("resume content rejected")
		return nil, errInvalidType
	}
	if _, err := src.Seek(0, io.SeekStart); err != nil {
		src.Close()
		return nil, apperr.Internal("Failed to read upload", err)
	}
	return src, nil
}

func (s *ResumeStore) tooLarge() error {
	return apperr.Validation(fmt.Sprintf("File too large. Maximum size is %d MB.", s.maxBytes>>20))
}

// Open resolves a requested name to an open file. The HTTP layer has
// already decoded the path once, so the name is tried as given first and
// only then percent-decoded, for clients that encode twice. Old records
// may carry an "uploads/" prefix.
func (s *ResumeStore) Open(requested string) (*os.File, Filename, error) {
	candidates := []string{requested}
	if decoded, err := url.PathUnescape(requested); err == nil && decoded != requested {
		candidates = append(candidates, decoded)
	}

	names := make([]Filename, 0, len(candidates))
	for _, c := range candidates {
		name, err := ParseFilename(stripUploadsPrefix(c))
		if err != nil {
			return nil, "", err
		}
		names = append(names, name)
	}

	for _, name := range names {
		f, err := os.Open(filepath.Join(s.root, string(name)))
		if errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err != nil {
			return nil, "", apperr.Internal("Failed to open resume", err)
		}
		return f, name, nil
	}
	return nil, "", apperr.NotFound("Resume file not found")
}

func stripUploadsPrefix(name string) string {
	if strings.Contains(name, "uploads/") || strings.Contains(name, `uploads\`) {
		return name[strings.LastIndexAny(name, `/\`)+1:]
	}
	return name
}

// Remove deletes a stored resume. Missing files are ignored.
func (s *ResumeStore) Remove(name Filename) error {
	if _, err := ParseFilename(string(name)); err != nil {
		return err
	}
	err := os.Remove(filepath.Join(s.root, string(name)))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

func mediaType(contentType string) string {
	mt, _, _ := strings.Cut(contentType, ";")
	return strings.ToLower(strings.TrimSpace(mt))
}

func looksLikeDocument(m *mimetype.MIME) bool {
	for ; m != nil; m = m.Parent() {
		if AllowedTypes[m.String()] {
			return true
		}
		for _, c := range wordContainers {
			if m.Is(c) {
				return true
			}
		}
	}
	return false
}

// baseName strips any client-supplied directory, whichever separator it uses.
func baseName(name string) string {
	name = name[strings.LastIndexAny(name, `/\`)+1:]
	for strings.Contains(name, "..") {
		name = strings.ReplaceAll(name, "..", ".")
	}
	if name == "" || name == "." {
		return "resume"
	}
	return name
}
