// Package resume turns uploaded resumes into plain text and scores them.
package resume

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tmc/langchaingo/documentloaders"
	"golang.org/x/text/unicode/norm"
)

// maxDocumentXML caps the decompressed body of a DOCX.
const maxDocumentXML = 32 << 20

var (
	ErrUnsupported = errors.New("unsupported document format")
	ErrNoText      = errors.New("no text extracted from file")
)

// ExtractText returns the normalized text of a PDF or DOCX document.
// Line breaks survive normalization; runs of spaces do not.
func ExtractText(ctx context.Context, data []byte) (string, error) {
	var (
		raw string
		err error
	)
	switch format(mimetype.Detect(data)) {
	case "pdf":
		raw, err = extractPDF(ctx, data)
	case "docx":
		raw, err = extractDOCX(data)
	default:
		return "", ErrUnsupported
	}
	if err != nil {
		return "", err
	}

	text := normalize(raw)
	if text == "" {
		return "", ErrNoText
	}
	return text, nil
}

func format(m *mimetype.MIME) string {
	for ; m != nil; m = m.Parent() {
		switch {
		case m.Is("application/pdf"):
			return "pdf"
		case m.Is("application/vnd.openxmlformats-officedocument.wordprocessingml.document"),
			m.Is("application/zip"):
			return "docx"
		}
	}
	return ""
}

func extractPDF(ctx context.Context, data []byte) (text string, err error) {
	// The PDF parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("parse pdf: %v", r)
		}
	}()

	pages, err := documentloaders.NewPDF(bytes.NewReader(data), int64(len(data))).Load(ctx)
	if err != nil {
		return "", fmt.Errorf("parse pdf: %w", err)
	}
	parts := make([]string, 0, len(pages))
	for _, p := range pages {
		parts = append(parts, p.PageContent)
	}
	return strings.Join(parts, "\n"), nil
}

func extractDOCX(data []byte) (string, error) {
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("open docx: %w", err)
	}
	var body *zip.File
	for _, f := range zr.File {
		if f.Name == "word/document.xml" {
			body = f
			break
		}
	}
	if body == nil {
		return "", ErrUnsupported
	}
	rc, err := body.Open()
	if err != nil {
		return "", fmt.Errorf("open docx body: %w", err)
	}
	defer rc.Close()

	var (
		b      strings.Builder
		inText bool
	)
	dec := xml.NewDecoder(io.LimitReader(rc, maxDocumentXML))
	for {
		tok, err := dec.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return "", fmt.Errorf("parse docx body: %w", err)
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "t":
				inText = true
			case "tab":
				b.WriteByte(' ')
			case "br", "cr":
				b.WriteByte('\n')
			}
		case xml.EndElement:
			switch t.Name.Local {
			case "t":
				inText = false
			case "p":
				b.WriteByte('\n')
			}
		case xml.CharData:
			if inText {
				b.Write(t)
			}
		}
	}
	return b.String(), nil
}

// normalize folds compatibility characters (ligatures, non-breaking
// spaces), collapses whitespace inside each line and keeps at most one
// blank line between paragraphs.
func normalize(s string) string {
	s = norm.NFKC.String(strings.ReplaceAll(s, "\r\n", "\n"))

	var out []string
	blank := false
	for _, line := range strings.Split(s, "\n") {
		line = strings.Join(strings.Fields(line), " ")
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}
