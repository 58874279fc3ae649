package resume

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// docx builds a minimal Word document with one paragraph per entry. An
// entry may hold several runs separated by "|".
func docx(t *testing.T, paragraphs ...string) []byte {
	t.Helper()
	var body strings.Builder
	for _, p := range paragraphs {
		body.WriteString("<w:p>")
		for _, run := range strings.Split(p, "|") {
			if run == "" {
				continue
			}
			fmt.Fprintf(&body, `<w:r><w:t xml:space="preserve">%s</w:t></w:r>`, run)
		}
		body.WriteString("</w:p>")
	}
	return zipped(t, map[string]string{
		"[Content_Types].xml": `<?xml version="1.0"?><Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types"/>`,
		"word/document.xml": `<?xml version="1.0"?><w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"><w:body>` +
			body.String() + `</w:body></w:document>`,
	})
}

func zipped(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	// [Content_Types].xml first, as Word writes it.
	for _, name := range []string{"[Content_Types].xml", "word/document.xml", "notes.txt"} {
		content, ok := files[name]
		if !ok {
			continue
		}
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

// onePagePDF writes a single-page PDF showing each line with Helvetica.
func onePagePDF(lines ...string) []byte {
	var content bytes.Buffer
	content.WriteString("BT /F1 12 Tf 72 720 Td\n")
	for i, l := range lines {
		if i > 0 {
			content.WriteString("0 -14 Td\n")
		}
		fmt.Fprintf(&content, "(%s ) Tj\n", l)
	}
	content.WriteString("ET")

	objects := []string{
		"<< /Type /Catalog /Pages 2 0 R >>",
		"<< /Type /Pages /Kids [3 0 R] /Count 1 >>",
		"<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 4 0 R >> >> /Contents 5 0 R >>",
		"<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>",
		fmt.Sprintf("<< /Length %d >>\nstream\n%s\nendstream", content.Len(), content.String()),
	}

	var buf bytes.Buffer
	buf.WriteString("%PDF-1.4\n")
	offsets := make([]int, len(objects))
	for i, obj := range objects {
		offsets[i] = buf.Len()
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", i+1, obj)
	}
	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n0000000000 65535 f \n", len(objects)+1)
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(objects)+1, xref)
	return buf.Bytes()
}

func TestExtractText_DOCX(t *testing.T) {
	data := docx(t, "Jane   Doe", "Built|  APIs", "", "Skills: Go, SQL")

	text, err := ExtractText(context.Background(), data)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nBuilt APIs\n\nSkills: Go, SQL", text)
}

func TestExtractText_PDF(t *testing.T) {
	data := onePagePDF("Jane Doe", "jane@example.com", "Built APIs")

	text, err := ExtractText(context.Background(), data)
	require.NoError(t, err)
	assert.Contains(t, text, "Jane Doe")
	assert.Contains(t, text, "jane@example.com")
	assert.Contains(t, text, "Built APIs")
}

func TestExtractText_Failures(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{name: "plain text", data: []byte("just words"), want: ErrUnsupported},
		{name: "zip without document", data: zipped(t, map[string]string{"notes.txt": "hi"}), want: ErrUnsupported},
		{name: "empty document", data: docx(t, "", "   "), want: ErrNoText},
		{name: "truncated pdf", data: []byte("%PDF-1.4\n1 0 obj\n<< /Type /Catalog >>\nendobj\ntrailer\n%%EOF\n")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ExtractText(context.Background(), tt.data)
			require.Error(t, err)
			if tt.want != nil {
				assert.ErrorIs(t, err, tt.want)
			}
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "a b\n\nc", normalize("  a \t b \r\n\n\n\n c  \n"))
	assert.Equal(t, "office", normalize("oﬃce"))
	assert.Equal(t, "", normalize(" \n\t\n"))
}
