// Package notes turns uploaded study material into plain text the analysis
// pipeline can work with.
package notes

import (
	"bytes"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ledongthuc/pdf"
)

// MaxUploadBytes is the largest upload accepted.
const MaxUploadBytes = 5 << 20

// ErrUnsupportedUpload indicates the uploaded file is neither a PDF nor
// readable text.
type ErrUnsupportedUpload struct {
	ContentType string
}

func (e *ErrUnsupportedUpload) Error() string {
	return fmt.Sprintf("unsupported upload type %q: expected a PDF or plain text", e.ContentType)
}

// ErrEmptyNotes indicates extraction produced no usable text.
type ErrEmptyNotes struct{}

func (e *ErrEmptyNotes) Error() string { return "uploaded notes contain no readable text" }

var pdfMagic = []byte("%PDF-")

// ExtractText converts an uploaded file into plain text. PDFs are detected by
// magic bytes regardless of the declared content type; anything else must be
// valid UTF-8.
func ExtractText(data []byte, contentType string) (string, error) {
	if len(data) > MaxUploadBytes {
		return "", fmt.Errorf("upload of %d bytes exceeds the %d byte limit", len(data), MaxUploadBytes)
	}

	var text string
	var err error
	switch {
	case bytes.HasPrefix(data, pdfMagic):
		text, err = extractPDF(data)
	case utf8.Valid(data):
		text = string(data)
	default:
		return "", &ErrUnsupportedUpload{ContentType: contentType}
	}
	if err != nil {
		return "", err
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", &ErrEmptyNotes{}
	}
	return text, nil
}

func extractPDF(data []byte) (string, error) {
	r, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("opening PDF: %w", err)
	}

	var b strings.Builder
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			// Skip unreadable pages rather than failing the whole upload.
			continue
		}
		b.WriteString(content)
		b.WriteString("\n")
	}
	return b.String(), nil
}
