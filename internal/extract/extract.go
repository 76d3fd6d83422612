// Package extract turns uploaded documents into Markdown or plain text ready
// for chunking.
package extract

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"salescoach-ai/internal/contextutil"
)

var (
	// ErrUnsupportedType is returned for documents that cannot be converted to text.
	ErrUnsupportedType = errors.New("unsupported document type")
	// ErrNoText is returned when a supported document yields no text.
	ErrNoText = errors.New("document contains no text")
	// ErrUnreadable is returned when a supported document cannot be parsed.
	ErrUnreadable = errors.New("document could not be read")
)

// Kind is a supported document format.
type Kind string

// Supported kinds.
const (
	KindMarkdown Kind = "markdown"
	KindText     Kind = "text"
	KindHTML     Kind = "html"
	KindPDF      Kind = "pdf"
)

var mimeKinds = map[string]Kind{
	"text/markdown":   KindMarkdown,
	"text/x-markdown": KindMarkdown,
	"text/plain":      KindText,
	"text/html":       KindHTML,
	"application/pdf": KindPDF,
}

var extKinds = map[string]Kind{
	".md":       KindMarkdown,
	".markdown": KindMarkdown,
	".txt":      KindText,
	".text":     KindText,
	".html":     KindHTML,
	".htm":      KindHTML,
	".pdf":      KindPDF,
}

// ContentType returns the canonical MIME type for a kind.
func (k Kind) ContentType() string {
	switch k {
	case KindMarkdown:
		return "text/markdown"
	case KindHTML:
		return "text/html"
	case KindPDF:
		return "application/pdf"
	default:
		return "text/plain"
	}
}

// DetectKind resolves a document kind from its content type, falling back to
// the file extension when the type is missing or generic.
func DetectKind(filename, contentType string) (Kind, error) {
	if mediaType, _, err := mime.ParseMediaType(contentType); err == nil {
		if kind, ok := mimeKinds[strings.ToLower(mediaType)]; ok {
			return kind, nil
		}
	}
	if kind, ok := extKinds[strings.ToLower(filepath.Ext(filename))]; ok {
		return kind, nil
	}
	return "", fmt.Errorf("%w: %q (%s)", ErrUnsupportedType, filename, contentType)
}

// Extractor converts documents to chunkable text.
type Extractor struct {
	html *htmlConverter
}

// New creates an Extractor.
func New() *Extractor {
	return &Extractor{html: newHTMLConverter()}
}

// Extract returns the text of a document. Markdown and plain text pass
// through, HTML is converted to Markdown and PDF pages are read as plain text.
func (e *Extractor) Extract(ctx context.Context, filename, contentType string, content []byte) (string, error) {
	kind, err := DetectKind(filename, contentType)
	if err != nil {
		return "", err
	}

	var text string
	switch kind {
	case KindMarkdown, KindText:
		if !utf8.Valid(content) {
			return "", fmt.Errorf("%w: %s is not valid UTF-8", ErrUnsupportedType, filename)
		}
		text = string(content)
	case KindHTML:
		text, err = e.html.Convert(string(content))
	case KindPDF:
		text, err = pdfText(content)
	}
	if err != nil {
		return "", fmt.Errorf("%w: failed to extract %s: %w", ErrUnreadable, filename, err)
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return "", fmt.Errorf("%w: %s", ErrNoText, filename)
	}

	contextutil.LoggerFromContext(ctx).DebugContext(ctx, "extracted document",
		"filename", filename, "kind", kind, "chars", utf8.RuneCountInString(text))
	return text, nil
}
