package learning

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Renderer converts slide Markdown to HTML. Raw HTML in the source is escaped.
type Renderer struct {
	md goldmark.Markdown
}

// NewRenderer creates a Renderer with GitHub-flavoured Markdown enabled.
func NewRenderer() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Typographer,
			),
			goldmark.WithParserOptions(
				parser.WithAutoHeadingID(),
			),
		),
	}
}

// Render returns the HTML for md.
func (r *Renderer) Render(md string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(md), &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}

// RenderSlides fills the HTML of every slide activity in place.
func (r *Renderer) RenderSlides(activities []Activity) error {
	for i, a := range activities {
		slide, ok := a.Config.(SlideConfig)
		if !ok {
			continue
		}
		html, err := r.Render(slide.Markdown)
		if err != nil {
			return fmt.Errorf("activity %d: %w", a.Position, err)
		}
		slide.HTML = html
		activities[i].Config = slide
	}
	return nil
}
