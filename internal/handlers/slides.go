package handlers

import (
	"html/template"
	"net/http"

	"github.com/go-chi/chi/v5"

	"salescoach-ai/internal/contextutil"
	"salescoach-ai/internal/learning"
	"salescoach-ai/internal/service"
)

// SlidesHandler serves the slides of a learning path as an HTML page.
type SlidesHandler struct {
	learning service.LearningService
	template *template.Template
}

type slidePageData struct {
	Title       string
	Description string
	Slides      []slideData
}

type slideData struct {
	Number  int
	Title   string
	Content template.HTML
}

var slidesTemplate = template.Must(template.New("slides").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>{{.Title}}</title>
  <style>
    :root {
      color-scheme: dark;
    }
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 900px;
      line-height: 1.7;
      background: #050b18;
      color: #e4ecff;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid rgba(148, 163, 184, 0.2);
      padding-bottom: 1.5rem;
    }
    h1 {
      margin-top: 0;
      color: #fff;
      font-size: 2rem;
    }
    section {
      background: rgba(12, 19, 35, 0.85);
      border: 1px solid rgba(99, 102, 241, 0.2);
      border-radius: 16px;
      padding: 2rem;
      margin-bottom: 1.5rem;
    }
    section h2 {
      color: #c7d2fe;
      margin-top: 0;
    }
    .number {
      color: #94a3b8;
      font-size: 0.9rem;
    }
    @media (max-width: 640px) {
      body {
        padding: 1rem;
      }
      section {
        padding: 1.25rem;
      }
    }
  </style>
</head>
<body>
  <header>
    <h1>{{.Title}}</h1>
    {{if .Description}}<p>{{.Description}}</p>{{end}}
  </header>
  {{range .Slides}}
  <section>
    <p class="number">Slide {{.Number}}</p>
    <h2>{{.Title}}</h2>
    {{.Content}}
  </section>
  {{else}}
  <p>This learning path has no slides.</p>
  {{end}}
</body>
</html>`))

// NewSlidesHandler creates a new SlidesHandler.
func NewSlidesHandler(learning service.LearningService) *SlidesHandler {
	return &SlidesHandler{learning: learning, template: slidesTemplate}
}

// ServeHTTP handles GET /learning-paths/{pathID}/slides.
func (h *SlidesHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	path, err := h.learning.Get(ctx, chi.URLParam(r, "pathID"))
	if err != nil {
		status, message := errorStatus(err, "failed to load learning path")
		if status >= http.StatusInternalServerError {
			logger.ErrorContext(ctx, "failed to load learning path", "error", err)
		}
		http.Error(w, message, status)
		return
	}

	page := slidePageData{Title: path.Title, Description: path.Description}
	for _, a := range path.Activities {
		slide, ok := a.Config.(learning.SlideConfig)
		if !ok {
			continue
		}
		page.Slides = append(page.Slides, slideData{
			Number: len(page.Slides) + 1,
			Title:  a.Title,
			// Rendered by goldmark without raw HTML passthrough.
			Content: template.HTML(slide.HTML),
		})
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, page); err != nil {
		logger.ErrorContext(ctx, "failed to execute slides template", "path_id", path.ID, "error", err)
	}
}
