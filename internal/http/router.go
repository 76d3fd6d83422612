package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"salescoach-ai/internal/handlers"
	"salescoach-ai/internal/service"
)

// Deps holds dependencies for the HTTP router.
type Deps struct {
	TopicService      service.TopicService
	DocumentService   service.DocumentService
	ChatService       service.ChatService
	LearningService   service.LearningService
	EvaluationService service.EvaluationService
	SpeechService     service.SpeechService

	// Health checks.
	Index handlers.Pinger
	Blobs handlers.Pinger
}

// NewRouter creates a new HTTP router with the provided dependencies.
func NewRouter(deps *Deps) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(Tracing)
	r.Use(LoggerMiddleware)
	r.Use(RequestLogger)
	r.Use(CORS)

	topics := handlers.NewTopicHandler(deps.TopicService)
	documents := handlers.NewDocumentHandler(deps.DocumentService)
	chat := handlers.NewChatHandler(deps.ChatService)
	paths := handlers.NewLearningHandler(deps.LearningService)
	evaluations := handlers.NewEvaluationHandler(deps.EvaluationService)

	r.Route("/api", func(r chi.Router) {
		r.Method(http.MethodGet, "/health", handlers.NewHealthHandler(deps.Index, deps.Blobs))

		r.Route("/topics", func(r chi.Router) {
			r.Get("/", topics.List)
			r.Post("/", topics.Create)
			r.Route("/{topicID}", func(r chi.Router) {
				r.Get("/", topics.Get)
				r.Put("/", topics.Update)
				r.Delete("/", topics.Delete)

				r.Get("/documents", documents.List)
				r.Post("/documents", documents.Upload)
				r.Post("/reindex", documents.Reindex)

				r.Get("/learning-paths", paths.List)
				r.Post("/learning-paths", paths.Generate)

				r.Get("/evaluations", evaluations.List)
				r.Post("/evaluations", evaluations.Evaluate)
			})
		})

		r.Get("/documents/{documentID}/download", documents.Download)
		r.Post("/documents/{documentID}/reingest", documents.Reingest)
		r.Delete("/documents/{documentID}", documents.Delete)

		r.Post("/search", chat.Search)
		r.Handle("/chat", chat)

		r.Get("/learning-paths/{pathID}", paths.Get)
		r.Delete("/learning-paths/{pathID}", paths.Delete)
		r.Put("/activities/{activityID}", paths.UpdateActivity)

		r.Get("/evaluations/{evaluationID}", evaluations.Get)

		r.Method(http.MethodPost, "/tts", handlers.NewSpeechHandler(deps.SpeechService))
	})

	r.Method(http.MethodGet, "/learning-paths/{pathID}/slides", handlers.NewSlidesHandler(deps.LearningService))

	return r
}
