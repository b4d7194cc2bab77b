package web

import (
	"github.com/dkadlec/face-lounge/internal/web/handlers"
	"github.com/go-chi/chi/v5"
)

func (s *Server) setupRoutes() {
	recognitionHandler := handlers.NewRecognitionHandler(s.workflow)
	profilesHandler := handlers.NewProfilesHandler(s.profiles)
	messagesHandler := handlers.NewMessagesHandler(s.messages, s.config.Chat.HistoryLimit)

	// Health check
	s.router.Get("/api/v1/health", handlers.HealthCheck)

	// API routes
	s.router.Route("/api/v1", func(r chi.Router) {
		// Faces
		r.Post("/faces/register", recognitionHandler.Register)
		r.Post("/faces/recognize", recognitionHandler.Recognize)

		// Profiles
		r.Get("/profiles", profilesHandler.List)

		// Chat messages
		r.Get("/messages", messagesHandler.List)
		r.Post("/messages", messagesHandler.Create)
	})
}
