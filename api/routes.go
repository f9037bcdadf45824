package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes wires every endpoint. Reads are public; mutations need a
// session; event control and the newsletter are admin-gated (MC checks
// happen inside the event handler, which knows the event).
func setupRoutes(r chi.Router, handlers *routeHandlers, auth authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)

		r.Get("/api/projects", handlers.projectHandler.listProjects())
		r.Get("/api/projects/trending", handlers.projectHandler.trendingProjects())
		r.Get("/api/project/{projectID}", handlers.projectHandler.getProject())

		r.Get("/api/tags/{tagType}", handlers.tagHandler.listTags())

		r.Get("/api/events", handlers.eventHandler.listEvents())
		r.Get("/api/events/{eventID}", handlers.eventHandler.getEvent())
		r.Get("/api/events/{eventID}/queue", handlers.eventHandler.getQueue())

		r.Get("/api/weeks", handlers.attendanceHandler.listWeeks())

		r.Get("/api/newsletter/unsubscribe", handlers.newsletterHandler.unsubscribe())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(ColoredHTTPLoggingMiddleware)
		r.Use(auth.authenticate)

		r.Post("/api/project", handlers.projectHandler.createProject())
		r.Put("/api/project/{projectID}", handlers.projectHandler.updateProject())
		r.Post("/api/projects/{projectID}/like", handlers.projectHandler.likeProject())
		r.Delete("/api/projects/{projectID}/like", handlers.projectHandler.unlikeProject())
		r.Post("/api/project/{projectID}/thumbnail-upload", handlers.projectHandler.thumbnailUploadURL())

		r.Post("/api/tags/{tagType}", handlers.tagHandler.createTag())

		r.Post("/api/events/{eventID}/queue", handlers.eventHandler.submitToQueue())
		r.Post("/api/events/{eventID}/queue/reorder", handlers.eventHandler.reorderQueue())
		r.Post("/api/events/{eventID}/advance", handlers.eventHandler.advance())
		r.Post("/api/events/{eventID}/previous", handlers.eventHandler.previous())
		r.Patch("/api/events/{eventID}/queue/{entryID}", handlers.eventHandler.updateEntryStatus())

		r.Post("/api/weeks/{weekID}/checkin", handlers.attendanceHandler.checkIn())
		r.Get("/api/weeks/{weekID}/attendance", handlers.attendanceHandler.listAttendance())

		r.Get("/api/me", handlers.hackerHandler.getProfile())
		r.Put("/api/me", handlers.hackerHandler.updateProfile())
		r.Post("/api/me/avatar-upload", handlers.hackerHandler.avatarUploadURL())

		// Admin-only routes
		r.Group(func(r chi.Router) {
			r.Use(auth.requireAdmin)

			r.Post("/api/events", handlers.eventHandler.createEvent())
			r.Patch("/api/events/{eventID}", handlers.eventHandler.updateEvent())

			r.Post("/api/weeks", handlers.attendanceHandler.createWeek())

			r.Get("/api/newsletters", handlers.newsletterHandler.listNewsletters())
			r.Post("/api/newsletter/generate", handlers.newsletterHandler.generate())
			r.Post("/api/newsletter/{newsletterID}/send", handlers.newsletterHandler.send())
		})
	})
}
