package api

import "github.com/sundai-club/sundai-backend/services"

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	projectHandler    projectHandler
	tagHandler        tagHandler
	eventHandler      eventHandler
	attendanceHandler attendanceHandler
	hackerHandler     hackerHandler
	newsletterHandler newsletterHandler
}

// Deps are the service collaborators the handlers call out to.
type Deps struct {
	Trending   *services.TrendingService
	Newsletter *services.NewsletterService
	Storage    *services.Storage
}

// ErrorResponse represents an error response from the API
// @Description Error response structure
type ErrorResponse struct {
	Error   string `json:"error" example:"Internal Server Error"`
	Status  string `json:"status" example:"error"`
	Field   string `json:"field,omitempty" example:"title"`
	Details string `json:"details,omitempty" example:"Additional error details"`
	Cause   string `json:"cause,omitempty" example:"Underlying error cause"`
}
