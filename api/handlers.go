package api

import (
	"github.com/sundai-club/sundai-backend/database"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, deps Deps) *routeHandlers {
	return &routeHandlers{
		projectHandler:    newProjectHandler(database.ProjectRepo(), database.LikeRepo(), database.TagRepo(), deps.Trending, deps.Storage),
		tagHandler:        newTagHandler(database.TagRepo()),
		eventHandler:      newEventHandler(database.EventRepo()),
		attendanceHandler: newAttendanceHandler(database.WeekRepo()),
		hackerHandler:     newHackerHandler(database.HackerRepo(), deps.Storage),
		newsletterHandler: newNewsletterHandler(database.NewsletterRepo(), deps.Newsletter),
	}
}
