package api

import (
	"github.com/jcortes-dev/portfolio-backend/database"
	"github.com/jcortes-dev/portfolio-backend/services"
)

// initializeHandlers creates and returns all handlers organized in a routeHandlers struct
func initializeHandlers(database database.Database, c map[string]string) *routeHandlers {
	notifier := services.NewNotifier(c)

	return &routeHandlers{
		authHandler:    newAuthHandler(database.UserRepo(), newTokenIssuer(c)),
		projectHandler: newProjectHandler(database.ProjectRepo()),
		skillHandler:   newSkillHandler(database.SkillCategoryRepo(), database.SkillRepo()),
		contactHandler: newContactHandler(database.ContactRepo(), notifier),
	}
}
