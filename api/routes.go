package api

import (
	"github.com/go-chi/chi/v5"
)

// setupRoutes registers the public site surface, the authenticated user
// surface and the admin content-management surface.
func setupRoutes(r chi.Router, handlers *routeHandlers, authMiddleware authMiddleware) {
	// Public routes
	r.Group(func(r chi.Router) {
		r.Use(RequestLoggingMiddleware)

		r.Post("/auth/login", handlers.authHandler.login())
		r.Post("/auth/register", handlers.authHandler.register())

		r.Get("/projects", handlers.projectHandler.listPublished())
		r.Get("/projects/{slug}", handlers.projectHandler.getBySlug())

		r.Get("/skills/categories", handlers.skillHandler.listPublishedCategories())
		r.Get("/skills/categories/{slug}", handlers.skillHandler.getCategoryBySlug())

		r.Post("/contact", handlers.contactHandler.submit())
	})

	// Authenticated routes
	r.Group(func(r chi.Router) {
		r.Use(RequestLoggingMiddleware)
		r.Use(authMiddleware.authenticate)

		r.Get("/auth/me", handlers.authHandler.me())
	})

	// Admin routes
	r.Group(func(r chi.Router) {
		r.Use(RequestLoggingMiddleware)
		r.Use(authMiddleware.authenticate)
		r.Use(authMiddleware.requireAdmin)

		r.Get("/projects/admin/all", handlers.projectHandler.listAll())
		r.Post("/projects", handlers.projectHandler.createProject())
		r.Patch("/projects/{projectID}", handlers.projectHandler.updateProject())
		r.Delete("/projects/{projectID}", handlers.projectHandler.deleteProject())
		r.Post("/projects/{projectID}/reorder", handlers.projectHandler.reorderProject())

		r.Get("/skills/admin/categories", handlers.skillHandler.listAllCategories())
		r.Post("/skills/categories", handlers.skillHandler.createCategory())
		r.Patch("/skills/categories/{categoryID}", handlers.skillHandler.updateCategory())
		r.Delete("/skills/categories/{categoryID}", handlers.skillHandler.deleteCategory())
		r.Post("/skills", handlers.skillHandler.createSkill())
		r.Patch("/skills/{skillID}", handlers.skillHandler.updateSkill())
		r.Delete("/skills/{skillID}", handlers.skillHandler.deleteSkill())

		r.Get("/contact", handlers.contactHandler.list())
		r.Get("/contact/stats", handlers.contactHandler.stats())
		r.Post("/contact/mark-all-read", handlers.contactHandler.markAllRead())
		r.Get("/contact/{submissionID}", handlers.contactHandler.get())
		r.Patch("/contact/{submissionID}", handlers.contactHandler.update())
		r.Delete("/contact/{submissionID}", handlers.contactHandler.deleteSubmission())
	})
}
