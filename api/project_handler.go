package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/jcortes-dev/portfolio-backend/database"
	"github.com/jcortes-dev/portfolio-backend/errs"
	"github.com/jcortes-dev/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type projectHandler struct {
	responder   Responder
	logger      zerolog.Logger
	projectRepo *database.ProjectRepo
}

func newProjectHandler(projectRepo *database.ProjectRepo) projectHandler {
	logger := log.With().Str("handlerName", "projectHandler").Logger()

	return projectHandler{
		responder:   NewResponder(logger),
		logger:      logger,
		projectRepo: projectRepo,
	}
}

// listPublished returns published projects for the public site, optionally
// filtered by technology tag or featured flag.
func (h projectHandler) listPublished() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := database.ProjectFilter{
			Offset: queryInt(r, "skip", 0),
			Limit:  queryInt(r, "limit", 100),
		}

		if technology := r.URL.Query().Get("technology"); technology != "" {
			filter.Technology = &technology
		}
		if featured := r.URL.Query().Get("featured"); featured != "" {
			parsed, err := strconv.ParseBool(featured)
			if err != nil {
				h.responder.WriteError(w, errs.NewInvalidFieldError("featured", "must be a boolean"))
				return
			}
			filter.Featured = &parsed
		}

		projects, err := h.projectRepo.FindPublished(filter)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, emptyAsList(projects))
	}
}

// getBySlug returns a single project. Unpublished projects are only served
// when preview=true is passed.
func (h projectHandler) getBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		preview := r.URL.Query().Get("preview") == "true"

		project, err := h.projectRepo.FindBySlug(slug, preview)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// listAll returns every project including unpublished ones (admin only).
func (h projectHandler) listAll() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projects, err := h.projectRepo.FindAll(queryInt(r, "skip", 0), queryInt(r, "limit", 100))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find projects", "projects", err))
			return
		}

		h.responder.WriteJSON(w, emptyAsList(projects))
	}
}

// createProject creates a new project (admin only).
func (h projectHandler) createProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload ProjectCreate
		if apiErr := decodeStrict(r, &payload); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if payload.Title == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("title"))
			return
		}
		if payload.Slug == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("slug"))
			return
		}
		if err := validateTechnologies(payload.Technologies); err != nil {
			h.responder.WriteError(w, err)
			return
		}

		exists, err := h.projectRepo.SlugExists(payload.Slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check slug", "project", err))
			return
		}
		if exists {
			h.responder.WriteError(w, errs.NewBadRequestError("a project with this slug already exists"))
			return
		}

		project := models.Project{
			Title:           payload.Title,
			Slug:            payload.Slug,
			Description:     payload.Description,
			LongDescription: payload.LongDescription,
			Technologies:    payload.Technologies,
			Images:          payload.Images,
			GithubURL:       payload.GithubURL,
			LiveURL:         payload.LiveURL,
			IsFeatured:      payload.IsFeatured,
			IsPublished:     payload.IsPublished,
			DisplayOrder:    payload.DisplayOrder,
		}
		project.NormalizeImages()

		if err := h.projectRepo.Add(&project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create project", "project", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, project)
	}
}

// updateProject applies a partial update to a project (admin only).
func (h projectHandler) updateProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := pathID(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		var patch ProjectPatch
		if apiErr := decodeStrict(r, &patch); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if patch.Technologies != nil {
			if err := validateTechnologies(*patch.Technologies); err != nil {
				h.responder.WriteError(w, err)
				return
			}
		}

		patch.Apply(project)
		project.NormalizeImages()

		if err := h.projectRepo.Save(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// deleteProject deletes a project by ID (admin only).
func (h projectHandler) deleteProject() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := pathID(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if _, err := h.projectRepo.FindByID(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		if err := h.projectRepo.Delete(projectID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete project", "project", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// reorderProject changes a project's display order (admin only).
func (h projectHandler) reorderProject() http.HandlerFunc {
	type reorderPayload struct {
		NewOrder int `json:"new_order"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		projectID, apiErr := pathID(r, "projectID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		var payload reorderPayload
		if apiErr := decodeStrict(r, &payload); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		project, err := h.projectRepo.FindByID(projectID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find project", "project", err))
			return
		}

		project.DisplayOrder = payload.NewOrder
		if err := h.projectRepo.Save(project); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update project", "project", err))
			return
		}

		h.responder.WriteJSON(w, project)
	}
}

// validateTechnologies rejects duplicate tags; order is preserved as given.
func validateTechnologies(technologies []string) *errs.ApiErr {
	seen := make(map[string]struct{}, len(technologies))
	for _, t := range technologies {
		if t == "" {
			return errs.NewInvalidFieldError("technologies", "tags must be non-empty")
		}
		if _, ok := seen[t]; ok {
			return errs.NewInvalidFieldError("technologies", "duplicate tag: "+t)
		}
		seen[t] = struct{}{}
	}
	return nil
}

// pathID parses a numeric ID path parameter.
func pathID(r *http.Request, name string) (int64, *errs.ApiErr) {
	raw := chi.URLParam(r, name)
	if raw == "" {
		return 0, errs.NewBadRequestError("missing " + name)
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, errs.NewBadRequestError("invalid " + name)
	}
	return id, nil
}

// queryInt parses an optional integer query parameter.
func queryInt(r *http.Request, name string, defaultValue int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(raw)
	if err != nil || value < 0 {
		return defaultValue
	}
	return value
}

// emptyAsList keeps empty collections rendering as [] instead of null.
func emptyAsList[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}
