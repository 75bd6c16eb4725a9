package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/jcortes-dev/portfolio-backend/database"
	"github.com/jcortes-dev/portfolio-backend/errs"
	"github.com/jcortes-dev/portfolio-backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type skillHandler struct {
	responder    Responder
	logger       zerolog.Logger
	categoryRepo *database.SkillCategoryRepo
	skillRepo    *database.SkillRepo
}

func newSkillHandler(categoryRepo *database.SkillCategoryRepo, skillRepo *database.SkillRepo) skillHandler {
	logger := log.With().Str("handlerName", "skillHandler").Logger()

	return skillHandler{
		responder:    NewResponder(logger),
		logger:       logger,
		categoryRepo: categoryRepo,
		skillRepo:    skillRepo,
	}
}

// listPublishedCategories returns published categories with their published
// skills for the public site.
func (h skillHandler) listPublishedCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindPublished()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "skill categories", err))
			return
		}

		h.responder.WriteJSON(w, emptyAsList(categories))
	}
}

// getCategoryBySlug returns a single published category.
func (h skillHandler) getCategoryBySlug() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		category, err := h.categoryRepo.FindBySlug(chi.URLParam(r, "slug"))
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "skill category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// listAllCategories returns every category including unpublished (admin only).
func (h skillHandler) listAllCategories() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categories, err := h.categoryRepo.FindAll()
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find categories", "skill categories", err))
			return
		}

		h.responder.WriteJSON(w, emptyAsList(categories))
	}
}

// createCategory creates a new skill category (admin only).
func (h skillHandler) createCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload SkillCategoryCreate
		if apiErr := decodeStrict(r, &payload); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if payload.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if payload.Slug == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("slug"))
			return
		}

		exists, err := h.categoryRepo.SlugExists(payload.Slug)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("check slug", "skill category", err))
			return
		}
		if exists {
			h.responder.WriteError(w, errs.NewBadRequestError("a category with this slug already exists"))
			return
		}

		category := models.SkillCategory{
			Name:         payload.Name,
			Slug:         payload.Slug,
			Icon:         payload.Icon,
			Description:  payload.Description,
			DisplayOrder: payload.DisplayOrder,
			IsPublished:  true,
			Skills:       []models.Skill{},
		}
		if payload.IsPublished != nil {
			category.IsPublished = *payload.IsPublished
		}

		if err := h.categoryRepo.Add(&category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create category", "skill category", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, category)
	}
}

// updateCategory applies a partial update to a category (admin only).
func (h skillHandler) updateCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, apiErr := pathID(r, "categoryID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		category, err := h.categoryRepo.FindByID(categoryID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "skill category", err))
			return
		}

		var patch SkillCategoryPatch
		if apiErr := decodeStrict(r, &patch); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		patch.Apply(category)

		if err := h.categoryRepo.Save(category); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update category", "skill category", err))
			return
		}

		h.responder.WriteJSON(w, category)
	}
}

// deleteCategory deletes a category and every skill it owns (admin only).
func (h skillHandler) deleteCategory() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, apiErr := pathID(r, "categoryID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if _, err := h.categoryRepo.FindByID(categoryID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "skill category", err))
			return
		}

		if err := h.categoryRepo.Delete(categoryID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete category", "skill category", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

// createSkill creates a new skill inside an existing category (admin only).
func (h skillHandler) createSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var payload SkillCreate
		if apiErr := decodeStrict(r, &payload); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if payload.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}

		if _, err := h.categoryRepo.FindByID(payload.CategoryID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find category", "skill category", err))
			return
		}

		skill := models.Skill{
			Name:         payload.Name,
			CategoryID:   payload.CategoryID,
			Proficiency:  80,
			DisplayOrder: payload.DisplayOrder,
			IsPublished:  true,
		}
		if payload.Proficiency != nil {
			skill.Proficiency = *payload.Proficiency
		}
		if payload.IsPublished != nil {
			skill.IsPublished = *payload.IsPublished
		}

		if apiErr := validateProficiency(skill.Proficiency); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if err := h.skillRepo.Add(&skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create skill", "skill", err))
			return
		}

		w.WriteHeader(http.StatusCreated)
		h.responder.WriteJSON(w, skill)
	}
}

// updateSkill applies a partial update to a skill (admin only).
func (h skillHandler) updateSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, apiErr := pathID(r, "skillID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		skill, err := h.skillRepo.FindByID(skillID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skill", "skill", err))
			return
		}

		var patch SkillPatch
		if apiErr := decodeStrict(r, &patch); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		// A category move must target an existing category.
		if patch.CategoryID != nil {
			if _, err := h.categoryRepo.FindByID(*patch.CategoryID); err != nil {
				h.responder.WriteError(w, wrapDatabaseError("find category", "skill category", err))
				return
			}
		}

		patch.Apply(skill)

		if apiErr := validateProficiency(skill.Proficiency); apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if err := h.skillRepo.Save(skill); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update skill", "skill", err))
			return
		}

		h.responder.WriteJSON(w, skill)
	}
}

// deleteSkill deletes a skill by ID (admin only).
func (h skillHandler) deleteSkill() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		skillID, apiErr := pathID(r, "skillID")
		if apiErr != nil {
			h.responder.WriteError(w, apiErr)
			return
		}

		if _, err := h.skillRepo.FindByID(skillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find skill", "skill", err))
			return
		}

		if err := h.skillRepo.Delete(skillID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete skill", "skill", err))
			return
		}

		h.responder.WriteNoContent(w)
	}
}

func validateProficiency(proficiency int) *errs.ApiErr {
	if proficiency < 0 || proficiency > 100 {
		return errs.NewInvalidFieldError("proficiency", "must be between 0 and 100")
	}
	return nil
}
