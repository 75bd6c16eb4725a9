package api

import (
	"encoding/json"
	"net/http"

	"github.com/jcortes-dev/portfolio-backend/errs"
	"github.com/jcortes-dev/portfolio-backend/models"
)

// routeHandlers contains all the handlers for different route types
type routeHandlers struct {
	authHandler    authHandler
	projectHandler projectHandler
	skillHandler   skillHandler
	contactHandler contactHandler
}

// ErrorResponse represents an error response from the API. The detail field
// carries the human-readable message clients surface.
type ErrorResponse struct {
	Detail  string `json:"detail"`
	Status  string `json:"status"`
	Field   string `json:"field,omitempty"`
	Details string `json:"details,omitempty"`
}

// Token is the login exchange response.
type Token struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// decodeStrict decodes a JSON request body into v, rejecting unknown fields
// so malformed patch payloads fail loudly instead of silently dropping keys.
func decodeStrict(r *http.Request, v any) *errs.ApiErr {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(v); err != nil {
		return errs.NewInvalidJSONError(err)
	}
	return nil
}

// UserCreate is the first-admin registration payload.
type UserCreate struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"full_name"`
}

// ProjectCreate is the creation payload for a project.
type ProjectCreate struct {
	Title           string                `json:"title"`
	Slug            string                `json:"slug"`
	Description     string                `json:"description"`
	LongDescription *string               `json:"long_description"`
	Technologies    []string              `json:"technologies"`
	Images          []models.ProjectImage `json:"images"`
	GithubURL       *string               `json:"github_url"`
	LiveURL         *string               `json:"live_url"`
	IsFeatured      bool                  `json:"is_featured"`
	IsPublished     bool                  `json:"is_published"`
	DisplayOrder    int                   `json:"display_order"`
}

// ProjectPatch is a partial update; nil fields are left untouched.
type ProjectPatch struct {
	Title           *string                `json:"title"`
	Slug            *string                `json:"slug"`
	Description     *string                `json:"description"`
	LongDescription *string                `json:"long_description"`
	Technologies    *[]string              `json:"technologies"`
	Images          *[]models.ProjectImage `json:"images"`
	GithubURL       *string                `json:"github_url"`
	LiveURL         *string                `json:"live_url"`
	IsFeatured      *bool                  `json:"is_featured"`
	IsPublished     *bool                  `json:"is_published"`
	DisplayOrder    *int                   `json:"display_order"`
}

// Apply copies the set fields onto the project.
func (p ProjectPatch) Apply(project *models.Project) {
	if p.Title != nil {
		project.Title = *p.Title
	}
	if p.Slug != nil {
		project.Slug = *p.Slug
	}
	if p.Description != nil {
		project.Description = *p.Description
	}
	if p.LongDescription != nil {
		project.LongDescription = p.LongDescription
	}
	if p.Technologies != nil {
		project.Technologies = *p.Technologies
	}
	if p.Images != nil {
		project.Images = *p.Images
	}
	if p.GithubURL != nil {
		project.GithubURL = p.GithubURL
	}
	if p.LiveURL != nil {
		project.LiveURL = p.LiveURL
	}
	if p.IsFeatured != nil {
		project.IsFeatured = *p.IsFeatured
	}
	if p.IsPublished != nil {
		project.IsPublished = *p.IsPublished
	}
	if p.DisplayOrder != nil {
		project.DisplayOrder = *p.DisplayOrder
	}
}

// SkillCategoryCreate is the creation payload for a skill category.
type SkillCategoryCreate struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Icon         string  `json:"icon"`
	Description  *string `json:"description"`
	DisplayOrder int     `json:"display_order"`
	IsPublished  *bool   `json:"is_published"`
}

// SkillCategoryPatch is a partial update; nil fields are left untouched.
type SkillCategoryPatch struct {
	Name         *string `json:"name"`
	Slug         *string `json:"slug"`
	Icon         *string `json:"icon"`
	Description  *string `json:"description"`
	DisplayOrder *int    `json:"display_order"`
	IsPublished  *bool   `json:"is_published"`
}

func (p SkillCategoryPatch) Apply(category *models.SkillCategory) {
	if p.Name != nil {
		category.Name = *p.Name
	}
	if p.Slug != nil {
		category.Slug = *p.Slug
	}
	if p.Icon != nil {
		category.Icon = *p.Icon
	}
	if p.Description != nil {
		category.Description = p.Description
	}
	if p.DisplayOrder != nil {
		category.DisplayOrder = *p.DisplayOrder
	}
	if p.IsPublished != nil {
		category.IsPublished = *p.IsPublished
	}
}

// SkillCreate is the creation payload for a skill.
type SkillCreate struct {
	Name         string `json:"name"`
	CategoryID   int64  `json:"category_id"`
	Proficiency  *int   `json:"proficiency"`
	DisplayOrder int    `json:"display_order"`
	IsPublished  *bool  `json:"is_published"`
}

// SkillPatch is a partial update; nil fields are left untouched.
type SkillPatch struct {
	Name         *string `json:"name"`
	CategoryID   *int64  `json:"category_id"`
	Proficiency  *int    `json:"proficiency"`
	DisplayOrder *int    `json:"display_order"`
	IsPublished  *bool   `json:"is_published"`
}

func (p SkillPatch) Apply(skill *models.Skill) {
	if p.Name != nil {
		skill.Name = *p.Name
	}
	if p.CategoryID != nil {
		skill.CategoryID = *p.CategoryID
	}
	if p.Proficiency != nil {
		skill.Proficiency = *p.Proficiency
	}
	if p.DisplayOrder != nil {
		skill.DisplayOrder = *p.DisplayOrder
	}
	if p.IsPublished != nil {
		skill.IsPublished = *p.IsPublished
	}
}

// ContactCreate is the public contact-form payload.
type ContactCreate struct {
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name"`
	Email     string  `json:"email"`
	Message   string  `json:"message"`
}

// ContactPatch can only flip the two status flags; everything else on a
// submission is immutable.
type ContactPatch struct {
	IsRead     *bool `json:"is_read"`
	IsArchived *bool `json:"is_archived"`
}

func (p ContactPatch) Apply(submission *models.ContactSubmission) {
	if p.IsRead != nil {
		submission.IsRead = *p.IsRead
	}
	if p.IsArchived != nil {
		submission.IsArchived = *p.IsArchived
	}
}

// ContactSubmitted acknowledges a public contact-form submission.
type ContactSubmitted struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
