package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jcortes-dev/portfolio-backend/models"
)

// Me returns the authenticated user's profile.
func (c *Client) Me(ctx context.Context) (models.User, error) {
	return request[models.User](ctx, c, http.MethodGet, "/auth/me", nil)
}

// ProjectsAPI is the typed surface over the /projects resource.
type ProjectsAPI struct {
	c *Client
}

func (c *Client) Projects() ProjectsAPI {
	return ProjectsAPI{c}
}

// ProjectListOptions filter the public project listing.
type ProjectListOptions struct {
	Technology string
	Featured   *bool
}

// ProjectDraft is the creation payload for a project.
type ProjectDraft struct {
	Title           string                `json:"title"`
	Slug            string                `json:"slug"`
	Description     string                `json:"description"`
	LongDescription *string               `json:"long_description,omitempty"`
	Technologies    []string              `json:"technologies"`
	Images          []models.ProjectImage `json:"images"`
	GithubURL       *string               `json:"github_url,omitempty"`
	LiveURL         *string               `json:"live_url,omitempty"`
	IsFeatured      bool                  `json:"is_featured"`
	IsPublished     bool                  `json:"is_published"`
	DisplayOrder    int                   `json:"display_order"`
}

// ProjectPatch is a partial update; omitted fields stay untouched.
type ProjectPatch struct {
	Title           *string                `json:"title,omitempty"`
	Slug            *string                `json:"slug,omitempty"`
	Description     *string                `json:"description,omitempty"`
	LongDescription *string                `json:"long_description,omitempty"`
	Technologies    *[]string              `json:"technologies,omitempty"`
	Images          *[]models.ProjectImage `json:"images,omitempty"`
	GithubURL       *string                `json:"github_url,omitempty"`
	LiveURL         *string                `json:"live_url,omitempty"`
	IsFeatured      *bool                  `json:"is_featured,omitempty"`
	IsPublished     *bool                  `json:"is_published,omitempty"`
	DisplayOrder    *int                   `json:"display_order,omitempty"`
}

func (p ProjectsAPI) List(ctx context.Context, opts ProjectListOptions) ([]models.Project, error) {
	query := url.Values{}
	if opts.Technology != "" {
		query.Set("technology", opts.Technology)
	}
	if opts.Featured != nil {
		query.Set("featured", strconv.FormatBool(*opts.Featured))
	}

	path := "/projects"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return request[[]models.Project](ctx, p.c, http.MethodGet, path, nil)
}

func (p ProjectsAPI) ListAll(ctx context.Context) ([]models.Project, error) {
	return request[[]models.Project](ctx, p.c, http.MethodGet, "/projects/admin/all", nil)
}

func (p ProjectsAPI) Get(ctx context.Context, slug string) (models.Project, error) {
	return request[models.Project](ctx, p.c, http.MethodGet, "/projects/"+url.PathEscape(slug), nil)
}

func (p ProjectsAPI) Create(ctx context.Context, draft ProjectDraft) (models.Project, error) {
	return request[models.Project](ctx, p.c, http.MethodPost, "/projects", draft)
}

func (p ProjectsAPI) Update(ctx context.Context, id int64, patch ProjectPatch) (models.Project, error) {
	return request[models.Project](ctx, p.c, http.MethodPatch, fmt.Sprintf("/projects/%d", id), patch)
}

func (p ProjectsAPI) Delete(ctx context.Context, id int64) error {
	return p.c.do(ctx, http.MethodDelete, fmt.Sprintf("/projects/%d", id), nil, nil)
}

// SkillsAPI is the typed surface over the /skills resource.
type SkillsAPI struct {
	c *Client
}

func (c *Client) Skills() SkillsAPI {
	return SkillsAPI{c}
}

// SkillCategoryDraft is the creation payload for a skill category.
type SkillCategoryDraft struct {
	Name         string  `json:"name"`
	Slug         string  `json:"slug"`
	Icon         string  `json:"icon"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder int     `json:"display_order"`
	IsPublished  *bool   `json:"is_published,omitempty"`
}

// SkillCategoryPatch is a partial update; omitted fields stay untouched.
type SkillCategoryPatch struct {
	Name         *string `json:"name,omitempty"`
	Slug         *string `json:"slug,omitempty"`
	Icon         *string `json:"icon,omitempty"`
	Description  *string `json:"description,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsPublished  *bool   `json:"is_published,omitempty"`
}

// SkillDraft is the creation payload for a skill.
type SkillDraft struct {
	Name         string `json:"name"`
	CategoryID   int64  `json:"category_id"`
	Proficiency  *int   `json:"proficiency,omitempty"`
	DisplayOrder int    `json:"display_order"`
	IsPublished  *bool  `json:"is_published,omitempty"`
}

// SkillPatch is a partial update; omitted fields stay untouched.
type SkillPatch struct {
	Name         *string `json:"name,omitempty"`
	CategoryID   *int64  `json:"category_id,omitempty"`
	Proficiency  *int    `json:"proficiency,omitempty"`
	DisplayOrder *int    `json:"display_order,omitempty"`
	IsPublished  *bool   `json:"is_published,omitempty"`
}

func (s SkillsAPI) ListCategories(ctx context.Context) ([]models.SkillCategory, error) {
	return request[[]models.SkillCategory](ctx, s.c, http.MethodGet, "/skills/categories", nil)
}

func (s SkillsAPI) ListAllCategories(ctx context.Context) ([]models.SkillCategory, error) {
	return request[[]models.SkillCategory](ctx, s.c, http.MethodGet, "/skills/admin/categories", nil)
}

func (s SkillsAPI) GetCategory(ctx context.Context, slug string) (models.SkillCategory, error) {
	return request[models.SkillCategory](ctx, s.c, http.MethodGet, "/skills/categories/"+url.PathEscape(slug), nil)
}

func (s SkillsAPI) CreateCategory(ctx context.Context, draft SkillCategoryDraft) (models.SkillCategory, error) {
	return request[models.SkillCategory](ctx, s.c, http.MethodPost, "/skills/categories", draft)
}

func (s SkillsAPI) UpdateCategory(ctx context.Context, id int64, patch SkillCategoryPatch) (models.SkillCategory, error) {
	return request[models.SkillCategory](ctx, s.c, http.MethodPatch, fmt.Sprintf("/skills/categories/%d", id), patch)
}

func (s SkillsAPI) DeleteCategory(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/skills/categories/%d", id), nil, nil)
}

func (s SkillsAPI) CreateSkill(ctx context.Context, draft SkillDraft) (models.Skill, error) {
	return request[models.Skill](ctx, s.c, http.MethodPost, "/skills", draft)
}

func (s SkillsAPI) UpdateSkill(ctx context.Context, id int64, patch SkillPatch) (models.Skill, error) {
	return request[models.Skill](ctx, s.c, http.MethodPatch, fmt.Sprintf("/skills/%d", id), patch)
}

func (s SkillsAPI) DeleteSkill(ctx context.Context, id int64) error {
	return s.c.do(ctx, http.MethodDelete, fmt.Sprintf("/skills/%d", id), nil, nil)
}

// ContactAPI is the typed surface over the /contact resource.
type ContactAPI struct {
	c *Client
}

func (c *Client) Contact() ContactAPI {
	return ContactAPI{c}
}

// ContactListOptions filter the submission listing by flag state.
type ContactListOptions struct {
	IsRead     *bool
	IsArchived *bool
}

// ContactDraft is the public contact-form payload.
type ContactDraft struct {
	FirstName string  `json:"first_name"`
	LastName  *string `json:"last_name,omitempty"`
	Email     string  `json:"email"`
	Message   string  `json:"message"`
}

// ContactPatch can only flip the read/archived flags.
type ContactPatch struct {
	IsRead     *bool `json:"is_read,omitempty"`
	IsArchived *bool `json:"is_archived,omitempty"`
}

// ContactSubmitted acknowledges a contact-form submission.
type ContactSubmitted struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func (a ContactAPI) List(ctx context.Context, opts ContactListOptions) ([]models.ContactSubmission, error) {
	query := url.Values{}
	if opts.IsRead != nil {
		query.Set("is_read", strconv.FormatBool(*opts.IsRead))
	}
	if opts.IsArchived != nil {
		query.Set("is_archived", strconv.FormatBool(*opts.IsArchived))
	}

	path := "/contact"
	if encoded := query.Encode(); encoded != "" {
		path += "?" + encoded
	}
	return request[[]models.ContactSubmission](ctx, a.c, http.MethodGet, path, nil)
}

func (a ContactAPI) Get(ctx context.Context, id int64) (models.ContactSubmission, error) {
	return request[models.ContactSubmission](ctx, a.c, http.MethodGet, fmt.Sprintf("/contact/%d", id), nil)
}

func (a ContactAPI) Submit(ctx context.Context, draft ContactDraft) (ContactSubmitted, error) {
	return request[ContactSubmitted](ctx, a.c, http.MethodPost, "/contact", draft)
}

func (a ContactAPI) Update(ctx context.Context, id int64, patch ContactPatch) (models.ContactSubmission, error) {
	return request[models.ContactSubmission](ctx, a.c, http.MethodPatch, fmt.Sprintf("/contact/%d", id), patch)
}

func (a ContactAPI) Delete(ctx context.Context, id int64) error {
	return a.c.do(ctx, http.MethodDelete, fmt.Sprintf("/contact/%d", id), nil, nil)
}

func (a ContactAPI) Stats(ctx context.Context) (models.ContactStats, error) {
	return request[models.ContactStats](ctx, a.c, http.MethodGet, "/contact/stats", nil)
}

func (a ContactAPI) MarkAllRead(ctx context.Context) error {
	return a.c.do(ctx, http.MethodPost, "/contact/mark-all-read", nil, nil)
}
