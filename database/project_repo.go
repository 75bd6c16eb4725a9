package database

import (
	"github.com/jcortes-dev/portfolio-backend/models"
	"gorm.io/gorm"
)

type ProjectRepo struct {
	db *gorm.DB
}

func NewProjectRepo(db *gorm.DB) *ProjectRepo {
	return &ProjectRepo{db}
}

// ProjectFilter narrows the public project listing.
type ProjectFilter struct {
	Technology *string
	Featured   *bool
	Offset     int
	Limit      int
}

// FindPublished returns published projects ordered by display order, newest
// first within the same order slot. Technology filtering happens in memory
// because the tag list lives in a JSON column.
func (r *ProjectRepo) FindPublished(filter ProjectFilter) ([]*models.Project, error) {
	query := r.db.Where("is_published = ?", true)

	if filter.Featured != nil {
		query = query.Where("is_featured = ?", *filter.Featured)
	}

	var projects []*models.Project
	if err := query.Order("display_order asc, created_at desc").Find(&projects).Error; err != nil {
		return nil, err
	}

	if filter.Technology != nil {
		filtered := projects[:0]
		for _, p := range projects {
			if p.HasTechnology(*filter.Technology) {
				filtered = append(filtered, p)
			}
		}
		projects = filtered
	}

	return paginate(projects, filter.Offset, filter.Limit), nil
}

// FindAll returns every project, published or not.
func (r *ProjectRepo) FindAll(offset, limit int) ([]*models.Project, error) {
	var projects []*models.Project
	err := r.db.Order("display_order asc, created_at desc").
		Offset(offset).Limit(limit).
		Find(&projects).Error
	return projects, err
}

// FindBySlug returns a project by its slug. Unpublished projects are only
// visible when includeUnpublished is set.
func (r *ProjectRepo) FindBySlug(slug string, includeUnpublished bool) (*models.Project, error) {
	query := r.db.Where("slug = ?", slug)
	if !includeUnpublished {
		query = query.Where("is_published = ?", true)
	}

	var project models.Project
	if err := query.First(&project).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// FindByID returns a project by its ID
func (r *ProjectRepo) FindByID(id int64) (*models.Project, error) {
	var project models.Project
	if err := r.db.First(&project, id).Error; err != nil {
		return nil, err
	}
	return &project, nil
}

// SlugExists reports whether any project already uses the given slug.
func (r *ProjectRepo) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Project{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Add inserts a new project into the database
func (r *ProjectRepo) Add(project *models.Project) error {
	return r.db.Create(project).Error
}

// Save updates an existing project in the database
func (r *ProjectRepo) Save(project *models.Project) error {
	return r.db.Save(project).Error
}

// Delete removes a project from the database by id
func (r *ProjectRepo) Delete(id int64) error {
	return r.db.Delete(&models.Project{}, id).Error
}

func paginate[T any](items []T, offset, limit int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
