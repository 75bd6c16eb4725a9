package database

import (
	"github.com/jcortes-dev/portfolio-backend/models"
	"gorm.io/gorm"
)

type SkillCategoryRepo struct {
	db *gorm.DB
}

func NewSkillCategoryRepo(db *gorm.DB) *SkillCategoryRepo {
	return &SkillCategoryRepo{db}
}

// FindPublished returns published categories with only their published
// skills, both ordered by display order.
func (r *SkillCategoryRepo) FindPublished() ([]*models.SkillCategory, error) {
	var categories []*models.SkillCategory
	err := r.db.
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("display_order asc")
		}).
		Where("is_published = ?", true).
		Order("display_order asc").
		Find(&categories).Error
	return categories, err
}

// FindAll returns every category with all of its skills.
func (r *SkillCategoryRepo) FindAll() ([]*models.SkillCategory, error) {
	var categories []*models.SkillCategory
	err := r.db.
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Order("display_order asc")
		}).
		Order("display_order asc").
		Find(&categories).Error
	return categories, err
}

// FindBySlug returns a published category by slug with its published skills.
func (r *SkillCategoryRepo) FindBySlug(slug string) (*models.SkillCategory, error) {
	var category models.SkillCategory
	err := r.db.
		Preload("Skills", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_published = ?", true).Order("display_order asc")
		}).
		Where("slug = ? AND is_published = ?", slug, true).
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

// FindByID returns a category by its ID
func (r *SkillCategoryRepo) FindByID(id int64) (*models.SkillCategory, error) {
	var category models.SkillCategory
	if err := r.db.Preload("Skills").First(&category, id).Error; err != nil {
		return nil, err
	}
	return &category, nil
}

// SlugExists reports whether any category already uses the given slug.
func (r *SkillCategoryRepo) SlugExists(slug string) (bool, error) {
	var count int64
	err := r.db.Model(&models.SkillCategory{}).Where("slug = ?", slug).Count(&count).Error
	return count > 0, err
}

// Add inserts a new category into the database
func (r *SkillCategoryRepo) Add(category *models.SkillCategory) error {
	return r.db.Create(category).Error
}

// Save updates an existing category in the database
func (r *SkillCategoryRepo) Save(category *models.SkillCategory) error {
	return r.db.Save(category).Error
}

// Delete removes a category and every skill it owns. The cascade is explicit
// so it behaves the same on every driver, foreign-key enforcement or not.
func (r *SkillCategoryRepo) Delete(id int64) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", id).Delete(&models.Skill{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.SkillCategory{}, id).Error
	})
}
