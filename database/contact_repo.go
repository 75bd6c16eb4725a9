package database

import (
	"github.com/jcortes-dev/portfolio-backend/models"
	"gorm.io/gorm"
)

type ContactRepo struct {
	db *gorm.DB
}

func NewContactRepo(db *gorm.DB) *ContactRepo {
	return &ContactRepo{db}
}

// ContactFilter narrows the submission listing by flag state.
type ContactFilter struct {
	IsRead     *bool
	IsArchived *bool
	Offset     int
	Limit      int
}

// Find returns submissions matching the filter, newest first.
func (r *ContactRepo) Find(filter ContactFilter) ([]*models.ContactSubmission, error) {
	query := r.db.Model(&models.ContactSubmission{})

	if filter.IsRead != nil {
		query = query.Where("is_read = ?", *filter.IsRead)
	}
	if filter.IsArchived != nil {
		query = query.Where("is_archived = ?", *filter.IsArchived)
	}

	var submissions []*models.ContactSubmission
	err := query.Order("created_at desc").
		Offset(filter.Offset).Limit(filter.Limit).
		Find(&submissions).Error
	return submissions, err
}

// FindByID returns a submission by its ID
func (r *ContactRepo) FindByID(id int64) (*models.ContactSubmission, error) {
	var submission models.ContactSubmission
	if err := r.db.First(&submission, id).Error; err != nil {
		return nil, err
	}
	return &submission, nil
}

// Add inserts a new submission into the database
func (r *ContactRepo) Add(submission *models.ContactSubmission) error {
	return r.db.Create(submission).Error
}

// Save updates an existing submission in the database
func (r *ContactRepo) Save(submission *models.ContactSubmission) error {
	return r.db.Save(submission).Error
}

// Delete removes a submission from the database by id
func (r *ContactRepo) Delete(id int64) error {
	return r.db.Delete(&models.ContactSubmission{}, id).Error
}

// Stats counts the inbox totals for the admin dashboard.
func (r *ContactRepo) Stats() (models.ContactStats, error) {
	var stats models.ContactStats

	if err := r.db.Model(&models.ContactSubmission{}).Count(&stats.Total).Error; err != nil {
		return stats, err
	}
	if err := r.db.Model(&models.ContactSubmission{}).Where("is_read = ?", false).Count(&stats.Unread).Error; err != nil {
		return stats, err
	}
	if err := r.db.Model(&models.ContactSubmission{}).Where("is_archived = ?", true).Count(&stats.Archived).Error; err != nil {
		return stats, err
	}

	return stats, nil
}

// MarkAllRead flags every unread submission as read.
func (r *ContactRepo) MarkAllRead() error {
	return r.db.Model(&models.ContactSubmission{}).
		Where("is_read = ?", false).
		Update("is_read", true).Error
}
