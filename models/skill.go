package models

import "time"

// SkillCategory groups skills under a named, ordered heading. A category
// owns its skills: deleting the category deletes them too.
type SkillCategory struct {
	ID           int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" db:"name" gorm:"type:varchar(100);not null"`
	Slug         string    `json:"slug" db:"slug" gorm:"type:varchar(100);not null;uniqueIndex"`
	Icon         string    `json:"icon" db:"icon" gorm:"type:varchar(50);not null"`
	Description  *string   `json:"description,omitempty" db:"description" gorm:"type:varchar(500)"`
	DisplayOrder int       `json:"display_order" db:"display_order" gorm:"not null;default:0"`
	IsPublished  bool      `json:"is_published" db:"is_published" gorm:"not null;default:true"`
	Skills       []Skill   `json:"skills" gorm:"foreignKey:CategoryID;references:ID;constraint:OnDelete:CASCADE"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}

// Skill is a single named proficiency inside a category.
type Skill struct {
	ID           int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Name         string    `json:"name" db:"name" gorm:"type:varchar(100);not null"`
	CategoryID   int64     `json:"category_id" db:"category_id" gorm:"not null;index:idx_skill_category_id"`
	Proficiency  int       `json:"proficiency" db:"proficiency" gorm:"not null;default:80"`
	DisplayOrder int       `json:"display_order" db:"display_order" gorm:"not null;default:0"`
	IsPublished  bool      `json:"is_published" db:"is_published" gorm:"not null;default:true"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"`
}
