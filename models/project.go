package models

import "time"

// ProjectImage is an embedded image entry on a project. Images have no
// identity of their own; the list is stored as a JSON column.
type ProjectImage struct {
	URL       string  `json:"url"`
	Alt       *string `json:"alt,omitempty"`
	IsPrimary bool    `json:"is_primary"`
}

// Project represents a portfolio project with its embedded image list
// and ordered technology tags
type Project struct {
	ID              int64          `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Title           string         `json:"title" db:"title" gorm:"type:varchar(255);not null"`
	Slug            string         `json:"slug" db:"slug" gorm:"type:varchar(255);not null;uniqueIndex"`
	Description     string         `json:"description" db:"description" gorm:"type:text;not null"`
	LongDescription *string        `json:"long_description,omitempty" db:"long_description" gorm:"type:text"`
	Technologies    []string       `json:"technologies" db:"technologies" gorm:"serializer:json;type:text"`
	Images          []ProjectImage `json:"images" db:"images" gorm:"serializer:json;type:text"`
	GithubURL       *string        `json:"github_url,omitempty" db:"github_url" gorm:"type:varchar(500)"`
	LiveURL         *string        `json:"live_url,omitempty" db:"live_url" gorm:"type:varchar(500)"`
	IsFeatured      bool           `json:"is_featured" db:"is_featured" gorm:"not null;default:false"`
	IsPublished     bool           `json:"is_published" db:"is_published" gorm:"not null;default:false"`
	DisplayOrder    int            `json:"display_order" db:"display_order" gorm:"not null;default:0"`
	CreatedAt       time.Time      `json:"created_at" db:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at" db:"updated_at"`
}

// NormalizeImages enforces the primary-image invariant: a non-empty list has
// exactly one entry with IsPrimary set. If none is marked (e.g. the previous
// primary was removed) the first entry is promoted; if several are marked the
// first marked one wins.
func (p *Project) NormalizeImages() {
	if len(p.Images) == 0 {
		return
	}

	primary := -1
	for i := range p.Images {
		if p.Images[i].IsPrimary {
			primary = i
			break
		}
	}
	if primary == -1 {
		primary = 0
	}

	for i := range p.Images {
		p.Images[i].IsPrimary = i == primary
	}
}

// HasTechnology reports whether the project carries the given technology tag.
func (p *Project) HasTechnology(technology string) bool {
	for _, t := range p.Technologies {
		if t == technology {
			return true
		}
	}
	return false
}
