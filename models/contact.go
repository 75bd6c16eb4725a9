package models

import "time"

// ContactSubmission is a message sent through the public contact form.
// Everything except the read/archived flags is immutable after creation.
type ContactSubmission struct {
	ID         int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	FirstName  string    `json:"first_name" db:"first_name" gorm:"type:varchar(100);not null"`
	LastName   *string   `json:"last_name,omitempty" db:"last_name" gorm:"type:varchar(100)"`
	Email      string    `json:"email" db:"email" gorm:"type:varchar(255);not null"`
	Message    string    `json:"message" db:"message" gorm:"type:text;not null"`
	IsRead     bool      `json:"is_read" db:"is_read" gorm:"not null;default:false"`
	IsArchived bool      `json:"is_archived" db:"is_archived" gorm:"not null;default:false"`
	IPAddress  *string   `json:"ip_address,omitempty" db:"ip_address" gorm:"type:varchar(45)"`
	UserAgent  *string   `json:"user_agent,omitempty" db:"user_agent" gorm:"type:varchar(500)"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
}

// ContactStats summarizes the submission inbox for the admin dashboard.
type ContactStats struct {
	Total    int64 `json:"total"`
	Unread   int64 `json:"unread"`
	Archived int64 `json:"archived"`
}
