package models

import "time"

// User is an admin account. The password hash is never serialized.
type User struct {
	ID             int64     `json:"id" db:"id" gorm:"primaryKey;autoIncrement"`
	Email          string    `json:"email" db:"email" gorm:"type:varchar(255);not null;uniqueIndex"`
	HashedPassword string    `json:"-" db:"hashed_password" gorm:"type:varchar(255);not null"`
	FullName       string    `json:"full_name" db:"full_name" gorm:"type:varchar(255);not null"`
	IsActive       bool      `json:"is_active" db:"is_active" gorm:"not null;default:true"`
	IsAdmin        bool      `json:"is_admin" db:"is_admin" gorm:"not null;default:false"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
	UpdatedAt      time.Time `json:"updated_at" db:"updated_at"`
}
