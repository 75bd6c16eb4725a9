package database

import (
	"gorm.io/gorm"
)

type Database struct {
	projectRepo       *ProjectRepo
	skillCategoryRepo *SkillCategoryRepo
	skillRepo         *SkillRepo
	contactRepo       *ContactRepo
	userRepo          *UserRepo
}

// New initializes a new Database struct with each repository using a shared GORM database instance
func New(db *gorm.DB) Database {
	return Database{
		projectRepo:       NewProjectRepo(db),
		skillCategoryRepo: NewSkillCategoryRepo(db),
		skillRepo:         NewSkillRepo(db),
		contactRepo:       NewContactRepo(db),
		userRepo:          NewUserRepo(db),
	}
}

// Accessor methods for each repository

func (d Database) ProjectRepo() *ProjectRepo {
	return d.projectRepo
}

func (d Database) SkillCategoryRepo() *SkillCategoryRepo {
	return d.skillCategoryRepo
}

func (d Database) SkillRepo() *SkillRepo {
	return d.skillRepo
}

func (d Database) ContactRepo() *ContactRepo {
	return d.contactRepo
}

func (d Database) UserRepo() *UserRepo {
	return d.userRepo
}
