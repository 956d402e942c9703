package model

import (
	"gorm.io/gorm"
)

const (
	RoleStudent    = "student"
	RoleTA         = "ta"
	RoleInstructor = "instructor"
)

type User struct {
	gorm.Model
	ID        string `gorm:"primaryKey;uuid;not null"`
	Name      string `gorm:"not null"`
	Email     string `gorm:"not null"`
	Role      string `gorm:"not null;default:student"` // student, ta, instructor
	AvatarURL string
}

type Course struct {
	gorm.Model
	ID              string `gorm:"primaryKey;uuid;not null"`
	Code            string `gorm:"not null"`
	Title           string `gorm:"not null"`
	Term            string
	EnrollmentCount int
}
