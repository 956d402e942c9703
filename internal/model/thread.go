package model

import (
	"gorm.io/gorm"
)

const (
	ThreadStatusOpen     = "open"
	ThreadStatusAnswered = "answered"
	ThreadStatusResolved = "resolved"
)

// Thread is a question posted to a course forum.
type Thread struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null"`
	CourseID    string `gorm:"uuid;not null;index:idx_threads_course_id"`
	AuthorID    string `gorm:"uuid;not null"`
	Title       string `gorm:"not null"`
	Content     string `gorm:"not null"`
	Status      string `gorm:"not null;default:open"` // open, answered, resolved
	UpvoteCount int64  `gorm:"not null;default:0"`
	ViewCount   int64  `gorm:"not null;default:0"`
}
