package model

import (
	"gorm.io/gorm"
)

// Post is a reply inside a thread.
type Post struct {
	gorm.Model
	ID               string `gorm:"primaryKey;uuid;not null"`
	ThreadID         string `gorm:"uuid;not null;index:idx_posts_thread_id"`
	CourseID         string `gorm:"uuid;not null"`
	AuthorID         string `gorm:"uuid;not null"`
	Content          string `gorm:"not null"`
	EndorsementCount int64  `gorm:"not null;default:0"`
}
