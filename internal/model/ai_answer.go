package model

import (
	"gorm.io/gorm"
)

// AIAnswer is a generated answer attached to a thread. The unique index
// on ThreadID keeps it to one answer per thread.
type AIAnswer struct {
	gorm.Model
	ID                  string `gorm:"primaryKey;uuid;not null"`
	ThreadID            string `gorm:"uuid;not null;uniqueIndex:idx_ai_answers_thread_id"`
	CourseID            string `gorm:"uuid;not null"`
	Content             string `gorm:"not null"`
	ConfidenceScore     int    `gorm:"not null;default:0"`
	Citations           string // JSON array of {materialId, relevance}
	StudentEndorsements int64  `gorm:"not null;default:0"`
	InstructorEndorsed  bool   `gorm:"not null;default:false"`
}
