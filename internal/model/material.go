package model

import (
	"gorm.io/gorm"
)

const (
	MaterialTypeSlides     = "slides"
	MaterialTypeNotes      = "notes"
	MaterialTypeReading    = "reading"
	MaterialTypeAssignment = "assignment"
)

// Material is a piece of course content searched by keyword relevance.
// Content holds the compressed bytes (blob on sqlite, bytea on
// postgres); Compression names the encoder used.
type Material struct {
	gorm.Model
	ID          string `gorm:"primaryKey;uuid;not null"`
	CourseID    string `gorm:"uuid;not null;index:idx_materials_course_id"`
	Type        string `gorm:"not null"` // slides, notes, reading, assignment
	Title       string `gorm:"not null"`
	Content     []byte `gorm:"not null"`
	Compression string
	Keywords    string // JSON array of lowercase keywords
}
