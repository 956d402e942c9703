package model

import "time"

// Relations are social actions a user can apply to a parent row at most
// once. The composite unique index on (parent, user) is what arbitrates
// between concurrent identical requests; there is no application-level
// precheck anywhere.

// Upvote marks a user's upvote of a thread.
type Upvote struct {
	ID        string `gorm:"primaryKey;uuid;not null"`
	ThreadID  string `gorm:"uuid;not null;uniqueIndex:idx_upvotes_thread_user"`
	UserID    string `gorm:"uuid;not null;uniqueIndex:idx_upvotes_thread_user"`
	CourseID  string `gorm:"uuid;not null"`
	CreatedAt time.Time
}

// Endorsement marks an instructor's endorsement of a post.
type Endorsement struct {
	ID        string `gorm:"primaryKey;uuid;not null"`
	PostID    string `gorm:"uuid;not null;uniqueIndex:idx_endorsements_post_user"`
	UserID    string `gorm:"uuid;not null;uniqueIndex:idx_endorsements_post_user"`
	CourseID  string `gorm:"uuid;not null"`
	CreatedAt time.Time
}

// AIEndorsement marks a student's endorsement of an AI answer.
type AIEndorsement struct {
	ID        string `gorm:"primaryKey;uuid;not null"`
	AnswerID  string `gorm:"uuid;not null;uniqueIndex:idx_ai_endorsements_answer_user"`
	UserID    string `gorm:"uuid;not null;uniqueIndex:idx_ai_endorsements_answer_user"`
	CourseID  string `gorm:"uuid;not null"`
	CreatedAt time.Time
}
