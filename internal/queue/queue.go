package queue

import (
	"context"
	"time"
)

type EventKind string

const (
	EventThreadUpvoted      EventKind = "thread.upvoted"
	EventUpvoteRemoved      EventKind = "thread.upvote.removed"
	EventPostEndorsed       EventKind = "post.endorsed"
	EventEndorsementRemoved EventKind = "post.endorsement.removed"
	EventAnswerEndorsed     EventKind = "ai_answer.endorsed"
)

// Event records one applied or removed social action. Events are
// advisory (analytics, digests); correctness never depends on them.
type Event struct {
	Kind     EventKind `json:"kind"`
	ParentID string    `json:"parentId"`
	UserID   string    `json:"userId"`
	CourseID string    `json:"courseId"`
	At       time.Time `json:"at"`
}

type EngagementQueue interface {
	// Publish appends an engagement event to the queue.
	Publish(ctx context.Context, event Event) error
}
