package service

import (
	"context"
	"errors"
	"time"

	"github.com/campusq/forum/internal/model"
	"github.com/campusq/forum/internal/queue"
	"github.com/campusq/forum/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func aiAnswerSort() store.SortField[model.AIAnswer] {
	return store.TimeSortField("created_at", func(a *model.AIAnswer) time.Time {
		return a.CreatedAt
	})
}

// NewAIAnswerService creates a new AIAnswerService.
func NewAIAnswerService(db *gorm.DB, q queue.EngagementQueue) *AIAnswerService {
	return &AIAnswerService{
		db:           db,
		answers:      store.NewRepo(db, func(a *model.AIAnswer) string { return a.ID }, aiAnswerSort()),
		endorsements: store.NewRelations[model.AIEndorsement](db),
		endorseCount: store.NewCounter(db, &model.AIAnswer{}, "student_endorsements"),
		queue:        q,
	}
}

// AIAnswerService manages generated answers, one per thread.
type AIAnswerService struct {
	db           *gorm.DB
	answers      *store.Repo[model.AIAnswer]
	endorsements *store.Relations[model.AIEndorsement]
	endorseCount *store.Counter
	queue        queue.EngagementQueue
}

type CreateAIAnswer struct {
	ThreadID        string
	CourseID        string
	Content         string
	ConfidenceScore int
	Citations       string
}

// Create attaches a generated answer to a thread. The unique index on
// thread_id keeps it to one answer; a second attempt is
// ErrThreadAlreadyAnswered.
func (s *AIAnswerService) Create(ctx context.Context, in CreateAIAnswer) (*model.AIAnswer, error) {
	answer := &model.AIAnswer{
		ID:              uuid.New().String(),
		ThreadID:        in.ThreadID,
		CourseID:        in.CourseID,
		Content:         in.Content,
		ConfidenceScore: in.ConfidenceScore,
		Citations:       in.Citations,
	}

	err := s.answers.Create(ctx, answer)
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return nil, ErrThreadAlreadyAnswered
	}
	if err != nil {
		return nil, err
	}

	return answer, nil
}

func (s *AIAnswerService) Get(ctx context.Context, id string) (*model.AIAnswer, error) {
	return s.answers.FindByID(ctx, id)
}

// GetByThread retrieves the thread's answer, or nil when the thread has
// none.
func (s *AIAnswerService) GetByThread(ctx context.Context, threadID string) (*model.AIAnswer, error) {
	answers, err := s.answers.FindAll(ctx, store.Eq("thread_id", threadID))
	if err != nil {
		return nil, err
	}
	if len(answers) == 0 {
		return nil, nil
	}
	return answers[0], nil
}

// Delete removes an answer permanently. The unique index on thread_id
// would treat a soft-deleted row as still present, so the erase frees
// the thread for a new answer.
func (s *AIAnswerService) Delete(ctx context.Context, id string) (bool, error) {
	return s.answers.Erase(ctx, id)
}

// Endorse applies a student's endorsement of an answer. True means
// newly applied.
func (s *AIAnswerService) Endorse(ctx context.Context, answerID, userID, courseID string) (bool, error) {
	created, err := s.endorsements.TryCreate(ctx, &model.AIEndorsement{
		ID:       uuid.New().String(),
		AnswerID: answerID,
		UserID:   userID,
		CourseID: courseID,
	})
	if err != nil || !created {
		return created, err
	}

	if err := s.endorseCount.Add(ctx, answerID, 1); err != nil {
		return true, err
	}

	publish(ctx, s.queue, queue.Event{
		Kind:     queue.EventAnswerEndorsed,
		ParentID: answerID,
		UserID:   userID,
		CourseID: courseID,
		At:       time.Now().UTC(),
	})

	return true, nil
}

// RemoveEndorsement takes a student endorsement back.
func (s *AIAnswerService) RemoveEndorsement(ctx context.Context, answerID, userID string) (bool, error) {
	removed, err := s.endorsements.Remove(ctx,
		store.Eq("answer_id", answerID),
		store.Eq("user_id", userID),
	)
	if err != nil || !removed {
		return removed, err
	}

	if err := s.endorseCount.Add(ctx, answerID, -1); err != nil {
		return true, err
	}

	return true, nil
}

// MarkInstructorEndorsed flips the instructor endorsement flag exactly
// once. True means this call applied it; false means it was already
// set or the id is unknown.
func (s *AIAnswerService) MarkInstructorEndorsed(ctx context.Context, answerID string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&model.AIAnswer{}).
		Where("id = ? AND instructor_endorsed = ?", answerID, false).
		UpdateColumn("instructor_endorsed", true)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
