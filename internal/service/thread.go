package service

import (
	"context"
	"time"

	"github.com/campusq/forum/internal/cache"
	"github.com/campusq/forum/internal/model"
	"github.com/campusq/forum/internal/queue"
	"github.com/campusq/forum/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func threadSort() store.SortField[model.Thread] {
	return store.TimeSortField("created_at", func(t *model.Thread) time.Time {
		return t.CreatedAt
	})
}

// NewThreadService creates a new ThreadService. The view counter and
// queue may be nil; views then go straight to the database and events
// are dropped.
func NewThreadService(db *gorm.DB, views *cache.ViewCounter, q queue.EngagementQueue) *ThreadService {
	return &ThreadService{
		db:          db,
		threads:     store.NewRepo(db, func(t *model.Thread) string { return t.ID }, threadSort()),
		users:       userRepo(db),
		upvotes:     store.NewRelations[model.Upvote](db),
		upvoteCount: store.NewCounter(db, &model.Thread{}, "upvote_count"),
		viewCount:   store.NewCounter(db, &model.Thread{}, "view_count"),
		views:       views,
		queue:       q,
	}
}

// ThreadService composes the generic repository, the conflict resolver
// and enrichment into thread operations.
type ThreadService struct {
	db          *gorm.DB
	threads     *store.Repo[model.Thread]
	users       *store.Repo[model.User]
	upvotes     *store.Relations[model.Upvote]
	upvoteCount *store.Counter
	viewCount   *store.Counter
	views       *cache.ViewCounter
	queue       queue.EngagementQueue
}

// ThreadView is a thread with joined author data and aggregate counts.
type ThreadView struct {
	*model.Thread
	Author      *Author
	ReplyCount  int64
	UpvoteCount int64
	HasAIAnswer bool
}

type ThreadPage struct {
	Threads    []*ThreadView
	NextCursor string
	HasMore    bool
}

type CreateThread struct {
	CourseID string
	AuthorID string
	Title    string
	Content  string
}

// Create posts a new question to a course.
func (s *ThreadService) Create(ctx context.Context, in CreateThread) (*model.Thread, error) {
	thread := &model.Thread{
		ID:       uuid.New().String(),
		CourseID: in.CourseID,
		AuthorID: in.AuthorID,
		Title:    in.Title,
		Content:  in.Content,
		Status:   model.ThreadStatusOpen,
	}

	if err := s.threads.Create(ctx, thread); err != nil {
		return nil, err
	}

	return thread, nil
}

// Get retrieves a single enriched thread, or nil when the id is
// unknown.
func (s *ThreadService) Get(ctx context.Context, id string) (*ThreadView, error) {
	thread, err := s.threads.FindByID(ctx, id)
	if err != nil || thread == nil {
		return nil, err
	}

	views, err := s.enrich(ctx, []*model.Thread{thread})
	if err != nil {
		return nil, err
	}

	return views[0], nil
}

// List pages through a course's threads, newest first by default.
func (s *ThreadService) List(ctx context.Context, courseID string, opts store.ListOptions) (*ThreadPage, error) {
	if opts.Direction == "" {
		opts.Direction = store.Desc
	}

	page, err := s.threads.Paginate(ctx, opts, store.Eq("course_id", courseID))
	if err != nil {
		return nil, err
	}

	views, err := s.enrich(ctx, page.Items)
	if err != nil {
		return nil, err
	}

	return &ThreadPage{
		Threads:    views,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}, nil
}

type UpdateThread struct {
	Title   *string
	Content *string
	Status  *string
}

// Update applies a partial edit and returns the updated thread, or nil
// when the id is unknown.
func (s *ThreadService) Update(ctx context.Context, id string, in UpdateThread) (*model.Thread, error) {
	changes := map[string]any{}
	if in.Title != nil {
		changes["title"] = *in.Title
	}
	if in.Content != nil {
		changes["content"] = *in.Content
	}
	if in.Status != nil {
		changes["status"] = *in.Status
	}

	if len(changes) == 0 {
		return s.threads.FindByID(ctx, id)
	}

	return s.threads.Update(ctx, id, changes)
}

func (s *ThreadService) Delete(ctx context.Context, id string) (bool, error) {
	return s.threads.Delete(ctx, id)
}

// Upvote applies a user's upvote. True means newly applied; false means
// it was already there. The unique index on (thread_id, user_id)
// decides between concurrent identical requests.
func (s *ThreadService) Upvote(ctx context.Context, threadID, userID, courseID string) (bool, error) {
	created, err := s.upvotes.TryCreate(ctx, &model.Upvote{
		ID:       uuid.New().String(),
		ThreadID: threadID,
		UserID:   userID,
		CourseID: courseID,
	})
	if err != nil || !created {
		return created, err
	}

	if err := s.upvoteCount.Add(ctx, threadID, 1); err != nil {
		return true, err
	}

	publish(ctx, s.queue, queue.Event{
		Kind:     queue.EventThreadUpvoted,
		ParentID: threadID,
		UserID:   userID,
		CourseID: courseID,
		At:       time.Now().UTC(),
	})

	return true, nil
}

// RemoveUpvote takes a user's upvote back. False means there was
// nothing to remove.
func (s *ThreadService) RemoveUpvote(ctx context.Context, threadID, userID string) (bool, error) {
	removed, err := s.upvotes.Remove(ctx,
		store.Eq("thread_id", threadID),
		store.Eq("user_id", userID),
	)
	if err != nil || !removed {
		return removed, err
	}

	if err := s.upvoteCount.Add(ctx, threadID, -1); err != nil {
		return true, err
	}

	publish(ctx, s.queue, queue.Event{
		Kind:     queue.EventUpvoteRemoved,
		ParentID: threadID,
		UserID:   userID,
		At:       time.Now().UTC(),
	})

	return true, nil
}

// RecordView counts one view of a thread. With redis wired the count
// accumulates there and is flushed by a job; otherwise it goes straight
// to the threads table.
func (s *ThreadService) RecordView(ctx context.Context, threadID string) error {
	if s.views != nil {
		return s.views.Incr(ctx, threadID)
	}
	return s.viewCount.Add(ctx, threadID, 1)
}

func (s *ThreadService) enrich(ctx context.Context, threads []*model.Thread) ([]*ThreadView, error) {
	views := make([]*ThreadView, 0, len(threads))
	if len(threads) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(threads))
	authorIDs := make([]string, 0, len(threads))
	for _, t := range threads {
		ids = append(ids, t.ID)
		authorIDs = append(authorIDs, t.AuthorID)
	}

	replies, err := countByParent(ctx, s.db, &model.Post{}, "thread_id", ids)
	if err != nil {
		return nil, err
	}

	upvotes, err := countByParent(ctx, s.db, &model.Upvote{}, "thread_id", ids)
	if err != nil {
		return nil, err
	}

	var answeredIDs []string
	err = s.db.WithContext(ctx).Model(&model.AIAnswer{}).
		Where("thread_id IN ?", ids).
		Pluck("thread_id", &answeredIDs).Error
	if err != nil {
		return nil, err
	}
	answered := make(map[string]bool, len(answeredIDs))
	for _, id := range answeredIDs {
		answered[id] = true
	}

	authors, err := loadAuthors(ctx, s.users, authorIDs)
	if err != nil {
		return nil, err
	}

	for _, t := range threads {
		views = append(views, &ThreadView{
			Thread:      t,
			Author:      authors[t.AuthorID],
			ReplyCount:  replies[t.ID],
			UpvoteCount: upvotes[t.ID],
			HasAIAnswer: answered[t.ID],
		})
	}

	return views, nil
}
