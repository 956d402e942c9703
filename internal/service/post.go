package service

import (
	"context"
	"time"

	"github.com/campusq/forum/internal/model"
	"github.com/campusq/forum/internal/queue"
	"github.com/campusq/forum/internal/store"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func postSort() store.SortField[model.Post] {
	return store.TimeSortField("created_at", func(p *model.Post) time.Time {
		return p.CreatedAt
	})
}

// NewPostService creates a new PostService.
func NewPostService(db *gorm.DB, q queue.EngagementQueue) *PostService {
	return &PostService{
		db:           db,
		posts:        store.NewRepo(db, func(p *model.Post) string { return p.ID }, postSort()),
		users:        userRepo(db),
		endorsements: store.NewRelations[model.Endorsement](db),
		endorseCount: store.NewCounter(db, &model.Post{}, "endorsement_count"),
		queue:        q,
	}
}

// PostService manages replies within a thread.
type PostService struct {
	db           *gorm.DB
	posts        *store.Repo[model.Post]
	users        *store.Repo[model.User]
	endorsements *store.Relations[model.Endorsement]
	endorseCount *store.Counter
	queue        queue.EngagementQueue
}

// PostView is a post with joined author data and aggregate counts.
type PostView struct {
	*model.Post
	Author           *Author
	EndorsementCount int64
}

type PostPage struct {
	Posts      []*PostView
	NextCursor string
	HasMore    bool
}

type CreatePost struct {
	ThreadID string
	CourseID string
	AuthorID string
	Content  string
}

func (s *PostService) Create(ctx context.Context, in CreatePost) (*model.Post, error) {
	post := &model.Post{
		ID:       uuid.New().String(),
		ThreadID: in.ThreadID,
		CourseID: in.CourseID,
		AuthorID: in.AuthorID,
		Content:  in.Content,
	}

	if err := s.posts.Create(ctx, post); err != nil {
		return nil, err
	}

	return post, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*model.Post, error) {
	return s.posts.FindByID(ctx, id)
}

// ListByThread pages through a thread's replies, oldest first by
// default so a conversation reads top to bottom.
func (s *PostService) ListByThread(ctx context.Context, threadID string, opts store.ListOptions) (*PostPage, error) {
	if opts.Direction == "" {
		opts.Direction = store.Asc
	}

	page, err := s.posts.Paginate(ctx, opts, store.Eq("thread_id", threadID))
	if err != nil {
		return nil, err
	}

	views, err := s.enrich(ctx, page.Items)
	if err != nil {
		return nil, err
	}

	return &PostPage{
		Posts:      views,
		NextCursor: page.NextCursor,
		HasMore:    page.HasMore,
	}, nil
}

type UpdatePost struct {
	Content *string
}

func (s *PostService) Update(ctx context.Context, id string, in UpdatePost) (*model.Post, error) {
	if in.Content == nil {
		return s.posts.FindByID(ctx, id)
	}
	return s.posts.Update(ctx, id, map[string]any{"content": *in.Content})
}

func (s *PostService) Delete(ctx context.Context, id string) (bool, error) {
	return s.posts.Delete(ctx, id)
}

// Endorse applies an instructor's endorsement of a post. True means
// newly applied; false means it was already there.
func (s *PostService) Endorse(ctx context.Context, postID, userID, courseID string) (bool, error) {
	created, err := s.endorsements.TryCreate(ctx, &model.Endorsement{
		ID:       uuid.New().String(),
		PostID:   postID,
		UserID:   userID,
		CourseID: courseID,
	})
	if err != nil || !created {
		return created, err
	}

	if err := s.endorseCount.Add(ctx, postID, 1); err != nil {
		return true, err
	}

	publish(ctx, s.queue, queue.Event{
		Kind:     queue.EventPostEndorsed,
		ParentID: postID,
		UserID:   userID,
		CourseID: courseID,
		At:       time.Now().UTC(),
	})

	return true, nil
}

// RemoveEndorsement takes an endorsement back. False means there was
// nothing to remove.
func (s *PostService) RemoveEndorsement(ctx context.Context, postID, userID string) (bool, error) {
	removed, err := s.endorsements.Remove(ctx,
		store.Eq("post_id", postID),
		store.Eq("user_id", userID),
	)
	if err != nil || !removed {
		return removed, err
	}

	if err := s.endorseCount.Add(ctx, postID, -1); err != nil {
		return true, err
	}

	publish(ctx, s.queue, queue.Event{
		Kind:     queue.EventEndorsementRemoved,
		ParentID: postID,
		UserID:   userID,
		At:       time.Now().UTC(),
	})

	return true, nil
}

func (s *PostService) enrich(ctx context.Context, posts []*model.Post) ([]*PostView, error) {
	views := make([]*PostView, 0, len(posts))
	if len(posts) == 0 {
		return views, nil
	}

	ids := make([]string, 0, len(posts))
	authorIDs := make([]string, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
		authorIDs = append(authorIDs, p.AuthorID)
	}

	endorsements, err := countByParent(ctx, s.db, &model.Endorsement{}, "post_id", ids)
	if err != nil {
		return nil, err
	}

	authors, err := loadAuthors(ctx, s.users, authorIDs)
	if err != nil {
		return nil, err
	}

	for _, p := range posts {
		views = append(views, &PostView{
			Post:             p,
			Author:           authors[p.AuthorID],
			EndorsementCount: endorsements[p.ID],
		})
	}

	return views, nil
}
