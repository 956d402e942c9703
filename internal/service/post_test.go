package service

import (
	"context"
	"testing"

	"github.com/campusq/forum/internal/model"
	"github.com/campusq/forum/internal/queue"
	"github.com/campusq/forum/internal/store"
	"github.com/campusq/forum/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestPostService_ListByThreadOldestFirst(t *testing.T) {
	posts := NewPostService(tester.TestDB(), nil)
	author := seedUser(t, "harper", model.RoleStudent)
	threadID := uuid.New().String()
	courseID := uuid.New().String()

	var ids []string
	for i := 0; i < 3; i++ {
		post, err := posts.Create(context.TODO(), CreatePost{
			ThreadID: threadID,
			CourseID: courseID,
			AuthorID: author.ID,
			Content:  "reply",
		})
		assert.NoError(t, err)
		ids = append(ids, post.ID)
	}

	page, err := posts.ListByThread(context.TODO(), threadID, store.ListOptions{})
	assert.NoError(t, err)
	assert.Len(t, page.Posts, 3)
	assert.False(t, page.HasMore)

	// a conversation reads top to bottom
	assert.Equal(t, ids[0], page.Posts[0].ID)
	assert.Equal(t, ids[2], page.Posts[2].ID)
	assert.NotNil(t, page.Posts[0].Author)
	assert.Equal(t, "harper", page.Posts[0].Author.Name)
}

func TestPostService_EndorseIdempotent(t *testing.T) {
	db := tester.TestDB()
	events := queue.NewMemory()
	posts := NewPostService(db, events)
	author := seedUser(t, "rowan", model.RoleStudent)
	instructor := seedUser(t, "dr-lee", model.RoleInstructor)
	courseID := uuid.New().String()

	post, err := posts.Create(context.TODO(), CreatePost{
		ThreadID: uuid.New().String(),
		CourseID: courseID,
		AuthorID: author.ID,
		Content:  "use memoization here",
	})
	assert.NoError(t, err)

	created, err := posts.Endorse(context.TODO(), post.ID, instructor.ID, courseID)
	assert.NoError(t, err)
	assert.True(t, created)

	created, err = posts.Endorse(context.TODO(), post.ID, instructor.ID, courseID)
	assert.NoError(t, err)
	assert.False(t, created)

	var got model.Post
	assert.NoError(t, db.Where("id = ?", post.ID).First(&got).Error)
	assert.Equal(t, int64(1), got.EndorsementCount)

	assert.Len(t, events.Events(), 1)
	assert.Equal(t, queue.EventPostEndorsed, events.Events()[0].Kind)

	// enrichment reports the endorsement
	page, err := posts.ListByThread(context.TODO(), post.ThreadID, store.ListOptions{})
	assert.NoError(t, err)
	assert.Len(t, page.Posts, 1)
	assert.Equal(t, int64(1), page.Posts[0].EndorsementCount)
}

func TestPostService_RemoveEndorsement(t *testing.T) {
	db := tester.TestDB()
	posts := NewPostService(db, nil)
	author := seedUser(t, "ellis", model.RoleStudent)
	instructor := seedUser(t, "prof-kim", model.RoleInstructor)
	courseID := uuid.New().String()

	post, err := posts.Create(context.TODO(), CreatePost{
		ThreadID: uuid.New().String(),
		CourseID: courseID,
		AuthorID: author.ID,
		Content:  "reply",
	})
	assert.NoError(t, err)

	created, err := posts.Endorse(context.TODO(), post.ID, instructor.ID, courseID)
	assert.NoError(t, err)
	assert.True(t, created)

	removed, err := posts.RemoveEndorsement(context.TODO(), post.ID, instructor.ID)
	assert.NoError(t, err)
	assert.True(t, removed)

	removed, err = posts.RemoveEndorsement(context.TODO(), post.ID, instructor.ID)
	assert.NoError(t, err)
	assert.False(t, removed)

	var got model.Post
	assert.NoError(t, db.Where("id = ?", post.ID).First(&got).Error)
	assert.Equal(t, int64(0), got.EndorsementCount)
}

func TestPostService_UpdateAndDelete(t *testing.T) {
	posts := NewPostService(tester.TestDB(), nil)
	author := seedUser(t, "finley", model.RoleStudent)

	post, err := posts.Create(context.TODO(), CreatePost{
		ThreadID: uuid.New().String(),
		CourseID: uuid.New().String(),
		AuthorID: author.ID,
		Content:  "before",
	})
	assert.NoError(t, err)

	content := "after"
	updated, err := posts.Update(context.TODO(), post.ID, UpdatePost{Content: &content})
	assert.NoError(t, err)
	assert.NotNil(t, updated)
	assert.Equal(t, "after", updated.Content)

	removed, err := posts.Delete(context.TODO(), post.ID)
	assert.NoError(t, err)
	assert.True(t, removed)

	removed, err = posts.Delete(context.TODO(), post.ID)
	assert.NoError(t, err)
	assert.False(t, removed)
}
