package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/campusq/forum/internal/cursor"
	"github.com/campusq/forum/internal/model"
	"github.com/campusq/forum/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func threadRepo() *Repo[model.Thread] {
	return NewRepo(tester.TestDB(),
		func(t *model.Thread) string { return t.ID },
		TimeSortField("created_at", func(t *model.Thread) time.Time { return t.CreatedAt }),
	)
}

func seedThreads(t *testing.T, courseID string, n int, base time.Time) []*model.Thread {
	t.Helper()

	repo := threadRepo()
	threads := make([]*model.Thread, 0, n)
	for i := 0; i < n; i++ {
		thread := &model.Thread{
			ID:       uuid.New().String(),
			CourseID: courseID,
			AuthorID: uuid.New().String(),
			Title:    fmt.Sprintf("question %d", i),
			Content:  "content",
			Status:   model.ThreadStatusOpen,
		}
		thread.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		assert.NoError(t, repo.Create(context.TODO(), thread))
		threads = append(threads, thread)
	}

	return threads
}

func TestRepo_FindByID(t *testing.T) {
	repo := threadRepo()
	courseID := uuid.New().String()
	seeded := seedThreads(t, courseID, 1, time.Now().UTC())

	got, err := repo.FindByID(context.TODO(), seeded[0].ID)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, seeded[0].ID, got.ID)

	missing, err := repo.FindByID(context.TODO(), uuid.New().String())
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepo_Update(t *testing.T) {
	repo := threadRepo()
	courseID := uuid.New().String()
	seeded := seedThreads(t, courseID, 1, time.Now().UTC())

	got, err := repo.Update(context.TODO(), seeded[0].ID, map[string]any{"title": "edited"})
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, "edited", got.Title)

	missing, err := repo.Update(context.TODO(), uuid.New().String(), map[string]any{"title": "edited"})
	assert.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepo_Delete(t *testing.T) {
	repo := threadRepo()
	courseID := uuid.New().String()
	seeded := seedThreads(t, courseID, 1, time.Now().UTC())

	removed, err := repo.Delete(context.TODO(), seeded[0].ID)
	assert.NoError(t, err)
	assert.True(t, removed)

	// deleting a missing id reports false, never an error
	removed, err = repo.Delete(context.TODO(), seeded[0].ID)
	assert.NoError(t, err)
	assert.False(t, removed)

	removed, err = repo.Delete(context.TODO(), uuid.New().String())
	assert.NoError(t, err)
	assert.False(t, removed)
}

func TestRepo_Count(t *testing.T) {
	repo := threadRepo()
	courseID := uuid.New().String()
	seedThreads(t, courseID, 3, time.Now().UTC())

	n, err := repo.Count(context.TODO(), Eq("course_id", courseID))
	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
}

func TestRepo_Paginate_WalksAllPages(t *testing.T) {
	repo := threadRepo()
	courseID := uuid.New().String()
	seedThreads(t, courseID, 45, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))

	var pages []*Page[model.Thread]
	opts := ListOptions{Limit: 20, Direction: Desc}
	for {
		page, err := repo.Paginate(context.TODO(), opts, Eq("course_id", courseID))
		assert.NoError(t, err)
		pages = append(pages, page)
		if !page.HasMore {
			break
		}
		opts.Cursor = page.NextCursor
	}

	assert.Len(t, pages, 3)
	assert.Len(t, pages[0].Items, 20)
	assert.True(t, pages[0].HasMore)
	assert.Len(t, pages[1].Items, 20)
	assert.True(t, pages[1].HasMore)
	assert.Len(t, pages[2].Items, 5)
	assert.False(t, pages[2].HasMore)
	assert.Empty(t, pages[2].NextCursor)

	// every row exactly once, newest first across page boundaries
	seen := map[string]bool{}
	var prev *model.Thread
	for _, page := range pages {
		for _, row := range page.Items {
			assert.False(t, seen[row.ID], "row %s served twice", row.ID)
			seen[row.ID] = true
			if prev != nil {
				assert.True(t, row.CreatedAt.Before(prev.CreatedAt) || row.CreatedAt.Equal(prev.CreatedAt))
			}
			prev = row
		}
	}
	assert.Len(t, seen, 45)
}

func TestRepo_Paginate_Ascending(t *testing.T) {
	repo := threadRepo()
	courseID := uuid.New().String()
	seeded := seedThreads(t, courseID, 5, time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC))

	page, err := repo.Paginate(context.TODO(), ListOptions{Limit: 10, Direction: Asc}, Eq("course_id", courseID))
	assert.NoError(t, err)
	assert.Len(t, page.Items, 5)
	assert.False(t, page.HasMore)
	assert.Equal(t, seeded[0].ID, page.Items[0].ID)
	assert.Equal(t, seeded[4].ID, page.Items[4].ID)
}

func TestRepo_Paginate_TieBreakOnID(t *testing.T) {
	repo := threadRepo()
	courseID := uuid.New().String()

	// five rows sharing one created_at; the id tie-break keeps the
	// order total and the walk exhaustive
	at := time.Date(2026, 3, 3, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 5; i++ {
		thread := &model.Thread{
			ID:       uuid.New().String(),
			CourseID: courseID,
			AuthorID: uuid.New().String(),
			Title:    "same instant",
			Content:  "content",
		}
		thread.CreatedAt = at
		assert.NoError(t, repo.Create(context.TODO(), thread))
	}

	seen := map[string]bool{}
	opts := ListOptions{Limit: 2, Direction: Desc}
	for {
		page, err := repo.Paginate(context.TODO(), opts, Eq("course_id", courseID))
		assert.NoError(t, err)
		for _, row := range page.Items {
			assert.False(t, seen[row.ID])
			seen[row.ID] = true
		}
		if !page.HasMore {
			break
		}
		opts.Cursor = page.NextCursor
	}

	assert.Len(t, seen, 5)
}

func TestRepo_Paginate_LimitDefaultsAndClamp(t *testing.T) {
	repo := threadRepo()
	courseID := uuid.New().String()
	seedThreads(t, courseID, 102, time.Date(2026, 3, 4, 9, 0, 0, 0, time.UTC))

	// no limit falls back to 20
	page, err := repo.Paginate(context.TODO(), ListOptions{}, Eq("course_id", courseID))
	assert.NoError(t, err)
	assert.Len(t, page.Items, 20)
	assert.True(t, page.HasMore)

	// a negative limit is treated as unset, same as zero
	page, err = repo.Paginate(context.TODO(), ListOptions{Limit: -5}, Eq("course_id", courseID))
	assert.NoError(t, err)
	assert.Len(t, page.Items, 20)

	// oversized limit clamps to 100 silently
	page, err = repo.Paginate(context.TODO(), ListOptions{Limit: 1000}, Eq("course_id", courseID))
	assert.NoError(t, err)
	assert.Len(t, page.Items, 100)
	assert.True(t, page.HasMore)
}

func TestRepo_Paginate_EmptyAndPastEnd(t *testing.T) {
	repo := threadRepo()
	courseID := uuid.New().String()

	page, err := repo.Paginate(context.TODO(), ListOptions{}, Eq("course_id", courseID))
	assert.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
	assert.Empty(t, page.NextCursor)

	// a cursor pointing past the oldest row yields an empty page
	seeded := seedThreads(t, courseID, 3, time.Date(2026, 3, 5, 9, 0, 0, 0, time.UTC))
	oldest := seeded[0]
	past := cursor.Encode(fmt.Sprintf("%d", oldest.CreatedAt.UTC().UnixNano()), oldest.ID)

	page, err = repo.Paginate(context.TODO(), ListOptions{Cursor: past, Direction: Desc}, Eq("course_id", courseID))
	assert.NoError(t, err)
	assert.Empty(t, page.Items)
	assert.False(t, page.HasMore)
}

func TestRepo_Paginate_InvalidCursor(t *testing.T) {
	repo := threadRepo()

	tests := []string{
		"not-a-cursor",
		cursor.Encode("not-a-timestamp", "some-id"),
	}

	for _, token := range tests {
		_, err := repo.Paginate(context.TODO(), ListOptions{Cursor: token})
		assert.ErrorIs(t, err, ErrInvalidCursor)
	}
}
