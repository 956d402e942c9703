package service

import (
	"context"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/campusq/forum/internal/compress"
	"github.com/campusq/forum/internal/model"
	"github.com/campusq/forum/internal/tester"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestMaterialService_CreateStoresCompressed(t *testing.T) {
	db := tester.TestDB()
	materials := NewMaterialService(db, compress.NewGZip())
	courseID := uuid.New().String()

	content := strings.Repeat("recursion needs a base case. ", 40)
	created, err := materials.Create(context.TODO(), CreateMaterial{
		CourseID: courseID,
		Type:     model.MaterialTypeNotes,
		Title:    "Recursion notes",
		Content:  content,
		Keywords: []string{"Recursion", "BASE"},
	})
	assert.NoError(t, err)
	assert.Equal(t, "gzip", created.Compression)

	// at rest the content is compressed bytes in a blob column, never
	// raw text; keywords are lowercased
	var raw model.Material
	assert.NoError(t, db.Where("id = ?", created.ID).First(&raw).Error)
	assert.NotEqual(t, []byte(content), raw.Content)
	assert.Equal(t, `["recursion","base"]`, raw.Keywords)

	got, err := materials.Get(context.TODO(), created.ID)
	assert.NoError(t, err)
	assert.NotNil(t, got)
	assert.Equal(t, content, string(got.Content))
}

func TestMaterialService_UnicodeContentRoundTrip(t *testing.T) {
	db := tester.TestDB()
	materials := NewMaterialService(db, compress.NewLZ4())
	courseID := uuid.New().String()

	content := "Структуры данных: 漢字 indices, café naïveté. " + strings.Repeat("データ構造 ", 30)
	created, err := materials.Create(context.TODO(), CreateMaterial{
		CourseID: courseID,
		Type:     model.MaterialTypeReading,
		Title:    "Unicode reading",
		Content:  content,
	})
	assert.NoError(t, err)

	got, err := materials.Get(context.TODO(), created.ID)
	assert.NoError(t, err)
	assert.Equal(t, content, string(got.Content))

	results, err := materials.Search(context.TODO(), courseID, "café indices", SearchOptions{})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.True(t, utf8.ValidString(results[0].Snippet))
}

func TestMaterialService_SearchScenario(t *testing.T) {
	db := tester.TestDB()
	materials := NewMaterialService(db, compress.NewGZip())
	courseID := uuid.New().String()

	seed := []CreateMaterial{
		{
			CourseID: courseID,
			Type:     model.MaterialTypeNotes,
			Title:    "Recursion basics",
			Content:  "Pick a base value before recursing.",
		},
		{
			CourseID: courseID,
			Type:     model.MaterialTypeSlides,
			Title:    "Recursion in practice",
			Content:  "Shrink toward the base with every call.",
		},
		{
			CourseID: courseID,
			Type:     model.MaterialTypeReading,
			Title:    "Complexity analysis",
			Content:  "Worst case bounds for sorting.",
		},
	}
	for _, in := range seed {
		_, err := materials.Create(context.TODO(), in)
		assert.NoError(t, err)
	}

	// the 1-of-3 material falls below the relevance floor
	results, err := materials.Search(context.TODO(), courseID, "recursion base case", SearchOptions{MinRelevance: 50})
	assert.NoError(t, err)
	assert.Len(t, results, 2)
	assert.Equal(t, "Recursion basics", results[0].Material.Title)
	assert.Equal(t, "Recursion in practice", results[1].Material.Title)
	for _, r := range results {
		assert.Equal(t, 67, r.RelevanceScore)
		assert.NotEmpty(t, r.Snippet)
	}
}

func TestMaterialService_SearchTypeFilter(t *testing.T) {
	db := tester.TestDB()
	materials := NewMaterialService(db, compress.NewGZip())
	courseID := uuid.New().String()

	for _, typ := range []string{model.MaterialTypeNotes, model.MaterialTypeSlides} {
		_, err := materials.Create(context.TODO(), CreateMaterial{
			CourseID: courseID,
			Type:     typ,
			Title:    "Hashing",
			Content:  "Hash tables resolve collisions with chaining.",
		})
		assert.NoError(t, err)
	}

	results, err := materials.Search(context.TODO(), courseID, "hashing collisions", SearchOptions{
		Types: []string{model.MaterialTypeSlides},
	})
	assert.NoError(t, err)
	assert.Len(t, results, 1)
	assert.Equal(t, model.MaterialTypeSlides, results[0].Material.Type)
}

func TestMaterialService_SearchEmptyQuery(t *testing.T) {
	db := tester.TestDB()
	materials := NewMaterialService(db, compress.NewGZip())
	courseID := uuid.New().String()

	_, err := materials.Create(context.TODO(), CreateMaterial{
		CourseID: courseID,
		Type:     model.MaterialTypeNotes,
		Title:    "Anything",
		Content:  "at all",
	})
	assert.NoError(t, err)

	results, err := materials.Search(context.TODO(), courseID, "", SearchOptions{})
	assert.NoError(t, err)
	assert.Empty(t, results)
}

func TestMaterialService_SearchScopedToCourse(t *testing.T) {
	db := tester.TestDB()
	materials := NewMaterialService(db, compress.NewBrotli())

	courseA := uuid.New().String()
	courseB := uuid.New().String()

	_, err := materials.Create(context.TODO(), CreateMaterial{
		CourseID: courseA,
		Type:     model.MaterialTypeNotes,
		Title:    "Graphs",
		Content:  "Dijkstra finds shortest paths.",
	})
	assert.NoError(t, err)

	results, err := materials.Search(context.TODO(), courseB, "dijkstra", SearchOptions{})
	assert.NoError(t, err)
	assert.Empty(t, results)
}
