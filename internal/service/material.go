package service

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"github.com/campusq/forum/internal/compress"
	"github.com/campusq/forum/internal/model"
	"github.com/campusq/forum/internal/search"
	"github.com/campusq/forum/internal/store"
	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func materialSort() store.SortField[model.Material] {
	return store.TimeSortField("created_at", func(m *model.Material) time.Time {
		return m.CreatedAt
	})
}

// NewMaterialService creates a new MaterialService. Content is stored
// through the given encoder; the search corpus is decoded on each call.
func NewMaterialService(db *gorm.DB, enc compress.Compress) *MaterialService {
	return &MaterialService{
		materials: store.NewRepo(db, func(m *model.Material) string { return m.ID }, materialSort()),
		compress:  enc,
		stopwords: search.DefaultStopwords(),
	}
}

// MaterialService manages course materials and keyword relevance search
// over them.
type MaterialService struct {
	materials *store.Repo[model.Material]
	compress  compress.Compress
	stopwords mapset.Set[string]
}

type CreateMaterial struct {
	CourseID string
	Type     string
	Title    string
	Content  string
	Keywords []string
}

func (s *MaterialService) Create(ctx context.Context, in CreateMaterial) (*model.Material, error) {
	data, err := s.compress.Encode([]byte(in.Content))
	if err != nil {
		return nil, err
	}

	keywords := in.Keywords
	if keywords == nil {
		keywords = make([]string, 0)
	}
	for i, kw := range keywords {
		keywords[i] = strings.ToLower(kw)
	}
	keywordData, err := json.Marshal(keywords)
	if err != nil {
		return nil, err
	}

	material := &model.Material{
		ID:          uuid.New().String(),
		CourseID:    in.CourseID,
		Type:        in.Type,
		Title:       in.Title,
		Content:     data,
		Compression: s.compress.Name(),
		Keywords:    string(keywordData),
	}

	if err := s.materials.Create(ctx, material); err != nil {
		return nil, err
	}

	return material, nil
}

// Get retrieves a material with its content decoded.
func (s *MaterialService) Get(ctx context.Context, id string) (*model.Material, error) {
	material, err := s.materials.FindByID(ctx, id)
	if err != nil || material == nil {
		return nil, err
	}

	content, err := s.decode(material)
	if err != nil {
		return nil, err
	}
	material.Content = content

	return material, nil
}

// decode recovers the plain content of a stored row.
func (s *MaterialService) decode(m *model.Material) ([]byte, error) {
	data, err := compress.FromName(m.Compression).Decode(m.Content)
	if err != nil {
		return nil, ErrMaterialCorrupted
	}
	return data, nil
}

func (s *MaterialService) Delete(ctx context.Context, id string) (bool, error) {
	return s.materials.Delete(ctx, id)
}

// List pages through a course's materials, newest first.
func (s *MaterialService) List(ctx context.Context, courseID string, opts store.ListOptions) (*store.Page[model.Material], error) {
	return s.materials.Paginate(ctx, opts, store.Eq("course_id", courseID))
}

// SearchOptions narrow and shape one search call. Zero values fall back
// to the engine defaults.
type SearchOptions struct {
	Types        []string
	Limit        int
	MinRelevance int
}

// MaterialResult is a scored material with the snippet around the first
// matched keyword.
type MaterialResult struct {
	Material        *model.Material
	RelevanceScore  int
	MatchedKeywords []string
	Snippet         string
}

// Search runs keyword relevance search over a course's materials. The
// corpus is derived from stored rows on every call; there is no
// persisted index to keep in sync.
func (s *MaterialService) Search(ctx context.Context, courseID, query string, opts SearchOptions) ([]*MaterialResult, error) {
	scopes := []store.Scope{store.Eq("course_id", courseID)}
	if len(opts.Types) > 0 {
		scopes = append(scopes, store.In("type", opts.Types))
	}

	materials, err := s.materials.FindAll(ctx, scopes...)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*model.Material, len(materials))
	docs := make([]search.Document, 0, len(materials))
	for _, m := range materials {
		content, err := s.decode(m)
		if err != nil {
			return nil, err
		}

		var keywords []string
		if m.Keywords != "" {
			if err := json.Unmarshal([]byte(m.Keywords), &keywords); err != nil {
				return nil, ErrMaterialCorrupted
			}
		}

		byID[m.ID] = m
		docs = append(docs, search.Document{
			ID:       m.ID,
			Title:    m.Title,
			Content:  string(content),
			Keywords: mapset.NewThreadUnsafeSet(keywords...),
		})
	}

	engine := search.New(search.Options{
		Stopwords:    s.stopwords,
		MinRelevance: opts.MinRelevance,
		Limit:        opts.Limit,
	})

	results := engine.Search(docs, query)

	out := make([]*MaterialResult, 0, len(results))
	for _, r := range results {
		out = append(out, &MaterialResult{
			Material:        byID[r.Document.ID],
			RelevanceScore:  r.RelevanceScore,
			MatchedKeywords: r.MatchedKeywords,
			Snippet:         r.Snippet,
		})
	}

	return out, nil
}
