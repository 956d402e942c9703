package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/campusq/forum/internal/cursor"
	"gorm.io/gorm"
)

// Repo is a generic repository over a single entity table. Entity
// compositions layer joins, counts and relations on top of it.
type Repo[T any] struct {
	db   *gorm.DB
	id   func(*T) string
	sort SortField[T]
}

func NewRepo[T any](db *gorm.DB, id func(*T) string, sort SortField[T]) *Repo[T] {
	return &Repo[T]{
		db:   db,
		id:   id,
		sort: sort,
	}
}

// FindByID retrieves a row by id. A missing id is (nil, nil), not an
// error.
func (r *Repo[T]) FindByID(ctx context.Context, id string) (*T, error) {
	var row T
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// FindAll retrieves every row matching the scopes. Unbounded; meant for
// small reference tables and in-memory search corpora.
func (r *Repo[T]) FindAll(ctx context.Context, scopes ...Scope) ([]*T, error) {
	var rows []*T
	err := r.db.WithContext(ctx).Scopes(scopes...).Find(&rows).Error
	return rows, err
}

func (r *Repo[T]) Create(ctx context.Context, row *T) error {
	return r.db.WithContext(ctx).Create(row).Error
}

// Update applies a partial change set and returns the updated row, or
// (nil, nil) when the id does not exist.
func (r *Repo[T]) Update(ctx context.Context, id string, changes map[string]any) (*T, error) {
	res := r.db.WithContext(ctx).Model(new(T)).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// Delete removes a row by id and reports whether a row actually went
// away. A missing id is false, never an error.
func (r *Repo[T]) Delete(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Erase removes a row permanently, bypassing the soft-delete marker.
// Rows whose columns back a unique index must be erased, not
// soft-deleted, or the index keeps the value reserved.
func (r *Repo[T]) Erase(ctx context.Context, id string) (bool, error) {
	res := r.db.WithContext(ctx).Unscoped().Where("id = ?", id).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *Repo[T]) Count(ctx context.Context, scopes ...Scope) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(new(T)).Scopes(scopes...).Count(&n).Error
	return n, err
}

// Paginate returns one cursor-delimited window of rows.
//
// Ordering is over the (sort column, id) tuple so it stays total when
// many rows share a sort value; the cursor predicate uses the same
// tuple comparison. One extra row is fetched to detect whether more
// rows remain without a separate count query.
func (r *Repo[T]) Paginate(ctx context.Context, opts ListOptions, scopes ...Scope) (*Page[T], error) {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	dir := opts.Direction
	if dir == "" {
		dir = Desc
	}

	q := r.db.WithContext(ctx).Scopes(scopes...)

	if opts.Cursor != "" {
		c, err := cursor.Decode(opts.Cursor)
		if err != nil {
			return nil, ErrInvalidCursor
		}
		val, err := r.sort.Value(c.Sort)
		if err != nil {
			return nil, ErrInvalidCursor
		}
		if dir == Desc {
			q = q.Where(fmt.Sprintf("(%s, id) < (?, ?)", r.sort.Column), val, c.ID)
		} else {
			q = q.Where(fmt.Sprintf("(%s, id) > (?, ?)", r.sort.Column), val, c.ID)
		}
	}

	order := fmt.Sprintf("%s ASC, id ASC", r.sort.Column)
	if dir == Desc {
		order = fmt.Sprintf("%s DESC, id DESC", r.sort.Column)
	}

	var rows []*T
	if err := q.Order(order).Limit(limit + 1).Find(&rows).Error; err != nil {
		return nil, err
	}

	page := &Page[T]{Items: rows}
	if len(rows) > limit {
		page.Items = rows[:limit]
		page.HasMore = true
		last := page.Items[limit-1]
		page.NextCursor = cursor.Encode(r.sort.Key(last), r.id(last))
	}

	return page, nil
}
