package store

import (
	"errors"

	"gorm.io/gorm"
)

const (
	// DefaultLimit applies when a caller passes no page size.
	DefaultLimit = 20
	// MaxLimit is a hard clamp, not an error.
	MaxLimit = 100
)

type Direction string

const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// ErrInvalidCursor is returned for any pagination token that does not
// decode. The policy is strict at every call site: callers never fall
// back to an uncursored listing.
var ErrInvalidCursor = errors.New("invalid pagination cursor")

// ListOptions control a single Paginate call.
type ListOptions struct {
	Cursor    string
	Limit     int
	Direction Direction
}

// Page is one window of matching rows. HasMore is true iff strictly
// more rows match beyond Items; NextCursor is set only in that case.
type Page[T any] struct {
	Items      []*T
	NextCursor string
	HasMore    bool
}

// Scope is an entity-specific predicate composed into a query with AND.
type Scope = func(*gorm.DB) *gorm.DB

// Eq filters rows where column equals value.
func Eq(column string, value any) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" = ?", value)
	}
}

// In filters rows where column is one of values.
func In[V any](column string, values []V) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(column+" IN ?", values)
	}
}
