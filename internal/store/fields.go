package store

import (
	"strconv"
	"time"
)

// SortField is a compile-time descriptor of a sortable column of T.
// Declaring sort fields next to each entity means a caller cannot ask
// for a column the entity does not expose; there is no runtime
// field-name lookup.
type SortField[T any] struct {
	// Column is the storage-level column name.
	Column string
	// Key extracts the cursor-encoded sort value of a row.
	Key func(*T) string
	// Value decodes a cursor key back into a comparable query value.
	Value func(string) (any, error)
}

// TimeSortField builds a descriptor for a timestamp column. Cursor keys
// carry the instant as integer nanoseconds so they survive the round
// trip without precision loss.
func TimeSortField[T any](column string, at func(*T) time.Time) SortField[T] {
	return SortField[T]{
		Column: column,
		Key: func(row *T) string {
			return strconv.FormatInt(at(row).UTC().UnixNano(), 10)
		},
		Value: func(key string) (any, error) {
			n, err := strconv.ParseInt(key, 10, 64)
			if err != nil {
				return nil, err
			}
			return time.Unix(0, n).UTC(), nil
		},
	}
}
