package store

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// Relations performs create-if-absent semantics for unique social
// relations (upvotes, endorsements). There is deliberately no precheck
// read: the table's unique index is the only arbiter, so two identical
// concurrent requests cannot both succeed.
type Relations[T any] struct {
	db *gorm.DB
}

func NewRelations[T any](db *gorm.DB) *Relations[T] {
	return &Relations[T]{db: db}
}

// TryCreate inserts rel unconditionally and reports whether it was
// newly created. A duplicate-key violation is resolved locally to
// (false, nil); every other storage error propagates unchanged.
func (r *Relations[T]) TryCreate(ctx context.Context, rel *T) (bool, error) {
	err := r.db.WithContext(ctx).Create(rel).Error
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Remove deletes the relation selected by the scopes and reports
// whether a row actually went away.
func (r *Relations[T]) Remove(ctx context.Context, scopes ...Scope) (bool, error) {
	res := r.db.WithContext(ctx).Scopes(scopes...).Delete(new(T))
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
