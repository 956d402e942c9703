package store

import (
	"context"

	"gorm.io/gorm"
)

// Counter adjusts a denormalized count column on a parent row. The
// adjustment is a single conditional UPDATE, never a read-then-write,
// so concurrent writers cannot under- or over-count.
type Counter struct {
	db     *gorm.DB
	model  any
	column string
}

func NewCounter(db *gorm.DB, model any, column string) *Counter {
	return &Counter{
		db:     db,
		model:  model,
		column: column,
	}
}

// Add applies col = col + delta to the row with the given id.
// Decrements are guarded so the column never goes negative.
func (c *Counter) Add(ctx context.Context, id string, delta int64) error {
	q := c.db.WithContext(ctx).Model(c.model).Where("id = ?", id)
	if delta < 0 {
		q = q.Where(c.column+" >= ?", -delta)
	}
	return q.UpdateColumn(c.column, gorm.Expr(c.column+" + ?", delta)).Error
}
