package jobs

import (
	"context"
	"time"

	"github.com/campusq/forum/internal/cache"
	"github.com/campusq/forum/internal/model"
	"github.com/campusq/forum/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ViewFlusher drains accumulated redis view counts into the threads
// table.
type ViewFlusher struct {
	views     *cache.ViewCounter
	viewCount *store.Counter
}

func NewViewFlusher(db *gorm.DB, views *cache.ViewCounter) *ViewFlusher {
	return &ViewFlusher{
		views:     views,
		viewCount: store.NewCounter(db, &model.Thread{}, "view_count"),
	}
}

func (v *ViewFlusher) Schedule() string {
	return "@every 1m"
}

func (v *ViewFlusher) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	counts, err := v.views.Drain(ctx)
	if err != nil {
		// partial drains still carry counts that must reach the table
		logrus.Errorf("failed to drain view counts: %v", err)
	}

	for threadID, n := range counts {
		if err := v.viewCount.Add(ctx, threadID, n); err != nil {
			logrus.Errorf("failed to flush views for thread %s: %v", threadID, err)
		}
	}
}
