package service

import (
	"context"
	"time"

	"github.com/campusq/forum/internal/model"
	"github.com/campusq/forum/internal/queue"
	"github.com/campusq/forum/internal/store"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// Author is the public slice of a user's profile joined onto list rows.
type Author struct {
	ID        string
	Name      string
	Role      string
	AvatarURL string
}

func userRepo(db *gorm.DB) *store.Repo[model.User] {
	return store.NewRepo(db, func(u *model.User) string { return u.ID },
		store.TimeSortField("created_at", func(u *model.User) time.Time { return u.CreatedAt }))
}

// loadAuthors resolves a page worth of author ids in one query.
func loadAuthors(ctx context.Context, users *store.Repo[model.User], ids []string) (map[string]*Author, error) {
	authors := make(map[string]*Author, len(ids))
	if len(ids) == 0 {
		return authors, nil
	}

	seen := make(map[string]bool, len(ids))
	unique := make([]string, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			unique = append(unique, id)
		}
	}

	rows, err := users.FindAll(ctx, store.In("id", unique))
	if err != nil {
		return nil, err
	}

	for _, u := range rows {
		authors[u.ID] = &Author{
			ID:        u.ID,
			Name:      u.Name,
			Role:      u.Role,
			AvatarURL: u.AvatarURL,
		}
	}

	return authors, nil
}

// countByParent runs a single grouped aggregation for a page of parent
// ids, instead of one count query per row.
func countByParent(ctx context.Context, db *gorm.DB, m any, parentCol string, ids []string) (map[string]int64, error) {
	type row struct {
		ParentID string
		N        int64
	}

	var rows []row
	err := db.WithContext(ctx).Model(m).
		Select(parentCol+" AS parent_id, COUNT(*) AS n").
		Where(parentCol+" IN ?", ids).
		Group(parentCol).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int64, len(rows))
	for _, r := range rows {
		counts[r.ParentID] = r.N
	}

	return counts, nil
}

// publish hands an engagement event to the queue when one is wired.
// Events are advisory; a failed publish never fails the action.
func publish(ctx context.Context, q queue.EngagementQueue, event queue.Event) {
	if q == nil {
		return
	}
	if err := q.Publish(ctx, event); err != nil {
		logrus.Warnf("failed to publish %s event: %v", event.Kind, err)
	}
}
