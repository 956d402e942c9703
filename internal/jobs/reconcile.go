package jobs

import (
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// CounterReconciler recomputes denormalized counters from the relation
// tables. Live updates are atomic increments, so this only heals drift
// left behind by historical read-then-write writers or manual edits.
type CounterReconciler struct {
	db *gorm.DB
}

func NewCounterReconciler(db *gorm.DB) *CounterReconciler {
	return &CounterReconciler{db: db}
}

func (c *CounterReconciler) Schedule() string {
	return "@every 10m"
}

func (c *CounterReconciler) Run() {
	statements := []string{
		`UPDATE threads SET upvote_count = (SELECT COUNT(*) FROM upvotes WHERE upvotes.thread_id = threads.id)`,
		`UPDATE posts SET endorsement_count = (SELECT COUNT(*) FROM endorsements WHERE endorsements.post_id = posts.id)`,
		`UPDATE ai_answers SET student_endorsements = (SELECT COUNT(*) FROM ai_endorsements WHERE ai_endorsements.answer_id = ai_answers.id)`,
	}

	for _, stmt := range statements {
		if err := c.db.Exec(stmt).Error; err != nil {
			logrus.Errorf("counter reconciliation failed: %v", err)
			return
		}
	}
}
