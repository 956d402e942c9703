package cmd

import (
	"context"

	"github.com/campusq/forum/internal/compress"
	"github.com/campusq/forum/internal/config"
	"github.com/campusq/forum/internal/model"
	"github.com/campusq/forum/internal/queue"
	"github.com/campusq/forum/internal/service"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

// engagementQueue connects to kafka when configured. A nil queue means
// the services drop events, which is fine for local work.
func engagementQueue(cnf *config.Config) queue.EngagementQueue {
	if cnf.KafkaServers == "" {
		return nil
	}

	q, err := queue.NewKafka(cnf.KafkaServers, cnf.KafkaTopic)
	if err != nil {
		logrus.Warnf("kafka unavailable, engagement events are dropped: %v", err)
		return nil
	}
	return q
}

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "db commands",
}

func init() {
	dbCmd.AddCommand(Migrate())
	dbCmd.AddCommand(Seed())
}

func Migrate() *cobra.Command {
	command := &cobra.Command{
		Use:   "migrate",
		Short: "Migrate the database",
		Run: func(cmd *cobra.Command, args []string) {
			db := config.GetDb(config.LoadConfig())
			err := model.Migrate(db)
			if err != nil {
				panic(err)
			}
		},
	}

	return command
}

func Seed() *cobra.Command {
	command := &cobra.Command{
		Use:   "seed",
		Short: "Seed the database with a demo course",
		Run: func(cmd *cobra.Command, args []string) {
			cnf := config.LoadConfig()
			db := config.GetDb(cnf)
			if err := model.Migrate(db); err != nil {
				panic(err)
			}
			if err := seed(db, engagementQueue(cnf)); err != nil {
				panic(err)
			}
		},
	}

	return command
}

func seed(db *gorm.DB, q queue.EngagementQueue) error {
	ctx := context.Background()

	course := &model.Course{
		ID:              uuid.New().String(),
		Code:            "CS201",
		Title:           "Data Structures",
		Term:            "Fall 2026",
		EnrollmentCount: 42,
	}
	if err := db.Create(course).Error; err != nil {
		return err
	}

	instructor := &model.User{
		ID:    uuid.New().String(),
		Name:  "Dana Whitfield",
		Email: "dana@example.edu",
		Role:  model.RoleInstructor,
	}
	student := &model.User{
		ID:    uuid.New().String(),
		Name:  "Sam Ortiz",
		Email: "sam@example.edu",
		Role:  model.RoleStudent,
	}
	if err := db.Create([]*model.User{instructor, student}).Error; err != nil {
		return err
	}

	threads := service.NewThreadService(db, nil, q)
	thread, err := threads.Create(ctx, service.CreateThread{
		CourseID: course.ID,
		AuthorID: student.ID,
		Title:    "Why does my recursive solution overflow the stack?",
		Content:  "My base case never fires when the input list is empty.",
	})
	if err != nil {
		return err
	}

	posts := service.NewPostService(db, q)
	post, err := posts.Create(ctx, service.CreatePost{
		ThreadID: thread.ID,
		CourseID: course.ID,
		AuthorID: instructor.ID,
		Content:  "Check the base case before the recursive call, not after.",
	})
	if err != nil {
		return err
	}

	if _, err := threads.Upvote(ctx, thread.ID, instructor.ID, course.ID); err != nil {
		return err
	}
	if _, err := posts.Endorse(ctx, post.ID, instructor.ID, course.ID); err != nil {
		return err
	}

	materials := service.NewMaterialService(db, compress.NewGZip())
	if _, err := materials.Create(ctx, service.CreateMaterial{
		CourseID: course.ID,
		Type:     model.MaterialTypeNotes,
		Title:    "Recursion fundamentals",
		Content:  "A recursive function needs a base case that terminates the recursion and a recursive case that shrinks the problem.",
		Keywords: []string{"recursion", "base", "case"},
	}); err != nil {
		return err
	}

	logrus.Infof("seeded course %s (%s)", course.Code, course.ID)
	return nil
}
