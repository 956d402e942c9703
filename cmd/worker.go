package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/campusq/forum/internal/cache"
	"github.com/campusq/forum/internal/config"
	"github.com/campusq/forum/internal/jobs"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func workerCmd() *cobra.Command {
	command := &cobra.Command{
		Use:   "worker",
		Short: "run the maintenance jobs",
		Run: func(cmd *cobra.Command, args []string) {
			cnf := config.LoadConfig()
			db := config.GetDb(cnf)

			scheduled := []jobs.CronJob{
				jobs.NewCounterReconciler(db),
			}

			rdb, err := cache.NewRedis(cnf.RedisAddr)
			if err != nil {
				logrus.Warnf("redis unavailable, view counts go straight to the database: %v", err)
			} else {
				defer rdb.Close()
				scheduled = append(scheduled, jobs.NewViewFlusher(db, cache.NewViewCounter(rdb)))
			}

			runner := jobs.NewRunner(scheduled)
			runner.Start()
			defer runner.Stop()

			logrus.Infof("worker started with %d jobs", len(scheduled))

			sig := make(chan os.Signal, 1)
			signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
			<-sig
		},
	}

	return command
}
