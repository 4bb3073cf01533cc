// ABOUTME: Watch command running background fleet syncs on a cron schedule
// ABOUTME: Signal-aware shutdown; aggregate results go to the notification sink

package main

import (
	"fmt"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harper/podkeep/internal/scheduler"
	"github.com/harper/podkeep/internal/syncer"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Run background sync on a schedule",
	Long: `Run podkeep as a foreground daemon that syncs all subscriptions on a
schedule (default hourly, configurable via "schedule" in the config
file). Each run emits one aggregate notification. Stop with Ctrl-C.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		schedule, _ := cmd.Flags().GetString("schedule")
		if schedule == "" {
			schedule = cfg.GetSchedule()
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		notifier := &syncer.LogNotifier{}
		job := func() {
			if _, err := coord.SyncAllAndNotify(ctx, notifier); err != nil {
				log.WithError(err).Error("fleet sync failed")
			}
		}

		trigger, err := scheduler.NewCronTrigger(schedule, job)
		if err != nil {
			return err
		}

		log.WithField("schedule", schedule).Info("watching subscriptions")

		// Run once at startup, then on the schedule.
		job()
		trigger.Start()

		<-ctx.Done()
		fmt.Println()
		log.Info("shutting down")

		// Wait for any in-flight run to finish.
		<-trigger.Stop().Done()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(watchCmd)
	watchCmd.Flags().String("schedule", "", "cron schedule overriding the config file")
}
