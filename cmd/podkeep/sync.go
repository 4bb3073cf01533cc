// ABOUTME: Sync command refreshing one podcast or the whole fleet with colored progress output
// ABOUTME: Per-podcast failures are isolated and reported in the summary

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/podkeep/internal/syncer"
)

var syncCmd = &cobra.Command{
	Use:   "sync [feed-url-or-id]",
	Short: "Sync episodes from feeds",
	Long: `Sync new episodes from all subscribed podcasts, or from one podcast
given its feed URL or ID. One podcast failing never stops the others.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		printOutcome := func(o syncer.Outcome) {
			name := o.Title
			if name == "" {
				name = o.PodcastID
			}
			switch o.Status {
			case syncer.StatusUpdated:
				fmt.Printf("%s %s: %d new\n", green("v"), name, o.Added)
			case syncer.StatusUnchanged:
				fmt.Printf("%s %s\n", faint("-"), name)
			case syncer.StatusFailed:
				fmt.Printf("%s %s: %v\n", red("x"), name, o.Err)
			}
		}

		if len(args) == 1 {
			podcast, err := resolvePodcast(args[0])
			if err != nil {
				return err
			}

			outcome := coord.Sync(cmd.Context(), podcast.ID)
			printOutcome(outcome)
			if outcome.Status == syncer.StatusFailed {
				return fmt.Errorf("sync failed: %w", outcome.Err)
			}
			return nil
		}

		agg, err := coord.SyncAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("fleet sync failed: %w", err)
		}

		if len(agg.Outcomes) == 0 {
			fmt.Println("No subscriptions. Subscribe with 'podkeep subscribe <feed-url>'")
			return nil
		}

		for _, o := range agg.Outcomes {
			printOutcome(o)
		}

		fmt.Println()
		fmt.Printf("Summary: %s\n", agg.Summary())

		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
