// ABOUTME: List command showing all podcasts with episode counts and fetch state
// ABOUTME: Unsubscribed podcasts and fetch errors are called out

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List podcasts",
	RunE: func(cmd *cobra.Command, args []string) error {
		podcasts, err := store.ListPodcasts()
		if err != nil {
			return fmt.Errorf("failed to list podcasts: %w", err)
		}

		if len(podcasts) == 0 {
			fmt.Println("No podcasts. Subscribe with 'podkeep subscribe <feed-url>'")
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()

		for _, p := range podcasts {
			count, err := store.CountEpisodes(p.ID)
			if err != nil {
				return fmt.Errorf("failed to count episodes: %w", err)
			}

			fmt.Printf("%s", bold(p.DisplayName()))
			if !p.Subscribed {
				fmt.Printf(" %s", faint("(unsubscribed)"))
			}
			fmt.Println()

			detail := fmt.Sprintf("%d episode(s)", count)
			if p.LastUpdatedAt != nil {
				detail += ", last new episode " + p.LastUpdatedAt.Format("2006-01-02")
			}
			fmt.Printf("  %s\n", faint(detail))

			if p.LastError != nil {
				fmt.Printf("  %s %s\n", red("x"), *p.LastError)
			}

			fmt.Printf("  %s\n\n", faint(p.FeedURL))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(listCmd)
}
