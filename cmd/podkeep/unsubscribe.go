// ABOUTME: Unsubscribe command clearing the subscription flag or discarding the podcast
// ABOUTME: With --discard the podcast and its episodes are deleted (cascade)

package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

var unsubscribeCmd = &cobra.Command{
	Use:   "unsubscribe <feed-url-or-id>",
	Short: "Unsubscribe from a podcast",
	Long: `Unsubscribe from a podcast. Episodes stay on disk and background sync
skips the podcast. With --discard the podcast and every stored episode
are deleted.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		podcast, err := resolvePodcast(args[0])
		if err != nil {
			return err
		}

		if discard, _ := cmd.Flags().GetBool("discard"); discard {
			if err := store.DeletePodcast(podcast.ID); err != nil {
				return fmt.Errorf("failed to delete podcast: %w", err)
			}
			fmt.Printf("Deleted %s and its episodes\n", podcast.DisplayName())
			return nil
		}

		if !podcast.Subscribed {
			fmt.Printf("Not subscribed to %s\n", podcast.DisplayName())
			return nil
		}

		podcast.Subscribed = false
		if err := store.UpdatePodcast(podcast); err != nil {
			return fmt.Errorf("failed to unsubscribe: %w", err)
		}

		fmt.Printf("Unsubscribed from %s\n", podcast.DisplayName())
		return nil
	},
}

func init() {
	rootCmd.AddCommand(unsubscribeCmd)
	unsubscribeCmd.Flags().Bool("discard", false, "also delete the podcast and its episodes")
}
