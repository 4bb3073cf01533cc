// ABOUTME: Subscribe command creating a podcast from a feed URL and running the first sync
// ABOUTME: Supports resolving a regular web page to its feed with --discover

package main

import (
	"errors"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/podkeep/internal/discover"
	"github.com/harper/podkeep/internal/fetch"
	"github.com/harper/podkeep/internal/models"
	"github.com/harper/podkeep/internal/storage"
	"github.com/harper/podkeep/internal/syncer"
)

var subscribeCmd = &cobra.Command{
	Use:   "subscribe <feed-url>",
	Short: "Subscribe to a podcast",
	Long: `Subscribe to a podcast by feed URL. The feed is fetched immediately and
its episodes stored; the subscription is only kept if the first fetch succeeds.

With --discover the argument may be a regular web page, which is resolved
to its feed URL first.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		feedURL := args[0]

		if useDiscover, _ := cmd.Flags().GetBool("discover"); useDiscover {
			found, err := discover.Discover(cmd.Context(), fetch.NewHTTPFetcher(), feedURL)
			if err != nil {
				return fmt.Errorf("discovery failed: %w", err)
			}
			fmt.Printf("Discovered feed: %s\n", found.URL)
			feedURL = found.URL
		}

		// Re-subscribing a known podcast just flips the flag back on.
		existing, err := store.GetPodcastByURL(feedURL)
		if err == nil {
			if existing.Subscribed {
				fmt.Printf("Already subscribed to %s\n", existing.DisplayName())
				return nil
			}
			existing.Subscribed = true
			if err := store.UpdatePodcast(existing); err != nil {
				return fmt.Errorf("failed to resubscribe: %w", err)
			}
			fmt.Printf("Resubscribed to %s\n", existing.DisplayName())
			return nil
		}
		if !errors.Is(err, storage.ErrNotFound) {
			return err
		}

		podcast := models.NewPodcast(feedURL)
		if err := store.CreatePodcast(podcast); err != nil {
			return fmt.Errorf("failed to create podcast: %w", err)
		}

		outcome := coord.Sync(cmd.Context(), podcast.ID)
		if outcome.Status == syncer.StatusFailed {
			// Subscription requires one working fetch; roll back.
			if delErr := store.DeletePodcast(podcast.ID); delErr != nil {
				return fmt.Errorf("subscribe failed (%v) and cleanup failed: %w", outcome.Err, delErr)
			}
			return fmt.Errorf("subscribe failed: %w", outcome.Err)
		}

		green := color.New(color.FgGreen).SprintFunc()
		fmt.Printf("%s Subscribed to %s (%d episode(s))\n", green("v"), outcome.Title, outcome.Added)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(subscribeCmd)
	subscribeCmd.Flags().Bool("discover", false, "resolve a web page to its feed URL first")
}
