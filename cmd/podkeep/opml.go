// ABOUTME: OPML import/export commands for podcast subscription lists
// ABOUTME: Import subscribes to each feed in the document; export writes current subscriptions

package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/podkeep/internal/models"
	"github.com/harper/podkeep/internal/opml"
	"github.com/harper/podkeep/internal/storage"
	"github.com/harper/podkeep/internal/syncer"
)

var opmlCmd = &cobra.Command{
	Use:   "opml",
	Short: "Import or export subscriptions as OPML",
}

var opmlImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Subscribe to every feed in an OPML file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		file, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open OPML file: %w", err)
		}
		defer file.Close()

		subs, err := opml.Parse(file)
		if err != nil {
			return err
		}

		green := color.New(color.FgGreen).SprintFunc()
		red := color.New(color.FgRed).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		imported := 0
		for _, sub := range subs {
			if _, err := store.GetPodcastByURL(sub.FeedURL); err == nil {
				fmt.Printf("%s %s (already subscribed)\n", faint("-"), sub.FeedURL)
				continue
			} else if !errors.Is(err, storage.ErrNotFound) {
				return err
			}

			podcast := models.NewPodcast(sub.FeedURL)
			podcast.Title = sub.Title
			if err := store.CreatePodcast(podcast); err != nil {
				return fmt.Errorf("failed to create podcast: %w", err)
			}

			outcome := coord.Sync(cmd.Context(), podcast.ID)
			if outcome.Status == syncer.StatusFailed {
				// Keep the subscription; the next sync may succeed.
				fmt.Printf("%s %s: %v\n", red("x"), sub.FeedURL, outcome.Err)
				continue
			}

			fmt.Printf("%s %s (%d episode(s))\n", green("v"), outcome.Title, outcome.Added)
			imported++
		}

		fmt.Printf("\nImported %d of %d feed(s)\n", imported, len(subs))
		return nil
	},
}

var opmlExportCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Export subscriptions to OPML (stdout by default)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		podcasts, err := store.ListPodcasts()
		if err != nil {
			return fmt.Errorf("failed to list podcasts: %w", err)
		}

		var subs []opml.Subscription
		for _, p := range podcasts {
			if !p.Subscribed {
				continue
			}
			subs = append(subs, opml.Subscription{Title: p.DisplayName(), FeedURL: p.FeedURL})
		}

		out := os.Stdout
		if len(args) == 1 {
			file, err := os.Create(args[0])
			if err != nil {
				return fmt.Errorf("failed to create file: %w", err)
			}
			defer file.Close()
			out = file
		}

		return opml.Write(out, "podkeep subscriptions", subs)
	},
}

func init() {
	rootCmd.AddCommand(opmlCmd)
	opmlCmd.AddCommand(opmlImportCmd)
	opmlCmd.AddCommand(opmlExportCmd)
}
