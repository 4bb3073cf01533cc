// ABOUTME: Episodes command listing a podcast's stored episodes
// ABOUTME: Shows release date and duration; numbering feeds the show command

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/podkeep/internal/timeutil"
)

var episodesCmd = &cobra.Command{
	Use:   "episodes <feed-url-or-id>",
	Short: "List a podcast's episodes",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		podcast, err := resolvePodcast(args[0])
		if err != nil {
			return err
		}

		episodes, err := store.ListEpisodes(podcast.ID)
		if err != nil {
			return fmt.Errorf("failed to list episodes: %w", err)
		}

		if len(episodes) == 0 {
			fmt.Printf("No episodes stored for %s\n", podcast.DisplayName())
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		fmt.Printf("%s\n\n", bold(podcast.DisplayName()))
		for i, e := range episodes {
			date := "          "
			if e.ReleaseAt != nil {
				date = e.ReleaseAt.Format("2006-01-02")
			}
			fmt.Printf("%3d. %s  %s  %s\n", i+1, faint(date), e.Title, faint(timeutil.FormatDuration(e.Duration)))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(episodesCmd)
}
