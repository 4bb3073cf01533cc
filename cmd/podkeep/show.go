// ABOUTME: Show command rendering one episode's show notes in the terminal
// ABOUTME: HTML notes are converted to Markdown and rendered with glamour

package main

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/podkeep/internal/content"
	"github.com/harper/podkeep/internal/timeutil"
)

var showCmd = &cobra.Command{
	Use:   "show <feed-url-or-id> <n>",
	Short: "Show an episode's details",
	Long:  `Show one episode's details and show notes. <n> is the episode number from 'podkeep episodes'.`,
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		podcast, err := resolvePodcast(args[0])
		if err != nil {
			return err
		}

		n, err := strconv.Atoi(args[1])
		if err != nil || n < 1 {
			return fmt.Errorf("invalid episode number: %s", args[1])
		}

		episodes, err := store.ListEpisodes(podcast.ID)
		if err != nil {
			return fmt.Errorf("failed to list episodes: %w", err)
		}
		if n > len(episodes) {
			return fmt.Errorf("podcast has %d episode(s), asked for %d", len(episodes), n)
		}

		episode := episodes[n-1]

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		fmt.Printf("%s\n", bold(episode.Title))
		if episode.ReleaseAt != nil {
			fmt.Printf("%s\n", faint(episode.ReleaseAt.Format("Mon, 02 Jan 2006")))
		}
		if episode.Duration > 0 {
			fmt.Printf("%s\n", faint(timeutil.FormatDuration(episode.Duration)))
		}
		if episode.MediaURL != "" {
			fmt.Printf("%s\n", faint(episode.MediaURL))
		}
		fmt.Println()

		notes := content.Render(episode.Description)
		if notes == "" {
			return nil
		}

		rendered, err := glamour.Render(notes, "dark")
		if err != nil {
			// Fall back to the raw notes if terminal rendering fails
			fmt.Println(notes)
			return nil
		}
		fmt.Print(rendered)

		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}
