// ABOUTME: Search command querying the podcast directory
// ABOUTME: Prints matches with the feed URL needed to subscribe

package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/harper/podkeep/internal/directory"
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search the podcast directory",
	Long:  `Search the iTunes podcast directory and print matching podcasts with their feed URLs.`,
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		term := strings.Join(args, " ")

		client := directory.NewClient(nil)
		results, err := client.Search(cmd.Context(), term, limit)
		if err != nil {
			return fmt.Errorf("search failed: %w", err)
		}

		if len(results) == 0 {
			fmt.Printf("No podcasts found for %q\n", term)
			return nil
		}

		bold := color.New(color.Bold).SprintFunc()
		faint := color.New(color.Faint).SprintFunc()

		for _, r := range results {
			fmt.Printf("%s", bold(r.Name))
			if r.Artist != "" {
				fmt.Printf(" %s", faint("by "+r.Artist))
			}
			fmt.Println()
			if r.Genre != "" || r.EpisodeCount > 0 {
				fmt.Printf("  %s", faint(fmt.Sprintf("%s, %d episode(s)", r.Genre, r.EpisodeCount)))
				fmt.Println()
			}
			fmt.Printf("  %s\n\n", r.FeedURL)
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(searchCmd)
	searchCmd.Flags().IntP("limit", "n", 10, "maximum number of results")
}
