// ABOUTME: Root Cobra command and global flags
// ABOUTME: Sets up CLI structure and wires config, storage, fetcher, and the sync coordinator

package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/harper/podkeep/internal/config"
	"github.com/harper/podkeep/internal/fetch"
	"github.com/harper/podkeep/internal/storage"
	"github.com/harper/podkeep/internal/syncer"
)

var (
	cfgPath string
	verbose bool

	cfg   *config.Config
	store storage.Store
	coord *syncer.Coordinator
)

var rootCmd = &cobra.Command{
	Use:   "podkeep",
	Short: "Podcast discovery and subscription manager",
	Long: `podkeep tracks podcast subscriptions from the command line.

Search the podcast directory, subscribe to feeds, and keep episode
lists synced in the foreground or on a background schedule.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			log.SetLevel(log.DebugLevel)
		}

		if cfgPath == "" {
			cfgPath = config.DefaultConfigPath()
		}

		var err error
		cfg, err = config.Load(cfgPath)
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		store, err = storage.NewSQLiteStore(cfg.DBPath())
		if err != nil {
			return fmt.Errorf("failed to open storage: %w", err)
		}

		coord = syncer.New(fetch.NewHTTPFetcher(), store, syncer.Options{
			FetchTimeout: cfg.GetFetchTimeout(),
			Concurrency:  cfg.GetConcurrency(),
		})

		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if store != nil {
			if err := store.Close(); err != nil {
				return fmt.Errorf("failed to close storage: %w", err)
			}
		}
		return nil
	},
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}
