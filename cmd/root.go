package cmd

import (
	"fmt"
	"os"

	logger "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/CongL3/MobileDependecyManager/config"
)

var (
	// Global flags
	configPath string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:   "depcheck",
	Short: "Dependency version checker for Swift Package Manager projects",
	Long: `A CLI tool that checks the Swift Package Manager dependencies of an iOS
project against the latest versions published upstream.

It reads the project's Package.resolved (or a static watchlist from the
config file), asks each dependency's hosting service for the latest release,
tag, or branch head, classifies every pin into one of four categories
(Up to Date, Update Available, Tracks Branch/Revision, Error Checking),
and writes a JSON report consumed by the static dashboard under docs/.`,
	PersistentPreRun: func(_ *cobra.Command, _ []string) {
		logger.SetFormatter(&logger.TextFormatter{
			ForceColors:   true,
			FullTimestamp: true,
		})
		if verbose || os.Getenv("DEBUG") == "true" {
			logger.SetLevel(logger.DebugLevel)
		}
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "",
		"Path to config file (default: auto-detect)")
	rootCmd.PersistentFlags().String("token", "",
		"Auth token for the hosting service (overrides config and GITHUB_TOKEN)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Enable verbose output")
}

// loadConfig resolves the config file, loads it, and applies CLI/env
// token overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.FindConfigFile()
		if err != nil {
			return nil, fmt.Errorf(
				"no config file found: %w (specify one with --config or create depcheck.yaml)",
				err,
			)
		}
	}

	logger.Infof("Using config file: %s", path)

	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	if token, _ := cmd.Flags().GetString("token"); token != "" {
		cfg.Token = token
	}
	if cfg.Token == "" {
		cfg.Token = os.Getenv("GITHUB_TOKEN")
	}
	if cfg.Token == "" {
		logger.Warn("No auth token configured; rate limits will be low and private repos inaccessible")
	}

	return cfg, nil
}
