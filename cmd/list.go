package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var showOutdatedOnly bool

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List dependency versions without writing the report",
	Long: `Run the same check as "check" but only print the result table,
leaving the dashboard data file untouched.`,
	RunE: runList,
}

func init() {
	listCmd.Flags().BoolVar(&showOutdatedOnly, "outdated", false,
		"Show only dependencies with an update available")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	service := injectCheckService()
	result, err := service.Run(ctx, cfg)
	if err != nil {
		return fmt.Errorf("check run failed: %w", err)
	}

	renderTable(cmd.OutOrStdout(), result.Dependencies, showOutdatedOnly)
	renderSummary(cmd.OutOrStdout(), result.Summary)
	return nil
}
