package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/CongL3/MobileDependecyManager/report"
)

var outputOverride string

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check dependency versions and write the dashboard data file",
	Long: `Resolve the project's dependencies, fetch the latest available version
for each one, classify its status, and write the JSON report consumed by
the static dashboard.

This is the command intended to run from a cronjob or CI schedule.`,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().StringVarP(&outputOverride, "output", "o", "",
		"Report destination (overrides the config value)")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
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

	output := cfg.Output
	if outputOverride != "" {
		output = outputOverride
	}
	if writeErr := report.Write(result, output); writeErr != nil {
		return writeErr
	}

	renderTable(cmd.OutOrStdout(), result.Dependencies, false)
	renderSummary(cmd.OutOrStdout(), result.Summary)
	return nil
}
