package cmd

import (
	"github.com/spf13/cobra"

	"github.com/CongL3/MobileDependecyManager/infrastructure/dashboard"
)

var (
	serveAddr string
	serveDir  string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Long: `Serve the static dashboard directory (index.html plus the generated
data.json) for local inspection. Run "check" first to produce the data file.`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", ":8080", "Listen address")
	serveCmd.Flags().StringVar(&serveDir, "dir", "docs", "Dashboard directory")
	rootCmd.AddCommand(serveCmd)
}

func runServe(_ *cobra.Command, _ []string) error {
	server := dashboard.NewServer(serveDir, serveAddr)
	return server.ListenAndServe()
}
