// Package main provides the entry point for the platform API server.
//
// Usage:
//
//	platform-api                      # serve with env config (PORT, ENV, ...)
//	platform-api serve -c api.yaml    # serve with a config file
//	platform-api version
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// set via -ldflags "-X main.version=..."
var (
	version = "dev"
	commit  = "none"
)

var rootCmd = &cobra.Command{
	Use:   "platform-api",
	Short: "Main Platform API server",
	Long: `Serves the Main Platform API: GET / (info), GET /health and GET /test.

Configuration comes from an optional YAML file, then the environment
(PORT, HOST, ENV or NODE_ENV, HEARTBEAT_SCHEDULE), then flags.`,
	SilenceUsage:  true,
	SilenceErrors: true, // runServe logs its own errors
	RunE:          runServe,
}

var serveCmd = &cobra.Command{
	Use:           "serve",
	Short:         "Start the API server (default command)",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("platform-api %s (commit: %s)\n", version, commit)
	},
}

func init() {
	registerFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// registerFlags adds the serve flags; subcommands inherit them
func registerFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().StringP("config", "c", "", "path to YAML config file (optional)")
	cmd.PersistentFlags().IntP("port", "p", 0, "listen port (overrides PORT)")
	cmd.PersistentFlags().String("host", "", "listen host (overrides HOST)")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
