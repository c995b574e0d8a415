package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information set at build time.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	logOpts := &logOptions{Level: "info", Format: "text"}

	rootCmd := &cobra.Command{
		Use:   "rangeslider",
		Short: "Host and inspect the dual handle range slider control",
		Long: `rangeslider hosts the range slider form control outside a form platform.

It can serve the control to browsers over a websocket session, drive it from
the terminal, render its standalone page and print the effective property bag.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return logOpts.apply()
		},
	}
	rootCmd.PersistentFlags().StringVar(&logOpts.Level, "log-level", logOpts.Level, "log level (trace, debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&logOpts.Format, "log-format", logOpts.Format, "log format (text or json)")
	rootCmd.PersistentFlags().StringVar(&logOpts.File, "log-file", "", "write logs to a rotating file instead of stderr")

	rootCmd.AddCommand(
		serveCmd(),
		playCmd(),
		renderCmd(),
		manifestCmd(),
		versionCmd(),
	)
	return rootCmd
}
