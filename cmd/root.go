// Package cmd defines and implements the CLI commands for the regionharvest
// executable.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velohist/regionharvest/internal/app"
	"github.com/velohist/regionharvest/internal/batch"
)

var cfgFile string

// appKeyType is the key for storing the App in the command context.
type appKeyType string

const appKey appKeyType = "app"

// newApp is the application factory. It is a variable so tests can replace it
// with a factory returning a pre-built container.
var newApp = func() (*app.App, error) {
	return app.New(cfgFile)
}

// Exit codes surfaced to the scheduling layer (cron, systemd timer).
const (
	exitPartialFailure = 1
	exitConfigError    = 2
)

// newRootCmd creates and configures the root command.
func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "regionharvest",
		Short: "Sequential batch runner for regional results collection.",
		Long: `regionharvest drives the external per-region collection command across a
fixed list of regions, one region at a time, pausing between invocations and
reporting an aggregate summary. It is meant to be invoked on a fixed cadence
by cron or a systemd timer; the exit status tells the scheduler whether the
whole batch succeeded.`,
		SilenceUsage:  true,
		SilenceErrors: true,

		// Build the application container once, before any subcommand runs,
		// and stash it in the command context.
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			a, err := newApp()
			if err != nil {
				// Anything broken this early is a configuration problem.
				return &batch.ConfigError{Err: err}
			}
			cmd.SetContext(context.WithValue(cmd.Context(), appKey, a))
			return nil
		},

		// Flush and release shared services after the subcommand finishes.
		PersistentPostRun: func(cmd *cobra.Command, _ []string) {
			if a, ok := cmd.Context().Value(appKey).(*app.App); ok && a != nil {
				a.Close()
			}
		},
	}

	cmd.PersistentFlags().StringVar(&cfgFile, "config", "",
		"config file (default searches ./regionharvest.yaml and /etc/regionharvest)")

	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newRegionsCmd())

	return cmd
}

// resolveApp retrieves the container stored by PersistentPreRunE.
func resolveApp(ctx context.Context) (*app.App, error) {
	a, ok := ctx.Value(appKey).(*app.App)
	if !ok || a == nil {
		return nil, errors.New("application services not initialized")
	}
	return a, nil
}

// Execute is the main entry point. It maps command failures onto the exit
// codes the external scheduler distinguishes: 1 for a batch with failed
// regions, 2 for a fatal configuration problem.
func Execute() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)

		var cfgErr *batch.ConfigError
		if errors.As(err, &cfgErr) {
			os.Exit(exitConfigError)
		}
		os.Exit(exitPartialFailure)
	}
}
