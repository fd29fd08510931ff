package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// newRegionsCmd creates the 'regions' subcommand. It lets operators verify
// the configured region list and its processing order without running a
// batch.
func newRegionsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "regions",
		Short: "Print the configured region list in processing order",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := resolveApp(cmd.Context())
			if err != nil {
				return err
			}
			for i, r := range a.Config().Regions {
				fmt.Fprintf(cmd.OutOrStdout(), "%d. %s\n", i+1, r)
			}
			return nil
		},
	}
}
