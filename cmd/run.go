package cmd

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/velohist/regionharvest/internal/batch"
	"github.com/velohist/regionharvest/internal/invoker"
	"github.com/velohist/regionharvest/internal/pacing"
)

// errPartial marks a finished batch in which at least one region failed or
// the run was halted by a shutdown signal.
var errPartial = errors.New("one or more regions failed")

// newRunCmd creates the 'run' subcommand, which executes a single batch over
// every configured region.
func newRunCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "run",
		Short: "Run one collection batch over all configured regions",
		Long: `Invokes the external collection command once per configured region, in
order, pausing between invocations. Exit status 0 means every region
succeeded, 1 means at least one region failed, 2 means the collection
command could not be found.`,
		RunE: runBatchCommand,
	}
}

func runBatchCommand(cmd *cobra.Command, _ []string) error {
	a, err := resolveApp(cmd.Context())
	if err != nil {
		return err
	}
	cfg := a.Config()
	logger := a.Logger()

	// A termination signal stops further region iteration; the region in
	// flight is wound down by the invoker.
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	inv := invoker.New(cfg.Collector.Command, cfg.CollectorTimeout(), logger)
	pacer := pacing.New(cfg.PacingInterval(), a.Metrics().ObservePacingWait)
	orch := batch.New(inv, pacer, a.Clock(), a.Metrics(), logger)

	regions := make([]batch.Region, len(cfg.Regions))
	for i, r := range cfg.Regions {
		regions[i] = batch.Region(r)
	}

	summary, status, err := orch.Run(ctx, regions)
	if err != nil {
		return err
	}

	if err := a.Metrics().WriteTextfile(cfg.Metrics.Textfile); err != nil {
		logger.Warn("metrics export failed", zap.Error(err))
	}

	if status != batch.StatusSuccess {
		return fmt.Errorf("%w: %d of %d", errPartial, summary.FailedCount, summary.TotalRegions)
	}
	return nil
}
