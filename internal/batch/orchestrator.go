package batch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/velohist/regionharvest/internal/id/runid"
	"github.com/velohist/regionharvest/internal/metrics"
)

// Orchestrator drives the collection command across the region list, strictly
// in the order given, one region at a time. It owns the result accumulator;
// nothing else mutates it.
type Orchestrator struct {
	invoker Invoker
	pacer   Pacer
	clock   Clock
	rec     *metrics.Recorder
	logger  *zap.Logger
}

// New constructs an Orchestrator. A nil recorder or logger is replaced with a
// no-op equivalent.
func New(invoker Invoker, pacer Pacer, clock Clock, rec *metrics.Recorder, logger *zap.Logger) *Orchestrator {
	if rec == nil {
		rec = metrics.NewRecorder()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Orchestrator{
		invoker: invoker,
		pacer:   pacer,
		clock:   clock,
		rec:     rec,
		logger:  logger,
	}
}

// Run executes one batch over regions and returns the derived summary and
// aggregate status. The only error it returns is a *ConfigError from the
// pre-flight check; individual region failures are carried in the summary.
//
// Regions are processed in the exact order supplied. A failed region is
// recorded and the batch moves on; there is no retry and no reordering. The
// pacer runs between consecutive regions only, never before the first or
// after the last. Cancelling ctx during a pause halts further iteration and
// the regions processed so far are summarized as usual.
func (o *Orchestrator) Run(ctx context.Context, regions []Region) (RunSummary, Status, error) {
	if err := o.invoker.Check(); err != nil {
		// No batch outcome exists here: the zero status keeps a zero-region
		// abort distinguishable from a batch with failed regions.
		return RunSummary{}, "", &ConfigError{Err: err}
	}

	runID := runid.New()
	logger := o.logger.With(zap.String("run_id", runID.String()))
	startedAt := o.clock.Now()
	logger.Info("starting collection batch", zap.Int("regions", len(regions)))

	results := make([]JobResult, 0, len(regions))
	halted := false
	for i, region := range regions {
		logger.Info(fmt.Sprintf("processing region %d/%d: %s", i+1, len(regions), region))

		start := o.clock.Now()
		ok := o.invoker.Invoke(ctx, region)
		end := o.clock.Now()
		results = append(results, JobResult{
			Region:    region,
			Succeeded: ok,
			StartedAt: start,
			EndedAt:   end,
		})
		o.rec.RegionDone(string(region), ok, end.Sub(start))

		if ok {
			logger.Info("region collected",
				zap.String("region", string(region)),
				zap.Duration("took", end.Sub(start)),
			)
		} else {
			logger.Error("region collection failed",
				zap.String("region", string(region)),
				zap.Duration("took", end.Sub(start)),
			)
		}

		if i == len(regions)-1 {
			continue
		}
		if err := o.pacer.Wait(ctx); err != nil {
			logger.Warn("shutdown requested; halting remaining regions", zap.Error(err))
			halted = true
			break
		}
	}

	summary := NewSummary(runID, results, startedAt, o.clock.Now())
	logger.Info("batch finished\n" + RenderSummary(summary))

	status := StatusSuccess
	if summary.FailedCount > 0 || halted {
		status = StatusPartialFailure
	}
	o.rec.RunDone(string(status), summary.EndedAt)
	return summary, status, nil
}
