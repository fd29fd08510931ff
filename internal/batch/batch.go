// Package batch implements the sequential regional collection run: the
// orchestrator that drives one collection invocation per region, the result
// accumulator, and the end-of-run summary.
package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Region names one fixed data-collection target.
type Region string

// Status is the aggregate outcome of a finished batch.
type Status string

// Batch outcomes surfaced to the scheduling layer.
const (
	StatusSuccess        Status = "SUCCESS"
	StatusPartialFailure Status = "PARTIAL_FAILURE"
)

// JobResult records the outcome of one region's collection attempt. It is
// created once, immediately after the invoker returns, and never mutated.
type JobResult struct {
	Region    Region
	Succeeded bool
	StartedAt time.Time
	EndedAt   time.Time
}

// RunSummary aggregates a finished batch. It is computed once from the full
// result set rather than maintained as running counters.
type RunSummary struct {
	RunID          uuid.UUID
	TotalRegions   int
	SucceededCount int
	FailedCount    int
	FailedRegions  []Region
	StartedAt      time.Time
	EndedAt        time.Time
}

// Invoker runs the external collection command for a single region.
// Implementations must map every execution failure to false rather than an
// error so that one bad region cannot halt the batch. The contract is not
// tied to process exit codes; an in-process collector satisfies it too.
type Invoker interface {
	// Check verifies the collection command can be executed at all. It runs
	// once, before any region is attempted.
	Check() error
	// Invoke runs the collection for r to completion and reports success.
	Invoke(ctx context.Context, r Region) bool
}

// Pacer pauses the orchestrator between consecutive invocations.
type Pacer interface {
	Wait(ctx context.Context) error
}

// Clock supplies timestamps so tests can pin time.
type Clock interface {
	Now() time.Time
}

// ConfigError marks a fatal precondition failure. The batch aborts before any
// region is attempted and the process exits with a distinct status.
type ConfigError struct {
	Err error
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration: %v", e.Err)
}

func (e *ConfigError) Unwrap() error { return e.Err }

// NewSummary derives a RunSummary from the complete result slice. FailedRegions
// preserves the original iteration order.
func NewSummary(runID uuid.UUID, results []JobResult, startedAt, endedAt time.Time) RunSummary {
	s := RunSummary{
		RunID:        runID,
		TotalRegions: len(results),
		StartedAt:    startedAt,
		EndedAt:      endedAt,
	}
	for _, r := range results {
		if r.Succeeded {
			s.SucceededCount++
			continue
		}
		s.FailedCount++
		s.FailedRegions = append(s.FailedRegions, r.Region)
	}
	return s
}
