// Package invoker executes the external per-region collection command.
package invoker

import (
	"bufio"
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/velohist/regionharvest/internal/batch"
)

// Command invokes a collection executable once per region, passing the region
// identifier as the sole argument. Success is the child's zero exit status.
type Command struct {
	path    string
	timeout time.Duration
	logger  *zap.Logger
}

// New builds a Command invoker. A timeout of zero or less disables the
// per-invocation deadline.
func New(path string, timeout time.Duration, logger *zap.Logger) *Command {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Command{path: path, timeout: timeout, logger: logger}
}

// Check verifies the collection command exists and is executable. It is the
// single pre-flight check of a batch: a failure here aborts the run before
// any region is attempted.
func (c *Command) Check() error {
	if c.path == "" {
		return errors.New("collector command not configured")
	}
	if _, err := exec.LookPath(c.path); err != nil {
		return fmt.Errorf("collector command: %w", err)
	}
	return nil
}

// Invoke runs the collection command for r, blocking until it finishes, and
// reports whether it exited cleanly. Every execution failure — a binary that
// vanished since Check, a non-zero exit, a signal, a timeout — maps to false
// so the batch can move on to the next region.
func (c *Command) Invoke(ctx context.Context, r batch.Region) bool {
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, c.path, string(r))
	out, err := cmd.CombinedOutput()
	c.forwardOutput(r, out)
	if err != nil {
		c.logger.Error("collection command failed",
			zap.String("region", string(r)),
			zap.Error(err),
		)
		return false
	}
	return true
}

// forwardOutput relays child stdout/stderr into the run log, one line per
// entry, so collector output is never discarded.
func (c *Command) forwardOutput(r batch.Region, out []byte) {
	sc := bufio.NewScanner(bytes.NewReader(out))
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		c.logger.Info(line, zap.String("region", string(r)))
	}
	if err := sc.Err(); err != nil {
		c.logger.Warn("collector output truncated",
			zap.String("region", string(r)),
			zap.Error(err),
		)
	}
}
