// Package logging includes tests for the run log construction helpers.
package logging

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestNewAppendsSeverityTaggedLines(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.log")
	logger, closeLog, err := New(path, false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	logger.Info("processing region 1/4: bretagne")
	logger.Warn("slow collector response")
	logger.Error("region collection failed")
	_ = logger.Sync()
	closeLog()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	content := string(data)
	for _, want := range []string{
		"INFO", "processing region 1/4: bretagne",
		"WARN", "slow collector response",
		"ERROR", "region collection failed",
	} {
		if !strings.Contains(content, want) {
			t.Errorf("run log missing %q:\n%s", want, content)
		}
	}
}

func TestNewAppendsAcrossRuns(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "run.log")

	first, closeFirst, err := New(path, false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	first.Info("first run line")
	_ = first.Sync()
	closeFirst()

	second, closeSecond, err := New(path, false)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	second.Info("second run line")
	_ = second.Sync()
	closeSecond()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read run log: %v", err)
	}
	// A new run appends; it must never truncate earlier runs.
	if !strings.Contains(string(data), "first run line") {
		t.Error("earlier run was truncated")
	}
	if !strings.Contains(string(data), "second run line") {
		t.Error("second run missing")
	}
}

func TestNewWithoutFileKeepsStdoutOnly(t *testing.T) {
	t.Parallel()

	logger, closeLog, err := New("", true)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	logger.Info("stdout only")
	closeLog()
}

// failingSyncer always errors, standing in for a full or revoked log file.
type failingSyncer struct {
	writes int
}

func (f *failingSyncer) Write(p []byte) (int, error) {
	f.writes++
	return 0, errors.New("disk full")
}

func (f *failingSyncer) Sync() error {
	return errors.New("disk full")
}

func TestResilientSyncerSwallowsWriteErrors(t *testing.T) {
	t.Parallel()

	under := &failingSyncer{}
	var ws zapcore.WriteSyncer = under
	s := NewResilientSyncer(ws)

	for i := 0; i < 3; i++ {
		n, err := s.Write([]byte("line\n"))
		if err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}
		if n != 5 {
			t.Fatalf("Write() n = %d, want 5", n)
		}
	}
	if under.writes != 3 {
		t.Fatalf("underlying writes = %d, want 3", under.writes)
	}
	if err := s.Sync(); err != nil {
		t.Fatalf("Sync() error = %v, want nil", err)
	}
}

func TestResilientSyncerReportsFirstErrorOnce(t *testing.T) {
	t.Parallel()

	s := NewResilientSyncer(&failingSyncer{})
	var reports strings.Builder
	s.errw = &reports

	for i := 0; i < 5; i++ {
		if _, err := s.Write([]byte("line\n")); err != nil {
			t.Fatalf("Write() error = %v, want nil", err)
		}
	}

	got := reports.String()
	if want := "run log unavailable: disk full\n"; got != want {
		t.Fatalf("error reports = %q, want exactly one: %q", got, want)
	}
}
