// Package logging builds the zap loggers used by the batch runner, including
// the durable append-only run log.
package logging

import (
	"fmt"
	"io"
	"os"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New builds a logger that mirrors every line to stdout and appends it to the
// run log file at path. Each process run appends to the file; nothing ever
// truncates it. An empty path keeps the stdout core only. The returned close
// function releases the file handle after the final Sync.
func New(path string, development bool) (*zap.Logger, func(), error) {
	encCfg := zap.NewProductionEncoderConfig()
	if development {
		encCfg = zap.NewDevelopmentEncoderConfig()
	}
	encCfg.TimeKey = "ts"
	encCfg.EncodeTime = zapcore.ISO8601TimeEncoder
	encCfg.EncodeLevel = zapcore.CapitalLevelEncoder
	enc := zapcore.NewConsoleEncoder(encCfg)

	cores := []zapcore.Core{
		zapcore.NewCore(enc, zapcore.Lock(os.Stdout), zapcore.InfoLevel),
	}
	closeFile := func() {}
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open run log: %w", err)
		}
		sink := NewResilientSyncer(zapcore.Lock(zapcore.AddSync(f)))
		cores = append(cores, zapcore.NewCore(enc, sink, zapcore.InfoLevel))
		closeFile = func() { _ = f.Close() }
	}

	return zap.New(zapcore.NewTee(cores...)), closeFile, nil
}

// ResilientSyncer keeps the batch alive when the run log becomes unwritable.
// The first write error is reported once on the error sink (stderr by
// default); subsequent errors are dropped so a full disk cannot kill a run or
// flood the console.
type ResilientSyncer struct {
	ws   zapcore.WriteSyncer
	errw io.Writer
	once sync.Once
}

// NewResilientSyncer wraps ws with the surface-once error policy.
func NewResilientSyncer(ws zapcore.WriteSyncer) *ResilientSyncer {
	return &ResilientSyncer{ws: ws, errw: os.Stderr}
}

// Write forwards to the underlying syncer and always reports success to zap.
func (s *ResilientSyncer) Write(p []byte) (int, error) {
	if _, err := s.ws.Write(p); err != nil {
		s.once.Do(func() {
			fmt.Fprintf(s.errw, "run log unavailable: %v\n", err)
		})
	}
	return len(p), nil
}

// Sync flushes the underlying syncer, swallowing its error under the same
// policy as Write.
func (s *ResilientSyncer) Sync() error {
	_ = s.ws.Sync()
	return nil
}
