// Package logging builds the zap logger shared by the CLI and the TUI.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// DebugLogPath is the fixed path for debug logs.
const DebugLogPath = "horario-debug.log"

// Options selects where logs go and how verbose they are.
type Options struct {
	Level string // debug, info, warn, error
	File  string // empty discards logs unless Debug is set
	Debug bool   // forces debug level and writes to DebugLogPath
}

// New builds a JSON logger writing to a file. Logs never go to the
// terminal, since stdout belongs to the TUI and the printed reports.
// The returned logger is a no-op when no destination is configured.
func New(opts Options) (*zap.Logger, error) {
	path := opts.File
	level := opts.Level
	if opts.Debug {
		path = DebugLogPath
		level = "debug"
	}
	if path == "" {
		return zap.NewNop(), nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("creating log directory: %w", err)
		}
	}

	zapCfg := zap.NewProductionConfig()
	zapCfg.Encoding = "json"
	zapCfg.OutputPaths = []string{path}
	zapCfg.ErrorOutputPaths = []string{path}
	zapCfg.DisableStacktrace = !opts.Debug
	zapCfg.Sampling = nil

	if level != "" {
		if err := zapCfg.Level.UnmarshalText([]byte(level)); err != nil {
			zapCfg.Level = zap.NewAtomicLevelAt(zapcore.InfoLevel)
		}
	}

	zapCfg.EncoderConfig.TimeKey = "timestamp"
	zapCfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := zapCfg.Build()
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger.With(zap.String("app", "horario")), nil
}
