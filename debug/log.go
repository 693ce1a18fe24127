// Package debug writes category-tagged diagnostics to
// ~/.config/go-piano/debug.log. Logging is a no-op until Enable is
// called.
package debug

import (
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	mu     sync.Mutex
	logger *zap.SugaredLogger
)

// Enable starts debug logging, truncating any previous log file.
func Enable() error {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		return nil
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return err
	}
	dir := filepath.Join(home, ".config", "go-piano")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}
	f, err := os.OpenFile(filepath.Join(dir, "debug.log"), os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	cfg := zap.NewDevelopmentEncoderConfig()
	cfg.EncodeTime = zapcore.TimeEncoderOfLayout("15:04:05.000")
	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(cfg),
		zapcore.Lock(zapcore.AddSync(f)),
		zapcore.DebugLevel,
	)
	logger = zap.New(core).Sugar()
	logger.Debugw("debug logging started")
	return nil
}

// Disable flushes and stops debug logging.
func Disable() {
	mu.Lock()
	defer mu.Unlock()

	if logger != nil {
		logger.Sync()
		logger = nil
	}
}

// Log writes a message under a category. No-op unless Enable was called.
func Log(category, format string, args ...any) {
	mu.Lock()
	l := logger
	mu.Unlock()

	if l == nil {
		return
	}
	l.With("category", category).Debugf(format, args...)
}
