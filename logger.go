package gpuboot

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"

	"github.com/gogpu/gpuboot/backend"
)

// nopHandler is a slog.Handler that silently discards all log records.
// The Enabled method returns false so the caller skips message formatting
// entirely, making disabled logging effectively zero-cost.
type nopHandler struct{}

func (nopHandler) Enabled(context.Context, slog.Level) bool  { return false }
func (nopHandler) Handle(context.Context, slog.Record) error { return nil }
func (nopHandler) WithAttrs([]slog.Attr) slog.Handler        { return nopHandler{} }
func (nopHandler) WithGroup(string) slog.Handler             { return nopHandler{} }

// newNopLogger creates a logger that silently discards all output.
func newNopLogger() *slog.Logger { return slog.New(nopHandler{}) }

// loggerPtr stores the active logger. Accessed atomically so that
// SetLogger can be called concurrently with logging from any goroutine.
var loggerPtr atomic.Pointer[slog.Logger]

// activeBackend is the backend of the running session, if any.
var (
	activeMu      sync.RWMutex
	activeBackend backend.Backend
)

func init() {
	loggerPtr.Store(newNopLogger())
}

// SetLogger configures the logger for gpuboot and the backend of the
// running session. By default, gpuboot produces no log output.
//
// SetLogger is safe for concurrent use: it stores the new logger atomically.
// Pass nil to disable logging (restore default silent behavior).
//
// Log levels used by gpuboot:
//   - [slog.LevelDebug]: step tracing, resource release, window messages
//   - [slog.LevelInfo]: lifecycle events (instance created, device selected)
//   - [slog.LevelWarn]: dropped optional layers, diagnostics warnings
//   - [slog.LevelError]: diagnostics errors reported by the backend
//
// Example:
//
//	// Enable info-level logging to stderr:
//	gpuboot.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, nil)))
func SetLogger(l *slog.Logger) {
	if l == nil {
		l = newNopLogger()
	}
	loggerPtr.Store(l)

	activeMu.RLock()
	b := activeBackend
	activeMu.RUnlock()
	if b != nil {
		propagateLogger(b, l)
	}
}

// Logger returns the current logger used by gpuboot.
// Backend packages receive it through SetLogger propagation.
//
// Logger is safe for concurrent use.
func Logger() *slog.Logger {
	return loggerPtr.Load()
}

// loggerSetter is implemented by backends that accept a logger.
type loggerSetter interface {
	SetLogger(*slog.Logger)
}

// propagateLogger passes the logger to a backend if it implements
// the loggerSetter interface.
func propagateLogger(b backend.Backend, l *slog.Logger) {
	if ls, ok := b.(loggerSetter); ok {
		ls.SetLogger(l)
	}
}

// setActiveBackend records the session backend so that later SetLogger
// calls reach it. Pass nil when the session ends.
func setActiveBackend(b backend.Backend) {
	activeMu.Lock()
	activeBackend = b
	activeMu.Unlock()
	if b != nil {
		propagateLogger(b, Logger())
	}
}
