package gpuboot

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gogpu/gpuboot/backend"
)

// Diagnostics turns backend diagnostics messages into operator log records.
// Messages below Warning are received and discarded.
type Diagnostics struct {
	logger *slog.Logger
}

// NewDiagnostics returns a Diagnostics logging to l, or to Logger() at the
// time of each message when l is nil.
func NewDiagnostics(l *slog.Logger) *Diagnostics {
	return &Diagnostics{logger: l}
}

func (d *Diagnostics) log() *slog.Logger {
	if d.logger != nil {
		return d.logger
	}
	return Logger()
}

// Callback handles one message. It never asks the backend to abort the
// call that produced the message.
func (d *Diagnostics) Callback(msg backend.Message) bool {
	if !msg.Severity.AtLeast(backend.SeverityWarning) {
		return false
	}

	level := slog.LevelWarn
	if msg.Severity.AtLeast(backend.SeverityError) {
		level = slog.LevelError
	}

	attrs := []slog.Attr{
		slog.String("type", msg.Type.String()),
	}
	if msg.ID != "" {
		attrs = append(attrs, slog.String("id", msg.ID), slog.Int("number", int(msg.Number)))
	}
	d.log().LogAttrs(context.Background(), level, "validation layer: "+msg.Text, attrs...)
	return false
}

// MessengerInfo returns the subscription used both for the descriptor
// chained at instance creation and for the registration afterwards.
func (d *Diagnostics) MessengerInfo() *backend.MessengerInfo {
	return &backend.MessengerInfo{
		Severities: backend.SeverityAll,
		Types:      backend.MessageAll,
		Callback:   d.Callback,
	}
}

// AttachDiagnostics registers info on inst. The entry point is resolved
// once; if the backend does not provide it the result is
// ErrUnsupportedFeature.
func AttachDiagnostics(inst backend.Instance, info *backend.MessengerInfo) (backend.Messenger, error) {
	entry, ok := inst.Diagnostics()
	if !ok || entry == nil {
		return nil, fmt.Errorf("%w: extension entry point not present: %s", ErrUnsupportedFeature, backend.DebugUtilsExtension)
	}

	m, err := entry.Register(info)
	if err != nil {
		return nil, fmt.Errorf("%w: set up diagnostics messenger: %w", ErrBackend, err)
	}
	if m == nil {
		return nil, fmt.Errorf("%w: set up diagnostics messenger: backend returned no messenger", ErrBackend)
	}

	Logger().Debug("gpuboot: diagnostics messenger registered",
		"severities", info.Severities,
		"types", info.Types,
	)
	return m, nil
}
