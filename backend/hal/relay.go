//go:build !(js && wasm)

package hal

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/gogpu/gpuboot/backend"
)

// relay is installed as the HAL logger while an instance lives. It turns
// each record into a backend.Message for the subscriptions and forwards
// the record unchanged to the next handler.
//
// A MessengerInfo added twice, as the creation descriptor and again as
// the registered messenger, is delivered once and stays subscribed until
// both are removed.
type relay struct {
	mu    sync.RWMutex
	next  slog.Handler
	infos []*backend.MessengerInfo
	refs  map[*backend.MessengerInfo]int
}

func newRelay(next slog.Handler) *relay {
	return &relay{next: next, refs: make(map[*backend.MessengerInfo]int)}
}

func (r *relay) setNext(h slog.Handler) {
	r.mu.Lock()
	r.next = h
	r.mu.Unlock()
}

func (r *relay) add(info *backend.MessengerInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs[info] == 0 {
		r.infos = append(r.infos, info)
	}
	r.refs[info]++
}

func (r *relay) remove(info *backend.MessengerInfo) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.refs[info] == 0 {
		return
	}
	r.refs[info]--
	if r.refs[info] > 0 {
		return
	}
	delete(r.refs, info)
	if i := slices.Index(r.infos, info); i >= 0 {
		r.infos = slices.Delete(r.infos, i, i+1)
	}
}

func (r *relay) snapshot() (slog.Handler, []*backend.MessengerInfo) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.next, slices.Clone(r.infos)
}

// handler returns the slog.Handler view of the relay.
func (r *relay) handler() slog.Handler { return relayHandler{r: r} }

type relayHandler struct {
	r     *relay
	attrs []slog.Attr
	group string
}

func (h relayHandler) Enabled(ctx context.Context, level slog.Level) bool {
	next, infos := h.r.snapshot()
	for _, info := range infos {
		if info.Severities&severityOf(level) != 0 {
			return true
		}
	}
	return next != nil && next.Enabled(ctx, level)
}

func (h relayHandler) Handle(ctx context.Context, rec slog.Record) error {
	next, infos := h.r.snapshot()
	if len(infos) > 0 {
		msg := messageOf(rec, h.attrs)
		for _, info := range infos {
			// The HAL cannot abort the call that logged, so the
			// callback's answer is dropped.
			info.Deliver(msg)
		}
	}

	if next == nil || !next.Enabled(ctx, rec.Level) {
		return nil
	}
	if len(h.attrs) > 0 {
		next = next.WithAttrs(h.attrs)
	}
	if h.group != "" {
		next = next.WithGroup(h.group)
	}
	return next.Handle(ctx, rec)
}

func (h relayHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return relayHandler{r: h.r, attrs: append(slices.Clip(h.attrs), attrs...), group: h.group}
}

func (h relayHandler) WithGroup(name string) slog.Handler {
	return relayHandler{r: h.r, attrs: h.attrs, group: name}
}

// severityOf maps a log level onto a diagnostics severity.
func severityOf(level slog.Level) backend.Severity {
	switch {
	case level >= slog.LevelError:
		return backend.SeverityError
	case level >= slog.LevelWarn:
		return backend.SeverityWarning
	case level >= slog.LevelInfo:
		return backend.SeverityInfo
	default:
		return backend.SeverityVerbose
	}
}

// messageOf builds a Message from a HAL record. The HAL Vulkan debug
// messenger tags records with "type" and "id" attributes.
func messageOf(rec slog.Record, extra []slog.Attr) backend.Message {
	msg := backend.Message{
		Severity: severityOf(rec.Level),
		Type:     backend.MessageGeneral,
		Text:     rec.Message,
	}
	apply := func(a slog.Attr) bool {
		switch a.Key {
		case "type":
			switch a.Value.String() {
			case "Validation":
				msg.Type = backend.MessageValidation
			case "Performance":
				msg.Type = backend.MessagePerformance
			}
		case "id":
			msg.ID = a.Value.String()
		}
		return true
	}
	for _, a := range extra {
		apply(a)
	}
	rec.Attrs(apply)
	return msg
}
