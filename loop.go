package gpuboot

import (
	"context"

	"github.com/gogpu/gpuboot/window"
)

// LoopMode selects how the event loop waits for window messages.
type LoopMode uint8

const (
	// LoopBlocking sleeps until the next message. The loop only wakes on
	// input; there is no render clock.
	LoopBlocking LoopMode = iota

	// LoopPolling never sleeps: it drains the queue, runs the stages and
	// starts over.
	LoopPolling
)

// String returns the mode name.
func (m LoopMode) String() string {
	if m == LoopPolling {
		return "polling"
	}
	return "blocking"
}

// Stage is one step of a loop iteration.
type Stage func()

// EventLoop drives a window's message queue until the window is closed.
type EventLoop struct {
	Window window.Window
	Mode   LoopMode

	// Input and Render run once per iteration, in that order, after the
	// queued messages are dispatched. Both may be nil.
	Input  Stage
	Render Stage
}

// Run loops until a Close or Quit message arrives, returning nil, or until
// ctx is done, returning ctx.Err().
func (l *EventLoop) Run(ctx context.Context) error {
	stop := context.AfterFunc(ctx, l.Window.Wake)
	defer stop()

	Logger().Debug("gpuboot: event loop started", "mode", l.Mode)
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if l.Mode == LoopBlocking {
			if msg, ok := l.Window.WaitMessage(); ok && l.dispatch(msg) {
				return nil
			}
		}
		for {
			msg, ok := l.Window.PollMessage()
			if !ok {
				break
			}
			if l.dispatch(msg) {
				return nil
			}
		}

		if l.Input != nil {
			l.Input()
		}
		if l.Render != nil {
			l.Render()
		}
	}
}

// dispatch handles one message and reports whether the loop should end.
func (l *EventLoop) dispatch(msg window.Message) bool {
	switch msg.Kind {
	case window.Close, window.Quit:
		Logger().Debug("gpuboot: event loop ending", "message", msg.Kind)
		return true
	case window.KeyDown:
		Logger().Debug("gpuboot: key down", "key", msg.Key)
	case window.SizeChanged:
		Logger().Debug("gpuboot: window resized", "width", msg.Width, "height", msg.Height)
	}
	return false
}
