//go:build cgo && !js && !android && !ios

package glfw

import (
	"fmt"

	glfw33 "github.com/go-gl/glfw/v3.3/glfw"
	"github.com/gogpu/gpuboot/window"
)

// System is the GLFW window system.
type System struct{}

var _ window.System = (*System)(nil)

// New initializes GLFW. It must be called on the main OS thread.
func New() (*System, error) {
	if err := glfw33.Init(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInit, err)
	}
	return &System{}, nil
}

// CreateWindow creates a window without a client API context.
func (s *System) CreateWindow(cfg window.Config) (window.Window, error) {
	glfw33.DefaultWindowHints()
	glfw33.WindowHint(glfw33.ClientAPI, glfw33.NoAPI)

	gw, err := glfw33.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		return nil, err
	}
	if cfg.X != window.UseDefault && cfg.Y != window.UseDefault {
		gw.SetPos(cfg.X, cfg.Y)
	}

	w := &Window{win: gw}
	gw.SetCloseCallback(func(*glfw33.Window) {
		w.queue.push(window.Message{Kind: window.Close})
	})
	gw.SetKeyCallback(func(_ *glfw33.Window, key glfw33.Key, _ int, action glfw33.Action, _ glfw33.ModifierKey) {
		if m, ok := keyMessage(int(key), action == glfw33.Press); ok {
			w.queue.push(m)
		}
	})
	gw.SetSizeCallback(func(_ *glfw33.Window, width, height int) {
		w.queue.push(sizeMessage(width, height))
	})
	return w, nil
}

// Terminate shuts GLFW down.
func (s *System) Terminate() {
	glfw33.Terminate()
}

// Window is a GLFW window.
type Window struct {
	win   *glfw33.Window
	queue queue
}

var _ window.Window = (*Window)(nil)

// PollMessage processes pending events and returns the next message.
func (w *Window) PollMessage() (window.Message, bool) {
	return w.queue.next(glfw33.PollEvents)
}

// WaitMessage sleeps until GLFW has events, then returns the next
// message.
func (w *Window) WaitMessage() (window.Message, bool) {
	return w.queue.next(glfw33.WaitEvents)
}

// Wake posts an empty event.
func (w *Window) Wake() {
	glfw33.PostEmptyEvent()
}

// Size returns the window size in screen coordinates.
func (w *Window) Size() (width, height int) {
	return w.win.GetSize()
}

// RequiredInstanceExtensions asks GLFW for the surface extensions.
func (w *Window) RequiredInstanceExtensions() []string {
	return w.win.GetRequiredInstanceExtensions()
}

// Destroy destroys the window.
func (w *Window) Destroy() {
	if w.win == nil {
		return
	}
	w.win.Destroy()
	w.win = nil
}
