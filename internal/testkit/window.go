package testkit

import (
	"sync"

	"github.com/gogpu/gpuboot/window"
)

// System is a scripted window.System.
type System struct {
	Journal   *Journal
	CreateErr error

	// Messages is the script handed to every created window.
	Messages []window.Message

	// Extensions is what created windows report as required.
	Extensions []string

	// Blocking makes created windows block in WaitMessage once their
	// script is exhausted.
	Blocking bool

	Windows    []*Window
	Terminated int
}

var _ window.System = (*System)(nil)

func (s *System) CreateWindow(cfg window.Config) (window.Window, error) {
	s.Journal.Record("window.create")
	if s.CreateErr != nil {
		return nil, s.CreateErr
	}
	w := &Window{
		Config:     cfg,
		journal:    s.Journal,
		queue:      append([]window.Message(nil), s.Messages...),
		extensions: s.Extensions,
	}
	if s.Blocking {
		w.Blocking()
	}
	s.Windows = append(s.Windows, w)
	return w, nil
}

func (s *System) Terminate() {
	s.Journal.Record("window.terminate")
	s.Terminated++
}

// Window is a scripted window.Window. When its script runs out,
// WaitMessage reports a wake-up without a message.
type Window struct {
	Config    window.Config
	Destroyed int

	journal    *Journal
	extensions []string

	mu     sync.Mutex
	queue  []window.Message
	wakes  int
	polls  int
	waits  int
	wakeCh chan struct{}
}

var _ window.Window = (*Window)(nil)

func (w *Window) pop() (window.Message, bool) {
	if len(w.queue) == 0 {
		return window.Message{}, false
	}
	msg := w.queue[0]
	w.queue = w.queue[1:]
	return msg, true
}

func (w *Window) PollMessage() (window.Message, bool) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.polls++
	return w.pop()
}

// WaitMessage returns the next scripted message. With an empty script it
// blocks until Wake when the window was made with Blocking, and returns
// immediately otherwise.
func (w *Window) WaitMessage() (window.Message, bool) {
	w.mu.Lock()
	w.waits++
	if msg, ok := w.pop(); ok {
		w.mu.Unlock()
		return msg, true
	}
	ch := w.wakeCh
	w.mu.Unlock()

	if ch != nil {
		<-ch
	}
	return window.Message{}, false
}

// Blocking makes WaitMessage block on an empty script until Wake.
func (w *Window) Blocking() *Window {
	w.mu.Lock()
	w.wakeCh = make(chan struct{}, 1)
	w.mu.Unlock()
	return w
}

func (w *Window) Wake() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.wakes++
	if w.wakeCh != nil {
		select {
		case w.wakeCh <- struct{}{}:
		default:
		}
	}
}

// Push appends messages to the script.
func (w *Window) Push(msgs ...window.Message) {
	w.mu.Lock()
	w.queue = append(w.queue, msgs...)
	w.mu.Unlock()
}

// Waits returns how many times WaitMessage was called.
func (w *Window) Waits() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.waits
}

// Wakes returns how many times Wake was called.
func (w *Window) Wakes() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.wakes
}

// Polls returns how many times PollMessage was called.
func (w *Window) Polls() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.polls
}

func (w *Window) Size() (int, int) { return w.Config.Width, w.Config.Height }

func (w *Window) RequiredInstanceExtensions() []string { return w.extensions }

func (w *Window) Destroy() {
	w.journal.Record("window.destroy")
	w.Destroyed++
}
