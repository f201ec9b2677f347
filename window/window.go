// Package window defines the window-system contract gpuboot drives.
//
// Implementations live in sub-packages: glfw (all desktop platforms) and
// win32 (Windows only). Every implementation is created from an explicit
// System value that carries the platform context.
package window

import "fmt"

// Kind discriminates window messages.
type Kind uint8

const (
	// None is the zero Kind; it is never delivered.
	None Kind = iota

	// Close is sent when the user asks to close the window.
	Close

	// KeyDown is sent when a key is pressed. Message.Key holds the
	// platform key code.
	KeyDown

	// SizeChanged is sent when the client area changes size.
	SizeChanged

	// Quit is sent when the window system is shutting down.
	Quit
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Close:
		return "Close"
	case KeyDown:
		return "KeyDown"
	case SizeChanged:
		return "SizeChanged"
	case Quit:
		return "Quit"
	default:
		return fmt.Sprintf("Kind(%d)", k)
	}
}

// Message is one window-system notification.
type Message struct {
	Kind   Kind
	Key    int
	Width  int
	Height int
}

// Ends reports whether the message terminates an event loop.
func (m Message) Ends() bool {
	return m.Kind == Close || m.Kind == Quit
}

// Config describes a window to create.
type Config struct {
	Title  string
	Width  int
	Height int

	// X and Y position the window; UseDefault lets the system choose.
	X, Y int

	// ClassName names the window class on systems that have one.
	ClassName string
}

// UseDefault asks the window system to choose a position.
const UseDefault = -1 << 31

// DefaultConfig returns the default window description.
func DefaultConfig() Config {
	return Config{
		Title:     "Vulkan Window",
		Width:     800,
		Height:    600,
		X:         UseDefault,
		Y:         UseDefault,
		ClassName: "VulkanWindowClass",
	}
}

// System creates windows.
type System interface {
	// CreateWindow creates and shows a window.
	CreateWindow(cfg Config) (Window, error)

	// Terminate releases the window system. Every window must be
	// destroyed first.
	Terminate()
}

// Window is a native window and its message queue.
type Window interface {
	// PollMessage returns the next queued message without blocking.
	// ok is false when the queue is empty.
	PollMessage() (msg Message, ok bool)

	// WaitMessage blocks until a message arrives or Wake is called.
	// ok is false when woken without a message.
	WaitMessage() (msg Message, ok bool)

	// Wake unblocks a pending WaitMessage. It is safe to call from any
	// goroutine.
	Wake()

	// Size returns the client area size.
	Size() (width, height int)

	// RequiredInstanceExtensions returns the instance extensions needed to
	// present to this window, or nil if the system cannot tell.
	RequiredInstanceExtensions() []string

	// Destroy destroys the window and releases its class registration.
	Destroy()
}
