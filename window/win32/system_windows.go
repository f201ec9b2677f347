//go:build windows

package win32

import (
	"errors"
	"fmt"
	"sync"
	"unsafe"

	"golang.org/x/sys/windows"

	"github.com/gogpu/gpuboot/window"
)

// ErrClassName is returned for an empty window class name.
var ErrClassName = errors.New("win32: empty class name")

var (
	user32   = windows.NewLazySystemDLL("user32.dll")
	kernel32 = windows.NewLazySystemDLL("kernel32.dll")

	procRegisterClassExW = user32.NewProc("RegisterClassExW")
	procUnregisterClassW = user32.NewProc("UnregisterClassW")
	procCreateWindowExW  = user32.NewProc("CreateWindowExW")
	procDestroyWindow    = user32.NewProc("DestroyWindow")
	procShowWindow       = user32.NewProc("ShowWindow")
	procDefWindowProcW   = user32.NewProc("DefWindowProcW")
	procPeekMessageW     = user32.NewProc("PeekMessageW")
	procGetMessageW      = user32.NewProc("GetMessageW")
	procTranslateMessage = user32.NewProc("TranslateMessage")
	procDispatchMessageW = user32.NewProc("DispatchMessageW")
	procPostMessageW     = user32.NewProc("PostMessageW")
	procGetClientRect    = user32.NewProc("GetClientRect")
	procLoadCursorW      = user32.NewProc("LoadCursorW")
	procGetModuleHandleW = kernel32.NewProc("GetModuleHandleW")
)

const (
	csVRedraw          = 0x0001
	csHRedraw          = 0x0002
	wsOverlappedWindow = 0x00CF0000
	swShow             = 5
	pmRemove           = 0x0001
	idcArrow           = 32512
)

type wndClassEx struct {
	size       uint32
	style      uint32
	wndProc    uintptr
	clsExtra   int32
	wndExtra   int32
	instance   windows.Handle
	icon       windows.Handle
	cursor     windows.Handle
	background windows.Handle
	menuName   *uint16
	className  *uint16
	iconSm     windows.Handle
}

type point struct {
	x, y int32
}

type msg struct {
	hwnd    windows.HWND
	message uint32
	wParam  uintptr
	lParam  uintptr
	time    uint32
	pt      point
	private uint32
}

// The window procedure is a single callback; windows.NewCallback slots
// are never freed. Messages are routed to the Window owning the hwnd.
var (
	wndProcOnce sync.Once
	wndProcPtr  uintptr

	routesMu sync.Mutex
	routes   = map[windows.HWND]*Window{}
	creating *Window
)

func wndProc() uintptr {
	wndProcOnce.Do(func() {
		wndProcPtr = windows.NewCallback(dispatch)
	})
	return wndProcPtr
}

func dispatch(hwnd windows.HWND, message uint32, wParam, lParam uintptr) uintptr {
	routesMu.Lock()
	w := routes[hwnd]
	if w == nil && creating != nil {
		// Messages sent from inside CreateWindowExW.
		w = creating
		w.hwnd = hwnd
		routes[hwnd] = w
	}
	routesMu.Unlock()

	if w != nil {
		if m, queued, handled := translate(message, wParam, lParam); handled {
			if queued {
				w.queue = append(w.queue, m)
			}
			return 0
		}
	}
	r, _, _ := procDefWindowProcW.Call(uintptr(hwnd), uintptr(message), wParam, lParam)
	return r
}

// System is the Win32 window system.
type System struct {
	instance windows.Handle
}

var _ window.System = (*System)(nil)

// New returns the window system of the current module.
func New() (*System, error) {
	h, _, err := procGetModuleHandleW.Call(0)
	if h == 0 {
		return nil, fmt.Errorf("win32: GetModuleHandleW: %w", err)
	}
	return &System{instance: windows.Handle(h)}, nil
}

// CreateWindow registers cfg.ClassName and creates a visible overlapped
// window of that class.
func (s *System) CreateWindow(cfg window.Config) (window.Window, error) {
	if cfg.ClassName == "" {
		return nil, ErrClassName
	}
	className, err := windows.UTF16PtrFromString(cfg.ClassName)
	if err != nil {
		return nil, err
	}
	title, err := windows.UTF16PtrFromString(cfg.Title)
	if err != nil {
		return nil, err
	}

	cursor, _, _ := procLoadCursorW.Call(0, idcArrow)
	wc := wndClassEx{
		style:     csHRedraw | csVRedraw,
		wndProc:   wndProc(),
		instance:  s.instance,
		cursor:    windows.Handle(cursor),
		className: className,
	}
	wc.size = uint32(unsafe.Sizeof(wc))
	if atom, _, err := procRegisterClassExW.Call(uintptr(unsafe.Pointer(&wc))); atom == 0 {
		return nil, fmt.Errorf("win32: RegisterClassExW: %w", err)
	}

	w := &Window{system: s, className: className}
	routesMu.Lock()
	creating = w
	routesMu.Unlock()

	hwnd, _, err := procCreateWindowExW.Call(
		0,
		uintptr(unsafe.Pointer(className)),
		uintptr(unsafe.Pointer(title)),
		wsOverlappedWindow,
		uintptr(int32(cfg.X)), uintptr(int32(cfg.Y)),
		uintptr(int32(cfg.Width)), uintptr(int32(cfg.Height)),
		0, 0, uintptr(s.instance), 0,
	)

	routesMu.Lock()
	creating = nil
	routesMu.Unlock()

	if hwnd == 0 {
		s.unregister(className)
		return nil, fmt.Errorf("win32: CreateWindowExW: %w", err)
	}
	w.hwnd = windows.HWND(hwnd)
	routesMu.Lock()
	routes[w.hwnd] = w
	routesMu.Unlock()

	procShowWindow.Call(hwnd, swShow)
	return w, nil
}

func (s *System) unregister(className *uint16) {
	procUnregisterClassW.Call(uintptr(unsafe.Pointer(className)), uintptr(s.instance))
}

// Terminate is a no-op; user32 needs no shutdown.
func (s *System) Terminate() {}

// Window is a Win32 window and the messages its procedure queued.
type Window struct {
	system    *System
	hwnd      windows.HWND
	className *uint16
	queue     []window.Message
}

var _ window.Window = (*Window)(nil)

func (w *Window) pop() (window.Message, bool) {
	if len(w.queue) == 0 {
		return window.Message{}, false
	}
	m := w.queue[0]
	w.queue = w.queue[1:]
	return m, true
}

// pump dispatches every message already in the thread queue. It reports
// false once WM_QUIT was seen.
func (w *Window) pump() bool {
	var m msg
	for {
		r, _, _ := procPeekMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0, pmRemove)
		if r == 0 {
			return true
		}
		if m.message == wmQuit {
			w.queue = append(w.queue, window.Message{Kind: window.Quit})
			return false
		}
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
	}
}

// PollMessage drains the thread queue and returns the next message.
func (w *Window) PollMessage() (window.Message, bool) {
	if m, ok := w.pop(); ok {
		return m, true
	}
	w.pump()
	return w.pop()
}

// WaitMessage blocks in GetMessageW until the thread receives a message.
func (w *Window) WaitMessage() (window.Message, bool) {
	if m, ok := w.pop(); ok {
		return m, true
	}

	var m msg
	switch r, _, _ := procGetMessageW.Call(uintptr(unsafe.Pointer(&m)), 0, 0, 0); int32(r) {
	case 0:
		w.queue = append(w.queue, window.Message{Kind: window.Quit})
	case -1:
		return window.Message{}, false
	default:
		procTranslateMessage.Call(uintptr(unsafe.Pointer(&m)))
		procDispatchMessageW.Call(uintptr(unsafe.Pointer(&m)))
		w.pump()
	}
	return w.pop()
}

// Wake posts a wake message to the window.
func (w *Window) Wake() {
	procPostMessageW.Call(uintptr(w.hwnd), wmWake, 0, 0)
}

// Size returns the client area size.
func (w *Window) Size() (width, height int) {
	var r windows.Rect
	if ok, _, _ := procGetClientRect.Call(uintptr(w.hwnd), uintptr(unsafe.Pointer(&r))); ok == 0 {
		return 0, 0
	}
	return int(r.Right - r.Left), int(r.Bottom - r.Top)
}

// RequiredInstanceExtensions returns the Win32 surface extensions.
func (w *Window) RequiredInstanceExtensions() []string {
	return append([]string(nil), surfaceExtensions...)
}

// Destroy destroys the window and unregisters its class.
func (w *Window) Destroy() {
	if w.hwnd == 0 {
		return
	}
	procDestroyWindow.Call(uintptr(w.hwnd))
	routesMu.Lock()
	delete(routes, w.hwnd)
	routesMu.Unlock()
	w.hwnd = 0
	w.system.unregister(w.className)
}

