package win32

import "github.com/gogpu/gpuboot/window"

// Window messages handled by the window procedure.
const (
	wmDestroy = 0x0002
	wmSize    = 0x0005
	wmClose   = 0x0010
	wmQuit    = 0x0012
	wmKeyDown = 0x0100

	// wmWake is posted by Window.Wake to end a blocking wait.
	wmWake = 0x8000 + 1
)

// surfaceExtensions are the instance extensions a Win32 window presents
// through.
var surfaceExtensions = []string{"VK_KHR_surface", "VK_KHR_win32_surface"}

// translate converts a window procedure message. handled is false for
// messages that go to DefWindowProc.
func translate(msg uint32, wParam, lParam uintptr) (m window.Message, queued, handled bool) {
	switch msg {
	case wmClose:
		// The window stays alive until Destroy; the loop decides.
		return window.Message{Kind: window.Close}, true, true
	case wmKeyDown:
		return window.Message{Kind: window.KeyDown, Key: int(wParam)}, true, true
	case wmSize:
		return window.Message{
			Kind:   window.SizeChanged,
			Width:  int(lParam & 0xFFFF),
			Height: int(lParam >> 16 & 0xFFFF),
		}, true, true
	case wmWake:
		return window.Message{}, false, true
	default:
		return window.Message{}, false, false
	}
}
