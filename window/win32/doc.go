// Package win32 implements window.System directly on user32.
//
// Windows are created on, and must be pumped from, the thread that calls
// System.CreateWindow. Window.Wake may be called from any goroutine.
package win32
