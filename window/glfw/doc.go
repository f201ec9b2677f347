// Package glfw implements window.System on GLFW 3.3.
//
// GLFW must be driven from the main OS thread. Callers lock it with
// runtime.LockOSThread in an init function and call every method except
// Window.Wake from that thread.
package glfw
