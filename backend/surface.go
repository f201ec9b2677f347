package backend

// PlatformSurfaceExtensions returns the instance extensions needed to
// present to a native window on the given GOOS. Window systems that can
// report their own requirements take precedence over this table.
func PlatformSurfaceExtensions(goos string) []string {
	switch goos {
	case "windows":
		return []string{SurfaceExtension, "VK_KHR_win32_surface"}
	case "darwin", "ios":
		return []string{SurfaceExtension, "VK_EXT_metal_surface"}
	case "android":
		return []string{SurfaceExtension, "VK_KHR_android_surface"}
	case "linux", "freebsd", "netbsd", "openbsd", "dragonfly":
		return []string{SurfaceExtension, "VK_KHR_xlib_surface"}
	default:
		return []string{SurfaceExtension}
	}
}

// WindowSystemExtensions returns every surface extension a window system
// may request on goos. Backends that create surfaces themselves accept
// all of them.
func WindowSystemExtensions(goos string) []string {
	exts := PlatformSurfaceExtensions(goos)
	switch goos {
	case "linux", "freebsd", "netbsd", "openbsd", "dragonfly":
		exts = append(exts, "VK_KHR_xcb_surface", "VK_KHR_wayland_surface")
	}
	return exts
}
