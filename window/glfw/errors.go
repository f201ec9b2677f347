package glfw

import "errors"

// ErrInit is returned when GLFW cannot be initialized.
var ErrInit = errors.New("glfw: init failed")
