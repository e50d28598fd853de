package engine

import "errors"

// Startup failures of the GL backend. None of them is retried.
var (
	ErrShaderCompile    = errors.New("shader compilation failed")
	ErrShaderLink       = errors.New("shader program linking failed")
	ErrIncompleteTarget = errors.New("framebuffer not complete")
	ErrGL               = errors.New("GL error")
)
