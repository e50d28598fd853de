package engine

import "outline/pkg/outline"

// Renderer is a display backend the scene loop drives
type Renderer interface {
	// Execute runs one frame plan into the current framebuffer
	outline.Executor

	// Resize follows a framebuffer size change
	Resize(width, height int) error

	// Close releases resources
	Close()
}
