package renderer

import (
	verify "github.com/richinsley/hellogl/verify"
)

// Scene owns the GPU resources of one demo and knows how to draw a frame.
type Scene interface {
	// Init builds GPU resources. The context must be current.
	Init() error
	// Draw clears the back buffer and renders one frame at the given framebuffer size.
	Draw(width, height int)
	// Destroy releases everything Init created.
	Destroy()
	// Expected describes what a correct frame looks like.
	Expected() verify.Expectation
}
