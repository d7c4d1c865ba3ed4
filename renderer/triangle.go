package renderer

import (
	gl21 "github.com/go-gl/gl/v2.1/gl"
	geometry "github.com/richinsley/hellogl/geometry"
	verify "github.com/richinsley/hellogl/verify"
)

// TriangleScene draws one triangle with immediate-mode calls. It owns no GPU
// objects.
type TriangleScene struct{}

func NewTriangleScene() *TriangleScene {
	return &TriangleScene{}
}

func (t *TriangleScene) Init() error { return nil }

func (t *TriangleScene) Draw(width, height int) {
	gl21.Viewport(0, 0, int32(width), int32(height))
	gl21.Clear(gl21.COLOR_BUFFER_BIT)

	gl21.Begin(gl21.TRIANGLES)
	for _, v := range geometry.TrianglePositions {
		gl21.Vertex2f(v.X, v.Y)
	}
	gl21.End()
}

func (t *TriangleScene) Destroy() {}

func (t *TriangleScene) Expected() verify.Expectation {
	return verify.Triangle()
}
