package renderer

import (
	"errors"
	"fmt"
	"log"

	"github.com/go-gl/gl/v3.3-core/gl"
	geometry "github.com/richinsley/hellogl/geometry"
	shader "github.com/richinsley/hellogl/shader"
	xlate "github.com/richinsley/hellogl/translator"
	verify "github.com/richinsley/hellogl/verify"
)

// QuadScene draws a red square from a vertex buffer, an index buffer and a
// shader program.
type QuadScene struct {
	vao           uint32
	vbo           uint32
	ibo           uint32
	shaderProgram uint32
}

func NewQuadScene() *QuadScene {
	return &QuadScene{}
}

// quadSources returns the desktop GLSL for the quad. Invalid shader text is an
// error; a translator that cannot start falls back to the hand-written sources.
func quadSources() (string, string, error) {
	vs, err := xlate.Translate(shader.VertexSource, shader.StageVertex)
	if errors.Is(err, xlate.ErrUnavailable) {
		log.Printf("Warning: %v, using built-in GLSL 330 sources", err)
		return shader.VertexSourceGL, shader.FragmentSourceGL, nil
	}
	if err != nil {
		return "", "", err
	}
	fs, err := xlate.Translate(shader.FragmentSource, shader.StageFragment)
	if err != nil {
		return "", "", err
	}
	return vs, fs, nil
}

func (q *QuadScene) Init() error {
	gl.GenVertexArrays(1, &q.vao)
	gl.BindVertexArray(q.vao)

	gl.GenBuffers(1, &q.vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, q.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(geometry.QuadPositions)*4, gl.Ptr(geometry.QuadPositions), gl.STATIC_DRAW)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, gl.PtrOffset(0))

	// The element buffer binding is part of the VAO state.
	gl.GenBuffers(1, &q.ibo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, q.ibo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(geometry.QuadIndices)*4, gl.Ptr(geometry.QuadIndices), gl.STATIC_DRAW)

	vs, fs, err := quadSources()
	if err != nil {
		return fmt.Errorf("failed to prepare quad shaders: %w", err)
	}
	q.shaderProgram, err = shader.NewProgram(vs, fs)
	if err != nil {
		return fmt.Errorf("failed to create shader program: %w", err)
	}
	if err := shader.ValidateProgram(q.shaderProgram); err != nil {
		log.Printf("Warning: %v", err)
	}
	gl.UseProgram(q.shaderProgram)
	return nil
}

func (q *QuadScene) Draw(width, height int) {
	gl.Viewport(0, 0, int32(width), int32(height))
	gl.Clear(gl.COLOR_BUFFER_BIT)
	gl.BindVertexArray(q.vao)
	gl.DrawElements(gl.TRIANGLES, int32(len(geometry.QuadIndices)), gl.UNSIGNED_INT, gl.PtrOffset(0))
}

func (q *QuadScene) Destroy() {
	if q.shaderProgram != 0 {
		gl.DeleteProgram(q.shaderProgram)
		q.shaderProgram = 0
	}
	if q.ibo != 0 {
		gl.DeleteBuffers(1, &q.ibo)
		q.ibo = 0
	}
	if q.vbo != 0 {
		gl.DeleteBuffers(1, &q.vbo)
		q.vbo = 0
	}
	if q.vao != 0 {
		gl.DeleteVertexArrays(1, &q.vao)
		q.vao = 0
	}
}

func (q *QuadScene) Expected() verify.Expectation {
	return verify.Square()
}
