package glfwcontext

import (
	"fmt"
	"log"
	"runtime"
	"sync"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	graphics "github.com/richinsley/hellogl/graphics"
	options "github.com/richinsley/hellogl/options"
)

// Context owns the single OS window and its GL context.
type Context struct {
	window *glfw.Window
}

var _ graphics.Context = (*Context)(nil)

func applyHints(profile graphics.Profile, visible bool) {
	glfw.DefaultWindowHints()
	switch profile {
	case graphics.ProfileCore:
		glfw.WindowHint(glfw.ContextVersionMajor, 3)
		glfw.WindowHint(glfw.ContextVersionMinor, 3)
		glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
		glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	case graphics.ProfileLegacy:
		// glBegin/glEnd are gone from core profiles.
		glfw.WindowHint(glfw.ContextVersionMajor, 2)
		glfw.WindowHint(glfw.ContextVersionMinor, 1)
	}

	if visible {
		glfw.WindowHint(glfw.Resizable, glfw.True)
	} else {
		glfw.WindowHint(glfw.Visible, glfw.False)
	}
}

// New creates a window for the given profile. GLFW must already be initialized.
// Record mode creates the window hidden.
func New(opts *options.DemoOptions, profile graphics.Profile) (*Context, error) {
	applyHints(profile, !*opts.Record)

	win, err := glfw.CreateWindow(*opts.Width, *opts.Height, *opts.Title, nil, nil)
	if err != nil {
		return nil, err
	}

	return &Context{window: win}, nil
}

// Open initializes GLFW, creates the window and makes its context current.
// The returned release func destroys the window and terminates GLFW; it is
// safe to call more than once. On error nothing is left acquired.
func Open(opts *options.DemoOptions, profile graphics.Profile) (*Context, func(), error) {
	if err := InitGraphics(); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize glfw: %w", err)
	}

	c, err := New(opts, profile)
	if err != nil {
		TerminateGraphics()
		return nil, nil, fmt.Errorf("failed to create %s window: %w", profile, err)
	}
	c.MakeCurrent()

	var once sync.Once
	release := func() {
		once.Do(func() {
			c.Shutdown()
			TerminateGraphics()
		})
	}
	return c, release, nil
}

// MakeCurrent makes the context current for the calling goroutine.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
}

// Shutdown only destroys the window; GLFW itself is released by TerminateGraphics.
func (c *Context) Shutdown() {
	if c.window == nil {
		return
	}
	c.window.Destroy()
	c.window = nil
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

func (c *Context) Time() float64 {
	return glfw.GetTime()
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
