package renderer

import (
	"errors"
	"fmt"
	"image"
	"log"

	graphics "github.com/richinsley/hellogl/graphics"
	options "github.com/richinsley/hellogl/options"
	recorder "github.com/richinsley/hellogl/recorder"
	verify "github.com/richinsley/hellogl/verify"
)

// FrameSink consumes rendered frames in record mode.
type FrameSink interface {
	WriteFrame(img *image.RGBA) error
	Close() error
}

var newFrameSink = func(opts *options.DemoOptions, width, height int) (FrameSink, error) {
	return recorder.New(opts, width, height)
}

var initBindings = InitBindings

// FrameFunc runs after a frame is drawn and before it is presented.
type FrameFunc func(frame int) error

type Renderer struct {
	context    graphics.Context
	scene      Scene
	options    *options.DemoOptions
	readPixels PixelReader
}

// NewRenderer makes ctx current, loads the GL bindings for profile and builds
// the scene's resources. A scene that fails to initialize is destroyed.
func NewRenderer(ctx graphics.Context, profile graphics.Profile, scene Scene, opts *options.DemoOptions) (*Renderer, error) {
	ctx.MakeCurrent()
	if _, err := initBindings(profile); err != nil {
		return nil, err
	}

	if err := scene.Init(); err != nil {
		scene.Destroy()
		return nil, fmt.Errorf("failed to initialize scene: %w", err)
	}

	return &Renderer{
		context:    ctx,
		scene:      scene,
		options:    opts,
		readPixels: pixelReader(profile),
	}, nil
}

// Shutdown releases the scene. The context itself is released by its owner.
func (r *Renderer) Shutdown() {
	r.scene.Destroy()
}

// verifyFrame is the frame checked by -verify. The first frame after a
// window is shown is not always the steady-state one.
func verifyFrame(maxFrames int) int {
	if maxFrames == 1 {
		return 0
	}
	return 1
}

// Run draws until the window is closed, or until -frames frames are drawn.
func (r *Renderer) Run() error {
	maxFrames := *r.options.Frames
	at := verifyFrame(maxFrames)
	checked := false

	err := r.loop(maxFrames, func(frame int) error {
		if !*r.options.Verify || frame != at {
			return nil
		}
		checked = true
		width, height := r.context.GetFramebufferSize()
		return r.check(r.readPixels(width, height))
	})
	if err != nil {
		return err
	}
	if *r.options.Verify && !checked {
		return errors.New("window closed before a frame could be verified")
	}
	return nil
}

// RunOffscreen renders -frames frames and sends each one to the recorder.
func (r *Renderer) RunOffscreen() error {
	width, height := r.context.GetFramebufferSize()
	sink, err := newFrameSink(r.options, width, height)
	if err != nil {
		return fmt.Errorf("failed to start recorder: %w", err)
	}

	maxFrames := *r.options.Frames
	at := verifyFrame(maxFrames)
	log.Printf("Recording %d frames at %dx%d to %s", maxFrames, width, height, *r.options.OutputFile)

	runErr := r.loop(maxFrames, func(frame int) error {
		img := r.readPixels(width, height)
		if *r.options.Verify && frame == at {
			if err := r.check(img); err != nil {
				return err
			}
		}
		return sink.WriteFrame(img)
	})
	return errors.Join(runErr, sink.Close())
}

func (r *Renderer) loop(maxFrames int, onFrame FrameFunc) error {
	start := r.context.Time()
	frame := 0
	for !r.context.ShouldClose() {
		if maxFrames > 0 && frame >= maxFrames {
			break
		}

		width, height := r.context.GetFramebufferSize()
		r.scene.Draw(width, height)
		if onFrame != nil {
			if err := onFrame(frame); err != nil {
				return fmt.Errorf("frame %d: %w", frame, err)
			}
		}
		r.context.EndFrame()
		frame++
	}

	if elapsed := r.context.Time() - start; elapsed > 0 {
		log.Printf("Rendered %d frames in %.2fs (%.1f fps)", frame, elapsed, float64(frame)/elapsed)
	}
	return nil
}

func (r *Renderer) check(img *image.RGBA) error {
	exp := r.scene.Expected()
	report, err := verify.Check(img, exp, verify.DefaultTolerance)
	if err != nil {
		log.Printf("Verification of %s failed: %s", exp.Name, report)
		return err
	}
	log.Printf("Verified %s: %s", exp.Name, report)
	return nil
}
