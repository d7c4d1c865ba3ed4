// Package recorder encodes rendered frames with ffmpeg.
package recorder

import (
	"errors"
	"fmt"
	"image"
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"
	"sync"

	options "github.com/richinsley/hellogl/options"
	"github.com/schollz/progressbar/v3"
	ffmpeg "github.com/u2takey/ffmpeg-go"
	"golang.org/x/term"
)

const numBuffers = 3

// Recorder pipes raw RGBA frames into an ffmpeg process. WriteFrame is the
// producer side, a goroutine feeding ffmpeg's stdin is the consumer.
type Recorder struct {
	width, height int
	frames        chan []byte
	done          chan error
	bar           *progressbar.ProgressBar

	mu  sync.Mutex
	err error // first ffmpeg or pipe failure, seen by WriteFrame
}

// BuildArgs returns the ffmpeg input and output arguments for a raw RGBA
// stream of the given size. The output codec follows the file extension.
func BuildArgs(opts *options.DemoOptions, width, height int) (inputArgs ffmpeg.KwArgs, outputArgs ffmpeg.KwArgs) {
	inputArgs = ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", width, height),
		"framerate": *opts.FPS,
	}

	outputArgs = ffmpeg.KwArgs{}
	switch strings.ToLower(filepath.Ext(*opts.OutputFile)) {
	case ".png", ".jpg", ".jpeg":
		outputArgs["frames:v"] = 1
		outputArgs["update"] = 1
	case ".gif":
		outputArgs["loop"] = 0
	case ".mp4", ".mkv", ".mov":
		outputArgs["c:v"] = "libx264"
		outputArgs["pix_fmt"] = "yuv420p"
	}
	return
}

// New starts ffmpeg writing to the configured output file.
func New(opts *options.DemoOptions, width, height int) (*Recorder, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("invalid frame size %dx%d", width, height)
	}

	pipeReader, pipeWriter := io.Pipe()
	inputArgs, outputArgs := BuildArgs(opts, width, height)

	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs).
		Output(*opts.OutputFile, outputArgs).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if *opts.FFMPEGPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(*opts.FFMPEGPath)
	}

	r := &Recorder{
		width:  width,
		height: height,
		frames: make(chan []byte, numBuffers),
		done:   make(chan error, 1),
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		r.bar = progressbar.NewOptions(*opts.Frames,
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionSetDescription("recording"),
			progressbar.OptionShowCount(),
		)
	}

	errc := make(chan error, 1)
	go func() {
		err := ffmpegCmd.Run()
		if err != nil {
			r.fail(fmt.Errorf("ffmpeg failed: %w", err))
		}
		// Unblock the consumer if ffmpeg exits before reading everything.
		pipeReader.CloseWithError(io.ErrClosedPipe)
		errc <- err
	}()
	go r.consume(pipeWriter, errc)

	return r, nil
}

func (r *Recorder) consume(w *io.PipeWriter, errc <-chan error) {
	var writeErr error
	for pixels := range r.frames {
		if writeErr != nil {
			continue
		}
		if _, err := w.Write(pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame to ffmpeg: %w", err)
			// A closed pipe after a successful ffmpeg run is not a failure.
			if !errors.Is(err, io.ErrClosedPipe) {
				r.fail(writeErr)
			}
		}
	}
	w.Close()

	if err := <-errc; err != nil {
		r.done <- fmt.Errorf("ffmpeg failed: %w", err)
		return
	}
	// ffmpeg may stop reading early and still succeed, e.g. a single image output.
	if errors.Is(writeErr, io.ErrClosedPipe) {
		writeErr = nil
	}
	r.done <- writeErr
}

func (r *Recorder) fail(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.err == nil {
		r.err = err
	}
}

// Err returns the first encoder failure, if any. It does not block.
func (r *Recorder) Err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.err
}

// WriteFrame queues one frame. Frames must match the size given to New. Once
// ffmpeg has failed every call returns that failure.
func (r *Recorder) WriteFrame(img *image.RGBA) error {
	if err := r.Err(); err != nil {
		return err
	}
	b := img.Bounds()
	if b.Dx() != r.width || b.Dy() != r.height {
		return fmt.Errorf("frame size %dx%d does not match recorder size %dx%d", b.Dx(), b.Dy(), r.width, r.height)
	}

	pixels := make([]byte, r.width*r.height*4)
	rowBytes := r.width * 4
	for y := 0; y < r.height; y++ {
		start := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(pixels[y*rowBytes:(y+1)*rowBytes], img.Pix[start:start+rowBytes])
	}

	r.frames <- pixels
	if r.bar != nil {
		r.bar.Add(1)
	}
	return nil
}

// Close flushes the remaining frames and waits for ffmpeg to exit.
func (r *Recorder) Close() error {
	close(r.frames)
	err := <-r.done
	if r.bar != nil {
		r.bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err == nil {
		log.Printf("Recording finished")
	}
	return err
}
