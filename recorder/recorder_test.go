package recorder

import (
	"image"
	"os/exec"
	"path/filepath"
	"strings"
	"testing"
	"time"

	options "github.com/richinsley/hellogl/options"
)

func recordOptions(t *testing.T, output string, extra ...string) *options.DemoOptions {
	t.Helper()
	args := append([]string{"-record", "-frames", "3", "-output", output}, extra...)
	opts, err := options.Parse(args, options.Defaults{Name: "test", Title: "test", Width: 32, Height: 16})
	if err != nil {
		t.Fatalf("options.Parse: %v", err)
	}
	return opts
}

func TestBuildArgs(t *testing.T) {
	tests := []struct {
		output string
		key    string
		value  interface{}
	}{
		{"out.mp4", "c:v", "libx264"},
		{"OUT.MKV", "pix_fmt", "yuv420p"},
		{"frame.png", "frames:v", 1},
		{"loop.gif", "loop", 0},
	}
	for _, tt := range tests {
		t.Run(tt.output, func(t *testing.T) {
			in, out := BuildArgs(recordOptions(t, tt.output, "-fps", "25"), 32, 16)
			if in["f"] != "rawvideo" || in["pix_fmt"] != "rgba" {
				t.Errorf("input format = %v/%v", in["f"], in["pix_fmt"])
			}
			if in["s"] != "32x16" {
				t.Errorf("input size = %v, want 32x16", in["s"])
			}
			if in["framerate"] != 25 {
				t.Errorf("framerate = %v, want 25", in["framerate"])
			}
			if out[tt.key] != tt.value {
				t.Errorf("output %s = %v, want %v", tt.key, out[tt.key], tt.value)
			}
		})
	}

	_, out := BuildArgs(recordOptions(t, "raw.nut"), 32, 16)
	if len(out) != 0 {
		t.Errorf("unknown extension should leave codec choice to ffmpeg, got %v", out)
	}
}

func TestNewRejectsInvalidSize(t *testing.T) {
	if _, err := New(recordOptions(t, "out.mp4"), 0, 16); err == nil {
		t.Fatal("expected an error for a zero width")
	}
}

func TestRecordWithFFmpeg(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}

	output := filepath.Join(t.TempDir(), "frame.png")
	r, err := New(recordOptions(t, output), 32, 16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	for i := 0; i < 3; i++ {
		if err := r.WriteFrame(img); err != nil {
			t.Fatalf("WriteFrame: %v", err)
		}
	}
	if err := r.WriteFrame(image.NewRGBA(image.Rect(0, 0, 8, 8))); err == nil {
		t.Error("expected a size mismatch error")
	}
	if err := r.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if matches, _ := filepath.Glob(output); len(matches) != 1 {
		t.Errorf("output %s was not written", output)
	}
}

func TestWriteFrameStopsAfterFFmpegFailure(t *testing.T) {
	dir := t.TempDir()
	missing := filepath.Join(dir, "no-such-ffmpeg")
	r, err := New(recordOptions(t, filepath.Join(dir, "out.mp4"), "-ffmpeg", missing), 32, 16)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	img := image.NewRGBA(image.Rect(0, 0, 32, 16))
	deadline := time.Now().Add(5 * time.Second)
	var writeErr error
	for time.Now().Before(deadline) {
		if writeErr = r.WriteFrame(img); writeErr != nil {
			break
		}
		time.Sleep(10 * time.Millisecond)
	}
	if writeErr == nil {
		t.Fatal("WriteFrame kept accepting frames after ffmpeg failed to start")
	}
	if !strings.Contains(writeErr.Error(), "ffmpeg failed") {
		t.Errorf("WriteFrame error = %v, want the ffmpeg failure", writeErr)
	}
	if err := r.WriteFrame(img); err == nil {
		t.Error("a later WriteFrame succeeded after the failure")
	}
	if err := r.Close(); err == nil {
		t.Error("Close did not report the ffmpeg failure")
	}
}
