package shader

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/go-gl/gl/v3.3-core/gl"
)

func TestStageNames(t *testing.T) {
	tests := []struct {
		stage Stage
		name  string
		enum  uint32
	}{
		{StageVertex, "vertex", gl.VERTEX_SHADER},
		{StageFragment, "fragment", gl.FRAGMENT_SHADER},
	}
	for _, tt := range tests {
		if got := tt.stage.String(); got != tt.name {
			t.Errorf("String() = %q, want %q", got, tt.name)
		}
		if got := tt.stage.GLEnum(); got != tt.enum {
			t.Errorf("%s GLEnum() = %#x, want %#x", tt.name, got, tt.enum)
		}
	}
	if got := Stage(7).String(); got != "stage(7)" {
		t.Errorf("unknown stage = %q", got)
	}
}

func TestCompileErrorNamesStage(t *testing.T) {
	var err error = &CompileError{Stage: StageFragment, Log: "0:3: 'colour' : undeclared identifier"}
	wrapped := fmt.Errorf("failed to create program: %w", err)

	var ce *CompileError
	if !errors.As(wrapped, &ce) {
		t.Fatal("errors.As did not find the CompileError")
	}
	if ce.Stage != StageFragment {
		t.Errorf("stage = %v, want fragment", ce.Stage)
	}
	msg := wrapped.Error()
	if !strings.Contains(msg, "fragment shader") || !strings.Contains(msg, "undeclared identifier") {
		t.Errorf("message %q is missing the stage or the driver text", msg)
	}
}

func TestLinkError(t *testing.T) {
	err := &LinkError{Log: "no main"}
	if err.Error() != "failed to link program: no main" {
		t.Errorf("Error() = %q", err.Error())
	}
}

func TestTrimLog(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"error\n\x00\x00", "error"},
		{"a\x00garbage", "a"},
		{"  keep leading\r\n", "  keep leading"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := TrimLog(tt.in); got != tt.want {
			t.Errorf("TrimLog(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSourcesDeclareExpectedInterface(t *testing.T) {
	for name, src := range map[string]string{"es vertex": VertexSource, "gl vertex": VertexSourceGL} {
		if !strings.Contains(src, "layout(location = 0) in vec4 position;") {
			t.Errorf("%s source does not read position from location 0", name)
		}
	}
	for name, src := range map[string]string{"es fragment": FragmentSource, "gl fragment": FragmentSourceGL} {
		if !strings.Contains(src, "vec4(1.0, 0.0, 0.0, 1.0)") {
			t.Errorf("%s source does not output red", name)
		}
	}
}
