package translator

import (
	"errors"
	"strings"
	"testing"

	shader "github.com/richinsley/hellogl/shader"
)

func requireTranslator(t *testing.T) {
	t.Helper()
	if _, err := GetTranslator(); err != nil {
		t.Skipf("translator not available: %v", err)
	}
}

func TestTranslateQuadShaders(t *testing.T) {
	requireTranslator(t)

	tests := []struct {
		stage  shader.Stage
		source string
	}{
		{shader.StageVertex, shader.VertexSource},
		{shader.StageFragment, shader.FragmentSource},
	}
	for _, tt := range tests {
		t.Run(tt.stage.String(), func(t *testing.T) {
			code, err := Translate(tt.source, tt.stage)
			if err != nil {
				t.Fatalf("Translate: %v", err)
			}
			if !strings.Contains(code, "#version 330") {
				t.Errorf("translated code lacks a GLSL 330 version line:\n%s", code)
			}
		})
	}
}

func TestTranslateInvalidSourceNamesStage(t *testing.T) {
	requireTranslator(t)

	broken := "#version 300 es\nprecision mediump float;\nout vec4 color;\nvoid main() { color = undefinedThing; }\n"
	_, err := Translate(broken, shader.StageFragment)
	if err == nil {
		t.Fatal("expected an error for invalid source")
	}

	var ce *shader.CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("error %v is not a CompileError", err)
	}
	if ce.Stage != shader.StageFragment {
		t.Errorf("stage = %v, want fragment", ce.Stage)
	}
	if !strings.Contains(err.Error(), "fragment shader") {
		t.Errorf("message %q does not name the stage", err.Error())
	}
}
