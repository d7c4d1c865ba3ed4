package translator

import (
	"context"
	"errors"
	"fmt"
	"sync"

	shader "github.com/richinsley/hellogl/shader"
	gst "github.com/richinsley/goshadertranslator"
)

// ErrUnavailable is returned when the translator runtime could not be started.
var ErrUnavailable = errors.New("shader translator unavailable")

var (
	translator *gst.ShaderTranslator
	initErr    error
	initOnce   sync.Once
)

// GetTranslator returns the process-wide translator, starting it on first use.
func GetTranslator() (*gst.ShaderTranslator, error) {
	initOnce.Do(func() {
		translator, initErr = gst.NewShaderTranslator(context.Background())
	})
	if initErr != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, initErr)
	}
	return translator, nil
}

// Translate validates GLSL ES 3.00 source and returns the GLSL 330 equivalent.
// Invalid source is reported as a *shader.CompileError for the stage.
func Translate(source string, stage shader.Stage) (string, error) {
	t, err := GetTranslator()
	if err != nil {
		return "", err
	}

	out, err := t.TranslateShader(source, stage.String(), gst.ShaderSpecWebGL2, gst.OutputFormatGLSL330)
	if err != nil {
		return "", &shader.CompileError{Stage: stage, Log: shader.TrimLog(err.Error())}
	}
	return out.Code, nil
}
