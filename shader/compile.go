package shader

import (
	"fmt"
	"log"
	"strings"

	"github.com/go-gl/gl/v3.3-core/gl"
)

// GLEnum returns the shader type constant for glCreateShader.
func (s Stage) GLEnum() uint32 {
	if s == StageVertex {
		return gl.VERTEX_SHADER
	}
	return gl.FRAGMENT_SHADER
}

// NewProgram compiles both stages and links them. Nothing is left allocated
// on failure.
func NewProgram(vertexShaderSource, fragmentShaderSource string) (uint32, error) {
	vertexShader, err := CompileShader(vertexShaderSource, StageVertex)
	if err != nil {
		return 0, err
	}
	fragmentShader, err := CompileShader(fragmentShaderSource, StageFragment)
	if err != nil {
		gl.DeleteShader(vertexShader)
		return 0, err
	}

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	// The program keeps the compiled code after linking.
	gl.DeleteShader(vertexShader)
	gl.DeleteShader(fragmentShader)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		logText := programInfoLog(program)
		gl.DeleteProgram(program)
		return 0, &LinkError{Log: logText}
	}

	return program, nil
}

// ValidateProgram checks the program against the current GL state.
func ValidateProgram(program uint32) error {
	gl.ValidateProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.VALIDATE_STATUS, &status)
	if status == gl.FALSE {
		return fmt.Errorf("program %d failed validation: %s", program, programInfoLog(program))
	}
	return nil
}

// CompileShader compiles source for the given stage. On failure the driver's
// diagnostic is logged, the shader object deleted and a *CompileError returned.
func CompileShader(source string, stage Stage) (uint32, error) {
	shader := gl.CreateShader(stage.GLEnum())
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))

		err := &CompileError{Stage: stage, Log: TrimLog(logText)}
		log.Printf("Failed to compile %s shader", stage)
		log.Println(err.Log)
		gl.DeleteShader(shader)
		return 0, err
	}
	return shader, nil
}

func programInfoLog(program uint32) string {
	var logLength int32
	gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
	logText := strings.Repeat("\x00", int(logLength+1))
	gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
	return TrimLog(logText)
}
