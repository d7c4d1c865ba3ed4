package options

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// FileConfig mirrors the flags that may be set from a YAML file. Pointer fields
// distinguish unset keys from zero values.
type FileConfig struct {
	Width      *int    `yaml:"width"`
	Height     *int    `yaml:"height"`
	Title      *string `yaml:"title"`
	FPS        *int    `yaml:"fps"`
	Frames     *int    `yaml:"frames"`
	OutputFile *string `yaml:"output"`
	FFMPEGPath *string `yaml:"ffmpeg"`
	Verify     *bool   `yaml:"verify"`
}

// LoadFile reads and parses a YAML config file. Unknown keys are an error,
// an empty file is not.
func LoadFile(path string) (*FileConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open config: %w", err)
	}
	defer f.Close()

	var fc FileConfig
	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	if err := dec.Decode(&fc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return &fc, nil
}

func (fc *FileConfig) apply(o *DemoOptions, set map[string]bool) {
	setInt := func(name string, dst *int, src *int) {
		if src != nil && !set[name] {
			*dst = *src
		}
	}
	setString := func(name string, dst *string, src *string) {
		if src != nil && !set[name] {
			*dst = *src
		}
	}

	setInt("width", o.Width, fc.Width)
	setInt("height", o.Height, fc.Height)
	setInt("fps", o.FPS, fc.FPS)
	setInt("frames", o.Frames, fc.Frames)
	setString("title", o.Title, fc.Title)
	setString("output", o.OutputFile, fc.OutputFile)
	setString("ffmpeg", o.FFMPEGPath, fc.FFMPEGPath)
	if fc.Verify != nil && !set["verify"] {
		*o.Verify = *fc.Verify
	}
}
