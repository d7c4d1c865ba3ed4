package options

import (
	"errors"
	"flag"
	"fmt"
)

// DemoOptions holds the settings shared by the demo programs.
type DemoOptions struct {
	Width      *int
	Height     *int
	Title      *string
	Record     *bool // render into a hidden window and pipe frames to ffmpeg
	Frames     *int  // number of frames to render, 0 runs until the window closes
	FPS        *int
	OutputFile *string
	FFMPEGPath *string
	Verify     *bool // check a rendered frame against the expected shape
	Config     *string
	Help       *bool
}

// Defaults are the per-program values used when neither a flag nor the config
// file sets an option.
type Defaults struct {
	Name       string
	Title      string
	Width      int
	Height     int
	OutputFile string
}

// Register defines the option flags on fs.
func Register(fs *flag.FlagSet, d Defaults) *DemoOptions {
	return &DemoOptions{
		Width:      fs.Int("width", d.Width, "Width of the window"),
		Height:     fs.Int("height", d.Height, "Height of the window"),
		Title:      fs.String("title", d.Title, "Window title"),
		Record:     fs.Bool("record", false, "Render offscreen and encode the frames with ffmpeg"),
		Frames:     fs.Int("frames", 0, "Number of frames to render (0 = until the window is closed)"),
		FPS:        fs.Int("fps", 60, "Frames per second for recording"),
		OutputFile: fs.String("output", d.OutputFile, "Output file name for recording"),
		FFMPEGPath: fs.String("ffmpeg", "", "Path to ffmpeg executable"),
		Verify:     fs.Bool("verify", false, "Check a rendered frame against the expected shape"),
		Config:     fs.String("config", "", "Path to a YAML config file"),
		Help:       fs.Bool("help", false, "Show help message"),
	}
}

// Parse parses args into a DemoOptions. Values from -config are applied for
// every flag that was not given explicitly. flag.ErrHelp is returned when help
// was requested.
func Parse(args []string, d Defaults) (*DemoOptions, error) {
	fs := flag.NewFlagSet(d.Name, flag.ContinueOnError)
	opts := Register(fs, d)
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "%s: %s\n", d.Name, d.Title)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	if *opts.Help {
		fs.Usage()
		return nil, flag.ErrHelp
	}
	if fs.NArg() > 0 {
		return nil, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}

	if *opts.Config != "" {
		fc, err := LoadFile(*opts.Config)
		if err != nil {
			return nil, err
		}
		set := make(map[string]bool)
		fs.Visit(func(f *flag.Flag) { set[f.Name] = true })
		fc.apply(opts, set)
	}

	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return opts, nil
}

// Validate reports the first inconsistent setting.
func (o *DemoOptions) Validate() error {
	if *o.Width <= 0 || *o.Height <= 0 {
		return fmt.Errorf("invalid window size %dx%d", *o.Width, *o.Height)
	}
	if *o.FPS <= 0 {
		return fmt.Errorf("invalid fps %d", *o.FPS)
	}
	if *o.Frames < 0 {
		return fmt.Errorf("invalid frame count %d", *o.Frames)
	}
	if *o.Record {
		if *o.Frames == 0 {
			return errors.New("record mode needs -frames")
		}
		if *o.OutputFile == "" {
			return errors.New("record mode needs -output")
		}
	}
	return nil
}
