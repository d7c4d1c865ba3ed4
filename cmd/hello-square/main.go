package main

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"

	glfwcontext "github.com/richinsley/hellogl/glfwcontext"
	graphics "github.com/richinsley/hellogl/graphics"
	options "github.com/richinsley/hellogl/options"
	renderer "github.com/richinsley/hellogl/renderer"
)

const (
	exitOK         = 0
	exitFailure    = 1
	exitUsage      = 2
	exitInitFailed = -1
)

func init() {
	runtime.LockOSThread()
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	opts, err := options.Parse(args, options.Defaults{
		Name:       "hello-square",
		Title:      "Hello World",
		Width:      640,
		Height:     480,
		OutputFile: "hello-square.mp4",
	})
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		log.Printf("Invalid options: %v", err)
		return exitUsage
	}

	ctx, release, err := glfwcontext.Open(opts, graphics.ProfileCore)
	if err != nil {
		log.Printf("Error: %v", err)
		return exitInitFailed
	}
	defer release()

	version, err := renderer.InitBindings(graphics.ProfileCore)
	if err != nil {
		log.Printf("Error: %v", err)
		return exitInitFailed
	}
	fmt.Println("openGL version:", version)

	r, err := renderer.NewRenderer(ctx, graphics.ProfileCore, renderer.NewQuadScene(), opts)
	if err != nil {
		log.Printf("Failed to create renderer: %v", err)
		return exitInitFailed
	}
	defer r.Shutdown()

	if *opts.Record {
		err = r.RunOffscreen()
	} else {
		err = r.Run()
	}
	if err != nil {
		log.Printf("Rendering failed: %v", err)
		return exitFailure
	}
	return exitOK
}
