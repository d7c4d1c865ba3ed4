package renderer

import (
	"fmt"
	"image"
	"sync"

	gl21 "github.com/go-gl/gl/v2.1/gl"
	"github.com/go-gl/gl/v3.3-core/gl"
	graphics "github.com/richinsley/hellogl/graphics"
)

// Each binding package keeps its own function pointer table.
var (
	coreInitOnce   sync.Once
	coreInitErr    error
	legacyInitOnce sync.Once
	legacyInitErr  error
)

// InitBindings loads the OpenGL functions for profile and returns the
// driver's GL_VERSION string. The profile's context must be current.
func InitBindings(profile graphics.Profile) (string, error) {
	switch profile {
	case graphics.ProfileCore:
		coreInitOnce.Do(func() {
			coreInitErr = gl.Init()
		})
		if coreInitErr != nil {
			return "", fmt.Errorf("failed to initialize OpenGL: %w", coreInitErr)
		}
		return gl.GoStr(gl.GetString(gl.VERSION)), nil
	case graphics.ProfileLegacy:
		legacyInitOnce.Do(func() {
			legacyInitErr = gl21.Init()
		})
		if legacyInitErr != nil {
			return "", fmt.Errorf("failed to initialize OpenGL: %w", legacyInitErr)
		}
		return gl21.GoStr(gl21.GetString(gl21.VERSION)), nil
	default:
		return "", fmt.Errorf("unknown profile %v", profile)
	}
}

// PixelReader reads the back buffer into an image with rows top-down. A
// minimized window reports a 0x0 framebuffer; the reader then returns an
// empty image without touching GL.
type PixelReader func(width, height int) *image.RGBA

func pixelReader(profile graphics.Profile) PixelReader {
	if profile == graphics.ProfileLegacy {
		return readPixelsLegacy
	}
	return readPixelsCore
}

func readPixelsCore(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if len(img.Pix) == 0 {
		return img
	}
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.BACK)
	gl.ReadPixels(0, 0, int32(width), int32(height), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(&img.Pix[0]))
	flipRows(img.Pix, img.Stride, height)
	return img
}

func readPixelsLegacy(width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	if len(img.Pix) == 0 {
		return img
	}
	gl21.PixelStorei(gl21.PACK_ALIGNMENT, 1)
	gl21.ReadBuffer(gl21.BACK)
	gl21.ReadPixels(0, 0, int32(width), int32(height), gl21.RGBA, gl21.UNSIGNED_BYTE, gl21.Ptr(&img.Pix[0]))
	flipRows(img.Pix, img.Stride, height)
	return img
}

// flipRows converts GL's bottom-up row order to top-down, in place.
func flipRows(pix []byte, stride, height int) {
	tmp := make([]byte, stride)
	for top, bottom := 0, height-1; top < bottom; top, bottom = top+1, bottom-1 {
		a := pix[top*stride : (top+1)*stride]
		b := pix[bottom*stride : (bottom+1)*stride]
		copy(tmp, a)
		copy(a, b)
		copy(b, tmp)
	}
}
