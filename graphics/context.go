package graphics

// Profile selects the OpenGL context flavour a window is created with.
type Profile int

const (
	// ProfileCore is a 3.3 core, forward-compatible context for buffer/shader drawing.
	ProfileCore Profile = iota
	// ProfileLegacy is a 2.1 context that still accepts immediate-mode calls.
	ProfileLegacy
)

func (p Profile) String() string {
	switch p {
	case ProfileCore:
		return "core"
	case ProfileLegacy:
		return "legacy"
	default:
		return "unknown"
	}
}

// Context defines the interface for an OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame presents the back buffer and polls window events.
	EndFrame()
	GetFramebufferSize() (int, int)
	Time() float64
}
