package core

import (
	"time"

	"github.com/hubastard/imgrove/engine/colors"
	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/input"
	"github.com/hubastard/imgrove/engine/metrics"
	"github.com/hubastard/imgrove/engine/ui"
)

// App defines the application hooks.
type App interface {
	OnStart(e *Engine)              // called once after window/renderer init
	OnUpdate(e *Engine, dt float64) // called at a fixed tick (60Hz by default)
	OnEvent(e *Engine, ev input.Event)
	OnShutdown(e *Engine) // before exit
}

// Engine exposes core services to the App and its layers.
type Engine struct {
	Window   Window
	Renderer Renderer
	UI       *ui.Context
	Layers   *LayerStack
	Config   Config

	start      time.Time
	frameTime  time.Duration
	quit       bool
	styleWatch *FileWatcher
	metrics    *metrics.Frame
}

func (e *Engine) Uptime() time.Duration { return time.Since(e.start) }

// FrameTime is the wall time of the previous frame.
func (e *Engine) FrameTime() time.Duration { return e.frameTime }

// Quit ends the loop after the current frame.
func (e *Engine) Quit() { e.quit = true }

// Window abstraction.
type Window interface {
	PollEvents()
	SwapBuffers()
	ShouldClose() bool
	// Size is the window size in screen coordinates, the space of mouse
	// events. FramebufferSize may differ on high-DPI displays.
	Size() (int, int)
	FramebufferSize() (int, int)
	SetTitle(title string)
	SetEventCallback(cb func(input.Event))
}

// Renderer is a ui.Renderer the loop can also clear, resize and query.
type Renderer interface {
	ui.Renderer
	Resize(w, h int)
	Clear(c colors.Color)
	Stats() draw.Statistics
	Shutdown()
}
