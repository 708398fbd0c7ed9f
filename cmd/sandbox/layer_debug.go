package main

import (
	"github.com/hubastard/imgrove/engine/colors"
	"github.com/hubastard/imgrove/engine/core"
	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/input"
	"github.com/hubastard/imgrove/engine/profiler"
	"github.com/hubastard/imgrove/engine/ui"
)

type gpuInfo interface {
	GPUVendor() string
	GPURenderer() string
	GPUVersion() string
}

// LayerDebug shows frame, renderer, memory and GPU statistics.
type LayerDebug struct {
	frameDuration float32
	tick          int
	placed        bool
}

func (l *LayerDebug) OnAttach(e *core.Engine) {}

func (l *LayerDebug) OnDetach(e *core.Engine) {}

func (l *LayerDebug) OnUpdate(e *core.Engine, dt float64) {}

func (l *LayerDebug) OnGUI(e *core.Engine, c *ui.Context) {
	defer profiler.Start("LayerDebug.OnGUI")()

	if !l.placed {
		w, _ := e.Window.Size()
		c.SetNextWindowPos(draw.V(float32(w)-340, 20))
		l.placed = true
	}
	if !c.Begin("Stats", ui.WindowNoResize) {
		c.End()
		return
	}
	defer c.End()

	stats := e.Renderer.Stats()
	fps := float32(0)
	if l.frameDuration > 0 {
		fps = 1000 / l.frameDuration
	}

	c.TextColored(colors.Yellow, "Frame")
	c.Textf("  %d  %.3f ms (%.1f FPS)", l.tick, l.frameDuration, fps)
	c.TextColored(colors.Yellow, "Renderer")
	c.Textf("  Draw Calls: %d", stats.DrawCalls)
	c.Textf("  Triangles: %d", stats.TriangleCount())
	c.Textf("  Vertices: %d", stats.VertexCount)
	c.Textf("  Textures: %d", stats.TextureCount)
	c.TextColored(colors.Yellow, "Memory")
	c.Textf("  Usage: %.3f MB", float32(profiler.MemoryUsage())/(1<<20))
	c.Textf("  Allocs: %d", profiler.MemoryAllocs())
	c.Textf("  Goroutines: %d", profiler.NumGoroutine())
	c.Textf("  CPUs: %d", profiler.NumCPU())
	if g, ok := e.Renderer.(gpuInfo); ok && c.CollapsingHeader("GPU") {
		c.TextWrapped("Vendor: " + g.GPUVendor())
		c.TextWrapped("Renderer: " + g.GPURenderer())
		c.TextWrapped("Version: " + g.GPUVersion())
	}
	if profiler.Enabled && c.SmallButton("Dump profile (Ctrl+P)") {
		l.dumpProfile()
	}
}

func (l *LayerDebug) dumpProfile() {
	if path, err := profiler.OpenProfilerGraph(); err == nil {
		ui.Logger().Info("speedscope dump", "path", path)
	} else {
		ui.Logger().Warn("profiler dump error", "err", err)
	}
}

func (l *LayerDebug) OnEvent(e *core.Engine, ev input.Event) bool {
	switch v := ev.(type) {
	case input.EventKey:
		if v.Down && v.Key == input.KeyP && (v.Mods&input.ModCtrl) != 0 {
			l.dumpProfile()
			return true
		}
		if v.Down && v.Key == input.KeyEscape && v.Mods&input.ModShift != 0 {
			e.Quit()
			return true
		}
	}
	return false
}
