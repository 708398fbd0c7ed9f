package core

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/hubastard/imgrove/engine/input"
	"github.com/hubastard/imgrove/engine/metrics"
	"github.com/hubastard/imgrove/engine/profiler"
	"github.com/hubastard/imgrove/engine/text"
	"github.com/hubastard/imgrove/engine/ui"
)

// Run wires the platform window + renderer and executes the main loop.
func Run(app App, cfg Config, newWindow func(Config) (Window, error), newRenderer func(Window, Config) (Renderer, error)) error {
	// Graphics contexts require the main OS thread.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	win, err := newWindow(cfg)
	if err != nil {
		return err
	}

	rend, err := newRenderer(win, cfg)
	if err != nil {
		return err
	}
	defer rend.Shutdown()

	w, h := win.FramebufferSize()
	rend.Resize(w, h)

	eng := &Engine{
		Window:   win,
		Renderer: rend,
		UI:       ui.New(cfg.UI),
		Layers:   &LayerStack{},
		Config:   cfg,
		start:    time.Now(),
	}
	if err := eng.loadFont(); err != nil {
		return err
	}
	win.SetEventCallback(func(ev input.Event) { eng.dispatch(app, ev) })

	if cfg.StylePath != "" {
		eng.reloadStyle()
		if sw, err := WatchFile(cfg.StylePath); err != nil {
			ui.Logger().Warn("core: style hot reload disabled", "err", err)
		} else {
			defer sw.Close()
			eng.styleWatch = sw
		}
	}

	if cfg.MetricsAddr != "" {
		reg := prometheus.NewRegistry()
		eng.metrics = metrics.NewFrame(reg)
		srv, err := metrics.Serve(cfg.MetricsAddr, reg)
		if err != nil {
			return err
		}
		defer srv.Shutdown(context.Background())
	}

	app.OnStart(eng)

	// Fixed-timestep (60 Hz) updates; the GUI runs once per frame.
	const tick = time.Second / 60
	var (
		accum   time.Duration
		prev    = time.Now()
		maxStep = 10 // prevent spiral of death
	)

	for !eng.quit && !win.ShouldClose() {
		now := time.Now()
		frame := now.Sub(prev)
		prev = now
		accum += frame
		eng.frameTime = frame

		in := eng.UI.Input()
		in.NewFrame()
		in.SetDeltaTime(float32(frame.Seconds()))

		// Poll OS events (platform will emit via callbacks)
		win.PollEvents()
		if ww, wh := win.Size(); ww > 0 && wh > 0 {
			in.SetDisplaySize(float32(ww), float32(wh))
		}

		steps := 0
		for accum >= tick && steps < maxStep {
			dt := float64(tick) / float64(time.Second)
			app.OnUpdate(eng, dt)
			eng.Layers.ForEach(func(l Layer) { l.OnUpdate(eng, dt) })
			accum -= tick
			steps++
		}
		if steps == maxStep {
			accum = 0
		}

		if eng.styleWatch != nil && eng.styleWatch.Changed() {
			eng.reloadStyle()
		}

		dd := eng.UI.Frame(func(c *ui.Context) {
			eng.Layers.ForEach(func(l Layer) { l.OnGUI(eng, c) })
		})

		rend.Clear(cfg.ClearColor)
		rend.Render(dd)
		if eng.metrics != nil {
			eng.metrics.Observe(rend.Stats(), frame)
		}

		// Present
		win.SwapBuffers()
	}

	for {
		l, ok := eng.Layers.Pop()
		if !ok {
			break
		}
		l.OnDetach(eng)
	}
	app.OnShutdown(eng)
	ui.Logger().Info("core: engine exit", "uptime", eng.Uptime())
	return nil
}

// PushLayer attaches l on top of the stack.
func (e *Engine) PushLayer(l Layer) {
	e.Layers.Push(l)
	l.OnAttach(e)
}

func (e *Engine) dispatch(app App, ev input.Event) {
	app.OnEvent(e, ev)
	switch ev := ev.(type) {
	case input.EventCloseRequested:
		e.quit = true
		return
	case input.EventResize:
		if ev.W < 1 || ev.H < 1 {
			return
		}
		e.Renderer.Resize(ev.W, ev.H)
		return
	}
	handled := false
	e.Layers.ForEachReverse(func(l Layer) bool {
		handled = l.OnEvent(e, ev)
		return handled
	})
	if !handled {
		e.UI.Input().Handle(ev)
	}
}

func (e *Engine) loadFont() error {
	defer profiler.Start("Engine.loadFont")()
	opt := text.Options{SizePx: e.Config.FontSize * e.UI.Config().Scale}
	var (
		atlas *text.Atlas
		err   error
	)
	if e.Config.FontPath == "" {
		atlas, err = text.Default(e.Renderer, opt)
	} else {
		dir, name := filepath.Split(e.Config.FontPath)
		if dir == "" {
			dir = "."
		}
		atlas, err = text.Load(e.Renderer, os.DirFS(dir), name, opt)
	}
	if err != nil {
		return err
	}
	e.UI.SetFont(atlas)
	return nil
}

// reloadStyle applies the style file, keeping the current style on error.
func (e *Engine) reloadStyle() {
	s, err := LoadStyleFile(e.Config.StylePath)
	if err != nil {
		ui.Logger().Warn("core: style not applied", "err", err)
		return
	}
	e.UI.SetStyle(s)
	ui.Logger().Info("core: style loaded", "file", e.Config.StylePath)
}
