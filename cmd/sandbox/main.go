package main

import (
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/hubastard/imgrove/engine/core"
	glbackend "github.com/hubastard/imgrove/engine/gfx/gl"
	"github.com/hubastard/imgrove/engine/input"
	"github.com/hubastard/imgrove/engine/platform"
	"github.com/hubastard/imgrove/engine/profiler"
	"github.com/hubastard/imgrove/engine/ui"
)

type App struct {
	lastFrame  time.Time
	tick       int
	imagePath  string
	demoLayer  *LayerDemo
	debugLayer *LayerDebug
}

func (a *App) OnStart(e *core.Engine) {
	profiler.Init(1 << 10) // ~1K scope samples

	a.demoLayer = &LayerDemo{imagePath: a.imagePath}
	e.PushLayer(a.demoLayer)

	a.debugLayer = &LayerDebug{}
	e.PushLayer(a.debugLayer)
}

func (a *App) OnUpdate(e *core.Engine, dt float64) {
	a.tick++

	now := time.Now()
	if a.debugLayer != nil && !a.lastFrame.IsZero() {
		a.debugLayer.frameDuration = float32(now.Sub(a.lastFrame).Seconds() * 1000.0)
		a.debugLayer.tick = a.tick
	}
	a.lastFrame = now
}

func (a *App) OnEvent(e *core.Engine, ev input.Event) {}
func (a *App) OnShutdown(e *core.Engine)              {}

func main() {
	configPath := flag.String("config", "sandbox.yaml", "engine config (YAML); missing means defaults")
	imagePath := flag.String("image", "", "PNG shown in the demo window")
	verbose := flag.Bool("v", false, "debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	ui.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})))

	cfg, err := core.LoadConfig(*configPath)
	if err != nil {
		log.Fatal(err)
	}
	app := &App{imagePath: *imagePath}

	var win *platform.GLFWWindow
	newWindow := func(cfg core.Config) (core.Window, error) {
		w, err := platform.NewGLFWWindow(cfg, nil)
		win = w
		return w, err
	}
	newRenderer := func(w core.Window, cfg core.Config) (core.Renderer, error) {
		return glbackend.NewRendererGL(w)
	}

	err = core.Run(app, cfg, newWindow, newRenderer)
	if win != nil {
		win.Destroy()
	}
	if err != nil {
		log.Fatal(err)
	}
}
