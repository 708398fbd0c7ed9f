package platform

import (
	"runtime"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/hubastard/imgrove/engine/core"
	"github.com/hubastard/imgrove/engine/input"
	"github.com/hubastard/imgrove/engine/ui"
)

// GLFWWindow implements core.Window and pushes input events to a handler.
type GLFWWindow struct {
	w    *glfw.Window
	onEv func(input.Event)
}

var _ core.Window = (*GLFWWindow)(nil)

// Must be called on main thread before any GL calls.
func NewGLFWWindow(cfg core.Config, onEvent func(input.Event)) (*GLFWWindow, error) {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return nil, err
	}

	// GL 3.3 core profile (Mac requires forward-compatible flag).
	glfw.WindowHint(glfw.ContextVersionMajor, 3)
	glfw.WindowHint(glfw.ContextVersionMinor, 3)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Samples, 0)

	win, err := glfw.CreateWindow(cfg.Width, cfg.Height, cfg.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, err
	}
	win.MakeContextCurrent()
	if cfg.VSync {
		glfw.SwapInterval(1)
	} else {
		glfw.SwapInterval(0)
	}

	if err := gl.Init(); err != nil {
		win.Destroy()
		glfw.Terminate()
		return nil, err
	}
	ui.Logger().Info("platform: window created", "gl", gl.GoStr(gl.GetString(gl.VERSION)), "w", cfg.Width, "h", cfg.Height)

	gw := &GLFWWindow{w: win, onEv: onEvent}

	// Callbacks -> translate to input.Event
	win.SetCloseCallback(func(*glfw.Window) { gw.emit(input.EventCloseRequested{}) })
	win.SetFramebufferSizeCallback(func(_ *glfw.Window, w, h int) {
		gw.emit(input.EventResize{W: w, H: h})
	})
	win.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		gw.emit(input.EventMouseMove{X: x, Y: y})
	})
	win.SetMouseButtonCallback(func(_ *glfw.Window, b glfw.MouseButton, action glfw.Action, mods glfw.ModifierKey) {
		btn, ok := translateButton(b)
		if !ok {
			return
		}
		gw.emit(input.EventMouseButton{Button: btn, Down: action != glfw.Release, Mods: translateMods(mods)})
	})
	win.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
		k := translateKey(key)
		if k == input.KeyUnknown {
			return
		}
		gw.emit(input.EventKey{Key: k, Down: action != glfw.Release, Mods: translateMods(mods)})
	})
	win.SetCharCallback(func(_ *glfw.Window, r rune) {
		gw.emit(input.EventChar{Rune: r})
	})
	win.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		gw.emit(input.EventScroll{Xoff: xoff, Yoff: yoff})
	})

	return gw, nil
}

func (g *GLFWWindow) emit(ev input.Event) {
	if g.onEv != nil {
		g.onEv(ev)
	}
}

// Destroy closes the window and terminates GLFW.
func (g *GLFWWindow) Destroy() {
	g.w.Destroy()
	glfw.Terminate()
}

// core.Window impl
func (g *GLFWWindow) PollEvents()                           { glfw.PollEvents() }
func (g *GLFWWindow) SwapBuffers()                          { g.w.SwapBuffers() }
func (g *GLFWWindow) ShouldClose() bool                     { return g.w.ShouldClose() }
func (g *GLFWWindow) Size() (int, int)                      { return g.w.GetSize() }
func (g *GLFWWindow) FramebufferSize() (int, int)           { return g.w.GetFramebufferSize() }
func (g *GLFWWindow) SetTitle(t string)                     { g.w.SetTitle(t) }
func (g *GLFWWindow) SetEventCallback(cb func(input.Event)) { g.onEv = cb }
func (g *GLFWWindow) Time() float64                         { return glfw.GetTime() }

var keyMap = map[glfw.Key]input.Key{
	glfw.KeyEscape:    input.KeyEscape,
	glfw.KeyEnter:     input.KeyEnter,
	glfw.KeyKPEnter:   input.KeyEnter,
	glfw.KeyTab:       input.KeyTab,
	glfw.KeyBackspace: input.KeyBackspace,
	glfw.KeyDelete:    input.KeyDelete,
	glfw.KeySpace:     input.KeySpace,
	glfw.KeyLeft:      input.KeyLeft,
	glfw.KeyRight:     input.KeyRight,
	glfw.KeyUp:        input.KeyUp,
	glfw.KeyDown:      input.KeyDown,
	glfw.KeyHome:      input.KeyHome,
	glfw.KeyEnd:       input.KeyEnd,
	glfw.KeyA:         input.KeyA,
	glfw.KeyC:         input.KeyC,
	glfw.KeyD:         input.KeyD,
	glfw.KeyP:         input.KeyP,
	glfw.KeyS:         input.KeyS,
	glfw.KeyV:         input.KeyV,
	glfw.KeyW:         input.KeyW,
	glfw.KeyX:         input.KeyX,
	glfw.KeyZ:         input.KeyZ,
}

func translateKey(k glfw.Key) input.Key {
	if out, ok := keyMap[k]; ok {
		return out
	}
	return input.KeyUnknown
}

func translateButton(b glfw.MouseButton) (input.MouseButton, bool) {
	switch b {
	case glfw.MouseButtonLeft:
		return input.MouseLeft, true
	case glfw.MouseButtonRight:
		return input.MouseRight, true
	case glfw.MouseButtonMiddle:
		return input.MouseMiddle, true
	}
	return 0, false
}

func translateMods(m glfw.ModifierKey) input.Mod {
	var out input.Mod
	if m&glfw.ModShift != 0 {
		out |= input.ModShift
	}
	if m&glfw.ModControl != 0 {
		out |= input.ModCtrl
	}
	if m&glfw.ModAlt != 0 {
		out |= input.ModAlt
	}
	if m&glfw.ModSuper != 0 {
		out |= input.ModSuper
	}
	return out
}
