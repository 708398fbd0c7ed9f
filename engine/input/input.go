// Package input holds the per-frame snapshot of pointer and keyboard state.
// The host writes it once per frame; everything else only reads.
package input

import (
	"github.com/hubastard/imgrove/engine/draw"
	"golang.org/x/text/unicode/norm"
)

const (
	// DoubleClickTime is the max delay between two presses, in seconds.
	DoubleClickTime = 0.30
	// DoubleClickDist is the max pointer travel between two presses, in pixels.
	DoubleClickDist = 6
)

type button struct {
	down, pressed, released, double bool

	lastPress    float64
	lastPressPos draw.Vec2
}

type Input struct {
	mousePos   draw.Vec2
	mouseDelta draw.Vec2
	wheel      draw.Vec2
	hasMouse   bool

	buttons [MouseButtonCount]button

	keysDown    [KeyCount]bool
	keysPressed [KeyCount]bool
	mods        Mod

	raw  []byte
	text string

	displaySize draw.Vec2
	dt          float32
	time        float64
	frame       uint64
}

func New() *Input { return &Input{buttons: lastPressNever()} }

func lastPressNever() [MouseButtonCount]button {
	var b [MouseButtonCount]button
	for i := range b {
		b[i].lastPress = -1
	}
	return b
}

// NewFrame clears every edge flag and per-frame accumulator. Call it once
// per frame before feeding events.
func (in *Input) NewFrame() {
	for i := range in.buttons {
		b := &in.buttons[i]
		b.pressed, b.released, b.double = false, false, false
	}
	in.keysPressed = [KeyCount]bool{}
	in.mouseDelta = draw.Vec2{}
	in.wheel = draw.Vec2{}
	in.raw = in.raw[:0]
	in.text = ""
	in.frame++
}

// Handle applies a host event.
func (in *Input) Handle(ev Event) {
	switch e := ev.(type) {
	case EventKey:
		in.SetKey(e.Key, e.Down)
		in.SetModifiers(e.Mods)
	case EventMouseMove:
		in.SetMousePos(float32(e.X), float32(e.Y))
	case EventMouseButton:
		in.SetMouseButton(e.Button, e.Down)
		in.SetModifiers(e.Mods)
	case EventScroll:
		in.AddWheel(float32(e.Xoff), float32(e.Yoff))
	case EventChar:
		in.AppendText(string(e.Rune))
	case EventResize:
		in.SetDisplaySize(float32(e.W), float32(e.H))
	}
}

func (in *Input) SetMousePos(x, y float32) {
	p := draw.Vec2{X: x, Y: y}
	if in.hasMouse {
		in.mouseDelta = in.mouseDelta.Add(p.Sub(in.mousePos))
	}
	in.mousePos = p
	in.hasMouse = true
}

func (in *Input) SetMouseButton(b MouseButton, down bool) {
	if b < 0 || b >= MouseButtonCount {
		return
	}
	s := &in.buttons[b]
	switch {
	case down && !s.down:
		s.pressed = true
		d := in.mousePos.Sub(s.lastPressPos)
		if s.lastPress >= 0 && in.time-s.lastPress <= DoubleClickTime &&
			d.X*d.X+d.Y*d.Y <= DoubleClickDist*DoubleClickDist {
			s.double = true
			s.lastPress = -1
		} else {
			s.lastPress = in.time
		}
		s.lastPressPos = in.mousePos
	case !down && s.down:
		s.released = true
	}
	s.down = down
}

func (in *Input) AddWheel(dx, dy float32) {
	in.wheel.X += dx
	in.wheel.Y += dy
}

func (in *Input) SetKey(k Key, down bool) {
	if k <= KeyUnknown || k >= KeyCount {
		return
	}
	if down && !in.keysDown[k] {
		in.keysPressed[k] = true
	}
	in.keysDown[k] = down
}

func (in *Input) SetModifiers(m Mod) { in.mods = m }

// AppendText adds typed text for this frame. The accumulated text is kept
// in NFC so composed and decomposed input compare equal.
func (in *Input) AppendText(s string) {
	if s == "" {
		return
	}
	in.raw = append(in.raw, s...)
	in.text = norm.NFC.String(string(in.raw))
}

func (in *Input) SetDisplaySize(w, h float32) { in.displaySize = draw.Vec2{X: w, Y: h} }

// SetDeltaTime records the frame duration and advances the input clock.
func (in *Input) SetDeltaTime(dt float32) {
	if dt < 0 {
		dt = 0
	}
	in.dt = dt
	in.time += float64(dt)
}

func (in *Input) MousePos() draw.Vec2    { return in.mousePos }
func (in *Input) MouseDelta() draw.Vec2  { return in.mouseDelta }
func (in *Input) Wheel() draw.Vec2       { return in.wheel }
func (in *Input) Mods() Mod              { return in.mods }
func (in *Input) Ctrl() bool             { return in.mods&ModCtrl != 0 }
func (in *Input) Shift() bool            { return in.mods&ModShift != 0 }
func (in *Input) Alt() bool              { return in.mods&ModAlt != 0 }
func (in *Input) Text() string           { return in.text }
func (in *Input) DisplaySize() draw.Vec2 { return in.displaySize }
func (in *Input) DeltaTime() float32     { return in.dt }
func (in *Input) FrameCount() uint64     { return in.frame }

func (in *Input) MouseDown(b MouseButton) bool          { return in.btn(b).down }
func (in *Input) MousePressed(b MouseButton) bool       { return in.btn(b).pressed }
func (in *Input) MouseReleased(b MouseButton) bool      { return in.btn(b).released }
func (in *Input) MouseDoubleClicked(b MouseButton) bool { return in.btn(b).double }

func (in *Input) KeyDown(k Key) bool {
	return k > KeyUnknown && k < KeyCount && in.keysDown[k]
}

func (in *Input) KeyPressed(k Key) bool {
	return k > KeyUnknown && k < KeyCount && in.keysPressed[k]
}

func (in *Input) btn(b MouseButton) button {
	if b < 0 || b >= MouseButtonCount {
		return button{}
	}
	return in.buttons[b]
}
