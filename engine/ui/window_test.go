package ui

import (
	"testing"

	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/id"
	"github.com/hubastard/imgrove/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonInDefaultWindow(t *testing.T) {
	c := newTestContext(t)
	var rect draw.Rect
	var clicked bool
	var wid id.ID
	build := func() {
		c.WithWindow("Demo", 0, func() {
			clicked = c.Button("OK##ok")
			rect = c.LastItemRect()
			wid = c.LastItemID()
		})
	}

	step(c, nil, build)
	win, ok := c.Window(WindowID("Demo"))
	require.True(t, ok)
	assert.Equal(t, draw.V(20, 20), win.Pos)
	assert.Equal(t, draw.V(300, 200), win.Size)
	assert.Equal(t, id.Combine(WindowID("Demo"), id.Hash("ok")), wid)
	// "OK" is two half-em glyphs plus horizontal frame padding.
	assert.InDelta(t, 13+2*4, rect.W(), 1e-4)
	assert.True(t, win.Rect().Contains(rect.Center()))

	step(c, press(rect.Center()), build)
	assert.False(t, clicked)
	step(c, release(rect.Center()), build)
	assert.True(t, clicked)
	assert.Equal(t, draw.V(20, 20), win.Pos)
}

func TestDragMovesOnlyThatWindow(t *testing.T) {
	c := newTestContext(t)
	first := true
	build := func() {
		if first {
			c.SetNextWindowPos(draw.V(20, 20))
		}
		c.WithWindow("A", 0, func() { c.Text("a") })
		if first {
			c.SetNextWindowPos(draw.V(400, 20))
		}
		c.WithWindow("B", 0, func() { c.Text("b") })
		first = false
	}

	step(c, nil, build)
	step(c, press(draw.V(100, 30)), build)
	step(c, moveTo(draw.V(110, 35)), build)
	step(c, release(draw.V(110, 35)), build)

	a, _ := c.Window(WindowID("A"))
	b, _ := c.Window(WindowID("B"))
	assert.Equal(t, draw.V(30, 25), a.Pos)
	assert.Equal(t, draw.V(400, 20), b.Pos)
}

func TestWindowDragIsClampedToDisplay(t *testing.T) {
	c := newTestContext(t)
	// A nil body is allowed.
	build := func() { c.WithWindow("W", 0, nil) }
	step(c, nil, build)
	step(c, press(draw.V(100, 30)), build)
	step(c, moveTo(draw.V(-500, -500)), build)

	w, _ := c.Window(WindowID("W"))
	assert.Equal(t, draw.V(0, 0), w.Pos)
}

func TestFrontWindowTakesHover(t *testing.T) {
	c := newTestContext(t)
	var backHovered bool
	build := func() {
		c.WithWindow("Back", 0, func() {
			c.ButtonSized("big", draw.V(280, 150))
			backHovered = c.IsItemHovered()
		})
		c.SetWindowPos("Front", draw.V(100, 100))
		c.WithWindow("Front", 0, nil)
	}
	step(c, nil, build)
	step(c, moveTo(draw.V(150, 150)), build)
	assert.False(t, backHovered, "covered by Front")
	step(c, moveTo(draw.V(40, 60)), build)
	assert.True(t, backHovered)
}

func TestCollapseAndClose(t *testing.T) {
	c := newTestContext(t)
	open := true
	var visible bool
	build := func() {
		visible = c.BeginClosable("Tool", &open, 0)
		c.End()
	}
	step(c, nil, build)
	require.True(t, visible)
	w, _ := c.Window(WindowID("Tool"))

	arrow := w.Pos.Add(draw.V(11, 11))
	step(c, press(arrow), build)
	step(c, release(arrow), build)
	assert.True(t, w.Collapsed)
	assert.False(t, visible)
	assert.Equal(t, c.Style().TitleHeight, w.Rect().H())

	step(c, press(arrow), build)
	step(c, release(arrow), build)
	assert.False(t, w.Collapsed)

	closeAt := c.closeRect(w).Center()
	step(c, press(closeAt), build)
	assert.True(t, open, "close fires on release")
	step(c, release(closeAt), build)
	assert.False(t, open)
	assert.False(t, visible)
}

func TestDoubleClickTitleCollapses(t *testing.T) {
	c := newTestContext(t)
	build := func() { c.WithWindow("W", 0, nil) }
	step(c, nil, build)

	title := draw.V(150, 30)
	in := c.Input()
	in.NewFrame()
	in.SetMousePos(title.X, title.Y)
	in.SetMouseButton(input.MouseLeft, true)
	c.BeginFrame()
	build()
	c.EndFrame()

	in.NewFrame()
	in.SetDeltaTime(0.1)
	in.SetMouseButton(input.MouseLeft, false)
	in.SetMouseButton(input.MouseLeft, true)
	c.BeginFrame()
	build()
	c.EndFrame()

	w, _ := c.Window(WindowID("W"))
	assert.True(t, w.Collapsed)
}

func TestResizeRespectsMinimum(t *testing.T) {
	c := newTestContext(t)
	build := func() { c.WithWindow("W", 0, nil) }
	step(c, nil, build)

	grip := draw.V(20+300-3, 20+200-3)
	step(c, press(grip), build)
	step(c, moveTo(grip.Add(draw.V(50, 10))), build)
	w, _ := c.Window(WindowID("W"))
	assert.Equal(t, draw.V(350, 210), w.Size)

	step(c, moveTo(draw.V(0, 0)), build)
	assert.Equal(t, c.Style().WindowMinSize, w.Size)
}

func TestWheelScrollsWithinContent(t *testing.T) {
	c := newTestContext(t)
	build := func() {
		c.WithWindow("Log", 0, func() {
			for range 30 {
				c.Text("line")
			}
		})
	}
	step(c, nil, build)
	w, _ := c.Window(WindowID("Log"))
	assert.InDelta(t, 29*(13+4)+13, w.ContentSize.Y, 1e-3)

	step(c, func(in *input.Input) {
		in.SetMousePos(100, 100)
		in.AddWheel(0, -1)
	}, build)
	assert.InDelta(t, 13*scrollLines, w.Scroll, 1e-3)

	for range 40 {
		step(c, func(in *input.Input) { in.AddWheel(0, -1) }, build)
	}
	view := w.Size.Y - c.Style().TitleHeight - 2*c.Style().WindowPadding.Y
	assert.InDelta(t, w.ContentSize.Y-view, w.Scroll, 1e-3)

	step(c, func(in *input.Input) { in.AddWheel(0, 100) }, build)
	assert.Zero(t, w.Scroll)
}

func TestUnclosedWindowPanicsInDebug(t *testing.T) {
	c := newTestContext(t)
	c.BeginFrame()
	c.Begin("Leaky", 0)
	assert.Panics(t, func() { c.EndFrame() })
}

func TestWindowWidgetsAreClipped(t *testing.T) {
	c := newTestContext(t)
	dd := step(c, nil, func() {
		// The title text sits outside the content clip.
		c.WithWindow("W", WindowNoTitleBar, func() { c.Text("x") })
	})
	content := draw.XYWH(20+8, 20+8, 300-16, 200-16).Expand(4)

	var found bool
	for _, cmd := range dd.List.Commands {
		if cmd.Texture == monoTexture {
			found = true
			assert.Equal(t, content, cmd.ClipRect)
		}
	}
	assert.True(t, found)
	assert.Zero(t, dd.List.ClipDepth())
}

func TestClosedWindowTakesNoHover(t *testing.T) {
	c := newTestContext(t)
	open := false
	var hovered bool
	build := func() {
		c.WithWindow("Back", 0, func() {
			c.ButtonSized("big", draw.V(280, 150))
			hovered = c.IsItemHovered()
		})
		c.SetNextWindowPos(draw.V(20, 20))
		if c.BeginClosable("Gone", &open, 0) {
			t.Fatal("closed window reported visible")
		}
		c.End()
	}
	step(c, nil, build)
	step(c, moveTo(draw.V(60, 80)), build)
	assert.True(t, hovered)
}

func TestBarePressOnTitleKeepsWindowInPlace(t *testing.T) {
	c := newTestContext(t)
	build := func() { c.WithWindow("W", 0, nil) }
	step(c, moveTo(draw.V(200, 150)), build)
	w, _ := c.Window(WindowID("W"))
	start := w.Pos

	// The pointer jumps onto the title and presses within one frame.
	step(c, press(draw.V(100, 30)), build)
	assert.Equal(t, start, w.Pos)
	step(c, moveTo(draw.V(100, 30)), build)
	assert.Equal(t, start, w.Pos)

	step(c, moveTo(draw.V(110, 35)), build)
	assert.Equal(t, start.Add(draw.V(10, 5)), w.Pos)
}
