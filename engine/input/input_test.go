package input

import (
	"testing"

	"github.com/hubastard/imgrove/engine/draw"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestButtonEdges(t *testing.T) {
	in := New()

	in.NewFrame()
	in.SetMouseButton(MouseLeft, true)
	assert.True(t, in.MousePressed(MouseLeft))
	assert.True(t, in.MouseDown(MouseLeft))
	assert.False(t, in.MouseReleased(MouseLeft))

	// Held: no new edge.
	in.NewFrame()
	in.SetMouseButton(MouseLeft, true)
	assert.False(t, in.MousePressed(MouseLeft))
	assert.True(t, in.MouseDown(MouseLeft))

	in.NewFrame()
	in.SetMouseButton(MouseLeft, false)
	assert.True(t, in.MouseReleased(MouseLeft))
	assert.False(t, in.MouseDown(MouseLeft))

	in.NewFrame()
	assert.False(t, in.MouseReleased(MouseLeft))
}

func TestKeyEdges(t *testing.T) {
	in := New()
	in.NewFrame()
	in.SetKey(KeyEnter, true)
	assert.True(t, in.KeyPressed(KeyEnter))
	assert.True(t, in.KeyDown(KeyEnter))

	in.NewFrame()
	assert.False(t, in.KeyPressed(KeyEnter))
	assert.True(t, in.KeyDown(KeyEnter))

	in.SetKey(KeyCount, true)
	assert.False(t, in.KeyDown(KeyCount))
}

func TestMouseDeltaAndWheel(t *testing.T) {
	in := New()
	in.NewFrame()
	in.SetMousePos(10, 10)
	assert.Equal(t, draw.Vec2{}, in.MouseDelta())

	in.NewFrame()
	in.SetMousePos(15, 12)
	in.SetMousePos(20, 15)
	in.AddWheel(0, -1)
	in.AddWheel(0, -2)
	assert.Equal(t, draw.V(10, 5), in.MouseDelta())
	assert.Equal(t, draw.V(0, -3), in.Wheel())

	in.NewFrame()
	assert.Equal(t, draw.Vec2{}, in.MouseDelta())
	assert.Equal(t, draw.Vec2{}, in.Wheel())
	assert.Equal(t, draw.V(20, 15), in.MousePos())
}

func TestTextAccumulatorIsNFC(t *testing.T) {
	in := New()
	in.NewFrame()
	in.AppendText("e")
	in.AppendText("\u0301")
	assert.Equal(t, "\u00e9", in.Text())

	in.NewFrame()
	assert.Empty(t, in.Text())
}

func TestDoubleClick(t *testing.T) {
	in := New()
	click := func() {
		in.NewFrame()
		in.SetDeltaTime(0.05)
		in.SetMouseButton(MouseLeft, true)
		in.NewFrame()
		in.SetDeltaTime(0.05)
		in.SetMouseButton(MouseLeft, false)
	}

	click()
	assert.False(t, in.MouseDoubleClicked(MouseLeft))
	in.NewFrame()
	in.SetDeltaTime(0.05)
	in.SetMouseButton(MouseLeft, true)
	assert.True(t, in.MouseDoubleClicked(MouseLeft))

	in.NewFrame()
	in.SetDeltaTime(1)
	in.SetMouseButton(MouseLeft, false)
	in.NewFrame()
	in.SetMouseButton(MouseLeft, true)
	assert.False(t, in.MouseDoubleClicked(MouseLeft))
}

func TestHandleEvents(t *testing.T) {
	in := New()
	in.NewFrame()
	for _, ev := range []Event{
		EventMouseMove{X: 4, Y: 8},
		EventMouseButton{Button: MouseRight, Down: true, Mods: ModShift},
		EventScroll{Yoff: 2},
		EventKey{Key: KeyA, Down: true, Mods: ModCtrl},
		EventChar{Rune: 'x'},
		EventResize{W: 800, H: 600},
	} {
		in.Handle(ev)
	}

	require.Equal(t, draw.V(4, 8), in.MousePos())
	assert.True(t, in.MousePressed(MouseRight))
	assert.Equal(t, draw.V(0, 2), in.Wheel())
	assert.True(t, in.KeyPressed(KeyA))
	assert.True(t, in.Ctrl())
	assert.Equal(t, "x", in.Text())
	assert.Equal(t, draw.V(800, 600), in.DisplaySize())
	assert.Equal(t, uint64(1), in.FrameCount())
}
