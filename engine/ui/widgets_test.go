package ui

import (
	"testing"

	"github.com/hubastard/imgrove/engine/colors"
	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// click presses and releases at p over two frames.
func click(c *Context, p draw.Vec2, build func()) {
	step(c, press(p), build)
	step(c, release(p), build)
}

func texturedElems(dd *DrawData, tex draw.TextureID) int {
	n := 0
	for _, cmd := range dd.List.Commands {
		if cmd.Texture == tex {
			n += int(cmd.ElemCount)
		}
	}
	return n
}

func TestCheckbox(t *testing.T) {
	c := newTestContext(t)
	var on, changed bool
	var r draw.Rect
	build := func() {
		changed = c.Checkbox("Enable", &on)
		r = c.LastItemRect()
	}
	step(c, nil, build)
	assert.InDelta(t, 19+8+6*6.5, r.W(), 1e-4)

	step(c, press(r.Min.Add(draw.V(5, 5))), build)
	assert.False(t, on)
	step(c, release(r.Min.Add(draw.V(5, 5))), build)
	assert.True(t, on)
	assert.True(t, changed)

	click(c, r.Min.Add(draw.V(5, 5)), build)
	assert.False(t, on)
}

func TestSliderFloatFollowsPointer(t *testing.T) {
	c := newTestContext(t)
	v := float32(5)
	var changed bool
	var r draw.Rect
	build := func() {
		changed = c.SliderFloat("speed", &v, 0, 10)
		r = c.LastItemRect()
	}
	step(c, nil, build)

	step(c, press(r.Min.Add(draw.V(1, 5))), build)
	assert.True(t, changed)
	assert.Zero(t, v)

	step(c, moveTo(draw.V(10000, r.Min.Y+5)), build)
	assert.Equal(t, float32(10), v)

	step(c, release(draw.V(10000, r.Min.Y+5)), build)
	assert.False(t, changed)
	assert.Equal(t, float32(10), v)
}

func TestSliderIntSnaps(t *testing.T) {
	c := newTestContext(t)
	v := 0
	var r draw.Rect
	build := func() {
		c.SliderInt("count", &v, 0, 4)
		r = c.LastItemRect()
	}
	step(c, nil, build)
	step(c, press(draw.V(10000, r.Min.Y+5)), build)
	assert.Equal(t, 0, v, "the press must land on the track")

	step(c, release(draw.V(10000, r.Min.Y+5)), build)
	step(c, press(r.Min.Add(draw.V(1, 5))), build)
	step(c, moveTo(draw.V(10000, r.Min.Y+5)), build)
	assert.Equal(t, 4, v)
}

func TestDragFloatClamps(t *testing.T) {
	c := newTestContext(t)
	v := float32(0.5)
	var r draw.Rect
	build := func() {
		c.DragFloat("gain", &v, 0.01, 0, 1)
		r = c.LastItemRect()
	}
	step(c, nil, build)
	p := r.Min.Add(draw.V(5, 5))
	step(c, press(p), build)
	step(c, moveTo(p.Add(draw.V(10, 0))), build)
	assert.InDelta(t, 0.6, v, 1e-5)
	step(c, moveTo(p.Add(draw.V(500, 0))), build)
	assert.Equal(t, float32(1), v)
}

func TestDragIntAccumulates(t *testing.T) {
	c := newTestContext(t)
	v := 0
	var changed bool
	var r draw.Rect
	build := func() {
		changed = c.DragInt("n", &v, 0.25, 0, 0)
		r = c.LastItemRect()
	}
	step(c, nil, build)
	p := r.Min.Add(draw.V(5, 5))
	step(c, press(p), build)
	step(c, moveTo(p.Add(draw.V(2, 0))), build)
	assert.False(t, changed)
	assert.Equal(t, 0, v)
	step(c, moveTo(p.Add(draw.V(4, 0))), build)
	assert.True(t, changed)
	assert.Equal(t, 1, v)
}

func TestInputTextEditing(t *testing.T) {
	c := newTestContext(t)
	text := ""
	var changed bool
	var r draw.Rect
	build := func() {
		changed = c.InputText("name", &text)
		r = c.LastItemRect()
	}
	step(c, nil, build)
	wid := c.LastItemID()
	p := r.Min.Add(draw.V(5, 5))

	step(c, press(p), build)
	require.True(t, c.IsFocused(wid))

	step(c, func(in *input.Input) {
		release(p)(in)
		in.AppendText("he")
		in.AppendText("llo")
	}, build)
	assert.True(t, changed)
	assert.Equal(t, "hello", text)

	step(c, func(in *input.Input) { in.SetKey(input.KeyBackspace, true) }, build)
	assert.Equal(t, "hell", text)

	step(c, func(in *input.Input) {
		in.SetKey(input.KeyBackspace, false)
		in.SetModifiers(input.ModCtrl)
		in.SetKey(input.KeyA, true)
	}, build)
	assert.Empty(t, text)

	step(c, func(in *input.Input) {
		in.SetModifiers(0)
		in.SetKey(input.KeyA, false)
		in.AppendText("é")
		in.SetKey(input.KeyEnter, true)
	}, build)
	assert.Equal(t, "é", text)
	assert.False(t, c.IsFocused(wid))

	step(c, func(in *input.Input) {
		in.SetKey(input.KeyEnter, false)
		in.AppendText("ignored")
	}, build)
	assert.False(t, changed)
	assert.Equal(t, "é", text)
}

func TestComboSelectsAndCloses(t *testing.T) {
	c := newTestContext(t)
	cur := 0
	var changed bool
	var r draw.Rect
	build := func() {
		c.WithWindow("W", 0, func() {
			changed = c.Combo("mode", &cur, []string{"a", "b", "c"})
			r = c.LastItemRect()
		})
	}
	step(c, nil, build)
	wid := c.LastItemID()
	boxAt := r.Min.Add(draw.V(5, 5))

	click(c, boxAt, build)
	require.True(t, c.Storage(wid).Open)

	ih := float32(13 + 4)
	item2 := draw.V(r.Min.X+5, r.Max.Y+2+3+2*ih+ih*0.5)
	step(c, press(item2), build)
	assert.True(t, changed)
	assert.Equal(t, 2, cur)
	assert.False(t, c.Storage(wid).Open)
	step(c, release(item2), build)

	click(c, boxAt, build)
	require.True(t, c.Storage(wid).Open)
	step(c, press(draw.V(700, 500)), build)
	assert.False(t, c.Storage(wid).Open, "press outside closes")
	assert.Equal(t, 2, cur)
}

func TestComboPopupBlocksWidgetsBelow(t *testing.T) {
	c := newTestContext(t)
	cur := 0
	var below bool
	var r draw.Rect
	build := func() {
		c.WithWindow("W", 0, func() {
			c.Combo("mode", &cur, []string{"a", "b", "c"})
			r = c.LastItemRect()
			below = c.Button("under the list")
		})
	}
	step(c, nil, build)
	click(c, r.Min.Add(draw.V(5, 5)), build)

	// First item row overlaps the button placed after the combo.
	p := draw.V(r.Min.X+5, r.Max.Y+2+3+8)
	step(c, press(p), build)
	step(c, release(p), build)
	assert.False(t, below)
	assert.Equal(t, 0, cur)
}

func TestCollapsingHeaderPersists(t *testing.T) {
	c := newTestContext(t)
	var open bool
	var r draw.Rect
	build := func() {
		open = c.CollapsingHeader("Details")
		r = c.LastItemRect()
	}
	step(c, nil, build)
	assert.False(t, open)
	assert.Equal(t, float32(800-2*8), r.W())

	click(c, r.Center(), build)
	assert.True(t, open)
	step(c, nil, build)
	assert.True(t, open)
}

func TestTabBarSelection(t *testing.T) {
	c := newTestContext(t)
	var one, two bool
	build := func() {
		if c.BeginTabBar("tabs") {
			one = c.TabItem("One")
			two = c.TabItem("Two")
			c.EndTabBar()
		}
	}
	step(c, nil, build)
	assert.True(t, one)
	assert.False(t, two)

	// "One" spans 8..39.5, "Two" starts two pixels later.
	click(c, draw.V(50, 15), build)
	assert.True(t, two)
	step(c, nil, build)
	assert.False(t, one)
	assert.True(t, two)
}

func TestProgressBarAndImage(t *testing.T) {
	c := newTestContext(t)
	dd := step(c, nil, func() {
		c.ProgressBar(0.5, draw.Vec2{}, "")
		c.Image(42, draw.V(16, 16))
	})
	assert.Equal(t, 3*6, texturedElems(dd, monoTexture), "overlay glyphs")
	assert.Equal(t, 6, texturedElems(dd, 42))
	assert.Equal(t, draw.V(16, 16), c.LastItemRect().Size())
}

func TestWrap(t *testing.T) {
	c := newTestContext(t)
	assert.Equal(t, []string{"aa bb", "cc"}, c.wrap("aa bb cc", 6.5*5))
	assert.Equal(t, []string{"a", "", "b"}, c.wrap("a\n\nb", 100))
	assert.Equal(t, []string{"toolongword"}, c.wrap("toolongword", 10))
}

func TestColorEditDragsHue(t *testing.T) {
	c := newTestContext(t)
	col := colors.Red
	var changed bool
	var r draw.Rect
	build := func() {
		changed = c.ColorEdit("color", &col)
		r = c.LastItemRect()
	}
	step(c, nil, build)

	hueBox := r.Min.Add(draw.V(19+4+5, 5))
	step(c, press(hueBox), build)
	step(c, moveTo(hueBox.Add(draw.V(30, 0))), build)
	assert.True(t, changed)
	assert.InDelta(t, 1, col[0], 1e-3)
	assert.InDelta(t, 0.5, col[1], 1e-3)
	assert.InDelta(t, 0, col[2], 1e-3)
	assert.Equal(t, float32(1), col[3])
}

func TestLayoutPassthrough(t *testing.T) {
	c := newTestContext(t)
	step(c, nil, func() {
		c.WithWindow("W", 0, func() {
			start := c.CursorPos()
			assert.Equal(t, draw.V(28, 50), start)

			c.Button("a")
			first := c.LastItemRect()
			c.SameLine()
			c.Button("b")
			assert.Equal(t, first.Max.X+8, c.LastItemRect().Min.X)
			assert.Equal(t, first.Min.Y, c.LastItemRect().Min.Y)

			c.Indent()
			assert.Equal(t, start.X+21, c.CursorPos().X)
			c.Unindent()
			c.Separator()
			assert.Equal(t, float32(1), c.LastItemRect().H())
			assert.Equal(t, float32(284), c.AvailableWidth())
		})
	})
}

func TestDragFloatIgnoresTravelBeforePress(t *testing.T) {
	c := newTestContext(t)
	v := float32(0.5)
	var r draw.Rect
	build := func() {
		c.DragFloat("gain", &v, 0.01, 0, 1)
		r = c.LastItemRect()
	}
	step(c, nil, build)
	p := r.Min.Add(draw.V(5, 5))
	step(c, moveTo(p.Add(draw.V(200, 0))), build)
	step(c, press(p), build)
	assert.Equal(t, float32(0.5), v)

	step(c, moveTo(p.Add(draw.V(10, 0))), build)
	assert.InDelta(t, 0.6, v, 1e-5)
}

func TestDragIntIgnoresTravelBeforePress(t *testing.T) {
	c := newTestContext(t)
	v := 0
	var r draw.Rect
	build := func() {
		c.DragInt("n", &v, 1, 0, 0)
		r = c.LastItemRect()
	}
	step(c, nil, build)
	p := r.Min.Add(draw.V(5, 5))
	step(c, moveTo(p.Add(draw.V(40, 0))), build)
	step(c, press(p), build)
	assert.Zero(t, v)

	step(c, moveTo(p.Add(draw.V(3, 0))), build)
	assert.Equal(t, 3, v)
}
