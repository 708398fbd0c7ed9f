package ui

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/id"
	"github.com/hubastard/imgrove/engine/input"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const monoTexture draw.TextureID = 7

// monoFont gives every rune a half-em advance and a full-em line.
type monoFont struct{}

func (monoFont) Glyph(r rune, size float32) (Glyph, bool) {
	return Glyph{
		UVMax:    draw.V(1, 1),
		Size:     draw.V(size*0.5, size),
		AdvanceX: size * 0.5,
	}, true
}

func (monoFont) Texture() draw.TextureID         { return monoTexture }
func (monoFont) LineHeight(size float32) float32 { return size }

func newTestContext(t *testing.T) *Context {
	t.Helper()
	c := New(Config{Debug: true})
	c.SetFont(monoFont{})
	c.Input().SetDisplaySize(800, 600)
	return c
}

// step runs one frame: feed writes this frame's input, build issues the UI.
func step(c *Context, feed func(in *input.Input), build func()) *DrawData {
	in := c.Input()
	in.NewFrame()
	// Keep presses of consecutive frames out of the double-click window.
	in.SetDeltaTime(1)
	if feed != nil {
		feed(in)
	}
	c.BeginFrame()
	if build != nil {
		build()
	}
	return c.EndFrame()
}

func moveTo(p draw.Vec2) func(*input.Input) {
	return func(in *input.Input) { in.SetMousePos(p.X, p.Y) }
}

func press(p draw.Vec2) func(*input.Input) {
	return func(in *input.Input) {
		in.SetMousePos(p.X, p.Y)
		in.SetMouseButton(input.MouseLeft, true)
	}
}

func release(p draw.Vec2) func(*input.Input) {
	return func(in *input.Input) {
		in.SetMousePos(p.X, p.Y)
		in.SetMouseButton(input.MouseLeft, false)
	}
}

type interaction struct{ hovered, held, clicked bool }

func TestHotGoesToLastHoveredCaller(t *testing.T) {
	c := newTestContext(t)
	a, b := c.ID("A"), c.ID("B")

	step(c, moveTo(draw.V(50, 50)), func() {
		c.Behavior(a, draw.XYWH(0, 0, 100, 100))
		c.Behavior(b, draw.XYWH(25, 25, 50, 50))
	})
	assert.Equal(t, b, c.Hot())

	step(c, moveTo(draw.V(10, 10)), func() {
		c.Behavior(a, draw.XYWH(0, 0, 100, 100))
		c.Behavior(b, draw.XYWH(25, 25, 50, 50))
	})
	assert.Equal(t, a, c.Hot())
}

func TestClickFiresOnReleaseOverPressedWidget(t *testing.T) {
	r := draw.XYWH(0, 0, 100, 20)
	inside, outside := draw.V(10, 10), draw.V(300, 300)

	tests := []struct {
		name  string
		feeds []func(*input.Input)
		want  []interaction
	}{
		{
			name:  "press then release inside",
			feeds: []func(*input.Input){press(inside), release(inside), moveTo(inside)},
			want:  []interaction{{true, true, false}, {true, false, true}, {true, false, false}},
		},
		{
			name:  "release outside",
			feeds: []func(*input.Input){press(inside), release(outside)},
			want:  []interaction{{true, true, false}, {false, false, false}},
		},
		{
			name:  "held persists off hover",
			feeds: []func(*input.Input){press(inside), moveTo(outside), moveTo(inside), release(inside)},
			want:  []interaction{{true, true, false}, {false, true, false}, {true, true, false}, {true, false, true}},
		},
		{
			name:  "pressed elsewhere",
			feeds: []func(*input.Input){press(outside), moveTo(inside), release(inside)},
			want:  []interaction{{false, false, false}, {true, false, false}, {true, false, false}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newTestContext(t)
			wid := c.ID("button")
			for i, feed := range tt.feeds {
				var got interaction
				step(c, feed, func() {
					got.hovered, got.held, got.clicked = c.Behavior(wid, r)
				})
				assert.Equal(t, tt.want[i], got, "frame %d", i)
			}
		})
	}
}

func TestActiveClearedAfterRelease(t *testing.T) {
	c := newTestContext(t)
	wid := c.ID("w")
	r := draw.XYWH(0, 0, 10, 10)
	build := func() { c.Behavior(wid, r) }

	step(c, press(draw.V(5, 5)), build)
	assert.True(t, c.IsActive(wid))
	step(c, release(draw.V(5, 5)), build)
	assert.True(t, c.IsActive(wid), "owner still sees the release frame")
	step(c, nil, build)
	assert.Equal(t, id.None, c.Active())
}

func TestFocus(t *testing.T) {
	c := newTestContext(t)
	wid := c.ID("field")
	r := draw.XYWH(0, 0, 50, 20)
	build := func() { c.Behavior(wid, r) }

	step(c, press(draw.V(5, 5)), build)
	assert.True(t, c.IsFocused(wid))

	step(c, release(draw.V(5, 5)), build)
	step(c, func(in *input.Input) { in.SetKey(input.KeyEscape, true) }, build)
	assert.Equal(t, id.None, c.Focused())

	step(c, func(in *input.Input) {
		in.SetKey(input.KeyEscape, false)
		press(draw.V(5, 5))(in)
	}, build)
	require.True(t, c.IsFocused(wid))
	step(c, release(draw.V(5, 5)), build)

	// A press that lands on no widget drops focus.
	step(c, press(draw.V(400, 400)), build)
	assert.Equal(t, id.None, c.Focused())
}

func TestIDScopes(t *testing.T) {
	c := newTestContext(t)
	step(c, nil, func() {
		root := c.ID("x")
		assert.Equal(t, c.ID("Label##x"), root, "display text is not identity")

		pop := c.PushID("panel")
		scoped := c.ID("x")
		assert.NotEqual(t, root, scoped)
		assert.Equal(t, id.Combine(id.Combine(id.None, id.Hash("panel")), id.Hash("x")), scoped)

		rows := map[id.ID]bool{}
		for i := range 3 {
			popRow := c.PushIntID(i)
			rows[c.ID("delete")] = true
			popRow()
		}
		assert.Len(t, rows, 3)
		pop()

		assert.Equal(t, root, c.ID("x"))
		c.PopID() // extra pops are ignored
		assert.Equal(t, root, c.ID("x"))
	})
}

func TestUnbalancedScopesPanicInDebug(t *testing.T) {
	c := newTestContext(t)
	c.BeginFrame()
	c.PushID("leak")
	assert.Panics(t, func() { c.EndFrame() })

	c = New(Config{})
	c.BeginFrame()
	c.PushID("leak")
	c.PushStyle(func(s *Style) { s.Alpha = 0.5 })
	assert.NotPanics(t, func() { c.EndFrame() })
	assert.Equal(t, float32(1), c.Style().Alpha, "style unwound")
}

func TestDuplicateIDWarns(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	t.Cleanup(func() { SetLogger(nil) })

	c := newTestContext(t)
	wid := c.ID("same")
	step(c, nil, func() {
		c.Behavior(wid, draw.XYWH(0, 0, 1, 1))
		c.Behavior(wid, draw.XYWH(0, 0, 1, 1))
	})
	assert.Contains(t, buf.String(), "duplicate widget id")

	buf.Reset()
	step(c, nil, func() { c.Behavior(wid, draw.XYWH(0, 0, 1, 1)) })
	assert.Empty(t, buf.String(), "ids are tracked per frame")
}

func TestStorageIsGetOrDefault(t *testing.T) {
	c := newTestContext(t)
	wid := c.ID("s")
	st := c.Storage(wid)
	assert.Equal(t, Storage{}, *st)
	st.Ints[1] = 4
	st.Text = "kept"
	assert.Same(t, st, c.Storage(wid))
	assert.Equal(t, 4, c.Storage(wid).Ints[1])
}

func TestPushStyleRestores(t *testing.T) {
	c := newTestContext(t)
	step(c, nil, func() {
		pop := c.PushStyle(func(s *Style) { s.FrameRounding = 0 })
		assert.Zero(t, c.Style().FrameRounding)
		inner := c.PushStyle(func(s *Style) { s.FontSize = 20 })
		assert.Equal(t, float32(20), c.MeasureText("x").Y)
		inner()
		pop()
		assert.Equal(t, DarkStyle().FrameRounding, c.Style().FrameRounding)
	})
}

func TestMeasureText(t *testing.T) {
	c := newTestContext(t)
	assert.Equal(t, draw.V(13, 13), c.MeasureText("ab"))

	c.SetFont(nil)
	assert.Equal(t, draw.V(6.5*3, 13), c.MeasureText("abc"))
}

func TestTextUsesFontTexture(t *testing.T) {
	c := newTestContext(t)
	dd := step(c, nil, func() { c.Text("hello") })

	var textured int
	for _, cmd := range dd.List.Commands {
		if cmd.Texture == monoTexture {
			textured += int(cmd.ElemCount)
		}
	}
	assert.Equal(t, 5*6, textured)
	assert.Zero(t, dd.List.TextureDepth())
	assert.Equal(t, draw.V(800, 600), dd.DisplaySize)
}

func TestTooltipDrawnLast(t *testing.T) {
	c := newTestContext(t)
	dd := step(c, moveTo(draw.V(10, 10)), func() {
		c.Button("hover me")
		if c.IsItemHovered() {
			c.SetTooltip("tip")
		}
	})
	require.NotEmpty(t, dd.List.Commands)
	last := dd.List.Commands[len(dd.List.Commands)-1]
	assert.Equal(t, monoTexture, last.Texture)
	assert.Equal(t, uint32(3*6), last.ElemCount)
}
