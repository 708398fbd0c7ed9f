// Package ui is the immediate-mode frame context: identity scopes,
// interaction arbitration, windows and the widgets built on them.
package ui

import (
	"fmt"

	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/id"
	"github.com/hubastard/imgrove/engine/input"
	"github.com/hubastard/imgrove/engine/layout"
	"github.com/hubastard/imgrove/engine/profiler"
	"github.com/hubastard/imgrove/engine/scratch"
)

// Config tunes a Context. Zero fields take the defaults of DefaultConfig.
type Config struct {
	// Debug turns unbalanced scopes into panics and enables the per-frame
	// duplicate id check.
	Debug             bool      `yaml:"debug"`
	DefaultWindowPos  draw.Vec2 `yaml:"default_window_pos"`
	DefaultWindowSize draw.Vec2 `yaml:"default_window_size"`
	CornerSegments    int       `yaml:"corner_segments"`
	Scale             float32   `yaml:"scale"`
	ScratchCapacity   int       `yaml:"scratch_capacity"`
}

func DefaultConfig() Config {
	return Config{
		DefaultWindowPos:  draw.V(20, 20),
		DefaultWindowSize: draw.V(300, 200),
		CornerSegments:    draw.DefaultCornerSegments,
		Scale:             1,
		ScratchCapacity:   4096,
	}
}

func (c Config) withDefaults() Config {
	d := DefaultConfig()
	if c.DefaultWindowSize.X <= 0 || c.DefaultWindowSize.Y <= 0 {
		c.DefaultWindowSize = d.DefaultWindowSize
	}
	if c.DefaultWindowPos == (draw.Vec2{}) {
		c.DefaultWindowPos = d.DefaultWindowPos
	}
	if c.CornerSegments <= 0 {
		c.CornerSegments = d.CornerSegments
	}
	if c.Scale <= 0 {
		c.Scale = d.Scale
	}
	if c.ScratchCapacity <= 0 {
		c.ScratchCapacity = d.ScratchCapacity
	}
	return c
}

// Storage is the persistent blob of a stateful widget.
type Storage struct {
	Floats [4]float32
	Ints   [4]int
	Text   string
	Active bool
	Open   bool
}

// Context owns all GUI state. It is not safe for concurrent use.
type Context struct {
	cfg        Config
	style      Style
	styleStack []Style

	in   *input.Input
	list *draw.List
	font FontProvider
	buf  *scratch.Buffer

	windows     map[id.ID]*WindowState
	storage     map[id.ID]*Storage
	windowStack []windowFrame
	idStack     []id.ID

	// Window ids in submission order, back to front, for this frame and
	// the last one.
	order      []id.ID
	prevOrder  []id.ID
	hoveredWin id.ID
	nextPos    draw.Vec2
	hasNextPos bool

	// Layout for widgets issued outside any window.
	root layout.Cursor

	hot, active, focused id.ID
	pressClaimed         bool
	lastItem             draw.Rect
	lastID               id.ID

	popup popupState
	tabs  []tabBar

	seen    map[id.ID]struct{}
	tooltip string
	glyphs  []draw.GlyphQuad
	inFrame bool
	dd      DrawData
}

func New(cfg Config) *Context {
	cfg = cfg.withDefaults()
	list := draw.NewList()
	list.CornerSegments = cfg.CornerSegments
	return &Context{
		cfg:     cfg,
		style:   DarkStyle(),
		in:      input.New(),
		list:    list,
		buf:     scratch.New(cfg.ScratchCapacity),
		windows: make(map[id.ID]*WindowState, 16),
		storage: make(map[id.ID]*Storage, 64),
		seen:    make(map[id.ID]struct{}, 64),
	}
}

func (c *Context) Input() *input.Input    { return c.in }
func (c *Context) Config() Config         { return c.cfg }
func (c *Context) Style() *Style          { return &c.style }
func (c *Context) SetStyle(s Style)       { c.style = s }
func (c *Context) Font() FontProvider     { return c.font }
func (c *Context) SetFont(f FontProvider) { c.font = f }
func (c *Context) DrawList() *draw.List   { return c.list }

// Scratch is the per-frame formatting buffer.
func (c *Context) Scratch() *scratch.Buffer { return c.buf }

// BeginFrame resets per-frame state. The host must have fed this frame's
// input already.
func (c *Context) BeginFrame() {
	defer profiler.Start("ui.BeginFrame")()

	if c.inFrame {
		c.assertf("ui: BeginFrame called twice without EndFrame")
	}
	c.list.Clear()
	c.buf.Reset()
	c.windowStack = c.windowStack[:0]
	c.idStack = c.idStack[:0]
	c.styleStack = c.styleStack[:0]
	c.tabs = c.tabs[:0]
	c.hot = id.None
	c.tooltip = ""
	c.pressClaimed = false
	c.lastItem = draw.Rect{}
	c.lastID = id.None
	clear(c.seen)

	c.prevOrder, c.order = c.order, c.prevOrder[:0]
	c.hoveredWin = c.windowAt(c.in.MousePos())
	if c.popup.open && c.popup.rect.Contains(c.in.MousePos()) {
		c.hoveredWin = c.popup.id
	}
	c.popup.open = false
	pad := c.style.WindowPadding
	c.root = layout.New(pad, c.in.DisplaySize().X-2*pad.X, c.style.ItemSpacing)

	if c.in.KeyPressed(input.KeyEscape) {
		c.focused = id.None
	}
	// The owner sees the release edge this frame; active is dropped on
	// the first frame the button is up with no edge left to observe.
	if !c.in.MouseDown(input.MouseLeft) && !c.in.MouseReleased(input.MouseLeft) {
		c.active = id.None
	}
	c.inFrame = true
}

// EndFrame closes the frame and returns its draw data.
func (c *Context) EndFrame() *DrawData {
	defer profiler.Start("ui.EndFrame")()

	if !c.inFrame {
		c.assertf("ui: EndFrame without BeginFrame")
	}
	if n := len(c.windowStack); n > 0 {
		c.assertf("ui: %d window(s) not ended at frame end", n)
		for len(c.windowStack) > 0 {
			c.End()
		}
	}
	if n := len(c.idStack); n > 0 {
		c.assertf("ui: %d id scope(s) not popped at frame end", n)
		c.idStack = c.idStack[:0]
	}
	if n := len(c.styleStack); n > 0 {
		c.assertf("ui: %d style scope(s) not popped at frame end", n)
		c.style = c.styleStack[0]
		c.styleStack = c.styleStack[:0]
	}

	if c.in.MousePressed(input.MouseLeft) && !c.pressClaimed {
		c.focused = id.None
	}
	c.drawPopup()
	c.drawTooltip()

	c.list.Compact()
	c.inFrame = false
	c.dd = DrawData{List: c.list, DisplaySize: c.in.DisplaySize(), Scale: c.cfg.Scale}
	return &c.dd
}

// Frame runs fn between BeginFrame and EndFrame.
func (c *Context) Frame(fn func(*Context)) *DrawData {
	c.BeginFrame()
	fn(c)
	return c.EndFrame()
}

func (c *Context) assertf(format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if c.cfg.Debug {
		panic(msg)
	}
	Logger().Warn(msg)
}

// ----- identity scopes -----

func (c *Context) seed() id.ID {
	if n := len(c.idStack); n > 0 {
		return c.idStack[n-1]
	}
	return id.None
}

// ID hashes the identity part of label under the current scope.
func (c *Context) ID(label string) id.ID {
	_, src := id.SplitLabel(label)
	return id.Combine(c.seed(), id.Hash(src))
}

// PushID opens an identity scope and returns its closer.
func (c *Context) PushID(label string) func() {
	c.idStack = append(c.idStack, c.ID(label))
	return c.PopID
}

// PushIntID opens a scope keyed by n, for list rows.
func (c *Context) PushIntID(n int) func() {
	c.idStack = append(c.idStack, id.FromInt(c.seed(), n))
	return c.PopID
}

func (c *Context) PopID() {
	if n := len(c.idStack); n > 0 {
		c.idStack = c.idStack[:n-1]
	}
}

// WithID runs fn inside an identity scope.
func (c *Context) WithID(label string, fn func()) {
	defer c.PushID(label)()
	fn()
}

// PushStyle applies fn to a copy of the current style and returns the
// closer restoring it.
func (c *Context) PushStyle(fn func(*Style)) func() {
	c.styleStack = append(c.styleStack, c.style)
	fn(&c.style)
	return c.PopStyle
}

func (c *Context) PopStyle() {
	if n := len(c.styleStack); n > 0 {
		c.style = c.styleStack[n-1]
		c.styleStack = c.styleStack[:n-1]
	}
}

// ----- interaction -----

// Behavior hit-tests rect for the widget id and arbitrates the hot,
// active and focused registers. Later callers win hot; clicks fire on
// release over the widget that was pressed.
func (c *Context) Behavior(wid id.ID, rect draw.Rect) (hovered, held, clicked bool) {
	if c.cfg.Debug {
		if _, dup := c.seen[wid]; dup {
			Logger().Warn("ui: duplicate widget id in frame", "id", wid.String())
		}
		c.seen[wid] = struct{}{}
	}

	mouse := c.in.MousePos()
	hovered = rect.Contains(mouse) && c.list.ClipRect().Contains(mouse) && c.windowAccepts()
	if hovered {
		c.hot = wid
	}

	if hovered && c.in.MousePressed(input.MouseLeft) {
		c.active = wid
		c.focused = wid
		c.pressClaimed = true
	} else if c.active == wid && c.in.MouseReleased(input.MouseLeft) {
		clicked = hovered
	}

	held = c.active == wid && c.in.MouseDown(input.MouseLeft)
	return hovered, held, clicked
}

// DragDelta is the pointer motion a held widget should follow this
// frame. It is zero on the press frame, where MouseDelta still carries
// the travel that led up to the press.
func (c *Context) DragDelta() draw.Vec2 {
	if c.in.MousePressed(input.MouseLeft) {
		return draw.Vec2{}
	}
	return c.in.MouseDelta()
}

// windowAccepts reports whether the window being built is the one under
// the pointer, or the pointer is over no known window.
func (c *Context) windowAccepts() bool {
	if c.hoveredWin == id.None {
		return true
	}
	n := len(c.windowStack)
	return n > 0 && c.windowStack[0].id == c.hoveredWin
}

func (c *Context) Hot() id.ID     { return c.hot }
func (c *Context) Active() id.ID  { return c.active }
func (c *Context) Focused() id.ID { return c.focused }

func (c *Context) IsHot(i id.ID) bool     { return i != id.None && c.hot == i }
func (c *Context) IsActive(i id.ID) bool  { return i != id.None && c.active == i }
func (c *Context) IsFocused(i id.ID) bool { return i != id.None && c.focused == i }

func (c *Context) SetFocus(i id.ID) { c.focused = i }
func (c *Context) ClearFocus()      { c.focused = id.None }

// Storage returns the persistent blob for i, creating it on first use.
func (c *Context) Storage(i id.ID) *Storage {
	s, ok := c.storage[i]
	if !ok {
		s = &Storage{}
		c.storage[i] = s
	}
	return s
}

// LastItemRect is the rect of the most recently placed widget.
func (c *Context) LastItemRect() draw.Rect { return c.lastItem }

// LastItemID is the id of the most recently placed interactive widget.
func (c *Context) LastItemID() id.ID { return c.lastID }

// IsItemHovered reports whether the last interactive widget is hot.
func (c *Context) IsItemHovered() bool { return c.IsHot(c.lastID) }

// ----- text -----

func (c *Context) fontSize() float32 { return c.style.FontSize * c.cfg.Scale }

func (c *Context) lineHeight() float32 {
	if c.font != nil {
		return c.font.LineHeight(c.fontSize())
	}
	return c.fontSize()
}

// MeasureText returns the advance width and line height of s.
func (c *Context) MeasureText(s string) draw.Vec2 {
	fs := c.fontSize()
	var w float32
	for _, r := range s {
		w += c.advance(r, fs)
	}
	return draw.V(w, c.lineHeight())
}

func (c *Context) advance(r rune, fs float32) float32 {
	if c.font == nil {
		return fs * 0.5
	}
	if g, ok := c.font.Glyph(r, fs); ok {
		return g.AdvanceX
	}
	if r == ' ' {
		return fs * 0.25
	}
	return 0
}

// drawText emits s with its line top at pos.
func (c *Context) drawText(s string, pos draw.Vec2, col uint32) {
	if c.font == nil || s == "" {
		return
	}
	fs := c.fontSize()
	x := pos.X
	c.glyphs = c.glyphs[:0]
	for _, r := range s {
		g, ok := c.font.Glyph(r, fs)
		if !ok {
			if r == ' ' {
				x += fs * 0.25
			}
			continue
		}
		p := draw.V(x+g.Offset.X, pos.Y+g.Offset.Y)
		c.glyphs = append(c.glyphs, draw.GlyphQuad{Min: p, Max: p.Add(g.Size), UVMin: g.UVMin, UVMax: g.UVMax})
		x += g.AdvanceX
	}
	if len(c.glyphs) == 0 {
		return
	}
	c.list.WithTexture(c.font.Texture(), func() {
		c.list.TextRun(c.glyphs, col)
	})
}

// SetTooltip shows text next to the pointer at the end of this frame.
func (c *Context) SetTooltip(text string) { c.tooltip = text }

func (c *Context) drawTooltip() {
	if c.tooltip == "" {
		return
	}
	pad := c.style.WindowPadding
	size := c.MeasureText(c.tooltip).Add(pad.Scale(2))
	pos := c.in.MousePos().Add(draw.V(16, 8))
	if ds := c.in.DisplaySize(); ds.X > 0 && ds.Y > 0 {
		pos.X = min(pos.X, ds.X-size.X)
		pos.Y = min(pos.Y, ds.Y-size.Y)
	}
	r := draw.RectAt(pos, size)
	c.list.FilledRect(r, c.style.WindowRounding, c.style.col(c.style.Colors.PopupBg))
	c.list.RectOutline(r, 1, c.style.col(c.style.Colors.Border))
	c.drawText(c.tooltip, pos.Add(pad), c.style.col(c.style.Colors.Text))
}
