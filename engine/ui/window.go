package ui

import (
	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/id"
	"github.com/hubastard/imgrove/engine/input"
	"github.com/hubastard/imgrove/engine/layout"
)

type WindowFlags uint32

const (
	WindowNoTitleBar WindowFlags = 1 << iota
	WindowNoResize
	WindowNoMove
	WindowNoScrollbar
	WindowNoBackground
	WindowNoCloseButton
	WindowNoCollapse
)

func (f WindowFlags) has(o WindowFlags) bool { return f&o != 0 }

const (
	resizeGripSize  = 10
	closeButtonSize = 14
	scrollLines     = 3
)

// WindowState persists across frames, keyed by the window's id.
type WindowState struct {
	ID          id.ID
	Title       string
	Pos         draw.Vec2
	Size        draw.Vec2
	Scroll      float32
	ContentSize draw.Vec2
	Collapsed   bool
	Flags       WindowFlags

	titleH float32
}

// Rect is the on-screen area, only the title bar when collapsed.
func (w *WindowState) Rect() draw.Rect {
	if w.Collapsed {
		return draw.RectAt(w.Pos, draw.V(w.Size.X, w.titleH))
	}
	return draw.RectAt(w.Pos, w.Size)
}

type windowFrame struct {
	id      id.ID
	state   *WindowState
	cursor  layout.Cursor
	idDepth int
	cmds    int
	clipped bool
}

// WindowID is the id a top-level window with this title is stored under.
func WindowID(title string) id.ID {
	_, wid := id.FromLabel(id.None, title)
	return wid
}

// Window looks up the persistent state of a window.
func (c *Context) Window(wid id.ID) (*WindowState, bool) {
	w, ok := c.windows[wid]
	return w, ok
}

// SetNextWindowPos places the next window begun this frame.
func (c *Context) SetNextWindowPos(p draw.Vec2) {
	c.nextPos = p
	c.hasNextPos = true
}

// SetWindowPos moves a window by title, creating its state if needed.
func (c *Context) SetWindowPos(title string, p draw.Vec2) {
	c.windowState(WindowID(title), title).Pos = p
}

func (c *Context) windowState(wid id.ID, title string) *WindowState {
	w, ok := c.windows[wid]
	if !ok {
		w = &WindowState{
			ID:   wid,
			Pos:  c.cfg.DefaultWindowPos,
			Size: c.cfg.DefaultWindowSize,
		}
		c.windows[wid] = w
	}
	w.Title, _ = id.SplitLabel(title)
	return w
}

// windowAt returns the frontmost window of the last frame under p.
func (c *Context) windowAt(p draw.Vec2) id.ID {
	for i := len(c.prevOrder) - 1; i >= 0; i-- {
		if w, ok := c.windows[c.prevOrder[i]]; ok && w.Rect().Contains(p) {
			return w.ID
		}
	}
	return id.None
}

// Begin opens a window and reports whether its content is visible. End
// must be called either way.
func (c *Context) Begin(title string, flags WindowFlags) bool {
	return c.begin(title, nil, flags)
}

// BeginClosable is Begin with a close button that clears *open.
func (c *Context) BeginClosable(title string, open *bool, flags WindowFlags) bool {
	return c.begin(title, open, flags)
}

// WithWindow runs fn inside Begin/End when the window content is visible.
func (c *Context) WithWindow(title string, flags WindowFlags, fn func()) {
	if c.Begin(title, flags) && fn != nil {
		fn()
	}
	c.End()
}

func (c *Context) begin(title string, open *bool, flags WindowFlags) bool {
	wid := WindowID(title)
	st := c.windowState(wid, title)
	st.Flags = flags
	st.titleH = c.titleHeight(flags)
	if c.hasNextPos {
		st.Pos = c.nextPos
		c.hasNextPos = false
	}
	c.windowStack = append(c.windowStack, windowFrame{
		id:      wid,
		state:   st,
		idDepth: len(c.idStack),
		cmds:    len(c.list.Commands),
	})
	c.idStack = append(c.idStack, wid)
	frame := &c.windowStack[len(c.windowStack)-1]

	// A closed window keeps its state but takes no hover and draws nothing.
	if open != nil && !*open {
		frame.cursor = layout.New(st.Pos, st.Size.X, c.style.ItemSpacing)
		return false
	}
	c.order = append(c.order, wid)

	c.windowInteract(st, open, flags)

	visible := open == nil || *open
	c.drawWindow(st, open, flags)

	st2 := c.style
	titleH := c.titleHeight(flags)
	content := draw.Rect{
		Min: st.Pos.Add(draw.V(st2.WindowPadding.X, titleH+st2.WindowPadding.Y)),
		Max: st.Pos.Add(st.Size).Sub(st2.WindowPadding),
	}
	if c.showScrollbar(st, flags) {
		content.Max.X -= st2.ScrollbarSize
	}
	frame.cursor = layout.New(content.Min.Sub(draw.V(0, st.Scroll)), content.W(), st2.ItemSpacing)

	if !visible || st.Collapsed {
		return false
	}
	c.list.PushClipRect(content.Expand(st2.WindowPadding.X * 0.5))
	frame.clipped = true
	return true
}

func (c *Context) titleHeight(flags WindowFlags) float32 {
	if flags.has(WindowNoTitleBar) {
		return 0
	}
	return c.style.TitleHeight
}

func (c *Context) viewHeight(st *WindowState) float32 {
	return st.Size.Y - c.titleHeight(st.Flags) - 2*c.style.WindowPadding.Y
}

func (c *Context) maxScroll(st *WindowState) float32 {
	return max(0, st.ContentSize.Y-c.viewHeight(st))
}

func (c *Context) showScrollbar(st *WindowState, flags WindowFlags) bool {
	return !flags.has(WindowNoScrollbar) && !st.Collapsed && c.maxScroll(st) > 0
}

func (c *Context) windowInteract(st *WindowState, open *bool, flags WindowFlags) {
	in := c.in
	titleH := c.titleHeight(flags)

	if titleH > 0 {
		// Buttons are hit-tested against the position the window had when
		// the frame began; the move lands after them.
		titleRect := draw.RectAt(st.Pos, draw.V(st.Size.X, titleH))
		arrow := draw.RectAt(st.Pos, draw.V(titleH, titleH))
		closeBtn := c.closeRect(st)
		hovered, held, _ := c.Behavior(id.Combine(st.ID, id.Hash("#MOVE")), titleRect)

		if !flags.has(WindowNoCollapse) {
			_, _, clicked := c.Behavior(id.Combine(st.ID, id.Hash("#COLLAPSE")), arrow)
			double := hovered && !arrow.Contains(in.MousePos()) && in.MouseDoubleClicked(input.MouseLeft)
			if clicked || double {
				st.Collapsed = !st.Collapsed
			}
		}

		if open != nil && !flags.has(WindowNoCloseButton) {
			_, _, clicked := c.Behavior(id.Combine(st.ID, id.Hash("#CLOSE")), closeBtn)
			if clicked {
				*open = false
			}
		}

		if held && !flags.has(WindowNoMove) {
			st.Pos = st.Pos.Add(c.DragDelta())
			if ds := in.DisplaySize(); ds.X > 0 && ds.Y > 0 {
				st.Pos.X = clamp(st.Pos.X, 0, max(0, ds.X-40))
				st.Pos.Y = clamp(st.Pos.Y, 0, max(0, ds.Y-40))
			}
		}
	}

	if st.Collapsed {
		return
	}

	if !flags.has(WindowNoResize) {
		grip := draw.RectAt(st.Pos.Add(st.Size).Sub(draw.V(resizeGripSize, resizeGripSize)), draw.V(resizeGripSize, resizeGripSize))
		_, held, _ := c.Behavior(id.Combine(st.ID, id.Hash("#RESIZE")), grip)
		if held {
			st.Size = st.Size.Add(c.DragDelta()).Max(c.style.WindowMinSize)
		}
	}

	body := draw.RectAt(st.Pos, st.Size)
	if w := in.Wheel(); w.Y != 0 && body.Contains(in.MousePos()) && c.windowAccepts() {
		st.Scroll -= w.Y * c.lineHeight() * scrollLines
	}

	if c.showScrollbar(st, flags) {
		track, grab := c.scrollbarRects(st)
		_, held, _ := c.Behavior(id.Combine(st.ID, id.Hash("#SCROLL")), grab)
		if held && track.H() > grab.H() {
			st.Scroll += c.DragDelta().Y * c.maxScroll(st) / (track.H() - grab.H())
		}
	}
	st.Scroll = clamp(st.Scroll, 0, c.maxScroll(st))
}

func (c *Context) closeRect(st *WindowState) draw.Rect {
	p := draw.V(st.Pos.X+st.Size.X-closeButtonSize-4, st.Pos.Y+(c.style.TitleHeight-closeButtonSize)*0.5)
	return draw.RectAt(p, draw.V(closeButtonSize, closeButtonSize))
}

func (c *Context) scrollbarRects(st *WindowState) (track, grab draw.Rect) {
	titleH := c.titleHeight(st.Flags)
	track = draw.Rect{
		Min: draw.V(st.Pos.X+st.Size.X-c.style.ScrollbarSize, st.Pos.Y+titleH),
		Max: draw.V(st.Pos.X+st.Size.X, st.Pos.Y+st.Size.Y-resizeGripSize),
	}
	view := c.viewHeight(st)
	total := view + c.maxScroll(st)
	h := max(c.style.GrabMinSize, track.H()*view/total)
	t := float32(0)
	if m := c.maxScroll(st); m > 0 {
		t = st.Scroll / m
	}
	y := track.Min.Y + t*(track.H()-h)
	grab = draw.Rect{Min: draw.V(track.Min.X+2, y), Max: draw.V(track.Max.X-2, y+h)}
	return track, grab
}

func (c *Context) drawWindow(st *WindowState, open *bool, flags WindowFlags) {
	s := &c.style
	l := c.list
	titleH := c.titleHeight(flags)

	if !flags.has(WindowNoBackground) {
		r := st.Rect()
		if st.Collapsed {
			r = draw.RectAt(st.Pos, draw.V(st.Size.X, titleH))
		}
		l.FilledRect(r, s.WindowRounding, s.col(s.Colors.WindowBg))
		l.RectOutline(r, 1, s.col(s.Colors.WindowBorder))
	}

	if titleH > 0 {
		bar := s.Colors.TitleBar
		if c.hoveredWin == st.ID || c.active == id.Combine(st.ID, id.Hash("#MOVE")) {
			bar = s.Colors.TitleBarActive
		}
		l.FilledRect(draw.RectAt(st.Pos, draw.V(st.Size.X, titleH)), s.WindowRounding, s.col(bar))

		x := st.Pos.X + s.WindowPadding.X
		if !flags.has(WindowNoCollapse) {
			c.drawArrow(draw.RectAt(st.Pos, draw.V(titleH, titleH)), !st.Collapsed, s.col(s.Colors.TitleText))
			x = st.Pos.X + titleH
		}
		if st.Title != "" {
			c.drawText(st.Title, draw.V(x, st.Pos.Y+(titleH-c.lineHeight())*0.5), s.col(s.Colors.TitleText))
		}
		if open != nil && !flags.has(WindowNoCloseButton) {
			r := c.closeRect(st)
			if c.IsHot(id.Combine(st.ID, id.Hash("#CLOSE"))) {
				l.FilledCircle(r.Center(), r.W()*0.5, s.col(s.Colors.ButtonHovered), 0)
			}
			in := r.Expand(-3)
			col := s.col(s.Colors.TitleText)
			l.Line(in.Min, in.Max, 1.5, col)
			l.Line(draw.V(in.Max.X, in.Min.Y), draw.V(in.Min.X, in.Max.Y), 1.5, col)
		}
	}

	if st.Collapsed {
		return
	}

	if c.showScrollbar(st, flags) {
		track, grab := c.scrollbarRects(st)
		scrollID := id.Combine(st.ID, id.Hash("#SCROLL"))
		l.FilledRect(track, 0, s.col(s.Colors.ScrollbarBg))
		l.FilledRect(grab, s.ScrollbarSize*0.5, s.col(c.pick(scrollID, s.Colors.ScrollbarGrab, s.Colors.ScrollbarGrabHovered, s.Colors.ScrollbarGrabActive)))
	}

	if !flags.has(WindowNoResize) {
		resizeID := id.Combine(st.ID, id.Hash("#RESIZE"))
		br := st.Pos.Add(st.Size)
		l.Triangle(
			draw.V(br.X, br.Y-resizeGripSize),
			br,
			draw.V(br.X-resizeGripSize, br.Y),
			s.col(c.pick(resizeID, s.Colors.ResizeGrip, s.Colors.ResizeGripHovered, s.Colors.ResizeGripActive)),
		)
	}
}

// End closes the innermost window and records its content extent.
func (c *Context) End() {
	n := len(c.windowStack)
	if n == 0 {
		c.assertf("ui: End without Begin")
		return
	}
	frame := &c.windowStack[n-1]
	if frame.clipped {
		c.list.PopClipRect()
		frame.state.ContentSize = frame.cursor.ContentSize()
	}

	if got := len(c.idStack); got != frame.idDepth+1 {
		c.assertf("ui: window %q ended with %d unpopped id scope(s)", frame.state.Title, got-frame.idDepth-1)
	}
	if len(c.idStack) > frame.idDepth {
		c.idStack = c.idStack[:frame.idDepth]
	}
	Logger().Debug("ui: window built", "title", frame.state.Title, "commands", len(c.list.Commands)-frame.cmds)
	c.windowStack = c.windowStack[:n-1]
}

// CurrentWindow is the state of the innermost open window, or nil.
func (c *Context) CurrentWindow() *WindowState {
	if n := len(c.windowStack); n > 0 {
		return c.windowStack[n-1].state
	}
	return nil
}

func clamp(v, lo, hi float32) float32 {
	return max(lo, min(v, hi))
}
