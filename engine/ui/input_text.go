package ui

import (
	"unicode/utf8"

	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/input"
)

const minInputWidth = 60

// InputText edits a single line. A press focuses the field; Enter or
// Escape drop focus, Backspace deletes the last rune, Ctrl+A clears.
func (c *Context) InputText(label string, buf *string) bool {
	text, wid, box := c.labeledFrame(label, minInputWidth)
	c.interact(wid, box)
	in := c.in

	changed := false
	focused := c.IsFocused(wid)
	if focused {
		switch {
		case in.Ctrl() && in.KeyPressed(input.KeyA):
			changed = *buf != ""
			*buf = ""
		case in.KeyPressed(input.KeyBackspace) && *buf != "":
			_, n := utf8.DecodeLastRuneInString(*buf)
			*buf = (*buf)[:len(*buf)-n]
			changed = true
		}
		if t := in.Text(); t != "" && !in.Ctrl() {
			*buf += t
			changed = true
		}
		if in.KeyPressed(input.KeyEnter) {
			c.ClearFocus()
		}
	}

	s := &c.style
	bg, border, thick := s.Colors.FrameBg, s.Colors.Border, float32(1)
	switch {
	case focused:
		bg, border, thick = s.Colors.FrameBgActive, s.Colors.SliderGrab, 2
	case c.IsHot(wid):
		bg = s.Colors.FrameBgHovered
	}
	c.list.FilledRect(box, s.FrameRounding, s.col(bg))
	c.list.RectOutline(box, thick, s.col(border))

	pad := s.FramePadding
	inner := box.Expand(-pad.X)
	tw := c.MeasureText(*buf).X
	// Keep the end of the text, and so the caret, in view.
	x := inner.Min.X - max(0, tw-inner.W())
	y := box.Min.Y + (box.H()-c.lineHeight())*0.5
	c.list.WithClipRect(box, func() {
		c.drawText(*buf, draw.V(x, y), s.col(s.Colors.Text))
		if focused && (in.FrameCount()/30)%2 == 0 {
			cx := x + tw
			c.list.Line(draw.V(cx, box.Min.Y+pad.Y), draw.V(cx, box.Max.Y-pad.Y), 1, s.col(s.Colors.Text))
		}
	})
	c.labelAfter(box, text)
	return changed
}
