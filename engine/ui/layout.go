package ui

import (
	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/layout"
)

// cursor is the layout of the innermost window, or the background
// cursor outside any window.
func (c *Context) cursor() *layout.Cursor {
	if n := len(c.windowStack); n > 0 {
		return &c.windowStack[n-1].cursor
	}
	return &c.root
}

// placeItem reserves size at the cursor and makes it the last item.
func (c *Context) placeItem(size draw.Vec2) draw.Rect {
	p := c.cursor().Place(size)
	c.lastItem = draw.RectAt(p, size)
	return c.lastItem
}

// SameLine places the next widget to the right of the previous one.
func (c *Context) SameLine() { c.cursor().SameLine(-1) }

// SameLineSpacing is SameLine with an explicit gap.
func (c *Context) SameLineSpacing(spacing float32) { c.cursor().SameLine(spacing) }

func (c *Context) NewLine() { c.cursor().NewLine() }

func (c *Context) Indent()   { c.cursor().Indent(c.style.IndentSpacing) }
func (c *Context) Unindent() { c.cursor().Unindent(c.style.IndentSpacing) }

// Dummy reserves space without drawing.
func (c *Context) Dummy(size draw.Vec2) { c.placeItem(size) }

// Spacing inserts one item-spacing gap.
func (c *Context) Spacing() { c.Dummy(draw.V(0, c.style.ItemSpacing.Y)) }

// Separator draws a horizontal rule across the available width.
func (c *Context) Separator() {
	r := c.placeItem(draw.V(c.AvailableWidth(), 1))
	c.list.Line(r.Min, draw.V(r.Max.X, r.Min.Y), 1, c.style.col(c.style.Colors.Separator))
}

func (c *Context) AvailableWidth() float32 { return c.cursor().AvailableWidth() }

func (c *Context) CursorPos() draw.Vec2 { return c.cursor().Pos() }

func (c *Context) SetCursorPos(p draw.Vec2) { c.cursor().SetPos(p) }

// frameHeight is the height of a framed single-line widget.
func (c *Context) frameHeight() float32 {
	return c.lineHeight() + 2*c.style.FramePadding.Y
}

// fieldWidth splits the available width between a frame and its label
// drawn to the right, keeping the frame at least minW wide.
func (c *Context) fieldWidth(labelW, minW float32) float32 {
	if labelW > 0 {
		labelW += c.style.ItemSpacing.X
	}
	return max(minW, c.AvailableWidth()-labelW)
}
