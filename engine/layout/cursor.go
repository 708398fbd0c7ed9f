// Package layout implements the per-window placement cursor.
package layout

import "github.com/hubastard/imgrove/engine/draw"

// DefaultSameLineSpacing is used when SameLine is given a negative spacing.
const DefaultSameLineSpacing = 8

type Direction int

const (
	Vertical Direction = iota
	Horizontal
)

// Cursor advances an insertion point as widgets are placed. Vertical flow
// is the default; SameLine switches to horizontal for one placement.
type Cursor struct {
	pos     draw.Vec2
	start   draw.Vec2
	spacing draw.Vec2
	width   float32

	lineY      float32 // top of the current row
	lineHeight float32 // tallest item on the current row
	lastItem   draw.Rect
	indent     float32
	contentMax draw.Vec2
	dir        Direction
}

// New returns a cursor starting at start with width of content space.
func New(start draw.Vec2, width float32, spacing draw.Vec2) Cursor {
	return Cursor{
		pos:        start,
		start:      start,
		spacing:    spacing,
		width:      width,
		lineY:      start.Y,
		lastItem:   draw.Rect{Min: start, Max: start},
		contentMax: start,
	}
}

// Place reserves size at the insertion point and returns its top-left.
func (c *Cursor) Place(size draw.Vec2) draw.Vec2 {
	size = size.Max(draw.Vec2{})
	p := c.pos
	if c.dir == Horizontal {
		c.lineHeight = max(c.lineHeight, size.Y)
	} else {
		c.lineY = p.Y
		c.lineHeight = size.Y
	}

	c.lastItem = draw.RectAt(p, size)
	c.contentMax = c.contentMax.Max(c.lastItem.Max)

	c.pos = draw.Vec2{X: c.start.X + c.indent, Y: c.lineY + c.lineHeight + c.spacing.Y}
	c.dir = Vertical
	return p
}

// SameLine moves the cursor right of the last item on its row. Negative
// spacing selects DefaultSameLineSpacing.
func (c *Cursor) SameLine(spacing float32) {
	if spacing < 0 {
		spacing = DefaultSameLineSpacing
	}
	c.pos = draw.Vec2{X: c.lastItem.Max.X + spacing, Y: c.lineY}
	c.dir = Horizontal
}

// NewLine ends a pending same-line row, or inserts a blank row the
// height of the last one.
func (c *Cursor) NewLine() {
	if c.dir == Horizontal {
		c.pos = draw.Vec2{X: c.start.X + c.indent, Y: c.lineY + c.lineHeight + c.spacing.Y}
		c.dir = Vertical
		return
	}
	c.pos.X = c.start.X + c.indent
	c.pos.Y += c.lineHeight + c.spacing.Y
}

func (c *Cursor) Indent(n float32) {
	c.indent = max(0, c.indent+n)
	c.pos.X = c.start.X + c.indent
}

func (c *Cursor) Unindent(n float32) {
	c.indent = max(0, c.indent-n)
	c.pos.X = c.start.X + c.indent
}

// Dummy reserves space without emitting geometry.
func (c *Cursor) Dummy(size draw.Vec2) { c.Place(size) }

// AvailableWidth is the space left to the content edge, at least 1.
func (c *Cursor) AvailableWidth() float32 {
	return max(1, c.start.X+c.width-c.pos.X)
}

// ContentSize is the extent used so far, measured from the start point.
func (c *Cursor) ContentSize() draw.Vec2 { return c.contentMax.Sub(c.start) }

func (c *Cursor) Pos() draw.Vec2       { return c.pos }
func (c *Cursor) Start() draw.Vec2     { return c.start }
func (c *Cursor) LastItem() draw.Rect  { return c.lastItem }
func (c *Cursor) IndentWidth() float32 { return c.indent }
func (c *Cursor) Direction() Direction { return c.dir }
func (c *Cursor) Spacing() draw.Vec2   { return c.spacing }

// SetPos moves the insertion point directly. The row is restarted.
func (c *Cursor) SetPos(p draw.Vec2) {
	c.pos = p
	c.dir = Vertical
}
