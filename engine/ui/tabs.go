package ui

import (
	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/id"
)

type tabBar struct {
	id    id.ID
	row   draw.Rect
	x     float32
	index int
	state *Storage
}

// BeginTabBar reserves a row for tab headers. Each TabItem returns true
// for the selected tab; the first tab is selected until one is clicked.
// EndTabBar must follow when BeginTabBar returns true.
func (c *Context) BeginTabBar(label string) bool {
	s := &c.style
	bid := c.ID(label)
	row := c.placeItem(draw.V(c.AvailableWidth(), c.frameHeight()))
	c.list.Line(draw.V(row.Min.X, row.Max.Y), row.Max, 1, s.col(s.Colors.TabActive))

	c.idStack = append(c.idStack, bid)
	c.tabs = append(c.tabs, tabBar{id: bid, row: row, x: row.Min.X, state: c.Storage(bid)})
	return true
}

func (c *Context) TabItem(label string) bool {
	n := len(c.tabs)
	if n == 0 {
		c.assertf("ui: TabItem outside a tab bar")
		return false
	}
	bar := &c.tabs[n-1]
	s := &c.style

	text, wid := id.FromLabel(c.seed(), label)
	w := c.MeasureText(text).X + 2*s.FramePadding.X + 4
	r := draw.RectAt(draw.V(bar.x, bar.row.Min.Y), draw.V(w, bar.row.H()))
	bar.x += w + 2
	idx := bar.index
	bar.index++

	_, _, clicked := c.interact(wid, r)
	if clicked {
		bar.state.Ints[0] = idx
	}
	selected := bar.state.Ints[0] == idx

	col := s.Colors.Tab
	switch {
	case selected:
		col = s.Colors.TabActive
	case c.IsHot(wid):
		col = s.Colors.TabHovered
	}
	c.list.FilledRect(r, s.FrameRounding, s.col(col))
	c.drawText(text, draw.V(r.Min.X+s.FramePadding.X, r.Min.Y+(r.H()-c.lineHeight())*0.5), s.col(s.Colors.Text))
	return selected
}

func (c *Context) EndTabBar() {
	n := len(c.tabs)
	if n == 0 {
		c.assertf("ui: EndTabBar without BeginTabBar")
		return
	}
	bar := c.tabs[n-1]
	// A selection past the last tab falls back to the first.
	if bar.state.Ints[0] >= bar.index {
		bar.state.Ints[0] = 0
	}
	c.tabs = c.tabs[:n-1]
	c.PopID()
}
