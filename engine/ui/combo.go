package ui

import (
	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/id"
	"github.com/hubastard/imgrove/engine/input"
)

// popupState is the one open dropdown of the frame. It is drawn after
// every window so it overlays them, and while the pointer is over it no
// window widget can be hovered.
type popupState struct {
	open    bool
	id      id.ID
	rect    draw.Rect
	items   []string
	current int
	hovered int
	itemH   float32
}

// Combo picks one of items into *current. A press outside the open list
// closes it.
func (c *Context) Combo(label string, current *int, items []string) bool {
	text, wid, box := c.labeledFrame(label, minInputWidth)
	_, _, clicked := c.interact(wid, box)
	st := c.Storage(wid)
	if clicked {
		st.Open = !st.Open
	}

	s := &c.style
	c.list.FilledRect(box, s.FrameRounding, s.col(c.pick(wid, s.Colors.FrameBg, s.Colors.FrameBgHovered, s.Colors.FrameBgActive)))
	c.list.RectOutline(box, 1, s.col(s.Colors.Border))
	arrow := draw.RectAt(draw.V(box.Max.X-box.H(), box.Min.Y), draw.V(box.H(), box.H()))
	c.drawArrow(arrow, true, s.col(s.Colors.Text))
	if *current >= 0 && *current < len(items) {
		c.list.WithClipRect(draw.Rect{Min: box.Min, Max: draw.V(arrow.Min.X, box.Max.Y)}, func() {
			c.drawText(items[*current], box.Min.Add(s.FramePadding), s.col(s.Colors.Text))
		})
	}
	c.labelAfter(box, text)

	if !st.Open || len(items) == 0 {
		return false
	}

	pad := s.FramePadding
	ih := c.lineHeight() + s.ItemSpacing.Y
	list := draw.RectAt(draw.V(box.Min.X, box.Max.Y+2), draw.V(box.W(), float32(len(items))*ih+2*pad.Y))
	mouse := c.in.MousePos()
	hovered := -1
	if list.Contains(mouse) {
		if i := int((mouse.Y - list.Min.Y - pad.Y) / ih); mouse.Y >= list.Min.Y+pad.Y && i < len(items) {
			hovered = i
		}
	}

	changed := false
	if c.in.MousePressed(input.MouseLeft) {
		switch {
		case hovered >= 0:
			changed = *current != hovered
			*current = hovered
			st.Open = false
			c.pressClaimed = true
		case list.Contains(mouse):
			c.pressClaimed = true
		case !box.Contains(mouse):
			st.Open = false
		}
	}
	if st.Open {
		c.popup = popupState{open: true, id: wid, rect: list, items: items, current: *current, hovered: hovered, itemH: ih}
	}
	return changed
}

func (c *Context) drawPopup() {
	p := &c.popup
	if !p.open {
		return
	}
	s := &c.style
	c.list.FilledRect(p.rect, s.FrameRounding, s.col(s.Colors.PopupBg))
	c.list.RectOutline(p.rect, 1, s.col(s.Colors.Border))
	top := p.rect.Min.Y + s.FramePadding.Y
	for i, item := range p.items {
		r := draw.Rect{
			Min: draw.V(p.rect.Min.X, top+float32(i)*p.itemH),
			Max: draw.V(p.rect.Max.X, top+float32(i+1)*p.itemH),
		}
		switch i {
		case p.current:
			c.list.FilledRect(r, 0, s.col(s.Colors.HeaderActive))
		case p.hovered:
			c.list.FilledRect(r, 0, s.col(s.Colors.HeaderHovered))
		}
		c.drawText(item, draw.V(r.Min.X+s.FramePadding.X, r.Min.Y+(p.itemH-c.lineHeight())*0.5), s.col(s.Colors.Text))
	}
}
