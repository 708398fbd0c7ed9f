package ui

import (
	"strings"

	"github.com/hubastard/imgrove/engine/colors"
	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/id"
)

// pick selects the active, hot or idle color of a widget.
func (c *Context) pick(wid id.ID, idle, hovered, active colors.Color) colors.Color {
	switch {
	case c.IsActive(wid):
		return active
	case c.IsHot(wid):
		return hovered
	}
	return idle
}

// interact registers wid as the last item and runs Behavior on r.
func (c *Context) interact(wid id.ID, r draw.Rect) (hovered, held, clicked bool) {
	c.lastID = wid
	return c.Behavior(wid, r)
}

// drawArrow fills a small triangle centered in r, pointing down when open
// and right otherwise.
func (c *Context) drawArrow(r draw.Rect, open bool, col uint32) {
	ctr := r.Center()
	s := r.H() * 0.25
	if open {
		c.list.Triangle(draw.V(ctr.X-s, ctr.Y-s*0.5), draw.V(ctr.X+s, ctr.Y-s*0.5), draw.V(ctr.X, ctr.Y+s*0.75), col)
		return
	}
	c.list.Triangle(draw.V(ctr.X-s*0.5, ctr.Y-s), draw.V(ctr.X+s*0.75, ctr.Y), draw.V(ctr.X-s*0.5, ctr.Y+s), col)
}

// labelAfter draws the display part of a label right of a frame.
func (c *Context) labelAfter(frame draw.Rect, text string) {
	if text == "" {
		return
	}
	p := draw.V(frame.Max.X+c.style.ItemSpacing.X, frame.Min.Y+(frame.H()-c.lineHeight())*0.5)
	c.drawText(text, p, c.style.col(c.style.Colors.Text))
}

// ----- text -----

func (c *Context) Text(s string) { c.text(s, c.style.Colors.Text) }

func (c *Context) TextColored(col colors.Color, s string) { c.text(s, col) }

func (c *Context) TextDisabled(s string) { c.text(s, c.style.Colors.TextDisabled) }

// Textf formats into the frame scratch buffer; see scratch.Buffer.Sprintf
// for the supported verbs.
func (c *Context) Textf(format string, args ...any) {
	c.text(c.buf.Sprintf(format, args...), c.style.Colors.Text)
}

func (c *Context) text(s string, col colors.Color) {
	r := c.placeItem(c.MeasureText(s))
	c.drawText(s, r.Min, c.style.col(col))
}

// TextWrapped breaks s at spaces to fit the available width.
func (c *Context) TextWrapped(s string) {
	width := c.AvailableWidth()
	lines := c.wrap(s, width)
	lh := c.lineHeight()
	var w float32
	for _, ln := range lines {
		w = max(w, c.MeasureText(ln).X)
	}
	r := c.placeItem(draw.V(w, lh*float32(len(lines))))
	col := c.style.col(c.style.Colors.Text)
	for i, ln := range lines {
		c.drawText(ln, draw.V(r.Min.X, r.Min.Y+lh*float32(i)), col)
	}
}

func (c *Context) wrap(s string, width float32) []string {
	var lines []string
	for _, para := range strings.Split(s, "\n") {
		words := strings.Fields(para)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		line := words[0]
		for _, w := range words[1:] {
			if next := line + " " + w; c.MeasureText(next).X <= width {
				line = next
				continue
			}
			lines = append(lines, line)
			line = w
		}
		lines = append(lines, line)
	}
	return lines
}

// ----- buttons -----

func (c *Context) Button(label string) bool {
	return c.button(label, draw.Vec2{}, c.style.FramePadding)
}

// ButtonSized is Button with an explicit size; zero components fit the
// label.
func (c *Context) ButtonSized(label string, size draw.Vec2) bool {
	return c.button(label, size, c.style.FramePadding)
}

// SmallButton has no vertical frame padding, for inline use in text.
func (c *Context) SmallButton(label string) bool {
	return c.button(label, draw.Vec2{}, draw.V(c.style.FramePadding.X, 0))
}

func (c *Context) button(label string, size, pad draw.Vec2) bool {
	text, wid := id.FromLabel(c.seed(), label)
	ts := c.MeasureText(text)
	if size.X <= 0 {
		size.X = ts.X + 2*pad.X
	}
	if size.Y <= 0 {
		size.Y = ts.Y + 2*pad.Y
	}
	r := c.placeItem(size)
	_, _, clicked := c.interact(wid, r)

	s := &c.style
	c.list.FilledRect(r, s.FrameRounding, s.col(c.pick(wid, s.Colors.Button, s.Colors.ButtonHovered, s.Colors.ButtonActive)))
	c.drawText(text, r.Center().Sub(ts.Scale(0.5)), s.col(s.Colors.Text))
	return clicked
}

// Checkbox toggles *v when clicked and reports whether it changed.
func (c *Context) Checkbox(label string, v *bool) bool {
	text, wid := id.FromLabel(c.seed(), label)
	s := &c.style
	box := c.frameHeight()
	w := box
	if text != "" {
		w += s.ItemSpacing.X + c.MeasureText(text).X
	}
	r := c.placeItem(draw.V(w, box))
	_, _, clicked := c.interact(wid, r)
	if clicked {
		*v = !*v
	}

	boxR := draw.RectAt(r.Min, draw.V(box, box))
	c.list.FilledRect(boxR, s.FrameRounding, s.col(c.pick(wid, s.Colors.FrameBg, s.Colors.FrameBgHovered, s.Colors.FrameBgActive)))
	if *v {
		c.list.FilledRect(boxR.Expand(-max(2, box/5)), s.FrameRounding*0.5, s.col(s.Colors.CheckMark))
	}
	c.labelAfter(boxR, text)
	return clicked
}

// ----- misc -----

// ProgressBar fills fraction of a bar. Zero size components take the
// available width and a frame height; an empty overlay shows a percentage.
func (c *Context) ProgressBar(fraction float32, size draw.Vec2, overlay string) {
	s := &c.style
	if size.X <= 0 {
		size.X = c.AvailableWidth()
	}
	if size.Y <= 0 {
		size.Y = c.frameHeight()
	}
	fraction = clamp(fraction, 0, 1)
	r := c.placeItem(size)
	c.list.FilledRect(r, s.FrameRounding, s.col(s.Colors.FrameBg))
	if fraction > 0 {
		fill := draw.Rect{Min: r.Min, Max: draw.V(r.Min.X+r.W()*fraction, r.Max.Y)}
		c.list.FilledRect(fill, s.FrameRounding, s.col(s.Colors.ProgressBar))
	}
	if overlay == "" {
		overlay = c.buf.Sprintf("%d%%", int(fraction*100+0.5))
	}
	ts := c.MeasureText(overlay)
	c.drawText(overlay, r.Center().Sub(ts.Scale(0.5)), s.col(s.Colors.Text))
}

// Image draws the whole of tex at size.
func (c *Context) Image(tex draw.TextureID, size draw.Vec2) {
	c.ImageUV(tex, size, draw.V(0, 0), draw.V(1, 1), colors.White)
}

func (c *Context) ImageUV(tex draw.TextureID, size, uvMin, uvMax draw.Vec2, tint colors.Color) {
	r := c.placeItem(size)
	c.list.TexturedQuad(tex, r.Min, r.Max, uvMin, uvMax, c.style.col(tint))
}

// CollapsingHeader is a full-width header whose open state persists.
func (c *Context) CollapsingHeader(label string) bool {
	text, wid := id.FromLabel(c.seed(), label)
	s := &c.style
	h := c.frameHeight()
	r := c.placeItem(draw.V(c.AvailableWidth(), h))
	_, _, clicked := c.interact(wid, r)
	st := c.Storage(wid)
	if clicked {
		st.Open = !st.Open
	}

	c.list.FilledRect(r, s.FrameRounding, s.col(c.pick(wid, s.Colors.Header, s.Colors.HeaderHovered, s.Colors.HeaderActive)))
	c.drawArrow(draw.RectAt(r.Min, draw.V(h, h)), st.Open, s.col(s.Colors.Text))
	c.drawText(text, draw.V(r.Min.X+h, r.Min.Y+s.FramePadding.Y), s.col(s.Colors.Text))
	return st.Open
}
