package ui

import (
	"github.com/hubastard/imgrove/engine/colors"
	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/id"
)

var hsvParts = [3]struct {
	name   string
	format string
	speed  float32
	max    float32
}{
	{"#H", "H:%.0f", 1, 360},
	{"#S", "S:%.2f", 0.005, 1},
	{"#V", "V:%.2f", 0.005, 1},
}

// ColorEdit shows a swatch and three drag fields editing *col in HSV.
// Alpha is kept. The hue is remembered while saturation or value is zero.
func (c *Context) ColorEdit(label string, col *colors.Color) bool {
	text, wid := id.FromLabel(c.seed(), label)
	s := &c.style
	h := c.frameHeight()
	const gap = 4

	tw := c.MeasureText(text).X
	w := c.fieldWidth(tw, 3*minTrackWidth+h+3*gap)
	total := w
	if text != "" {
		total += s.ItemSpacing.X + tw
	}
	r := c.placeItem(draw.V(total, h))
	field := draw.RectAt(r.Min, draw.V(w, h))

	st := c.Storage(wid)
	hue, sat, val := col.HSV()
	if sat == 0 || val == 0 {
		hue = st.Floats[0]
	}
	comps := [3]*float32{&hue, &sat, &val}

	changed := false
	bw := (w - h - 3*gap) / 3
	x := r.Min.X + h + gap
	for i, part := range hsvParts {
		bid := id.Combine(wid, id.Hash(part.name))
		box := draw.RectAt(draw.V(x, r.Min.Y), draw.V(bw, h))
		if c.dragFloat(bid, box, comps[i], part.speed, 0, part.max) {
			changed = true
		}
		c.drawDragBox(bid, box, c.buf.Sprintf(part.format, *comps[i]))
		x += bw + gap
	}
	if changed {
		*col = colors.FromHSV(hue, sat, val, col[3])
	}
	st.Floats[0] = hue

	c.list.FilledRect(draw.RectAt(r.Min, draw.V(h, h)), s.FrameRounding, col.WithAlpha(1).Pack())
	c.list.RectOutline(draw.RectAt(r.Min, draw.V(h, h)), 1, s.col(s.Colors.Border))
	c.labelAfter(field, text)
	c.lastID = wid
	return changed
}
