package ui

import (
	"math"

	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/id"
)

const minTrackWidth = 50

// labeledFrame places a framed track followed by the label text.
func (c *Context) labeledFrame(label string, minW float32) (text string, wid id.ID, track draw.Rect) {
	text, wid = id.FromLabel(c.seed(), label)
	tw := c.MeasureText(text).X
	w := c.fieldWidth(tw, minW)
	total := w
	if text != "" {
		total += c.style.ItemSpacing.X + tw
	}
	r := c.placeItem(draw.V(total, c.frameHeight()))
	return text, wid, draw.RectAt(r.Min, draw.V(w, r.H()))
}

// sliderT maps the pointer to [0,1] along track.
func (c *Context) sliderT(track draw.Rect) float32 {
	grab := c.style.GrabMinSize
	span := track.W() - grab
	if span <= 0 {
		return 0
	}
	return clamp((c.in.MousePos().X-track.Min.X-grab*0.5)/span, 0, 1)
}

func (c *Context) drawSlider(wid id.ID, track draw.Rect, t float32, value string) {
	s := &c.style
	c.list.FilledRect(track, s.FrameRounding, s.col(c.pick(wid, s.Colors.FrameBg, s.Colors.FrameBgHovered, s.Colors.FrameBgActive)))
	grab := s.GrabMinSize
	x := track.Min.X + clamp(t, 0, 1)*(track.W()-grab)
	g := draw.Rect{Min: draw.V(x, track.Min.Y+1), Max: draw.V(x+grab, track.Max.Y-1)}
	col := s.Colors.SliderGrab
	if c.IsActive(wid) {
		col = s.Colors.SliderGrabActive
	}
	c.list.FilledRect(g, s.FrameRounding, s.col(col))
	ts := c.MeasureText(value)
	c.drawText(value, track.Center().Sub(ts.Scale(0.5)), s.col(s.Colors.Text))
}

// SliderFloat edits *v in [lo, hi] by dragging along the track.
func (c *Context) SliderFloat(label string, v *float32, lo, hi float32) bool {
	text, wid, track := c.labeledFrame(label, minTrackWidth)
	_, held, _ := c.interact(wid, track)
	changed := false
	if held {
		nv := lo + c.sliderT(track)*(hi-lo)
		if nv != *v {
			*v = nv
			changed = true
		}
	}
	var t float32
	if hi != lo {
		t = (*v - lo) / (hi - lo)
	}
	c.drawSlider(wid, track, t, c.buf.Sprintf("%.3f", *v))
	c.labelAfter(track, text)
	return changed
}

// SliderInt is SliderFloat snapped to whole numbers.
func (c *Context) SliderInt(label string, v *int, lo, hi int) bool {
	text, wid, track := c.labeledFrame(label, minTrackWidth)
	_, held, _ := c.interact(wid, track)
	changed := false
	if held {
		nv := lo + int(math.Round(float64(c.sliderT(track)*float32(hi-lo))))
		if nv != *v {
			*v = nv
			changed = true
		}
	}
	var t float32
	if hi != lo {
		t = float32(*v-lo) / float32(hi-lo)
	}
	c.drawSlider(wid, track, t, c.buf.Sprintf("%d", *v))
	c.labelAfter(track, text)
	return changed
}

func (c *Context) drawDragBox(wid id.ID, box draw.Rect, value string) {
	s := &c.style
	c.list.FilledRect(box, s.FrameRounding, s.col(c.pick(wid, s.Colors.FrameBg, s.Colors.FrameBgHovered, s.Colors.FrameBgActive)))
	c.list.RectOutline(box, 1, s.col(s.Colors.Border))
	ts := c.MeasureText(value)
	c.drawText(value, box.Center().Sub(ts.Scale(0.5)), s.col(s.Colors.Text))
}

// DragFloat changes *v by speed per pixel of horizontal drag. When
// lo < hi the value is clamped to that range.
func (c *Context) DragFloat(label string, v *float32, speed, lo, hi float32) bool {
	text, wid, box := c.labeledFrame(label, minTrackWidth)
	changed := c.dragFloat(wid, box, v, speed, lo, hi)
	c.drawDragBox(wid, box, c.buf.Sprintf("%.3f", *v))
	c.labelAfter(box, text)
	return changed
}

func (c *Context) dragFloat(wid id.ID, box draw.Rect, v *float32, speed, lo, hi float32) bool {
	_, held, _ := c.interact(wid, box)
	if !held {
		return false
	}
	d := c.DragDelta().X * speed
	if d == 0 {
		return false
	}
	nv := *v + d
	if lo < hi {
		nv = clamp(nv, lo, hi)
	}
	if nv == *v {
		return false
	}
	*v = nv
	return true
}

// DragInt is DragFloat on an int; sub-unit motion accumulates across
// frames in the widget's storage.
func (c *Context) DragInt(label string, v *int, speed float32, lo, hi int) bool {
	text, wid, box := c.labeledFrame(label, minTrackWidth)
	_, held, _ := c.interact(wid, box)
	st := c.Storage(wid)
	changed := false
	if !held {
		st.Floats[0] = 0
	} else {
		st.Floats[0] += c.DragDelta().X * speed
		if step := int(st.Floats[0]); step != 0 {
			st.Floats[0] -= float32(step)
			nv := *v + step
			if lo < hi {
				nv = max(lo, min(nv, hi))
			}
			changed = nv != *v
			*v = nv
		}
	}
	c.drawDragBox(wid, box, c.buf.Sprintf("%d", *v))
	c.labelAfter(box, text)
	return changed
}
