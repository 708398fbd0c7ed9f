// Package gfx holds the backend-neutral math a renderer needs to submit a
// draw list: projection, scissor conversion and command validation.
package gfx

import (
	"fmt"
	"math"

	"github.com/hubastard/imgrove/engine/draw"
)

// Ortho returns a column-major orthographic projection.
func Ortho(l, r, b, t, n, f float32) [16]float32 {
	rl := 1 / (r - l)
	tb := 1 / (t - b)
	fn := 1 / (f - n)
	return [16]float32{
		2 * rl, 0, 0, 0,
		0, 2 * tb, 0, 0,
		0, 0, -2 * fn, 0,
		-(r + l) * rl, -(t + b) * tb, -(f + n) * fn, 1,
	}
}

// ScreenProjection maps display pixels, origin top-left and y down, to clip
// space.
func ScreenProjection(display draw.Vec2) [16]float32 {
	return Ortho(0, display.X, display.Y, 0, -1, 1)
}

// Scissor is a framebuffer rectangle with a bottom-left origin.
type Scissor struct {
	X, Y, W, H int32
}

// ScissorFor converts a clip rect in display pixels to a framebuffer scissor.
// scale is framebuffer pixels per display pixel and fbHeight the framebuffer
// height. ok is false when nothing of the rect is on screen.
func ScissorFor(clip draw.Rect, scale draw.Vec2, fbWidth, fbHeight int) (s Scissor, ok bool) {
	minX := max(clip.Min.X*scale.X, 0)
	minY := max(clip.Min.Y*scale.Y, 0)
	maxX := min(clip.Max.X*scale.X, float32(fbWidth))
	maxY := min(clip.Max.Y*scale.Y, float32(fbHeight))
	if maxX <= minX || maxY <= minY {
		return Scissor{}, false
	}
	x0 := int32(math.Floor(float64(minX)))
	y0 := int32(math.Floor(float64(minY)))
	x1 := int32(math.Ceil(float64(maxX)))
	y1 := int32(math.Ceil(float64(maxY)))
	return Scissor{X: x0, Y: int32(fbHeight) - y1, W: x1 - x0, H: y1 - y0}, true
}

// CheckCommand reports whether cmd only reads indices and vertices that
// exist in buffers of the given lengths.
func CheckCommand(cmd draw.Command, indices []uint16, numVertices int) error {
	end := uint64(cmd.IdxOffset) + uint64(cmd.ElemCount)
	if end > uint64(len(indices)) {
		return fmt.Errorf("index range [%d,%d) exceeds %d indices", cmd.IdxOffset, end, len(indices))
	}
	if cmd.ElemCount%3 != 0 {
		return fmt.Errorf("element count %d is not a multiple of 3", cmd.ElemCount)
	}
	for _, ix := range indices[cmd.IdxOffset:end] {
		if v := uint64(cmd.VtxOffset) + uint64(ix); v >= uint64(numVertices) {
			return fmt.Errorf("vertex %d out of range (%d vertices)", v, numVertices)
		}
	}
	return nil
}

// FramebufferScale is framebuffer pixels per display pixel; zero-sized
// displays scale by one.
func FramebufferScale(display draw.Vec2, fbWidth, fbHeight int) draw.Vec2 {
	if display.X <= 0 || display.Y <= 0 {
		return draw.V(1, 1)
	}
	return draw.V(float32(fbWidth)/display.X, float32(fbHeight)/display.Y)
}
