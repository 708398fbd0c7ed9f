package ui

import "github.com/hubastard/imgrove/engine/draw"

// DrawData is a finished frame. It borrows the context's draw list and is
// valid until the next BeginFrame.
type DrawData struct {
	List        *draw.List
	DisplaySize draw.Vec2
	Scale       float32
}

// Renderer turns draw data into pixels. Implementations must bound-check
// every command's index range against the buffers they are given.
type Renderer interface {
	Render(dd *DrawData)
	CreateTexture(w, h int, rgba []byte) (draw.TextureID, error)
	DestroyTexture(t draw.TextureID)
}

// Glyph is the layout metrics of one rasterized code point. Offset is the
// quad's top-left relative to the pen at the top of the line.
type Glyph struct {
	UVMin, UVMax draw.Vec2
	Size         draw.Vec2
	Offset       draw.Vec2
	AdvanceX     float32
}

// FontProvider supplies glyph metrics for layout. The core never
// rasterizes; it only positions quads over Texture.
type FontProvider interface {
	Glyph(r rune, sizePx float32) (Glyph, bool)
	Texture() draw.TextureID
	LineHeight(sizePx float32) float32
}
