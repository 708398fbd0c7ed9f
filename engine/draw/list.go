// Package draw accumulates UI geometry into batched draw commands.
package draw

import "math"

// TextureID names a renderer texture. Zero is the renderer's 1x1 white
// texture, used by every untextured primitive.
type TextureID uint32

const WhiteTexture TextureID = 0

// MaxCommandVertices is the vertex budget of one command; indices are
// 16-bit and relative to Command.VtxOffset.
const MaxCommandVertices = math.MaxUint16 + 1

const (
	DefaultCornerSegments = 8
	DefaultCircleSegments = 24
	maxCircleSegments     = 512
	maxCornerSegments     = 128
)

// NoClip is the clip rect of commands issued outside any PushClipRect.
var NoClip = Rect{Min: Vec2{-1e9, -1e9}, Max: Vec2{1e9, 1e9}}

type Vertex struct {
	Pos Vec2
	UV  Vec2
	Col uint32 // 0xAABBGGRR
}

// Command is one draw call: ElemCount indices starting at IdxOffset, each
// offset by VtxOffset, drawn with Texture and scissored to ClipRect.
type Command struct {
	ClipRect  Rect
	Texture   TextureID
	ElemCount uint32
	IdxOffset uint32
	VtxOffset uint32
}

// GlyphQuad is one pre-positioned glyph of a text run.
type GlyphQuad struct {
	Min, Max     Vec2
	UVMin, UVMax Vec2
}

// List is the per-frame vertex, index and command buffer.
type List struct {
	Vertices []Vertex
	Indices  []uint16
	Commands []Command

	// CornerSegments is the arc resolution of rounded rectangles.
	CornerSegments int

	clipStack []Rect
	texStack  []TextureID
	vtxStart  uint32
}

func NewList() *List {
	return &List{
		Vertices:       make([]Vertex, 0, 1024),
		Indices:        make([]uint16, 0, 2048),
		Commands:       make([]Command, 0, 16),
		CornerSegments: DefaultCornerSegments,
		clipStack:      make([]Rect, 0, 8),
		texStack:       make([]TextureID, 0, 4),
	}
}

// Clear resets the list for a new frame, keeping capacity.
func (l *List) Clear() {
	l.Vertices = l.Vertices[:0]
	l.Indices = l.Indices[:0]
	l.Commands = l.Commands[:0]
	l.clipStack = l.clipStack[:0]
	l.texStack = l.texStack[:0]
	l.vtxStart = 0
}

// PushClipRect narrows the clip to r intersected with the current clip.
func (l *List) PushClipRect(r Rect) {
	l.clipStack = append(l.clipStack, r.Intersect(l.ClipRect()))
	l.addCommand()
}

func (l *List) PopClipRect() {
	if len(l.clipStack) == 0 {
		return
	}
	l.clipStack = l.clipStack[:len(l.clipStack)-1]
	l.addCommand()
}

func (l *List) PushTexture(t TextureID) {
	l.texStack = append(l.texStack, t)
	l.addCommand()
}

func (l *List) PopTexture() {
	if len(l.texStack) == 0 {
		return
	}
	l.texStack = l.texStack[:len(l.texStack)-1]
	l.addCommand()
}

// WithClipRect runs fn with r pushed.
func (l *List) WithClipRect(r Rect, fn func()) {
	l.PushClipRect(r)
	defer l.PopClipRect()
	fn()
}

// WithTexture runs fn with t pushed.
func (l *List) WithTexture(t TextureID, fn func()) {
	l.PushTexture(t)
	defer l.PopTexture()
	fn()
}

func (l *List) ClipRect() Rect {
	if n := len(l.clipStack); n > 0 {
		return l.clipStack[n-1]
	}
	return NoClip
}

func (l *List) Texture() TextureID {
	if n := len(l.texStack); n > 0 {
		return l.texStack[n-1]
	}
	return WhiteTexture
}

// ClipDepth and TextureDepth report stack sizes, for balance checks.
func (l *List) ClipDepth() int    { return len(l.clipStack) }
func (l *List) TextureDepth() int { return len(l.texStack) }

func (l *List) addCommand() {
	l.vtxStart = uint32(len(l.Vertices))
	l.Commands = append(l.Commands, Command{
		ClipRect:  l.ClipRect(),
		Texture:   l.Texture(),
		IdxOffset: uint32(len(l.Indices)),
		VtxOffset: l.vtxStart,
	})
}

// reserve makes room for n vertices in the current command and returns
// the command-local index of the first one.
func (l *List) reserve(n int) uint16 {
	if len(l.Commands) == 0 || len(l.Vertices)-int(l.vtxStart)+n > MaxCommandVertices {
		l.addCommand()
	}
	return uint16(len(l.Vertices) - int(l.vtxStart))
}

func (l *List) vtx(p, uv Vec2, col uint32) {
	l.Vertices = append(l.Vertices, Vertex{Pos: p, UV: uv, Col: col})
}

func (l *List) tri(a, b, c uint16) {
	l.Indices = append(l.Indices, a, b, c)
	l.Commands[len(l.Commands)-1].ElemCount += 3
}

func (l *List) quad(a, b, c, d, uvA, uvC Vec2, col uint32) {
	base := l.reserve(4)
	l.vtx(a, uvA, col)
	l.vtx(b, Vec2{uvC.X, uvA.Y}, col)
	l.vtx(c, uvC, col)
	l.vtx(d, Vec2{uvA.X, uvC.Y}, col)
	l.tri(base, base+1, base+2)
	l.tri(base, base+2, base+3)
}

func (l *List) rect(r Rect, col uint32) {
	l.quad(r.Min, Vec2{r.Max.X, r.Min.Y}, r.Max, Vec2{r.Min.X, r.Max.Y}, Vec2{}, Vec2{}, col)
}

func transparent(col uint32) bool { return col>>24 == 0 }

// FilledRect fills r; rounding below half a pixel draws a plain quad.
func (l *List) FilledRect(r Rect, rounding float32, col uint32) {
	if r.Empty() || transparent(col) {
		return
	}
	if rounding < 0.5 {
		l.rect(r, col)
		return
	}
	l.RoundedRect(r, rounding, col)
}

// RoundedRect fills r with corners of the given radius, clamped to half
// the shorter side.
func (l *List) RoundedRect(r Rect, rounding float32, col uint32) {
	if r.Empty() || transparent(col) {
		return
	}
	rounding = min(rounding, r.W()*0.5, r.H()*0.5)
	if rounding < 0.5 {
		l.rect(r, col)
		return
	}
	segs := min(max(1, l.CornerSegments), maxCornerSegments)
	corners := [4]Vec2{
		{r.Min.X + rounding, r.Min.Y + rounding},
		{r.Max.X - rounding, r.Min.Y + rounding},
		{r.Max.X - rounding, r.Max.Y - rounding},
		{r.Min.X + rounding, r.Max.Y - rounding},
	}
	starts := [4]float64{math.Pi, 1.5 * math.Pi, 0, 0.5 * math.Pi}

	ring := 4 * (segs + 1)
	base := l.reserve(1 + ring)
	l.vtx(r.Center(), Vec2{}, col)
	for ci, c := range corners {
		for s := 0; s <= segs; s++ {
			a := starts[ci] + 0.5*math.Pi*float64(s)/float64(segs)
			l.vtx(Vec2{c.X + float32(math.Cos(a))*rounding, c.Y + float32(math.Sin(a))*rounding}, Vec2{}, col)
		}
	}
	for i := 0; i < ring; i++ {
		next := (i+1)%ring + 1
		l.tri(base, base+uint16(i+1), base+uint16(next))
	}
}

// RectOutline strokes the inside of r with four non-overlapping bars.
func (l *List) RectOutline(r Rect, thickness float32, col uint32) {
	if r.Empty() || thickness <= 0 || transparent(col) {
		return
	}
	t := min(thickness, r.W()*0.5, r.H()*0.5)
	l.rect(Rect{r.Min, Vec2{r.Max.X, r.Min.Y + t}}, col)
	l.rect(Rect{Vec2{r.Min.X, r.Max.Y - t}, r.Max}, col)
	if r.H()-2*t > 0 {
		l.rect(Rect{Vec2{r.Min.X, r.Min.Y + t}, Vec2{r.Min.X + t, r.Max.Y - t}}, col)
		l.rect(Rect{Vec2{r.Max.X - t, r.Min.Y + t}, Vec2{r.Max.X, r.Max.Y - t}}, col)
	}
}

// Line draws a segment as a quad of the given thickness.
func (l *List) Line(a, b Vec2, thickness float32, col uint32) {
	d := b.Sub(a)
	length := float32(math.Hypot(float64(d.X), float64(d.Y)))
	if length < 0.01 || thickness <= 0 || transparent(col) {
		return
	}
	n := Vec2{-d.Y, d.X}.Scale(thickness * 0.5 / length)
	l.quad(a.Add(n), a.Sub(n), b.Sub(n), b.Add(n), Vec2{}, Vec2{}, col)
}

// FilledCircle fans a polygon of at least 6 segments. segments <= 0
// selects DefaultCircleSegments.
func (l *List) FilledCircle(center Vec2, radius float32, col uint32, segments int) {
	if radius <= 0 || transparent(col) {
		return
	}
	if segments <= 0 {
		segments = DefaultCircleSegments
	}
	segments = min(max(segments, 6), maxCircleSegments)

	base := l.reserve(1 + segments)
	l.vtx(center, Vec2{}, col)
	for i := 0; i < segments; i++ {
		a := 2 * math.Pi * float64(i) / float64(segments)
		l.vtx(Vec2{center.X + float32(math.Cos(a))*radius, center.Y + float32(math.Sin(a))*radius}, Vec2{}, col)
	}
	for i := 0; i < segments; i++ {
		l.tri(base, base+uint16(i+1), base+uint16((i+1)%segments+1))
	}
}

func (l *List) Triangle(a, b, c Vec2, col uint32) {
	cross := (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
	if abs32(cross) < 1e-6 || transparent(col) {
		return
	}
	base := l.reserve(3)
	l.vtx(a, Vec2{}, col)
	l.vtx(b, Vec2{}, col)
	l.vtx(c, Vec2{}, col)
	l.tri(base, base+1, base+2)
}

// TexturedQuad draws an image region with tex pushed for its duration.
func (l *List) TexturedQuad(tex TextureID, pMin, pMax, uvMin, uvMax Vec2, col uint32) {
	if (Rect{pMin, pMax}).Empty() || transparent(col) {
		return
	}
	l.WithTexture(tex, func() {
		l.quad(pMin, Vec2{pMax.X, pMin.Y}, pMax, Vec2{pMin.X, pMax.Y}, uvMin, uvMax, col)
	})
}

// TextRun emits one quad per glyph into the current command. The caller
// pushes the font texture.
func (l *List) TextRun(glyphs []GlyphQuad, col uint32) {
	if transparent(col) {
		return
	}
	for _, g := range glyphs {
		if (Rect{g.Min, g.Max}).Empty() {
			continue
		}
		l.quad(g.Min, Vec2{g.Max.X, g.Min.Y}, g.Max, Vec2{g.Min.X, g.Max.Y}, g.UVMin, g.UVMax, col)
	}
}

// Compact drops commands that received no geometry. Offsets of the
// remaining commands are unchanged. Call it once the frame is built.
func (l *List) Compact() {
	out := l.Commands[:0]
	for _, c := range l.Commands {
		if c.ElemCount > 0 {
			out = append(out, c)
		}
	}
	l.Commands = out
}
