package draw

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const white = 0xFFFFFFFF

// checkInvariants asserts that every command is a triangle list and that
// every corrected index addresses an existing vertex.
func checkInvariants(t *testing.T, l *List) {
	t.Helper()
	var total uint32
	for i, c := range l.Commands {
		require.Zero(t, c.ElemCount%3, "command %d", i)
		require.LessOrEqual(t, int(c.IdxOffset+c.ElemCount), len(l.Indices), "command %d", i)
		for _, idx := range l.Indices[c.IdxOffset : c.IdxOffset+c.ElemCount] {
			require.Less(t, int(c.VtxOffset)+int(idx), len(l.Vertices), "command %d", i)
		}
		total += c.ElemCount
	}
	require.Equal(t, len(l.Indices), int(total))
}

func TestTriangleInvariantRandomSequence(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	l := NewList()
	f := func() float32 { return rng.Float32() * 400 }

	for i := 0; i < 2000; i++ {
		switch rng.Intn(10) {
		case 0:
			l.FilledRect(XYWH(f(), f(), f(), f()), 0, white)
		case 1:
			l.RoundedRect(XYWH(f(), f(), f(), f()), f()/10, white)
		case 2:
			l.RectOutline(XYWH(f(), f(), f(), f()), 1+f()/100, white)
		case 3:
			l.Line(V(f(), f()), V(f(), f()), 2, white)
		case 4:
			l.FilledCircle(V(f(), f()), f()/10, white, rng.Intn(40))
		case 5:
			l.Triangle(V(f(), f()), V(f(), f()), V(f(), f()), white)
		case 6:
			l.TexturedQuad(3, V(0, 0), V(f(), f()), V(0, 0), V(1, 1), white)
		case 7:
			l.PushClipRect(XYWH(f(), f(), f(), f()))
		case 8:
			l.PopClipRect()
		case 9:
			l.TextRun([]GlyphQuad{{Min: V(0, 0), Max: V(7, 13), UVMax: V(0.1, 0.1)}}, white)
		}
	}
	checkInvariants(t, l)

	var tris uint32
	for _, c := range l.Commands {
		tris += c.ElemCount / 3
	}
	assert.Equal(t, l.Stats().TriangleCount(), int(tris))
}

func TestPushPopAlwaysStartsCommand(t *testing.T) {
	l := NewList()
	l.FilledRect(XYWH(0, 0, 10, 10), 0, white)
	require.Len(t, l.Commands, 1)

	l.PushClipRect(NoClip)
	assert.Len(t, l.Commands, 2)
	l.PopClipRect()
	assert.Len(t, l.Commands, 3)
	l.PushTexture(WhiteTexture)
	assert.Len(t, l.Commands, 4)
	l.PopTexture()
	assert.Len(t, l.Commands, 5)

	// Popping an empty stack is a no-op.
	l.PopTexture()
	l.PopClipRect()
	assert.Len(t, l.Commands, 5)
}

func TestClipIntersectsParent(t *testing.T) {
	l := NewList()
	l.PushClipRect(XYWH(0, 0, 100, 100))
	l.PushClipRect(XYWH(50, 50, 100, 100))
	assert.Equal(t, XYWH(50, 50, 50, 50), l.ClipRect())

	l.FilledRect(XYWH(0, 0, 10, 10), 0, white)
	last := l.Commands[len(l.Commands)-1]
	assert.Equal(t, XYWH(50, 50, 50, 50), last.ClipRect)

	// Disjoint clip collapses to empty, never grows.
	l.PushClipRect(XYWH(500, 500, 10, 10))
	assert.True(t, l.ClipRect().Empty())

	l.PopClipRect()
	l.PopClipRect()
	assert.Equal(t, XYWH(0, 0, 100, 100), l.ClipRect())
}

func TestTexturedQuadRestoresTexture(t *testing.T) {
	l := NewList()
	l.TexturedQuad(9, V(0, 0), V(10, 10), V(0, 0), V(1, 1), white)
	require.Len(t, l.Commands, 2)
	assert.Equal(t, TextureID(9), l.Commands[0].Texture)
	assert.Equal(t, uint32(6), l.Commands[0].ElemCount)
	assert.Equal(t, WhiteTexture, l.Commands[1].Texture)

	v := l.Vertices
	assert.Equal(t, V(1, 0), v[1].UV)
	assert.Equal(t, V(0, 1), v[3].UV)
}

func TestDegenerateGeometryIsSkipped(t *testing.T) {
	l := NewList()
	l.FilledRect(XYWH(10, 10, 0, 5), 0, white)
	l.FilledRect(XYWH(10, 10, -3, 5), 4, white)
	l.RectOutline(XYWH(0, 0, 10, 10), 0, white)
	l.Line(V(1, 1), V(1.001, 1), 2, white)
	l.FilledCircle(V(5, 5), 0, white, 12)
	l.Triangle(V(0, 0), V(1, 1), V(2, 2), white)
	l.FilledRect(XYWH(0, 0, 10, 10), 0, 0x00FFFFFF)

	assert.Empty(t, l.Vertices)
	assert.Empty(t, l.Indices)
}

func TestRoundingClampedToHalfShorterSide(t *testing.T) {
	l := NewList()
	r := XYWH(0, 0, 40, 10)
	l.RoundedRect(r, 100, white)
	checkInvariants(t, l)
	for _, v := range l.Vertices {
		assert.GreaterOrEqual(t, v.Pos.X, r.Min.X-1e-3)
		assert.LessOrEqual(t, v.Pos.X, r.Max.X+1e-3)
		assert.GreaterOrEqual(t, v.Pos.Y, r.Min.Y-1e-3)
		assert.LessOrEqual(t, v.Pos.Y, r.Max.Y+1e-3)
	}
}

func TestCornerSegmentsAreCapped(t *testing.T) {
	l := NewList()
	l.CornerSegments = 20000
	l.RoundedRect(XYWH(0, 0, 100, 100), 10, white)
	require.Len(t, l.Commands, 1)
	assert.Len(t, l.Vertices, 1+4*(maxCornerSegments+1))
	checkInvariants(t, l)
}

func TestCircleMinimumSegments(t *testing.T) {
	l := NewList()
	l.FilledCircle(V(0, 0), 10, white, 3)
	assert.Len(t, l.Vertices, 7)
	assert.Len(t, l.Indices, 18)
}

func TestCommandSplitsBeforeIndexOverflow(t *testing.T) {
	l := NewList()
	quads := MaxCommandVertices/4 + 10
	for i := 0; i < quads; i++ {
		l.FilledRect(XYWH(0, 0, 1, 1), 0, white)
	}
	require.Len(t, l.Commands, 2)
	assert.Equal(t, uint32(MaxCommandVertices), l.Commands[1].VtxOffset)
	checkInvariants(t, l)
}

func TestCompactAndStats(t *testing.T) {
	l := NewList()
	l.PushClipRect(XYWH(0, 0, 50, 50))
	l.FilledRect(XYWH(0, 0, 10, 10), 0, white)
	l.PopClipRect()
	l.TexturedQuad(4, V(0, 0), V(5, 5), V(0, 0), V(1, 1), white)

	s := l.Stats()
	assert.Equal(t, 2, s.DrawCalls)
	assert.Equal(t, 2, s.TextureCount)
	assert.Equal(t, 8, s.VertexCount)
	assert.Equal(t, 4, s.TriangleCount())

	l.Compact()
	assert.Len(t, l.Commands, 2)
	checkInvariants(t, l)

	l.Clear()
	assert.Empty(t, l.Commands)
	assert.Equal(t, NoClip, l.ClipRect())
}
