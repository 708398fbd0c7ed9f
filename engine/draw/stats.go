package draw

// Statistics captures the counts generated during a frame.
type Statistics struct {
	DrawCalls    int
	VertexCount  int
	IndexCount   int
	TextureCount int
}

// TriangleCount reports triangles submitted this frame.
func (s Statistics) TriangleCount() int { return s.IndexCount / 3 }

// Stats counts non-empty commands and the distinct textures they bind.
func (l *List) Stats() Statistics {
	s := Statistics{VertexCount: len(l.Vertices), IndexCount: len(l.Indices)}
	var seen [8]TextureID
	textures := seen[:0]
	for _, c := range l.Commands {
		if c.ElemCount == 0 {
			continue
		}
		s.DrawCalls++
		found := false
		for _, t := range textures {
			if t == c.Texture {
				found = true
				break
			}
		}
		if !found {
			textures = append(textures, c.Texture)
		}
	}
	s.TextureCount = len(textures)
	return s
}
