package draw

type Vec2 struct {
	X float32 `yaml:"x"`
	Y float32 `yaml:"y"`
}

func V(x, y float32) Vec2 { return Vec2{X: x, Y: y} }

func (a Vec2) Add(b Vec2) Vec2      { return Vec2{a.X + b.X, a.Y + b.Y} }
func (a Vec2) Sub(b Vec2) Vec2      { return Vec2{a.X - b.X, a.Y - b.Y} }
func (a Vec2) Scale(s float32) Vec2 { return Vec2{a.X * s, a.Y * s} }
func (a Vec2) Max(b Vec2) Vec2      { return Vec2{max(a.X, b.X), max(a.Y, b.Y)} }
func (a Vec2) Min(b Vec2) Vec2      { return Vec2{min(a.X, b.X), min(a.Y, b.Y)} }
func (a Vec2) Eq(b Vec2, eps float32) bool {
	return abs32(a.X-b.X) <= eps && abs32(a.Y-b.Y) <= eps
}

// Rect is an axis-aligned box. Min is inclusive, Max exclusive.
type Rect struct {
	Min Vec2 `yaml:"min"`
	Max Vec2 `yaml:"max"`
}

// XYWH builds a rect from a corner and a size.
func XYWH(x, y, w, h float32) Rect {
	return Rect{Min: Vec2{x, y}, Max: Vec2{x + w, y + h}}
}

// RectAt builds a rect from a corner and a size vector.
func RectAt(pos, size Vec2) Rect { return Rect{Min: pos, Max: pos.Add(size)} }

func (r Rect) W() float32            { return r.Max.X - r.Min.X }
func (r Rect) H() float32            { return r.Max.Y - r.Min.Y }
func (r Rect) Size() Vec2            { return r.Max.Sub(r.Min) }
func (r Rect) Center() Vec2          { return Vec2{(r.Min.X + r.Max.X) * 0.5, (r.Min.Y + r.Max.Y) * 0.5} }
func (r Rect) Empty() bool           { return r.Max.X <= r.Min.X || r.Max.Y <= r.Min.Y }
func (r Rect) Translate(d Vec2) Rect { return Rect{r.Min.Add(d), r.Max.Add(d)} }

func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.Min.X && p.Y >= r.Min.Y && p.X < r.Max.X && p.Y < r.Max.Y
}

// Intersect returns the overlap of r and o. The result may be empty
// but never has negative size.
func (r Rect) Intersect(o Rect) Rect {
	out := Rect{Min: r.Min.Max(o.Min), Max: r.Max.Min(o.Max)}
	if out.Max.X < out.Min.X {
		out.Max.X = out.Min.X
	}
	if out.Max.Y < out.Min.Y {
		out.Max.Y = out.Min.Y
	}
	return out
}

// Expand grows r by d on every side (shrinks for negative d).
func (r Rect) Expand(d float32) Rect {
	return Rect{Vec2{r.Min.X - d, r.Min.Y - d}, Vec2{r.Max.X + d, r.Max.Y + d}}
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
