// Package text rasterizes fonts into a glyph atlas the UI core can lay
// out against.
package text

import (
	"fmt"
	"image"
	"io/fs"

	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/ui"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

const maxAtlasSize = 4096

// TextureCreator uploads the atlas. ui.Renderer satisfies it.
type TextureCreator interface {
	CreateTexture(w, h int, rgba []byte) (draw.TextureID, error)
}

type Options struct {
	// SizePx is the rasterized size. Other sizes are scaled from it.
	SizePx float32
	// Extra runes to rasterize beyond Latin-1.
	Extra []rune
	// Padding between glyphs in the atlas, in pixels.
	Padding int
}

func (o Options) withDefaults() Options {
	if o.SizePx <= 0 {
		o.SizePx = 13
	}
	if o.Padding <= 0 {
		o.Padding = 2
	}
	return o
}

type glyph struct {
	advance  float32
	bearingX float32
	bearingY float32 // baseline to glyph top
	w, h     int
	uv0, uv1 draw.Vec2
}

// Atlas is a single-size glyph atlas: white glyphs with alpha coverage.
type Atlas struct {
	sizePx  float32
	ascent  float32
	lineH   float32
	glyphs  map[rune]glyph
	texture draw.TextureID
	img     *image.RGBA
}

var _ ui.FontProvider = (*Atlas)(nil)

// Default rasterizes the Go Regular font.
func Default(tc TextureCreator, opt Options) (*Atlas, error) {
	return FromTTF(tc, goregular.TTF, opt)
}

// Basic wraps the built-in 7x13 bitmap face and needs no font file.
func Basic(tc TextureCreator) (*Atlas, error) {
	return FromFace(tc, basicfont.Face7x13, Options{SizePx: 13})
}

// Load reads a TrueType or OpenType file from fsys.
func Load(tc TextureCreator, fsys fs.FS, name string, opt Options) (*Atlas, error) {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return nil, fmt.Errorf("read font: %w", err)
	}
	return FromTTF(tc, data, opt)
}

func FromTTF(tc TextureCreator, ttf []byte, opt Options) (*Atlas, error) {
	opt = opt.withDefaults()
	ft, err := opentype.Parse(ttf)
	if err != nil {
		return nil, fmt.Errorf("parse font: %w", err)
	}
	face, err := opentype.NewFace(ft, &opentype.FaceOptions{
		Size: float64(opt.SizePx), DPI: 72, Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("new face: %w", err)
	}
	defer face.Close()
	return FromFace(tc, face, opt)
}

type measured struct {
	r      rune
	w, h   int
	adv    float32
	bx, by float32
}

// FromFace rasterizes Latin-1 plus opt.Extra from face.
func FromFace(tc TextureCreator, face font.Face, opt Options) (*Atlas, error) {
	opt = opt.withDefaults()

	m := face.Metrics()
	ascent := float32(m.Ascent.Ceil())
	lineH := max(float32(m.Height.Ceil()), ascent+float32(m.Descent.Ceil()))

	runes := make([]rune, 0, 224+len(opt.Extra))
	for r := rune(32); r <= 255; r++ {
		if r < 127 || r >= 160 {
			runes = append(runes, r)
		}
	}
	runes = append(runes, opt.Extra...)

	glyphs := make([]measured, 0, len(runes))
	for _, r := range runes {
		b, adv, ok := face.GlyphBounds(r)
		if !ok {
			continue
		}
		glyphs = append(glyphs, measured{
			r:   r,
			w:   (b.Max.X - b.Min.X).Ceil(),
			h:   (b.Max.Y - b.Min.Y).Ceil(),
			adv: float32(adv.Round()),
			bx:  float32(b.Min.X.Floor()),
			by:  float32(-b.Min.Y.Floor()),
		})
	}

	size, pos, err := pack(glyphs, opt.Padding)
	if err != nil {
		return nil, err
	}

	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	drawer := &font.Drawer{Dst: dst, Src: image.White, Face: face}

	a := &Atlas{
		sizePx: opt.SizePx,
		ascent: ascent,
		lineH:  lineH,
		glyphs: make(map[rune]glyph, len(glyphs)),
		img:    dst,
	}
	inv := 1 / float32(size)
	for _, g := range glyphs {
		out := glyph{advance: g.adv, bearingX: g.bx, bearingY: g.by, w: g.w, h: g.h}
		if p, ok := pos[g.r]; ok {
			// The drawer's dot sits on the baseline.
			drawer.Dot = fixed.P(p.X-int(g.bx), p.Y+int(g.by))
			drawer.DrawString(string(g.r))
			out.uv0 = draw.V(float32(p.X)*inv, float32(p.Y)*inv)
			out.uv1 = draw.V(float32(p.X+g.w)*inv, float32(p.Y+g.h)*inv)
		}
		a.glyphs[g.r] = out
	}

	tex, err := tc.CreateTexture(size, size, dst.Pix)
	if err != nil {
		return nil, fmt.Errorf("upload font atlas: %w", err)
	}
	a.texture = tex
	ui.Logger().Debug("text: atlas built", "glyphs", len(a.glyphs), "size", size)
	return a, nil
}

// pack places glyphs on shelves, doubling the square atlas from 128
// until everything fits. Empty glyphs get no slot.
func pack(glyphs []measured, padding int) (int, map[rune]image.Point, error) {
	for size := 128; size <= maxAtlasSize; size *= 2 {
		pos := make(map[rune]image.Point, len(glyphs))
		x, y, rowH := padding, padding, 0
		fits := true
		for _, g := range glyphs {
			if g.w == 0 || g.h == 0 {
				continue
			}
			if x+g.w+padding > size {
				x = padding
				y += rowH + padding
				rowH = 0
			}
			if g.w+2*padding > size || y+g.h+padding > size {
				fits = false
				break
			}
			pos[g.r] = image.Pt(x, y)
			x += g.w + padding
			rowH = max(rowH, g.h)
		}
		if fits {
			return size, pos, nil
		}
	}
	return 0, nil, fmt.Errorf("font atlas too large (>%d)", maxAtlasSize)
}

// Glyph scales the rasterized metrics of r to sizePx. Offset is relative
// to the top of the line.
func (a *Atlas) Glyph(r rune, sizePx float32) (ui.Glyph, bool) {
	g, ok := a.glyphs[r]
	if !ok {
		return ui.Glyph{}, false
	}
	s := sizePx / a.sizePx
	return ui.Glyph{
		UVMin:    g.uv0,
		UVMax:    g.uv1,
		Size:     draw.V(float32(g.w)*s, float32(g.h)*s),
		Offset:   draw.V(g.bearingX*s, (a.ascent-g.bearingY)*s),
		AdvanceX: g.advance * s,
	}, true
}

func (a *Atlas) Texture() draw.TextureID { return a.texture }

func (a *Atlas) LineHeight(sizePx float32) float32 { return a.lineH * sizePx / a.sizePx }

// SizePx is the size glyphs were rasterized at.
func (a *Atlas) SizePx() float32 { return a.sizePx }

// Image is the CPU copy of the atlas.
func (a *Atlas) Image() *image.RGBA { return a.img }
