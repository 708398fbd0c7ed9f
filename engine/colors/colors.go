package colors

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Color is straight-alpha RGBA in [0,1].
type Color [4]float32

var (
	White       = Color{1, 1, 1, 1}
	Red         = Color{1, 0, 0, 1}
	Green       = Color{0, 1, 0, 1}
	Blue        = Color{0, 0, 1, 1}
	Black       = Color{0, 0, 0, 1}
	Magenta     = Color{1, 0, 1, 1}
	Cyan        = Color{0, 1, 1, 1}
	Yellow      = Color{1, 1, 0, 1}
	Gray        = Color{0.5, 0.5, 0.5, 1}
	DarkGray    = Color{0.08, 0.10, 0.12, 1}
	Transparent = Color{}
)

func (c Color) WithAlpha(a float32) Color {
	c[3] = a
	return c
}

// Pack returns the color as 0xAABBGGRR, the vertex color layout.
func (c Color) Pack() uint32 {
	return uint32(to8(c[0])) | uint32(to8(c[1]))<<8 | uint32(to8(c[2]))<<16 | uint32(to8(c[3]))<<24
}

// Unpack is the inverse of Pack.
func Unpack(v uint32) Color {
	return Color{
		float32(v&0xFF) / 255,
		float32(v>>8&0xFF) / 255,
		float32(v>>16&0xFF) / 255,
		float32(v>>24&0xFF) / 255,
	}
}

func to8(f float32) uint8 {
	if f <= 0 {
		return 0
	}
	if f >= 1 {
		return 255
	}
	return uint8(f*255 + 0.5)
}

// Hex parses "#rgb", "#rrggbb" or "#rrggbbaa".
func Hex(s string) (Color, error) {
	s = strings.TrimSpace(s)
	alpha := float32(1)
	if len(s) == 9 && s[0] == '#' {
		var a uint8
		if _, err := fmt.Sscanf(s[7:], "%02x", &a); err != nil {
			return Color{}, fmt.Errorf("parse alpha %q: %w", s, err)
		}
		alpha = float32(a) / 255
		s = s[:7]
	}
	cf, err := colorful.Hex(s)
	if err != nil {
		return Color{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	cf = cf.Clamped()
	return Color{float32(cf.R), float32(cf.G), float32(cf.B), alpha}, nil
}

// MustHex is Hex for compile-time palettes.
func MustHex(s string) Color {
	c, err := Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// HexString formats c as "#rrggbb" or "#rrggbbaa" when not opaque.
func (c Color) HexString() string {
	h := c.colorful().Hex()
	if a := to8(c[3]); a != 255 {
		return fmt.Sprintf("%s%02x", h, a)
	}
	return h
}

// HSV returns hue in degrees and saturation/value in [0,1].
func (c Color) HSV() (h, s, v float32) {
	hh, ss, vv := c.colorful().Hsv()
	return float32(hh), float32(ss), float32(vv)
}

// FromHSV builds a color from hue in degrees and saturation/value in [0,1].
func FromHSV(h, s, v, a float32) Color {
	cf := colorful.Hsv(float64(h), float64(s), float64(v)).Clamped()
	return Color{float32(cf.R), float32(cf.G), float32(cf.B), a}
}

// Lerp blends toward o in linear RGB space.
func (c Color) Lerp(o Color, t float32) Color {
	cf := c.colorful().BlendLinearRgb(o.colorful(), float64(t)).Clamped()
	return Color{float32(cf.R), float32(cf.G), float32(cf.B), c[3] + (o[3]-c[3])*t}
}

func (c Color) colorful() colorful.Color {
	return colorful.Color{R: float64(c[0]), G: float64(c[1]), B: float64(c[2])}
}

// UnmarshalText lets palettes be written as hex strings in YAML.
func (c *Color) UnmarshalText(b []byte) error {
	v, err := Hex(string(b))
	if err != nil {
		return err
	}
	*c = v
	return nil
}

func (c Color) MarshalText() ([]byte, error) { return []byte(c.HexString()), nil }
