package ui

import (
	"fmt"
	"io"

	"github.com/hubastard/imgrove/engine/colors"
	"github.com/hubastard/imgrove/engine/draw"
	"gopkg.in/yaml.v3"
)

// Palette holds every color the built-in widgets draw with.
type Palette struct {
	WindowBg             colors.Color `yaml:"window_bg"`
	WindowBorder         colors.Color `yaml:"window_border"`
	TitleBar             colors.Color `yaml:"title_bar"`
	TitleBarActive       colors.Color `yaml:"title_bar_active"`
	TitleText            colors.Color `yaml:"title_text"`
	PopupBg              colors.Color `yaml:"popup_bg"`
	Border               colors.Color `yaml:"border"`
	FrameBg              colors.Color `yaml:"frame_bg"`
	FrameBgHovered       colors.Color `yaml:"frame_bg_hovered"`
	FrameBgActive        colors.Color `yaml:"frame_bg_active"`
	Text                 colors.Color `yaml:"text"`
	TextDisabled         colors.Color `yaml:"text_disabled"`
	Button               colors.Color `yaml:"button"`
	ButtonHovered        colors.Color `yaml:"button_hovered"`
	ButtonActive         colors.Color `yaml:"button_active"`
	CheckMark            colors.Color `yaml:"check_mark"`
	SliderGrab           colors.Color `yaml:"slider_grab"`
	SliderGrabActive     colors.Color `yaml:"slider_grab_active"`
	Header               colors.Color `yaml:"header"`
	HeaderHovered        colors.Color `yaml:"header_hovered"`
	HeaderActive         colors.Color `yaml:"header_active"`
	Separator            colors.Color `yaml:"separator"`
	Tab                  colors.Color `yaml:"tab"`
	TabHovered           colors.Color `yaml:"tab_hovered"`
	TabActive            colors.Color `yaml:"tab_active"`
	ScrollbarBg          colors.Color `yaml:"scrollbar_bg"`
	ScrollbarGrab        colors.Color `yaml:"scrollbar_grab"`
	ScrollbarGrabHovered colors.Color `yaml:"scrollbar_grab_hovered"`
	ScrollbarGrabActive  colors.Color `yaml:"scrollbar_grab_active"`
	ResizeGrip           colors.Color `yaml:"resize_grip"`
	ResizeGripHovered    colors.Color `yaml:"resize_grip_hovered"`
	ResizeGripActive     colors.Color `yaml:"resize_grip_active"`
	ProgressBar          colors.Color `yaml:"progress_bar"`
}

// Style is the sizing and palette used by windows and widgets.
type Style struct {
	WindowPadding  draw.Vec2 `yaml:"window_padding"`
	WindowRounding float32   `yaml:"window_rounding"`
	WindowMinSize  draw.Vec2 `yaml:"window_min_size"`
	TitleHeight    float32   `yaml:"title_height"`
	ItemSpacing    draw.Vec2 `yaml:"item_spacing"`
	FramePadding   draw.Vec2 `yaml:"frame_padding"`
	FrameRounding  float32   `yaml:"frame_rounding"`
	IndentSpacing  float32   `yaml:"indent_spacing"`
	ScrollbarSize  float32   `yaml:"scrollbar_size"`
	GrabMinSize    float32   `yaml:"grab_min_size"`
	FontSize       float32   `yaml:"font_size"`
	Alpha          float32   `yaml:"alpha"`
	Colors         Palette   `yaml:"colors"`
}

// DarkStyle is the default theme.
func DarkStyle() Style {
	return Style{
		WindowPadding:  draw.V(8, 8),
		WindowRounding: 4,
		WindowMinSize:  draw.V(80, 40),
		TitleHeight:    22,
		ItemSpacing:    draw.V(8, 4),
		FramePadding:   draw.V(4, 3),
		FrameRounding:  3,
		IndentSpacing:  21,
		ScrollbarSize:  14,
		GrabMinSize:    10,
		FontSize:       13,
		Alpha:          1,
		Colors: Palette{
			WindowBg:             colors.MustHex("#0f0f0f").WithAlpha(0.94),
			WindowBorder:         colors.MustHex("#404040"),
			TitleBar:             colors.MustHex("#1a1a2e"),
			TitleBarActive:       colors.MustHex("#16213e"),
			TitleText:            colors.White,
			PopupBg:              colors.MustHex("#0d0d0d").WithAlpha(0.95),
			Border:               colors.MustHex("#404040"),
			FrameBg:              colors.MustHex("#292929"),
			FrameBgHovered:       colors.MustHex("#3d3d3d"),
			FrameBgActive:        colors.MustHex("#1e6bb5"),
			Text:                 colors.MustHex("#e8e8e8"),
			TextDisabled:         colors.MustHex("#808080"),
			Button:               colors.MustHex("#1e6bb5").WithAlpha(0.9),
			ButtonHovered:        colors.MustHex("#3d8ed5"),
			ButtonActive:         colors.MustHex("#1753a0"),
			CheckMark:            colors.MustHex("#4db5ff"),
			SliderGrab:           colors.MustHex("#4db5ff"),
			SliderGrabActive:     colors.MustHex("#80caff"),
			Header:               colors.MustHex("#1e6bb5").WithAlpha(0.7),
			HeaderHovered:        colors.MustHex("#3d8ed5").WithAlpha(0.8),
			HeaderActive:         colors.MustHex("#1e6bb5"),
			Separator:            colors.MustHex("#404040"),
			Tab:                  colors.MustHex("#1a1a2e"),
			TabHovered:           colors.MustHex("#3d8ed5"),
			TabActive:            colors.MustHex("#1e6bb5"),
			ScrollbarBg:          colors.MustHex("#080808").WithAlpha(0.53),
			ScrollbarGrab:        colors.MustHex("#1f1f1f"),
			ScrollbarGrabHovered: colors.MustHex("#3a3a3a"),
			ScrollbarGrabActive:  colors.MustHex("#565656"),
			ResizeGrip:           colors.MustHex("#1e6bb5").WithAlpha(0.4),
			ResizeGripHovered:    colors.MustHex("#4db5ff").WithAlpha(0.6),
			ResizeGripActive:     colors.MustHex("#4db5ff").WithAlpha(0.9),
			ProgressBar:          colors.MustHex("#1e6bb5"),
		},
	}
}

func LightStyle() Style {
	s := DarkStyle()
	s.Colors.WindowBg = colors.MustHex("#f0f0f0")
	s.Colors.TitleBar = colors.MustHex("#4293d1")
	s.Colors.TitleBarActive = colors.MustHex("#2f7fbf")
	s.Colors.PopupBg = colors.MustHex("#ffffff").WithAlpha(0.98)
	s.Colors.Text = colors.Black
	s.Colors.TextDisabled = colors.MustHex("#a0a0a0")
	s.Colors.FrameBg = colors.MustHex("#dedede")
	s.Colors.FrameBgHovered = colors.MustHex("#c8c8c8")
	s.Colors.Button = colors.MustHex("#4293d1")
	s.Colors.Separator = colors.MustHex("#b0b0b0")
	return s
}

// LoadStyle decodes YAML over the dark defaults, so a file only needs to
// list the values it changes. A top-level "base: light" starts from the
// light theme instead.
func LoadStyle(r io.Reader) (Style, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return Style{}, fmt.Errorf("read style: %w", err)
	}
	var head struct {
		Base string `yaml:"base"`
	}
	if err := yaml.Unmarshal(raw, &head); err != nil {
		return Style{}, fmt.Errorf("decode style: %w", err)
	}

	var s Style
	switch head.Base {
	case "", "dark":
		s = DarkStyle()
	case "light":
		s = LightStyle()
	default:
		return Style{}, fmt.Errorf("decode style: unknown base %q", head.Base)
	}
	if err := yaml.Unmarshal(raw, &s); err != nil {
		return Style{}, fmt.Errorf("decode style: %w", err)
	}
	if s.FontSize <= 0 {
		return Style{}, fmt.Errorf("decode style: font_size must be positive, got %v", s.FontSize)
	}
	return s, nil
}

// col packs c with the style's global alpha applied.
func (s *Style) col(c colors.Color) uint32 {
	return c.WithAlpha(c[3] * s.Alpha).Pack()
}
