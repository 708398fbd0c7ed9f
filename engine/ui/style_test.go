package ui

import (
	"strings"
	"testing"

	"github.com/hubastard/imgrove/engine/colors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadStyle(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		check   func(t *testing.T, s Style)
		wantErr string
	}{
		{
			name: "empty keeps dark defaults",
			yaml: "",
			check: func(t *testing.T, s Style) {
				assert.Equal(t, DarkStyle(), s)
			},
		},
		{
			name: "overrides over dark",
			yaml: "font_size: 16\nitem_spacing: {x: 6, y: 2}\ncolors:\n  text: \"#ff0000\"\n",
			check: func(t *testing.T, s Style) {
				assert.Equal(t, float32(16), s.FontSize)
				assert.Equal(t, float32(6), s.ItemSpacing.X)
				assert.Equal(t, colors.Red, s.Colors.Text)
				assert.Equal(t, DarkStyle().Colors.Button, s.Colors.Button)
			},
		},
		{
			name: "light base",
			yaml: "base: light\nwindow_rounding: 0\n",
			check: func(t *testing.T, s Style) {
				assert.Equal(t, LightStyle().Colors.WindowBg, s.Colors.WindowBg)
				assert.Zero(t, s.WindowRounding)
			},
		},
		{name: "unknown base", yaml: "base: neon\n", wantErr: "unknown base"},
		{name: "bad color", yaml: "colors:\n  text: \"#zz\"\n", wantErr: "decode style"},
		{name: "zero font", yaml: "font_size: 0\n", wantErr: "font_size"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := LoadStyle(strings.NewReader(tt.yaml))
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			tt.check(t, s)
		})
	}
}

func TestStyleAlphaScalesColors(t *testing.T) {
	s := DarkStyle()
	s.Alpha = 0.5
	got := colors.Unpack(s.col(colors.White))
	assert.InDelta(t, 0.5, got[3], 1.0/255)
}
