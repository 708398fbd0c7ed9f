package main

import (
	"image"
	"image/color"
	"os"
	"path/filepath"

	"github.com/hubastard/imgrove/engine/assets"
	"github.com/hubastard/imgrove/engine/colors"
	"github.com/hubastard/imgrove/engine/core"
	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/input"
	"github.com/hubastard/imgrove/engine/profiler"
	"github.com/hubastard/imgrove/engine/ui"
)

var themes = []string{"Dark", "Light"}

// LayerDemo shows every widget in one closable window.
type LayerDemo struct {
	imagePath string
	tex       draw.TextureID
	texSize   draw.Vec2

	open     bool
	clicks   int
	enabled  bool
	speed    float32
	count    int
	offset   float32
	steps    int
	name     string
	theme    int
	tint     colors.Color
	progress float32
	t        float64
}

func (l *LayerDemo) OnAttach(e *core.Engine) {
	l.open = true
	l.enabled = true
	l.speed = 0.5
	l.count = 3
	l.name = "grove"
	l.tint = colors.White

	w, h, pixels, err := l.loadImage()
	if err != nil {
		ui.Logger().Warn("demo: image not loaded", "err", err)
		return
	}
	l.tex, err = e.Renderer.CreateTexture(w, h, pixels)
	if err != nil {
		ui.Logger().Warn("demo: texture upload failed", "err", err)
		return
	}
	l.texSize = draw.V(float32(w), float32(h))
}

func (l *LayerDemo) loadImage() (int, int, []byte, error) {
	if l.imagePath != "" {
		return assets.LoadPNG(os.DirFS(filepath.Dir(l.imagePath)), filepath.Base(l.imagePath))
	}
	w, h, pix := assets.Pixels(checkerboard(64, 8))
	return w, h, pix, nil
}

func checkerboard(size, cell int) image.Image {
	img := image.NewNRGBA(image.Rect(0, 0, size, size))
	light := color.NRGBA{R: 200, G: 200, B: 200, A: 255}
	dark := color.NRGBA{R: 60, G: 60, B: 70, A: 255}
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/cell+y/cell)%2 == 0 {
				img.SetNRGBA(x, y, light)
			} else {
				img.SetNRGBA(x, y, dark)
			}
		}
	}
	return img
}

func (l *LayerDemo) OnDetach(e *core.Engine) {
	if l.tex != draw.WhiteTexture {
		e.Renderer.DestroyTexture(l.tex)
	}
}

func (l *LayerDemo) OnUpdate(e *core.Engine, dt float64) {
	l.t += dt
	l.progress = float32(l.t/4) - float32(int(l.t/4))
}

func (l *LayerDemo) OnGUI(e *core.Engine, c *ui.Context) {
	defer profiler.Start("LayerDemo.OnGUI")()

	if !l.open {
		c.SetNextWindowPos(draw.V(20, 20))
		if c.Begin("Reopen", ui.WindowNoResize|ui.WindowNoCollapse) {
			if c.Button("Show demo") {
				l.open = true
			}
		}
		c.End()
		return
	}

	visible := c.BeginClosable("Widgets", &l.open, 0)
	defer c.End()
	if !visible {
		return
	}

	if c.BeginTabBar("sections") {
		if c.TabItem("Basics") {
			l.basics(c)
		}
		if c.TabItem("Values") {
			l.values(c)
		}
		if c.TabItem("Image") {
			l.image(c)
		}
		c.EndTabBar()
	}
}

func (l *LayerDemo) basics(c *ui.Context) {
	if c.Button("Click me") {
		l.clicks++
	}
	if c.IsItemHovered() {
		c.SetTooltip("Counts clicks")
	}
	c.SameLine()
	c.Textf("%d clicks", l.clicks)

	c.Checkbox("Enabled", &l.enabled)
	if c.Combo("Theme", &l.theme, themes) {
		if l.theme == 1 {
			c.SetStyle(ui.LightStyle())
		} else {
			c.SetStyle(ui.DarkStyle())
		}
	}
	c.InputText("Name", &l.name)
	c.Separator()
	c.TextWrapped("Widgets are plain function calls; their state lives in your variables. " +
		"Drag the title bar to move this window and the corner grip to resize it.")
	c.ProgressBar(l.progress, draw.Vec2{}, "")
}

func (l *LayerDemo) values(c *ui.Context) {
	pop := c.PushStyle(func(s *ui.Style) {
		if !l.enabled {
			s.Alpha = 0.5
		}
	})
	defer pop()

	c.SliderFloat("Speed", &l.speed, 0, 1)
	c.SliderInt("Count", &l.count, 0, 10)
	c.DragFloat("Offset", &l.offset, 0.1, 0, 0)
	c.DragInt("Steps##drag", &l.steps, 0.2, -100, 100)
	if c.CollapsingHeader("Rows") {
		c.Indent()
		for i := range l.count {
			popRow := c.PushIntID(i)
			c.Textf("Row %d", i)
			c.SameLine()
			if c.SmallButton("x") && l.count > 0 {
				l.count--
			}
			popRow()
		}
		c.Unindent()
	}
}

func (l *LayerDemo) image(c *ui.Context) {
	c.ColorEdit("Tint", &l.tint)
	if l.texSize.X == 0 {
		c.TextDisabled("no image")
		return
	}
	size := l.texSize
	if avail := c.AvailableWidth(); size.X > avail {
		size = size.Scale(avail / size.X)
	}
	c.ImageUV(l.tex, size, draw.V(0, 0), draw.V(1, 1), l.tint)
}

func (l *LayerDemo) OnEvent(e *core.Engine, ev input.Event) bool { return false }
