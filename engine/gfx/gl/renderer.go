package glbackend

import (
	"embed"
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/hubastard/imgrove/engine/assets"
	"github.com/hubastard/imgrove/engine/colors"
	"github.com/hubastard/imgrove/engine/draw"
	"github.com/hubastard/imgrove/engine/gfx"
	"github.com/hubastard/imgrove/engine/profiler"
	"github.com/hubastard/imgrove/engine/ui"
)

//go:embed shaders
var shaderFS embed.FS

const (
	vertexSize = int(unsafe.Sizeof(draw.Vertex{}))
	indexSize  = 2
)

// Framebuffer reports the drawable size in pixels.
type Framebuffer interface {
	FramebufferSize() (int, int)
}

// RendererGL draws ui draw lists with an OpenGL 3.3 core context, which
// must be current on the calling thread.
type RendererGL struct {
	fb      Framebuffer
	program uint32
	vao     uint32
	vbo     uint32
	ebo     uint32
	uProj   int32
	uTex    int32

	textures map[draw.TextureID]uint32
	nextTex  draw.TextureID
	stats    draw.Statistics
}

var _ ui.Renderer = (*RendererGL)(nil)

func NewRendererGL(fb Framebuffer) (*RendererGL, error) {
	r := &RendererGL{fb: fb, textures: map[draw.TextureID]uint32{}, nextTex: draw.WhiteTexture + 1}
	if err := r.Init(); err != nil {
		r.Shutdown()
		return nil, err
	}
	return r, nil
}

func (r *RendererGL) Init() error {
	vs, err := assets.LoadShader(shaderFS, "shaders/ui.vert")
	if err != nil {
		return err
	}
	fs, err := assets.LoadShader(shaderFS, "shaders/ui.frag")
	if err != nil {
		return err
	}
	r.program, err = makeProgram(vs, fs)
	if err != nil {
		return err
	}
	r.uProj = gl.GetUniformLocation(r.program, gl.Str("uProj\x00"))
	r.uTex = gl.GetUniformLocation(r.program, gl.Str("uTex\x00"))

	gl.GenVertexArrays(1, &r.vao)
	gl.BindVertexArray(r.vao)
	gl.GenBuffers(1, &r.vbo)
	gl.GenBuffers(1, &r.ebo)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)

	// layout(location = 0) in vec2 aPos;
	// layout(location = 1) in vec2 aUV;
	// layout(location = 2) in vec4 aColor;  packed 0xAABBGGRR
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(int(unsafe.Offsetof(draw.Vertex{}.Pos))))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(1, 2, gl.FLOAT, false, int32(vertexSize), gl.PtrOffset(int(unsafe.Offsetof(draw.Vertex{}.UV))))
	gl.EnableVertexAttribArray(2)
	gl.VertexAttribPointer(2, 4, gl.UNSIGNED_BYTE, true, int32(vertexSize), gl.PtrOffset(int(unsafe.Offsetof(draw.Vertex{}.Col))))

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	white, err := uploadTexture(1, 1, []byte{255, 255, 255, 255})
	if err != nil {
		return err
	}
	r.textures[draw.WhiteTexture] = white
	return nil
}

func (r *RendererGL) Shutdown() {
	for id, tex := range r.textures {
		gl.DeleteTextures(1, &tex)
		delete(r.textures, id)
	}
	if r.ebo != 0 {
		gl.DeleteBuffers(1, &r.ebo)
	}
	if r.vbo != 0 {
		gl.DeleteBuffers(1, &r.vbo)
	}
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

func (r *RendererGL) Resize(w, h int) {
	gl.Viewport(0, 0, int32(w), int32(h))
}

func (r *RendererGL) Clear(c colors.Color) {
	gl.ClearColor(c[0], c[1], c[2], c[3])
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// Stats returns the counts of the last rendered frame.
func (r *RendererGL) Stats() draw.Statistics { return r.stats }

func (r *RendererGL) GPUVendor() string   { return gl.GoStr(gl.GetString(gl.VENDOR)) }
func (r *RendererGL) GPURenderer() string { return gl.GoStr(gl.GetString(gl.RENDERER)) }
func (r *RendererGL) GPUVersion() string  { return gl.GoStr(gl.GetString(gl.VERSION)) }

// CreateTexture uploads an RGBA8 image with linear filtering.
func (r *RendererGL) CreateTexture(w, h int, rgba []byte) (draw.TextureID, error) {
	tex, err := uploadTexture(w, h, rgba)
	if err != nil {
		return 0, err
	}
	id := r.nextTex
	r.nextTex++
	r.textures[id] = tex
	ui.Logger().Debug("gl: texture created", "id", id, "w", w, "h", h)
	return id, nil
}

// DestroyTexture frees t. The white texture and unknown ids are ignored.
func (r *RendererGL) DestroyTexture(t draw.TextureID) {
	tex, ok := r.textures[t]
	if !ok || t == draw.WhiteTexture {
		return
	}
	gl.DeleteTextures(1, &tex)
	delete(r.textures, t)
}

func uploadTexture(w, h int, rgba []byte) (uint32, error) {
	if w <= 0 || h <= 0 || len(rgba) != w*h*4 {
		return 0, fmt.Errorf("texture %dx%d: want %d bytes of RGBA, got %d", w, h, w*h*4, len(rgba))
	}
	var tex uint32
	gl.GenTextures(1, &tex)
	gl.BindTexture(gl.TEXTURE_2D, tex)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.CLAMP_TO_EDGE)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.CLAMP_TO_EDGE)
	gl.PixelStorei(gl.UNPACK_ALIGNMENT, 1)
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA8, int32(w), int32(h), 0, gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(rgba))
	gl.BindTexture(gl.TEXTURE_2D, 0)
	if e := gl.GetError(); e != gl.NO_ERROR {
		gl.DeleteTextures(1, &tex)
		return 0, fmt.Errorf("upload texture: gl error 0x%x", e)
	}
	return tex, nil
}

// Render submits every command of dd with its scissor and texture. Commands
// whose ranges fall outside the buffers are skipped with a warning.
func (r *RendererGL) Render(dd *ui.DrawData) {
	defer profiler.Start("RendererGL.Render")()
	r.stats = draw.Statistics{}
	if dd == nil || dd.List == nil || len(dd.List.Vertices) == 0 || len(dd.List.Indices) == 0 {
		return
	}
	fbW, fbH := r.fb.FramebufferSize()
	if fbW <= 0 || fbH <= 0 {
		return
	}
	l := dd.List
	scale := gfx.FramebufferScale(dd.DisplaySize, fbW, fbH)
	proj := gfx.ScreenProjection(dd.DisplaySize)

	gl.Viewport(0, 0, int32(fbW), int32(fbH))
	gl.Enable(gl.BLEND)
	gl.BlendEquation(gl.FUNC_ADD)
	gl.BlendFuncSeparate(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA, gl.ONE, gl.ONE_MINUS_SRC_ALPHA)
	gl.Disable(gl.CULL_FACE)
	gl.Disable(gl.DEPTH_TEST)
	gl.Enable(gl.SCISSOR_TEST)

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.uProj, 1, false, &proj[0])
	gl.Uniform1i(r.uTex, 0)
	gl.ActiveTexture(gl.TEXTURE0)

	gl.BindVertexArray(r.vao)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(l.Vertices)*vertexSize, gl.Ptr(&l.Vertices[0]), gl.STREAM_DRAW)
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, r.ebo)
	gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(l.Indices)*indexSize, gl.Ptr(&l.Indices[0]), gl.STREAM_DRAW)

	for i, cmd := range l.Commands {
		if cmd.ElemCount == 0 {
			continue
		}
		if err := gfx.CheckCommand(cmd, l.Indices, len(l.Vertices)); err != nil {
			ui.Logger().Warn("gl: dropped draw command", "index", i, "err", err)
			continue
		}
		sc, ok := gfx.ScissorFor(cmd.ClipRect, scale, fbW, fbH)
		if !ok {
			continue
		}
		gl.Scissor(sc.X, sc.Y, sc.W, sc.H)
		gl.BindTexture(gl.TEXTURE_2D, r.glTexture(cmd.Texture))
		gl.DrawElementsBaseVertex(gl.TRIANGLES, int32(cmd.ElemCount), gl.UNSIGNED_SHORT,
			gl.PtrOffset(int(cmd.IdxOffset)*indexSize), int32(cmd.VtxOffset))
	}

	gl.Disable(gl.SCISSOR_TEST)
	gl.BindTexture(gl.TEXTURE_2D, 0)
	gl.BindVertexArray(0)
	gl.UseProgram(0)
	r.stats = l.Stats()
}

func (r *RendererGL) glTexture(t draw.TextureID) uint32 {
	if tex, ok := r.textures[t]; ok {
		return tex
	}
	ui.Logger().Warn("gl: unknown texture, drawing white", "texture", t)
	return r.textures[draw.WhiteTexture]
}

// --- Shader utilities ---

func makeShader(src string, shaderType uint32) (uint32, error) {
	sh := gl.CreateShader(shaderType)
	csrc, free := gl.Strs(src)
	defer free()
	gl.ShaderSource(sh, 1, csrc, nil)
	gl.CompileShader(sh)

	var status int32
	gl.GetShaderiv(sh, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLen int32
		gl.GetShaderiv(sh, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetShaderInfoLog(sh, logLen, nil, gl.Str(log))
		gl.DeleteShader(sh)
		return 0, fmt.Errorf("shader compile error: %s", log)
	}
	return sh, nil
}

func makeProgram(vsSrc, fsSrc string) (uint32, error) {
	vs, err := makeShader(vsSrc, gl.VERTEX_SHADER)
	if err != nil {
		return 0, err
	}
	fs, err := makeShader(fsSrc, gl.FRAGMENT_SHADER)
	if err != nil {
		gl.DeleteShader(vs)
		return 0, err
	}
	prog := gl.CreateProgram()
	gl.AttachShader(prog, vs)
	gl.AttachShader(prog, fs)
	gl.LinkProgram(prog)

	var status int32
	gl.GetProgramiv(prog, gl.LINK_STATUS, &status)
	gl.DeleteShader(vs)
	gl.DeleteShader(fs)

	if status == gl.FALSE {
		var logLen int32
		gl.GetProgramiv(prog, gl.INFO_LOG_LENGTH, &logLen)
		log := strings.Repeat("\x00", int(logLen))
		gl.GetProgramInfoLog(prog, logLen, nil, gl.Str(log))
		gl.DeleteProgram(prog)
		return 0, fmt.Errorf("program link error: %s", log)
	}
	return prog, nil
}
