// Package renderer provides OpenGL rendering functionality.
package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/cullkit/internal/engine/shader"
	"github.com/Faultbox/cullkit/internal/logger"
	"github.com/Faultbox/cullkit/pkg/math"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
	VSync  bool
}

// Color is an RGBA line color.
type Color struct {
	R, G, B, A float32
}

// Predefined wireframe colors keyed to cull outcomes.
var (
	ColorVisible = Color{R: 0.2, G: 0.9, B: 0.3, A: 1.0} // fully inside
	ColorPartial = Color{R: 0.95, G: 0.8, B: 0.2, A: 1.0}
	ColorCulled  = Color{R: 0.6, G: 0.2, B: 0.2, A: 1.0}
	ColorFrustum = Color{R: 0.4, G: 0.6, B: 1.0, A: 1.0}
)

const lineVertexSource = `
	#version 410 core

	layout (location = 0) in vec3 aPos;

	uniform mat4 uMVP;

	void main() {
		gl_Position = uMVP * vec4(aPos, 1.0);
	}
`

const lineFragmentSource = `
	#version 410 core

	uniform vec4 uColor;

	out vec4 FragColor;

	void main() {
		FragColor = uColor;
	}
`

// Renderer draws batches of line segments.
type Renderer struct {
	config Config

	program  uint32
	locMVP   int32
	locColor int32

	lineVAO uint32
	lineVBO uint32
	vboCap  int
}

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	version := gl.GoStr(gl.GetString(gl.VERSION))
	rendererName := gl.GoStr(gl.GetString(gl.RENDERER))
	logger.Info("OpenGL initialized",
		zap.String("version", version),
		zap.String("renderer", rendererName),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.ClearColor(0.1, 0.1, 0.15, 1.0) // Dark blue-gray background

	var err error
	r.program, err = shader.CompileProgram(lineVertexSource, lineFragmentSource)
	if err != nil {
		return nil, fmt.Errorf("failed to create line shader: %w", err)
	}
	r.locMVP = shader.MustGetUniform(r.program, "uMVP")
	r.locColor = shader.MustGetUniform(r.program, "uColor")

	r.createLineBuffer()

	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.lineVAO != 0 {
		gl.DeleteVertexArrays(1, &r.lineVAO)
	}
	if r.lineVBO != 0 {
		gl.DeleteBuffers(1, &r.lineVBO)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize handles window resize.
func (r *Renderer) Resize(width, height int) {
	r.config.Width = width
	r.config.Height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// Begin starts a new frame.
func (r *Renderer) Begin() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawLines draws a batch of line segments. verts holds pairs of xyz
// endpoints; mvp carries them from model space to clip space.
func (r *Renderer) DrawLines(verts []float32, mvp math.Mat4, color Color) {
	if len(verts) == 0 {
		return
	}

	gl.UseProgram(r.program)
	shader.SetMat4(r.locMVP, mvp)
	shader.SetVec4(r.locColor, color.R, color.G, color.B, color.A)

	gl.BindVertexArray(r.lineVAO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	size := len(verts) * 4
	if size > r.vboCap {
		// Grow the buffer; orphaning the old store avoids a stall
		gl.BufferData(gl.ARRAY_BUFFER, size, unsafe.Pointer(&verts[0]), gl.DYNAMIC_DRAW)
		r.vboCap = size
	} else {
		gl.BufferSubData(gl.ARRAY_BUFFER, 0, size, unsafe.Pointer(&verts[0]))
	}

	gl.DrawArrays(gl.LINES, 0, int32(len(verts)/3))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// createLineBuffer creates the dynamic VAO/VBO used for all line batches.
func (r *Renderer) createLineBuffer() {
	gl.GenVertexArrays(1, &r.lineVAO)
	gl.BindVertexArray(r.lineVAO)

	gl.GenBuffers(1, &r.lineVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.lineVBO)

	// Position attribute (location = 0), tightly packed xyz
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	logger.Debug("line buffer created",
		zap.Uint32("vao", r.lineVAO),
		zap.Uint32("vbo", r.lineVBO),
	)
}
