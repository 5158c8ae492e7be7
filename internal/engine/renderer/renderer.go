// Package renderer draws the input demo: a grid of coloured cells, one per
// action, lit while the action is held and flashed on the frame it fires.
package renderer

import (
	"fmt"
	"strings"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-input/internal/logger"
)

// Config holds renderer configuration.
type Config struct {
	Width  int
	Height int
}

// Indicator is one cell of the panel.
type Indicator struct {
	Label  string
	Held   bool // action is down this frame
	Active bool // action fired this frame
}

// Renderer handles all OpenGL rendering.
type Renderer struct {
	config Config

	program   uint32
	rectLoc   int32
	colorLoc  int32
	quadVAO   uint32
	quadVBO   uint32
	lastCells int
}

// Panel colours.
var (
	colorIdle   = [4]float32{0.20, 0.22, 0.28, 1}
	colorHeld   = [4]float32{0.25, 0.55, 0.85, 1}
	colorActive = [4]float32{0.95, 0.75, 0.20, 1}
)

// New creates a new renderer.
// IMPORTANT: Must be called AFTER OpenGL context is created!
func New(cfg Config) (*Renderer, error) {
	r := &Renderer{
		config: cfg,
	}

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	logger.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	gl.ClearColor(0.1, 0.1, 0.15, 1.0)

	var err error
	r.program, err = createProgram()
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.rectLoc = gl.GetUniformLocation(r.program, gl.Str("uRect\x00"))
	r.colorLoc = gl.GetUniformLocation(r.program, gl.Str("uColor\x00"))

	r.createQuad()
	return r, nil
}

// Close cleans up renderer resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	if r.quadVAO != 0 {
		gl.DeleteVertexArrays(1, &r.quadVAO)
	}
	if r.quadVBO != 0 {
		gl.DeleteBuffers(1, &r.quadVBO)
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
	gl.Clear(gl.COLOR_BUFFER_BIT)
}

// End finishes the current frame.
func (r *Renderer) End() {
	gl.BindVertexArray(0)
	gl.UseProgram(0)
}

// DrawIndicators draws one cell per indicator.
func (r *Renderer) DrawIndicators(cells []Indicator) {
	if len(cells) != r.lastCells {
		labels := make([]string, len(cells))
		for i, c := range cells {
			labels[i] = c.Label
		}
		logger.Debug("indicator panel", zap.Strings("actions", labels))
		r.lastCells = len(cells)
	}

	rects := layout(len(cells), r.config.Width, r.config.Height)

	gl.UseProgram(r.program)
	gl.BindVertexArray(r.quadVAO)
	for i, c := range cells {
		color := colorIdle
		switch {
		case c.Active:
			color = colorActive
		case c.Held:
			color = colorHeld
		}
		x, y, w, h := rects[i].ndc(r.config.Width, r.config.Height)
		gl.Uniform4f(r.rectLoc, x, y, w, h)
		gl.Uniform4f(r.colorLoc, color[0], color[1], color[2], color[3])
		gl.DrawArrays(gl.TRIANGLE_STRIP, 0, 4)
	}
}

// rect is a cell in window pixels, origin top left.
type rect struct {
	X, Y, W, H int
}

// ndc converts r to normalised device coordinates (origin bottom left).
func (r rect) ndc(width, height int) (x, y, w, h float32) {
	if width <= 0 || height <= 0 {
		return 0, 0, 0, 0
	}
	fw, fh := float32(width), float32(height)
	w = 2 * float32(r.W) / fw
	h = 2 * float32(r.H) / fh
	x = 2*float32(r.X)/fw - 1
	y = 1 - 2*float32(r.Y)/fh - h
	return x, y, w, h
}

const (
	cellGap    = 8
	maxColumns = 8
)

// layout splits the window into a grid of n cells separated by cellGap
// pixels, filling rows left to right.
func layout(n, width, height int) []rect {
	if n <= 0 {
		return nil
	}
	cols := min(n, maxColumns)
	rows := (n + cols - 1) / cols

	cw := max((width-cellGap*(cols+1))/cols, 1)
	ch := max((height-cellGap*(rows+1))/rows, 1)

	rects := make([]rect, n)
	for i := range rects {
		col, row := i%cols, i/cols
		rects[i] = rect{
			X: cellGap + col*(cw+cellGap),
			Y: cellGap + row*(ch+cellGap),
			W: cw,
			H: ch,
		}
	}
	return rects
}

func createProgram() (uint32, error) {
	vertexShaderSource := `
		#version 410 core

		layout (location = 0) in vec2 aPos;

		uniform vec4 uRect;

		void main() {
			gl_Position = vec4(uRect.xy + aPos * uRect.zw, 0.0, 1.0);
		}
	` + "\x00"

	fragmentShaderSource := `
		#version 410 core

		uniform vec4 uColor;
		out vec4 FragColor;

		void main() {
			FragColor = uColor;
		}
	` + "\x00"

	vertexShader, err := compileShader(vertexShaderSource, gl.VERTEX_SHADER)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer gl.DeleteShader(vertexShader)

	fragmentShader, err := compileShader(fragmentShaderSource, gl.FRAGMENT_SHADER)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer gl.DeleteShader(fragmentShader)

	program := gl.CreateProgram()
	gl.AttachShader(program, vertexShader)
	gl.AttachShader(program, fragmentShader)
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("link failed: %s", log)
	}

	logger.Debug("shader program created", zap.Uint32("program", program))
	return program, nil
}

func compileShader(source string, shaderType uint32) (uint32, error) {
	shader := gl.CreateShader(shaderType)

	csources, free := gl.Strs(source)
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		log := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(log))
		return 0, fmt.Errorf("compile failed: %s", log)
	}

	return shader, nil
}

// createQuad uploads the unit quad every cell is drawn from.
func (r *Renderer) createQuad() {
	vertices := []float32{
		0, 0,
		1, 0,
		0, 1,
		1, 1,
	}

	gl.GenVertexArrays(1, &r.quadVAO)
	gl.BindVertexArray(r.quadVAO)

	gl.GenBuffers(1, &r.quadVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.quadVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*4, unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 2, gl.FLOAT, false, 2*4, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}
