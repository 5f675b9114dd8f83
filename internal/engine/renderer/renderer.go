// Package renderer draws meshes with OpenGL 4.1 core.
package renderer

import (
	"fmt"
	"unsafe"

	"go.uber.org/zap"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/resound-dev/resound/internal/engine/mesh"
	"github.com/resound-dev/resound/internal/engine/shader"
	"github.com/resound-dev/resound/internal/logger"
	"github.com/resound-dev/resound/pkg/math"
)

// floatSize is the byte size of a float32 vertex component.
const floatSize = 4

// meshStride is the byte stride of one interleaved vertex:
// position (3), normal (3), color (3).
const meshStride = 9 * floatSize

const meshVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;
layout (location = 1) in vec3 aNormal;
layout (location = 2) in vec3 aColor;

uniform mat4 uMVP;
uniform mat4 uModel;

out vec3 vNormal;
out vec3 vColor;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
	vNormal = mat3(uModel) * aNormal;
	vColor = aColor;
}
` + "\x00"

const meshFragmentShader = `
#version 410 core

in vec3 vNormal;
in vec3 vColor;

uniform vec3 uLightDir;

out vec4 FragColor;

void main() {
	float diffuse = abs(dot(normalize(vNormal), uLightDir));
	vec3 lit = vColor * (0.35 + 0.65 * diffuse);
	FragColor = vec4(lit, 1.0);
}
` + "\x00"

// Renderer handles all OpenGL drawing for the viewer.
type Renderer struct {
	width  int
	height int

	program  uint32
	mvpLoc   int32
	modelLoc int32
	lightLoc int32

	meshVAO     uint32
	meshVBO     uint32
	vertexCount int32
	interleaved []float32

	overlay *overlay
}

// New initializes OpenGL and compiles the mesh shader program.
// Must be called after the GL context exists.
func New(width, height int) (*Renderer, error) {
	r := &Renderer{
		width:  width,
		height: height,
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
	gl.ClearColor(0.92, 0.92, 0.94, 1.0)

	var err error
	r.program, err = shader.CompileProgram(meshVertexShader, meshFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("mesh shader: %w", err)
	}
	r.mvpLoc = shader.MustUniform(r.program, "uMVP")
	r.modelLoc = shader.MustUniform(r.program, "uModel")
	r.lightLoc = shader.MustUniform(r.program, "uLightDir")

	r.overlay, err = newOverlay()
	if err != nil {
		gl.DeleteProgram(r.program)
		return nil, err
	}

	gl.Viewport(0, 0, int32(width), int32(height))

	return r, nil
}

// Close releases all GL resources.
func (r *Renderer) Close() {
	logger.Info("closing renderer")
	r.dropMesh()
	if r.overlay != nil {
		r.overlay.close()
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Resize updates the viewport after a window resize.
func (r *Renderer) Resize(width, height int) {
	r.width = width
	r.height = height
	gl.Viewport(0, 0, int32(width), int32(height))
	logger.Debug("renderer resized",
		zap.Int("width", width),
		zap.Int("height", height),
	)
}

// BeginFrame clears the color and depth buffers.
func (r *Renderer) BeginFrame() {
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
}

// LoadMesh uploads the mesh geometry, replacing any previous one.
// The edge overlay is rebuilt from the new geometry.
func (r *Renderer) LoadMesh(m *mesh.Mesh) {
	r.dropMesh()

	r.interleaved = m.Interleaved()
	r.vertexCount = int32(len(m.Vertices))

	gl.GenVertexArrays(1, &r.meshVAO)
	gl.BindVertexArray(r.meshVAO)

	gl.GenBuffers(1, &r.meshVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(r.interleaved)*floatSize,
		unsafe.Pointer(&r.interleaved[0]), gl.DYNAMIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, meshStride, nil)
	gl.EnableVertexAttribArray(0)
	gl.VertexAttribPointer(1, 3, gl.FLOAT, false, meshStride, unsafe.Pointer(uintptr(3*floatSize)))
	gl.EnableVertexAttribArray(1)
	gl.VertexAttribPointer(2, 3, gl.FLOAT, false, meshStride, unsafe.Pointer(uintptr(6*floatSize)))
	gl.EnableVertexAttribArray(2)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)

	r.overlay.loadEdges(m)

	logger.Debug("mesh uploaded",
		zap.String("name", m.Name),
		zap.Int("triangles", m.TriangleCount()),
	)
}

// UpdateColors re-uploads per-vertex colors after highlight changes.
// Geometry is untouched, only the color components of the interleaved
// buffer are rewritten.
func (r *Renderer) UpdateColors(m *mesh.Mesh) {
	if r.meshVBO == 0 {
		return
	}
	for i, c := range m.Colors {
		base := i * 9
		r.interleaved[base+6] = c.X
		r.interleaved[base+7] = c.Y
		r.interleaved[base+8] = c.Z
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, r.meshVBO)
	gl.BufferSubData(gl.ARRAY_BUFFER, 0, len(r.interleaved)*floatSize,
		unsafe.Pointer(&r.interleaved[0]))
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

// DrawMesh draws the loaded mesh with the given transforms.
func (r *Renderer) DrawMesh(model, view, proj math.Mat4) {
	if r.meshVAO == 0 {
		return
	}

	mvp := proj.Mul(view).Mul(model)
	light := math.Vec3{X: 0.4, Y: -0.7, Z: 0.6}.Normalize()

	gl.UseProgram(r.program)
	gl.UniformMatrix4fv(r.mvpLoc, 1, false, mvp.Ptr())
	gl.UniformMatrix4fv(r.modelLoc, 1, false, model.Ptr())
	gl.Uniform3f(r.lightLoc, light.X, light.Y, light.Z)

	// Push fill fragments back so the edge overlay wins the depth test.
	gl.Enable(gl.POLYGON_OFFSET_FILL)
	gl.PolygonOffset(1.0, 1.0)

	gl.BindVertexArray(r.meshVAO)
	gl.DrawArrays(gl.TRIANGLES, 0, r.vertexCount)
	gl.BindVertexArray(0)

	gl.Disable(gl.POLYGON_OFFSET_FILL)
}

// DrawEdges draws the wireframe overlay on top of the mesh.
func (r *Renderer) DrawEdges(model, view, proj math.Mat4) {
	mvp := proj.Mul(view).Mul(model)
	r.overlay.drawEdges(mvp)
}

// DrawAxes draws the RGB world-axis gizmo at the origin.
func (r *Renderer) DrawAxes(view, proj math.Mat4) {
	mvp := proj.Mul(view)
	r.overlay.drawAxes(mvp)
}

// ReadPixels copies the current framebuffer as RGBA bytes, bottom-up.
func (r *Renderer) ReadPixels() ([]byte, int, int) {
	pixels := make([]byte, r.width*r.height*4)
	gl.ReadPixels(0, 0, int32(r.width), int32(r.height),
		gl.RGBA, gl.UNSIGNED_BYTE, unsafe.Pointer(&pixels[0]))
	return pixels, r.width, r.height
}

func (r *Renderer) dropMesh() {
	if r.meshVAO != 0 {
		gl.DeleteVertexArrays(1, &r.meshVAO)
		r.meshVAO = 0
	}
	if r.meshVBO != 0 {
		gl.DeleteBuffers(1, &r.meshVBO)
		r.meshVBO = 0
	}
	r.vertexCount = 0
	r.interleaved = nil
}
