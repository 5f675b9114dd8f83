package renderer

import (
	"fmt"
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/resound-dev/resound/internal/engine/mesh"
	"github.com/resound-dev/resound/internal/engine/shader"
	"github.com/resound-dev/resound/pkg/math"
)

const lineVertexShader = `
#version 410 core

layout (location = 0) in vec3 aPos;

uniform mat4 uMVP;

void main() {
	gl_Position = uMVP * vec4(aPos, 1.0);
}
` + "\x00"

const lineFragmentShader = `
#version 410 core

uniform vec3 uColor;

out vec4 FragColor;

void main() {
	FragColor = vec4(uColor, 1.0);
}
` + "\x00"

// overlay draws the line geometry layered over the mesh: the wireframe
// of unique triangle edges and the world-axis gizmo.
type overlay struct {
	program  uint32
	mvpLoc   int32
	colorLoc int32

	edgeVAO         uint32
	edgeVBO         uint32
	edgeVertexCount int32

	axesVAO uint32
	axesVBO uint32
}

func newOverlay() (*overlay, error) {
	o := &overlay{}

	var err error
	o.program, err = shader.CompileProgram(lineVertexShader, lineFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("line shader: %w", err)
	}
	o.mvpLoc = shader.MustUniform(o.program, "uMVP")
	o.colorLoc = shader.MustUniform(o.program, "uColor")

	o.createAxes()
	return o, nil
}

func (o *overlay) close() {
	if o.edgeVAO != 0 {
		gl.DeleteVertexArrays(1, &o.edgeVAO)
	}
	if o.edgeVBO != 0 {
		gl.DeleteBuffers(1, &o.edgeVBO)
	}
	if o.axesVAO != 0 {
		gl.DeleteVertexArrays(1, &o.axesVAO)
	}
	if o.axesVBO != 0 {
		gl.DeleteBuffers(1, &o.axesVBO)
	}
	if o.program != 0 {
		gl.DeleteProgram(o.program)
	}
}

// loadEdges rebuilds the wireframe buffer from the mesh. Each edge is
// stored once regardless of how many triangles share it.
func (o *overlay) loadEdges(m *mesh.Mesh) {
	if o.edgeVAO != 0 {
		gl.DeleteVertexArrays(1, &o.edgeVAO)
		o.edgeVAO = 0
	}
	if o.edgeVBO != 0 {
		gl.DeleteBuffers(1, &o.edgeVBO)
		o.edgeVBO = 0
	}

	lines := uniqueEdges(m)
	o.edgeVertexCount = int32(len(lines) / 3)
	if o.edgeVertexCount == 0 {
		return
	}

	gl.GenVertexArrays(1, &o.edgeVAO)
	gl.BindVertexArray(o.edgeVAO)

	gl.GenBuffers(1, &o.edgeVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.edgeVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(lines)*floatSize,
		unsafe.Pointer(&lines[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*floatSize, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

func (o *overlay) drawEdges(mvp math.Mat4) {
	if o.edgeVAO == 0 {
		return
	}
	gl.UseProgram(o.program)
	gl.UniformMatrix4fv(o.mvpLoc, 1, false, mvp.Ptr())
	gl.Uniform3f(o.colorLoc, 0.0, 0.0, 0.0)

	gl.BindVertexArray(o.edgeVAO)
	gl.DrawArrays(gl.LINES, 0, o.edgeVertexCount)
	gl.BindVertexArray(0)
}

func (o *overlay) drawAxes(mvp math.Mat4) {
	gl.UseProgram(o.program)
	gl.UniformMatrix4fv(o.mvpLoc, 1, false, mvp.Ptr())

	gl.BindVertexArray(o.axesVAO)
	gl.Uniform3f(o.colorLoc, 1.0, 0.0, 0.0)
	gl.DrawArrays(gl.LINES, 0, 2)
	gl.Uniform3f(o.colorLoc, 0.0, 1.0, 0.0)
	gl.DrawArrays(gl.LINES, 2, 2)
	gl.Uniform3f(o.colorLoc, 0.0, 0.0, 1.0)
	gl.DrawArrays(gl.LINES, 4, 2)
	gl.BindVertexArray(0)
}

func (o *overlay) createAxes() {
	vertices := []float32{
		0, 0, 0, 1, 0, 0, // X
		0, 0, 0, 0, 1, 0, // Y
		0, 0, 0, 0, 0, 1, // Z
	}

	gl.GenVertexArrays(1, &o.axesVAO)
	gl.BindVertexArray(o.axesVAO)

	gl.GenBuffers(1, &o.axesVBO)
	gl.BindBuffer(gl.ARRAY_BUFFER, o.axesVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(vertices)*floatSize,
		unsafe.Pointer(&vertices[0]), gl.STATIC_DRAW)

	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*floatSize, nil)
	gl.EnableVertexAttribArray(0)

	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
	gl.BindVertexArray(0)
}

type edgeKey struct {
	a, b math.Vec3
}

// uniqueEdges flattens the mesh's triangle edges into line segment
// vertices, deduplicating edges shared between adjacent triangles.
func uniqueEdges(m *mesh.Mesh) []float32 {
	seen := make(map[edgeKey]struct{}, m.TriangleCount()*3)
	out := make([]float32, 0, m.TriangleCount()*6)

	add := func(p, q math.Vec3) {
		key := edgeKey{a: p, b: q}
		if lessVec(q, p) {
			key = edgeKey{a: q, b: p}
		}
		if _, ok := seen[key]; ok {
			return
		}
		seen[key] = struct{}{}
		out = append(out, p.X, p.Y, p.Z, q.X, q.Y, q.Z)
	}

	for i := 0; i < m.TriangleCount(); i++ {
		v0, v1, v2 := m.Triangle(i)
		add(v0, v1)
		add(v1, v2)
		add(v2, v0)
	}
	return out
}

func lessVec(a, b math.Vec3) bool {
	if a.X != b.X {
		return a.X < b.X
	}
	if a.Y != b.Y {
		return a.Y < b.Y
	}
	return a.Z < b.Z
}
