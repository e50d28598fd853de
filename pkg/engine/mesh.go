package engine

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"

	"outline/pkg/outline"
	"outline/pkg/scene"
)

// quadVertices are two triangles covering [0,1]^2; the quad shader maps
// them to clip space with 2*p-1
var quadVertices = []float32{
	0, 0, 1, 0, 1, 1,
	1, 1, 0, 1, 0, 0,
}

// GPUMesh is a vertex array with its buffers, ready to draw as triangles
type GPUMesh struct {
	vao   uint32
	vbos  []uint32
	count int32
}

// UploadMesh copies positions and normals of m into vertex buffers bound to
// the aPos and aNormal attribute locations
func UploadMesh(m *scene.Mesh) (*GPUMesh, error) {
	if m == nil || m.Count() == 0 {
		return nil, fmt.Errorf("%w: empty mesh", outline.ErrInvalidParams)
	}
	g := &GPUMesh{count: int32(m.Count())}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	g.attribute(attribPosition, 3, m.Vertices)
	g.attribute(attribNormal, 3, m.Normals)
	gl.BindVertexArray(0)
	return g, nil
}

// NewQuad uploads the full-screen quad
func NewQuad() *GPUMesh {
	g := &GPUMesh{count: int32(len(quadVertices) / 2)}
	gl.GenVertexArrays(1, &g.vao)
	gl.BindVertexArray(g.vao)
	g.attribute(attribPosition, 2, quadVertices)
	gl.BindVertexArray(0)
	return g
}

func (g *GPUMesh) attribute(location uint32, size int32, data []float32) {
	var vbo uint32
	gl.GenBuffers(1, &vbo)
	gl.BindBuffer(gl.ARRAY_BUFFER, vbo)
	gl.BufferData(gl.ARRAY_BUFFER, len(data)*4, gl.Ptr(data), gl.STATIC_DRAW)
	gl.VertexAttribPointer(location, size, gl.FLOAT, false, size*4, gl.PtrOffset(0))
	gl.EnableVertexAttribArray(location)
	g.vbos = append(g.vbos, vbo)
}

// Draw issues one draw call for the whole mesh
func (g *GPUMesh) Draw() {
	gl.BindVertexArray(g.vao)
	gl.DrawArrays(gl.TRIANGLES, 0, g.count)
	gl.BindVertexArray(0)
}

// Delete releases the vertex array and its buffers
func (g *GPUMesh) Delete() {
	if len(g.vbos) > 0 {
		gl.DeleteBuffers(int32(len(g.vbos)), &g.vbos[0])
		g.vbos = nil
	}
	if g.vao != 0 {
		gl.DeleteVertexArrays(1, &g.vao)
		g.vao = 0
	}
}
