package scene

import "github.com/go-gl/mathgl/mgl64"

// Mesh is polygon geometry: shared vertices plus faces as vertex index
// rings. Faces are assumed convex, which holds for the polygons
// Blender writes.
type Mesh struct {
	Verts []mgl64.Vec3
	Faces [][]int
}

// NewMesh builds a mesh, dropping degenerate faces.
func NewMesh(verts []mgl64.Vec3, faces [][]int) *Mesh {
	m := &Mesh{Verts: verts}
	for _, f := range faces {
		if len(f) >= 3 {
			m.Faces = append(m.Faces, f)
		}
	}
	return m
}

// bounds returns the axis-aligned bounding box of the mesh.
func (m *Mesh) bounds() (min, max mgl64.Vec3) {
	if len(m.Verts) == 0 {
		return
	}
	min, max = m.Verts[0], m.Verts[0]
	for _, v := range m.Verts[1:] {
		for i := 0; i < 3; i++ {
			if v[i] < min[i] {
				min[i] = v[i]
			}
			if v[i] > max[i] {
				max[i] = v[i]
			}
		}
	}
	return
}

// Center moves all points so that the middle of the bounding box sits
// at the origin.
func (m *Mesh) Center() {
	if len(m.Verts) == 0 {
		return
	}
	min, max := m.bounds()
	centre := min.Add(max).Mul(0.5)
	for i := range m.Verts {
		m.Verts[i] = m.Verts[i].Sub(centre)
	}
}

// MaxExtent returns the largest bounding-box edge.
func (m *Mesh) MaxExtent() float64 {
	min, max := m.bounds()
	size := max.Sub(min)
	ext := size[0]
	if size[1] > ext {
		ext = size[1]
	}
	if size[2] > ext {
		ext = size[2]
	}
	return ext
}

// ScaleTo uniformly rescales the mesh so its largest extent equals
// size. A degenerate mesh is left untouched.
func (m *Mesh) ScaleTo(size float64) {
	ext := m.MaxExtent()
	if ext <= 0 || size <= 0 {
		return
	}
	factor := size / ext
	for i := range m.Verts {
		m.Verts[i] = m.Verts[i].Mul(factor)
	}
}
