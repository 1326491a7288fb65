package scene

import (
	"image/color"
	"math"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
)

const (
	nearPlane = 0.05

	// Flat shading: everything gets ambient light, the rest scales
	// with how squarely the face points at the camera.
	ambientLight = 0.35
)

type paintFace struct {
	pts   [][3]float64 // (x, y, depth) in camera space
	depth float64
	col   color.RGBA
}

// Draw paints every node with decoded geometry onto the screen using
// painter's ordering: camera-space transform, near-plane clip, depth
// sort, perspective projection, filled convex polygons with outlines.
func (s *Scene) Draw(screen *ebiten.Image, width, height int) {
	cam, err := s.activeCamera()
	if err != nil {
		return
	}
	focal := cam.focalLength(float64(height))
	cx, cy := float64(width)/2, float64(height)/2

	var faces []paintFace
	for _, n := range s.nodes {
		if n.Mesh == nil {
			continue
		}
		faces = s.collectFaces(faces, cam, n)
	}

	// Faces farther away paint first.
	sort.Slice(faces, func(i, j int) bool {
		return faces[i].depth > faces[j].depth
	})

	xs := make([]float32, 0, 8)
	ys := make([]float32, 0, 8)
	outline := color.RGBA{R: 20, G: 20, B: 20, A: 120}
	for _, f := range faces {
		xs = xs[:0]
		ys = ys[:0]
		for _, p := range f.pts {
			xs = append(xs, float32(focal*p[0]/p[2]+cx))
			ys = append(ys, float32(-focal*p[1]/p[2]+cy))
		}
		fillConvexPolygon(screen, xs, ys, f.col)
		strokePolygon(screen, xs, ys, 1, outline)
	}
}

// collectFaces transforms one node's faces into camera space, clips
// them, and appends the survivors with their shaded colors.
func (s *Scene) collectFaces(dst []paintFace, cam *Camera, n *Node) []paintFace {
	camVerts := make([][3]float64, len(n.Mesh.Verts))
	for i, v := range n.Mesh.Verts {
		p := cam.cameraSpace(v.Add(n.Position))
		camVerts[i] = [3]float64{p.X(), p.Y(), -p.Z()} // depth positive in front
	}

	for _, face := range n.Mesh.Faces {
		pts := make([][3]float64, len(face))
		for i, idx := range face {
			pts[i] = camVerts[idx]
		}
		clipped := clipNearPlane(pts, nearPlane)
		if clipped == nil {
			continue
		}
		var depth float64
		for _, p := range clipped {
			depth += p[2]
		}
		depth /= float64(len(clipped))
		dst = append(dst, paintFace{
			pts:   clipped,
			depth: depth,
			col:   shadeFace(pts, n.Color),
		})
	}
	return dst
}

// shadeFace applies double-sided flat lighting from the camera
// direction to the node color.
func shadeFace(pts [][3]float64, base color.RGBA) color.RGBA {
	nx, ny, nz := faceNormal(pts)
	mid := faceMidpoint(pts)
	viewLen := vecLen(mid)
	diffuse := 0.0
	if viewLen > 0 {
		// |cos| between the face normal and the view ray: faces seen
		// edge-on go dark regardless of winding.
		dot := (nx*mid[0] + ny*mid[1] + nz*mid[2]) / viewLen
		if dot < 0 {
			dot = -dot
		}
		diffuse = dot
	}
	intensity := ambientLight + (1-ambientLight)*diffuse
	return color.RGBA{
		R: uint8(float64(base.R) * intensity),
		G: uint8(float64(base.G) * intensity),
		B: uint8(float64(base.B) * intensity),
		A: base.A,
	}
}

// faceNormal returns the (unit) normal of the polygon's first corner.
func faceNormal(pts [][3]float64) (float64, float64, float64) {
	if len(pts) < 3 {
		return 0, 0, 1
	}
	ux, uy, uz := pts[1][0]-pts[0][0], pts[1][1]-pts[0][1], pts[1][2]-pts[0][2]
	vx, vy, vz := pts[2][0]-pts[0][0], pts[2][1]-pts[0][1], pts[2][2]-pts[0][2]
	nx, ny, nz := uy*vz-uz*vy, uz*vx-ux*vz, ux*vy-uy*vx
	l := vecLen([3]float64{nx, ny, nz})
	if l == 0 {
		return 0, 0, 1
	}
	return nx / l, ny / l, nz / l
}

func faceMidpoint(pts [][3]float64) [3]float64 {
	var mid [3]float64
	if len(pts) == 0 {
		return mid
	}
	for _, p := range pts {
		mid[0] += p[0]
		mid[1] += p[1]
		mid[2] += p[2]
	}
	n := float64(len(pts))
	mid[0] /= n
	mid[1] /= n
	mid[2] /= n
	return mid
}

func vecLen(v [3]float64) float64 {
	return math.Sqrt(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])
}
