package systems

import (
	"math"

	"github.com/chewxy/math32"
)

// TorusKnot holds the generated base shape. Positions and Normals are xyz
// interleaved; Indices are triangles into the vertex arrays.
type TorusKnot struct {
	Positions []float32
	Normals   []float32
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (t *TorusKnot) VertexCount() int {
	return len(t.Positions) / 3
}

// TriangleCount returns the number of triangles.
func (t *TorusKnot) TriangleCount() int {
	return len(t.Indices) / 3
}

// NewTorusKnot builds a (p, q) torus knot tube. The ring seams are duplicated,
// giving (tubular+1)*(radial+1) vertices.
func NewTorusKnot(radius, tube float32, tubular, radial, p, q int) *TorusKnot {
	if tubular < 3 {
		tubular = 3
	}
	if radial < 3 {
		radial = 3
	}
	if p == 0 {
		p = 2
	}

	nv := (tubular + 1) * (radial + 1)
	t := &TorusKnot{
		Positions: make([]float32, 0, nv*3),
		Normals:   make([]float32, 0, nv*3),
		Indices:   make([]uint32, 0, tubular*radial*6),
	}

	pf, qf := float32(p), float32(q)
	for i := 0; i <= tubular; i++ {
		u := float32(i) / float32(tubular) * pf * 2 * math.Pi

		// Frame along the curve from a short forward difference
		p1 := knotCurve(u, pf, qf, radius)
		p2 := knotCurve(u+0.01, pf, qf, radius)
		tan := p2.sub(p1)
		n := p2.add(p1)
		b := tan.cross(n)
		n = b.cross(tan)
		b = b.normalize()
		n = n.normalize()

		for j := 0; j <= radial; j++ {
			v := float32(j) / float32(radial) * 2 * math.Pi
			cx := -tube * math32.Cos(v)
			cy := tube * math32.Sin(v)

			vx := p1.x + cx*n.x + cy*b.x
			vy := p1.y + cx*n.y + cy*b.y
			vz := p1.z + cx*n.z + cy*b.z
			t.Positions = append(t.Positions, vx, vy, vz)

			nrm := vec3{vx - p1.x, vy - p1.y, vz - p1.z}.normalize()
			t.Normals = append(t.Normals, nrm.x, nrm.y, nrm.z)
		}
	}

	stride := uint32(radial + 1)
	for j := uint32(1); j <= uint32(tubular); j++ {
		for i := uint32(1); i <= uint32(radial); i++ {
			a := stride*(j-1) + (i - 1)
			b := stride*j + (i - 1)
			c := stride*j + i
			d := stride*(j-1) + i
			t.Indices = append(t.Indices, a, b, d, b, c, d)
		}
	}

	return t
}

// knotCurve returns the point on the knot centerline at parameter u.
func knotCurve(u, p, q, radius float32) vec3 {
	cu := math32.Cos(u)
	su := math32.Sin(u)
	quOverP := q / p * u
	cs := math32.Cos(quOverP)
	return vec3{
		x: radius * (2 + cs) * 0.5 * cu,
		y: radius * (2 + cs) * su * 0.5,
		z: radius * math32.Sin(quOverP) * 0.5,
	}
}

type vec3 struct{ x, y, z float32 }

func (a vec3) add(b vec3) vec3 { return vec3{a.x + b.x, a.y + b.y, a.z + b.z} }
func (a vec3) sub(b vec3) vec3 { return vec3{a.x - b.x, a.y - b.y, a.z - b.z} }

func (a vec3) cross(b vec3) vec3 {
	return vec3{
		a.y*b.z - a.z*b.y,
		a.z*b.x - a.x*b.z,
		a.x*b.y - a.y*b.x,
	}
}

func (a vec3) normalize() vec3 {
	l := math32.Sqrt(a.x*a.x + a.y*a.y + a.z*a.z)
	if l == 0 {
		return a
	}
	return vec3{a.x / l, a.y / l, a.z / l}
}
