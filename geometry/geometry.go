// Package geometry holds the static vertex data the demos upload and the
// helpers used to reason about it in normalized device coordinates (NDC).
package geometry

import "math"

// Vec2 is a 2D point, usually in NDC.
type Vec2 struct {
	X, Y float32
}

// QuadPositions are the four corners of the square, two floats per vertex.
var QuadPositions = []float32{
	-0.5, -0.5, // 0
	0.5, -0.5,  // 1
	0.5, 0.5,   // 2
	-0.5, 0.5,  // 3
}

// QuadIndices split the square into two counter-clockwise triangles.
var QuadIndices = []uint32{
	0, 1, 2, // right
	2, 3, 0, // left
}

// TrianglePositions are the immediate-mode triangle's vertices in draw order.
var TrianglePositions = [3]Vec2{
	{-0.5, -0.5},
	{0.0, 0.5},
	{0.5, -0.5},
}

// QuadVertex returns vertex i of QuadPositions.
func QuadVertex(i uint32) Vec2 {
	return Vec2{QuadPositions[2*i], QuadPositions[2*i+1]}
}

// QuadTriangles resolves QuadIndices into triangles.
func QuadTriangles() [][3]Vec2 {
	tris := make([][3]Vec2, 0, len(QuadIndices)/3)
	for i := 0; i+2 < len(QuadIndices); i += 3 {
		tris = append(tris, [3]Vec2{
			QuadVertex(QuadIndices[i]),
			QuadVertex(QuadIndices[i+1]),
			QuadVertex(QuadIndices[i+2]),
		})
	}
	return tris
}

// QuadOutline is the square's boundary, counter-clockwise.
func QuadOutline() Polygon {
	n := uint32(len(QuadPositions) / 2)
	p := make(Polygon, n)
	for i := uint32(0); i < n; i++ {
		p[i] = QuadVertex(i)
	}
	return p
}

// TriangleOutline is the immediate-mode triangle's boundary. The draw order is
// clockwise, so it is reversed here.
func TriangleOutline() Polygon {
	t := TrianglePositions
	return Polygon{t[2], t[1], t[0]}
}

// InQuad reports whether p is covered by one of the quad's triangles.
func InQuad(p Vec2) bool {
	for _, tri := range QuadTriangles() {
		if Contains(tri, p) {
			return true
		}
	}
	return false
}

// InTriangle reports whether p is covered by the immediate-mode triangle.
func InTriangle(p Vec2) bool {
	return Contains(TrianglePositions, p)
}

func edge(a, b, p Vec2) float64 {
	return float64(b.X-a.X)*float64(p.Y-a.Y) - float64(b.Y-a.Y)*float64(p.X-a.X)
}

// SignedArea is positive for counter-clockwise triangles.
func SignedArea(tri [3]Vec2) float64 {
	return edge(tri[0], tri[1], tri[2]) / 2
}

// Contains reports whether p lies inside tri or on its edges, for either winding.
func Contains(tri [3]Vec2, p Vec2) bool {
	e0 := edge(tri[0], tri[1], p)
	e1 := edge(tri[1], tri[2], p)
	e2 := edge(tri[2], tri[0], p)
	return (e0 >= 0 && e1 >= 0 && e2 >= 0) || (e0 <= 0 && e1 <= 0 && e2 <= 0)
}

// Polygon is a convex polygon with counter-clockwise vertices.
type Polygon []Vec2

// Contains reports whether p lies inside the polygon or on its boundary.
func (poly Polygon) Contains(p Vec2) bool {
	if len(poly) < 3 {
		return false
	}
	for i := range poly {
		if edge(poly[i], poly[(i+1)%len(poly)], p) < 0 {
			return false
		}
	}
	return true
}

// Distance returns the distance from p to the nearest boundary edge.
func (poly Polygon) Distance(p Vec2) float64 {
	best := math.Inf(1)
	for i := range poly {
		d := segmentDistance(poly[i], poly[(i+1)%len(poly)], p)
		if d < best {
			best = d
		}
	}
	return best
}

// Map returns a copy of the polygon with every vertex passed through f.
func (poly Polygon) Map(f func(Vec2) Vec2) Polygon {
	out := make(Polygon, len(poly))
	for i, v := range poly {
		out[i] = f(v)
	}
	return out
}

func segmentDistance(a, b, p Vec2) float64 {
	ax, ay := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X)-ax, float64(b.Y)-ay
	px, py := float64(p.X)-ax, float64(p.Y)-ay
	lenSq := dx*dx + dy*dy
	t := 0.0
	if lenSq > 0 {
		t = (px*dx + py*dy) / lenSq
		t = math.Max(0, math.Min(1, t))
	}
	return math.Hypot(px-t*dx, py-t*dy)
}

// PixelToNDC returns the NDC position of the center of pixel (x, y) in a
// width x height framebuffer whose origin is the bottom-left corner.
func PixelToNDC(x, y, width, height int) Vec2 {
	return Vec2{
		X: float32((float64(x)+0.5)/float64(width)*2 - 1),
		Y: float32((float64(y)+0.5)/float64(height)*2 - 1),
	}
}

// NDCToPixel maps an NDC position to continuous framebuffer coordinates,
// origin bottom-left.
func NDCToPixel(p Vec2, width, height int) Vec2 {
	return Vec2{
		X: (p.X + 1) / 2 * float32(width),
		Y: (p.Y + 1) / 2 * float32(height),
	}
}
