package backdrop

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Geometry holds object-space vertex data. Points use Positions only; line
// and mesh objects draw Edges, which index into Positions.
type Geometry struct {
	Positions []mgl64.Vec3
	Faces     [][3]uint32
	Edges     [][2]uint32
}

// NumVertices returns the number of positions.
func (g *Geometry) NumVertices() int {
	return len(g.Positions)
}

// BoundingRadius returns the largest distance from the origin to any position.
func (g *Geometry) BoundingRadius() float64 {
	var r float64
	for _, p := range g.Positions {
		if l := p.Len(); l > r {
			r = l
		}
	}
	return r
}

// buildEdges derives the unique undirected edge set of g.Faces, in first-seen
// order.
func (g *Geometry) buildEdges() {
	seen := make(map[[2]uint32]struct{}, len(g.Faces)*3/2)
	g.Edges = g.Edges[:0]
	for _, f := range g.Faces {
		for k := 0; k < 3; k++ {
			a, b := f[k], f[(k+1)%3]
			if a > b {
				a, b = b, a
			}
			key := [2]uint32{a, b}
			if _, ok := seen[key]; ok {
				continue
			}
			seen[key] = struct{}{}
			g.Edges = append(g.Edges, key)
		}
	}
}

// --- Icosahedron ---

var (
	icoPhi = (1 + math.Sqrt(5)) / 2

	icoVertices = [12]mgl64.Vec3{
		{-1, icoPhi, 0}, {1, icoPhi, 0}, {-1, -icoPhi, 0}, {1, -icoPhi, 0},
		{0, -1, icoPhi}, {0, 1, icoPhi}, {0, -1, -icoPhi}, {0, 1, -icoPhi},
		{icoPhi, 0, -1}, {icoPhi, 0, 1}, {-icoPhi, 0, -1}, {-icoPhi, 0, 1},
	}

	icoFaces = [20][3]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}
)

// NewIcosahedron builds a geodesic sphere of the given radius. Each of the 20
// base faces is split into (detail+1)² triangles whose vertices are pushed
// out onto the sphere. Shared vertices are merged, so detail d yields
// 10(d+1)²+2 vertices and 30(d+1)² edges.
func NewIcosahedron(radius float64, detail int) *Geometry {
	if detail < 0 {
		detail = 0
	}
	g := &Geometry{}
	index := make(map[[3]int64]uint32)

	vertex := func(p mgl64.Vec3) uint32 {
		p = p.Normalize().Mul(radius)
		key := quantize(p)
		if i, ok := index[key]; ok {
			return i
		}
		i := uint32(len(g.Positions))
		g.Positions = append(g.Positions, p)
		index[key] = i
		return i
	}

	cols := detail + 1
	grid := make([][]mgl64.Vec3, cols+1)
	for _, f := range icoFaces {
		a, b, c := icoVertices[f[0]], icoVertices[f[1]], icoVertices[f[2]]

		for i := 0; i <= cols; i++ {
			t := float64(i) / float64(cols)
			aj := lerpVec3(a, c, t)
			bj := lerpVec3(b, c, t)
			rows := cols - i
			grid[i] = grid[i][:0]
			for j := 0; j <= rows; j++ {
				if j == 0 && i == cols {
					grid[i] = append(grid[i], aj)
				} else {
					grid[i] = append(grid[i], lerpVec3(aj, bj, float64(j)/float64(rows)))
				}
			}
		}

		for i := 0; i < cols; i++ {
			for j := 0; j < 2*(cols-i)-1; j++ {
				k := j / 2
				var tri [3]uint32
				if j%2 == 0 {
					tri = [3]uint32{vertex(grid[i][k+1]), vertex(grid[i+1][k]), vertex(grid[i][k])}
				} else {
					tri = [3]uint32{vertex(grid[i][k+1]), vertex(grid[i+1][k+1]), vertex(grid[i+1][k])}
				}
				g.Faces = append(g.Faces, tri)
			}
		}
	}

	g.buildEdges()
	return g
}

// --- Box ---

// NewBox builds an axis-aligned box centered on the origin with two
// triangles per side. Its edge set is the 12 box edges plus one diagonal
// per side.
func NewBox(width, height, depth float64) *Geometry {
	hw, hh, hd := width/2, height/2, depth/2
	g := &Geometry{
		Positions: []mgl64.Vec3{
			{-hw, -hh, -hd}, {hw, -hh, -hd}, {hw, hh, -hd}, {-hw, hh, -hd},
			{-hw, -hh, hd}, {hw, -hh, hd}, {hw, hh, hd}, {-hw, hh, hd},
		},
	}
	sides := [6][4]uint32{
		{4, 5, 6, 7}, // +z
		{1, 0, 3, 2}, // -z
		{5, 1, 2, 6}, // +x
		{0, 4, 7, 3}, // -x
		{7, 6, 2, 3}, // +y
		{0, 1, 5, 4}, // -y
	}
	for _, s := range sides {
		g.Faces = append(g.Faces,
			[3]uint32{s[0], s[1], s[3]},
			[3]uint32{s[1], s[2], s[3]},
		)
	}
	g.buildEdges()
	return g
}

// --- Helpers ---

func lerpVec3(a, b mgl64.Vec3, t float64) mgl64.Vec3 {
	return a.Add(b.Sub(a).Mul(t))
}

// quantize maps a position to an integer key so vertices produced by
// neighbouring faces merge despite rounding differences.
func quantize(p mgl64.Vec3) [3]int64 {
	const scale = 1e6
	return [3]int64{
		int64(math.Round(p.X() * scale)),
		int64(math.Round(p.Y() * scale)),
		int64(math.Round(p.Z() * scale)),
	}
}
