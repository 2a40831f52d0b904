package backdrop

import (
	"image/color"
	"math"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// lineWidth is the stroke width of edges in device pixels.
const lineWidth = 1.0

// projector turns objects into screen-space triangles. Buffers are reused
// across frames (high-water mark, never shrink).
type projector struct {
	verts []ebiten.Vertex
	inds  []uint32

	// Per-frame viewport and camera state.
	width, height float64
	near, far     float64
	fog           FogExp2
	alpha         float64

	culled int
}

// begin resets per-frame state for a target of the given pixel size.
func (p *projector) begin(width, height float64, cam *PerspectiveCamera, fog FogExp2, alpha float64) {
	p.width, p.height = width, height
	p.near, p.far = cam.Near, cam.Far
	p.fog = fog
	p.alpha = alpha
	p.culled = 0
	p.reset()
}

func (p *projector) reset() {
	p.verts = p.verts[:0]
	p.inds = p.inds[:0]
}

// project appends triangles for o using the combined view-projection
// matrix. Groups produce nothing.
func (p *projector) project(o *Object3D, viewProj mgl64.Mat4) {
	if o.Geometry == nil {
		return
	}
	mvp := viewProj.Mul4(o.worldMatrix)
	switch o.Kind {
	case KindPoints:
		p.projectPoints(o, mvp)
	case KindLineSegments, KindMesh:
		p.projectEdges(o, mvp)
	}
}

// projectPoints emits one square per position. The square's side is the
// material size scaled by half the target height over depth, so points
// shrink with distance.
func (p *projector) projectPoints(o *Object3D, mvp mgl64.Mat4) {
	mat := &o.Material
	half := p.height / 2
	for _, pos := range o.Geometry.Positions {
		clip := mvp.Mul4x1(pos.Vec4(1))
		sx, sy, depth, ok := clipToScreen(clip, p.near, p.width, p.height)
		if !ok || depth > p.far {
			p.culled++
			continue
		}
		side := math.Max(mat.Size*half/depth, 1)
		c := p.shade(mat, depth)
		p.appendQuad(
			sx-side/2, sy-side/2,
			sx+side/2, sy-side/2,
			sx-side/2, sy+side/2,
			sx+side/2, sy+side/2,
			c, c,
		)
	}
}

// projectEdges emits one thin quad per edge, clipped against the near plane.
func (p *projector) projectEdges(o *Object3D, mvp mgl64.Mat4) {
	mat := &o.Material
	pos := o.Geometry.Positions
	for _, e := range o.Geometry.Edges {
		a := mvp.Mul4x1(pos[e[0]].Vec4(1))
		b := mvp.Mul4x1(pos[e[1]].Vec4(1))
		a, b, ok := clipSegment(a, b, p.near)
		if !ok || (a.W() > p.far && b.W() > p.far) {
			p.culled++
			continue
		}
		ax, ay := ndcToScreen(a, p.width, p.height)
		bx, by := ndcToScreen(b, p.width, p.height)
		p.appendLine(ax, ay, bx, by, p.shade(mat, a.W()), p.shade(mat, b.W()))
	}
}

// shade returns the premultiplied vertex color for a material at depth.
func (p *projector) shade(mat *Material, depth float64) Color {
	c := mat.Color
	if f := p.fog.Factor(depth); f > 0 {
		c = c.Lerp(p.fog.Color, f)
	}
	a := mat.Opacity * c.A * p.alpha
	return Color{R: c.R * a, G: c.G * a, B: c.B * a, A: a}
}

func (p *projector) appendLine(ax, ay, bx, by float64, ca, cb Color) {
	dx, dy := bx-ax, by-ay
	l := math.Hypot(dx, dy)
	if l == 0 {
		dx, dy, l = 1, 0, 1
	}
	hw := lineWidth / 2
	nx, ny := -dy/l*hw, dx/l*hw
	p.appendQuad(
		ax+nx, ay+ny,
		bx+nx, by+ny,
		ax-nx, ay-ny,
		bx-nx, by-ny,
		ca, cb,
	)
}

// appendQuad appends 4 vertices (TL, TR, BL, BR order) and 6 indices. The
// left pair takes color c0, the right pair c1.
func (p *projector) appendQuad(x0, y0, x1, y1, x2, y2, x3, y3 float64, c0, c1 Color) {
	base := uint32(len(p.verts))
	xs := [4]float64{x0, x1, x2, x3}
	ys := [4]float64{y0, y1, y2, y3}
	cs := [4]Color{c0, c1, c0, c1}
	for i := 0; i < 4; i++ {
		p.verts = append(p.verts, ebiten.Vertex{
			DstX:   float32(xs[i]),
			DstY:   float32(ys[i]),
			SrcX:   0.5,
			SrcY:   0.5,
			ColorR: float32(cs[i].R),
			ColorG: float32(cs[i].G),
			ColorB: float32(cs[i].B),
			ColorA: float32(cs[i].A),
		})
	}
	// Two triangles: TL-TR-BL, TR-BR-BL
	p.inds = append(p.inds,
		base+0, base+1, base+2,
		base+1, base+3, base+2,
	)
}

// clipSegment clips a clip-space segment to the near plane. ok is false when
// both ends are behind it.
func clipSegment(a, b mgl64.Vec4, near float64) (mgl64.Vec4, mgl64.Vec4, bool) {
	aIn := a.W() >= near
	bIn := b.W() >= near
	switch {
	case aIn && bIn:
		return a, b, true
	case !aIn && !bIn:
		return a, b, false
	}
	t := (near - a.W()) / (b.W() - a.W())
	cut := a.Add(b.Sub(a).Mul(t))
	if aIn {
		return a, cut, true
	}
	return cut, b, true
}

// ndcToScreen divides by W and maps to pixels with Y increasing downward.
func ndcToScreen(clip mgl64.Vec4, width, height float64) (float64, float64) {
	w := clip.W()
	return (clip.X()/w + 1) * 0.5 * width, (1 - clip.Y()/w) * 0.5 * height
}

// --- White pixel singleton (no sync.Once; backdrop is single-threaded) ---

var whitePixelImage *ebiten.Image

// ensureWhitePixel returns a lazily-initialized 1x1 white pixel image used as
// the source for untextured triangles.
func ensureWhitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.RGBA{R: 255, G: 255, B: 255, A: 255})
	}
	return whitePixelImage
}

// Render draws the current scene from the renderer's camera into dst. The
// host calls it through the surface right before compositing; it is safe to
// call directly with any target.
func (r *Renderer) Render(dst *ebiten.Image) {
	if !r.started || r.disposed || dst == nil {
		return
	}

	var stats debugStats
	var t0 time.Time
	if r.debug {
		t0 = time.Now()
	}

	dst.Fill(r.scene.Background.toRGBA())
	r.scene.updateTransforms()

	b := dst.Bounds()
	r.proj.begin(float64(b.Dx()), float64(b.Dy()), r.camera, r.scene.Fog, r.fade.alpha)
	viewProj := r.camera.ViewProjection()

	var op ebiten.DrawTrianglesOptions
	op.ColorScaleMode = ebiten.ColorScaleModePremultipliedAlpha
	op.AntiAlias = r.surface.Antialias()

	r.traverse(dst, r.scene.Root(), viewProj, &op, &stats)

	if r.debug {
		stats.renderTime = time.Since(t0)
		stats.culled = r.proj.culled
		stats.frame = r.frames
		r.debugLog(stats)
	}

	if r.fps != nil {
		r.fps.draw(dst)
	}
	r.flushScreenshots(dst)
}

// traverse walks visible objects depth-first and submits one draw call per
// drawable object.
func (r *Renderer) traverse(dst *ebiten.Image, o *Object3D, viewProj mgl64.Mat4, op *ebiten.DrawTrianglesOptions, stats *debugStats) {
	if !o.Visible {
		return
	}
	if o.Kind != KindGroup {
		r.proj.reset()
		r.proj.project(o, viewProj)
		if len(r.proj.inds) > 0 {
			dst.DrawTriangles32(r.proj.verts, r.proj.inds, ensureWhitePixel(), op)
			stats.drawCalls++
			stats.vertexCount += len(r.proj.verts)
		}
	}
	for _, c := range o.children {
		r.traverse(dst, c, viewProj, op, stats)
	}
}
