package backdrop

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

const testContainer = "canvas-container"

// newTestRenderer builds a renderer on an 800x600 headless host with a frozen
// manual clock and a fixed seed.
func newTestRenderer(t *testing.T, opts ...Option) (*Renderer, *HeadlessHost, *ManualClock) {
	t.Helper()
	host := NewHeadlessHost(800, 600, testContainer)
	clock := &ManualClock{}
	opts = append([]Option{WithClock(clock), WithSeed(1), WithIntroFade(0)}, opts...)
	r := New(host, testContainer, opts...)
	if !r.Started() {
		t.Fatal("renderer did not start")
	}
	return r, host, clock
}

func TestNewBuildsScene(t *testing.T) {
	r, host, _ := newTestRenderer(t)
	s := r.Scene()

	if got := s.Count(KindPoints); got != 1 {
		t.Errorf("points objects = %d, want 1", got)
	}
	if got := r.Particles().Geometry.NumVertices(); got != ParticleCount {
		t.Errorf("particles = %d, want %d", got, ParticleCount)
	}
	if got := s.Count(KindLineSegments); got != 1 {
		t.Errorf("shells = %d, want 1", got)
	}
	if got := s.Count(KindMesh); got != NodeCount {
		t.Errorf("nodes = %d, want %d", got, NodeCount)
	}
	if got := r.Nodes().NumChildren(); got != NodeCount {
		t.Errorf("node group children = %d, want %d", got, NodeCount)
	}
	if !s.Frozen() {
		t.Error("scene should be frozen after construction")
	}
	if got := len(host.Container(testContainer).Surfaces()); got != 1 {
		t.Errorf("attached surfaces = %d, want 1", got)
	}
	if host.PendingFrames() != 1 {
		t.Errorf("pending frames = %d, want 1", host.PendingFrames())
	}
	if s.Background != BackgroundColor || s.Fog.Density != FogDensity {
		t.Errorf("background/fog = %v/%v", s.Background, s.Fog)
	}
}

func TestSceneMembershipFixed(t *testing.T) {
	r, _, _ := newTestRenderer(t)

	err := r.Scene().Add(NewGroup("extra"))
	if !errors.Is(err, ErrFrozen) {
		t.Errorf("Add after start: err = %v, want ErrFrozen", err)
	}
	err = r.Nodes().Add(NewMesh("extra", NewBox(1, 1, 1), Material{}))
	if !errors.Is(err, ErrFrozen) {
		t.Errorf("Add to nodes: err = %v, want ErrFrozen", err)
	}
	err = r.Nodes().Remove(r.Nodes().Children()[0])
	if !errors.Is(err, ErrFrozen) {
		t.Errorf("Remove: err = %v, want ErrFrozen", err)
	}
	if got := r.Nodes().NumChildren(); got != NodeCount {
		t.Errorf("node count changed to %d", got)
	}
}

func TestParticlesWithinCube(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	half := ParticleExtent / 2
	for i, p := range r.Particles().Geometry.Positions {
		for axis := 0; axis < 3; axis++ {
			if p[axis] < -half || p[axis] > half {
				t.Fatalf("particle %d axis %d = %f outside [-%v, %v]", i, axis, p[axis], half, half)
			}
		}
	}
}

func TestNodesWithinSpread(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	half := NodeSpread / 2
	for i, n := range r.Nodes().Children() {
		for axis := 0; axis < 3; axis++ {
			if v := n.Position[axis]; v < -half || v > half {
				t.Errorf("node %d axis %d = %f outside spread", i, axis, v)
			}
		}
		if n.Rotation.X < 0 || n.Rotation.X > math.Pi || n.Rotation.Y < 0 || n.Rotation.Y > math.Pi {
			t.Errorf("node %d initial rotation = %+v, want within [0, pi]", i, n.Rotation)
		}
	}
}

func TestSeedReproducible(t *testing.T) {
	a, _, _ := newTestRenderer(t, WithSeed(5))
	b, _, _ := newTestRenderer(t, WithSeed(5))
	pa := a.Particles().Geometry.Positions
	pb := b.Particles().Geometry.Positions
	for i := range pa {
		if pa[i] != pb[i] {
			t.Fatalf("particle %d differs: %v vs %v", i, pa[i], pb[i])
		}
	}
}

func TestNewMissingContainer(t *testing.T) {
	host := NewHeadlessHost(800, 600, "other")
	r := New(host, testContainer)

	if r.Started() {
		t.Error("Started() = true, want false")
	}
	if r.Scene() != nil || r.Camera() != nil || r.Surface() != nil {
		t.Error("inert renderer should build nothing")
	}
	if host.PendingFrames() != 0 {
		t.Errorf("pending frames = %d, want 0", host.PendingFrames())
	}
	if got := len(host.Container("other").Surfaces()); got != 0 {
		t.Errorf("surfaces attached = %d, want 0", got)
	}

	// None of these may panic.
	host.MovePointer(10, 10)
	host.Resize(100, 100)
	host.Tick()
	r.HandlePointerMove(1, 2)
	r.HandleResize(3, 4)
	r.Screenshot("x")
	r.Render(nil)
	r.Dispose()
}

func TestNewNilHost(t *testing.T) {
	r := New(nil, testContainer)
	if r.Started() {
		t.Error("Started() = true, want false")
	}
	r.Dispose()
}

func TestTimeDrivenRotation(t *testing.T) {
	for _, frames := range []int{1, 3, 10} {
		r, host, clock := newTestRenderer(t)
		const T = 12.5
		clock.Set(T)
		for i := 0; i < frames; i++ {
			host.Tick()
		}

		if got := r.Particles().Rotation.Y; !approxEqual(got, ParticleSpinY*T, 1e-12) {
			t.Errorf("frames=%d: particle rotation = %f, want %f", frames, got, ParticleSpinY*T)
		}
		if got := r.Shell().Rotation; !approxEqual(got.X, ShellSpinX*T, 1e-12) || !approxEqual(got.Y, ShellSpinY*T, 1e-12) {
			t.Errorf("frames=%d: shell rotation = %+v", frames, got)
		}
		if got := r.Nodes().Rotation.Y; !approxEqual(got, GroupSpinY*T, 1e-12) {
			t.Errorf("frames=%d: group rotation = %f, want %f", frames, got, GroupSpinY*T)
		}
	}
}

func TestNodeSpinPerFrame(t *testing.T) {
	r, host, clock := newTestRenderer(t)
	clock.Set(3)

	before := make([]Euler, NodeCount)
	for i, n := range r.Nodes().Children() {
		before[i] = n.Rotation
	}

	const frames = 25
	for i := 0; i < frames; i++ {
		host.Tick()
	}

	for i, n := range r.Nodes().Children() {
		dx := n.Rotation.X - before[i].X
		dy := n.Rotation.Y - before[i].Y
		if !approxEqual(dx, NodeSpinStep*frames, 1e-9) || !approxEqual(dy, NodeSpinStep*frames, 1e-9) {
			t.Errorf("node %d spin delta = (%f, %f), want %f", i, dx, dy, NodeSpinStep*frames)
		}
		if n.Rotation.Z != before[i].Z {
			t.Errorf("node %d Z rotation changed", i)
		}
	}
	if r.Frames() != frames {
		t.Errorf("Frames() = %d, want %d", r.Frames(), frames)
	}
}

func TestCameraStepLaw(t *testing.T) {
	r, host, _ := newTestRenderer(t)
	cam := r.Camera()

	if cam.Position != (mgl64.Vec3{0, 0, CameraDistance}) {
		t.Fatalf("initial camera = %v", cam.Position)
	}

	host.MovePointer(800, 600)
	tx, ty := r.Pointer().CameraTarget()
	if !approxEqual(tx, 20, 1e-12) || !approxEqual(ty, -15, 1e-12) {
		t.Fatalf("camera target = (%f, %f), want (20, -15)", tx, ty)
	}

	prevX, prevY := cam.Position.X(), cam.Position.Y()
	prevDist := math.Hypot(tx-prevX, ty-prevY)
	for i := 0; i < 60; i++ {
		host.Tick()
		x, y := cam.Position.X(), cam.Position.Y()
		wantX := prevX + (tx-prevX)*CameraEase
		wantY := prevY + (ty-prevY)*CameraEase
		if !approxEqual(x, wantX, 1e-9) || !approxEqual(y, wantY, 1e-9) {
			t.Fatalf("frame %d: camera = (%f, %f), want (%f, %f)", i, x, y, wantX, wantY)
		}
		dist := math.Hypot(tx-x, ty-y)
		if dist >= prevDist {
			t.Fatalf("frame %d: distance did not shrink (%f >= %f)", i, dist, prevDist)
		}
		if cam.Position.Z() != CameraDistance {
			t.Fatalf("frame %d: camera Z = %f", i, cam.Position.Z())
		}
		if cam.Target() != (mgl64.Vec3{}) {
			t.Fatalf("frame %d: camera target = %v, want origin", i, cam.Target())
		}
		prevX, prevY, prevDist = x, y, dist
	}
}

func TestPointerLatestWins(t *testing.T) {
	r, host, _ := newTestRenderer(t)
	host.MovePointer(0, 0)
	host.MovePointer(400, 300)
	p := r.Pointer()
	if p.X != 0 || p.Y != 0 {
		t.Errorf("pointer = %+v, want center (0, 0)", p)
	}
}

func TestResize(t *testing.T) {
	r, host, _ := newTestRenderer(t)

	host.Resize(1000, 500)
	if got := r.Camera().Aspect; !approxEqual(got, 2, 1e-12) {
		t.Errorf("aspect = %f, want 2", got)
	}
	if w, h := r.Surface().Size(); w != 1000 || h != 500 {
		t.Errorf("surface size = %dx%d, want 1000x500", w, h)
	}

	// Pointer offsets use the new viewport center.
	host.MovePointer(500, 250)
	if p := r.Pointer(); p.X != 0 || p.Y != 0 {
		t.Errorf("pointer after resize = %+v, want (0, 0)", p)
	}
}

func TestResizeReadsPixelRatio(t *testing.T) {
	r, host, _ := newTestRenderer(t)
	host.SetDevicePixelRatio(3)
	host.Resize(640, 480)
	if got := r.Surface().PixelRatio(); got != MaxPixelRatio {
		t.Errorf("pixel ratio = %f, want %f", got, MaxPixelRatio)
	}
	if w, h := r.Surface().PixelSize(); w != 1280 || h != 960 {
		t.Errorf("pixel size = %dx%d, want 1280x960", w, h)
	}
}

func TestResizeIgnoresInvalid(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	r.HandleResize(0, 100)
	r.HandleResize(100, -1)
	if w, h := r.Surface().Size(); w != 800 || h != 600 {
		t.Errorf("surface size = %dx%d, want 800x600", w, h)
	}
}

func TestDispose(t *testing.T) {
	r, host, _ := newTestRenderer(t)
	host.Tick()

	r.Dispose()
	if !r.Disposed() {
		t.Fatal("Disposed() = false")
	}
	if got := len(host.Container(testContainer).Surfaces()); got != 0 {
		t.Errorf("surfaces after dispose = %d, want 0", got)
	}
	if !r.Surface().Disposed() {
		t.Error("surface not disposed")
	}

	// The callback already queued runs once more but does not re-request.
	host.Tick()
	if host.PendingFrames() != 0 {
		t.Errorf("pending frames after dispose = %d, want 0", host.PendingFrames())
	}
	frames := r.Frames()
	host.Tick()
	if r.Frames() != frames {
		t.Error("frames advanced after dispose")
	}

	host.MovePointer(0, 0)
	if p := r.Pointer(); p.X != 0 || p.Y != 0 {
		t.Errorf("pointer updated after dispose: %+v", p)
	}

	r.Dispose() // idempotent
}

func TestIntroFade(t *testing.T) {
	r, host, clock := newTestRenderer(t, WithIntroFade(1))
	if r.Opacity() != 0 {
		t.Fatalf("initial opacity = %f, want 0", r.Opacity())
	}
	prev := 0.0
	for i := 0; i < 6; i++ {
		clock.Advance(0.25)
		host.Tick()
		if r.Opacity() < prev {
			t.Fatalf("opacity decreased: %f -> %f", prev, r.Opacity())
		}
		prev = r.Opacity()
	}
	if r.Opacity() != 1 {
		t.Errorf("opacity after fade = %f, want 1", r.Opacity())
	}
}

func TestIntroFadeDisabled(t *testing.T) {
	r, _, _ := newTestRenderer(t)
	if r.Opacity() != 1 {
		t.Errorf("opacity = %f, want 1", r.Opacity())
	}
}

type recordingSink struct {
	events []Event
}

func (s *recordingSink) EmitEvent(e Event) {
	s.events = append(s.events, e)
}

func TestEventSink(t *testing.T) {
	sink := &recordingSink{}
	r, host, _ := newTestRenderer(t, WithEventSink(sink))

	host.MovePointer(600, 300)
	host.Tick()
	host.Resize(1024, 768)
	r.Dispose()

	if len(sink.events) != 3 {
		t.Fatalf("events = %d, want 3", len(sink.events))
	}
	if e := sink.events[0]; e.Type != EventPointerMove || e.X != 600 || !approxEqual(e.OffsetX, 10, 1e-12) || e.Frame != 0 {
		t.Errorf("event 0 = %+v", e)
	}
	if e := sink.events[1]; e.Type != EventResize || e.Width != 1024 || e.Height != 768 || e.Frame != 1 {
		t.Errorf("event 1 = %+v", e)
	}
	if e := sink.events[2]; e.Type != EventDispose {
		t.Errorf("event 2 = %+v", e)
	}
}
