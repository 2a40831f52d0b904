package backdrop

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"go.uber.org/zap"
)

// Scene content.
const (
	ParticleCount  = 700   // points in the particle field
	ParticleExtent = 100.0 // edge length of the cube particles are sampled from
	ParticleSize   = 0.2
	ShellRadius    = 15.0
	ShellDetail    = 2
	NodeCount      = 10
	NodeSpread     = 40.0 // edge length of the cube node positions are sampled from
	NodeSize       = 1.0
)

// Camera and atmosphere.
const (
	CameraFOV      = 75.0 // degrees
	CameraNear     = 0.1
	CameraFar      = 1000.0
	CameraDistance = 30.0
	FogDensity     = 0.002
)

// Animation rates. Spins are radians per second of elapsed time except
// NodeSpinStep, which is radians per frame.
const (
	ParticleSpinY = 0.05
	ShellSpinY    = 0.05
	ShellSpinX    = 0.02
	GroupSpinY    = 0.1
	NodeSpinStep  = 0.01
	CameraEase    = 0.05
)

// Palette.
var (
	BackgroundColor = Hex(0x0a0a0a)
	ParticleColor   = Hex(0x00e5ff)
	ShellColor      = Hex(0x00e5ff)
	NodeColor       = Hex(0xff0055)
)

// Renderer owns a scene, a perspective camera and a render surface attached
// to a host container, and animates them once per host frame until disposed.
//
// A Renderer is not safe for concurrent use. Every method must be called
// from the host's loop goroutine.
type Renderer struct {
	host    Host
	element Element
	log     *zap.Logger
	sink    EventSink

	scene     *Scene
	camera    *PerspectiveCamera
	surface   *Surface
	particles *Object3D
	shell     *Object3D
	nodes     *Object3D

	pointer         PointerState
	viewW, viewH    int
	clock           Clock
	lastElapsed     float64
	frames          uint64
	fade            *introFade
	fps             *fpsOverlay
	debug           bool
	proj            projector
	cancelPointer   func()
	cancelResize    func()
	screenshotDir   string
	screenshotQueue []string
	injectQueue     []syntheticEvent
	script          *Script

	started  bool
	disposed bool
}

// New builds the scene, attaches a surface to the container registered
// under containerID, subscribes to pointer and resize notifications and
// schedules the first frame.
//
// If host is nil or the container does not exist, New returns an inert
// renderer: Started reports false, no content is built, nothing is attached
// and no frame is requested.
func New(host Host, containerID string, opts ...Option) *Renderer {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	r := &Renderer{
		host:          host,
		log:           o.logger,
		sink:          o.sink,
		debug:         o.debug,
		screenshotDir: o.screenshotDir,
	}

	if host == nil {
		r.log.Debug("no host; renderer not started", zap.String("container", containerID))
		return r
	}
	el, ok := host.Element(containerID)
	if !ok {
		r.log.Debug("container not found; renderer not started", zap.String("container", containerID))
		return r
	}
	r.element = el

	r.clock = o.clock
	if r.clock == nil {
		r.clock = newWallClock()
	}
	rng := o.rng
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}

	r.viewW, r.viewH = host.Viewport()

	r.scene = NewScene()
	r.scene.Background = BackgroundColor
	r.scene.Fog = FogExp2{Color: BackgroundColor, Density: FogDensity}

	r.camera = NewPerspectiveCamera(CameraFOV, aspectRatio(r.viewW, r.viewH), CameraNear, CameraFar)
	r.camera.SetPosition(mgl64.Vec3{0, 0, CameraDistance})
	r.camera.LookAt(mgl64.Vec3{})

	r.surface = NewSurface(r.viewW, r.viewH, host.DevicePixelRatio(), true)
	r.surface.paint = r.Render
	el.Attach(r.surface)

	r.buildContent(rng)
	r.scene.Freeze()

	r.fade = newIntroFade(o.introFade)
	if o.showFPS {
		r.fps = newFPSOverlay()
	}

	r.cancelPointer = host.OnPointerMove(r.HandlePointerMove)
	r.cancelResize = host.OnResize(r.HandleResize)
	r.started = true
	host.RequestFrame(r.frame)

	r.log.Info("renderer started",
		zap.String("container", containerID),
		zap.Int("width", r.viewW),
		zap.Int("height", r.viewH),
		zap.Float64("pixel_ratio", r.surface.PixelRatio()),
	)
	return r
}

// buildContent generates the particle field, wireframe shell and node group.
func (r *Renderer) buildContent(rng *rand.Rand) {
	r.particles = NewPoints("particles",
		NewParticleCloud(rng, CloudConfig{Count: ParticleCount, Extent: ParticleExtent}),
		Material{Color: ParticleColor, Opacity: 0.8, Size: ParticleSize, DepthTest: true},
	)
	r.mustAdd(r.scene.Root(), r.particles)

	r.shell = NewLineSegments("shell",
		NewIcosahedron(ShellRadius, ShellDetail),
		Material{Color: ShellColor, Opacity: 0.1},
	)
	r.mustAdd(r.scene.Root(), r.shell)

	r.nodes = NewGroup("nodes")
	box := NewBox(NodeSize, NodeSize, NodeSize)
	spread := Range{Min: -NodeSpread / 2, Max: NodeSpread / 2}
	tilt := Range{Min: 0, Max: math.Pi}
	for i := 0; i < NodeCount; i++ {
		node := NewMesh("node", box, Material{Color: NodeColor, Opacity: 1, DepthTest: true})
		node.SetPosition(spread.Random(rng), spread.Random(rng), spread.Random(rng))
		node.SetRotation(Euler{X: tilt.Random(rng), Y: tilt.Random(rng)})
		r.mustAdd(r.nodes, node)
	}
	r.mustAdd(r.scene.Root(), r.nodes)
}

// mustAdd adds child to parent during construction, before the scene is
// frozen. Failure is a programming error.
func (r *Renderer) mustAdd(parent, child *Object3D) {
	if err := parent.Add(child); err != nil {
		panic(err)
	}
}

// frame is the host frame callback. It reschedules itself before updating
// so the loop continues until Dispose.
func (r *Renderer) frame() {
	if r.disposed {
		return
	}
	r.host.RequestFrame(r.frame)
	r.update()
}

// update advances one frame of state. Rendering happens when the host
// composites the surface.
func (r *Renderer) update() {
	if r.script != nil {
		r.script.step(r)
	}
	r.processInjected()

	t := r.clock.Elapsed()
	dt := t - r.lastElapsed
	if dt < 0 {
		dt = 0
	}
	r.lastElapsed = t

	r.animate(t)
	r.fade.update(dt)
	if r.fps != nil {
		r.fps.update(dt)
	}
	r.frames++
}

// animate applies the per-frame transform updates. Field, shell and group
// rotations are functions of elapsed time; each node's own spin advances by a
// fixed step per frame.
func (r *Renderer) animate(t float64) {
	r.particles.SetRotation(Euler{Y: t * ParticleSpinY})
	r.shell.SetRotation(Euler{X: t * ShellSpinX, Y: t * ShellSpinY})
	r.nodes.SetRotation(Euler{Y: t * GroupSpinY})
	for _, n := range r.nodes.Children() {
		n.Rotate(NodeSpinStep, NodeSpinStep, 0)
	}

	tx, ty := r.pointer.CameraTarget()
	r.camera.Approach(tx, ty, CameraEase)
	r.camera.LookAt(r.scene.Root().Position)
}

// HandlePointerMove records a pointer position in viewport pixels. The
// camera picks it up on the next frame.
func (r *Renderer) HandlePointerMove(x, y float64) {
	if !r.started || r.disposed {
		return
	}
	r.pointer.Update(x, y, r.viewW, r.viewH)
	r.emit(Event{Type: EventPointerMove, X: x, Y: y, OffsetX: r.pointer.X, OffsetY: r.pointer.Y})
}

// HandleResize applies a new viewport size to the camera aspect and the
// surface immediately. Non-positive sizes are ignored.
func (r *Renderer) HandleResize(w, h int) {
	if !r.started || r.disposed || w <= 0 || h <= 0 {
		return
	}
	r.viewW, r.viewH = w, h
	r.camera.SetAspect(aspectRatio(w, h))
	r.surface.SetPixelRatio(r.host.DevicePixelRatio())
	r.surface.SetSize(w, h)
	r.emit(Event{Type: EventResize, Width: w, Height: h})
	r.log.Debug("resize", zap.Int("width", w), zap.Int("height", h))
}

// Dispose stops scheduling frames, unsubscribes from the host, detaches the
// surface and releases its GPU image. Safe to call more than once.
func (r *Renderer) Dispose() {
	if !r.started || r.disposed {
		return
	}
	r.disposed = true
	if r.cancelPointer != nil {
		r.cancelPointer()
	}
	if r.cancelResize != nil {
		r.cancelResize()
	}
	r.element.Detach(r.surface)
	r.surface.Dispose()
	if r.fps != nil {
		r.fps.dispose()
	}
	r.injectQueue = nil
	r.screenshotQueue = nil
	r.emit(Event{Type: EventDispose})
	r.log.Info("renderer disposed", zap.Uint64("frames", r.frames))
}

func (r *Renderer) emit(e Event) {
	if r.sink == nil {
		return
	}
	e.Frame = r.frames
	r.sink.EmitEvent(e)
}

// --- Accessors ---

// Started reports whether construction found its container and built the
// scene.
func (r *Renderer) Started() bool { return r.started }

// Disposed reports whether Dispose has been called.
func (r *Renderer) Disposed() bool { return r.disposed }

// Scene returns the scene, or nil if the renderer never started.
func (r *Renderer) Scene() *Scene { return r.scene }

// Camera returns the camera, or nil if the renderer never started.
func (r *Renderer) Camera() *PerspectiveCamera { return r.camera }

// Surface returns the render surface, or nil if the renderer never started.
func (r *Renderer) Surface() *Surface { return r.surface }

// Particles returns the particle field object.
func (r *Renderer) Particles() *Object3D { return r.particles }

// Shell returns the wireframe shell object.
func (r *Renderer) Shell() *Object3D { return r.shell }

// Nodes returns the node group.
func (r *Renderer) Nodes() *Object3D { return r.nodes }

// Pointer returns the latest damped pointer offsets.
func (r *Renderer) Pointer() PointerState { return r.pointer }

// Frames returns the number of frames processed.
func (r *Renderer) Frames() uint64 { return r.frames }

// Opacity returns the current intro fade multiplier.
func (r *Renderer) Opacity() float64 {
	if r.fade == nil {
		return 0
	}
	return r.fade.alpha
}

func aspectRatio(w, h int) float64 {
	if w <= 0 || h <= 0 {
		return 1
	}
	return float64(w) / float64(h)
}
