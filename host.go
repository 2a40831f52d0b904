package backdrop

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Host is the environment a Renderer attaches to: a registry of named
// containers, the viewport that holds them, a per-frame scheduler, and
// pointer/resize notification sources. All callbacks run on the host's
// single loop goroutine.
type Host interface {
	// Element returns the container registered under id.
	Element(id string) (Element, bool)
	// Viewport returns the current viewport size in logical pixels.
	Viewport() (width, height int)
	// DevicePixelRatio returns device pixels per logical pixel.
	DevicePixelRatio() float64
	// RequestFrame schedules fn to run once on the next display refresh.
	RequestFrame(fn func())
	// OnPointerMove registers fn for pointer movement in logical pixels.
	// The returned func unregisters it.
	OnPointerMove(fn func(x, y float64)) (cancel func())
	// OnResize registers fn for viewport size changes. The returned func
	// unregisters it.
	OnResize(fn func(w, h int)) (cancel func())
}

// Element is a container a Surface can be attached to.
type Element interface {
	ID() string
	Attach(s *Surface)
	Detach(s *Surface)
}

// Container is the Element implementation shared by the built-in hosts.
type Container struct {
	id       string
	surfaces []*Surface
}

// ID returns the container's handle.
func (c *Container) ID() string {
	return c.id
}

// Attach adds s to the container. Attaching the same surface twice is a no-op.
func (c *Container) Attach(s *Surface) {
	for _, cur := range c.surfaces {
		if cur == s {
			return
		}
	}
	c.surfaces = append(c.surfaces, s)
}

// Detach removes s from the container.
func (c *Container) Detach(s *Surface) {
	for i, cur := range c.surfaces {
		if cur == s {
			copy(c.surfaces[i:], c.surfaces[i+1:])
			c.surfaces[len(c.surfaces)-1] = nil
			c.surfaces = c.surfaces[:len(c.surfaces)-1]
			return
		}
	}
}

// Surfaces returns the attached surfaces. The returned slice MUST NOT be mutated.
func (c *Container) Surfaces() []*Surface {
	return c.surfaces
}

// --- Shared host state ---

type pointerListener struct {
	id uint32
	fn func(x, y float64)
}

type resizeListener struct {
	id uint32
	fn func(w, h int)
}

// hostCore implements the bookkeeping half of Host. WindowHost and
// HeadlessHost embed it and differ only in where events come from.
type hostCore struct {
	containers []*Container
	width      int
	height     int
	ratio      float64

	pending []func()
	running []func()

	pointer []pointerListener
	resize  []resizeListener
	nextID  uint32
}

func newHostCore(w, h int, ids []string) hostCore {
	c := hostCore{width: w, height: h, ratio: 1}
	for _, id := range ids {
		c.AddContainer(id)
	}
	return c
}

// AddContainer registers a container under id and returns it. Registering
// an existing id returns the existing container.
func (c *hostCore) AddContainer(id string) *Container {
	if cur, ok := c.container(id); ok {
		return cur
	}
	ct := &Container{id: id}
	c.containers = append(c.containers, ct)
	return ct
}

// Container returns the concrete container registered under id, or nil.
func (c *hostCore) Container(id string) *Container {
	ct, _ := c.container(id)
	return ct
}

func (c *hostCore) container(id string) (*Container, bool) {
	for _, ct := range c.containers {
		if ct.id == id {
			return ct, true
		}
	}
	return nil, false
}

func (c *hostCore) Element(id string) (Element, bool) {
	ct, ok := c.container(id)
	if !ok {
		return nil, false
	}
	return ct, true
}

func (c *hostCore) Viewport() (int, int) {
	return c.width, c.height
}

func (c *hostCore) DevicePixelRatio() float64 {
	return c.ratio
}

func (c *hostCore) RequestFrame(fn func()) {
	c.pending = append(c.pending, fn)
}

func (c *hostCore) OnPointerMove(fn func(x, y float64)) func() {
	c.nextID++
	id := c.nextID
	c.pointer = append(c.pointer, pointerListener{id: id, fn: fn})
	return func() {
		for i, l := range c.pointer {
			if l.id == id {
				c.pointer = append(c.pointer[:i], c.pointer[i+1:]...)
				return
			}
		}
	}
}

func (c *hostCore) OnResize(fn func(w, h int)) func() {
	c.nextID++
	id := c.nextID
	c.resize = append(c.resize, resizeListener{id: id, fn: fn})
	return func() {
		for i, l := range c.resize {
			if l.id == id {
				c.resize = append(c.resize[:i], c.resize[i+1:]...)
				return
			}
		}
	}
}

// PendingFrames returns the number of frame callbacks waiting for the next
// refresh.
func (c *hostCore) PendingFrames() int {
	return len(c.pending)
}

// tick runs every callback requested before this refresh. Callbacks that
// request another frame are queued for the next tick.
func (c *hostCore) tick() int {
	c.running, c.pending = c.pending, c.running[:0]
	for _, fn := range c.running {
		fn()
	}
	n := len(c.running)
	clear(c.running)
	c.running = c.running[:0]
	return n
}

func (c *hostCore) dispatchPointer(x, y float64) {
	for _, l := range c.pointer {
		l.fn(x, y)
	}
}

func (c *hostCore) dispatchResize(w, h int) {
	if w == c.width && h == c.height {
		return
	}
	c.width, c.height = w, h
	c.notifyResize()
}

// setViewport updates size and ratio together and notifies listeners if
// either changed. Listeners re-read DevicePixelRatio.
func (c *hostCore) setViewport(w, h int, ratio float64) {
	if w == c.width && h == c.height && ratio == c.ratio {
		return
	}
	c.width, c.height, c.ratio = w, h, ratio
	c.notifyResize()
}

func (c *hostCore) notifyResize() {
	for _, l := range c.resize {
		l.fn(c.width, c.height)
	}
}

// compose paints every attached surface and draws it onto dst, scaled from
// the surface's pixel size to dst's bounds.
func (c *hostCore) compose(dst *ebiten.Image) {
	b := dst.Bounds()
	for _, ct := range c.containers {
		for _, s := range ct.surfaces {
			img := s.Paint()
			if img == nil {
				continue
			}
			sb := img.Bounds()
			var op ebiten.DrawImageOptions
			op.GeoM.Scale(float64(b.Dx())/float64(sb.Dx()), float64(b.Dy())/float64(sb.Dy()))
			op.Filter = ebiten.FilterLinear
			dst.DrawImage(img, &op)
		}
	}
}

// --- Headless host ---

// HeadlessHost is a Host with no window. Frames, pointer movement and resizes
// are driven by calling Tick, MovePointer and Resize. Used by tests and
// RunHeadless.
type HeadlessHost struct {
	hostCore
}

// NewHeadlessHost creates a headless host with the given viewport and
// containers.
func NewHeadlessHost(w, h int, ids ...string) *HeadlessHost {
	return &HeadlessHost{hostCore: newHostCore(w, h, ids)}
}

// SetDevicePixelRatio sets the ratio reported to renderers constructed
// afterwards.
func (h *HeadlessHost) SetDevicePixelRatio(r float64) {
	h.ratio = r
}

// Tick runs one display refresh and returns the number of frame callbacks
// executed.
func (h *HeadlessHost) Tick() int {
	return h.tick()
}

// MovePointer notifies pointer listeners of a move to (x, y).
func (h *HeadlessHost) MovePointer(x, y float64) {
	h.dispatchPointer(x, y)
}

// Resize changes the viewport and notifies resize listeners. No-op when the
// size is unchanged.
func (h *HeadlessHost) Resize(w, hgt int) {
	h.dispatchResize(w, hgt)
}

// Compose paints all attached surfaces onto dst.
func (h *HeadlessHost) Compose(dst *ebiten.Image) {
	h.compose(dst)
}
