package backdrop

import (
	"math"
	"sync/atomic"

	"github.com/hajimehoshi/ebiten/v2"
)

// RunConfig holds optional configuration for Run.
type RunConfig struct {
	// Title sets the window title.
	Title string
	// Width and Height set the initial window size in logical pixels.
	// Defaults to 1280x720.
	Width, Height int
}

// WindowHost is a Host backed by an Ebitengine window. The window's client
// area is the viewport; the cursor drives pointer notifications and each
// game tick is one display refresh. WindowHost implements ebiten.Game.
type WindowHost struct {
	hostCore

	cursorX, cursorY int
	cursorSeen       bool
	closed           atomic.Bool
}

// NewWindowHost creates a window host with an initial viewport and the
// given containers. Renderers can be constructed against it before Run.
func NewWindowHost(w, h int, ids ...string) *WindowHost {
	if w <= 0 || h <= 0 {
		w, h = 1280, 720
	}
	host := &WindowHost{hostCore: newHostCore(w, h, ids)}
	if m := ebiten.Monitor(); m != nil {
		host.ratio = m.DeviceScaleFactor()
	}
	return host
}

// Close ends the game loop at the next tick. Safe to call from any
// goroutine.
func (h *WindowHost) Close() {
	h.closed.Store(true)
}

// Update polls the cursor and runs pending frame callbacks.
func (h *WindowHost) Update() error {
	if h.closed.Load() {
		return ebiten.Termination
	}
	cx, cy := ebiten.CursorPosition()
	if !h.cursorSeen || cx != h.cursorX || cy != h.cursorY {
		h.cursorX, h.cursorY, h.cursorSeen = cx, cy, true
		// CursorPosition is in layout units, which are device pixels here.
		r := capPixelRatio(h.ratio)
		h.dispatchPointer(float64(cx)/r, float64(cy)/r)
	}
	h.tick()
	return nil
}

// Draw composites every attached surface onto the screen.
func (h *WindowHost) Draw(screen *ebiten.Image) {
	h.compose(screen)
}

// Layout is required by ebiten.Game; LayoutF supersedes it.
func (h *WindowHost) Layout(outsideWidth, outsideHeight int) (int, int) {
	panic("backdrop: Layout should not be called; LayoutF is implemented")
}

// LayoutF tracks the window size and monitor scale, notifying resize
// listeners when either changes, and lays the screen out in device pixels.
func (h *WindowHost) LayoutF(outsideWidth, outsideHeight float64) (float64, float64) {
	ratio := 1.0
	if m := ebiten.Monitor(); m != nil {
		ratio = m.DeviceScaleFactor()
	}
	w := max(int(math.Round(outsideWidth)), 1)
	hgt := max(int(math.Round(outsideHeight)), 1)
	h.setViewport(w, hgt, ratio)
	r := capPixelRatio(ratio)
	return outsideWidth * r, outsideHeight * r
}

// Run opens a resizable window and drives host until the window is closed
// or host.Close is called. It blocks and must be called from the main
// goroutine.
func Run(host *WindowHost, cfg RunConfig) error {
	w, h := cfg.Width, cfg.Height
	if w <= 0 || h <= 0 {
		w, h = host.Viewport()
	}
	if cfg.Title != "" {
		ebiten.SetWindowTitle(cfg.Title)
	}
	ebiten.SetWindowSize(w, h)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(ebiten.SyncWithFPS)
	return ebiten.RunGame(host)
}
