package backdrop

// syntheticKind identifies a queued synthetic event.
type syntheticKind uint8

const (
	syntheticMove syntheticKind = iota
	syntheticResize
)

// syntheticEvent represents a single injected host notification. Viewport
// coordinates are used, identical to real pointer input.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
	w, h int
}

// InjectPointerMove queues a pointer move to (x, y) in viewport pixels. The
// event is consumed on the next frame and routed through HandlePointerMove.
func (r *Renderer) InjectPointerMove(x, y float64) {
	if !r.started || r.disposed {
		return
	}
	r.injectQueue = append(r.injectQueue, syntheticEvent{kind: syntheticMove, x: x, y: y})
}

// InjectResize queues a viewport resize. The event is consumed on the next
// frame and routed through HandleResize.
func (r *Renderer) InjectResize(w, h int) {
	if !r.started || r.disposed {
		return
	}
	r.injectQueue = append(r.injectQueue, syntheticEvent{kind: syntheticResize, w: w, h: h})
}

// InjectPointerPath queues a linear pointer sweep from (fromX, fromY) to
// (toX, toY), one move per frame over the given number of frames. Minimum
// frames is 1 (a single move to the end point).
func (r *Renderer) InjectPointerPath(fromX, fromY, toX, toY float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		t := float64(i) / float64(frames)
		r.InjectPointerMove(fromX+(toX-fromX)*t, fromY+(toY-fromY)*t)
	}
}

// PendingInjections returns the number of queued synthetic events.
func (r *Renderer) PendingInjections() int {
	return len(r.injectQueue)
}

// processInjected pops one queued event and feeds it through the regular
// handler. Returns true if an event was consumed.
func (r *Renderer) processInjected() bool {
	if len(r.injectQueue) == 0 {
		return false
	}
	evt := r.injectQueue[0]
	copy(r.injectQueue, r.injectQueue[1:])
	r.injectQueue = r.injectQueue[:len(r.injectQueue)-1]

	switch evt.kind {
	case syntheticMove:
		r.HandlePointerMove(evt.x, evt.y)
	case syntheticResize:
		r.HandleResize(evt.w, evt.h)
	}
	return true
}
