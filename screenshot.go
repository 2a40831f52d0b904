package backdrop

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
)

// DefaultScreenshotDir is where Screenshot writes PNGs unless overridden
// with WithScreenshotDir.
const DefaultScreenshotDir = "screenshots"

// Screenshot queues a labeled screenshot to be captured at the end of the
// next Render. The resulting PNG is written to the screenshot directory with
// a timestamped filename.
func (r *Renderer) Screenshot(label string) {
	if !r.started || r.disposed {
		return
	}
	r.screenshotQueue = append(r.screenshotQueue, label)
}

// flushScreenshots captures the rendered frame for every queued label and
// writes each as a PNG file. Called at the end of Render.
func (r *Renderer) flushScreenshots(frame *ebiten.Image) {
	if len(r.screenshotQueue) == 0 {
		return
	}
	defer func() { r.screenshotQueue = r.screenshotQueue[:0] }()

	if err := os.MkdirAll(r.screenshotDir, 0o755); err != nil {
		r.log.Warn("screenshot: create directory", zap.String("dir", r.screenshotDir), zap.Error(err))
		return
	}

	bounds := frame.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	frame.ReadPixels(pixels)

	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	unpremultiply(pixels, img.Pix)

	stamp := time.Now().Format("20060102_150405")
	for _, label := range r.screenshotQueue {
		name := fmt.Sprintf("%s_f%06d_%s.png", stamp, r.frames, sanitizeLabel(label))
		path := filepath.Join(r.screenshotDir, name)
		if err := writePNG(path, img); err != nil {
			r.log.Warn("screenshot", zap.Error(err))
			continue
		}
		r.log.Info("screenshot written", zap.String("path", path))
	}
}

// unpremultiply converts premultiplied RGBA bytes to straight alpha.
func unpremultiply(src, dst []byte) {
	n := min(len(src), len(dst)) / 4 * 4
	for i := 0; i < n; i += 4 {
		c := color.NRGBAModel.Convert(color.RGBA{src[i], src[i+1], src[i+2], src[i+3]}).(color.NRGBA)
		dst[i], dst[i+1], dst[i+2], dst[i+3] = c.R, c.G, c.B, c.A
	}
}

// writePNG encodes img to path, favouring speed over size.
func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	w := bufio.NewWriter(f)
	enc := png.Encoder{CompressionLevel: png.BestSpeed}
	if err := enc.Encode(w, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	if err := w.Flush(); err != nil {
		f.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps ASCII letters, digits, '-' and '.', replaces every
// other rune with '_', and falls back to "unlabeled" for blank labels.
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '.':
			return r
		}
		return '_'
	}, label)
}
