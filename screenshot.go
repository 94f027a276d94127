package folio

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
)

// DefaultScreenshotDir is where Run writes captured frames when the page has
// no directory set.
const DefaultScreenshotDir = "screenshots"

// Screenshot queues a labeled capture of the next drawn frame. Pages only
// record the request; a host such as Run performs the capture after drawing.
func (p *Page) Screenshot(label string) {
	p.screenshotQueue = append(p.screenshotQueue, label)
}

// SetScreenshotDir sets the output directory for captured frames.
func (p *Page) SetScreenshotDir(dir string) { p.screenshotDir = dir }

// PendingScreenshots returns the queued capture labels.
func (p *Page) PendingScreenshots() []string { return p.screenshotQueue }

// flushScreenshots reads the rendered frame once and writes it for every
// queued label.
func (p *Page) flushScreenshots(screen *ebiten.Image) {
	if len(p.screenshotQueue) == 0 {
		return
	}
	bounds := screen.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	pixels := make([]byte, 4*w*h)
	screen.ReadPixels(pixels)
	p.writeScreenshots(unpremultiply(pixels, w, h), time.Now())
}

// writeScreenshots writes img once per queued label and clears the queue.
// Failures are logged; a failed capture never stops the page.
func (p *Page) writeScreenshots(img *image.NRGBA, now time.Time) []string {
	defer func() { p.screenshotQueue = p.screenshotQueue[:0] }()

	dir := p.screenshotDir
	if dir == "" {
		dir = DefaultScreenshotDir
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		Logger().Error("screenshot directory", "dir", dir, "error", err)
		return nil
	}
	stamp := now.Format("20060102_150405")
	var written []string
	for _, label := range p.screenshotQueue {
		path := filepath.Join(dir, fmt.Sprintf("%s_%s.png", stamp, sanitizeLabel(label)))
		if err := writePNG(path, img); err != nil {
			Logger().Error("screenshot", "label", label, "error", err)
			continue
		}
		Logger().Info("screenshot written", "path", path, "scrollY", p.viewport.ScrollY())
		written = append(written, path)
	}
	return written
}

// unpremultiply converts ebiten's premultiplied RGBA pixels to straight
// alpha.
func unpremultiply(pixels []byte, w, h int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for i := 0; i+3 < len(pixels) && i+3 < len(img.Pix); i += 4 {
		r, g, b, a := pixels[i], pixels[i+1], pixels[i+2], pixels[i+3]
		if a > 0 && a < 255 {
			r = uint8(min(int(r)*255/int(a), 255))
			g = uint8(min(int(g)*255/int(a), 255))
			b = uint8(min(int(b)*255/int(a), 255))
		}
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = r, g, b, a
	}
	return img
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("encode %s: %w", path, err)
	}
	return f.Close()
}

// sanitizeLabel keeps letters, digits, '-' and '.', replacing everything
// else with '_'. Empty labels become "unlabeled".
func sanitizeLabel(label string) string {
	label = strings.TrimSpace(label)
	if label == "" {
		return "unlabeled"
	}
	var b strings.Builder
	b.Grow(len(label))
	for _, r := range label {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z',
			r >= '0' && r <= '9', r == '-', r == '.':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	return b.String()
}
