package folio

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestSanitizeLabel(t *testing.T) {
	tests := map[string]string{
		"":            "unlabeled",
		"  ":          "unlabeled",
		"hero":        "hero",
		"about/exit":  "about_exit",
		"v1.2-final":  "v1.2-final",
		" work cards": "work_cards",
	}
	for in, want := range tests {
		if got := sanitizeLabel(in); got != want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestUnpremultiply(t *testing.T) {
	img := unpremultiply([]byte{
		128, 64, 0, 128, // half-transparent
		10, 20, 30, 255, // opaque
		0, 0, 0, 0, // clear
	}, 3, 1)
	want := []byte{255, 127, 0, 128, 10, 20, 30, 255, 0, 0, 0, 0}
	for i, w := range want {
		if img.Pix[i] != w {
			t.Fatalf("Pix = %v, want %v", img.Pix, want)
		}
	}
}

func TestWriteScreenshots(t *testing.T) {
	dir := t.TempDir()
	p := NewPage(100, 100)
	p.SetScreenshotDir(dir)
	p.Screenshot("hero")
	p.Screenshot("about exit")
	if len(p.PendingScreenshots()) != 2 {
		t.Fatalf("pending = %d", len(p.PendingScreenshots()))
	}

	img := image.NewNRGBA(image.Rect(0, 0, 4, 2))
	now := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	written := p.writeScreenshots(img, now)
	if len(written) != 2 || len(p.PendingScreenshots()) != 0 {
		t.Fatalf("written %v pending %d", written, len(p.PendingScreenshots()))
	}
	if want := filepath.Join(dir, "20260102_030405_about_exit.png"); written[1] != want {
		t.Errorf("path = %q, want %q", written[1], want)
	}

	f, err := os.Open(written[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 4 || b.Dy() != 2 {
		t.Errorf("bounds = %v", b)
	}
}

func TestRunnerScreenshotStep(t *testing.T) {
	p := newTestPage(t, true, nil)
	runScript(t, p, `{"steps": [
		{"action": "scroll", "y": 800},
		{"action": "screenshot", "label": "about"}
	]}`)
	if got := p.PendingScreenshots(); len(got) != 1 || got[0] != "about" {
		t.Errorf("pending = %v", got)
	}
}
