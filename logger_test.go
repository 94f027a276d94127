package folio

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultSilent(t *testing.T) {
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("default logger should be disabled")
	}
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	vp := NewViewport(100, 100)
	s, _ := NewScene(SceneConfig{ID: "hero", Element: NewBlock(Rect{Height: 100})})
	if err := s.Mount(vp, NewFrameQueue()); err != nil {
		t.Fatal(err)
	}
	s.Unmount()
	out := buf.String()
	if !strings.Contains(out, "scene mounted") || !strings.Contains(out, "id=hero") {
		t.Errorf("missing mount log:\n%s", out)
	}
	if !strings.Contains(out, "scene unmounted") {
		t.Errorf("missing unmount log:\n%s", out)
	}

	SetLogger(nil)
	if Logger().Enabled(context.Background(), slog.LevelError) {
		t.Error("SetLogger(nil) should restore the silent logger")
	}
}
