package folio

import (
	"bytes"
	"fmt"
	"log/slog"
	"strings"
	"testing"
)

func TestDebugMode_ClosedPagePanics(t *testing.T) {
	p := newTestPage(t, true, nil)
	p.SetDebugMode(true)
	p.Close()

	for _, op := range []string{"Update", "AddScene", "Add"} {
		t.Run(op, func(t *testing.T) {
			defer func() {
				r := recover()
				if r == nil {
					t.Fatalf("expected panic on %s after Close, got none", op)
				}
				msg := fmt.Sprint(r)
				if !strings.Contains(msg, "closed page") || !strings.Contains(msg, op) {
					t.Errorf("panic message = %q", msg)
				}
			}()
			switch op {
			case "Update":
				_ = p.Update(frame)
			case "AddScene":
				s, _ := NewScene(SceneConfig{ID: "late", Element: NewBlock(Rect{})})
				_ = p.AddScene(s)
			case "Add":
				_ = p.Add(NewCursorFollower(CursorConfig{}))
			}
		})
	}
}

func TestDebugMode_OffDoesNotPanic(t *testing.T) {
	p := newTestPage(t, true, nil)
	p.Close()
	if err := p.Update(frame); err != nil {
		t.Fatal(err)
	}
}

func TestDebugMode_FrameStatsLogged(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	p := newTestPage(t, false, nil)
	p.SetDebugMode(true)
	p.InjectScroll(400)
	_ = p.Update(frame)

	out := buf.String()
	for _, want := range []string{"msg=frame", "callbacks=", "settling=", "scrollY=400"} {
		if !strings.Contains(out, want) {
			t.Errorf("debug output missing %q:\n%s", want, out)
		}
	}
	if strings.Contains(out, "listener count exceeds") {
		t.Error("unexpected listener warning")
	}
}

func TestDebugMode_ListenerWarning(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelWarn})))
	defer SetLogger(nil)

	p := NewPage(100, 100)
	p.SetDebugMode(true)
	p.debugLog(frameStats{listeners: debugMaxListeners + 1})
	if !strings.Contains(buf.String(), "listener count exceeds threshold") {
		t.Errorf("expected warning, got %q", buf.String())
	}
	if strings.Contains(buf.String(), "msg=frame") {
		t.Error("frame stats logged at warn level")
	}
}
