package folio

import "testing"

func TestInjectScrollOnePerFrame(t *testing.T) {
	p := newTestPage(t, true, nil)
	p.InjectScroll(100)
	p.InjectScrollBy(50)
	if p.PendingInput() != 2 {
		t.Fatalf("expected 2 queued events, got %d", p.PendingInput())
	}

	_ = p.Update(frame)
	if p.PendingInput() != 1 || p.Viewport().ScrollY() != 100 {
		t.Fatalf("after frame 1: pending %d scroll %v", p.PendingInput(), p.Viewport().ScrollY())
	}
	_ = p.Update(frame)
	if p.PendingInput() != 0 || p.Viewport().ScrollY() != 150 {
		t.Fatalf("after frame 2: pending %d scroll %v", p.PendingInput(), p.Viewport().ScrollY())
	}
}

func TestInjectScrollSweep(t *testing.T) {
	p := newTestPage(t, true, nil)
	p.InjectScrollSweep(0, 1000, 4)
	if p.PendingInput() != 4 {
		t.Fatalf("expected 4 queued events, got %d", p.PendingInput())
	}
	want := []float64{250, 500, 750, 1000}
	for i, w := range want {
		_ = p.Update(frame)
		if got := p.Viewport().ScrollY(); got != w {
			t.Errorf("frame %d: scroll %v, want %v", i, got, w)
		}
	}

	p.InjectScrollSweep(0, 10, 0)
	if p.PendingInput() != 1 {
		t.Errorf("zero frames should clamp to one, got %d", p.PendingInput())
	}
}

func TestInjectPointerAndResize(t *testing.T) {
	p := newTestPage(t, true, nil)
	cursor := NewCursorFollower(CursorConfig{})
	if err := p.Add(cursor); err != nil {
		t.Fatal(err)
	}
	p.InjectPointer(40, 60)
	p.InjectPointerLeave()
	p.InjectResize(600, 400)

	_ = p.Update(frame)
	if !cursor.Visible() || cursor.Ring() != (Vec2{40, 60}) {
		t.Errorf("cursor visible %v ring %v", cursor.Visible(), cursor.Ring())
	}
	_ = p.Update(frame)
	if cursor.Visible() {
		t.Error("cursor visible after leave")
	}
	_ = p.Update(frame)
	if w, h := p.Viewport().Size(); w != 600 || h != 400 {
		t.Errorf("size = %vx%v", w, h)
	}
}

func TestInjectClampsToContent(t *testing.T) {
	p := newTestPage(t, true, nil)
	p.InjectScroll(99999)
	p.InjectScrollBy(-99999)
	_ = p.Update(frame)
	if got := p.Viewport().ScrollY(); got != 1600 {
		t.Errorf("scroll = %v, want 1600", got)
	}
	_ = p.Update(frame)
	if got := p.Viewport().ScrollY(); got != 0 {
		t.Errorf("scroll = %v, want 0", got)
	}
}
