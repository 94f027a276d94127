package folio

import (
	"errors"
	"testing"
)

func TestInViewFiresOnce(t *testing.T) {
	vp := NewViewport(1000, 800)
	enters := 0
	v, err := NewInView(NewBlock(Rect{Y: 1000, Width: 100, Height: 100}), InViewConfig{
		Once:    true,
		OnEnter: func() { enters++ },
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := v.Mount(vp, nil); err != nil {
		t.Fatal(err)
	}
	defer v.Unmount()

	if v.InView() || enters != 0 {
		t.Fatal("element below the fold reported in view")
	}
	vp.ScrollTo(150)
	if v.InView() {
		t.Error("element 50px below the fold reported in view")
	}
	vp.ScrollTo(250)
	if !v.InView() || enters != 1 {
		t.Errorf("in view %v enters %d", v.InView(), enters)
	}
	if vp.ListenerCount() != 0 {
		t.Errorf("once tracker kept %d listeners", vp.ListenerCount())
	}
	vp.ScrollTo(5000)
	vp.ScrollTo(250)
	if enters != 1 || !v.Fired() {
		t.Errorf("enters = %d", enters)
	}
}

func TestInViewEdgeTouchCounts(t *testing.T) {
	vp := NewViewport(1000, 800)
	v, _ := NewInView(NewBlock(Rect{Y: 800, Width: 100, Height: 100}), InViewConfig{})
	if err := v.Mount(vp, nil); err != nil {
		t.Fatal(err)
	}
	defer v.Unmount()
	if !v.InView() {
		t.Error("element touching the bottom edge should count as in view")
	}
}

func TestInViewMargin(t *testing.T) {
	vp := NewViewport(1000, 800)
	v, _ := NewInView(NewBlock(Rect{Y: 850, Width: 100, Height: 100}), InViewConfig{Margin: 100})
	if err := v.Mount(vp, nil); err != nil {
		t.Fatal(err)
	}
	defer v.Unmount()
	vp.ScrollTo(100)
	if v.InView() {
		t.Error("margin should delay entry")
	}
	vp.ScrollTo(150)
	if !v.InView() {
		t.Error("element at the inset edge should be in view")
	}
}

func TestInViewEnterLeave(t *testing.T) {
	vp := NewViewport(1000, 800)
	var log []string
	v, _ := NewInView(NewBlock(Rect{Y: 1000, Width: 100, Height: 100}), InViewConfig{
		OnEnter: func() { log = append(log, "enter") },
		OnLeave: func() { log = append(log, "leave") },
	})
	if err := v.Mount(vp, nil); err != nil {
		t.Fatal(err)
	}
	vp.ScrollTo(500)
	vp.ScrollTo(1200)
	vp.ScrollTo(600)
	vp.Resize(1000, 200)
	want := []string{"enter", "leave", "enter", "leave"}
	if len(log) != len(want) {
		t.Fatalf("log = %v, want %v", log, want)
	}
	for i := range want {
		if log[i] != want[i] {
			t.Fatalf("log = %v, want %v", log, want)
		}
	}
	v.Unmount()
	if vp.ListenerCount() != 0 {
		t.Error("listeners left after Unmount")
	}
}

func TestInViewUnlaidElement(t *testing.T) {
	vp := NewViewport(1000, 800)
	b := NewBlock(Rect{})
	b.Clear()
	v, _ := NewInView(b, InViewConfig{})
	if err := v.Mount(vp, nil); err != nil {
		t.Fatal(err)
	}
	defer v.Unmount()
	if v.InView() {
		t.Error("element without layout reported in view")
	}
	if err := v.Mount(vp, nil); !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("err = %v", err)
	}
}
