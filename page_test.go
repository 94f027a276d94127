package folio

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/tanema/gween/ease"
)

type recordingSink struct {
	events []SceneEvent
}

func (r *recordingSink) EmitEvent(e SceneEvent) { r.events = append(r.events, e) }

func (r *recordingSink) labels() []string {
	out := make([]string, len(r.events))
	for i, e := range r.events {
		out[i] = e.SceneID + ":" + e.Type.String()
	}
	return out
}

// newTestPage stacks hero, about and contact at 800px each in a 1000x800
// viewport. Content is 2400 tall, so the maximum scroll is 1600.
func newTestPage(t *testing.T, reduced bool, sink EventSink) *Page {
	t.Helper()
	p := NewPage(1000, 800)
	p.Viewport().SetReducedMotion(reduced)
	if sink != nil {
		p.SetEventSink(sink)
	}
	ids := []string{"hero", "about", "contact"}
	for i, id := range ids {
		s, err := NewScene(SceneConfig{
			ID:      id,
			Element: NewBlock(Rect{Y: float64(i) * 800, Width: 1000, Height: 800}),
			IsFirst: i == 0,
			IsLast:  i == len(ids)-1,
		})
		if err != nil {
			t.Fatal(err)
		}
		if err := p.AddScene(s); err != nil {
			t.Fatal(err)
		}
	}
	t.Cleanup(p.Close)
	return p
}

func TestPageAddScene(t *testing.T) {
	p := newTestPage(t, true, nil)
	if got := p.Viewport().ContentHeight(); got != 2400 {
		t.Errorf("content height = %v", got)
	}
	if len(p.Scenes()) != 3 || p.Scenes()[1].ID() != "about" {
		t.Errorf("scenes = %v", p.Scenes())
	}
	dup, _ := NewScene(SceneConfig{ID: "about", Element: NewBlock(Rect{})})
	if err := p.AddScene(dup); !errors.Is(err, ErrDuplicateScene) {
		t.Errorf("err = %v, want ErrDuplicateScene", err)
	}
	if dup.Mounted() {
		t.Error("rejected scene was mounted")
	}
}

func TestPageSceneEvents(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPage(t, true, sink)

	// Hero is half way through its range at the top of the page.
	if got := sink.labels(); len(got) != 1 || got[0] != "hero:entered" {
		t.Fatalf("events at mount = %v", got)
	}
	p.InjectScroll(400)
	if err := p.Update(frame); err != nil {
		t.Fatal(err)
	}
	p.InjectScroll(1600)
	if err := p.Update(frame); err != nil {
		t.Fatal(err)
	}
	want := []string{"hero:entered", "about:entered", "hero:exited", "about:exited", "contact:entered"}
	got := sink.labels()
	if strings.Join(got, ",") != strings.Join(want, ",") {
		t.Errorf("events = %v, want %v", got, want)
	}
	last := sink.events[len(sink.events)-1]
	if last.ScrollY != 1600 || !approxEqual(last.Progress, 0.5, epsilon) {
		t.Errorf("last event = %+v", last)
	}
}

func TestPageUpdateDrivesSprings(t *testing.T) {
	p := newTestPage(t, false, nil)
	about, _ := p.Scene("about")
	if about.Style().Opacity != 0 {
		t.Fatalf("about opacity at top = %v", about.Style().Opacity)
	}
	p.InjectScroll(800)
	for i := 0; i < 600; i++ {
		if err := p.Update(frame); err != nil {
			t.Fatal(err)
		}
	}
	if st := about.Style(); st.Opacity != 1 || st.Scale != 1 {
		t.Errorf("about style = %+v", st)
	}
	if p.Frames().Pending() != 0 {
		t.Errorf("pending frames = %d at rest", p.Frames().Pending())
	}
	if p.Clock() != 600*frame {
		t.Errorf("clock = %v", p.Clock())
	}
}

func TestPageAnchor(t *testing.T) {
	p := newTestPage(t, false, nil)
	tests := []struct {
		id   string
		want float64
		ok   bool
	}{
		{"hero", 0, true},
		{"about", 800, true},
		{"contact", 1600, true},
		{"missing", 0, false},
	}
	for _, tt := range tests {
		got, ok := p.Anchor(tt.id)
		if got != tt.want || ok != tt.ok {
			t.Errorf("Anchor(%q) = %v, %v", tt.id, got, ok)
		}
	}
	if err := p.ScrollToAnchor("missing", 0, nil); !errors.Is(err, ErrUnknownScene) {
		t.Errorf("err = %v", err)
	}
}

func TestPageScrollTween(t *testing.T) {
	p := newTestPage(t, false, nil)
	if err := p.ScrollToAnchor("about", time.Second, ease.Linear); err != nil {
		t.Fatal(err)
	}
	if !p.Scrolling() {
		t.Fatal("expected a smooth scroll")
	}
	_ = p.Update(500 * time.Millisecond)
	if got := p.Viewport().ScrollY(); !approxEqual(got, 400, 1e-3) {
		t.Errorf("scroll half way = %v", got)
	}
	_ = p.Update(500 * time.Millisecond)
	if got := p.Viewport().ScrollY(); got != 800 || p.Scrolling() {
		t.Errorf("scroll = %v scrolling %v", got, p.Scrolling())
	}
}

func TestPageScrollTweenCancelledByInput(t *testing.T) {
	p := newTestPage(t, false, nil)
	p.ScrollTo(1600, time.Second, nil)
	_ = p.Update(frame)
	p.InjectScrollBy(-10)
	_ = p.Update(frame)
	if p.Scrolling() {
		t.Error("injected scroll should cancel the smooth scroll")
	}
}

func TestPageScrollReducedMotionJumps(t *testing.T) {
	p := newTestPage(t, true, nil)
	p.ScrollTo(1200, time.Second, nil)
	if p.Scrolling() || p.Viewport().ScrollY() != 1200 {
		t.Errorf("scroll = %v scrolling %v", p.Viewport().ScrollY(), p.Scrolling())
	}
}

func TestPageSnapshot(t *testing.T) {
	p := newTestPage(t, true, nil)
	p.Viewport().ScrollTo(800)
	snap := p.Snapshot()
	if len(snap) != 3 {
		t.Fatalf("len = %d", len(snap))
	}
	about := snap[1]
	if about.ID != "about" || about.Progress != 0.5 || !about.Visible || about.Style.Opacity != 1 {
		t.Errorf("about = %+v", about)
	}
	if snap[0].Visible {
		t.Error("hero visible at its exit point")
	}
}

func TestPageScrollSpy(t *testing.T) {
	p := newTestPage(t, true, nil)
	var changes []string
	p.OnActiveSection(func(id string) { changes = append(changes, id) })

	tests := []struct {
		scrollY  float64
		active   string
		scrolled bool
	}{
		{0, "hero", false},
		{50, "hero", false},
		{51, "hero", true},
		{699, "hero", true},
		// The mark sits 100px below the top, so about takes over at 700.
		{700, "about", true},
		{1600, "contact", true},
		{10, "hero", false},
	}
	for _, tt := range tests {
		p.Viewport().ScrollTo(tt.scrollY)
		id, ok := p.ActiveSection()
		if !ok || id != tt.active || p.Scrolled() != tt.scrolled {
			t.Errorf("scrollY %v: active %q (%v) scrolled %v, want %q %v",
				tt.scrollY, id, ok, p.Scrolled(), tt.active, tt.scrolled)
		}
	}
	if got := strings.Join(changes, ","); got != "about,contact,hero" {
		t.Errorf("changes = %s", got)
	}

	p.Viewport().ScrollTo(800)
	for _, s := range p.Snapshot() {
		if s.Active != (s.ID == "about") {
			t.Errorf("snapshot %s active = %v", s.ID, s.Active)
		}
	}

	p.RemoveScene("about")
	if id, ok := p.ActiveSection(); ok {
		t.Errorf("removed section still active: %q", id)
	}

	p.Close()
	p.Viewport().ScrollTo(0)
	if !p.Scrolled() {
		t.Error("spy updated after Close")
	}
}

func TestPageComponents(t *testing.T) {
	p := newTestPage(t, true, nil)
	base := p.Viewport().ListenerCount()
	cursor := NewCursorFollower(DefaultCursorConfig)
	if err := p.Add(cursor); err != nil {
		t.Fatal(err)
	}
	if len(p.Components()) != 1 || p.Viewport().ListenerCount() != base+2 {
		t.Errorf("components %d listeners %d", len(p.Components()), p.Viewport().ListenerCount())
	}
	if err := p.Add(cursor); !errors.Is(err, ErrAlreadyMounted) {
		t.Errorf("err = %v", err)
	}
	if !p.Remove(cursor) || p.Remove(cursor) {
		t.Error("Remove")
	}
	if p.Viewport().ListenerCount() != base {
		t.Error("listener leak after Remove")
	}
}

func TestPageRemoveScene(t *testing.T) {
	sink := &recordingSink{}
	p := newTestPage(t, true, sink)
	if !p.RemoveScene("hero") || p.RemoveScene("hero") {
		t.Fatal("RemoveScene")
	}
	if _, ok := p.Scene("hero"); ok {
		t.Error("hero still present")
	}
	n := len(sink.events)
	p.Viewport().ScrollTo(1600)
	for _, e := range sink.events[n:] {
		if e.SceneID == "hero" {
			t.Error("removed scene still emitting")
		}
	}
}

func TestPageRelayout(t *testing.T) {
	p := newTestPage(t, true, nil)
	contact, _ := p.Scene("contact")
	contact.Element().(*Block).Place(Rect{Y: 1600, Width: 1000, Height: 1600})
	p.Relayout()
	if got := p.Viewport().ContentHeight(); got != 3200 {
		t.Errorf("content height = %v", got)
	}
	p.Viewport().ScrollTo(2400)
	if got := p.Viewport().ScrollY(); got != 2400 {
		t.Errorf("scroll = %v", got)
	}
}

func TestPageClose(t *testing.T) {
	p := newTestPage(t, false, nil)
	_ = p.Add(NewCursorFollower(CursorConfig{}))
	p.InjectScroll(800)
	_ = p.Update(frame)
	if p.Frames().Pending() == 0 {
		t.Fatal("expected settling scenes")
	}
	p.Close()
	if p.Viewport().ListenerCount() != 0 || p.Frames().Pending() != 0 {
		t.Errorf("listeners %d pending %d", p.Viewport().ListenerCount(), p.Frames().Pending())
	}
	if len(p.Scenes()) != 0 || len(p.Components()) != 0 {
		t.Error("Close kept scenes or components")
	}
	p.Close()
}

func TestPageUpdateFunc(t *testing.T) {
	p := newTestPage(t, true, nil)
	want := errors.New("stop")
	calls := 0
	p.SetUpdateFunc(func() error {
		calls++
		return want
	})
	if err := p.Update(frame); !errors.Is(err, want) || calls != 1 {
		t.Errorf("err = %v calls %d", err, calls)
	}
}

func TestPageFloatingShapes(t *testing.T) {
	p := NewPage(100, 100)
	shapes := Scatter(NewSeededRand(1), DensityLight)
	p.SetFloatingShapes(shapes)
	if len(p.FloatingShapes()) != 8 {
		t.Errorf("shapes = %d", len(p.FloatingShapes()))
	}
}
