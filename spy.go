package folio

import "fmt"

const (
	// SpyOffset is how far below the viewport top the scroll spy looks for
	// the active section.
	SpyOffset = 100
	// ScrolledThreshold is the scroll offset past which the page counts as
	// scrolled.
	ScrolledThreshold = 50
)

// ScrollSpy tracks which section is under the navigation bar and whether the
// page has scrolled away from the top. The active section is the first one
// whose layout contains scrollY+SpyOffset; when none does, the previous one
// stays active.
type ScrollSpy struct {
	sections func() []*Scene
	vp       *Viewport
	handles  [2]CallbackHandle
	active   string
	scrolled bool
	onChange func(id string)
}

// NewScrollSpy creates a spy over the scenes returned by sections, read in
// document order on every update.
func NewScrollSpy(sections func() []*Scene) *ScrollSpy {
	return &ScrollSpy{sections: sections}
}

// OnChange registers fn to run whenever the active section changes.
func (s *ScrollSpy) OnChange(fn func(id string)) { s.onChange = fn }

// Mount subscribes to scroll and resize events. The scheduler is unused.
func (s *ScrollSpy) Mount(vp *Viewport, _ Scheduler) error {
	if s.vp != nil {
		return fmt.Errorf("scroll spy: %w", ErrAlreadyMounted)
	}
	s.vp = vp
	h := func(ViewportEvent) { s.Update() }
	s.handles[0] = vp.On(EventScroll, h)
	s.handles[1] = vp.On(EventResize, h)
	s.Update()
	return nil
}

// Unmount removes both listeners. The last state is kept.
func (s *ScrollSpy) Unmount() {
	for i := range s.handles {
		s.handles[i].Remove()
		s.handles[i] = CallbackHandle{}
	}
	s.vp = nil
}

// Mounted reports whether the spy is listening to a viewport.
func (s *ScrollSpy) Mounted() bool { return s.vp != nil }

// Update recomputes the state from the current scroll offset.
func (s *ScrollSpy) Update() {
	if s.vp == nil {
		return
	}
	y := s.vp.ScrollY()
	s.scrolled = y > ScrolledThreshold
	mark := y + SpyOffset
	present := false
	for _, sc := range s.sections() {
		if sc.ID() == s.active {
			present = true
		}
		r, ok := sc.Element().Bounds()
		if !ok || mark < r.Y || mark >= r.Bottom() {
			continue
		}
		if id := sc.ID(); id != s.active {
			s.active = id
			Logger().Debug("active section", "id", id, "scrollY", y)
			if s.onChange != nil {
				s.onChange(id)
			}
		}
		return
	}
	// The previous section stays active unless it was removed.
	if !present {
		s.active = ""
	}
}

// Active returns the active section's ID, or false before any section has
// been under the mark.
func (s *ScrollSpy) Active() (string, bool) { return s.active, s.active != "" }

// Scrolled reports whether the page is scrolled past ScrolledThreshold.
func (s *ScrollSpy) Scrolled() bool { return s.scrolled }
