package folio

import "fmt"

// InView reports when an element first intersects the viewport, optionally
// shrunk by a margin. With Once set it detaches itself after firing.
type InView struct {
	el      Element
	margin  float64
	once    bool
	onEnter func()
	onLeave func()

	inView  bool
	fired   bool
	vp      *Viewport
	handles [2]CallbackHandle
	mounted bool
}

// InViewConfig configures an InView tracker.
type InViewConfig struct {
	// Margin shrinks the viewport on every side; negative grows it.
	Margin float64
	// Once stops tracking after the first entry.
	Once    bool
	OnEnter func()
	OnLeave func()
}

// NewInView creates a tracker for el.
func NewInView(el Element, cfg InViewConfig) (*InView, error) {
	if missingElement(el) {
		return nil, fmt.Errorf("in-view tracker: %w", ErrNoElement)
	}
	return &InView{el: el, margin: cfg.Margin, once: cfg.Once, onEnter: cfg.OnEnter, onLeave: cfg.OnLeave}, nil
}

// Mount starts tracking. The check runs immediately so elements already in
// view fire at mount.
func (v *InView) Mount(vp *Viewport, _ Scheduler) error {
	if v.mounted {
		return fmt.Errorf("in-view tracker: %w", ErrAlreadyMounted)
	}
	v.vp = vp
	v.mounted = true
	h := func(ViewportEvent) { v.Check() }
	v.handles[0] = vp.On(EventScroll, h)
	v.handles[1] = vp.On(EventResize, h)
	v.Check()
	return nil
}

// Unmount stops tracking.
func (v *InView) Unmount() {
	if !v.mounted {
		return
	}
	v.detach()
	v.mounted = false
	v.vp = nil
}

func (v *InView) detach() {
	for i := range v.handles {
		v.handles[i].Remove()
		v.handles[i] = CallbackHandle{}
	}
}

// Check re-evaluates visibility against the viewport.
func (v *InView) Check() {
	if v.vp == nil || (v.once && v.fired) {
		return
	}
	r, ok := v.el.Bounds()
	in := ok && r.Intersects(v.vp.Visible().Inset(v.margin))
	if in == v.inView {
		return
	}
	v.inView = in
	if in {
		v.fired = true
		if v.onEnter != nil {
			v.onEnter()
		}
		if v.once {
			v.detach()
		}
		return
	}
	if v.onLeave != nil {
		v.onLeave()
	}
}

// InView reports the last evaluated state.
func (v *InView) InView() bool { return v.inView }

// Fired reports whether the element has entered the viewport at least once.
func (v *InView) Fired() bool { return v.fired }
