package folio

// syntheticKind selects what a queued synthetic event does.
type syntheticKind uint8

const (
	synthScrollTo syntheticKind = iota
	synthScrollBy
	synthPointer
	synthLeave
	synthResize
)

// syntheticEvent is a single injected viewport event. Pointer coordinates
// are viewport-relative, identical to real cursor input.
type syntheticEvent struct {
	kind syntheticKind
	x, y float64
}

// InjectScroll queues an absolute scroll to y. The event is consumed on the
// next Update.
func (p *Page) InjectScroll(y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: synthScrollTo, y: y})
}

// InjectScrollBy queues a relative scroll, like a single wheel notch.
func (p *Page) InjectScrollBy(dy float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: synthScrollBy, y: dy})
}

// InjectPointer queues a pointer move to viewport coordinates (x, y).
func (p *Page) InjectPointer(x, y float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: synthPointer, x: x, y: y})
}

// InjectPointerLeave queues the pointer leaving the window.
func (p *Page) InjectPointerLeave() {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: synthLeave})
}

// InjectResize queues a viewport resize.
func (p *Page) InjectResize(width, height float64) {
	p.injectQueue = append(p.injectQueue, syntheticEvent{kind: synthResize, x: width, y: height})
}

// InjectScrollSweep queues a linear scroll from one position to another
// over the given number of frames. Minimum frames is 1.
func (p *Page) InjectScrollSweep(from, to float64, frames int) {
	if frames < 1 {
		frames = 1
	}
	for i := 1; i <= frames; i++ {
		p.InjectScroll(Lerp(from, to, float64(i)/float64(frames)))
	}
}

// processInjected pops one event from the inject queue and applies it to
// the viewport. Returns true if an event was consumed (real input should be
// skipped).
func (p *Page) processInjected() bool {
	if len(p.injectQueue) == 0 {
		return false
	}
	evt := p.injectQueue[0]
	copy(p.injectQueue, p.injectQueue[1:])
	p.injectQueue = p.injectQueue[:len(p.injectQueue)-1]

	vp := p.viewport
	switch evt.kind {
	case synthScrollTo:
		p.scrollTween = nil
		vp.ScrollTo(evt.y)
	case synthScrollBy:
		p.scrollTween = nil
		vp.ScrollBy(evt.y)
	case synthPointer:
		vp.MovePointer(evt.x, evt.y)
	case synthLeave:
		vp.LeavePointer()
	case synthResize:
		vp.Resize(evt.x, evt.y)
	}
	return true
}

// PendingInput returns the number of queued synthetic events.
func (p *Page) PendingInput() int { return len(p.injectQueue) }
