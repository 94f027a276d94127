package folio

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

var (
	// ErrNoElement is returned when a tracked element reference is missing.
	ErrNoElement = errors.New("folio: tracked element is nil")
	// ErrUnknownEdge is returned for an offset token that is not an edge name,
	// a fraction or a percentage.
	ErrUnknownEdge = errors.New("folio: unknown offset edge")
)

// Element is something laid out on the page whose scroll progress can be
// tracked. Bounds reports false until the element has a layout.
type Element interface {
	Bounds() (Rect, bool)
}

// Block is a settable Element. The zero Block has no layout.
type Block struct {
	rect    Rect
	laidOut bool
}

// NewBlock returns a Block already laid out at r.
func NewBlock(r Rect) *Block {
	return &Block{rect: r, laidOut: true}
}

// Place lays the block out at r.
func (b *Block) Place(r Rect) {
	b.rect = r
	b.laidOut = true
}

// Clear removes the block's layout.
func (b *Block) Clear() {
	b.laidOut = false
}

// Bounds implements Element. A nil block has no layout.
func (b *Block) Bounds() (Rect, bool) {
	if b == nil {
		return Rect{}, false
	}
	return b.rect, b.laidOut
}

// missingElement reports whether el is nil, including a nil *Block stored
// in the interface.
func missingElement(el Element) bool {
	if el == nil {
		return true
	}
	b, ok := el.(*Block)
	return ok && b == nil
}

// Edge is a position along an axis as a fraction of a length: 0 is the start,
// 1 the end.
type Edge float64

const (
	EdgeStart  Edge = 0
	EdgeCenter Edge = 0.5
	EdgeEnd    Edge = 1
)

// ParseEdge accepts "start", "center", "end", a plain number ("0.25") or a
// percentage ("40%").
func ParseEdge(s string) (Edge, error) {
	switch s {
	case "start":
		return EdgeStart, nil
	case "center":
		return EdgeCenter, nil
	case "end":
		return EdgeEnd, nil
	}
	if p, ok := strings.CutSuffix(s, "%"); ok {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", s, ErrUnknownEdge)
		}
		return Edge(f / 100), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%q: %w", s, ErrUnknownEdge)
	}
	return Edge(f), nil
}

// Intersection says which point of the tracked element must meet which point
// of the viewport. "start end" means the element's top meets the viewport's
// bottom.
type Intersection struct {
	Target    Edge
	Container Edge
}

// ParseIntersection parses "<target> <container>". A single token is used
// for both.
func ParseIntersection(s string) (Intersection, error) {
	fields := strings.Fields(s)
	switch len(fields) {
	case 1:
		e, err := ParseEdge(fields[0])
		if err != nil {
			return Intersection{}, err
		}
		return Intersection{Target: e, Container: e}, nil
	case 2:
		t, err := ParseEdge(fields[0])
		if err != nil {
			return Intersection{}, err
		}
		c, err := ParseEdge(fields[1])
		if err != nil {
			return Intersection{}, err
		}
		return Intersection{Target: t, Container: c}, nil
	}
	return Intersection{}, fmt.Errorf("intersection %q: want one or two edges: %w", s, ErrUnknownEdge)
}

func (i Intersection) String() string {
	return edgeString(i.Target) + " " + edgeString(i.Container)
}

func edgeString(e Edge) string {
	switch e {
	case EdgeStart:
		return "start"
	case EdgeCenter:
		return "center"
	case EdgeEnd:
		return "end"
	}
	return strconv.FormatFloat(float64(e), 'g', -1, 64)
}

// ScrollOffset is the pair of intersections at which progress is 0 and 1.
type ScrollOffset [2]Intersection

// Common offsets.
var (
	// OffsetEnterExit spans from the element's top meeting the viewport's
	// bottom to the element's bottom meeting the viewport's top.
	OffsetEnterExit = ScrollOffset{{EdgeStart, EdgeEnd}, {EdgeEnd, EdgeStart}}
	// OffsetEnterCenter ends when the element's bottom reaches mid-viewport.
	OffsetEnterCenter = ScrollOffset{{EdgeStart, EdgeEnd}, {EdgeEnd, EdgeCenter}}
	// OffsetExit spans the element scrolling off the top.
	OffsetExit = ScrollOffset{{EdgeStart, EdgeStart}, {EdgeEnd, EdgeStart}}
)

// ParseScrollOffset parses two intersections such as "start end", "end start".
func ParseScrollOffset(from, to string) (ScrollOffset, error) {
	a, err := ParseIntersection(from)
	if err != nil {
		return ScrollOffset{}, err
	}
	b, err := ParseIntersection(to)
	if err != nil {
		return ScrollOffset{}, err
	}
	return ScrollOffset{a, b}, nil
}

// IsZero reports whether the offset is unset.
func (o ScrollOffset) IsZero() bool { return o == ScrollOffset{} }

// scrollAt is the scroll position at which an intersection is met.
func (i Intersection) scrollAt(el Rect, viewportH float64) float64 {
	return el.Y + float64(i.Target)*el.Height - float64(i.Container)*viewportH
}

// ProgressAt computes clamped progress of an element laid out at el for the
// given scroll position and viewport height. When both intersections fall on
// the same scroll position progress steps from 0 to 1 there.
func ProgressAt(el Rect, scrollY, viewportH float64, offset ScrollOffset) float64 {
	s0 := offset[0].scrollAt(el, viewportH)
	s1 := offset[1].scrollAt(el, viewportH)
	if s1 == s0 {
		if scrollY >= s1 {
			return 1
		}
		return 0
	}
	return clamp01((scrollY - s0) / (s1 - s0))
}

// ProgressMapper turns the viewport's scroll position into the progress of
// one tracked element. It recomputes on every scroll and resize while
// attached and holds at 0 while the element has no layout.
type ProgressMapper struct {
	el     Element
	offset ScrollOffset
	value  float64

	vp       *Viewport
	handles  [2]CallbackHandle
	onChange func()
}

// NewProgressMapper validates the element reference. A zero offset defaults
// to OffsetEnterExit.
func NewProgressMapper(el Element, offset ScrollOffset) (*ProgressMapper, error) {
	if missingElement(el) {
		return nil, ErrNoElement
	}
	if offset.IsZero() {
		offset = OffsetEnterExit
	}
	return &ProgressMapper{el: el, offset: offset}, nil
}

// Attach subscribes to vp. onChange, if non-nil, runs after every
// recomputation that changed the value.
func (m *ProgressMapper) Attach(vp *Viewport, onChange func()) {
	if m.vp != nil {
		m.Detach()
	}
	m.vp = vp
	m.onChange = onChange
	h := func(ViewportEvent) { m.update() }
	m.handles[0] = vp.On(EventScroll, h)
	m.handles[1] = vp.On(EventResize, h)
	m.Recompute()
}

// Detach removes both listeners. The last value is kept.
func (m *ProgressMapper) Detach() {
	for i := range m.handles {
		m.handles[i].Remove()
		m.handles[i] = CallbackHandle{}
	}
	m.vp = nil
	m.onChange = nil
}

// Attached reports whether the mapper is listening to a viewport.
func (m *ProgressMapper) Attached() bool { return m.vp != nil }

func (m *ProgressMapper) update() {
	prev := m.value
	m.Recompute()
	if m.value != prev && m.onChange != nil {
		m.onChange()
	}
}

// Recompute reads the element and viewport and stores the new progress.
func (m *ProgressMapper) Recompute() float64 {
	if m.vp == nil {
		return m.value
	}
	r, ok := m.el.Bounds()
	if !ok {
		m.value = 0
		return 0
	}
	m.value = ProgressAt(r, m.vp.ScrollY(), m.vp.Height(), m.offset)
	return m.value
}

// Value returns the last computed progress.
func (m *ProgressMapper) Value() float64 { return m.value }

// Offset returns the configured scroll offset.
func (m *ProgressMapper) Offset() ScrollOffset { return m.offset }

// Element returns the tracked element.
func (m *ProgressMapper) Element() Element { return m.el }
