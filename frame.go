package folio

import "time"

// FrameCallback runs once on the next frame. now is the host clock.
type FrameCallback func(now time.Duration)

// FrameHandle identifies a scheduled callback. The zero handle is never
// issued.
type FrameHandle uint64

// Scheduler is the host's animation-frame primitive.
type Scheduler interface {
	Schedule(cb FrameCallback) FrameHandle
	Cancel(h FrameHandle)
}

type queuedFrame struct {
	id FrameHandle
	cb FrameCallback
}

// FrameQueue is a Scheduler driven by explicit ticks. The Ebitengine host
// ticks it once per Update; tests tick it with synthetic timestamps.
//
// Callbacks scheduled while a tick is running are deferred to the next tick.
type FrameQueue struct {
	pending []queuedFrame
	running []queuedFrame
	nextID  FrameHandle
	now     time.Duration
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// Schedule queues cb for the next tick.
func (q *FrameQueue) Schedule(cb FrameCallback) FrameHandle {
	q.nextID++
	q.pending = append(q.pending, queuedFrame{id: q.nextID, cb: cb})
	return q.nextID
}

// Cancel removes a queued callback. Cancelling an unknown or already run
// handle is a no-op.
func (q *FrameQueue) Cancel(h FrameHandle) {
	if h == 0 {
		return
	}
	for i := range q.pending {
		if q.pending[i].id == h {
			copy(q.pending[i:], q.pending[i+1:])
			q.pending[len(q.pending)-1] = queuedFrame{}
			q.pending = q.pending[:len(q.pending)-1]
			return
		}
	}
	// Cancelled from inside a tick: the batch is already detached, so mark it.
	for i := range q.running {
		if q.running[i].id == h {
			q.running[i].cb = nil
			return
		}
	}
}

// Tick runs every callback that was pending when it was called, in
// scheduling order, and returns how many ran.
func (q *FrameQueue) Tick(now time.Duration) int {
	q.now = now
	if len(q.pending) == 0 {
		return 0
	}
	q.running, q.pending = q.pending, q.running[:0]
	ran := 0
	for i := range q.running {
		cb := q.running[i].cb
		if cb == nil {
			continue
		}
		q.running[i].cb = nil
		cb(now)
		ran++
	}
	for i := range q.running {
		q.running[i] = queuedFrame{}
	}
	q.running = q.running[:0]
	return ran
}

// Pending returns the number of callbacks waiting for the next tick.
func (q *FrameQueue) Pending() int { return len(q.pending) }

// Now returns the timestamp of the most recent tick.
func (q *FrameQueue) Now() time.Duration { return q.now }

// defaultFrameDelta is used for the first frame after idling, when there is
// no previous timestamp to diff against.
const defaultFrameDelta = time.Second / 60

// ticker keeps one frame callback in flight while step reports more work. It
// is the per-component frame loop: woken by input, stopped on rest or
// teardown.
type ticker struct {
	frames  Scheduler
	handle  FrameHandle
	active  bool
	last    time.Duration
	hasLast bool
	step    func(dt time.Duration) bool
	onFrame func()
}

func (t *ticker) wake() {
	if t.active || t.frames == nil {
		return
	}
	t.active = true
	t.handle = t.frames.Schedule(t.run)
}

func (t *ticker) run(now time.Duration) {
	t.handle = 0
	dt := defaultFrameDelta
	if t.hasLast && now > t.last {
		dt = now - t.last
	}
	t.last, t.hasLast = now, true
	more := t.step(dt)
	if t.onFrame != nil {
		t.onFrame()
	}
	// stop may have run inside step or onFrame.
	if more && t.active && t.frames != nil {
		t.handle = t.frames.Schedule(t.run)
		return
	}
	t.active = false
	t.hasLast = false
}

func (t *ticker) stop() {
	if t.frames != nil && t.handle != 0 {
		t.frames.Cancel(t.handle)
	}
	t.handle = 0
	t.active = false
	t.hasLast = false
}
