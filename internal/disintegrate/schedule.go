package disintegrate

// CancelFunc withdraws a frame request. Calling it after the frame ran,
// or more than once, does nothing.
type CancelFunc func()

// Scheduler is the per-frame scheduling port. RequestFrame arranges for fn
// to run once at the next frame; the machine only requests a frame after the
// previous one has finished, so frames of one run never overlap.
type Scheduler interface {
	RequestFrame(fn func()) CancelFunc
}

// FrameQueue is a single-threaded Scheduler driven by calls to Advance.
// Frames requested while Advance is running wait for the next Advance.
// The terminal front end advances it from its tick loop; tests advance it
// directly without any real-time delay.
type FrameQueue struct {
	next    uint64
	order   []uint64
	pending map[uint64]func()
}

// NewFrameQueue creates an empty frame queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{
		pending: make(map[uint64]func()),
	}
}

// RequestFrame queues fn for the next Advance.
func (q *FrameQueue) RequestFrame(fn func()) CancelFunc {
	q.next++
	id := q.next
	q.order = append(q.order, id)
	q.pending[id] = fn

	return func() {
		delete(q.pending, id)
	}
}

// Pending returns the number of frames waiting to run.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Advance runs every frame queued before the call, in request order, and
// returns how many ran. Frames canceled in the meantime are skipped.
func (q *FrameQueue) Advance() int {
	batch := q.order
	q.order = nil

	ran := 0
	for _, id := range batch {
		fn, ok := q.pending[id]
		if !ok {
			continue
		}
		delete(q.pending, id)
		fn()
		ran++
	}
	return ran
}

// Drain advances until no frames are pending or limit frames have been
// advanced (limit <= 0 means no limit). It returns the number of Advance
// calls that ran at least one frame.
func (q *FrameQueue) Drain(limit int) int {
	frames := 0
	for q.Pending() > 0 {
		if limit > 0 && frames >= limit {
			break
		}
		if q.Advance() > 0 {
			frames++
		}
	}
	return frames
}
