package game

import "time"

type frameRequest struct {
	handle FrameHandle
	fn     func(now time.Duration)
}

// FrameQueue is a poll-driven FrameRequester. A host calls Run once per
// display frame; callbacks requested while Run executes wait for the next frame.
type FrameQueue struct {
	next    FrameHandle
	pending []frameRequest
	running []frameRequest
}

// NewFrameQueue creates an empty queue.
func NewFrameQueue() *FrameQueue {
	return &FrameQueue{}
}

// RequestFrame schedules fn for the next Run.
func (q *FrameQueue) RequestFrame(fn func(now time.Duration)) FrameHandle {
	q.next++
	q.pending = append(q.pending, frameRequest{handle: q.next, fn: fn})
	return q.next
}

// CancelFrame drops a pending callback. Unknown or already-run handles are ignored.
func (q *FrameQueue) CancelFrame(h FrameHandle) {
	for i, r := range q.pending {
		if r.handle == h {
			q.pending = append(q.pending[:i], q.pending[i+1:]...)
			return
		}
	}
	// A callback running in this frame may cancel one queued behind it.
	for i := range q.running {
		if q.running[i].handle == h {
			q.running[i].fn = nil
			return
		}
	}
}

// Pending returns the number of callbacks waiting for the next frame.
func (q *FrameQueue) Pending() int {
	return len(q.pending)
}

// Run executes the callbacks that were pending when it was called.
func (q *FrameQueue) Run(now time.Duration) {
	q.running, q.pending = q.pending, q.running[:0]
	for i := range q.running {
		if fn := q.running[i].fn; fn != nil {
			fn(now)
		}
	}
	q.running = q.running[:0]
}
