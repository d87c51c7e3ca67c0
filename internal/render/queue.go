package render

import "sync"

// EventQueue buffers user input between the window goroutine, which drains
// OS events every tick, and the sketch goroutine, which polls. Typed keys
// form a stack: the most recently typed key pops first. Mouse clicks keep
// only the latest position plus an edge-triggered pending flag.
type EventQueue struct {
	mu      sync.Mutex
	keys    []rune
	clickX  int
	clickY  int
	clicked bool
	pending bool
}

// NewEventQueue creates an empty EventQueue.
func NewEventQueue() *EventQueue {
	return &EventQueue{}
}

// PushKey records a typed key on top of the stack.
func (q *EventQueue) PushKey(r rune) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.keys = append(q.keys, r)
}

// HasKeys reports whether any typed keys are pending. Non-destructive.
func (q *EventQueue) HasKeys() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.keys) > 0
}

// PopKey removes and returns the most recently typed key. The second
// return value is false when no key is pending.
func (q *EventQueue) PopKey() (rune, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	if len(q.keys) == 0 {
		return 0, false
	}
	r := q.keys[len(q.keys)-1]
	q.keys = q.keys[:len(q.keys)-1]
	return r, true
}

// KeyCount returns the number of pending typed keys.
func (q *EventQueue) KeyCount() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.keys)
}

// PushClick records a left-button press at a pixel position and arms the
// pending flag.
func (q *EventQueue) PushClick(x, y int) {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.clickX = x
	q.clickY = y
	q.clicked = true
	q.pending = true
}

// ClickPending reports whether a click happened since the last call.
// Reading disarms the flag, so each click is observed exactly once.
func (q *EventQueue) ClickPending() bool {
	q.mu.Lock()
	defer q.mu.Unlock()
	p := q.pending
	q.pending = false
	return p
}

// LastClick returns the pixel position of the most recent click. The third
// return value is false when no click has ever been recorded.
func (q *EventQueue) LastClick() (x, y int, ok bool) {
	q.mu.Lock()
	defer q.mu.Unlock()
	return q.clickX, q.clickY, q.clicked
}

// Reset discards all pending input and the click history.
func (q *EventQueue) Reset() {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.keys = q.keys[:0]
	q.clicked = false
	q.pending = false
}
