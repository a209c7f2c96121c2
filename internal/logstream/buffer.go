package logstream

import "sync"

// maxBufferedLines caps the in-memory log buffer; oldest lines are evicted
// first once the cap is reached.
const maxBufferedLines = 1000

// Buffer is an ordered, capped sequence of log lines.
type Buffer struct {
	mu    sync.Mutex
	lines []string
}

// NewBuffer creates an empty Buffer.
func NewBuffer() *Buffer {
	return &Buffer{}
}

// Append adds lines to the buffer, evicting the oldest beyond the cap.
func (b *Buffer) Append(lines ...string) {
	if len(lines) == 0 {
		return
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = append(b.lines, lines...)
	if excess := len(b.lines) - maxBufferedLines; excess > 0 {
		b.lines = append(b.lines[:0:0], b.lines[excess:]...)
	}
}

// Lines returns a copy of the buffered lines in arrival order.
func (b *Buffer) Lines() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.lines))
	copy(out, b.lines)
	return out
}

// Len returns the number of buffered lines.
func (b *Buffer) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.lines)
}

// Clear discards all buffered lines.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.lines = nil
}
