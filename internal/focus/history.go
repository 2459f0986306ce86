package focus

import (
	"sync"
	"time"

	"github.com/yourusername/spotlight/internal/types"
)

// Cause identifies what triggered a focus change
type Cause string

const (
	CauseMove      Cause = "move"      // Directional navigation
	CauseLeaveFor  Cause = "leave-for" // Directional navigation redirected by a leaveFor policy
	CauseFocus     Cause = "focus"     // Explicit Focus call
	CauseContainer Cause = "container" // FocusContainer call
)

// Transition records a completed focus change
type Transition struct {
	ID        string       `json:"id"`
	From      types.NodeID `json:"from"`
	To        types.NodeID `json:"to"`
	Direction string       `json:"direction,omitempty"` // Empty unless caused by a move
	Cause     Cause        `json:"cause"`
	At        time.Time    `json:"at"`
}

// RingBuffer is a fixed-capacity circular buffer that overwrites its oldest entry
type RingBuffer[T any] struct {
	buffer []T
	head   int
	tail   int
	size   int
	mu     sync.RWMutex
}

// NewRingBuffer creates a ring buffer; capacity below 1 is raised to 1
func NewRingBuffer[T any](capacity int) *RingBuffer[T] {
	if capacity < 1 {
		capacity = 1
	}
	return &RingBuffer[T]{buffer: make([]T, capacity)}
}

// Add inserts an item, evicting the oldest when full
func (rb *RingBuffer[T]) Add(item T) {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	rb.buffer[rb.head] = item
	rb.head = (rb.head + 1) % len(rb.buffer)

	if rb.size < len(rb.buffer) {
		rb.size++
	} else {
		rb.tail = (rb.tail + 1) % len(rb.buffer)
	}
}

// GetAll returns all items in chronological order
func (rb *RingBuffer[T]) GetAll() []T {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	if rb.size == 0 {
		return nil
	}

	result := make([]T, rb.size)
	for i := 0; i < rb.size; i++ {
		result[i] = rb.buffer[(rb.tail+i)%len(rb.buffer)]
	}
	return result
}

// Len returns the number of stored items
func (rb *RingBuffer[T]) Len() int {
	rb.mu.RLock()
	defer rb.mu.RUnlock()

	return rb.size
}

// Clear drops every item
func (rb *RingBuffer[T]) Clear() {
	rb.mu.Lock()
	defer rb.mu.Unlock()

	var zero T
	for i := range rb.buffer {
		rb.buffer[i] = zero
	}
	rb.head, rb.tail, rb.size = 0, 0, 0
}
