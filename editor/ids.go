package editor

import (
	"sync"
	"time"
)

// IDSource hands out identifiers for newly created recipes.
type IDSource interface {
	NextID() int64
}

// ClockIDs derives ids from the wall clock in milliseconds, bumping by one
// whenever the clock has not advanced past the last id handed out.
type ClockIDs struct {
	mu   sync.Mutex
	last int64
	now  func() time.Time
}

func NewClockIDs() *ClockIDs {
	return &ClockIDs{now: time.Now}
}

func (c *ClockIDs) NextID() int64 {
	c.mu.Lock()
	defer c.mu.Unlock()

	id := c.now().UnixMilli()
	if id <= c.last {
		id = c.last + 1
	}
	c.last = id

	return id
}

// Observe records an id that already exists so later ids sort after it.
func (c *ClockIDs) Observe(id int64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if id > c.last {
		c.last = id
	}
}
