// Package notify is the transient notification store. Fetch and mutation
// failures become notices here instead of crashing a view; the next page
// render drains and shows them once.
package notify

import (
	"sync"
	"time"

	"github.com/google/uuid"
)

type Level string

const (
	Info    Level = "info"
	Success Level = "success"
	Error   Level = "error"
)

type Notice struct {
	ID      string
	Level   Level
	Message string
	At      time.Time
}

type Center struct {
	mu      sync.Mutex
	notices []Notice
}

func NewCenter() *Center {
	return &Center{}
}

func (c *Center) Push(level Level, message string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notices = append(c.notices, Notice{
		ID:      uuid.New().String(),
		Level:   level,
		Message: message,
		At:      time.Now(),
	})
}

func (c *Center) Infof(message string)    { c.Push(Info, message) }
func (c *Center) Successf(message string) { c.Push(Success, message) }
func (c *Center) Errorf(message string)   { c.Push(Error, message) }

// Drain returns all pending notices and clears the store
func (c *Center) Drain() []Notice {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := c.notices
	c.notices = nil
	return out
}
