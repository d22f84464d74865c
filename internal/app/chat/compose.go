package chat

import "sync"

// ComposeInput is the text box the user types into before submitting.
type ComposeInput struct {
	mu    sync.Mutex
	value string
}

// Set replaces the current text.
func (c *ComposeInput) Set(value string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.value = value
}

// Value returns the current text.
func (c *ComposeInput) Value() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.value
}

// Clear empties the text box.
func (c *ComposeInput) Clear() {
	c.Set("")
}
