package ws

import "sync"

// Writer is the write side of a websocket connection.
type Writer interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// Conn serializes every write to the wrapped connection. The underlying
// websocket allows only one writer at a time, while state broadcasts, direct
// replies and close frames come from different goroutines.
type Conn struct {
	mu sync.Mutex
	w  Writer
}

func NewConn(w Writer) *Conn {
	return &Conn{w: w}
}

func (c *Conn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.WriteJSON(v)
}

func (c *Conn) WriteMessage(messageType int, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.WriteMessage(messageType, data)
}

// Close waits for an in-flight write before closing.
func (c *Conn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.w.Close()
}
