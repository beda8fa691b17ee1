package lib

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// ThreadSafeWebSocket wraps a websocket.Conn and allows many readers and writers to
// read/write the conn from goroutines without having to track safe access.
// This comes with the caveat that all writes block eachother, and similarly for reads.
// See https://pkg.go.dev/github.com/gorilla/websocket?utm_source=godoc#hdr-Concurrency.
type ThreadSafeWebSocket struct {
	c            *websocket.Conn
	writeMu      *sync.Mutex
	readMu       *sync.Mutex
	writeTimeout time.Duration
}

// NewThreadSafeWebSocket wraps c. A zero writeTimeout means writes never time out.
func NewThreadSafeWebSocket(c *websocket.Conn, writeTimeout time.Duration) ThreadSafeWebSocket {
	return ThreadSafeWebSocket{c, &sync.Mutex{}, &sync.Mutex{}, writeTimeout}
}

func (s ThreadSafeWebSocket) ReadMessage() (int, []byte, error) {
	s.readMu.Lock()
	defer s.readMu.Unlock()
	return s.c.ReadMessage()
}

func (s ThreadSafeWebSocket) WriteMessage(messageType int, data []byte) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	s.setWriteDeadline()
	return s.c.WriteMessage(messageType, data)
}

// WriteJSON marshals v and sends it as a single text frame.
func (s ThreadSafeWebSocket) WriteJSON(v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return s.WriteMessage(websocket.TextMessage, data)
}

// Ping writes a ping control frame.
func (s ThreadSafeWebSocket) Ping() error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	deadline := time.Time{}
	if s.writeTimeout > 0 {
		deadline = time.Now().Add(s.writeTimeout)
	}
	return s.c.WriteControl(websocket.PingMessage, nil, deadline)
}

func (s ThreadSafeWebSocket) setWriteDeadline() {
	if s.writeTimeout > 0 {
		_ = s.c.SetWriteDeadline(time.Now().Add(s.writeTimeout))
	}
}
