// Package wstest provides a live websocket endpoint for transport tests.
// It records every frame a client sends and can push frames back, standing
// in for a reactotron server without leaving the process.
package wstest

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Frame is the wire envelope exchanged with clients.
type Frame struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// Server accepts websocket clients, records the frames they send, and can
// push frames to the most recent client.
type Server struct {
	srv      *httptest.Server
	upgrader websocket.Upgrader

	mu        sync.Mutex
	conns     []*websocket.Conn
	received  []Frame
	connected chan struct{}
}

// New starts a server on a random local port. Callers must Close it.
func New() *Server {
	s := &Server{connected: make(chan struct{}, 8)}
	s.srv = httptest.NewServer(http.HandlerFunc(s.handle))
	return s
}

// URL returns the ws:// address clients should dial.
func (s *Server) URL() string {
	return "ws" + strings.TrimPrefix(s.srv.URL, "http")
}

func (s *Server) handle(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}

	s.mu.Lock()
	s.conns = append(s.conns, conn)
	s.mu.Unlock()

	select {
	case s.connected <- struct{}{}:
	default:
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}
		s.mu.Lock()
		s.received = append(s.received, f)
		s.mu.Unlock()
	}
}

// WaitClient blocks until a client completes the handshake.
func (s *Server) WaitClient(timeout time.Duration) error {
	select {
	case <-s.connected:
		return nil
	case <-time.After(timeout):
		return fmt.Errorf("no client connected within %v", timeout)
	}
}

// WaitFrames blocks until at least n frames have been received, then
// returns them. Times out with whatever arrived so far.
func (s *Server) WaitFrames(n int, timeout time.Duration) ([]Frame, error) {
	deadline := time.Now().Add(timeout)
	ticker := time.NewTicker(5 * time.Millisecond)
	defer ticker.Stop()

	for {
		frames := s.Received()
		if len(frames) >= n {
			return frames, nil
		}
		if time.Now().After(deadline) {
			return frames, fmt.Errorf("received %d frames within %v, want %d", len(frames), timeout, n)
		}
		<-ticker.C
	}
}

// Received returns the recorded frames in arrival order.
func (s *Server) Received() []Frame {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Frame, len(s.received))
	copy(out, s.received)
	return out
}

// Push sends a frame to the most recent client.
func (s *Server) Push(name string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.conns) == 0 {
		return fmt.Errorf("no client connected")
	}
	return s.conns[len(s.conns)-1].WriteJSON(Frame{Name: name, Payload: body})
}

// PushRaw sends data verbatim to the most recent client.
func (s *Server) PushRaw(data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.conns) == 0 {
		return fmt.Errorf("no client connected")
	}
	return s.conns[len(s.conns)-1].WriteMessage(websocket.TextMessage, data)
}

// Disconnect closes every client connection from the server side.
func (s *Server) Disconnect() {
	s.mu.Lock()
	conns := s.conns
	s.conns = nil
	s.mu.Unlock()

	for _, conn := range conns {
		conn.Close()
	}
}

// Close disconnects all clients and shuts the endpoint down.
func (s *Server) Close() {
	s.Disconnect()
	s.srv.Close()
}
