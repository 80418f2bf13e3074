package reactotron

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// TransportWebsocket is the transport kind served by the default dialer.
const TransportWebsocket = "websocket"

// frame is the wire envelope for socket events.
type frame struct {
	Name    string          `json:"name"`
	Payload json.RawMessage `json:"payload,omitempty"`
}

// WebsocketDialer creates websocket-backed sockets.
type WebsocketDialer struct{}

// NewWebsocketDialer returns the default websocket dialer.
func NewWebsocketDialer() *WebsocketDialer {
	return &WebsocketDialer{}
}

// Dial creates an inert socket for url; the connection itself is
// established by Open. Entries in the transport preference list the dialer
// does not serve (such as "polling") are skipped; if none is left, Dial
// fails with ErrNoTransport.
func (d *WebsocketDialer) Dial(url string, opts DialOptions) (Socket, error) {
	transports := opts.Transports
	if len(transports) == 0 {
		transports = DefaultTransports
	}

	supported := false
	for _, t := range transports {
		if t == TransportWebsocket {
			supported = true
			break
		}
	}
	if !supported {
		return nil, fmt.Errorf("%w: %v", ErrNoTransport, transports)
	}

	return &websocketSocket{
		url:      url,
		opts:     opts,
		handlers: make(map[string][]func(data []byte)),
	}, nil
}

// websocketSocket is a Socket over a single websocket connection. The
// handshake and the read loop run on one goroutine, so all events are
// dispatched sequentially.
type websocketSocket struct {
	url  string
	opts DialOptions

	mu       sync.Mutex
	handlers map[string][]func(data []byte)
	conn     *websocket.Conn
	opened   bool
	closed   bool
}

func (s *websocketSocket) On(event string, fn func(data []byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[event] = append(s.handlers[event], fn)
}

// Emit writes an event frame. The connection must be established; before
// the connect event or after close it fails with ErrSocketClosed.
func (s *websocketSocket) Emit(event string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encoding %s payload: %w", event, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.conn == nil || s.closed {
		return ErrSocketClosed
	}

	// The lock is the single writer gorilla requires.
	return s.conn.WriteJSON(frame{Name: event, Payload: body})
}

// Open starts the socket goroutine: handshake, connect event, read loop.
// Connection progress is reported through events, not the return value.
func (s *websocketSocket) Open(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSocketClosed
	}
	if s.opened {
		s.mu.Unlock()
		return nil
	}
	s.opened = true
	s.mu.Unlock()

	go s.run(ctx)
	return nil
}

// Close sends a close frame when connected and tears the socket down.
// Safe to call multiple times.
func (s *websocketSocket) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	conn := s.conn
	s.conn = nil
	s.mu.Unlock()

	if conn == nil {
		return nil
	}

	// Politely tell the server the connection is going away.
	deadline := time.Now().Add(time.Second)
	conn.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
	return conn.Close()
}

func (s *websocketSocket) run(ctx context.Context) {
	dialer := websocket.Dialer{
		HandshakeTimeout: s.opts.HandshakeTimeout,
	}

	conn, _, err := dialer.DialContext(ctx, s.url, s.opts.Header)
	if err != nil {
		s.dispatch(EventDisconnect, nil)
		return
	}

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		conn.Close()
		return
	}
	s.conn = conn
	s.mu.Unlock()

	s.dispatch(EventConnect, nil)
	s.readLoop(conn)
}

// readLoop reads frames until the connection ends, then reports disconnect.
func (s *websocketSocket) readLoop(conn *websocket.Conn) {
	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			break
		}

		var f frame
		if err := json.Unmarshal(data, &f); err != nil {
			continue
		}
		s.dispatch(f.Name, f.Payload)
	}

	s.mu.Lock()
	s.conn = nil
	s.mu.Unlock()

	s.dispatch(EventDisconnect, nil)
}

// dispatch runs the handlers for event in registration order. The lock is
// not held across handler calls, so handlers may Emit.
func (s *websocketSocket) dispatch(event string, data []byte) {
	s.mu.Lock()
	handlers := make([]func([]byte), len(s.handlers[event]))
	copy(handlers, s.handlers[event])
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(data)
	}
}
