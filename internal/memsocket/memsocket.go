// Package memsocket provides an in-memory Socket and Dialer for tests.
// A client and a test communicate within the same process without any
// networking: the test stands in for the remote server by firing events
// and inspecting what the client emitted.
//
// Usage:
//
//	dialer := memsocket.NewDialer()
//	client, _ := reactotron.New(reactotron.WithDialer(dialer))
//	client.Connect(ctx)
//
//	sock := dialer.Last()
//	sock.FireConnect()                            // server accepted
//	sock.FireCommand(map[string]any{"type": "x"}) // server pushed a command
//	got := sock.Emissions(reactotron.EventCommand)
package memsocket

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/alisonrodolfo/reactotron"
)

var (
	_ reactotron.Socket = (*Socket)(nil)
	_ reactotron.Dialer = (*Dialer)(nil)
)

// Emission is one recorded Emit call.
type Emission struct {
	Event   string
	Payload any
}

// Socket is a scripted in-memory socket. The Fire methods stand in for
// the remote side; they dispatch synchronously on the caller's goroutine,
// so a test observes every effect of an event once Fire returns.
type Socket struct {
	mu       sync.Mutex
	handlers map[string][]func(data []byte)
	emitted  []Emission
	opened   bool
	closed   bool
}

// New creates an unopened socket with no handlers.
func New() *Socket {
	return &Socket{handlers: make(map[string][]func(data []byte))}
}

// On registers fn for the named event.
func (s *Socket) On(event string, fn func(data []byte)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.handlers[event] = append(s.handlers[event], fn)
}

// Emit records the emission. Unlike a real transport it succeeds even
// before the connect event, so tests can assert on premature sends.
func (s *Socket) Emit(event string, payload any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return reactotron.ErrSocketClosed
	}
	s.emitted = append(s.emitted, Emission{Event: event, Payload: payload})
	return nil
}

// Open marks the socket opened. No events fire until the test fires them.
func (s *Socket) Open(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return reactotron.ErrSocketClosed
	}
	s.opened = true
	return nil
}

// Close marks the socket closed. Safe to call multiple times.
func (s *Socket) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// FireConnect dispatches the connect event.
func (s *Socket) FireConnect() {
	s.fire(reactotron.EventConnect, nil)
}

// FireDisconnect dispatches the disconnect event.
func (s *Socket) FireDisconnect() {
	s.fire(reactotron.EventDisconnect, nil)
}

// FireCommand dispatches a command event carrying the JSON encoding of v.
func (s *Socket) FireCommand(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.fire(reactotron.EventCommand, data)
	return nil
}

// Emissions returns the recorded Emit calls for event, in order.
func (s *Socket) Emissions(event string) []Emission {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []Emission
	for _, e := range s.emitted {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// AllEmissions returns every recorded Emit call, in order.
func (s *Socket) AllEmissions() []Emission {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Emission, len(s.emitted))
	copy(out, s.emitted)
	return out
}

// Opened reports whether Open was called.
func (s *Socket) Opened() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.opened
}

// Closed reports whether Close was called.
func (s *Socket) Closed() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.closed
}

func (s *Socket) fire(event string, data []byte) {
	s.mu.Lock()
	handlers := make([]func([]byte), len(s.handlers[event]))
	copy(handlers, s.handlers[event])
	s.mu.Unlock()

	for _, fn := range handlers {
		fn(data)
	}
}

// Dialer hands out a fresh Socket per Dial and records the arguments.
type Dialer struct {
	mu      sync.Mutex
	err     error
	sockets []*Socket
	urls    []string
	opts    []reactotron.DialOptions
}

// NewDialer creates a dialer with no dial history.
func NewDialer() *Dialer {
	return &Dialer{}
}

// Fail makes subsequent Dial calls return err. Pass nil to heal.
func (d *Dialer) Fail(err error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.err = err
}

// Dial records the arguments and returns a new scripted socket.
func (d *Dialer) Dial(url string, opts reactotron.DialOptions) (reactotron.Socket, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.err != nil {
		return nil, d.err
	}
	d.urls = append(d.urls, url)
	d.opts = append(d.opts, opts)
	sock := New()
	d.sockets = append(d.sockets, sock)
	return sock, nil
}

// Last returns the most recently dialed socket.
func (d *Dialer) Last() *Socket {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.sockets) == 0 {
		return nil
	}
	return d.sockets[len(d.sockets)-1]
}

// Sockets returns every socket handed out, in dial order.
func (d *Dialer) Sockets() []*Socket {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]*Socket, len(d.sockets))
	copy(out, d.sockets)
	return out
}

// URLs returns the dialed URLs in order.
func (d *Dialer) URLs() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]string, len(d.urls))
	copy(out, d.urls)
	return out
}

// DialOpts returns the DialOptions of every Dial, in order.
func (d *Dialer) DialOpts() []reactotron.DialOptions {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]reactotron.DialOptions, len(d.opts))
	copy(out, d.opts)
	return out
}
