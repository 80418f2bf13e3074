package reactotron

import (
	"context"
	"net/http"
	"time"
)

// Socket event names dispatched by transports.
const (
	// EventConnect fires once the transport has established its connection.
	EventConnect = "connect"

	// EventDisconnect fires when the transport loses or closes its connection.
	EventDisconnect = "disconnect"

	// EventCommand fires for every command frame pushed by the server.
	// It is also the event name the client emits commands on.
	EventCommand = "command"
)

// DefaultTransports is the transport preference order used when DialOptions
// carries none.
var DefaultTransports = []string{"websocket", "polling"}

// DialOptions carries transport parameters for Dialer.Dial.
type DialOptions struct {
	// Transports is the preference-ordered list of transport kinds the
	// dialer may use. Default: DefaultTransports.
	Transports []string

	// HandshakeTimeout bounds connection establishment. Zero means no limit.
	HandshakeTimeout time.Duration

	// Header is sent with the transport handshake, if the transport has one.
	Header http.Header
}

// Socket is a duplex event connection to the inspection server.
//
// A socket is created inert: handlers are registered with On, then Open
// starts the connection lifecycle. No event can fire before Open, so
// registration never races delivery. All events for one socket are
// dispatched sequentially from a single goroutine; no two handlers run
// concurrently.
type Socket interface {
	// On registers fn for the named event. Multiple handlers for one event
	// run in registration order. Must be called before Open.
	On(event string, fn func(data []byte))

	// Emit sends the named event with a JSON-encoded payload.
	Emit(event string, payload any) error

	// Open starts the connection lifecycle. Connection progress is reported
	// through EventConnect and EventDisconnect, not the return value.
	Open(ctx context.Context) error

	// Close tears the connection down. Safe to call multiple times.
	Close() error
}

// Dialer creates sockets. It is the transport factory injected through
// Options; the default is NewWebsocketDialer.
type Dialer interface {
	Dial(url string, opts DialOptions) (Socket, error)
}

// DialFunc adapts a function to the Dialer interface.
type DialFunc func(url string, opts DialOptions) (Socket, error)

// Dial calls f(url, opts).
func (f DialFunc) Dial(url string, opts DialOptions) (Socket, error) {
	return f(url, opts)
}
