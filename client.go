package reactotron

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"go.uber.org/multierr"
	"go.uber.org/zap"
)

// State is the connection state of a Client. Transitions are driven by
// transport events, never assumed: Connect moves the client to Connecting,
// and only the transport's own connect event moves it to Connected.
type State int

const (
	// StateDisconnected: no live connection. Initial state; also entered
	// on disconnect events and on Close.
	StateDisconnected State = iota

	// StateConnecting: Connect was called; the transport has not reported
	// connect yet.
	StateConnecting

	// StateConnected: the transport reported connect and the hello
	// announcement was sent.
	StateConnected
)

func (s State) String() string {
	switch s {
	case StateDisconnected:
		return "Disconnected"
	case StateConnecting:
		return "Connecting"
	case StateConnected:
		return "Connected"
	default:
		return fmt.Sprintf("Unknown(%d)", s)
	}
}

// Client connects an application to an inspection server and hosts the
// plugins that extend it. All methods are safe for concurrent use.
type Client struct {
	mu       sync.RWMutex
	opts     Options
	state    State
	socket   Socket
	plugins  []Plugin
	features FeatureMap
	closed   bool
}

// New creates a client with defaults applied, then configured with the
// given options. New(opts...) is equivalent to New() followed by
// Configure(opts...).
func New(opts ...Option) (*Client, error) {
	c := &Client{
		opts:     defaultOptions(),
		features: make(FeatureMap),
	}

	if err := c.Configure(opts...); err != nil {
		return nil, err
	}

	return c, nil
}

// Configure merges options onto the committed set and registers every
// plugin creator in the result, in order. The merge is shallow: each
// option replaces one field wholesale, untouched fields keep their
// current value. On validation failure nothing is committed and the
// previous options stay in effect.
//
// The merged Plugins list is registered on every call, so configuring
// twice with a retained non-empty list registers those plugins twice.
func (c *Client) Configure(opts ...Option) error {
	c.mu.Lock()

	merged := c.opts
	for _, opt := range opts {
		opt(&merged)
	}

	if err := merged.Validate(); err != nil {
		c.mu.Unlock()
		return err
	}

	c.opts = merged
	creators := merged.Plugins
	c.mu.Unlock()

	for _, creator := range creators {
		if err := c.AddPlugin(creator); err != nil {
			return err
		}
	}

	return nil
}

// AddPlugin invokes creator with the client's capabilities and registers
// the result. Declared features are validated as a set before any of them
// is bound, so a failing plugin injects nothing and is not registered.
// Rebinding a feature name another plugin already claimed is allowed; the
// last writer wins.
func (c *Client) AddPlugin(creator PluginCreator) error {
	c.mu.RLock()
	closed := c.closed
	log := c.opts.Logger
	c.mu.RUnlock()

	if closed {
		return ErrClientClosed
	}

	if creator == nil {
		return fmt.Errorf("%w: plugins must be a function", ErrInvalidPlugin)
	}

	plugin := creator(Caps{Send: c.Send, Ref: c})
	if plugin == nil {
		return fmt.Errorf("%w: plugins must return an object", ErrInvalidPlugin)
	}

	var features FeatureMap
	if provider, ok := plugin.(FeatureProvider); ok {
		features = provider.Features()
		if err := features.Validate(); err != nil {
			return err
		}
	}

	c.mu.Lock()
	for name, fn := range features {
		c.features[name] = fn
	}
	c.plugins = append(c.plugins, plugin)
	c.mu.Unlock()

	log.Debug("plugin registered",
		zap.String("plugin", plugin.Name()),
		zap.Strings("features", features.Keys()))

	return nil
}

// Connect dials the inspection server and starts the socket lifecycle.
// Any previous socket is closed before being replaced, and events still
// arriving from it are dropped. The client stays in Connecting until the
// transport reports connect; on that event the connect callbacks and
// plugin hooks run, then the hello announcement is emitted.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClientClosed
	}
	opts := c.opts
	prev := c.socket
	c.socket = nil
	c.state = StateConnecting
	c.mu.Unlock()

	if prev != nil {
		if err := prev.Close(); err != nil {
			opts.Logger.Debug("closing previous socket", zap.Error(err))
		}
	}

	sock, err := opts.Dialer.Dial(opts.URL(), DialOptions{
		Transports:       DefaultTransports,
		HandshakeTimeout: opts.DialTimeout,
	})
	if err != nil {
		c.setState(StateDisconnected)
		return err
	}

	sock.On(EventConnect, func([]byte) { c.handleConnect(sock) })
	sock.On(EventDisconnect, func([]byte) { c.handleDisconnect(sock) })
	sock.On(EventCommand, func(data []byte) { c.handleCommand(sock, data) })

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		sock.Close()
		return ErrClientClosed
	}
	displaced := c.socket
	c.socket = sock
	c.mu.Unlock()

	// Another Connect may have installed its socket while this one dialed.
	if displaced != nil {
		displaced.Close()
	}

	if err := sock.Open(ctx); err != nil {
		c.mu.Lock()
		if c.socket == sock {
			c.socket = nil
			c.state = StateDisconnected
		}
		c.mu.Unlock()
		sock.Close()
		return err
	}

	opts.Logger.Debug("connecting", zap.String("url", opts.URL()))
	return nil
}

// Send emits a command with the given type and payload. Sends are
// fire-and-forget: no queue, no retry. Without a live socket Send fails
// with ErrNotConnected.
func (c *Client) Send(messageType string, payload any) error {
	c.mu.RLock()
	sock := c.socket
	closed := c.closed
	c.mu.RUnlock()

	if closed {
		return ErrClientClosed
	}

	if sock == nil {
		return ErrNotConnected
	}

	return sock.Emit(EventCommand, commandBody{Type: messageType, Payload: payload})
}

// Call dispatches a plugin-injected feature by name, passing args through
// verbatim.
func (c *Client) Call(name string, args ...any) (any, error) {
	fn, ok := c.Feature(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrFeatureNotFound, name)
	}
	return fn(args...)
}

// Feature returns the named feature for direct use.
func (c *Client) Feature(name string) (FeatureFunc, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	fn, ok := c.features[name]
	return fn, ok
}

// StartTimer returns a running stopwatch for timing application work.
func (c *Client) StartTimer() *Stopwatch {
	return NewStopwatch()
}

// Close closes the socket and marks the client terminal. Further Connect,
// Send and AddPlugin calls fail with ErrClientClosed. Safe to call
// multiple times.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	sock := c.socket
	c.socket = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	if sock != nil {
		return sock.Close()
	}
	return nil
}

// Options returns a copy of the committed options.
func (c *Client) Options() Options {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.opts
}

// State returns the current connection state.
func (c *Client) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.state
}

// Connected reports whether the transport currently reports a live
// connection.
func (c *Client) Connected() bool {
	return c.State() == StateConnected
}

// Plugins returns the registered plugins in registration order.
func (c *Client) Plugins() []Plugin {
	c.mu.RLock()
	defer c.mu.RUnlock()
	plugins := make([]Plugin, len(c.plugins))
	copy(plugins, c.plugins)
	return plugins
}

// Features returns the names of all injected features in sorted order.
func (c *Client) Features() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.features.Keys()
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// handleConnect runs on a socket's connect event: state first, then the
// user callback, then plugin hooks in registration order, then the hello
// announcement. Events from a socket that is no longer installed are
// dropped: a replaced transport keeps dispatching while it tears down,
// and only the installed socket drives the state machine. The plugin
// list is snapshotted before the fan-out, so a plugin added from inside
// a hook joins only later events.
func (c *Client) handleConnect(sock Socket) {
	c.mu.Lock()
	if sock != c.socket {
		c.mu.Unlock()
		return
	}
	c.state = StateConnected
	opts := c.opts
	plugins := make([]Plugin, len(c.plugins))
	copy(plugins, c.plugins)
	c.mu.Unlock()

	opts.Logger.Debug("connected", zap.String("url", opts.URL()))

	if opts.OnConnect != nil {
		opts.OnConnect()
	}

	var errs error
	for _, p := range plugins {
		h, ok := p.(ConnectHandler)
		if !ok {
			continue
		}
		if err := h.OnConnect(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("plugin %s: %w", p.Name(), err))
		}
	}
	c.reportHookErrors("connect", errs, opts)

	if err := sock.Emit(EventHello, opts.hello()); err != nil {
		opts.Logger.Debug("hello announcement failed", zap.Error(err))
	}
}

// handleDisconnect runs on a socket's disconnect event: state first,
// then the user callback, then plugin hooks in registration order. A
// replaced socket reports disconnect during its own teardown; that
// report is dropped, like every event from a socket no longer installed.
func (c *Client) handleDisconnect(sock Socket) {
	c.mu.Lock()
	if sock != c.socket {
		c.mu.Unlock()
		return
	}
	c.state = StateDisconnected
	opts := c.opts
	plugins := make([]Plugin, len(c.plugins))
	copy(plugins, c.plugins)
	c.mu.Unlock()

	opts.Logger.Debug("disconnected")

	if opts.OnDisconnect != nil {
		opts.OnDisconnect()
	}

	var errs error
	for _, p := range plugins {
		h, ok := p.(DisconnectHandler)
		if !ok {
			continue
		}
		if err := h.OnDisconnect(); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("plugin %s: %w", p.Name(), err))
		}
	}
	c.reportHookErrors("disconnect", errs, opts)
}

// handleCommand decodes a server command and forwards it verbatim.
// Frames still in flight from a replaced socket are dropped.
func (c *Client) handleCommand(sock Socket, data []byte) {
	c.mu.RLock()
	current := c.socket
	opts := c.opts
	c.mu.RUnlock()

	if sock != current {
		return
	}

	var cmd Command
	if err := json.Unmarshal(data, &cmd); err != nil {
		opts.Logger.Debug("dropping malformed command", zap.Error(err))
		return
	}

	opts.Logger.Debug("command received", zap.String("type", cmd.Type))

	if opts.OnCommand != nil {
		opts.OnCommand(cmd)
	}
}

// reportHookErrors delivers the aggregated hook failures of one fan-out.
// A failing hook never interrupts the others; everything collected here
// already ran to completion.
func (c *Client) reportHookErrors(event string, errs error, opts Options) {
	if errs == nil {
		return
	}

	opts.Logger.Error("plugin hooks failed", zap.String("event", event), zap.Error(errs))

	if opts.OnError != nil {
		opts.OnError(errs)
	}
}
