package reactotron

import (
	"fmt"
	"time"

	"go.uber.org/zap"
)

// Defaults applied by New before any options run.
const (
	// DefaultHost is the inspection server host.
	DefaultHost = "localhost"

	// DefaultPort is the inspection server port.
	DefaultPort = 9090

	// DefaultName is the label this client reports to the server.
	DefaultName = "reactotron-core-client"
)

// Options is the full configuration of a Client.
// Most callers construct it through functional options; the struct is
// exported so custom transports and tests can inspect the committed state.
type Options struct {
	// Dialer creates the socket on Connect.
	// Default: NewWebsocketDialer().
	Dialer Dialer

	// Host of the inspection server. Default: "localhost".
	Host string

	// Port of the inspection server. Default: 9090.
	Port int

	// Name identifies this client to the server.
	// Default: "reactotron-core-client".
	Name string

	// ClientInfo is extra identity sent in the hello announcement
	// (os, app version, device). Optional.
	ClientInfo map[string]string

	// OnCommand receives every server command, decoded but otherwise verbatim.
	OnCommand func(Command)

	// OnConnect runs when the socket reports connect, before plugin hooks.
	OnConnect func()

	// OnDisconnect runs when the socket reports disconnect, before plugin hooks.
	OnDisconnect func()

	// OnError receives the aggregated plugin hook failures of a fan-out.
	// Hook failures never interrupt the fan-out itself. Optional.
	OnError func(error)

	// Plugins are creators registered in order by Configure.
	Plugins []PluginCreator

	// DialTimeout bounds the transport handshake. Zero means no limit.
	DialTimeout time.Duration

	// Logger receives client debug traces. Default: zap.NewNop().
	Logger *zap.Logger
}

// Validate checks Options for errors.
func (o *Options) Validate() error {
	if o.Host == "" {
		return fmt.Errorf("%w: Host is required", ErrInvalidConfig)
	}

	if o.Port < 1 || o.Port > 65535 {
		return fmt.Errorf("%w: Port must be between 1 and 65535, got %d", ErrInvalidConfig, o.Port)
	}

	if o.Name == "" {
		return fmt.Errorf("%w: Name is required", ErrInvalidConfig)
	}

	if o.Dialer == nil {
		return fmt.Errorf("%w: Dialer is required", ErrInvalidConfig)
	}

	if o.Logger == nil {
		return fmt.Errorf("%w: Logger is required", ErrInvalidConfig)
	}

	if err := ValidateClientInfo(o.ClientInfo); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	return nil
}

// URL returns the websocket URL built from Host and Port.
func (o *Options) URL() string {
	return fmt.Sprintf("ws://%s:%d", o.Host, o.Port)
}

// defaultOptions returns the options a client starts with.
func defaultOptions() Options {
	return Options{
		Dialer: NewWebsocketDialer(),
		Host:   DefaultHost,
		Port:   DefaultPort,
		Name:   DefaultName,
		Logger: zap.NewNop(),
	}
}

// Option mutates one field of Options. Options compose shallowly: each
// option replaces its field wholesale, later options win, untouched fields
// keep their current value.
type Option func(*Options)

// WithDialer sets the transport factory used by Connect.
func WithDialer(d Dialer) Option {
	return func(o *Options) { o.Dialer = d }
}

// WithHost sets the inspection server host.
func WithHost(host string) Option {
	return func(o *Options) { o.Host = host }
}

// WithPort sets the inspection server port.
func WithPort(port int) Option {
	return func(o *Options) { o.Port = port }
}

// WithName sets the label this client reports to the server.
func WithName(name string) Option {
	return func(o *Options) { o.Name = name }
}

// WithClientInfo sets extra identity fields for the hello announcement.
func WithClientInfo(info map[string]string) Option {
	return func(o *Options) { o.ClientInfo = info }
}

// WithOnCommand sets the server command callback.
func WithOnCommand(fn func(Command)) Option {
	return func(o *Options) { o.OnCommand = fn }
}

// WithOnConnect sets the connect callback. It runs before plugin hooks.
func WithOnConnect(fn func()) Option {
	return func(o *Options) { o.OnConnect = fn }
}

// WithOnDisconnect sets the disconnect callback. It runs before plugin hooks.
func WithOnDisconnect(fn func()) Option {
	return func(o *Options) { o.OnDisconnect = fn }
}

// WithOnError sets the sink for aggregated plugin hook failures.
func WithOnError(fn func(error)) Option {
	return func(o *Options) { o.OnError = fn }
}

// WithPlugins sets the plugin creators Configure registers, replacing any
// previously configured list.
func WithPlugins(creators ...PluginCreator) Option {
	return func(o *Options) { o.Plugins = creators }
}

// WithDialTimeout bounds the transport handshake.
func WithDialTimeout(d time.Duration) Option {
	return func(o *Options) { o.DialTimeout = d }
}

// WithLogger sets the logger for client debug traces.
func WithLogger(log *zap.Logger) Option {
	return func(o *Options) { o.Logger = log }
}
