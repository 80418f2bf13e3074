package reactotron

import "errors"

// Common errors returned by client operations.
var (
	// ErrInvalidConfig is returned when options validation fails.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrInvalidPlugin is returned when a plugin creator is nil or produces no plugin.
	ErrInvalidPlugin = errors.New("invalid plugin")

	// ErrInvalidFeature is returned when a plugin declares a feature that is not callable.
	ErrInvalidFeature = errors.New("invalid feature")

	// ErrReservedName is returned when a feature name collides with a built-in
	// client operation.
	ErrReservedName = errors.New("reserved feature name")

	// ErrFeatureNotFound is returned when Call is given a feature name no
	// plugin has registered.
	ErrFeatureNotFound = errors.New("feature not found")

	// ErrNotConnected is returned when sending without a live socket.
	ErrNotConnected = errors.New("client not connected")

	// ErrClientClosed is returned when operating on a closed client.
	ErrClientClosed = errors.New("client is closed")

	// ErrSocketClosed is returned when emitting on a socket that is closed
	// or was never opened.
	ErrSocketClosed = errors.New("socket is closed")

	// ErrNoTransport is returned when no entry in the transport preference
	// list is supported by the dialer.
	ErrNoTransport = errors.New("no supported transport")
)
