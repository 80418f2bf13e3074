package reactotron

import (
	"fmt"
	"sort"
)

// SendFunc sends a command to the inspection server. Plugin creators
// receive one already bound to their client.
type SendFunc func(messageType string, payload any) error

// Caps is the capability surface handed to a plugin creator: the client's
// send operation and a reference back to the client itself.
type Caps struct {
	Send SendFunc
	Ref  *Client
}

// PluginCreator produces a plugin from client capabilities.
type PluginCreator func(caps Caps) Plugin

// Plugin is the interface implemented by all plugin types. Behavior is
// declared through the optional interfaces ConnectHandler,
// DisconnectHandler and FeatureProvider; a plugin implements only the
// ones it needs.
type Plugin interface {
	// Name identifies the plugin in logs and errors.
	Name() string
}

// ConnectHandler is implemented by plugins that react to the socket
// connecting. Hook errors are collected after the fan-out; they never
// stop other plugins from running.
type ConnectHandler interface {
	OnConnect() error
}

// DisconnectHandler is implemented by plugins that react to the socket
// disconnecting.
type DisconnectHandler interface {
	OnDisconnect() error
}

// FeatureProvider is implemented by plugins that inject callable features
// into the client. Features are dispatched by name through Client.Call.
type FeatureProvider interface {
	Features() FeatureMap
}

// FeatureFunc is a callable feature injected by a plugin. Call passes
// arguments through verbatim.
type FeatureFunc func(args ...any) (any, error)

// FeatureMap maps feature names to their implementations.
type FeatureMap map[string]FeatureFunc

// Keys returns all feature names in sorted order.
func (fm FeatureMap) Keys() []string {
	keys := make([]string, 0, len(fm))
	for k := range fm {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Validate checks that every declared feature is callable and none shadows
// a built-in client operation. The whole map is checked before any feature
// is bound, so a plugin either injects all its features or none.
func (fm FeatureMap) Validate() error {
	for _, name := range fm.Keys() {
		if fm[name] == nil {
			return fmt.Errorf("%w: feature %q is not a function", ErrInvalidFeature, name)
		}

		if IsReservedName(name) {
			return fmt.Errorf("%w: feature %q is a reserved name", ErrReservedName, name)
		}

		if err := ValidateFeatureName(name); err != nil {
			return fmt.Errorf("%w: %v", ErrInvalidFeature, err)
		}
	}

	return nil
}

// reservedNames are the built-in client operation names a feature may
// never shadow. Matching is exact and case-sensitive.
var reservedNames = map[string]struct{}{
	"options":    {},
	"connected":  {},
	"socket":     {},
	"plugins":    {},
	"configure":  {},
	"connect":    {},
	"send":       {},
	"addPlugin":  {},
	"startTimer": {},
}

// IsReservedName reports whether name collides with a built-in client
// operation.
func IsReservedName(name string) bool {
	_, ok := reservedNames[name]
	return ok
}

// ReservedNames returns the reserved name set in sorted order.
func ReservedNames() []string {
	names := make([]string, 0, len(reservedNames))
	for name := range reservedNames {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
