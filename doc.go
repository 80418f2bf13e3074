// Package reactotron provides a plugin-extensible client for Reactotron-style
// app inspection servers.
//
// # Overview
//
// The client keeps a websocket connection to an inspection server, announces
// itself on connect, and forwards server-pushed commands to the application.
// Everything beyond that core loop comes from plugins: a plugin can observe
// connection events and inject named features the application calls through
// the client.
//
// The core pieces:
//
//   - Functional options with shallow merge semantics (Configure)
//   - A plugin host with capability injection and a reserved-name guard
//   - A connector driving a Disconnected/Connecting/Connected state machine
//
// # Basic Usage
//
// Create a client, connect, and send commands:
//
//	client, err := reactotron.New(
//	    reactotron.WithHost("localhost"),
//	    reactotron.WithPort(9090),
//	    reactotron.WithName("my-app"),
//	)
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	if err := client.Connect(ctx); err != nil {
//	    return err
//	}
//	client.Send("state.action.complete", map[string]any{"name": "LOGIN"})
//
// # Plugins
//
// A plugin creator receives the client's capabilities and returns a plugin.
// Optional interfaces declare behavior:
//
//	type counter struct {
//	    send reactotron.SendFunc
//	    n    int
//	}
//
//	func (c *counter) Name() string { return "counter" }
//
//	func (c *counter) Features() reactotron.FeatureMap {
//	    return reactotron.FeatureMap{
//	        "count": func(args ...any) (any, error) {
//	            c.n++
//	            return c.n, c.send("counter.tick", c.n)
//	        },
//	    }
//	}
//
//	client.AddPlugin(func(caps reactotron.Caps) reactotron.Plugin {
//	    return &counter{send: caps.Send}
//	})
//	client.Call("count")
//
// Feature names must not shadow built-in client operations; see
// ReservedNames.
package reactotron
