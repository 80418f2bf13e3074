// Package reactotronfx integrates the reactotron client into fx
// applications.
package reactotronfx

import (
	"context"

	"go.uber.org/fx"

	"github.com/alisonrodolfo/reactotron"
)

// Module creates an fx module that provides a *reactotron.Client built
// from opts. The client connects on fx.OnStart and closes on fx.OnStop.
func Module(opts ...reactotron.Option) fx.Option {
	return fx.Module("reactotron",
		fx.Provide(func(lc fx.Lifecycle) (*reactotron.Client, error) {
			client, err := reactotron.New(opts...)
			if err != nil {
				return nil, err
			}

			lc.Append(fx.Hook{
				OnStart: func(ctx context.Context) error {
					return client.Connect(ctx)
				},
				OnStop: func(ctx context.Context) error {
					return client.Close()
				},
			})

			return client, nil
		}),
	)
}

// ProvidePlugin registers a plugin on the provided client while the app
// is wiring up, before the client connects.
// Example:
//
//	fx.New(
//	    reactotronfx.Module(reactotron.WithHost("localhost")),
//	    reactotronfx.ProvidePlugin(logger.New()),
//	    fx.Invoke(func(client *reactotron.Client) {
//	        // Use the client
//	    }),
//	)
func ProvidePlugin(creator reactotron.PluginCreator) fx.Option {
	return fx.Invoke(func(client *reactotron.Client) error {
		return client.AddPlugin(creator)
	})
}
