package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/alisonrodolfo/reactotron"
	"github.com/alisonrodolfo/reactotron/plugins/logger"
)

// newConnectCommand creates the connect subcommand.
func newConnectCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "connect [flags]",
		Short: "Connect to a reactotron server and print inbound commands",
		Long: `Connect dials a reactotron server, announces this client, and prints
every command the server sends until interrupted.

Configuration is layered: flags override environment variables
(REACTOTRON_HOST, REACTOTRON_PORT, REACTOTRON_NAME), which override
reactotron.yaml in the working directory or $HOME/.config/reactotron.

Example:
  reactotron connect
  reactotron connect --host 192.168.1.20 --port 9090 --name my-app`,
		RunE: runConnect,
	}

	cmd.Flags().String("host", reactotron.DefaultHost, "server host")
	cmd.Flags().Int("port", reactotron.DefaultPort, "server port")
	cmd.Flags().String("name", reactotron.DefaultName, "client display name")

	return cmd
}

func runConnect(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	zlog, err := zap.NewProduction()
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer zlog.Sync()

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	// Handle shutdown gracefully
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		fmt.Println("\nShutting down...")
		cancel()
	}()

	client, err := reactotron.New(
		reactotron.WithHost(cfg.Host),
		reactotron.WithPort(cfg.Port),
		reactotron.WithName(cfg.Name),
		reactotron.WithLogger(zlog),
		reactotron.WithPlugins(logger.New()),
		reactotron.WithOnConnect(func() {
			fmt.Printf("Connected to ws://%s:%d\n", cfg.Host, cfg.Port)
		}),
		reactotron.WithOnDisconnect(func() {
			fmt.Println("Disconnected")
		}),
		reactotron.WithOnCommand(func(command reactotron.Command) {
			printCommand(command)
		}),
	)
	if err != nil {
		return fmt.Errorf("failed to create client: %w", err)
	}
	defer client.Close()

	if err := client.Connect(ctx); err != nil {
		return fmt.Errorf("failed to connect: %w", err)
	}

	fmt.Printf("Connecting to ws://%s:%d as %q (Ctrl+C to quit)\n", cfg.Host, cfg.Port, cfg.Name)

	<-ctx.Done()
	return nil
}

func printCommand(command reactotron.Command) {
	payload := strings.TrimSpace(string(command.Payload))
	if payload == "" {
		fmt.Printf("<- %s\n", command.Type)
		return
	}
	fmt.Printf("<- %s %s\n", command.Type, payload)
}
