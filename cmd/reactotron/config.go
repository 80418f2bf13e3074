package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/alisonrodolfo/reactotron"
)

// clientConfig is the resolved CLI configuration.
type clientConfig struct {
	Host string
	Port int
	Name string
}

// loadConfig resolves configuration in layers: defaults, then
// reactotron.yaml, then REACTOTRON_* environment variables, then flags.
func loadConfig(cmd *cobra.Command) (clientConfig, error) {
	v := viper.New()
	v.SetDefault("host", reactotron.DefaultHost)
	v.SetDefault("port", reactotron.DefaultPort)
	v.SetDefault("name", reactotron.DefaultName)

	v.SetConfigName("reactotron")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".config", "reactotron"))
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return clientConfig{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	v.SetEnvPrefix("REACTOTRON")
	v.AutomaticEnv()

	for _, name := range []string{"host", "port", "name"} {
		if err := v.BindPFlag(name, cmd.Flags().Lookup(name)); err != nil {
			return clientConfig{}, fmt.Errorf("failed to bind flag %s: %w", name, err)
		}
	}

	return clientConfig{
		Host: v.GetString("host"),
		Port: v.GetInt("port"),
		Name: v.GetString("name"),
	}, nil
}
