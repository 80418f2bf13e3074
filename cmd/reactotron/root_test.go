package main

import (
	"strings"
	"testing"
)

func TestNewRootCommand(t *testing.T) {
	cmd := NewRootCommand("1.2.3", "abc1234", "2026-08-25")

	if cmd.Use != "reactotron" {
		t.Errorf("Use = %q, want %q", cmd.Use, "reactotron")
	}
	if !strings.Contains(cmd.Version, "1.2.3") || !strings.Contains(cmd.Version, "abc1234") {
		t.Errorf("Version = %q, want version and commit in it", cmd.Version)
	}

	var found bool
	for _, sub := range cmd.Commands() {
		if sub.Name() == "connect" {
			found = true
		}
	}
	if !found {
		t.Error("root command is missing the connect subcommand")
	}
}
