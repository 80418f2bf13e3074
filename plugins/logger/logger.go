// Package logger ships application log entries to the reactotron server.
//
// The plugin injects log, debug, warn and error features on the client.
// Applications that already log through zap can instead tee their output
// to the server with Core.
package logger

import (
	"fmt"
	"strings"

	"go.uber.org/zap/zapcore"

	"github.com/alisonrodolfo/reactotron"
)

var (
	_ reactotron.Plugin          = (*Plugin)(nil)
	_ reactotron.FeatureProvider = (*Plugin)(nil)
	_ zapcore.Core               = (*sendCore)(nil)
)

// Level is the display severity of a shipped entry.
type Level string

// Display severities understood by the server.
const (
	LevelDebug Level = "debug"
	LevelWarn  Level = "warn"
	LevelError Level = "error"
)

// entryBody is the payload of a log command.
type entryBody struct {
	Level   Level          `json:"level"`
	Message string         `json:"message"`
	Fields  map[string]any `json:"fields,omitempty"`
}

// Plugin sends log entries to the server as log commands.
type Plugin struct {
	send reactotron.SendFunc
}

// New returns the plugin creator. Register it with AddPlugin or WithPlugins.
func New() reactotron.PluginCreator {
	return func(caps reactotron.Caps) reactotron.Plugin {
		return &Plugin{send: caps.Send}
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string { return "logger" }

// Features exposes log, debug, warn and error on the client.
func (p *Plugin) Features() reactotron.FeatureMap {
	return reactotron.FeatureMap{
		"log":   p.feature(LevelDebug),
		"debug": p.feature(LevelDebug),
		"warn":  p.feature(LevelWarn),
		"error": p.feature(LevelError),
	}
}

func (p *Plugin) feature(level Level) reactotron.FeatureFunc {
	return func(args ...any) (any, error) {
		return nil, p.Log(level, args...)
	}
}

// Log ships one entry at the given level. Arguments are rendered the way
// fmt.Sprintln renders them, without the trailing newline.
func (p *Plugin) Log(level Level, args ...any) error {
	return p.ship(level, formatMessage(args), nil)
}

// Debug ships a debug entry.
func (p *Plugin) Debug(args ...any) error { return p.Log(LevelDebug, args...) }

// Warn ships a warning entry.
func (p *Plugin) Warn(args ...any) error { return p.Log(LevelWarn, args...) }

// Error ships an error entry.
func (p *Plugin) Error(args ...any) error { return p.Log(LevelError, args...) }

func (p *Plugin) ship(level Level, message string, fields map[string]any) error {
	return p.send("log", entryBody{Level: level, Message: message, Fields: fields})
}

func formatMessage(args []any) string {
	return strings.TrimSuffix(fmt.Sprintln(args...), "\n")
}

// Core returns a zapcore.Core that ships every enabled entry through send.
// Tee it next to an application's main core:
//
//	core := zapcore.NewTee(mainCore, logger.Core(client.Send, zapcore.DebugLevel))
//	log := zap.New(core)
func Core(send reactotron.SendFunc, enab zapcore.LevelEnabler) zapcore.Core {
	return &sendCore{LevelEnabler: enab, send: send}
}

type sendCore struct {
	zapcore.LevelEnabler
	send   reactotron.SendFunc
	fields []zapcore.Field
}

func (c *sendCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &sendCore{LevelEnabler: c.LevelEnabler, send: c.send}
	clone.fields = append(clone.fields, c.fields...)
	clone.fields = append(clone.fields, fields...)
	return clone
}

func (c *sendCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}
	return ce
}

func (c *sendCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	enc := zapcore.NewMapObjectEncoder()
	for _, f := range c.fields {
		f.AddTo(enc)
	}
	for _, f := range fields {
		f.AddTo(enc)
	}

	var extra map[string]any
	if len(enc.Fields) > 0 {
		extra = enc.Fields
	}
	return c.send("log", entryBody{Level: levelFor(ent.Level), Message: ent.Message, Fields: extra})
}

func (c *sendCore) Sync() error { return nil }

// levelFor maps zap's levels onto the server's three display severities.
func levelFor(l zapcore.Level) Level {
	switch {
	case l >= zapcore.ErrorLevel:
		return LevelError
	case l == zapcore.WarnLevel:
		return LevelWarn
	default:
		return LevelDebug
	}
}
