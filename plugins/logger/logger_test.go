package logger

import (
	"errors"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/alisonrodolfo/reactotron"
)

type sentCommand struct {
	kind    string
	payload any
}

type sendRecorder struct {
	err  error
	sent []sentCommand
}

func (r *sendRecorder) send(kind string, payload any) error {
	if r.err != nil {
		return r.err
	}
	r.sent = append(r.sent, sentCommand{kind: kind, payload: payload})
	return nil
}

func newTestPlugin(t *testing.T, rec *sendRecorder) *Plugin {
	t.Helper()
	plugin := New()(reactotron.Caps{Send: rec.send})
	p, ok := plugin.(*Plugin)
	if !ok {
		t.Fatalf("creator returned %T, want *Plugin", plugin)
	}
	return p
}

func (r *sendRecorder) entry(t *testing.T, i int) entryBody {
	t.Helper()
	if len(r.sent) <= i {
		t.Fatalf("recorded %d commands, want at least %d", len(r.sent), i+1)
	}
	if r.sent[i].kind != "log" {
		t.Fatalf("command kind = %q, want %q", r.sent[i].kind, "log")
	}
	body, ok := r.sent[i].payload.(entryBody)
	if !ok {
		t.Fatalf("payload is %T, want entryBody", r.sent[i].payload)
	}
	return body
}

func TestPlugin_Name(t *testing.T) {
	p := newTestPlugin(t, &sendRecorder{})
	if got := p.Name(); got != "logger" {
		t.Errorf("Name() = %q, want %q", got, "logger")
	}
}

func TestPlugin_Features(t *testing.T) {
	p := newTestPlugin(t, &sendRecorder{})
	feats := p.Features()

	for _, name := range []string{"log", "debug", "warn", "error"} {
		if feats[name] == nil {
			t.Errorf("Features() missing %q", name)
		}
	}
	if err := feats.Validate(); err != nil {
		t.Errorf("Features() should pass validation: %v", err)
	}
}

func TestPlugin_FeatureShipsEntry(t *testing.T) {
	rec := &sendRecorder{}
	p := newTestPlugin(t, rec)

	if _, err := p.Features()["warn"]("disk", "almost full"); err != nil {
		t.Fatalf("warn feature error: %v", err)
	}

	body := rec.entry(t, 0)
	if body.Level != LevelWarn {
		t.Errorf("level = %q, want %q", body.Level, LevelWarn)
	}
	if body.Message != "disk almost full" {
		t.Errorf("message = %q, want %q", body.Message, "disk almost full")
	}
	if body.Fields != nil {
		t.Errorf("fields = %v, want nil", body.Fields)
	}
}

func TestPlugin_TypedHelpers(t *testing.T) {
	rec := &sendRecorder{}
	p := newTestPlugin(t, rec)

	p.Debug("d")
	p.Warn("w")
	p.Error("e")

	want := []Level{LevelDebug, LevelWarn, LevelError}
	for i, level := range want {
		if body := rec.entry(t, i); body.Level != level {
			t.Errorf("entry %d level = %q, want %q", i, body.Level, level)
		}
	}
}

func TestPlugin_SendErrorPropagates(t *testing.T) {
	boom := errors.New("socket gone")
	p := newTestPlugin(t, &sendRecorder{err: boom})

	if err := p.Warn("w"); !errors.Is(err, boom) {
		t.Errorf("Warn() = %v, want %v", err, boom)
	}
	if _, err := p.Features()["log"]("x"); !errors.Is(err, boom) {
		t.Errorf("log feature = %v, want %v", err, boom)
	}
}

func TestCore_ShipsEnabledEntries(t *testing.T) {
	rec := &sendRecorder{}
	log := zap.New(Core(rec.send, zapcore.WarnLevel))

	log.Info("quiet")
	log.Warn("loud")
	log.Error("failed", zap.String("reason", "timeout"))

	if len(rec.sent) != 2 {
		t.Fatalf("recorded %d entries, want 2", len(rec.sent))
	}
	first := rec.entry(t, 0)
	if first.Level != LevelWarn || first.Message != "loud" {
		t.Errorf("first entry = %+v", first)
	}
	second := rec.entry(t, 1)
	if second.Level != LevelError || second.Message != "failed" {
		t.Errorf("second entry = %+v", second)
	}
	if second.Fields["reason"] != "timeout" {
		t.Errorf("second entry fields = %v", second.Fields)
	}
}

func TestCore_WithFields(t *testing.T) {
	rec := &sendRecorder{}
	log := zap.New(Core(rec.send, zapcore.DebugLevel))

	log.With(zap.String("app", "example")).Debug("ready", zap.Int("port", 9090))

	body := rec.entry(t, 0)
	if body.Fields["app"] != "example" {
		t.Errorf("fields = %v, want app=example", body.Fields)
	}
	if body.Fields["port"] != int64(9090) {
		t.Errorf("fields = %v, want port=9090", body.Fields)
	}
}

func TestCore_LevelMapping(t *testing.T) {
	tests := []struct {
		zap  zapcore.Level
		want Level
	}{
		{zapcore.DebugLevel, LevelDebug},
		{zapcore.InfoLevel, LevelDebug},
		{zapcore.WarnLevel, LevelWarn},
		{zapcore.ErrorLevel, LevelError},
		{zapcore.DPanicLevel, LevelError},
	}

	for _, tt := range tests {
		if got := levelFor(tt.zap); got != tt.want {
			t.Errorf("levelFor(%v) = %q, want %q", tt.zap, got, tt.want)
		}
	}
}
