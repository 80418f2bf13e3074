// Package benchmark measures labeled spans of work and reports them to
// the reactotron server.
package benchmark

import (
	"sync"
	"time"

	"github.com/alisonrodolfo/reactotron"
)

var (
	_ reactotron.Plugin          = (*Plugin)(nil)
	_ reactotron.FeatureProvider = (*Plugin)(nil)
)

// Step is one measurement inside a report: the elapsed time in
// milliseconds when the step was recorded.
type Step struct {
	Title string  `json:"title"`
	Time  float64 `json:"time"`
}

// report is the payload of a benchmark.report command.
type report struct {
	Title string `json:"title"`
	Steps []Step `json:"steps"`
}

// Plugin injects a benchmark feature that times labeled spans.
type Plugin struct {
	send reactotron.SendFunc
	ref  *reactotron.Client
}

// New returns the plugin creator.
func New() reactotron.PluginCreator {
	return func(caps reactotron.Caps) reactotron.Plugin {
		return &Plugin{send: caps.Send, ref: caps.Ref}
	}
}

// Name returns the plugin name.
func (p *Plugin) Name() string { return "benchmark" }

// Features exposes benchmark on the client. The feature takes a title
// and returns a *Session.
func (p *Plugin) Features() reactotron.FeatureMap {
	return reactotron.FeatureMap{
		"benchmark": func(args ...any) (any, error) {
			title := "benchmark"
			if len(args) > 0 {
				if s, ok := args[0].(string); ok && s != "" {
					title = s
				}
			}
			return p.Start(title), nil
		},
	}
}

// Start begins a measured run. The run opens with a zero-time step
// carrying the run title.
func (p *Plugin) Start(title string) *Session {
	s := &Session{title: title, send: p.send, watch: p.startTimer()}
	s.steps = append(s.steps, Step{Title: title, Time: 0})
	return s
}

func (p *Plugin) startTimer() *reactotron.Stopwatch {
	if p.ref != nil {
		return p.ref.StartTimer()
	}
	return reactotron.NewStopwatch()
}

// Session is one measured run. Record intermediate points with Step and
// finish with Stop, which sends the report.
type Session struct {
	title string
	send  reactotron.SendFunc
	watch *reactotron.Stopwatch

	mu    sync.Mutex
	steps []Step
	done  bool
}

// Step records the elapsed time under the given label. No-op once the
// session is stopped.
func (s *Session) Step(title string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.done {
		return
	}
	s.steps = append(s.steps, Step{Title: title, Time: s.elapsedMillis()})
}

// Stop records a final step and sends the report. Only the first call
// sends; later calls are no-ops.
func (s *Session) Stop(title string) error {
	s.mu.Lock()
	if s.done {
		s.mu.Unlock()
		return nil
	}
	s.done = true
	s.watch.Stop()
	s.steps = append(s.steps, Step{Title: title, Time: s.elapsedMillis()})
	steps := make([]Step, len(s.steps))
	copy(steps, s.steps)
	s.mu.Unlock()

	return s.send("benchmark.report", report{Title: s.title, Steps: steps})
}

// Steps returns the steps recorded so far.
func (s *Session) Steps() []Step {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Step, len(s.steps))
	copy(out, s.steps)
	return out
}

func (s *Session) elapsedMillis() float64 {
	return float64(s.watch.Elapsed()) / float64(time.Millisecond)
}
