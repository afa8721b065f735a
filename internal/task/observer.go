package task

import (
	"log/slog"
	"sync"
)

// Observer receives the lifecycle signals of tasks started on a Runner.
// LoadingFinished is sent once per naturally completed task and never for a
// cancelled one.
type Observer interface {
	LoadingStarted(name string)
	LoadingProgress(name string, p Progress)
	LoadingFinished(name string)
}

type NopObserver struct{}

func (NopObserver) LoadingStarted(string) {}

func (NopObserver) LoadingProgress(string, Progress) {}

func (NopObserver) LoadingFinished(string) {}

// LogObserver writes every signal to a slog logger.
type LogObserver struct {
	logger *slog.Logger
}

func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (x *LogObserver) LoadingStarted(name string) {
	x.logger.Info("loading started", "task", name)
}

func (x *LogObserver) LoadingProgress(name string, p Progress) {
	x.logger.Debug("loading progress", "task", name, "step", p.Step, "total", p.Total, "label", p.Label)
}

func (x *LogObserver) LoadingFinished(name string) {
	x.logger.Info("loading finished", "task", name)
}

// Signal is one recorded observer call.
type Signal struct {
	Kind     string
	Name     string
	Progress Progress
}

// Recorder keeps every signal in order. It is safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	signals []Signal
}

func (x *Recorder) add(s Signal) {
	x.mu.Lock()
	defer x.mu.Unlock()
	x.signals = append(x.signals, s)
}

func (x *Recorder) LoadingStarted(name string) {
	x.add(Signal{Kind: "started", Name: name})
}

func (x *Recorder) LoadingProgress(name string, p Progress) {
	x.add(Signal{Kind: "progress", Name: name, Progress: p})
}

func (x *Recorder) LoadingFinished(name string) {
	x.add(Signal{Kind: "finished", Name: name})
}

// Signals returns a copy of the recorded signals.
func (x *Recorder) Signals() []Signal {
	x.mu.Lock()
	defer x.mu.Unlock()
	return append([]Signal(nil), x.signals...)
}

// Count returns how many signals of kind were recorded.
func (x *Recorder) Count(kind string) int {
	n := 0
	for _, s := range x.Signals() {
		if s.Kind == kind {
			n++
		}
	}
	return n
}

// Multi fans signals out to several observers.
type Multi []Observer

func (m Multi) LoadingStarted(name string) {
	for _, o := range m {
		o.LoadingStarted(name)
	}
}

func (m Multi) LoadingProgress(name string, p Progress) {
	for _, o := range m {
		o.LoadingProgress(name, p)
	}
}

func (m Multi) LoadingFinished(name string) {
	for _, o := range m {
		o.LoadingFinished(name)
	}
}
