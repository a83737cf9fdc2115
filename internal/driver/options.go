package driver

import (
	"time"

	"pinecheck/internal/builtins"
	"pinecheck/internal/diag"
	"pinecheck/internal/project"
)

// Options configure Diagnose and DiagnoseDir.
type Options struct {
	MaxDiagnostics   int
	Corpus           *builtins.Corpus // nil - встроенный корпус
	IgnoreWarnings   bool
	WarningsAsErrors bool
	EnableTimings    bool
	Cache            *DiskCache // nil - без кэша
	Jobs             int        // 0 - GOMAXPROCS
	Extensions       []string   // пусто - project.DefaultExtensions
	Progress         ProgressSink
}

func (o Options) maxDiagnostics() int {
	if o.MaxDiagnostics <= 0 {
		return diag.DefaultMax
	}
	return o.MaxDiagnostics
}

func (o Options) corpus() *builtins.Corpus {
	if o.Corpus == nil {
		return builtins.Default()
	}
	return o.Corpus
}

func (o Options) extensions() []string {
	if len(o.Extensions) == 0 {
		return project.DefaultExtensions
	}
	return o.Extensions
}

// Stage describes a per-file pipeline step reported to a ProgressSink.
type Stage string

const (
	StageLoad     Stage = "load"
	StageParse    Stage = "parse"
	StageAnalyze  Stage = "analyze"
	StageCacheHit Stage = "cache"
)

// Status captures progress state within a stage.
type Status string

const (
	StatusQueued  Status = "queued"
	StatusWorking Status = "working"
	StatusDone    Status = "done"
	StatusError   Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
// Completion events carry the diagnostic counts of the file.
type Event struct {
	File     string
	Stage    Stage
	Status   Status
	Err      error
	Elapsed  time.Duration
	Errors   int
	Warnings int
}

// ProgressSink consumes progress events. Implementations must be safe for
// concurrent use: DiagnoseDir reports from worker goroutines.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

func emit(sink ProgressSink, evt Event) {
	if sink != nil {
		sink.OnEvent(evt)
	}
}
