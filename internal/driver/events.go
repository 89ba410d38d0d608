package driver

import "time"

// Stage is the step a file is in inside ParseFiles.
type Stage uint8

const (
	StageLoad Stage = iota + 1
	StageCache
	StageParse
)

var stageNames = [...]string{StageLoad: "load", StageCache: "cache", StageParse: "parse"}

func (s Stage) String() string {
	if int(s) < len(stageNames) && stageNames[s] != "" {
		return stageNames[s]
	}
	return "none"
}

// Status is where a file stands within its Stage.
type Status uint8

const (
	StatusQueued Status = iota + 1
	StatusWorking
	StatusDone  // finished, no errors
	StatusError // finished with errors or failed to load
)

// Event is one progress update. File is empty for run-wide events.
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink receives events from every worker, so it must be safe for
// concurrent use.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink sends each event on Ch and blocks until it is received.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(ev Event) {
	if s.Ch != nil {
		s.Ch <- ev
	}
}

func emit(sink ProgressSink, ev Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}
