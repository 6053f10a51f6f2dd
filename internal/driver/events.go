package driver

// Stage is a step of reading a folder.
type Stage uint8

const (
	StageLoad Stage = iota
	StageParse
	StageReport
)

func (s Stage) String() string {
	switch s {
	case StageLoad:
		return "loading"
	case StageParse:
		return "parsing"
	case StageReport:
		return "reporting"
	default:
		return ""
	}
}

// Status describes where a file is within a stage.
type Status uint8

const (
	StatusQueued Status = iota
	StatusWorking
	StatusDone
	StatusError
)

// Event reports progress on one file, or on the whole run when File is empty.
type Event struct {
	File   string
	Stage  Stage
	Status Status
}

// EventSink receives progress events. Parallel reads call it from several
// goroutines.
type EventSink func(Event)

func (s EventSink) emit(file string, stage Stage, status Status) {
	if s == nil {
		return
	}
	s(Event{File: file, Stage: stage, Status: status})
}
