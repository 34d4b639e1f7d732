package export

// State tags the result of a finished export.
type State int

const (
	// StateSuccess: the fully merged video was saved.
	StateSuccess State = iota
	// StateDegraded: the merge endpoint is not deployed; the raw video was
	// saved without narration or captions.
	StateDegraded
	// StateFailed: nothing was saved.
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateSuccess:
		return "success"
	case StateDegraded:
		return "degraded"
	default:
		return "failed"
	}
}

// Outcome is the tagged result of one export. Callers branch on State rather
// than matching error strings.
type Outcome struct {
	State   State
	Path    string // saved file; set unless State is StateFailed
	Warning string // set when State is StateDegraded
	Err     error  // set when State is StateFailed
}

func success(path string) Outcome {
	return Outcome{State: StateSuccess, Path: path}
}

func degraded(path, warning string) Outcome {
	return Outcome{State: StateDegraded, Path: path, Warning: warning}
}

func failed(err error) Outcome {
	return Outcome{State: StateFailed, Err: err}
}
