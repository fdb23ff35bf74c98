package submit

// State is the lifecycle stage of a submit attempt.
type State int

const (
	Idle State = iota
	Validating
	Loading
	Succeeded
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Validating:
		return "validating"
	case Loading:
		return "loading"
	case Succeeded:
		return "succeeded"
	}
	return "unknown"
}

// accepting reports whether a new submit attempt may start from s.
func (s State) accepting() bool {
	return s == Idle || s == Succeeded
}
