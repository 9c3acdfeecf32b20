package frontier

import "fmt"

// InvalidState is returned when a search cannot run, or cannot continue,
// because of the configuration of the problem (e.g. no initial state).
type InvalidState struct {
	Reason string
}

func (e InvalidState) Error() string {
	if e.Reason == "" {
		return "invalid search state"
	}
	return fmt.Sprintf("invalid search state: %s", e.Reason)
}

// NotReady is returned when results are queried before a search has completed.
type NotReady struct{}

func (NotReady) Error() string {
	return "search has not completed"
}

// Unimplemented is returned when a capability the caller asked for is
// missing from the problem or strategy (e.g. a weighted A* without a heuristic).
type Unimplemented struct {
	What string
}

func (e Unimplemented) Error() string {
	return fmt.Sprintf("not implemented: %s", e.What)
}
