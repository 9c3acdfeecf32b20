package frontier

import (
	"fmt"
	"io"
)

// Successor is a state reachable in a single step from another state
// together with the cost of the edge leading to it.
type Successor[S comparable] struct {
	State S
	Cost  float64
}

// Problem values describe an implicit state graph. The search engine only
// ever calls into a Problem through this contract and never inspects the
// structure of a state.
type Problem[S comparable] interface {
	// InitialState returns the state the search starts from. The boolean
	// is false when no initial state has been configured yet.
	InitialState() (S, bool)
	// IsGoal reports whether the state satisfies the goal predicate.
	IsGoal(state S) bool
	// Expand returns the successors of the state. Edge costs are expected
	// to be non-negative.
	Expand(state S) []Successor[S]
}

// RandomProblem is implemented by problems that are able to replace
// their initial state with a randomly generated one.
type RandomProblem[S comparable] interface {
	Problem[S]
	RandomizeInitialState()
}

// StateRenderer is implemented by problems that know how to render
// their states for humans.
type StateRenderer[S comparable] interface {
	DisplayState(w io.Writer, state S)
}

// Record is the finalized bookkeeping for a single state: the best
// known path cost and the state it was reached from.
type Record[S comparable] struct {
	Cost      float64
	Parent    S
	HasParent bool
}

// History maps every finalized state to its record.
type History[S comparable] map[S]Record[S]

// Lookup returns the record of the state, if it has been finalized.
func (h History[S]) Lookup(state S) (Record[S], bool) {
	r, ok := h[state]
	return r, ok
}

// Dominates returns true if the state has already been finalized at a
// cost lower than or equal to cost.
func (h History[S]) Dominates(state S, cost float64) bool {
	r, ok := h.Lookup(state)
	return ok && r.Cost <= cost
}

// Evaluator assigns a priority to a candidate successor. Lower priorities
// are expanded first. Implementations may read the history but must never
// modify it.
type Evaluator[S comparable] interface {
	Evaluate(history History[S], current S, to S, edgeCost float64) float64
}

// RenderState writes the state using the problem's renderer when it has
// one, and its default formatting otherwise.
func RenderState[S comparable](w io.Writer, problem Problem[S], state S) {
	if renderer, ok := problem.(StateRenderer[S]); ok {
		renderer.DisplayState(w, state)
		return
	}
	fmt.Fprintf(w, "%v\n", state)
}
