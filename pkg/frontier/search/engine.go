// Package search implements the best-first search engine and the
// evaluation strategies that order its frontier.
package search

import (
	"fmt"
	"time"

	"github.com/go-logr/logr"

	"github.com/operator-framework/frontier/internal/queue"
	"github.com/operator-framework/frontier/pkg/frontier"
)

// candidate is what the engine keeps in its frontier. The same state may
// be queued several times with different costs; stale candidates are
// discarded when they are popped.
type candidate[S comparable] struct {
	state     S
	cost      float64
	parent    S
	hasParent bool
}

// Engine runs a best-first search over a Problem. The order in which states
// are expanded is decided by the Evaluator it was built with.
//
// An Engine is not safe for concurrent use.
type Engine[S comparable] struct {
	problem   frontier.Problem[S]
	evaluator frontier.Evaluator[S]
	logger    logr.Logger
	tracer    frontier.Tracer[S]
	runIDs    frontier.RunIDProvider
	clock     func() time.Time

	runID           frontier.RunID
	open            *queue.PriorityQueue[candidate[S]]
	history         frontier.History[S]
	reachedGoal     S
	goalReached     bool
	nodesVisited    int
	maxFrontierSize int
	timeTaken       time.Duration
	complete        bool
	// failed is the error that aborted the current run, if any.
	failed error
}

// New returns an engine that searches problem in the order given by evaluator.
func New[S comparable](problem frontier.Problem[S], evaluator frontier.Evaluator[S], options ...Option[S]) (*Engine[S], error) {
	if problem == nil {
		return nil, frontier.InvalidState{Reason: "no problem provided"}
	}
	if evaluator == nil {
		return nil, frontier.Unimplemented{What: "evaluation strategy"}
	}
	if a, ok := evaluator.(*WeightedAStar[S]); ok && (a == nil || a.Heuristic == nil) {
		return nil, frontier.Unimplemented{What: "heuristic"}
	}
	e := &Engine[S]{
		problem:   problem,
		evaluator: evaluator,
	}
	for _, option := range append(options, defaults[S]()...) {
		if err := option(e); err != nil {
			return nil, err
		}
	}
	e.clear()
	return e, nil
}

func (e *Engine[S]) clear() {
	var zero S
	e.runID = e.runIDs.NextRunID()
	e.open = queue.New[candidate[S]]()
	e.history = frontier.History[S]{}
	e.reachedGoal = zero
	e.goalReached = false
	e.nodesVisited = 0
	e.maxFrontierSize = 0
	e.timeTaken = 0
	e.complete = false
	e.failed = nil
}

// Reset discards the state of any previous run. When randomize is true the
// problem is asked for a new random initial state, which requires it to
// implement frontier.RandomProblem.
func (e *Engine[S]) Reset(randomize bool) error {
	if randomize {
		rp, ok := e.problem.(frontier.RandomProblem[S])
		if !ok {
			return frontier.Unimplemented{What: "random initial state"}
		}
		rp.RandomizeInitialState()
	}
	e.clear()
	e.logger.V(1).Info("search reset", "run", e.runID, "randomized", randomize)
	return nil
}

// PerformSearch runs the search until a goal state is finalized or the
// frontier is exhausted. It must be called once per Reset. A run aborted
// by an error keeps returning that error until the engine is reset.
func (e *Engine[S]) PerformSearch() error {
	if e.failed != nil {
		return e.failed
	}
	if e.complete {
		return frontier.InvalidState{Reason: "search already performed, reset the engine first"}
	}
	initial, ok := e.problem.InitialState()
	if !ok {
		return frontier.InvalidState{Reason: "initial state not set"}
	}

	start := e.clock()
	e.logger.V(1).Info("search started", "run", e.runID, "initial", initial)

	e.open.Push(0, candidate[S]{state: initial})
	for e.open.Len() > 0 {
		if size := e.open.Len(); size > e.maxFrontierSize {
			e.maxFrontierSize = size
		}
		entry, _ := e.open.Pop()
		current := entry.Value

		if e.history.Dominates(current.state, current.cost) {
			continue
		}
		e.history[current.state] = frontier.Record[S]{
			Cost:      current.cost,
			Parent:    current.parent,
			HasParent: current.hasParent,
		}
		e.tracer.Trace(position[S]{candidate: current, frontierSize: e.open.Len(), historySize: len(e.history)})
		e.logger.V(2).Info("state finalized", "run", e.runID, "state", current.state, "cost", current.cost)

		if e.problem.IsGoal(current.state) {
			e.reachedGoal = current.state
			e.goalReached = true
			break
		}

		for _, next := range e.problem.Expand(current.state) {
			if next.Cost < 0 {
				e.failed = frontier.InvalidState{Reason: fmt.Sprintf("negative edge cost %g from %v to %v", next.Cost, current.state, next.State)}
				e.logger.Error(e.failed, "search aborted", "run", e.runID)
				return e.failed
			}
			e.nodesVisited++
			cost := current.cost + next.Cost
			if e.history.Dominates(next.State, cost) {
				continue
			}
			priority := e.evaluator.Evaluate(e.history, current.state, next.State, next.Cost)
			e.open.Push(priority, candidate[S]{
				state:     next.State,
				cost:      cost,
				parent:    current.state,
				hasParent: true,
			})
		}
	}

	e.complete = true
	e.timeTaken = e.clock().Sub(start)
	e.logger.V(1).Info("search finished",
		"run", e.runID,
		"goalFound", e.goalReached,
		"nodesVisited", e.nodesVisited,
		"maxFrontierSize", e.maxFrontierSize,
		"historySize", len(e.history),
		"timeTaken", e.timeTaken,
	)
	return nil
}

// Complete returns true once PerformSearch has run to completion.
func (e *Engine[S]) Complete() bool {
	return e.complete
}

// ReachedGoal returns the goal state the search stopped at, if any.
func (e *Engine[S]) ReachedGoal() (S, bool) {
	return e.reachedGoal, e.goalReached
}

// History returns the finalized records of the current run. Callers must
// not modify it.
func (e *Engine[S]) History() frontier.History[S] {
	return e.history
}

// Stats returns a snapshot of the run counters. It can be called at any
// time; Complete reports whether the numbers are final.
func (e *Engine[S]) Stats() Stats {
	return Stats{
		RunID:           e.runID,
		MaxFrontierSize: e.maxFrontierSize,
		HistorySize:     len(e.history),
		NodesVisited:    e.nodesVisited,
		TimeTaken:       e.timeTaken,
		Complete:        e.complete,
	}
}

// Solution returns the path found by the last search. It returns
// frontier.NotReady if the search has not completed, and the error that
// aborted the run if it failed.
func (e *Engine[S]) Solution() (*Solution[S], error) {
	if e.failed != nil {
		return nil, e.failed
	}
	if !e.complete {
		return nil, frontier.NotReady{}
	}
	if !e.goalReached {
		return &Solution[S]{Cost: -1}, nil
	}

	var path []S
	state := e.reachedGoal
	for {
		path = append(path, state)
		record := e.history[state]
		if !record.HasParent {
			break
		}
		state = record.Parent
	}
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}

	return &Solution[S]{
		Found: true,
		Cost:  e.history[e.reachedGoal].Cost,
		Path:  path,
	}, nil
}

type position[S comparable] struct {
	candidate    candidate[S]
	frontierSize int
	historySize  int
}

func (p position[S]) State() S          { return p.candidate.state }
func (p position[S]) Cost() float64     { return p.candidate.cost }
func (p position[S]) FrontierSize() int { return p.frontierSize }
func (p position[S]) HistorySize() int  { return p.historySize }
func (p position[S]) Parent() (S, bool) { return p.candidate.parent, p.candidate.hasParent }
