package search

import (
	"fmt"
	"io"
	"time"

	"github.com/operator-framework/frontier/pkg/frontier"
)

// Solution is the outcome of a completed search. When no goal state was
// reached Found is false, Path is empty and Cost is -1.
type Solution[S comparable] struct {
	Found bool
	Cost  float64
	Path  []S
}

// Depth returns the number of edges on the solution path.
func (s *Solution[S]) Depth() int {
	if len(s.Path) == 0 {
		return -1
	}
	return len(s.Path) - 1
}

// Stats are the memory and time counters of a single run.
type Stats struct {
	RunID           frontier.RunID
	MaxFrontierSize int
	HistorySize     int
	NodesVisited    int
	TimeTaken       time.Duration
	Complete        bool
}

// DisplaySolution writes the cost of the solution followed by every state
// on its path.
func (e *Engine[S]) DisplaySolution(w io.Writer) error {
	solution, err := e.Solution()
	if err != nil {
		return err
	}
	if !solution.Found {
		fmt.Fprintln(w, "Solution does not exist")
		return nil
	}
	fmt.Fprintf(w, "cost = %g\n", solution.Cost)
	for _, state := range solution.Path {
		frontier.RenderState(w, e.problem, state)
	}
	return nil
}

// DisplayStats writes the memory and time statistics of the run along
// with a summary of the solution.
func (e *Engine[S]) DisplayStats(w io.Writer) error {
	solution, err := e.Solution()
	if err != nil {
		return err
	}
	stats := e.Stats()
	fmt.Fprintf(w, "run: %s\n", stats.RunID)
	fmt.Fprintln(w, "memory usage:")
	fmt.Fprintf(w, "     max frontier size: %d\n", stats.MaxFrontierSize)
	fmt.Fprintf(w, "     max state history size: %d\n", stats.HistorySize)
	fmt.Fprintln(w, "time:")
	fmt.Fprintf(w, "     time taken: %.2f seconds\n", stats.TimeTaken.Seconds())
	fmt.Fprintf(w, "     no. of nodes visited: %d\n", stats.NodesVisited)
	fmt.Fprintln(w)
	fmt.Fprintf(w, "solution cost: %g\n", solution.Cost)
	fmt.Fprintf(w, "solution depth: %d\n", solution.Depth())
	fmt.Fprintf(w, "no. of states visited: %d\n", stats.HistorySize)
	if !solution.Found {
		fmt.Fprintln(w, "goal found: None")
		return nil
	}
	fmt.Fprint(w, "goal found:\n\n")
	frontier.RenderState(w, e.problem, e.reachedGoal)
	return nil
}
