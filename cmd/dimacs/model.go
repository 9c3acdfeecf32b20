package dimacs

import (
	"fmt"
	"io"

	"github.com/go-air/gini"
	"github.com/go-air/gini/z"

	"github.com/operator-framework/frontier/pkg/frontier"
)

const satisfiable = 1

var _ frontier.Problem[Assignment] = &MinimalModel{}
var _ frontier.StateRenderer[Assignment] = &MinimalModel{}

// Assignment is a partial assignment of the first len(a) variables, one
// byte per variable: '1' for true and '0' for false.
type Assignment string

func (a Assignment) Values() []bool {
	values := make([]bool, len(a))
	for i := range a {
		values[i] = a[i] == '1'
	}
	return values
}

// MinimalModel searches for a satisfying assignment with as few true
// variables as possible. Variables are assigned in order; setting a
// variable to true costs 1 and to false costs 0. Partial assignments
// that cannot be extended to a model are pruned with a SAT solver, so
// every path in the search graph ends in a model.
type MinimalModel struct {
	dimacs *Dimacs
	g      *gini.Gini
}

func NewMinimalModel(dimacs *Dimacs) *MinimalModel {
	g := gini.New()
	for _, clause := range dimacs.Clauses() {
		for _, lit := range clause {
			g.Add(z.Dimacs2Lit(lit))
		}
		g.Add(z.LitNull)
	}
	return &MinimalModel{
		dimacs: dimacs,
		g:      g,
	}
}

func (m *MinimalModel) InitialState() (Assignment, bool) {
	return "", true
}

func (m *MinimalModel) IsGoal(a Assignment) bool {
	return len(a) == m.dimacs.NumVariables() && m.dimacs.Satisfied(a.Values())
}

func (m *MinimalModel) Expand(a Assignment) []frontier.Successor[Assignment] {
	if len(a) >= m.dimacs.NumVariables() {
		return nil
	}
	var out []frontier.Successor[Assignment]
	for _, next := range []struct {
		bit  byte
		cost float64
	}{{'0', 0}, {'1', 1}} {
		candidate := a + Assignment(next.bit)
		if m.feasible(candidate) {
			out = append(out, frontier.Successor[Assignment]{State: candidate, Cost: next.cost})
		}
	}
	return out
}

// feasible returns true if the partial assignment can be extended to a model.
func (m *MinimalModel) feasible(a Assignment) bool {
	assumptions := make([]z.Lit, len(a))
	for i := range a {
		lit := z.Var(i + 1).Pos()
		if a[i] == '0' {
			lit = lit.Not()
		}
		assumptions[i] = lit
	}
	m.g.Assume(assumptions...)
	return m.g.Solve() == satisfiable
}

func (m *MinimalModel) DisplayState(w io.Writer, a Assignment) {
	for i, v := range a.Values() {
		fmt.Fprintf(w, "%d = %t\n", i+1, v)
	}
}
