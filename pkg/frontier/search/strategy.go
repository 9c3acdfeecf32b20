package search

import (
	"github.com/operator-framework/frontier/pkg/frontier"
)

var _ frontier.Evaluator[string] = BestFirst[string]{}
var _ frontier.Evaluator[string] = &WeightedAStar[string]{}

// BestFirst orders candidates by their accumulated path cost only, which
// makes the engine a uniform-cost search.
type BestFirst[S comparable] struct{}

func (BestFirst[S]) Evaluate(history frontier.History[S], current S, _ S, edgeCost float64) float64 {
	return history[current].Cost + edgeCost
}

// Heuristic estimates the remaining cost from a state to the closest goal.
type Heuristic[S comparable] func(state S) float64

// WeightedAStar orders candidates by
//
//	CostWeight*pathCost + HeuristicWeight*Heuristic(to)
//
// With an admissible, consistent heuristic and equal weights the search
// returns optimal paths. Raising HeuristicWeight relative to CostWeight
// trades optimality for fewer expansions; the engine does not check this.
//
// Build it with NewWeightedAStar or NewAStar; New rejects a WeightedAStar
// without a Heuristic.
type WeightedAStar[S comparable] struct {
	CostWeight      float64
	HeuristicWeight float64
	Heuristic       Heuristic[S]
}

// NewWeightedAStar returns a frontier.Unimplemented error when heuristic is nil.
func NewWeightedAStar[S comparable](costWeight, heuristicWeight float64, heuristic Heuristic[S]) (*WeightedAStar[S], error) {
	if heuristic == nil {
		return nil, frontier.Unimplemented{What: "heuristic"}
	}
	return &WeightedAStar[S]{
		CostWeight:      costWeight,
		HeuristicWeight: heuristicWeight,
		Heuristic:       heuristic,
	}, nil
}

// NewAStar is a weighted A* with both weights set to 1.
func NewAStar[S comparable](heuristic Heuristic[S]) (*WeightedAStar[S], error) {
	return NewWeightedAStar(1, 1, heuristic)
}

func (a *WeightedAStar[S]) Evaluate(history frontier.History[S], current S, to S, edgeCost float64) float64 {
	pathCost := history[current].Cost + edgeCost
	return a.CostWeight*pathCost + a.HeuristicWeight*a.Heuristic(to)
}
