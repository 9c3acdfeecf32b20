package graph

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/operator-framework/frontier/cmd/options"
	"github.com/operator-framework/frontier/pkg/frontier"
	"github.com/operator-framework/frontier/pkg/frontier/search"
	"github.com/operator-framework/frontier/pkg/problems/graph"
)

func NewGraphCommand(opts *options.Options) *cobra.Command {
	var astar bool
	cmd := &cobra.Command{
		Use:   "graph <path>",
		Short: "Finds the cheapest path through a weighted graph described in yaml",
		Long: `Finds the cheapest path through a weighted graph described in yaml. For instance:
start: A
goals: [D]
edges:
  - {from: A, to: B, cost: 1}
  - {from: A, to: C, cost: 4}
  - {from: B, to: C, cost: 1}
  - {from: C, to: D, cost: 1}
# optional, used with --astar
estimates: {A: 3, B: 2, C: 1}
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(cmd, opts, args[0], astar)
		},
	}
	cmd.Flags().BoolVar(&astar, "astar", false, "order the frontier with weighted A* using the estimates of the graph file")
	return cmd
}

func solve(cmd *cobra.Command, opts *options.Options, path string, astar bool) error {
	graphFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening graph file (%s): %w", path, err)
	}
	defer graphFile.Close()

	g, err := graph.Load(graphFile)
	if err != nil {
		return fmt.Errorf("error parsing graph file (%s): %w", path, err)
	}

	var evaluator frontier.Evaluator[string] = search.BestFirst[string]{}
	if astar {
		evaluator, err = search.NewWeightedAStar[string](opts.CostWeight, opts.HeuristicWeight, g.Estimate)
		if err != nil {
			return err
		}
	}

	engine, err := search.New[string](g, evaluator, options.EngineOptions[string](opts, cmd.ErrOrStderr())...)
	if err != nil {
		return err
	}
	if err := engine.PerformSearch(); err != nil {
		return err
	}
	if err := engine.DisplaySolution(cmd.OutOrStdout()); err != nil {
		return err
	}
	if opts.Stats {
		return engine.DisplayStats(cmd.OutOrStdout())
	}
	return nil
}
