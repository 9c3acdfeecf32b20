package dimacs

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/operator-framework/frontier/cmd/options"
	"github.com/operator-framework/frontier/pkg/frontier/search"
)

func NewDimacsCommand(opts *options.Options) *cobra.Command {
	return &cobra.Command{
		Use:   "dimacs <path>",
		Short: "Finds a model with the fewest true variables for a sat problem given in dimacs format",
		Long: `Finds a model with the fewest true variables for a sat problem given in dimacs format.
Variables are assigned one at a time with a uniform-cost search, setting a variable
to true costs 1. For instance:
c
c this is a comment
c header: p cnf <number of variable> <number of clauses>
p cnf 2 2
c clauses end in zero, negative means 'not'
c 0 (zero) is not a valid literal
1 2 0
1 -2 0
c cnf: (1 or 2) and (1 or not 2)
`,
		Args: cobra.ExactArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			if _, err := os.Stat(args[0]); errors.Is(err, os.ErrNotExist) {
				return fmt.Errorf("file (%s) not found", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(cmd, opts, args[0])
		},
	}
}

func solve(cmd *cobra.Command, opts *options.Options, path string) error {
	dimacsFile, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("error opening dimacs file (%s): %w", path, err)
	}
	defer dimacsFile.Close()

	dimacs, err := NewDimacs(dimacsFile)
	if err != nil {
		return fmt.Errorf("error parsing dimacs file (%s): %w", path, err)
	}

	model := NewMinimalModel(dimacs)
	engine, err := search.New[Assignment](model, search.BestFirst[Assignment]{}, options.EngineOptions[Assignment](opts, cmd.ErrOrStderr())...)
	if err != nil {
		return err
	}
	if err := engine.PerformSearch(); err != nil {
		return err
	}

	solution, err := engine.Solution()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if !solution.Found {
		fmt.Fprintln(out, "no solution found")
	} else {
		fmt.Fprintf(out, "solution found (%g variables set to true):\n", solution.Cost)
		goal, _ := engine.ReachedGoal()
		model.DisplayState(out, goal)
	}
	if opts.Stats {
		return engine.DisplayStats(out)
	}
	return nil
}
