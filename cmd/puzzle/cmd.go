package puzzle

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/operator-framework/frontier/cmd/options"
	"github.com/operator-framework/frontier/pkg/frontier"
	"github.com/operator-framework/frontier/pkg/frontier/search"
	"github.com/operator-framework/frontier/pkg/problems/puzzle"
)

type puzzleOptions struct {
	size       int
	seed       int64
	board      string
	heuristic  string
	uninformed bool
}

func NewPuzzleCommand(opts *options.Options) *cobra.Command {
	p := puzzleOptions{}
	cmd := &cobra.Command{
		Use:   "puzzle",
		Short: "Solves a sliding-tile puzzle",
		Long: `Solves a sliding-tile puzzle with weighted A*. Without --board a random
solvable board is generated. Boards are given row by row, 0 is the blank:
  frontier puzzle --size 3 --board 1,2,3,4,0,6,7,5,8
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return solve(cmd, opts, p)
		},
	}
	cmd.Flags().IntVar(&p.size, "size", 3, fmt.Sprintf("board size (%d to %d)", puzzle.MinSize, puzzle.MaxSize))
	cmd.Flags().Int64Var(&p.seed, "seed", 0, "seed for random boards (0 uses the current time)")
	cmd.Flags().StringVar(&p.board, "board", "", "comma separated tiles in row-major order")
	cmd.Flags().StringVar(&p.heuristic, "heuristic", "manhattan", "heuristic: manhattan or misplaced")
	cmd.Flags().BoolVar(&p.uninformed, "uninformed", false, "ignore the heuristic and run a uniform-cost search")
	return cmd
}

func parseBoard(size int, board string) (puzzle.Board, error) {
	fields := strings.Split(board, ",")
	tiles := make([]int, len(fields))
	for i, f := range fields {
		t, err := strconv.Atoi(strings.TrimSpace(f))
		if err != nil {
			return puzzle.Board{}, fmt.Errorf("invalid tile (%s): %w", f, err)
		}
		tiles[i] = t
	}
	return puzzle.NewBoard(size, tiles...)
}

func solve(cmd *cobra.Command, opts *options.Options, p puzzleOptions) error {
	seed := p.seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	problem, err := puzzle.New(p.size, seed)
	if err != nil {
		return err
	}

	var evaluator frontier.Evaluator[puzzle.Board] = search.BestFirst[puzzle.Board]{}
	if !p.uninformed {
		heuristic, err := puzzle.HeuristicByName(p.heuristic)
		if err != nil {
			return err
		}
		evaluator, err = search.NewWeightedAStar[puzzle.Board](opts.CostWeight, opts.HeuristicWeight, heuristic)
		if err != nil {
			return err
		}
	}

	engine, err := search.New[puzzle.Board](problem, evaluator, options.EngineOptions[puzzle.Board](opts, cmd.ErrOrStderr())...)
	if err != nil {
		return err
	}

	if p.board == "" {
		if err := engine.Reset(true); err != nil {
			return err
		}
	} else {
		board, err := parseBoard(p.size, p.board)
		if err != nil {
			return err
		}
		if err := problem.SetInitialState(board); err != nil {
			return err
		}
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
