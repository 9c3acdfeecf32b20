package root

import (
	"github.com/spf13/cobra"

	"github.com/operator-framework/frontier/cmd/dimacs"
	"github.com/operator-framework/frontier/cmd/graph"
	"github.com/operator-framework/frontier/cmd/options"
	"github.com/operator-framework/frontier/cmd/puzzle"
)

func NewRootCmd() *cobra.Command {
	opts := &options.Options{}
	rootCmd := &cobra.Command{
		Use:   "frontier",
		Short: "Frontier is a best-first and weighted A* search engine",
		Long: `A generic best-first search engine written in Go.
Each sub-command searches a different kind of problem with the same engine.`,
		SilenceUsage: true,
	}
	opts.AddFlags(rootCmd.PersistentFlags())

	// add sub-commands
	rootCmd.AddCommand(dimacs.NewDimacsCommand(opts))
	rootCmd.AddCommand(graph.NewGraphCommand(opts))
	rootCmd.AddCommand(puzzle.NewPuzzleCommand(opts))

	return rootCmd
}
