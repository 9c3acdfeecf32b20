package options

import (
	"io"
	"log"

	"github.com/go-logr/stdr"
	"github.com/spf13/pflag"

	"github.com/operator-framework/frontier/pkg/frontier"
	"github.com/operator-framework/frontier/pkg/frontier/search"
)

// Options are the flags shared by every search command.
type Options struct {
	Verbosity       int
	Trace           bool
	Stats           bool
	CostWeight      float64
	HeuristicWeight float64
}

func (o *Options) AddFlags(flags *pflag.FlagSet) {
	flags.IntVarP(&o.Verbosity, "verbosity", "v", 0, "log verbosity: 1 logs every run, 2 every finalized state")
	flags.BoolVar(&o.Trace, "trace", false, "print every finalized state to stderr")
	flags.BoolVar(&o.Stats, "stats", false, "print memory and time statistics after the search")
	flags.Float64Var(&o.CostWeight, "weight-cost", 1, "weight of the path cost in the A* priority")
	flags.Float64Var(&o.HeuristicWeight, "weight-heuristic", 1, "weight of the heuristic in the A* priority (0 disables the heuristic)")
}

// EngineOptions translates the flags into engine options. Logs and traces
// are written to w.
func EngineOptions[S comparable](o *Options, w io.Writer) []search.Option[S] {
	// stdr keeps its verbosity in a package variable, this is process-wide.
	stdr.SetVerbosity(o.Verbosity)
	opts := []search.Option[S]{
		search.WithLogger[S](stdr.New(log.New(w, "", log.LstdFlags))),
	}
	if o.Trace {
		opts = append(opts, search.WithTracer[S](frontier.LoggingTracer[S]{Writer: w}))
	}
	return opts
}
