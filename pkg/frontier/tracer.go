package frontier

import (
	"fmt"
	"io"
)

// SearchPosition describes the engine at the moment a state is finalized.
type SearchPosition[S comparable] interface {
	State() S
	Cost() float64
	Parent() (S, bool)
	FrontierSize() int
	HistorySize() int
}

type Tracer[S comparable] interface {
	Trace(p SearchPosition[S])
}

type DefaultTracer[S comparable] struct{}

func (DefaultTracer[S]) Trace(_ SearchPosition[S]) {
}

// LoggingTracer writes every finalization to Writer.
type LoggingTracer[S comparable] struct {
	Writer io.Writer
}

func (t LoggingTracer[S]) Trace(p SearchPosition[S]) {
	fmt.Fprintf(t.Writer, "---\nFinalized: %v\n", p.State())
	fmt.Fprintf(t.Writer, "Cost: %g\n", p.Cost())
	if parent, ok := p.Parent(); ok {
		fmt.Fprintf(t.Writer, "Parent: %v\n", parent)
	} else {
		fmt.Fprintf(t.Writer, "Parent: <none>\n")
	}
	fmt.Fprintf(t.Writer, "Frontier: %d\nHistory: %d\n", p.FrontierSize(), p.HistorySize())
}
