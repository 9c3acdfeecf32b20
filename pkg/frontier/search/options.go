package search

import (
	"time"

	"github.com/go-logr/logr"

	"github.com/operator-framework/frontier/pkg/frontier"
)

type Option[S comparable] func(e *Engine[S]) error

// WithLogger sets the logger used for run level (V(1)) and per state
// (V(2)) messages. Logging is discarded by default.
func WithLogger[S comparable](logger logr.Logger) Option[S] {
	return func(e *Engine[S]) error {
		e.logger = logger
		return nil
	}
}

func WithTracer[S comparable](t frontier.Tracer[S]) Option[S] {
	return func(e *Engine[S]) error {
		e.tracer = t
		return nil
	}
}

func WithRunIDProvider[S comparable](p frontier.RunIDProvider) Option[S] {
	return func(e *Engine[S]) error {
		e.runIDs = p
		return nil
	}
}

// WithClock replaces the clock used to measure the time a search takes.
func WithClock[S comparable](now func() time.Time) Option[S] {
	return func(e *Engine[S]) error {
		e.clock = now
		return nil
	}
}

func defaults[S comparable]() []Option[S] {
	return []Option[S]{
		func(e *Engine[S]) error {
			if e.logger.GetSink() == nil {
				e.logger = logr.Discard()
			}
			if e.tracer == nil {
				e.tracer = frontier.DefaultTracer[S]{}
			}
			if e.runIDs == nil {
				e.runIDs = frontier.NewUUIDRunIDProvider()
			}
			if e.clock == nil {
				e.clock = time.Now
			}
			return nil
		},
	}
}
