package search_test

import (
	"bytes"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/operator-framework/frontier/pkg/frontier"
	"github.com/operator-framework/frontier/pkg/frontier/search"
	"github.com/operator-framework/frontier/pkg/problems/graph"
)

// diamond is the A->B(1), A->C(4), B->C(1), C->D(1) graph with goal D.
func diamond() *graph.Graph {
	return graph.New().
		SetStart("A").
		AddGoal("D").
		AddEdge("A", "B", 1).
		AddEdge("A", "C", 4).
		AddEdge("B", "C", 1).
		AddEdge("C", "D", 1)
}

type recordingTracer struct {
	finalized []string
	costs     []float64
	maxSizes  []int
	stats     func() search.Stats
}

func (t *recordingTracer) Trace(p frontier.SearchPosition[string]) {
	t.finalized = append(t.finalized, p.State())
	t.costs = append(t.costs, p.Cost())
	if t.stats != nil {
		t.maxSizes = append(t.maxSizes, t.stats().MaxFrontierSize)
	}
}

// randomLine is a problem whose random initial state is the next node of
// a fixed sequence.
type randomLine struct {
	*graph.Graph
	starts []string
	calls  int
}

func (r *randomLine) RandomizeInitialState() {
	r.Graph.SetStart(r.starts[r.calls%len(r.starts)])
	r.calls++
}

func fixedClock(step time.Duration) func() time.Time {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	return func() time.Time {
		now = now.Add(step)
		return now
	}
}

var _ = Describe("Engine", func() {
	It("should find the cheapest path of the diamond graph", func() {
		engine, err := search.New[string](diamond(), search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.PerformSearch()).To(Succeed())

		solution, err := engine.Solution()
		Expect(err).ToNot(HaveOccurred())
		Expect(solution.Found).To(BeTrue())
		Expect(solution.Cost).To(Equal(3.0))
		Expect(solution.Path).To(Equal([]string{"A", "B", "C", "D"}))
		Expect(solution.Depth()).To(Equal(3))

		goal, ok := engine.ReachedGoal()
		Expect(ok).To(BeTrue())
		Expect(goal).To(Equal("D"))
	})

	It("should return the initial state when it is a goal", func() {
		g := graph.New().SetStart("A").AddGoal("A").AddEdge("A", "B", 1)
		engine, err := search.New[string](g, search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.PerformSearch()).To(Succeed())

		solution, err := engine.Solution()
		Expect(err).ToNot(HaveOccurred())
		Expect(solution.Found).To(BeTrue())
		Expect(solution.Cost).To(Equal(0.0))
		Expect(solution.Path).To(Equal([]string{"A"}))
		Expect(engine.Stats().NodesVisited).To(Equal(0))
	})

	It("should report a missing solution explicitly", func() {
		g := graph.New().SetStart("A").AddGoal("Z")
		engine, err := search.New[string](g, search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.PerformSearch()).To(Succeed())

		solution, err := engine.Solution()
		Expect(err).ToNot(HaveOccurred())
		Expect(solution.Found).To(BeFalse())
		Expect(solution.Cost).To(Equal(-1.0))
		Expect(solution.Path).To(BeEmpty())
		_, ok := engine.ReachedGoal()
		Expect(ok).To(BeFalse())
		Expect(engine.Complete()).To(BeTrue())
	})

	It("should exhaust the frontier when the goal is unreachable", func() {
		g := graph.New().SetStart("A").AddGoal("Z").AddEdge("A", "B", 1).AddEdge("B", "A", 1).AddEdge("B", "C", 2)
		engine, err := search.New[string](g, search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.PerformSearch()).To(Succeed())

		solution, err := engine.Solution()
		Expect(err).ToNot(HaveOccurred())
		Expect(solution.Found).To(BeFalse())
		Expect(engine.History()).To(HaveLen(3))
	})

	It("should fail with InvalidState when there is no initial state", func() {
		g := graph.New().AddGoal("A")
		engine, err := search.New[string](g, search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())

		err = engine.PerformSearch()
		Expect(err).To(MatchError(frontier.InvalidState{Reason: "initial state not set"}))
		Expect(engine.Complete()).To(BeFalse())
	})

	It("should fail with InvalidState on negative edge costs", func() {
		g := graph.New().SetStart("A").AddGoal("C").AddEdge("A", "B", 1).AddEdge("B", "C", -3)
		engine, err := search.New[string](g, search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())

		err = engine.PerformSearch()
		Expect(err).To(BeAssignableToTypeOf(frontier.InvalidState{}))
	})

	It("should keep failing after a negative edge cost until it is reset", func() {
		g := graph.New().SetStart("A").AddGoal("C").AddEdge("A", "B", 1).AddEdge("B", "C", -3)
		engine, err := search.New[string](g, search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())

		failure := engine.PerformSearch()
		Expect(failure).To(MatchError(frontier.InvalidState{Reason: "negative edge cost -3 from B to C"}))

		Expect(engine.PerformSearch()).To(MatchError(failure))
		Expect(engine.Complete()).To(BeFalse())
		_, err = engine.Solution()
		Expect(err).To(MatchError(failure))
		Expect(engine.DisplayStats(&bytes.Buffer{})).To(MatchError(failure))

		Expect(engine.Reset(false)).To(Succeed())
		Expect(engine.History()).To(BeEmpty())
		Expect(engine.PerformSearch()).To(MatchError(failure))
	})

	It("should refuse to search twice without a reset", func() {
		engine, err := search.New[string](diamond(), search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.PerformSearch()).To(Succeed())
		Expect(engine.PerformSearch()).To(BeAssignableToTypeOf(frontier.InvalidState{}))

		Expect(engine.Reset(false)).To(Succeed())
		Expect(engine.PerformSearch()).To(Succeed())
	})

	It("should fail with NotReady before the search completes", func() {
		engine, err := search.New[string](diamond(), search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())

		_, err = engine.Solution()
		Expect(err).To(MatchError(frontier.NotReady{}))
		Expect(engine.DisplaySolution(&bytes.Buffer{})).To(MatchError(frontier.NotReady{}))
		Expect(engine.DisplayStats(&bytes.Buffer{})).To(MatchError(frontier.NotReady{}))
	})

	It("should return the same solution every time it is asked", func() {
		engine, err := search.New[string](diamond(), search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.PerformSearch()).To(Succeed())

		first, err := engine.Solution()
		Expect(err).ToNot(HaveOccurred())
		second, err := engine.Solution()
		Expect(err).ToNot(HaveOccurred())
		Expect(second).To(Equal(first))
	})

	It("should clear every statistic on reset", func() {
		engine, err := search.New[string](diamond(), search.BestFirst[string]{},
			search.WithRunIDProvider[string](frontier.NewIncreasingRunIDProvider()))
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.Stats().RunID).To(Equal(frontier.RunID("1")))
		Expect(engine.PerformSearch()).To(Succeed())
		Expect(engine.Stats().NodesVisited).To(BeNumerically(">", 0))

		Expect(engine.Reset(false)).To(Succeed())
		Expect(engine.Stats()).To(Equal(search.Stats{RunID: "2"}))
		Expect(engine.History()).To(BeEmpty())
		Expect(engine.Complete()).To(BeFalse())
		_, ok := engine.ReachedGoal()
		Expect(ok).To(BeFalse())
		_, err = engine.Solution()
		Expect(err).To(MatchError(frontier.NotReady{}))
	})

	It("should randomize the initial state on request", func() {
		line := &randomLine{
			Graph:  graph.New().AddGoal("C").AddEdge("A", "B", 1).AddEdge("B", "C", 1),
			starts: []string{"B", "A"},
		}
		engine, err := search.New[string](line, search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.PerformSearch()).To(MatchError(frontier.InvalidState{Reason: "initial state not set"}))

		Expect(engine.Reset(true)).To(Succeed())
		Expect(engine.PerformSearch()).To(Succeed())
		solution, err := engine.Solution()
		Expect(err).ToNot(HaveOccurred())
		Expect(solution.Path).To(Equal([]string{"B", "C"}))

		Expect(engine.Reset(true)).To(Succeed())
		Expect(engine.PerformSearch()).To(Succeed())
		solution, err = engine.Solution()
		Expect(err).ToNot(HaveOccurred())
		Expect(solution.Path).To(Equal([]string{"A", "B", "C"}))
	})

	It("should fail with Unimplemented when randomizing a problem that cannot", func() {
		engine, err := search.New[string](diamond(), search.BestFirst[string]{})
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.Reset(true)).To(MatchError(frontier.Unimplemented{What: "random initial state"}))
	})

	It("should fail with Unimplemented without a strategy", func() {
		_, err := search.New[string](diamond(), nil)
		Expect(err).To(MatchError(frontier.Unimplemented{What: "evaluation strategy"}))
	})

	It("should fail with Unimplemented for a weighted A* without a heuristic", func() {
		_, err := search.New[string](diamond(), &search.WeightedAStar[string]{CostWeight: 1})
		Expect(err).To(MatchError(frontier.Unimplemented{What: "heuristic"}))

		var missing *search.WeightedAStar[string]
		_, err = search.New[string](diamond(), missing)
		Expect(err).To(MatchError(frontier.Unimplemented{What: "heuristic"}))
	})

	It("should finalize a state reachable by two paths only once at the lower cost", func() {
		tracer := &recordingTracer{}
		engine, err := search.New[string](diamond(), search.BestFirst[string]{}, search.WithTracer[string](tracer))
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.PerformSearch()).To(Succeed())

		Expect(tracer.finalized).To(Equal([]string{"A", "B", "C", "D"}))
		Expect(tracer.costs).To(Equal([]float64{0, 1, 2, 3}))
		Expect(engine.History()["C"]).To(Equal(frontier.Record[string]{Cost: 2, Parent: "B", HasParent: true}))
		// the stale A->C entry at cost 4 is still queued when D is finalized
		Expect(engine.Stats().MaxFrontierSize).To(Equal(2))
	})

	It("should discard stale frontier entries without reopening finalized states", func() {
		// C is queued at 10 from A before the cheaper route through B is known,
		// the stale entry is popped after C was finalized at 3.
		g := graph.New().SetStart("A").AddGoal("Z").
			AddEdge("A", "C", 10).
			AddEdge("A", "B", 1).
			AddEdge("B", "C", 2).
			AddEdge("C", "D", 20)
		tracer := &recordingTracer{}
		engine, err := search.New[string](g, search.BestFirst[string]{}, search.WithTracer[string](tracer))
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.PerformSearch()).To(Succeed())

		Expect(tracer.finalized).To(Equal([]string{"A", "B", "C", "D"}))
		Expect(engine.History()["C"].Cost).To(Equal(3.0))
		Expect(engine.History()["D"].Cost).To(Equal(23.0))
		Expect(engine.Stats().NodesVisited).To(Equal(4))
	})

	It("should overwrite the record of a state popped again at a lower cost", func() {
		// the estimate of X delays the cheaper route to B until B was
		// already finalized at 5 through the direct edge
		g := graph.New().SetStart("S").AddGoal("G").
			AddEdge("S", "B", 5).
			AddEdge("S", "X", 1).
			AddEdge("X", "B", 1).
			AddEdge("B", "G", 10).
			SetEstimate("X", 10)
		astar, err := search.NewAStar[string](g.Estimate)
		Expect(err).ToNot(HaveOccurred())

		tracer := &recordingTracer{}
		engine, err := search.New[string](g, astar, search.WithTracer[string](tracer))
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.PerformSearch()).To(Succeed())

		Expect(tracer.finalized).To(Equal([]string{"S", "B", "X", "B", "G"}))
		Expect(tracer.costs).To(Equal([]float64{0, 5, 1, 2, 12}))
		Expect(engine.History()["B"]).To(Equal(frontier.Record[string]{Cost: 2, Parent: "X", HasParent: true}))

		solution, err := engine.Solution()
		Expect(err).ToNot(HaveOccurred())
		Expect(solution.Cost).To(Equal(12.0))
		Expect(solution.Path).To(Equal([]string{"S", "X", "B", "G"}))
	})

	It("should never decrease the maximum frontier size", func() {
		tracer := &recordingTracer{}
		engine, err := search.New[string](randomGraph(11, 40, 0.3), search.BestFirst[string]{}, search.WithTracer[string](tracer))
		Expect(err).ToNot(HaveOccurred())
		tracer.stats = engine.Stats
		Expect(engine.PerformSearch()).To(Succeed())

		Expect(tracer.maxSizes).ToNot(BeEmpty())
		for i := 1; i < len(tracer.maxSizes); i++ {
			Expect(tracer.maxSizes[i]).To(BeNumerically(">=", tracer.maxSizes[i-1]))
		}
		Expect(engine.Stats().MaxFrontierSize).To(BeNumerically(">=", tracer.maxSizes[len(tracer.maxSizes)-1]))
	})

	It("should trace finalizations to a writer", func() {
		out := &bytes.Buffer{}
		engine, err := search.New[string](diamond(), search.BestFirst[string]{},
			search.WithTracer[string](frontier.LoggingTracer[string]{Writer: out}))
		Expect(err).ToNot(HaveOccurred())
		Expect(engine.PerformSearch()).To(Succeed())

		Expect(out.String()).To(ContainSubstring("---\nFinalized: A\nCost: 0\nParent: <none>\n"))
		Expect(out.String()).To(ContainSubstring("---\nFinalized: D\nCost: 3\nParent: C\n"))
	})

	Describe("reports", func() {
		It("should display the solution path", func() {
			engine, err := search.New[string](diamond(), search.BestFirst[string]{})
			Expect(err).ToNot(HaveOccurred())
			Expect(engine.PerformSearch()).To(Succeed())

			out := &bytes.Buffer{}
			Expect(engine.DisplaySolution(out)).To(Succeed())
			Expect(out.String()).To(Equal("cost = 3\nA\nB\nC\nD\n"))
		})

		It("should display a missing solution", func() {
			engine, err := search.New[string](graph.New().SetStart("A").AddGoal("B"), search.BestFirst[string]{})
			Expect(err).ToNot(HaveOccurred())
			Expect(engine.PerformSearch()).To(Succeed())

			out := &bytes.Buffer{}
			Expect(engine.DisplaySolution(out)).To(Succeed())
			Expect(out.String()).To(Equal("Solution does not exist\n"))

			out.Reset()
			Expect(engine.DisplayStats(out)).To(Succeed())
			Expect(out.String()).To(ContainSubstring("solution cost: -1\nsolution depth: -1\n"))
			Expect(out.String()).To(HaveSuffix("goal found: None\n"))
		})

		It("should display the statistics of the run", func() {
			engine, err := search.New[string](diamond(), search.BestFirst[string]{},
				search.WithRunIDProvider[string](frontier.NewIncreasingRunIDProvider()),
				search.WithClock[string](fixedClock(1500*time.Millisecond)))
			Expect(err).ToNot(HaveOccurred())
			Expect(engine.PerformSearch()).To(Succeed())
			Expect(engine.Stats().TimeTaken).To(Equal(1500 * time.Millisecond))

			out := &bytes.Buffer{}
			Expect(engine.DisplayStats(out)).To(Succeed())
			Expect(out.String()).To(Equal(`run: 1
memory usage:
     max frontier size: 2
     max state history size: 4
time:
     time taken: 1.50 seconds
     no. of nodes visited: 4

solution cost: 3
solution depth: 3
no. of states visited: 4
goal found:

D
`))
		})
	})
})
