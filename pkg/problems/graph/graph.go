package graph

import (
	"errors"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/operator-framework/frontier/pkg/frontier"
)

var _ frontier.Problem[string] = &Graph{}
var _ frontier.StateRenderer[string] = &Graph{}

// Edge is a directed, weighted edge between two named nodes.
type Edge struct {
	From string  `yaml:"from"`
	To   string  `yaml:"to"`
	Cost float64 `yaml:"cost"`
}

// Graph is an explicit directed graph whose nodes are identified by name.
// Successors are returned in the order their edges were added.
type Graph struct {
	start     string
	hasStart  bool
	goals     map[string]struct{}
	adjacency map[string][]frontier.Successor[string]
	estimates map[string]float64
}

func New() *Graph {
	return &Graph{
		goals:     map[string]struct{}{},
		adjacency: map[string][]frontier.Successor[string]{},
		estimates: map[string]float64{},
	}
}

func (g *Graph) SetStart(node string) *Graph {
	g.start = node
	g.hasStart = true
	return g
}

func (g *Graph) AddGoal(nodes ...string) *Graph {
	for _, n := range nodes {
		g.goals[n] = struct{}{}
	}
	return g
}

func (g *Graph) AddEdge(from, to string, cost float64) *Graph {
	g.adjacency[from] = append(g.adjacency[from], frontier.Successor[string]{State: to, Cost: cost})
	return g
}

// SetEstimate records the heuristic estimate of the remaining cost from node.
func (g *Graph) SetEstimate(node string, estimate float64) *Graph {
	g.estimates[node] = estimate
	return g
}

func (g *Graph) InitialState() (string, bool) {
	return g.start, g.hasStart
}

func (g *Graph) IsGoal(node string) bool {
	_, ok := g.goals[node]
	return ok
}

func (g *Graph) Expand(node string) []frontier.Successor[string] {
	return g.adjacency[node]
}

// Estimate returns the heuristic estimate for node, 0 when none was set.
func (g *Graph) Estimate(node string) float64 {
	return g.estimates[node]
}

func (g *Graph) DisplayState(w io.Writer, node string) {
	fmt.Fprintln(w, node)
}

// document is the YAML layout of a graph file:
//
//	start: A
//	goals: [D]
//	edges:
//	  - {from: A, to: B, cost: 1}
//	estimates:
//	  A: 2
type document struct {
	Start     string             `yaml:"start"`
	Goals     []string           `yaml:"goals"`
	Edges     []Edge             `yaml:"edges"`
	Estimates map[string]float64 `yaml:"estimates"`
}

// Load parses a graph from its YAML representation.
func Load(r io.Reader) (*Graph, error) {
	var doc document
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("invalid graph: empty document")
		}
		return nil, fmt.Errorf("error decoding graph: %w", err)
	}
	if doc.Start == "" {
		return nil, fmt.Errorf("invalid graph: missing start node")
	}
	if len(doc.Goals) == 0 {
		return nil, fmt.Errorf("invalid graph: no goal nodes")
	}

	g := New().SetStart(doc.Start).AddGoal(doc.Goals...)
	for i, e := range doc.Edges {
		if e.From == "" || e.To == "" {
			return nil, fmt.Errorf("invalid edge (%d): from and to are required", i)
		}
		if e.Cost < 0 {
			return nil, fmt.Errorf("invalid edge (%s -> %s): negative cost %g", e.From, e.To, e.Cost)
		}
		g.AddEdge(e.From, e.To, e.Cost)
	}
	for node, estimate := range doc.Estimates {
		g.SetEstimate(node, estimate)
	}
	return g, nil
}
