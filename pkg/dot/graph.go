package dot

import (
	"io"
	"strings"

	"github.com/coursegraph/coursegraph/pkg/cache"
)

// styleStatements are the fixed global presentation attributes emitted ahead
// of the caller-supplied statements: graph-level layout direction and edge
// routing, node-level default shape and sizing, and edge-level arrowheads.
// Edges point from prerequisite to dependent, so the layout grows bottom-up.
var styleStatements = []string{
	`graph [rankdir=BT, splines=polyline];`,
	`node [shape=box, style=filled, fillcolor=white, fontsize=12, margin="0.15,0.08"];`,
	`edge [arrowhead=vee, arrowsize=0.7];`,
}

// StyleFingerprint returns a hash over the static style configuration,
// independent of any requirement data. Callers use it to detect style
// changes, e.g. to invalidate cached rendered artifacts; the pipeline mixes
// it into every artifact cache key.
func StyleFingerprint() string {
	return cache.Hash([]byte(strings.Join(styleStatements, "\n")))
}

// Graph is an assembled graph description: the deduplicated statement list
// behind the fixed style attributes, marked directed and non-strict.
// Non-strict matters: two different boolean gates may legitimately connect
// the same pair of node identities with parallel edges.
type Graph struct {
	Statements []Statement
}

// Assemble wraps a statement list into a Graph. No validation is performed;
// dangling edge references pass through unchanged to the rendering boundary.
func Assemble(stmts []Statement) *Graph {
	return &Graph{Statements: stmts}
}

// NodeCount returns the number of node declarations in the graph.
func (g *Graph) NodeCount() int {
	n := 0
	for _, s := range g.Statements {
		if s.Node != nil {
			n++
		}
	}
	return n
}

// EdgeCount returns the number of edge declarations in the graph.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, s := range g.Statements {
		if s.Edge != nil {
			n++
		}
	}
	return n
}

// String renders the graph as DOT text.
func (g *Graph) String() string {
	var b strings.Builder
	b.WriteString("digraph prerequisites {\n")
	for _, attr := range styleStatements {
		b.WriteString("  ")
		b.WriteString(attr)
		b.WriteString("\n")
	}
	b.WriteString("\n")
	for _, s := range g.Statements {
		b.WriteString("  ")
		b.WriteString(s.String())
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// WriteTo writes the DOT text to w.
func (g *Graph) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, g.String())
	return int64(n), err
}
